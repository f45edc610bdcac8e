package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"nhatro-backend/internal/apperr"
	"nhatro-backend/models"
)

// AuthService issues and validates HS256 tokens and handles registration
// and login.
type AuthService struct {
	DB        *gorm.DB
	secretKey string
	issuer    string
}

// Claims carried in every token.
type Claims struct {
	UserID uint   `json:"user_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

func NewAuthService(db *gorm.DB, secretKey string) *AuthService {
	return &AuthService{
		DB:        db,
		secretKey: secretKey,
		issuer:    "nhatro-backend",
	}
}

type RegisterInput struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// Register creates a user account. Self-registration only grants TENANT or
// LANDLORD; staff and admin accounts are seeded or created by an admin.
func (s *AuthService) Register(input RegisterInput) (*models.User, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" {
		return nil, apperr.Validation("email is required")
	}
	if len(input.Password) < 8 {
		return nil, apperr.Validation("password must be at least 8 characters")
	}
	if strings.TrimSpace(input.FullName) == "" {
		return nil, apperr.Validation("fullName is required")
	}

	role := input.Role
	if role != models.RoleLandlord {
		role = models.RoleTenant
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	user := models.User{
		FullName: strings.TrimSpace(input.FullName),
		Email:    email,
		Phone:    strings.TrimSpace(input.Phone),
		Password: string(hash),
		Role:     role,
	}
	if err := s.DB.Create(&user).Error; err != nil {
		lc := strings.ToLower(err.Error())
		if strings.Contains(lc, "duplicate") || strings.Contains(lc, "unique") {
			return nil, apperr.Validation("email is already registered")
		}
		return nil, apperr.Internal(err)
	}
	return &user, nil
}

// Login verifies credentials and returns a signed token plus the user.
func (s *AuthService) Login(email, password string) (string, *models.User, error) {
	var user models.User
	err := s.DB.Where("email = ?", strings.ToLower(strings.TrimSpace(email))).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, apperr.Forbidden("invalid credentials")
		}
		return "", nil, apperr.Internal(err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return "", nil, apperr.Forbidden("invalid credentials")
	}

	token, err := s.GenerateToken(&user)
	if err != nil {
		return "", nil, apperr.Internal(err)
	}
	return token, &user, nil
}

// GenerateToken signs a 24h HS256 token for the user.
func (s *AuthService) GenerateToken(user *models.User) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID: user.ID,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(24 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    s.issuer,
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.secretKey))
}

// ParseToken validates a token string and returns its claims.
func (s *AuthService) ParseToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.secretKey), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

// UserFromClaims loads the acting user for a validated token.
func (s *AuthService) UserFromClaims(claims *Claims) (*models.User, error) {
	var user models.User
	if err := s.DB.First(&user, claims.UserID).Error; err != nil {
		return nil, err
	}
	return &user, nil
}
