package services

import (
	"strings"

	"gorm.io/gorm"

	"nhatro-backend/internal/apperr"
	"nhatro-backend/models"
)

type MotelService struct {
	DB *gorm.DB
}

func NewMotelService(db *gorm.DB) *MotelService {
	return &MotelService{DB: db}
}

type MotelInput struct {
	Name    string `json:"name"`
	Address string `json:"address"`
}

// Create registers a motel owned by the acting landlord.
func (s *MotelService) Create(input MotelInput, actor models.User) (*models.Motel, error) {
	if actor.Role != models.RoleLandlord && actor.Role != models.RoleAdmin {
		return nil, apperr.Forbidden("only landlords can register motels")
	}
	if strings.TrimSpace(input.Name) == "" {
		return nil, apperr.Validation("name is required")
	}

	motel := models.Motel{
		OwnerID: actor.ID,
		Name:    strings.TrimSpace(input.Name),
		Address: strings.TrimSpace(input.Address),
	}
	if err := s.DB.Create(&motel).Error; err != nil {
		return nil, apperr.Internal(err)
	}
	return &motel, nil
}

// List returns all motels, with rooms preloaded for the public search page.
func (s *MotelService) List() ([]models.Motel, error) {
	var motels []models.Motel
	if err := s.DB.Preload("Rooms").Order("name").Find(&motels).Error; err != nil {
		return nil, apperr.Internal(err)
	}
	return motels, nil
}
