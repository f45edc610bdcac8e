package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"nhatro-backend/models"
	"nhatro-backend/services"
	"nhatro-backend/utils"
)

const currentUserKey = "currentUser"

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// RequireAuth validates the Bearer token and loads the acting user into the
// context. Requests without a valid token get 401.
func RequireAuth(auth *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			utils.JSONError(c, http.StatusUnauthorized, "UNAUTHORIZED", "missing bearer token")
			c.Abort()
			return
		}

		claims, err := auth.ParseToken(token)
		if err != nil {
			utils.JSONError(c, http.StatusUnauthorized, "UNAUTHORIZED", "invalid or expired token")
			c.Abort()
			return
		}

		user, err := auth.UserFromClaims(claims)
		if err != nil {
			utils.JSONError(c, http.StatusUnauthorized, "UNAUTHORIZED", "unknown user")
			c.Abort()
			return
		}

		c.Set(currentUserKey, user)
		c.Next()
	}
}

// OptionalAuth loads the acting user when a valid token is present but lets
// anonymous requests through. Used by the guest-facing appointment routes.
func OptionalAuth(auth *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token != "" {
			if claims, err := auth.ParseToken(token); err == nil {
				if user, err := auth.UserFromClaims(claims); err == nil {
					c.Set(currentUserKey, user)
				}
			}
		}
		c.Next()
	}
}

// CurrentUser returns the acting user set by RequireAuth/OptionalAuth, or
// nil for anonymous requests.
func CurrentUser(c *gin.Context) *models.User {
	if v, ok := c.Get(currentUserKey); ok {
		if user, ok := v.(*models.User); ok {
			return user
		}
	}
	return nil
}
