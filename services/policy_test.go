package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"nhatro-backend/models"
)

func userWithRole(id uint, role string) models.User {
	return models.User{Model: gorm.Model{ID: id}, Role: role}
}

func TestDecide(t *testing.T) {
	admin := userWithRole(1, models.RoleAdmin)
	staff := userWithRole(2, models.RoleStaff)
	landlord := userWithRole(3, models.RoleLandlord)
	tenant := userWithRole(4, models.RoleTenant)

	cases := []struct {
		name    string
		actor   models.User
		bypass  []string
		owners  []uint
		allowed bool
	}{
		{"bypass role passes without ownership", staff, []string{models.RoleStaff, models.RoleAdmin}, nil, true},
		{"admin passes when listed", admin, []string{models.RoleAdmin}, nil, true},
		{"admin denied when not listed and not owner", admin, []string{models.RoleStaff}, []uint{3}, false},
		{"owner passes regardless of role", landlord, nil, []uint{3}, true},
		{"tenant owner passes", tenant, []string{models.RoleAdmin}, []uint{4}, true},
		{"non-owner denied", tenant, []string{models.RoleAdmin}, []uint{3}, false},
		{"zero owner id never matches", models.User{}, nil, []uint{0}, false},
		{"no bypass no owners denied", landlord, nil, nil, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d := Decide(tc.actor, tc.bypass, tc.owners...)
			assert.Equal(t, tc.allowed, d.Allowed)
			if !tc.allowed {
				assert.NotEmpty(t, d.Reason)
			}
		})
	}
}
