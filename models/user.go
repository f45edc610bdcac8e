package models

import (
	"gorm.io/gorm"
)

// Roles recognized by the authorization policy.
const (
	RoleTenant   = "TENANT"
	RoleLandlord = "LANDLORD"
	RoleStaff    = "STAFF"
	RoleAdmin    = "ADMIN"
)

type User struct {
	gorm.Model

	FullName string `json:"fullName" gorm:"column:full_name;type:varchar(255)"`
	Email    string `json:"email" gorm:"uniqueIndex;type:varchar(255)"`
	Phone    string `json:"phone" gorm:"type:varchar(20)"`
	Password string `json:"-" gorm:"type:varchar(255)"`
	Role     string `json:"role" gorm:"type:varchar(20);default:TENANT"`
}
