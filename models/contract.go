package models

import (
	"time"

	"gorm.io/gorm"
)

// Contract statuses. A room has at most one ACTIVE contract at any time.
const (
	ContractActive     = "ACTIVE"
	ContractExpired    = "EXPIRED"
	ContractTerminated = "TERMINATED"
)

type Contract struct {
	gorm.Model

	ContractNumber string `json:"contractNumber" gorm:"column:contract_number;uniqueIndex;type:varchar(64)"`

	// Room reference is immutable once the contract is created.
	RoomID       uint  `json:"roomId" gorm:"column:room_id;index"`
	TenantUserID *uint `json:"tenantUserId,omitempty" gorm:"column:tenant_user_id;index"`

	StartDate     time.Time  `json:"startDate" gorm:"column:start_date"`
	EndDate       *time.Time `json:"endDate,omitempty" gorm:"column:end_date"`
	RentPrice     float64    `json:"rentPrice" gorm:"column:rent_price"`
	DepositAmount float64    `json:"depositAmount" gorm:"column:deposit_amount"`
	Status        string     `json:"status" gorm:"type:varchar(20);default:ACTIVE;index"`

	Room    Room             `gorm:"foreignKey:RoomID" json:"room,omitempty"`
	Tenants []ContractTenant `gorm:"foreignKey:ContractID" json:"tenants"`
}

// ContractTenant is one roster entry embedded in a contract. It has no
// lifecycle of its own.
type ContractTenant struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	ContractID uint `json:"contractId" gorm:"column:contract_id;index"`

	FullName     string     `json:"fullName" gorm:"column:full_name;type:varchar(255)"`
	Phone        string     `json:"phone,omitempty" gorm:"type:varchar(20)"`
	Email        string     `json:"email,omitempty" gorm:"type:varchar(255)"`
	IdentityCard string     `json:"identityCard,omitempty" gorm:"column:identity_card;type:varchar(50)"`
	DateOfBirth  *time.Time `json:"dateOfBirth,omitempty" gorm:"column:date_of_birth"`
	Gender       string     `json:"gender,omitempty" gorm:"type:varchar(10)"`
	Relationship string     `json:"relationship,omitempty" gorm:"type:varchar(50)"`
	IsPrimary    bool       `json:"isPrimary" gorm:"column:is_primary;default:false"`
}
