package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Invoice statuses.
const (
	InvoicePending = "PENDING"
	InvoicePaid    = "PAID"
	InvoiceOverdue = "OVERDUE"
)

type Invoice struct {
	gorm.Model

	Reference  string `json:"reference" gorm:"uniqueIndex;type:varchar(64)"`
	ContractID uint   `json:"contractId" gorm:"column:contract_id;index"`

	PeriodMonth int `json:"periodMonth" gorm:"column:period_month"`
	PeriodYear  int `json:"periodYear" gorm:"column:period_year"`

	// LineItems holds [{"label":..., "amount":...}] entries as entered.
	LineItems datatypes.JSON `json:"lineItems,omitempty" gorm:"column:line_items"`

	Amount  float64    `json:"amount"`
	Status  string     `json:"status" gorm:"type:varchar(20);default:PENDING;index"`
	DueDate *time.Time `json:"dueDate,omitempty" gorm:"column:due_date"`
	PaidAt  *time.Time `json:"paidAt,omitempty" gorm:"column:paid_at"`

	Contract Contract `gorm:"foreignKey:ContractID" json:"contract,omitempty"`
}
