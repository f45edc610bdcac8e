package services

import (
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"nhatro-backend/internal/apperr"
	"nhatro-backend/models"
)

// InvoiceService handles monthly billing against contracts. Plain CRUD plus
// an overdue sweep; the occupancy invariants never depend on invoices.
type InvoiceService struct {
	DB *gorm.DB
}

func NewInvoiceService(db *gorm.DB) *InvoiceService {
	return &InvoiceService{DB: db}
}

type InvoiceLineItem struct {
	Label  string  `json:"label"`
	Amount float64 `json:"amount"`
}

type InvoiceInput struct {
	ContractID  uint              `json:"contractId"`
	PeriodMonth int               `json:"periodMonth"`
	PeriodYear  int               `json:"periodYear"`
	DueDate     string            `json:"dueDate"`
	LineItems   []InvoiceLineItem `json:"lineItems"`
}

type InvoiceFilter struct {
	ContractID uint
	Status     string
	Page       int
	Limit      int
}

// Create issues an invoice for a contract. Permitted to the owning
// landlord, staff, or admin. The total is the sum of line items.
func (s *InvoiceService) Create(input InvoiceInput, actor models.User) (*models.Invoice, error) {
	if input.ContractID == 0 {
		return nil, apperr.Validation("contractId is required")
	}
	if input.PeriodMonth < 1 || input.PeriodMonth > 12 {
		return nil, apperr.Validation("periodMonth must be 1-12")
	}
	if input.PeriodYear < 2000 {
		return nil, apperr.Validation("periodYear is invalid")
	}
	if len(input.LineItems) == 0 {
		return nil, apperr.Validation("at least one line item is required")
	}

	var contract models.Contract
	if err := s.DB.Preload("Room.Motel").First(&contract, input.ContractID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("contract not found")
		}
		return nil, apperr.Internal(err)
	}

	if d := Decide(actor, []string{models.RoleStaff, models.RoleAdmin}, contract.Room.Motel.OwnerID); !d.Allowed {
		return nil, apperr.Forbidden(d.Reason)
	}

	total := 0.0
	for _, item := range input.LineItems {
		if strings.TrimSpace(item.Label) == "" {
			return nil, apperr.Validation("line item label is required")
		}
		total += item.Amount
	}

	raw, err := json.Marshal(input.LineItems)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	invoice := models.Invoice{
		Reference:  uuid.NewString(),
		ContractID: contract.ID,

		PeriodMonth: input.PeriodMonth,
		PeriodYear:  input.PeriodYear,
		LineItems:   datatypes.JSON(raw),
		Amount:      total,
		Status:      models.InvoicePending,
	}
	if strings.TrimSpace(input.DueDate) != "" {
		due, err := parseDate(input.DueDate)
		if err != nil {
			return nil, apperr.Validation("invalid dueDate format")
		}
		invoice.DueDate = &due
	}

	if err := s.DB.Create(&invoice).Error; err != nil {
		return nil, apperr.Internal(err)
	}
	return &invoice, nil
}

// MarkPaid stamps paidAt and sets the status to PAID. PENDING and OVERDUE
// invoices may be paid; paying twice is a validation error.
func (s *InvoiceService) MarkPaid(id uint, actor models.User) (*models.Invoice, error) {
	var invoice models.Invoice
	if err := s.DB.Preload("Contract.Room.Motel").First(&invoice, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("invoice not found")
		}
		return nil, apperr.Internal(err)
	}

	if d := Decide(actor, []string{models.RoleStaff, models.RoleAdmin}, invoice.Contract.Room.Motel.OwnerID); !d.Allowed {
		return nil, apperr.Forbidden(d.Reason)
	}
	if invoice.Status == models.InvoicePaid {
		return nil, apperr.Validation("invoice is already paid")
	}

	now := time.Now().UTC()
	err := s.DB.Model(&invoice).Updates(map[string]interface{}{
		"status":  models.InvoicePaid,
		"paid_at": now,
	}).Error
	if err != nil {
		return nil, apperr.Internal(err)
	}

	invoice.Status = models.InvoicePaid
	invoice.PaidAt = &now
	return &invoice, nil
}

// SweepOverdue flips PENDING invoices past their due date to OVERDUE and
// returns how many changed. Safe to run repeatedly.
func (s *InvoiceService) SweepOverdue(now time.Time) (int64, error) {
	res := s.DB.Model(&models.Invoice{}).
		Where("status = ? AND due_date IS NOT NULL AND due_date < ?", models.InvoicePending, now).
		Update("status", models.InvoiceOverdue)
	if res.Error != nil {
		return 0, apperr.Internal(res.Error)
	}
	return res.RowsAffected, nil
}

// List returns invoices visible to the actor, scoped like contracts.
func (s *InvoiceService) List(filter InvoiceFilter, actor models.User) ([]models.Invoice, int64, error) {
	q := s.DB.Model(&models.Invoice{})

	switch actor.Role {
	case models.RoleTenant:
		q = q.Where("contract_id IN (?)", s.DB.Model(&models.Contract{}).
			Select("id").Where("tenant_user_id = ?", actor.ID))
	case models.RoleLandlord:
		q = q.Where("contract_id IN (?)", s.DB.Model(&models.Contract{}).
			Select("contracts.id").
			Joins("JOIN rooms ON rooms.id = contracts.room_id").
			Joins("JOIN motels ON motels.id = rooms.motel_id").
			Where("motels.owner_id = ?", actor.ID))
	}

	if filter.ContractID != 0 {
		q = q.Where("contract_id = ?", filter.ContractID)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, apperr.Internal(err)
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	limit := filter.Limit
	if limit < 1 || limit > 100 {
		limit = 20
	}

	var list []models.Invoice
	err := q.Preload("Contract").Order("created_at DESC").
		Offset((page - 1) * limit).Limit(limit).
		Find(&list).Error
	if err != nil {
		return nil, 0, apperr.Internal(err)
	}
	return list, total, nil
}

// Get loads one invoice with its contract, room and motel.
func (s *InvoiceService) Get(id uint, actor models.User) (*models.Invoice, error) {
	var invoice models.Invoice
	err := s.DB.Preload("Contract.Room.Motel").Preload("Contract.Tenants").First(&invoice, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("invoice not found")
		}
		return nil, apperr.Internal(err)
	}

	owners := []uint{invoice.Contract.Room.Motel.OwnerID}
	if invoice.Contract.TenantUserID != nil {
		owners = append(owners, *invoice.Contract.TenantUserID)
	}
	if d := Decide(actor, []string{models.RoleStaff, models.RoleAdmin}, owners...); !d.Allowed {
		return nil, apperr.Forbidden(d.Reason)
	}
	return &invoice, nil
}
