package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"nhatro-backend/internal/apperr"
	"nhatro-backend/models"
	"nhatro-backend/utils"
)

// ContractService owns the contract lifecycle: it is the only path by which
// a room moves AVAILABLE -> RENTED.
type ContractService struct {
	DB *gorm.DB
}

func NewContractService(db *gorm.DB) *ContractService {
	return &ContractService{DB: db}
}

type TenantEntry struct {
	FullName     string `json:"fullName"`
	Phone        string `json:"phone"`
	Email        string `json:"email"`
	IdentityCard string `json:"identityCard"`
	DateOfBirth  string `json:"dateOfBirth"`
	Gender       string `json:"gender"`
	Relationship string `json:"relationship"`
	IsPrimary    bool   `json:"isPrimary"`
}

type ContractInput struct {
	RoomID        uint          `json:"roomId"`
	TenantUserID  *uint         `json:"tenantUserId"`
	StartDate     string        `json:"startDate"`
	EndDate       string        `json:"endDate"`
	RentPrice     float64       `json:"rentPrice"`
	DepositAmount float64       `json:"depositAmount"`
	Tenants       []TenantEntry `json:"tenants"`
}

type ContractFilter struct {
	Status  string
	MotelID uint
	RoomID  uint
	Page    int
	Limit   int
}

func parseDate(value string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, value)
}

func (in *ContractInput) validate() (time.Time, *time.Time, error) {
	if in.RoomID == 0 {
		return time.Time{}, nil, apperr.Validation("roomId is required")
	}
	if in.RentPrice <= 0 {
		return time.Time{}, nil, apperr.Validation("rentPrice must be positive")
	}
	if in.DepositAmount < 0 {
		return time.Time{}, nil, apperr.Validation("depositAmount cannot be negative")
	}
	if len(in.Tenants) == 0 {
		return time.Time{}, nil, apperr.Validation("at least one tenant is required")
	}
	for _, t := range in.Tenants {
		if strings.TrimSpace(t.FullName) == "" {
			return time.Time{}, nil, apperr.Validation("tenant fullName is required")
		}
	}

	start, err := parseDate(in.StartDate)
	if err != nil {
		return time.Time{}, nil, apperr.Validation("invalid startDate format")
	}

	var end *time.Time
	if strings.TrimSpace(in.EndDate) != "" {
		e, err := parseDate(in.EndDate)
		if err != nil {
			return time.Time{}, nil, apperr.Validation("invalid endDate format")
		}
		if !e.After(start) {
			return time.Time{}, nil, apperr.Validation("endDate must be after startDate")
		}
		end = &e
	}
	return start, end, nil
}

func (in *ContractInput) rosterRows(contractID uint) []models.ContractTenant {
	rows := make([]models.ContractTenant, 0, len(in.Tenants))
	for _, t := range in.Tenants {
		row := models.ContractTenant{
			ContractID:   contractID,
			FullName:     strings.TrimSpace(t.FullName),
			Phone:        strings.TrimSpace(t.Phone),
			Email:        strings.TrimSpace(t.Email),
			IdentityCard: strings.TrimSpace(t.IdentityCard),
			Gender:       t.Gender,
			Relationship: t.Relationship,
			IsPrimary:    t.IsPrimary,
		}
		if strings.TrimSpace(t.DateOfBirth) != "" {
			if dob, err := parseDate(t.DateOfBirth); err == nil {
				row.DateOfBirth = &dob
			}
		}
		rows = append(rows, row)
	}
	return rows
}

// Create books a room: contract + tenant roster + room status flip, all in
// one transaction. Two concurrent calls for the same room yield exactly one
// success; the loser gets ROOM_OCCUPIED and nothing persists from its
// attempt. The room flip is a compare-and-swap on status AVAILABLE, so the
// check and the write are serialized by the store's row lock.
func (s *ContractService) Create(input ContractInput, actor models.User) (*models.Contract, error) {
	start, end, err := input.validate()
	if err != nil {
		return nil, err
	}

	var room models.Room
	if err := s.DB.Preload("Motel").First(&room, input.RoomID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("room not found")
		}
		return nil, apperr.Internal(err)
	}

	if d := Decide(actor, []string{models.RoleStaff, models.RoleAdmin}, room.Motel.OwnerID); !d.Allowed {
		return nil, apperr.Forbidden(d.Reason)
	}

	var contract models.Contract

	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		occupied, err := HasActiveContract(tx, room.ID)
		if err != nil {
			return apperr.Internal(err)
		}
		if occupied {
			return apperr.RoomOccupied()
		}

		var current models.Room
		if err := tx.First(&current, room.ID).Error; err != nil {
			return apperr.Internal(err)
		}
		if current.Status == models.RoomMaintenance {
			return apperr.Validation("room is under maintenance")
		}

		// Insert with contract-number retries on unique collision.
		maxRetries := 5
		var createErr error
		for attempt := 0; attempt < maxRetries; attempt++ {
			number, genErr := utils.GenerateContractNumber(time.Now())
			if genErr != nil {
				return apperr.Internal(genErr)
			}

			contract = models.Contract{
				ContractNumber: number,
				RoomID:         room.ID,
				TenantUserID:   input.TenantUserID,
				StartDate:      start,
				EndDate:        end,
				RentPrice:      input.RentPrice,
				DepositAmount:  input.DepositAmount,
				Status:         models.ContractActive,
			}
			createErr = tx.Create(&contract).Error
			if createErr == nil {
				break
			}
			if utils.IsUniqueViolation(createErr) {
				continue
			}
			return apperr.Internal(createErr)
		}
		if createErr != nil {
			return apperr.Internal(fmt.Errorf("failed to create contract after retries: %w", createErr))
		}

		roster := input.rosterRows(contract.ID)
		for i := range roster {
			if err := tx.Create(&roster[i]).Error; err != nil {
				return apperr.Internal(err)
			}
		}

		// CAS on room status: only AVAILABLE -> RENTED. Zero rows means a
		// concurrent booking won; abort the whole transaction.
		res := tx.Model(&models.Room{}).
			Where("id = ? AND status = ?", room.ID, models.RoomAvailable).
			Update("status", models.RoomRented)
		if res.Error != nil {
			return apperr.Internal(res.Error)
		}
		if res.RowsAffected == 0 {
			return apperr.RoomOccupied()
		}

		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	var out models.Contract
	if err := s.DB.Preload("Room").Preload("Room.Motel").Preload("Tenants").First(&out, contract.ID).Error; err != nil {
		return nil, apperr.Internal(err)
	}
	return &out, nil
}

// List returns contracts visible to the actor: tenants see their own,
// landlords see their motels', staff and admins see everything.
func (s *ContractService) List(filter ContractFilter, actor models.User) ([]models.Contract, int64, error) {
	q := s.DB.Model(&models.Contract{})

	switch actor.Role {
	case models.RoleTenant:
		q = q.Where("tenant_user_id = ?", actor.ID)
	case models.RoleLandlord:
		q = q.Where("room_id IN (?)", s.ownedRoomIDs(actor.ID))
	}

	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.RoomID != 0 {
		q = q.Where("room_id = ?", filter.RoomID)
	}
	if filter.MotelID != 0 {
		q = q.Where("room_id IN (?)", s.DB.Model(&models.Room{}).Select("id").Where("motel_id = ?", filter.MotelID))
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

	var list []models.Contract
	err := q.Preload("Room").Preload("Tenants").
		Order("created_at DESC").
		Offset((page - 1) * limit).Limit(limit).
		Find(&list).Error
	if err != nil {
		return nil, 0, apperr.Internal(err)
	}
	return list, total, nil
}

func (s *ContractService) ownedRoomIDs(ownerID uint) *gorm.DB {
	return s.DB.Model(&models.Room{}).
		Select("rooms.id").
		Joins("JOIN motels ON motels.id = rooms.motel_id").
		Where("motels.owner_id = ?", ownerID)
}

// Get loads one contract with room, motel and roster, enforcing the same
// visibility rules as List.
func (s *ContractService) Get(id uint, actor models.User) (*models.Contract, error) {
	var contract models.Contract
	err := s.DB.Preload("Room").Preload("Room.Motel").Preload("Tenants").First(&contract, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("contract not found")
		}
		return nil, apperr.Internal(err)
	}

	owners := []uint{contract.Room.Motel.OwnerID}
	if contract.TenantUserID != nil {
		owners = append(owners, *contract.TenantUserID)
	}
	if d := Decide(actor, []string{models.RoleStaff, models.RoleAdmin}, owners...); !d.Allowed {
		return nil, apperr.Forbidden(d.Reason)
	}
	return &contract, nil
}

// Delete removes a contract. Permitted to the contract's tenant, the owning
// landlord, or an admin. NOTE: the room status is intentionally left
// untouched here; an ACTIVE contract deleted this way leaves the room
// RENTED. Use Terminate to end a contract and free the room.
func (s *ContractService) Delete(id uint, actor models.User) error {
	var contract models.Contract
	if err := s.DB.Preload("Room.Motel").First(&contract, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("contract not found")
		}
		return apperr.Internal(err)
	}

	owners := []uint{contract.Room.Motel.OwnerID}
	if contract.TenantUserID != nil {
		owners = append(owners, *contract.TenantUserID)
	}
	if d := Decide(actor, []string{models.RoleAdmin}, owners...); !d.Allowed {
		return apperr.Forbidden(d.Reason)
	}

	if err := s.DB.Delete(&contract).Error; err != nil {
		return apperr.Internal(err)
	}
	return nil
}

// Terminate ends an ACTIVE contract as EXPIRED or TERMINATED and frees the
// room. Permitted to the owning landlord, staff, or admin.
func (s *ContractService) Terminate(id uint, newStatus string, actor models.User) (*models.Contract, error) {
	if newStatus != models.ContractExpired && newStatus != models.ContractTerminated {
		return nil, apperr.Validation("status must be EXPIRED or TERMINATED")
	}

	var contract models.Contract
	if err := s.DB.Preload("Room.Motel").First(&contract, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("contract not found")
		}
		return nil, apperr.Internal(err)
	}

	if d := Decide(actor, []string{models.RoleStaff, models.RoleAdmin}, contract.Room.Motel.OwnerID); !d.Allowed {
		return nil, apperr.Forbidden(d.Reason)
	}
	if contract.Status != models.ContractActive {
		return nil, apperr.Validation("only ACTIVE contracts can be terminated")
	}

	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&contract).Update("status", newStatus).Error; err != nil {
			return apperr.Internal(err)
		}
		// Free the room only if this contract was what held it RENTED.
		res := tx.Model(&models.Room{}).
			Where("id = ? AND status = ?", contract.RoomID, models.RoomRented).
			Update("status", models.RoomAvailable)
		if res.Error != nil {
			return apperr.Internal(res.Error)
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	if err := s.DB.Preload("Room").Preload("Tenants").First(&contract, id).Error; err != nil {
		return nil, apperr.Internal(err)
	}
	return &contract, nil
}
