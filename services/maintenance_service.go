package services

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"nhatro-backend/internal/apperr"
	"nhatro-backend/models"
)

// MaintenanceService tracks repair requests and owns the room's
// MAINTENANCE status: intake may set it, resolution may clear it.
type MaintenanceService struct {
	DB *gorm.DB
}

func NewMaintenanceService(db *gorm.DB) *MaintenanceService {
	return &MaintenanceService{DB: db}
}

type MaintenanceInput struct {
	RoomID      uint   `json:"roomId"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

type MaintenanceUpdate struct {
	Status          string   `json:"status"`
	AssignedToID    *uint    `json:"assignedToId"`
	EstimatedCost   *float64 `json:"estimatedCost"`
	ActualCost      *float64 `json:"actualCost"`
	ResolutionNotes string   `json:"notes"`
}

type MaintenanceFilter struct {
	RoomID uint
	Status string
	Page   int
	Limit  int
}

// statusMessages are the human-readable confirmations returned alongside a
// status update.
var statusMessages = map[string]string{
	models.MaintenanceInProgress: "Request is being worked on",
	models.MaintenanceResolved:   "Request resolved",
	models.MaintenanceCancelled:  "Request cancelled",
}

// StatusMessage returns the confirmation text for a maintenance status.
func StatusMessage(status string) string {
	if msg, ok := statusMessages[status]; ok {
		return msg
	}
	return "Request updated"
}

// CreateRequest is the tenant-facing intake. Any authenticated user may
// report an issue. An AVAILABLE room is flipped to MAINTENANCE; a RENTED
// room keeps its status (tenants report issues in occupied rooms).
func (s *MaintenanceService) CreateRequest(input MaintenanceInput, actor models.User) (*models.MaintenanceRequest, error) {
	if input.RoomID == 0 {
		return nil, apperr.Validation("roomId is required")
	}
	if strings.TrimSpace(input.Title) == "" {
		return nil, apperr.Validation("title is required")
	}

	var room models.Room
	if err := s.DB.First(&room, input.RoomID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("room not found")
		}
		return nil, apperr.Internal(err)
	}

	request := models.MaintenanceRequest{
		RoomID:        room.ID,
		RequestedByID: actor.ID,
		Title:         strings.TrimSpace(input.Title),
		Description:   strings.TrimSpace(input.Description),
		Status:        models.MaintenancePending,
	}

	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&request).Error; err != nil {
			return apperr.Internal(err)
		}
		err := tx.Model(&models.Room{}).
			Where("id = ? AND status = ?", room.ID, models.RoomAvailable).
			Update("status", models.RoomMaintenance).Error
		if err != nil {
			return apperr.Internal(err)
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	if err := s.DB.Preload("Room").First(&request, request.ID).Error; err != nil {
		return nil, apperr.Internal(err)
	}
	return &request, nil
}

// UpdateStatus moves a request through PENDING -> IN_PROGRESS ->
// RESOLVED/CANCELLED (skipping IN_PROGRESS is allowed). On RESOLVED the
// resolvedAt timestamp is stamped and, if no other open request remains for
// the room, a MAINTENANCE room is returned to AVAILABLE. That cleanup only
// clears a status maintenance itself set: RENTED rooms are never touched.
func (s *MaintenanceService) UpdateStatus(id uint, update MaintenanceUpdate, actor models.User) (*models.MaintenanceRequest, error) {
	if update.Status == "" {
		return nil, apperr.Validation("status is required")
	}

	var request models.MaintenanceRequest
	if err := s.DB.Preload("Room.Motel").First(&request, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("maintenance request not found")
		}
		return nil, apperr.Internal(err)
	}

	if d := Decide(actor, []string{models.RoleStaff, models.RoleAdmin}, request.Room.Motel.OwnerID); !d.Allowed {
		return nil, apperr.Forbidden(d.Reason)
	}

	if err := applyTransition(models.MaintenanceTransitions, request.Status, update.Status); err != nil {
		return nil, err
	}

	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		changes := map[string]interface{}{"status": update.Status}
		if update.AssignedToID != nil {
			changes["assigned_to_id"] = *update.AssignedToID
		}
		if update.EstimatedCost != nil {
			changes["estimated_cost"] = *update.EstimatedCost
		}
		if update.ActualCost != nil {
			changes["actual_cost"] = *update.ActualCost
		}
		if strings.TrimSpace(update.ResolutionNotes) != "" {
			changes["resolution_notes"] = strings.TrimSpace(update.ResolutionNotes)
		}
		if update.Status == models.MaintenanceResolved {
			changes["resolved_at"] = time.Now().UTC()
		}

		if err := tx.Model(&request).Updates(changes).Error; err != nil {
			return apperr.Internal(err)
		}

		if update.Status == models.MaintenanceResolved {
			open, err := HasOpenMaintenance(tx, request.RoomID, request.ID)
			if err != nil {
				return apperr.Internal(err)
			}
			if !open {
				err := tx.Model(&models.Room{}).
					Where("id = ? AND status = ?", request.RoomID, models.RoomMaintenance).
					Update("status", models.RoomAvailable).Error
				if err != nil {
					return apperr.Internal(err)
				}
			}
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	if err := s.DB.Preload("Room").Preload("RequestedBy").First(&request, id).Error; err != nil {
		return nil, apperr.Internal(err)
	}
	return &request, nil
}

// List returns requests visible to the actor: requesters see their own,
// landlords their motels', staff and admins everything.
func (s *MaintenanceService) List(filter MaintenanceFilter, actor models.User) ([]models.MaintenanceRequest, int64, error) {
	q := s.DB.Model(&models.MaintenanceRequest{})

	switch actor.Role {
	case models.RoleTenant:
		q = q.Where("requested_by_id = ?", actor.ID)
	case models.RoleLandlord:
		q = q.Where("room_id IN (?)", s.DB.Model(&models.Room{}).
			Select("rooms.id").
			Joins("JOIN motels ON motels.id = rooms.motel_id").
			Where("motels.owner_id = ?", actor.ID))
	}

	if filter.RoomID != 0 {
		q = q.Where("room_id = ?", filter.RoomID)
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

	var list []models.MaintenanceRequest
	err := q.Preload("Room").Order("created_at DESC").
		Offset((page - 1) * limit).Limit(limit).
		Find(&list).Error
	if err != nil {
		return nil, 0, apperr.Internal(err)
	}
	return list, total, nil
}

// Get loads one request with the same visibility rules as List.
func (s *MaintenanceService) Get(id uint, actor models.User) (*models.MaintenanceRequest, error) {
	var request models.MaintenanceRequest
	if err := s.DB.Preload("Room.Motel").Preload("RequestedBy").First(&request, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("maintenance request not found")
		}
		return nil, apperr.Internal(err)
	}

	d := Decide(actor, []string{models.RoleStaff, models.RoleAdmin},
		request.Room.Motel.OwnerID, request.RequestedByID)
	if !d.Allowed {
		return nil, apperr.Forbidden(d.Reason)
	}
	return &request, nil
}
