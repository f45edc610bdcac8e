package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"nhatro-backend/internal/apperr"
	"nhatro-backend/models"
)

// AppointmentService manages room-viewing bookings. Requests may come from
// registered users or anonymous guests identified by contact details.
type AppointmentService struct {
	DB *gorm.DB
}

func NewAppointmentService(db *gorm.DB) *AppointmentService {
	return &AppointmentService{DB: db}
}

type AppointmentInput struct {
	RoomID      uint   `json:"roomId"`
	ScheduledAt string `json:"scheduledAt"`
	Note        string `json:"note"`
	GuestName   string `json:"guestName"`
	GuestPhone  string `json:"guestPhone"`
	GuestEmail  string `json:"guestEmail"`
}

// Create books a viewing. actor may be nil for guest bookings, which must
// carry full contact details.
func (s *AppointmentService) Create(input AppointmentInput, actor *models.User) (*models.Appointment, error) {
	if input.RoomID == 0 {
		return nil, apperr.Validation("roomId is required")
	}
	scheduledAt, err := parseDate(input.ScheduledAt)
	if err != nil {
		return nil, apperr.Validation("invalid scheduledAt format")
	}

	appointment := models.Appointment{
		RoomID:      input.RoomID,
		ScheduledAt: scheduledAt,
		Status:      models.AppointmentPending,
		Note:        strings.TrimSpace(input.Note),
	}

	if actor != nil {
		appointment.UserID = &actor.ID
	} else {
		if strings.TrimSpace(input.GuestName) == "" ||
			strings.TrimSpace(input.GuestPhone) == "" ||
			strings.TrimSpace(input.GuestEmail) == "" {
			return nil, apperr.Validation("guest bookings require name, phone and email")
		}
		appointment.GuestName = strings.TrimSpace(input.GuestName)
		appointment.GuestPhone = strings.TrimSpace(input.GuestPhone)
		appointment.GuestEmail = strings.TrimSpace(input.GuestEmail)
	}

	var room models.Room
	if err := s.DB.First(&room, input.RoomID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("room not found")
		}
		return nil, apperr.Internal(err)
	}

	if err := s.DB.Create(&appointment).Error; err != nil {
		return nil, apperr.Internal(err)
	}

	if err := s.DB.Preload("Room").Preload("Room.Motel").First(&appointment, appointment.ID).Error; err != nil {
		return nil, apperr.Internal(err)
	}
	return &appointment, nil
}

// SetStatus applies a transition. Confirming (and completing) is reserved
// for the owning landlord or an admin; the requester may additionally
// cancel their own appointment.
func (s *AppointmentService) SetStatus(id uint, newStatus, note string, actor models.User) (*models.Appointment, error) {
	if newStatus == "" {
		return nil, apperr.Validation("status is required")
	}

	var appointment models.Appointment
	if err := s.DB.Preload("Room.Motel").First(&appointment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("appointment not found")
		}
		return nil, apperr.Internal(err)
	}

	ownerID := appointment.Room.Motel.OwnerID

	var d Decision
	switch newStatus {
	case models.AppointmentCancelled:
		owners := []uint{ownerID}
		if appointment.UserID != nil {
			owners = append(owners, *appointment.UserID)
		}
		d = Decide(actor, []string{models.RoleAdmin}, owners...)
	default:
		// CONFIRMED and COMPLETED: landlord or admin only; the requester
		// cannot confirm their own viewing.
		d = Decide(actor, []string{models.RoleAdmin}, ownerID)
	}
	if !d.Allowed {
		return nil, apperr.Forbidden(d.Reason)
	}

	if err := applyTransition(models.AppointmentTransitions, appointment.Status, newStatus); err != nil {
		return nil, err
	}

	changes := map[string]interface{}{"status": newStatus}
	if strings.TrimSpace(note) != "" {
		changes["note"] = strings.TrimSpace(note)
	}
	if err := s.DB.Model(&appointment).Updates(changes).Error; err != nil {
		return nil, apperr.Internal(err)
	}

	if err := s.DB.Preload("Room").Preload("Room.Motel").First(&appointment, id).Error; err != nil {
		return nil, apperr.Internal(err)
	}
	return &appointment, nil
}

// Get returns one appointment. Visible to the requester (by user id, or by
// matching guest phone+email), the owning landlord, or an admin.
func (s *AppointmentService) Get(id uint, actor *models.User, guestPhone, guestEmail string) (*models.Appointment, error) {
	var appointment models.Appointment
	if err := s.DB.Preload("Room.Motel").First(&appointment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("appointment not found")
		}
		return nil, apperr.Internal(err)
	}

	if actor == nil {
		if appointment.UserID == nil &&
			guestPhone != "" && guestEmail != "" &&
			strings.EqualFold(appointment.GuestPhone, guestPhone) &&
			strings.EqualFold(appointment.GuestEmail, guestEmail) {
			return &appointment, nil
		}
		return nil, apperr.Forbidden("not permitted")
	}

	owners := []uint{appointment.Room.Motel.OwnerID}
	if appointment.UserID != nil {
		owners = append(owners, *appointment.UserID)
	}
	if d := Decide(*actor, []string{models.RoleAdmin}, owners...); !d.Allowed {
		return nil, apperr.Forbidden(d.Reason)
	}
	return &appointment, nil
}

// Delete removes an appointment. Permitted to the requester, the owning
// landlord, or an admin.
func (s *AppointmentService) Delete(id uint, actor models.User) error {
	var appointment models.Appointment
	if err := s.DB.Preload("Room.Motel").First(&appointment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("appointment not found")
		}
		return apperr.Internal(err)
	}

	owners := []uint{appointment.Room.Motel.OwnerID}
	if appointment.UserID != nil {
		owners = append(owners, *appointment.UserID)
	}
	if d := Decide(actor, []string{models.RoleAdmin}, owners...); !d.Allowed {
		return apperr.Forbidden(d.Reason)
	}

	if err := s.DB.Delete(&appointment).Error; err != nil {
		return apperr.Internal(err)
	}
	return nil
}

// ListForRoom returns upcoming appointments for a room, for the owning
// landlord, staff or admin.
func (s *AppointmentService) ListForRoom(roomID uint, actor models.User) ([]models.Appointment, error) {
	var room models.Room
	if err := s.DB.Preload("Motel").First(&room, roomID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("room not found")
		}
		return nil, apperr.Internal(err)
	}

	if d := Decide(actor, []string{models.RoleStaff, models.RoleAdmin}, room.Motel.OwnerID); !d.Allowed {
		return nil, apperr.Forbidden(d.Reason)
	}

	var list []models.Appointment
	err := s.DB.Where("room_id = ?", roomID).
		Order("scheduled_at ASC").
		Find(&list).Error
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return list, nil
}
