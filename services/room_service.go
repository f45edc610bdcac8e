package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"nhatro-backend/internal/apperr"
	"nhatro-backend/models"
)

// RoomService handles room CRUD. Status changes are not exposed here;
// RENTED and MAINTENANCE are owned by the lifecycle managers.
type RoomService struct {
	DB *gorm.DB
}

func NewRoomService(db *gorm.DB) *RoomService {
	return &RoomService{DB: db}
}

type RoomInput struct {
	MotelID      uint    `json:"motelId"`
	RoomNumber   string  `json:"roomNumber"`
	Floor        string  `json:"floor"`
	Area         float64 `json:"area"`
	Price        float64 `json:"price"`
	MaxOccupancy int     `json:"maxOccupancy"`
	Description  string  `json:"description"`
}

// Create adds a room to a motel the actor owns (or any motel for admins).
func (s *RoomService) Create(input RoomInput, actor models.User) (*models.Room, error) {
	if input.MotelID == 0 {
		return nil, apperr.Validation("motelId is required")
	}
	if strings.TrimSpace(input.RoomNumber) == "" {
		return nil, apperr.Validation("roomNumber is required")
	}

	var motel models.Motel
	if err := s.DB.First(&motel, input.MotelID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("motel not found")
		}
		return nil, apperr.Internal(err)
	}

	if d := Decide(actor, []string{models.RoleAdmin}, motel.OwnerID); !d.Allowed {
		return nil, apperr.Forbidden(d.Reason)
	}

	room := models.Room{
		MotelID:      motel.ID,
		RoomNumber:   strings.TrimSpace(input.RoomNumber),
		Floor:        input.Floor,
		Area:         input.Area,
		Price:        input.Price,
		MaxOccupancy: input.MaxOccupancy,
		Description:  input.Description,
		Status:       models.RoomAvailable,
	}
	if err := s.DB.Create(&room).Error; err != nil {
		lc := strings.ToLower(err.Error())
		if strings.Contains(lc, "duplicate") || strings.Contains(lc, "unique") {
			return nil, apperr.Validation("room number already exists in this motel")
		}
		return nil, apperr.Internal(err)
	}
	return &room, nil
}

// List is the public room search: motel and status filters, no auth.
func (s *RoomService) List(motelID uint, status string) ([]models.Room, error) {
	q := s.DB.Model(&models.Room{}).Preload("Motel")
	if motelID != 0 {
		q = q.Where("motel_id = ?", motelID)
	}
	if status != "" {
		q = q.Where("status = ?", status)
	}

	var rooms []models.Room
	if err := q.Order("motel_id, room_number").Find(&rooms).Error; err != nil {
		return nil, apperr.Internal(err)
	}
	return rooms, nil
}

// Get returns one room with its motel.
func (s *RoomService) Get(id uint) (*models.Room, error) {
	var room models.Room
	if err := s.DB.Preload("Motel").First(&room, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("room not found")
		}
		return nil, apperr.Internal(err)
	}
	return &room, nil
}
