package models

import (
	"gorm.io/gorm"
)

// Room statuses. RENTED and MAINTENANCE are derived from contract and
// maintenance state; only the lifecycle managers flip them.
const (
	RoomAvailable   = "AVAILABLE"
	RoomRented      = "RENTED"
	RoomMaintenance = "MAINTENANCE"
)

type Room struct {
	gorm.Model

	MotelID    uint   `json:"motelId" gorm:"column:motel_id;index;uniqueIndex:idx_motel_room_number"`
	RoomNumber string `json:"roomNumber" gorm:"column:room_number;uniqueIndex:idx_motel_room_number;type:varchar(50)"`

	Floor        string  `json:"floor" gorm:"type:varchar(10)"`
	Area         float64 `json:"area"`
	Price        float64 `json:"price"`
	MaxOccupancy int     `json:"maxOccupancy" gorm:"column:max_occupancy"`
	Description  string  `json:"description" gorm:"type:text"`
	Status       string  `json:"status" gorm:"type:varchar(20);default:AVAILABLE"`

	Motel Motel `gorm:"foreignKey:MotelID" json:"motel,omitempty"`
}
