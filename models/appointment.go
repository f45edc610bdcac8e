package models

import (
	"time"

	"gorm.io/gorm"
)

// Appointment statuses. COMPLETED and CANCELLED are terminal.
const (
	AppointmentPending   = "PENDING"
	AppointmentConfirmed = "CONFIRMED"
	AppointmentCancelled = "CANCELLED"
	AppointmentCompleted = "COMPLETED"
)

var AppointmentTransitions = []StatusTransition{
	{Src: AppointmentPending, Dst: AppointmentConfirmed},
	{Src: AppointmentPending, Dst: AppointmentCancelled},
	{Src: AppointmentConfirmed, Dst: AppointmentCompleted},
	{Src: AppointmentConfirmed, Dst: AppointmentCancelled},
}

// Appointment is a room-viewing booking. Either UserID is set (registered
// requester) or the Guest* contact fields identify the requester.
type Appointment struct {
	gorm.Model

	RoomID uint  `json:"roomId" gorm:"column:room_id;index"`
	UserID *uint `json:"userId,omitempty" gorm:"column:user_id;index"`

	GuestName  string `json:"guestName,omitempty" gorm:"column:guest_name;type:varchar(255)"`
	GuestPhone string `json:"guestPhone,omitempty" gorm:"column:guest_phone;type:varchar(20)"`
	GuestEmail string `json:"guestEmail,omitempty" gorm:"column:guest_email;type:varchar(255)"`

	ScheduledAt time.Time `json:"scheduledAt" gorm:"column:scheduled_at"`
	Status      string    `json:"status" gorm:"type:varchar(20);default:PENDING;index"`
	Note        string    `json:"note,omitempty" gorm:"type:text"`

	Room Room `gorm:"foreignKey:RoomID" json:"room,omitempty"`
}
