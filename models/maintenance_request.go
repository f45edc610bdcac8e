package models

import (
	"time"

	"gorm.io/gorm"
)

// Maintenance request statuses. RESOLVED and CANCELLED are terminal.
const (
	MaintenancePending    = "PENDING"
	MaintenanceInProgress = "IN_PROGRESS"
	MaintenanceResolved   = "RESOLVED"
	MaintenanceCancelled  = "CANCELLED"
)

// MaintenanceTransitions lists every valid status change. Skipping
// IN_PROGRESS is allowed; nothing leaves a terminal status.
var MaintenanceTransitions = []StatusTransition{
	{Src: MaintenancePending, Dst: MaintenanceInProgress},
	{Src: MaintenancePending, Dst: MaintenanceResolved},
	{Src: MaintenancePending, Dst: MaintenanceCancelled},
	{Src: MaintenanceInProgress, Dst: MaintenanceResolved},
	{Src: MaintenanceInProgress, Dst: MaintenanceCancelled},
}

type MaintenanceRequest struct {
	gorm.Model

	RoomID        uint  `json:"roomId" gorm:"column:room_id;index"`
	RequestedByID uint  `json:"requestedById" gorm:"column:requested_by_id;index"`
	AssignedToID  *uint `json:"assignedToId,omitempty" gorm:"column:assigned_to_id"`

	Title       string `json:"title" gorm:"type:varchar(255)"`
	Description string `json:"description" gorm:"type:text"`
	Status      string `json:"status" gorm:"type:varchar(20);default:PENDING;index"`

	EstimatedCost   *float64   `json:"estimatedCost,omitempty" gorm:"column:estimated_cost"`
	ActualCost      *float64   `json:"actualCost,omitempty" gorm:"column:actual_cost"`
	ResolutionNotes string     `json:"resolutionNotes,omitempty" gorm:"column:resolution_notes;type:text"`
	ResolvedAt      *time.Time `json:"resolvedAt,omitempty" gorm:"column:resolved_at"`

	Room        Room `gorm:"foreignKey:RoomID" json:"room,omitempty"`
	RequestedBy User `gorm:"foreignKey:RequestedByID" json:"requestedBy,omitempty"`
}

// IsOpen reports whether the request still counts toward the room's
// maintenance state.
func (m *MaintenanceRequest) IsOpen() bool {
	return m.Status == MaintenancePending || m.Status == MaintenanceInProgress
}
