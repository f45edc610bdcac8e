package services

import (
	"fmt"

	"gorm.io/gorm"

	"nhatro-backend/models"
)

// Room occupancy rule: the predicates the lifecycle managers consult before
// deriving a room's status. Callers pass the transaction they are running in
// so the checks are serialized with their own writes.

// HasActiveContract reports whether the room currently has a contract with
// status ACTIVE.
func HasActiveContract(tx *gorm.DB, roomID uint) (bool, error) {
	var count int64
	err := tx.Model(&models.Contract{}).
		Where("room_id = ? AND status = ?", roomID, models.ContractActive).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to count active contracts: %w", err)
	}
	return count > 0, nil
}

// HasOpenMaintenance reports whether any maintenance request for the room is
// still PENDING or IN_PROGRESS. excludeID skips one request (the one being
// resolved) and may be zero.
func HasOpenMaintenance(tx *gorm.DB, roomID uint, excludeID uint) (bool, error) {
	q := tx.Model(&models.MaintenanceRequest{}).
		Where("room_id = ? AND status IN ?", roomID, []string{models.MaintenancePending, models.MaintenanceInProgress})
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to count open maintenance requests: %w", err)
	}
	return count > 0, nil
}
