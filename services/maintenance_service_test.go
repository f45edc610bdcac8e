package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"nhatro-backend/internal/apperr"
	"nhatro-backend/models"
)

func seedMaintenance(t *testing.T, db *gorm.DB, roomID, requesterID uint, status string) models.MaintenanceRequest {
	t.Helper()

	request := models.MaintenanceRequest{
		RoomID:        roomID,
		RequestedByID: requesterID,
		Title:         "Leaking faucet",
		Status:        status,
	}
	require.NoError(t, db.Create(&request).Error)
	return request
}

func TestCreateRequestFlipsAvailableRoom(t *testing.T) {
	db := setupTestDB(t)
	svc := NewMaintenanceService(db)

	tenant := seedUser(t, db, models.RoleTenant, "tenant@test.local")
	landlord := seedUser(t, db, models.RoleLandlord, "landlord@test.local")
	motel := seedMotel(t, db, landlord.ID)
	room := seedRoom(t, db, motel.ID, "101", models.RoomAvailable)

	request, err := svc.CreateRequest(MaintenanceInput{RoomID: room.ID, Title: "Broken lock"}, tenant)
	require.NoError(t, err)
	assert.Equal(t, models.MaintenancePending, request.Status)
	assert.Equal(t, models.RoomMaintenance, reloadRoom(t, db, room.ID).Status)
}

func TestCreateRequestKeepsRentedRoom(t *testing.T) {
	db := setupTestDB(t)
	svc := NewMaintenanceService(db)

	tenant := seedUser(t, db, models.RoleTenant, "tenant@test.local")
	landlord := seedUser(t, db, models.RoleLandlord, "landlord@test.local")
	motel := seedMotel(t, db, landlord.ID)
	room := seedRoom(t, db, motel.ID, "101", models.RoomRented)

	_, err := svc.CreateRequest(MaintenanceInput{RoomID: room.ID, Title: "Broken lock"}, tenant)
	require.NoError(t, err)
	assert.Equal(t, models.RoomRented, reloadRoom(t, db, room.ID).Status)
}

func TestResolveLastRequestFreesRoom(t *testing.T) {
	db := setupTestDB(t)
	svc := NewMaintenanceService(db)

	tenant := seedUser(t, db, models.RoleTenant, "tenant@test.local")
	landlord := seedUser(t, db, models.RoleLandlord, "landlord@test.local")
	motel := seedMotel(t, db, landlord.ID)
	room := seedRoom(t, db, motel.ID, "101", models.RoomMaintenance)
	request := seedMaintenance(t, db, room.ID, tenant.ID, models.MaintenancePending)

	updated, err := svc.UpdateStatus(request.ID, MaintenanceUpdate{
		Status:          models.MaintenanceResolved,
		ResolutionNotes: "Replaced washer",
	}, landlord)
	require.NoError(t, err)

	assert.Equal(t, models.MaintenanceResolved, updated.Status)
	require.NotNil(t, updated.ResolvedAt)
	assert.Equal(t, "Replaced washer", updated.ResolutionNotes)
	assert.Equal(t, models.RoomAvailable, reloadRoom(t, db, room.ID).Status)
}

func TestResolveWithRemainingOpenKeepsMaintenance(t *testing.T) {
	db := setupTestDB(t)
	svc := NewMaintenanceService(db)

	tenant := seedUser(t, db, models.RoleTenant, "tenant@test.local")
	landlord := seedUser(t, db, models.RoleLandlord, "landlord@test.local")
	motel := seedMotel(t, db, landlord.ID)
	room := seedRoom(t, db, motel.ID, "101", models.RoomMaintenance)
	first := seedMaintenance(t, db, room.ID, tenant.ID, models.MaintenancePending)
	seedMaintenance(t, db, room.ID, tenant.ID, models.MaintenanceInProgress)

	_, err := svc.UpdateStatus(first.ID, MaintenanceUpdate{Status: models.MaintenanceResolved}, landlord)
	require.NoError(t, err)
	assert.Equal(t, models.RoomMaintenance, reloadRoom(t, db, room.ID).Status)
}

// Resolving a ticket on a RENTED room must never touch the room status: the
// cleanup only clears a status maintenance itself set.
func TestResolveOnRentedRoomKeepsRented(t *testing.T) {
	db := setupTestDB(t)
	svc := NewMaintenanceService(db)

	tenant := seedUser(t, db, models.RoleTenant, "tenant@test.local")
	landlord := seedUser(t, db, models.RoleLandlord, "landlord@test.local")
	motel := seedMotel(t, db, landlord.ID)
	room := seedRoom(t, db, motel.ID, "101", models.RoomRented)
	request := seedMaintenance(t, db, room.ID, tenant.ID, models.MaintenancePending)

	_, err := svc.UpdateStatus(request.ID, MaintenanceUpdate{Status: models.MaintenanceResolved}, landlord)
	require.NoError(t, err)
	assert.Equal(t, models.RoomRented, reloadRoom(t, db, room.ID).Status)
}

func TestUpdateStatusForbiddenForRequester(t *testing.T) {
	db := setupTestDB(t)
	svc := NewMaintenanceService(db)

	tenant := seedUser(t, db, models.RoleTenant, "tenant@test.local")
	landlord := seedUser(t, db, models.RoleLandlord, "landlord@test.local")
	motel := seedMotel(t, db, landlord.ID)
	room := seedRoom(t, db, motel.ID, "101", models.RoomMaintenance)
	request := seedMaintenance(t, db, room.ID, tenant.ID, models.MaintenancePending)

	_, err := svc.UpdateStatus(request.ID, MaintenanceUpdate{Status: models.MaintenanceResolved}, tenant)
	require.Error(t, err)
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))
}

func TestUpdateStatusTransitions(t *testing.T) {
	db := setupTestDB(t)
	svc := NewMaintenanceService(db)

	tenant := seedUser(t, db, models.RoleTenant, "tenant@test.local")
	landlord := seedUser(t, db, models.RoleLandlord, "landlord@test.local")
	motel := seedMotel(t, db, landlord.ID)
	room := seedRoom(t, db, motel.ID, "101", models.RoomMaintenance)

	// Terminal statuses accept no further transitions.
	resolved := seedMaintenance(t, db, room.ID, tenant.ID, models.MaintenanceResolved)
	_, err := svc.UpdateStatus(resolved.ID, MaintenanceUpdate{Status: models.MaintenanceInProgress}, landlord)
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	// Unknown status values are rejected.
	pending := seedMaintenance(t, db, room.ID, tenant.ID, models.MaintenancePending)
	_, err = svc.UpdateStatus(pending.ID, MaintenanceUpdate{Status: "DONE"}, landlord)
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	// Skipping IN_PROGRESS is allowed.
	_, err = svc.UpdateStatus(pending.ID, MaintenanceUpdate{Status: models.MaintenanceCancelled}, landlord)
	require.NoError(t, err)
}

func TestUpdateStatusNotFound(t *testing.T) {
	db := setupTestDB(t)
	svc := NewMaintenanceService(db)

	admin := seedUser(t, db, models.RoleAdmin, "admin@test.local")

	_, err := svc.UpdateStatus(12345, MaintenanceUpdate{Status: models.MaintenanceResolved}, admin)
	require.Error(t, err)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestUpdateStatusSetsCostFields(t *testing.T) {
	db := setupTestDB(t)
	svc := NewMaintenanceService(db)

	tenant := seedUser(t, db, models.RoleTenant, "tenant@test.local")
	landlord := seedUser(t, db, models.RoleLandlord, "landlord@test.local")
	staff := seedUser(t, db, models.RoleStaff, "staff@test.local")
	motel := seedMotel(t, db, landlord.ID)
	room := seedRoom(t, db, motel.ID, "101", models.RoomMaintenance)
	request := seedMaintenance(t, db, room.ID, tenant.ID, models.MaintenancePending)

	estimated := 150000.0
	updated, err := svc.UpdateStatus(request.ID, MaintenanceUpdate{
		Status:        models.MaintenanceInProgress,
		AssignedToID:  &staff.ID,
		EstimatedCost: &estimated,
	}, staff)
	require.NoError(t, err)

	assert.Equal(t, models.MaintenanceInProgress, updated.Status)
	require.NotNil(t, updated.AssignedToID)
	assert.Equal(t, staff.ID, *updated.AssignedToID)
	require.NotNil(t, updated.EstimatedCost)
	assert.Equal(t, estimated, *updated.EstimatedCost)
	assert.Nil(t, updated.ResolvedAt)
}
