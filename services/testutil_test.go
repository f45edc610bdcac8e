package services

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"nhatro-backend/config"
	"nhatro-backend/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, config.Migrate(db))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, role, email string) models.User {
	t.Helper()

	user := models.User{
		FullName: "Test " + role,
		Email:    email,
		Password: "x",
		Role:     role,
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func seedMotel(t *testing.T, db *gorm.DB, ownerID uint) models.Motel {
	t.Helper()

	motel := models.Motel{
		OwnerID: ownerID,
		Name:    "Nha Tro Binh Minh",
		Address: "12 Le Loi, Da Nang",
	}
	require.NoError(t, db.Create(&motel).Error)
	return motel
}

func seedRoom(t *testing.T, db *gorm.DB, motelID uint, number, status string) models.Room {
	t.Helper()

	room := models.Room{
		MotelID:      motelID,
		RoomNumber:   number,
		Price:        3000000,
		MaxOccupancy: 2,
		Status:       status,
	}
	require.NoError(t, db.Create(&room).Error)
	return room
}

func reloadRoom(t *testing.T, db *gorm.DB, id uint) models.Room {
	t.Helper()

	var room models.Room
	require.NoError(t, db.First(&room, id).Error)
	return room
}
