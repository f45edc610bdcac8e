package models

import (
	"gorm.io/gorm"
)

type Motel struct {
	gorm.Model

	OwnerID uint   `json:"ownerId" gorm:"column:owner_id;index"`
	Name    string `json:"name" gorm:"type:varchar(255)"`
	Address string `json:"address" gorm:"type:varchar(500)"`

	Owner User   `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	Rooms []Room `gorm:"foreignKey:MotelID" json:"rooms,omitempty"`
}
