// file: models/room.go
package models

import (
	"time"
)

// Room is a curated, unordered set of challenges grouped for presentation.
type Room struct {
	ID          uint32      `gorm:"primarykey" json:"id"`
	Name        string      `gorm:"size:100;unique;not null" json:"name"`
	Description string      `gorm:"type:text" json:"description,omitempty"`
	IsActive    bool        `gorm:"not null;default:true" json:"is_active"`
	CreatedBy   string      `gorm:"type:char(36)" json:"created_by,omitempty"`
	Challenges  []Challenge `gorm:"many2many:room_challenges" json:"challenges,omitempty"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

func (Room) TableName() string {
	return "rooms"
}
