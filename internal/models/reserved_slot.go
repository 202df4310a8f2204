package models

import "time"

type ReservedSlot struct {
	ID uint `gorm:"primaryKey" json:"id"`

	// At most one reservation per slot.
	SlotID uint          `gorm:"not null;uniqueIndex" json:"slot_id"`
	Slot   AvailableSlot `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"slot"`

	UserID uint `gorm:"not null;index" json:"user_id"`
	User   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	// Presence is true until staff records a no-show.
	Presence bool `gorm:"not null" json:"presence"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
