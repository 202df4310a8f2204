package models

import (
	"time"

	"gorm.io/gorm"
)

// AvailableSlot is a bookable window published by staff.
type AvailableSlot struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	WasherID uint   `gorm:"not null;index" json:"washer_id"`
	Washer   Washer `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"washer"`

	Start           time.Time `gorm:"column:start_at;not null;index" json:"start"`
	DurationSeconds int64     `gorm:"not null" json:"duration_seconds"`
	// EndAt is Start + duration, kept in sync by BeforeSave for range queries.
	EndAt time.Time `gorm:"column:end_at;not null;index" json:"end"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (s *AvailableSlot) Duration() time.Duration {
	return time.Duration(s.DurationSeconds) * time.Second
}

func (s *AvailableSlot) SetDuration(d time.Duration) {
	s.DurationSeconds = int64(d / time.Second)
}

func (s *AvailableSlot) End() time.Time {
	return s.Start.Add(s.Duration())
}

func (s *AvailableSlot) BeforeSave(tx *gorm.DB) error {
	s.Start = s.Start.UTC()
	s.EndAt = s.End()
	return nil
}
