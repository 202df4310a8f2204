package models

import "time"

type User struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	Username     string `gorm:"size:150;uniqueIndex;not null" json:"username"`
	Email        string `gorm:"size:254" json:"email"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`
	Name         string `gorm:"size:150" json:"name"`

	// Bolsista marks staff members.
	Bolsista   bool   `gorm:"not null" json:"bolsista"`
	Enrollment string `gorm:"size:64" json:"enrollment"`
	Apartment  string `gorm:"size:64" json:"apartment"`
	Phone      string `gorm:"size:64" json:"phone"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
