package models

import "time"

// Student is a member of a class whose marks feed the results engine.
type Student struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	ClassID    uint      `gorm:"not null;index" json:"class_id"`
	Name       string    `gorm:"size:128;not null" json:"name"`
	RollNumber string    `gorm:"size:32" json:"roll_number"`
	Status     string    `gorm:"size:32;not null;default:active" json:"status"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

const (
	// StudentStatusActive marks a student currently enrolled in the class.
	StudentStatusActive = "active"
	// StudentStatusInactive marks a student who has left or been suspended.
	StudentStatusInactive = "inactive"
)
