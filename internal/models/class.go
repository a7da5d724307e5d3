package models

import "time"

// Class groups the students a teacher manages and the subjects they sit.
type Class struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:128;not null" json:"name"`
	Section   string    `gorm:"size:32" json:"section"`
	OwnerID   uint      `gorm:"not null;index" json:"owner_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Students  []Student `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"students,omitempty"`
	Subjects  []Subject `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"subjects,omitempty"`
}
