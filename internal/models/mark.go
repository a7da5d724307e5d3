package models

import "time"

// Mark is one raw entry for a student in a subject (optionally a specific
// part) of an exam. Obtained is on the paper's own scale; Converted is the
// system-scale value maintained by the results engine. Out-of-range legacy
// values may exist in storage; recomputation tolerates them.
type Mark struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	StudentID     uint      `gorm:"not null;uniqueIndex:idx_mark_entry" json:"student_id"`
	SubjectID     uint      `gorm:"not null;uniqueIndex:idx_mark_entry" json:"subject_id"`
	ExamID        uint      `gorm:"not null;uniqueIndex:idx_mark_entry;index" json:"exam_id"`
	SubjectPartID *uint     `gorm:"uniqueIndex:idx_mark_entry" json:"subject_part_id"`
	Obtained      float64   `gorm:"not null" json:"obtained"`
	Converted     float64   `gorm:"not null" json:"converted"`
	EnteredBy     uint      `gorm:"not null" json:"entered_by"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
