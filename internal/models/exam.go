package models

import "time"

// Exam is a scheduled assessment for one class.
type Exam struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	ClassID   uint       `gorm:"not null;index" json:"class_id"`
	Name      string     `gorm:"size:128;not null" json:"name"`
	Term      string     `gorm:"size:64" json:"term"`
	HeldAt    *time.Time `json:"held_at"`
	OwnerID   uint       `gorm:"not null;index" json:"owner_id"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// ExamSubjectSetting overrides a subject's grading basis for one exam.
// Unique per (exam, subject).
type ExamSubjectSetting struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	ExamID        uint      `gorm:"not null;uniqueIndex:idx_exam_subject" json:"exam_id"`
	SubjectID     uint      `gorm:"not null;uniqueIndex:idx_exam_subject" json:"subject_id"`
	FullMark      float64   `gorm:"not null" json:"full_mark"`
	PassMark      float64   `gorm:"not null" json:"pass_mark"`
	HasConversion bool      `gorm:"not null;default:false" json:"has_conversion"`
	ConvertToMark *float64  `json:"convert_to_mark"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ExamSubjectPartSetting overrides a single subject part's grading basis for
// one exam. Unique per (exam, part); takes precedence over the subject-level
// setting when present.
type ExamSubjectPartSetting struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	ExamID        uint      `gorm:"not null;uniqueIndex:idx_exam_part" json:"exam_id"`
	SubjectPartID uint      `gorm:"not null;uniqueIndex:idx_exam_part" json:"subject_part_id"`
	FullMark      float64   `gorm:"not null" json:"full_mark"`
	PassMark      float64   `gorm:"not null" json:"pass_mark"`
	HasConversion bool      `gorm:"not null;default:false" json:"has_conversion"`
	ConvertToMark *float64  `json:"convert_to_mark"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
