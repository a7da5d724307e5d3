package models

import "time"

// Subject is a graded course within a class. Its FullMark is the default
// grading basis used when an exam carries no override.
type Subject struct {
	ID         uint          `gorm:"primaryKey" json:"id"`
	ClassID    uint          `gorm:"not null;index" json:"class_id"`
	Name       string        `gorm:"size:128;not null" json:"name"`
	Code       string        `gorm:"size:32" json:"code"`
	FullMark   float64       `gorm:"not null;default:100" json:"full_mark"`
	PassMark   float64       `gorm:"not null;default:40" json:"pass_mark"`
	CreditHour float64       `json:"credit_hour"`
	OwnerID    uint          `gorm:"not null;index" json:"owner_id"`
	CreatedAt  time.Time     `json:"created_at"`
	UpdatedAt  time.Time     `json:"updated_at"`
	Parts      []SubjectPart `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"parts,omitempty"`
}

// SubjectPart is a graded subdivision of a subject with its own raw and
// converted scales.
type SubjectPart struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	SubjectID         uint      `gorm:"not null;index" json:"subject_id"`
	Name              string    `gorm:"size:128;not null" json:"name"`
	PartType          string    `gorm:"size:32;not null" json:"part_type"`
	RawFullMark       float64   `gorm:"not null" json:"raw_full_mark"`
	ConvertedFullMark float64   `gorm:"not null" json:"converted_full_mark"`
	PassMark          float64   `gorm:"not null" json:"pass_mark"`
	SortOrder         int       `gorm:"not null;default:0" json:"sort_order"`
	IsActive          bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

const (
	PartTypeTheory     = "theory"
	PartTypePractical  = "practical"
	PartTypeViva       = "viva"
	PartTypeAssignment = "assignment"
	PartTypeProject    = "project"
	PartTypeQuiz       = "quiz"
	PartTypeClassTest  = "classtest"
)

// PartTypeLabel maps part type tags to display labels. Unknown tags fall
// back to the tag itself so new part kinds need no code change.
var PartTypeLabel = map[string]string{
	PartTypeTheory:     "Theory",
	PartTypePractical:  "Practical",
	PartTypeViva:       "Viva",
	PartTypeAssignment: "Assignment",
	PartTypeProject:    "Project",
	PartTypeQuiz:       "Quiz",
	PartTypeClassTest:  "Class Test",
}

// LabelForPartType resolves the display label for a part type tag.
func LabelForPartType(partType string) string {
	if label, ok := PartTypeLabel[partType]; ok {
		return label
	}
	return partType
}
