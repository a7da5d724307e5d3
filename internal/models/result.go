package models

import "time"

// Result is the aggregated outcome for one student in one exam, owned by the
// teacher who triggered the recompute. Rows are created and updated only by
// the recomputation engine, never directly by user actions.
type Result struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	StudentID   uint      `gorm:"not null;uniqueIndex:idx_result_owner" json:"student_id"`
	ExamID      uint      `gorm:"not null;uniqueIndex:idx_result_owner;index" json:"exam_id"`
	CreatedBy   uint      `gorm:"not null;uniqueIndex:idx_result_owner" json:"created_by"`
	Total       float64   `gorm:"not null" json:"total"`
	Percentage  float64   `gorm:"not null" json:"percentage"`
	Grade       string    `gorm:"size:8;not null" json:"grade"`
	Division    string    `gorm:"size:32;not null" json:"division"`
	Rank        int       `gorm:"not null" json:"rank"`
	IsPublished bool      `gorm:"not null;default:false" json:"is_published"`
	ShareToken  *string   `gorm:"size:64;uniqueIndex" json:"share_token,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Student     Student   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"student,omitempty"`
}

// HasShareToken reports whether a share token has already been issued.
// Tokens are generated once at first publish and never rotate.
func (r Result) HasShareToken() bool {
	return r.ShareToken != nil && *r.ShareToken != ""
}
