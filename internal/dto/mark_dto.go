package dto

import (
	"time"

	"github.com/noah-isme/rapor-go-api/internal/models"
)

// MarkEntry is a single raw mark within a batch save.
type MarkEntry struct {
	StudentID     uint    `json:"student_id" validate:"required"`
	SubjectID     uint    `json:"subject_id" validate:"required"`
	SubjectPartID *uint   `json:"subject_part_id"`
	Obtained      float64 `json:"obtained" validate:"gte=0"`
}

// MarkBatchRequest saves a batch of raw marks for one exam and triggers a
// recompute once persisted.
type MarkBatchRequest struct {
	ExamID  uint        `json:"exam_id" validate:"required"`
	Entries []MarkEntry `json:"entries" validate:"required,min=1,dive"`
}

// MarkResponse is the serialized representation returned to API clients.
type MarkResponse struct {
	ID            uint      `json:"id"`
	StudentID     uint      `json:"student_id"`
	SubjectID     uint      `json:"subject_id"`
	ExamID        uint      `json:"exam_id"`
	SubjectPartID *uint     `json:"subject_part_id"`
	Obtained      float64   `json:"obtained"`
	Converted     float64   `json:"converted"`
	EnteredBy     uint      `json:"entered_by"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// NewMarkResponse converts a model into a DTO.
func NewMarkResponse(model models.Mark) MarkResponse {
	return MarkResponse{
		ID:            model.ID,
		StudentID:     model.StudentID,
		SubjectID:     model.SubjectID,
		ExamID:        model.ExamID,
		SubjectPartID: model.SubjectPartID,
		Obtained:      model.Obtained,
		Converted:     model.Converted,
		EnteredBy:     model.EnteredBy,
		UpdatedAt:     model.UpdatedAt,
	}
}

// NewMarkResponseSlice converts a slice of models into DTOs.
func NewMarkResponseSlice(marks []models.Mark) []MarkResponse {
	responses := make([]MarkResponse, 0, len(marks))
	for _, mark := range marks {
		responses = append(responses, NewMarkResponse(mark))
	}

	return responses
}
