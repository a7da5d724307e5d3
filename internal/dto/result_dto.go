package dto

import (
	"time"

	"github.com/noah-isme/rapor-go-api/internal/models"
)

// ResultResponse is the serialized result row for teacher-facing tables.
type ResultResponse struct {
	ID          uint      `json:"id"`
	StudentID   uint      `json:"student_id"`
	StudentName string    `json:"student_name"`
	ExamID      uint      `json:"exam_id"`
	Total       float64   `json:"total"`
	Percentage  float64   `json:"percentage"`
	Grade       string    `json:"grade"`
	Division    string    `json:"division"`
	Rank        int       `json:"rank"`
	IsPublished bool      `json:"is_published"`
	ShareToken  *string   `json:"share_token,omitempty"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// PublicResultResponse is the reduced view exposed through a share token.
// The token itself is the lookup key and is not echoed back.
type PublicResultResponse struct {
	StudentName string  `json:"student_name"`
	ExamID      uint    `json:"exam_id"`
	Total       float64 `json:"total"`
	Percentage  float64 `json:"percentage"`
	Grade       string  `json:"grade"`
	Division    string  `json:"division"`
	Rank        int     `json:"rank"`
}

// PublishToggleRequest flips the publish flag for all of a teacher's result
// rows in an exam.
type PublishToggleRequest struct {
	Publish bool `json:"publish"`
}

// NewResultResponse converts a model into a DTO.
func NewResultResponse(model models.Result) ResultResponse {
	return ResultResponse{
		ID:          model.ID,
		StudentID:   model.StudentID,
		StudentName: model.Student.Name,
		ExamID:      model.ExamID,
		Total:       model.Total,
		Percentage:  model.Percentage,
		Grade:       model.Grade,
		Division:    model.Division,
		Rank:        model.Rank,
		IsPublished: model.IsPublished,
		ShareToken:  model.ShareToken,
		UpdatedAt:   model.UpdatedAt,
	}
}

// NewResultResponseSlice converts a slice of models into DTOs.
func NewResultResponseSlice(results []models.Result) []ResultResponse {
	responses := make([]ResultResponse, 0, len(results))
	for _, result := range results {
		responses = append(responses, NewResultResponse(result))
	}

	return responses
}

// NewPublicResultResponse builds the public token view of a result.
func NewPublicResultResponse(model models.Result) PublicResultResponse {
	return PublicResultResponse{
		StudentName: model.Student.Name,
		ExamID:      model.ExamID,
		Total:       model.Total,
		Percentage:  model.Percentage,
		Grade:       model.Grade,
		Division:    model.Division,
		Rank:        model.Rank,
	}
}
