package dto

import (
	"time"

	"github.com/noah-isme/rapor-go-api/internal/models"
)

// ClassCreateRequest describes the payload for creating a class.
type ClassCreateRequest struct {
	Name    string `json:"name" validate:"required,min=1,max=128"`
	Section string `json:"section" validate:"omitempty,max=32"`
}

// ClassUpdateRequest captures partial updates to a class.
type ClassUpdateRequest struct {
	Name    *string `json:"name" validate:"omitempty,min=1,max=128"`
	Section *string `json:"section" validate:"omitempty,max=32"`
}

// ClassResponse is the serialized representation returned to API clients.
type ClassResponse struct {
	ID           uint      `json:"id"`
	Name         string    `json:"name"`
	Section      string    `json:"section"`
	StudentCount int       `json:"student_count"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NewClassResponse converts a model into a DTO.
func NewClassResponse(model models.Class) ClassResponse {
	return ClassResponse{
		ID:           model.ID,
		Name:         model.Name,
		Section:      model.Section,
		StudentCount: len(model.Students),
		CreatedAt:    model.CreatedAt,
		UpdatedAt:    model.UpdatedAt,
	}
}

// NewClassResponseSlice converts a slice of models into DTOs.
func NewClassResponseSlice(classes []models.Class) []ClassResponse {
	responses := make([]ClassResponse, 0, len(classes))
	for _, class := range classes {
		responses = append(responses, NewClassResponse(class))
	}

	return responses
}
