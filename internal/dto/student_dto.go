package dto

import (
	"time"

	"github.com/noah-isme/rapor-go-api/internal/models"
)

// StudentCreateRequest describes the payload for enrolling a student.
type StudentCreateRequest struct {
	ClassID    uint   `json:"class_id" validate:"required"`
	Name       string `json:"name" validate:"required,min=1,max=128"`
	RollNumber string `json:"roll_number" validate:"omitempty,max=32"`
}

// StudentUpdateRequest captures partial updates to a student.
type StudentUpdateRequest struct {
	Name       *string `json:"name" validate:"omitempty,min=1,max=128"`
	RollNumber *string `json:"roll_number" validate:"omitempty,max=32"`
	Status     *string `json:"status" validate:"omitempty,oneof=active inactive"`
}

// StudentResponse is the serialized representation returned to API clients.
type StudentResponse struct {
	ID         uint      `json:"id"`
	ClassID    uint      `json:"class_id"`
	Name       string    `json:"name"`
	RollNumber string    `json:"roll_number"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// NewStudentResponse converts a model into a DTO.
func NewStudentResponse(model models.Student) StudentResponse {
	return StudentResponse{
		ID:         model.ID,
		ClassID:    model.ClassID,
		Name:       model.Name,
		RollNumber: model.RollNumber,
		Status:     model.Status,
		CreatedAt:  model.CreatedAt,
		UpdatedAt:  model.UpdatedAt,
	}
}

// NewStudentResponseSlice converts a slice of models into DTOs.
func NewStudentResponseSlice(students []models.Student) []StudentResponse {
	responses := make([]StudentResponse, 0, len(students))
	for _, student := range students {
		responses = append(responses, NewStudentResponse(student))
	}

	return responses
}
