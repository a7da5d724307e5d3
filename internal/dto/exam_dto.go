package dto

import (
	"time"

	"github.com/noah-isme/rapor-go-api/internal/models"
)

// ExamCreateRequest describes the payload for scheduling an exam.
type ExamCreateRequest struct {
	ClassID uint       `json:"class_id" validate:"required"`
	Name    string     `json:"name" validate:"required,min=1,max=128"`
	Term    string     `json:"term" validate:"omitempty,max=64"`
	HeldAt  *time.Time `json:"held_at"`
}

// ExamUpdateRequest captures partial updates to an exam.
type ExamUpdateRequest struct {
	Name   *string    `json:"name" validate:"omitempty,min=1,max=128"`
	Term   *string    `json:"term" validate:"omitempty,max=64"`
	HeldAt *time.Time `json:"held_at"`
}

// ExamResponse is the serialized representation returned to API clients.
type ExamResponse struct {
	ID        uint       `json:"id"`
	ClassID   uint       `json:"class_id"`
	Name      string     `json:"name"`
	Term      string     `json:"term"`
	HeldAt    *time.Time `json:"held_at"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// NewExamResponse converts a model into a DTO.
func NewExamResponse(model models.Exam) ExamResponse {
	return ExamResponse{
		ID:        model.ID,
		ClassID:   model.ClassID,
		Name:      model.Name,
		Term:      model.Term,
		HeldAt:    model.HeldAt,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}
}

// NewExamResponseSlice converts a slice of models into DTOs.
func NewExamResponseSlice(exams []models.Exam) []ExamResponse {
	responses := make([]ExamResponse, 0, len(exams))
	for _, exam := range exams {
		responses = append(responses, NewExamResponse(exam))
	}

	return responses
}

// SubjectSettingUpsertRequest overrides a subject's grading basis for an exam.
type SubjectSettingUpsertRequest struct {
	SubjectID     uint     `json:"subject_id" validate:"required"`
	FullMark      float64  `json:"full_mark" validate:"required,gt=0"`
	PassMark      float64  `json:"pass_mark" validate:"gte=0"`
	HasConversion bool     `json:"has_conversion"`
	ConvertToMark *float64 `json:"convert_to_mark" validate:"omitempty,gt=0"`
}

// PartSettingUpsertRequest overrides a single part's grading basis for an exam.
type PartSettingUpsertRequest struct {
	SubjectPartID uint     `json:"subject_part_id" validate:"required"`
	FullMark      float64  `json:"full_mark" validate:"required,gt=0"`
	PassMark      float64  `json:"pass_mark" validate:"gte=0"`
	HasConversion bool     `json:"has_conversion"`
	ConvertToMark *float64 `json:"convert_to_mark" validate:"omitempty,gt=0"`
}

// SubjectSettingResponse serializes an exam-level subject override.
type SubjectSettingResponse struct {
	ID            uint     `json:"id"`
	ExamID        uint     `json:"exam_id"`
	SubjectID     uint     `json:"subject_id"`
	FullMark      float64  `json:"full_mark"`
	PassMark      float64  `json:"pass_mark"`
	HasConversion bool     `json:"has_conversion"`
	ConvertToMark *float64 `json:"convert_to_mark"`
}

// PartSettingResponse serializes an exam-level part override.
type PartSettingResponse struct {
	ID            uint     `json:"id"`
	ExamID        uint     `json:"exam_id"`
	SubjectPartID uint     `json:"subject_part_id"`
	FullMark      float64  `json:"full_mark"`
	PassMark      float64  `json:"pass_mark"`
	HasConversion bool     `json:"has_conversion"`
	ConvertToMark *float64 `json:"convert_to_mark"`
}

// NewSubjectSettingResponse converts a model into a DTO.
func NewSubjectSettingResponse(model models.ExamSubjectSetting) SubjectSettingResponse {
	return SubjectSettingResponse{
		ID:            model.ID,
		ExamID:        model.ExamID,
		SubjectID:     model.SubjectID,
		FullMark:      model.FullMark,
		PassMark:      model.PassMark,
		HasConversion: model.HasConversion,
		ConvertToMark: model.ConvertToMark,
	}
}

// NewPartSettingResponse converts a model into a DTO.
func NewPartSettingResponse(model models.ExamSubjectPartSetting) PartSettingResponse {
	return PartSettingResponse{
		ID:            model.ID,
		ExamID:        model.ExamID,
		SubjectPartID: model.SubjectPartID,
		FullMark:      model.FullMark,
		PassMark:      model.PassMark,
		HasConversion: model.HasConversion,
		ConvertToMark: model.ConvertToMark,
	}
}
