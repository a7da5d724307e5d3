package dto

import (
	"time"

	"github.com/noah-isme/rapor-go-api/internal/models"
)

// SubjectCreateRequest describes the payload for creating a subject.
type SubjectCreateRequest struct {
	ClassID    uint    `json:"class_id" validate:"required"`
	Name       string  `json:"name" validate:"required,min=1,max=128"`
	Code       string  `json:"code" validate:"omitempty,max=32"`
	FullMark   float64 `json:"full_mark" validate:"required,gt=0"`
	PassMark   float64 `json:"pass_mark" validate:"gte=0"`
	CreditHour float64 `json:"credit_hour" validate:"gte=0"`
}

// SubjectUpdateRequest captures partial updates to a subject.
type SubjectUpdateRequest struct {
	Name       *string  `json:"name" validate:"omitempty,min=1,max=128"`
	Code       *string  `json:"code" validate:"omitempty,max=32"`
	FullMark   *float64 `json:"full_mark" validate:"omitempty,gt=0"`
	PassMark   *float64 `json:"pass_mark" validate:"omitempty,gte=0"`
	CreditHour *float64 `json:"credit_hour" validate:"omitempty,gte=0"`
}

// SubjectPartCreateRequest describes the payload for adding a part to a subject.
type SubjectPartCreateRequest struct {
	Name              string  `json:"name" validate:"required,min=1,max=128"`
	PartType          string  `json:"part_type" validate:"required,max=32"`
	RawFullMark       float64 `json:"raw_full_mark" validate:"required,gt=0"`
	ConvertedFullMark float64 `json:"converted_full_mark" validate:"required,gt=0"`
	PassMark          float64 `json:"pass_mark" validate:"gte=0"`
	SortOrder         int     `json:"sort_order"`
}

// SubjectPartUpdateRequest captures partial updates to a subject part.
type SubjectPartUpdateRequest struct {
	Name              *string  `json:"name" validate:"omitempty,min=1,max=128"`
	PartType          *string  `json:"part_type" validate:"omitempty,max=32"`
	RawFullMark       *float64 `json:"raw_full_mark" validate:"omitempty,gt=0"`
	ConvertedFullMark *float64 `json:"converted_full_mark" validate:"omitempty,gt=0"`
	PassMark          *float64 `json:"pass_mark" validate:"omitempty,gte=0"`
	SortOrder         *int     `json:"sort_order"`
	IsActive          *bool    `json:"is_active"`
}

// SubjectPartResponse serializes a subject part.
type SubjectPartResponse struct {
	ID                uint    `json:"id"`
	SubjectID         uint    `json:"subject_id"`
	Name              string  `json:"name"`
	PartType          string  `json:"part_type"`
	PartTypeLabel     string  `json:"part_type_label"`
	RawFullMark       float64 `json:"raw_full_mark"`
	ConvertedFullMark float64 `json:"converted_full_mark"`
	PassMark          float64 `json:"pass_mark"`
	SortOrder         int     `json:"sort_order"`
	IsActive          bool    `json:"is_active"`
}

// SubjectResponse is the serialized representation returned to API clients.
type SubjectResponse struct {
	ID         uint                  `json:"id"`
	ClassID    uint                  `json:"class_id"`
	Name       string                `json:"name"`
	Code       string                `json:"code"`
	FullMark   float64               `json:"full_mark"`
	PassMark   float64               `json:"pass_mark"`
	CreditHour float64               `json:"credit_hour"`
	Parts      []SubjectPartResponse `json:"parts"`
	CreatedAt  time.Time             `json:"created_at"`
	UpdatedAt  time.Time             `json:"updated_at"`
}

// NewSubjectPartResponse converts a model into a DTO.
func NewSubjectPartResponse(model models.SubjectPart) SubjectPartResponse {
	return SubjectPartResponse{
		ID:                model.ID,
		SubjectID:         model.SubjectID,
		Name:              model.Name,
		PartType:          model.PartType,
		PartTypeLabel:     models.LabelForPartType(model.PartType),
		RawFullMark:       model.RawFullMark,
		ConvertedFullMark: model.ConvertedFullMark,
		PassMark:          model.PassMark,
		SortOrder:         model.SortOrder,
		IsActive:          model.IsActive,
	}
}

// NewSubjectResponse converts a model into a DTO.
func NewSubjectResponse(model models.Subject) SubjectResponse {
	parts := make([]SubjectPartResponse, 0, len(model.Parts))
	for _, part := range model.Parts {
		parts = append(parts, NewSubjectPartResponse(part))
	}

	return SubjectResponse{
		ID:         model.ID,
		ClassID:    model.ClassID,
		Name:       model.Name,
		Code:       model.Code,
		FullMark:   model.FullMark,
		PassMark:   model.PassMark,
		CreditHour: model.CreditHour,
		Parts:      parts,
		CreatedAt:  model.CreatedAt,
		UpdatedAt:  model.UpdatedAt,
	}
}

// NewSubjectResponseSlice converts a slice of models into DTOs.
func NewSubjectResponseSlice(subjects []models.Subject) []SubjectResponse {
	responses := make([]SubjectResponse, 0, len(subjects))
	for _, subject := range subjects {
		responses = append(responses, NewSubjectResponse(subject))
	}

	return responses
}

// SubjectPreviewRequest carries what-if part marks for the subject calculator.
type SubjectPreviewRequest struct {
	PartMarks []SubjectPreviewMark `json:"part_marks" validate:"required,min=1,dive"`
}

// SubjectPreviewMark is one hypothetical part entry.
type SubjectPreviewMark struct {
	PartID   uint    `json:"part_id" validate:"required"`
	Obtained float64 `json:"obtained" validate:"gte=0"`
}

// SubjectPreviewPart serializes one computed part outcome.
type SubjectPreviewPart struct {
	PartID            uint    `json:"part_id"`
	Name              string  `json:"name"`
	Obtained          float64 `json:"obtained"`
	Converted         float64 `json:"converted"`
	ConvertedFullMark float64 `json:"converted_full_mark"`
	Percentage        float64 `json:"percentage"`
	Passed            bool    `json:"passed"`
	Grade             string  `json:"grade"`
}

// SubjectPreviewResponse serializes the computed subject outcome.
type SubjectPreviewResponse struct {
	TotalObtained  float64              `json:"total_obtained"`
	TotalConverted float64              `json:"total_converted"`
	TotalFullMark  float64              `json:"total_full_mark"`
	Percentage     float64              `json:"percentage"`
	Passed         bool                 `json:"passed"`
	Grade          string               `json:"grade"`
	Division       string               `json:"division"`
	Parts          []SubjectPreviewPart `json:"parts"`
}
