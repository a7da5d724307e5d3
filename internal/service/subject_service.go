package service

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/noah-isme/rapor-go-api/internal/dto"
	"github.com/noah-isme/rapor-go-api/internal/grading"
	"github.com/noah-isme/rapor-go-api/internal/models"
	"github.com/noah-isme/rapor-go-api/internal/repository"
)

var (
	// ErrSubjectNotFound indicates the subject id does not resolve to a row.
	ErrSubjectNotFound = errors.New("subject not found")
	// ErrSubjectPartNotFound indicates the part id does not resolve to a row.
	ErrSubjectPartNotFound = errors.New("subject part not found")
)

// SubjectService manages subjects, their graded parts, and the what-if
// calculator that previews a subject outcome from hypothetical part marks.
type SubjectService interface {
	ListByClass(ctx context.Context, classID, teacherID uint) ([]dto.SubjectResponse, error)
	Get(ctx context.Context, id, teacherID uint) (dto.SubjectResponse, error)
	Create(ctx context.Context, teacherID uint, req dto.SubjectCreateRequest) (dto.SubjectResponse, error)
	Update(ctx context.Context, id, teacherID uint, req dto.SubjectUpdateRequest) (dto.SubjectResponse, error)
	Delete(ctx context.Context, id, teacherID uint) error

	CreatePart(ctx context.Context, subjectID, teacherID uint, req dto.SubjectPartCreateRequest) (dto.SubjectPartResponse, error)
	UpdatePart(ctx context.Context, partID, teacherID uint, req dto.SubjectPartUpdateRequest) (dto.SubjectPartResponse, error)
	DeletePart(ctx context.Context, partID, teacherID uint) error

	Preview(ctx context.Context, subjectID, teacherID uint, req dto.SubjectPreviewRequest) (dto.SubjectPreviewResponse, error)
}

type subjectService struct {
	subjects  repository.SubjectRepository
	classes   repository.ClassRepository
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewSubjectService constructs the subject service.
func NewSubjectService(
	subjects repository.SubjectRepository,
	classes repository.ClassRepository,
	validate *validator.Validate,
	logger zerolog.Logger,
) SubjectService {
	return &subjectService{
		subjects:  subjects,
		classes:   classes,
		validator: validate,
		logger:    logger.With().Str("component", "subject_service").Logger(),
	}
}

func (s *subjectService) ListByClass(ctx context.Context, classID, teacherID uint) ([]dto.SubjectResponse, error) {
	if err := s.checkClassOwner(ctx, classID, teacherID); err != nil {
		return nil, err
	}

	subjects, err := s.subjects.ListByClass(ctx, classID)
	if err != nil {
		return nil, err
	}

	return dto.NewSubjectResponseSlice(subjects), nil
}

func (s *subjectService) Get(ctx context.Context, id, teacherID uint) (dto.SubjectResponse, error) {
	subject, err := s.ownedSubject(ctx, id, teacherID)
	if err != nil {
		return dto.SubjectResponse{}, err
	}

	return dto.NewSubjectResponse(subject), nil
}

func (s *subjectService) Create(ctx context.Context, teacherID uint, req dto.SubjectCreateRequest) (dto.SubjectResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.SubjectResponse{}, err
	}
	if err := s.checkClassOwner(ctx, req.ClassID, teacherID); err != nil {
		return dto.SubjectResponse{}, err
	}

	subject := models.Subject{
		ClassID:    req.ClassID,
		Name:       req.Name,
		Code:       req.Code,
		FullMark:   req.FullMark,
		PassMark:   req.PassMark,
		CreditHour: req.CreditHour,
		OwnerID:    teacherID,
	}
	if err := s.subjects.Create(ctx, &subject); err != nil {
		return dto.SubjectResponse{}, err
	}

	s.logger.Info().Uint("subject_id", subject.ID).Uint("class_id", subject.ClassID).Msg("subject created")

	return dto.NewSubjectResponse(subject), nil
}

func (s *subjectService) Update(ctx context.Context, id, teacherID uint, req dto.SubjectUpdateRequest) (dto.SubjectResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.SubjectResponse{}, err
	}

	subject, err := s.ownedSubject(ctx, id, teacherID)
	if err != nil {
		return dto.SubjectResponse{}, err
	}

	if req.Name != nil {
		subject.Name = *req.Name
	}
	if req.Code != nil {
		subject.Code = *req.Code
	}
	if req.FullMark != nil {
		subject.FullMark = *req.FullMark
	}
	if req.PassMark != nil {
		subject.PassMark = *req.PassMark
	}
	if req.CreditHour != nil {
		subject.CreditHour = *req.CreditHour
	}

	if err := s.subjects.Update(ctx, &subject); err != nil {
		return dto.SubjectResponse{}, err
	}

	return dto.NewSubjectResponse(subject), nil
}

func (s *subjectService) Delete(ctx context.Context, id, teacherID uint) error {
	if _, err := s.ownedSubject(ctx, id, teacherID); err != nil {
		return err
	}

	return s.subjects.Delete(ctx, id)
}

func (s *subjectService) CreatePart(ctx context.Context, subjectID, teacherID uint, req dto.SubjectPartCreateRequest) (dto.SubjectPartResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.SubjectPartResponse{}, err
	}
	if _, err := s.ownedSubject(ctx, subjectID, teacherID); err != nil {
		return dto.SubjectPartResponse{}, err
	}

	part := models.SubjectPart{
		SubjectID:         subjectID,
		Name:              req.Name,
		PartType:          req.PartType,
		RawFullMark:       req.RawFullMark,
		ConvertedFullMark: req.ConvertedFullMark,
		PassMark:          req.PassMark,
		SortOrder:         req.SortOrder,
		IsActive:          true,
	}
	if err := s.subjects.CreatePart(ctx, &part); err != nil {
		return dto.SubjectPartResponse{}, err
	}

	return dto.NewSubjectPartResponse(part), nil
}

func (s *subjectService) UpdatePart(ctx context.Context, partID, teacherID uint, req dto.SubjectPartUpdateRequest) (dto.SubjectPartResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.SubjectPartResponse{}, err
	}

	part, err := s.ownedPart(ctx, partID, teacherID)
	if err != nil {
		return dto.SubjectPartResponse{}, err
	}

	if req.Name != nil {
		part.Name = *req.Name
	}
	if req.PartType != nil {
		part.PartType = *req.PartType
	}
	if req.RawFullMark != nil {
		part.RawFullMark = *req.RawFullMark
	}
	if req.ConvertedFullMark != nil {
		part.ConvertedFullMark = *req.ConvertedFullMark
	}
	if req.PassMark != nil {
		part.PassMark = *req.PassMark
	}
	if req.SortOrder != nil {
		part.SortOrder = *req.SortOrder
	}
	if req.IsActive != nil {
		part.IsActive = *req.IsActive
	}

	if err := s.subjects.UpdatePart(ctx, &part); err != nil {
		return dto.SubjectPartResponse{}, err
	}

	return dto.NewSubjectPartResponse(part), nil
}

func (s *subjectService) DeletePart(ctx context.Context, partID, teacherID uint) error {
	if _, err := s.ownedPart(ctx, partID, teacherID); err != nil {
		return err
	}

	return s.subjects.DeletePart(ctx, partID)
}

// Preview runs the subject calculator without persisting anything.
func (s *subjectService) Preview(ctx context.Context, subjectID, teacherID uint, req dto.SubjectPreviewRequest) (dto.SubjectPreviewResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.SubjectPreviewResponse{}, err
	}

	subject, err := s.ownedSubject(ctx, subjectID, teacherID)
	if err != nil {
		return dto.SubjectPreviewResponse{}, err
	}

	parts := make([]grading.Part, 0, len(subject.Parts))
	for _, part := range subject.Parts {
		parts = append(parts, grading.Part{
			ID:                part.ID,
			Name:              part.Name,
			RawFullMark:       part.RawFullMark,
			ConvertedFullMark: part.ConvertedFullMark,
			PassMark:          part.PassMark,
			IsActive:          part.IsActive,
		})
	}

	marks := make([]grading.PartMark, 0, len(req.PartMarks))
	for _, mark := range req.PartMarks {
		marks = append(marks, grading.PartMark{PartID: mark.PartID, Obtained: mark.Obtained})
	}

	result := grading.CalculateSubjectResult(parts, marks)

	previewParts := make([]dto.SubjectPreviewPart, 0, len(result.Parts))
	for _, part := range result.Parts {
		previewParts = append(previewParts, dto.SubjectPreviewPart{
			PartID:            part.PartID,
			Name:              part.Name,
			Obtained:          part.Obtained,
			Converted:         part.Converted,
			ConvertedFullMark: part.ConvertedFullMark,
			Percentage:        part.Percentage,
			Passed:            part.Passed,
			Grade:             part.Grade,
		})
	}

	return dto.SubjectPreviewResponse{
		TotalObtained:  result.TotalObtained,
		TotalConverted: result.TotalConverted,
		TotalFullMark:  result.TotalFullMark,
		Percentage:     result.Percentage,
		Passed:         result.Passed,
		Grade:          result.Grade,
		Division:       result.Division,
		Parts:          previewParts,
	}, nil
}

func (s *subjectService) ownedSubject(ctx context.Context, id, teacherID uint) (models.Subject, error) {
	subject, err := s.subjects.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Subject{}, ErrSubjectNotFound
		}
		return models.Subject{}, err
	}
	if subject.OwnerID != teacherID {
		return models.Subject{}, ErrForbidden
	}

	return subject, nil
}

func (s *subjectService) ownedPart(ctx context.Context, partID, teacherID uint) (models.SubjectPart, error) {
	part, err := s.subjects.GetPartByID(ctx, partID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.SubjectPart{}, ErrSubjectPartNotFound
		}
		return models.SubjectPart{}, err
	}
	if _, err := s.ownedSubject(ctx, part.SubjectID, teacherID); err != nil {
		return models.SubjectPart{}, err
	}

	return part, nil
}

func (s *subjectService) checkClassOwner(ctx context.Context, classID, teacherID uint) error {
	class, err := s.classes.GetByID(ctx, classID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrClassNotFound
		}
		return err
	}
	if class.OwnerID != teacherID {
		return ErrForbidden
	}

	return nil
}
