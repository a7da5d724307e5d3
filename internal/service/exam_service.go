package service

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/noah-isme/rapor-go-api/internal/dto"
	"github.com/noah-isme/rapor-go-api/internal/models"
	"github.com/noah-isme/rapor-go-api/internal/repository"
)

// ExamService manages scheduled exams.
type ExamService interface {
	List(ctx context.Context, teacherID uint) ([]dto.ExamResponse, error)
	Get(ctx context.Context, id, teacherID uint) (dto.ExamResponse, error)
	Create(ctx context.Context, teacherID uint, req dto.ExamCreateRequest) (dto.ExamResponse, error)
	Update(ctx context.Context, id, teacherID uint, req dto.ExamUpdateRequest) (dto.ExamResponse, error)
	Delete(ctx context.Context, id, teacherID uint) error
}

type examService struct {
	exams     repository.ExamRepository
	classes   repository.ClassRepository
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewExamService constructs the exam CRUD service.
func NewExamService(
	exams repository.ExamRepository,
	classes repository.ClassRepository,
	validate *validator.Validate,
	logger zerolog.Logger,
) ExamService {
	return &examService{
		exams:     exams,
		classes:   classes,
		validator: validate,
		logger:    logger.With().Str("component", "exam_service").Logger(),
	}
}

func (s *examService) List(ctx context.Context, teacherID uint) ([]dto.ExamResponse, error) {
	exams, err := s.exams.ListByOwner(ctx, teacherID)
	if err != nil {
		return nil, err
	}

	return dto.NewExamResponseSlice(exams), nil
}

func (s *examService) Get(ctx context.Context, id, teacherID uint) (dto.ExamResponse, error) {
	exam, err := s.ownedExam(ctx, id, teacherID)
	if err != nil {
		return dto.ExamResponse{}, err
	}

	return dto.NewExamResponse(exam), nil
}

func (s *examService) Create(ctx context.Context, teacherID uint, req dto.ExamCreateRequest) (dto.ExamResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.ExamResponse{}, err
	}

	class, err := s.classes.GetByID(ctx, req.ClassID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ExamResponse{}, ErrClassNotFound
		}
		return dto.ExamResponse{}, err
	}
	if class.OwnerID != teacherID {
		return dto.ExamResponse{}, ErrForbidden
	}

	exam := models.Exam{
		ClassID: req.ClassID,
		Name:    req.Name,
		Term:    req.Term,
		HeldAt:  req.HeldAt,
		OwnerID: teacherID,
	}
	if err := s.exams.Create(ctx, &exam); err != nil {
		return dto.ExamResponse{}, err
	}

	s.logger.Info().Uint("exam_id", exam.ID).Uint("class_id", exam.ClassID).Msg("exam scheduled")

	return dto.NewExamResponse(exam), nil
}

func (s *examService) Update(ctx context.Context, id, teacherID uint, req dto.ExamUpdateRequest) (dto.ExamResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.ExamResponse{}, err
	}

	exam, err := s.ownedExam(ctx, id, teacherID)
	if err != nil {
		return dto.ExamResponse{}, err
	}

	if req.Name != nil {
		exam.Name = *req.Name
	}
	if req.Term != nil {
		exam.Term = *req.Term
	}
	if req.HeldAt != nil {
		exam.HeldAt = req.HeldAt
	}

	if err := s.exams.Update(ctx, &exam); err != nil {
		return dto.ExamResponse{}, err
	}

	return dto.NewExamResponse(exam), nil
}

func (s *examService) Delete(ctx context.Context, id, teacherID uint) error {
	if _, err := s.ownedExam(ctx, id, teacherID); err != nil {
		return err
	}

	return s.exams.Delete(ctx, id)
}

func (s *examService) ownedExam(ctx context.Context, id, teacherID uint) (models.Exam, error) {
	exam, err := s.exams.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Exam{}, ErrExamNotFound
		}
		return models.Exam{}, err
	}
	if exam.OwnerID != teacherID {
		return models.Exam{}, ErrForbidden
	}

	return exam, nil
}
