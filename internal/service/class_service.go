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

var (
	// ErrClassNotFound indicates the class id does not resolve to a row.
	ErrClassNotFound = errors.New("class not found")
	// ErrForbidden indicates the resource belongs to another teacher.
	ErrForbidden = errors.New("forbidden")
)

// ClassService manages a teacher's classes.
type ClassService interface {
	List(ctx context.Context, teacherID uint) ([]dto.ClassResponse, error)
	Get(ctx context.Context, id, teacherID uint) (dto.ClassResponse, error)
	Create(ctx context.Context, teacherID uint, req dto.ClassCreateRequest) (dto.ClassResponse, error)
	Update(ctx context.Context, id, teacherID uint, req dto.ClassUpdateRequest) (dto.ClassResponse, error)
	Delete(ctx context.Context, id, teacherID uint) error
}

type classService struct {
	classes   repository.ClassRepository
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewClassService constructs the class CRUD service.
func NewClassService(classes repository.ClassRepository, validate *validator.Validate, logger zerolog.Logger) ClassService {
	return &classService{
		classes:   classes,
		validator: validate,
		logger:    logger.With().Str("component", "class_service").Logger(),
	}
}

func (s *classService) List(ctx context.Context, teacherID uint) ([]dto.ClassResponse, error) {
	classes, err := s.classes.ListByOwner(ctx, teacherID)
	if err != nil {
		return nil, err
	}

	return dto.NewClassResponseSlice(classes), nil
}

func (s *classService) Get(ctx context.Context, id, teacherID uint) (dto.ClassResponse, error) {
	class, err := s.ownedClass(ctx, id, teacherID)
	if err != nil {
		return dto.ClassResponse{}, err
	}

	return dto.NewClassResponse(class), nil
}

func (s *classService) Create(ctx context.Context, teacherID uint, req dto.ClassCreateRequest) (dto.ClassResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.ClassResponse{}, err
	}

	class := models.Class{
		Name:    req.Name,
		Section: req.Section,
		OwnerID: teacherID,
	}
	if err := s.classes.Create(ctx, &class); err != nil {
		return dto.ClassResponse{}, err
	}

	s.logger.Info().Uint("class_id", class.ID).Uint("teacher_id", teacherID).Msg("class created")

	return dto.NewClassResponse(class), nil
}

func (s *classService) Update(ctx context.Context, id, teacherID uint, req dto.ClassUpdateRequest) (dto.ClassResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.ClassResponse{}, err
	}

	class, err := s.ownedClass(ctx, id, teacherID)
	if err != nil {
		return dto.ClassResponse{}, err
	}

	if req.Name != nil {
		class.Name = *req.Name
	}
	if req.Section != nil {
		class.Section = *req.Section
	}

	if err := s.classes.Update(ctx, &class); err != nil {
		return dto.ClassResponse{}, err
	}

	return dto.NewClassResponse(class), nil
}

func (s *classService) Delete(ctx context.Context, id, teacherID uint) error {
	if _, err := s.ownedClass(ctx, id, teacherID); err != nil {
		return err
	}

	return s.classes.Delete(ctx, id)
}

func (s *classService) ownedClass(ctx context.Context, id, teacherID uint) (models.Class, error) {
	class, err := s.classes.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Class{}, ErrClassNotFound
		}
		return models.Class{}, err
	}
	if class.OwnerID != teacherID {
		return models.Class{}, ErrForbidden
	}

	return class, nil
}
