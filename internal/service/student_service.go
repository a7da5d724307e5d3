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

// ErrStudentNotFound indicates the student id does not resolve to a row.
var ErrStudentNotFound = errors.New("student not found")

// StudentService manages class rosters.
type StudentService interface {
	ListByClass(ctx context.Context, classID, teacherID uint) ([]dto.StudentResponse, error)
	Create(ctx context.Context, teacherID uint, req dto.StudentCreateRequest) (dto.StudentResponse, error)
	Update(ctx context.Context, id, teacherID uint, req dto.StudentUpdateRequest) (dto.StudentResponse, error)
	Delete(ctx context.Context, id, teacherID uint) error
}

type studentService struct {
	students  repository.StudentRepository
	classes   repository.ClassRepository
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewStudentService constructs the roster service.
func NewStudentService(
	students repository.StudentRepository,
	classes repository.ClassRepository,
	validate *validator.Validate,
	logger zerolog.Logger,
) StudentService {
	return &studentService{
		students:  students,
		classes:   classes,
		validator: validate,
		logger:    logger.With().Str("component", "student_service").Logger(),
	}
}

func (s *studentService) ListByClass(ctx context.Context, classID, teacherID uint) ([]dto.StudentResponse, error) {
	if err := s.checkClassOwner(ctx, classID, teacherID); err != nil {
		return nil, err
	}

	students, err := s.students.ListByClass(ctx, classID)
	if err != nil {
		return nil, err
	}

	return dto.NewStudentResponseSlice(students), nil
}

func (s *studentService) Create(ctx context.Context, teacherID uint, req dto.StudentCreateRequest) (dto.StudentResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.StudentResponse{}, err
	}
	if err := s.checkClassOwner(ctx, req.ClassID, teacherID); err != nil {
		return dto.StudentResponse{}, err
	}

	student := models.Student{
		ClassID:    req.ClassID,
		Name:       req.Name,
		RollNumber: req.RollNumber,
		Status:     models.StudentStatusActive,
	}
	if err := s.students.Create(ctx, &student); err != nil {
		return dto.StudentResponse{}, err
	}

	s.logger.Info().Uint("student_id", student.ID).Uint("class_id", student.ClassID).Msg("student enrolled")

	return dto.NewStudentResponse(student), nil
}

func (s *studentService) Update(ctx context.Context, id, teacherID uint, req dto.StudentUpdateRequest) (dto.StudentResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.StudentResponse{}, err
	}

	student, err := s.ownedStudent(ctx, id, teacherID)
	if err != nil {
		return dto.StudentResponse{}, err
	}

	if req.Name != nil {
		student.Name = *req.Name
	}
	if req.RollNumber != nil {
		student.RollNumber = *req.RollNumber
	}
	if req.Status != nil {
		student.Status = *req.Status
	}

	if err := s.students.Update(ctx, &student); err != nil {
		return dto.StudentResponse{}, err
	}

	return dto.NewStudentResponse(student), nil
}

func (s *studentService) Delete(ctx context.Context, id, teacherID uint) error {
	if _, err := s.ownedStudent(ctx, id, teacherID); err != nil {
		return err
	}

	return s.students.Delete(ctx, id)
}

func (s *studentService) ownedStudent(ctx context.Context, id, teacherID uint) (models.Student, error) {
	student, err := s.students.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Student{}, ErrStudentNotFound
		}
		return models.Student{}, err
	}
	if err := s.checkClassOwner(ctx, student.ClassID, teacherID); err != nil {
		return models.Student{}, err
	}

	return student, nil
}

func (s *studentService) checkClassOwner(ctx context.Context, classID, teacherID uint) error {
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
