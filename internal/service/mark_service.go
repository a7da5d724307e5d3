package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/noah-isme/rapor-go-api/internal/dto"
	"github.com/noah-isme/rapor-go-api/internal/grading"
	"github.com/noah-isme/rapor-go-api/internal/models"
	"github.com/noah-isme/rapor-go-api/internal/repository"
)

var (
	// ErrMarkOutOfRange indicates an obtained mark exceeds the effective raw
	// full mark for its subject or part.
	ErrMarkOutOfRange = errors.New("mark out of range")
	// ErrResultPublished indicates the student's result for this exam is
	// published and marks can no longer be edited.
	ErrResultPublished = errors.New("result already published")
)

// MarkService persists raw marks and keeps results current.
//
// SaveBatch validates each entry against the exam's effective basis before
// writing anything, refuses edits for students whose result row is already
// published, and triggers a full recompute after the batch lands.
type MarkService interface {
	SaveBatch(ctx context.Context, teacherID uint, req dto.MarkBatchRequest) ([]dto.MarkResponse, error)
	ListByExam(ctx context.Context, examID uint, filter repository.MarkFilter) ([]dto.MarkResponse, error)
}

type markService struct {
	exams     repository.ExamRepository
	subjects  repository.SubjectRepository
	settings  repository.SettingsRepository
	marks     repository.MarkRepository
	results   repository.ResultRepository
	recompute ResultService
	activity  ActivityRecorder
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewMarkService constructs the mark entry service.
func NewMarkService(
	exams repository.ExamRepository,
	subjects repository.SubjectRepository,
	settings repository.SettingsRepository,
	marks repository.MarkRepository,
	results repository.ResultRepository,
	recompute ResultService,
	activity ActivityRecorder,
	validate *validator.Validate,
	logger zerolog.Logger,
) MarkService {
	return &markService{
		exams:     exams,
		subjects:  subjects,
		settings:  settings,
		marks:     marks,
		results:   results,
		recompute: recompute,
		activity:  activity,
		validator: validate,
		logger:    logger.With().Str("component", "mark_service").Logger(),
	}
}

func (s *markService) SaveBatch(ctx context.Context, teacherID uint, req dto.MarkBatchRequest) ([]dto.MarkResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, err
	}

	exam, err := s.exams.GetByID(ctx, req.ExamID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrExamNotFound
		}
		return nil, err
	}

	subjects, err := s.subjects.ListByClass(ctx, exam.ClassID)
	if err != nil {
		return nil, err
	}

	resolver, err := buildBasisResolver(ctx, s.settings, req.ExamID, subjects)
	if err != nil {
		return nil, err
	}

	publishedStudents, err := s.publishedStudents(ctx, req.ExamID, teacherID)
	if err != nil {
		return nil, err
	}

	rows := make([]models.Mark, 0, len(req.Entries))
	for _, entry := range req.Entries {
		if publishedStudents[entry.StudentID] {
			return nil, fmt.Errorf("%w: student %d", ErrResultPublished, entry.StudentID)
		}

		var basis grading.Basis
		if entry.SubjectPartID != nil {
			basis = resolver.ForPart(*entry.SubjectPartID, entry.SubjectID)
		} else {
			basis = resolver.ForSubject(entry.SubjectID)
		}

		if basis.FullMark > 0 && entry.Obtained > basis.FullMark {
			return nil, fmt.Errorf("%w: obtained %.2f exceeds full mark %.2f", ErrMarkOutOfRange, entry.Obtained, basis.FullMark)
		}

		rows = append(rows, models.Mark{
			StudentID:     entry.StudentID,
			SubjectID:     entry.SubjectID,
			ExamID:        req.ExamID,
			SubjectPartID: entry.SubjectPartID,
			Obtained:      entry.Obtained,
			Converted:     grading.ComputeConverted(entry.Obtained, basis.HasConversion, basis.ConvertToMark, basis.FullMark),
			EnteredBy:     teacherID,
		})
	}

	for i := range rows {
		if err := s.marks.Upsert(ctx, &rows[i]); err != nil {
			return nil, err
		}
	}

	if err := s.recompute.Recompute(ctx, req.ExamID, teacherID); err != nil {
		return nil, err
	}

	if s.activity != nil {
		entityID := req.ExamID
		if _, err := s.activity.Record(ctx, ActivityEntry{
			ActorID:    teacherID,
			ActorRole:  "teacher",
			Action:     "marks.saved",
			EntityType: "exam",
			EntityID:   &entityID,
			Metadata:   map[string]interface{}{"entries": len(rows)},
		}); err != nil {
			s.logger.Warn().Err(err).Msg("failed to record mark activity")
		}
	}

	s.logger.Info().
		Uint("exam_id", req.ExamID).
		Uint("teacher_id", teacherID).
		Int("entries", len(rows)).
		Msg("mark batch saved")

	return dto.NewMarkResponseSlice(rows), nil
}

func (s *markService) publishedStudents(ctx context.Context, examID, teacherID uint) (map[uint]bool, error) {
	results, err := s.results.ListByExamAndOwner(ctx, examID, teacherID)
	if err != nil {
		return nil, err
	}

	published := make(map[uint]bool, len(results))
	for _, result := range results {
		if result.IsPublished {
			published[result.StudentID] = true
		}
	}

	return published, nil
}

func (s *markService) ListByExam(ctx context.Context, examID uint, filter repository.MarkFilter) ([]dto.MarkResponse, error) {
	if _, err := s.exams.GetByID(ctx, examID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrExamNotFound
		}
		return nil, err
	}

	filter.ExamID = examID
	marks, err := s.marks.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	return dto.NewMarkResponseSlice(marks), nil
}
