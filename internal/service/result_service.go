package service

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/noah-isme/rapor-go-api/internal/dto"
	"github.com/noah-isme/rapor-go-api/internal/grading"
	"github.com/noah-isme/rapor-go-api/internal/models"
	"github.com/noah-isme/rapor-go-api/internal/observability"
	"github.com/noah-isme/rapor-go-api/internal/repository"
)

// ErrExamNotFound indicates the exam id does not resolve to a row.
var ErrExamNotFound = errors.New("exam not found")

// ResultService recomputes and serves aggregated exam results.
//
// Recompute is idempotent: running it twice without intervening mark changes
// produces identical rows. It is not serialized against concurrent runs on
// the same exam; the composite upsert key keeps individual writes consistent
// but two interleaved runs may observe each other's partial state. It also
// does not check the publish flag before overwriting a row's numbers; the
// mark-entry path is where published results are locked.
type ResultService interface {
	Recompute(ctx context.Context, examID, teacherID uint) error
	ListByExam(ctx context.Context, examID, teacherID uint) ([]dto.ResultResponse, error)
}

type resultService struct {
	exams    repository.ExamRepository
	subjects repository.SubjectRepository
	students repository.StudentRepository
	settings repository.SettingsRepository
	marks    repository.MarkRepository
	results  repository.ResultRepository
	cache    *ResultCache
	events   ResultEventPublisher
	logger   zerolog.Logger
	tracer   trace.Tracer
}

// NewResultService constructs the recomputation orchestrator.
func NewResultService(
	exams repository.ExamRepository,
	subjects repository.SubjectRepository,
	students repository.StudentRepository,
	settings repository.SettingsRepository,
	marks repository.MarkRepository,
	results repository.ResultRepository,
	cache *ResultCache,
	events ResultEventPublisher,
	logger zerolog.Logger,
) ResultService {
	return &resultService{
		exams:    exams,
		subjects: subjects,
		students: students,
		settings: settings,
		marks:    marks,
		results:  results,
		cache:    cache,
		events:   events,
		logger:   logger.With().Str("component", "result_service").Logger(),
		tracer:   otel.Tracer("github.com/noah-isme/rapor-go-api/internal/service/result"),
	}
}

func (s *resultService) Recompute(ctx context.Context, examID, teacherID uint) error {
	start := time.Now()
	ctx, span := s.tracer.Start(ctx, "results.recompute", trace.WithAttributes(
		attribute.Int64("exam_id", int64(examID)),
		attribute.Int64("teacher_id", int64(teacherID)),
	))
	defer span.End()

	err := s.recompute(ctx, examID, teacherID)

	status := "ok"
	if err != nil {
		status = "error"
		span.RecordError(err)
		span.SetStatus(codes.Error, "recompute_failed")
	}
	observability.RecomputeRuns().WithLabelValues(status).Inc()
	observability.RecomputeDuration().Observe(time.Since(start).Seconds())

	return err
}

func (s *resultService) recompute(ctx context.Context, examID, teacherID uint) error {
	exam, err := s.exams.GetByID(ctx, examID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrExamNotFound
		}
		return err
	}

	subjects, err := s.subjects.ListByClass(ctx, exam.ClassID)
	if err != nil {
		return err
	}

	resolver, err := s.buildResolver(ctx, examID, subjects)
	if err != nil {
		return err
	}

	if err := s.reconvertMarks(ctx, examID, subjects, resolver); err != nil {
		return err
	}

	fullTotal := grading.FullTotal(buildContributions(subjects, resolver))

	totals, err := s.marks.SumConvertedByStudent(ctx, examID)
	if err != nil {
		return err
	}
	totalByStudent := make(map[uint]float64, len(totals))
	for _, total := range totals {
		totalByStudent[total.StudentID] = total.Total
	}

	students, err := s.students.ListByClass(ctx, exam.ClassID)
	if err != nil {
		return err
	}

	rows := buildResultRows(examID, teacherID, students, totalByStudent, fullTotal)

	for i := range rows {
		if err := s.results.Upsert(ctx, &rows[i]); err != nil {
			return err
		}
	}
	observability.ResultRowsUpserted().Add(float64(len(rows)))

	s.invalidateTokens(ctx, examID, teacherID)

	if s.events != nil {
		s.events.Publish(ctx, EventResultsRecomputed, examID, teacherID, len(rows))
	}

	s.logger.Info().
		Uint("exam_id", examID).
		Uint("teacher_id", teacherID).
		Int("students", len(rows)).
		Float64("full_total", fullTotal).
		Msg("results recomputed")

	return nil
}

func (s *resultService) buildResolver(ctx context.Context, examID uint, subjects []models.Subject) (*grading.Resolver, error) {
	return buildBasisResolver(ctx, s.settings, examID, subjects)
}

// buildBasisResolver assembles the effective-basis resolver for one exam:
// override rows keyed by subject/part id layered over the stored defaults.
func buildBasisResolver(ctx context.Context, settings repository.SettingsRepository, examID uint, subjects []models.Subject) (*grading.Resolver, error) {
	subjectSettingRows, err := settings.ListSubjectSettings(ctx, examID)
	if err != nil {
		return nil, err
	}
	partSettingRows, err := settings.ListPartSettings(ctx, examID)
	if err != nil {
		return nil, err
	}

	subjectSettings := make(map[uint]grading.Basis, len(subjectSettingRows))
	for _, row := range subjectSettingRows {
		subjectSettings[row.SubjectID] = grading.Basis{
			FullMark:      row.FullMark,
			PassMark:      row.PassMark,
			HasConversion: row.HasConversion,
			ConvertToMark: row.ConvertToMark,
		}
	}

	partSettings := make(map[uint]grading.Basis, len(partSettingRows))
	for _, row := range partSettingRows {
		partSettings[row.SubjectPartID] = grading.Basis{
			FullMark:      row.FullMark,
			PassMark:      row.PassMark,
			HasConversion: row.HasConversion,
			ConvertToMark: row.ConvertToMark,
		}
	}

	subjectDefaults := make(map[uint]grading.Basis, len(subjects))
	partDefaults := map[uint]grading.Basis{}
	for _, subject := range subjects {
		subjectDefaults[subject.ID] = grading.Basis{
			FullMark: subject.FullMark,
			PassMark: subject.PassMark,
		}
		for _, part := range subject.Parts {
			target := part.ConvertedFullMark
			partDefaults[part.ID] = grading.Basis{
				FullMark:      part.RawFullMark,
				PassMark:      part.PassMark,
				HasConversion: true,
				ConvertToMark: &target,
			}
		}
	}

	return grading.NewResolver(subjectSettings, partSettings, subjectDefaults, partDefaults), nil
}

// reconvertMarks recomputes each stored mark's converted value under the
// exam's effective bases, persisting only values that actually changed.
func (s *resultService) reconvertMarks(ctx context.Context, examID uint, subjects []models.Subject, resolver *grading.Resolver) error {
	marks, err := s.marks.ListByExam(ctx, examID)
	if err != nil {
		return err
	}

	for _, mark := range marks {
		var basis grading.Basis
		if mark.SubjectPartID != nil {
			basis = resolver.ForPart(*mark.SubjectPartID, mark.SubjectID)
		} else {
			basis = resolver.ForSubject(mark.SubjectID)
		}

		converted := grading.ComputeConverted(mark.Obtained, basis.HasConversion, basis.ConvertToMark, basis.FullMark)
		if converted == mark.Converted {
			continue
		}

		if err := s.marks.UpdateConverted(ctx, mark.ID, converted); err != nil {
			return err
		}
	}

	return nil
}

// buildContributions decides once per subject whether it contributes to the
// exam full total part by part or as a whole. A subject with any overridden
// part contributes only through those overridden parts; otherwise its
// subject-level target counts once. Never both.
func buildContributions(subjects []models.Subject, resolver *grading.Resolver) []grading.Contribution {
	contributions := make([]grading.Contribution, 0, len(subjects))

	for _, subject := range subjects {
		var overridden []float64
		for _, part := range subject.Parts {
			if resolver.HasPartSetting(part.ID) {
				overridden = append(overridden, resolver.ForPart(part.ID, subject.ID).Target())
			}
		}

		if len(overridden) > 0 {
			contributions = append(contributions, grading.Contribution{
				SubjectID: subject.ID,
				Kind:      grading.ContributionParts,
				Targets:   overridden,
			})
			continue
		}

		contributions = append(contributions, grading.Contribution{
			SubjectID: subject.ID,
			Kind:      grading.ContributionWhole,
			Targets:   []float64{resolver.ForSubject(subject.ID).Target()},
		})
	}

	return contributions
}

// buildResultRows grades and ranks every student in the class, including
// those without any marks, who carry a zero total.
func buildResultRows(examID, teacherID uint, students []models.Student, totalByStudent map[uint]float64, fullTotal float64) []models.Result {
	rows := make([]models.Result, 0, len(students))

	for _, student := range students {
		total := totalByStudent[student.ID]

		percentage := 0.0
		if fullTotal > 0 {
			percentage = grading.Round2(total / fullTotal * 100)
		}

		band := grading.GradeFor(percentage)
		rows = append(rows, models.Result{
			StudentID:  student.ID,
			ExamID:     examID,
			CreatedBy:  teacherID,
			Total:      total,
			Percentage: percentage,
			Grade:      band.Grade,
			Division:   band.Division,
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Percentage != rows[j].Percentage {
			return rows[i].Percentage > rows[j].Percentage
		}
		return rows[i].StudentID < rows[j].StudentID
	})

	percentages := make([]float64, len(rows))
	for i, row := range rows {
		percentages[i] = row.Percentage
	}
	for i, rank := range grading.DenseRanks(percentages) {
		rows[i].Rank = rank
	}

	return rows
}

func (s *resultService) invalidateTokens(ctx context.Context, examID, teacherID uint) {
	if s.cache == nil {
		return
	}

	rows, err := s.results.ListByExamAndOwner(ctx, examID, teacherID)
	if err != nil {
		s.logger.Warn().Err(err).Msg("failed to list results for cache invalidation")
		return
	}

	tokens := make([]string, 0, len(rows))
	for _, row := range rows {
		if row.HasShareToken() {
			tokens = append(tokens, *row.ShareToken)
		}
	}
	s.cache.Invalidate(ctx, tokens...)
}

func (s *resultService) ListByExam(ctx context.Context, examID, teacherID uint) ([]dto.ResultResponse, error) {
	if _, err := s.exams.GetByID(ctx, examID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrExamNotFound
		}
		return nil, err
	}

	results, err := s.results.ListByExamAndOwner(ctx, examID, teacherID)
	if err != nil {
		return nil, err
	}

	return dto.NewResultResponseSlice(results), nil
}
