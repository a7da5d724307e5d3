package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/noah-isme/rapor-go-api/internal/dto"
	"github.com/noah-isme/rapor-go-api/internal/repository"
)

// ErrResultNotFound indicates no published result matches the token or id.
var ErrResultNotFound = errors.New("result not found")

// PublishService flips exam results between published and hidden and serves
// published rows to anonymous viewers through share tokens.
//
// A share token is minted once, the first time a row is published, and is
// never rotated afterwards. Unpublishing only hides the row; republishing
// reactivates the same link.
type PublishService interface {
	TogglePublish(ctx context.Context, examID, teacherID uint, publish bool) ([]dto.ResultResponse, error)
	GetByToken(ctx context.Context, token string) (dto.PublicResultResponse, error)
}

type publishService struct {
	exams    repository.ExamRepository
	results  repository.ResultRepository
	cache    *ResultCache
	events   ResultEventPublisher
	activity ActivityRecorder
	logger   zerolog.Logger
}

// NewPublishService constructs the publish toggles and public token lookup.
func NewPublishService(
	exams repository.ExamRepository,
	results repository.ResultRepository,
	cache *ResultCache,
	events ResultEventPublisher,
	activity ActivityRecorder,
	logger zerolog.Logger,
) PublishService {
	return &publishService{
		exams:    exams,
		results:  results,
		cache:    cache,
		events:   events,
		activity: activity,
		logger:   logger.With().Str("component", "publish_service").Logger(),
	}
}

func (s *publishService) TogglePublish(ctx context.Context, examID, teacherID uint, publish bool) ([]dto.ResultResponse, error) {
	if _, err := s.exams.GetByID(ctx, examID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrExamNotFound
		}
		return nil, err
	}

	rows, err := s.results.ListByExamAndOwner(ctx, examID, teacherID)
	if err != nil {
		return nil, err
	}

	staleTokens := make([]string, 0, len(rows))
	for i := range rows {
		row := &rows[i]

		minted := false
		if publish && !row.HasShareToken() {
			token := uuid.NewString()
			row.ShareToken = &token
			minted = true
		}
		if row.IsPublished == publish && !minted {
			continue
		}

		row.IsPublished = publish
		if err := s.results.Save(ctx, row); err != nil {
			return nil, err
		}
		if row.HasShareToken() {
			staleTokens = append(staleTokens, *row.ShareToken)
		}
	}

	if s.cache != nil {
		s.cache.Invalidate(ctx, staleTokens...)
	}

	if publish && s.events != nil {
		s.events.Publish(ctx, EventResultsPublished, examID, teacherID, len(rows))
	}

	if s.activity != nil {
		action := "results.unpublished"
		if publish {
			action = "results.published"
		}
		entityID := examID
		if _, err := s.activity.Record(ctx, ActivityEntry{
			ActorID:    teacherID,
			ActorRole:  "teacher",
			Action:     action,
			EntityType: "exam",
			EntityID:   &entityID,
			Metadata:   map[string]interface{}{"rows": len(rows)},
		}); err != nil {
			s.logger.Warn().Err(err).Msg("failed to record publish activity")
		}
	}

	s.logger.Info().
		Uint("exam_id", examID).
		Uint("teacher_id", teacherID).
		Bool("published", publish).
		Int("rows", len(rows)).
		Msg("publish state toggled")

	return dto.NewResultResponseSlice(rows), nil
}

func (s *publishService) GetByToken(ctx context.Context, token string) (dto.PublicResultResponse, error) {
	if s.cache != nil {
		if cached, ok := s.cache.Get(ctx, token); ok {
			return cached, nil
		}
	}

	result, err := s.results.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.PublicResultResponse{}, ErrResultNotFound
		}
		return dto.PublicResultResponse{}, err
	}

	response := dto.NewPublicResultResponse(result)
	if s.cache != nil {
		s.cache.Set(ctx, token, response)
	}

	return response, nil
}
