package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// Result event kinds emitted on the fanout channel.
const (
	EventResultsRecomputed = "results.recomputed"
	EventResultsPublished  = "results.published"
)

// ResultEvent announces a results state change so other nodes or listeners
// (dashboards, notification workers) can react.
type ResultEvent struct {
	Source    string    `json:"source"`
	Kind      string    `json:"kind"`
	ExamID    uint      `json:"exam_id"`
	TeacherID uint      `json:"teacher_id"`
	Rows      int       `json:"rows"`
	SentAt    time.Time `json:"sent_at"`
}

// ResultEventPublisher fans result events out over redis pubsub and NATS.
type ResultEventPublisher interface {
	Publish(ctx context.Context, kind string, examID, teacherID uint, rows int)
}

type resultEventPublisher struct {
	redis       *redis.Client
	redisChan   string
	nats        *nats.Conn
	natsSubject string
	logger      zerolog.Logger
	nodeID      string
}

// NewResultEventPublisher constructs the event fanout. Either backend may be
// nil; publishing degrades to whatever is configured.
func NewResultEventPublisher(redisClient *redis.Client, natsConn *nats.Conn, channelBase string, logger zerolog.Logger) ResultEventPublisher {
	redisChan := ""
	natsSubject := ""
	if channelBase != "" {
		redisChan = channelBase + ":events"
		natsSubject = channelBase + ".events"
	}

	return &resultEventPublisher{
		redis:       redisClient,
		redisChan:   redisChan,
		nats:        natsConn,
		natsSubject: natsSubject,
		logger:      logger.With().Str("component", "result_events").Logger(),
		nodeID:      uuid.NewString(),
	}
}

func (p *resultEventPublisher) Publish(ctx context.Context, kind string, examID, teacherID uint, rows int) {
	event := ResultEvent{
		Source:    p.nodeID,
		Kind:      kind,
		ExamID:    examID,
		TeacherID: teacherID,
		Rows:      rows,
		SentAt:    time.Now().UTC(),
	}

	payload, err := json.Marshal(event)
	if err != nil {
		p.logger.Warn().Err(err).Msg("failed to encode result event")
		return
	}

	if p.redis != nil && p.redisChan != "" {
		if err := p.redis.Publish(ctx, p.redisChan, payload).Err(); err != nil {
			p.logger.Warn().Err(err).Str("kind", kind).Msg("failed to publish result event to redis")
		}
	}

	if p.nats != nil && p.natsSubject != "" {
		if err := p.nats.Publish(p.natsSubject, payload); err != nil {
			p.logger.Warn().Err(err).Str("kind", kind).Msg("failed to publish result event to nats")
		}
	}
}
