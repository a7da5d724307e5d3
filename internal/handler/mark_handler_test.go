package handler

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/rapor-go-api/internal/dto"
	"github.com/noah-isme/rapor-go-api/internal/repository"
	"github.com/noah-isme/rapor-go-api/internal/service"
)

type stubMarkService struct {
	saveErr error
}

func (s *stubMarkService) SaveBatch(context.Context, uint, dto.MarkBatchRequest) ([]dto.MarkResponse, error) {
	if s.saveErr != nil {
		return nil, s.saveErr
	}
	return []dto.MarkResponse{}, nil
}

func (s *stubMarkService) ListByExam(context.Context, uint, repository.MarkFilter) ([]dto.MarkResponse, error) {
	return []dto.MarkResponse{}, nil
}

func postMarks(t *testing.T, svc service.MarkService) *http.Response {
	t.Helper()

	app := fiber.New()
	handler := NewMarkHandler(svc, zerolog.New(io.Discard))
	handler.Register(app.Group("/api/v1/marks"))

	body := `{"exam_id":5,"entries":[{"student_id":21,"subject_id":1,"obtained":10}]}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/marks/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestSaveMarksStatusMapping(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"ok", nil, fiber.StatusOK},
		{"exam missing", service.ErrExamNotFound, fiber.StatusNotFound},
		{"out of range", service.ErrMarkOutOfRange, fiber.StatusUnprocessableEntity},
		{"published lock", service.ErrResultPublished, fiber.StatusConflict},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := postMarks(t, &stubMarkService{saveErr: tc.err})
			defer resp.Body.Close()
			assert.Equal(t, tc.status, resp.StatusCode)
		})
	}
}
