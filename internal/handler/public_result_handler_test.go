package handler

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/rapor-go-api/internal/dto"
	"github.com/noah-isme/rapor-go-api/internal/service"
)

type stubPublishService struct {
	views map[string]dto.PublicResultResponse
}

func (s *stubPublishService) TogglePublish(context.Context, uint, uint, bool) ([]dto.ResultResponse, error) {
	return nil, nil
}

func (s *stubPublishService) GetByToken(_ context.Context, token string) (dto.PublicResultResponse, error) {
	view, ok := s.views[token]
	if !ok {
		return dto.PublicResultResponse{}, service.ErrResultNotFound
	}
	return view, nil
}

func newPublicResultApp(views map[string]dto.PublicResultResponse) *fiber.App {
	app := fiber.New()
	handler := NewPublicResultHandler(&stubPublishService{views: views}, zerolog.New(io.Discard))
	handler.Register(app.Group("/api/v1/public"))
	return app
}

func TestGetPublicResult(t *testing.T) {
	app := newPublicResultApp(map[string]dto.PublicResultResponse{
		"abc": {StudentName: "Alice", ExamID: 5, Total: 120, Percentage: 80, Grade: "A", Division: "Distinction", Rank: 1},
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/public/results/abc", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var payload struct {
		Success bool                     `json:"success"`
		Data    dto.PublicResultResponse `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	assert.True(t, payload.Success)
	assert.Equal(t, "Alice", payload.Data.StudentName)
	assert.Equal(t, 1, payload.Data.Rank)
}

func TestGetPublicResultUnknownToken(t *testing.T) {
	app := newPublicResultApp(nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/public/results/nope", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}
