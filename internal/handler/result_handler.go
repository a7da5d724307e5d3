package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/rapor-go-api/internal/dto"
	"github.com/noah-isme/rapor-go-api/internal/service"
	"github.com/noah-isme/rapor-go-api/internal/utils"
)

// ResultHandler serves the teacher-facing result endpoints.
type ResultHandler struct {
	results service.ResultService
	publish service.PublishService
	logger  zerolog.Logger
}

// NewResultHandler constructs the handler instance.
func NewResultHandler(results service.ResultService, publish service.PublishService, logger zerolog.Logger) *ResultHandler {
	return &ResultHandler{
		results: results,
		publish: publish,
		logger:  logger.With().Str("component", "result_handler").Logger(),
	}
}

// Register wires the result routes.
func (h *ResultHandler) Register(router fiber.Router) {
	router.Get("/", h.list)
	router.Post("/recompute", h.recompute)
	router.Post("/publish", h.togglePublish)
}

func (h *ResultHandler) list(c *fiber.Ctx) error {
	examID, err := parseQueryUint(c, "exam_id")
	if err != nil || examID == nil {
		return utils.SendError(c, fiber.StatusBadRequest, "exam_id query parameter required")
	}

	results, err := h.results.ListByExam(c.Context(), *examID, userIDFromContext(c))
	if err != nil {
		return h.handleError(c, err, "failed to list results")
	}

	return utils.SendSuccess(c, "results retrieved", results)
}

func (h *ResultHandler) recompute(c *fiber.Ctx) error {
	examID, err := parseQueryUint(c, "exam_id")
	if err != nil || examID == nil {
		return utils.SendError(c, fiber.StatusBadRequest, "exam_id query parameter required")
	}

	teacherID := userIDFromContext(c)
	if err := h.results.Recompute(c.Context(), *examID, teacherID); err != nil {
		return h.handleError(c, err, "failed to recompute results")
	}

	results, err := h.results.ListByExam(c.Context(), *examID, teacherID)
	if err != nil {
		return h.handleError(c, err, "failed to list results")
	}

	return utils.SendSuccess(c, "results recomputed", results)
}

func (h *ResultHandler) togglePublish(c *fiber.Ctx) error {
	examID, err := parseQueryUint(c, "exam_id")
	if err != nil || examID == nil {
		return utils.SendError(c, fiber.StatusBadRequest, "exam_id query parameter required")
	}

	var req dto.PublishToggleRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	results, err := h.publish.TogglePublish(c.Context(), *examID, userIDFromContext(c), req.Publish)
	if err != nil {
		return h.handleError(c, err, "failed to toggle publish state")
	}

	message := "results unpublished"
	if req.Publish {
		message = "results published"
	}
	return utils.SendSuccess(c, message, results)
}

func (h *ResultHandler) handleError(c *fiber.Ctx, err error, fallback string) error {
	switch {
	case errors.Is(err, service.ErrExamNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "exam not found")
	case errors.Is(err, service.ErrForbidden):
		return utils.SendError(c, fiber.StatusForbidden, "exam belongs to another teacher")
	default:
		requestLogger(h.logger, c).Error().Err(err).Msg(fallback)
		return utils.SendError(c, fiber.StatusInternalServerError, fallback)
	}
}
