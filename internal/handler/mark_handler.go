package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/rapor-go-api/internal/dto"
	"github.com/noah-isme/rapor-go-api/internal/repository"
	"github.com/noah-isme/rapor-go-api/internal/service"
	"github.com/noah-isme/rapor-go-api/internal/utils"
)

// MarkHandler serves mark entry endpoints.
type MarkHandler struct {
	service service.MarkService
	logger  zerolog.Logger
}

// NewMarkHandler constructs the handler instance.
func NewMarkHandler(service service.MarkService, logger zerolog.Logger) *MarkHandler {
	return &MarkHandler{
		service: service,
		logger:  logger.With().Str("component", "mark_handler").Logger(),
	}
}

// Register wires the mark routes.
func (h *MarkHandler) Register(router fiber.Router) {
	router.Post("/", h.saveBatch)
	router.Get("/", h.list)
}

func (h *MarkHandler) saveBatch(c *fiber.Ctx) error {
	var req dto.MarkBatchRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	marks, err := h.service.SaveBatch(c.Context(), userIDFromContext(c), req)
	if err != nil {
		return h.handleError(c, err, "failed to save marks")
	}

	return utils.SendSuccess(c, "marks saved", marks)
}

func (h *MarkHandler) list(c *fiber.Ctx) error {
	examID, err := parseQueryUint(c, "exam_id")
	if err != nil || examID == nil {
		return utils.SendError(c, fiber.StatusBadRequest, "exam_id query parameter required")
	}

	filter := repository.MarkFilter{}
	if filter.SubjectID, err = parseQueryUint(c, "subject_id"); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid subject_id")
	}
	if filter.StudentID, err = parseQueryUint(c, "student_id"); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid student_id")
	}

	marks, err := h.service.ListByExam(c.Context(), *examID, filter)
	if err != nil {
		return h.handleError(c, err, "failed to list marks")
	}

	return utils.SendSuccess(c, "marks retrieved", marks)
}

func (h *MarkHandler) handleError(c *fiber.Ctx, err error, fallback string) error {
	switch {
	case errors.Is(err, service.ErrExamNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "exam not found")
	case errors.Is(err, service.ErrMarkOutOfRange):
		return utils.SendError(c, fiber.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, service.ErrResultPublished):
		return utils.SendError(c, fiber.StatusConflict, err.Error())
	case isValidationError(err):
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	default:
		requestLogger(h.logger, c).Error().Err(err).Msg(fallback)
		return utils.SendError(c, fiber.StatusInternalServerError, fallback)
	}
}
