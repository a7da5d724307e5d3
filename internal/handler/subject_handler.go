package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/rapor-go-api/internal/dto"
	"github.com/noah-isme/rapor-go-api/internal/service"
	"github.com/noah-isme/rapor-go-api/internal/utils"
)

// SubjectHandler serves the subject and part management endpoints, including
// the what-if calculator.
type SubjectHandler struct {
	service service.SubjectService
	logger  zerolog.Logger
}

// NewSubjectHandler constructs the handler instance.
func NewSubjectHandler(service service.SubjectService, logger zerolog.Logger) *SubjectHandler {
	return &SubjectHandler{
		service: service,
		logger:  logger.With().Str("component", "subject_handler").Logger(),
	}
}

// Register wires the subject routes.
func (h *SubjectHandler) Register(router fiber.Router) {
	router.Get("/", h.list)
	router.Post("/", h.create)
	router.Get("/:id", h.get)
	router.Put("/:id", h.update)
	router.Delete("/:id", h.delete)
	router.Post("/:id/parts", h.createPart)
	router.Put("/parts/:partId", h.updatePart)
	router.Delete("/parts/:partId", h.deletePart)
	router.Post("/:id/preview", h.preview)
}

func (h *SubjectHandler) list(c *fiber.Ctx) error {
	classID, err := parseQueryUint(c, "class_id")
	if err != nil || classID == nil {
		return utils.SendError(c, fiber.StatusBadRequest, "class_id query parameter required")
	}

	subjects, err := h.service.ListByClass(c.Context(), *classID, userIDFromContext(c))
	if err != nil {
		return h.handleError(c, err, "failed to list subjects")
	}

	return utils.SendSuccess(c, "subjects retrieved", subjects)
}

func (h *SubjectHandler) get(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid subject id")
	}

	subject, err := h.service.Get(c.Context(), id, userIDFromContext(c))
	if err != nil {
		return h.handleError(c, err, "failed to fetch subject")
	}

	return utils.SendSuccess(c, "subject retrieved", subject)
}

func (h *SubjectHandler) create(c *fiber.Ctx) error {
	var req dto.SubjectCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	subject, err := h.service.Create(c.Context(), userIDFromContext(c), req)
	if err != nil {
		return h.handleError(c, err, "failed to create subject")
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "subject created", subject)
}

func (h *SubjectHandler) update(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid subject id")
	}

	var req dto.SubjectUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	subject, err := h.service.Update(c.Context(), id, userIDFromContext(c), req)
	if err != nil {
		return h.handleError(c, err, "failed to update subject")
	}

	return utils.SendSuccess(c, "subject updated", subject)
}

func (h *SubjectHandler) delete(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid subject id")
	}

	if err := h.service.Delete(c.Context(), id, userIDFromContext(c)); err != nil {
		return h.handleError(c, err, "failed to delete subject")
	}

	return utils.SendSuccess(c, "subject deleted", nil)
}

func (h *SubjectHandler) createPart(c *fiber.Ctx) error {
	subjectID, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid subject id")
	}

	var req dto.SubjectPartCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	part, err := h.service.CreatePart(c.Context(), subjectID, userIDFromContext(c), req)
	if err != nil {
		return h.handleError(c, err, "failed to create subject part")
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "subject part created", part)
}

func (h *SubjectHandler) updatePart(c *fiber.Ctx) error {
	partID, err := parseUintParam(c, "partId")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid part id")
	}

	var req dto.SubjectPartUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	part, err := h.service.UpdatePart(c.Context(), partID, userIDFromContext(c), req)
	if err != nil {
		return h.handleError(c, err, "failed to update subject part")
	}

	return utils.SendSuccess(c, "subject part updated", part)
}

func (h *SubjectHandler) deletePart(c *fiber.Ctx) error {
	partID, err := parseUintParam(c, "partId")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid part id")
	}

	if err := h.service.DeletePart(c.Context(), partID, userIDFromContext(c)); err != nil {
		return h.handleError(c, err, "failed to delete subject part")
	}

	return utils.SendSuccess(c, "subject part deleted", nil)
}

func (h *SubjectHandler) preview(c *fiber.Ctx) error {
	subjectID, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid subject id")
	}

	var req dto.SubjectPreviewRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	preview, err := h.service.Preview(c.Context(), subjectID, userIDFromContext(c), req)
	if err != nil {
		return h.handleError(c, err, "failed to calculate preview")
	}

	return utils.SendSuccess(c, "preview calculated", preview)
}

func (h *SubjectHandler) handleError(c *fiber.Ctx, err error, fallback string) error {
	switch {
	case errors.Is(err, service.ErrSubjectNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "subject not found")
	case errors.Is(err, service.ErrSubjectPartNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "subject part not found")
	case errors.Is(err, service.ErrClassNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "class not found")
	case errors.Is(err, service.ErrForbidden):
		return utils.SendError(c, fiber.StatusForbidden, "subject belongs to another teacher")
	case isValidationError(err):
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	default:
		requestLogger(h.logger, c).Error().Err(err).Msg(fallback)
		return utils.SendError(c, fiber.StatusInternalServerError, fallback)
	}
}
