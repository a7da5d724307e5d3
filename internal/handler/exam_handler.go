package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/rapor-go-api/internal/dto"
	"github.com/noah-isme/rapor-go-api/internal/service"
	"github.com/noah-isme/rapor-go-api/internal/utils"
)

// ExamHandler serves exam scheduling and per-exam grading settings.
type ExamHandler struct {
	exams    service.ExamService
	settings service.SettingsService
	logger   zerolog.Logger
}

// NewExamHandler constructs the handler instance.
func NewExamHandler(exams service.ExamService, settings service.SettingsService, logger zerolog.Logger) *ExamHandler {
	return &ExamHandler{
		exams:    exams,
		settings: settings,
		logger:   logger.With().Str("component", "exam_handler").Logger(),
	}
}

// Register wires the exam routes.
func (h *ExamHandler) Register(router fiber.Router) {
	router.Get("/", h.list)
	router.Post("/", h.create)
	router.Get("/:id", h.get)
	router.Put("/:id", h.update)
	router.Delete("/:id", h.delete)

	router.Get("/:id/settings", h.listSettings)
	router.Put("/:id/settings/subjects", h.upsertSubjectSetting)
	router.Put("/:id/settings/parts", h.upsertPartSetting)
	router.Delete("/:id/settings/subjects/:subjectId", h.deleteSubjectSetting)
	router.Delete("/:id/settings/parts/:partId", h.deletePartSetting)
}

func (h *ExamHandler) list(c *fiber.Ctx) error {
	exams, err := h.exams.List(c.Context(), userIDFromContext(c))
	if err != nil {
		return h.handleError(c, err, "failed to list exams")
	}

	return utils.SendSuccess(c, "exams retrieved", exams)
}

func (h *ExamHandler) get(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid exam id")
	}

	exam, err := h.exams.Get(c.Context(), id, userIDFromContext(c))
	if err != nil {
		return h.handleError(c, err, "failed to fetch exam")
	}

	return utils.SendSuccess(c, "exam retrieved", exam)
}

func (h *ExamHandler) create(c *fiber.Ctx) error {
	var req dto.ExamCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	exam, err := h.exams.Create(c.Context(), userIDFromContext(c), req)
	if err != nil {
		return h.handleError(c, err, "failed to schedule exam")
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "exam scheduled", exam)
}

func (h *ExamHandler) update(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid exam id")
	}

	var req dto.ExamUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	exam, err := h.exams.Update(c.Context(), id, userIDFromContext(c), req)
	if err != nil {
		return h.handleError(c, err, "failed to update exam")
	}

	return utils.SendSuccess(c, "exam updated", exam)
}

func (h *ExamHandler) delete(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid exam id")
	}

	if err := h.exams.Delete(c.Context(), id, userIDFromContext(c)); err != nil {
		return h.handleError(c, err, "failed to delete exam")
	}

	return utils.SendSuccess(c, "exam deleted", nil)
}

func (h *ExamHandler) listSettings(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid exam id")
	}

	subjectSettings, partSettings, err := h.settings.List(c.Context(), id, userIDFromContext(c))
	if err != nil {
		return h.handleError(c, err, "failed to list exam settings")
	}

	return utils.SendSuccess(c, "exam settings retrieved", fiber.Map{
		"subject_settings": subjectSettings,
		"part_settings":    partSettings,
	})
}

func (h *ExamHandler) upsertSubjectSetting(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid exam id")
	}

	var req dto.SubjectSettingUpsertRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	setting, err := h.settings.UpsertSubjectSetting(c.Context(), id, userIDFromContext(c), req)
	if err != nil {
		return h.handleError(c, err, "failed to save subject setting")
	}

	return utils.SendSuccess(c, "subject setting saved", setting)
}

func (h *ExamHandler) upsertPartSetting(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid exam id")
	}

	var req dto.PartSettingUpsertRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	setting, err := h.settings.UpsertPartSetting(c.Context(), id, userIDFromContext(c), req)
	if err != nil {
		return h.handleError(c, err, "failed to save part setting")
	}

	return utils.SendSuccess(c, "part setting saved", setting)
}

func (h *ExamHandler) deleteSubjectSetting(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid exam id")
	}
	subjectID, err := parseUintParam(c, "subjectId")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid subject id")
	}

	if err := h.settings.DeleteSubjectSetting(c.Context(), id, subjectID, userIDFromContext(c)); err != nil {
		return h.handleError(c, err, "failed to delete subject setting")
	}

	return utils.SendSuccess(c, "subject setting deleted", nil)
}

func (h *ExamHandler) deletePartSetting(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid exam id")
	}
	partID, err := parseUintParam(c, "partId")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid part id")
	}

	if err := h.settings.DeletePartSetting(c.Context(), id, partID, userIDFromContext(c)); err != nil {
		return h.handleError(c, err, "failed to delete part setting")
	}

	return utils.SendSuccess(c, "part setting deleted", nil)
}

func (h *ExamHandler) handleError(c *fiber.Ctx, err error, fallback string) error {
	switch {
	case errors.Is(err, service.ErrExamNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "exam not found")
	case errors.Is(err, service.ErrClassNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "class not found")
	case errors.Is(err, service.ErrForbidden):
		return utils.SendError(c, fiber.StatusForbidden, "exam belongs to another teacher")
	case isValidationError(err):
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	default:
		requestLogger(h.logger, c).Error().Err(err).Msg(fallback)
		return utils.SendError(c, fiber.StatusInternalServerError, fallback)
	}
}
