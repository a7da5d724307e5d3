package handler

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/rapor-go-api/internal/service"
	"github.com/noah-isme/rapor-go-api/internal/utils"
)

// PublicResultHandler serves share-token result lookups without authentication.
type PublicResultHandler struct {
	publish service.PublishService
	logger  zerolog.Logger
}

// NewPublicResultHandler constructs the handler instance.
func NewPublicResultHandler(publish service.PublishService, logger zerolog.Logger) *PublicResultHandler {
	return &PublicResultHandler{
		publish: publish,
		logger:  logger.With().Str("component", "public_result_handler").Logger(),
	}
}

// Register wires the public result route.
func (h *PublicResultHandler) Register(router fiber.Router) {
	router.Get("/results/:token", h.getByToken)
}

func (h *PublicResultHandler) getByToken(c *fiber.Ctx) error {
	token := strings.TrimSpace(c.Params("token"))
	if token == "" {
		return utils.SendError(c, fiber.StatusBadRequest, "token required")
	}

	result, err := h.publish.GetByToken(c.Context(), token)
	if err != nil {
		if errors.Is(err, service.ErrResultNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "result not found")
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to fetch public result")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to fetch result")
	}

	return utils.SendSuccess(c, "result retrieved", result)
}
