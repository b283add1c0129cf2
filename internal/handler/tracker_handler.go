package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/hirearena/contest-api/internal/service"
	"github.com/hirearena/contest-api/internal/utils"
)

// TrackerHandler exposes the employer dashboard aggregation.
type TrackerHandler struct {
	service service.TrackerService
	logger  zerolog.Logger
}

// NewTrackerHandler constructs the handler.
func NewTrackerHandler(tracker service.TrackerService, logger zerolog.Logger) *TrackerHandler {
	return &TrackerHandler{
		service: tracker,
		logger:  logger.With().Str("component", "tracker_handler").Logger(),
	}
}

// Register attaches tracker endpoints to the router group.
func (h *TrackerHandler) Register(router fiber.Router) {
	router.Get("/", h.get)
}

func (h *TrackerHandler) get(c *fiber.Ctx) error {
	tracker, err := h.service.GetTracker(requestContext(c), userIDFromContext(c), c.Query("status"))
	if err != nil {
		if handled, resp := sendServiceError(c, err); handled {
			return resp
		}
		h.logger.Error().Err(err).Msg("internal server error")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}

	return utils.SendSuccess(c, "tracker retrieved", tracker)
}
