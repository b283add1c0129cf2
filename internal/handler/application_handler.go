package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/hirearena/contest-api/internal/dto"
	"github.com/hirearena/contest-api/internal/middleware"
	"github.com/hirearena/contest-api/internal/service"
	"github.com/hirearena/contest-api/internal/utils"
)

// ApplicationHandler wires application lifecycle HTTP routes.
type ApplicationHandler struct {
	service service.ApplicationService
	logger  zerolog.Logger
}

// NewApplicationHandler constructs the handler.
func NewApplicationHandler(applications service.ApplicationService, logger zerolog.Logger) *ApplicationHandler {
	return &ApplicationHandler{
		service: applications,
		logger:  logger.With().Str("component", "application_handler").Logger(),
	}
}

// Register attaches application endpoints to the router group.
func (h *ApplicationHandler) Register(router fiber.Router) {
	applicant := middleware.RequireRole(middleware.RoleVendor, middleware.RoleFreelancer)
	reviewer := middleware.RequireRole(middleware.RoleEmployer, middleware.RoleAdmin)

	router.Post("/", applicant, h.submit)
	router.Get("/mine", applicant, h.listMine)
	router.Post("/:id/feedback", reviewer, h.recordFeedback)
	router.Post("/:id/advance", reviewer, h.advance)
}

func (h *ApplicationHandler) submit(c *fiber.Ctx) error {
	currentCTC, err := parseFormFloat(c, "current_ctc")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid current_ctc")
	}
	expectedCTC, err := parseFormFloat(c, "expected_ctc")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid expected_ctc")
	}
	noticePeriod, err := parseFormInt(c, "notice_period")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid notice_period")
	}

	payload := dto.ApplicationSubmitRequest{
		ContestID:    c.FormValue("contest_id"),
		CurrentCTC:   currentCTC,
		ExpectedCTC:  expectedCTC,
		NoticePeriod: noticePeriod,
		CoverLetter:  c.FormValue("cover_letter"),
	}

	resume, err := c.FormFile("resume")
	if err != nil {
		resume = nil
	}

	application, err := h.service.Submit(requestContext(c), userIDFromContext(c), payload, resume)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "application submitted", application)
}

func (h *ApplicationHandler) listMine(c *fiber.Ctx) error {
	applications, err := h.service.ListForApplicant(requestContext(c), userIDFromContext(c))
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "applications retrieved", applications)
}

func (h *ApplicationHandler) recordFeedback(c *fiber.Ctx) error {
	var payload dto.FeedbackRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	application, err := h.service.RecordFeedback(requestContext(c), c.Params("id"), userIDFromContext(c), payload)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "feedback recorded", application)
}

func (h *ApplicationHandler) advance(c *fiber.Ctx) error {
	var payload dto.ApplicationAdvanceRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	application, err := h.service.Advance(requestContext(c), c.Params("id"), userIDFromContext(c), payload)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "application advanced", application)
}

func (h *ApplicationHandler) handleError(c *fiber.Ctx, err error) error {
	if handled, resp := sendServiceError(c, err); handled {
		return resp
	}

	h.logger.Error().Err(err).Msg("internal server error")
	return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
}
