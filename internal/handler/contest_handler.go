package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/hirearena/contest-api/internal/dto"
	"github.com/hirearena/contest-api/internal/middleware"
	"github.com/hirearena/contest-api/internal/models"
	"github.com/hirearena/contest-api/internal/service"
	"github.com/hirearena/contest-api/internal/utils"
)

// ContestHandler wires contest HTTP routes.
type ContestHandler struct {
	service      service.ContestService
	applications service.ApplicationService
	tracker      service.TrackerService
	logger       zerolog.Logger
}

// NewContestHandler constructs the handler.
func NewContestHandler(contests service.ContestService, applications service.ApplicationService, tracker service.TrackerService, logger zerolog.Logger) *ContestHandler {
	return &ContestHandler{
		service:      contests,
		applications: applications,
		tracker:      tracker,
		logger:       logger.With().Str("component", "contest_handler").Logger(),
	}
}

// Register attaches contest endpoints to the router group. The active,
// featured, urgent and detail reads stay public; everything else runs behind
// the authenticated middleware plus the employer role.
func (h *ContestHandler) Register(router fiber.Router, authenticated fiber.Handler) {
	employer := middleware.RequireRole(middleware.RoleEmployer, middleware.RoleAdmin)

	router.Get("/", h.listActive)
	router.Get("/featured", h.listFeatured)
	router.Get("/urgent", h.listUrgent)
	router.Get("/mine", authenticated, employer, h.listMine)
	router.Get("/:id", h.get)
	router.Post("/", authenticated, employer, h.create)
	router.Patch("/:id", authenticated, employer, h.update)
	router.Delete("/:id", authenticated, employer, h.delete)
	router.Get("/:id/applications", authenticated, employer, h.listApplications)
	router.Post("/:id/skills", authenticated, employer, h.addSkills)
	router.Delete("/:id/skills/:skillId", authenticated, employer, h.deleteSkill)
}

func (h *ContestHandler) listActive(c *fiber.Ctx) error {
	contests, err := h.service.ListActive(requestContext(c))
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "contests retrieved", contests)
}

func (h *ContestHandler) listFeatured(c *fiber.Ctx) error {
	contests, err := h.service.ListFeatured(requestContext(c))
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "featured contests retrieved", contests)
}

func (h *ContestHandler) listUrgent(c *fiber.Ctx) error {
	contests, err := h.service.ListUrgent(requestContext(c))
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "urgent contests retrieved", contests)
}

func (h *ContestHandler) listMine(c *fiber.Ctx) error {
	var status *models.ContestStatus
	if raw := c.Query("status"); raw != "" {
		parsed := models.ContestStatus(raw)
		if !parsed.IsValid() {
			return utils.SendError(c, fiber.StatusBadRequest, "invalid contest status")
		}
		status = &parsed
	}

	contests, err := h.service.ListForEmployer(requestContext(c), userIDFromContext(c), status)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "contests retrieved", contests)
}

func (h *ContestHandler) get(c *fiber.Ctx) error {
	contest, err := h.service.GetByID(requestContext(c), c.Params("id"))
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "contest retrieved", contest)
}

func (h *ContestHandler) create(c *fiber.Ctx) error {
	var payload dto.ContestCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	contest, err := h.service.Create(requestContext(c), userIDFromContext(c), payload)
	if err != nil {
		return h.handleError(c, err)
	}

	h.invalidateTracker(c)

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "contest created", contest)
}

func (h *ContestHandler) update(c *fiber.Ctx) error {
	var payload dto.ContestUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	contest, err := h.service.Update(requestContext(c), c.Params("id"), userIDFromContext(c), payload)
	if err != nil {
		return h.handleError(c, err)
	}

	h.invalidateTracker(c)

	return utils.SendSuccess(c, "contest updated", contest)
}

func (h *ContestHandler) delete(c *fiber.Ctx) error {
	if err := h.service.Delete(requestContext(c), c.Params("id"), userIDFromContext(c)); err != nil {
		return h.handleError(c, err)
	}

	h.invalidateTracker(c)

	return utils.SendSuccess(c, "contest deleted", fiber.Map{"id": c.Params("id")})
}

func (h *ContestHandler) listApplications(c *fiber.Ctx) error {
	applications, err := h.applications.ListForContest(requestContext(c), c.Params("id"), userIDFromContext(c))
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "applications retrieved", applications)
}

func (h *ContestHandler) addSkills(c *fiber.Ctx) error {
	var payload []dto.ContestSkillRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	skills, err := h.service.AddSkills(requestContext(c), c.Params("id"), userIDFromContext(c), payload)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "skills added", skills)
}

func (h *ContestHandler) deleteSkill(c *fiber.Ctx) error {
	if err := h.service.DeleteSkill(requestContext(c), c.Params("id"), c.Params("skillId"), userIDFromContext(c)); err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "skill removed", fiber.Map{"id": c.Params("skillId")})
}

func (h *ContestHandler) invalidateTracker(c *fiber.Ctx) {
	if h.tracker == nil {
		return
	}
	h.tracker.Invalidate(requestContext(c), userIDFromContext(c))
}

func (h *ContestHandler) handleError(c *fiber.Ctx, err error) error {
	if handled, resp := sendServiceError(c, err); handled {
		return resp
	}

	h.logger.Error().Err(err).Msg("internal server error")
	return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
}
