package handler

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/hirearena/contest-api/internal/middleware"
	"github.com/hirearena/contest-api/internal/service"
	"github.com/hirearena/contest-api/internal/utils"
)

func parseQueryInt(c *fiber.Ctx, key string) (int, error) {
	value := strings.TrimSpace(c.Query(key))
	if value == "" {
		return 0, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}
	return parsed, nil
}

func parseFormFloat(c *fiber.Ctx, key string) (*float64, error) {
	value := strings.TrimSpace(c.FormValue(key))
	if value == "" {
		return nil, nil
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

func parseFormInt(c *fiber.Ctx, key string) (*int, error) {
	value := strings.TrimSpace(c.FormValue(key))
	if value == "" {
		return nil, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

func userIDFromContext(c *fiber.Ctx) string {
	return middleware.UserID(c)
}

func requestContext(c *fiber.Ctx) context.Context {
	ctx := c.UserContext()
	if ctx == nil {
		ctx = context.Background()
	}
	return middleware.ContextWithCorrelation(ctx, middleware.GetCorrelationID(c))
}

// sendServiceError maps the shared service error taxonomy onto HTTP statuses.
// Handlers wrap it with their own resource-specific cases first.
func sendServiceError(c *fiber.Ctx, err error) (bool, error) {
	var (
		validationErr     *service.ValidationError
		invalidTransition *service.InvalidTransitionError
		contestNotOpen    *service.ContestNotOpenError
		stageMismatch     *service.StageMismatchError
		alreadyTerminal   *service.AlreadyTerminalError
		invalidAdvance    *service.InvalidAdvanceError
	)

	switch {
	case errors.Is(err, service.ErrContestNotFound):
		return true, utils.SendError(c, fiber.StatusNotFound, "contest not found")
	case errors.Is(err, service.ErrApplicationNotFound):
		return true, utils.SendError(c, fiber.StatusNotFound, "application not found")
	case errors.Is(err, service.ErrSkillNotFound):
		return true, utils.SendError(c, fiber.StatusNotFound, "skill not found")
	case errors.Is(err, service.ErrNotOwner):
		return true, utils.SendError(c, fiber.StatusForbidden, "caller does not own this contest")
	case errors.Is(err, service.ErrDuplicateApplication):
		return true, utils.SendError(c, fiber.StatusConflict, "an active application for this contest already exists")
	case errors.Is(err, service.ErrDuplicateFeedback):
		return true, utils.SendError(c, fiber.StatusConflict, "feedback for this stage was already recorded by this reviewer")
	case errors.Is(err, service.ErrConcurrentModification):
		return true, utils.SendError(c, fiber.StatusConflict, "application was modified concurrently, retry with fresh state")
	case errors.Is(err, service.ErrContestNotDeletable):
		return true, utils.SendError(c, fiber.StatusConflict, "only draft contests can be deleted")
	case errors.As(err, &validationErr):
		return true, utils.SendError(c, fiber.StatusBadRequest, validationErr.Error())
	case errors.As(err, &invalidTransition):
		return true, utils.SendError(c, fiber.StatusConflict, invalidTransition.Error())
	case errors.As(err, &contestNotOpen):
		return true, utils.SendError(c, fiber.StatusConflict, contestNotOpen.Error())
	case errors.As(err, &stageMismatch):
		return true, utils.SendError(c, fiber.StatusConflict, stageMismatch.Error())
	case errors.As(err, &alreadyTerminal):
		return true, utils.SendError(c, fiber.StatusConflict, alreadyTerminal.Error())
	case errors.As(err, &invalidAdvance):
		return true, utils.SendError(c, fiber.StatusConflict, invalidAdvance.Error())
	}

	return false, nil
}
