package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/hirearena/contest-api/internal/dto"
	"github.com/hirearena/contest-api/internal/service"
	"github.com/hirearena/contest-api/internal/utils"
)

// stubContestService overrides only the public reads; every other method
// panics if a route under test unexpectedly reaches it.
type stubContestService struct {
	service.ContestService
}

func (stubContestService) ListActive(context.Context) ([]dto.ContestResponse, error) {
	return []dto.ContestResponse{}, nil
}

func (stubContestService) ListFeatured(context.Context) ([]dto.ContestResponse, error) {
	return []dto.ContestResponse{}, nil
}

func (stubContestService) ListUrgent(context.Context) ([]dto.ContestResponse, error) {
	return []dto.ContestResponse{}, nil
}

func (stubContestService) GetByID(context.Context, string) (dto.ContestResponse, error) {
	return dto.ContestResponse{}, service.ErrContestNotFound
}

func denyAll(c *fiber.Ctx) error {
	return utils.SendError(c, fiber.StatusUnauthorized, "authorization header missing")
}

func TestContestRoutesPublicReadsSkipAuthentication(t *testing.T) {
	app := fiber.New()
	h := NewContestHandler(stubContestService{}, nil, nil, zerolog.Nop())
	h.Register(app.Group("/contests"), denyAll)

	public := []string{"/contests/", "/contests/featured", "/contests/urgent"}
	for _, path := range public {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		require.Equal(t, fiber.StatusOK, resp.StatusCode, path)
	}

	// The detail read is public too; an unknown id is a 404, never a 401.
	req := httptest.NewRequest(http.MethodGet, "/contests/some-id", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestContestRoutesMutationsRequireAuthentication(t *testing.T) {
	app := fiber.New()
	h := NewContestHandler(stubContestService{}, nil, nil, zerolog.Nop())
	h.Register(app.Group("/contests"), denyAll)

	requests := []*http.Request{
		httptest.NewRequest(http.MethodPost, "/contests/", nil),
		httptest.NewRequest(http.MethodPatch, "/contests/some-id", nil),
		httptest.NewRequest(http.MethodDelete, "/contests/some-id", nil),
		httptest.NewRequest(http.MethodGet, "/contests/mine", nil),
		httptest.NewRequest(http.MethodGet, "/contests/some-id/applications", nil),
	}
	for _, req := range requests {
		resp, err := app.Test(req)
		require.NoError(t, err)
		require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode, req.Method+" "+req.URL.Path)
	}
}
