package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/hirearena/contest-api/internal/dto"
	"github.com/hirearena/contest-api/internal/models"
	"github.com/hirearena/contest-api/internal/observability"
	"github.com/hirearena/contest-api/internal/repository"
)

// trackerTabs is every cache key variant Invalidate has to clear.
var trackerTabs = []string{
	"",
	string(models.ContestStatusDraft),
	string(models.ContestStatusActive),
	string(models.ContestStatusOnHold),
	string(models.ContestStatusCompleted),
}

// TrackerService produces the employer dashboard: per-contest stage counters
// plus cross-contest totals, grouped under a contest status tab.
type TrackerService interface {
	GetTracker(ctx context.Context, employerID, statusTab string) (dto.TrackerResponse, error)
	Invalidate(ctx context.Context, employerID string)
}

type trackerService struct {
	contests     repository.ContestRepository
	applications repository.ApplicationRepository
	cache        *redis.Client
	cacheTTL     time.Duration
	logger       zerolog.Logger
	tracer       trace.Tracer
}

// NewTrackerService builds the dashboard aggregator. The redis client may be
// nil; counters are then recomputed on every request.
func NewTrackerService(contestRepo repository.ContestRepository, applicationRepo repository.ApplicationRepository, cache *redis.Client, ttl time.Duration, logger zerolog.Logger) TrackerService {
	return &trackerService{
		contests:     contestRepo,
		applications: applicationRepo,
		cache:        cache,
		cacheTTL:     ttl,
		logger:       logger.With().Str("component", "tracker_service").Logger(),
		tracer:       otel.Tracer("github.com/hirearena/contest-api/internal/service/tracker"),
	}
}

func (s *trackerService) GetTracker(ctx context.Context, employerID, statusTab string) (dto.TrackerResponse, error) {
	if statusTab != "" && !models.ContestStatus(statusTab).IsValid() {
		return dto.TrackerResponse{}, &ValidationError{Fields: []FieldError{
			{Field: "status", Reason: "must be one of DRAFT ACTIVE ON-HOLD COMPLETED"},
		}}
	}

	spanCtx, span := s.tracer.Start(ctx, "tracker.get", trace.WithAttributes(
		attribute.String("tracker.employer_id", employerID),
		attribute.String("tracker.status_tab", statusTab),
	))
	defer span.End()

	cacheKey := trackerCacheKey(employerID, statusTab)
	if s.cache != nil {
		if cached, err := s.cache.Get(spanCtx, cacheKey).Result(); err == nil {
			var response dto.TrackerResponse
			if unmarshalErr := json.Unmarshal([]byte(cached), &response); unmarshalErr == nil {
				s.logger.Debug().Str("employer_id", employerID).Msg("tracker cache hit")
				observability.TrackerCacheHitsTotal().Inc()
				response.CacheHit = true
				return response, nil
			}
		} else if err != redis.Nil {
			s.logger.Warn().Err(err).Msg("failed to read tracker cache")
		}
	}

	response, err := s.build(spanCtx, employerID, statusTab)
	if err != nil {
		span.RecordError(err)
		return dto.TrackerResponse{}, err
	}

	if s.cache != nil {
		if payload, err := json.Marshal(response); err == nil {
			if err := s.cache.Set(spanCtx, cacheKey, payload, s.cacheTTL).Err(); err != nil {
				s.logger.Warn().Err(err).Msg("failed to store tracker cache")
			}
		}
	}

	return response, nil
}

// Invalidate clears every tab's cached tracker for the employer. Lifecycle
// writers call it after any counter-moving mutation.
func (s *trackerService) Invalidate(ctx context.Context, employerID string) {
	if s.cache == nil {
		return
	}

	keys := make([]string, 0, len(trackerTabs))
	for _, tab := range trackerTabs {
		keys = append(keys, trackerCacheKey(employerID, tab))
	}

	if err := s.cache.Del(ctx, keys...).Err(); err != nil {
		s.logger.Warn().Err(err).Str("employer_id", employerID).Msg("failed to invalidate tracker cache")
	}
}

func (s *trackerService) build(ctx context.Context, employerID, statusTab string) (dto.TrackerResponse, error) {
	filter := repository.ContestFilter{EmployerID: employerID}
	if statusTab != "" {
		status := models.ContestStatus(statusTab)
		filter.Status = &status
	}

	contests, err := s.contests.List(ctx, filter)
	if err != nil {
		return dto.TrackerResponse{}, err
	}

	ids := make([]string, 0, len(contests))
	for _, contest := range contests {
		ids = append(ids, contest.ID)
	}

	applications, err := s.applications.ListByContestIDs(ctx, ids)
	if err != nil {
		return dto.TrackerResponse{}, err
	}

	// Counters always come from the application rows, never from stored
	// aggregates, so concurrent stage moves cannot drift the dashboard.
	counters := BucketCounters(applications)

	totals := dto.TrackerBuckets{}
	rows := make([]dto.TrackerContestRow, 0, len(contests))
	for _, contest := range contests {
		bucket := counters[contest.ID]
		totals.Submitted += bucket.Submitted
		totals.Shortlisted += bucket.Shortlisted
		totals.L1 += bucket.L1
		totals.L2 += bucket.L2
		totals.L3 += bucket.L3
		totals.Offered += bucket.Offered

		rows = append(rows, dto.TrackerContestRow{
			ContestID: contest.ID,
			JobTitle:  contest.JobTitle,
			Status:    string(contest.Status),
			Counters:  bucket,
		})
	}

	drafted, err := s.contests.CountByEmployerAndStatus(ctx, employerID, models.ContestStatusDraft)
	if err != nil {
		return dto.TrackerResponse{}, err
	}
	totals.Drafted = drafted

	return dto.TrackerResponse{
		StatusTab: statusTab,
		Totals:    totals,
		Contests:  rows,
	}, nil
}

func trackerCacheKey(employerID, statusTab string) string {
	if statusTab == "" {
		statusTab = "all"
	}
	return fmt.Sprintf("tracker:employer:%s:%s", employerID, statusTab)
}
