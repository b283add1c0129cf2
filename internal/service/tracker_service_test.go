package service

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/hirearena/contest-api/internal/dto"
	"github.com/hirearena/contest-api/internal/models"
)

func newTrackerFixture(t *testing.T) (TrackerService, *memoryContestRepo, *memoryApplicationRepo, *miniredis.Miniredis) {
	t.Helper()

	contests := newMemoryContestRepo()
	applications := newMemoryApplicationRepo()

	server := miniredis.RunT(t)
	cache := redis.NewClient(&redis.Options{Addr: server.Addr()})

	svc := NewTrackerService(contests, applications, cache, time.Minute, testLogger())
	return svc, contests, applications, server
}

func TestTrackerServiceAggregatesBuckets(t *testing.T) {
	svc, contests, applications, _ := newTrackerFixture(t)

	first := seedContest(t, contests, models.ContestStatusActive)
	second := seedContest(t, contests, models.ContestStatusActive)
	seedContest(t, contests, models.ContestStatusDraft)

	statuses := map[string][]models.ApplicationStatus{
		first.ID: {
			models.ApplicationStatusSubmitted,
			models.ApplicationStatusShortlisted,
			models.ApplicationStatusL1,
			models.ApplicationStatusRejected,
		},
		second.ID: {
			models.ApplicationStatusSubmitted,
			models.ApplicationStatusOffered,
		},
	}
	n := 0
	for contestID, list := range statuses {
		for _, status := range list {
			n++
			require.NoError(t, applications.Create(context.Background(), &models.ContestApplication{
				ContestID:   contestID,
				ApplicantID: testID("applicant", n),
				Status:      status,
			}))
		}
	}

	tracker, err := svc.GetTracker(context.Background(), testEmployerID, "ACTIVE")
	require.NoError(t, err)
	require.Len(t, tracker.Contests, 2)
	require.Equal(t, int64(2), tracker.Totals.Submitted)
	require.Equal(t, int64(1), tracker.Totals.Shortlisted)
	require.Equal(t, int64(1), tracker.Totals.L1)
	require.Equal(t, int64(0), tracker.Totals.L2)
	require.Equal(t, int64(1), tracker.Totals.Offered)
	require.Equal(t, int64(1), tracker.Totals.Drafted)
	require.False(t, tracker.CacheHit)

	// Rejected rows never count toward any bucket.
	var rowTotal int64
	for _, row := range tracker.Contests {
		rowTotal += row.Counters.Submitted + row.Counters.Shortlisted +
			row.Counters.L1 + row.Counters.L2 + row.Counters.L3 + row.Counters.Offered
	}
	require.Equal(t, int64(5), rowTotal)
}

func TestTrackerServiceRejectsUnknownTab(t *testing.T) {
	svc, _, _, _ := newTrackerFixture(t)

	_, err := svc.GetTracker(context.Background(), testEmployerID, "ARCHIVED")
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
}

func TestTrackerServiceServesCachedResponse(t *testing.T) {
	svc, contests, applications, _ := newTrackerFixture(t)

	contest := seedContest(t, contests, models.ContestStatusActive)
	require.NoError(t, applications.Create(context.Background(), &models.ContestApplication{
		ContestID:   contest.ID,
		ApplicantID: testApplicantID,
		Status:      models.ApplicationStatusSubmitted,
	}))

	fresh, err := svc.GetTracker(context.Background(), testEmployerID, "ACTIVE")
	require.NoError(t, err)
	require.False(t, fresh.CacheHit)

	// New rows are invisible until the cache expires or is invalidated.
	require.NoError(t, applications.Create(context.Background(), &models.ContestApplication{
		ContestID:   contest.ID,
		ApplicantID: testIntruderID,
		Status:      models.ApplicationStatusSubmitted,
	}))

	cached, err := svc.GetTracker(context.Background(), testEmployerID, "ACTIVE")
	require.NoError(t, err)
	require.True(t, cached.CacheHit)
	require.Equal(t, int64(1), cached.Totals.Submitted)

	svc.Invalidate(context.Background(), testEmployerID)

	recomputed, err := svc.GetTracker(context.Background(), testEmployerID, "ACTIVE")
	require.NoError(t, err)
	require.False(t, recomputed.CacheHit)
	require.Equal(t, int64(2), recomputed.Totals.Submitted)
}

func TestTrackerServiceRecomputedAfterSubmission(t *testing.T) {
	svc, contests, applications, _ := newTrackerFixture(t)

	feedback := newMemoryFeedbackRepo()
	applications.feedback = feedback
	contests.applications = applications

	validate := validator.New(validator.WithRequiredStructEnabled())
	applicationSvc := NewApplicationService(applications, contests, feedback, validate, nil, nil, svc, testLogger())

	contest := seedContest(t, contests, models.ContestStatusActive)

	warm, err := svc.GetTracker(context.Background(), testEmployerID, "ACTIVE")
	require.NoError(t, err)
	require.False(t, warm.CacheHit)
	require.Zero(t, warm.Totals.Submitted)

	_, err = applicationSvc.Submit(context.Background(), testApplicantID, dto.ApplicationSubmitRequest{ContestID: contest.ID}, nil)
	require.NoError(t, err)

	// The submission dropped the owner's cached view; the next read shows the
	// new row instead of a stale hit.
	fresh, err := svc.GetTracker(context.Background(), testEmployerID, "ACTIVE")
	require.NoError(t, err)
	require.False(t, fresh.CacheHit)
	require.Equal(t, int64(1), fresh.Totals.Submitted)
}

func TestTrackerServiceWorksWithoutCache(t *testing.T) {
	contests := newMemoryContestRepo()
	applications := newMemoryApplicationRepo()
	svc := NewTrackerService(contests, applications, nil, time.Minute, testLogger())

	seedContest(t, contests, models.ContestStatusDraft)

	tracker, err := svc.GetTracker(context.Background(), testEmployerID, "")
	require.NoError(t, err)
	require.Equal(t, int64(1), tracker.Totals.Drafted)
	require.Len(t, tracker.Contests, 1)
}
