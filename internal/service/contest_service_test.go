package service

import (
	"context"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"

	"github.com/hirearena/contest-api/internal/dto"
	"github.com/hirearena/contest-api/internal/models"
)

func newContestFixture() (ContestService, *memoryContestRepo, *memoryApplicationRepo) {
	contests := newMemoryContestRepo()
	applications := newMemoryApplicationRepo()
	validate := validator.New(validator.WithRequiredStructEnabled())
	svc := NewContestService(contests, applications, validate, testLogger())
	return svc, contests, applications
}

func validContestRequest() dto.ContestCreateRequest {
	return dto.ContestCreateRequest{
		JobTitle:         "Senior Go Engineer",
		ShortDescription: "Build the contest platform backend",
		LocationType:     "REMOTE",
		EmploymentType:   "Full-time",
		ExperienceMin:    3,
		ExperienceMax:    8,
		BudgetMin:        90000,
		BudgetMax:        140000,
	}
}

func TestContestServiceCreateStartsDraft(t *testing.T) {
	svc, _, _ := newContestFixture()

	payload := validContestRequest()
	payload.DetailedDescription = "<p>Great role</p><script>alert(1)</script>"

	contest, err := svc.Create(context.Background(), "00000000-0000-4000-8000-0000000000aa", payload)
	require.NoError(t, err)
	require.Equal(t, string(models.ContestStatusDraft), contest.Status)
	require.NotContains(t, contest.DetailedDescription, "<script>")
	require.Contains(t, contest.DetailedDescription, "Great role")
	require.Zero(t, contest.Counters.Submitted)
	require.Zero(t, contest.Counters.Offered)
}

func TestContestServiceCreateReportsAllViolations(t *testing.T) {
	svc, _, _ := newContestFixture()

	payload := dto.ContestCreateRequest{
		ShortDescription: "missing almost everything",
		LocationType:     "ON-SITE",
		EmploymentType:   "Full-time",
		ExperienceMin:    5,
		ExperienceMax:    2,
		BudgetMin:        100,
		BudgetMax:        50,
	}

	_, err := svc.Create(context.Background(), "00000000-0000-4000-8000-0000000000aa", payload)
	require.Error(t, err)

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)

	fields := make(map[string]string, len(validationErr.Fields))
	for _, field := range validationErr.Fields {
		fields[field.Field] = field.Reason
	}
	require.Contains(t, fields, "JobTitle")
	require.Contains(t, fields, "ExperienceMax")
	require.Contains(t, fields, "BudgetMax")
	require.Contains(t, fields, "LocationCity")
	require.Contains(t, fields, "LocationState")
}

func TestContestServiceUpdateStatusTransitions(t *testing.T) {
	svc, _, _ := newContestFixture()
	employer := "00000000-0000-4000-8000-0000000000aa"

	contest, err := svc.Create(context.Background(), employer, validContestRequest())
	require.NoError(t, err)

	activate := "ACTIVE"
	updated, err := svc.Update(context.Background(), contest.ID, employer, dto.ContestUpdateRequest{Status: &activate})
	require.NoError(t, err)
	require.Equal(t, "ACTIVE", updated.Status)

	back := "DRAFT"
	_, err = svc.Update(context.Background(), contest.ID, employer, dto.ContestUpdateRequest{Status: &back})
	var transitionErr *InvalidTransitionError
	require.ErrorAs(t, err, &transitionErr)
	require.Equal(t, models.ContestStatusActive, transitionErr.From)
	require.Equal(t, models.ContestStatusDraft, transitionErr.To)

	complete := "COMPLETED"
	_, err = svc.Update(context.Background(), contest.ID, employer, dto.ContestUpdateRequest{Status: &complete})
	require.NoError(t, err)

	reopen := "ACTIVE"
	_, err = svc.Update(context.Background(), contest.ID, employer, dto.ContestUpdateRequest{Status: &reopen})
	require.ErrorAs(t, err, &transitionErr)
}

func TestContestServiceUpdateRejectsNonOwner(t *testing.T) {
	svc, _, _ := newContestFixture()

	contest, err := svc.Create(context.Background(), "00000000-0000-4000-8000-0000000000aa", validContestRequest())
	require.NoError(t, err)

	title := "Hijacked"
	_, err = svc.Update(context.Background(), contest.ID, "00000000-0000-4000-8000-0000000000bb", dto.ContestUpdateRequest{JobTitle: &title})
	require.ErrorIs(t, err, ErrNotOwner)
}

func TestContestServiceDeleteOnlyDrafts(t *testing.T) {
	svc, _, _ := newContestFixture()
	employer := "00000000-0000-4000-8000-0000000000aa"

	contest, err := svc.Create(context.Background(), employer, validContestRequest())
	require.NoError(t, err)

	activate := "ACTIVE"
	_, err = svc.Update(context.Background(), contest.ID, employer, dto.ContestUpdateRequest{Status: &activate})
	require.NoError(t, err)

	err = svc.Delete(context.Background(), contest.ID, employer)
	require.ErrorIs(t, err, ErrContestNotDeletable)

	draft, err := svc.Create(context.Background(), employer, validContestRequest())
	require.NoError(t, err)
	require.NoError(t, svc.Delete(context.Background(), draft.ID, employer))

	_, err = svc.GetByID(context.Background(), draft.ID)
	require.ErrorIs(t, err, ErrContestNotFound)
}

func TestContestServiceCountersComputedFromApplications(t *testing.T) {
	svc, _, applications := newContestFixture()
	employer := "00000000-0000-4000-8000-0000000000aa"

	contest, err := svc.Create(context.Background(), employer, validContestRequest())
	require.NoError(t, err)

	statuses := []models.ApplicationStatus{
		models.ApplicationStatusSubmitted,
		models.ApplicationStatusSubmitted,
		models.ApplicationStatusShortlisted,
		models.ApplicationStatusL2,
		models.ApplicationStatusOffered,
		models.ApplicationStatusRejected,
	}
	for i, status := range statuses {
		require.NoError(t, applications.Create(context.Background(), &models.ContestApplication{
			ContestID:   contest.ID,
			ApplicantID: testID("applicant", i+1),
			Status:      status,
		}))
	}

	fetched, err := svc.GetByID(context.Background(), contest.ID)
	require.NoError(t, err)
	require.Equal(t, int64(2), fetched.Counters.Submitted)
	require.Equal(t, int64(1), fetched.Counters.Shortlisted)
	require.Equal(t, int64(0), fetched.Counters.L1)
	require.Equal(t, int64(1), fetched.Counters.L2)
	require.Equal(t, int64(1), fetched.Counters.Offered)
}

func TestContestServiceListActiveHidesDrafts(t *testing.T) {
	svc, _, _ := newContestFixture()
	employer := "00000000-0000-4000-8000-0000000000aa"

	draft, err := svc.Create(context.Background(), employer, validContestRequest())
	require.NoError(t, err)

	second, err := svc.Create(context.Background(), employer, validContestRequest())
	require.NoError(t, err)
	activate := "ACTIVE"
	_, err = svc.Update(context.Background(), second.ID, employer, dto.ContestUpdateRequest{Status: &activate})
	require.NoError(t, err)

	listed, err := svc.ListActive(context.Background())
	require.NoError(t, err)
	require.Len(t, listed, 1)
	require.Equal(t, second.ID, listed[0].ID)
	require.NotEqual(t, draft.ID, listed[0].ID)
}

func TestBucketCountersIsOrderIndependent(t *testing.T) {
	rows := []models.ContestApplication{
		{ContestID: "c1", Status: models.ApplicationStatusSubmitted},
		{ContestID: "c1", Status: models.ApplicationStatusL1},
		{ContestID: "c2", Status: models.ApplicationStatusOffered},
		{ContestID: "c1", Status: models.ApplicationStatusL1},
	}

	forward := BucketCounters(rows)

	reversed := make([]models.ContestApplication, 0, len(rows))
	for i := len(rows) - 1; i >= 0; i-- {
		reversed = append(reversed, rows[i])
	}
	backward := BucketCounters(reversed)

	require.Equal(t, forward, backward)
	require.Equal(t, int64(2), forward["c1"].L1)
	require.Equal(t, int64(1), forward["c2"].Offered)
}
