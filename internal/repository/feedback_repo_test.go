package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hirearena/contest-api/internal/models"
)

func TestFeedbackRepositoryHasDecisiveVerdict(t *testing.T) {
	db := setupTestDB(t)
	repo := NewFeedbackRepository(db)
	applicationRepo := NewApplicationRepository(db)
	ctx := context.Background()

	contest := seedDBContest(t, db, models.ContestStatusActive)
	application := models.ContestApplication{
		ContestID:   contest.ID,
		ApplicantID: "5f0c1fb4-2222-4e8a-9b1d-000000000020",
		Status:      models.ApplicationStatusL1,
	}
	require.NoError(t, applicationRepo.Create(ctx, &application))

	// ON-HOLD entries never close the stage for the reviewer.
	require.NoError(t, repo.Create(ctx, &models.ContestFeedback{
		ApplicationID: application.ID,
		Stage:         models.FeedbackStageL1,
		ReviewerID:    contest.EmployerID,
		Decision:      models.FeedbackDecisionOnHold,
	}))

	decided, err := repo.HasDecisiveVerdict(ctx, application.ID, models.FeedbackStageL1, contest.EmployerID)
	require.NoError(t, err)
	require.False(t, decided)

	require.NoError(t, repo.Create(ctx, &models.ContestFeedback{
		ApplicationID: application.ID,
		Stage:         models.FeedbackStageL1,
		ReviewerID:    contest.EmployerID,
		Decision:      models.FeedbackDecisionPass,
	}))

	decided, err = repo.HasDecisiveVerdict(ctx, application.ID, models.FeedbackStageL1, contest.EmployerID)
	require.NoError(t, err)
	require.True(t, decided)

	// Other stages and other reviewers remain open.
	decided, err = repo.HasDecisiveVerdict(ctx, application.ID, models.FeedbackStageL2, contest.EmployerID)
	require.NoError(t, err)
	require.False(t, decided)

	decided, err = repo.HasDecisiveVerdict(ctx, application.ID, models.FeedbackStageL1, "5f0c1fb4-3333-4e8a-9b1d-000000000001")
	require.NoError(t, err)
	require.False(t, decided)
}

func TestFeedbackRepositoryListByApplicationOrdersByCreation(t *testing.T) {
	db := setupTestDB(t)
	repo := NewFeedbackRepository(db)
	applicationRepo := NewApplicationRepository(db)
	ctx := context.Background()

	contest := seedDBContest(t, db, models.ContestStatusActive)
	application := models.ContestApplication{
		ContestID:   contest.ID,
		ApplicantID: "5f0c1fb4-2222-4e8a-9b1d-000000000021",
		Status:      models.ApplicationStatusL2,
	}
	require.NoError(t, applicationRepo.Create(ctx, &application))

	stages := []models.FeedbackStage{
		models.FeedbackStageShortlisting,
		models.FeedbackStageL1,
		models.FeedbackStageL2,
	}
	for _, stage := range stages {
		require.NoError(t, repo.Create(ctx, &models.ContestFeedback{
			ApplicationID: application.ID,
			Stage:         stage,
			ReviewerID:    contest.EmployerID,
			Decision:      models.FeedbackDecisionPass,
		}))
	}

	entries, err := repo.ListByApplication(ctx, application.ID)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	for i, stage := range stages {
		require.Equal(t, stage, entries[i].Stage)
	}
}
