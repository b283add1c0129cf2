package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hirearena/contest-api/internal/models"
)

// FeedbackRepository defines persistence operations for the append-only
// feedback log.
type FeedbackRepository interface {
	Create(ctx context.Context, feedback *models.ContestFeedback) error
	ListByApplication(ctx context.Context, applicationID string) ([]models.ContestFeedback, error)
	HasDecisiveVerdict(ctx context.Context, applicationID string, stage models.FeedbackStage, reviewerID string) (bool, error)
}

type feedbackRepository struct {
	db *gorm.DB
}

// NewFeedbackRepository instantiates the repository.
func NewFeedbackRepository(db *gorm.DB) FeedbackRepository {
	return &feedbackRepository{db: db}
}

func (r *feedbackRepository) Create(ctx context.Context, feedback *models.ContestFeedback) error {
	if feedback.ID == "" {
		feedback.ID = uuid.NewString()
	}

	return r.db.WithContext(ctx).Create(feedback).Error
}

func (r *feedbackRepository) ListByApplication(ctx context.Context, applicationID string) ([]models.ContestFeedback, error) {
	var entries []models.ContestFeedback
	if err := r.db.WithContext(ctx).
		Where("application_id = ?", applicationID).
		Order("created_at ASC").
		Find(&entries).Error; err != nil {
		return nil, err
	}

	return entries, nil
}

// HasDecisiveVerdict reports whether the reviewer already recorded a PASS or
// FAIL for the stage. ON-HOLD entries do not count; the reviewer may still
// come back with a decisive verdict.
func (r *feedbackRepository) HasDecisiveVerdict(ctx context.Context, applicationID string, stage models.FeedbackStage, reviewerID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.ContestFeedback{}).
		Where("application_id = ?", applicationID).
		Where("stage = ?", stage).
		Where("reviewer_id = ?", reviewerID).
		Where("decision IN ?", []models.FeedbackDecision{models.FeedbackDecisionPass, models.FeedbackDecisionFail}).
		Count(&count).Error
	if err != nil {
		return false, err
	}

	return count > 0, nil
}
