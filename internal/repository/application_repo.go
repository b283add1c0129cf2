package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hirearena/contest-api/internal/models"
)

// ErrStatusConflict is returned when a compare-and-set status update finds the
// row no longer in the expected status.
var ErrStatusConflict = errors.New("application status changed concurrently")

// ApplicationRepository defines persistence operations for contest applications.
type ApplicationRepository interface {
	Create(ctx context.Context, application *models.ContestApplication) error
	GetByID(ctx context.Context, id string) (models.ContestApplication, error)
	FindActiveByContestAndApplicant(ctx context.Context, contestID, applicantID string) (models.ContestApplication, error)
	ListByContestIDs(ctx context.Context, contestIDs []string) ([]models.ContestApplication, error)
	ListByApplicant(ctx context.Context, applicantID string) ([]models.ContestApplication, error)
	UpdateStatusFrom(ctx context.Context, id string, from, to models.ApplicationStatus) error
}

type applicationRepository struct {
	db *gorm.DB
}

// NewApplicationRepository instantiates the repository.
func NewApplicationRepository(db *gorm.DB) ApplicationRepository {
	return &applicationRepository{db: db}
}

func (r *applicationRepository) baseQuery(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Model(&models.ContestApplication{}).
		Preload("Feedback", func(db *gorm.DB) *gorm.DB {
			return db.Order("contest_feedbacks.created_at ASC")
		})
}

func (r *applicationRepository) Create(ctx context.Context, application *models.ContestApplication) error {
	if application.ID == "" {
		application.ID = uuid.NewString()
	}

	return r.db.WithContext(ctx).Create(application).Error
}

func (r *applicationRepository) GetByID(ctx context.Context, id string) (models.ContestApplication, error) {
	var application models.ContestApplication
	if err := r.baseQuery(ctx).First(&application, "id = ?", id).Error; err != nil {
		return models.ContestApplication{}, err
	}

	return application, nil
}

func (r *applicationRepository) FindActiveByContestAndApplicant(ctx context.Context, contestID, applicantID string) (models.ContestApplication, error) {
	var application models.ContestApplication
	if err := r.db.WithContext(ctx).
		Where("contest_id = ?", contestID).
		Where("applicant_id = ?", applicantID).
		Where("status <> ?", models.ApplicationStatusRejected).
		First(&application).Error; err != nil {
		return models.ContestApplication{}, err
	}

	return application, nil
}

func (r *applicationRepository) ListByContestIDs(ctx context.Context, contestIDs []string) ([]models.ContestApplication, error) {
	if len(contestIDs) == 0 {
		return nil, nil
	}

	var applications []models.ContestApplication
	if err := r.db.WithContext(ctx).
		Where("contest_id IN ?", contestIDs).
		Find(&applications).Error; err != nil {
		return nil, err
	}

	return applications, nil
}

func (r *applicationRepository) ListByApplicant(ctx context.Context, applicantID string) ([]models.ContestApplication, error) {
	var applications []models.ContestApplication
	if err := r.baseQuery(ctx).
		Where("applicant_id = ?", applicantID).
		Order("created_at DESC").
		Find(&applications).Error; err != nil {
		return nil, err
	}

	return applications, nil
}

// UpdateStatusFrom advances the status only when the row still holds the
// expected current status. A concurrent writer that got there first leaves
// zero affected rows and the caller receives ErrStatusConflict.
func (r *applicationRepository) UpdateStatusFrom(ctx context.Context, id string, from, to models.ApplicationStatus) error {
	result := r.db.WithContext(ctx).Model(&models.ContestApplication{}).
		Where("id = ?", id).
		Where("status = ?", from).
		Update("status", to)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrStatusConflict
	}
	return nil
}
