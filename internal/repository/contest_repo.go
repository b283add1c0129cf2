package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hirearena/contest-api/internal/models"
)

// ContestFilter narrows contest listing queries.
type ContestFilter struct {
	EmployerID string
	Status     *models.ContestStatus
	Featured   *bool
	Urgent     *bool
}

// ContestRepository defines persistence operations for contests and their skills.
type ContestRepository interface {
	List(ctx context.Context, filter ContestFilter) ([]models.Contest, error)
	GetByID(ctx context.Context, id string) (models.Contest, error)
	GetWithApplications(ctx context.Context, id string) (models.Contest, error)
	Create(ctx context.Context, contest *models.Contest) error
	Update(ctx context.Context, contest *models.Contest) error
	Delete(ctx context.Context, id string) error
	CountByEmployerAndStatus(ctx context.Context, employerID string, status models.ContestStatus) (int64, error)
	AddSkills(ctx context.Context, skills []models.ContestSkill) error
	DeleteSkill(ctx context.Context, contestID, skillID string) error
}

type contestRepository struct {
	db *gorm.DB
}

// NewContestRepository instantiates a GORM-backed repository.
func NewContestRepository(db *gorm.DB) ContestRepository {
	return &contestRepository{db: db}
}

func (r *contestRepository) List(ctx context.Context, filter ContestFilter) ([]models.Contest, error) {
	query := r.db.WithContext(ctx).Model(&models.Contest{}).Preload("Skills")

	if filter.EmployerID != "" {
		query = query.Where("employer_id = ?", filter.EmployerID)
	}

	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}

	if filter.Featured != nil {
		query = query.Where("is_featured = ?", *filter.Featured)
	}

	if filter.Urgent != nil {
		query = query.Where("is_urgent = ?", *filter.Urgent)
	}

	// Newest contests surface first; the ordering is part of the listing contract.
	var contests []models.Contest
	if err := query.Order("created_at DESC").Find(&contests).Error; err != nil {
		return nil, err
	}

	return contests, nil
}

func (r *contestRepository) GetByID(ctx context.Context, id string) (models.Contest, error) {
	var contest models.Contest
	if err := r.db.WithContext(ctx).Preload("Skills").First(&contest, "id = ?", id).Error; err != nil {
		return models.Contest{}, err
	}

	return contest, nil
}

func (r *contestRepository) GetWithApplications(ctx context.Context, id string) (models.Contest, error) {
	var contest models.Contest
	if err := r.db.WithContext(ctx).
		Preload("Skills").
		Preload("Applications", func(db *gorm.DB) *gorm.DB {
			return db.Order("contest_applications.created_at ASC")
		}).
		Preload("Applications.Feedback").
		First(&contest, "id = ?", id).Error; err != nil {
		return models.Contest{}, err
	}

	return contest, nil
}

func (r *contestRepository) Create(ctx context.Context, contest *models.Contest) error {
	if contest.ID == "" {
		contest.ID = uuid.NewString()
	}
	for i := range contest.Skills {
		if contest.Skills[i].ID == "" {
			contest.Skills[i].ID = uuid.NewString()
		}
	}

	return r.db.WithContext(ctx).Create(contest).Error
}

func (r *contestRepository) Update(ctx context.Context, contest *models.Contest) error {
	return r.db.WithContext(ctx).Save(contest).Error
}

func (r *contestRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Delete(&models.Contest{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *contestRepository) CountByEmployerAndStatus(ctx context.Context, employerID string, status models.ContestStatus) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Contest{}).
		Where("employer_id = ?", employerID).
		Where("status = ?", status).
		Count(&count).Error

	return count, err
}

func (r *contestRepository) AddSkills(ctx context.Context, skills []models.ContestSkill) error {
	if len(skills) == 0 {
		return nil
	}
	for i := range skills {
		if skills[i].ID == "" {
			skills[i].ID = uuid.NewString()
		}
	}

	return r.db.WithContext(ctx).Create(&skills).Error
}

func (r *contestRepository) DeleteSkill(ctx context.Context, contestID, skillID string) error {
	result := r.db.WithContext(ctx).
		Where("contest_id = ?", contestID).
		Delete(&models.ContestSkill{}, "id = ?", skillID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
