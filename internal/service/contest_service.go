package service

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/hirearena/contest-api/internal/dto"
	"github.com/hirearena/contest-api/internal/models"
	"github.com/hirearena/contest-api/internal/repository"
)

// ContestService owns contest records, their skills and field-level invariants.
type ContestService interface {
	Create(ctx context.Context, employerID string, payload dto.ContestCreateRequest) (dto.ContestResponse, error)
	Update(ctx context.Context, id, employerID string, payload dto.ContestUpdateRequest) (dto.ContestResponse, error)
	Delete(ctx context.Context, id, employerID string) error
	GetByID(ctx context.Context, id string) (dto.ContestResponse, error)
	ListForEmployer(ctx context.Context, employerID string, status *models.ContestStatus) ([]dto.ContestResponse, error)
	ListActive(ctx context.Context) ([]dto.ContestResponse, error)
	ListFeatured(ctx context.Context) ([]dto.ContestResponse, error)
	ListUrgent(ctx context.Context) ([]dto.ContestResponse, error)
	AddSkills(ctx context.Context, contestID, employerID string, skills []dto.ContestSkillRequest) ([]dto.ContestSkillResponse, error)
	DeleteSkill(ctx context.Context, contestID, skillID, employerID string) error
}

type contestService struct {
	contests     repository.ContestRepository
	applications repository.ApplicationRepository
	validator    *validator.Validate
	sanitizer    *bluemonday.Policy
	logger       zerolog.Logger
	now          func() time.Time
}

// NewContestService constructs a ContestService instance.
func NewContestService(contestRepo repository.ContestRepository, applicationRepo repository.ApplicationRepository, validate *validator.Validate, logger zerolog.Logger) ContestService {
	return &contestService{
		contests:     contestRepo,
		applications: applicationRepo,
		validator:    validate,
		sanitizer:    bluemonday.UGCPolicy(),
		logger:       logger.With().Str("component", "contest_service").Logger(),
		now:          time.Now,
	}
}

func (s *contestService) Create(ctx context.Context, employerID string, payload dto.ContestCreateRequest) (dto.ContestResponse, error) {
	if err := translateValidation(s.validator.Struct(payload)); err != nil {
		return dto.ContestResponse{}, err
	}

	contest := models.Contest{
		EmployerID:          employerID,
		JobTitle:            payload.JobTitle,
		ShortDescription:    s.sanitizer.Sanitize(payload.ShortDescription),
		DetailedDescription: s.sanitizer.Sanitize(payload.DetailedDescription),
		LocationType:        models.LocationType(payload.LocationType),
		LocationCity:        payload.LocationCity,
		LocationState:       payload.LocationState,
		LocationCountry:     payload.LocationCountry,
		EmploymentType:      models.EmploymentType(payload.EmploymentType),
		ExperienceMin:       payload.ExperienceMin,
		ExperienceMax:       payload.ExperienceMax,
		BudgetMin:           payload.BudgetMin,
		BudgetMax:           payload.BudgetMax,
		FreelancerFee:       payload.FreelancerFee,
		VendorFee:           payload.VendorFee,
		Status:              models.ContestStatusDraft,
		IsFeatured:          payload.IsFeatured,
		IsUrgent:            payload.IsUrgent,
		ApplicationDeadline: payload.ApplicationDeadline,
		DriveDate:           payload.DriveDate,
		DriveStartTime:      payload.DriveStartTime,
		DriveEndTime:        payload.DriveEndTime,
		DriveTimezone:       payload.DriveTimezone,
	}

	for _, skill := range payload.Skills {
		contest.Skills = append(contest.Skills, models.ContestSkill{
			SkillName:       skill.SkillName,
			ExperienceYears: skill.ExperienceYears,
			IsMandatory:     skill.IsMandatory,
		})
	}

	if err := s.contests.Create(ctx, &contest); err != nil {
		return dto.ContestResponse{}, err
	}

	created, err := s.contests.GetByID(ctx, contest.ID)
	if err != nil {
		return dto.ContestResponse{}, err
	}

	s.logger.Info().Str("contest_id", created.ID).Str("employer_id", employerID).Msg("contest created")

	// A fresh contest has no applications yet, so the counters are all zero.
	return dto.NewContestResponse(created, dto.ContestCounters{}), nil
}

func (s *contestService) Update(ctx context.Context, id, employerID string, payload dto.ContestUpdateRequest) (dto.ContestResponse, error) {
	if err := translateValidation(s.validator.Struct(payload)); err != nil {
		return dto.ContestResponse{}, err
	}

	contest, err := s.contests.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ContestResponse{}, ErrContestNotFound
		}
		return dto.ContestResponse{}, err
	}

	if contest.EmployerID != employerID {
		return dto.ContestResponse{}, ErrNotOwner
	}

	if payload.Status != nil {
		target := models.ContestStatus(*payload.Status)
		if target != contest.Status && !contest.Status.CanTransitionTo(target) {
			return dto.ContestResponse{}, &InvalidTransitionError{From: contest.Status, To: target}
		}
		contest.Status = target
	}

	applyContestPatch(&contest, payload, s.sanitizer)

	// The merged record must satisfy the same invariants as a fresh create.
	if err := translateValidation(s.validator.Struct(mergedCreateRequest(contest))); err != nil {
		return dto.ContestResponse{}, err
	}

	if err := s.contests.Update(ctx, &contest); err != nil {
		return dto.ContestResponse{}, err
	}

	updated, err := s.contests.GetByID(ctx, contest.ID)
	if err != nil {
		return dto.ContestResponse{}, err
	}

	counters, err := s.liveCounters(ctx, []string{updated.ID})
	if err != nil {
		return dto.ContestResponse{}, err
	}

	s.logger.Info().Str("contest_id", contest.ID).Msg("contest updated")

	return dto.NewContestResponse(updated, counters[updated.ID]), nil
}

func (s *contestService) Delete(ctx context.Context, id, employerID string) error {
	contest, err := s.contests.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrContestNotFound
		}
		return err
	}

	if contest.EmployerID != employerID {
		return ErrNotOwner
	}

	if contest.Status != models.ContestStatusDraft {
		return ErrContestNotDeletable
	}

	if err := s.contests.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info().Str("contest_id", id).Msg("draft contest deleted")

	return nil
}

func (s *contestService) GetByID(ctx context.Context, id string) (dto.ContestResponse, error) {
	contest, err := s.contests.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ContestResponse{}, ErrContestNotFound
		}
		return dto.ContestResponse{}, err
	}

	counters, err := s.liveCounters(ctx, []string{contest.ID})
	if err != nil {
		return dto.ContestResponse{}, err
	}

	return dto.NewContestResponse(contest, counters[contest.ID]), nil
}

func (s *contestService) ListForEmployer(ctx context.Context, employerID string, status *models.ContestStatus) ([]dto.ContestResponse, error) {
	contests, err := s.contests.List(ctx, repository.ContestFilter{EmployerID: employerID, Status: status})
	if err != nil {
		return nil, err
	}

	return s.withLiveCounters(ctx, contests)
}

func (s *contestService) ListActive(ctx context.Context) ([]dto.ContestResponse, error) {
	return s.listPublic(ctx, repository.ContestFilter{})
}

func (s *contestService) ListFeatured(ctx context.Context) ([]dto.ContestResponse, error) {
	featured := true
	return s.listPublic(ctx, repository.ContestFilter{Featured: &featured})
}

func (s *contestService) ListUrgent(ctx context.Context) ([]dto.ContestResponse, error) {
	urgent := true
	return s.listPublic(ctx, repository.ContestFilter{Urgent: &urgent})
}

// listPublic always pins the status filter to ACTIVE; non-active contests are
// invisible to vendors and freelancers.
func (s *contestService) listPublic(ctx context.Context, filter repository.ContestFilter) ([]dto.ContestResponse, error) {
	active := models.ContestStatusActive
	filter.Status = &active

	contests, err := s.contests.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.ContestResponse, 0, len(contests))
	for _, contest := range contests {
		responses = append(responses, dto.NewContestResponse(contest, dto.ContestCounters{}))
	}

	return responses, nil
}

func (s *contestService) AddSkills(ctx context.Context, contestID, employerID string, skills []dto.ContestSkillRequest) ([]dto.ContestSkillResponse, error) {
	for _, skill := range skills {
		if err := translateValidation(s.validator.Struct(skill)); err != nil {
			return nil, err
		}
	}

	contest, err := s.contests.GetByID(ctx, contestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrContestNotFound
		}
		return nil, err
	}

	if contest.EmployerID != employerID {
		return nil, ErrNotOwner
	}

	records := make([]models.ContestSkill, 0, len(skills))
	for _, skill := range skills {
		records = append(records, models.ContestSkill{
			ContestID:       contestID,
			SkillName:       skill.SkillName,
			ExperienceYears: skill.ExperienceYears,
			IsMandatory:     skill.IsMandatory,
		})
	}

	if err := s.contests.AddSkills(ctx, records); err != nil {
		return nil, err
	}

	responses := make([]dto.ContestSkillResponse, 0, len(records))
	for _, record := range records {
		responses = append(responses, dto.ContestSkillResponse{
			ID:              record.ID,
			ContestID:       record.ContestID,
			SkillName:       record.SkillName,
			ExperienceYears: record.ExperienceYears,
			IsMandatory:     record.IsMandatory,
			CreatedAt:       record.CreatedAt,
		})
	}

	return responses, nil
}

func (s *contestService) DeleteSkill(ctx context.Context, contestID, skillID, employerID string) error {
	contest, err := s.contests.GetByID(ctx, contestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrContestNotFound
		}
		return err
	}

	if contest.EmployerID != employerID {
		return ErrNotOwner
	}

	if err := s.contests.DeleteSkill(ctx, contestID, skillID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSkillNotFound
		}
		return err
	}

	return nil
}

// liveCounters recomputes the status buckets from application rows. Counters
// are never incrementally maintained; recomputation keeps them drift-free.
func (s *contestService) liveCounters(ctx context.Context, contestIDs []string) (map[string]dto.ContestCounters, error) {
	applications, err := s.applications.ListByContestIDs(ctx, contestIDs)
	if err != nil {
		return nil, err
	}

	return BucketCounters(applications), nil
}

func (s *contestService) withLiveCounters(ctx context.Context, contests []models.Contest) ([]dto.ContestResponse, error) {
	ids := make([]string, 0, len(contests))
	for _, contest := range contests {
		ids = append(ids, contest.ID)
	}

	counters, err := s.liveCounters(ctx, ids)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.ContestResponse, 0, len(contests))
	for _, contest := range contests {
		responses = append(responses, dto.NewContestResponse(contest, counters[contest.ID]))
	}

	return responses, nil
}

// BucketCounters tallies applications into their status buckets per contest.
// The sum is commutative, so the result is independent of row order.
func BucketCounters(applications []models.ContestApplication) map[string]dto.ContestCounters {
	counters := make(map[string]dto.ContestCounters)
	for _, application := range applications {
		bucket := counters[application.ContestID]
		switch application.Status {
		case models.ApplicationStatusSubmitted:
			bucket.Submitted++
		case models.ApplicationStatusShortlisted:
			bucket.Shortlisted++
		case models.ApplicationStatusL1:
			bucket.L1++
		case models.ApplicationStatusL2:
			bucket.L2++
		case models.ApplicationStatusL3:
			bucket.L3++
		case models.ApplicationStatusOffered:
			bucket.Offered++
		}
		counters[application.ContestID] = bucket
	}

	return counters
}

func applyContestPatch(contest *models.Contest, payload dto.ContestUpdateRequest, sanitizer *bluemonday.Policy) {
	if payload.JobTitle != nil {
		contest.JobTitle = *payload.JobTitle
	}
	if payload.ShortDescription != nil {
		contest.ShortDescription = sanitizer.Sanitize(*payload.ShortDescription)
	}
	if payload.DetailedDescription != nil {
		contest.DetailedDescription = sanitizer.Sanitize(*payload.DetailedDescription)
	}
	if payload.LocationType != nil {
		contest.LocationType = models.LocationType(*payload.LocationType)
	}
	if payload.LocationCity != nil {
		contest.LocationCity = *payload.LocationCity
	}
	if payload.LocationState != nil {
		contest.LocationState = *payload.LocationState
	}
	if payload.LocationCountry != nil {
		contest.LocationCountry = *payload.LocationCountry
	}
	if payload.EmploymentType != nil {
		contest.EmploymentType = models.EmploymentType(*payload.EmploymentType)
	}
	if payload.ExperienceMin != nil {
		contest.ExperienceMin = *payload.ExperienceMin
	}
	if payload.ExperienceMax != nil {
		contest.ExperienceMax = *payload.ExperienceMax
	}
	if payload.BudgetMin != nil {
		contest.BudgetMin = *payload.BudgetMin
	}
	if payload.BudgetMax != nil {
		contest.BudgetMax = *payload.BudgetMax
	}
	if payload.FreelancerFee != nil {
		contest.FreelancerFee = *payload.FreelancerFee
	}
	if payload.VendorFee != nil {
		contest.VendorFee = *payload.VendorFee
	}
	if payload.IsFeatured != nil {
		contest.IsFeatured = *payload.IsFeatured
	}
	if payload.IsUrgent != nil {
		contest.IsUrgent = *payload.IsUrgent
	}
	if payload.ApplicationDeadline != nil {
		contest.ApplicationDeadline = payload.ApplicationDeadline
	}
	if payload.DriveDate != nil {
		contest.DriveDate = payload.DriveDate
	}
	if payload.DriveStartTime != nil {
		contest.DriveStartTime = *payload.DriveStartTime
	}
	if payload.DriveEndTime != nil {
		contest.DriveEndTime = *payload.DriveEndTime
	}
	if payload.DriveTimezone != nil {
		contest.DriveTimezone = *payload.DriveTimezone
	}
}

// mergedCreateRequest projects the patched contest back onto the create
// payload so update re-runs the exact same field validations.
func mergedCreateRequest(contest models.Contest) dto.ContestCreateRequest {
	return dto.ContestCreateRequest{
		JobTitle:            contest.JobTitle,
		ShortDescription:    contest.ShortDescription,
		DetailedDescription: contest.DetailedDescription,
		LocationType:        string(contest.LocationType),
		LocationCity:        contest.LocationCity,
		LocationState:       contest.LocationState,
		LocationCountry:     contest.LocationCountry,
		EmploymentType:      string(contest.EmploymentType),
		ExperienceMin:       contest.ExperienceMin,
		ExperienceMax:       contest.ExperienceMax,
		BudgetMin:           contest.BudgetMin,
		BudgetMax:           contest.BudgetMax,
		FreelancerFee:       contest.FreelancerFee,
		VendorFee:           contest.VendorFee,
		ApplicationDeadline: contest.ApplicationDeadline,
		DriveDate:           contest.DriveDate,
		DriveStartTime:      contest.DriveStartTime,
		DriveEndTime:        contest.DriveEndTime,
		DriveTimezone:       contest.DriveTimezone,
	}
}
