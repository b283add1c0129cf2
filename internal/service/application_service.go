package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/hirearena/contest-api/internal/dto"
	"github.com/hirearena/contest-api/internal/models"
	"github.com/hirearena/contest-api/internal/observability"
	"github.com/hirearena/contest-api/internal/repository"
)

// FileUploader pushes a file to external storage and returns its public URL.
type FileUploader interface {
	Upload(ctx context.Context, name string, reader io.Reader) (string, error)
}

// TrackerInvalidator drops an employer's cached dashboard after a
// counter-moving write.
type TrackerInvalidator interface {
	Invalidate(ctx context.Context, employerID string)
}

// ApplicationService owns the application state machine and the append-only
// feedback log.
type ApplicationService interface {
	Submit(ctx context.Context, applicantID string, payload dto.ApplicationSubmitRequest, resume *multipart.FileHeader) (dto.ApplicationResponse, error)
	RecordFeedback(ctx context.Context, applicationID, reviewerID string, payload dto.FeedbackRequest) (dto.ApplicationResponse, error)
	Advance(ctx context.Context, applicationID, reviewerID string, payload dto.ApplicationAdvanceRequest) (dto.ApplicationResponse, error)
	ListForContest(ctx context.Context, contestID, employerID string) ([]dto.ApplicationResponse, error)
	ListForApplicant(ctx context.Context, applicantID string) ([]dto.ApplicationResponse, error)
}

type applicationService struct {
	applications repository.ApplicationRepository
	contests     repository.ContestRepository
	feedback     repository.FeedbackRepository
	validator    *validator.Validate
	uploader     FileUploader
	notifier     NotificationService
	tracker      TrackerInvalidator
	sanitizer    *bluemonday.Policy
	logger       zerolog.Logger
	now          func() time.Time
}

// NewApplicationService constructs an ApplicationService instance. The
// uploader, notifier and tracker may be nil; submissions then skip resume
// upload, lifecycle events and cache invalidation respectively.
func NewApplicationService(applicationRepo repository.ApplicationRepository, contestRepo repository.ContestRepository, feedbackRepo repository.FeedbackRepository, validate *validator.Validate, uploader FileUploader, notifier NotificationService, tracker TrackerInvalidator, logger zerolog.Logger) ApplicationService {
	return &applicationService{
		applications: applicationRepo,
		contests:     contestRepo,
		feedback:     feedbackRepo,
		validator:    validate,
		uploader:     uploader,
		notifier:     notifier,
		tracker:      tracker,
		sanitizer:    bluemonday.StrictPolicy(),
		logger:       logger.With().Str("component", "application_service").Logger(),
		now:          time.Now,
	}
}

func (s *applicationService) Submit(ctx context.Context, applicantID string, payload dto.ApplicationSubmitRequest, resume *multipart.FileHeader) (dto.ApplicationResponse, error) {
	if err := translateValidation(s.validator.Struct(payload)); err != nil {
		return dto.ApplicationResponse{}, err
	}

	contest, err := s.contests.GetByID(ctx, payload.ContestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ApplicationResponse{}, ErrContestNotFound
		}
		return dto.ApplicationResponse{}, err
	}

	if !contest.IsOpen(s.now()) {
		return dto.ApplicationResponse{}, &ContestNotOpenError{Status: contest.Status}
	}

	// One live application per (contest, applicant); only a rejected
	// application frees the slot for a fresh attempt.
	_, err = s.applications.FindActiveByContestAndApplicant(ctx, payload.ContestID, applicantID)
	if err == nil {
		return dto.ApplicationResponse{}, ErrDuplicateApplication
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return dto.ApplicationResponse{}, err
	}

	resumeURL := ""
	if resume != nil {
		resumeURL, err = s.uploadResume(ctx, resume)
		if err != nil {
			return dto.ApplicationResponse{}, err
		}
	}

	application := models.ContestApplication{
		ContestID:    payload.ContestID,
		ApplicantID:  applicantID,
		Status:       models.ApplicationStatusSubmitted,
		CurrentCTC:   payload.CurrentCTC,
		ExpectedCTC:  payload.ExpectedCTC,
		NoticePeriod: payload.NoticePeriod,
		ResumeURL:    resumeURL,
		CoverLetter:  s.sanitizer.Sanitize(payload.CoverLetter),
	}

	if err := s.applications.Create(ctx, &application); err != nil {
		return dto.ApplicationResponse{}, err
	}

	created, err := s.applications.GetByID(ctx, application.ID)
	if err != nil {
		return dto.ApplicationResponse{}, err
	}

	s.logger.Info().
		Str("application_id", created.ID).
		Str("contest_id", contest.ID).
		Msg("application submitted")

	// The submitter is not the dashboard owner; the contest owner's cached
	// counters go stale here, not the caller's.
	s.invalidateTracker(ctx, contest.EmployerID)

	s.notify(ctx, dto.NotificationCreateRequest{
		UserID:        contest.EmployerID,
		ContestID:     contest.ID,
		ApplicationID: created.ID,
		Type:          models.NotificationTypeApplicationSubmitted,
		Message:       fmt.Sprintf("New application received for %s", contest.JobTitle),
	})

	return dto.NewApplicationResponse(created), nil
}

func (s *applicationService) RecordFeedback(ctx context.Context, applicationID, reviewerID string, payload dto.FeedbackRequest) (dto.ApplicationResponse, error) {
	if err := translateValidation(s.validator.Struct(payload)); err != nil {
		return dto.ApplicationResponse{}, err
	}

	application, contest, err := s.loadForReview(ctx, applicationID, reviewerID)
	if err != nil {
		return dto.ApplicationResponse{}, err
	}

	if application.Status.IsTerminal() {
		return dto.ApplicationResponse{}, &AlreadyTerminalError{Status: application.Status}
	}

	stage := models.FeedbackStage(payload.Stage)
	expected, reviewable := models.StageForStatus(application.Status)
	if !reviewable || expected != stage {
		return dto.ApplicationResponse{}, &StageMismatchError{Stage: stage, Current: application.Status}
	}

	decided, err := s.feedback.HasDecisiveVerdict(ctx, applicationID, stage, reviewerID)
	if err != nil {
		return dto.ApplicationResponse{}, err
	}
	if decided {
		return dto.ApplicationResponse{}, ErrDuplicateFeedback
	}

	decision := models.FeedbackDecision(payload.Decision)
	entry := models.ContestFeedback{
		ApplicationID: applicationID,
		ReviewerID:    reviewerID,
		Stage:         stage,
		Rating:        payload.Rating,
		Feedback:      s.sanitizer.Sanitize(payload.Feedback),
		Decision:      decision,
	}

	// The feedback row lands regardless of the decision outcome; the log is
	// the audit trail even for ON-HOLD verdicts.
	if err := s.feedback.Create(ctx, &entry); err != nil {
		return dto.ApplicationResponse{}, err
	}

	switch decision {
	case models.FeedbackDecisionPass:
		next, ok := application.Status.Next()
		if !ok {
			return dto.ApplicationResponse{}, &AlreadyTerminalError{Status: application.Status}
		}
		if err := s.transition(ctx, &application, next); err != nil {
			return dto.ApplicationResponse{}, err
		}
	case models.FeedbackDecisionFail:
		if err := s.transition(ctx, &application, models.ApplicationStatusRejected); err != nil {
			return dto.ApplicationResponse{}, err
		}
	}

	updated, err := s.applications.GetByID(ctx, applicationID)
	if err != nil {
		return dto.ApplicationResponse{}, err
	}

	s.logger.Info().
		Str("application_id", applicationID).
		Str("stage", string(stage)).
		Str("decision", string(decision)).
		Str("status", string(updated.Status)).
		Msg("feedback recorded")

	if updated.Status != application.Status {
		s.invalidateTracker(ctx, contest.EmployerID)
	}
	s.notifyStatusChange(ctx, contest, updated, application.Status)

	return dto.NewApplicationResponse(updated), nil
}

func (s *applicationService) Advance(ctx context.Context, applicationID, reviewerID string, payload dto.ApplicationAdvanceRequest) (dto.ApplicationResponse, error) {
	if err := translateValidation(s.validator.Struct(payload)); err != nil {
		return dto.ApplicationResponse{}, err
	}

	application, contest, err := s.loadForReview(ctx, applicationID, reviewerID)
	if err != nil {
		return dto.ApplicationResponse{}, err
	}

	if application.Status.IsTerminal() {
		return dto.ApplicationResponse{}, &AlreadyTerminalError{Status: application.Status}
	}

	target := models.ApplicationStatus(payload.Status)
	if !application.Status.CanTransitionTo(target) {
		return dto.ApplicationResponse{}, &InvalidAdvanceError{From: application.Status, To: target}
	}

	if err := s.transition(ctx, &application, target); err != nil {
		return dto.ApplicationResponse{}, err
	}

	updated, err := s.applications.GetByID(ctx, applicationID)
	if err != nil {
		return dto.ApplicationResponse{}, err
	}

	s.logger.Info().
		Str("application_id", applicationID).
		Str("status", string(updated.Status)).
		Msg("application advanced")

	s.invalidateTracker(ctx, contest.EmployerID)
	s.notifyStatusChange(ctx, contest, updated, application.Status)

	return dto.NewApplicationResponse(updated), nil
}

func (s *applicationService) ListForContest(ctx context.Context, contestID, employerID string) ([]dto.ApplicationResponse, error) {
	contest, err := s.contests.GetWithApplications(ctx, contestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrContestNotFound
		}
		return nil, err
	}

	if contest.EmployerID != employerID {
		return nil, ErrNotOwner
	}

	return dto.NewApplicationResponseSlice(contest.Applications), nil
}

func (s *applicationService) ListForApplicant(ctx context.Context, applicantID string) ([]dto.ApplicationResponse, error) {
	applications, err := s.applications.ListByApplicant(ctx, applicantID)
	if err != nil {
		return nil, err
	}

	return dto.NewApplicationResponseSlice(applications), nil
}

func (s *applicationService) loadForReview(ctx context.Context, applicationID, reviewerID string) (models.ContestApplication, models.Contest, error) {
	application, err := s.applications.GetByID(ctx, applicationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.ContestApplication{}, models.Contest{}, ErrApplicationNotFound
		}
		return models.ContestApplication{}, models.Contest{}, err
	}

	contest, err := s.contests.GetByID(ctx, application.ContestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.ContestApplication{}, models.Contest{}, ErrContestNotFound
		}
		return models.ContestApplication{}, models.Contest{}, err
	}

	if contest.EmployerID != reviewerID {
		return models.ContestApplication{}, models.Contest{}, ErrNotOwner
	}

	return application, contest, nil
}

// transition performs the compare-and-set status move; a racing reviewer who
// already moved the row wins and the caller gets ErrConcurrentModification.
func (s *applicationService) transition(ctx context.Context, application *models.ContestApplication, target models.ApplicationStatus) error {
	if err := s.applications.UpdateStatusFrom(ctx, application.ID, application.Status, target); err != nil {
		if errors.Is(err, repository.ErrStatusConflict) {
			return ErrConcurrentModification
		}
		return err
	}

	observability.ApplicationTransitionsTotal().
		WithLabelValues(string(application.Status), string(target)).Inc()

	return nil
}

func (s *applicationService) notifyStatusChange(ctx context.Context, contest models.Contest, application models.ContestApplication, previous models.ApplicationStatus) {
	if application.Status == previous {
		return
	}

	eventType := models.NotificationTypeApplicationAdvanced
	message := fmt.Sprintf("Your application for %s moved to %s", contest.JobTitle, application.Status)
	switch application.Status {
	case models.ApplicationStatusOffered:
		eventType = models.NotificationTypeApplicationOffered
		message = fmt.Sprintf("You received an offer for %s", contest.JobTitle)
	case models.ApplicationStatusRejected:
		eventType = models.NotificationTypeApplicationRejected
		message = fmt.Sprintf("Your application for %s was not taken forward", contest.JobTitle)
	}

	s.notify(ctx, dto.NotificationCreateRequest{
		UserID:        application.ApplicantID,
		ContestID:     contest.ID,
		ApplicationID: application.ID,
		Type:          eventType,
		Message:       message,
	})
}

func (s *applicationService) invalidateTracker(ctx context.Context, employerID string) {
	if s.tracker == nil {
		return
	}
	s.tracker.Invalidate(ctx, employerID)
}

// notify is best-effort; a failed event never rolls back the lifecycle write.
func (s *applicationService) notify(ctx context.Context, payload dto.NotificationCreateRequest) {
	if s.notifier == nil {
		return
	}
	if _, err := s.notifier.Publish(ctx, payload); err != nil {
		s.logger.Warn().Err(err).Str("type", payload.Type).Msg("failed to publish lifecycle notification")
	}
}

func (s *applicationService) uploadResume(ctx context.Context, file *multipart.FileHeader) (string, error) {
	if s.uploader == nil {
		return "", nil
	}

	if err := validateResumeType(file); err != nil {
		return "", err
	}

	reader, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open resume: %w", err)
	}
	defer reader.Close()

	url, err := s.uploader.Upload(ctx, file.Filename, reader)
	if err != nil {
		return "", fmt.Errorf("failed to upload resume: %w", err)
	}

	return url, nil
}

func validateResumeType(file *multipart.FileHeader) error {
	reader, err := file.Open()
	if err != nil {
		return fmt.Errorf("failed to open resume: %w", err)
	}
	defer reader.Close()

	mime, err := mimetype.DetectReader(reader)
	if err != nil {
		return fmt.Errorf("failed to detect resume type: %w", err)
	}

	allowed := []string{
		"application/pdf",
		"application/msword",
		"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
		"text/plain",
	}
	for _, a := range allowed {
		if mime.Is(a) {
			return nil
		}
	}

	return fmt.Errorf("unsupported resume type: %s", mime.String())
}
