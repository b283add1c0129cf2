package service

import (
	"context"
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/hirearena/contest-api/internal/models"
	"github.com/hirearena/contest-api/internal/repository"
)

func testLogger() zerolog.Logger {
	return zerolog.New(io.Discard)
}

type memoryContestRepo struct {
	contests     map[string]models.Contest
	applications *memoryApplicationRepo
	nextID       int
}

func newMemoryContestRepo() *memoryContestRepo {
	return &memoryContestRepo{contests: make(map[string]models.Contest), nextID: 1}
}

func (m *memoryContestRepo) List(_ context.Context, filter repository.ContestFilter) ([]models.Contest, error) {
	results := make([]models.Contest, 0, len(m.contests))
	for _, contest := range m.contests {
		if filter.EmployerID != "" && contest.EmployerID != filter.EmployerID {
			continue
		}
		if filter.Status != nil && contest.Status != *filter.Status {
			continue
		}
		if filter.Featured != nil && contest.IsFeatured != *filter.Featured {
			continue
		}
		if filter.Urgent != nil && contest.IsUrgent != *filter.Urgent {
			continue
		}
		results = append(results, contest)
	}
	sort.Slice(results, func(i, j int) bool {
		return results[i].CreatedAt.After(results[j].CreatedAt)
	})
	return results, nil
}

func (m *memoryContestRepo) GetByID(_ context.Context, id string) (models.Contest, error) {
	contest, ok := m.contests[id]
	if !ok {
		return models.Contest{}, gorm.ErrRecordNotFound
	}
	return contest, nil
}

func (m *memoryContestRepo) GetWithApplications(ctx context.Context, id string) (models.Contest, error) {
	contest, err := m.GetByID(ctx, id)
	if err != nil {
		return models.Contest{}, err
	}
	if m.applications != nil {
		contest.Applications = m.applications.listByContest(id)
	}
	return contest, nil
}

func (m *memoryContestRepo) Create(_ context.Context, contest *models.Contest) error {
	if contest.ID == "" {
		contest.ID = testID("contest", m.nextID)
		m.nextID++
	}
	for i := range contest.Skills {
		if contest.Skills[i].ID == "" {
			contest.Skills[i].ID = testID("skill", m.nextID)
			m.nextID++
		}
		contest.Skills[i].ContestID = contest.ID
	}
	contest.CreatedAt = time.Now()
	contest.UpdatedAt = time.Now()
	m.contests[contest.ID] = *contest
	return nil
}

func (m *memoryContestRepo) Update(_ context.Context, contest *models.Contest) error {
	if _, ok := m.contests[contest.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	contest.UpdatedAt = time.Now()
	m.contests[contest.ID] = *contest
	return nil
}

func (m *memoryContestRepo) Delete(_ context.Context, id string) error {
	if _, ok := m.contests[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.contests, id)
	return nil
}

func (m *memoryContestRepo) CountByEmployerAndStatus(_ context.Context, employerID string, status models.ContestStatus) (int64, error) {
	var count int64
	for _, contest := range m.contests {
		if contest.EmployerID == employerID && contest.Status == status {
			count++
		}
	}
	return count, nil
}

func (m *memoryContestRepo) AddSkills(_ context.Context, skills []models.ContestSkill) error {
	for i := range skills {
		if skills[i].ID == "" {
			skills[i].ID = testID("skill", m.nextID)
			m.nextID++
		}
		contest, ok := m.contests[skills[i].ContestID]
		if !ok {
			return gorm.ErrRecordNotFound
		}
		contest.Skills = append(contest.Skills, skills[i])
		m.contests[contest.ID] = contest
	}
	return nil
}

func (m *memoryContestRepo) DeleteSkill(_ context.Context, contestID, skillID string) error {
	contest, ok := m.contests[contestID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	for i, skill := range contest.Skills {
		if skill.ID == skillID {
			contest.Skills = append(contest.Skills[:i], contest.Skills[i+1:]...)
			m.contests[contestID] = contest
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

type memoryApplicationRepo struct {
	mu           sync.Mutex
	applications map[string]models.ContestApplication
	feedback     *memoryFeedbackRepo
	nextID       int

	// forceConflict makes the next compare-and-set fail, simulating a racing
	// writer that moved the row first.
	forceConflict bool
}

func newMemoryApplicationRepo() *memoryApplicationRepo {
	return &memoryApplicationRepo{applications: make(map[string]models.ContestApplication), nextID: 1}
}

func (m *memoryApplicationRepo) Create(_ context.Context, application *models.ContestApplication) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if application.ID == "" {
		application.ID = testID("application", m.nextID)
		m.nextID++
	}
	application.CreatedAt = time.Now()
	application.UpdatedAt = time.Now()
	m.applications[application.ID] = *application
	return nil
}

func (m *memoryApplicationRepo) GetByID(_ context.Context, id string) (models.ContestApplication, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	application, ok := m.applications[id]
	if !ok {
		return models.ContestApplication{}, gorm.ErrRecordNotFound
	}
	if m.feedback != nil {
		application.Feedback = m.feedback.forApplication(id)
	}
	return application, nil
}

func (m *memoryApplicationRepo) FindActiveByContestAndApplicant(_ context.Context, contestID, applicantID string) (models.ContestApplication, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, application := range m.applications {
		if application.ContestID == contestID &&
			application.ApplicantID == applicantID &&
			application.Status != models.ApplicationStatusRejected {
			return application, nil
		}
	}
	return models.ContestApplication{}, gorm.ErrRecordNotFound
}

func (m *memoryApplicationRepo) listByContest(contestID string) []models.ContestApplication {
	m.mu.Lock()
	defer m.mu.Unlock()

	results := make([]models.ContestApplication, 0)
	for _, application := range m.applications {
		if application.ContestID == contestID {
			if m.feedback != nil {
				application.Feedback = m.feedback.forApplication(application.ID)
			}
			results = append(results, application)
		}
	}
	sort.Slice(results, func(i, j int) bool {
		return results[i].CreatedAt.Before(results[j].CreatedAt)
	})
	return results
}

func (m *memoryApplicationRepo) ListByContestIDs(_ context.Context, contestIDs []string) ([]models.ContestApplication, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	ids := make(map[string]struct{}, len(contestIDs))
	for _, id := range contestIDs {
		ids[id] = struct{}{}
	}

	results := make([]models.ContestApplication, 0)
	for _, application := range m.applications {
		if _, ok := ids[application.ContestID]; ok {
			results = append(results, application)
		}
	}
	return results, nil
}

func (m *memoryApplicationRepo) ListByApplicant(_ context.Context, applicantID string) ([]models.ContestApplication, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	results := make([]models.ContestApplication, 0)
	for _, application := range m.applications {
		if application.ApplicantID == applicantID {
			results = append(results, application)
		}
	}
	sort.Slice(results, func(i, j int) bool {
		return results[i].CreatedAt.After(results[j].CreatedAt)
	})
	return results, nil
}

func (m *memoryApplicationRepo) UpdateStatusFrom(_ context.Context, id string, from, to models.ApplicationStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.forceConflict {
		m.forceConflict = false
		return repository.ErrStatusConflict
	}

	application, ok := m.applications[id]
	if !ok || application.Status != from {
		return repository.ErrStatusConflict
	}
	application.Status = to
	application.UpdatedAt = time.Now()
	m.applications[id] = application
	return nil
}

type recordingTracker struct {
	mu          sync.Mutex
	invalidated []string
}

func (r *recordingTracker) Invalidate(_ context.Context, employerID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.invalidated = append(r.invalidated, employerID)
}

type memoryFeedbackRepo struct {
	mu      sync.Mutex
	entries []models.ContestFeedback
	nextID  int
}

func newMemoryFeedbackRepo() *memoryFeedbackRepo {
	return &memoryFeedbackRepo{nextID: 1}
}

func (m *memoryFeedbackRepo) Create(_ context.Context, feedback *models.ContestFeedback) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if feedback.ID == "" {
		feedback.ID = testID("feedback", m.nextID)
		m.nextID++
	}
	feedback.CreatedAt = time.Now()
	m.entries = append(m.entries, *feedback)
	return nil
}

func (m *memoryFeedbackRepo) ListByApplication(_ context.Context, applicationID string) ([]models.ContestFeedback, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.forApplication(applicationID), nil
}

func (m *memoryFeedbackRepo) HasDecisiveVerdict(_ context.Context, applicationID string, stage models.FeedbackStage, reviewerID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, entry := range m.entries {
		if entry.ApplicationID == applicationID && entry.Stage == stage && entry.ReviewerID == reviewerID &&
			entry.Decision != models.FeedbackDecisionOnHold {
			return true, nil
		}
	}
	return false, nil
}

func (m *memoryFeedbackRepo) forApplication(applicationID string) []models.ContestFeedback {
	results := make([]models.ContestFeedback, 0)
	for _, entry := range m.entries {
		if entry.ApplicationID == applicationID {
			results = append(results, entry)
		}
	}
	return results
}

type memoryNotificationRepo struct {
	mu            sync.Mutex
	notifications []models.Notification
	nextID        uint
}

func newMemoryNotificationRepo() *memoryNotificationRepo {
	return &memoryNotificationRepo{nextID: 1}
}

func (m *memoryNotificationRepo) Create(_ context.Context, notification *models.Notification) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	notification.ID = m.nextID
	m.nextID++
	notification.CreatedAt = time.Now()
	m.notifications = append(m.notifications, *notification)
	return nil
}

func (m *memoryNotificationRepo) ListByUser(_ context.Context, userID string, unreadOnly bool, limit, offset int) ([]models.Notification, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	results := make([]models.Notification, 0)
	for _, notification := range m.notifications {
		if notification.UserID != userID {
			continue
		}
		if unreadOnly && notification.Read {
			continue
		}
		results = append(results, notification)
	}
	return results, nil
}

func (m *memoryNotificationRepo) CountUnread(_ context.Context, userID string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var count int64
	for _, notification := range m.notifications {
		if notification.UserID == userID && !notification.Read {
			count++
		}
	}
	return count, nil
}

func (m *memoryNotificationRepo) MarkRead(_ context.Context, id uint, userID string) (models.Notification, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, notification := range m.notifications {
		if notification.ID == id && notification.UserID == userID {
			m.notifications[i].Read = true
			return m.notifications[i], nil
		}
	}
	return models.Notification{}, gorm.ErrRecordNotFound
}

// testID builds deterministic uuid-shaped identifiers so assertions stay
// readable. The prefix byte keeps identifiers from different repos distinct.
func testID(prefix string, n int) string {
	return fmt.Sprintf("00000000-0000-4000-8000-%02x%010x", prefix[0], n)
}
