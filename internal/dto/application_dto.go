package dto

import (
	"time"

	"github.com/hirearena/contest-api/internal/models"
)

// ApplicationSubmitRequest is the multipart payload for applying to a contest.
// The resume file travels alongside as a form file.
type ApplicationSubmitRequest struct {
	ContestID    string   `form:"contest_id" validate:"required,uuid4"`
	CurrentCTC   *float64 `form:"current_ctc" validate:"omitempty,gte=0"`
	ExpectedCTC  *float64 `form:"expected_ctc" validate:"omitempty,gte=0"`
	NoticePeriod *int     `form:"notice_period" validate:"omitempty,gte=0"`
	CoverLetter  string   `form:"cover_letter" validate:"omitempty,max=4000"`
}

// FeedbackRequest records one reviewer verdict for the application's current stage.
type FeedbackRequest struct {
	Stage    string `json:"stage" validate:"required,oneof=SHORTLISTING L1 L2 L3"`
	Decision string `json:"decision" validate:"required,oneof=PASS FAIL ON-HOLD"`
	Rating   *int   `json:"rating" validate:"omitempty,gte=1,lte=10"`
	Feedback string `json:"feedback" validate:"omitempty,max=4000"`
}

// ApplicationAdvanceRequest moves a SUBMITTED application into the pipeline or
// rejects it outright.
type ApplicationAdvanceRequest struct {
	Status string `json:"status" validate:"required,oneof=SHORTLISTED REJECTED"`
}

// FeedbackResponse serializes one feedback log entry.
type FeedbackResponse struct {
	ID            string    `json:"id"`
	ApplicationID string    `json:"application_id"`
	ReviewerID    string    `json:"reviewer_id"`
	Stage         string    `json:"stage"`
	Rating        *int      `json:"rating"`
	Feedback      string    `json:"feedback"`
	Decision      string    `json:"decision"`
	CreatedAt     time.Time `json:"created_at"`
}

// ApplicationResponse is returned when viewing contest applications.
type ApplicationResponse struct {
	ID           string             `json:"id"`
	ContestID    string             `json:"contest_id"`
	ApplicantID  string             `json:"applicant_id"`
	Status       string             `json:"status"`
	CurrentCTC   *float64           `json:"current_ctc"`
	ExpectedCTC  *float64           `json:"expected_ctc"`
	NoticePeriod *int               `json:"notice_period"`
	ResumeURL    string             `json:"resume_url"`
	CoverLetter  string             `json:"cover_letter"`
	Feedback     []FeedbackResponse `json:"feedback"`
	CreatedAt    time.Time          `json:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at"`
}

// NewFeedbackResponse converts a feedback model into a DTO.
func NewFeedbackResponse(model models.ContestFeedback) FeedbackResponse {
	return FeedbackResponse{
		ID:            model.ID,
		ApplicationID: model.ApplicationID,
		ReviewerID:    model.ReviewerID,
		Stage:         string(model.Stage),
		Rating:        model.Rating,
		Feedback:      model.Feedback,
		Decision:      string(model.Decision),
		CreatedAt:     model.CreatedAt,
	}
}

// NewApplicationResponse converts an application model into a DTO.
func NewApplicationResponse(model models.ContestApplication) ApplicationResponse {
	feedback := make([]FeedbackResponse, 0, len(model.Feedback))
	for _, entry := range model.Feedback {
		feedback = append(feedback, NewFeedbackResponse(entry))
	}

	return ApplicationResponse{
		ID:           model.ID,
		ContestID:    model.ContestID,
		ApplicantID:  model.ApplicantID,
		Status:       string(model.Status),
		CurrentCTC:   model.CurrentCTC,
		ExpectedCTC:  model.ExpectedCTC,
		NoticePeriod: model.NoticePeriod,
		ResumeURL:    model.ResumeURL,
		CoverLetter:  model.CoverLetter,
		Feedback:     feedback,
		CreatedAt:    model.CreatedAt,
		UpdatedAt:    model.UpdatedAt,
	}
}

// NewApplicationResponseSlice converts application models into DTOs.
func NewApplicationResponseSlice(applications []models.ContestApplication) []ApplicationResponse {
	responses := make([]ApplicationResponse, 0, len(applications))
	for _, application := range applications {
		responses = append(responses, NewApplicationResponse(application))
	}

	return responses
}
