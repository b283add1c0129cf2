package models

import "time"

// FeedbackStage names the evaluation round a feedback entry belongs to.
type FeedbackStage string

const (
	FeedbackStageShortlisting FeedbackStage = "SHORTLISTING"
	FeedbackStageL1           FeedbackStage = "L1"
	FeedbackStageL2           FeedbackStage = "L2"
	FeedbackStageL3           FeedbackStage = "L3"
)

// IsValid reports whether the stage is known.
func (s FeedbackStage) IsValid() bool {
	switch s {
	case FeedbackStageShortlisting, FeedbackStageL1, FeedbackStageL2, FeedbackStageL3:
		return true
	}
	return false
}

// StageForStatus returns the feedback stage that reviews applications
// currently sitting in the given bucket. SUBMITTED has no review stage; a
// submitted application is shortlisted or rejected directly.
func StageForStatus(status ApplicationStatus) (FeedbackStage, bool) {
	switch status {
	case ApplicationStatusShortlisted:
		return FeedbackStageShortlisting, true
	case ApplicationStatusL1:
		return FeedbackStageL1, true
	case ApplicationStatusL2:
		return FeedbackStageL2, true
	case ApplicationStatusL3:
		return FeedbackStageL3, true
	}
	return "", false
}

// FeedbackDecision is the reviewer's verdict for a stage.
type FeedbackDecision string

const (
	FeedbackDecisionPass   FeedbackDecision = "PASS"
	FeedbackDecisionFail   FeedbackDecision = "FAIL"
	FeedbackDecisionOnHold FeedbackDecision = "ON-HOLD"
)

// IsValid reports whether the decision is known.
func (d FeedbackDecision) IsValid() bool {
	switch d {
	case FeedbackDecisionPass, FeedbackDecisionFail, FeedbackDecisionOnHold:
		return true
	}
	return false
}

// ContestFeedback is one reviewer's verdict for one stage of an application.
// Entries are append-only and immutable once created. A reviewer may record
// several ON-HOLD entries for a stage but at most one decisive verdict;
// decisive uniqueness is enforced by the service layer, not the schema,
// because ON-HOLD rows share the same (application, stage, reviewer) triple.
type ContestFeedback struct {
	ID            string           `gorm:"type:uuid;primaryKey" json:"id"`
	ApplicationID string           `gorm:"type:uuid;not null;index:idx_feedback_app_stage" json:"application_id"`
	Stage         FeedbackStage    `gorm:"size:16;not null;index:idx_feedback_app_stage" json:"stage"`
	ReviewerID    string           `gorm:"type:uuid;not null;index" json:"reviewer_id"`
	Rating        *int             `json:"rating"`
	Feedback      string           `gorm:"type:text" json:"feedback"`
	Decision      FeedbackDecision `gorm:"size:16;not null" json:"decision"`
	CreatedAt     time.Time        `json:"created_at"`
}
