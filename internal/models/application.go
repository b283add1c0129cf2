package models

import "time"

// ApplicationStatus enumerates the buckets a contest application moves through.
// Forward progression follows the ordered chain
// SUBMITTED → SHORTLISTED → L1 → L2 → L3 → OFFERED; REJECTED is reachable from
// any non-terminal bucket. OFFERED and REJECTED are terminal.
type ApplicationStatus string

const (
	ApplicationStatusSubmitted   ApplicationStatus = "SUBMITTED"
	ApplicationStatusShortlisted ApplicationStatus = "SHORTLISTED"
	ApplicationStatusL1          ApplicationStatus = "L1"
	ApplicationStatusL2          ApplicationStatus = "L2"
	ApplicationStatusL3          ApplicationStatus = "L3"
	ApplicationStatusOffered     ApplicationStatus = "OFFERED"
	ApplicationStatusRejected    ApplicationStatus = "REJECTED"
)

var applicationChain = []ApplicationStatus{
	ApplicationStatusSubmitted,
	ApplicationStatusShortlisted,
	ApplicationStatusL1,
	ApplicationStatusL2,
	ApplicationStatusL3,
	ApplicationStatusOffered,
}

// IsValid reports whether the status is a known application status.
func (s ApplicationStatus) IsValid() bool {
	if s == ApplicationStatusRejected {
		return true
	}
	return s.Order() >= 0
}

// Order returns the position of the status on the ordered chain, or -1 for
// REJECTED and unknown values.
func (s ApplicationStatus) Order() int {
	for i, status := range applicationChain {
		if status == s {
			return i
		}
	}
	return -1
}

// IsTerminal reports whether no further transition is permitted.
func (s ApplicationStatus) IsTerminal() bool {
	return s == ApplicationStatusOffered || s == ApplicationStatusRejected
}

// Next returns the status that follows s on the ordered chain. The second
// return value is false when s has no successor.
func (s ApplicationStatus) Next() (ApplicationStatus, bool) {
	order := s.Order()
	if order < 0 || order >= len(applicationChain)-1 {
		return "", false
	}
	return applicationChain[order+1], true
}

// CanTransitionTo reports whether moving to target is a legal transition:
// exactly one step forward on the chain, or a jump to REJECTED from any
// non-terminal status.
func (s ApplicationStatus) CanTransitionTo(target ApplicationStatus) bool {
	if s.IsTerminal() {
		return false
	}
	if target == ApplicationStatusRejected {
		return true
	}
	next, ok := s.Next()
	return ok && next == target
}

// ContestApplication is a candidate's application against a contest. Rows are
// never deleted; terminal applications stay behind as the audit trail.
type ContestApplication struct {
	ID           string            `gorm:"type:uuid;primaryKey" json:"id"`
	ContestID    string            `gorm:"type:uuid;not null;index" json:"contest_id"`
	ApplicantID  string            `gorm:"type:uuid;not null;index" json:"applicant_id"`
	Status       ApplicationStatus `gorm:"size:16;not null;index" json:"status"`
	CurrentCTC   *float64          `json:"current_ctc"`
	ExpectedCTC  *float64          `json:"expected_ctc"`
	NoticePeriod *int              `json:"notice_period"`
	ResumeURL    string            `gorm:"size:512" json:"resume_url"`
	CoverLetter  string            `gorm:"type:text" json:"cover_letter"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`

	Feedback []ContestFeedback `gorm:"foreignKey:ApplicationID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"feedback,omitempty"`
}
