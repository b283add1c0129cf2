package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hirearena/contest-api/internal/models"
)

// Sentinel errors shared across the contest services.
var (
	ErrContestNotFound        = errors.New("contest not found")
	ErrApplicationNotFound    = errors.New("application not found")
	ErrSkillNotFound          = errors.New("skill not found")
	ErrNotOwner               = errors.New("caller does not own this contest")
	ErrDuplicateApplication   = errors.New("an active application for this contest already exists")
	ErrDuplicateFeedback      = errors.New("feedback for this stage has already been recorded by this reviewer")
	ErrConcurrentModification = errors.New("application was modified by another reviewer, retry with fresh state")
	ErrContestNotDeletable    = errors.New("only draft contests can be deleted")
)

// FieldError describes one violated field constraint.
type FieldError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// ValidationError carries the full batch of field violations so callers can
// render every problem at once instead of fixing them one by one.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f.Field, f.Reason))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// InvalidTransitionError reports an illegal contest status change.
type InvalidTransitionError struct {
	From models.ContestStatus
	To   models.ContestStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("contest status cannot move from %s to %s", e.From, e.To)
}

// ContestNotOpenError reports an application attempt against a contest that is
// not accepting applications.
type ContestNotOpenError struct {
	Status models.ContestStatus
}

func (e *ContestNotOpenError) Error() string {
	return fmt.Sprintf("contest is not open for applications (status %s)", e.Status)
}

// StageMismatchError reports feedback recorded against the wrong stage.
type StageMismatchError struct {
	Stage   models.FeedbackStage
	Current models.ApplicationStatus
}

func (e *StageMismatchError) Error() string {
	return fmt.Sprintf("stage %s does not match the application's current bucket %s", e.Stage, e.Current)
}

// AlreadyTerminalError reports a mutation attempted on an application that has
// reached OFFERED or REJECTED.
type AlreadyTerminalError struct {
	Status models.ApplicationStatus
}

func (e *AlreadyTerminalError) Error() string {
	return fmt.Sprintf("application is already terminal (status %s)", e.Status)
}

// InvalidAdvanceError reports an illegal application status change requested
// through the direct advance operation.
type InvalidAdvanceError struct {
	From models.ApplicationStatus
	To   models.ApplicationStatus
}

func (e *InvalidAdvanceError) Error() string {
	return fmt.Sprintf("application status cannot move from %s to %s", e.From, e.To)
}
