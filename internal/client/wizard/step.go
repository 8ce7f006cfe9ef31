// Package wizard implements the onboarding flow: an ordered registry of
// declarative steps walked by a controller over a single mutable draft
// profile. Validators are pure predicates over the draft; normalizers adjust
// the draft after a successful validation and before advancing.
package wizard

import (
	"fmt"

	"github.com/bridgehq/bridge/internal/client/models"
	"github.com/bridgehq/bridge/internal/common"
)

// Step describes one screen's worth of input. Validate must be deterministic
// and side-effect free; Normalize may rewrite draft fields (trim, clamp,
// default) and runs only after Validate passed.
type Step struct {
	ID        string
	Title     string
	Validate  func(d *models.Profile) error
	Normalize func(d *models.Profile)
}

// Registry is the ordered set of steps. Treated as immutable after
// construction.
type Registry []Step

// IndexOf returns the position of the step with the given id, or -1.
func (r Registry) IndexOf(id string) int {
	for i, s := range r {
		if s.ID == id {
			return i
		}
	}
	return -1
}

// ValidationError reports why a step refused to advance. It unwraps to
// common.ErrValidation so callers can classify it with errors.Is.
type ValidationError struct {
	StepID string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("step %s: %s", e.StepID, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return common.ErrValidation
}
