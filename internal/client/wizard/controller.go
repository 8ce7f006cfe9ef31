package wizard

import "github.com/bridgehq/bridge/internal/client/models"

// Controller walks the registry against the draft. It is the sole mutator of
// the draft for the lifetime of onboarding; screens read snapshots and
// dispatch field updates through Update.
//
// Not safe for concurrent use; the client drives it from a single goroutine.
type Controller struct {
	registry Registry
	draft    models.Profile
	index    int
	history  []int
	done     bool
}

// New builds a controller positioned at the first step with a zero draft.
func New(registry Registry) *Controller {
	return &Controller{registry: registry}
}

// Current returns the active step. Calling it after the wizard reached the
// terminal state returns the last step.
func (c *Controller) Current() Step {
	if c.index >= len(c.registry) {
		return c.registry[len(c.registry)-1]
	}
	return c.registry[c.index]
}

// StepIndex reports the current position in the registry.
func (c *Controller) StepIndex() int { return c.index }

// Done reports whether the wizard advanced past the last step.
func (c *Controller) Done() bool { return c.done }

// Snapshot returns a value copy of the draft. Mutating the returned value
// does not affect the wizard.
func (c *Controller) Snapshot() models.Profile {
	return c.draft.Clone()
}

// Update applies a field mutation to the draft. The draft may be transiently
// invalid between updates; Next is the gate that restores the per-step
// invariant.
func (c *Controller) Update(apply func(d *models.Profile)) {
	apply(&c.draft)
}

// Next validates the current step against the draft. On failure it returns a
// *ValidationError and leaves both the draft and the position untouched. On
// success it normalizes the draft, records the current position for Back,
// and advances; advancing past the last step marks the wizard done.
func (c *Controller) Next() error {
	if c.done {
		return nil
	}

	step := c.registry[c.index]
	if step.Validate != nil {
		if err := step.Validate(&c.draft); err != nil {
			return &ValidationError{StepID: step.ID, Reason: err.Error()}
		}
	}
	if step.Normalize != nil {
		step.Normalize(&c.draft)
	}

	c.history = append(c.history, c.index)
	c.index++
	if c.index >= len(c.registry) {
		c.done = true
	}
	return nil
}

// Back restores the previously visited position. Normalization is not
// undone: the draft keeps entered values, so a re-visited step shows prior
// input. At the first step this is a no-op.
func (c *Controller) Back() {
	if len(c.history) == 0 {
		return
	}
	c.index = c.history[len(c.history)-1]
	c.history = c.history[:len(c.history)-1]
	c.done = false
}

// JumpToMatching skips directly to the terminal state without running any
// intervening validators. Used exactly once, for a returning authenticated
// user whose complete profile was loaded into the draft.
func (c *Controller) JumpToMatching() {
	c.index = len(c.registry)
	c.done = true
}

// LoadProfile replaces the draft wholesale. Paired with JumpToMatching for
// the returning-user path.
func (c *Controller) LoadProfile(p models.Profile) {
	c.draft = p.Clone()
}
