package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/bridgehq/bridge/internal/client/models"
	"github.com/bridgehq/bridge/internal/client/wizard"
	"github.com/bridgehq/bridge/internal/common"
)

// runWizard walks every registered step in order, prompting for the fields
// the step owns and advancing only when its validator passes. A failed
// validation reprompts the same step with the reason; the draft is untouched
// until the step validates.
func (a *App) runWizard(ctx context.Context) error {
	for !a.controller.Done() {
		step := a.controller.Current()
		fmt.Fprintf(a.out, "\n--- %s ---\n", step.Title)

		if err := a.promptStep(step.ID); err != nil {
			return err
		}

		if err := a.controller.Next(); err != nil {
			if errors.Is(err, common.ErrValidation) {
				fmt.Fprintf(a.out, "!! %v\n", err)
				continue
			}
			return err
		}
	}
	return a.submitProfile(ctx)
}

func (a *App) promptStep(stepID string) error {
	switch stepID {
	case wizard.StepSignup:
		return a.promptSignup()
	case wizard.StepExplanation:
		fmt.Fprintln(a.out, "Bridge matches you into a group of 4 based on your goals,")
		fmt.Fprintln(a.out, "interests and personality. Answer a few questions to get started.")
		return nil
	case wizard.StepGoals:
		return a.promptGoals()
	case wizard.StepInterests:
		return a.promptInterests()
	case wizard.StepPersonality:
		return a.promptPersonality()
	case wizard.StepPreferences:
		return a.promptPreferences()
	case wizard.StepStatement:
		return a.promptText("Describe your ideal connection (20-500 chars)", func(d *models.Profile, s string) { d.Statement = s })
	case wizard.StepBio:
		return a.promptText("Write a short bio (20-300 chars)", func(d *models.Profile, s string) { d.Bio = s })
	case wizard.StepLocation:
		return a.promptLocation()
	default:
		return nil
	}
}

func (a *App) promptSignup() error {
	first, err := GetSimpleText(a.reader, "First name", a.out)
	if err != nil {
		return err
	}
	surname, err := GetSimpleText(a.reader, "Surname", a.out)
	if err != nil {
		return err
	}
	email, err := GetSimpleText(a.reader, "Email", a.out)
	if err != nil {
		return err
	}
	age, err := GetInt(a.reader, "Age", a.out)
	if err != nil {
		return err
	}
	password, err := GetPassword(a.out)
	if err != nil {
		return err
	}
	profession, err := GetSimpleText(a.reader, "Profession", a.out)
	if err != nil {
		return err
	}

	a.controller.Update(func(d *models.Profile) {
		d.FirstName = first
		d.Surname = surname
		d.Email = email
		d.Age = age
		d.Password = string(password)
		d.Profession = profession
	})
	return nil
}

func (a *App) promptGoals() error {
	fmt.Fprintln(a.out, "Examples: Friendship, Networking, Collaboration, Activity partners")
	return a.promptToggles("Enter a goal per line (empty line to finish)", wizard.ToggleGoal)
}

func (a *App) promptInterests() error {
	fmt.Fprintln(a.out, "Pick at least 3. Your most recent entry ranks highest.")
	return a.promptToggles("Enter an interest per line (empty line to finish)", wizard.ToggleInterest)
}

// promptToggles reads items one per line and applies toggle semantics:
// entering an already-selected item removes it.
func (a *App) promptToggles(prompt string, toggle func(d *models.Profile, item string)) error {
	fmt.Fprintln(a.out, prompt)
	for {
		line, err := GetSimpleText(a.reader, "", a.out)
		if err != nil {
			return err
		}
		if line == "" {
			return nil
		}
		a.controller.Update(func(d *models.Profile) { toggle(d, line) })
	}
}

func (a *App) promptPersonality() error {
	traits := []struct {
		name  string
		set   func(d *models.Profile, v int)
		scale string
	}{
		{"Extroversion", func(d *models.Profile, v int) { d.Personality.Extroversion = v }, "0=introvert, 100=extrovert"},
		{"Openness", func(d *models.Profile, v int) { d.Personality.Openness = v }, "0=traditional, 100=adventurous"},
		{"Agreeableness", func(d *models.Profile, v int) { d.Personality.Agreeableness = v }, "0=challenger, 100=harmoniser"},
		{"Conscientiousness", func(d *models.Profile, v int) { d.Personality.Conscientiousness = v }, "0=spontaneous, 100=organised"},
	}
	for _, tr := range traits {
		v, err := GetInt(a.reader, fmt.Sprintf("%s (%s)", tr.name, tr.scale), a.out)
		if err != nil {
			return err
		}
		set := tr.set
		a.controller.Update(func(d *models.Profile) { set(d, v) })
	}
	return nil
}

func (a *App) promptPreferences() error {
	gender, err := GetSimpleText(a.reader, "Gender preference (blank for Any)", a.out)
	if err != nil {
		return err
	}
	minAge, err := GetInt(a.reader, "Minimum age (18+)", a.out)
	if err != nil {
		return err
	}
	maxAge, err := GetInt(a.reader, "Maximum age (up to 99)", a.out)
	if err != nil {
		return err
	}

	a.controller.Update(func(d *models.Profile) {
		if gender != "" {
			d.GenderPreference = []string{gender}
		}
		d.AgePreference = models.AgeRange{Min: minAge, Max: maxAge}
	})
	return nil
}

func (a *App) promptText(prompt string, set func(d *models.Profile, s string)) error {
	text, err := GetMultiline(a.reader, prompt, a.out)
	if err != nil {
		return err
	}
	a.controller.Update(func(d *models.Profile) { set(d, text) })
	return nil
}

func (a *App) promptLocation() error {
	loc, err := GetSimpleText(a.reader, "City or area", a.out)
	if err != nil {
		return err
	}
	dist, err := GetInt(a.reader, "Max distance in km", a.out)
	if err != nil {
		return err
	}
	a.controller.Update(func(d *models.Profile) {
		d.Location = loc
		d.MaxDistance = dist
	})
	return nil
}

// submitProfile hands the finished draft off as an immutable snapshot. An
// ambiguous failure is not retried automatically; the user decides. A
// successful signup continues into email verification, which is where the
// session credential comes from.
func (a *App) submitProfile(ctx context.Context) error {
	snapshot := a.controller.Snapshot()

	if err := a.client.Signup(ctx, snapshot); err != nil {
		fmt.Fprintf(a.out, "Signup failed: %v\n", err)
		retry, cerr := Confirm(a.reader, "Try submitting again?", a.out)
		if cerr != nil {
			return cerr
		}
		if retry {
			return a.submitProfile(ctx)
		}
		return err
	}

	fmt.Fprintf(a.out, "Profile created. We sent a verification code to %s.\n", snapshot.Email)
	return a.verifyEmail(ctx, snapshot.Email)
}
