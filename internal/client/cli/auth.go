package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/bridgehq/bridge/internal/client/api"
)

// login authenticates a returning user, loads their complete profile and
// jumps the wizard to the terminal matching state without re-running any
// step validators.
func (a *App) login(ctx context.Context) error {
	email, err := GetSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := GetPassword(a.out)
	if err != nil {
		return err
	}

	res, err := a.client.Login(ctx, email, string(password))
	if err != nil {
		if errors.Is(err, api.ErrForbidden) {
			fmt.Fprintln(a.out, "Your email is not verified yet.")
			if err := a.verifyEmail(ctx, email); err != nil {
				return err
			}
			return a.enterMatching(ctx)
		}
		fmt.Fprintf(a.out, "Login failed: %v\n", err)
		return a.login(ctx)
	}
	if err := a.session.Establish(ctx, res.Token, res.User); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	if err := a.enterMatching(ctx); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Welcome back, %s!\n", res.User.FirstName)
	return nil
}

// enterMatching loads the authenticated profile into the wizard and jumps it
// to the terminal matching state.
func (a *App) enterMatching(ctx context.Context) error {
	profile, err := a.client.GetProfile(ctx)
	if err != nil {
		return fmt.Errorf("load profile: %w", err)
	}
	a.controller.LoadProfile(*profile)
	a.controller.JumpToMatching()
	return nil
}

// verifyEmail prompts for the emailed 6-digit code until the backend accepts
// it, then establishes the session. Typing "resend" requests a fresh code.
func (a *App) verifyEmail(ctx context.Context, email string) error {
	for {
		code, err := GetSimpleText(a.reader, "Verification code (or 'resend' for a new one)", a.out)
		if err != nil {
			return err
		}
		if code == "resend" {
			if err := a.client.ResendCode(ctx, email); err != nil {
				fmt.Fprintf(a.out, "Could not resend the code: %v\n", err)
			} else {
				fmt.Fprintln(a.out, "A new code is on its way.")
			}
			continue
		}

		res, err := a.client.Verify(ctx, email, code)
		if err != nil {
			fmt.Fprintf(a.out, "Verification failed: %v\n", err)
			continue
		}
		if err := a.session.Establish(ctx, res.Token, res.User); err != nil {
			return fmt.Errorf("save session: %w", err)
		}
		fmt.Fprintf(a.out, "Email verified. Welcome, %s!\n", res.User.FirstName)
		return nil
	}
}
