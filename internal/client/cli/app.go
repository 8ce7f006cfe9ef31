// Package cli implements the interactive terminal client: the onboarding
// wizard, the matching flow and the group chat.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/bridgehq/bridge/internal/client/api"
	"github.com/bridgehq/bridge/internal/client/config"
	"github.com/bridgehq/bridge/internal/client/match"
	"github.com/bridgehq/bridge/internal/client/session"
	"github.com/bridgehq/bridge/internal/client/store"
	"github.com/bridgehq/bridge/internal/client/wizard"
	"github.com/bridgehq/bridge/internal/logging"
)

type App struct {
	config      *config.Config
	log         logging.Logger
	session     *session.Session
	client      api.Client
	controller  *wizard.Controller
	coordinator *match.Coordinator
	store       *store.Store
	reader      *bufio.Reader
	out         io.Writer
}

func NewApp(ctx context.Context, cfg *config.Config, log logging.Logger) (*App, error) {
	st, err := store.Open(ctx, cfg.StorePath)
	if err != nil {
		return nil, fmt.Errorf("open local store: %w", err)
	}

	sess := session.New(st)
	if err := sess.Init(ctx); err != nil {
		return nil, fmt.Errorf("restore session: %w", err)
	}

	client := api.NewHTTPClient(cfg.ServerBaseURL, sess)

	return &App{
		config:      cfg,
		log:         log,
		session:     sess,
		client:      client,
		controller:  wizard.New(wizard.DefaultRegistry()),
		coordinator: match.NewCoordinator(client, log, cfg.MatchPollInterval, cfg.MatchPollBound),
		store:       st,
		reader:      bufio.NewReader(os.Stdin),
		out:         os.Stdout,
	}, nil
}

// Run drives the whole flow: restore-or-onboard, then matching, then chat.
func (a *App) Run(ctx context.Context) error {
	defer a.teardown()

	fmt.Fprintln(a.out, "Welcome to Bridge")

	if err := a.authenticate(ctx); err != nil {
		return err
	}

	for {
		done, err := a.runMatching(ctx)
		if err != nil || done {
			return err
		}
		// runMatching returned after the user left a group; loop back into
		// the candidate flow.
	}
}

// authenticate resolves an identity: a persisted session, an explicit login,
// or the full signup wizard. In the first two cases the complete profile is
// loaded and the wizard jumps straight to the terminal matching state.
func (a *App) authenticate(ctx context.Context) error {
	if a.session.Authenticated() && !a.session.Expired() {
		profile, err := a.client.GetProfile(ctx)
		if err == nil {
			a.controller.LoadProfile(*profile)
			a.controller.JumpToMatching()
			fmt.Fprintf(a.out, "Welcome back, %s!\n", a.session.User().FirstName)
			return nil
		}
		a.log.Warn(ctx, "saved session rejected, falling back to login", "error", err)
		_ = a.session.Clear(ctx)
	}

	has, err := Confirm(a.reader, "Do you already have an account?", a.out)
	if err != nil {
		return err
	}
	if has {
		if err := a.login(ctx); err != nil {
			return err
		}
		return nil
	}
	return a.runWizard(ctx)
}

func (a *App) teardown() {
	a.coordinator.Teardown()
	_ = a.client.Close()
	_ = a.store.Close()
}
