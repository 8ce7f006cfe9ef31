package cli

import (
	"bufio"
	"bytes"
	"context"
	"strings"
	"time"

	"github.com/bridgehq/bridge/internal/client/api"
	"github.com/bridgehq/bridge/internal/client/config"
	"github.com/bridgehq/bridge/internal/client/match"
	"github.com/bridgehq/bridge/internal/client/models"
	"github.com/bridgehq/bridge/internal/client/session"
	"github.com/bridgehq/bridge/internal/client/wizard"
	"github.com/bridgehq/bridge/internal/logging"
)

// fakeClient implements api.Client through optional function fields; a nil
// field answers with zero values.
type fakeClient struct {
	signupFn  func(profile models.Profile) error
	verifyFn  func(email, code string) (*api.AuthResult, error)
	resendFn  func(email string) error
	loginFn   func(email, password string) (*api.AuthResult, error)
	profileFn func() (*models.Profile, error)
	candsFn   func() ([]models.CandidateMatch, error)
	requestFn func(candidateID string) (*models.MatchRequest, error)
	groupFn   func() (*models.Group, error)
	msgsFn    func(groupID string, since time.Time) ([]models.Message, error)
	sendFn    func(groupID, text string) (*models.Message, error)
	leaveFn   func(groupID string) error
}

func (f *fakeClient) Signup(ctx context.Context, profile models.Profile) error {
	if f.signupFn == nil {
		return nil
	}
	return f.signupFn(profile)
}

func (f *fakeClient) Verify(ctx context.Context, email, code string) (*api.AuthResult, error) {
	if f.verifyFn == nil {
		return &api.AuthResult{}, nil
	}
	return f.verifyFn(email, code)
}

func (f *fakeClient) ResendCode(ctx context.Context, email string) error {
	if f.resendFn == nil {
		return nil
	}
	return f.resendFn(email)
}

func (f *fakeClient) Login(ctx context.Context, email, password string) (*api.AuthResult, error) {
	if f.loginFn == nil {
		return &api.AuthResult{}, nil
	}
	return f.loginFn(email, password)
}

func (f *fakeClient) GetProfile(ctx context.Context) (*models.Profile, error) {
	if f.profileFn == nil {
		return &models.Profile{}, nil
	}
	return f.profileFn()
}

func (f *fakeClient) FetchCandidates(ctx context.Context) ([]models.CandidateMatch, error) {
	if f.candsFn == nil {
		return nil, nil
	}
	return f.candsFn()
}

func (f *fakeClient) SendMatchRequest(ctx context.Context, candidateID string) (*models.MatchRequest, error) {
	if f.requestFn == nil {
		return &models.MatchRequest{}, nil
	}
	return f.requestFn(candidateID)
}

func (f *fakeClient) GetMyGroup(ctx context.Context) (*models.Group, error) {
	if f.groupFn == nil {
		return nil, nil
	}
	return f.groupFn()
}

func (f *fakeClient) GetMessages(ctx context.Context, groupID string, since time.Time) ([]models.Message, error) {
	if f.msgsFn == nil {
		return nil, nil
	}
	return f.msgsFn(groupID, since)
}

func (f *fakeClient) SendMessage(ctx context.Context, groupID, text string) (*models.Message, error) {
	if f.sendFn == nil {
		return &models.Message{}, nil
	}
	return f.sendFn(groupID, text)
}

func (f *fakeClient) LeaveGroup(ctx context.Context, groupID string) error {
	if f.leaveFn == nil {
		return nil
	}
	return f.leaveFn(groupID)
}

func (f *fakeClient) Close() error { return nil }

// newTestApp assembles an App around the fake client with scripted terminal
// input. The session is memory-only; no local store is opened.
func newTestApp(client api.Client, input string) (*App, *bytes.Buffer) {
	out := &bytes.Buffer{}
	cfg := &config.Config{
		MatchPollInterval: time.Millisecond,
		MatchPollBound:    time.Second,
		ChatPollInterval:  time.Hour,
	}
	log := logging.NewNop()

	return &App{
		config:      cfg,
		log:         log,
		session:     session.New(nil),
		client:      client,
		controller:  wizard.New(wizard.DefaultRegistry()),
		coordinator: match.NewCoordinator(client, log, cfg.MatchPollInterval, cfg.MatchPollBound),
		reader:      bufio.NewReader(strings.NewReader(input)),
		out:         out,
	}, out
}
