package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/bridgehq/bridge/internal/client/models"
)

// Credential attaches a bearer credential to outbound requests. Implemented
// by session.Session; kept as a small interface so transport tests do not
// need a real session.
type Credential interface {
	Attach(req *http.Request)
}

// HTTPClient talks to the Bridge REST backend. All methods map transport and
// status failures to the package sentinels via mapError.
type HTTPClient struct {
	baseURL string
	http    *http.Client
	cred    Credential
}

const requestTimeout = 12 * time.Second

func NewHTTPClient(baseURL string, cred Credential) *HTTPClient {
	return &HTTPClient{
		baseURL: baseURL,
		http:    &http.Client{Timeout: requestTimeout},
		cred:    cred,
	}
}

func (c *HTTPClient) Signup(ctx context.Context, profile models.Profile) error {
	return c.do(ctx, http.MethodPost, "/auth/signup", profile, nil)
}

func (c *HTTPClient) Verify(ctx context.Context, email, code string) (*AuthResult, error) {
	body := map[string]string{"email": email, "code": code}
	var out AuthResult
	if err := c.do(ctx, http.MethodPost, "/auth/verify", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) ResendCode(ctx context.Context, email string) error {
	body := map[string]string{"email": email}
	return c.do(ctx, http.MethodPost, "/auth/resend-code", body, nil)
}

func (c *HTTPClient) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	body := map[string]string{"email": email, "password": password}
	var out AuthResult
	if err := c.do(ctx, http.MethodPost, "/auth/login", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) GetProfile(ctx context.Context) (*models.Profile, error) {
	var out models.Profile
	if err := c.do(ctx, http.MethodGet, "/api/user/profile", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) FetchCandidates(ctx context.Context) ([]models.CandidateMatch, error) {
	var out []models.CandidateMatch
	if err := c.do(ctx, http.MethodGet, "/api/matches", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) SendMatchRequest(ctx context.Context, candidateID string) (*models.MatchRequest, error) {
	body := map[string]string{"to_user_id": candidateID}
	var out models.MatchRequest
	if err := c.do(ctx, http.MethodPost, "/api/matches/request", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetMyGroup returns nil without error when the backend reports no group,
// either as a 404 or as a JSON null body.
func (c *HTTPClient) GetMyGroup(ctx context.Context) (*models.Group, error) {
	var out *models.Group
	err := c.do(ctx, http.MethodGet, "/api/user/group", nil, &out)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) GetMessages(ctx context.Context, groupID string, since time.Time) ([]models.Message, error) {
	path := "/api/groups/" + url.PathEscape(groupID) + "/messages"
	if !since.IsZero() {
		path += "?since=" + url.QueryEscape(since.Format(time.RFC3339Nano))
	}
	var out []models.Message
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) SendMessage(ctx context.Context, groupID, text string) (*models.Message, error) {
	path := "/api/groups/" + url.PathEscape(groupID) + "/messages"
	body := map[string]string{"message_text": text}
	var out models.Message
	if err := c.do(ctx, http.MethodPost, path, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) LeaveGroup(ctx context.Context, groupID string) error {
	path := "/api/groups/" + url.PathEscape(groupID) + "/leave"
	return c.do(ctx, http.MethodPost, path, nil, nil)
}

func (c *HTTPClient) Close() error {
	c.http.CloseIdleConnections()
	return nil
}

// do issues one JSON request. A nil body sends no payload; a nil out discards
// the response body.
func (c *HTTPClient) do(ctx context.Context, method, path string, body, out any) error {
	var payload io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		payload = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, payload)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.cred != nil {
		c.cred.Attach(req)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return mapStatus(resp)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if err == io.EOF {
			return nil
		}
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

type errorBody struct {
	Error string `json:"error"`
}

func mapStatus(resp *http.Response) error {
	var eb errorBody
	_ = json.NewDecoder(resp.Body).Decode(&eb)

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return ErrUnauthorized
	case resp.StatusCode == http.StatusForbidden:
		if eb.Error != "" {
			return fmt.Errorf("%w: %s", ErrForbidden, eb.Error)
		}
		return ErrForbidden
	case resp.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case resp.StatusCode >= 500:
		return ErrUnavailable
	default:
		if eb.Error != "" {
			return fmt.Errorf("%w: %s", ErrInvalidRequest, eb.Error)
		}
		return fmt.Errorf("%w: status %d", ErrInvalidRequest, resp.StatusCode)
	}
}
