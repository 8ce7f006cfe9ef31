package httpapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/bridgehq/bridge/internal/common"
)

func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := decodeValid(r, &req); err != nil {
		writeError(w, err)
		return
	}

	user, err := s.users.Signup(r.Context(), req.toUser(), req.Password)
	if err != nil {
		s.logFailure(r, "signup failed", err)
		writeError(w, err)
		return
	}

	// Email delivery is simulated: the code lands in the server log.
	s.log.Info(r.Context(), "verification code issued", "email", user.Email, "code", user.VerificationCode)

	writeJSON(w, http.StatusCreated, signupResponse{
		Message: "account created, check your email for the verification code",
		Email:   user.Email,
	})
}

func (s *Server) handleVerify(w http.ResponseWriter, r *http.Request) {
	var req verifyRequest
	if err := decodeValid(r, &req); err != nil {
		writeError(w, err)
		return
	}

	user, token, err := s.users.Verify(r.Context(), req.Email, req.Code)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, authResponse{AccessToken: token, User: toUserPayload(user)})
}

func (s *Server) handleResendCode(w http.ResponseWriter, r *http.Request) {
	var req resendCodeRequest
	if err := decodeValid(r, &req); err != nil {
		writeError(w, err)
		return
	}

	code, err := s.users.ResendCode(r.Context(), req.Email)
	if err != nil {
		writeError(w, err)
		return
	}
	s.log.Info(r.Context(), "verification code reissued", "email", req.Email, "code", code)

	writeJSON(w, http.StatusOK, map[string]string{"message": "verification code resent"})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeValid(r, &req); err != nil {
		writeError(w, err)
		return
	}

	user, token, err := s.users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, authResponse{AccessToken: token, User: toUserPayload(user)})
}

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	user, err := s.users.GetProfile(r.Context(), userIDFrom(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toProfilePayload(user))
}

func (s *Server) handleCandidates(w http.ResponseWriter, r *http.Request) {
	candidates, err := s.matches.Candidates(r.Context(), userIDFrom(r.Context()))
	if err != nil {
		s.logFailure(r, "candidate listing failed", err)
		writeError(w, err)
		return
	}

	out := []candidatePayload{}
	for _, c := range candidates {
		out = append(out, toCandidatePayload(c))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleSendRequest(w http.ResponseWriter, r *http.Request) {
	var req sendRequestRequest
	if err := decodeValid(r, &req); err != nil {
		writeError(w, err)
		return
	}

	created, err := s.matches.SendRequest(r.Context(), userIDFrom(r.Context()), req.ToUserID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toRequestPayload(created))
}

func (s *Server) handleIncomingRequests(w http.ResponseWriter, r *http.Request) {
	reqs, err := s.matches.Incoming(r.Context(), userIDFrom(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}

	out := []requestPayload{}
	for _, m := range reqs {
		out = append(out, toRequestPayload(m))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleAcceptRequest(w http.ResponseWriter, r *http.Request) {
	group, err := s.matches.Accept(r.Context(), userIDFrom(r.Context()), chi.URLParam(r, "requestID"))
	if err != nil {
		s.logFailure(r, "accept failed", err)
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"group_id": group.ID})
}

func (s *Server) handleRejectRequest(w http.ResponseWriter, r *http.Request) {
	if err := s.matches.Reject(r.Context(), userIDFrom(r.Context()), chi.URLParam(r, "requestID")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleMyGroup(w http.ResponseWriter, r *http.Request) {
	group, members, err := s.groups.MyGroup(r.Context(), userIDFrom(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toGroupPayload(group, members))
}

func (s *Server) handleListMessages(w http.ResponseWriter, r *http.Request) {
	since, err := parseSince(r.URL.Query().Get("since"))
	if err != nil {
		writeError(w, err)
		return
	}

	msgs, err := s.groups.Messages(r.Context(), userIDFrom(r.Context()), chi.URLParam(r, "groupID"), since)
	if err != nil {
		writeError(w, err)
		return
	}

	out := []messagePayload{}
	for _, m := range msgs {
		out = append(out, toMessagePayload(m))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handlePostMessage(w http.ResponseWriter, r *http.Request) {
	var req postMessageRequest
	if err := decodeValid(r, &req); err != nil {
		writeError(w, err)
		return
	}

	msg, err := s.groups.PostMessage(r.Context(), userIDFrom(r.Context()), chi.URLParam(r, "groupID"), req.MessageText)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toMessagePayload(msg))
}

func (s *Server) handleLeaveGroup(w http.ResponseWriter, r *http.Request) {
	if err := s.groups.Leave(r.Context(), userIDFrom(r.Context()), chi.URLParam(r, "groupID")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// decodeValid decodes a JSON body into dst and runs struct validation.
// Failures come back wrapped in ErrValidation so they map to 400.
func decodeValid(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return fmt.Errorf("%w: malformed json", common.ErrValidation)
	}
	if err := validate.Struct(dst); err != nil {
		return fmt.Errorf("%w: %v", common.ErrValidation, err)
	}
	return nil
}

func parseSince(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: invalid since timestamp", common.ErrValidation)
	}
	return t, nil
}

func (s *Server) logFailure(r *http.Request, msg string, err error) {
	if statusFor(err) >= http.StatusInternalServerError {
		s.log.Error(r.Context(), msg, "path", r.URL.Path, "error", err.Error())
	}
}
