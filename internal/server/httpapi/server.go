// Package httpapi exposes the Bridge REST API over chi.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/bridgehq/bridge/internal/logging"
	"github.com/bridgehq/bridge/internal/server/config"
	"github.com/bridgehq/bridge/internal/server/services"
)

const shutdownTimeout = 5 * time.Second

type Server struct {
	addr      string
	jwtSecret []byte
	log       logging.Logger

	users   *services.UserService
	matches *services.MatchService
	groups  *services.GroupService
}

func NewServer(cfg *config.Config, log logging.Logger,
	users *services.UserService, matches *services.MatchService, groups *services.GroupService) *Server {
	return &Server{
		addr:      cfg.Addr,
		jwtSecret: []byte(cfg.SecretKey),
		log:       log,
		users:     users,
		matches:   matches,
		groups:    groups,
	}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Post("/auth/signup", s.handleSignup)
	r.Post("/auth/verify", s.handleVerify)
	r.Post("/auth/resend-code", s.handleResendCode)
	r.Post("/auth/login", s.handleLogin)

	r.Group(func(r chi.Router) {
		r.Use(s.authenticate)

		r.Get("/api/user/profile", s.handleProfile)
		r.Get("/api/user/group", s.handleMyGroup)

		r.Get("/api/matches", s.handleCandidates)
		r.Post("/api/matches/request", s.handleSendRequest)
		r.Get("/api/matches/requests", s.handleIncomingRequests)
		r.Post("/api/matches/{requestID}/accept", s.handleAcceptRequest)
		r.Post("/api/matches/{requestID}/reject", s.handleRejectRequest)

		r.Get("/api/groups/{groupID}/messages", s.handleListMessages)
		r.Post("/api/groups/{groupID}/messages", s.handlePostMessage)
		r.Post("/api/groups/{groupID}/leave", s.handleLeaveGroup)
	})

	return r
}

// Run serves the API until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{Addr: s.addr, Handler: s.Router()}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info(ctx, "http server listening", "addr", s.addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
