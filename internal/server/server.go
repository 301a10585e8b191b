// Package server exposes assignee boards and drop gestures over HTTP.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/alexanderramin/loadboard/internal/service"
)

const maxBody = 1 << 20

// Server serves the workload API.
type Server struct {
	workload   service.WorkloadService
	reschedule service.RescheduleService
	logger     *slog.Logger
}

func New(workload service.WorkloadService, reschedule service.RescheduleService, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Server{workload: workload, reschedule: reschedule, logger: logger}
}

// Routes builds the chi router.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.Recoverer)
	r.Use(RequestLogger(s.logger))
	r.Use(MaxBodySize(maxBody))

	r.Get("/healthz", s.Healthz)
	r.Handle("/metrics", promhttp.Handler())
	r.Route("/api/v1/assignees/{key}", func(r chi.Router) {
		r.Get("/schedule", s.GetSchedule)
		r.Post("/tasks/{id}/drop", s.DropTask)
	})
	return r
}

// ListenAndServe runs the server on addr until ctx is canceled, then shuts
// it down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("loadboard HTTP starting", slog.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down...")
	shutCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutCtx); err != nil {
		return err
	}
	return <-errCh
}
