package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/alexanderramin/loadboard/internal/app"
	"github.com/alexanderramin/loadboard/internal/board"
	"github.com/alexanderramin/loadboard/internal/domain"
	"github.com/alexanderramin/loadboard/internal/repository"
	"github.com/alexanderramin/loadboard/internal/service"
)

// maxWindowDays bounds the days query parameter.
const maxWindowDays = 92

type AssigneeView struct {
	Key        string  `json:"key"`
	Name       string  `json:"name"`
	DailyHours float64 `json:"daily_hours"`
}

// ScheduleResponse is the GET .../schedule response body.
type ScheduleResponse struct {
	GeneratedAt time.Time    `json:"generated_at"`
	Assignee    AssigneeView `json:"assignee"`
	Board       board.Board  `json:"board"`
}

// DropRequest is the JSON body of POST .../drop. Day is a YYYY-MM-DD string
// or null for the backlog; the field itself is required.
type DropRequest struct {
	Day json.RawMessage `json:"day"`
}

// DropResponse is returned for applied drops and, with Applied false, for
// persistence failures that still produced a schedule.
type DropResponse struct {
	OperationID string            `json:"operation_id"`
	TaskID      int64             `json:"task_id"`
	NewDueDate  *string           `json:"new_due_date"`
	Applied     bool              `json:"applied"`
	Error       string            `json:"error,omitempty"`
	Schedule    *ScheduleResponse `json:"schedule,omitempty"`
}

// Healthz handles GET /healthz.
func (s *Server) Healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetSchedule handles GET /api/v1/assignees/{key}/schedule.
func (s *Server) GetSchedule(w http.ResponseWriter, r *http.Request) {
	req := app.NewScheduleRequest(chi.URLParam(r, "key"))
	if err := parseWindow(r, &req.Start, &req.Days); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	resp, err := s.workload.Compute(r.Context(), req)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toScheduleResponse(resp))
}

// DropTask handles POST /api/v1/assignees/{key}/tasks/{id}/drop.
func (s *Server) DropTask(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "task id must be a positive integer")
		return
	}

	var body DropRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(body.Day) == 0 {
		writeError(w, http.StatusBadRequest, "field 'day' is required")
		return
	}

	req := app.NewDropOnBacklog(key, id)
	if string(body.Day) != "null" {
		var raw string
		if err := json.Unmarshal(body.Day, &raw); err != nil {
			writeError(w, http.StatusBadRequest, "field 'day' must be a YYYY-MM-DD string or null")
			return
		}
		day, err := domain.ParseDate(strings.TrimSpace(raw))
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		req = app.NewDropOnDay(key, id, day)
	}
	if err := parseWindow(r, &req.Start, &req.Days); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	resp, err := s.reschedule.Reschedule(r.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrPersistence) && !errors.Is(err, repository.ErrNotFound) && resp != nil {
			s.logger.Warn("drop not persisted",
				slog.String("operation_id", resp.OperationID),
				slog.Int64("task_id", id),
				slog.String("error", err.Error()))
			out := toDropResponse(resp)
			out.Error = "failed to persist the move; showing the last saved schedule"
			writeJSON(w, http.StatusBadGateway, out)
			return
		}
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toDropResponse(resp))
}

// writeServiceError maps service and repository sentinels to status codes.
// NotFound is checked first because a missing task also wraps
// ErrPersistence.
func (s *Server) writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrRescheduleInFlight):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, repository.ErrNotFound):
		writeError(w, http.StatusNotFound, "task not found")
	case errors.Is(err, service.ErrAssigneeNotFound):
		writeError(w, http.StatusNotFound, "assignee not found")
	case errors.Is(err, service.ErrAssigneeNotPlannable):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, service.ErrPersistence):
		writeError(w, http.StatusBadGateway, "failed to persist the move")
	default:
		s.logger.Error("request failed", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func parseWindow(r *http.Request, start **time.Time, days *int) error {
	q := r.URL.Query()
	if v := strings.TrimSpace(q.Get("start")); v != "" {
		d, err := domain.ParseDate(v)
		if err != nil {
			return err
		}
		*start = &d
	}
	if v := strings.TrimSpace(q.Get("days")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > maxWindowDays {
			return errors.New("days must be an integer between 1 and 92")
		}
		*days = n
	}
	return nil
}

func toScheduleResponse(resp *app.ScheduleResponse) *ScheduleResponse {
	return &ScheduleResponse{
		GeneratedAt: resp.GeneratedAt,
		Assignee: AssigneeView{
			Key:        resp.Assignee.Key,
			Name:       resp.Assignee.Name,
			DailyHours: resp.Schedule.CapacityHours,
		},
		Board: board.Build(resp.Schedule, domain.DateOf(resp.GeneratedAt)),
	}
}

func toDropResponse(resp *app.RescheduleResponse) DropResponse {
	out := DropResponse{
		OperationID: resp.OperationID,
		TaskID:      resp.TaskID,
		Applied:     resp.Applied,
	}
	if resp.NewDueDate != nil {
		d := domain.FormatDate(*resp.NewDueDate)
		out.NewDueDate = &d
	}
	if resp.Schedule != nil {
		out.Schedule = toScheduleResponse(resp.Schedule)
	}
	return out
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}
