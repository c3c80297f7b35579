package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/GregMSThompson/attendance-backend/internal/dto"
	"github.com/GregMSThompson/attendance-backend/internal/middleware"
	"github.com/GregMSThompson/attendance-backend/internal/models"
	"github.com/GregMSThompson/attendance-backend/internal/response"
)

type attendanceService interface {
	Today(ctx context.Context, uid string) (*models.AttendanceRecord, error)
	ClockIn(ctx context.Context, uid string) (*models.AttendanceRecord, error)
	ClockOut(ctx context.Context, uid string) (*models.AttendanceRecord, error)
	StartBreak(ctx context.Context, uid string, kind models.BreakKind) (*models.AttendanceRecord, error)
	EndBreak(ctx context.Context, uid string, kind models.BreakKind) (*models.AttendanceRecord, error)
}

type attendanceHandlers struct {
	ResponseHandler response.ResponseHandler
	AttendanceSvc   attendanceService
}

func NewAttendanceHandlers(deps *Deps) *attendanceHandlers {
	return &attendanceHandlers{
		ResponseHandler: deps.ResponseHandler,
		AttendanceSvc:   deps.AttendanceSvc,
	}
}

func (h *attendanceHandlers) AttendanceRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/today/{uid}", h.Today)
	r.Post("/clock-in", h.action(h.AttendanceSvc.ClockIn))
	r.Post("/clock-out", h.action(h.AttendanceSvc.ClockOut))
	r.Post("/start-lunch-break", h.action(h.startBreak(models.BreakLunch)))
	r.Post("/end-lunch-break", h.action(h.endBreak(models.BreakLunch)))
	r.Post("/start-snack-break", h.action(h.startBreak(models.BreakSnack)))
	r.Post("/end-snack-break", h.action(h.endBreak(models.BreakSnack)))
	return r
}

func (h *attendanceHandlers) Today(w http.ResponseWriter, r *http.Request) {
	rec, err := h.AttendanceSvc.Today(r.Context(), chi.URLParam(r, "uid"))
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, rec)
}

type attendanceAction func(ctx context.Context, uid string) (*models.AttendanceRecord, error)

func (h *attendanceHandlers) startBreak(kind models.BreakKind) attendanceAction {
	return func(ctx context.Context, uid string) (*models.AttendanceRecord, error) {
		return h.AttendanceSvc.StartBreak(ctx, uid, kind)
	}
}

func (h *attendanceHandlers) endBreak(kind models.BreakKind) attendanceAction {
	return func(ctx context.Context, uid string) (*models.AttendanceRecord, error) {
		return h.AttendanceSvc.EndBreak(ctx, uid, kind)
	}
}

// action decodes {uid} and runs fn. An empty body or uid falls back to the
// authenticated caller.
func (h *attendanceHandlers) action(fn attendanceAction) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body dto.UIDRequest
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil && !errors.Is(err, io.EOF) {
			h.ResponseHandler.HandleError(w, r, err)
			return
		}
		uid := body.UID
		if uid == "" {
			uid = middleware.UID(r.Context())
		}

		rec, err := fn(r.Context(), uid)
		if err != nil {
			h.ResponseHandler.HandleError(w, r, err)
			return
		}
		h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, rec)
	}
}
