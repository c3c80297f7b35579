package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/GregMSThompson/attendance-backend/internal/dto"
	"github.com/GregMSThompson/attendance-backend/internal/response"
)

type reportService interface {
	ListAttendance(ctx context.Context, month, employee string) ([]dto.AttendanceWithUser, error)
	Statistics(ctx context.Context, month string) (dto.AttendanceStatistics, error)
}

type adminHandlers struct {
	ResponseHandler response.ResponseHandler
	UserSvc         UserService
	ReportSvc       reportService
}

func NewAdminHandlers(deps *Deps) *adminHandlers {
	return &adminHandlers{
		ResponseHandler: deps.ResponseHandler,
		UserSvc:         deps.UserSvc,
		ReportSvc:       deps.ReportSvc,
	}
}

func (h *adminHandlers) AdminRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/employees", h.ListEmployees)
	r.Get("/attendance", h.ListAttendance)
	r.Get("/statistics", h.Statistics)
	return r
}

func (h *adminHandlers) ListEmployees(w http.ResponseWriter, r *http.Request) {
	users, err := h.UserSvc.ListEmployees(r.Context())
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, users)
}

// ListAttendance accepts ?month=YYYY-MM and ?employee=<uid>, both optional.
func (h *adminHandlers) ListAttendance(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	records, err := h.ReportSvc.ListAttendance(r.Context(), q.Get("month"), q.Get("employee"))
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, records)
}

func (h *adminHandlers) Statistics(w http.ResponseWriter, r *http.Request) {
	stats, err := h.ReportSvc.Statistics(r.Context(), r.URL.Query().Get("month"))
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, stats)
}
