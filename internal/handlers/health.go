package handlers

import (
	"net/http"
	"time"

	"github.com/GregMSThompson/attendance-backend/internal/response"
)

type healthHandlers struct {
	ResponseHandler response.ResponseHandler
	Environment     string
	Version         string
	now             func() time.Time
}

func NewHealthHandlers(deps *Deps) *healthHandlers {
	return &healthHandlers{
		ResponseHandler: deps.ResponseHandler,
		Environment:     deps.Environment,
		Version:         deps.Version,
		now:             time.Now,
	}
}

type healthResponse struct {
	Status      string `json:"status"`
	Timestamp   string `json:"timestamp"`
	Environment string `json:"environment"`
}

type bannerResponse struct {
	Message string `json:"message"`
	Version string `json:"version"`
	Status  string `json:"status"`
}

func (h *healthHandlers) Health(w http.ResponseWriter, r *http.Request) {
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, healthResponse{
		Status:      "OK",
		Timestamp:   h.now().UTC().Format(time.RFC3339Nano),
		Environment: h.Environment,
	})
}

func (h *healthHandlers) Root(w http.ResponseWriter, r *http.Request) {
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, bannerResponse{
		Message: "Employee Attendance Dashboard API",
		Version: h.Version,
		Status:  "running",
	})
}
