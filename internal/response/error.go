package response

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/GregMSThompson/attendance-backend/internal/errs"
	"github.com/GregMSThompson/attendance-backend/pkg/logger"
)

type ErrorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

func (h *responseHandler) WriteError(w http.ResponseWriter, r *http.Request, status int, message, detail string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(ErrorResponse{
		Message: message,
		Error:   detail,
	}); err != nil {
		log := logger.FromContext(r.Context())
		log.Error("failed to encode error response", "error", err, "status", status)
	}
}

// HandleError writes the status errs.Status picks. Client errors carry the
// error's own message and a short code; server errors echo the raw cause.
func (h *responseHandler) HandleError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromContext(r.Context())
	status, code := errs.Status(err)

	switch e := err.(type) {
	case *errs.NotFoundError:
		log.Warn("resource not found", "error", e.Message)
		h.WriteError(w, r, status, e.Message, code)

	case *errs.AlreadyExistsError:
		log.Warn("resource already exists", "error", e.Message)
		h.WriteError(w, r, status, e.Message, code)

	case *errs.ValidationError:
		log.Warn("validation failed", "error", e.Message)
		h.WriteError(w, r, status, e.Message, code)

	case *errs.UnauthorizedError:
		log.Warn("unauthorized request", "error", e.Message)
		h.WriteError(w, r, status, e.Message, code)

	case *errs.ForbiddenError:
		log.Warn("forbidden request", "error", e.Message)
		h.WriteError(w, r, status, e.Message, code)

	case *errs.DatabaseError:
		log.Error("database error",
			"operation", e.Operation,
			"error", e)
		h.WriteError(w, r, status, e.Message, causeText(e))

	default:
		log.Error("unexpected error",
			"error", err,
			"type", fmt.Sprintf("%T", err))
		h.WriteError(w, r, status, "An unexpected error occurred", err.Error())
	}
}

func causeText(e *errs.DatabaseError) string {
	if e.Err == nil {
		return e.Message
	}
	return e.Err.Error()
}
