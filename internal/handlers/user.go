package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/GregMSThompson/attendance-backend/internal/dto"
	"github.com/GregMSThompson/attendance-backend/internal/middleware"
	"github.com/GregMSThompson/attendance-backend/internal/models"
	"github.com/GregMSThompson/attendance-backend/internal/response"
)

type UserService interface {
	Register(ctx context.Context, uid, email string, role models.Role, adminClaim bool) (*models.User, error)
	GetUser(ctx context.Context, uid string) (*models.User, error)
	ListEmployees(ctx context.Context) ([]*models.User, error)
	IsAdmin(ctx context.Context, uid string) (bool, error)
}

type userHandlers struct {
	ResponseHandler response.ResponseHandler
	UserSvc         UserService
}

func NewUserHandlers(deps *Deps) *userHandlers {
	return &userHandlers{
		ResponseHandler: deps.ResponseHandler,
		UserSvc:         deps.UserSvc,
	}
}

func (h *userHandlers) UserRoutes() chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.CreateUser)
	r.Get("/{uid}", h.GetUser)
	return r
}

func (h *userHandlers) CreateUser(w http.ResponseWriter, r *http.Request) {
	var body dto.RegisterUserRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}

	user, err := h.UserSvc.Register(r.Context(), body.UID, body.Email, body.Role, middleware.AdminClaim(r.Context()))
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}

	h.ResponseHandler.WriteSuccess(w, r, http.StatusCreated, user)
}

func (h *userHandlers) GetUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.UserSvc.GetUser(r.Context(), chi.URLParam(r, "uid"))
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}

	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, user)
}
