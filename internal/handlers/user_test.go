package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/GregMSThompson/attendance-backend/internal/errs"
	"github.com/GregMSThompson/attendance-backend/internal/middleware"
	"github.com/GregMSThompson/attendance-backend/internal/models"
)

type stubUserService struct {
	called     bool
	uid, email string
	role       models.Role
	adminClaim bool
	user       *models.User
	employees  []*models.User
	err        error
}

func (s *stubUserService) Register(_ context.Context, uid, email string, role models.Role, adminClaim bool) (*models.User, error) {
	s.called = true
	s.uid = uid
	s.email = email
	s.role = role
	s.adminClaim = adminClaim
	if s.err != nil {
		return nil, s.err
	}
	return &models.User{UID: uid, Email: email, Role: role}, nil
}

func (s *stubUserService) GetUser(_ context.Context, uid string) (*models.User, error) {
	s.called = true
	s.uid = uid
	return s.user, s.err
}

func (s *stubUserService) ListEmployees(_ context.Context) ([]*models.User, error) {
	s.called = true
	return s.employees, s.err
}

func (s *stubUserService) IsAdmin(_ context.Context, _ string) (bool, error) {
	return false, nil
}

type stubResponseHandler struct {
	writeSuccessCalled bool
	writeSuccessStatus int
	writeSuccessData   any

	handleErrorCalled bool
	handleError       error

	writeErrorCalled bool
	writeErrorStatus int
}

func (s *stubResponseHandler) WriteSuccess(w http.ResponseWriter, _ *http.Request, status int, data any) {
	s.writeSuccessCalled = true
	s.writeSuccessStatus = status
	s.writeSuccessData = data

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
}

func (s *stubResponseHandler) WriteError(w http.ResponseWriter, _ *http.Request, status int, _, _ string) {
	s.writeErrorCalled = true
	s.writeErrorStatus = status
	w.WriteHeader(status)
}

func (s *stubResponseHandler) HandleError(w http.ResponseWriter, _ *http.Request, err error) {
	s.handleErrorCalled = true
	s.handleError = err
	w.WriteHeader(http.StatusInternalServerError)
}

// withPrincipal injects a verified caller into the request context.
func withPrincipal(r *http.Request, p middleware.Principal) *http.Request {
	return r.WithContext(middleware.WithPrincipal(r.Context(), p))
}

// withChiParam injects a chi URL parameter into the request context.
func withChiParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	ctx := context.WithValue(r.Context(), chi.RouteCtxKey, rctx)
	return r.WithContext(ctx)
}

func TestCreateUserSuccess(t *testing.T) {
	userSvc := &stubUserService{}
	resp := &stubResponseHandler{}
	h := NewUserHandlers(&Deps{ResponseHandler: resp, UserSvc: userSvc})

	body := `{"uid":"uid-123","email":"jane@example.com"}`
	req := httptest.NewRequest(http.MethodPost, "/users", strings.NewReader(body))
	rr := httptest.NewRecorder()
	h.CreateUser(rr, req)

	if !userSvc.called {
		t.Fatalf("expected Register to be called on service")
	}
	if userSvc.uid != "uid-123" || userSvc.email != "jane@example.com" {
		t.Fatalf("service received wrong identifiers: uid=%s email=%s", userSvc.uid, userSvc.email)
	}
	if userSvc.adminClaim {
		t.Fatalf("anonymous request must not carry an admin claim")
	}
	if !resp.writeSuccessCalled || resp.writeSuccessStatus != http.StatusCreated {
		t.Fatalf("WriteSuccess not called with status 201")
	}
}

func TestCreateUserPassesAdminClaimFromToken(t *testing.T) {
	userSvc := &stubUserService{}
	resp := &stubResponseHandler{}
	h := NewUserHandlers(&Deps{ResponseHandler: resp, UserSvc: userSvc})

	body := `{"uid":"uid-9","email":"boss@example.com","role":"admin"}`
	req := httptest.NewRequest(http.MethodPost, "/users", strings.NewReader(body))
	req = withPrincipal(req, middleware.Principal{UID: "uid-9", AdminClaim: true})
	rr := httptest.NewRecorder()
	h.CreateUser(rr, req)

	if userSvc.role != models.RoleAdmin || !userSvc.adminClaim {
		t.Fatalf("service got role=%s adminClaim=%v", userSvc.role, userSvc.adminClaim)
	}
}

func TestCreateUserInvalidJSON(t *testing.T) {
	userSvc := &stubUserService{}
	resp := &stubResponseHandler{}
	h := NewUserHandlers(&Deps{ResponseHandler: resp, UserSvc: userSvc})

	req := httptest.NewRequest(http.MethodPost, "/users", strings.NewReader("not-json"))
	rr := httptest.NewRecorder()
	h.CreateUser(rr, req)

	if userSvc.called {
		t.Fatalf("Register should not be called on service when JSON invalid")
	}
	if !resp.handleErrorCalled || resp.handleError == nil {
		t.Fatalf("HandleError should receive the decode error")
	}
}

func TestCreateUserConflict(t *testing.T) {
	userSvc := &stubUserService{err: errs.NewAlreadyExistsError("User already exists")}
	resp := &stubResponseHandler{}
	h := NewUserHandlers(&Deps{ResponseHandler: resp, UserSvc: userSvc})

	body := `{"uid":"uid-123","email":"jane@example.com"}`
	req := httptest.NewRequest(http.MethodPost, "/users", strings.NewReader(body))
	rr := httptest.NewRecorder()
	h.CreateUser(rr, req)

	if !resp.handleErrorCalled || !errors.Is(resp.handleError, userSvc.err) {
		t.Fatalf("expected service error to reach HandleError, got %v", resp.handleError)
	}
	if resp.writeSuccessCalled {
		t.Fatalf("WriteSuccess should not be called on service error")
	}
}

func TestGetUser(t *testing.T) {
	userSvc := &stubUserService{user: &models.User{UID: "uid-1", Role: models.RoleEmployee}}
	resp := &stubResponseHandler{}
	h := NewUserHandlers(&Deps{ResponseHandler: resp, UserSvc: userSvc})

	req := httptest.NewRequest(http.MethodGet, "/users/uid-1", nil)
	req = withChiParam(req, "uid", "uid-1")
	rr := httptest.NewRecorder()
	h.GetUser(rr, req)

	if userSvc.uid != "uid-1" {
		t.Fatalf("service got uid %q", userSvc.uid)
	}
	if !resp.writeSuccessCalled || resp.writeSuccessStatus != http.StatusOK {
		t.Fatalf("expected WriteSuccess 200")
	}
}

func TestGetUserNotFound(t *testing.T) {
	userSvc := &stubUserService{err: errs.NewNotFoundError("User not found")}
	resp := &stubResponseHandler{}
	h := NewUserHandlers(&Deps{ResponseHandler: resp, UserSvc: userSvc})

	req := httptest.NewRequest(http.MethodGet, "/users/missing", nil)
	req = withChiParam(req, "uid", "missing")
	rr := httptest.NewRecorder()
	h.GetUser(rr, req)

	if !resp.handleErrorCalled {
		t.Fatal("expected HandleError on not found")
	}
}
