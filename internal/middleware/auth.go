package middleware

import (
	"context"
	"net/http"
	"strings"

	"firebase.google.com/go/v4/auth"

	"github.com/GregMSThompson/attendance-backend/internal/errs"
	"github.com/GregMSThompson/attendance-backend/internal/models"
	"github.com/GregMSThompson/attendance-backend/internal/response"
	"github.com/GregMSThompson/attendance-backend/pkg/logger"
)

// RoleClaim is the Firebase custom claim that marks an administrator.
const RoleClaim = "role"

type tokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error)
}

type adminChecker interface {
	IsAdmin(ctx context.Context, uid string) (bool, error)
}

type Middleware struct {
	AuthClient      tokenVerifier
	Admins          adminChecker
	ResponseHandler response.ResponseHandler
}

func NewMiddleware(client tokenVerifier, admins adminChecker, rh response.ResponseHandler) *Middleware {
	return &Middleware{AuthClient: client, Admins: admins, ResponseHandler: rh}
}

// Principal is the verified caller. AdminClaim comes only from the token.
type Principal struct {
	UID        string
	Email      string
	AdminClaim bool
}

// context key
type contextKey string

const (
	UIDKey       contextKey = "uid"
	PrincipalKey contextKey = "principal"
)

// FirebaseAuth verifies the bearer ID token and stores the Principal.
func (m *Middleware) FirebaseAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			m.ResponseHandler.HandleError(w, r, errs.NewUnauthorizedError("missing Authorization header"))
			return
		}

		parts := strings.Fields(header)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			m.ResponseHandler.HandleError(w, r, errs.NewUnauthorizedError("invalid Authorization header"))
			return
		}

		token, err := m.AuthClient.VerifyIDToken(r.Context(), parts[1])
		if err != nil {
			logger.FromContext(r.Context()).Debug("id token rejected", "error", err)
			m.ResponseHandler.HandleError(w, r, errs.NewUnauthorizedError("invalid or expired token"))
			return
		}

		p := principalFromToken(token)
		_, ctx := logger.With(r.Context(), "uid", p.UID)
		ctx = WithPrincipal(ctx, p)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAdmin lets through callers holding the admin claim or whose stored
// user role is admin. It must run after FirebaseAuth.
func (m *Middleware) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p, ok := PrincipalFrom(r.Context())
		if !ok {
			m.ResponseHandler.HandleError(w, r, errs.NewUnauthorizedError("authentication required"))
			return
		}
		if !p.AdminClaim {
			admin, err := m.Admins.IsAdmin(r.Context(), p.UID)
			if err != nil {
				m.ResponseHandler.HandleError(w, r, err)
				return
			}
			if !admin {
				m.ResponseHandler.HandleError(w, r, errs.NewForbiddenError("admin access required"))
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}

func principalFromToken(token *auth.Token) Principal {
	p := Principal{UID: token.UID}
	if email, ok := token.Claims["email"].(string); ok {
		p.Email = email
	}
	if role, ok := token.Claims[RoleClaim].(string); ok {
		p.AdminClaim = models.Role(role) == models.RoleAdmin
	}
	return p
}

func WithPrincipal(ctx context.Context, p Principal) context.Context {
	ctx = context.WithValue(ctx, UIDKey, p.UID)
	return context.WithValue(ctx, PrincipalKey, p)
}

func PrincipalFrom(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(PrincipalKey).(Principal)
	return p, ok
}

// Helper to extract UID
func UID(ctx context.Context) string {
	uid, _ := ctx.Value(UIDKey).(string)
	return uid
}

// AdminClaim reports whether the verified caller carries the admin claim.
func AdminClaim(ctx context.Context) bool {
	p, ok := PrincipalFrom(ctx)
	return ok && p.AdminClaim
}
