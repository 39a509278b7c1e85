package httpx

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/shehabweb1/MediCamp-Server/internal/service/token"
)

type authContextKey string

// identity is the decoded claim set the access gate attaches to the request.
type identity struct {
	Email  string
	Claims map[string]any
}

const contextKeyIdentity authContextKey = "medicamp-identity"

type contextSetter interface {
	SetContext(context.Context)
}

// requireAuth ensures the request carries a valid bearer token before the
// handler runs. It rejects with 401 before any store access happens.
func (r *Router) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		ctx, _, ok := r.ensureAuth(w, req)
		if !ok {
			return
		}
		if setter, ok := w.(contextSetter); ok {
			setter.SetContext(ctx)
		}
		next(w, req.WithContext(ctx))
	}
}

// ensureAuth validates the Authorization header and enriches the context with
// the decoded identity.
func (r *Router) ensureAuth(w http.ResponseWriter, req *http.Request) (context.Context, identity, bool) {
	raw, err := bearerToken(req.Header.Get("Authorization"))
	if err != nil {
		r.logger.Warn("authorization header invalid", "error", err, "path", req.URL.Path)
		writeError(w, http.StatusUnauthorized, "unauthorized access")
		return req.Context(), identity{}, false
	}
	claims, err := r.tokens.Verify(raw)
	if err != nil {
		r.logger.Warn("token verification failed", "path", req.URL.Path)
		writeError(w, http.StatusUnauthorized, "unauthorized access")
		return req.Context(), identity{}, false
	}
	ident := identity{Email: token.Email(claims), Claims: claims}
	ctx := context.WithValue(req.Context(), contextKeyIdentity, ident)
	return ctx, ident, true
}

// identityFromContext extracts the decoded identity from context.
func identityFromContext(ctx context.Context) (identity, bool) {
	value := ctx.Value(contextKeyIdentity)
	if value == nil {
		return identity{}, false
	}
	ident, ok := value.(identity)
	return ident, ok
}

// requireOwner enforces the ownership rule: the caller may only address the
// identity its own token encodes. An exact email match, not a role check.
func (r *Router) requireOwner(w http.ResponseWriter, req *http.Request, email string) bool {
	ident, ok := identityFromContext(req.Context())
	if !ok {
		r.logger.Error("auth context missing for ownership check", "path", req.URL.Path)
		writeError(w, http.StatusInternalServerError, "authorization context missing")
		return false
	}
	if ident.Email != email {
		writeError(w, http.StatusForbidden, "forbidden access")
		return false
	}
	return true
}

func bearerToken(header string) (string, error) {
	if strings.TrimSpace(header) == "" {
		return "", errors.New("missing authorization header")
	}
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", errors.New("invalid authorization header format")
	}
	raw := strings.TrimSpace(parts[1])
	if raw == "" {
		return "", errors.New("empty bearer token")
	}
	return raw, nil
}
