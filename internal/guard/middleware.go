package guard

import (
	"context"
	"net/http"

	"github.com/ethemkurtt/hotel-gateway/pkg/auth"
	"github.com/ethemkurtt/hotel-gateway/pkg/logger"
)

type ctxKey string

const ctxClaims ctxKey = "claims"

// Middleware runs the policy at the edge, before any handler sees the
// request. The token comes from the auth cookie so the guard works even when
// no session has been hydrated yet.
//
// Only home and the two role areas are guarded navigations. Everything else,
// the auth endpoints above all, stays outside the policy: a client with an
// expired or corrupt cookie must still be able to log in and log out.
func (p *Policy) Middleware(cookieName string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !Guarded(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			token := ""
			if c, err := r.Cookie(cookieName); err == nil {
				token = c.Value
			}

			decision := p.Evaluate(r.URL.Path, token)
			if decision.Action == Redirect {
				logger.DebugContext(r.Context(), "guard redirect",
					"path", r.URL.Path, "target", decision.Target)
				http.Redirect(w, r, decision.Target, http.StatusFound)
				return
			}

			if token != "" {
				if claims, err := auth.Parse(token, p.secret); err == nil {
					ctx := context.WithValue(r.Context(), ctxClaims, claims)
					ctx = context.WithValue(ctx, logger.UserIDKey, claims.ID)
					r = r.WithContext(ctx)
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// Claims returns the verified token claims the middleware stored, or nil when
// the request was anonymous.
func Claims(r *http.Request) *auth.Claims {
	v := r.Context().Value(ctxClaims)
	if v == nil {
		return nil
	}
	return v.(*auth.Claims)
}

// RequireRole is the handler-level check for API routes that are not under a
// guarded page prefix. It answers with a status code instead of a redirect.
func (p *Policy) RequireRole(role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims := Claims(r)
			if claims == nil {
				http.Error(w, "authentication required", http.StatusUnauthorized)
				return
			}
			if claims.Role != role {
				http.Error(w, "insufficient permissions", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
