// Package guard holds the single authorization policy evaluated on every
// navigation. Both the edge middleware and handler-level checks go through
// Evaluate so the rules cannot drift apart.
package guard

import (
	"strings"

	"github.com/ethemkurtt/hotel-gateway/pkg/auth"
)

const (
	HomePath        = "/"
	AdminPrefix     = "/dashboard"
	CustomerPrefix  = "/otel"
	AdminLanding    = "/dashboard"
	CustomerLanding = "/otel"
)

type Action int

const (
	Allow Action = iota
	Redirect
)

// Decision is the outcome of one policy evaluation. Target is only set when
// Action is Redirect.
type Decision struct {
	Action Action
	Target string
}

func allow() Decision                 { return Decision{Action: Allow} }
func redirect(target string) Decision { return Decision{Action: Redirect, Target: target} }

type Policy struct {
	secret string
}

func New(jwtSecret string) *Policy {
	return &Policy{secret: jwtSecret}
}

// Evaluate applies the routing rules in order and returns the first match.
// It is a pure function of (path, token); callers must re-evaluate on every
// request rather than cache the result.
func (p *Policy) Evaluate(path, token string) Decision {
	// Unauthenticated: protected prefixes bounce to home, everything else passes.
	if token == "" {
		if underProtectedPrefix(path) {
			return redirect(HomePath)
		}
		return allow()
	}

	claims, err := auth.Parse(token, p.secret)
	if err != nil {
		// Malformed or expired token counts as unauthenticated.
		return redirect(HomePath)
	}

	if hasPrefix(path, AdminPrefix) && claims.Role != auth.RoleAdmin {
		return redirect(HomePath)
	}
	if hasPrefix(path, CustomerPrefix) && claims.Role != auth.RoleCustomer {
		return redirect(HomePath)
	}

	// Logged-in users landing on home get sent to their own area.
	if path == HomePath && claims.KnownRole() {
		return redirect(Landing(claims.Role))
	}

	return allow()
}

// Landing maps a role to its landing route; unknown roles fall back to home.
func Landing(role string) string {
	switch role {
	case auth.RoleAdmin:
		return AdminLanding
	case auth.RoleCustomer:
		return CustomerLanding
	default:
		return HomePath
	}
}

// Guarded reports whether the policy applies to a path at all. The guard
// covers home and the two role areas; auth endpoints and the public catalogue
// are reachable with any cookie state.
func Guarded(path string) bool {
	return path == HomePath || underProtectedPrefix(path)
}

func underProtectedPrefix(path string) bool {
	return hasPrefix(path, AdminPrefix) || hasPrefix(path, CustomerPrefix)
}

// hasPrefix matches on whole path segments so /dashboardx is not treated as
// part of /dashboard.
func hasPrefix(path, prefix string) bool {
	if !strings.HasPrefix(path, prefix) {
		return false
	}
	rest := path[len(prefix):]
	return rest == "" || strings.HasPrefix(rest, "/")
}
