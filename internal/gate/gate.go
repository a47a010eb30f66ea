package gate

import (
	"net/http"

	"atelier/internal/middleware"
	"atelier/internal/session"
)

const (
	homePath  = "/"
	loginPath = "/login"
)

// Kind selects one of the three route-admission policies.
type Kind int

const (
	// AuthOnlyRedirect sends authenticated visitors away; login and
	// registration pages have nothing for them.
	AuthOnlyRedirect Kind = iota
	// RequireAuth sends anonymous visitors to the login page.
	RequireAuth
	// RequireAuthAndCapability additionally requires the approval gate
	// to have been passed (or an admin role).
	RequireAuthAndCapability
)

// Decision is the outcome of evaluating a gate: either let the request
// through or redirect it.
type Decision struct {
	Allow    bool
	Redirect string
}

// Decide evaluates a gate against the visitor's access level. Purely
// local and synchronous: the cached role/approval flags are trusted for
// UX routing, the upstream API remains the actual authority.
func Decide(kind Kind, level session.AccessLevel) Decision {
	switch kind {
	case AuthOnlyRedirect:
		if level != session.Anonymous {
			return Decision{Redirect: homePath}
		}
	case RequireAuth:
		if level == session.Anonymous {
			return Decision{Redirect: loginPath}
		}
	case RequireAuthAndCapability:
		if level == session.Anonymous {
			return Decision{Redirect: loginPath}
		}
		if level != session.Admin && level != session.Approved {
			return Decision{Redirect: homePath}
		}
	}
	return Decision{Allow: true}
}

// Middleware wraps a route with the given admission policy. The session
// must already be on the request context; without one the visitor
// counts as anonymous.
func Middleware(kind Kind) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			level := session.Anonymous
			if sess := middleware.SessionFrom(r); sess != nil {
				level = sess.Level()
			}

			decision := Decide(kind, level)
			if !decision.Allow {
				http.Redirect(w, r, decision.Redirect, http.StatusSeeOther)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
