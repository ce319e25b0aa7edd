package auth

import (
	"context"
	"net/http"
)

// Actor is the authenticated identity a workflow call runs as. It is
// resolved once at the HTTP boundary and passed explicitly; nothing in the
// application reads ambient session state.
type Actor struct {
	ID   string
	Role string
}

const (
	RoleSales      = "sales"
	RoleProduction = "production"
	RoleManager    = "manager"
)

type ctxKey struct{}

// Middleware resolves the actor from the X-Actor-Id / X-Actor-Role headers
// supplied by the session layer in front of this service.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor := Actor{
			ID:   r.Header.Get("X-Actor-Id"),
			Role: r.Header.Get("X-Actor-Role"),
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, actor)))
	})
}

// FromContext returns the actor resolved by Middleware; the zero Actor when
// the request carried no identity.
func FromContext(ctx context.Context) Actor {
	actor, _ := ctx.Value(ctxKey{}).(Actor)
	return actor
}
