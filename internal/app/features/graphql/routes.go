// internal/app/features/graphql/routes.go
package graphql

import (
	"github.com/dalemusser/taskboard/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes returns a subrouter mounted under /graphql. Identity is resolved
// for every request; anonymous callers reach the resolvers and are refused
// there by the guard, so signUp and signIn stay reachable.
func Routes(h *Handler, res *auth.Resolver) chi.Router {
	r := chi.NewRouter()
	r.Use(res.Middleware)
	r.Post("/", h.ServeHTTP)
	return r
}
