package users

import "github.com/go-chi/chi/v5"

// Routes returns the subrouter mounted at /api/users.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Post("/authenticate", h.Authenticate)
	r.Post("/", h.Register)
	r.Get("/", h.List)
	r.Get("/{id}", h.Get)
	r.Put("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)
	return r
}
