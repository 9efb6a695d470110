package items

import "github.com/go-chi/chi/v5"

// Routes returns the subrouter mounted at /api/shoppingitems.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.Create)
	r.Get("/", h.List)
	r.Get("/user/{userID}", h.ListByOwner)
	r.Get("/{id}", h.Get)
	r.Put("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)
	return r
}
