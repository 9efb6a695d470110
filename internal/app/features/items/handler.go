package items

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/dalemusser/shoplist/internal/app/features/shared/respond"
	"github.com/dalemusser/shoplist/internal/app/features/users"
	itemstore "github.com/dalemusser/shoplist/internal/app/store/items"
	userstore "github.com/dalemusser/shoplist/internal/app/store/users"
	"github.com/dalemusser/shoplist/internal/app/system/timeouts"
	"github.com/dalemusser/shoplist/internal/domain/apperr"
	"github.com/dalemusser/shoplist/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Handler serves the /api/shoppingitems endpoints. Items store only the
// owner's identifier; the owner's public profile is joined on read.
type Handler struct {
	Items *itemstore.Store
	Users *userstore.Store
	Log   *zap.Logger
}

func NewHandler(items *itemstore.Store, usersStore *userstore.Store, logger *zap.Logger) *Handler {
	return &Handler{Items: items, Users: usersStore, Log: logger}
}

// ItemPayload is the wire shape of a shopping item. User carries the
// joined owner profile and may be null when the owner record is gone.
type ItemPayload struct {
	ID        string            `json:"id"`
	Item      string            `json:"item"`
	User      *users.PublicUser `json:"user"`
	Completed bool              `json:"completed"`
}

// itemRequest is the request body for create and update. Only the owner's
// identifier matters on the user sub-object.
type itemRequest struct {
	Item      string `json:"item"`
	Completed bool   `json:"completed"`
	User      *struct {
		ID string `json:"id"`
	} `json:"user"`
}

// payload joins the owner's public profile onto the item. A missing owner
// record yields a null user; a store failure during the join is an error,
// not a null.
func (h *Handler) payload(ctx context.Context, item *models.ShoppingItem, owners map[string]*users.PublicUser) (ItemPayload, error) {
	owner, cached := owners[item.OwnerID]
	if !cached {
		u, err := h.Users.GetByID(ctx, item.OwnerID)
		if err != nil {
			return ItemPayload{}, fmt.Errorf("join owner for item %s: %w", item.ID, err)
		}
		owner = users.Public(u)
		owners[item.OwnerID] = owner
	}
	return ItemPayload{
		ID:        item.ID,
		Item:      item.Item,
		User:      owner,
		Completed: item.Completed,
	}, nil
}

func (h *Handler) payloads(ctx context.Context, items []models.ShoppingItem) ([]ItemPayload, error) {
	owners := map[string]*users.PublicUser{}
	out := make([]ItemPayload, 0, len(items))
	for i := range items {
		p, err := h.payload(ctx, &items[i], owners)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

// Create handles POST /api/shoppingitems. Returns the created item with
// its assigned identifier.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	var req itemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, h.Log, fmt.Errorf("%w: malformed request body", apperr.ErrInvalidArgument))
		return
	}

	item := models.ShoppingItem{Item: req.Item, Completed: req.Completed}
	if req.User != nil {
		item.OwnerID = req.User.ID
	}

	created, err := h.Items.Create(ctx, item)
	if err != nil {
		respond.Error(w, h.Log, err)
		return
	}

	p, err := h.payload(ctx, &created, map[string]*users.PublicUser{})
	if err != nil {
		respond.Error(w, h.Log, err)
		return
	}
	respond.JSON(w, http.StatusOK, p)
}

// List handles GET /api/shoppingitems.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	items, err := h.Items.GetAll(ctx)
	if err != nil {
		respond.Error(w, h.Log, err)
		return
	}
	out, err := h.payloads(ctx, items)
	if err != nil {
		respond.Error(w, h.Log, err)
		return
	}
	respond.JSON(w, http.StatusOK, out)
}

// ListByOwner handles GET /api/shoppingitems/user/{userID}.
func (h *Handler) ListByOwner(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	items, err := h.Items.GetByOwnerID(ctx, chi.URLParam(r, "userID"))
	if err != nil {
		respond.Error(w, h.Log, err)
		return
	}
	out, err := h.payloads(ctx, items)
	if err != nil {
		respond.Error(w, h.Log, err)
		return
	}
	respond.JSON(w, http.StatusOK, out)
}

// Get handles GET /api/shoppingitems/{id}. An unknown id yields 200 with
// a null body; clients treat the null as "no such item".
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	item, err := h.Items.GetByID(ctx, chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, h.Log, err)
		return
	}
	if item == nil {
		respond.JSON(w, http.StatusOK, nil)
		return
	}
	p, err := h.payload(ctx, item, map[string]*users.PublicUser{})
	if err != nil {
		respond.Error(w, h.Log, err)
		return
	}
	respond.JSON(w, http.StatusOK, p)
}

// Update handles PUT /api/shoppingitems/{id}. Only description and
// completed change; identity and owner are preserved.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	var req itemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, h.Log, fmt.Errorf("%w: malformed request body", apperr.ErrInvalidArgument))
		return
	}

	updated, err := h.Items.Update(ctx, models.ShoppingItem{
		ID:        chi.URLParam(r, "id"),
		Item:      req.Item,
		Completed: req.Completed,
	})
	if err != nil {
		respond.Error(w, h.Log, err)
		return
	}

	p, err := h.payload(ctx, &updated, map[string]*users.PublicUser{})
	if err != nil {
		respond.Error(w, h.Log, err)
		return
	}
	respond.JSON(w, http.StatusOK, p)
}

// Delete handles DELETE /api/shoppingitems/{id}. Always 200; there is no
// ownership check.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if _, err := h.Items.Delete(ctx, chi.URLParam(r, "id")); err != nil {
		respond.Error(w, h.Log, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}
