package bootstrap_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/dalemusser/shoplist/internal/app/bootstrap"
	"github.com/dalemusser/shoplist/internal/testutil"
	"go.uber.org/zap"
)

func newAppHandler(t *testing.T, requireAuth bool) http.Handler {
	t.Helper()

	db := testutil.SetupTestDB(t)
	deps := bootstrap.DBDeps{MongoClient: db.Client(), MongoDatabase: db}
	appCfg := bootstrap.AppConfig{
		MongoDatabase: db.Name(),
		TokenSecret:   "test-secret",
		TokenExpiry:   time.Hour,
		RequireAuth:   requireAuth,
	}

	h, err := bootstrap.BuildHandler(nil, appCfg, deps, zap.NewNop())
	if err != nil {
		t.Fatalf("BuildHandler failed: %v", err)
	}
	return h
}

// TestUserItemFlow walks the full lifecycle through the mounted API:
// register, authenticate, create an item, list it by owner, delete it,
// and confirm the owner's list is empty again.
func TestUserItemFlow(t *testing.T) {
	h := newAppHandler(t, false)

	rec := testutil.NewRecorder()
	h.ServeHTTP(rec, testutil.NewJSONRequest(t, http.MethodPost, "/api/users", map[string]string{
		"email":     "flow@x.com",
		"password":  "pw1",
		"firstName": "Flo",
		"lastName":  "Walker",
	}))
	rec.AssertStatus(t, http.StatusOK)

	rec = testutil.NewRecorder()
	h.ServeHTTP(rec, testutil.NewJSONRequest(t, http.MethodPost, "/api/users/authenticate", map[string]string{
		"email":    "flow@x.com",
		"password": "pw1",
	}))
	rec.AssertStatus(t, http.StatusOK)

	var session struct {
		ID    string `json:"id"`
		Token string `json:"token"`
	}
	rec.DecodeJSON(t, &session)
	if session.ID == "" || session.Token == "" {
		t.Fatalf("incomplete session: %+v", session)
	}

	rec = testutil.NewRecorder()
	h.ServeHTTP(rec, testutil.NewJSONRequest(t, http.MethodPost, "/api/shoppingitems", map[string]any{
		"item": "milk",
		"user": map[string]string{"id": session.ID},
	}))
	rec.AssertStatus(t, http.StatusOK)

	var created struct {
		ID string `json:"id"`
	}
	rec.DecodeJSON(t, &created)
	if created.ID == "" {
		t.Fatal("expected an item id")
	}

	rec = testutil.NewRecorder()
	h.ServeHTTP(rec, testutil.NewJSONRequest(t, http.MethodGet, "/api/shoppingitems/user/"+session.ID, nil))
	rec.AssertStatus(t, http.StatusOK)

	var listed []struct {
		ID   string `json:"id"`
		Item string `json:"item"`
	}
	rec.DecodeJSON(t, &listed)
	if len(listed) != 1 || listed[0].ID != created.ID || listed[0].Item != "milk" {
		t.Fatalf("unexpected owner list: %+v", listed)
	}

	rec = testutil.NewRecorder()
	h.ServeHTTP(rec, testutil.NewJSONRequest(t, http.MethodDelete, "/api/shoppingitems/"+created.ID, nil))
	rec.AssertStatus(t, http.StatusOK)

	rec = testutil.NewRecorder()
	h.ServeHTTP(rec, testutil.NewJSONRequest(t, http.MethodGet, "/api/shoppingitems/user/"+session.ID, nil))
	rec.AssertStatus(t, http.StatusOK)
	listed = nil
	rec.DecodeJSON(t, &listed)
	if len(listed) != 0 {
		t.Fatalf("expected empty list after delete, got %+v", listed)
	}
}

// TestRequireAuth covers the optional bearer gate in front of the item
// routes.
func TestRequireAuth(t *testing.T) {
	h := newAppHandler(t, true)

	rec := testutil.NewRecorder()
	h.ServeHTTP(rec, testutil.NewJSONRequest(t, http.MethodPost, "/api/users", map[string]string{
		"email":    "gated@x.com",
		"password": "pw1",
	}))
	rec.AssertStatus(t, http.StatusOK)

	rec = testutil.NewRecorder()
	h.ServeHTTP(rec, testutil.NewJSONRequest(t, http.MethodGet, "/api/shoppingitems", nil))
	rec.AssertStatus(t, http.StatusUnauthorized)

	rec = testutil.NewRecorder()
	h.ServeHTTP(rec, testutil.NewJSONRequest(t, http.MethodPost, "/api/users/authenticate", map[string]string{
		"email":    "gated@x.com",
		"password": "pw1",
	}))
	rec.AssertStatus(t, http.StatusOK)

	var session struct {
		Token string `json:"token"`
	}
	rec.DecodeJSON(t, &session)

	req := testutil.NewJSONRequest(t, http.MethodGet, "/api/shoppingitems", nil)
	req.Header.Set("Authorization", "Bearer "+session.Token)
	rec = testutil.NewRecorder()
	h.ServeHTTP(rec, req)
	rec.AssertStatus(t, http.StatusOK)
}
