// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	healthfeature "github.com/dalemusser/shoplist/internal/app/features/health"
	itemsfeature "github.com/dalemusser/shoplist/internal/app/features/items"
	usersfeature "github.com/dalemusser/shoplist/internal/app/features/users"
	itemstore "github.com/dalemusser/shoplist/internal/app/store/items"
	userstore "github.com/dalemusser/shoplist/internal/app/store/users"
	"github.com/dalemusser/shoplist/internal/app/system/auth"
	"github.com/dalemusser/shoplist/internal/app/system/token"
	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE
// app.
//
// WAFFLE calls this after configuration, DB connections, schema setup,
// and any Startup hooks have completed. The handler wires the two stores
// through the account service and the JSON features:
//   - /api/users: registration, authentication, profile CRUD
//   - /api/shoppingitems: per-user list items
//   - /health: liveness plus Mongo connectivity
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	users := userstore.New(deps.MongoDatabase)
	items := itemstore.New(deps.MongoDatabase)

	accounts := auth.NewService(users, logger)
	tokens := token.NewIssuer(appCfg.TokenSecret, appCfg.TokenExpiry, logger)

	r := chi.NewRouter()

	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	usersHandler := usersfeature.NewHandler(accounts, tokens, logger)
	r.Mount("/api/users", usersfeature.Routes(usersHandler))

	itemsHandler := itemsfeature.NewHandler(items, users, logger)
	itemRoutes := itemsfeature.Routes(itemsHandler)
	if appCfg.RequireAuth {
		wrapped := chi.NewRouter()
		wrapped.Use(tokens.RequireAuth)
		wrapped.Mount("/", itemRoutes)
		r.Mount("/api/shoppingitems", wrapped)
	} else {
		r.Mount("/api/shoppingitems", itemRoutes)
	}

	return r, nil
}
