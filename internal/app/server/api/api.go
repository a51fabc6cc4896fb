// HTTP surface of the access control backend.
//
// POST /api/v1/auth/login          # Admin login (public)
// POST /api/v1/users               # Create user (auth)
// GET  /api/v1/users               # List users (auth)
// PUT  /api/v1/users/{id}          # Partial update (auth)
// DELETE /api/v1/users/{id}        # Delete user (auth)
// POST /api/v1/users/{id}/photos   # Enroll face photos (auth)
// GET  /api/v1/users/{id}/photos   # List photo URLs (auth)
// GET  /api/v1/users/{id}/embeddings # List embeddings (auth)
// GET  /api/v1/events              # Recent events (auth)
// GET  /api/v1/device/sync         # Device snapshot (device, public)
// POST /api/v1/device/events       # Device event report (device, public)
// POST /api/v1/device/captures     # Device frame upload (device, public)
// GET  /api/v1/health              # Liveness (public)
//
// Stored photos are served statically under /uploads/ and /captures/.
package api

import (
	"net/http"

	authAPI "gatekeeper/internal/app/server/api/http/auth"
	deviceAPI "gatekeeper/internal/app/server/api/http/device"
	eventAPI "gatekeeper/internal/app/server/api/http/event"
	healthAPI "gatekeeper/internal/app/server/api/http/health"
	"gatekeeper/internal/app/server/api/http/middleware"
	authMW "gatekeeper/internal/app/server/api/http/middleware/auth"
	loggerMW "gatekeeper/internal/app/server/api/http/middleware/logger"
	userAPI "gatekeeper/internal/app/server/api/http/user"
	"gatekeeper/internal/app/server/config"
	"gatekeeper/internal/domain/embedding"
	"gatekeeper/internal/domain/event"
	"gatekeeper/internal/domain/session"
	"gatekeeper/internal/domain/sync"
	"gatekeeper/internal/domain/user"
	"gatekeeper/internal/embedder"
	"gatekeeper/internal/infrastructure/storage/photostore"
	"gatekeeper/internal/infrastructure/storage/postgres"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"golang.org/x/exp/slog"
)

type Handlers struct {
	Health *healthAPI.Handler
	Auth   *authAPI.Handler
	User   *userAPI.Handler
	Event  *eventAPI.Handler
	Device *deviceAPI.Handler
}

// New builds the chi mux with every operation registered through huma plus
// the static photo mounts.
func New(cfg *config.Config, storage *postgres.Storage, photos *photostore.Store,
	provider embedder.Provider, log *slog.Logger) *chi.Mux {
	mux := chi.NewMux()

	humaConfig := huma.DefaultConfig("Gatekeeper API", "1.0.0")
	humaConfig.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"bearer": {Type: "http", Scheme: "bearer"},
	}

	API := humachi.New(mux, humaConfig)

	h := handlers(cfg, storage, photos, provider, log)
	h.Health.SetupRoutes(API)
	h.Auth.SetupRoutes(API)
	h.User.SetupRoutes(API)
	h.Event.SetupRoutes(API)
	h.Device.SetupRoutes(API)

	mux.Handle(photostore.UploadsBase+"/*",
		http.StripPrefix(photostore.UploadsBase+"/", http.FileServer(http.Dir(photos.PhotosDir()))))
	mux.Handle(photostore.CapturesBase+"/*",
		http.StripPrefix(photostore.CapturesBase+"/", http.FileServer(http.Dir(photos.CapturesDir()))))

	return mux
}

func handlers(cfg *config.Config, storage *postgres.Storage, photos *photostore.Store,
	provider embedder.Provider, log *slog.Logger) *Handlers {
	sessionService := session.NewService(cfg.Auth.Secret, cfg.Auth.AccessTTL, cfg.Auth.RefreshTTL, log)
	authMiddleware := authMW.New(sessionService, log)
	logMiddleware := loggerMW.New(log)
	middlewares := middleware.NewContainer()

	userRepo := postgres.NewUserRepository(storage.Pool(), log)
	userService := user.NewService(userRepo, log)

	embeddingRepo := postgres.NewEmbeddingRepository(storage.Pool(), log)
	embeddingService := embedding.NewService(embeddingRepo, log)

	eventRepo := postgres.NewEventRepository(storage.Pool(), log)
	eventService := event.NewService(eventRepo, log)

	syncRepo := postgres.NewSyncRepository(storage.Pool(), log)
	syncService := sync.NewService(syncRepo, photos, sync.DeviceConfig{
		Threshold:       cfg.Device.Threshold,
		GPIOPin:         cfg.Device.GPIOPin,
		GPIOPulseMS:     cfg.Device.GPIOPulseMS,
		SyncIntervalSec: cfg.Device.SyncIntervalSec,
	}, log)

	middlewares.Add(logMiddleware.Middleware())
	healthHandler := healthAPI.NewHandler(log, middlewares.GetAllAndClear())

	middlewares.Add(logMiddleware.Middleware())
	authHandler := authAPI.NewHandler(userService, sessionService, log, middlewares.GetAllAndClear())

	middlewares.Add(authMiddleware.Middleware())
	middlewares.Add(logMiddleware.Middleware())
	userHandler := userAPI.NewHandler(userService, embeddingService, provider, photos, log, middlewares.GetAllAndClear())

	middlewares.Add(authMiddleware.Middleware())
	middlewares.Add(logMiddleware.Middleware())
	eventHandler := eventAPI.NewHandler(eventService, log, middlewares.GetAllAndClear())

	// Device endpoints stay unauthenticated: edge devices hold no tokens.
	middlewares.Add(logMiddleware.Middleware())
	deviceHandler := deviceAPI.NewHandler(syncService, eventService, userService, photos, log, middlewares.GetAllAndClear())

	return &Handlers{
		Health: healthHandler,
		Auth:   authHandler,
		User:   userHandler,
		Event:  eventHandler,
		Device: deviceHandler,
	}
}
