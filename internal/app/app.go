package app

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/saanj-studio/anthology-core/internal/config"
	"github.com/saanj-studio/anthology-core/internal/middleware"
	"github.com/saanj-studio/anthology-core/internal/modules/content/catalog"
	"github.com/saanj-studio/anthology-core/internal/modules/content/remote"
	"github.com/saanj-studio/anthology-core/internal/modules/content/store"
	"github.com/saanj-studio/anthology-core/internal/modules/share"
	"github.com/saanj-studio/anthology-core/internal/modules/share/raster"
	pkgredis "github.com/saanj-studio/anthology-core/internal/pkg/redis"
)

// App holds all application dependencies.
type App struct {
	cfg     *config.AppConfig
	router  *gin.Engine
	logger  *zap.Logger
	redis   *pkgredis.Client
	catalog *catalog.Service
}

// New initializes the application: config → CMS client → cache → routes.
func New(logger *zap.Logger, cfg *config.AppConfig) (*App, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}

	if cfg.IsDev() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(logger))
	router.Use(buildCORS(cfg))

	var rc *pkgredis.Client
	if cfg.Redis.URL != "" {
		var err error
		rc, err = pkgredis.Connect(cfg.Redis.URL)
		if err != nil {
			return nil, fmt.Errorf("redis: %w", err)
		}
	}

	client := remote.New(cfg.Content.Endpoint, cfg.Content.Token)
	cache := store.New()
	catalogService := catalog.NewService(client, cache, cfg, logger)

	var objectStore *share.ObjectStore
	if cfg.ShareCard.S3.Enable {
		var err error
		objectStore, err = share.NewObjectStore(cfg.ShareCard.S3)
		if err != nil {
			return nil, fmt.Errorf("share card store: %w", err)
		}
	}
	pipeline := share.NewPipeline(raster.New(), nil, cfg.ShareCard, logger)

	app := &App{
		cfg:     cfg,
		router:  router,
		logger:  logger,
		redis:   rc,
		catalog: catalogService,
	}
	app.registerRoutes(catalogService, pipeline, objectStore)

	return app, nil
}

// Addr returns the listen address.
func (a *App) Addr() string { return fmt.Sprintf(":%d", a.cfg.Port) }

// Router returns the HTTP handler.
func (a *App) Router() http.Handler { return a.router }

// Shutdown closes background resources.
func (a *App) Shutdown() {
	if a.redis != nil {
		_ = a.redis.Raw().Close()
	}
}
