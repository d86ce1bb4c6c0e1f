package app

import (
	"context"
	"database/sql"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"sensorhub/internal/catalog"
	"sensorhub/internal/clients"
	"sensorhub/internal/config"
	"sensorhub/internal/db"
	httpserver "sensorhub/internal/http"
	"sensorhub/internal/http/handlers"
	"sensorhub/internal/notify"
	"sensorhub/internal/redisconn"
	"sensorhub/internal/redisstore"
	"sensorhub/internal/repository"
	"sensorhub/internal/scheduler"
	"sensorhub/internal/service"
)

// App wires sensorhub dependencies.
type App struct {
	server    *httpserver.Server
	hub       *notify.Hub
	scheduler *scheduler.Runner
	db        *sql.DB
	rdb       *redis.Client
	logger    *zap.Logger
}

// New constructs application components.
func New(cfg *config.Config, logger *zap.Logger) (*App, error) {
	sqlDB, err := db.NewPostgres(cfg.Database.DSN)
	if err != nil {
		return nil, err
	}

	var (
		rdb         *redis.Client
		mirrorStore *redisstore.Store
		mirror      service.LatestMirror
	)
	if cfg.Redis.Addr != "" {
		rdb, err = redisconn.New(cfg.Redis.Addr, cfg.Redis.Password)
		if err != nil {
			sqlDB.Close()
			return nil, err
		}
		mirrorStore = redisstore.NewStore(rdb, cfg.CatalogTTL())
		mirror = mirrorStore
	}

	sensorRepo := repository.NewSensorRepository(sqlDB)
	readingRepo := repository.NewReadingRepository(sqlDB)
	userSensorRepo := repository.NewUserSensorRepository(sqlDB)
	notificationRepo := repository.NewNotificationRepository(sqlDB)
	store := repository.NewStore(sqlDB)

	telemetry := clients.NewTelemetryClient(
		cfg.Telemetry.BaseURL,
		cfg.Telemetry.APIKey,
		clients.NewDefaultHTTPClient(cfg.TelemetryTimeout()),
	)

	catalogCache := catalog.NewCache(sensorRepo, cfg.CatalogTTL(), cfg.CatalogSliding(), nil)

	hub := notify.NewHub(0)
	dispatcher := notify.NewDispatcher(hub, rdb, nil, logger)

	alarmService := service.NewAlarmService(userSensorRepo, dispatcher, logger)
	pollingService := service.NewPollingService(
		catalogCache,
		telemetry,
		readingRepo,
		store,
		alarmService,
		mirror,
		cfg.TelemetryTimeout(),
		nil,
		logger,
	)
	registryService := service.NewRegistryService(telemetry, sensorRepo, store, catalogCache, telemetry, nil, logger)
	userSensorService := service.NewUserSensorService(userSensorRepo, sensorRepo, logger)

	routes := httpserver.Routes{
		RunPass:       handlers.NewPollingHandler(pollingService, logger),
		Rebase:        handlers.NewRebaseHandler(registryService, logger),
		Subscriptions: handlers.NewSubscriptionsHandler(userSensorService, logger),
		Notifications: handlers.NewNotificationsHandler(notificationRepo, logger),
		Latest:        handlers.NewLatestHandler(mirrorStore, readingRepo, logger),
		Alerts:        handlers.NewAlertsHandler(hub, logger),
		Health:        handlers.NewHealthHandler(),
	}

	router := httpserver.NewRouter(routes)
	server := httpserver.NewServer(cfg.HTTPAddress(), router, logger)

	var runner *scheduler.Runner
	if cfg.Polling.Enabled {
		runner = scheduler.NewRunner(cfg.PollingInterval(), func(ctx context.Context) error {
			_, err := pollingService.RunPass(ctx)
			return err
		}, logger)
	}

	return &App{
		server:    server,
		hub:       hub,
		scheduler: runner,
		db:        sqlDB,
		rdb:       rdb,
		logger:    logger,
	}, nil
}

// Run starts the hub ping loop, the scheduler and the HTTP server, and blocks
// until ctx is cancelled or the server fails.
func (a *App) Run(ctx context.Context) error {
	go a.hub.Start(ctx)
	if a.scheduler != nil {
		go a.scheduler.Start(ctx)
	}
	return a.server.Run(ctx)
}

// Close releases resources.
func (a *App) Close() {
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.logger.Warn("failed to close db", zap.Error(err))
		}
	}
	if a.rdb != nil {
		if err := a.rdb.Close(); err != nil {
			a.logger.Warn("failed to close redis", zap.Error(err))
		}
	}
}
