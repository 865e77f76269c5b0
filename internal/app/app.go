package app

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"evkiosk/internal/auth"
	"evkiosk/internal/config"
	httpserver "evkiosk/internal/http"
	"evkiosk/internal/http/handlers"
	"evkiosk/internal/http/middleware"
	"evkiosk/internal/kiosk"
	"evkiosk/internal/repository"
	"evkiosk/internal/storage"
	"evkiosk/internal/ws"
	libdb "evkiosk/libs/db"
	libredis "evkiosk/libs/redis"
)

// App wires kiosk-service dependencies.
type App struct {
	server      *httpserver.Server
	controller  *kiosk.Controller
	db          *sql.DB
	redisClient *redis.Client
	logger      *zap.Logger
}

// New constructs the application graph.
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	redisClient, err := libredis.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		return nil, err
	}

	var sqlDB *sql.DB
	var receipts kiosk.ReceiptSink
	var receiptLister handlers.ReceiptLister
	if strings.TrimSpace(cfg.Database.DSN) != "" {
		sqlDB, err = libdb.NewPostgresDB(cfg.Database.DSN)
		if err != nil {
			redisClient.Close()
			return nil, err
		}
		repo := repository.NewReceiptRepository(sqlDB)
		receipts = repo
		receiptLister = repo
	} else {
		logger.Warn("receipt storage disabled, no database dsn configured")
	}

	tabScope := storage.NewRedisScope(redisClient, fmt.Sprintf("kiosk:%s:tab", cfg.KioskID), cfg.TabTTL())
	handoffScope := storage.NewRedisScope(redisClient, fmt.Sprintf("kiosk:%s:handoff", cfg.KioskID), 0)
	persister := kiosk.NewPersister(tabScope, handoffScope, logger)

	controller := kiosk.NewController(ctx, kiosk.ControllerConfig{
		KioskID:                cfg.KioskID,
		Persister:              persister,
		Receipts:               receipts,
		Logger:                 logger,
		EstimatedChargeMinutes: cfg.Charging.EstimatedMinutes,
	})

	hub := ws.NewHub(logger)
	controller.AddListener(func(snapshot kiosk.Snapshot) {
		hub.Broadcast(snapshot)
	})

	pins, err := auth.NewBcryptPinVerifier(cfg.Auth.OperatorPinHash)
	if err != nil {
		controller.Close()
		if sqlDB != nil {
			sqlDB.Close()
		}
		redisClient.Close()
		return nil, err
	}
	tokens := auth.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)

	kioskHandler := handlers.NewKioskHandler(controller, logger)
	operatorHandler := handlers.NewOperatorHandler(controller, pins, tokens, receiptLister, cfg.KioskID, logger)

	routes := httpserver.Routes{
		KioskState:      kioskHandler.State,
		KioskEvents:     kioskHandler.Event,
		KioskVisibility: kioskHandler.Visibility,
		KioskWS:         hub.Handler(),
		OperatorLogin:   operatorHandler.Login,
		OperatorReset:   operatorHandler.Reset,
		SlotMaintenance: operatorHandler.SlotMaintenance,
		Receipts:        operatorHandler.Receipts,
		Health:          handlers.NewHealthHandler("kiosk-service").Health,
		OperatorAuth:    middleware.OperatorAuth(tokens),
	}

	router := httpserver.NewRouter(routes)
	server := httpserver.NewServer(cfg.HTTPAddress(), router, logger)

	return &App{
		server:      server,
		controller:  controller,
		db:          sqlDB,
		redisClient: redisClient,
		logger:      logger,
	}, nil
}

// Run starts HTTP server.
func (a *App) Run(ctx context.Context) error {
	return a.server.Run(ctx)
}

// Close releases resources.
func (a *App) Close() {
	a.controller.Close()
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.logger.Warn("failed to close db", zap.Error(err))
		}
	}
	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.logger.Warn("failed to close redis", zap.Error(err))
		}
	}
}
