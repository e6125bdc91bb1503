package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/fluentos/desktop-admin-api/src/cache"
	"github.com/fluentos/desktop-admin-api/src/config"
	"github.com/fluentos/desktop-admin-api/src/database"
	"github.com/fluentos/desktop-admin-api/src/handlers"
	"github.com/fluentos/desktop-admin-api/src/logging"
	"github.com/fluentos/desktop-admin-api/src/middleware"
	"github.com/fluentos/desktop-admin-api/src/repositories"
	"github.com/fluentos/desktop-admin-api/src/repositories/postgres"
	"github.com/fluentos/desktop-admin-api/src/repositories/sqlite"
	"github.com/fluentos/desktop-admin-api/src/services"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// app bundles the services behind the HTTP layer
type app struct {
	db         *database.Database
	accounts   *services.AccountService
	auth       *services.AuthService
	audit      *services.AuditLogService
	broadcasts *services.BroadcastService
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(1)
	}

	logging.Setup(logging.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})

	log.Info().
		Int("port", cfg.Port).
		Str("driver", cfg.DatabaseDriver).
		Str("log_level", cfg.LogLevel).
		Msg("starting server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	db, err := database.New(ctx, cfg.DatabaseDriver, cfg.DatabaseURL)
	cancel()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize database")
	}
	defer db.Close()

	log.Info().Msg("database connected")

	broadcastCache := newBroadcastCache(cfg)
	defer broadcastCache.Close()

	a := newApp(db, services.NewBcryptHasher(cfg.BcryptCost), broadcastCache)

	ctx, cancel = context.WithTimeout(context.Background(), 30*time.Second)
	err = a.accounts.EnsureDefaults(ctx, services.DefaultCredentials{
		AdminPassword: cfg.DefaultAdminPassword,
		UserPassword:  cfg.DefaultUserPassword,
	})
	cancel()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to seed default accounts")
	}

	if err := handlers.RegisterValidators(); err != nil {
		log.Fatal().Err(err).Msg("failed to register validators")
	}

	if !cfg.GinDebug {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(gin.Recovery())
	router.Use(cors.New(corsConfig(cfg.AllowedOrigins)))

	var limiter *middleware.IPRateLimiter
	if cfg.AdminRateLimitPerMinute > 0 {
		limiter = middleware.NewIPRateLimiter(cfg.AdminRateLimitPerMinute, 0)
		defer limiter.Stop()
		log.Info().Int("per_minute", cfg.AdminRateLimitPerMinute).Msg("admin rate limit enabled")
	}

	setupRoutes(router, a, limiter)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
	}

	go func() {
		log.Info().Int("port", cfg.Port).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)
	sig := <-sigChan

	log.Info().Str("signal", sig.String()).Msg("received shutdown signal")

	ctx, cancel = context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("server shutdown error")
	}

	log.Info().Msg("server shut down successfully")
}

// newApp builds the repositories for the active driver and the services on top
func newApp(db *database.Database, hasher services.PasswordHasher, c cache.BroadcastCache) *app {
	var (
		users      repositories.UserRepository
		logs       repositories.LoginLogRepository
		broadcasts repositories.BroadcastRepository
	)
	switch db.Driver() {
	case database.DriverSQLite:
		users = sqlite.NewUserRepository(db.GetSQL())
		logs = sqlite.NewLoginLogRepository(db.GetSQL())
		broadcasts = sqlite.NewBroadcastRepository(db.GetSQL())
	default:
		users = postgres.NewUserRepository(db.GetPool())
		logs = postgres.NewLoginLogRepository(db.GetPool())
		broadcasts = postgres.NewBroadcastRepository(db.GetPool())
	}

	audit := services.NewAuditLogService(logs)
	return &app{
		db:         db,
		accounts:   services.NewAccountService(users, hasher),
		auth:       services.NewAuthService(users, hasher, audit),
		audit:      audit,
		broadcasts: services.NewBroadcastService(broadcasts, c),
	}
}

// newBroadcastCache connects to Redis when configured. An unreachable Redis
// is logged and the server runs uncached.
func newBroadcastCache(cfg *config.Config) cache.BroadcastCache {
	if !cfg.CacheEnabled() {
		log.Info().Msg("broadcast cache disabled (REDIS_ADDR not set)")
		return cache.Noop{}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	c, err := cache.NewRedisBroadcastCache(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB,
		time.Duration(cfg.BroadcastCacheTTL)*time.Second)
	if err != nil {
		log.Warn().Err(err).Str("addr", cfg.RedisAddr).Msg("redis unavailable, broadcast cache disabled")
		return cache.Noop{}
	}

	log.Info().Str("addr", cfg.RedisAddr).Int("ttl_seconds", cfg.BroadcastCacheTTL).Msg("broadcast cache enabled")
	return c
}

func corsConfig(origins string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders: []string{"Content-Length", middleware.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}

	var allowed []string
	for _, o := range strings.Split(origins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			allowed = append(allowed, o)
		}
	}
	if len(allowed) == 0 || (len(allowed) == 1 && allowed[0] == "*") {
		cfg.AllowAllOrigins = true
		return cfg
	}

	cfg.AllowOrigins = allowed
	cfg.AllowCredentials = true
	return cfg
}

// setupRoutes mounts every endpoint. limiter may be nil.
func setupRoutes(router *gin.Engine, a *app, limiter *middleware.IPRateLimiter) {
	healthHandler := handlers.NewHealthHandler(a.db)
	authHandler := handlers.NewAuthHandler(a.auth)
	userHandler := handlers.NewUserHandler(a.accounts)
	logHandler := handlers.NewLogHandler(a.audit)
	broadcastHandler := handlers.NewBroadcastHandler(a.broadcasts)

	// Health check endpoints
	router.GET("/health", healthHandler.HandleHealth)
	router.GET("/ready", healthHandler.HandleReady)
	router.GET("/info", healthHandler.HandleInfo)

	api := router.Group("/api")
	api.GET("/", healthHandler.HandleRoot)

	// Login is never rate limited
	api.POST("/auth/login", authHandler.HandleLogin)

	admin := api.Group("")
	if limiter != nil {
		admin.Use(limiter.Middleware())
	}
	{
		admin.GET("/users", userHandler.HandleListUsers)
		admin.POST("/users", userHandler.HandleCreateUser)
		admin.PUT("/users/:id", userHandler.HandleUpdateUser)
		admin.DELETE("/users/:id", userHandler.HandleDeleteUser)

		admin.GET("/logs", logHandler.HandleListLogs)
		admin.DELETE("/logs", logHandler.HandleClearLogs)

		admin.POST("/broadcast", broadcastHandler.HandleCreateBroadcast)
		admin.GET("/broadcast/active", broadcastHandler.HandleGetActive)
		admin.DELETE("/broadcast/:id", broadcastHandler.HandleDismiss)
	}
}
