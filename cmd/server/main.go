package main

import (
	"context"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	authhttp "github.com/dmedvedev/secure-content/internal/auth/http"
	authservice "github.com/dmedvedev/secure-content/internal/auth/service"
	"github.com/dmedvedev/secure-content/internal/common/config"
	"github.com/dmedvedev/secure-content/internal/common/constants"
	"github.com/dmedvedev/secure-content/internal/common/crypto"
	"github.com/dmedvedev/secure-content/internal/common/db"
	commonhttp "github.com/dmedvedev/secure-content/internal/common/http"
	"github.com/dmedvedev/secure-content/internal/common/httpmetrics"
	"github.com/dmedvedev/secure-content/internal/common/jwtverify"
	"github.com/dmedvedev/secure-content/internal/common/logger"
	"github.com/dmedvedev/secure-content/internal/common/server"
	"github.com/dmedvedev/secure-content/internal/common/token"
	contenthttp "github.com/dmedvedev/secure-content/internal/content/http"
	contentrepo "github.com/dmedvedev/secure-content/internal/content/repository"
	"github.com/dmedvedev/secure-content/internal/content/sanitize"
	contentservice "github.com/dmedvedev/secure-content/internal/content/service"
	userhttp "github.com/dmedvedev/secure-content/internal/user/http"
	userrepo "github.com/dmedvedev/secure-content/internal/user/repository"
	userservice "github.com/dmedvedev/secure-content/internal/user/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	appLog, err := logger.New(cfg.LogDir, "secure-content", cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}

	ctx := context.Background()

	pool, err := db.NewPool(ctx, appLog, cfg.DatabaseURL)
	if err != nil {
		appLog.Fatalf("failed to init database pool: %v", err)
	}

	if err := db.Migrate(ctx, pool); err != nil {
		appLog.Fatalf("failed to run migrations: %v", err)
	}

	users := userrepo.NewPgRepository(pool)
	posts := contentrepo.NewPgRepository(pool)

	hasher := crypto.NewBcryptHasher(cfg.BcryptCost)
	codec := token.NewCodec(cfg.JWTSecret, cfg.AccessTokenTTL, cfg.TokenLeeway, crypto.NewUUIDGenerator())

	authSvc := authservice.NewAuthService(users, hasher, codec, appLog)
	userSvc := userservice.NewUserService(users, appLog)
	contentSvc := contentservice.NewContentService(posts, users, sanitize.New(), appLog)

	authHandler := authhttp.NewHandler(authSvc, appLog)
	userHandler := userhttp.NewHandler(userSvc, appLog)
	contentHandler := contenthttp.NewHandler(contentSvc, appLog)

	authLimiter := commonhttp.NewRateLimiter(
		constants.AuthRateLimitPerSecond,
		constants.AuthRateLimitBurst,
	)

	r := chi.NewRouter()
	r.Use(commonhttp.SecurityHeadersMiddleware)
	r.Use(commonhttp.TraceIDMiddleware)
	r.Use(commonhttp.RecoveryMiddleware(appLog))
	r.Use(commonhttp.MaxRequestSizeMiddleware(constants.DefaultMaxRequestSize))
	r.Use(httpmetrics.Middleware)
	r.Use(middleware.Timeout(cfg.RequestTimeout))
	r.Use(cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}).Handler)

	r.Get("/health", commonhttp.HealthHandler())
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/auth", func(r chi.Router) {
		r.Use(authLimiter.Middleware)
		authHandler.Routes(r)
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(jwtverify.Middleware(codec, appLog))
		r.Route("/data", userHandler.Routes)
		r.Route("/posts", contentHandler.Routes)
	})

	srv := server.New(cfg.HTTPPort, r)

	server.Run(srv, appLog, func(ctx context.Context) error {
		pool.Close()
		return nil
	})
}
