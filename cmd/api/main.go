//	@title			Coverbox API
//	@version		1.0
//	@description	Counter, cover-image catalog, and user directory backend.
//
//	@host		localhost:8080
//	@BasePath	/
//
//	@securityDefinitions.apikey	AdminSecret
//	@in							header
//	@name						Admin-Secret
//	@description				Shared admin secret gating mutating endpoints.

package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/coverbox/service/internal/auth"
	"github.com/coverbox/service/internal/config"
	"github.com/coverbox/service/internal/counter"
	"github.com/coverbox/service/internal/cover"
	"github.com/coverbox/service/internal/db"
	appMiddleware "github.com/coverbox/service/internal/middleware"
	"github.com/coverbox/service/internal/pictures"
	"github.com/coverbox/service/internal/storage"
	"github.com/coverbox/service/internal/user"

	_ "github.com/coverbox/service/docs/swagger"
)

func main() {
	cfg := config.Load()

	pool, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("database connection failed: %v", err)
	}
	defer pool.Close()

	if err := db.Migrate(cfg.DatabaseURL); err != nil {
		log.Fatalf("database migration failed: %v", err)
	}

	store, err := storage.NewMinioStorage(
		cfg.StorageEndpoint,
		cfg.StorageAccessKey,
		cfg.StorageSecretKey,
		cfg.StorageBucket,
		cfg.StoragePublicBase,
		cfg.StorageUseSSL,
	)
	if err != nil {
		log.Fatalf("object storage init failed: %v", err)
	}

	gate := auth.NewSecretGate(cfg.AdminSecret)
	requireAdmin := appMiddleware.RequireAdmin(gate)

	// Wire dependencies: repository → service → handler
	coverRepo := cover.NewRepository(pool)
	coverSvc := cover.NewService(coverRepo, store, cfg.MaxImageSize)
	coverHandler := cover.NewHandler(coverSvc)

	counterRepo := counter.NewRepository(pool)
	counterSvc := counter.NewService(counterRepo)
	counterHandler := counter.NewHandler(counterSvc)

	userRepo := user.NewRepository(pool)
	userSvc := user.NewService(userRepo)
	userHandler := user.NewHandler(userSvc)

	picturesHandler := pictures.NewHandler(cfg.PicturesDir)

	// Router
	r := chi.NewRouter()
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(appMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Admin-Secret", "Content-Type", "X-Request-ID"},
		MaxAge:         300,
	}))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	// Swagger UI — available at http://localhost:8080/swagger/
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	r.Route("/api", func(r chi.Router) {
		// Counter
		r.Post("/count", counterHandler.Act)
		r.Get("/count", counterHandler.Get)

		// Covers
		r.Route("/cover", func(r chi.Router) {
			r.Get("/list", coverHandler.List)
			r.Group(func(r chi.Router) {
				r.Use(requireAdmin)
				r.Post("/upload", coverHandler.Upload)
				r.Delete("/{name}", coverHandler.Delete)
			})
		})

		// User directory (admin)
		r.Route("/users", func(r chi.Router) {
			r.Use(requireAdmin)
			r.Post("/", userHandler.Create)
			r.Get("/", userHandler.List)
			r.Get("/{id}", userHandler.Get)
			r.Put("/{id}", userHandler.Update)
			r.Delete("/{id}", userHandler.Delete)
		})

		// Public lookup by external id
		r.Get("/user/{userid}", userHandler.GetByUserID)
	})

	// Static pictures
	r.Route("/pictures", func(r chi.Router) {
		r.Get("/list", picturesHandler.List)
		r.Get("/*", picturesHandler.Download)
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine; wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Printf("server listening on :%s (env=%s)", cfg.Port, cfg.AppEnv)
		log.Printf("swagger UI at http://localhost:%s/swagger/", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	<-quit
	log.Println("shutting down gracefully...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("forced shutdown: %v", err)
	}

	log.Println("server stopped")
}
