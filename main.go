package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"student-groups/auth"
	"student-groups/config"
	"student-groups/database"
	"student-groups/handlers"
	"student-groups/middleware"
	"student-groups/persistence"
	"student-groups/persistence/gormstore"
	"student-groups/persistence/memstore"
	"student-groups/persistence/sqlstore"
	"student-groups/tracing"

	"github.com/gorilla/mux"
	"go.opentelemetry.io/otel"
)

func main() {
	log.Println("🚀 Starting Student Groups Server...")

	// Загрузка конфигурации
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("❌ Error loading configuration:", err)
	}
	log.Printf("📋 Configuration loaded: Server Port %s, Storage %s", cfg.ServerPort, cfg.StorageBackend)

	if cfg.TracingEnabled {
		shutdown, err := tracing.Init("student-groups", os.Stdout)
		if err != nil {
			log.Fatal("❌ Error initializing tracing:", err)
		}
		defer shutdown(context.Background())
		log.Println("🔭 Tracing enabled (stdout exporter)")
	}

	// Инициализация хранилища
	store, closeStore, err := openStore(cfg)
	if err != nil {
		log.Fatal("❌ Error initializing storage:", err)
	}
	defer closeStore()

	if cfg.SeedFile != "" {
		fixture, err := database.LoadFixture(cfg.SeedFile)
		if err != nil {
			log.Fatal("❌ Error loading seed file:", err)
		}
		if err := database.Seed(context.Background(), store, fixture); err != nil {
			log.Fatal("❌ Error seeding data:", err)
		}
	}

	// Аутентификация включается флагом AUTH_ENABLED
	var (
		authHandler *handlers.AuthHandler
		protect     mux.MiddlewareFunc
	)
	if cfg.AuthEnabled {
		jwtService := auth.NewJWTService(cfg.JWTSecret, cfg.JWTExpiry)
		authHandler, err = handlers.NewAuthHandler(cfg.AdminUsername, cfg.AdminPassword, jwtService)
		if err != nil {
			log.Fatal("❌ Error initializing authentication:", err)
		}
		protect = middleware.NewAuthMiddleware(jwtService).AuthMiddleware
		log.Printf("🔐 Authentication enabled, JWT Expiry: %d hours", cfg.JWTExpiry)
	}

	// Создание роутера
	r := mux.NewRouter()
	r.Use(middleware.Logging)
	if cfg.TracingEnabled {
		r.Use(tracing.Middleware(otel.GetTracerProvider()))
	}

	handlers.NewRouter(store, authHandler, cfg.StorageBackend).Register(r, protect)

	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		// CORS снаружи роутера, чтобы preflight не зависел от маршрутов
		Handler: middleware.CORS(r),
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("✅ Server successfully started on %s", srv.Addr)
		log.Printf("🌐 Available at: http://localhost%s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		log.Printf("🛑 Shutting down server due to signal: %s", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			log.Printf("❌ Error during shutdown: %v", err)
		}
	case err := <-errCh:
		log.Printf("❌ Server error: %v", err)
	}
}

// openStore поднимает выбранную реализацию хранилища
func openStore(cfg *config.Config) (persistence.Store, func() error, error) {
	switch cfg.StorageBackend {
	case config.StorageGorm:
		db, err := database.Connect(cfg)
		if err != nil {
			return nil, nil, err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, nil, fmt.Errorf("error getting SQL DB: %w", err)
		}
		return gormstore.New(db), sqlDB.Close, nil

	case config.StorageSQL:
		db, err := database.InitDB(cfg)
		if err != nil {
			return nil, nil, err
		}
		return sqlstore.New(db), db.Close, nil

	case config.StorageMemory:
		log.Println("⚠️ Using in-memory storage, data is lost on restart")
		return memstore.New(), func() error { return nil }, nil
	}

	return nil, nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
}
