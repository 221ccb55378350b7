package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/redis/go-redis/v9"

	"github.com/ethemkurtt/hotel-gateway/internal/backend"
	"github.com/ethemkurtt/hotel-gateway/internal/guard"
	"github.com/ethemkurtt/hotel-gateway/internal/handlers"
	"github.com/ethemkurtt/hotel-gateway/internal/reservation"
	"github.com/ethemkurtt/hotel-gateway/internal/session"
	"github.com/ethemkurtt/hotel-gateway/internal/web/ratelimit"
	"github.com/ethemkurtt/hotel-gateway/pkg/auth"
	"github.com/ethemkurtt/hotel-gateway/pkg/config"
	"github.com/ethemkurtt/hotel-gateway/pkg/database"
	"github.com/ethemkurtt/hotel-gateway/pkg/events"
	"github.com/ethemkurtt/hotel-gateway/pkg/logger"
	mw "github.com/ethemkurtt/hotel-gateway/pkg/middleware"
)

func main() {
	cfg := config.Load()
	ctx := context.Background()

	// Session storage
	redisOpts, err := redis.ParseURL(cfg.Redis.URL)
	if err != nil {
		logger.Error("Invalid Redis URL", "error", err)
		os.Exit(1)
	}
	redisClient := redis.NewClient(redisOpts)
	defer redisClient.Close()
	sessions := session.NewRedisStore(redisClient, cfg.Redis.SessionTTL)

	// Rate limit bookkeeping
	pool, err := database.Connect(ctx, cfg.Database)
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	// Event bus
	eventBus, err := events.NewNATSEventBus(cfg.NATS.URL)
	if err != nil {
		logger.Error("Failed to connect to NATS", "error", err)
		os.Exit(1)
	}
	defer eventBus.Close()

	// Booking API client and per-session assignment flows
	client := backend.NewClient(cfg.Backend.BaseURL, cfg.Backend.Timeout)
	flows := reservation.NewManager(client)

	h := handlers.New(client, sessions, flows, eventBus, cfg)
	policy := guard.New(cfg.Auth.JWTSecret)
	limiter := ratelimit.New(pool, ratelimit.Config{Requests: 10, Window: time.Minute})

	r := chi.NewRouter()

	r.Use(mw.RequestID)
	r.Use(mw.Logging)
	r.Use(mw.Recover)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:3000"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(mw.Health)

	// The guard covers home and the two role areas. Auth endpoints stay
	// outside it so a stale cookie can always be replaced or cleared.
	r.Use(policy.Middleware(cfg.Auth.CookieName))

	// Auth endpoints, throttled against credential stuffing
	r.Group(func(r chi.Router) {
		r.Use(limiter.Middleware())
		r.Post("/auth/login", h.Login)
		r.Post("/auth/register", h.Register)
	})
	r.Post("/auth/logout", h.Logout)

	// Public catalogue
	r.Get("/categories", h.ListCategories)

	// Admin area
	r.Route("/dashboard", func(r chi.Router) {
		r.Use(policy.RequireRole(auth.RoleAdmin))

		r.Route("/rooms", func(r chi.Router) {
			r.Get("/", h.ListRooms)
			r.Post("/", h.CreateRoom)
			r.Get("/{id}", h.GetRoom)
			r.Put("/{id}", h.UpdateRoom)
			r.Delete("/{id}", h.DeleteRoom)
			r.Patch("/{id}/status", h.SetRoomStatus)
		})

		r.Route("/categories", func(r chi.Router) {
			r.Get("/", h.ListCategories)
			r.Post("/", h.CreateCategory)
			r.Get("/{id}", h.GetCategory)
			r.Put("/{id}", h.UpdateCategory)
			r.Delete("/{id}", h.DeleteCategory)
		})

		r.Route("/reservations", func(r chi.Router) {
			r.Get("/", h.ListReservations)
			r.Delete("/{id}", h.AdminDeleteReservation)
		})

		r.Route("/analytics", func(r chi.Router) {
			r.Get("/monthly", h.MonthlyAnalytics)
			r.Get("/categories", h.CategoryAnalytics)
		})
	})

	// Customer area
	r.Route("/otel", func(r chi.Router) {
		r.Use(policy.RequireRole(auth.RoleCustomer))

		r.Get("/categories", h.ListCategories)
		r.Post("/reservations/search", h.SearchRooms)
		r.Post("/reservations/confirm", h.ConfirmReservation)
		r.Get("/reservations", h.MyReservations)
		r.Delete("/reservations/{id}", h.CancelReservation)
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		logger.Info("Shutting down gateway...")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			logger.Error("Gateway shutdown error", "error", err)
		}
	}()

	logger.Info("Starting gateway", "port", cfg.Server.Port, "backend", cfg.Backend.BaseURL)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Gateway server error", "error", err)
		os.Exit(1)
	}
}
