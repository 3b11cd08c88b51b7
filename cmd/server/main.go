package main

import (
	"context"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"

	"github.com/mernshopper/shopper-backend/internal/config"
	"github.com/mernshopper/shopper-backend/internal/database"
	"github.com/mernshopper/shopper-backend/internal/handlers"
	"github.com/mernshopper/shopper-backend/internal/middleware"
	"github.com/mernshopper/shopper-backend/internal/routes"
	"github.com/mernshopper/shopper-backend/internal/services"
)

func main() {
	// Load env
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
	// Load configuration
	cfg := config.Load()

	// A missing signing secret is a fatal configuration error, not something
	// to discover on the first request.
	if !cfg.HasTokenSecrets() {
		log.Fatal("ACCESS_TOKEN_SECRET, REFRESH_TOKEN_SECRET and ACTIVATION_LINK_SECRET must all be set")
	}

	// Connect to PostgreSQL (credential store)
	log.Printf("Connecting to PostgreSQL...")
	if err := database.ConnectPostgres(cfg.PostgresURI); err != nil {
		log.Fatal("Failed to connect to PostgreSQL:", err)
	}
	defer database.DisconnectPostgres()

	// Connect to Redis (rate limiting)
	log.Printf("Connecting to Redis...")
	if err := database.ConnectRedis(cfg.RedisURI); err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}
	defer database.DisconnectRedis()

	// Connect to MongoDB (recovery request store)
	log.Printf("Connecting to MongoDB...")
	if err := database.Connect(cfg.MongoURI); err != nil {
		log.Fatal("Failed to connect to MongoDB:", err)
	}
	defer database.Disconnect()

	if err := services.EnsureRecoveryIndexes(context.Background()); err != nil {
		log.Printf("⚠️  WARNING: failed to ensure MongoDB recovery indexes: %v", err)
	}

	// Wire services and handlers
	tokens := services.NewTokenService(cfg)
	users := services.NewUserStore()
	recovery := services.NewRecoveryStore()
	mailer := services.NewMailer(cfg)

	authHandler := handlers.NewAuthHandler(users, tokens)
	mailHandler := handlers.NewMailHandler(users, recovery, tokens, mailer, cfg.APIURL, cfg.ClientURL)

	// Setup router
	r := chi.NewRouter()

	// Credentialed CORS so the jwt/acl cookies work cross-site from the storefront
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Use(middleware.RateLimit)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	routes.SetupRoutes(r, authHandler, mailHandler, tokens)

	log.Println("📋 Registered routes:")
	log.Println("  POST /auth")
	log.Println("  POST /register")
	log.Println("  GET  /auth/refresh")
	log.Println("  POST /auth/logout")
	log.Println("  POST /mails/restore")
	log.Println("  GET  /mails/activate/{link}")
	log.Println("  POST /mails/create")
	log.Println("  POST /mails")

	log.Printf("🚀 Shopper backend running on :%s", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
