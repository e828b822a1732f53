package main

import (
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/danielmoisemontezima/zw-paystack-service/internal/adapters"
	"github.com/danielmoisemontezima/zw-paystack-service/internal/config"
	"github.com/danielmoisemontezima/zw-paystack-service/internal/controller"
	"github.com/danielmoisemontezima/zw-paystack-service/internal/reconcile"
	"github.com/danielmoisemontezima/zw-paystack-service/internal/repository"
	"github.com/danielmoisemontezima/zw-paystack-service/internal/service"
)

func main() {
	// Setup
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	//Load configurations
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config: ", err)
	}

	// Initialize database pool
	connString := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s&connect_timeout=180",
		cfg.DbUser,
		cfg.DbPassword,
		cfg.DbHost,
		cfg.DbPort,
		cfg.DbName,
		cfg.SSLMode,
	)

	pool, err := config.InitPostgresPool(connString)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer pool.Close()

	// Initialize the reconciliation store
	redisClient, err := config.InitRedisClient(cfg.RedisAddr)
	if err != nil {
		log.Fatalf("Failed to initialize redis: %v", err)
	}
	defer redisClient.Close()

	// Gateway client and webhook verifier share the one read-only secret
	gateway := adapters.NewPaystackAdapter(cfg.PaystackSecretKey, cfg.PaystackBaseURL)
	verifier := adapters.NewSignatureVerifier(cfg.PaystackSecretKey)

	// Initialize repositories and reconciliation
	credentials := repository.NewCredentialRepository(pool)
	reconciler := reconcile.NewReconciler(reconcile.NewRedisOrderStore(redisClient))

	// Setup services
	paymentService := service.NewPaymentService(gateway, verifier, credentials, reconciler, cfg.CallbackURL)
	paymentController := controller.NewPaymentController(paymentService)

	// Router
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Post("/payments/add-card", paymentController.AddCard)
	r.Get("/payments/cards/{userId}", paymentController.GetUserCards)
	r.Delete("/payments/cards/{id}", paymentController.DeleteCard)
	r.Post("/payments/initialize", paymentController.InitializePayment)
	r.Post("/payments/charge", paymentController.ChargeStoredCard)
	r.Post("/payments/charge/submit", paymentController.SubmitChallenge)
	r.Post("/webhooks/paystack", paymentController.HandleWebhook)

	r.Get("/payments/health", paymentController.GetHealthCheck)

	// Start server
	log.Printf("Server running on :%d", cfg.Port)
	http.ListenAndServe(":"+strconv.Itoa(cfg.Port), r)
}
