package handler

import (
	"net/http"

	"file-converter-api/internal/config"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

// NewRouter creates a new HTTP router with all routes configured
func NewRouter(container *config.Container) http.Handler {
	router := mux.NewRouter()

	// API prefix
	api := router.PathPrefix("/api").Subrouter()

	// Health check endpoint (no auth required)
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok","service":"file-converter-api"}`))
	}).Methods("GET")

	// Initialize handlers
	userHandler := NewUserHandler(container)
	subscriptionHandler := NewSubscriptionHandler(container)
	checkoutHandler := NewCheckoutHandler(container)
	webhookHandler := NewWebhookHandler(container)
	uploadHandler := NewUploadHandler(container)

	// Webhook route: authenticated by signature, not by bearer token
	api.HandleFunc("/webhooks/payment", webhookHandler.HandlePaymentWebhook).Methods("POST")

	// Auth middleware for protected routes
	authMiddleware := AuthMiddleware(container)

	// Protected routes (require authentication)
	protected := api.PathPrefix("").Subrouter()
	protected.Use(authMiddleware)

	// User routes (protected)
	protected.HandleFunc("/user", userHandler.GetUser).Methods("GET")
	protected.HandleFunc("/conversions", userHandler.RecordConversion).Methods("POST")

	// Subscription routes (protected)
	protected.HandleFunc("/subscription", subscriptionHandler.GetSubscription).Methods("GET")
	protected.HandleFunc("/subscription/cancel", subscriptionHandler.CancelSubscription).Methods("POST")
	protected.HandleFunc("/checkout", checkoutHandler.CreateCheckout).Methods("POST")

	// Upload routes (protected)
	protected.HandleFunc("/upload", uploadHandler.Upload).Methods("POST")
	protected.HandleFunc("/upload-status", uploadHandler.RegisterUpload).Methods("POST")
	protected.HandleFunc("/upload-status/{uploadId}", uploadHandler.GetUploadStatus).Methods("GET")
	protected.HandleFunc("/upload-status/{uploadId}", uploadHandler.UpdateUploadStatus).Methods("PUT")

	// Configure CORS
	c := cors.New(cors.Options{
		AllowedOrigins: []string{
			container.Config.GetFrontendURL(),
			"http://localhost:3000",
			"http://localhost:5173",
		},
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodDelete,
			http.MethodOptions,
		},
		AllowedHeaders: []string{
			"Accept",
			"Authorization",
			"Content-Type",
			"X-Signature",
		},
		AllowCredentials: true,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	})

	return c.Handler(router)
}
