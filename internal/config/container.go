package config

import (
	"file-converter-api/internal/domain"
	"file-converter-api/internal/payment"
	"file-converter-api/internal/repository"
	"file-converter-api/internal/service"
	"file-converter-api/pkg/logger"
)

// Container holds all application dependencies
type Container struct {
	Config                 domain.Config
	Logger                 domain.Logger
	SupabaseClient         domain.SupabaseClient
	UserRepository         domain.UserRepository
	SubscriptionRepository domain.SubscriptionRepository
	QuotaService           domain.QuotaService
	SubscriptionReconciler domain.SubscriptionReconciler
	CheckoutProvider       domain.CheckoutProvider
	UploadTracker          domain.UploadTracker
}

// NewContainer creates a new dependency injection container
func NewContainer() *Container {
	cfg := NewConfig()
	appLogger := logger.NewLogger(cfg.GetLogLevel())

	// Initialize Supabase client
	supabaseClient := repository.NewSupabaseClient(cfg, appLogger)
	if err := supabaseClient.Initialize(); err != nil {
		appLogger.Warn("Supabase client not initialized", "reason", err.Error())
	}

	// Initialize repositories
	userRepo := repository.NewSupabaseUserRepository(supabaseClient, appLogger)
	subscriptionRepo := repository.NewSupabaseSubscriptionRepository(supabaseClient, appLogger)

	// Initialize services
	quotaService := service.NewQuotaService(userRepo, appLogger)
	reconciler := service.NewSubscriptionService(subscriptionRepo, userRepo, appLogger)
	checkout := payment.NewLemonSqueezyClient(
		cfg.GetLemonSqueezyAPIKey(),
		cfg.GetLemonSqueezyStoreID(),
		cfg.GetFrontendURL(),
	)
	tracker := service.NewUploadTracker(appLogger)

	return &Container{
		Config:                 cfg,
		Logger:                 appLogger,
		SupabaseClient:         supabaseClient,
		UserRepository:         userRepo,
		SubscriptionRepository: subscriptionRepo,
		QuotaService:           quotaService,
		SubscriptionReconciler: reconciler,
		CheckoutProvider:       checkout,
		UploadTracker:          tracker,
	}
}

// GetConfig returns the configuration instance
func (c *Container) GetConfig() domain.Config {
	return c.Config
}

// GetLogger returns the logger instance
func (c *Container) GetLogger() domain.Logger {
	return c.Logger
}

// GetSupabaseClient returns the Supabase client instance
func (c *Container) GetSupabaseClient() domain.SupabaseClient {
	return c.SupabaseClient
}
