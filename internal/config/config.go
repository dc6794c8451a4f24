package config

import (
	"os"

	"file-converter-api/internal/domain"
)

// AppConfig implements the domain.Config interface
type AppConfig struct {
	ServerPort                string
	LogLevel                  string
	FrontendURL               string
	SupabaseURL               string
	SupabaseKey               string
	LemonSqueezyAPIKey        string
	LemonSqueezyStoreID       string
	LemonSqueezyWebhookSecret string
	VariantMonthly            string
	VariantYearly             string
}

// NewConfig creates a new configuration instance with default values
func NewConfig() domain.Config {
	return &AppConfig{
		// Cloud Run (and many PaaS) provide the listening port via PORT.
		// Keep SERVER_PORT for local/dev compatibility.
		ServerPort:                getEnvOrDefault("PORT", getEnvOrDefault("SERVER_PORT", "8080")),
		LogLevel:                  getEnvOrDefault("LOG_LEVEL", "info"),
		FrontendURL:               getEnvOrDefault("FRONTEND_URL", "http://localhost:3000"),
		SupabaseURL:               getEnvOrDefault("SUPABASE_URL", ""),
		SupabaseKey:               getEnvOrDefault("SUPABASE_SERVICE_ROLE_KEY", ""),
		LemonSqueezyAPIKey:        getEnvOrDefault("LEMONSQUEEZY_API_KEY", ""),
		LemonSqueezyStoreID:       getEnvOrDefault("LEMONSQUEEZY_STORE_ID", ""),
		LemonSqueezyWebhookSecret: getEnvOrDefault("LEMONSQUEEZY_WEBHOOK_SECRET", ""),
		VariantMonthly:            getEnvOrDefault("LEMONSQUEEZY_VARIANT_MONTHLY", ""),
		VariantYearly:             getEnvOrDefault("LEMONSQUEEZY_VARIANT_YEARLY", ""),
	}
}

// GetServerPort returns the server port
func (c *AppConfig) GetServerPort() string {
	return c.ServerPort
}

// GetLogLevel returns the logging level
func (c *AppConfig) GetLogLevel() string {
	return c.LogLevel
}

// GetFrontendURL returns the frontend origin used for CORS and checkout
// redirects
func (c *AppConfig) GetFrontendURL() string {
	return c.FrontendURL
}

// GetSupabaseURL returns the Supabase URL
func (c *AppConfig) GetSupabaseURL() string {
	return c.SupabaseURL
}

// GetSupabaseKey returns the Supabase service-role key
func (c *AppConfig) GetSupabaseKey() string {
	return c.SupabaseKey
}

// GetLemonSqueezyAPIKey returns the billing provider API key
func (c *AppConfig) GetLemonSqueezyAPIKey() string {
	return c.LemonSqueezyAPIKey
}

// GetLemonSqueezyStoreID returns the billing provider store id
func (c *AppConfig) GetLemonSqueezyStoreID() string {
	return c.LemonSqueezyStoreID
}

// GetLemonSqueezyWebhookSecret returns the webhook signing secret
func (c *AppConfig) GetLemonSqueezyWebhookSecret() string {
	return c.LemonSqueezyWebhookSecret
}

// GetLemonSqueezyVariantID returns the product variant for a billing
// interval, or "" when not configured.
func (c *AppConfig) GetLemonSqueezyVariantID(interval domain.BillingInterval) string {
	switch interval {
	case domain.BillingIntervalMonthly:
		return c.VariantMonthly
	case domain.BillingIntervalYearly:
		return c.VariantYearly
	default:
		return ""
	}
}

// Helper functions for environment variable handling
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
