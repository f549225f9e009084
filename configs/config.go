package config

import "os"

type R2 struct {
	AccountID  string
	AccessKey  string
	SecretKey  string
	BucketName string
	PublicURL  string
}

type StripePrices struct {
	Starter string
	Pro     string
	Agency  string
}

type Config struct {
	GoogleClientID      string
	GoogleClientSecret  string
	GoogleRedirectURI   string
	OpenAIApiKey        string
	AnthropicApiKey     string
	StripeWebhookSecret string
	StripePrices        StripePrices
	PostgresURI         string
	RedisURI            string
	FrontendURL         string
	R2                  R2
	SecretKey           string
	CookieName          string
}

func LoadConfig() *Config {
	return &Config{
		GoogleClientID:      getEnv("GOOGLE_CLIENT_ID", ""),
		GoogleClientSecret:  getEnv("GOOGLE_CLIENT_SECRET", ""),
		GoogleRedirectURI:   getEnv("GOOGLE_REDIRECT_URI", "http://localhost:3000/login/callback"),
		OpenAIApiKey:        getEnv("OPENAI_API_KEY", ""),
		AnthropicApiKey:     getEnv("ANTHROPIC_API_KEY", ""),
		StripeWebhookSecret: getEnv("STRIPE_WEBHOOK_SECRET", ""),
		StripePrices: StripePrices{
			Starter: getEnv("STRIPE_STARTER_PRICE_ID", ""),
			Pro:     getEnv("STRIPE_PRO_PRICE_ID", ""),
			Agency:  getEnv("STRIPE_AGENCY_PRICE_ID", ""),
		},
		PostgresURI: getEnv("POSTGRES_URI", ""),
		RedisURI:    getEnv("REDIS_URI", ""),
		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:5173"),
		R2: R2{
			AccountID:  getEnv("R2_ACCOUNT_ID", ""),
			AccessKey:  getEnv("R2_ACCESS_KEY", ""),
			SecretKey:  getEnv("R2_SECRET_KEY", ""),
			BucketName: getEnv("R2_BUCKET_NAME", ""),
			PublicURL:  getEnv("R2_PUBLIC_URL", ""),
		},
		SecretKey:  getEnv("SECRET_KEY", ""),
		CookieName: getEnv("COOKIE_NAME", "postplanner_session"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
