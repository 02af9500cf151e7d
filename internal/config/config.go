package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Config holds every knob the process needs. It is loaded once in main and
// passed down by reference; nothing mutates it after startup.
type Config struct {
	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string
	AppPort    string
	AppEnv     string
	JWTSecret  string

	PhonePe PhonePeConfig
}

// PhonePeConfig carries the gateway credentials and endpoints. The defaults
// point at the PhonePe pre-production sandbox so a fresh checkout works
// without any env set up.
type PhonePeConfig struct {
	MerchantID      string
	AuthHostURL     string
	CheckoutHostURL string
	StatusHostURL   string
	SaltIndex       string
	SaltKey         string
	AppBEURL        string
	ClientID        string
	ClientSecret    string
}

func LoadConfig() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		DBHost:     os.Getenv("DB_HOST"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),
		DBPort:     os.Getenv("DB_PORT"),
		AppPort:    os.Getenv("APP_PORT"),
		AppEnv:     os.Getenv("APP_ENV"),
		JWTSecret:  os.Getenv("SECRET_KEY"),
		PhonePe: PhonePeConfig{
			MerchantID:      getenv("PHONEPE_MERCHANT_ID", "PGTESTPAYUAT86"),
			AuthHostURL:     getenv("PHONEPE_AUTH_HOST_URL", "https://api-preprod.phonepe.com/apis/pg-sandbox/v1/oauth/token"),
			CheckoutHostURL: getenv("PHONEPE_CHECKOUT_HOST_URL", "https://api-preprod.phonepe.com/apis/pg-sandbox/pg/v1/pay"),
			StatusHostURL:   getenv("PHONEPE_STATUS_HOST_URL", "https://api-preprod.phonepe.com/apis/pg-sandbox"),
			SaltIndex:       getenv("PHONEPE_SALT_INDEX", "1"),
			SaltKey:         getenv("PHONEPE_SALT_KEY", "96434309-7796-489d-8924-ab56988a6076"),
			AppBEURL:        getenv("PHONEPE_APP_BE_URL", "http://localhost:5173"),
			ClientID:        os.Getenv("PHONEPE_CLIENT_ID"),
			ClientSecret:    os.Getenv("PHONEPE_CLIENT_SECRET"),
		},
	}

	if cfg.DBHost == "" {
		log.Fatal("Environment variables not loaded properly")
	}

	return cfg
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
