// internal/config/config.go
package config

import (
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Environment string
	Server      ServerConfig
	Log         LogConfig
	I18n        I18nConfig
	RateLimit   RateLimitConfig
	CORS        CORSConfig
	Fees        FeeConfig
	Simulation  SimulationConfig
	SeedSamples bool
}

type ServerConfig struct {
	Port         string
	Host         string
	ReadTimeout  int
	WriteTimeout int
	IdleTimeout  int
}

type LogConfig struct {
	Level  string
	Format string
}

type I18nConfig struct {
	DefaultLocale string
}

type RateLimitConfig struct {
	RequestsPerSecond float64
	Burst             int
}

type CORSConfig struct {
	AllowedOrigins []string
}

// FeeConfig holds the calculator defaults used when a fee is left blank.
type FeeConfig struct {
	DefaultReferralRate  float64
	PlatformStorageFee   float64
	MerchantShippingCost float64
	Mode                 string
	SchedulePath         string
}

type SimulationConfig struct {
	DefaultDollarRate float64
}

func Load() (*Config, error) {
	// Load .env file if it exists
	godotenv.Load()

	config := &Config{
		Environment: getEnv("ENVIRONMENT", "development"),
		Server: ServerConfig{
			Port:         getEnv("SERVER_PORT", "8080"),
			Host:         getEnv("SERVER_HOST", "localhost"),
			ReadTimeout:  getEnvAsInt("SERVER_READ_TIMEOUT", 15),
			WriteTimeout: getEnvAsInt("SERVER_WRITE_TIMEOUT", 15),
			IdleTimeout:  getEnvAsInt("SERVER_IDLE_TIMEOUT", 60),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "text"),
		},
		I18n: I18nConfig{
			DefaultLocale: getEnv("DEFAULT_LOCALE", "pt_BR"),
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: getEnvAsFloat("RATE_LIMIT_RPS", 10),
			Burst:             getEnvAsInt("RATE_LIMIT_BURST", 20),
		},
		CORS: CORSConfig{
			AllowedOrigins: getEnvAsList("CORS_ALLOWED_ORIGINS", []string{"http://localhost:5173", "http://localhost:8080"}),
		},
		Fees: FeeConfig{
			DefaultReferralRate:  getEnvAsFloat("DEFAULT_REFERRAL_RATE", 0.15),
			PlatformStorageFee:   getEnvAsFloat("DEFAULT_PLATFORM_STORAGE_FEE", 5.00),
			MerchantShippingCost: getEnvAsFloat("DEFAULT_MERCHANT_SHIPPING_COST", 12.00),
			Mode:                 getEnv("FEE_MODE", "volumetric"),
			SchedulePath:         getEnv("FEE_SCHEDULE_PATH", ""),
		},
		Simulation: SimulationConfig{
			DefaultDollarRate: getEnvAsFloat("DEFAULT_DOLLAR_RATE", 5.05),
		},
		SeedSamples: getEnvAsBool("SEED_SAMPLE_DATA", false),
	}

	return config, config.Validate()
}

func (c *Config) Validate() error {
	for name, v := range map[string]float64{
		"DEFAULT_REFERRAL_RATE":          c.Fees.DefaultReferralRate,
		"DEFAULT_PLATFORM_STORAGE_FEE":   c.Fees.PlatformStorageFee,
		"DEFAULT_MERCHANT_SHIPPING_COST": c.Fees.MerchantShippingCost,
		"DEFAULT_DOLLAR_RATE":            c.Simulation.DefaultDollarRate,
		"RATE_LIMIT_RPS":                 c.RateLimit.RequestsPerSecond,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%s must be a finite number, got %v", name, v)
		}
	}

	if c.Fees.DefaultReferralRate < 0 || c.Fees.DefaultReferralRate > 1 {
		return fmt.Errorf("DEFAULT_REFERRAL_RATE must be between 0 and 1, got %v", c.Fees.DefaultReferralRate)
	}

	if c.Fees.PlatformStorageFee < 0 || c.Fees.MerchantShippingCost < 0 {
		return fmt.Errorf("default fees must not be negative")
	}

	if c.Fees.Mode != "volumetric" && c.Fees.Mode != "flat" {
		return fmt.Errorf("FEE_MODE must be volumetric or flat, got %q", c.Fees.Mode)
	}

	if c.Simulation.DefaultDollarRate <= 0 {
		return fmt.Errorf("DEFAULT_DOLLAR_RATE must be positive")
	}

	if c.RateLimit.RequestsPerSecond <= 0 || c.RateLimit.Burst < 1 {
		return fmt.Errorf("rate limit must allow at least one request")
	}

	if c.Environment == "production" && c.SeedSamples {
		return fmt.Errorf("sample data must not be seeded in production")
	}

	return nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(strings.ToLower(value)); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvAsList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
