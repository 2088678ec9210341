package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string `env:"PORT,      default=8080"`
	Env       string `env:"ENV,       default=development"`
	JWTSecret string `env:"JWT_SECRET"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`

	Mongo    MongoConfig
	Redis    RedisConfig
	Paystack PaystackConfig
	PayPal   PayPalConfig
	Admin    AdminConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=autocare"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR, default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,   default=0"`
}

// PaystackConfig enables the Paystack provider when SecretKey is set.
type PaystackConfig struct {
	SecretKey   string `env:"PAYSTACK_SECRET_KEY"`
	CallbackURL string `env:"PAYSTACK_CALLBACK_URL"`
}

// PayPalConfig enables the PayPal provider when ClientID and Secret are set.
type PayPalConfig struct {
	BaseURL   string `env:"PAYPAL_BASE_URL"`
	ClientID  string `env:"PAYPAL_CLIENT_ID"`
	Secret    string `env:"PAYPAL_SECRET"`
	ReturnURL string `env:"PAYPAL_RETURN_URL"`
	CancelURL string `env:"PAYPAL_CANCEL_URL"`
}

// AdminConfig seeds the bootstrap admin account on startup when both fields
// are set.
type AdminConfig struct {
	Email    string `env:"ADMIN_EMAIL"`
	Password string `env:"ADMIN_PASSWORD"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
