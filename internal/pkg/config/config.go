package config

import (
	"errors"
	"log"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Config is the full application configuration.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	JWT      JWTConfig      `mapstructure:"jwt"`
	App      AppConfig      `mapstructure:"app"`
	Admin    AdminConfig    `mapstructure:"admin"`
	Stripe   StripeConfig   `mapstructure:"stripe"`
	PayPal   PayPalConfig   `mapstructure:"paypal"`
	Coinbase CoinbaseConfig `mapstructure:"coinbase"`
	Tax      TaxConfig      `mapstructure:"tax"`
	Currency CurrencyConfig `mapstructure:"currency"`
}

type ServerConfig struct {
	Port string `mapstructure:"port"`
	Mode string `mapstructure:"mode"`
}

type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	Port     string `mapstructure:"port"`
	SSLMode  string `mapstructure:"sslmode"`
	TimeZone string `mapstructure:"timezone"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type JWTConfig struct {
	Secret string `mapstructure:"secret"`
	Expire int64  `mapstructure:"expire"` // hours
}

type AppConfig struct {
	Env   string `mapstructure:"env"`
	Debug bool   `mapstructure:"debug"`
}

// AdminConfig gates the dashboard. Emails is the allowlist; a token whose
// email is not listed is rejected even when its signature is valid.
type AdminConfig struct {
	Emails   []string `mapstructure:"emails"`
	Password string   `mapstructure:"password"`
}

type StripeConfig struct {
	SecretKey     string `mapstructure:"secret_key"`
	WebhookSecret string `mapstructure:"webhook_secret"`
}

type PayPalConfig struct {
	ClientID string `mapstructure:"client_id"`
	Secret   string `mapstructure:"secret"`
	// Live marks real-money PayPal credentials. While false every PayPal
	// order is classified as a test order.
	Live bool `mapstructure:"live"`
}

type CoinbaseConfig struct {
	APIKey        string `mapstructure:"api_key"`
	WebhookSecret string `mapstructure:"webhook_secret"`
	APIBase       string `mapstructure:"api_base"`
}

type TaxConfig struct {
	LookupURL string `mapstructure:"lookup_url"`
	APIKey    string `mapstructure:"api_key"`
}

type CurrencyConfig struct {
	RateURL string `mapstructure:"rate_url"`
}

var GlobalConfig Config

// Validate rejects configurations that cannot serve requests safely.
func (c *Config) Validate() error {
	if c.JWT.Secret == "" || c.JWT.Secret == "change_me" {
		return errors.New("please set a secure JWT secret")
	}
	if len(c.JWT.Secret) < 32 {
		return errors.New("JWT secret should be at least 32 characters")
	}
	if c.Database.Host == "" || c.Database.User == "" || c.Database.DBName == "" {
		return errors.New("database configuration is incomplete")
	}
	if c.Redis.Addr == "" {
		return errors.New("redis address is required")
	}
	if len(c.Admin.Emails) == 0 {
		return errors.New("admin email allowlist is empty")
	}
	return nil
}

// IsAdminEmail reports whether email is on the allowlist (case-insensitive).
func (c *Config) IsAdminEmail(email string) bool {
	for _, e := range c.Admin.Emails {
		if strings.EqualFold(e, email) {
			return true
		}
	}
	return false
}

// LoadConfig reads configs/config.yaml (or config.<env>.yaml), applies env
// overrides and validates the result. Fatal on invalid configuration.
func LoadConfig() {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "dev"
	}

	configName := "config"
	if env != "dev" {
		configName = "config." + env
	}

	viper.SetConfigName(configName)
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")
	viper.AddConfigPath(".")

	viper.SetDefault("server.port", "8080")
	viper.SetDefault("server.mode", "debug")
	viper.SetDefault("jwt.expire", 24)
	viper.SetDefault("redis.addr", "localhost:6379")
	viper.SetDefault("redis.db", 0)
	viper.SetDefault("app.env", "dev")
	viper.SetDefault("app.debug", true)
	viper.SetDefault("coinbase.api_base", "https://api.commerce.coinbase.com")
	viper.SetDefault("currency.rate_url", "https://open.er-api.com/v6/latest")

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Warning: Config file not found, using defaults or env vars: %v", err)
	}

	viper.AutomaticEnv()

	if err := viper.Unmarshal(&GlobalConfig); err != nil {
		log.Fatalf("Unable to decode into struct: %v", err)
	}

	// Explicit env overrides for values viper may not map through nested keys.
	if host := os.Getenv("DB_HOST"); host != "" {
		GlobalConfig.Database.Host = host
	}
	if redisAddr := os.Getenv("REDIS_ADDR"); redisAddr != "" {
		GlobalConfig.Redis.Addr = redisAddr
	}
	if jwtSecret := os.Getenv("JWT_SECRET"); jwtSecret != "" {
		GlobalConfig.JWT.Secret = jwtSecret
	}
	if emails := os.Getenv("ADMIN_EMAILS"); emails != "" {
		GlobalConfig.Admin.Emails = strings.Split(emails, ",")
	}
	if key := os.Getenv("STRIPE_SECRET_KEY"); key != "" {
		GlobalConfig.Stripe.SecretKey = key
	}
	if secret := os.Getenv("STRIPE_WEBHOOK_SECRET"); secret != "" {
		GlobalConfig.Stripe.WebhookSecret = secret
	}
	if secret := os.Getenv("COINBASE_COMMERCE_WEBHOOK_SECRET"); secret != "" {
		GlobalConfig.Coinbase.WebhookSecret = secret
	}
	if key := os.Getenv("COINBASE_COMMERCE_API_KEY"); key != "" {
		GlobalConfig.Coinbase.APIKey = key
	}

	if err := GlobalConfig.Validate(); err != nil {
		log.Fatalf("Configuration validation failed: %v", err)
	}

	log.Printf("Configuration loaded and validated successfully. Environment: %s", GlobalConfig.App.Env)
}
