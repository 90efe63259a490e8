package config

import (
	"fmt"
	"os"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

type AppConfig struct {
	API      *APIConfig      `mapstructure:"api"`
	Gin      *GinConfig      `mapstructure:"gin"`
	Postgres *PostgresConfig `mapstructure:"postgres"`
	Stripe   *StripeConfig   `mapstructure:"stripe"`
}

type APIConfig struct {
	Environment           string   `mapstructure:"environment"`
	BaseURL               string   `mapstructure:"base_url"`
	Port                  string   `mapstructure:"port"`
	JWTSigningKey         string   `mapstructure:"jwt_signing_key"`
	AccessTokenTTLMinutes int      `mapstructure:"access_token_ttl_minutes"`
	RefreshTokenTTLHours  int      `mapstructure:"refresh_token_ttl_hours"`
	AllowedCORSDomains    []string `mapstructure:"allowed_cors_domains"`
}

type GinConfig struct {
	Mode string `mapstructure:"mode"`
}

type PostgresConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"db_name"`
	SSLMode  string `mapstructure:"ssl_mode"`
}

type StripeConfig struct {
	SecretKey            string `mapstructure:"secret_key"`
	WebhookSecret        string `mapstructure:"webhook_secret"`
	RegistrationFeePaise int64  `mapstructure:"registration_fee_paise"`
	Currency             string `mapstructure:"currency"`
}

func Load(configPath string) (*AppConfig, error) {
	vp := viper.New()
	vp.SetConfigFile(configPath)

	if err := vp.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("vp.ReadInConfig -> %w", err)
	}

	vp.WatchConfig()
	vp.OnConfigChange(func(e fsnotify.Event) {
		zap.L().Info("config file changed", zap.String("file", e.Name))
	})

	var conf AppConfig
	if err := vp.Unmarshal(&conf); err != nil {
		return nil, fmt.Errorf("vp.Unmarshal -> %w", err)
	}

	// Secrets come from the environment, never from the config file.
	if key := os.Getenv("JWT_SIGNING_KEY"); key != "" {
		conf.API.JWTSigningKey = key
	}
	if conf.Stripe == nil {
		conf.Stripe = &StripeConfig{}
	}
	if key := os.Getenv("STRIPE_SECRET_KEY"); key != "" {
		conf.Stripe.SecretKey = key
	}
	if secret := os.Getenv("STRIPE_WEBHOOK_SECRET"); secret != "" {
		conf.Stripe.WebhookSecret = secret
	}

	return &conf, nil
}
