package config

import (
	"fmt"
	"log"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Port               string   `mapstructure:"PORT"`
	Env                string   `mapstructure:"ENV"`
	DatabaseURL        string   `mapstructure:"DATABASE_URL"`
	DBMaxConns         int32    `mapstructure:"DB_MAX_CONNS"`
	DBMinConns         int32    `mapstructure:"DB_MIN_CONNS"`
	JWTSecret          string   `mapstructure:"JWT_SECRET"`
	JWTTTLHours        int      `mapstructure:"JWT_TTL_HOURS"`
	GeminiAPIKey       string   `mapstructure:"GEMINI_API_KEY"`
	GeminiModel        string   `mapstructure:"GEMINI_MODEL"`
	NewsAPIURL         string   `mapstructure:"NEWS_API_URL"`
	NewsAPIKey         string   `mapstructure:"NEWS_API_KEY"`
	NewsFetchHours     int      `mapstructure:"NEWS_FETCH_INTERVAL_HOURS"`
	SMTPHost           string   `mapstructure:"SMTP_HOST"`
	SMTPPort           int      `mapstructure:"SMTP_PORT"`
	SMTPUser           string   `mapstructure:"SMTP_USER"`
	SMTPPass           string   `mapstructure:"SMTP_PASS"`
	MailFrom           string   `mapstructure:"MAIL_FROM"`
	S3Bucket           string   `mapstructure:"S3_BUCKET"`
	S3Region           string   `mapstructure:"S3_REGION"`
	S3PublicBaseURL    string   `mapstructure:"S3_PUBLIC_BASE_URL"`
	CORSOrigins        []string `mapstructure:"CORS_ORIGINS"`
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("PORT", "8080")
	v.SetDefault("ENV", "development")
	v.SetDefault("DB_MAX_CONNS", 20)
	v.SetDefault("DB_MIN_CONNS", 5)
	v.SetDefault("JWT_TTL_HOURS", 72)
	v.SetDefault("GEMINI_MODEL", "gemini-2.0-flash")
	v.SetDefault("NEWS_API_URL", "https://gnews.io/api/v4/top-headlines")
	v.SetDefault("NEWS_FETCH_INTERVAL_HOURS", 12)
	v.SetDefault("SMTP_PORT", 587)
	v.SetDefault("CORS_ORIGINS", "http://localhost:3000")

	// Bind env vars explicitly so Unmarshal picks them up
	v.BindEnv("PORT")
	v.BindEnv("ENV")
	v.BindEnv("DATABASE_URL")
	v.BindEnv("DB_MAX_CONNS")
	v.BindEnv("DB_MIN_CONNS")
	v.BindEnv("JWT_SECRET")
	v.BindEnv("JWT_TTL_HOURS")
	v.BindEnv("GEMINI_API_KEY")
	v.BindEnv("GEMINI_MODEL")
	v.BindEnv("NEWS_API_URL")
	v.BindEnv("NEWS_API_KEY")
	v.BindEnv("NEWS_FETCH_INTERVAL_HOURS")
	v.BindEnv("SMTP_HOST")
	v.BindEnv("SMTP_PORT")
	v.BindEnv("SMTP_USER")
	v.BindEnv("SMTP_PASS")
	v.BindEnv("MAIL_FROM")
	v.BindEnv("S3_BUCKET")
	v.BindEnv("S3_REGION")
	v.BindEnv("S3_PUBLIC_BASE_URL")
	v.BindEnv("CORS_ORIGINS")

	// Try reading .env file, but don't fail if missing
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.CORSOrigins == nil {
		origins := v.GetString("CORS_ORIGINS")
		if origins != "" {
			cfg.CORSOrigins = strings.Split(origins, ",")
		}
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	if cfg.IsDev() && cfg.JWTSecret == "" {
		log.Println("WARNING: JWT_SECRET not set; using an insecure development secret.")
		log.Println("WARNING: Tokens will not survive restarts. Do NOT run this in production.")
		cfg.JWTSecret = "lifedoc-dev-secret"
	}

	return cfg, nil
}

func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// IsProduction returns true when the server is configured for production mode.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Validate checks that the configuration is safe to run. Outside development
// a real JWT secret must be configured, and production additionally requires
// SMTP delivery so OTP verification emails can actually be sent.
func (c *Config) Validate() error {
	if !c.IsDev() && (c.JWTSecret == "" || c.JWTSecret == "lifedoc-dev-secret") {
		return fmt.Errorf("JWT_SECRET must be set when ENV=%q; refusing to start with an insecure signing key", c.Env)
	}
	if c.IsProduction() && c.SMTPHost == "" {
		return fmt.Errorf("SMTP_HOST is required in production (OTP emails cannot be delivered without it)")
	}
	if c.JWTTTLHours <= 0 {
		return fmt.Errorf("JWT_TTL_HOURS must be positive, got %d", c.JWTTTLHours)
	}
	if c.NewsFetchHours <= 0 {
		return fmt.Errorf("NEWS_FETCH_INTERVAL_HOURS must be positive, got %d", c.NewsFetchHours)
	}
	return nil
}
