package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// InsecureDefaultSecret is the signing secret used when SECRET_KEY is unset
// outside production. Tokens signed with it can be forged by anyone who has
// read this source; it exists only so a local checkout starts.
const InsecureDefaultSecret = "supersecret"

type Config struct {
	Port                    string   `mapstructure:"PORT"`
	Env                     string   `mapstructure:"ENV"`
	LogLevel                string   `mapstructure:"LOG_LEVEL"`
	DatabaseURL             string   `mapstructure:"DATABASE_URL"`
	DBMaxConns              int32    `mapstructure:"DB_MAX_CONNS"`
	DBMinConns              int32    `mapstructure:"DB_MIN_CONNS"`
	SecretKey               string   `mapstructure:"SECRET_KEY"`
	TokenTTLMinutes         int      `mapstructure:"TOKEN_TTL_MINUTES"`
	CORSOrigins             []string `mapstructure:"CORS_ORIGINS"`
	FirstReportModelPath    string   `mapstructure:"FIRST_REPORT_MODEL_PATH"`
	FollowupReportModelPath string   `mapstructure:"FOLLOWUP_REPORT_MODEL_PATH"`
	OTLPEndpoint            string   `mapstructure:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	OTLPInsecure            bool     `mapstructure:"OTEL_EXPORTER_OTLP_INSECURE"`
}

var keys = []string{
	"PORT",
	"ENV",
	"LOG_LEVEL",
	"DATABASE_URL",
	"DB_MAX_CONNS",
	"DB_MIN_CONNS",
	"SECRET_KEY",
	"TOKEN_TTL_MINUTES",
	"CORS_ORIGINS",
	"FIRST_REPORT_MODEL_PATH",
	"FOLLOWUP_REPORT_MODEL_PATH",
	"OTEL_EXPORTER_OTLP_ENDPOINT",
	"OTEL_EXPORTER_OTLP_INSECURE",
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("PORT", "8000")
	v.SetDefault("ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("DB_MAX_CONNS", 20)
	v.SetDefault("DB_MIN_CONNS", 2)
	v.SetDefault("TOKEN_TTL_MINUTES", 60)
	v.SetDefault("CORS_ORIGINS", "*")
	v.SetDefault("FIRST_REPORT_MODEL_PATH", "./models/liver_disease_staging_model.json")
	v.SetDefault("FOLLOWUP_REPORT_MODEL_PATH", "./models/liver_disease_stage_model.json")

	// Bind env vars explicitly so Unmarshal picks them up
	for _, k := range keys {
		_ = v.BindEnv(k)
	}

	// Try reading .env file, but don't fail if missing
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	origins := v.GetString("CORS_ORIGINS")
	if origins != "" {
		cfg.CORSOrigins = nil
		for _, o := range strings.Split(origins, ",") {
			if o = strings.TrimSpace(o); o != "" {
				cfg.CORSOrigins = append(cfg.CORSOrigins, o)
			}
		}
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
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

// TokenTTL returns the configured bearer token lifetime.
func (c *Config) TokenTTL() time.Duration {
	return time.Duration(c.TokenTTLMinutes) * time.Minute
}

// SigningSecret returns the token signing secret. The second value is true
// when the insecure built-in default was substituted for a missing
// SECRET_KEY.
func (c *Config) SigningSecret() ([]byte, bool) {
	if c.SecretKey == "" {
		return []byte(InsecureDefaultSecret), true
	}
	return []byte(c.SecretKey), false
}

// Validate checks that the configuration is safe to run. Production refuses
// to start without an explicit signing secret.
func (c *Config) Validate() error {
	if c.IsProduction() && (c.SecretKey == "" || c.SecretKey == InsecureDefaultSecret) {
		return fmt.Errorf("SECRET_KEY must be set to a non-default value when ENV is production")
	}
	if c.TokenTTLMinutes <= 0 {
		return fmt.Errorf("TOKEN_TTL_MINUTES must be positive, got %d", c.TokenTTLMinutes)
	}
	if c.DBMinConns > c.DBMaxConns {
		return fmt.Errorf("DB_MIN_CONNS (%d) exceeds DB_MAX_CONNS (%d)", c.DBMinConns, c.DBMaxConns)
	}
	if c.FirstReportModelPath == "" || c.FollowupReportModelPath == "" {
		return fmt.Errorf("FIRST_REPORT_MODEL_PATH and FOLLOWUP_REPORT_MODEL_PATH are required")
	}
	return nil
}
