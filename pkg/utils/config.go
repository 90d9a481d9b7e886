package utils

import (
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	JWT       JWTConfig
	Email     EmailConfig
	OTP       OTPConfig
	AI        AIConfig
	RateLimit RateLimitConfig
}

type AppConfig struct {
	Name        string
	Port        string
	Debug       bool
	LogPath     string
	CORSOrigins []string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	SSLMode  string
	MaxConns int32
}

type JWTConfig struct {
	Secret      string
	ExpiryHours int
}

type EmailConfig struct {
	ResendAPIKey string
	From         string
	FromName     string
}

type OTPConfig struct {
	ExpiryMinutes int
	SweepMinutes  int
}

// TTL returns the lifetime of an issued code.
func (c OTPConfig) TTL() time.Duration {
	return time.Duration(c.ExpiryMinutes) * time.Minute
}

// SweepInterval returns how often expired codes are purged.
func (c OTPConfig) SweepInterval() time.Duration {
	return time.Duration(c.SweepMinutes) * time.Minute
}

type AIConfig struct {
	GeminiAPIKey  string
	Model         string
	MaxCandidates int
}

type RateLimitConfig struct {
	OTPRequests      int
	OTPWindowMinutes int
}

func (c RateLimitConfig) Window() time.Duration {
	return time.Duration(c.OTPWindowMinutes) * time.Minute
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	// Set defaults
	viper.SetDefault("APP_NAME", "inscovia")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("CORS_ORIGINS", "*")
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_SSLMODE", "disable")
	viper.SetDefault("DB_MAX_CONNS", 10)
	viper.SetDefault("JWT_EXPIRY_HOURS", 24)
	viper.SetDefault("EMAIL_FROM_NAME", "Inscovia")
	viper.SetDefault("OTP_EXPIRY_MINUTES", 10)
	viper.SetDefault("OTP_SWEEP_MINUTES", 10)
	viper.SetDefault("LOG_PATH", "logs/")
	viper.SetDefault("GEMINI_MODEL", "gemini-2.0-flash")
	viper.SetDefault("CHAT_MAX_CANDIDATES", 8)
	viper.SetDefault("OTP_RATE_LIMIT", 5)
	viper.SetDefault("OTP_RATE_WINDOW_MINUTES", 15)

	// .env is optional in containers where everything comes from the environment
	if err := viper.ReadInConfig(); err != nil && !isMissingConfig(err) {
		return nil, err
	}

	viper.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:        viper.GetString("APP_NAME"),
			Port:        viper.GetString("PORT"),
			Debug:       viper.GetBool("DEBUG"),
			LogPath:     viper.GetString("LOG_PATH"),
			CORSOrigins: splitList(viper.GetString("CORS_ORIGINS")),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASS"),
			SSLMode:  viper.GetString("DB_SSLMODE"),
			MaxConns: viper.GetInt32("DB_MAX_CONNS"),
		},
		JWT: JWTConfig{
			Secret:      viper.GetString("JWT_SECRET"),
			ExpiryHours: viper.GetInt("JWT_EXPIRY_HOURS"),
		},
		Email: EmailConfig{
			ResendAPIKey: viper.GetString("RESEND_API_KEY"),
			From:         viper.GetString("EMAIL_FROM"),
			FromName:     viper.GetString("EMAIL_FROM_NAME"),
		},
		OTP: OTPConfig{
			ExpiryMinutes: viper.GetInt("OTP_EXPIRY_MINUTES"),
			SweepMinutes:  viper.GetInt("OTP_SWEEP_MINUTES"),
		},
		AI: AIConfig{
			GeminiAPIKey:  viper.GetString("GEMINI_API_KEY"),
			Model:         viper.GetString("GEMINI_MODEL"),
			MaxCandidates: viper.GetInt("CHAT_MAX_CANDIDATES"),
		},
		RateLimit: RateLimitConfig{
			OTPRequests:      viper.GetInt("OTP_RATE_LIMIT"),
			OTPWindowMinutes: viper.GetInt("OTP_RATE_WINDOW_MINUTES"),
		},
	}

	if config.JWT.Secret == "" {
		return nil, errors.New("JWT_SECRET is required")
	}

	return config, nil
}

func isMissingConfig(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	return errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist)
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
