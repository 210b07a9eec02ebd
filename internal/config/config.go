package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Environment       string        `mapstructure:"ENV" validate:"required,oneof=development production test"`
	LogLevel          string        `mapstructure:"LOG_LEVEL"`
	HTTPAddr          string        `mapstructure:"HTTP_ADDR" validate:"required"`
	DBDSN             string        `mapstructure:"DB_DSN" validate:"required"`
	MigrationsEnabled bool          `mapstructure:"MIGRATIONS_ENABLED"`
	TelegramToken     string        `mapstructure:"TELEGRAM_TOKEN"`
	JWTSecret         string        `mapstructure:"JWT_SECRET" validate:"required,min=16"`
	LoginTokenTTL     time.Duration `mapstructure:"LOGIN_TOKEN_TTL" validate:"gt=0"`
	SessionTTL        time.Duration `mapstructure:"SESSION_TTL" validate:"gt=0"`
	PublicURL         string        `mapstructure:"PUBLIC_URL" validate:"required,url"`
	RedisAddr         string        `mapstructure:"REDIS_ADDR" validate:"required"`
	RedisPassword     string        `mapstructure:"REDIS_PASSWORD"`
	RedisDB           int           `mapstructure:"REDIS_DB" validate:"gte=0"`
	Timezone          string        `mapstructure:"TIMEZONE" validate:"required"`
	ReminderInterval  time.Duration `mapstructure:"REMINDER_INTERVAL" validate:"gt=0"`
	SecureCookies     bool          `mapstructure:"SECURE_COOKIES"`

	location *time.Location
}

// Load читает .env (если есть) и переменные окружения, проверяет обязательные поля
func Load() (*Config, error) {
	// Пытаемся загрузить .env файл (игнорируем ошибку, если файла нет)
	_ = godotenv.Load(".env")

	v := viper.New()
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	setDefaults(v)

	cfg := &Config{
		Environment:       v.GetString("ENV"),
		LogLevel:          v.GetString("LOG_LEVEL"),
		HTTPAddr:          v.GetString("HTTP_ADDR"),
		DBDSN:             v.GetString("DB_DSN"),
		MigrationsEnabled: v.GetBool("MIGRATIONS_ENABLED"),
		TelegramToken:     v.GetString("TELEGRAM_TOKEN"),
		JWTSecret:         v.GetString("JWT_SECRET"),
		LoginTokenTTL:     parseDuration(v.GetString("LOGIN_TOKEN_TTL"), 10*time.Minute),
		SessionTTL:        parseDuration(v.GetString("SESSION_TTL"), 30*24*time.Hour),
		PublicURL:         strings.TrimRight(v.GetString("PUBLIC_URL"), "/"),
		RedisAddr:         v.GetString("REDIS_ADDR"),
		RedisPassword:     v.GetString("REDIS_PASSWORD"),
		RedisDB:           v.GetInt("REDIS_DB"),
		Timezone:          v.GetString("TIMEZONE"),
		ReminderInterval:  parseDuration(v.GetString("REMINDER_INTERVAL"), time.Minute),
	}

	cfg.SecureCookies = cfg.Environment == EnvProduction
	if v.IsSet("SECURE_COOKIES") {
		cfg.SecureCookies = v.GetBool("SECURE_COOKIES")
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", cfg.Timezone, err)
	}
	cfg.location = loc

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("HTTP_ADDR", ":8080")
	v.SetDefault("MIGRATIONS_ENABLED", true)
	v.SetDefault("LOGIN_TOKEN_TTL", "10m")
	v.SetDefault("SESSION_TTL", "720h")
	v.SetDefault("PUBLIC_URL", "http://localhost:8080")
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("TIMEZONE", "Europe/Kyiv")
	v.SetDefault("REMINDER_INTERVAL", "1m")
}

func parseDuration(value string, fallback time.Duration) time.Duration {
	if value == "" {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

// IsProduction проверяет production окружение
func (c *Config) IsProduction() bool {
	return c.Environment == EnvProduction
}

// BotEnabled бот и напоминания работают только при заданном токене
func (c *Config) BotEnabled() bool {
	return c.TelegramToken != ""
}

// Location часовой пояс, в котором считается "сегодня"
func (c *Config) Location() *time.Location {
	if c.location == nil {
		return time.UTC
	}
	return c.location
}

// ValidationErrors возвращает имена полей, не прошедших проверку
func ValidationErrors(err error) []string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fe.Field())
	}
	return fields
}
