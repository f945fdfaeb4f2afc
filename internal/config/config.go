package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds every setting the API process needs.
type Config struct {
	Port string

	DB DatabaseConfig

	JWTSecret string
	JWTTTL    time.Duration

	LogLevel  string
	LogFormat string

	QuestionsPerPage int
	AnswersPerPage   int

	CORSOrigins []string
}

// DatabaseConfig selects the storage backend. Driver is one of
// "pgx", "postgres" (lib/pq) or "sqlite".
type DatabaseConfig struct {
	Driver     string
	Host       string
	Port       string
	User       string
	Password   string
	Name       string
	SSLMode    string
	SQLitePath string
}

// DSN builds the connection string for the configured driver.
func (c DatabaseConfig) DSN() string {
	if c.Driver == "sqlite" {
		return c.SQLitePath
	}
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
		c.Host, c.User, c.Password, c.Name, c.Port, c.SSLMode,
	)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "8080")

	v.SetDefault("DB_DRIVER", "pgx")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_NAME", "askme")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("DB_SQLITE_PATH", "data/askme.db?_foreign_keys=on")

	v.SetDefault("JWT_TTL", "72h")

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("QUESTIONS_PER_PAGE", 10)
	v.SetDefault("ANSWERS_PER_PAGE", 4)

	v.SetDefault("CORS_ORIGINS", "*")
}

// Load reads an optional .env file and then the process environment.
// Environment variables win over .env entries.
func Load(envFiles ...string) (*Config, error) {
	// a missing .env is fine, the environment alone is a valid source
	_ = godotenv.Load(envFiles...)

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	ttl, err := time.ParseDuration(v.GetString("JWT_TTL"))
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_TTL: %w", err)
	}

	cfg := &Config{
		Port: v.GetString("PORT"),
		DB: DatabaseConfig{
			Driver:     strings.ToLower(v.GetString("DB_DRIVER")),
			Host:       v.GetString("DB_HOST"),
			Port:       v.GetString("DB_PORT"),
			User:       v.GetString("DB_USER"),
			Password:   v.GetString("DB_PASSWORD"),
			Name:       v.GetString("DB_NAME"),
			SSLMode:    v.GetString("DB_SSLMODE"),
			SQLitePath: v.GetString("DB_SQLITE_PATH"),
		},
		JWTSecret:        v.GetString("JWT_SECRET"),
		JWTTTL:           ttl,
		LogLevel:         v.GetString("LOG_LEVEL"),
		LogFormat:        v.GetString("LOG_FORMAT"),
		QuestionsPerPage: v.GetInt("QUESTIONS_PER_PAGE"),
		AnswersPerPage:   v.GetInt("ANSWERS_PER_PAGE"),
		CORSOrigins:      splitList(v.GetString("CORS_ORIGINS")),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.DB.Driver {
	case "pgx", "postgres", "sqlite":
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DB.Driver)
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET must be set")
	}
	if c.QuestionsPerPage <= 0 || c.AnswersPerPage <= 0 {
		return fmt.Errorf("page sizes must be positive")
	}
	return nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
