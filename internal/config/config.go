package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"employee-management/internal/logging"

	"github.com/gin-contrib/cors"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var ErrMissingDatabaseURL = errors.New("missing required env: DATABASE_URL")

type AppConfig struct {
	Port            string
	DatabaseURL     string
	GinMode         string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration

	CORSAllowedOrigins []string

	// StrictDepartments limits department to IT, Marketing and UI/UX.
	StrictDepartments bool
	// EmptyListNotFound makes GET /all answer 404 when there are no records.
	EmptyListNotFound bool

	Log logging.Config
}

// Load reads configuration with precedence env > config file > defaults.
// A .env file in the working directory is loaded into the environment first.
// configPath may be empty.
func Load(configPath string) (AppConfig, error) {
	_ = godotenv.Load() // load .env if present

	v := viper.New()
	v.SetDefault("port", "8080")
	v.SetDefault("gin_mode", "release")
	v.SetDefault("read_timeout", "15s")
	v.SetDefault("write_timeout", "15s")
	v.SetDefault("shutdown_timeout", "10s")
	v.SetDefault("cors_allowed_origins", "http://localhost:5173,https://ems-beta-seven.vercel.app")
	v.SetDefault("ems_strict_departments", true)
	v.SetDefault("ems_empty_list_not_found", true)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "json")
	v.SetDefault("log_output", "stdout")
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return AppConfig{}, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := AppConfig{
		Port:               strings.TrimSpace(v.GetString("port")),
		DatabaseURL:        strings.TrimSpace(v.GetString("database_url")),
		GinMode:            v.GetString("gin_mode"),
		ReadTimeout:        v.GetDuration("read_timeout"),
		WriteTimeout:       v.GetDuration("write_timeout"),
		ShutdownTimeout:    v.GetDuration("shutdown_timeout"),
		CORSAllowedOrigins: stringList(v, "cors_allowed_origins"),
		StrictDepartments:  v.GetBool("ems_strict_departments"),
		EmptyListNotFound:  v.GetBool("ems_empty_list_not_found"),
		Log: logging.Config{
			Level:  v.GetString("log_level"),
			Format: v.GetString("log_format"),
			Output: v.GetString("log_output"),
		},
	}
	return cfg, nil
}

// Validate reports the first configuration problem. A missing DATABASE_URL
// is fatal at startup.
func (c AppConfig) Validate() error {
	if c.DatabaseURL == "" {
		return ErrMissingDatabaseURL
	}
	port, err := strconv.Atoi(c.Port)
	if err != nil || port <= 0 || port > 65535 {
		return fmt.Errorf("invalid port: %q", c.Port)
	}
	if c.ReadTimeout <= 0 || c.WriteTimeout <= 0 {
		return fmt.Errorf("read and write timeouts must be positive")
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("shutdown_timeout must be positive, got %v", c.ShutdownTimeout)
	}
	switch c.GinMode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("invalid gin_mode: %q", c.GinMode)
	}
	if len(c.CORSAllowedOrigins) > 0 {
		if err := (cors.Config{AllowOrigins: c.CORSAllowedOrigins}).Validate(); err != nil {
			return fmt.Errorf("invalid cors_allowed_origins: %w", err)
		}
	}
	return nil
}

// Addr is the listen address for the HTTP server.
func (c AppConfig) Addr() string {
	return ":" + c.Port
}

// stringList accepts either a comma separated string (env) or a list (config file).
func stringList(v *viper.Viper, key string) []string {
	var raw []string
	if s, ok := v.Get(key).(string); ok {
		raw = strings.Split(s, ",")
	} else {
		raw = v.GetStringSlice(key)
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
