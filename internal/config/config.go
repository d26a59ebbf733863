// Package config provides centralized configuration management with
// environment variable support for secure credential handling.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	Database DatabaseConfig
	Server   ServerConfig
	Auth     AuthConfig
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Host            string
	Port            int
	TLSCertFile     string
	TLSKeyFile      string
	CORSAllowOrigin string
	RateLimitRPM    int // Requests per minute
}

// AuthConfig holds token and password hashing settings
type AuthConfig struct {
	JWTSecret     string
	TokenTTLHours int
	BcryptCost    int
}

// Load reads configuration from file and environment variables.
// Environment variables take precedence over config file values.
// Sensitive values (passwords, JWT secret) should ONLY be set via
// environment variables in production.
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	bindEnvVars()

	// Config file is optional if env vars are set
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{
		Database: DatabaseConfig{
			Host:     getStringWithEnvFallback("database.host", "DB_HOST", "localhost"),
			Port:     getIntWithEnvFallback("database.port", "DB_PORT", 5432),
			User:     getStringWithEnvFallback("database.user", "DB_USER", "postgres"),
			Password: getStringWithEnvFallback("database.password", "DB_PASSWORD", ""),
			DBName:   getStringWithEnvFallback("database.dbname", "DB_NAME", "inkpress"),
			SSLMode:  getStringWithEnvFallback("database.sslmode", "DB_SSLMODE", "disable"),
		},
		Server: ServerConfig{
			Host:            getStringWithEnvFallback("server.host", "SERVER_HOST", "0.0.0.0"),
			Port:            getIntWithEnvFallback("server.port", "SERVER_PORT", 8080),
			TLSCertFile:     getStringWithEnvFallback("server.tls_cert", "TLS_CERT_FILE", ""),
			TLSKeyFile:      getStringWithEnvFallback("server.tls_key", "TLS_KEY_FILE", ""),
			CORSAllowOrigin: getStringWithEnvFallback("server.cors_origin", "CORS_ALLOW_ORIGIN", "*"),
			RateLimitRPM:    getIntWithEnvFallback("server.rate_limit_rpm", "RATE_LIMIT_RPM", 100),
		},
		Auth: AuthConfig{
			JWTSecret:     getStringWithEnvFallback("auth.jwt_secret", "JWT_SECRET", ""),
			TokenTTLHours: getIntWithEnvFallback("auth.token_ttl_hours", "TOKEN_TTL_HOURS", 720),
			BcryptCost:    getIntWithEnvFallback("auth.bcrypt_cost", "BCRYPT_COST", 10),
		},
	}

	return cfg, nil
}

// DatabaseConnString returns a PostgreSQL connection string.
// This method intentionally does NOT log the password.
func (c *DatabaseConfig) DatabaseConnString() string {
	if c.Password == "" {
		return fmt.Sprintf(
			"host=%s port=%d user=%s dbname=%s sslmode=%s",
			c.Host, c.Port, c.User, c.DBName, c.SSLMode,
		)
	}
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

// DatabaseConnStringSafe returns a connection string with password redacted for logging
func (c *DatabaseConfig) DatabaseConnStringSafe() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.DBName, c.SSLMode,
	)
}

// IsTLSEnabled returns true if TLS certificate and key are configured
func (c *ServerConfig) IsTLSEnabled() bool {
	return c.TLSCertFile != "" && c.TLSKeyFile != ""
}

// bindEnvVars explicitly binds environment variables to viper keys
func bindEnvVars() {
	// Database
	viper.BindEnv("database.host", "DB_HOST")
	viper.BindEnv("database.port", "DB_PORT")
	viper.BindEnv("database.user", "DB_USER")
	viper.BindEnv("database.password", "DB_PASSWORD")
	viper.BindEnv("database.dbname", "DB_NAME")
	viper.BindEnv("database.sslmode", "DB_SSLMODE")

	// Server
	viper.BindEnv("server.host", "SERVER_HOST")
	viper.BindEnv("server.port", "SERVER_PORT")
	viper.BindEnv("server.tls_cert", "TLS_CERT_FILE")
	viper.BindEnv("server.tls_key", "TLS_KEY_FILE")
	viper.BindEnv("server.cors_origin", "CORS_ALLOW_ORIGIN")
	viper.BindEnv("server.rate_limit_rpm", "RATE_LIMIT_RPM")

	// Auth
	viper.BindEnv("auth.jwt_secret", "JWT_SECRET")
	viper.BindEnv("auth.token_ttl_hours", "TOKEN_TTL_HOURS")
	viper.BindEnv("auth.bcrypt_cost", "BCRYPT_COST")
}

// getStringWithEnvFallback gets a string value, preferring env var over config file
func getStringWithEnvFallback(viperKey, envKey, defaultVal string) string {
	if val := os.Getenv(envKey); val != "" {
		return val
	}
	if val := viper.GetString(viperKey); val != "" {
		return val
	}
	return defaultVal
}

// getIntWithEnvFallback gets an int value, preferring env var over config file
func getIntWithEnvFallback(viperKey, envKey string, defaultVal int) int {
	if val := os.Getenv(envKey); val != "" {
		var intVal int
		fmt.Sscanf(val, "%d", &intVal)
		if intVal != 0 {
			return intVal
		}
	}
	if val := viper.GetInt(viperKey); val != 0 {
		return val
	}
	return defaultVal
}
