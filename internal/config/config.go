package config

import (
	"fmt"
	"os"
)

// Config holds all application configuration.
type Config struct {
	HTTP     HTTPConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Kafka    KafkaConfig
	Auth     AuthConfig
	Upload   UploadConfig
}

type HTTPConfig struct {
	Address string // listen address, e.g. ":8080"
}

type DatabaseConfig struct {
	Host string
	Port string
	User string
	Pass string
	Name string
}

// DSN builds the MySQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?parseTime=true", d.User, d.Pass, d.Host, d.Port, d.Name)
}

type RedisConfig struct {
	Addr string
}

type KafkaConfig struct {
	Brokers string // comma-separated; empty disables event publishing
	Topic   string
}

type AuthConfig struct {
	JWTSecret string
}

type UploadConfig struct {
	Dir string // attachment storage directory
}

// Load reads configuration from environment variables with development
// defaults. JWT_SECRET has no default; it must be set.
func Load() (*Config, error) {
	cfg := &Config{
		HTTP: HTTPConfig{
			Address: getEnv("HTTP_ADDRESS", ":8080"),
		},
		Database: DatabaseConfig{
			Host: getEnv("DB_HOST", "127.0.0.1"),
			Port: getEnv("DB_PORT", "3306"),
			User: getEnv("DB_USER", "root"),
			Pass: getEnv("DB_PASS", ""),
			Name: getEnv("DB_NAME", "issue_tracker"),
		},
		Redis: RedisConfig{
			Addr: getEnv("REDIS_ADDR", "localhost:6379"),
		},
		Kafka: KafkaConfig{
			Brokers: getEnv("KAFKA_BROKERS", ""),
			Topic:   getEnv("KAFKA_TOPIC", "issue-topic"),
		},
		Auth: AuthConfig{
			JWTSecret: getEnv("JWT_SECRET", ""),
		},
		Upload: UploadConfig{
			Dir: getEnv("UPLOAD_DIR", "uploads"),
		},
	}

	if cfg.Auth.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET environment variable is not set")
	}

	return cfg, nil
}

// getEnv retrieves an environment variable with a default fallback.
func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}

// String masks secrets.
func (c *Config) String() string {
	return fmt.Sprintf("Config{HTTP: %s, DB: %s@%s:%s/%s, Redis: %s, Kafka: %s, Uploads: %s}",
		c.HTTP.Address, c.Database.User, c.Database.Host, c.Database.Port, c.Database.Name,
		c.Redis.Addr, c.Kafka.Brokers, c.Upload.Dir)
}
