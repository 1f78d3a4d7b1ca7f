// Package config reads the server configuration from the environment, with a
// .env file honored in development.
package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPPort        string
	MongoURI        string
	MongoDatabase   string
	RedisAddr       string
	KafkaBrokers    []string
	GatewayKeyID    string
	GatewaySecret   string
	GatewayBaseURL  string
	Currency        string
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
}

func Load() *Config {
	// Missing .env is fine in production; the environment is already set.
	_ = godotenv.Load()

	return &Config{
		HTTPPort:        getEnv("HTTP_PORT", "8080"),
		MongoURI:        getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDatabase:   getEnv("MONGO_DB", "storefront"),
		RedisAddr:       getEnv("REDIS_ADDR", "localhost:6379"),
		KafkaBrokers:    splitList(os.Getenv("KAFKA_BROKERS")),
		GatewayKeyID:    os.Getenv("RAZORPAY_KEY_ID"),
		GatewaySecret:   os.Getenv("RAZORPAY_KEY_SECRET"),
		GatewayBaseURL:  os.Getenv("RAZORPAY_BASE_URL"),
		Currency:        getEnv("CURRENCY", "INR"),
		RequestTimeout:  30 * time.Second,
		ShutdownTimeout: 10 * time.Second,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func splitList(v string) []string {
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
