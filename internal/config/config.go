package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config is loaded from the environment once at startup.
type Config struct {
	HTTPPort string

	MongoURI         string
	MongoDB          string
	MongoMaxPoolSize uint64

	RedisAddr     string
	RedisPassword string

	KafkaBrokers []string
	KafkaTopic   string

	ComplianceEndpoint string
	ComplianceAPIKey   string
	ComplianceTimeout  time.Duration

	UploadEndpoint string
	UploadKey      string
	UploadTimeout  time.Duration

	// AdminTokens holds "token:email" pairs, comma separated.
	AdminTokens string

	PaymentMethod        string
	PaymentAccountNumber string
}

func Load() *Config {
	return &Config{
		HTTPPort: getEnv("HTTP_PORT", "8080"),

		MongoURI:         getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:          getEnv("MONGO_DB", "storefront"),
		MongoMaxPoolSize: getUint("MONGO_MAX_POOL_SIZE", 50),

		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),

		KafkaBrokers: splitList(getEnv("KAFKA_BROKERS", "localhost:9092")),
		KafkaTopic:   getEnv("KAFKA_TOPIC", "order-events"),

		ComplianceEndpoint: getEnv("COMPLIANCE_ENDPOINT", ""),
		ComplianceAPIKey:   getEnv("COMPLIANCE_API_KEY", ""),
		ComplianceTimeout:  getDuration("COMPLIANCE_TIMEOUT_SECONDS", 30*time.Second),

		UploadEndpoint: getEnv("UPLOAD_ENDPOINT", ""),
		UploadKey:      getEnv("UPLOAD_PRIVATE_KEY", ""),
		UploadTimeout:  getDuration("UPLOAD_TIMEOUT_SECONDS", 30*time.Second),

		AdminTokens: getEnv("ADMIN_TOKENS", ""),

		PaymentMethod:        getEnv("PAYMENT_METHOD", "bank transfer"),
		PaymentAccountNumber: getEnv("PAYMENT_ACCOUNT_NUMBER", ""),
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getUint(key string, fallback uint64) uint64 {
	raw := getEnv(key, "")
	if raw == "" {
		return fallback
	}
	value, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return fallback
	}
	return value
}

func getDuration(key string, fallback time.Duration) time.Duration {
	raw := getEnv(key, "")
	if raw == "" {
		return fallback
	}
	seconds, err := strconv.Atoi(raw)
	if err != nil || seconds <= 0 {
		return fallback
	}
	return time.Duration(seconds) * time.Second
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
