package configs

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	AppPort string

	DBHost string
	DBPort string
	DBUser string
	DBPass string
	DBName string

	RedisHost string
	RedisPort string

	KafkaBrokers  string
	FeedbackTopic string
	KafkaGroupID  string

	// Ranking-pipeline knobs. The history and scan limits bound how much the
	// pipeline reads per request; page limits bound what it returns.
	InterestHistoryLimit int
	CandidateScanLimit   int
	ProfileCacheTTL      time.Duration
}

func LoadConfig() *Config {
	return &Config{
		AppPort: getEnv("APP_PORT", ":8084"),

		DBHost: getEnv("DB_HOST", "localhost"),
		DBPort: getEnv("DB_PORT", "5432"),
		DBUser: getEnv("DB_USER", "postgres"),
		DBPass: getEnv("DB_PASS", "postgres"),
		DBName: getEnv("DB_NAME", "social_db"),

		RedisHost: getEnv("REDIS_HOST", "localhost"),
		RedisPort: getEnv("REDIS_PORT", "6379"),

		KafkaBrokers:  getEnv("KAFKA_BROKER_URL", "localhost:9092"),
		FeedbackTopic: getEnv("FEEDBACK_TOPIC", "feedback.events"),
		KafkaGroupID:  getEnv("KAFKA_GROUP_ID", "foryou-service"),

		InterestHistoryLimit: getEnvInt("FORYOU_HISTORY_LIMIT", 50),
		CandidateScanLimit:   getEnvInt("FORYOU_SCAN_LIMIT", 500),
		ProfileCacheTTL:      getEnvDuration("FORYOU_PROFILE_TTL", time.Minute),
	}
}

func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable TimeZone=UTC",
		c.DBHost, c.DBPort, c.DBUser, c.DBPass, c.DBName,
	)
}

func (c *Config) RedisAddr() string {
	return fmt.Sprintf("%s:%s", c.RedisHost, c.RedisPort)
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil && d > 0 {
			return d
		}
	}
	return fallback
}
