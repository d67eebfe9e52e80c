package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort      string
	DatabaseDSN     string
	Env             string
	AllowedOrigins  string
	AccessSecret    string
	AccessTokenTTL  time.Duration
	ResetTokenTTL   time.Duration
	RateLimitMax    int
	RateLimitWindow time.Duration
	KafkaBroker     string
	KafkaTopic      string
	KafkaUsername   string
	KafkaPassword   string
}

func LoadConfig() Config {
	if os.Getenv("ENV") != "prod" {
		if err := godotenv.Overload(); err != nil {
			log.Println("Warning: .env not loaded:", err)
		}
	}

	return Config{
		ServerPort:      getEnv("SERVER_PORT", ":8080"),
		DatabaseDSN:     os.Getenv("DATABASE_DSN"),
		Env:             os.Getenv("ENV"),
		AllowedOrigins:  getEnv("ALLOWED_CORS_URLS", "*"),
		AccessSecret:    os.Getenv("ACCESS_SECRET"),
		AccessTokenTTL:  minutes("ACCESS_TOKEN_TTL_MIN", 15),
		ResetTokenTTL:   minutes("RESET_TOKEN_TTL_MIN", 30),
		RateLimitMax:    number("RATE_LIMIT_MAX", 100),
		RateLimitWindow: minutes("RATE_LIMIT_WINDOW_MIN", 60),
		KafkaBroker:     os.Getenv("KAFKA_BROKER"),
		KafkaTopic:      os.Getenv("KAFKA_TOPIC"),
		KafkaUsername:   os.Getenv("KAFKA_USERNAME"),
		KafkaPassword:   os.Getenv("KAFKA_PASSWORD"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func number(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("invalid %s=%q, using %d", key, v, fallback)
		return fallback
	}
	return n
}

func minutes(key string, fallback int) time.Duration {
	return time.Duration(number(key, fallback)) * time.Minute
}
