package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

const (
	defaultHTTPAddr      = ":3000"
	defaultMigrationsDir = "migrations"
	defaultKafkaTopic    = "transaction.completed"
)

type Config struct {
	HTTPAddr      string
	DatabaseDSN   string
	MigrationsDir string
	KafkaBrokers  []string
	KafkaTopic    string
}

// Load reads configuration from the environment, with an optional .env
// file for local runs. Kafka publishing stays disabled unless
// KAFKA_BROKERS is set.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		HTTPAddr:      envOrDefault("HTTP_ADDR", defaultHTTPAddr),
		DatabaseDSN:   strings.TrimSpace(os.Getenv("DATABASE_DSN")),
		MigrationsDir: envOrDefault("MIGRATIONS_DIR", defaultMigrationsDir),
		KafkaTopic:    envOrDefault("KAFKA_TOPIC", defaultKafkaTopic),
	}

	if cfg.DatabaseDSN == "" {
		cfg.DatabaseDSN = buildDSNFromParts()
	}

	if brokers := strings.TrimSpace(os.Getenv("KAFKA_BROKERS")); brokers != "" {
		for _, broker := range strings.Split(brokers, ",") {
			if b := strings.TrimSpace(broker); b != "" {
				cfg.KafkaBrokers = append(cfg.KafkaBrokers, b)
			}
		}
	}

	return cfg, nil
}

func buildDSNFromParts() string {
	host := envOrDefault("DB_HOST", "localhost")
	port := envOrDefault("DB_PORT", "5432")
	user := envOrDefault("DB_USER", "postgres")
	password := envOrDefault("DB_PASSWORD", "postgres")
	dbname := envOrDefault("DB_NAME", "ledger")
	sslmode := envOrDefault("DB_SSLMODE", "disable")

	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		host, port, user, password, dbname, sslmode)
}

func envOrDefault(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}
