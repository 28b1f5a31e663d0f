package config

import (
	"os"
	"strings"
	"time"
)

// Server captures process-level configuration. Everything comes from the
// environment so main stays lean; empty optional URLs disable the
// corresponding backend (in-memory ledger, no cache, no audit sink).
type Server struct {
	Addr        string
	PostgresURL string
	AdminToken  string

	Redis RedisConfig
	Kafka KafkaConfig
}

// RedisConfig holds cache settings. An empty URL disables the cache.
type RedisConfig struct {
	URL     string
	ReadTTL time.Duration
}

// KafkaConfig holds audit sink settings. Empty brokers disable the sink.
type KafkaConfig struct {
	Brokers []string
	Topic   string
}

// FromEnv builds a Server config from environment variables.
func FromEnv() Server {
	addr := os.Getenv("CYBERINS_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	readTTL := 5 * time.Minute
	if raw := os.Getenv("CYBERINS_CACHE_TTL"); raw != "" {
		if d, err := time.ParseDuration(raw); err == nil {
			readTTL = d
		}
	}

	var brokers []string
	if raw := os.Getenv("CYBERINS_KAFKA_BROKERS"); raw != "" {
		brokers = strings.Split(raw, ",")
	}
	topic := os.Getenv("CYBERINS_KAFKA_TOPIC")
	if topic == "" {
		topic = "cyberins.audit"
	}

	return Server{
		Addr:        addr,
		PostgresURL: os.Getenv("CYBERINS_POSTGRES_URL"),
		AdminToken:  os.Getenv("CYBERINS_ADMIN_TOKEN"),
		Redis: RedisConfig{
			URL:     os.Getenv("CYBERINS_REDIS_URL"),
			ReadTTL: readTTL,
		},
		Kafka: KafkaConfig{
			Brokers: brokers,
			Topic:   topic,
		},
	}
}
