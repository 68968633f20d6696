package config

import (
	"fmt"
	"strconv"
	"time"

	"blog-backend/internal/infrastructure/database"
)

// LoadDatabaseConfig đọc DB_* environment variables và trả về DBConfig
// Unlike getEnvInt, malformed values are an error here: a bad pool setting
// should stop the process instead of silently falling back
func LoadDatabaseConfig() (*database.DBConfig, error) {
	ints := map[string]int{
		"DB_PORT":            5432,
		"DB_MAX_CONNECTIONS": 25,
		"DB_MIN_CONNECTIONS": 5,
		"DB_MAX_RETRIES":     5,
	}
	for key, def := range ints {
		v, err := strconv.Atoi(getEnv(key, strconv.Itoa(def)))
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", key, err)
		}
		ints[key] = v
	}

	durations := map[string]string{
		"DB_MAX_CONN_LIFETIME":   "5m",
		"DB_MAX_CONN_IDLE_TIME":  "1m",
		"DB_HEALTH_CHECK_PERIOD": "1m",
		"DB_RETRY_DELAY":         "1s",
		"DB_CONNECT_TIMEOUT":     "10s",
	}
	parsed := make(map[string]time.Duration, len(durations))
	for key, def := range durations {
		d, err := time.ParseDuration(getEnv(key, def))
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", key, err)
		}
		parsed[key] = d
	}

	return &database.DBConfig{
		Host:              getEnv("DB_HOST", "localhost"),
		Port:              ints["DB_PORT"],
		Username:          getEnv("DB_USER", "blog"),
		Password:          getEnv("DB_PASSWORD", "secret"),
		DBName:            getEnv("DB_NAME", "blog_dev"),
		SSLMode:           getEnv("DB_SSLMODE", "disable"),
		MaxConns:          int32(ints["DB_MAX_CONNECTIONS"]),
		MinConns:          int32(ints["DB_MIN_CONNECTIONS"]),
		MaxConnLifetime:   parsed["DB_MAX_CONN_LIFETIME"],
		MaxConnIdleTime:   parsed["DB_MAX_CONN_IDLE_TIME"],
		HealthCheckPeriod: parsed["DB_HEALTH_CHECK_PERIOD"],
		MaxRetries:        ints["DB_MAX_RETRIES"],
		RetryDelay:        parsed["DB_RETRY_DELAY"],
		ConnectTimeout:    parsed["DB_CONNECT_TIMEOUT"],
	}, nil
}
