package database

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnectionString_EscapesCredentials(t *testing.T) {
	cfg := &DBConfig{Host: "db", Port: 5432, Username: "blog", Password: "p@ss/word", DBName: "blog_dev", SSLMode: "disable"}

	dsn := cfg.ConnectionString()
	assert.Equal(t, "postgresql://blog:p%40ss%2Fword@db:5432/blog_dev?sslmode=disable", dsn)

	parsed, err := pgxpool.ParseConfig(dsn)
	require.NoError(t, err)
	assert.Equal(t, "p@ss/word", parsed.ConnConfig.Password)
	assert.Equal(t, "db", parsed.ConnConfig.Host)
}

func TestHealthCheck_Uninitialized(t *testing.T) {
	db := NewPostgresDB(&DBConfig{})
	assert.Error(t, db.HealthCheck(context.Background()))
	db.Close()
}
