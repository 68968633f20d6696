package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"blog-backend/internal/shared/middleware"
	"blog-backend/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
	)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheckHandler(c))

		if c.AuthorHandler != nil {
			c.AuthorHandler.RegisterRoutes(v1)
		}
		if c.PostHandler != nil {
			c.PostHandler.RegisterRoutes(v1)
		}
	}

	return router
}

// ========================================
// HEALTH CHECK
// ========================================

const healthTimeout = 2 * time.Second

// healthCheckHandler báo 503 khi database down; redis chỉ được báo cáo
func healthCheckHandler(appCtx *container.Container) gin.HandlerFunc {
	return func(c *gin.Context) {
		dbStatus := probe(c.Request.Context(), appCtx.DB != nil && appCtx.DB.Pool != nil, func(ctx context.Context) error {
			return appCtx.DB.HealthCheck(ctx)
		})
		redisStatus := probe(c.Request.Context(), appCtx.Cache != nil, func(ctx context.Context) error {
			return appCtx.Cache.Ping(ctx)
		})

		overall, code := "ok", http.StatusOK
		if dbStatus != "ok" {
			overall, code = "degraded", http.StatusServiceUnavailable
		}

		version := "unknown"
		if appCtx.Config != nil {
			version = appCtx.Config.App.Version
		}

		c.JSON(code, gin.H{
			"status":    overall,
			"version":   version,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"services": gin.H{
				"database": dbStatus,
				"redis":    redisStatus,
			},
		})
	}
}

func probe(parent context.Context, connected bool, check func(context.Context) error) string {
	if !connected {
		return "disconnected"
	}

	ctx, cancel := context.WithTimeout(parent, healthTimeout)
	defer cancel()

	if err := check(ctx); err != nil {
		return fmt.Sprintf("error: %v", err)
	}
	return "ok"
}
