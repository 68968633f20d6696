package container

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"blog-backend/internal/config"
	authorHandler "blog-backend/internal/domains/author/handler"
	authorRepo "blog-backend/internal/domains/author/repository"
	authorService "blog-backend/internal/domains/author/service"
	postHandler "blog-backend/internal/domains/post/handler"
	postRepo "blog-backend/internal/domains/post/repository"
	postService "blog-backend/internal/domains/post/service"
	infraCache "blog-backend/internal/infrastructure/cache"
	"blog-backend/internal/infrastructure/database"
	"blog-backend/pkg/cache"
)

// ========================================
// CONTAINER STRUCT
// ========================================

// Container chứa tất cả dependencies của application
type Container struct {
	// Infrastructure - singleton trong suốt vòng đời app
	Config *config.Config
	DB     *database.PostgresDB
	Cache  cache.Cache

	// Repositories
	AuthorRepo authorRepo.RepositoryInterface
	PostRepo   postRepo.RepositoryInterface

	// Services
	AuthorService authorService.ServiceInterface
	PostService   postService.ServiceInterface

	// Handlers
	AuthorHandler *authorHandler.AuthorHandler
	PostHandler   *postHandler.PostHandler
}

// ========================================
// CONSTRUCTOR: BUILD CONTAINER
// ========================================

// NewContainer khởi tạo theo thứ tự: config -> database -> redis -> repo -> service -> handler
func NewContainer() (*Container, error) {
	log.Info().Msg("Initializing DI container")

	c := &Container{}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg
	log.Info().Str("environment", cfg.App.Environment).Msg("Config loaded")

	if err := c.initDatabase(); err != nil {
		return nil, err
	}

	c.initCache()
	c.initRepositories()
	c.initServices()
	c.initHandlers()

	log.Info().Msg("DI container ready")
	return c, nil
}

func (c *Container) initDatabase() error {
	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return fmt.Errorf("failed to load database config: %w", err)
	}

	db := database.NewPostgresDB(dbConfig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.Connect(ctx); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.HealthCheck(ctx); err != nil {
		db.Close()
		return fmt.Errorf("database health check failed: %w", err)
	}

	c.DB = db
	return nil
}

// Redis không bắt buộc: lỗi kết nối chỉ log, cache miss sẽ đọc thẳng DB
func (c *Container) initCache() {
	rc := infraCache.NewRedisCache(c.Config.Redis.Host, c.Config.Redis.Password, c.Config.Redis.DB)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rc.Connect(ctx); err != nil {
		log.Warn().Err(err).Msg("Redis connection failed (non-critical)")
	}

	c.Cache = rc
}

func (c *Container) initRepositories() {
	c.AuthorRepo = authorRepo.NewPostgresRepository(c.DB.Pool, c.Cache)
	c.PostRepo = postRepo.NewPostgresRepository(c.DB.Pool, c.Cache)
}

func (c *Container) initServices() {
	c.AuthorService = authorService.NewAuthorService(c.AuthorRepo)
	c.PostService = postService.NewPostService(c.PostRepo)
}

func (c *Container) initHandlers() {
	c.AuthorHandler = authorHandler.NewAuthorHandler(c.AuthorService)
	c.PostHandler = postHandler.NewPostHandler(c.PostService)
}

// ========================================
// CLEANUP
// ========================================

// Cleanup dọn dẹp resources khi shutdown
func (c *Container) Cleanup() {
	log.Info().Msg("Cleaning up container resources")

	if c.DB != nil {
		c.DB.Close()
	}

	if rc, ok := c.Cache.(*infraCache.RedisCache); ok {
		if err := rc.Close(); err != nil {
			log.Warn().Err(err).Msg("Failed to close Redis")
		}
	}
}
