package container

import (
	"context"
	"fmt"
	"log"
	"time"

	"blog-backend/internal/config"
	infraCache "blog-backend/internal/infrastructure/cache"
	"blog-backend/internal/infrastructure/database"
	"blog-backend/internal/infrastructure/identity"
	"blog-backend/pkg/cache"
	"blog-backend/pkg/jwt"

	"blog-backend/internal/domains/author"
	authorHandler "blog-backend/internal/domains/author/handler"
	authorRepo "blog-backend/internal/domains/author/repository"
	authorService "blog-backend/internal/domains/author/service"

	"blog-backend/internal/domains/blog"
	blogHandler "blog-backend/internal/domains/blog/handler"
	blogRepo "blog-backend/internal/domains/blog/repository"
	blogService "blog-backend/internal/domains/blog/service"
)

// ========================================
// CONTAINER STRUCT
// ========================================

// Container holds the whole dependency graph.
// Everything in here is a singleton living for the app lifetime.
type Container struct {
	// Infrastructure layer - shared across domains
	Config         *config.Config
	DB             *database.PostgresDB
	Cache          cache.Cache
	JWTManager     *jwt.Manager
	ProfileFetcher identity.ProfileFetcher

	// Repository layer
	AuthorRepo author.Repository
	BlogRepo   blog.Repository

	// Service layer
	AuthorService author.Service
	BlogService   blog.Service

	// Handler layer
	AuthorHandler *authorHandler.AuthorHandler
	BlogHandler   *blogHandler.BlogHandler
}

// NewContainer builds and initializes the dependency graph in order:
// config, infrastructure, repositories, services, handlers.
func NewContainer() (*Container, error) {
	log.Println("[CONTAINER] Initializing...")

	c := &Container{}

	// ========================================
	// STEP 1: LOAD CONFIGURATION
	// ========================================
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg
	log.Printf("[CONTAINER] Config loaded (environment: %s)", cfg.App.Environment)

	// ========================================
	// STEP 2: INITIALIZE DATABASE
	// ========================================
	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load database config: %w", err)
	}

	db := database.NewPostgresDB(dbConfig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.HealthCheck(ctx); err != nil {
		return nil, fmt.Errorf("database health check failed: %w", err)
	}
	c.DB = db
	log.Println("[CONTAINER] Database connected")

	// ========================================
	// STEP 3: RUN MIGRATIONS
	// ========================================
	if err := db.RunMigrations(ctx); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	log.Println("[CONTAINER] Migrations applied")

	// ========================================
	// STEP 4: INITIALIZE CACHE
	// ========================================
	redisCache := infraCache.NewRedisCache(
		cfg.Redis.Host,
		cfg.Redis.Password,
		cfg.Redis.DB,
	)
	if err := redisCache.Connect(context.Background()); err != nil {
		// Cache failures are non-critical: the repositories fall through
		// to Postgres on every miss or error.
		log.Printf("[CONTAINER] Redis connection failed (non-critical): %v", err)
	} else {
		log.Println("[CONTAINER] Redis connected")
	}
	c.Cache = redisCache

	// ========================================
	// STEP 5: TOKENS + EXTERNAL IDENTITY
	// ========================================
	c.JWTManager = jwt.NewManager(
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpiry,
		cfg.JWT.RefreshTokenExpiry,
	)
	c.ProfileFetcher = identity.NewGoogleFetcher(cfg.Google.UserInfoURL)

	// ========================================
	// STEP 6: REPOSITORIES -> SERVICES -> HANDLERS
	// ========================================
	c.initRepositories()
	c.initServices()
	c.initHandlers()

	log.Println("[CONTAINER] Initialized successfully")
	return c, nil
}

func (c *Container) initRepositories() {
	pool := c.DB.Pool

	c.AuthorRepo = authorRepo.NewPostgresRepository(pool, c.Cache)
	c.BlogRepo = blogRepo.NewPostgresRepository(pool, c.Cache)
}

func (c *Container) initServices() {
	c.AuthorService = authorService.NewAuthorService(c.AuthorRepo, c.JWTManager)
	c.BlogService = blogService.NewBlogService(c.BlogRepo)
}

func (c *Container) initHandlers() {
	c.AuthorHandler = authorHandler.NewAuthorHandler(c.AuthorService, c.ProfileFetcher)
	c.BlogHandler = blogHandler.NewBlogHandler(c.BlogService)
}

// Cleanup releases infrastructure resources on shutdown, in reverse order.
func (c *Container) Cleanup() {
	log.Println("[CONTAINER] Cleaning up...")

	if c.Cache != nil {
		if err := c.Cache.Close(); err != nil {
			log.Printf("[CONTAINER] Cache close error: %v", err)
		}
	}
	if c.DB != nil {
		c.DB.Close()
	}

	log.Println("[CONTAINER] Cleanup complete")
}
