package container

import (
	"context"
	"fmt"
	"time"

	"bookocean-backend/internal/config"
	"bookocean-backend/internal/domains/access"
	accessHandler "bookocean-backend/internal/domains/access/handler"
	"bookocean-backend/internal/infrastructure/database"
	"bookocean-backend/internal/infrastructure/mongodb"
	"bookocean-backend/pkg/cache"
	"bookocean-backend/pkg/jwt"
	"bookocean-backend/pkg/logger"

	infraCache "bookocean-backend/internal/infrastructure/cache"

	catalogHandler "bookocean-backend/internal/domains/catalog/handler"
	catalogRepo "bookocean-backend/internal/domains/catalog/repository"
	catalogService "bookocean-backend/internal/domains/catalog/service"

	loanHandler "bookocean-backend/internal/domains/loan/handler"
	loanRepo "bookocean-backend/internal/domains/loan/repository"
	loanService "bookocean-backend/internal/domains/loan/service"
)

// ========================================
// CONTAINER STRUCT
// ========================================

// Container holds the whole dependency graph.
// Exactly one of Mongo / DB is set, depending on Config.Store.Driver
// (neither for the memory driver).
type Container struct {
	// INFRASTRUCTURE
	Config     *config.Config
	Mongo      *mongodb.MongoDB
	DB         *database.PostgresDB
	Cache      cache.Cache
	JWTManager *jwt.Manager
	Gate       *access.Gate

	redis *infraCache.RedisCache

	// REPOSITORIES
	BookRepo catalogRepo.RepositoryInterface
	LoanRepo loanRepo.RepositoryInterface

	// SERVICES
	BookService catalogService.ServiceInterface
	LoanService loanService.ServiceInterface

	// HANDLERS
	BookHandler    *catalogHandler.Handler
	LoanHandler    *loanHandler.Handler
	SessionHandler *accessHandler.SessionHandler
}

// ========================================
// CONSTRUCTOR
// ========================================

// NewContainer loads configuration from the environment and builds everything
func NewContainer() (*Container, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return Build(cfg)
}

// Build initializes in dependency order:
// config → infrastructure → repositories → services → handlers
func Build(cfg *config.Config) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	logger.Info("Initializing DI container", map[string]interface{}{
		"environment":  cfg.App.Environment,
		"store_driver": cfg.Store.Driver,
	})

	c := &Container{Config: cfg}

	// STEP 1: store
	if err := c.initStore(); err != nil {
		c.Cleanup()
		return nil, err
	}

	// STEP 2: cache (optional)
	c.initCache()

	// STEP 3: tokens
	c.JWTManager = jwt.NewManager(cfg.JWT.Secret, cfg.JWT.SessionTTL)
	c.Gate = access.NewGate(c.JWTManager)

	// STEP 4-6
	c.initRepositories()
	c.initServices()
	c.initHandlers()

	logger.Info("DI container initialized", nil)
	return c, nil
}

// ========================================
// PRIVATE INITIALIZATION METHODS
// ========================================

func (c *Container) initStore() error {
	switch c.Config.Store.Driver {
	case config.StoreMongo:
		mcfg := c.Config.MongoClientConfig()
		ctx, cancel := context.WithTimeout(context.Background(), mcfg.ConnectTimeout+5*time.Second)
		defer cancel()

		m := mongodb.NewMongoDB(mcfg)
		if err := m.Connect(ctx); err != nil {
			return fmt.Errorf("failed to connect to MongoDB: %w", err)
		}
		c.Mongo = m

	case config.StorePostgres:
		dbConfig, err := c.Config.LoadDatabaseConfig()
		if err != nil {
			return fmt.Errorf("failed to load database config: %w", err)
		}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		db := database.NewPostgresDB(dbConfig)
		if err := db.Connect(ctx); err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		c.DB = db

		if err := db.EnsureSchema(ctx); err != nil {
			return fmt.Errorf("failed to ensure schema: %w", err)
		}
		logger.Info("PostgreSQL connected", map[string]interface{}{"database": dbConfig.DBName})

	case config.StoreMemory:
		logger.Warn("Using in-memory store, data is lost on restart", nil)

	default:
		return fmt.Errorf("unknown store driver %q", c.Config.Store.Driver)
	}
	return nil
}

// initCache never fails: Redis is an optimization, a dead Redis means no cache
func (c *Container) initCache() {
	c.Cache = cache.Noop{}

	rcfg := c.Config.Redis
	if !rcfg.Enabled {
		return
	}

	rc := infraCache.NewRedisCache(rcfg.Host, rcfg.Password, rcfg.DB, rcfg.Prefix)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rc.Connect(ctx); err != nil {
		logger.Warn("Redis connection failed (non-critical), cache disabled", map[string]interface{}{
			"host":  rcfg.Host,
			"error": err.Error(),
		})
		_ = rc.Close()
		return
	}

	c.redis = rc
	c.Cache = rc
	logger.Info("Redis connected", map[string]interface{}{"host": rcfg.Host})
}

func (c *Container) initRepositories() {
	switch {
	case c.Mongo != nil:
		c.BookRepo = catalogRepo.NewMongoRepository(c.Mongo.Collection(c.Config.Mongo.BooksCollection))
		c.LoanRepo = loanRepo.NewMongoRepository(c.Mongo.Collection(c.Config.Mongo.LoansCollection))
	case c.DB != nil:
		c.BookRepo = catalogRepo.NewPostgresRepository(c.DB.Pool)
		c.LoanRepo = loanRepo.NewPostgresRepository(c.DB.Pool)
	default:
		c.BookRepo = catalogRepo.NewMemoryRepository()
		c.LoanRepo = loanRepo.NewMemoryRepository()
	}
}

func (c *Container) initServices() {
	c.BookService = catalogService.NewService(c.BookRepo, c.Cache, c.Config.Redis.TTL)

	// PostgreSQL can do borrow/return in one transaction; other stores compensate
	var lender loanService.Lender
	if c.DB != nil {
		lender = loanRepo.NewPostgresLender(c.DB.Pool)
	} else {
		lender = loanService.NewSagaLender(c.BookRepo, c.LoanRepo)
	}
	c.LoanService = loanService.NewService(c.LoanRepo, c.BookRepo, lender)
}

func (c *Container) initHandlers() {
	c.BookHandler = catalogHandler.NewHandler(c.BookService)
	c.LoanHandler = loanHandler.NewHandler(c.LoanService)
	c.SessionHandler = accessHandler.NewSessionHandler(c.Gate, accessHandler.CookieConfig{
		Name:   c.Config.JWT.CookieName,
		Secure: c.Config.JWT.CookieSecure,
	})
}

// ========================================
// HEALTH & CLEANUP
// ========================================

// Health pings the store and the cache. The store is fatal, the cache is not.
func (c *Container) Health(ctx context.Context) (map[string]string, bool) {
	status := map[string]string{"store": "ok", "cache": "disabled"}
	healthy := true

	if err := c.BookRepo.Ping(ctx); err != nil {
		status["store"] = err.Error()
		healthy = false
	}

	if c.redis != nil {
		status["cache"] = "ok"
		if err := c.redis.Ping(ctx); err != nil {
			status["cache"] = err.Error()
		}
	}
	return status, healthy
}

// Cleanup closes connections, safe to call on a partially built container
func (c *Container) Cleanup() {
	if c.Mongo != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := c.Mongo.Close(ctx); err != nil {
			logger.Error("Failed to disconnect MongoDB", err)
		}
	}

	if c.DB != nil {
		c.DB.Close()
	}

	if c.redis != nil {
		if err := c.redis.Close(); err != nil {
			logger.Error("Failed to close Redis", err)
		}
	}

	logger.Info("Container cleanup completed", nil)
}
