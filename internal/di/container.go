package di

import (
	"github.com/andrewsnewton/couplespace-sub003/internal/handler"
	"github.com/andrewsnewton/couplespace-sub003/internal/repository"
	"github.com/andrewsnewton/couplespace-sub003/internal/service"
	"github.com/andrewsnewton/couplespace-sub003/internal/timeline"
	"github.com/andrewsnewton/couplespace-sub003/pkg/config"
	"github.com/andrewsnewton/couplespace-sub003/pkg/database"
	"github.com/andrewsnewton/couplespace-sub003/pkg/redis"
)

// Container holds all dependencies for the API service
type Container struct {
	// Infrastructure
	DB    *database.PostgresDB
	Redis *redis.Client

	// Repositories
	UserRepo     repository.UserRepository
	SessionRepo  repository.SessionRepository
	CoupleRepo   repository.CoupleRepository
	EventRepo    repository.EventRepository
	MessageRepo  repository.MessageRepository
	WellnessRepo repository.WellnessRepository
	FoodRepo     repository.FoodRepository
	FoodCache    repository.FoodCache

	// Services
	AuthService     service.AuthService
	CoupleService   service.CoupleService
	EventService    service.EventService
	ChatService     service.ChatService
	WellnessService service.WellnessService

	// Handlers
	HealthHandler   *handler.HealthHandler
	AuthHandler     *handler.AuthHandler
	CoupleHandler   *handler.CoupleHandler
	EventHandler    *handler.EventHandler
	ChatHandler     *handler.ChatHandler
	WellnessHandler *handler.WellnessHandler
}

// ContainerConfig contains configuration for building the container
type ContainerConfig struct {
	Config *config.Config
	DB     *database.PostgresDB
	Redis  *redis.Client
}

// NewContainer creates a new dependency injection container
func NewContainer(cfg *ContainerConfig) *Container {
	c := &Container{
		DB:    cfg.DB,
		Redis: cfg.Redis,
	}
	appCfg := cfg.Config

	// Repositories
	c.UserRepo = repository.NewPostgresUserRepository(c.DB.Pool())
	c.SessionRepo = repository.NewPostgresSessionRepository(c.DB.Pool())
	c.CoupleRepo = repository.NewPostgresCoupleRepository(c.DB.Pool())
	c.EventRepo = repository.NewPostgresEventRepository(c.DB.Pool())
	c.MessageRepo = repository.NewPostgresMessageRepository(c.DB.Pool())
	c.WellnessRepo = repository.NewPostgresWellnessRepository(c.DB.Pool())
	c.FoodRepo = repository.NewPostgresFoodRepository(c.DB.Pool())
	if c.Redis != nil {
		c.FoodCache = repository.NewRedisFoodCache(c.Redis, appCfg.Wellness.FoodCacheTTL)
	}

	// Services
	c.AuthService = service.NewAuthService(c.UserRepo, c.SessionRepo, &service.AuthServiceConfig{
		JWTSecret:          appCfg.JWT.Secret,
		AccessTokenExpiry:  appCfg.JWT.AccessTokenTTL,
		RefreshTokenExpiry: appCfg.JWT.RefreshTokenTTL,
	})
	c.CoupleService = service.NewCoupleService(c.CoupleRepo, c.UserRepo)
	c.EventService = service.NewEventService(c.EventRepo, c.CoupleRepo, c.UserRepo, timeline.LayoutConfig{
		PixelsPerMinute: appCfg.Timeline.PixelsPerMinute,
		AvailableWidth:  appCfg.Timeline.AvailableWidth,
		MinEventHeight:  appCfg.Timeline.MinEventHeight,
	})
	c.ChatService = service.NewChatService(c.MessageRepo, c.CoupleRepo)
	c.WellnessService = service.NewWellnessService(c.WellnessRepo, c.FoodRepo, c.FoodCache, c.CoupleRepo)

	// Handlers
	c.HealthHandler = handler.NewHealthHandler(c.DB, c.Redis)
	c.AuthHandler = handler.NewAuthHandler(c.AuthService)
	c.CoupleHandler = handler.NewCoupleHandler(c.CoupleService)
	c.EventHandler = handler.NewEventHandler(c.EventService)
	c.ChatHandler = handler.NewChatHandler(c.ChatService)
	c.WellnessHandler = handler.NewWellnessHandler(c.WellnessService)

	return c
}
