// Package di wires repositories, services and handlers together.
package di

import (
	"github.com/redis/go-redis/v9"

	"github.com/alisettar/Attend/internal/captcha"
	"github.com/alisettar/Attend/internal/config"
	"github.com/alisettar/Attend/internal/handler"
	"github.com/alisettar/Attend/internal/qrcode"
	"github.com/alisettar/Attend/internal/repository"
	"github.com/alisettar/Attend/internal/service"
	"github.com/alisettar/Attend/internal/tenant"
	"github.com/alisettar/Attend/pkg/database"
)

// Container holds all dependencies for the server
type Container struct {
	// Infrastructure
	Resolver *tenant.Resolver
	Stores   *repository.Stores
	Redis    *redis.Client

	// Repositories
	UserRepo       repository.UserRepository
	EventRepo      repository.EventRepository
	AttendanceRepo repository.AttendanceRepository

	// Services
	UserService       service.UserService
	EventService      service.EventService
	AttendanceService service.AttendanceService
	PublicService     service.PublicService
	AuthService       service.AuthService
	ReportService     service.ReportService

	// Handlers
	HealthHandler     *handler.HealthHandler
	AuthHandler       *handler.AuthHandler
	UserHandler       *handler.UserHandler
	EventHandler      *handler.EventHandler
	AttendanceHandler *handler.AttendanceHandler
	PublicHandler     *handler.PublicHandler
	ReportHandler     *handler.ReportHandler
}

// NewContainer creates a new dependency injection container
func NewContainer(cfg *config.Config, resolver *tenant.Resolver, redisClient *redis.Client) *Container {
	c := &Container{
		Resolver: resolver,
		Redis:    redisClient,
	}

	dbCfg := database.DefaultPostgresConfig()
	dbCfg.MaxConns = int32(cfg.Database.MaxConns)
	dbCfg.MinConns = int32(cfg.Database.MinConns)
	dbCfg.MaxConnLifetime = cfg.Database.ConnMaxLifetime
	dbCfg.MaxConnIdleTime = cfg.Database.ConnMaxIdleTime
	c.Stores = repository.NewStores(resolver, dbCfg)

	// Repositories
	c.UserRepo = repository.NewPostgresUserRepository(c.Stores)
	c.EventRepo = repository.NewPostgresEventRepository(c.Stores)
	c.AttendanceRepo = repository.NewPostgresAttendanceRepository(c.Stores)

	// Services
	qrGen := qrcode.NewGenerator()
	c.UserService = service.NewUserService(c.UserRepo, qrGen)
	c.EventService = service.NewEventService(c.EventRepo)
	c.AttendanceService = service.NewAttendanceService(c.AttendanceRepo, c.UserRepo, c.EventRepo)
	c.PublicService = service.NewPublicService(resolver, c.UserRepo, qrGen)
	c.AuthService = service.NewAuthService(resolver, cfg.JWT.Secret, cfg.JWT.AccessTokenTTL, cfg.JWT.Issuer)
	c.ReportService = service.NewReportService(c.UserRepo, c.EventRepo, c.AttendanceRepo)

	// Handlers
	verifier := captcha.NewVerifier(captchaSecret(cfg), cfg.Captcha.MinScore)
	c.HealthHandler = handler.NewHealthHandler(cfg.App.Version, c.Stores)
	c.AuthHandler = handler.NewAuthHandler(c.AuthService)
	c.UserHandler = handler.NewUserHandler(c.UserService)
	c.EventHandler = handler.NewEventHandler(c.EventService, c.AttendanceService)
	c.AttendanceHandler = handler.NewAttendanceHandler(c.AttendanceService)
	c.PublicHandler = handler.NewPublicHandler(c.PublicService, resolver, verifier)
	c.ReportHandler = handler.NewReportHandler(c.ReportService)

	return c
}

// captchaSecret returns the configured secret only when verification is on
func captchaSecret(cfg *config.Config) string {
	if !cfg.Captcha.Enabled {
		return ""
	}
	return cfg.Captcha.SecretKey
}

// Close releases infrastructure resources
func (c *Container) Close() {
	if c.Stores != nil {
		c.Stores.Close()
	}
	if c.Redis != nil {
		_ = c.Redis.Close()
	}
}
