// Package router registers the HTTP routes.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/alisettar/Attend/internal/config"
	"github.com/alisettar/Attend/internal/di"
	"github.com/alisettar/Attend/internal/middleware"
)

// New builds the gin engine with the full middleware chain and routes
func New(cfg *config.Config, c *di.Container) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger())

	r.GET("/health", c.HealthHandler.Health)

	// Organizer login resolves the tenant from the username, so it runs
	// before any tenant binding
	auth := r.Group("/api/auth")
	{
		auth.POST("/login", c.AuthHandler.Login)
		auth.POST("/logout", c.AuthHandler.Logout)
	}

	// Anonymous self-service behind a registration link hash; the hash
	// itself selects the tenant
	public := r.Group("/api/public")
	public.Use(middleware.RateLimiter(middleware.DefaultRateLimitConfig(c.Redis)))
	{
		public.POST("/:hash/register", c.PublicHandler.Register)
		public.POST("/:hash/lookup", c.PublicHandler.Lookup)
	}

	// Organizer API: tenant binding plus token auth
	v1 := r.Group("/api/v1")
	v1.Use(middleware.TenantMiddleware(c.Resolver))
	v1.Use(middleware.JWTMiddleware(&middleware.JWTConfig{Secret: cfg.JWT.Secret}))
	{
		users := v1.Group("/users")
		{
			users.POST("", c.UserHandler.Create)
			users.GET("", c.UserHandler.List)
			users.GET("/:id", c.UserHandler.GetByID)
			users.PUT("/:id", c.UserHandler.Update)
			users.DELETE("/:id", c.UserHandler.Delete)
			users.GET("/:id/attendances", c.AttendanceHandler.ListByUser)
		}

		events := v1.Group("/events")
		{
			events.POST("", c.EventHandler.Create)
			events.GET("", c.EventHandler.List)
			events.GET("/:id", c.EventHandler.GetByID)
			events.PUT("/:id", c.EventHandler.Update)
			events.DELETE("/:id", c.EventHandler.Delete)
			events.GET("/:id/attendances", c.EventHandler.Attendances)
			events.GET("/:id/stats", c.EventHandler.Stats)
		}

		attendances := v1.Group("/attendances")
		{
			attendances.POST("", c.AttendanceHandler.Register)
			attendances.POST("/checkin", c.AttendanceHandler.CheckInByQRCode)
			attendances.GET("/:id", c.AttendanceHandler.GetByID)
			attendances.DELETE("/:id", c.AttendanceHandler.Delete)
			attendances.POST("/:id/checkin", c.AttendanceHandler.CheckIn)
			attendances.POST("/:id/cancel", c.AttendanceHandler.Cancel)
		}

		v1.GET("/reports/dashboard", c.ReportHandler.Dashboard)
	}

	return r
}
