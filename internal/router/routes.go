package router

import (
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"github.com/roomus/rooms-api/internal/config"
	"github.com/roomus/rooms-api/internal/handler"
	middlewarepkg "github.com/roomus/rooms-api/internal/middleware"
)

// Handlers aggregates HTTP handlers used by the router.
type Handlers struct {
	Rooms   *handler.RoomsHandler
	Contact *handler.ContactHandler
	Health  *handler.HealthHandler
}

// Register wires all HTTP routes for the API.
func Register(e *echo.Echo, cfg *config.Config, handlers Handlers) {
	e.Use(echoMiddleware.CORSWithConfig(echoMiddleware.CORSConfig{
		AllowOrigins:  cfg.CORSAllowOrigins,
		AllowHeaders:  []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, middlewarepkg.HeaderRequestID},
		ExposeHeaders: []string{middlewarepkg.HeaderRequestID},
	}))

	e.GET("/healthz", handlers.Health.Check)

	rooms := e.Group("/api/rooms")
	rooms.GET("/search", handlers.Rooms.Search)
	rooms.GET("/counts", handlers.Rooms.Counts)
	rooms.GET("/options", handlers.Rooms.Options)
	rooms.GET("/:id", handlers.Rooms.Get)
	rooms.POST("/:id/contact", handlers.Contact.Send, middlewarepkg.RateLimiter("contact", cfg.RateLimitContact))
}
