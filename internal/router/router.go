// Package router wires handlers and middleware onto an Echo instance.
package router

import (
    "github.com/labstack/echo/v4"
    "github.com/redis/go-redis/v9"

    "github.com/iliyamo/cinema-showtimes/internal/catalog"
    "github.com/iliyamo/cinema-showtimes/internal/config"
    "github.com/iliyamo/cinema-showtimes/internal/handler"
    "github.com/iliyamo/cinema-showtimes/internal/middleware"
    "github.com/iliyamo/cinema-showtimes/internal/service"
    "github.com/iliyamo/cinema-showtimes/internal/utils"
)

// Deps are the shared pieces every route group draws from.  Redis may be
// nil, in which case caching and rate limiting are skipped.
type Deps struct {
    Cfg       *config.Config
    Store     *catalog.Store
    Redis     *redis.Client
    Publisher service.BookingPublisher
}

// RegisterRoutes mounts every group.
func RegisterRoutes(e *echo.Echo, d Deps) {
    e.GET("/healthz", handler.Health(d.Store))
    RegisterCatalog(e, handler.NewCatalogHandler(d.Store), middleware.NewRedisCache(d.Cfg.Cache, d.Redis))
    RegisterBooking(e, handler.NewBookingHandler(d.Store, d.Publisher), middleware.NewTokenBucket(d.Cfg.RateLimit, d.Redis))
    RegisterAdmin(e, handler.NewAdminHandler(d.Cfg.Admin, d.Cfg.Cache, d.Store, d.Redis), d.Cfg.Admin.JWTSecret)
}

// RegisterCatalog mounts the listing and schedule reads behind the
// response cache.
func RegisterCatalog(e *echo.Echo, h *handler.CatalogHandler, cache echo.MiddlewareFunc) {
    g := e.Group("/v1", cache)
    g.GET("/movies", h.ListMovies)
    g.GET("/genres", h.Genres)
    g.GET("/schedule", h.Schedule)
    g.GET("/schedule/:day", h.ScheduleDay)
}

// RegisterBooking mounts the ticket form.  The form view is read-only; the
// POSTs are rate limited.
func RegisterBooking(e *echo.Echo, h *handler.BookingHandler, limit echo.MiddlewareFunc) {
    e.GET("/v1/booking/form", h.Form)
    e.POST("/v1/booking/fields/:field", h.Field, limit)
    e.POST("/v1/bookings", h.Submit, limit)
}

// RegisterAdmin mounts login and the JWT-protected catalog reload.
func RegisterAdmin(e *echo.Echo, h *handler.AdminHandler, jwtSecret string) {
    g := e.Group("/v1/admin")
    g.POST("/login", h.Login)

    auth := g.Group("", middleware.JWTAuth(jwtSecret), middleware.RequireRole(utils.RoleAdmin))
    auth.POST("/catalog/reload", h.ReloadCatalog)
}
