package handler

import (
    "context"
    "net/http"
    "time"

    "github.com/labstack/echo/v4"
    "github.com/redis/go-redis/v9"

    "github.com/iliyamo/cinema-showtimes/internal/catalog"
    "github.com/iliyamo/cinema-showtimes/internal/config"
    "github.com/iliyamo/cinema-showtimes/internal/logger"
    "github.com/iliyamo/cinema-showtimes/internal/middleware"
    "github.com/iliyamo/cinema-showtimes/internal/utils"
)

// AdminHandler covers admin login and catalog reload.
type AdminHandler struct {
    Cfg   config.AdminConfig
    Cache config.CacheConfig
    Store *catalog.Store
    Redis *redis.Client // optional; cached listings are purged after reload
}

func NewAdminHandler(cfg config.AdminConfig, cache config.CacheConfig, store *catalog.Store, rdb *redis.Client) *AdminHandler {
    return &AdminHandler{Cfg: cfg, Cache: cache, Store: store, Redis: rdb}
}

type adminLoginReq struct {
    Password string `json:"password"`
}

// Login exchanges the admin password for a short-lived ADMIN token.
func (h *AdminHandler) Login(c echo.Context) error {
    if !h.Cfg.Enabled() {
        return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "admin_disabled"})
    }
    var req adminLoginReq
    if err := c.Bind(&req); err != nil || req.Password == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "password required"})
    }
    if !utils.VerifyPassword(h.Cfg.PasswordHash, req.Password) {
        logger.Warn("admin: login rejected", "ip", c.RealIP())
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
    }
    tok, err := utils.NewAdminToken(h.Cfg.JWTSecret, "admin", h.Cfg.TokenTTL)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "token_error", "message": err.Error()})
    }
    return c.JSON(http.StatusOK, echo.Map{"access": tok})
}

// ReloadCatalog re-reads the catalog source.  The new catalog replaces the
// old one in a single swap; on error the old one keeps serving.
func (h *AdminHandler) ReloadCatalog(c echo.Context) error {
    ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
    defer cancel()

    cat, err := h.Store.Reload(ctx)
    if err != nil {
        logger.Error("catalog: reload failed", "err", err)
        return c.JSON(http.StatusBadGateway, echo.Map{
            "error":   "reload_failed",
            "message": err.Error(),
        })
    }
    purged, err := middleware.PurgeCache(ctx, h.Cache, h.Redis)
    if err != nil {
        logger.Warn("cache: purge failed", "err", err)
    }
    sub, _ := c.Get(middleware.CtxSubject).(string)
    logger.Info("catalog reloaded", "by", sub, "movies", cat.Len(), "purged", purged)

    return c.JSON(http.StatusOK, echo.Map{
        "movies": cat.Len(),
        "purged": purged,
    })
}
