package handler

import (
    "net/http"
    "strconv"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/cinema-showtimes/internal/catalog"
)

// Health answers load balancer probes.  The service stays healthy without
// a catalog; X-Catalog-Movies reports how many movies are loaded.
func Health(store *catalog.Store) echo.HandlerFunc {
    return func(c echo.Context) error {
        c.Response().Header().Set("X-Catalog-Movies", strconv.Itoa(store.Current().Len()))
        return c.String(http.StatusOK, "ok")
    }
}
