package middleware

import (
    "net/http"
    "strings"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/cinema-showtimes/internal/utils"
)

// Context keys set by JWTAuth.
const (
    CtxSubject = "subject"
    CtxRole    = "role"
)

// JWTAuth validates an HS256 bearer token and stores its subject and role
// claims on the context.
func JWTAuth(secret string) echo.MiddlewareFunc {
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            auth := c.Request().Header.Get(echo.HeaderAuthorization)
            raw, ok := strings.CutPrefix(auth, "Bearer ")
            if !ok || raw == "" {
                return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
            }
            sub, role, err := utils.ParseToken(secret, raw)
            if err != nil {
                return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
            }
            c.Set(CtxSubject, sub)
            c.Set(CtxRole, role)
            return next(c)
        }
    }
}
