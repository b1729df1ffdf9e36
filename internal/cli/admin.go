package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/iliyamo/cinema-showtimes/internal/utils"
)

type HashPasswordCmd struct {
	Password string `arg:"" help:"Admin password to hash."`
	Cost     int    `help:"bcrypt cost." default:"10"`
}

// Run prints a hash suitable for ADMIN_PASSWORD_HASH.
func (c *HashPasswordCmd) Run(ctx *Context) error {
	hash, err := utils.HashPassword(c.Password, c.Cost)
	if err != nil {
		return err
	}
	fmt.Fprintln(ctx.Out, hash)
	return nil
}

type AdminTokenCmd struct {
	Subject string        `help:"Token subject." default:"admin"`
	TTL     time.Duration `help:"Token lifetime; defaults to ADMIN_TOKEN_TTL."`
}

// Run mints an ADMIN token offline, for scripts that reload the catalog.
func (c *AdminTokenCmd) Run(ctx *Context) error {
	secret := ctx.Config.Admin.JWTSecret
	if secret == "" {
		return errors.New("JWT_SECRET is not set")
	}
	ttl := c.TTL
	if ttl <= 0 {
		ttl = ctx.Config.Admin.TokenTTL
	}
	tok, err := utils.NewAdminToken(secret, c.Subject, ttl)
	if err != nil {
		return err
	}
	fmt.Fprintln(ctx.Out, tok.Token)
	return nil
}
