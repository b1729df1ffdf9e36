package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/iliyamo/cinema-showtimes/internal/catalog"
	"github.com/iliyamo/cinema-showtimes/internal/database"
	"github.com/iliyamo/cinema-showtimes/internal/logger"
	"github.com/iliyamo/cinema-showtimes/internal/repository"
)

type MigrateCmd struct {
	Seed string `help:"JSON or YAML catalog to load into the database, replacing its contents." type:"path"`
}

// Run creates the catalog tables and optionally seeds them.
func (c *MigrateCmd) Run(ctx *Context) error {
	db, err := ctx.openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	cctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := database.Migrate(cctx, db); err != nil {
		return err
	}
	logger.Info("schema ready", "db", ctx.Config.Database.Name)

	if c.Seed == "" {
		return nil
	}
	movies, err := catalog.LoadFile(c.Seed)
	if err != nil {
		return err
	}
	if err := repository.NewMovieRepo(db, ctx.Now).Replace(cctx, movies); err != nil {
		return fmt.Errorf("seed catalog: %w", err)
	}
	fmt.Fprintf(ctx.Out, "seeded %d movies from %s\n", len(movies), c.Seed)
	return nil
}
