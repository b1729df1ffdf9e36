// Package cli implements the showtimes subcommands.
package cli

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/iliyamo/cinema-showtimes/internal/catalog"
	"github.com/iliyamo/cinema-showtimes/internal/config"
	"github.com/iliyamo/cinema-showtimes/internal/database"
	"github.com/iliyamo/cinema-showtimes/internal/repository"
)

// Context is handed to every command's Run.
type Context struct {
	Config *config.Config
	Out    io.Writer
	Now    func() time.Time
}

var (
	headingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))
)

// openSource returns the configured catalog source and a closer for any
// connection it holds.
func openSource(cfg *config.Config, now func() time.Time) (catalog.Source, func(), error) {
	switch cfg.Catalog.Source {
	case config.SourceMySQL:
		src := &mysqlSource{cfg: cfg.Database, now: now}
		return src, src.close, nil
	case config.SourceFile:
		return catalog.FileSource{Path: cfg.Catalog.Path, Now: now}, func() {}, nil
	}
	return nil, func() {}, fmt.Errorf("unknown catalog source %q", cfg.Catalog.Source)
}

// mysqlSource connects on first Load, so a server started while MySQL is
// down picks the catalog up on a later reload.
type mysqlSource struct {
	cfg config.DatabaseConfig
	now func() time.Time

	mu   sync.Mutex
	db   *sql.DB
	repo *repository.MovieRepo
}

func (s *mysqlSource) Load(ctx context.Context) (*catalog.Catalog, error) {
	s.mu.Lock()
	if s.repo == nil {
		db, err := database.Open(s.cfg)
		if err != nil {
			s.mu.Unlock()
			return nil, err
		}
		s.db, s.repo = db, repository.NewMovieRepo(db, s.now)
	}
	repo := s.repo
	s.mu.Unlock()
	return repo.Load(ctx)
}

func (s *mysqlSource) close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db != nil {
		_ = s.db.Close()
	}
}

// loadCatalog reads the catalog once for the offline commands.
func (ctx *Context) loadCatalog() (*catalog.Catalog, error) {
	src, closeSrc, err := openSource(ctx.Config, ctx.Now)
	if err != nil {
		return nil, err
	}
	defer closeSrc()

	c, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return src.Load(c)
}

func (ctx *Context) openDB() (*sql.DB, error) {
	return database.Open(ctx.Config.Database)
}
