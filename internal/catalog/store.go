package catalog

import (
	"context"
	"sync/atomic"
)

// Source produces the catalog's movies.  The file loader and the MySQL
// repository both satisfy it.
type Source interface {
	Load(ctx context.Context) (*Catalog, error)
}

// Store holds the current catalog for the HTTP layer.  Readers always see
// a complete catalog; Reload swaps in a new one atomically.  Current
// returns nil when nothing has been loaded, which callers treat as absent.
type Store struct {
	src Source
	cur atomic.Pointer[Catalog]
}

// NewStore creates a store that loads from src.
func NewStore(src Source) *Store { return &Store{src: src} }

// Current returns the loaded catalog or nil.
func (s *Store) Current() *Catalog {
	if s == nil {
		return nil
	}
	return s.cur.Load()
}

// Set installs c directly without consulting the source.
func (s *Store) Set(c *Catalog) { s.cur.Store(c) }

// Reload fetches a fresh catalog from the source and installs it.  On
// failure the previous catalog stays in place.
func (s *Store) Reload(ctx context.Context) (*Catalog, error) {
	c, err := s.src.Load(ctx)
	if err != nil {
		return nil, err
	}
	s.cur.Store(c)
	return c, nil
}
