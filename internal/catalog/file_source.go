package catalog

import (
	"context"
	"time"
)

// FileSource loads the catalog from a JSON or YAML file on every Load.
type FileSource struct {
	Path string
	Now  func() time.Time
}

func (f FileSource) Load(_ context.Context) (*Catalog, error) {
	movies, err := LoadFile(f.Path)
	if err != nil {
		return nil, err
	}
	return New(movies, WithClock(f.Now)), nil
}
