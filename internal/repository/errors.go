package repository

import "errors"

// ErrCatalogEmpty is returned when the movies table has no rows.  The
// server treats it like any other load failure and runs without a catalog.
var ErrCatalogEmpty = errors.New("catalog is empty")
