package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/iliyamo/cinema-showtimes/internal/model"
)

// ErrUnsupportedFormat is returned for catalog files that are neither JSON
// nor YAML.
var ErrUnsupportedFormat = errors.New("unsupported catalog format")

// document is the on-disk shape.  A bare top-level list is accepted too.
type document struct {
	Movies []model.Movie `json:"movies" yaml:"movies"`
}

// LoadFile reads movies from a .json, .yaml or .yml file.
func LoadFile(path string) ([]model.Movie, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return decodeJSON(data)
	case ".yaml", ".yml":
		return decodeYAML(data)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

func decodeJSON(data []byte) ([]model.Movie, error) {
	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, "[") {
		var movies []model.Movie
		if err := json.Unmarshal(data, &movies); err != nil {
			return nil, fmt.Errorf("parse catalog json: %w", err)
		}
		return movies, nil
	}
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse catalog json: %w", err)
	}
	return doc.Movies, nil
}

func decodeYAML(data []byte) ([]model.Movie, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("parse catalog yaml: %w", err)
	}
	if len(root.Content) == 0 {
		return nil, nil
	}
	if root.Content[0].Kind == yaml.SequenceNode {
		var movies []model.Movie
		if err := root.Content[0].Decode(&movies); err != nil {
			return nil, fmt.Errorf("parse catalog yaml: %w", err)
		}
		return movies, nil
	}
	var doc document
	if err := root.Content[0].Decode(&doc); err != nil {
		return nil, fmt.Errorf("parse catalog yaml: %w", err)
	}
	return doc.Movies, nil
}
