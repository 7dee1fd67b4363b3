package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/terra-clan/ia-booster/internal/models"
)

// Loader is the process-scoped handle on the tool catalog.
// The file is read lazily and the result is kept after the first successful load.
// Returned catalogs are shared and must be treated as read-only.
type Loader struct {
	path string

	mu     sync.Mutex
	loaded Catalog
}

// NewLoader creates a loader for the catalog file at path
func NewLoader(path string) *Loader {
	return &Loader{path: path}
}

// Load returns the catalog. When the file cannot be read or parsed the built-in
// catalog is returned instead and the file is retried on the next call.
func (l *Loader) Load(ctx context.Context) Catalog {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.loaded != nil {
		return l.loaded
	}

	if err := ctx.Err(); err != nil {
		return Builtin()
	}

	cat, err := LoadFromFile(l.path)
	if err != nil {
		slog.Warn("failed to load tool catalog, using built-in catalog", "file", l.path, "error", err)
		return Builtin()
	}

	if filled := cat.complete(); len(filled) > 0 {
		slog.Warn("tool catalog incomplete, filled from built-in catalog", "file", l.path, "categories", filled)
	}

	l.loaded = cat
	slog.Info("tool catalog loaded", "file", l.path, "categories", len(cat))
	return cat
}

// Loaded reports whether the catalog file has been loaded successfully
func (l *Loader) Loaded() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.loaded != nil
}

// LoadFromFile parses a catalog file. JSON and YAML are supported, chosen by extension.
func LoadFromFile(path string) (Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	var raw map[string][]models.Tool
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("failed to parse JSON: %w", err)
		}
	}

	if len(raw) == 0 {
		return nil, fmt.Errorf("catalog file %s has no categories", path)
	}

	cat := make(Catalog, len(raw))
	for key, tools := range raw {
		valid := make([]models.Tool, 0, len(tools))
		for _, t := range tools {
			if strings.TrimSpace(t.Name) == "" {
				continue
			}
			valid = append(valid, t)
		}
		cat[Category(key)] = Dedupe(valid)
	}

	return cat, nil
}
