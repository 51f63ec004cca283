// Package store persists parsed catalogs. JSON is the canonical exchange
// format; YAML and SQLite are alternatives selected by file extension or
// configuration.
package store

import (
	"context"
	"path/filepath"
	"strings"

	mdwerror "github.com/msto63/grocer/foundation/core/error"
	"github.com/msto63/grocer/internal/catalog"
)

// Kind names a store format
type Kind string

const (
	KindJSON   Kind = "json"
	KindYAML   Kind = "yaml"
	KindSQLite Kind = "sqlite"
)

// Store is the interface for catalog stores
type Store interface {
	// Save replaces the stored catalog with products
	Save(ctx context.Context, products []catalog.Product) error

	// Load returns the stored catalog in its original order
	Load(ctx context.Context) ([]catalog.Product, error)

	// Close releases the store
	Close() error
}

// ParseKind converts a configured store name into a Kind
func ParseKind(name string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "json":
		return KindJSON, nil
	case "yaml", "yml":
		return KindYAML, nil
	case "sqlite", "sqlite3", "db":
		return KindSQLite, nil
	default:
		return "", mdwerror.New("unsupported store").
			WithCode(mdwerror.CodeUnsupportedStore).
			WithDetail("store", name)
	}
}

// KindFromPath derives the store kind from a file extension
func KindFromPath(path string) (Kind, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return KindJSON, nil
	case ".yaml", ".yml":
		return KindYAML, nil
	case ".db", ".sqlite", ".sqlite3":
		return KindSQLite, nil
	default:
		return "", mdwerror.New("cannot infer store format from file extension").
			WithCode(mdwerror.CodeUnsupportedStore).
			WithDetail("path", path)
	}
}

// Open opens the store at path. An empty kind is inferred from the path.
func Open(path string, kind Kind) (Store, error) {
	if kind == "" {
		var err error
		if kind, err = KindFromPath(path); err != nil {
			return nil, err
		}
	}

	switch kind {
	case KindJSON:
		return NewJSONStore(path), nil
	case KindYAML:
		return NewYAMLStore(path), nil
	case KindSQLite:
		s, err := NewSQLiteStore(SQLiteConfig{Path: path})
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, mdwerror.New("unsupported store").
			WithCode(mdwerror.CodeUnsupportedStore).
			WithDetail("store", string(kind))
	}
}
