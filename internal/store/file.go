package store

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	mdwerror "github.com/msto63/grocer/foundation/core/error"
	"github.com/msto63/grocer/internal/catalog"
	"gopkg.in/yaml.v3"
)

// FileStore keeps the whole catalog in a single JSON or YAML file
type FileStore struct {
	path      string
	kind      Kind
	marshal   func([]catalog.Product) ([]byte, error)
	unmarshal func([]byte, *[]catalog.Product) error
}

// NewJSONStore creates a store writing an indented JSON array
func NewJSONStore(path string) *FileStore {
	return &FileStore{
		path: path,
		kind: KindJSON,
		marshal: func(products []catalog.Product) ([]byte, error) {
			data, err := json.MarshalIndent(products, "", "  ")
			return append(data, '\n'), err
		},
		unmarshal: func(data []byte, products *[]catalog.Product) error {
			return json.Unmarshal(data, products)
		},
	}
}

// NewYAMLStore creates a store writing a YAML sequence
func NewYAMLStore(path string) *FileStore {
	return &FileStore{
		path: path,
		kind: KindYAML,
		marshal: func(products []catalog.Product) ([]byte, error) {
			return yaml.Marshal(products)
		},
		unmarshal: func(data []byte, products *[]catalog.Product) error {
			return yaml.Unmarshal(data, products)
		},
	}
}

// Path returns the backing file
func (s *FileStore) Path() string { return s.path }

// Save writes products to the file, creating parent directories
func (s *FileStore) Save(ctx context.Context, products []catalog.Product) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if products == nil {
		products = []catalog.Product{}
	}

	data, err := s.marshal(products)
	if err != nil {
		return s.wrap(err, "failed to encode catalog")
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return s.wrap(err, "failed to create directory")
		}
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return s.wrap(err, "failed to write catalog")
	}
	return nil
}

// Load reads the catalog from the file
func (s *FileStore) Load(ctx context.Context) ([]catalog.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, s.wrap(err, "catalog file not found").WithCode(mdwerror.CodeNotFound)
		}
		return nil, s.wrap(err, "failed to read catalog")
	}

	var products []catalog.Product
	if err := s.unmarshal(data, &products); err != nil {
		return nil, s.wrap(err, "failed to decode catalog")
	}
	if products == nil {
		products = []catalog.Product{}
	}
	return products, nil
}

// Close is a no-op for file stores
func (s *FileStore) Close() error { return nil }

func (s *FileStore) wrap(err error, message string) *mdwerror.Error {
	return mdwerror.Wrap(err, message).
		WithCode(mdwerror.CodeStorageError).
		WithDetail("path", s.path).
		WithDetail("store", string(s.kind))
}
