package store

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	mdwerror "github.com/msto63/grocer/foundation/core/error"
	"github.com/msto63/grocer/internal/catalog"
)

// SQLiteStore keeps the catalog in a SQLite database. Every Save replaces
// the products and records an import.
type SQLiteStore struct {
	db   *sql.DB
	mu   sync.RWMutex
	path string
}

// SQLiteConfig holds SQLite store configuration
type SQLiteConfig struct {
	Path string
}

// Import describes one Save into a SQLite store
type Import struct {
	ID           string    `json:"id"`
	ProductCount int       `json:"product_count"`
	CreatedAt    time.Time `json:"created_at"`
}

// NewSQLiteStore opens (and if needed creates) a SQLite catalog store
func NewSQLiteStore(cfg SQLiteConfig) (*SQLiteStore, error) {
	dir := filepath.Dir(cfg.Path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, wrapSQLite(err, "failed to create directory", cfg.Path)
	}

	db, err := sql.Open("sqlite3", cfg.Path+"?_journal_mode=WAL&_synchronous=NORMAL")
	if err != nil {
		return nil, wrapSQLite(err, "failed to open database", cfg.Path)
	}

	store := &SQLiteStore{db: db, path: cfg.Path}
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, wrapSQLite(err, "failed to initialize schema", cfg.Path)
	}
	return store, nil
}

// initSchema creates the necessary tables
func (s *SQLiteStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS imports (
		id TEXT PRIMARY KEY,
		product_count INTEGER NOT NULL,
		created_at DATETIME NOT NULL
	);

	-- position keeps catalog order
	CREATE TABLE IF NOT EXISTS products (
		position INTEGER PRIMARY KEY,
		import_id TEXT NOT NULL,
		product_name TEXT NOT NULL,
		category TEXT NOT NULL,
		price_per_unit REAL NOT NULL,
		unit TEXT NOT NULL,
		calories REAL NOT NULL,
		proteins REAL NOT NULL,
		carbohydrates REAL NOT NULL,
		fats REAL NOT NULL,
		FOREIGN KEY (import_id) REFERENCES imports(id)
	);

	CREATE INDEX IF NOT EXISTS idx_products_name ON products(product_name);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Save replaces the stored products inside one transaction
func (s *SQLiteStore) Save(ctx context.Context, products []catalog.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return wrapSQLite(err, "failed to begin transaction", s.path)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM products`); err != nil {
		return wrapSQLite(err, "failed to clear products", s.path)
	}

	importID := uuid.NewString()
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO imports (id, product_count, created_at) VALUES (?, ?, ?)`,
		importID, len(products), time.Now().UTC(),
	); err != nil {
		return wrapSQLite(err, "failed to record import", s.path)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO products (position, import_id, product_name, category, price_per_unit,
			unit, calories, proteins, carbohydrates, fats)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return wrapSQLite(err, "failed to prepare product statement", s.path)
	}
	defer stmt.Close()

	for i, p := range products {
		if _, err := stmt.ExecContext(ctx, i, importID, p.ProductName, p.Category, p.PricePerUnit,
			p.Unit, p.Calories, p.Proteins, p.Carbohydrates, p.Fats); err != nil {
			return wrapSQLite(err, "failed to insert product", s.path).WithDetail("product", p.ProductName)
		}
	}

	if err := tx.Commit(); err != nil {
		return wrapSQLite(err, "failed to commit", s.path)
	}
	return nil
}

// Load returns all products ordered by position
func (s *SQLiteStore) Load(ctx context.Context) ([]catalog.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT product_name, category, price_per_unit, unit, calories, proteins, carbohydrates, fats
		FROM products
		ORDER BY position
	`)
	if err != nil {
		return nil, wrapSQLite(err, "failed to query products", s.path)
	}
	defer rows.Close()

	products := []catalog.Product{}
	for rows.Next() {
		var p catalog.Product
		if err := rows.Scan(&p.ProductName, &p.Category, &p.PricePerUnit, &p.Unit,
			&p.Calories, &p.Proteins, &p.Carbohydrates, &p.Fats); err != nil {
			return nil, wrapSQLite(err, "failed to scan product", s.path)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapSQLite(err, "failed to read products", s.path)
	}
	return products, nil
}

// Imports returns the import history, newest first
func (s *SQLiteStore) Imports(ctx context.Context) ([]Import, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, product_count, created_at FROM imports ORDER BY rowid DESC`)
	if err != nil {
		return nil, wrapSQLite(err, "failed to query imports", s.path)
	}
	defer rows.Close()

	var imports []Import
	for rows.Next() {
		var imp Import
		if err := rows.Scan(&imp.ID, &imp.ProductCount, &imp.CreatedAt); err != nil {
			return nil, wrapSQLite(err, "failed to scan import", s.path)
		}
		imports = append(imports, imp)
	}
	return imports, rows.Err()
}

// Close closes the database
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func wrapSQLite(err error, message, path string) *mdwerror.Error {
	return mdwerror.Wrap(err, message).
		WithCode(mdwerror.CodeStorageError).
		WithDetail("path", path).
		WithDetail("store", string(KindSQLite))
}
