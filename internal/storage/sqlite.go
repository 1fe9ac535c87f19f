package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"clrindex/internal/graph"

	_ "github.com/mattn/go-sqlite3"
)

// SQLiteStore persists symbols and references to a local SQLite database.
type SQLiteStore struct {
	db  *sql.DB
	log *slog.Logger

	// ids caches name -> id so the hot CollectSymbol path stays off disk
	// for already-seen names within a process.
	ids map[string]int64
}

// NewSQLiteStore creates or opens a SQLite database at path.
func NewSQLiteStore(path string, logger *slog.Logger) (*SQLiteStore, error) {
	if logger == nil {
		logger = slog.Default()
	}
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}

	s := &SQLiteStore{db: db, log: logger, ids: make(map[string]int64)}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to init schema: %w", err)
	}
	return s, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) initSchema() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS symbols (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL UNIQUE,
			kind TEXT NOT NULL,
			prefix TEXT,
			postfix TEXT
		);`,
		`CREATE TABLE IF NOT EXISTS edges (
			source_id INTEGER NOT NULL,
			target_id INTEGER NOT NULL,
			kind TEXT NOT NULL,
			PRIMARY KEY (source_id, target_id, kind)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_symbols_kind ON symbols(kind);`,
	}
	for _, q := range queries {
		if _, err := s.db.Exec(q); err != nil {
			return err
		}
	}
	return nil
}

func (s *SQLiteStore) CollectSymbol(name string, kind graph.SymbolKind, prefix, postfix string) int64 {
	if name == "" {
		return 0
	}
	if id, ok := s.ids[name]; ok {
		return id
	}

	var id int64
	err := s.db.QueryRow(`SELECT id FROM symbols WHERE name = ?`, name).Scan(&id)
	switch {
	case err == nil:
		s.ids[name] = id
		return id
	case !errors.Is(err, sql.ErrNoRows):
		s.log.Error("symbol lookup failed", "name", name, "error", err)
		return 0
	}

	res, err := s.db.Exec(
		`INSERT INTO symbols (name, kind, prefix, postfix) VALUES (?, ?, ?, ?)`,
		name, string(kind), prefix, postfix,
	)
	if err != nil {
		s.log.Error("symbol insert failed", "name", name, "error", err)
		return 0
	}
	id, err = res.LastInsertId()
	if err != nil || id <= 0 {
		s.log.Error("symbol id unavailable", "name", name, "error", err)
		return 0
	}
	s.ids[name] = id
	return id
}

func (s *SQLiteStore) CollectReference(sourceID, targetID int64, kind graph.ReferenceKind) bool {
	if sourceID <= 0 || targetID <= 0 {
		return false
	}
	_, err := s.db.Exec(
		`INSERT INTO edges (source_id, target_id, kind) VALUES (?, ?, ?)
		 ON CONFLICT(source_id, target_id, kind) DO NOTHING`,
		sourceID, targetID, string(kind),
	)
	if err != nil {
		s.log.Error("edge insert failed", "source", sourceID, "target", targetID, "error", err)
		return false
	}
	return true
}

func (s *SQLiteStore) Counts() (int64, int64, error) {
	var symbols, references int64
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM symbols`).Scan(&symbols); err != nil {
		return 0, 0, fmt.Errorf("failed to count symbols: %w", err)
	}
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM edges`).Scan(&references); err != nil {
		return 0, 0, fmt.Errorf("failed to count edges: %w", err)
	}
	return symbols, references, nil
}

// CountsByKind reports stored symbol counts grouped by kind.
func (s *SQLiteStore) CountsByKind() (map[graph.SymbolKind]int64, error) {
	rows, err := s.db.Query(`SELECT kind, COUNT(*) FROM symbols GROUP BY kind ORDER BY kind`)
	if err != nil {
		return nil, fmt.Errorf("failed to group symbols: %w", err)
	}
	defer rows.Close()

	out := make(map[graph.SymbolKind]int64)
	for rows.Next() {
		var kind string
		var n int64
		if err := rows.Scan(&kind, &n); err != nil {
			return nil, fmt.Errorf("failed to scan kind row: %w", err)
		}
		out[graph.SymbolKind(kind)] = n
	}
	return out, rows.Err()
}
