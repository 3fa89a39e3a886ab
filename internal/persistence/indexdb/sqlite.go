// Package indexdb keeps a local SQLite index of saved world documents so an
// orchestrator can list and reload worlds by id without scanning files.
package indexdb

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"gridcraft.ai/internal/persistence/snapshot"
)

type SaveStore struct {
	mu sync.Mutex
	db *sql.DB
}

type SaveMeta struct {
	ID        string
	Name      string
	Width     int
	Height    int
	Entities  int
	CreatedAt string
}

func Open(path string) (*SaveStore, error) {
	if path == "" {
		return nil, fmt.Errorf("empty db path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := initPragmas(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &SaveStore{db: db}, nil
}

func initPragmas(db *sql.DB) error {
	// WAL is much faster for append-style workloads.
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
		"PRAGMA temp_store=MEMORY;",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return err
		}
	}
	return nil
}

func initSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS saves (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			width INTEGER NOT NULL,
			height INTEGER NOT NULL,
			entities INTEGER NOT NULL,
			doc_json TEXT NOT NULL,
			created_at TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_saves_name ON saves(name);`,
	}
	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			return err
		}
	}
	return nil
}

// SaveWorld stores a document under a fresh id and returns it.
func (s *SaveStore) SaveWorld(name string, doc snapshot.WorldDocV1) (string, error) {
	raw, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("marshal document: %w", err)
	}
	id := uuid.NewString()

	s.mu.Lock()
	defer s.mu.Unlock()
	_, err = s.db.Exec(
		`INSERT INTO saves (id, name, width, height, entities, doc_json, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		id, name, doc.Width, doc.Height, len(doc.Entities), string(raw),
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return "", err
	}
	return id, nil
}

func (s *SaveStore) LoadWorld(id string) (snapshot.WorldDocV1, error) {
	var doc snapshot.WorldDocV1

	s.mu.Lock()
	defer s.mu.Unlock()
	var raw string
	err := s.db.QueryRow(`SELECT doc_json FROM saves WHERE id = ?`, id).Scan(&raw)
	if err == sql.ErrNoRows {
		return doc, fmt.Errorf("save %s: not found", id)
	}
	if err != nil {
		return doc, err
	}
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return doc, fmt.Errorf("unmarshal document: %w", err)
	}
	return doc, nil
}

func (s *SaveStore) ListSaves() ([]SaveMeta, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rows, err := s.db.Query(
		`SELECT id, name, width, height, entities, created_at FROM saves ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []SaveMeta
	for rows.Next() {
		var m SaveMeta
		if err := rows.Scan(&m.ID, &m.Name, &m.Width, &m.Height, &m.Entities, &m.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (s *SaveStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Close()
}
