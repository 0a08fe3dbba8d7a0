// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package embed

import (
	"bytes"
	"database/sql"
	"encoding/binary"
	"fmt"
	"math"
	"sync"

	_ "github.com/mattn/go-sqlite3"
)

// Cache maps insight keys to embedding vectors. Reads and inserts are safe
// from concurrent resolver workers. With a backing database the cache also
// survives across runs, saving provider calls for recurring insight text;
// the database lives inside the embedding-provider boundary and is never a
// pipeline output.
type Cache struct {
	mu      sync.RWMutex
	vectors map[string][]float32
	db      *sql.DB
}

// NewCache returns an in-memory cache.
func NewCache() *Cache {
	return &Cache{vectors: make(map[string][]float32)}
}

// OpenCache returns a cache backed by a SQLite file at path, preloading all
// stored vectors. An empty path yields a plain in-memory cache.
func OpenCache(path string) (*Cache, error) {
	c := NewCache()
	if path == "" {
		return c, nil
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening embedding cache: %w", err)
	}

	if _, err := db.Exec(
		`CREATE TABLE IF NOT EXISTS embeddings (
			key TEXT PRIMARY KEY,
			dimensions INTEGER NOT NULL,
			vector BLOB NOT NULL
		)`,
	); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating embedding cache schema: %w", err)
	}

	rows, err := db.Query(`SELECT key, dimensions, vector FROM embeddings`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("loading embedding cache: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var key string
		var dims int
		var blob []byte
		if err := rows.Scan(&key, &dims, &blob); err != nil {
			db.Close()
			return nil, fmt.Errorf("scanning cached embedding: %w", err)
		}
		vec, err := decodeVector(blob, dims)
		if err != nil {
			// A corrupt row costs one provider call, not the cache.
			continue
		}
		c.vectors[key] = vec
	}
	if err := rows.Err(); err != nil {
		db.Close()
		return nil, fmt.Errorf("iterating embedding cache: %w", err)
	}

	c.db = db
	return c, nil
}

// Close releases the backing database, if any.
func (c *Cache) Close() error {
	if c.db == nil {
		return nil
	}
	return c.db.Close()
}

// Get returns the cached vector for a key.
func (c *Cache) Get(key string) ([]float32, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.vectors[key]
	return v, ok
}

// Put stores a vector. Vectors are never mutated after insertion; a second
// Put for the same key is a no-op. Persistence failures degrade to
// in-memory caching rather than failing the run.
func (c *Cache) Put(key string, vector []float32) {
	c.mu.Lock()
	if _, exists := c.vectors[key]; exists {
		c.mu.Unlock()
		return
	}
	c.vectors[key] = vector
	c.mu.Unlock()

	if c.db != nil {
		c.db.Exec(
			`INSERT OR IGNORE INTO embeddings (key, dimensions, vector) VALUES (?, ?, ?)`,
			key, len(vector), encodeVector(vector),
		)
	}
}

// Len returns the number of cached vectors.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.vectors)
}

// encodeVector packs float32 values little-endian for BLOB storage.
func encodeVector(vec []float32) []byte {
	buf := bytes.NewBuffer(make([]byte, 0, len(vec)*4))
	for _, f := range vec {
		binary.Write(buf, binary.LittleEndian, math.Float32bits(f))
	}
	return buf.Bytes()
}

// decodeVector unpacks a BLOB written by encodeVector.
func decodeVector(blob []byte, dims int) ([]float32, error) {
	if dims <= 0 || len(blob) != dims*4 {
		return nil, fmt.Errorf("embedding blob length %d does not match %d dimensions", len(blob), dims)
	}
	vec := make([]float32, dims)
	for i := 0; i < dims; i++ {
		bits := binary.LittleEndian.Uint32(blob[i*4:])
		vec[i] = math.Float32frombits(bits)
	}
	return vec, nil
}
