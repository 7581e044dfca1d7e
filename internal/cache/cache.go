// Package cache implements the dependency-aware persistent proof
// cache (§4.H): a SQLite-backed store keyed on a goal formula's
// canonical-string digest, recording either the set of axiom digests
// a successful proof actually used (for fine-grained invalidation) or
// a full context digest for failure caching. Schema and lookup/store
// semantics are grounded verbatim on
// original_source/check/cache.py's ProverCache; the SQLite bootstrap
// idiom (os.MkdirAll, sql.Open, idempotent CREATE TABLE/INDEX IF NOT
// EXISTS) is grounded on the teacher's internal/store/local.go.
package cache

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	_ "github.com/mattn/go-sqlite3"

	"vernac/internal/fol"
)

// DefaultFileName is the cache database's conventional file name,
// created on first use and retained across runs.
const DefaultFileName = ".vernac_cache.db"

// Cache is a persistent, dependency-aware proof result store. Safe
// for concurrent use: reads and writes alike are serialized through
// mu, so there is a single writer and no reader overlaps a write.
type Cache struct {
	db *sql.DB
	mu sync.Mutex
}

// Open opens (creating if necessary) the cache database at path,
// bootstrapping its schema idempotently.
func Open(path string) (*Cache, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("cache: creating directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("cache: opening %s: %w", path, err)
	}
	c := &Cache{db: db}
	if err := c.initialize(); err != nil {
		db.Close()
		return nil, err
	}
	return c, nil
}

func (c *Cache) initialize() error {
	const schema = `
CREATE TABLE IF NOT EXISTS proofs (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	goal_hash TEXT NOT NULL,
	dependencies TEXT NOT NULL,
	result BOOLEAN NOT NULL,
	context_hash TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_goal_hash ON proofs (goal_hash);
`
	if _, err := c.db.Exec(schema); err != nil {
		return fmt.Errorf("cache: bootstrapping schema: %w", err)
	}
	return nil
}

// Close releases the underlying database handle.
func (c *Cache) Close() error {
	return c.db.Close()
}

// HashFormula digests a formula's canonical string with SHA-256, as
// original_source/check/cache.py's compute_hash_formula does.
func HashFormula(f fol.Formula) string {
	sum := sha256.Sum256([]byte(f.String()))
	return hex.EncodeToString(sum[:])
}

// ContextHash digests the sorted list of currently-available axiom
// digests together with the goal digest, for failure-record matching.
func ContextHash(axiomDigests []string, goalHash string) string {
	sorted := append([]string(nil), axiomDigests...)
	sort.Strings(sorted)
	sum := sha256.Sum256([]byte(strings.Join(sorted, ",") + "|GOAL:" + goalHash))
	return hex.EncodeToString(sum[:])
}

// Lookup returns a three-valued result for goalHash given the set of
// currently-available axiom digests and the current context hash:
//
//   - (true, true) if some stored success record's dependencies are
//     all present in the available set;
//   - (false, true) if some stored failure record matches contextHash
//     exactly;
//   - (false, false) — unknown — otherwise.
func (c *Cache) Lookup(goalHash string, availableDigests []string, contextHash string) (result bool, known bool, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	rows, err := c.db.Query(
		`SELECT dependencies, result, context_hash FROM proofs WHERE goal_hash = ?`, goalHash)
	if err != nil {
		return false, false, fmt.Errorf("cache: querying goal_hash %s: %w", goalHash, err)
	}
	defer rows.Close()

	available := make(map[string]bool, len(availableDigests))
	for _, d := range availableDigests {
		available[d] = true
	}

	for rows.Next() {
		var depsSerialized string
		var res bool
		var ctxHash string
		if err := rows.Scan(&depsSerialized, &res, &ctxHash); err != nil {
			return false, false, fmt.Errorf("cache: scanning row: %w", err)
		}
		if res {
			if allPresent(deserializeDeps(depsSerialized), available) {
				return true, true, nil
			}
			continue
		}
		if ctxHash == contextHash {
			return false, true, nil
		}
	}
	if err := rows.Err(); err != nil {
		return false, false, fmt.Errorf("cache: iterating rows: %w", err)
	}
	return false, false, nil
}

// Store records a terminal proof result, deduplicated on the full
// (goal_hash, dependencies, result, context_hash) tuple. Success
// records carry the used-axiom digests; failure records carry the
// full context hash.
func (c *Cache) Store(goalHash string, usedDigests []string, result bool, contextHash string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	deps := serializeDeps(usedDigests)

	var exists int
	err := c.db.QueryRow(
		`SELECT COUNT(1) FROM proofs WHERE goal_hash = ? AND dependencies = ? AND result = ? AND context_hash = ?`,
		goalHash, deps, result, contextHash,
	).Scan(&exists)
	if err != nil {
		return fmt.Errorf("cache: checking duplicate: %w", err)
	}
	if exists > 0 {
		return nil
	}

	_, err = c.db.Exec(
		`INSERT INTO proofs (goal_hash, dependencies, result, context_hash) VALUES (?, ?, ?, ?)`,
		goalHash, deps, result, contextHash,
	)
	if err != nil {
		return fmt.Errorf("cache: inserting record: %w", err)
	}
	return nil
}

func allPresent(deps []string, available map[string]bool) bool {
	for _, d := range deps {
		if !available[d] {
			return false
		}
	}
	return true
}

func serializeDeps(deps []string) string {
	sorted := append([]string(nil), deps...)
	sort.Strings(sorted)
	return strings.Join(sorted, ",")
}

func deserializeDeps(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}
