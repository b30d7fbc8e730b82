package metadata

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"
)

// Cache is an on-disk store of extraction results keyed by article content,
// so re-running a conversion does not call the paid service again. Cache
// failures are logged and treated as misses - the cache can never fail a
// conversion. A nil *Cache is a valid always-miss cache.
//
// The conversion pipeline is sequential, a single connection without locking
// is enough.
type Cache struct {
	conn *sqlite.Conn
	log  *zap.Logger
}

const cacheSchema = `CREATE TABLE IF NOT EXISTS extractions (
	key        TEXT PRIMARY KEY,
	meta       TEXT NOT NULL,
	model      TEXT NOT NULL,
	created_at INTEGER NOT NULL
);`

// OpenCache opens or creates the cache database at path.
func OpenCache(path string, log *zap.Logger) (*Cache, error) {
	conn, err := sqlite.OpenConn(path, sqlite.OpenReadWrite, sqlite.OpenCreate, sqlite.OpenWAL)
	if err != nil {
		return nil, fmt.Errorf("unable to open metadata cache: %w", err)
	}
	if err := sqlitex.ExecuteTransient(conn, cacheSchema, nil); err != nil {
		conn.Close()
		return nil, fmt.Errorf("unable to prepare metadata cache schema: %w", err)
	}
	return &Cache{conn: conn, log: log}, nil
}

func (c *Cache) Close() error {
	if c == nil {
		return nil
	}
	return c.conn.Close()
}

// CacheKey derives the lookup key for an article. The model name is part of
// the key - switching models must not serve stale extractions.
func CacheKey(model, text string) string {
	h := sha256.New()
	io.WriteString(h, model)
	h.Write([]byte{0})
	io.WriteString(h, text)
	return hex.EncodeToString(h.Sum(nil))
}

// Get returns the cached result for key. Any failure is a miss.
func (c *Cache) Get(key string) (Meta, bool) {
	if c == nil {
		return Meta{}, false
	}

	var data string
	found := false
	err := sqlitex.Execute(c.conn, `SELECT meta FROM extractions WHERE key = ?`,
		&sqlitex.ExecOptions{
			Args: []any{key},
			ResultFunc: func(stmt *sqlite.Stmt) error {
				data = stmt.ColumnText(0)
				found = true
				return nil
			},
		})
	if err != nil {
		c.log.Warn("Metadata cache read failed", zap.Error(err))
		return Meta{}, false
	}
	if !found {
		return Meta{}, false
	}

	var m Meta
	if err := json.Unmarshal([]byte(data), &m); err != nil {
		c.log.Warn("Metadata cache entry is corrupt, ignoring", zap.String("key", key), zap.Error(err))
		return Meta{}, false
	}
	return m, true
}

// Put stores the result for key. Failures are logged and ignored.
func (c *Cache) Put(key, model string, m Meta) {
	if c == nil {
		return
	}

	data, err := json.Marshal(m)
	if err != nil {
		c.log.Warn("Unable to encode metadata for cache", zap.Error(err))
		return
	}
	err = sqlitex.Execute(c.conn,
		`INSERT OR REPLACE INTO extractions (key, meta, model, created_at) VALUES (?, ?, ?, ?)`,
		&sqlitex.ExecOptions{
			Args: []any{key, string(data), model, time.Now().Unix()},
		})
	if err != nil {
		c.log.Warn("Metadata cache write failed", zap.Error(err))
	}
}
