package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3" // SQLite3 driver

	"showroom-gallery/internal/logging"
	"showroom-gallery/internal/manifest"
	"showroom-gallery/internal/metrics"
)

const cacheTimeout = 5 * time.Second

// Cache persists the last known good manifest snapshot so the gallery can
// keep serving items when both remote sources are unreachable, plus a
// history of load attempts for diagnostics.
type Cache struct {
	db *sql.DB
}

// LoadRecord is one row of the load history.
type LoadRecord struct {
	ID        int64           `json:"id"`
	Source    manifest.Source `json:"source"`
	Degraded  bool            `json:"degraded"`
	ItemCount int             `json:"itemCount"`
	LoadedAt  time.Time       `json:"loadedAt"`
}

// OpenCache opens (or creates) the snapshot cache database at dbPath. The
// parent directory must already exist and be writable.
func OpenCache(ctx context.Context, dbPath string) (*Cache, error) {
	connStr := fmt.Sprintf("%s?_journal_mode=WAL&_synchronous=NORMAL&_busy_timeout=5000", dbPath)

	db, err := sql.Open("sqlite3", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open snapshot cache: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, cacheTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			logging.Error("failed to close cache after ping failure: %v", closeErr)
		}
		return nil, fmt.Errorf("failed to connect to snapshot cache: %w", err)
	}

	c := &Cache{db: db}
	if err := c.initialize(ctx); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			logging.Error("failed to close cache after schema failure: %v", closeErr)
		}
		return nil, fmt.Errorf("failed to initialize snapshot cache schema: %w", err)
	}

	logging.Info("Snapshot cache initialized at %s", dbPath)
	return c, nil
}

func (c *Cache) initialize(ctx context.Context) error {
	schema := `
	CREATE TABLE IF NOT EXISTS items (
		position     INTEGER PRIMARY KEY,
		id           INTEGER NOT NULL,
		rid          TEXT NOT NULL DEFAULT '',
		name         TEXT NOT NULL DEFAULT '',
		display_name TEXT NOT NULL DEFAULT '',
		category     TEXT NOT NULL DEFAULT '',
		type         TEXT NOT NULL DEFAULT 'image',
		src          TEXT NOT NULL,
		original_ext TEXT NOT NULL DEFAULT '',
		folder       TEXT NOT NULL DEFAULT '',
		tags         TEXT NOT NULL DEFAULT '',
		color_name   TEXT NOT NULL DEFAULT '',
		color_hex    TEXT NOT NULL DEFAULT '',
		year         TEXT NOT NULL DEFAULT '',
		month        TEXT NOT NULL DEFAULT ''
	);
	CREATE TABLE IF NOT EXISTS loads (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		source     TEXT NOT NULL,
		degraded   INTEGER NOT NULL DEFAULT 0,
		item_count INTEGER NOT NULL DEFAULT 0,
		loaded_at  TIMESTAMP NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_loads_loaded_at ON loads(loaded_at DESC);
	`
	_, err := c.db.ExecContext(ctx, schema)
	return err
}

// Store replaces the cached items with the given snapshot and appends a load
// history row, all in one transaction.
func (c *Cache) Store(ctx context.Context, result manifest.LoadResult) error {
	start := time.Now()
	var err error
	defer func() {
		recordCacheOp("store", start, err)
	}()

	opCtx, cancel := context.WithTimeout(ctx, cacheTimeout)
	defer cancel()

	tx, err := c.db.BeginTx(opCtx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin cache transaction: %w", err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil && rbErr != sql.ErrTxDone {
				logging.Error("cache rollback failed: %v", rbErr)
			}
		}
	}()

	if _, err = tx.ExecContext(opCtx, `DELETE FROM items`); err != nil {
		return fmt.Errorf("failed to clear cached items: %w", err)
	}

	stmt, err := tx.PrepareContext(opCtx, `
		INSERT INTO items (position, id, rid, name, display_name, category, type,
			src, original_ext, folder, tags, color_name, color_hex, year, month)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare item insert: %w", err)
	}
	defer stmt.Close()

	for pos, it := range result.Items {
		if _, err = stmt.ExecContext(opCtx, pos, it.ID, it.RID, it.Name,
			it.DisplayName, it.Category, string(it.Type), it.Src, it.OriginalExt,
			it.Folder, it.Tags, it.ColorName, it.ColorHex, it.Year, it.Month); err != nil {
			return fmt.Errorf("failed to insert cached item %d: %w", pos, err)
		}
	}

	if _, err = tx.ExecContext(opCtx, `
		INSERT INTO loads (source, degraded, item_count, loaded_at)
		VALUES (?, ?, ?, ?)`,
		string(result.Source), result.Degraded, len(result.Items), result.LoadedAt); err != nil {
		return fmt.Errorf("failed to record load: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit cache transaction: %w", err)
	}
	return nil
}

// Load returns the cached items in their original order. An empty cache
// yields an empty slice, not an error.
func (c *Cache) Load(ctx context.Context) ([]manifest.Item, error) {
	start := time.Now()
	var err error
	defer func() {
		recordCacheOp("load", start, err)
	}()

	opCtx, cancel := context.WithTimeout(ctx, cacheTimeout)
	defer cancel()

	rows, err := c.db.QueryContext(opCtx, `
		SELECT id, rid, name, display_name, category, type, src, original_ext,
			folder, tags, color_name, color_hex, year, month
		FROM items ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("failed to query cached items: %w", err)
	}
	defer rows.Close()

	var items []manifest.Item
	for rows.Next() {
		var it manifest.Item
		var itemType string
		if err = rows.Scan(&it.ID, &it.RID, &it.Name, &it.DisplayName,
			&it.Category, &itemType, &it.Src, &it.OriginalExt, &it.Folder,
			&it.Tags, &it.ColorName, &it.ColorHex, &it.Year, &it.Month); err != nil {
			return nil, fmt.Errorf("failed to scan cached item: %w", err)
		}
		it.Type = manifest.ItemType(itemType)
		items = append(items, it)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read cached items: %w", err)
	}
	return items, nil
}

// History returns the most recent load attempts, newest first.
func (c *Cache) History(ctx context.Context, limit int) ([]LoadRecord, error) {
	start := time.Now()
	var err error
	defer func() {
		recordCacheOp("history", start, err)
	}()

	if limit <= 0 {
		limit = 20
	}

	opCtx, cancel := context.WithTimeout(ctx, cacheTimeout)
	defer cancel()

	rows, err := c.db.QueryContext(opCtx, `
		SELECT id, source, degraded, item_count, loaded_at
		FROM loads ORDER BY loaded_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query load history: %w", err)
	}
	defer rows.Close()

	var records []LoadRecord
	for rows.Next() {
		var rec LoadRecord
		var source string
		if err = rows.Scan(&rec.ID, &source, &rec.Degraded, &rec.ItemCount, &rec.LoadedAt); err != nil {
			return nil, fmt.Errorf("failed to scan load record: %w", err)
		}
		rec.Source = manifest.Source(source)
		records = append(records, rec)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read load history: %w", err)
	}
	return records, nil
}

// Close closes the underlying database.
func (c *Cache) Close() error {
	return c.db.Close()
}

func recordCacheOp(op string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	metrics.CacheOperationsTotal.WithLabelValues(op, status).Inc()
	metrics.CacheQueryDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
}
