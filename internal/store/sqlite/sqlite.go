package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// DB is the SQLite store of scraped posts, audio tracks, snapshots and search history.
type DB struct {
	sql   *sql.DB
	nowFn func() time.Time
}

// Open opens (creating if needed) the database at path and applies the schema.
func Open(path string) (*DB, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, err
		}
	}
	d, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// one connection: a second one would see a different :memory: database
	d.SetMaxOpenConns(1)
	if _, err := d.Exec(`PRAGMA journal_mode=WAL; PRAGMA synchronous=NORMAL;`); err != nil {
		_ = d.Close()
		return nil, err
	}
	db := &DB{sql: d, nowFn: time.Now}
	if err := db.migrate(); err != nil {
		_ = d.Close()
		return nil, fmt.Errorf("migrate %s: %w", path, err)
	}
	return db, nil
}

func (d *DB) Close() error { return d.sql.Close() }

func (d *DB) migrate() error {
	_, err := d.sql.Exec(`
	CREATE TABLE IF NOT EXISTS tiktok_posts (
	  id INTEGER PRIMARY KEY AUTOINCREMENT,
	  video_id TEXT UNIQUE NOT NULL,
	  author_username TEXT,
	  author_followers INTEGER DEFAULT 0,
	  author_verified INTEGER DEFAULT 0,
	  caption TEXT,
	  video_url TEXT,
	  download_url TEXT,
	  cover_url TEXT,
	  audio_id TEXT,
	  audio_title TEXT,
	  audio_author TEXT,
	  likes INTEGER DEFAULT 0,
	  comments INTEGER DEFAULT 0,
	  shares INTEGER DEFAULT 0,
	  views INTEGER DEFAULT 0,
	  engagement_rate REAL,
	  created_at INTEGER,
	  discovered_at INTEGER NOT NULL,
	  search_keyword TEXT,
	  last_updated INTEGER NOT NULL
	);
	CREATE TABLE IF NOT EXISTS instagram_posts (
	  id INTEGER PRIMARY KEY AUTOINCREMENT,
	  shortcode TEXT UNIQUE NOT NULL,
	  owner_username TEXT,
	  caption TEXT,
	  post_url TEXT,
	  video_url TEXT,
	  thumbnail_url TEXT,
	  audio_id TEXT,
	  audio_name TEXT,
	  audio_artist TEXT,
	  likes INTEGER DEFAULT 0,
	  comments INTEGER DEFAULT 0,
	  views INTEGER DEFAULT 0,
	  engagement_rate REAL,
	  created_at INTEGER,
	  discovered_at INTEGER NOT NULL,
	  search_keyword TEXT,
	  last_updated INTEGER NOT NULL
	);
	CREATE TABLE IF NOT EXISTS audio_tracks (
	  id INTEGER PRIMARY KEY AUTOINCREMENT,
	  audio_id TEXT UNIQUE NOT NULL,
	  title TEXT,
	  artist TEXT,
	  platform TEXT,
	  usage_count INTEGER DEFAULT 0,
	  avg_engagement REAL,
	  is_trending INTEGER DEFAULT 0,
	  last_checked INTEGER NOT NULL
	);
	CREATE TABLE IF NOT EXISTS snapshots (
	  id INTEGER PRIMARY KEY AUTOINCREMENT,
	  platform TEXT,
	  video_id TEXT,
	  likes INTEGER,
	  comments INTEGER,
	  views INTEGER,
	  shares INTEGER,
	  snapshot_at INTEGER NOT NULL
	);
	CREATE TABLE IF NOT EXISTS search_history (
	  id INTEGER PRIMARY KEY AUTOINCREMENT,
	  run_id TEXT,
	  keyword TEXT NOT NULL,
	  result_count INTEGER,
	  searched_at INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_tiktok_created_at ON tiktok_posts(created_at);
	CREATE INDEX IF NOT EXISTS idx_instagram_created_at ON instagram_posts(created_at);
	CREATE INDEX IF NOT EXISTS idx_tiktok_keyword ON tiktok_posts(search_keyword);
	CREATE INDEX IF NOT EXISTS idx_instagram_keyword ON instagram_posts(search_keyword);
	CREATE INDEX IF NOT EXISTS idx_audio_trending ON audio_tracks(is_trending, usage_count);
	CREATE INDEX IF NOT EXISTS idx_snapshots_video ON snapshots(platform, video_id, snapshot_at);
	CREATE INDEX IF NOT EXISTS idx_search_history_at ON search_history(searched_at);
	`)
	return err
}

// unixOrNull stores the zero time as NULL.
func unixOrNull(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t.Unix()
}

func timeFromNull(v sql.NullInt64) time.Time {
	if !v.Valid {
		return time.Time{}
	}
	return time.Unix(v.Int64, 0).UTC()
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
