package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"trendscout/internal/model"
)

// UpsertAudioTrack inserts t or replaces the row with the same audio id.
func (d *DB) UpsertAudioTrack(ctx context.Context, t model.AudioTrack) error {
	_, err := d.sql.ExecContext(ctx, `INSERT INTO audio_tracks(audio_id, title, artist, platform, usage_count, avg_engagement, is_trending, last_checked)
	VALUES(?,?,?,?,?,?,?,?)
	ON CONFLICT(audio_id) DO UPDATE SET
	  title=excluded.title, artist=excluded.artist, platform=excluded.platform, usage_count=excluded.usage_count,
	  avg_engagement=excluded.avg_engagement, is_trending=excluded.is_trending, last_checked=excluded.last_checked`,
		t.AudioID, t.Title, t.Artist, t.Platform, t.UsageCount, t.AvgEngagement, boolInt(t.IsTrending), d.nowFn().Unix())
	if err != nil {
		return fmt.Errorf("upsert audio track %s: %w", t.AudioID, err)
	}
	return nil
}

// TopAudioTracks returns the most used tracks of platform (all platforms when empty).
func (d *DB) TopAudioTracks(ctx context.Context, platform string, limit int) ([]model.AudioTrack, error) {
	q := `SELECT audio_id, title, artist, platform, usage_count, avg_engagement, is_trending FROM audio_tracks`
	var args []any
	if platform != "" {
		q += ` WHERE platform = ?`
		args = append(args, platform)
	}
	q += ` ORDER BY usage_count DESC, avg_engagement DESC LIMIT ?`
	args = append(args, limit)
	rows, err := d.sql.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.AudioTrack
	for rows.Next() {
		var t model.AudioTrack
		var title, artist, plat sql.NullString
		var trending int
		if err := rows.Scan(&t.AudioID, &title, &artist, &plat, &t.UsageCount, &t.AvgEngagement, &trending); err != nil {
			return nil, err
		}
		t.Title, t.Artist, t.Platform = title.String, artist.String, plat.String
		t.IsTrending = trending != 0
		out = append(out, t)
	}
	return out, rows.Err()
}

// PutSnapshot records the counters of a video at s.At (now when zero).
func (d *DB) PutSnapshot(ctx context.Context, s model.Snapshot) error {
	at := s.At
	if at.IsZero() {
		at = d.nowFn()
	}
	_, err := d.sql.ExecContext(ctx, `INSERT INTO snapshots(platform, video_id, likes, comments, views, shares, snapshot_at) VALUES(?,?,?,?,?,?,?)`,
		s.Platform, s.VideoID, s.Likes, s.Comments, s.Views, s.Shares, at.Unix())
	return err
}

// Snapshots returns the history of one video, oldest first.
func (d *DB) Snapshots(ctx context.Context, platform, videoID string) ([]model.Snapshot, error) {
	rows, err := d.sql.QueryContext(ctx, `SELECT likes, comments, views, shares, snapshot_at FROM snapshots
	WHERE platform=? AND video_id=? ORDER BY snapshot_at, id`, platform, videoID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.Snapshot
	for rows.Next() {
		s := model.Snapshot{Platform: platform, VideoID: videoID}
		var at int64
		if err := rows.Scan(&s.Likes, &s.Comments, &s.Views, &s.Shares, &at); err != nil {
			return nil, err
		}
		s.At = time.Unix(at, 0).UTC()
		out = append(out, s)
	}
	return out, rows.Err()
}

// SearchRecord is one row of search history.
type SearchRecord struct {
	RunID       string
	Keyword     string
	ResultCount int
	SearchedAt  time.Time
}

// PutSearchHistory records a completed keyword search.
func (d *DB) PutSearchHistory(ctx context.Context, r SearchRecord) error {
	at := r.SearchedAt
	if at.IsZero() {
		at = d.nowFn()
	}
	_, err := d.sql.ExecContext(ctx, `INSERT INTO search_history(run_id, keyword, result_count, searched_at) VALUES(?,?,?,?)`,
		r.RunID, r.Keyword, r.ResultCount, at.Unix())
	return err
}

// CountSearchesWithin counts searches in [start, end).
func (d *DB) CountSearchesWithin(ctx context.Context, start, end time.Time) (int, error) {
	row := d.sql.QueryRowContext(ctx, `SELECT COUNT(1) FROM search_history WHERE searched_at>=? AND searched_at<?`, start.Unix(), end.Unix())
	var n int
	if err := row.Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// RecentSearches returns the latest searches, newest first.
func (d *DB) RecentSearches(ctx context.Context, limit int) ([]SearchRecord, error) {
	rows, err := d.sql.QueryContext(ctx, `SELECT COALESCE(run_id, ''), keyword, COALESCE(result_count, 0), searched_at
	FROM search_history ORDER BY searched_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []SearchRecord
	for rows.Next() {
		var r SearchRecord
		var at int64
		if err := rows.Scan(&r.RunID, &r.Keyword, &r.ResultCount, &at); err != nil {
			return nil, err
		}
		r.SearchedAt = time.Unix(at, 0).UTC()
		out = append(out, r)
	}
	return out, rows.Err()
}
