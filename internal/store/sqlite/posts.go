package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"trendscout/internal/model"
)

const tiktokColumns = `video_id, author_username, author_followers, author_verified, caption, video_url, download_url, cover_url,
	  audio_id, audio_title, audio_author, likes, comments, shares, views, engagement_rate, created_at, search_keyword`

// UpsertTikTokPost inserts v or replaces the stored row with the same video id. discovered_at survives updates.
func (d *DB) UpsertTikTokPost(ctx context.Context, v model.VideoRecord) error {
	now := d.nowFn().Unix()
	_, err := d.sql.ExecContext(ctx, `INSERT INTO tiktok_posts(`+tiktokColumns+`, discovered_at, last_updated)
	VALUES(?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)
	ON CONFLICT(video_id) DO UPDATE SET
	  author_username=excluded.author_username, author_followers=excluded.author_followers,
	  author_verified=excluded.author_verified, caption=excluded.caption, video_url=excluded.video_url,
	  download_url=excluded.download_url, cover_url=excluded.cover_url, audio_id=excluded.audio_id,
	  audio_title=excluded.audio_title, audio_author=excluded.audio_author, likes=excluded.likes,
	  comments=excluded.comments, shares=excluded.shares, views=excluded.views,
	  engagement_rate=excluded.engagement_rate, created_at=excluded.created_at,
	  search_keyword=excluded.search_keyword, last_updated=excluded.last_updated`,
		v.VideoID, v.AuthorUsername, v.AuthorFollowers, boolInt(v.AuthorVerified), v.Caption, v.VideoURL, v.DownloadURL, v.CoverURL,
		v.AudioID, v.AudioTitle, v.AudioAuthor, v.Likes, v.Comments, v.Shares, v.Views, v.EngagementRate,
		unixOrNull(v.CreatedAt), v.SearchKeyword, now, now)
	if err != nil {
		return fmt.Errorf("upsert tiktok post %s: %w", v.VideoID, err)
	}
	return nil
}

// TikTokPosts returns posts created within daysAgo days, newest first. An empty keyword matches all.
func (d *DB) TikTokPosts(ctx context.Context, keyword string, daysAgo, limit int) ([]model.VideoRecord, error) {
	cutoff := d.nowFn().AddDate(0, 0, -daysAgo).Unix()
	q := `SELECT ` + tiktokColumns + ` FROM tiktok_posts WHERE created_at >= ?`
	args := []any{cutoff}
	if keyword != "" {
		q += ` AND search_keyword = ?`
		args = append(args, keyword)
	}
	q += ` ORDER BY created_at DESC LIMIT ?`
	args = append(args, limit)
	rows, err := d.sql.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.VideoRecord
	for rows.Next() {
		var v model.VideoRecord
		var verified int
		var created sql.NullInt64
		var author, caption, videoURL, downloadURL, coverURL, audioID, audioTitle, audioAuthor, kw sql.NullString
		if err := rows.Scan(&v.VideoID, &author, &v.AuthorFollowers, &verified, &caption, &videoURL, &downloadURL, &coverURL,
			&audioID, &audioTitle, &audioAuthor, &v.Likes, &v.Comments, &v.Shares, &v.Views, &v.EngagementRate, &created, &kw); err != nil {
			return nil, err
		}
		v.AuthorUsername, v.Caption, v.VideoURL, v.DownloadURL = author.String, caption.String, videoURL.String, downloadURL.String
		v.CoverURL, v.AudioID, v.AudioTitle, v.AudioAuthor = coverURL.String, audioID.String, audioTitle.String, audioAuthor.String
		v.AuthorVerified = verified != 0
		v.CreatedAt = timeFromNull(created)
		v.SearchKeyword = kw.String
		out = append(out, v)
	}
	return out, rows.Err()
}

const instagramColumns = `shortcode, owner_username, caption, post_url, video_url, thumbnail_url, audio_id, audio_name, audio_artist,
	  likes, comments, views, engagement_rate, created_at, search_keyword`

// UpsertInstagramPost inserts p or replaces the stored row with the same shortcode.
func (d *DB) UpsertInstagramPost(ctx context.Context, p model.InstagramPost) error {
	now := d.nowFn().Unix()
	_, err := d.sql.ExecContext(ctx, `INSERT INTO instagram_posts(`+instagramColumns+`, discovered_at, last_updated)
	VALUES(?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)
	ON CONFLICT(shortcode) DO UPDATE SET
	  owner_username=excluded.owner_username, caption=excluded.caption, post_url=excluded.post_url,
	  video_url=excluded.video_url, thumbnail_url=excluded.thumbnail_url, audio_id=excluded.audio_id,
	  audio_name=excluded.audio_name, audio_artist=excluded.audio_artist, likes=excluded.likes,
	  comments=excluded.comments, views=excluded.views, engagement_rate=excluded.engagement_rate,
	  created_at=excluded.created_at, search_keyword=excluded.search_keyword, last_updated=excluded.last_updated`,
		p.Shortcode, p.OwnerUsername, p.Caption, p.PostURL, p.VideoURL, p.ThumbnailURL, p.AudioID, p.AudioName, p.AudioArtist,
		p.Likes, p.Comments, p.Views, p.EngagementRate, unixOrNull(p.CreatedAt), p.SearchKeyword, now, now)
	if err != nil {
		return fmt.Errorf("upsert instagram post %s: %w", p.Shortcode, err)
	}
	return nil
}

// InstagramPosts mirrors TikTokPosts for Instagram.
func (d *DB) InstagramPosts(ctx context.Context, keyword string, daysAgo, limit int) ([]model.InstagramPost, error) {
	cutoff := d.nowFn().AddDate(0, 0, -daysAgo).Unix()
	q := `SELECT ` + instagramColumns + ` FROM instagram_posts WHERE created_at >= ?`
	args := []any{cutoff}
	if keyword != "" {
		q += ` AND search_keyword = ?`
		args = append(args, keyword)
	}
	q += ` ORDER BY created_at DESC LIMIT ?`
	args = append(args, limit)
	rows, err := d.sql.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.InstagramPost
	for rows.Next() {
		var p model.InstagramPost
		var created sql.NullInt64
		var owner, caption, postURL, videoURL, thumb, audioID, audioName, audioArtist, kw sql.NullString
		if err := rows.Scan(&p.Shortcode, &owner, &caption, &postURL, &videoURL, &thumb, &audioID, &audioName, &audioArtist,
			&p.Likes, &p.Comments, &p.Views, &p.EngagementRate, &created, &kw); err != nil {
			return nil, err
		}
		p.OwnerUsername, p.Caption, p.PostURL, p.VideoURL = owner.String, caption.String, postURL.String, videoURL.String
		p.ThumbnailURL, p.AudioID, p.AudioName, p.AudioArtist = thumb.String, audioID.String, audioName.String, audioArtist.String
		p.CreatedAt = timeFromNull(created)
		p.SearchKeyword = kw.String
		out = append(out, p)
	}
	return out, rows.Err()
}
