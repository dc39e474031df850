package transcript

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/h2non/filetype"

	"trendscout/internal/config"
	"trendscout/internal/llm"
	"trendscout/internal/logging"
)

var (
	// ErrNoDownloadURL is returned when neither a media URL nor a page URL is known.
	ErrNoDownloadURL = errors.New("transcript: no URL to download the video from")
	// ErrNotMedia means the downloaded body is not audio or video, typically a bot-check page.
	ErrNotMedia = errors.New("transcript: downloaded file is not audio or video")
)

const defaultMaxBytes = 200 << 20

// Transcriber turns a local media file into text.
type Transcriber interface {
	Transcribe(ctx context.Context, path, mimeType string) (string, error)
	Name() string
}

// Extractor downloads a video and hands it to a Transcriber.
type Extractor struct {
	httpClient  *http.Client
	transcriber Transcriber
	maxBytes    int64
}

func NewExtractor(t Transcriber) *Extractor {
	return &Extractor{
		httpClient:  &http.Client{Timeout: 60 * time.Second},
		transcriber: t,
		maxBytes:    defaultMaxBytes,
	}
}

// NewFromConfig prefers Gemini and falls back to Whisper. Neither key set is a configuration error.
func NewFromConfig(ctx context.Context, cfg config.LLMConfig) (*Extractor, error) {
	switch {
	case cfg.GeminiAPIKey != "":
		t, err := NewGemini(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			return nil, err
		}
		return NewExtractor(t), nil
	case cfg.OpenAIAPIKey != "":
		return NewExtractor(NewWhisper(cfg.OpenAIAPIKey, "")), nil
	}
	return nil, fmt.Errorf("%w: transcript extraction requires GEMINI_API_KEY (free tier) or OPENAI_API_KEY in .env", config.ErrMissingCredential)
}

// Extract returns the spoken text of a video. The direct media URL is preferred; without it the
// page URL is fetched as is, which usually ends in ErrNotMedia when TikTok serves a bot check.
func (e *Extractor) Extract(ctx context.Context, videoURL, downloadURL string) (string, error) {
	if e.transcriber == nil {
		return "", llm.ErrNoProvider
	}
	src := downloadURL
	if src == "" {
		src = videoURL
	}
	if src == "" {
		return "", ErrNoDownloadURL
	}
	dir, err := os.MkdirTemp("", "trendscout-video-")
	if err != nil {
		return "", err
	}
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "video")
	n, err := e.download(ctx, src, path)
	if err != nil {
		return "", err
	}
	mime, err := sniff(path)
	if err != nil {
		return "", err
	}
	logging.Info("transcript_downloaded", map[string]any{"video_url": videoURL, "bytes": n, "mime": mime, "transcriber": e.transcriber.Name()})
	text, err := e.transcriber.Transcribe(ctx, path, mime)
	if err != nil {
		return "", fmt.Errorf("transcribe with %s: %w", e.transcriber.Name(), err)
	}
	return strings.TrimSpace(text), nil
}

func (e *Extractor) download(ctx context.Context, url, path string) (int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")
	req.Header.Set("Referer", "https://www.tiktok.com/")
	resp, err := e.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("download video: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return 0, fmt.Errorf("download video: status %d", resp.StatusCode)
	}
	f, err := os.Create(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()
	n, err := io.Copy(f, io.LimitReader(resp.Body, e.maxBytes+1))
	if err != nil {
		return n, fmt.Errorf("download video: %w", err)
	}
	if n > e.maxBytes {
		return n, fmt.Errorf("download video: larger than %d bytes", e.maxBytes)
	}
	return n, nil
}

// sniff returns the MIME type of an audio or video file.
func sniff(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	head := make([]byte, 261)
	n, _ := io.ReadFull(f, head)
	head = head[:n]
	if !filetype.IsVideo(head) && !filetype.IsAudio(head) {
		return "", ErrNotMedia
	}
	kind, err := filetype.Match(head)
	if err != nil || kind == filetype.Unknown {
		return "", ErrNotMedia
	}
	return kind.MIME.Value, nil
}
