package scraper

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"trendscout/internal/config"
	"trendscout/internal/metrics"
)

// ApifyClient runs Apify actors synchronously and returns their dataset items.
type ApifyClient struct {
	baseURL     string
	token       string
	httpClient  *http.Client
	limiter     *rate.Limiter
	maxAttempts int
	baseBackoff time.Duration
}

func NewApifyClient(cfg config.ApifyConfig) *ApifyClient {
	base := cfg.BaseURL
	if base == "" {
		base = config.Default().Apify.BaseURL
	}
	attempts := cfg.MaxAttempts
	if attempts <= 0 {
		attempts = 1
	}
	return &ApifyClient{
		baseURL: strings.TrimRight(base, "/"),
		token:   cfg.Token,
		// actor runs routinely take 30-60s
		httpClient:  &http.Client{Timeout: 5 * time.Minute},
		limiter:     newLimiter(cfg.RPS, cfg.Burst),
		maxAttempts: attempts,
		baseBackoff: time.Duration(cfg.BaseBackoffMS) * time.Millisecond,
	}
}

// Configured reports whether an API token is present.
func (c *ApifyClient) Configured() bool { return c != nil && c.token != "" }

// RunActor starts actorID with input, waits for it to finish and returns the raw dataset items.
func (c *ApifyClient) RunActor(ctx context.Context, actorID string, input any) ([]json.RawMessage, error) {
	body, err := json.Marshal(input)
	if err != nil {
		return nil, fmt.Errorf("encode actor input: %w", err)
	}
	endpoint := fmt.Sprintf("/acts/%s/run-sync-get-dataset-items", strings.ReplaceAll(actorID, "/", "~"))
	u := c.baseURL + endpoint + "?token=" + url.QueryEscape(c.token)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	resp, err := c.doWithRetry(ctx, req, actorID)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("apify actor %s: status %d: %s", actorID, resp.StatusCode, strings.TrimSpace(string(msg)))
	}
	var items []json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&items); err != nil {
		return nil, fmt.Errorf("decode dataset of %s: %w", actorID, err)
	}
	return items, nil
}

func (c *ApifyClient) doWithRetry(ctx context.Context, req *http.Request, endpoint string) (*http.Response, error) {
	backoff := c.baseBackoff
	var lastErr error
	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		if attempt > 1 {
			metrics.IncAPIRetry(endpoint)
		}
		r := req.Clone(ctx)
		if req.GetBody != nil {
			b, err := req.GetBody()
			if err != nil {
				return nil, err
			}
			r.Body = b
		}
		resp, err := c.httpClient.Do(r)
		if err == nil {
			if resp.StatusCode == http.StatusTooManyRequests || (resp.StatusCode >= 500 && resp.StatusCode <= 599) {
				if attempt == c.maxAttempts {
					return resp, nil
				}
				ra := resp.Header.Get("Retry-After")
				_ = resp.Body.Close()
				wait := backoff
				if ra != "" {
					if secs, err := strconv.Atoi(ra); err == nil {
						wait = time.Duration(secs) * time.Second
					} else if t, err := http.ParseTime(ra); err == nil {
						if d := time.Until(t); d > 0 {
							wait = d
						}
					}
				}
				// jitter +/-20%
				jitter := time.Duration(float64(wait) * 0.2)
				if jitter > 0 {
					wait = wait - jitter + time.Duration(time.Now().UnixNano()%int64(2*jitter))
				}
				select {
				case <-time.After(wait):
				case <-ctx.Done():
					return nil, ctx.Err()
				}
				backoff *= 2
				continue
			}
			return resp, nil
		}
		lastErr = err
		if attempt == c.maxAttempts {
			break
		}
		select {
		case <-time.After(backoff):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
		backoff *= 2
	}
	return nil, fmt.Errorf("request failed after %d attempts: %w", c.maxAttempts, lastErr)
}

// newLimiter falls back to 1 rps, burst 4 when the config leaves them unset.
func newLimiter(rps float64, burst int) *rate.Limiter {
	if rps <= 0 {
		rps = 1
	}
	if burst <= 0 {
		burst = 4
	}
	return rate.NewLimiter(rate.Limit(rps), burst)
}
