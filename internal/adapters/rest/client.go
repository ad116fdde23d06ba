package rest

import (
	"bytes"
	"context"
	crand "crypto/rand"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"hostel_manager/internal/adapters/observability"
	"hostel_manager/internal/domain"
)

const maxAttempts = 4

// Client talks to one entity endpoint of the backend (e.g. base + /users)
// and implements domain.Transport. HTTP statuses — success or not — pass
// through in the Result; only network-level failures surface as errors.
// Calls are rate limited client-side and retried on 429 and transient 5xx.
type Client struct {
	base string
	path string
	hc   *http.Client
	rl   *rate.Limiter
}

func New(base, path string, rps int) *Client {
	if rps <= 0 {
		rps = 5
	}
	return &Client{
		base: strings.TrimRight(base, "/"),
		path: "/" + strings.Trim(path, "/"),
		hc:   &http.Client{Timeout: 20 * time.Second},
		rl:   rate.NewLimiter(rate.Limit(rps), rps),
	}
}

func (c *Client) GetAll(ctx context.Context) (domain.Result, error) {
	return c.do(ctx, http.MethodGet, c.url(""), nil)
}

func (c *Client) GetByID(ctx context.Context, id string) (domain.Result, error) {
	return c.do(ctx, http.MethodGet, c.url(id), nil)
}

func (c *Client) Create(ctx context.Context, record map[string]any) (domain.Result, error) {
	return c.do(ctx, http.MethodPost, c.url(""), record)
}

func (c *Client) Update(ctx context.Context, id string, record map[string]any) (domain.Result, error) {
	return c.do(ctx, http.MethodPut, c.url(id), record)
}

func (c *Client) Delete(ctx context.Context, id string) (domain.Result, error) {
	return c.do(ctx, http.MethodDelete, c.url(id), nil)
}

func (c *Client) url(id string) string {
	if id == "" {
		return c.base + c.path
	}
	return c.base + c.path + "/" + id
}

func (c *Client) do(ctx context.Context, method, url string, body map[string]any) (domain.Result, error) {
	if err := c.rl.Wait(ctx); err != nil {
		return domain.Result{}, err
	}

	var payload []byte
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return domain.Result{}, fmt.Errorf("encode record: %w", err)
		}
		payload = b
	}

	start := time.Now()
	var lastErr error
	for i := 0; i < maxAttempts; i++ {
		req, err := http.NewRequestWithContext(ctx, method, url, bytes.NewReader(payload))
		if err != nil {
			return domain.Result{}, err
		}
		req.Header.Set("Accept", "application/json")
		req.Header.Set("User-Agent", "hostel-manager/1.0")
		if payload != nil {
			req.Header.Set("Content-Type", "application/json")
		}

		resp, err := c.hc.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return domain.Result{}, ctx.Err()
			}
			lastErr = err
			if i < maxAttempts-1 && sleepCtx(ctx, backoff(i)) {
				continue
			}
			return domain.Result{}, lastErr
		}

		switch resp.StatusCode {
		case http.StatusTooManyRequests, http.StatusInternalServerError,
			http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
			wait := retryAfter(resp)
			io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
			if wait == 0 {
				wait = backoff(i)
			}
			lastErr = fmt.Errorf("remote %d", resp.StatusCode)
			if i < maxAttempts-1 && sleepCtx(ctx, wait) {
				continue
			}
			if ctx.Err() != nil {
				return domain.Result{}, ctx.Err()
			}
			// Out of retries: hand the status back as a plain result so the
			// collection records it the same way as any other failure.
			observability.ObserveExternal(c.path, method, resp.StatusCode, time.Since(start))
			return domain.Result{Status: resp.StatusCode, Reason: http.StatusText(resp.StatusCode)}, nil

		default:
			data, err := io.ReadAll(io.LimitReader(resp.Body, 8<<20))
			resp.Body.Close()
			if err != nil {
				return domain.Result{}, fmt.Errorf("read body: %w", err)
			}
			observability.ObserveExternal(c.path, method, resp.StatusCode, time.Since(start))
			return domain.Result{
				Status: resp.StatusCode,
				Reason: http.StatusText(resp.StatusCode),
				Data:   data,
			}, nil
		}
	}

	return domain.Result{}, lastErr
}

// sleepCtx waits for d or returns early if ctx is done.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

// retryAfter parses the Retry-After header, seconds or HTTP-date form.
func retryAfter(resp *http.Response) time.Duration {
	h := resp.Header.Get("Retry-After")
	if h == "" {
		return 0
	}
	if secs, err := strconv.Atoi(strings.TrimSpace(h)); err == nil && secs >= 0 {
		return time.Duration(secs) * time.Second
	}
	if t, err := http.ParseTime(h); err == nil {
		if d := time.Until(t); d > 0 {
			return d
		}
	}
	return 0
}

// backoff doubles per attempt (200ms, 400ms, 800ms...) with up to +50%
// jitter to keep concurrent fetches from retrying in lockstep.
func backoff(i int) time.Duration {
	base := time.Duration(1<<i) * 200 * time.Millisecond
	var b [1]byte
	if _, err := crand.Read(b[:]); err != nil {
		return base
	}
	f := float64(b[0]) / 255.0
	return base + time.Duration(0.5*f*float64(base))
}
