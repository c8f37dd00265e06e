package gemini

import (
	"bytes"
	"context"
	crand "crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/chakronwork/SmartStay/internal/adapters/observability"
)

// Client talks to the Generative Language REST API. One text prompt in,
// one generated text out; no streaming.
type Client struct {
	base  string
	model string
	hc    *http.Client
	key   string
	rl    *rate.Limiter
}

var (
	ErrMissingKey   = errors.New("gemini: API key is required")
	ErrUnauthorized = errors.New("gemini: unauthorized")
	ErrEmptyReply   = errors.New("gemini: no candidates in response")
)

func New(base, key, model string, rps int) (*Client, error) {
	if key == "" {
		return nil, ErrMissingKey
	}
	if model == "" {
		model = "gemini-flash-lite-latest"
	}
	if rps <= 0 {
		rps = 2
	}
	return &Client{
		base:  strings.TrimRight(base, "/"),
		model: model,
		hc:    &http.Client{Timeout: 30 * time.Second},
		key:   key,
		rl:    rate.NewLimiter(rate.Limit(rps), rps),
	}, nil
}

// ---- wire types (request/response subset we actually use) ----

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

// Generate sends prompt as a single-turn generateContent call and
// returns the first candidate's text.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.base, c.model, c.key)
	body := generateRequest{Contents: []content{{Role: "user", Parts: []part{{Text: prompt}}}}}

	var out generateResponse
	if err := c.post(ctx, url, body, &out); err != nil {
		return "", err
	}
	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		return "", ErrEmptyReply
	}
	var sb strings.Builder
	for _, p := range out.Candidates[0].Content.Parts {
		sb.WriteString(p.Text)
	}
	reply := strings.TrimSpace(sb.String())
	if reply == "" {
		return "", ErrEmptyReply
	}
	return reply, nil
}

// post performs a POST with client-side rate limiting, retries, and JSON
// decode into out. Retries on 429 and transient 5xx, honoring Retry-After.
func (c *Client) post(ctx context.Context, url string, in, out any) error {
	if err := c.rl.Wait(ctx); err != nil {
		return err
	}

	payload, err := json.Marshal(in)
	if err != nil {
		return err
	}

	var lastErr error
	for i := 0; i < 4; i++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
		if err != nil {
			return err
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Accept", "application/json")
		req.Header.Set("User-Agent", "smartstay/1.0")

		start := time.Now()
		resp, err := c.hc.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			lastErr = err
			if i < 3 && sleepCtx(ctx, backoff(i)) {
				continue
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return lastErr
		}
		observability.ObserveExternal("gemini", "generateContent", resp.StatusCode, time.Since(start))

		switch resp.StatusCode {
		case http.StatusOK:
			err := json.NewDecoder(resp.Body).Decode(out)
			resp.Body.Close()
			return err

		case http.StatusUnauthorized, http.StatusForbidden:
			resp.Body.Close()
			return ErrUnauthorized

		case http.StatusTooManyRequests, http.StatusInternalServerError,
			http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
			wait := retryAfter(resp)
			resp.Body.Close()
			if wait == 0 {
				wait = backoff(i)
			}
			lastErr = fmt.Errorf("gemini: remote %d", resp.StatusCode)
			if i < 3 && sleepCtx(ctx, wait) {
				continue
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return lastErr

		default:
			// read a small error body for diagnostics
			b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
			resp.Body.Close()
			return fmt.Errorf("gemini: bad status %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
		}
	}

	return lastErr
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

// retryAfter parses Retry-After header (seconds or HTTP-date). Returns 0 if absent/invalid.
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

// backoff returns an exponential backoff delay with concurrency-safe jitter.
// i = retry attempt (0,1,2,...). Base doubles each attempt (200ms, 400ms, 800ms...),
// with up to +50% random jitter to avoid thundering herds.
func backoff(i int) time.Duration {
	base := time.Duration(1<<i) * 200 * time.Millisecond
	var b [1]byte
	if _, err := crand.Read(b[:]); err != nil {
		return base
	}
	f := float64(b[0]) / 255.0
	j := time.Duration(0.5 * f * float64(base))
	return base + j
}
