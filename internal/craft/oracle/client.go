package oracle

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/time/rate"
)

// Result is a single combine answer from the oracle, or a value
// short-circuited locally without a network call.
type Result struct {
	Result string
	Emoji  string
	IsNew  bool
}

// nothingResult is what a word-limit or HTTP-500 short-circuit returns.
var nothingResult = Result{Result: "Nothing"}

// wireRequest is a ["a","b"] entry in a combine request body.
type wireRequest [2]string

type wireResponse struct {
	Result string `json:"result"`
	Emoji  string `json:"emoji"`
	IsNew  bool   `json:"isNew"`
}

// Client is a rate-limited, retrying HTTP client for the remote combination
// service, matching the oracle's exact wire format and failure discipline.
// All network calls are serialized through a single rate.Limiter so
// REQUEST_COOLDOWN is enforced globally even when callers issue concurrent
// batches (see spec.md §4.3's "single-owner mutex" note).
type Client struct {
	cfg        Config
	httpClient *http.Client
	limiter    *rate.Limiter
	headers    map[string]string
	logger     *slog.Logger

	sidecarPath string
	sidecarMu   sync.Mutex

	sleepMu sync.Mutex
	sleep   time.Duration

	cache *lru.Cache[string, Result]
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default http.Client (mainly for tests).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithHeaders sets custom request headers, as loaded from config.json's
// "api" key.
func WithHeaders(headers map[string]string) Option {
	return func(c *Client) { c.headers = headers }
}

// WithSidecarPath overrides where HTTP-500 pairs are logged (default
// "500s.txt" in the working directory).
func WithSidecarPath(path string) Option {
	return func(c *Client) { c.sidecarPath = path }
}

// WithCacheSize overrides the pair->result LRU cache capacity.
func WithCacheSize(size int) Option {
	return func(c *Client) {
		cache, err := lru.New[string, Result](size)
		if err == nil {
			c.cache = cache
		}
	}
}

// NewClient builds an oracle Client from cfg.
func NewClient(cfg Config, logger *slog.Logger, opts ...Option) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	cache, _ := lru.New[string, Result](4096)

	c := &Client{
		cfg:         cfg,
		httpClient:  &http.Client{Timeout: 30 * time.Second},
		limiter:     rate.NewLimiter(rate.Every(cfg.RequestCooldown), 1),
		logger:      logger,
		sidecarPath: "500s.txt",
		sleep:       sleepDefault,
		cache:       cache,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func cacheKey(a, b string) string {
	if a > b {
		a, b = b, a
	}
	return a + "\x00" + b
}

// cacheable reports whether a result may be served from or stored in the
// pair cache. "Nothing" is excluded: the handler's re-verification protocol
// (spec.md §4.4 step 5) relies on every RequestSingle call for a pair that
// previously answered "Nothing" reaching the network again, not a cached
// answer from the first attempt.
func cacheable(r Result) bool {
	return r.Result != "Nothing"
}

// RequestSingle resolves one pair via the network, honoring the word-length
// short-circuit, rate limiting, and indefinite exponential-backoff retry on
// retryable failures. HTTP 500 for this specific pair is treated as a
// terminal "Nothing" and logged to the 500s sidecar rather than retried.
func (c *Client) RequestSingle(ctx context.Context, a, b string) (Result, error) {
	if len(a) > WordCombineCharLimit || len(b) > WordCombineCharLimit {
		return nothingResult, nil
	}

	key := cacheKey(a, b)
	if cached, ok := c.cache.Get(key); ok && cacheable(cached) {
		return cached, nil
	}

	for {
		if err := c.limiter.Wait(ctx); err != nil {
			return Result{}, fmt.Errorf("oracle: rate limiter: %w", err)
		}

		result, status, err := c.doRequest(ctx, []wireRequest{{a, b}})
		if err == nil {
			c.resetSleep()
			if cacheable(result[0]) {
				c.cache.Add(key, result[0])
			}
			return result[0], nil
		}

		if status == http.StatusInternalServerError {
			c.logSidecar(a, b)
			return nothingResult, nil
		}

		c.logger.Warn("oracle request failed, retrying", "a", a, "b", b, "error", err)
		if waitErr := c.backoff(ctx); waitErr != nil {
			return Result{}, waitErr
		}
	}
}

// RequestBatch resolves pairs in chunks of at most cfg.BatchLimit. Failures
// within a batch follow the same retry/500 discipline as RequestSingle,
// except the word-length short-circuit is applied per-pair before the
// network call is made.
func (c *Client) RequestBatch(ctx context.Context, pairs [][2]string) ([]Result, error) {
	results := make([]Result, len(pairs))
	pending := make([]int, 0, len(pairs))
	var req []wireRequest

	for i, p := range pairs {
		if len(p[0]) > WordCombineCharLimit || len(p[1]) > WordCombineCharLimit {
			results[i] = nothingResult
			continue
		}
		if cached, ok := c.cache.Get(cacheKey(p[0], p[1])); ok && cacheable(cached) {
			results[i] = cached
			continue
		}
		pending = append(pending, i)
		req = append(req, wireRequest{p[0], p[1]})
	}

	limit := c.cfg.BatchLimit
	if limit <= 0 {
		limit = 50
	}

	for start := 0; start < len(req); start += limit {
		end := start + limit
		if end > len(req) {
			end = len(req)
		}
		chunk := req[start:end]
		chunkIdx := pending[start:end]

		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("oracle: rate limiter: %w", err)
		}

		var chunkResults []Result
		for {
			var status int
			var err error
			chunkResults, status, err = c.doRequest(ctx, chunk)
			if err == nil {
				c.resetSleep()
				break
			}
			if status == http.StatusInternalServerError {
				chunkResults = make([]Result, len(chunk))
				for i, p := range chunk {
					c.logSidecar(p[0], p[1])
					chunkResults[i] = nothingResult
				}
				break
			}
			c.logger.Warn("oracle batch request failed, retrying", "size", len(chunk), "error", err)
			if waitErr := c.backoff(ctx); waitErr != nil {
				return nil, waitErr
			}
		}

		for i, idx := range chunkIdx {
			results[idx] = chunkResults[i]
			if cacheable(chunkResults[i]) {
				c.cache.Add(cacheKey(pairs[idx][0], pairs[idx][1]), chunkResults[i])
			}
		}
	}

	return results, nil
}

// doRequest issues one HTTP POST with the given wire requests and decodes
// the response. It returns the HTTP status code alongside any error so
// callers can distinguish a terminal HTTP 500 from a retryable failure.
func (c *Client) doRequest(ctx context.Context, reqs []wireRequest) ([]Result, int, error) {
	encoded := make([]wireRequest, len(reqs))
	for i, r := range reqs {
		encoded[i] = wireRequest{encodeName(r[0]), encodeName(r[1])}
	}

	body, err := json.Marshal(encoded)
	if err != nil {
		return nil, 0, fmt.Errorf("oracle: encoding request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.RequestAddr, bytes.NewReader(body))
	if err != nil {
		return nil, 0, fmt.Errorf("oracle: building request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	for k, v := range c.headers {
		httpReq.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, 0, fmt.Errorf("oracle: request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("oracle: reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, resp.StatusCode, fmt.Errorf("oracle: unexpected status %d: %s", resp.StatusCode, string(respBody))
	}

	var wire []wireResponse
	if err := json.Unmarshal(respBody, &wire); err != nil {
		return nil, resp.StatusCode, fmt.Errorf("oracle: decoding response: %w", err)
	}
	if len(wire) != len(reqs) {
		return nil, resp.StatusCode, fmt.Errorf("oracle: expected %d results, got %d", len(reqs), len(wire))
	}

	out := make([]Result, len(wire))
	for i, w := range wire {
		out[i] = Result{Result: w.Result, Emoji: w.Emoji, IsNew: w.IsNew}
	}
	return out, resp.StatusCode, nil
}

// backoff sleeps the current backoff duration (or returns ctx.Err() if
// canceled first), then grows it by retryExponent up to maxSleep.
func (c *Client) backoff(ctx context.Context) error {
	c.sleepMu.Lock()
	d := c.sleep
	next := time.Duration(float64(d) * retryExponent)
	if next > maxSleep {
		next = maxSleep
	}
	c.sleep = next
	c.sleepMu.Unlock()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}

func (c *Client) resetSleep() {
	c.sleepMu.Lock()
	c.sleep = sleepDefault
	c.sleepMu.Unlock()
}

// logSidecar appends a failed pair to the 500s sidecar file, matching
// spec.md §7's error-log convention for oracle-rejected inputs.
func (c *Client) logSidecar(a, b string) {
	c.sidecarMu.Lock()
	defer c.sidecarMu.Unlock()

	f, err := os.OpenFile(c.sidecarPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		c.logger.Error("oracle: failed to open 500s sidecar", "path", c.sidecarPath, "error", err)
		return
	}
	defer func() { _ = f.Close() }()

	if _, err := fmt.Fprintf(f, "%s\t%s\n", a, b); err != nil {
		c.logger.Error("oracle: failed to write 500s sidecar", "path", c.sidecarPath, "error", err)
	}
}
