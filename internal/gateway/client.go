package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/sharkgitz/eboxai/pkg/circuitbreaker"
	"github.com/sharkgitz/eboxai/pkg/metrics"
)

// Client is the typed boundary to the triage backend. It holds no state
// beyond the connection itself; callers own the canonical collections.
type Client struct {
	baseURL    string
	httpClient *http.Client
	breaker    *circuitbreaker.Breaker
	logger     *zap.Logger
}

func New(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		breaker: circuitbreaker.New(circuitbreaker.DefaultConfig()),
		logger:  logger,
	}
}

// errBackend5xx marks a received-but-failed response inside the breaker
// closure so transport errors and 5xx both count as breaker failures.
var errBackend5xx = errors.New("backend returned 5xx")

// do performs one JSON round trip. body and out may be nil. No retries:
// mutating routes are not idempotent (duplicate agent runs, duplicate
// drafts), so retry decisions belong to the caller.
func (c *Client) do(ctx context.Context, op, method, path string, query url.Values, body, out any) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return &Error{Op: op, Kind: KindValidation, Err: err}
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return &Error{Op: op, Kind: KindNetwork, Err: err}
	}
	if query != nil {
		req.URL.RawQuery = query.Encode()
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	var resp *http.Response
	err = c.breaker.Execute(func() error {
		var doErr error
		resp, doErr = c.httpClient.Do(req)
		if doErr != nil {
			return doErr
		}
		if resp.StatusCode >= 500 {
			return errBackend5xx
		}
		return nil
	})
	duration := time.Since(start)

	if resp == nil {
		metrics.RecordBackendCall(op, "error", duration)
		c.logger.Warn("backend call failed",
			zap.String("operation", op),
			zap.String("path", path),
			zap.Error(err))
		return &Error{Op: op, Kind: KindNetwork, Err: err}
	}
	defer resp.Body.Close()

	metrics.RecordBackendCall(op, strconv.Itoa(resp.StatusCode), duration)

	switch {
	case resp.StatusCode == http.StatusNotFound:
		io.Copy(io.Discard, resp.Body)
		return &Error{Op: op, Kind: KindNotFound, Status: resp.StatusCode}
	case resp.StatusCode >= 500:
		io.Copy(io.Discard, resp.Body)
		c.logger.Warn("backend server error",
			zap.String("operation", op),
			zap.Int("status", resp.StatusCode))
		return &Error{Op: op, Kind: KindServer, Status: resp.StatusCode}
	case resp.StatusCode >= 400:
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &Error{
			Op:     op,
			Kind:   KindValidation,
			Status: resp.StatusCode,
			Err:    fmt.Errorf("%s", bytes.TrimSpace(detail)),
		}
	}

	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		// A 2xx with an undecodable body counts as a server failure.
		return &Error{Op: op, Kind: KindServer, Status: resp.StatusCode, Err: err}
	}
	return nil
}

// Ping hits the backend root route. Used by the session connectivity
// poller; any 2xx counts as online.
func (c *Client) Ping(ctx context.Context) error {
	return c.do(ctx, "ping", http.MethodGet, "/", nil, nil, nil)
}

// BreakerState exposes the transport breaker for status displays.
func (c *Client) BreakerState() circuitbreaker.State {
	return c.breaker.State()
}
