package explorer

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	// DefaultBaseURL is the public blockchain.info explorer
	DefaultBaseURL = "https://blockchain.info"
	defaultTimeout = 10 * time.Second
)

// RemoteError represents a failed explorer request: a non-2xx status,
// a transport failure or timeout, or an undecodable body.
type RemoteError struct {
	URL        string
	StatusCode int // 0 when no response was received
	Message    string
	Err        error
}

func (e *RemoteError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("explorer request %s: status %d: %s", e.URL, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("explorer request %s: %s", e.URL, e.Message)
}

func (e *RemoteError) Unwrap() error {
	return e.Err
}

// Client talks to the blockchain.info JSON API
type Client struct {
	baseURL    string
	httpClient *http.Client
	cache      *ResponseCache
	log        *zap.Logger
}

// Option configures a Client
type Option func(*Client)

// WithBaseURL points the client at a different explorer host
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithHTTPClient replaces the default 10s-timeout HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithLogger sets the logger used for request tracing
func WithLogger(log *zap.Logger) Option {
	return func(c *Client) {
		c.log = log
	}
}

// NewClient creates an explorer client. Block lookups are cached in cache;
// a nil cache disables caching.
func NewClient(cache *ResponseCache, opts ...Option) *Client {
	c := &Client{
		baseURL:    DefaultBaseURL,
		httpClient: &http.Client{Timeout: defaultTimeout},
		cache:      cache,
		log:        zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchBlock returns a block by hash. Responses are cached by URL.
func (c *Client) FetchBlock(ctx context.Context, hash string) (*Block, error) {
	reqURL := fmt.Sprintf("%s/rawblock/%s?cors=true", c.baseURL, hash)

	if c.cache != nil {
		if body, ok := c.cache.Get(reqURL); ok {
			c.log.Debug("explorer cache hit", zap.String("url", reqURL))
			var block Block
			if err := json.Unmarshal(body, &block); err != nil {
				return nil, &RemoteError{URL: reqURL, Message: "decoding cached block", Err: err}
			}
			return &block, nil
		}
	}

	body, err := c.get(ctx, reqURL)
	if err != nil {
		return nil, err
	}

	var block Block
	if err := json.Unmarshal(body, &block); err != nil {
		return nil, &RemoteError{URL: reqURL, Message: "decoding block", Err: err}
	}

	if c.cache != nil {
		c.cache.Add(reqURL, body)
	}
	return &block, nil
}

// FetchBlocksForDay lists the blocks mined on the UTC day containing dayMillis
func (c *Client) FetchBlocksForDay(ctx context.Context, dayMillis int64) ([]BlockStub, error) {
	reqURL := fmt.Sprintf("%s/blocks/%d?format=json&cors=true", c.baseURL, dayMillis)

	body, err := c.get(ctx, reqURL)
	if err != nil {
		return nil, err
	}

	var blocks []BlockStub
	if err := json.Unmarshal(body, &blocks); err != nil {
		return nil, &RemoteError{URL: reqURL, Message: "decoding block listing", Err: err}
	}
	return blocks, nil
}

// FetchAddressPage returns one page of an address's transactions
func (c *Client) FetchAddressPage(ctx context.Context, address string, limit, offset int) ([]Transaction, error) {
	params := url.Values{}
	params.Set("limit", fmt.Sprintf("%d", limit))
	params.Set("offset", fmt.Sprintf("%d", offset))
	reqURL := fmt.Sprintf("%s/rawaddr/%s?%s&cors=true", c.baseURL, address, params.Encode())

	body, err := c.get(ctx, reqURL)
	if err != nil {
		return nil, err
	}

	var page AddressPage
	if err := json.Unmarshal(body, &page); err != nil {
		return nil, &RemoteError{URL: reqURL, Message: "decoding address page", Err: err}
	}
	return page.Txs, nil
}

// get issues a GET and returns the body of a 2xx response
func (c *Client) get(ctx context.Context, reqURL string) ([]byte, error) {
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, &RemoteError{URL: reqURL, Message: "creating request", Err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Debug("explorer request failed", zap.String("url", reqURL), zap.Error(err))
		return nil, &RemoteError{URL: reqURL, Message: err.Error(), Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &RemoteError{URL: reqURL, StatusCode: resp.StatusCode, Message: "reading response body", Err: err}
	}

	c.log.Debug("explorer request",
		zap.String("url", reqURL),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &RemoteError{URL: reqURL, StatusCode: resp.StatusCode, Message: strings.TrimSpace(string(body))}
	}

	return body, nil
}
