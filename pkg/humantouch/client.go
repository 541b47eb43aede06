package humantouch

import (
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/hashicorp/go-hclog"
	"golang.org/x/time/rate"
)

// Version is the SDK version reported in the User-Agent header.
const Version = "1.0.0"

// APIPrefix is the path prefix of every endpoint.
const APIPrefix = "/api/v1"

// Client talks to the HumanTouch REST API. It is safe for concurrent use.
type Client struct {
	config     Config
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     hclog.Logger

	mu     sync.RWMutex
	apiKey string
}

// New creates a client from cfg. A nil cfg is equivalent to DefaultConfig().
// cfg is copied; later changes to it do not affect the client.
func New(cfg *Config) (*Client, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	c := *cfg
	c.applyDefaults()
	c.BaseURL = strings.TrimRight(c.BaseURL, "/")

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid client config: %w", err)
	}

	hc := c.HTTPClient
	if hc == nil {
		hc = c.NewHTTPClient()
	}

	client := &Client{
		config:     c,
		httpClient: hc,
		logger:     c.Logger.Named("humantouch"),
		apiKey:     c.APIKey,
	}

	if c.RateLimit > 0 {
		client.limiter = rate.NewLimiter(rate.Limit(c.RateLimit), c.RateBurst)
	}

	return client, nil
}

// SetAPIKey rotates the credential used by subsequent calls.
func (c *Client) SetAPIKey(apiKey string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.apiKey = apiKey
}

// APIKey returns the credential currently in use.
func (c *Client) APIKey() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.apiKey
}

// BaseURL returns the normalized service root.
func (c *Client) BaseURL() string {
	return c.config.BaseURL
}
