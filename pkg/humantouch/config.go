package humantouch

import (
	"fmt"
	"net/http"
	"net/url"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/hashicorp/go-hclog"
)

const (
	DefaultBaseURL       = "https://api.humantouch.dev"
	DefaultTimeout       = 30 * time.Second
	DefaultRetries       = 3
	DefaultRetryDelay    = 500 * time.Millisecond
	DefaultMaxRetryDelay = 10 * time.Second

	// NoRetries disables the retry policy when assigned to Config.Retries.
	NoRetries = -1
)

// Config contains configuration for the HumanTouch client.
//
// Example:
//
//	cfg := humantouch.DefaultConfig()
//	cfg.APIKey = os.Getenv("HUMANTOUCH_API_KEY")
//	client, err := humantouch.New(cfg)
type Config struct {
	// BaseURL is the service root, without the /api/v1 prefix.
	// Default: https://api.humantouch.dev
	BaseURL string `json:"base_url"`

	// APIKey is sent as a Bearer token when non-empty.
	APIKey string `json:"-"`

	// Timeout bounds each HTTP attempt, including reading the body.
	// Default: 30 seconds
	Timeout time.Duration `json:"timeout"`

	// Retries is the number of retries for network and rate limit failures.
	// Zero selects DefaultRetries; NoRetries disables retrying.
	Retries int `json:"retries"`

	// RetryDelay is the initial backoff between retries.
	// Default: 500ms
	RetryDelay time.Duration `json:"retry_delay"`

	// MaxRetryDelay caps the exponential backoff.
	// Default: 10 seconds
	MaxRetryDelay time.Duration `json:"max_retry_delay"`

	// RateLimit throttles outgoing requests (requests per second). Zero
	// disables client-side throttling.
	RateLimit float64 `json:"rate_limit"`

	// RateBurst is the limiter burst size. Default: 1
	RateBurst int `json:"rate_burst"`

	// UserAgent overrides the default humantouch-sdk-go/<version> agent.
	UserAgent string `json:"user_agent"`

	// HTTPClient replaces the default pooled client.
	HTTPClient *http.Client `json:"-"`

	// Logger receives request logs. Default: null logger.
	Logger hclog.Logger `json:"-"`
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		BaseURL:       DefaultBaseURL,
		Timeout:       DefaultTimeout,
		Retries:       DefaultRetries,
		RetryDelay:    DefaultRetryDelay,
		MaxRetryDelay: DefaultMaxRetryDelay,
		RateBurst:     1,
	}
}

// applyDefaults fills zero values from DefaultConfig.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.BaseURL == "" {
		c.BaseURL = defaults.BaseURL
	}
	if c.Timeout == 0 {
		c.Timeout = defaults.Timeout
	}
	if c.Retries == 0 {
		c.Retries = defaults.Retries
	}
	if c.RetryDelay == 0 {
		c.RetryDelay = defaults.RetryDelay
	}
	if c.MaxRetryDelay == 0 {
		c.MaxRetryDelay = defaults.MaxRetryDelay
	}
	if c.RateBurst == 0 {
		c.RateBurst = defaults.RateBurst
	}
	if c.UserAgent == "" {
		c.UserAgent = "humantouch-sdk-go/" + Version
	}
	if c.Logger == nil {
		c.Logger = hclog.NewNullLogger()
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.BaseURL, validation.Required, validation.By(httpURL)),
		validation.Field(&c.Timeout, validation.Required, validation.Min(time.Duration(1))),
		validation.Field(&c.Retries, validation.Min(NoRetries)),
		validation.Field(&c.RetryDelay, validation.Min(time.Duration(0))),
		validation.Field(&c.MaxRetryDelay, validation.Min(time.Duration(0))),
		validation.Field(&c.RateLimit, validation.Min(0.0)),
		validation.Field(&c.RateBurst, validation.Min(0)),
	)
}

// NewHTTPClient creates a pooled HTTP client honouring Timeout.
func (c *Config) NewHTTPClient() *http.Client {
	transport := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
	}

	return &http.Client{
		Timeout:   c.Timeout,
		Transport: transport,
	}
}

// httpURL is an ozzo rule accepting absolute http(s) URLs.
func httpURL(value interface{}) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	u, err := url.Parse(s)
	if err != nil {
		return fmt.Errorf("must be a valid URL: %v", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("must use http or https scheme, got: %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("must include a host")
	}
	return nil
}
