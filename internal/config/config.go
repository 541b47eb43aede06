package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/hashicorp/hcl/v2/hclsimple"
	"github.com/joho/godotenv"
	"github.com/spf13/afero"

	"github.com/humantouch-dev/humantouch-go/pkg/humantouch"
)

// Environment variables read by the CLI.
const (
	EnvAPIKey  = "HUMANTOUCH_API_KEY"
	EnvBaseURL = "HUMANTOUCH_BASE_URL"
	EnvTimeout = "HUMANTOUCH_TIMEOUT"
	EnvRetries = "HUMANTOUCH_RETRIES"
)

// Config is the CLI configuration file.
//
// Example:
//
//	humantouch {
//	  base_url   = "https://api.humantouch.dev"
//	  api_key    = "ht_live_..."
//	  timeout    = "30s"
//	  retries    = 3
//	  rate_limit = 2
//	}
//
//	defaults {
//	  rounds       = 3
//	  style        = "academic"
//	  target_score = 0.1
//	}
//
//	wait {
//	  interval = "2s"
//	  timeout  = "5m"
//	}
type Config struct {
	HumanTouch *HumanTouch `hcl:"humantouch,block"`
	Defaults   *Defaults   `hcl:"defaults,block"`
	Wait       *Wait       `hcl:"wait,block"`
}

// HumanTouch configures the API client.
type HumanTouch struct {
	BaseURL   string  `hcl:"base_url,optional"`
	APIKey    string  `hcl:"api_key,optional"`
	Timeout   string  `hcl:"timeout,optional"`
	Retries   int     `hcl:"retries,optional"`
	RateLimit float64 `hcl:"rate_limit,optional"`
	RateBurst int     `hcl:"rate_burst,optional"`
}

func (h HumanTouch) Validate() error {
	return validation.ValidateStruct(&h,
		validation.Field(&h.Timeout, validation.By(duration)),
		validation.Field(&h.Retries, validation.Min(humantouch.NoRetries)),
		validation.Field(&h.RateLimit, validation.Min(0.0)),
		validation.Field(&h.RateBurst, validation.Min(0)),
	)
}

// Defaults are the processing options used when a command is not given
// explicit flags.
type Defaults struct {
	Rounds             int      `hcl:"rounds,optional"`
	Style              string   `hcl:"style,optional"`
	TargetScore        *float64 `hcl:"target_score,optional"`
	PreserveFormatting bool     `hcl:"preserve_formatting,optional"`
}

// Wait configures task polling.
type Wait struct {
	Interval string `hcl:"interval,optional"`
	Timeout  string `hcl:"timeout,optional"`
}

func (w Wait) Validate() error {
	return validation.ValidateStruct(&w,
		validation.Field(&w.Interval, validation.By(duration)),
		validation.Field(&w.Timeout, validation.By(duration)),
	)
}

// Validate checks every configured block.
func (c *Config) Validate() error {
	if c.HumanTouch != nil {
		if err := c.HumanTouch.Validate(); err != nil {
			return fmt.Errorf("humantouch: %w", err)
		}
	}
	if c.Defaults != nil {
		if err := c.ProcessOptions().Validate(); err != nil {
			return fmt.Errorf("defaults: %w", err)
		}
	}
	if c.Wait != nil {
		if err := c.Wait.Validate(); err != nil {
			return fmt.Errorf("wait: %w", err)
		}
	}
	return nil
}

// Load reads an HCL (or JSON, by extension) configuration file from fs.
func Load(fs afero.Fs, path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("configuration file path is required")
	}

	src, err := afero.ReadFile(fs, path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("configuration file not found: %s", path)
		}
		return nil, fmt.Errorf("failed to read configuration file: %w", err)
	}

	var cfg Config
	if err := hclsimple.Decode(path, src, nil, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration file: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// LoadDotEnv parses a .env file from fs. A missing file is not an error.
func LoadDotEnv(fs afero.Fs, path string) (map[string]string, error) {
	f, err := fs.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("failed to open env file: %w", err)
	}
	defer f.Close()

	env, err := godotenv.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse env file %s: %w", path, err)
	}
	return env, nil
}

// LookupFunc resolves an environment variable.
type LookupFunc func(key string) (string, bool)

// Lookup resolves keys from the process environment first, then from
// dotenv values.
func Lookup(dotenv map[string]string) LookupFunc {
	return func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
		v, ok := dotenv[key]
		return v, ok
	}
}

// ClientConfig builds the client configuration from the file and
// environment. The environment wins over the file; unset values keep the
// client defaults.
func (c *Config) ClientConfig(lookup LookupFunc) (*humantouch.Config, error) {
	cfg := humantouch.DefaultConfig()

	if h := c.HumanTouch; h != nil {
		if h.BaseURL != "" {
			cfg.BaseURL = h.BaseURL
		}
		cfg.APIKey = h.APIKey
		if h.Timeout != "" {
			d, err := time.ParseDuration(h.Timeout)
			if err != nil {
				return nil, fmt.Errorf("invalid timeout: %w", err)
			}
			cfg.Timeout = d
		}
		if h.Retries != 0 {
			cfg.Retries = h.Retries
		}
		cfg.RateLimit = h.RateLimit
		if h.RateBurst != 0 {
			cfg.RateBurst = h.RateBurst
		}
	}

	if lookup == nil {
		return cfg, nil
	}
	if v, ok := lookup(EnvBaseURL); ok && v != "" {
		cfg.BaseURL = v
	}
	if v, ok := lookup(EnvAPIKey); ok && v != "" {
		cfg.APIKey = v
	}
	if v, ok := lookup(EnvTimeout); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", EnvTimeout, err)
		}
		cfg.Timeout = d
	}
	if v, ok := lookup(EnvRetries); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", EnvRetries, err)
		}
		cfg.Retries = n
	}

	return cfg, nil
}

// ProcessOptions returns the configured defaults, or nil when the file has
// no defaults block so the service applies its own.
func (c *Config) ProcessOptions() *humantouch.ProcessOptions {
	if c.Defaults == nil {
		return nil
	}

	opts := humantouch.DefaultProcessOptions()
	if c.Defaults.Rounds != 0 {
		opts.Rounds = c.Defaults.Rounds
	}
	if c.Defaults.Style != "" {
		opts.Style = humantouch.Style(c.Defaults.Style)
	}
	if c.Defaults.TargetScore != nil {
		opts.TargetScore = humantouch.Float64(*c.Defaults.TargetScore)
	}
	opts.PreserveFormatting = c.Defaults.PreserveFormatting
	return &opts
}

// WaitOptions returns the polling options, falling back to the client
// defaults for unset values.
func (c *Config) WaitOptions() (humantouch.WaitOptions, error) {
	opts := humantouch.DefaultWaitOptions()
	if c.Wait == nil {
		return opts, nil
	}

	if c.Wait.Interval != "" {
		d, err := time.ParseDuration(c.Wait.Interval)
		if err != nil {
			return opts, fmt.Errorf("invalid wait interval: %w", err)
		}
		opts.Interval = d
	}
	if c.Wait.Timeout != "" {
		d, err := time.ParseDuration(c.Wait.Timeout)
		if err != nil {
			return opts, fmt.Errorf("invalid wait timeout: %w", err)
		}
		opts.Timeout = d
	}
	return opts, nil
}

// duration is an ozzo rule accepting empty strings and Go durations.
func duration(value interface{}) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	if _, err := time.ParseDuration(s); err != nil {
		return fmt.Errorf("must be a duration such as 30s or 5m")
	}
	return nil
}
