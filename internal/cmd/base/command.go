package base

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/cli"
	"github.com/spf13/afero"

	"github.com/humantouch-dev/humantouch-go/internal/config"
	"github.com/humantouch-dev/humantouch-go/pkg/humantouch"
)

// EnvConfig names the configuration file when -config is not given.
const EnvConfig = "HUMANTOUCH_CONFIG"

// Command is embedded by every CLI command.
type Command struct {
	Log   hclog.Logger
	UI    cli.Ui
	FS    afero.Fs
	Stdin io.Reader

	flagConfig   string
	flagEnvFile  string
	flagBaseURL  string
	flagAPIKey   string
	flagFormat   string
	flagLogLevel string

	cfg *config.Config
}

// NewCommand returns a Command backed by the OS filesystem and stdin.
func NewCommand(log hclog.Logger, ui cli.Ui) *Command {
	return &Command{
		Log:   log,
		UI:    ui,
		FS:    afero.NewOsFs(),
		Stdin: os.Stdin,
	}
}

// ClientFlags registers the flags shared by commands that talk to the API.
func (c *Command) ClientFlags(f *FlagSet) {
	f.StringVar(
		&c.flagConfig, "config", "",
		"["+EnvConfig+"] Path to an HCL configuration file",
	)
	f.StringVar(
		&c.flagEnvFile, "env-file", ".env",
		"Path to a dotenv file; missing files are ignored",
	)
	f.StringVar(
		&c.flagBaseURL, "base-url", "",
		"["+config.EnvBaseURL+"] HumanTouch API base URL",
	)
	f.StringVar(
		&c.flagAPIKey, "api-key", "",
		"["+config.EnvAPIKey+"] HumanTouch API key",
	)
	c.OutputFlags(f)
}

// OutputFlags registers -format and -log-level.
func (c *Command) OutputFlags(f *FlagSet) {
	f.StringVar(
		&c.flagFormat, "format", FormatText,
		"Output format (text, json, yaml)",
	)
	f.StringVar(
		&c.flagLogLevel, "log-level", "",
		"Log level (trace, debug, info, warn, error)",
	)
}

// Setup applies -log-level and validates -format. Call it after parsing.
func (c *Command) Setup() error {
	if c.flagLogLevel != "" {
		level := hclog.LevelFromString(c.flagLogLevel)
		if level == hclog.NoLevel {
			return fmt.Errorf("invalid log level: %q", c.flagLogLevel)
		}
		c.Log.SetLevel(level)
	}

	switch c.flagFormat {
	case "", FormatText, FormatJSON, FormatYAML:
		return nil
	default:
		return fmt.Errorf("invalid format %q: must be one of text, json, yaml", c.flagFormat)
	}
}

// Config loads the configuration file named by -config or HUMANTOUCH_CONFIG.
// Without either an empty configuration is returned.
func (c *Command) Config(lookup config.LookupFunc) (*config.Config, error) {
	if c.cfg != nil {
		return c.cfg, nil
	}

	path := c.flagConfig
	if path == "" {
		if v, ok := lookup(EnvConfig); ok {
			path = v
		}
	}

	cfg := &config.Config{}
	if path != "" {
		var err error
		cfg, err = config.Load(c.FS, path)
		if err != nil {
			return nil, err
		}
		c.Log.Debug("loaded configuration", "path", path)
	}

	c.cfg = cfg
	return cfg, nil
}

// Client builds an API client. Precedence is flags, then environment
// (including the dotenv file), then the configuration file, then defaults.
func (c *Command) Client() (*humantouch.Client, *config.Config, error) {
	dotenv, err := config.LoadDotEnv(c.FS, c.flagEnvFile)
	if err != nil {
		return nil, nil, err
	}
	lookup := config.Lookup(dotenv)

	cfg, err := c.Config(lookup)
	if err != nil {
		return nil, nil, err
	}

	clientCfg, err := cfg.ClientConfig(lookup)
	if err != nil {
		return nil, nil, err
	}
	if c.flagBaseURL != "" {
		clientCfg.BaseURL = c.flagBaseURL
	}
	if c.flagAPIKey != "" {
		clientCfg.APIKey = c.flagAPIKey
	}
	clientCfg.Logger = c.Log

	client, err := humantouch.New(clientCfg)
	if err != nil {
		return nil, nil, err
	}
	if client.APIKey() == "" {
		c.Log.Warn("no API key configured; requests will be unauthenticated")
	}

	return client, cfg, nil
}

// ReadInput returns the contents of path, or of stdin when path is "-".
func (c *Command) ReadInput(path string) (string, error) {
	if path == "-" {
		b, err := io.ReadAll(c.Stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(b), nil
	}

	b, err := afero.ReadFile(c.FS, path)
	if err != nil {
		return "", fmt.Errorf("failed to read input file: %w", err)
	}
	return string(b), nil
}

// Context returns a context canceled on SIGINT or SIGTERM.
func (c *Command) Context() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

// Fail reports err and returns the exit code for a failed command.
func (c *Command) Fail(err error) int {
	var apiErr *humantouch.Error
	if errors.As(err, &apiErr) && apiErr.Details != "" {
		c.UI.Error(fmt.Sprintf("error: %v\n  details: %s", err, apiErr.Details))
		return 1
	}
	c.UI.Error(fmt.Sprintf("error: %v", err))
	return 1
}

// UsageError reports a usage mistake and returns the exit code.
func (c *Command) UsageError(format string, args ...interface{}) int {
	c.UI.Error(strings.TrimSpace(fmt.Sprintf(format, args...)))
	return 1
}
