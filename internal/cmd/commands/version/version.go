package version

import (
	"flag"
	"fmt"

	"github.com/humantouch-dev/humantouch-go/internal/cmd/base"
	buildversion "github.com/humantouch-dev/humantouch-go/internal/version"
	"github.com/humantouch-dev/humantouch-go/pkg/humantouch"
)

type Command struct {
	*base.Command
}

// Info is the version report.
type Info struct {
	Version    string `json:"version" yaml:"version"`
	SDKVersion string `json:"sdk_version" yaml:"sdk_version"`
}

func (c *Command) Synopsis() string {
	return "Print the version"
}

func (c *Command) Help() string {
	return `Usage: humantouch version

  Print the CLI and SDK versions.` + c.Flags().Help()
}

func (c *Command) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("version", flag.ContinueOnError))
	c.OutputFlags(f)
	return f
}

func (c *Command) Run(args []string) int {
	f := c.Flags()
	if err := f.Parse(args); err != nil {
		c.UI.Error(fmt.Sprintf("error parsing flags: %v", err))
		return 1
	}
	if err := c.Setup(); err != nil {
		return c.Fail(err)
	}

	if err := c.Output(Info{
		Version:    buildversion.FullVersion(),
		SDKVersion: humantouch.Version,
	}); err != nil {
		return c.Fail(err)
	}
	return 0
}
