package serviceconfig

import (
	"flag"
	"fmt"

	"github.com/humantouch-dev/humantouch-go/internal/cmd/base"
)

type Command struct {
	*base.Command
}

func (c *Command) Synopsis() string {
	return "Show the service's limits and capabilities"
}

func (c *Command) Help() string {
	return `Usage: humantouch service-config [options]

  Print the service's maximum text length, supported styles, default
  rounds and asynchronous processing capabilities.` + c.Flags().Help()
}

func (c *Command) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("service-config", flag.ContinueOnError))
	c.ClientFlags(f)
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

	client, _, err := c.Client()
	if err != nil {
		return c.Fail(err)
	}

	ctx, cancel := c.Context()
	defer cancel()

	cfg, err := client.ServiceConfig(ctx)
	if err != nil {
		return c.Fail(err)
	}

	if err := c.Output(cfg); err != nil {
		return c.Fail(err)
	}
	return 0
}
