package process

import (
	"flag"
	"fmt"

	"github.com/humantouch-dev/humantouch-go/internal/cmd/base"
)

type Command struct {
	*base.Command

	process base.ProcessFlags
}

func (c *Command) Synopsis() string {
	return "Humanize text synchronously"
}

func (c *Command) Help() string {
	return `Usage: humantouch process [options] <file|->

  Rewrite the text in a file (or stdin with "-") so it reads as human
  written, and print the result with its detector scores.` + c.Flags().Help()
}

func (c *Command) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("process", flag.ContinueOnError))
	c.ClientFlags(f)
	c.process.Register(f)
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
	if f.NArg() != 1 {
		return c.UsageError("expected exactly one input file (or - for stdin)\n\n%s", c.Help())
	}

	text, err := c.ReadInput(f.Arg(0))
	if err != nil {
		return c.Fail(err)
	}

	client, cfg, err := c.Client()
	if err != nil {
		return c.Fail(err)
	}

	ctx, cancel := c.Context()
	defer cancel()

	resp, err := client.Process(ctx, text, c.process.Options(f, cfg.ProcessOptions()))
	if err != nil {
		return c.Fail(err)
	}

	if err := c.Output(resp); err != nil {
		return c.Fail(err)
	}
	return 0
}
