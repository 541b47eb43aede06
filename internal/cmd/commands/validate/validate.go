package validate

import (
	"flag"
	"fmt"

	"github.com/humantouch-dev/humantouch-go/internal/cmd/base"
)

type Command struct {
	*base.Command

	flagDetectors []string
}

func (c *Command) Synopsis() string {
	return "Score text with AI detectors without rewriting it"
}

func (c *Command) Help() string {
	return `Usage: humantouch validate [options] <file|->

  Run AI detectors over the text in a file (or stdin with "-") and print
  the per-detector scores and their summary.` + c.Flags().Help()
}

func (c *Command) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("validate", flag.ContinueOnError))
	c.ClientFlags(f)

	c.flagDetectors = nil
	f.StringSliceVar(
		&c.flagDetectors, "detectors",
		"Comma-separated detectors to run (zerogpt, gptzero, copyleaks); all by default",
	)

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

	client, _, err := c.Client()
	if err != nil {
		return c.Fail(err)
	}

	ctx, cancel := c.Context()
	defer cancel()

	resp, err := client.Validate(ctx, text, c.flagDetectors...)
	if err != nil {
		return c.Fail(err)
	}

	if err := c.Output(resp); err != nil {
		return c.Fail(err)
	}
	return 0
}
