package cancel

import (
	"flag"
	"fmt"

	"github.com/humantouch-dev/humantouch-go/internal/cmd/base"
)

type Command struct {
	*base.Command
}

func (c *Command) Synopsis() string {
	return "Request cancellation of an asynchronous task"
}

func (c *Command) Help() string {
	return `Usage: humantouch cancel [options] <task-id>

  Ask the service to cancel a task. The service may only acknowledge the
  request; use "humantouch status" to follow up.` + c.Flags().Help()
}

func (c *Command) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("cancel", flag.ContinueOnError))
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
	if f.NArg() != 1 {
		return c.UsageError("expected exactly one task ID\n\n%s", c.Help())
	}

	client, _, err := c.Client()
	if err != nil {
		return c.Fail(err)
	}

	ctx, stop := c.Context()
	defer stop()

	resp, err := client.CancelTask(ctx, f.Arg(0))
	if err != nil {
		return c.Fail(err)
	}

	if err := c.Output(resp); err != nil {
		return c.Fail(err)
	}
	return 0
}
