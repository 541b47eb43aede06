package status

import (
	"flag"
	"fmt"

	"github.com/humantouch-dev/humantouch-go/internal/cmd/base"
)

type Command struct {
	*base.Command
}

func (c *Command) Synopsis() string {
	return "Show the status of an asynchronous task"
}

func (c *Command) Help() string {
	return `Usage: humantouch status [options] <task-id>

  Print the current status of a task, including its result once it has
  completed.` + c.Flags().Help()
}

func (c *Command) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("status", flag.ContinueOnError))
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

	ctx, cancel := c.Context()
	defer cancel()

	status, err := client.GetTaskStatus(ctx, f.Arg(0))
	if err != nil {
		return c.Fail(err)
	}

	if err := c.Output(status); err != nil {
		return c.Fail(err)
	}
	return 0
}
