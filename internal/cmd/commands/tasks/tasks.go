package tasks

import (
	"flag"
	"fmt"
	"time"

	"github.com/humantouch-dev/humantouch-go/internal/cmd/base"
	"github.com/humantouch-dev/humantouch-go/pkg/humantouch"
)

type Command struct {
	*base.Command

	flagStatus           string
	flagLimit            int
	flagOffset           int
	flagCleanupOlderThan time.Duration
}

func (c *Command) Synopsis() string {
	return "List or clean up asynchronous tasks"
}

func (c *Command) Help() string {
	return `Usage: humantouch tasks [options]

  List tasks with their pagination and service statistics. With
  -cleanup-older-than, remove finished tasks older than the given age
  instead.` + c.Flags().Help()
}

func (c *Command) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("tasks", flag.ContinueOnError))
	c.ClientFlags(f)

	f.StringVar(
		&c.flagStatus, "status", "",
		"Only list tasks in this status (pending, processing, completed, failed)",
	)
	f.IntVar(
		&c.flagLimit, "limit", 0,
		"Maximum number of tasks to list (service default 50)",
	)
	f.IntVar(
		&c.flagOffset, "offset", 0,
		"Number of tasks to skip",
	)
	f.DurationVar(
		&c.flagCleanupOlderThan, "cleanup-older-than", 0,
		"Remove finished tasks older than this age, e.g. 24h",
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
	if f.NArg() != 0 {
		return c.UsageError("unexpected arguments: %v\n\n%s", f.Args(), c.Help())
	}

	client, _, err := c.Client()
	if err != nil {
		return c.Fail(err)
	}

	ctx, cancel := c.Context()
	defer cancel()

	var out interface{}
	if c.flagCleanupOlderThan > 0 {
		out, err = client.CleanupTasks(ctx, c.flagCleanupOlderThan)
	} else {
		out, err = client.ListTasks(ctx, &humantouch.ListTasksOptions{
			Status: humantouch.TaskStatus(c.flagStatus),
			Limit:  c.flagLimit,
			Offset: c.flagOffset,
		})
	}
	if err != nil {
		return c.Fail(err)
	}

	if err := c.Output(out); err != nil {
		return c.Fail(err)
	}
	return 0
}
