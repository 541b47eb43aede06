package submit

import (
	"flag"
	"fmt"

	"github.com/humantouch-dev/humantouch-go/internal/cmd/base"
	"github.com/humantouch-dev/humantouch-go/internal/cmd/commands/wait"
	"github.com/humantouch-dev/humantouch-go/pkg/humantouch"
)

type Command struct {
	*base.Command

	process       base.ProcessFlags
	flagNotifyURL string
	flagWait      bool
	waitFlags     wait.Flags
}

func (c *Command) Synopsis() string {
	return "Submit text for asynchronous processing"
}

func (c *Command) Help() string {
	return `Usage: humantouch submit [options] <file|->

  Create an asynchronous task for the text in a file (or stdin with "-")
  and print the task. With -wait, poll the task until it finishes and print
  the final status instead.` + c.Flags().Help()
}

func (c *Command) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("submit", flag.ContinueOnError))
	c.ClientFlags(f)
	c.process.Register(f)

	f.StringVar(
		&c.flagNotifyURL, "notify-url", "",
		"Webhook URL the service calls when the task finishes",
	)
	f.BoolVar(
		&c.flagWait, "wait", false,
		"Wait for the task to finish",
	)
	c.waitFlags.Register(f)

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

	var opts *humantouch.AsyncOptions
	if process := c.process.Options(f, cfg.ProcessOptions()); process != nil || c.flagNotifyURL != "" {
		opts = &humantouch.AsyncOptions{NotifyURL: c.flagNotifyURL}
		if process != nil {
			opts.ProcessOptions = *process
		}
	}

	ctx, cancel := c.Context()
	defer cancel()

	task, err := client.CreateAsyncTask(ctx, text, opts)
	if err != nil {
		return c.Fail(err)
	}

	if !c.flagWait {
		if err := c.Output(task); err != nil {
			return c.Fail(err)
		}
		return 0
	}

	c.UI.Info(fmt.Sprintf("Submitted task %s (estimated %ds)", task.TaskID, task.EstimatedTime))

	waitOpts, err := c.waitFlags.Options(f, cfg)
	if err != nil {
		return c.Fail(err)
	}
	waitOpts.OnStatus = wait.Progress(c.Command)

	status, err := client.WaitForTask(ctx, task.TaskID, &waitOpts)
	if err != nil {
		return c.Fail(err)
	}

	if err := c.Output(status); err != nil {
		return c.Fail(err)
	}
	return 0
}
