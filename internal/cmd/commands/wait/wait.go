package wait

import (
	"flag"
	"fmt"
	"time"

	"github.com/humantouch-dev/humantouch-go/internal/cmd/base"
	"github.com/humantouch-dev/humantouch-go/internal/config"
	"github.com/humantouch-dev/humantouch-go/pkg/humantouch"
)

type Command struct {
	*base.Command

	waitFlags Flags
}

func (c *Command) Synopsis() string {
	return "Wait for an asynchronous task to finish"
}

func (c *Command) Help() string {
	return `Usage: humantouch wait [options] <task-id>

  Poll a task until it completes, fails or the timeout elapses. Status
  changes are reported as they are observed; the final status is printed
  on completion.` + c.Flags().Help()
}

func (c *Command) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("wait", flag.ContinueOnError))
	c.ClientFlags(f)
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
		return c.UsageError("expected exactly one task ID\n\n%s", c.Help())
	}

	client, cfg, err := c.Client()
	if err != nil {
		return c.Fail(err)
	}

	opts, err := c.waitFlags.Options(f, cfg)
	if err != nil {
		return c.Fail(err)
	}
	opts.OnStatus = Progress(c.Command)

	ctx, cancel := c.Context()
	defer cancel()

	status, err := client.WaitForTask(ctx, f.Arg(0), &opts)
	if err != nil {
		return c.Fail(err)
	}

	if err := c.Output(status); err != nil {
		return c.Fail(err)
	}
	return 0
}

// Flags holds the polling flags shared by wait and submit -wait.
type Flags struct {
	interval time.Duration
	timeout  time.Duration
}

func (w *Flags) Register(f *base.FlagSet) {
	f.DurationVar(
		&w.interval, "interval", humantouch.DefaultPollInterval,
		"Interval between status checks",
	)
	f.DurationVar(
		&w.timeout, "timeout", humantouch.DefaultPollTimeout,
		"Maximum time to wait",
	)
}

// Options resolves polling options: explicit flags, then the wait block of
// the configuration file, then client defaults.
func (w *Flags) Options(f *base.FlagSet, cfg *config.Config) (humantouch.WaitOptions, error) {
	opts, err := cfg.WaitOptions()
	if err != nil {
		return opts, err
	}

	f.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "interval":
			opts.Interval = w.interval
		case "timeout":
			opts.Timeout = w.timeout
		}
	})
	return opts, nil
}

// Progress reports each status change on the UI.
func Progress(c *base.Command) func(humantouch.TaskStatusResponse) {
	var last humantouch.TaskStatus
	return func(s humantouch.TaskStatusResponse) {
		if s.Status == last {
			return
		}
		last = s.Status

		msg := fmt.Sprintf("Task %s: %s", s.TaskID, s.Status)
		if s.Progress != nil {
			msg += fmt.Sprintf(" (%.0f%%)", *s.Progress)
		}
		c.UI.Info(msg)
	}
}
