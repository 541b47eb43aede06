package batch

import (
	"flag"
	"fmt"

	"github.com/humantouch-dev/humantouch-go/internal/cmd/base"
	"github.com/humantouch-dev/humantouch-go/pkg/humantouch"
)

type Command struct {
	*base.Command

	process base.ProcessFlags
}

func (c *Command) Synopsis() string {
	return "Humanize several texts in one request"
}

func (c *Command) Help() string {
	return fmt.Sprintf(`Usage: humantouch batch [options] <file>...

  Rewrite the text of each file in a single batch request. At most %d
  files may be given. Results are printed in input order.`, humantouch.MaxBatchSize) + c.Flags().Help()
}

func (c *Command) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("batch", flag.ContinueOnError))
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
	if f.NArg() == 0 {
		return c.UsageError("expected at least one input file\n\n%s", c.Help())
	}

	texts := make([]string, 0, f.NArg())
	for _, path := range f.Args() {
		text, err := c.ReadInput(path)
		if err != nil {
			return c.Fail(err)
		}
		texts = append(texts, text)
	}

	client, cfg, err := c.Client()
	if err != nil {
		return c.Fail(err)
	}

	ctx, cancel := c.Context()
	defer cancel()

	resp, err := client.Batch(ctx, texts, c.process.Options(f, cfg.ProcessOptions()))
	if err != nil {
		return c.Fail(err)
	}

	if err := c.Output(resp); err != nil {
		return c.Fail(err)
	}
	return 0
}
