package cmd

import (
	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/cli"

	"github.com/humantouch-dev/humantouch-go/internal/cmd/base"
	"github.com/humantouch-dev/humantouch-go/internal/cmd/commands/batch"
	"github.com/humantouch-dev/humantouch-go/internal/cmd/commands/cancel"
	"github.com/humantouch-dev/humantouch-go/internal/cmd/commands/process"
	"github.com/humantouch-dev/humantouch-go/internal/cmd/commands/serviceconfig"
	"github.com/humantouch-dev/humantouch-go/internal/cmd/commands/status"
	"github.com/humantouch-dev/humantouch-go/internal/cmd/commands/submit"
	"github.com/humantouch-dev/humantouch-go/internal/cmd/commands/tasks"
	"github.com/humantouch-dev/humantouch-go/internal/cmd/commands/validate"
	"github.com/humantouch-dev/humantouch-go/internal/cmd/commands/version"
	"github.com/humantouch-dev/humantouch-go/internal/cmd/commands/wait"
)

// Commands returns the factories for every subcommand.
func Commands(log hclog.Logger, ui cli.Ui) map[string]cli.CommandFactory {
	return CommandsWith(func() *base.Command {
		return base.NewCommand(log, ui)
	})
}

// CommandsWith builds the command table from newBase, which is called once
// per command instantiation.
func CommandsWith(newBase func() *base.Command) map[string]cli.CommandFactory {
	return map[string]cli.CommandFactory{
		"process": func() (cli.Command, error) {
			return &process.Command{Command: newBase()}, nil
		},
		"batch": func() (cli.Command, error) {
			return &batch.Command{Command: newBase()}, nil
		},
		"submit": func() (cli.Command, error) {
			return &submit.Command{Command: newBase()}, nil
		},
		"status": func() (cli.Command, error) {
			return &status.Command{Command: newBase()}, nil
		},
		"wait": func() (cli.Command, error) {
			return &wait.Command{Command: newBase()}, nil
		},
		"cancel": func() (cli.Command, error) {
			return &cancel.Command{Command: newBase()}, nil
		},
		"tasks": func() (cli.Command, error) {
			return &tasks.Command{Command: newBase()}, nil
		},
		"validate": func() (cli.Command, error) {
			return &validate.Command{Command: newBase()}, nil
		},
		"service-config": func() (cli.Command, error) {
			return &serviceconfig.Command{Command: newBase()}, nil
		},
		"version": func() (cli.Command, error) {
			return &version.Command{Command: newBase()}, nil
		},
	}
}
