package base

import (
	"flag"

	"github.com/humantouch-dev/humantouch-go/pkg/humantouch"
)

// ProcessFlags holds the processing option flags shared by process, batch
// and submit.
type ProcessFlags struct {
	rounds             int
	style              string
	targetScore        float64
	preserveFormatting bool
}

// Register adds the processing flags to f.
func (p *ProcessFlags) Register(f *FlagSet) {
	f.IntVar(
		&p.rounds, "rounds", 0,
		"Rewriting rounds, 1-10 (service default 3)",
	)
	f.StringVar(
		&p.style, "style", "",
		"Style: casual, academic, professional or creative (service default casual)",
	)
	f.Float64Var(
		&p.targetScore, "target-score", 0,
		"Detector score to aim for, 0-1 (service default 0.1)",
	)
	f.BoolVar(
		&p.preserveFormatting, "preserve-formatting", false,
		"Keep the input's formatting",
	)
}

// Options merges explicitly set flags over defaults. With no flags set and
// no defaults it returns nil, leaving the choice to the service.
func (p *ProcessFlags) Options(f *FlagSet, defaults *humantouch.ProcessOptions) *humantouch.ProcessOptions {
	set := map[string]bool{}
	f.Visit(func(fl *flag.Flag) {
		set[fl.Name] = true
	})

	explicit := set["rounds"] || set["style"] || set["target-score"] || set["preserve-formatting"]
	if !explicit && defaults == nil {
		return nil
	}

	opts := humantouch.DefaultProcessOptions()
	if defaults != nil {
		opts = *defaults
	}
	if set["rounds"] {
		opts.Rounds = p.rounds
	}
	if set["style"] {
		opts.Style = humantouch.Style(p.style)
	}
	if set["target-score"] {
		opts.TargetScore = humantouch.Float64(p.targetScore)
	}
	if set["preserve-formatting"] {
		opts.PreserveFormatting = p.preserveFormatting
	}
	return &opts
}
