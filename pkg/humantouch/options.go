package humantouch

import (
	"errors"
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/hashicorp/go-multierror"
)

// Style selects the rewriting register.
type Style string

const (
	StyleCasual       Style = "casual"
	StyleAcademic     Style = "academic"
	StyleProfessional Style = "professional"
	StyleCreative     Style = "creative"
)

// Request limits enforced before sending.
const (
	MinRounds    = 1
	MaxRounds    = 10
	MaxBatchSize = 10

	DefaultTargetScore = 0.1
)

// ProcessOptions tunes a process, batch or async request.
type ProcessOptions struct {
	// Rounds of rewriting. Zero selects the default (3).
	Rounds int `json:"rounds" yaml:"rounds"`

	// Style of the rewrite. Empty selects the default (casual).
	Style Style `json:"style" yaml:"style"`

	// TargetScore is the detector score to aim for, in [0,1]. Nil selects
	// the default (0.1); use Float64 to send an explicit value, including 0.
	TargetScore *float64 `json:"target_score" yaml:"target_score"`

	PreserveFormatting bool `json:"preserve_formatting" yaml:"preserve_formatting"`
}

// DefaultProcessOptions returns the service defaults.
func DefaultProcessOptions() ProcessOptions {
	return ProcessOptions{
		Rounds:      3,
		Style:       StyleCasual,
		TargetScore: Float64(DefaultTargetScore),
	}
}

// Float64 returns a pointer to v, for optional fields such as TargetScore.
func Float64(v float64) *float64 {
	return &v
}

func (o ProcessOptions) withDefaults() ProcessOptions {
	defaults := DefaultProcessOptions()
	if o.Rounds == 0 {
		o.Rounds = defaults.Rounds
	}
	if o.Style == "" {
		o.Style = defaults.Style
	}
	if o.TargetScore == nil {
		o.TargetScore = defaults.TargetScore
	} else {
		o.TargetScore = Float64(*o.TargetScore)
	}
	return o
}

// Validate checks the options against the service limits.
func (o ProcessOptions) Validate() error {
	return validation.ValidateStruct(&o,
		validation.Field(&o.Rounds, validation.Min(MinRounds), validation.Max(MaxRounds)),
		validation.Field(&o.Style, validation.In(StyleCasual, StyleAcademic, StyleProfessional, StyleCreative)),
		validation.Field(&o.TargetScore, validation.Min(0.0), validation.Max(1.0)),
	)
}

// AsyncOptions extends ProcessOptions with a completion webhook.
type AsyncOptions struct {
	ProcessOptions `yaml:",inline"`

	// NotifyURL is passed through to the service, which calls it when the
	// task finishes.
	NotifyURL string `json:"notify_url,omitempty" yaml:"notify_url,omitempty"`
}

func (o AsyncOptions) Validate() error {
	return validation.ValidateStruct(&o,
		validation.Field(&o.ProcessOptions),
		validation.Field(&o.NotifyURL, validation.By(httpURL)),
	)
}

// validateText rejects empty and whitespace-only input.
func validateText(text string) error {
	return validation.Validate(text, validation.Required, validation.By(notBlank))
}

func notBlank(value interface{}) error {
	s, _ := value.(string)
	if s != "" && strings.TrimSpace(s) == "" {
		return errors.New("cannot be blank")
	}
	return nil
}

// validateTexts checks a batch, reporting every bad entry.
func validateTexts(texts []string) error {
	if err := validation.Validate(texts,
		validation.Required,
		validation.Length(1, MaxBatchSize),
	); err != nil {
		return fmt.Errorf("texts: %w", err)
	}

	var result *multierror.Error
	for i, text := range texts {
		if err := validateText(text); err != nil {
			result = multierror.Append(result, fmt.Errorf("texts[%d]: %w", i, err))
		}
	}
	return result.ErrorOrNil()
}

func validateDetectors(detectors []string) error {
	return validation.Validate(detectors,
		validation.Each(validation.In(DetectorZeroGPT, DetectorGPTZero, DetectorCopyleaks)),
	)
}

func validateTaskID(taskID string) error {
	if err := validation.Validate(taskID, validation.Required, validation.By(notBlank)); err != nil {
		return fmt.Errorf("task_id: %w", err)
	}
	return nil
}
