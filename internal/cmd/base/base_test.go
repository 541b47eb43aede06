package base

import (
	"flag"
	"strings"
	"testing"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/cli"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/humantouch-dev/humantouch-go/pkg/humantouch"
)

func newTestCommand(t *testing.T) (*Command, *cli.MockUi) {
	t.Helper()
	ui := cli.NewMockUi()
	c := NewCommand(hclog.NewNullLogger(), ui)
	c.FS = afero.NewMemMapFs()
	c.Stdin = strings.NewReader("from stdin")
	return c, ui
}

func TestRender(t *testing.T) {
	resp := humantouch.ProcessResponse{
		ProcessedText:   "Hello there.",
		OriginalLength:  11,
		ProcessedLength: 12,
		DetectionScores: humantouch.DetectionScores{ZeroGPT: 0.1, GPTZero: 0.2, Copyleaks: 0.3},
		RoundsUsed:      2,
	}

	t.Run("text", func(t *testing.T) {
		out, err := Render(FormatText, resp)
		require.NoError(t, err)

		lines := strings.Split(out, "\n")
		assert.Equal(t, "processed text: Hello there.", lines[0])
		assert.Equal(t, "original length: 11", lines[1])
		assert.Contains(t, out, "detection scores:\n  zerogpt: 0.1\n  gptzero: 0.2\n  copyleaks: 0.3")
		assert.Contains(t, out, "rounds used: 2")
		assert.NotContains(t, out, "model used")
	})

	t.Run("json", func(t *testing.T) {
		out, err := Render(FormatJSON, resp)
		require.NoError(t, err)
		assert.Contains(t, out, `"processed_text": "Hello there."`)
	})

	t.Run("yaml", func(t *testing.T) {
		out, err := Render(FormatYAML, resp)
		require.NoError(t, err)
		assert.Contains(t, out, "processed_text: Hello there.")
		assert.Contains(t, out, "detection_scores:\n    zerogpt: 0.1")
	})

	t.Run("unknown", func(t *testing.T) {
		_, err := Render("xml", resp)
		require.Error(t, err)
	})
}

func TestRender_TextMultilineAndLists(t *testing.T) {
	out, err := Render(FormatText, map[string]interface{}{
		"styles": []string{"casual", "academic"},
		"text":   "line one\nline two",
		"empty":  []string{},
	})
	require.NoError(t, err)

	assert.Contains(t, out, "styles:\n  - casual\n  - academic")
	assert.Contains(t, out, "text:\n  line one\n  line two")
	assert.Contains(t, out, "empty: none")
}

func TestFlagSet_Help(t *testing.T) {
	f := NewFlagSet(flag.NewFlagSet("test", flag.ContinueOnError))
	var name string
	var verbose bool
	f.StringVar(&name, "name", "world", "Who to greet")
	f.BoolVar(&verbose, "verbose", false, "Print more")

	help := f.Help()
	assert.Contains(t, help, "Options:")
	assert.Contains(t, help, "-name=world\n      Who to greet")
	assert.Contains(t, help, "-verbose\n      Print more")
}

func TestFlagSet_StringSlice(t *testing.T) {
	f := NewFlagSet(flag.NewFlagSet("test", flag.ContinueOnError))
	var detectors []string
	f.StringSliceVar(&detectors, "detectors", "Detectors")

	require.NoError(t, f.Parse([]string{"-detectors", "zerogpt, gptzero", "-detectors=copyleaks"}))
	assert.Equal(t, []string{"zerogpt", "gptzero", "copyleaks"}, detectors)
}

func TestProcessFlags_Options(t *testing.T) {
	parse := func(t *testing.T, args ...string) (*ProcessFlags, *FlagSet) {
		t.Helper()
		p := &ProcessFlags{}
		f := NewFlagSet(flag.NewFlagSet("test", flag.ContinueOnError))
		p.Register(f)
		require.NoError(t, f.Parse(args))
		return p, f
	}

	t.Run("nothing set", func(t *testing.T) {
		p, f := parse(t)
		assert.Nil(t, p.Options(f, nil))
	})

	t.Run("defaults only", func(t *testing.T) {
		p, f := parse(t)
		defaults := &humantouch.ProcessOptions{Rounds: 4, Style: humantouch.StyleAcademic}
		assert.Equal(t, defaults, p.Options(f, defaults))
	})

	t.Run("flags override defaults", func(t *testing.T) {
		p, f := parse(t, "-style=creative", "-target-score=0")
		defaults := &humantouch.ProcessOptions{Rounds: 4, Style: humantouch.StyleAcademic, TargetScore: humantouch.Float64(0.5)}

		opts := p.Options(f, defaults)
		require.NotNil(t, opts)
		assert.Equal(t, 4, opts.Rounds)
		assert.Equal(t, humantouch.StyleCreative, opts.Style)
		require.NotNil(t, opts.TargetScore)
		assert.Equal(t, 0.0, *opts.TargetScore)
		assert.Equal(t, 0.5, *defaults.TargetScore)
	})

	t.Run("flags without defaults", func(t *testing.T) {
		p, f := parse(t, "-rounds=7")
		opts := p.Options(f, nil)
		require.NotNil(t, opts)
		assert.Equal(t, 7, opts.Rounds)
		assert.Equal(t, humantouch.StyleCasual, opts.Style)
	})
}

func TestCommand_ReadInput(t *testing.T) {
	c, _ := newTestCommand(t)
	require.NoError(t, afero.WriteFile(c.FS, "in.txt", []byte("from file"), 0o644))

	text, err := c.ReadInput("in.txt")
	require.NoError(t, err)
	assert.Equal(t, "from file", text)

	text, err = c.ReadInput("-")
	require.NoError(t, err)
	assert.Equal(t, "from stdin", text)

	_, err = c.ReadInput("missing.txt")
	require.Error(t, err)
}

func TestCommand_ClientPrecedence(t *testing.T) {
	c, _ := newTestCommand(t)
	require.NoError(t, afero.WriteFile(c.FS, "humantouch.hcl", []byte(`
humantouch {
  base_url = "https://file.example.com"
  api_key  = "file-key"
  timeout  = "7s"
}
`), 0o644))
	require.NoError(t, afero.WriteFile(c.FS, ".env", []byte("HUMANTOUCH_BASE_URL=https://dotenv.example.com\n"), 0o644))

	f := NewFlagSet(flag.NewFlagSet("test", flag.ContinueOnError))
	c.ClientFlags(f)
	require.NoError(t, f.Parse([]string{"-config", "humantouch.hcl", "-api-key", "flag-key"}))
	require.NoError(t, c.Setup())

	client, cfg, err := c.Client()
	require.NoError(t, err)
	require.NotNil(t, cfg.HumanTouch)

	assert.Equal(t, "https://dotenv.example.com", client.BaseURL())
	assert.Equal(t, "flag-key", client.APIKey())
}

func TestCommand_Setup(t *testing.T) {
	c, _ := newTestCommand(t)
	f := NewFlagSet(flag.NewFlagSet("test", flag.ContinueOnError))
	c.OutputFlags(f)

	require.NoError(t, f.Parse([]string{"-format=csv"}))
	assert.Error(t, c.Setup())

	c, _ = newTestCommand(t)
	f = NewFlagSet(flag.NewFlagSet("test", flag.ContinueOnError))
	c.OutputFlags(f)
	require.NoError(t, f.Parse([]string{"-log-level=loud"}))
	assert.Error(t, c.Setup())
}

func TestCommand_Fail(t *testing.T) {
	c, ui := newTestCommand(t)

	code := c.Fail(&humantouch.Error{
		Kind:    humantouch.KindValidation,
		Code:    humantouch.CodeInvalidParameters,
		Message: "invalid request parameters",
		Details: "rounds: must be no greater than 10.",
	})

	assert.Equal(t, 1, code)
	assert.Contains(t, ui.ErrorWriter.String(), "[INVALID_PARAMETERS] invalid request parameters")
	assert.Contains(t, ui.ErrorWriter.String(), "details: rounds")
}

func TestRender_Timestamps(t *testing.T) {
	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	out, err := Render(FormatText, humantouch.TaskStatusResponse{
		TaskID:    "task_1",
		Status:    humantouch.TaskStatusPending,
		CreatedAt: &created,
	})
	require.NoError(t, err)
	assert.Contains(t, out, "task id: task_1")
	assert.Contains(t, out, "status: pending")
	assert.Contains(t, out, "created at: 2024-01-01T00:00:00Z")
}
