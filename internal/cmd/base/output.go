package base

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/iancoleman/strcase"
	"gopkg.in/yaml.v3"
)

// Output formats accepted by -format.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Output writes v to the UI in the selected format.
func (c *Command) Output(v interface{}) error {
	s, err := Render(c.flagFormat, v)
	if err != nil {
		return err
	}
	c.UI.Output(s)
	return nil
}

// Render formats v as text, JSON or YAML. Text output labels fields in
// plain words and keeps struct field order.
func Render(format string, v interface{}) (string, error) {
	switch format {
	case FormatJSON:
		b, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return "", fmt.Errorf("failed to encode json: %w", err)
		}
		return string(b), nil

	case FormatYAML:
		b, err := yaml.Marshal(v)
		if err != nil {
			return "", fmt.Errorf("failed to encode yaml: %w", err)
		}
		return strings.TrimRight(string(b), "\n"), nil

	case "", FormatText:
		var node yaml.Node
		if err := node.Encode(v); err != nil {
			return "", fmt.Errorf("failed to encode output: %w", err)
		}
		var b strings.Builder
		writeNode(&b, &node, 0)
		return strings.TrimRight(b.String(), "\n"), nil

	default:
		return "", fmt.Errorf("unknown output format: %q", format)
	}
}

func writeNode(b *strings.Builder, n *yaml.Node, depth int) {
	pad := strings.Repeat("  ", depth)

	switch n.Kind {
	case yaml.DocumentNode:
		for _, child := range n.Content {
			writeNode(b, child, depth)
		}

	case yaml.MappingNode:
		for i := 0; i+1 < len(n.Content); i += 2 {
			key, val := n.Content[i], n.Content[i+1]
			label := strcase.ToDelimited(key.Value, ' ')
			if val.Kind == yaml.ScalarNode {
				fmt.Fprintf(b, "%s%s:%s\n", pad, label, scalar(val, depth))
				continue
			}
			if len(val.Content) == 0 {
				fmt.Fprintf(b, "%s%s: none\n", pad, label)
				continue
			}
			fmt.Fprintf(b, "%s%s:\n", pad, label)
			writeNode(b, val, depth+1)
		}

	case yaml.SequenceNode:
		for i, item := range n.Content {
			if item.Kind == yaml.ScalarNode {
				fmt.Fprintf(b, "%s-%s\n", pad, scalar(item, depth))
				continue
			}
			fmt.Fprintf(b, "%s[%d]\n", pad, i)
			writeNode(b, item, depth+1)
		}

	case yaml.ScalarNode:
		fmt.Fprintf(b, "%s%s\n", pad, strings.TrimPrefix(scalar(n, depth), " "))

	case yaml.AliasNode:
		if n.Alias != nil {
			writeNode(b, n.Alias, depth)
		}
	}
}

// scalar renders a value with its leading separator. Multi-line values
// start on their own line, indented under the label.
func scalar(n *yaml.Node, depth int) string {
	if !strings.Contains(n.Value, "\n") {
		return " " + n.Value
	}
	pad := "\n" + strings.Repeat("  ", depth+1)
	return pad + strings.ReplaceAll(strings.TrimRight(n.Value, "\n"), "\n", pad)
}
