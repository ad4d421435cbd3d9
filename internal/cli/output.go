package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/gookit/color"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/shinji-kodama/paramobj/options"
)

// Format is an output format selected with --output.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat validates an --output value.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatText, FormatJSON, FormatYAML:
		return f, nil
	default:
		return "", fmt.Errorf("unknown output format %q (valid: text, json, yaml)", s)
	}
}

// currentFormat returns the format chosen by the global flags.
// PersistentPreRunE has already validated it.
func currentFormat() Format {
	f, err := ParseFormat(outputFormat)
	if err != nil {
		return FormatText
	}
	return f
}

// useColor reports whether w is a terminal. Colour is never used for
// pipes, files or test buffers.
func useColor(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// printPairs writes an options export in the selected format. JSON and
// YAML keep the key order of pairs.
func printPairs(w io.Writer, pairs options.Pairs) error {
	switch currentFormat() {
	case FormatJSON:
		data, err := json.MarshalIndent(pairs, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode options as JSON: %w", err)
		}
		fmt.Fprintln(w, string(data))
		return nil
	case FormatYAML:
		return writeYAML(w, pairs)
	}

	width := 0
	for _, kv := range pairs {
		width = max(width, len(kv.Key))
	}

	colored := useColor(w)
	for _, kv := range pairs {
		key := fmt.Sprintf("%-*s", width, kv.Key)
		value := formatValue(kv.Value)
		if colored {
			key = color.Cyan.Sprint(key)
			if value == "-" {
				value = color.Yellow.Sprint(value)
			}
		}
		fmt.Fprintf(w, "%s  %s\n", key, value)
	}
	return nil
}

// printLabels writes a label map sorted by key. Text output uses the
// "key=value" form accepted by docker run --label.
func printLabels(w io.Writer, labels map[string]string) error {
	keys := make([]string, 0, len(labels))
	for k := range labels {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	switch currentFormat() {
	case FormatJSON:
		data, err := json.MarshalIndent(labels, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(w, string(data))
		return nil
	case FormatYAML:
		pairs := make(options.Pairs, 0, len(keys))
		for _, k := range keys {
			pairs = append(pairs, options.Pair{Key: k, Value: labels[k]})
		}
		return writeYAML(w, pairs)
	}

	colored := useColor(w)
	for _, k := range keys {
		if colored {
			fmt.Fprintf(w, "%s=%s\n", color.Cyan.Sprint(k), labels[k])
			continue
		}
		fmt.Fprintf(w, "%s=%s\n", k, labels[k])
	}
	return nil
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}
	return enc.Close()
}

// formatValue renders an option value for text output. Unset values,
// empty strings and empty lists are shown as "-".
func formatValue(v any) string {
	switch v := v.(type) {
	case nil:
		return "-"
	case string:
		if v == "" {
			return "-"
		}
		return v
	case []string:
		if len(v) == 0 {
			return "-"
		}
		return strings.Join(v, ", ")
	case time.Time:
		if v.IsZero() {
			return "-"
		}
		return v.Format(time.RFC3339)
	case fmt.Stringer:
		if s := v.String(); s != "" {
			return s
		}
		return "-"
	default:
		return fmt.Sprint(v)
	}
}
