package docker

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cast"

	"github.com/shinji-kodama/paramobj/options"
)

// DefaultPrefix is the label prefix used by the CLI for EnvOptions.
// The trailing dot separates the namespace from the option name.
const DefaultPrefix = "worktree."

// LabelKey returns the label key for an option key under prefix:
//
//	LabelKey("worktree.", "worktree_path") → "worktree.worktree-path"
func LabelKey(prefix, key string) string {
	return prefix + strings.ReplaceAll(key, "_", "-")
}

// OptionKey is the inverse of LabelKey. ok is false when label does not
// start with prefix or has nothing after it.
func OptionKey(prefix, label string) (key string, ok bool) {
	rest, found := strings.CutPrefix(label, prefix)
	if !found || rest == "" {
		return "", false
	}
	return strings.ReplaceAll(rest, "-", "_"), true
}

// BuildLabels encodes an options export as Docker labels, one label per
// option. Nil values are left out, since a label cannot express "unset".
//
// Values are rendered so that ParseLabels followed by Container.Load gives
// them back: times as RFC3339 in UTC, string slices joined by single
// spaces, everything else through cast.ToStringE.
func BuildLabels(prefix string, pairs options.Pairs) (map[string]string, error) {
	labels := make(map[string]string, len(pairs))
	for _, kv := range pairs {
		if kv.Value == nil {
			continue
		}
		value, err := labelValue(kv.Value)
		if err != nil {
			return nil, fmt.Errorf("option %q cannot be stored as a label: %w", kv.Key, err)
		}
		labels[LabelKey(prefix, kv.Key)] = value
	}
	return labels, nil
}

func labelValue(v any) (string, error) {
	switch v := v.(type) {
	case time.Time:
		if v.IsZero() {
			return "", nil
		}
		return v.UTC().Format(time.RFC3339), nil
	case []string:
		for _, s := range v {
			if strings.ContainsAny(s, " \t\n") {
				return "", fmt.Errorf("list element %q contains whitespace", s)
			}
		}
		return strings.Join(v, " "), nil
	}
	return cast.ToStringE(v)
}

// ParseLabels extracts the labels under prefix as option pairs, sorted by
// label key so loading them is deterministic. Labels outside the prefix are
// ignored. Empty values are left out: BuildLabels writes them only for
// zero values, which loading would not change.
func ParseLabels(prefix string, labels map[string]string) options.Pairs {
	keys := make([]string, 0, len(labels))
	for label := range labels {
		if _, ok := OptionKey(prefix, label); ok {
			keys = append(keys, label)
		}
	}
	sort.Strings(keys)

	pairs := make(options.Pairs, 0, len(keys))
	for _, label := range keys {
		if labels[label] == "" {
			continue
		}
		key, _ := OptionKey(prefix, label)
		pairs = append(pairs, options.Pair{Key: key, Value: labels[label]})
	}
	return pairs
}
