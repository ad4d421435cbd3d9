package source

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/shinji-kodama/paramobj/internal/model"
	"github.com/shinji-kodama/paramobj/options"
)

// Format identifies the syntax of an option file.
type Format string

const (
	// FormatJSON is JSON, with JSONC comments and trailing commas allowed.
	FormatJSON Format = "json"

	// FormatYAML is YAML.
	FormatYAML Format = "yaml"
)

// DirName and BaseName are the standard option file locations searched by
// FindConfigFile: <dir>/.paramobj/options.<ext> and <dir>/.paramobj.<ext>.
const (
	DirName  = ".paramobj"
	BaseName = "options"
)

// extensions lists the recognised file extensions in search order.
var extensions = []string{".yaml", ".yml", ".json", ".jsonc"}

// FormatOf returns the format for path based on its extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".jsonc":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unsupported option file extension %q (valid: %s)",
			filepath.Ext(path), strings.Join(extensions, ", "))
	}
}

// LoadFile reads an option file and returns its top-level mapping as
// ordered pairs.
//
// Returns a CLIError with ExitSourceNotFound if the file does not exist.
func LoadFile(path string) (options.Pairs, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, model.WrapCLIError(model.ExitInvalidOptions, "cannot load options", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, model.WrapCLIError(
				model.ExitSourceNotFound,
				fmt.Sprintf("options file not found: %s", path),
				err,
			)
		}
		return nil, fmt.Errorf("failed to read options file: %w", err)
	}

	pairs, err := Parse(format, data)
	if err != nil {
		return nil, model.WrapCLIError(
			model.ExitInvalidOptions,
			fmt.Sprintf("failed to parse options file %s", path),
			err,
		)
	}
	return pairs, nil
}

// Parse decodes data in the given format. An empty document yields no pairs.
func Parse(format Format, data []byte) (options.Pairs, error) {
	var pairs options.Pairs

	switch format {
	case FormatJSON:
		clean := jsonc.ToJSON(data)
		if len(strings.TrimSpace(string(clean))) == 0 {
			return options.Pairs{}, nil
		}
		if err := json.Unmarshal(clean, &pairs); err != nil {
			return nil, err
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &pairs); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unknown format %q", format)
	}

	if pairs == nil {
		pairs = options.Pairs{}
	}
	return pairs, nil
}

// FindConfigFile searches dir for an option file in the standard
// locations, in order:
//  1. <dir>/.paramobj/options.{yaml,yml,json,jsonc}
//  2. <dir>/.paramobj.{yaml,yml,json,jsonc}
//
// Returns a CLIError with ExitSourceNotFound if none exists.
func FindConfigFile(dir string) (string, error) {
	var candidates []string
	for _, ext := range extensions {
		candidates = append(candidates, filepath.Join(dir, DirName, BaseName+ext))
	}
	for _, ext := range extensions {
		candidates = append(candidates, filepath.Join(dir, DirName+ext))
	}

	for _, path := range candidates {
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, nil
		}
	}

	return "", model.NewCLIError(
		model.ExitSourceNotFound,
		fmt.Sprintf("no options file found in %s (searched %s/%s.* and %s.*)", dir, DirName, BaseName, DirName),
	)
}
