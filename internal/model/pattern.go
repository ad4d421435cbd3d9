package model

import (
	"fmt"
	"strings"
)

// ConfigPattern represents the type of devcontainer configuration a
// worktree environment was created from.
type ConfigPattern string

const (
	// PatternImage uses a pre-built container image directly.
	PatternImage ConfigPattern = "image"

	// PatternDockerfile builds an image from a Dockerfile.
	PatternDockerfile ConfigPattern = "dockerfile"

	// PatternComposeSingle uses Docker Compose with a single service.
	PatternComposeSingle ConfigPattern = "compose-single"

	// PatternComposeMulti uses Docker Compose with multiple services.
	PatternComposeMulti ConfigPattern = "compose-multi"
)

// String returns the string representation of ConfigPattern.
func (p ConfigPattern) String() string {
	return string(p)
}

// IsValid checks whether the ConfigPattern value is one of the
// predefined valid patterns.
func (p ConfigPattern) IsValid() bool {
	switch p {
	case PatternImage, PatternDockerfile, PatternComposeSingle, PatternComposeMulti:
		return true
	default:
		return false
	}
}

// ParseConfigPattern converts a string to a ConfigPattern.
// Returns an error if the string does not match any valid pattern.
func ParseConfigPattern(s string) (ConfigPattern, error) {
	pattern := ConfigPattern(strings.ToLower(s))
	if !pattern.IsValid() {
		return "", fmt.Errorf("invalid config pattern: %q (valid: image, dockerfile, compose-single, compose-multi)", s)
	}
	return pattern, nil
}
