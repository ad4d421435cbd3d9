package options

import (
	"strings"
	"unicode"

	"github.com/huandu/xstrings"
)

const (
	setterPrefix = "Set"
	getterPrefix = "Get"
)

// SetterName returns the setter method name for an option key.
//
//	SetterName("listen_addr") → "SetListenAddr"
//	SetterName("listen addr") → "SetListenAddr"
func SetterName(key string) string {
	return setterPrefix + camelKey(key)
}

// GetterName returns the getter method name for an option key.
func GetterName(key string) string {
	return getterPrefix + camelKey(key)
}

// camelKey splits key on underscores and spaces and upper-cases the first
// rune of every word. Runs of separators collapse, so "a__b" and "a b"
// both give "AB". The rest of each word keeps its case.
func camelKey(key string) string {
	words := strings.FieldsFunc(key, func(r rune) bool {
		return r == '_' || r == ' '
	})

	var b strings.Builder
	b.Grow(len(key))
	for _, w := range words {
		b.WriteString(xstrings.FirstRuneToUpper(w))
	}
	return b.String()
}

// SnakeName converts a Go field or method-suffix name to an option key by
// putting an underscore before every upper-case rune and lower-casing it.
// A leading underscore is dropped.
//
//	SnakeName("ListenAddr") → "listen_addr"
//	SnakeName("listenAddr") → "listen_addr"
//	SnakeName("Ipv4Addr")   → "ipv4_addr"
//	SnakeName("HTTPPort")   → "h_t_t_p_port"
//
// Acronyms are spelled out letter by letter. Name such fields HttpPort, or
// rely on case-insensitive accessor lookup: "http_port" still reaches
// SetHTTPPort.
//
// For keys made of lower-case words joined by single underscores,
// SnakeName(strings.TrimPrefix(SetterName(k), "Set")) == k.
func SnakeName(name string) string {
	var b strings.Builder
	b.Grow(len(name) + 4)
	for _, r := range name {
		if unicode.IsUpper(r) {
			b.WriteByte('_')
			r = unicode.ToLower(r)
		}
		b.WriteRune(r)
	}
	return strings.TrimPrefix(b.String(), "_")
}
