// Package source reads option files into ordered options.Pairs.
//
// JSON files may contain comments and trailing commas (JSONC); they are
// cleaned with github.com/tidwall/jsonc before decoding. YAML files are
// decoded with gopkg.in/yaml.v3. In both cases the top-level key order of
// the document is kept, so options are applied in the order they were
// written.
package source
