package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// FileSource reads a YAML document and flattens it into dotted keys.
//
// Nested mappings become dotted paths, sequences become zero-based indexed
// keys ("peers.0"). The file is re-read on every Build, which is what makes
// WatchFiles-driven rebuilds pick up edits.
type FileSource struct {
	path     string
	optional bool
}

// NewFileSource returns a source over a YAML file at path.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// Optional marks the file as allowed to be absent: a missing file loads as an
// empty layer instead of failing the build. Parse errors still fail.
func (s *FileSource) Optional() *FileSource {
	s.optional = true
	return s
}

// Name implements Source.
func (s *FileSource) Name() string { return "file:" + s.path }

// Load implements Source.
func (s *FileSource) Load() (map[string]any, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if s.optional && os.IsNotExist(err) {
			return map[string]any{}, nil
		}
		return nil, err
	}
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	out := map[string]any{}
	flatten("", doc, out)
	return out, nil
}

// flatten walks a decoded YAML value and records scalar leaves under dotted
// keys in out.
func flatten(prefix string, v any, out map[string]any) {
	switch x := v.(type) {
	case map[string]any:
		for k, vv := range x {
			flatten(joinKey(prefix, k), vv, out)
		}
	case map[any]any:
		// yaml.v3 decodes string-keyed mappings as map[string]any; non-string
		// keys still arrive in this form.
		for k, vv := range x {
			flatten(joinKey(prefix, fmt.Sprint(k)), vv, out)
		}
	case []any:
		for i, vv := range x {
			flatten(joinKey(prefix, strconv.Itoa(i)), vv, out)
		}
	case nil:
		// empty documents and explicit nulls contribute nothing
	default:
		if prefix != "" {
			out[prefix] = v
		}
	}
}

func joinKey(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}
