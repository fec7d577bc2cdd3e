package config

import (
	"os"
	"strings"
)

// Source is a single configuration layer.
//
// Load returns a flattened view of the layer: dotted keys mapped to scalar
// values. Load is called on every Build, so sources should re-read their
// backing data each time.
type Source interface {
	// Name identifies the source in errors and logs.
	Name() string

	// Load returns the source's current key/value pairs.
	Load() (map[string]any, error)
}

// MapSource is a simple in-memory source.
//
// It is handy for defaults at the bottom of the layer stack and for tests.
type MapSource struct {
	items map[string]any
}

// NewMapSource returns an empty in-memory source.
func NewMapSource() *MapSource {
	return &MapSource{items: map[string]any{}}
}

// Provide stores a value under a dotted key and returns the source for
// chaining.
func (s *MapSource) Provide(key string, val any) *MapSource {
	s.items[key] = val
	return s
}

// Name implements Source.
func (s *MapSource) Name() string { return "map" }

// Load implements Source. It returns a copy, so later mutation via Provide
// does not alias a previously built snapshot.
func (s *MapSource) Load() (map[string]any, error) {
	out := make(map[string]any, len(s.items))
	for k, v := range s.items {
		out[k] = v
	}
	return out, nil
}

// EnvSource reads environment variables with a given prefix.
//
// A variable PREFIX_SERVER_PORT=8080 becomes the key "server.port" with the
// string value "8080". An empty prefix matches every variable.
type EnvSource struct {
	prefix string
}

// NewEnvSource returns a source over the current process environment.
//
// The prefix is matched with a trailing underscore: NewEnvSource("APP")
// matches APP_* variables.
func NewEnvSource(prefix string) *EnvSource {
	return &EnvSource{prefix: prefix}
}

// Name implements Source.
func (s *EnvSource) Name() string {
	if s.prefix == "" {
		return "env"
	}
	return "env:" + s.prefix
}

// Load implements Source.
func (s *EnvSource) Load() (map[string]any, error) {
	want := s.prefix
	if want != "" && !strings.HasSuffix(want, "_") {
		want += "_"
	}
	out := map[string]any{}
	for _, kv := range os.Environ() {
		name, val, ok := strings.Cut(kv, "=")
		if !ok {
			continue
		}
		if want != "" {
			if !strings.HasPrefix(name, want) {
				continue
			}
			name = strings.TrimPrefix(name, want)
		}
		if name == "" {
			continue
		}
		key := strings.ToLower(strings.ReplaceAll(name, "_", "."))
		out[key] = val
	}
	return out, nil
}
