package config

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// Configuration is an immutable snapshot of merged configuration values.
//
// Values are stored under flattened dotted keys. A snapshot is safe for
// concurrent use; it is never mutated after Build.
type Configuration struct {
	values map[string]any
}

// Get returns the raw value under key rendered as a string.
func (c *Configuration) Get(key string) (string, bool) {
	v, ok := c.values[key]
	if !ok {
		return "", false
	}
	return fmt.Sprint(v), true
}

// Has reports whether key is present.
func (c *Configuration) Has(key string) bool {
	_, ok := c.values[key]
	return ok
}

// GetString returns the value under key, or def when absent.
func (c *Configuration) GetString(key, def string) string {
	if v, ok := c.Get(key); ok {
		return v
	}
	return def
}

// GetInt returns the value under key as an int, or def when absent or not
// numeric.
func (c *Configuration) GetInt(key string, def int) int {
	v, ok := c.values[key]
	if !ok {
		return def
	}
	switch x := v.(type) {
	case int:
		return x
	case int64:
		return int(x)
	case float64:
		return int(x)
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(x)); err == nil {
			return n
		}
	}
	return def
}

// GetBool returns the value under key as a bool, or def when absent or not
// parseable.
func (c *Configuration) GetBool(key string, def bool) bool {
	v, ok := c.values[key]
	if !ok {
		return def
	}
	switch x := v.(type) {
	case bool:
		return x
	case string:
		if b, err := strconv.ParseBool(strings.TrimSpace(x)); err == nil {
			return b
		}
	}
	return def
}

// GetDuration returns the value under key parsed with time.ParseDuration,
// or def when absent or invalid.
func (c *Configuration) GetDuration(key string, def time.Duration) time.Duration {
	v, ok := c.Get(key)
	if !ok {
		return def
	}
	if d, err := time.ParseDuration(strings.TrimSpace(v)); err == nil {
		return d
	}
	return def
}

// Keys returns all present keys, sorted.
func (c *Configuration) Keys() []string {
	out := make([]string, 0, len(c.values))
	for k := range c.values {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Bind decodes the subtree under prefix into out.
//
// The subtree is rebuilt into a nested document and decoded via YAML struct
// tags, then envconfig-tagged fields are overridden from the environment
// using the upper-cased prefix (so Bind("server", &cfg) processes SERVER_*
// variables for `envconfig:"..."` tags). An empty prefix binds the whole
// snapshot.
func (c *Configuration) Bind(prefix string, out any) error {
	sub := map[string]any{}
	want := prefix
	if want != "" {
		want += "."
	}
	for k, v := range c.values {
		if want == "" {
			sub[k] = v
			continue
		}
		if strings.HasPrefix(k, want) {
			sub[strings.TrimPrefix(k, want)] = v
		}
	}

	doc := unflatten(sub)
	data, err := yaml.Marshal(doc)
	if err != nil {
		return BindError{Prefix: prefix, Err: err}
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return BindError{Prefix: prefix, Err: err}
	}

	envPrefix := strings.ToUpper(strings.ReplaceAll(prefix, ".", "_"))
	if err := envconfig.Process(envPrefix, out); err != nil {
		return BindError{Prefix: prefix, Err: err}
	}
	return nil
}

// unflatten rebuilds a nested document from flattened dotted keys. Maps whose
// keys are all consecutive zero-based integers are converted back to slices.
func unflatten(flat map[string]any) any {
	root := map[string]any{}
	for k, v := range flat {
		parts := strings.Split(k, ".")
		node := root
		for i, part := range parts {
			if i == len(parts)-1 {
				node[part] = v
				break
			}
			next, ok := node[part].(map[string]any)
			if !ok {
				// a scalar on the path loses to the deeper structure
				next = map[string]any{}
				node[part] = next
			}
			node = next
		}
	}
	return sequences(root)
}

func sequences(v any) any {
	m, ok := v.(map[string]any)
	if !ok {
		return v
	}
	for k, vv := range m {
		m[k] = sequences(vv)
	}
	if len(m) == 0 {
		return m
	}
	seq := make([]any, len(m))
	for k, vv := range m {
		i, err := strconv.Atoi(k)
		if err != nil || i < 0 || i >= len(m) {
			return m
		}
		seq[i] = vv
	}
	return seq
}
