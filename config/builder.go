package config

// Builder accumulates configuration sources in order.
//
// A Builder is not safe for concurrent mutation; populate it from a single
// goroutine. Build may be called more than once and re-reads every source
// each time.
type Builder struct {
	sources []Source
	errs    []error
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// AddSource appends a source layer. Later sources override earlier ones.
func (b *Builder) AddSource(s Source) *Builder {
	if s == nil {
		b.errs = append(b.errs, ErrNilSource)
		return b
	}
	b.sources = append(b.sources, s)
	return b
}

// AddMap appends an in-memory layer with the given dotted key/value pairs.
func (b *Builder) AddMap(values map[string]any) *Builder {
	s := NewMapSource()
	for k, v := range values {
		s.Provide(k, v)
	}
	return b.AddSource(s)
}

// AddFile appends a required YAML file layer.
func (b *Builder) AddFile(path string) *Builder {
	return b.AddSource(NewFileSource(path))
}

// AddOptionalFile appends a YAML file layer that may be absent.
func (b *Builder) AddOptionalFile(path string) *Builder {
	return b.AddSource(NewFileSource(path).Optional())
}

// AddEnv appends an environment variable layer with the given prefix.
func (b *Builder) AddEnv(prefix string) *Builder {
	return b.AddSource(NewEnvSource(prefix))
}

// Sources returns the current layers in order. The slice is a copy.
func (b *Builder) Sources() []Source {
	out := make([]Source, len(b.sources))
	copy(out, b.sources)
	return out
}

// Build merges all sources in order into an immutable snapshot.
//
// The first failing source aborts the build with a SourceError identifying
// it.
func (b *Builder) Build() (*Configuration, error) {
	if len(b.errs) > 0 {
		return nil, b.errs[0]
	}
	merged := map[string]any{}
	for _, s := range b.sources {
		layer, err := s.Load()
		if err != nil {
			return nil, SourceError{Name: s.Name(), Err: err}
		}
		for k, v := range layer {
			merged[k] = v
		}
	}
	return &Configuration{values: merged}, nil
}
