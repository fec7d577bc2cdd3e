package host

import (
	"errors"
	"log/slog"

	"github.com/sghaida/ohost/config"
	"github.com/sghaida/ohost/di"
)

// Phase names the builder phase an error originated from.
type Phase string

const (
	// PhaseConfiguration is the configuration-building phase.
	PhaseConfiguration Phase = "configuration"

	// PhaseServices is the service-registration phase.
	PhaseServices Phase = "services"
)

// PhaseError wraps a callback failure with the phase it occurred in.
type PhaseError struct {
	Phase Phase
	Err   error
}

// Error implements the error interface.
func (e PhaseError) Error() string {
	// Example: host: configuration phase: config: source "file:app.yaml": ...
	return "host: " + string(e.Phase) + " phase: " + e.Err.Error()
}

// Unwrap exposes the callback's error for errors.Is / errors.As.
func (e PhaseError) Unwrap() error { return e.Err }

// Context carries the state available to service-phase callbacks.
type Context struct {
	// Args are the command-line arguments the builder was created with.
	Args []string

	// Configuration is the snapshot built during the configuration phase.
	Configuration *config.Configuration

	// Logger is the host's structured logger.
	Logger *slog.Logger
}

// ConfigureFunc is a configuration-phase callback.
type ConfigureFunc func(*config.Builder) error

// ServicesFunc is a service-phase callback.
type ServicesFunc func(Context, *di.Collection) error

// Builder accumulates phase callbacks and produces a Host.
//
// All registration methods return the same builder for chaining and keep
// accepting calls after a recorded error; Build surfaces the first recorded
// error without running any callbacks. A Builder is not safe for concurrent
// use.
type Builder struct {
	args          []string
	logger        *slog.Logger
	configBuilder *config.Builder
	configFns     []ConfigureFunc
	serviceFns    []ServicesFunc
	errs          []error
}

// New returns a Builder over the given command-line arguments.
//
// The arguments are exposed to service-phase callbacks via Context; the
// builder itself does not interpret them.
func New(args ...string) *Builder {
	return &Builder{
		args:          args,
		logger:        slog.Default().With(slog.String("component", "host")),
		configBuilder: config.NewBuilder(),
	}
}

// UseLogger replaces the host logger. A nil logger is ignored.
func (b *Builder) UseLogger(logger *slog.Logger) *Builder {
	if logger != nil {
		b.logger = logger
	}
	return b
}

// ConfigureConfiguration registers a configuration-phase callback.
//
// If fn is nil, the call is a no-op.
func (b *Builder) ConfigureConfiguration(fn ConfigureFunc) *Builder {
	if fn != nil {
		b.configFns = append(b.configFns, fn)
	}
	return b
}

// ConfigureServices registers a service-phase callback.
//
// If fn is nil, the call is a no-op.
func (b *Builder) ConfigureServices(fn ServicesFunc) *Builder {
	if fn != nil {
		b.serviceFns = append(b.serviceFns, fn)
	}
	return b
}

// Err returns the errors recorded on the builder so far, joined.
func (b *Builder) Err() error {
	return errors.Join(b.errs...)
}

// fail records an error on the builder and keeps the chain usable.
func (b *Builder) fail(err error) *Builder {
	b.errs = append(b.errs, err)
	return b
}

// Build runs both phases and produces the Host.
//
// Sequence: every configuration callback in registration order, then the
// snapshot build, then every service callback in registration order, then
// the provider build. The first failure aborts with a PhaseError. If errors
// were recorded on the builder (e.g. by UseStartup), Build returns them
// without running any callbacks.
func (b *Builder) Build() (*Host, error) {
	if err := b.Err(); err != nil {
		return nil, err
	}

	for _, fn := range b.configFns {
		if err := fn(b.configBuilder); err != nil {
			return nil, PhaseError{Phase: PhaseConfiguration, Err: err}
		}
	}
	snapshot, err := b.configBuilder.Build()
	if err != nil {
		return nil, PhaseError{Phase: PhaseConfiguration, Err: err}
	}

	services := di.NewCollection()
	hctx := Context{
		Args:          append([]string(nil), b.args...),
		Configuration: snapshot,
		Logger:        b.logger,
	}
	for _, fn := range b.serviceFns {
		if err := fn(hctx, services); err != nil {
			return nil, PhaseError{Phase: PhaseServices, Err: err}
		}
	}

	return &Host{
		configuration: snapshot,
		provider:      services.Build(),
		logger:        b.logger,
	}, nil
}
