package host

import (
	"reflect"
	"strconv"

	"github.com/sghaida/ohost/config"
	"github.com/sghaida/ohost/di"
)

// configureServicesMethod is the method name UseStartup looks up by
// convention.
const configureServicesMethod = "ConfigureServices"

// Startup is the contract-based startup type: it registers services into the
// collection.
type Startup interface {
	ConfigureServices(services *di.Collection) error
}

// Configurator is the optional companion to Startup for types that also add
// configuration sources.
type Configurator interface {
	ConfigureConfiguration(cb *config.Builder) error
}

// MissingConfigureServicesError is recorded on the builder when a type bound
// via UseStartup does not expose the expected ConfigureServices method.
type MissingConfigureServicesError struct{ Type reflect.Type }

// Error implements the error interface.
func (e MissingConfigureServicesError) Error() string {
	return "host: startup type " + strconv.Quote(e.Type.String()) +
		" has no method ConfigureServices(*di.Collection), optionally returning error"
}

// UseStartup binds a startup type T to the builder by convention.
//
// T (or *T) must expose a method named exactly ConfigureServices taking one
// parameter of type *di.Collection and returning either nothing or a single
// error. If it does not, the error is recorded on the builder immediately
// and nothing is registered; Build reports it.
//
// When the service phase runs, a fresh *T is constructed and — if T has an
// exported field of type *config.Configuration — that field is set to the
// snapshot captured during the configuration phase before the method is
// invoked. The capture relies on the builder's guarantee that the
// configuration phase runs strictly before the service phase.
//
// UseStartup returns the same builder for chaining. Binding several startup
// types runs each of their ConfigureServices exactly once, in binding order.
//
// Prefer (*Builder).Use with an explicit Startup value where you control the
// type; UseStartup exists for convention-organized codebases.
func UseStartup[T any](b *Builder) *Builder {
	elem := reflect.TypeOf((*(T))(nil)).Elem()
	ptr := reflect.PointerTo(elem)
	if elem.Kind() == reflect.Pointer {
		ptr, elem = elem, elem.Elem()
	}

	m, ok := ptr.MethodByName(configureServicesMethod)
	if !ok || !validConfigureServices(m.Type) {
		return b.fail(MissingConfigureServicesError{Type: elem})
	}

	cfgIndex, hasCfgField := configurationField(elem)

	// The snapshot is materialized during the configuration phase and
	// smuggled into the service-phase closure below.
	var captured *config.Configuration
	b.ConfigureConfiguration(func(cb *config.Builder) error {
		snapshot, err := cb.Build()
		if err != nil {
			return err
		}
		captured = snapshot
		return nil
	})

	b.ConfigureServices(func(_ Context, services *di.Collection) error {
		inst := reflect.New(elem)
		if hasCfgField && captured != nil {
			inst.Elem().Field(cfgIndex).Set(reflect.ValueOf(captured))
		}
		out := inst.Method(m.Index).Call([]reflect.Value{reflect.ValueOf(services)})
		if len(out) == 1 && !out[0].IsNil() {
			return out[0].Interface().(error)
		}
		return nil
	})

	return b
}

// Use binds a startup value to the builder via the explicit Startup
// contract. If s also implements Configurator, its configuration callback is
// registered first. A nil s is a no-op.
func (b *Builder) Use(s Startup) *Builder {
	if s == nil {
		return b
	}
	if c, ok := s.(Configurator); ok {
		b.ConfigureConfiguration(c.ConfigureConfiguration)
	}
	return b.ConfigureServices(func(_ Context, services *di.Collection) error {
		return s.ConfigureServices(services)
	})
}

// validConfigureServices checks the located method's signature: exactly one
// parameter of type *di.Collection (after the receiver) and zero returns or
// a single error.
func validConfigureServices(mt reflect.Type) bool {
	if mt.NumIn() != 2 || mt.In(1) != reflect.TypeOf((*(*di.Collection))(nil)).Elem() {
		return false
	}
	switch mt.NumOut() {
	case 0:
		return true
	case 1:
		return mt.Out(0) == reflect.TypeOf((*(error))(nil)).Elem()
	default:
		return false
	}
}

// configurationField probes T for the first exported top-level field of type
// *config.Configuration. Promoted fields are ignored: reaching one through
// an embedded pointer would need the intermediate struct allocated, which a
// freshly constructed zero value does not have.
func configurationField(t reflect.Type) (int, bool) {
	if t.Kind() != reflect.Struct {
		return 0, false
	}
	cfgType := reflect.TypeOf((*(*config.Configuration))(nil)).Elem()
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if f.IsExported() && f.Type == cfgType {
			return i, true
		}
	}
	return 0, false
}
