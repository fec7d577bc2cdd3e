package di

import (
	"reflect"
	"sync"

	"github.com/optimus-hft/lockset"
)

// Provider resolves services registered in a Collection.
//
// Singleton instances are created lazily on first resolution and memoized.
// First-time creation is serialized per service type with a keyed lock set,
// so two types can construct concurrently but a single type constructs
// exactly once even under concurrent resolution.
//
// A Provider is safe for concurrent use.
type Provider struct {
	regs  map[reflect.Type]registration
	order []reflect.Type

	mu         sync.RWMutex
	singletons map[reflect.Type]any
	createLock *lockset.Set
}

// Types returns the registered service types in registration order.
func (p *Provider) Types() []reflect.Type {
	out := make([]reflect.Type, len(p.order))
	copy(out, p.order)
	return out
}

// Contains reports whether a registration exists for the exact type t.
func (p *Provider) Contains(t reflect.Type) bool {
	_, ok := p.regs[t]
	return ok
}

// Resolve returns the service registered under t.
//
// It returns:
//   - NotRegisteredError if t was never registered
//   - ConstructError wrapping the constructor's error if construction fails
func (p *Provider) Resolve(t reflect.Type) (any, error) {
	reg, ok := p.regs[t]
	if !ok {
		return nil, NotRegisteredError{Type: t}
	}
	if reg.lifetime == Transient {
		return p.construct(reg)
	}

	p.mu.RLock()
	v, ok := p.singletons[t]
	p.mu.RUnlock()
	if ok {
		return v, nil
	}

	key := t.String()
	p.createLock.Lock(key)
	defer p.createLock.Unlock(key)

	// Another resolver may have constructed while we waited for the key lock.
	p.mu.RLock()
	v, ok = p.singletons[t]
	p.mu.RUnlock()
	if ok {
		return v, nil
	}

	v, err := p.construct(reg)
	if err != nil {
		return nil, err
	}
	p.mu.Lock()
	p.singletons[t] = v
	p.mu.Unlock()
	return v, nil
}

func (p *Provider) construct(reg registration) (any, error) {
	v, err := reg.ctor(p)
	if err != nil {
		return nil, ConstructError{Type: reg.typ, Err: err}
	}
	return v, nil
}

// Get returns the service typed as T.
//
// ok is false if T is not registered, construction fails, or the stored
// value is not a T.
func Get[T any](p *Provider) (T, bool) {
	v, err := TryGet[T](p)
	return v, err == nil
}

// TryGet returns the service typed as T.
//
// It returns:
//   - NotRegisteredError if T is not registered
//   - ConstructError if the constructor fails
//   - WrongTypeError if the registration exists but the value is not a T
func TryGet[T any](p *Provider) (T, error) {
	var zero T
	t := reflect.TypeOf((*(T))(nil)).Elem()
	raw, err := p.Resolve(t)
	if err != nil {
		return zero, err
	}
	v, ok := raw.(T)
	if !ok {
		got := "<nil>"
		if raw != nil {
			got = reflect.TypeOf(raw).String()
		}
		return zero, WrongTypeError{Type: t, GotType: got}
	}
	return v, nil
}

// MustGet returns the service typed as T or panics.
//
// Useful in composition roots and tests where a missing service should fail
// fast.
func MustGet[T any](p *Provider) T {
	v, err := TryGet[T](p)
	if err != nil {
		panic(err)
	}
	return v
}
