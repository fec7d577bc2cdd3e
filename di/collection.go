package di

import (
	"reflect"

	"github.com/optimus-hft/lockset"
)

// Lifetime controls how often a registered constructor runs.
type Lifetime int

const (
	// Singleton constructs the service once; the Provider memoizes the result.
	Singleton Lifetime = iota

	// Transient constructs a fresh value on every resolution.
	Transient
)

// String returns the lifetime name, mainly for error messages and logs.
func (l Lifetime) String() string {
	switch l {
	case Singleton:
		return "singleton"
	case Transient:
		return "transient"
	default:
		return "unknown"
	}
}

// registration is a single service entry: its key type, lifetime and
// constructor. The constructor's dynamic result is asserted against the key
// type at resolution time.
type registration struct {
	typ      reflect.Type
	lifetime Lifetime
	ctor     func(*Provider) (any, error)
}

// Collection is an ordered set of service registrations.
//
// It is the mutable registry that startup / composition-root code populates.
// Registration order is preserved and observable via Types, which the host
// relies on to start hosted services in a deterministic order.
//
// A Collection is not safe for concurrent mutation; populate it from a
// single goroutine, then Build a Provider.
type Collection struct {
	order []reflect.Type
	regs  map[reflect.Type]registration
}

// NewCollection returns an empty Collection.
func NewCollection() *Collection {
	return &Collection{regs: make(map[reflect.Type]registration)}
}

// Len reports the number of registrations.
func (c *Collection) Len() int {
	if c == nil {
		return 0
	}
	return len(c.order)
}

// Types returns the registered service types in registration order.
//
// The returned slice is a copy; mutating it does not affect the Collection.
func (c *Collection) Types() []reflect.Type {
	if c == nil {
		return nil
	}
	out := make([]reflect.Type, len(c.order))
	copy(out, c.order)
	return out
}

// Contains reports whether a registration exists for the exact type t.
func (c *Collection) Contains(t reflect.Type) bool {
	if c == nil {
		return false
	}
	_, ok := c.regs[t]
	return ok
}

// AddFor registers a constructor under an explicit reflect.Type key.
//
// Most callers should prefer the generic Add / AddSingleton / AddTransient
// helpers, which tie the key type and the constructor result together at
// compile time. AddFor exists for reflect-driven callers; a constructor
// whose result does not assert to t surfaces later as WrongTypeError.
func (c *Collection) AddFor(t reflect.Type, lifetime Lifetime, ctor func(*Provider) (any, error)) error {
	if c == nil {
		return ErrNilCollection
	}
	if ctor == nil {
		return ErrNilConstructor
	}
	if _, exists := c.regs[t]; exists {
		return AlreadyRegisteredError{Type: t}
	}
	if c.regs == nil {
		c.regs = make(map[reflect.Type]registration)
	}
	c.regs[t] = registration{typ: t, lifetime: lifetime, ctor: ctor}
	c.order = append(c.order, t)
	return nil
}

// Add registers a constructor for T with the given lifetime.
func Add[T any](c *Collection, lifetime Lifetime, ctor func(*Provider) (T, error)) error {
	if ctor == nil {
		return ErrNilConstructor
	}
	return c.AddFor(reflect.TypeOf((*(T))(nil)).Elem(), lifetime, func(p *Provider) (any, error) {
		return ctor(p)
	})
}

// AddSingleton registers a constructor for T that runs at most once.
func AddSingleton[T any](c *Collection, ctor func(*Provider) (T, error)) error {
	return Add(c, Singleton, ctor)
}

// AddTransient registers a constructor for T that runs on every resolution.
func AddTransient[T any](c *Collection, ctor func(*Provider) (T, error)) error {
	return Add(c, Transient, ctor)
}

// AddValue registers an already-constructed value as a singleton for T.
func AddValue[T any](c *Collection, v T) error {
	return Add(c, Singleton, func(*Provider) (T, error) { return v, nil })
}

// Build produces a Provider over the current registrations.
//
// The Provider takes a snapshot of the registration set; registrations added
// to the Collection afterwards are not visible to it.
func (c *Collection) Build() *Provider {
	regs := make(map[reflect.Type]registration, len(c.regs))
	for k, v := range c.regs {
		regs[k] = v
	}
	order := make([]reflect.Type, len(c.order))
	copy(order, c.order)
	return &Provider{
		regs:       regs,
		order:      order,
		singletons: make(map[reflect.Type]any),
		createLock: lockset.New(),
	}
}
