// Package di provides a small, explicit service registry for Go.
//
// This package intentionally models only two concepts:
//
//   - Collection: an ordered set of service registrations (the registry that
//     startup code populates). Registrations are keyed by the service's Go
//     type and carry a lifetime (Singleton or Transient) plus a constructor.
//
//   - Provider: the read side built from a Collection. It resolves services
//     on demand, memoizes singletons, and exposes typed generic accessors
//     (Get / TryGet / MustGet) with structured errors you can assert in
//     tests (not registered, wrong type, constructor failure).
//
// There is no dependency graph resolution, no scopes beyond
// singleton/transient, and no struct-tag injection. Constructors receive the
// Provider and pull what they need explicitly, so wiring stays visible in
// the composition root.
//
// Import
//
//	"github.com/sghaida/ohost/di"
package di
