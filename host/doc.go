// Package host provides a small two-phase application host builder.
//
// A Builder collects callbacks for two phases:
//
//   - configuration phase: callbacks receive the config.Builder and add
//     sources (files, env, defaults).
//   - service phase: callbacks receive the built configuration snapshot (via
//     Context) and register services into a di.Collection.
//
// Build runs the phases exactly once each, strictly in that order, callbacks
// in registration order within a phase. The result is a Host exposing the
// snapshot and the service Provider, and able to Start/Stop registered
// HostedServices.
//
// Startup binding comes in two flavors:
//
//   - UseStartup[T]: convention-based. T is inspected at bind time for a
//     ConfigureServices(*di.Collection) method (optionally returning error);
//     the instance is constructed reflectively when the service phase runs,
//     with an exported *config.Configuration field populated from the
//     snapshot when present.
//
//   - (*Builder).Use: contract-based. The caller hands over a value
//     implementing Startup (and optionally Configurator), no reflection
//     involved. Prefer this in new code; UseStartup exists for codebases
//     that organize composition around startup types by convention.
package host
