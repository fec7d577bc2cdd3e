// Package ohost provides a small, explicit application-hosting layer for Go.
//
// The repository is organized as a few focused packages:
//
//   - di: a deliberately small service registry (Collection) and resolver
//     (Provider) with singleton/transient lifetimes and typed errors.
//   - config: a layered configuration builder (in-memory, YAML file,
//     environment) producing an immutable snapshot, plus optional
//     file-watch based reload notification.
//   - host: a two-phase host builder (configuration phase, then service
//     phase), a runnable Host for hosted services, and the startup-binding
//     helpers (UseStartup and (*Builder).Use) that adapt a user type to the
//     builder's phases.
//
// The goal is to keep composition explicit and observable: callbacks run in
// registration order, phases run exactly once each, and wiring mistakes
// surface as typed errors you can assert in tests.
//
// Start with examples/basic for end-to-end wiring style, and cmd/confcheck
// for a tiny configuration inspection tool.
package ohost
