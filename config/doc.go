// Package config provides a small layered configuration builder.
//
// A Builder holds an ordered list of Sources (in-memory map, YAML file,
// environment variables). Build merges them in order, later sources
// overriding earlier ones, and returns an immutable Configuration snapshot.
//
// Keys are dotted paths ("server.port"); nested YAML documents are flattened
// into this form, sequences as zero-based indexed keys ("peers.0"). The
// snapshot offers scalar accessors with defaults (GetString, GetInt, ...) and
// Bind, which decodes a subtree back into a struct via YAML tags and then
// applies envconfig-tagged environment overrides.
//
// Build is idempotent: it can be called early (for example by startup
// binding code that needs the snapshot ahead of the host's own build) and
// again later, re-reading every source each time.
//
// WatchFiles adds optional file-watch based reload notification for file
// sources.
package config
