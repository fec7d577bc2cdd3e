// Command confcheck resolves a layered configuration and prints the result.
//
// It builds a snapshot exactly the way a host would — defaults, then YAML
// files, then environment variables — which makes it useful for answering
// "what value does the app actually see?" without starting the app.
//
// Usage:
//
//	confcheck [-file app.yaml]... [-optional] [-env APP] [-set key=value]... [-key server.port]
//
// With -key, the single resolved value is printed; otherwise every key is
// printed as key=value, sorted. Exit status is 0 on success, 1 when -key is
// not present in the snapshot, 2 on usage or build errors.
package main
