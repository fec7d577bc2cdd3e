package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sghaida/ohost/config"
)

// stringList is a repeatable string flag.
type stringList []string

func (l *stringList) String() string { return strings.Join(*l, ",") }

func (l *stringList) Set(v string) error {
	*l = append(*l, v)
	return nil
}

type options struct {
	files     stringList
	optional  bool
	envPrefix string
	sets      stringList
	key       string
}

func parseFlags(args []string, stderr io.Writer) (*options, error) {
	opts := &options{}
	fs := flag.NewFlagSet("confcheck", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Var(&opts.files, "file", "YAML file layer (repeatable, applied in order)")
	fs.BoolVar(&opts.optional, "optional", false, "tolerate missing files")
	fs.StringVar(&opts.envPrefix, "env", "", "environment variable prefix layer (applied last)")
	fs.Var(&opts.sets, "set", "default key=value pair (repeatable, applied first)")
	fs.StringVar(&opts.key, "key", "", "print only this key's resolved value")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return opts, nil
}

func buildSnapshot(opts *options) (*config.Configuration, error) {
	defaults := map[string]any{}
	for _, pair := range opts.sets {
		k, v, ok := strings.Cut(pair, "=")
		if !ok || k == "" {
			return nil, fmt.Errorf("invalid -set %q, want key=value", pair)
		}
		defaults[k] = v
	}

	b := config.NewBuilder()
	if len(defaults) > 0 {
		b.AddMap(defaults)
	}
	for _, f := range opts.files {
		if opts.optional {
			b.AddOptionalFile(f)
		} else {
			b.AddFile(f)
		}
	}
	if opts.envPrefix != "" {
		b.AddEnv(opts.envPrefix)
	}
	return b.Build()
}

func run(args []string, stdout, stderr io.Writer) int {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		return 2
	}

	snap, err := buildSnapshot(opts)
	if err != nil {
		fmt.Fprintln(stderr, "confcheck:", err)
		return 2
	}

	if opts.key != "" {
		v, ok := snap.Get(opts.key)
		if !ok {
			fmt.Fprintf(stderr, "confcheck: key %q not found\n", opts.key)
			return 1
		}
		fmt.Fprintln(stdout, v)
		return 0
	}

	for _, k := range snap.Keys() {
		v, _ := snap.Get(k)
		fmt.Fprintf(stdout, "%s=%s\n", k, v)
	}
	return 0
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}
