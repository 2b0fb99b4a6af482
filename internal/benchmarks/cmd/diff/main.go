// diff runs one of the implementations used for benchmarking on a pair of HTML documents. The
// number of changes found is reported on stderr.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"golang.org/x/tools/txtar"
	"znkr.io/htmldiff/internal/benchmarks"
)

type config struct {
	lib   string
	x, y  string
	txtar string
}

func main() {
	var cfg config
	flag.StringVar(&cfg.lib, "lib", "htmldiff", "implementation to use for diffing: "+names())
	flag.StringVar(&cfg.txtar, "txtar", "", "use a golden test file instead of two input files")
	flag.Parse()

	if cfg.txtar != "" {
		if flag.CommandLine.NArg() != 0 {
			fmt.Fprintf(os.Stderr, "error: usage: diff -txtar <file>\n")
			os.Exit(1)
		}
	} else {
		if flag.CommandLine.NArg() != 2 {
			fmt.Fprintf(os.Stderr, "error: usage: diff <x> <y>\n")
			os.Exit(1)
		}
		cfg.x = flag.CommandLine.Arg(0)
		cfg.y = flag.CommandLine.Arg(1)
	}

	if err := run(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func names() string {
	var names []string
	for _, impl := range benchmarks.Impls {
		names = append(names, impl.Name)
	}
	return strings.Join(names, ", ")
}

func run(cfg config) error {
	var impl *benchmarks.Impl
	for i := range benchmarks.Impls {
		if benchmarks.Impls[i].Name == cfg.lib {
			impl = &benchmarks.Impls[i]
		}
	}
	if impl == nil {
		return fmt.Errorf("implementation not found %q, want one of %s", cfg.lib, names())
	}

	x, y, err := read(cfg)
	if err != nil {
		return err
	}

	out := impl.Diff(x, y)
	if _, err := os.Stdout.Write(out); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "%s: %d changes\n", impl.Name, impl.Changes(out))
	return nil
}

func read(cfg config) (x, y []byte, err error) {
	if cfg.txtar == "" {
		if x, err = os.ReadFile(cfg.x); err != nil {
			return nil, nil, err
		}
		if y, err = os.ReadFile(cfg.y); err != nil {
			return nil, nil, err
		}
		return x, y, nil
	}

	ar, err := txtar.ParseFile(cfg.txtar)
	if err != nil {
		return nil, nil, err
	}
	for _, f := range ar.Files {
		switch f.Name {
		case "x":
			x = f.Data
		case "y":
			y = f.Data
		}
	}
	return x, y, nil
}
