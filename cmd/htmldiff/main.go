// Copyright 2025 Florian Zenker (flo@znkr.io)
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// htmldiff compares two HTML documents and writes a copy of the second one with the differences
// highlighted.
//
// Usage:
//
//	htmldiff [-o OUTPUT_FILE] [-fast] [-charset LABEL] INPUT_FILE1 INPUT_FILE2
//
// Comments are stripped from both inputs before they are compared. Unless -charset is given, the
// encoding of each input is detected from its content.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"runtime/debug"
	"time"

	"znkr.io/htmldiff"
)

type config struct {
	output  string
	fast    bool
	charset string
	version bool
	debug   bool
}

func main() {
	var cfg config
	flags := flag.NewFlagSet("htmldiff", flag.ExitOnError)
	flags.Usage = func() {
		fmt.Fprintf(flags.Output(), "usage: htmldiff [flags] INPUT_FILE1 INPUT_FILE2\n")
		flags.PrintDefaults()
	}
	flags.StringVar(&cfg.output, "o", "", "write output to `file` instead of stdout")
	flags.BoolVar(&cfg.fast, "fast", false, "ignore whitespace and common words when aligning, faster for large documents")
	flags.StringVar(&cfg.charset, "charset", "", "decode inputs as `label` instead of detecting the encoding")
	flags.BoolVar(&cfg.version, "v", false, "print version and exit")
	flags.BoolVar(&cfg.version, "version", false, "print version and exit")
	flags.BoolVar(&cfg.debug, "debug", false, "log the stages of the diff")
	flags.Parse(os.Args[1:])

	if cfg.version {
		fmt.Println(version())
		return
	}

	level := slog.LevelInfo
	if cfg.debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	if err := run(&cfg, flags.Args(), os.Stdout, logger); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(cfg *config, args []string, stdout io.Writer, logger *slog.Logger) error {
	if len(args) != 2 {
		return fmt.Errorf("expected 2 input files, got %d: %v", len(args), args)
	}
	for _, path := range args {
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("Could not find: %s", path)
		}
	}

	x, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading first input: %v", err)
	}
	y, err := os.ReadFile(args[1])
	if err != nil {
		return fmt.Errorf("reading second input: %v", err)
	}

	opts := []htmldiff.Option{htmldiff.Logger(logger)}
	if cfg.fast {
		opts = append(opts, htmldiff.Fast())
	}
	if cfg.charset != "" {
		opts = append(opts, htmldiff.Charset(cfg.charset))
	} else {
		opts = append(opts, htmldiff.SniffCharset())
	}

	logger.Info("Diffing files...")
	start := time.Now()
	out, err := htmldiff.DiffBytes(stripComments(x), stripComments(y), opts...)
	if err != nil {
		return err
	}
	logger.Info(fmt.Sprintf("Took %0.4f seconds", time.Since(start).Seconds()))

	if cfg.output == "" {
		_, err := stdout.Write(out)
		return err
	}
	if err := os.WriteFile(cfg.output, out, 0o644); err != nil {
		return fmt.Errorf("writing output: %v", err)
	}
	return nil
}

// stripComments removes comments from raw input in an ASCII compatible encoding.
func stripComments(b []byte) []byte {
	return []byte(htmldiff.StripComments(string(b)))
}

func version() string {
	info, ok := debug.ReadBuildInfo()
	if !ok || info.Main.Version == "" || info.Main.Version == "(devel)" {
		return "Development"
	}
	return info.Main.Version
}
