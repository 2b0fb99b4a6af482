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

// Package config provides shared configuration mechanisms for packages this module.
//
// This package is an implementation detail, the configuration surface for users is provided via
// htmldiff.Option.
package config

import (
	"log/slog"
)

// Mode describes how the matcher treats common tokens.
type Mode int

const (
	// Every token is eligible as an anchor for a matching block.
	ModeAccurate Mode = iota

	// Whitespace and stopwords are junk: they never seed a matching block, which speeds up large
	// documents at the cost of match quality.
	ModeFast
)

// Config collects all configurable parameters for the diff functions in this module.
type Config struct {
	// Matcher mode.
	Mode Mode

	// ClassPrefix is the prefix of the CSS classes used for insert and delete spans.
	ClassPrefix string

	// Stylesheet is the CSS injected into the output. If empty, a default stylesheet for
	// ClassPrefix is used.
	Stylesheet string

	// If set, no stylesheet is injected.
	NoStylesheet bool

	// If set, tags inside deleted ranges are not written to the output.
	DropDeletedTags bool

	// Charset is the label of the encoding of byte inputs. Empty means UTF-8.
	Charset string

	// If set, the encoding of byte inputs is detected from their content.
	SniffCharset bool

	// Logger receives debug records for the stages of a diff. Never nil after FromOptions.
	Logger *slog.Logger
}

// Default is the default configuration.
var Default = Config{
	Mode:            ModeAccurate,
	ClassPrefix:     "htmldiff",
	Stylesheet:      "",
	NoStylesheet:    false,
	DropDeletedTags: false,
	Charset:         "",
	SniffCharset:    false,
	Logger:          nil,
}

// Flag describes a single config entry. This is used to detect if configurations are being set
// that are not supported by a function.
type Flag int

const (
	Matching Flag = 1 << iota
	ClassPrefix
	Stylesheet
	DropDeletedTags
	Logger
	Charset
	SniffCharset
)

// Option is the mechanism used to expose the configuration to users.
type Option func(*Config) Flag

var discard = slog.New(slog.DiscardHandler)

// FromOptions creates a configuration from a set of options.
func FromOptions(opts []Option, allowed Flag) Config {
	cfg := Default
	for _, opt := range opts {
		flag := opt(&cfg)
		if flag & ^allowed != 0 {
			panic("Option " + printFlag(flag) + " not allowed here")
		}
	}
	if cfg.Charset != "" && cfg.SniffCharset {
		panic("htmldiff.Charset and htmldiff.SniffCharset are mutually exclusive")
	}
	if cfg.Logger == nil {
		cfg.Logger = discard
	}
	return cfg
}

func printFlag(flag Flag) string {
	switch flag {
	case Matching:
		return "htmldiff.Fast/htmldiff.Accurate"
	case ClassPrefix:
		return "htmldiff.ClassPrefix"
	case Stylesheet:
		return "htmldiff.Stylesheet/htmldiff.NoStylesheet"
	case DropDeletedTags:
		return "htmldiff.DropDeletedTags"
	case Logger:
		return "htmldiff.Logger"
	case Charset:
		return "htmldiff.Charset"
	case SniffCharset:
		return "htmldiff.SniffCharset"
	default:
		panic("never reached")
	}
}
