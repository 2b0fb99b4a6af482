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

package htmldiff

import (
	"log/slog"

	"znkr.io/htmldiff/internal/config"
)

// Option configures the behavior of diff functions.
type Option = config.Option

// Fast deprioritizes whitespace and common English stopwords when aligning the documents. They
// are still matched, but they never anchor a match. This is much faster for large documents, but
// may produce diffs that are harder to read.
func Fast() Option {
	return func(cfg *config.Config) config.Flag {
		cfg.Mode = config.ModeFast
		return config.Matching
	}
}

// Accurate lets every token anchor a match when aligning documents. This is the default.
func Accurate() Option {
	return func(cfg *config.Config) config.Flag {
		cfg.Mode = config.ModeAccurate
		return config.Matching
	}
}

// ClassPrefix sets the prefix of the CSS classes for inserted and deleted text. The default
// prefix is "htmldiff", which results in the classes "htmldiff-insert" and "htmldiff-delete".
//
// The default stylesheet uses the same prefix.
func ClassPrefix(prefix string) Option {
	return func(cfg *config.Config) config.Flag {
		cfg.ClassPrefix = prefix
		return config.ClassPrefix
	}
}

// Stylesheet replaces the CSS that is injected into the output.
func Stylesheet(css string) Option {
	return func(cfg *config.Config) config.Flag {
		cfg.Stylesheet = css
		cfg.NoStylesheet = false
		return config.Stylesheet
	}
}

// NoStylesheet disables stylesheet injection, e.g. because the output is embedded in a page that
// already styles the diff classes.
func NoStylesheet() Option {
	return func(cfg *config.Config) config.Flag {
		cfg.NoStylesheet = true
		return config.Stylesheet
	}
}

// DropDeletedTags omits tags inside deleted regions from the output. By default, they are
// written without annotation, which keeps the structure of the deleted content at the risk of
// duplicating structure that was replaced.
func DropDeletedTags() Option {
	return func(cfg *config.Config) config.Flag {
		cfg.DropDeletedTags = true
		return config.DropDeletedTags
	}
}

// Logger sets a logger that receives debug records for the stages of a diff.
func Logger(logger *slog.Logger) Option {
	return func(cfg *config.Config) config.Flag {
		cfg.Logger = logger
		return config.Logger
	}
}

// Charset sets the encoding of the inputs of [DiffBytes]. The label is any label supported by the
// WHATWG Encoding Standard, e.g. "utf-8", "latin1" or "shift_jis". The default is UTF-8.
//
// Charset can't be combined with [SniffCharset].
func Charset(label string) Option {
	return func(cfg *config.Config) config.Flag {
		cfg.Charset = label
		return config.Charset
	}
}

// SniffCharset detects the encoding of the inputs of [DiffBytes] from byte order marks and
// <meta> tags. Inputs without either are decoded as UTF-8 if they are valid UTF-8.
func SniffCharset() Option {
	return func(cfg *config.Config) config.Flag {
		cfg.SniffCharset = true
		return config.SniffCharset
	}
}
