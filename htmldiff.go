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
	"fmt"

	"znkr.io/htmldiff/internal/config"
	"znkr.io/htmldiff/internal/decode"
	"znkr.io/htmldiff/internal/render"
	"znkr.io/htmldiff/internal/seqmatch"
	"znkr.io/htmldiff/internal/token"
)

const common = config.Matching | config.ClassPrefix | config.Stylesheet | config.DropDeletedTags | config.Logger

// Diff compares the HTML documents x and y and returns y annotated with the changes from x.
//
// Deleted text is wrapped in <span class="htmldiff-delete"> and inserted text in
// <span class="htmldiff-insert">. Tags are never wrapped. A stylesheet for both classes is
// injected after the <head> tag of the result, or at its start if there's no <head> tag.
//
// The inputs are expected to be free of HTML comments, see [StripComments].
//
// The following options are supported: [Fast], [Accurate], [ClassPrefix], [Stylesheet],
// [NoStylesheet], [DropDeletedTags], [Logger]
//
// Diff is safe for concurrent use. If it returns an error, the result is empty.
func Diff(x, y string, opts ...Option) (string, error) {
	cfg := config.FromOptions(opts, common)
	return diff[string](x, y, cfg)
}

// DiffBytes compares the HTML documents x and y and returns y annotated with the changes from x.
// The result is always UTF-8.
//
// It works like [Diff], but it additionally decodes x and y. By default, they must be valid
// UTF-8, otherwise a [*DecodeError] is returned. Use [Charset] or [SniffCharset] to diff
// documents in other encodings.
//
// The following options are supported: [Fast], [Accurate], [ClassPrefix], [Stylesheet],
// [NoStylesheet], [DropDeletedTags], [Logger], [Charset], [SniffCharset]
//
// DiffBytes is safe for concurrent use. If it returns an error, the result is nil.
func DiffBytes(x, y []byte, opts ...Option) ([]byte, error) {
	cfg := config.FromOptions(opts, common|config.Charset|config.SniffCharset)
	xs, err := decode.Decode("x", x, cfg)
	if err != nil {
		return nil, fmt.Errorf("htmldiff: %w", err)
	}
	ys, err := decode.Decode("y", y, cfg)
	if err != nil {
		return nil, fmt.Errorf("htmldiff: %w", err)
	}
	return diff[[]byte](xs, ys, cfg)
}

func diff[T string | []byte](x, y string, cfg config.Config) (T, error) {
	log := cfg.Logger
	a, b := token.Tokenize(x), token.Tokenize(y)
	log.Debug("tokenized inputs", "x.tokens", len(a), "y.tokens", len(b))

	var isJunk func(token.Token) bool
	if cfg.Mode == config.ModeFast {
		isJunk = token.IsJunk
	}
	ops := seqmatch.Opcodes(a, b, isJunk)
	if err := seqmatch.Validate(a, b, ops); err != nil {
		var zero T
		return zero, fmt.Errorf("htmldiff: %w", err)
	}
	log.Debug("aligned inputs", "fast", cfg.Mode == config.ModeFast, "opcodes", len(ops))

	if cfg.NoStylesheet {
		out := render.Render[T](a, b, ops, cfg)
		log.Debug("rendered diff", "bytes", len(out))
		return out, nil
	}

	css := cfg.Stylesheet
	if css == "" {
		css = DefaultStylesheet(cfg.ClassPrefix)
	}
	out := injectStylesheet[T](render.Render[string](a, b, ops, cfg), css)
	log.Debug("rendered diff", "bytes", len(out))
	return out, nil
}
