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

// Package decode turns raw document bytes into UTF-8 text.
package decode

import (
	"bytes"
	"errors"
	"fmt"
	"unicode/utf8"

	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding"
	"znkr.io/htmldiff/internal/byteview"
	"znkr.io/htmldiff/internal/config"
)

const utf8Name = "utf-8"

var (
	errInvalidUTF8    = errors.New("invalid UTF-8")
	errUnknownCharset = errors.New("unknown charset")
	utf8BOM           = []byte{0xEF, 0xBB, 0xBF}
)

// Error reports input that isn't valid text in its encoding.
type Error struct {
	Input   string // Which input failed, "x" or "y".
	Charset string // Name of the encoding the input was decoded with.
	Offset  int    // Byte offset of the first invalid byte, -1 if unknown.
	Err     error
}

func (e *Error) Error() string {
	if e.Offset >= 0 {
		return fmt.Sprintf("decoding %s as %s: %v at offset %d", e.Input, e.Charset, e.Err, e.Offset)
	}
	return fmt.Sprintf("decoding %s as %s: %v", e.Input, e.Charset, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Decode decodes in according to cfg and returns it as UTF-8. Valid UTF-8 input is returned
// without copying, the caller must not modify in while the result is in use.
//
// The encoding is chosen by cfg.Charset, if set, or detected from the content if
// cfg.SniffCharset is set. Otherwise the input must be UTF-8.
func Decode(input string, in []byte, cfg config.Config) (string, error) {
	name := utf8Name
	var enc encoding.Encoding
	switch {
	case cfg.Charset != "":
		enc, name = charset.Lookup(cfg.Charset)
		if enc == nil {
			return "", &Error{Input: input, Charset: cfg.Charset, Offset: -1, Err: errUnknownCharset}
		}
	case cfg.SniffCharset:
		var certain bool
		enc, name, certain = charset.DetermineEncoding(in, "text/html")
		// Detection only looks at a prefix of the input and falls back to windows-1252 for ASCII.
		if !certain && name != utf8Name && utf8.Valid(in) {
			name = utf8Name
		}
		cfg.Logger.Debug("detected charset", "input", input, "charset", name, "certain", certain)
	}

	if name == utf8Name {
		in = bytes.TrimPrefix(in, utf8BOM)
		if off := invalidUTF8(in); off >= 0 {
			return "", &Error{Input: input, Charset: name, Offset: off, Err: errInvalidUTF8}
		}
		return byteview.String(in), nil
	}

	out, err := enc.NewDecoder().Bytes(in)
	if err != nil {
		return "", &Error{Input: input, Charset: name, Offset: -1, Err: err}
	}
	return byteview.String(out), nil
}

// invalidUTF8 returns the offset of the first invalid UTF-8 sequence in b or -1 if b is valid.
func invalidUTF8(b []byte) int {
	if utf8.Valid(b) {
		return -1
	}
	for i := 0; i < len(b); {
		r, size := utf8.DecodeRune(b[i:])
		if r == utf8.RuneError && size == 1 {
			return i
		}
		i += size
	}
	return -1
}
