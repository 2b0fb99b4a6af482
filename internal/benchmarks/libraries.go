package benchmarks

import (
	"bytes"
	"strings"

	"github.com/aymanbagabas/go-udiff"
	godebug "github.com/kylelemons/godebug/diff"
	mb0 "github.com/mb0/diff"
	gointernal "github.com/rogpeppe/go-internal/diff"
	"github.com/sergi/go-diff/diffmatchpatch"
	"znkr.io/htmldiff"
)

type Impl struct {
	Name string
	Diff func(x, y []byte) []byte
	// Changes counts the changes marked in the output of Diff.
	Changes func(out []byte) int
}

var Impls = []Impl{
	{
		Name:    "htmldiff",
		Diff:    htmlDiff(),
		Changes: countSpans,
	},
	{
		Name:    "htmldiff-fast",
		Diff:    htmlDiff(htmldiff.Fast()),
		Changes: countSpans,
	},
	{
		Name: "diffmatchpatch",
		Diff: func(x, y []byte) []byte {
			// Character based, cleaned up to word-ish boundaries. The output is HTML too, but it
			// escapes the markup of the inputs instead of rendering it.
			dmp := diffmatchpatch.New()
			diffs := dmp.DiffMain(string(x), string(y), false)
			diffs = dmp.DiffCleanupSemantic(diffs)
			return []byte(dmp.DiffPrettyHtml(diffs))
		},
		Changes: func(out []byte) int {
			return bytes.Count(out, []byte("<ins ")) + bytes.Count(out, []byte("<del "))
		},
	},

	// Line based text diffs as a baseline. The documents are compared line by line, so
	// they find far fewer and far larger changes.
	{
		Name: "go-internal",
		Diff: func(x, y []byte) []byte {
			return gointernal.Diff("x", x, "y", y)
		},
		Changes: countLines,
	},
	{
		Name: "godebug",
		Diff: func(x, y []byte) []byte {
			return []byte(godebug.Diff(string(x), string(y)))
		},
		Changes: countLines,
	},
	{
		Name: "mb0",
		Diff: func(x, y []byte) []byte {
			d := mb0lines{
				x: bytes.SplitAfter(x, []byte("\n")),
				y: bytes.SplitAfter(y, []byte("\n")),
			}
			changes := mb0.Diff(len(d.x), len(d.y), d)
			var buf bytes.Buffer
			a := 0
			for _, ch := range changes {
				for a < ch.A {
					buf.WriteString(" ")
					buf.Write(d.x[a])
					a++
				}
				for i := range ch.Del {
					buf.WriteString("-")
					buf.Write(d.x[ch.A+i])
					a++
				}
				for i := range ch.Ins {
					buf.WriteString("+")
					buf.Write(d.y[ch.B+i])
				}
			}
			for a < len(d.x) {
				buf.WriteString(" ")
				buf.Write(d.x[a])
				a++
			}
			return buf.Bytes()
		},
		Changes: countLines,
	},
	{
		Name: "udiff",
		Diff: func(x, y []byte) []byte {
			return []byte(udiff.Unified("x", "y", string(x), string(y)))
		},
		Changes: countLines,
	},
}

func htmlDiff(opts ...htmldiff.Option) func(x, y []byte) []byte {
	opts = append(opts, htmldiff.NoStylesheet(), htmldiff.SniffCharset())
	return func(x, y []byte) []byte {
		out, err := htmldiff.DiffBytes(x, y, opts...)
		if err != nil {
			panic(err)
		}
		return out
	}
}

func countSpans(out []byte) int {
	s := string(out)
	return strings.Count(s, `-insert">`) + strings.Count(s, `-delete">`)
}

func countLines(out []byte) int {
	n := 0
	for _, line := range bytes.Split(out, []byte("\n")) {
		if bytes.HasPrefix(line, []byte("+++")) || bytes.HasPrefix(line, []byte("---")) {
			continue
		}
		if bytes.HasPrefix(line, []byte{'+'}) || bytes.HasPrefix(line, []byte{'-'}) {
			n++
		}
	}
	return n
}

type mb0lines struct {
	x [][]byte
	y [][]byte
}

func (d mb0lines) Equal(i, j int) bool { return bytes.Equal(d.x[i], d.y[j]) }
