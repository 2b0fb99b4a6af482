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

// eval validates the diff pipeline on real documents. It diffs document pairs from a corpus
// directory or from the history of HTML files in a git repository and checks that
//
//   - tokenizing an input and joining the tokens reproduces the input,
//   - the alignment of the two inputs is a valid partition of both token sequences,
//   - diffing an input against itself reproduces the input without any markup.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"math"
	"math/rand/v2"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/tools/txtar"
	"znkr.io/htmldiff"
	"znkr.io/htmldiff/internal/cmd/eval/internal/git"
	"znkr.io/htmldiff/internal/config"
	"znkr.io/htmldiff/internal/decode"
	"znkr.io/htmldiff/internal/seqmatch"
	"znkr.io/htmldiff/internal/token"
)

type evalConfig struct {
	repo     string
	corpus   string
	sample   int
	parallel int
	stats    string
}

func main() {
	var cfg evalConfig
	flag.StringVar(&cfg.repo, "repo", "", "git repository whose HTML history is used for evaluation")
	flag.StringVar(&cfg.corpus, "corpus", "", "directory with *.txtar pairs or *.html files to use for evaluation")
	flag.IntVar(&cfg.sample, "sample", 0, "if >0, sample commits to the value of the flag")
	flag.IntVar(&cfg.parallel, "parallel", runtime.GOMAXPROCS(0), "number of evaluations to run in parallel")
	flag.StringVar(&cfg.stats, "stats", "", "file to store stats in")
	flag.Parse()

	if len(flag.CommandLine.Args()) > 0 {
		fmt.Fprintf(os.Stderr, "error: unexpected command line arguments: %v\n", flag.CommandLine.Args())
		os.Exit(1)
	}
	if (cfg.repo == "") == (cfg.corpus == "") {
		fmt.Fprintf(os.Stderr, "error: exactly one of -repo and -corpus is required\n")
		os.Exit(1)
	}

	failed, err := run(context.Background(), &cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	if failed > 0 {
		fmt.Fprintf(os.Stderr, "%d checks failed\n", failed)
		os.Exit(1)
	}
}

var bars = []string{
	" ",
	"▏",
	"▎",
	"▍",
	"▌",
	"▋",
	"▊",
	"▉",
	"█",
}

type note struct {
	prefix string
	msg    string
}

// pair is a pair of document revisions to diff.
type pair struct {
	id   string // commit ID or corpus file
	name string
	x, y []byte
}

type result struct {
	id       string
	name     string
	variant  string
	N, M     int
	ratio    float64
	duration time.Duration
}

var variants = []struct {
	name string
	fast bool
}{
	{"accurate", false},
	{"fast", true},
}

// progress tracks how much of a source has been read.
type progress struct {
	total atomic.Int64
	done  atomic.Int64
}

func run(ctx context.Context, cfg *evalConfig) (int, error) {
	start := time.Now()
	notes := make(chan note)
	done := make(chan struct{})
	var processed, failed atomic.Int64
	var prog progress

	var stats *os.File
	if cfg.stats != "" {
		var err error
		stats, err = os.Create(cfg.stats)
		if err != nil {
			return 0, fmt.Errorf("creating stats file: %v", err)
		}
		defer stats.Close()
	}

	pairs := make(chan pair)
	var source func() error
	if cfg.repo != "" {
		repo, err := git.Open(cfg.repo)
		if err != nil {
			return 0, fmt.Errorf("opening git repository: %v", err)
		}
		source = func() error { return readHistory(repo, cfg.sample, &prog, pairs, notes) }
	} else {
		source = func() error { return readCorpus(cfg.corpus, &prog, pairs) }
	}

	var results chan result
	if cfg.stats != "" {
		results = make(chan result)
	}

	// Read pairs.
	var sourceErr error
	go func() {
		defer close(pairs)
		sourceErr = source()
	}()

	// Evaluate pairs.
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.parallel)
	evalDone := make(chan struct{})
	go func() {
		defer close(evalDone)
		for p := range pairs {
			g.Go(func() error {
				if err := ctx.Err(); err != nil {
					return err
				}
				for _, n := range evaluate(p, results) {
					failed.Add(1)
					notes <- n
				}
				processed.Add(1)
				return nil
			})
		}
	}()

	// Render progress
	var ioWG sync.WaitGroup
	render := func() {
		const width = 60
		total, read := prog.total.Load(), prog.done.Load()
		processed := processed.Load()
		progress := 0.0
		if total > 0 {
			progress = float64(read) / float64(total)
		}
		whole := int(progress * width)
		remainder := math.Mod(progress*width, 1)
		last := bars[max(0, min(len(bars)-1, int(remainder*float64(len(bars)))))]
		if width-whole < 1 {
			last = ""
		}
		bar := strings.Repeat(bars[len(bars)-1], whole) + last
		var procPerSec int
		if processed > 0 {
			procPerSec = int((time.Duration(processed) * time.Second) / time.Since(start))
		}
		fmt.Printf("\r[%-*s] % 3.1f%% (%d pairs, %d pairs/s, %d failed) ", width, bar, 100*progress, processed, procPerSec, failed.Load())
	}
	ioWG.Go(func() {
		ticker := time.NewTicker(200 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case note := <-notes:
				fmt.Printf("\r%s: %s\n", note.prefix, note.msg)
				render()

			case <-ticker.C:
				render()

			case <-done:
				render()
				fmt.Printf("\n")
				return
			}
		}
	})
	var statsWG sync.WaitGroup
	if results != nil {
		statsWG.Go(func() {
			w := bufio.NewWriter(stats)
			w.WriteString("id,file,variant,N,M,ratio,duration_ns\n")
			for result := range results {
				_, err := fmt.Fprintf(w, "%s,%s,%s,%d,%d,%.4f,%d\n", result.id, result.name, result.variant, result.N, result.M, result.ratio, result.duration.Nanoseconds())
				if err != nil {
					notes <- note{
						prefix: result.id + ":" + result.name,
						msg:    fmt.Sprintf("failed to write stats: %v", err),
					}
				}
			}
			if err := w.Flush(); err != nil {
				notes <- note{
					prefix: "",
					msg:    fmt.Sprintf("failed to flush stats: %v", err),
				}
			}
		})
	}

	// Shutdown
	<-evalDone
	err := g.Wait()
	if results != nil {
		close(results)
	}
	statsWG.Wait()
	close(done)
	ioWG.Wait()

	if sourceErr != nil {
		return int(failed.Load()), sourceErr
	}
	return int(failed.Load()), err
}

// evaluate diffs a pair with every variant and returns a note for every failed check.
func evaluate(p pair, results chan<- result) []note {
	var notes []note
	fail := func(format string, args ...any) {
		notes = append(notes, note{prefix: p.id + ":" + p.name, msg: fmt.Sprintf(format, args...)})
	}

	cfg := config.FromOptions([]config.Option{htmldiff.SniffCharset()}, config.SniffCharset)
	x, err := decode.Decode("x", p.x, cfg)
	if err != nil {
		fail("%v", err)
		return notes
	}
	y, err := decode.Decode("y", p.y, cfg)
	if err != nil {
		fail("%v", err)
		return notes
	}

	a, b := token.Tokenize(x), token.Tokenize(y)
	if got := token.Text(a); got != x {
		fail("joined tokens don't reproduce x")
	}
	if got := token.Text(b); got != y {
		fail("joined tokens don't reproduce y")
	}

	for _, v := range variants {
		opts := []htmldiff.Option{htmldiff.NoStylesheet()}
		var isJunk func(token.Token) bool
		if v.fast {
			opts = append(opts, htmldiff.Fast())
			isJunk = token.IsJunk
		}
		blocks := seqmatch.MatchingBlocks(a, b, isJunk)
		if err := seqmatch.Validate(a, b, seqmatch.FromBlocks(blocks)); err != nil {
			fail("%s: %v", v.name, err)
		}

		if got, err := htmldiff.Diff(x, x, opts...); err != nil {
			fail("%s: diffing x with itself: %v", v.name, err)
		} else if got != x {
			fail("%s: diffing x with itself doesn't reproduce x", v.name)
		}

		start := time.Now()
		_, err := htmldiff.Diff(x, y, opts...)
		duration := time.Since(start)
		if err != nil {
			fail("%s: %v", v.name, err)
			continue
		}
		if results != nil {
			results <- result{
				id:       p.id,
				name:     p.name,
				variant:  v.name,
				N:        len(a),
				M:        len(b),
				ratio:    seqmatch.Ratio(blocks, len(a), len(b)),
				duration: duration,
			}
		}
	}
	return notes
}

// readHistory sends every modification of an HTML document in the history of repo to pairs.
func readHistory(repo *git.Repo, sample int, prog *progress, pairs chan<- pair, notes chan<- note) error {
	commitIDs, err := repo.RevList()
	if err != nil {
		repo.Close()
		return fmt.Errorf("reading rev-list: %v", err)
	}

	// Sample commits
	if sample > 0 && sample < len(commitIDs) {
		picked := make(map[int]struct{}, sample)
		sampled := make([]string, 0, sample)
		for len(sampled) < sample {
			i := rand.IntN(len(commitIDs))
			if _, ok := picked[i]; ok {
				continue
			}
			sampled = append(sampled, commitIDs[i])
			picked[i] = struct{}{}
		}
		commitIDs = sampled
	}
	prog.total.Store(int64(len(commitIDs)))

	var wg sync.WaitGroup
	chunkSize := max(1, len(commitIDs)/(4*runtime.GOMAXPROCS(0)))
	for chunk := range slices.Chunk(commitIDs, chunkSize) {
		wg.Go(func() {
			for _, commitID := range chunk {
				changes, err := repo.Changes(commitID)
				if err != nil {
					notes <- note{
						prefix: commitID,
						msg:    fmt.Sprintf("error processing commit: %v", err),
					}
				}
				for _, c := range changes {
					repo.Read([]string{c.OldID, c.NewID}, func(res [][]byte) {
						pairs <- pair{id: commitID, name: c.Name, x: res[0], y: res[1]}
					})
				}
				prog.done.Add(1)
			}
		})
	}
	wg.Wait()
	repo.Close()
	return nil
}

// readCorpus sends the document pairs in dir to pairs. A *.txtar archive holds a pair in the files
// x and y. The remaining *.html files are paired up in name order.
func readCorpus(dir string, prog *progress, pairs chan<- pair) error {
	archives, err := filepath.Glob(filepath.Join(dir, "*.txtar"))
	if err != nil {
		return err
	}
	docs, err := filepath.Glob(filepath.Join(dir, "*.html"))
	if err != nil {
		return err
	}
	slices.Sort(docs)
	prog.total.Store(int64(len(archives) + len(docs)/2))

	for _, filename := range archives {
		ar, err := txtar.ParseFile(filename)
		if err != nil {
			return fmt.Errorf("parsing %s: %v", filename, err)
		}
		p := pair{id: filepath.Base(filename)}
		for _, f := range ar.Files {
			switch f.Name {
			case "x":
				p.x = f.Data
			case "y":
				p.y = f.Data
			default:
				return fmt.Errorf("unknown file in %s: %s", filename, f.Name)
			}
		}
		pairs <- p
		prog.done.Add(1)
	}

	for i := 0; i+1 < len(docs); i += 2 {
		x, err := os.ReadFile(docs[i])
		if err != nil {
			return err
		}
		y, err := os.ReadFile(docs[i+1])
		if err != nil {
			return err
		}
		pairs <- pair{id: filepath.Base(docs[i]), name: filepath.Base(docs[i+1]), x: x, y: y}
		prog.done.Add(1)
	}
	return nil
}
