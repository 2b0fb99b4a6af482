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

// Package git reads the history of HTML documents from a git repository for evaluations.
package git

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path"
	"runtime"
	"strconv"
	"strings"
)

const nullID = "0000000000000000000000000000000000000000"

// Repo is an open repository. Blob contents are read through a single long running
// git cat-file process.
type Repo struct {
	dir    string
	gitcat chan<- gitcatterinstr
	done   chan struct{}
}

// Open opens the repository in dir.
func Open(dir string) (*Repo, error) {
	if _, err := os.Stat(dir); err != nil {
		return nil, err
	}

	gitcat, done, err := gitcatter(dir)
	if err != nil {
		return nil, err
	}

	return &Repo{
		dir:    dir,
		gitcat: gitcat,
		done:   done,
	}, nil
}

// Close stops reading blobs. All pending callbacks have been called when Close returns.
func (r *Repo) Close() {
	close(r.gitcat)
	<-r.done
}

// RevList returns the IDs of all non-merge commits reachable from HEAD.
func (r *Repo) RevList() ([]string, error) {
	out, err := git("-C", r.dir, "rev-list", "--no-merges", "HEAD")
	if err != nil {
		return nil, err
	}
	revs := strings.Split(out, "\n")
	if revs[len(revs)-1] == "" {
		revs = revs[:len(revs)-1]
	}
	return revs, nil
}

// Change is a modification of an HTML document in a commit.
type Change struct {
	Name  string
	OldID string
	NewID string
}

// IsHTML reports whether name looks like an HTML document.
func IsHTML(name string) bool {
	switch strings.ToLower(path.Ext(name)) {
	case ".html", ".htm", ".xhtml":
		return true
	}
	return false
}

// Changes returns the HTML documents that were modified by commit. Added and deleted documents
// are skipped, diffing them is trivial.
func (r *Repo) Changes(commit string) ([]Change, error) {
	out, err := git("-C", r.dir, "diff-tree", "-r", commit)
	if err != nil {
		return nil, err
	}
	lines := strings.Split(out, "\n")[1:]
	ret := make([]Change, 0, len(lines))
	for _, line := range lines {
		if len(line) == 0 {
			continue
		}
		if line[0] != ':' {
			return nil, fmt.Errorf("diff-tree line not starting with ':': %q", line)
		}
		fields := strings.Fields(line[1:])
		if len(fields) < 6 {
			return nil, fmt.Errorf("diff-tree line has %d fields, expected 6: %q", len(fields), line)
		}
		c := Change{
			Name:  fields[5],
			OldID: fields[2],
			NewID: fields[3],
		}
		if !IsHTML(c.Name) || c.OldID == nullID || c.NewID == nullID {
			continue
		}
		ret = append(ret, c)
	}
	return ret, nil
}

// Read reads the contents of the blobs and calls cb with them. Callbacks are called in the order
// of the Read calls from a single goroutine.
func (r *Repo) Read(blobIDs []string, cb func([][]byte)) {
	r.gitcat <- gitcatterinstr{blobIDs, cb}
}

func git(args ...string) (string, error) {
	var wout, werr strings.Builder
	cmd := exec.Command("git", args...)
	cmd.Stdout = &wout
	cmd.Stderr = &werr
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("running git command %v: %v\n%s", cmd, err, werr.String())
	}
	return wout.String(), nil
}

type gitcatterinstr struct {
	blobIDs []string
	cb      func([][]byte)
}

func gitcatter(repo string) (chan<- gitcatterinstr, chan struct{}, error) {
	wc := make(chan gitcatterinstr)
	rc := make(chan []gitcatterinstr, runtime.GOMAXPROCS(0))
	done := make(chan struct{})

	cmd := exec.Command("git", "-C", repo, "cat-file", "--batch-command", "--buffer")
	in, err := cmd.StdinPipe()
	if err != nil {
		return nil, nil, fmt.Errorf("connecting stdin: %v", err)
	}
	out, err := cmd.StdoutPipe()
	if err != nil {
		return nil, nil, fmt.Errorf("connecting stdout: %v", err)
	}
	var werr bytes.Buffer
	cmd.Stderr = &werr
	if err := cmd.Start(); err != nil {
		return nil, nil, fmt.Errorf("starting git cat-file: %v", err)
	}

	r, w := bufio.NewReader(out), in
	write := func(format string, args ...any) {
		if _, err := fmt.Fprintf(w, format, args...); err != nil {
			panic(fmt.Sprintf("writing to stdin pipe: %v\n%s", err, werr.String()))
		}
	}
	go func() {
		defer close(rc)
		defer w.Close()
		const N = 32
		for {
			instr, ok := <-wc
			if !ok {
				return
			}
			bundle := []gitcatterinstr{instr}
			for _, id := range instr.blobIDs {
				write("contents %s\n", id)
			}
			closed := false
			// Batch everything that is already queued into one flush.
		Batch:
			for len(bundle) < N {
				select {
				case instr, ok := <-wc:
					if !ok {
						closed = true
						break Batch
					}
					for _, id := range instr.blobIDs {
						write("contents %s\n", id)
					}
					bundle = append(bundle, instr)
				default:
					break Batch
				}
			}
			write("flush\n")
			rc <- bundle
			if closed {
				return
			}
		}
	}()

	go func() {
		defer close(done)
		defer cmd.Wait()
		for bundle := range rc {
			for _, instr := range bundle {
				out := make([][]byte, len(instr.blobIDs))
				for i, id := range instr.blobIDs {
					blob, err := readBlob(r, id)
					if err != nil {
						panic(err)
					}
					out[i] = blob
				}
				instr.cb(out)
			}
		}
	}()

	return wc, done, nil
}

// readBlob reads a single object in git cat-file batch format.
func readBlob(r *bufio.Reader, id string) ([]byte, error) {
	line, err := r.ReadString('\n')
	if err != nil {
		return nil, err
	}
	fields := strings.Fields(line)
	if len(fields) != 3 {
		return nil, fmt.Errorf("found %v fields, expected 3: %q", len(fields), line)
	}
	if fields[0] != id {
		return nil, fmt.Errorf("ids don't match %s vs %s", fields[0], id)
	}
	n, err := strconv.ParseInt(fields[2], 10, 64)
	if err != nil {
		return nil, err
	}
	buf := make([]byte, n+1)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, err
	}
	return buf[:n], nil
}
