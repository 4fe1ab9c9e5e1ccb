// Copyright 2026 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package linesort implements the external-sorter collaborator described
// in spec.md §6: a lexicographic sort of every line of a text file,
// ascending or descending, bounded-memory. spec.md treats this as a
// delegate to a platform line-sort utility; per the "Delegation to an
// external sort binary" design note, this package is the in-process
// substitute, built as a chunked external merge sort so the core engine
// never has to shell out or hold the whole index file in memory.
package linesort

import (
	"bufio"
	"bytes"
	"container/heap"
	"fmt"
	"io"
	"os"
	"sort"
)

// DefaultChunkLines bounds how many lines are sorted in memory before
// being spilled to a run file. Exported so callers processing unusually
// large or small index files can tune memory use.
const DefaultChunkLines = 100_000

// Sort reads every line of inputPath, sorts them lexicographically
// (descending if reverse is true), and writes the result to outputPath.
// Ties are broken by input order (a stable sort), which satisfies
// spec.md §6's "stable or unstable both acceptable" external-sorter
// contract. Memory use is bounded by chunkLines, not by the size of
// inputPath.
func Sort(inputPath, outputPath string, reverse bool, chunkLines int) (err error) {
	if chunkLines <= 0 {
		chunkLines = DefaultChunkLines
	}
	runs, cleanup, err := splitSortedRuns(inputPath, chunkLines, reverse)
	defer cleanup()
	if err != nil {
		return err
	}
	return mergeRuns(runs, outputPath, reverse)
}

// splitSortedRuns reads inputPath in chunks of chunkLines, sorts each
// chunk in memory, and writes it out as a sorted run file. It returns the
// run file paths and a cleanup function that removes them; cleanup is
// always safe to call, including after a partial failure.
func splitSortedRuns(inputPath string, chunkLines int, reverse bool) (runs []string, cleanup func(), err error) {
	cleanup = func() {
		for _, r := range runs {
			os.Remove(r)
		}
	}
	in, err := os.Open(inputPath)
	if err != nil {
		return nil, cleanup, fmt.Errorf("opening index file: %w", err)
	}
	defer in.Close()

	r := bufio.NewReaderSize(in, 1<<20)
	chunk := make([][]byte, 0, chunkLines)
	runIdx := 0
	flush := func() error {
		if len(chunk) == 0 {
			return nil
		}
		sort.SliceStable(chunk, func(i, j int) bool {
			c := bytes.Compare(chunk[i], chunk[j])
			if reverse {
				return c > 0
			}
			return c < 0
		})
		path := fmt.Sprintf("%s.run%d", inputPath, runIdx)
		runIdx++
		if err := writeLines(path, chunk); err != nil {
			return err
		}
		runs = append(runs, path)
		chunk = chunk[:0]
		return nil
	}
	for {
		line, rerr := r.ReadBytes('\n')
		if len(line) > 0 {
			line = append([]byte(nil), bytes.TrimRight(line, "\n")...)
			chunk = append(chunk, line)
			if len(chunk) >= chunkLines {
				if ferr := flush(); ferr != nil {
					return runs, cleanup, ferr
				}
			}
		}
		if rerr == io.EOF {
			break
		}
		if rerr != nil {
			return runs, cleanup, fmt.Errorf("reading index file: %w", rerr)
		}
	}
	if err := flush(); err != nil {
		return runs, cleanup, err
	}
	return runs, cleanup, nil
}

func writeLines(path string, lines [][]byte) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating sort run %s: %w", path, err)
	}
	defer f.Close()
	w := bufio.NewWriterSize(f, 1<<20)
	for _, line := range lines {
		w.Write(line)
		w.WriteByte('\n')
	}
	return w.Flush()
}

// mergeEntry is one run's current line in the k-way merge heap.
type mergeEntry struct {
	line   []byte
	runIdx int
	r      *bufio.Reader
}

type mergeHeap struct {
	entries []*mergeEntry
	reverse bool
}

func (h mergeHeap) Len() int { return len(h.entries) }
func (h mergeHeap) Less(i, j int) bool {
	c := bytes.Compare(h.entries[i].line, h.entries[j].line)
	if c == 0 {
		return h.entries[i].runIdx < h.entries[j].runIdx // stable: earlier run wins ties
	}
	if h.reverse {
		return c > 0
	}
	return c < 0
}
func (h mergeHeap) Swap(i, j int) { h.entries[i], h.entries[j] = h.entries[j], h.entries[i] }
func (h *mergeHeap) Push(x any)   { h.entries = append(h.entries, x.(*mergeEntry)) }
func (h *mergeHeap) Pop() any {
	old := h.entries
	n := len(old)
	e := old[n-1]
	h.entries = old[:n-1]
	return e
}

// mergeRuns performs a k-way merge of the already-sorted run files into
// outputPath, preserving each run's internal order on ties (stability).
func mergeRuns(runs []string, outputPath string, reverse bool) error {
	out, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("creating sorted index %s: %w", outputPath, err)
	}
	defer out.Close()
	w := bufio.NewWriterSize(out, 1<<20)

	readers := make([]*bufio.Reader, len(runs))
	files := make([]*os.File, len(runs))
	defer func() {
		for _, f := range files {
			if f != nil {
				f.Close()
			}
		}
	}()
	for i, path := range runs {
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("opening sort run %s: %w", path, err)
		}
		files[i] = f
		readers[i] = bufio.NewReaderSize(f, 1<<20)
	}

	h := &mergeHeap{reverse: reverse}
	heap.Init(h)
	for i, r := range readers {
		if e, ok, err := nextLine(r, i); err != nil {
			return err
		} else if ok {
			heap.Push(h, e)
		}
	}
	for h.Len() > 0 {
		e := heap.Pop(h).(*mergeEntry)
		w.Write(e.line)
		w.WriteByte('\n')
		if next, ok, err := nextLine(e.r, e.runIdx); err != nil {
			return err
		} else if ok {
			heap.Push(h, next)
		}
	}
	return w.Flush()
}

func nextLine(r *bufio.Reader, runIdx int) (*mergeEntry, bool, error) {
	line, err := r.ReadBytes('\n')
	if len(line) > 0 {
		line = bytes.TrimRight(line, "\n")
		return &mergeEntry{line: line, runIdx: runIdx, r: r}, true, nil
	}
	if err == io.EOF {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("reading sort run: %w", err)
	}
	return nil, false, nil
}

// RunFilesGlob reports the run-file glob pattern Sort uses for inputPath,
// for callers that want to clean up after a crash.
func RunFilesGlob(inputPath string) string {
	return inputPath + ".run*"
}
