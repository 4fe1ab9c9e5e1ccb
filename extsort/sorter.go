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

package extsort

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/flwyd/extsort/extsort/linesort"
)

// avgRowLen is the assumed average record size used to derive the
// progress-reporting interval (spec.md §4.6).
const avgRowLen = 120

// ProgressFunc is called periodically during a sort with the number of
// records processed so far in the current phase: the count starts at zero
// for indexing and again at zero for re-emission. It is the
// "user-facing progress display" collaborator from spec.md §1/§6; the
// engine only decides when to call it.
type ProgressFunc func(done int64)

// Sorter drives the index/sort/merge pipeline (C6) and the byte-faithful
// output writer (C7) for one SortConfig, across one or more files.
type Sorter struct {
	Config SortConfig
	// Progress, if non-nil, is invoked at the adaptive interval described
	// in spec.md §4.6.
	Progress ProgressFunc
	// ChunkLines bounds the in-process external sort's memory use; 0 uses
	// linesort.DefaultChunkLines.
	ChunkLines int
}

// progressIncrement computes spec.md §4.6's adaptive reporting interval:
// max(1000, round down to the nearest 1000 of fileSize/AVG_ROW_LEN/100).
func progressIncrement(fileSize int64) int64 {
	raw := fileSize / avgRowLen / 100
	inc := (raw / 1000) * 1000
	if inc < 1000 {
		inc = 1000
	}
	return inc
}

// SortFiles runs SortFile over each path in order, stopping at the first
// error (spec.md §5: "Processing does not continue to subsequent files
// after a fatal error"). It returns the number of files fully processed.
func (s *Sorter) SortFiles(paths []string) (processed int, err error) {
	for _, p := range paths {
		if err := s.SortFile(p); err != nil {
			return processed, err
		}
		processed++
	}
	return processed, nil
}

// SortFile reorders one file per spec.md §4.6-§4.7: header lines are
// copied verbatim, a temporary key-to-offset index is built and sorted by
// the external line sorter, then the output is rematerialized by
// random-access reads against the original file.
func (s *Sorter) SortFile(path string) (err error) {
	cfg := s.Config
	outPath := OutputPath(path, cfg.OutputExtension)
	tmpIndexPath := path + ".tmp"
	sortedIndexPath := path + ".tmp.sorted"
	defer func() {
		os.Remove(tmpIndexPath)
		os.Remove(sortedIndexPath)
	}()
	for _, p := range []string{outPath, tmpIndexPath, sortedIndexPath} {
		if rmErr := os.Remove(p); rmErr != nil && !os.IsNotExist(rmErr) {
			return fmt.Errorf("%w: removing %s: %v", ErrIOError, p, rmErr)
		}
	}

	in, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("%w: opening %s: %v", ErrIOError, path, err)
	}
	defer in.Close()
	info, err := in.Stat()
	if err != nil {
		return fmt.Errorf("%w: statting %s: %v", ErrIOError, path, err)
	}

	lr, err := NewLineReader(in)
	if err != nil {
		return err
	}
	term := lr.Style().Bytes()

	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("%w: creating %s: %v", ErrIOError, outPath, err)
	}
	defer out.Close()
	ow := bufio.NewWriterSize(out, 1<<20)

	if err := s.copyHeaderAndIndex(lr, ow, term, tmpIndexPath, info.Size()); err != nil {
		return err
	}

	if err := linesort.Sort(tmpIndexPath, sortedIndexPath, cfg.Reverse, s.ChunkLines); err != nil {
		return fmt.Errorf("%w: %v", ErrSortFailed, err)
	}
	os.Remove(tmpIndexPath)

	increment := progressIncrement(info.Size())
	if err := s.reemit(in, sortedIndexPath, ow, lr.Style(), term, increment); err != nil {
		return err
	}
	if err := ow.Flush(); err != nil {
		return fmt.Errorf("%w: flushing %s: %v", ErrIOError, outPath, err)
	}
	return nil
}

// copyHeaderAndIndex copies the first Begin-1 lines verbatim to ow, then
// streams the remaining records through BuildKey, appending "key\toffset\n"
// entries to tmpIndexPath.
func (s *Sorter) copyHeaderAndIndex(lr *LineReader, ow *bufio.Writer, term []byte, tmpIndexPath string, fileSize int64) error {
	cfg := s.Config
	idxFile, err := os.Create(tmpIndexPath)
	if err != nil {
		return fmt.Errorf("%w: creating %s: %v", ErrIOError, tmpIndexPath, err)
	}
	defer idxFile.Close()
	iw := bufio.NewWriterSize(idxFile, 1<<20)

	for lineNum := 0; lineNum < cfg.Begin-1; lineNum++ {
		line, _, rerr := lr.Next()
		if rerr == io.EOF {
			break
		}
		if rerr != nil {
			return rerr
		}
		if _, werr := ow.Write(line); werr != nil {
			return fmt.Errorf("%w: writing header line: %v", ErrIOError, werr)
		}
		if _, werr := ow.Write(term); werr != nil {
			return fmt.Errorf("%w: writing header line terminator: %v", ErrIOError, werr)
		}
	}

	increment := progressIncrement(fileSize)
	var processed int64
	for {
		line, offset, rerr := lr.Next()
		if rerr == io.EOF {
			break
		}
		if rerr != nil {
			return rerr
		}
		key, kerr := BuildKey(line, cfg)
		if kerr != nil {
			return kerr
		}
		if _, werr := fmt.Fprintf(iw, "%s\t%d\n", key, offset); werr != nil {
			return fmt.Errorf("%w: writing index entry: %v", ErrIOError, werr)
		}
		processed++
		if s.Progress != nil && processed%increment == 0 {
			s.Progress(processed)
		}
	}
	if err := iw.Flush(); err != nil {
		return fmt.Errorf("%w: flushing %s: %v", ErrIOError, tmpIndexPath, err)
	}
	return nil
}

// reemit streams sortedIndexPath line by line, seeking in (the original
// input, still open) to each recorded offset, reading one record with the
// detected EOL style, and writing it verbatim to ow followed by term.
func (s *Sorter) reemit(in *os.File, sortedIndexPath string, ow *bufio.Writer, style EOLStyle, term []byte, increment int64) error {
	sortedFile, err := os.Open(sortedIndexPath)
	if err != nil {
		return fmt.Errorf("%w: opening %s: %v", ErrIOError, sortedIndexPath, err)
	}
	defer sortedFile.Close()

	sc := bufio.NewScanner(sortedFile)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	var processed int64
	for sc.Scan() {
		entry := sc.Text()
		tabIdx := strings.IndexByte(entry, '\t')
		if tabIdx < 0 {
			return fmt.Errorf("%w: malformed index entry %q", ErrIOError, entry)
		}
		offset, perr := strconv.ParseUint(entry[tabIdx+1:], 10, 64)
		if perr != nil {
			return fmt.Errorf("%w: malformed offset in %q: %v", ErrIOError, entry, perr)
		}
		if _, serr := in.Seek(int64(offset), io.SeekStart); serr != nil {
			return fmt.Errorf("%w: seeking to %d: %v", ErrIOError, offset, serr)
		}
		rr := newLineReaderAt(in, style, int64(offset))
		line, _, nerr := rr.Next()
		if nerr == io.EOF {
			return fmt.Errorf("%w: offset %d in sorted index names no record", ErrIOError, offset)
		}
		if nerr != nil {
			return nerr
		}
		if _, werr := ow.Write(line); werr != nil {
			return fmt.Errorf("%w: writing record: %v", ErrIOError, werr)
		}
		if _, werr := ow.Write(term); werr != nil {
			return fmt.Errorf("%w: writing record terminator: %v", ErrIOError, werr)
		}
		processed++
		if s.Progress != nil && processed%increment == 0 {
			s.Progress(processed)
		}
	}
	if serr := sc.Err(); serr != nil {
		return fmt.Errorf("%w: reading %s: %v", ErrIOError, sortedIndexPath, serr)
	}
	return nil
}
