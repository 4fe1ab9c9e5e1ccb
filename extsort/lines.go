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
)

// EOLStyle is the line-ending convention detected for a file.
type EOLStyle int

const (
	Unix EOLStyle = iota
	Windows
	Mac
)

// Bytes returns the terminator byte sequence for the style.
func (e EOLStyle) Bytes() []byte {
	switch e {
	case Windows:
		return []byte("\r\n")
	case Mac:
		return []byte("\r")
	default:
		return []byte("\n")
	}
}

func (e EOLStyle) String() string {
	switch e {
	case Windows:
		return "Windows"
	case Mac:
		return "Mac"
	default:
		return "Unix"
	}
}

// eolSniffWindow is how much of the file DetectEOL inspects to find the
// first terminator.
const eolSniffWindow = 64 * 1024

// DetectEOL classifies the line-ending convention of the bytes available
// from a bufio.Reader without consuming them, per spec.md §4.4: the first
// terminator found in a leading window decides UNIX, WINDOWS or MAC; no
// terminator in the window (including an empty file) resolves to UNIX.
func DetectEOL(r *bufio.Reader) (EOLStyle, error) {
	buf, err := r.Peek(eolSniffWindow)
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return Unix, fmt.Errorf("%w: sniffing line endings: %v", ErrIOError, err)
	}
	for i := 0; i < len(buf); i++ {
		switch buf[i] {
		case '\n':
			if i > 0 && buf[i-1] == '\r' {
				return Windows, nil
			}
			return Unix, nil
		case '\r':
			if i+1 < len(buf) && buf[i+1] == '\n' {
				continue // the Windows case is decided on the following '\n'
			}
			return Mac, nil
		}
	}
	return Unix, nil
}

// LineReader iterates logical records of a file, tracking each record's
// absolute starting byte offset, per spec.md §4.4.
type LineReader struct {
	r      *bufio.Reader
	style  EOLStyle
	offset int64
	done   bool
}

// NewLineReader wraps f (positioned at byte 0) in a LineReader, sniffing
// its line-ending style. The returned style is also available via Style().
func NewLineReader(f io.Reader) (*LineReader, error) {
	br := bufio.NewReaderSize(f, eolSniffWindow)
	style, err := DetectEOL(br)
	if err != nil {
		return nil, err
	}
	return &LineReader{r: br, style: style}, nil
}

// Style reports the detected line-ending convention.
func (lr *LineReader) Style() EOLStyle { return lr.style }

// newLineReaderAt wraps r in a LineReader for a known style and starting
// offset, skipping EOL sniffing. Used for the random-access re-reads in
// the output writer (C7), where the style was already determined by the
// initial sequential pass over the same file.
func newLineReaderAt(r io.Reader, style EOLStyle, startOffset int64) *LineReader {
	return &LineReader{r: bufio.NewReaderSize(r, 4096), style: style, offset: startOffset}
}

// Next returns the next logical record's bytes (excluding the terminator)
// and its absolute start offset. It returns io.EOF once every byte of the
// file has been consumed. An unterminated final line is returned as a
// valid record before EOF.
func (lr *LineReader) Next() (line []byte, offset int64, err error) {
	if lr.done {
		return nil, 0, io.EOF
	}
	var raw []byte
	if lr.style == Mac {
		raw, err = lr.r.ReadBytes('\r')
	} else {
		raw, err = lr.r.ReadBytes('\n')
	}
	if err != nil && err != io.EOF {
		return nil, 0, fmt.Errorf("%w: reading line at offset %d: %v", ErrIOError, lr.offset, err)
	}
	if len(raw) == 0 {
		lr.done = true
		return nil, 0, io.EOF
	}
	start := lr.offset
	lr.offset += int64(len(raw))
	if err == io.EOF {
		// Unterminated final line: return it, then report EOF next call.
		lr.done = true
		return raw, start, nil
	}
	raw = raw[:len(raw)-1] // drop the primary terminator byte
	if lr.style == Windows && len(raw) > 0 && raw[len(raw)-1] == '\r' {
		raw = raw[:len(raw)-1]
	}
	return raw, start, nil
}
