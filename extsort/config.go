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
	"fmt"
	"path/filepath"
	"strings"

	"golang.org/x/exp/slices"
)

// SortConfig is the immutable configuration for one sort run. It is built
// once per invocation (not per file: the same SortConfig drives every file
// on the command line) and never mutated afterward.
type SortConfig struct {
	Fields          []FieldSpec
	Fixed           bool // fixed-width mode vs. delimited mode
	FieldSeparator  byte // delimited mode only
	DecimalSeparator byte
	DatePattern     DatePattern
	Begin           int // 1-based; lines before Begin are copied verbatim
	Reverse         bool
	Precision       Precision
	IgnoreOverflow  bool
	OutputExtension string
	CenturyAnchor   int // computed once per run, see CenturyAnchor
}

// reservedBytes may never be used as a decimal separator: they would
// corrupt the TAB/LF-delimited index file format. A field separator may be
// TAB (the default), but not CR or LF, which end records.
var reservedBytes = []byte{'\t', '\n', '\r'}

// Validate checks the cross-field invariants in spec.md §3 that aren't
// already enforced while building the individual pieces (ParseFieldSpecs,
// ParseDatePattern).
func (c SortConfig) Validate() error {
	if len(c.Fields) == 0 {
		return fmt.Errorf("%w: at least one key field is required", ErrInvalidArgument)
	}
	if c.Begin < 1 {
		return fmt.Errorf("%w: begin line %d must be >= 1", ErrInvalidArgument, c.Begin)
	}
	if !c.Fixed && (c.FieldSeparator == '\n' || c.FieldSeparator == '\r') {
		return fmt.Errorf("%w: field separator %q cannot be CR or LF", ErrInvalidArgument, string(c.FieldSeparator))
	}
	if slices.Contains(reservedBytes, c.DecimalSeparator) {
		return fmt.Errorf("%w: decimal separator %q cannot be tab, CR, or LF", ErrInvalidArgument, string(c.DecimalSeparator))
	}
	for _, f := range c.Fields {
		if c.Fixed && f.Length <= 0 {
			return fmt.Errorf("%w: fixed-mode field at position %d needs a positive length", ErrInvalidFieldSpec, f.Position)
		}
		if !c.Fixed && f.Length != 0 && f.Type != Alpha {
			return fmt.Errorf("%w: only alpha fields may have a length in delimited mode", ErrInvalidFieldSpec)
		}
	}
	return nil
}

// CenturyAnchor computes the century anchor used to expand two-digit
// years, from the wall-clock year at run start (spec.md §4.1, §9): the
// formula is `(currentYear / 100) + 19`, a historical quirk preserved
// verbatim rather than "corrected" to a true current-century computation.
// Call once per run and thread the result through SortConfig; see the
// design note against storing this in module-level state.
func CenturyAnchor(currentYear int) int {
	return currentYear/100 + 19
}

// OutputPath computes the output file path for inputPath per spec.md §6:
// the input's final extension is replaced by ext (a leading '.' is
// inserted if missing); if the input has no extension, ext is appended.
func OutputPath(inputPath, ext string) string {
	if ext == "" {
		ext = ".sor.txt"
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	dir, base := filepath.Split(inputPath)
	if i := strings.LastIndexByte(base, '.'); i > 0 {
		base = base[:i]
	}
	return filepath.Join(dir, base+ext)
}
