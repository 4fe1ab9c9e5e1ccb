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
	"strconv"
	"strings"

	"golang.org/x/text/cases"
)

// FieldType is the kind of value a FieldSpec extracts.
type FieldType int

const (
	// Alpha sorts the field's raw bytes, space-padded or truncated.
	Alpha FieldType = iota
	// Numeric sorts the field as a signed real number.
	Numeric
	// Date sorts the field as a calendar date under a SortConfig's pattern.
	Date
)

func (t FieldType) String() string {
	switch t {
	case Alpha:
		return "Alpha"
	case Numeric:
		return "Numeric"
	case Date:
		return "Date"
	default:
		return fmt.Sprintf("FieldType(%d)", int(t))
	}
}

// FieldSpec describes one key field: its type, 1-based position (a field
// index in delimited mode, a character offset in fixed mode), and length (a
// required byte width in fixed mode, an optional alpha padding width in
// delimited mode).
type FieldSpec struct {
	Type     FieldType
	Position int
	Length   int
}

var foldCase = cases.Fold()

// ParseFieldSpecs parses a comma-separated `/p` or `/f` argument into an
// ordered list of FieldSpec, per the grammar in spec.md §4.3:
//
//	field         := type_prefix? position length_suffix?
//	type_prefix   := 'd' | 'n'   # otherwise Alpha
//	position      := [0-9]+      # 1-based
//	length_suffix := 'l' [0-9]+
//
// fixed controls which cross-mode rule applies: in fixed mode every field
// must carry a length_suffix with length > 0; in delimited mode a
// length_suffix is only legal on Alpha fields.
func ParseFieldSpecs(arg string, fixed bool) ([]FieldSpec, error) {
	arg = foldCase.String(strings.TrimSpace(arg))
	if arg == "" {
		return nil, fmt.Errorf("%w: empty field spec", ErrInvalidFieldSpec)
	}
	tokens := strings.Split(arg, ",")
	specs := make([]FieldSpec, 0, len(tokens))
	for _, tok := range tokens {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			return nil, fmt.Errorf("%w: empty field token in %q", ErrInvalidFieldSpec, arg)
		}
		spec, err := parseFieldToken(tok, fixed)
		if err != nil {
			return nil, fmt.Errorf("%w: field %q: %v", ErrInvalidFieldSpec, tok, err)
		}
		specs = append(specs, spec)
	}
	return specs, nil
}

func parseFieldToken(tok string, fixed bool) (FieldSpec, error) {
	typ := Alpha
	switch tok[0] {
	case 'd':
		typ = Date
		tok = tok[1:]
	case 'n':
		typ = Numeric
		tok = tok[1:]
	}
	posStr := tok
	length := 0
	hasLength := false
	if idx := strings.IndexByte(tok, 'l'); idx >= 0 {
		posStr = tok[:idx]
		lenStr := tok[idx+1:]
		n, err := strconv.Atoi(lenStr)
		if err != nil || n <= 0 {
			return FieldSpec{}, fmt.Errorf("invalid length suffix %q", lenStr)
		}
		length = n
		hasLength = true
	}
	if posStr == "" || !isAllDigits(posStr) {
		return FieldSpec{}, fmt.Errorf("invalid position %q", posStr)
	}
	pos, err := strconv.Atoi(posStr)
	if err != nil || pos < 1 {
		return FieldSpec{}, fmt.Errorf("position must be a positive integer, got %q", posStr)
	}
	if fixed {
		if !hasLength {
			return FieldSpec{}, fmt.Errorf("fixed-mode fields require a length suffix, e.g. %dl5", pos)
		}
	} else {
		if hasLength && typ != Alpha {
			return FieldSpec{}, fmt.Errorf("length suffix is only valid on alpha fields in delimited mode")
		}
	}
	return FieldSpec{Type: typ, Position: pos, Length: length}, nil
}

func isAllDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
