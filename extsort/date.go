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
)

// DatePattern is a validated day/month/year token pattern, normalized to
// lower case with the 'j'->'d' and 'a'->'y' localized aliases resolved.
// Conversion of a field value to the canonical YYYYMMDD form is delegated
// to Convert.
type DatePattern struct {
	order [3]byte // 'd', 'm', 'y' in the order they appear in the pattern
	sep   byte    // 0 if the pattern has no separator
}

// CanonicalizePattern normalizes a user date pattern: case-folds it and
// resolves the 'j' (jour) -> 'd' and 'a' (année) -> 'y' localized aliases.
// It does not validate the result; call ParseDatePattern for that.
// Canonicalizing an already-canonical pattern is a no-op (idempotent),
// since the alphabet it produces (d, m, y, and a single separator) has no
// further aliases to resolve.
func CanonicalizePattern(pattern string) string {
	s := foldCase.String(pattern)
	s = strings.ReplaceAll(s, "j", "d")
	s = strings.ReplaceAll(s, "a", "y")
	return s
}

// ParseDatePattern validates a date pattern per spec.md §4.1: exactly one
// each of d, m, y; an optional single separator character appearing
// exactly twice and otherwise absent from the pattern; total length 3 (no
// separator) or 5 (with one).
func ParseDatePattern(pattern string) (DatePattern, error) {
	s := CanonicalizePattern(pattern)
	if len(s) != 3 && len(s) != 5 {
		return DatePattern{}, fmt.Errorf("%w: pattern %q must have length 3 or 5, got %d", ErrInvalidDateFormat, pattern, len(s))
	}
	var tokenPos []int
	var sepPos []int
	for i := 0; i < len(s); i++ {
		if isDateToken(s[i]) {
			tokenPos = append(tokenPos, i)
		} else {
			sepPos = append(sepPos, i)
		}
	}
	if len(tokenPos) != 3 {
		return DatePattern{}, fmt.Errorf("%w: pattern %q must contain exactly one each of d, m, y", ErrInvalidDateFormat, pattern)
	}
	counts := map[byte]int{}
	order := make([]byte, 3)
	for i, pos := range tokenPos {
		order[i] = s[pos]
		counts[s[pos]]++
	}
	for _, c := range []byte{'d', 'm', 'y'} {
		if counts[c] != 1 {
			return DatePattern{}, fmt.Errorf("%w: pattern %q must contain exactly one %q", ErrInvalidDateFormat, pattern, string(c))
		}
	}
	var sep byte
	if len(s) == 5 {
		if len(sepPos) != 2 || sepPos[0] != 1 || sepPos[1] != 3 || s[1] != s[3] {
			return DatePattern{}, fmt.Errorf("%w: pattern %q must be a token, a single separator twice, and a token, e.g. d.m.y", ErrInvalidDateFormat, pattern)
		}
		sep = s[1]
	} else if len(sepPos) != 0 {
		return DatePattern{}, fmt.Errorf("%w: pattern %q has a stray non-token character", ErrInvalidDateFormat, pattern)
	}
	var p DatePattern
	copy(p.order[:], order)
	p.sep = sep
	return p, nil
}

func isDateToken(c byte) bool { return c == 'd' || c == 'm' || c == 'y' }

const emptyDate = "        " // 8 spaces, sorts before any real date

// Convert transforms a field value matching p into the canonical 8-byte
// YYYYMMDD form. An empty value converts to 8 spaces. Two-digit years are
// expanded to centuryAnchor*100+yy.
func (p DatePattern) Convert(value string, centuryAnchor int) (string, error) {
	if value == "" {
		return emptyDate, nil
	}
	var parts [3]string
	var err error
	if p.sep != 0 {
		parts, err = p.splitSeparated(value)
	} else {
		parts, err = p.splitFixed(value)
	}
	if err != nil {
		return "", err
	}
	var day, month, year int
	for i, tok := range p.order {
		part := strings.TrimSpace(parts[i])
		if part == "" || !isAllDigits(part) {
			return "", fmt.Errorf("%w: %q has a non-numeric %s field", ErrInvalidDateValue, value, string(tok))
		}
		n, convErr := strconv.Atoi(part)
		if convErr != nil {
			return "", fmt.Errorf("%w: %q: %v", ErrInvalidDateValue, value, convErr)
		}
		switch tok {
		case 'd':
			if n < 1 || n > 31 {
				return "", fmt.Errorf("%w: %q has an out-of-range day %d", ErrInvalidDateValue, value, n)
			}
			day = n
		case 'm':
			if n < 1 || n > 12 {
				return "", fmt.Errorf("%w: %q has an out-of-range month %d", ErrInvalidDateValue, value, n)
			}
			month = n
		case 'y':
			switch len(part) {
			case 2:
				year = centuryAnchor*100 + n
			case 4:
				year = n
			default:
				return "", fmt.Errorf("%w: %q has a year field of unexpected width %d", ErrInvalidDateValue, value, len(part))
			}
		}
	}
	return fmt.Sprintf("%04d%02d%02d", year, month, day), nil
}

// splitSeparated splits a value like "15.06.1999" around p.sep into parts
// ordered the same way as p.order.
func (p DatePattern) splitSeparated(value string) ([3]string, error) {
	var parts [3]string
	fields := strings.Split(value, string(p.sep))
	if len(fields) != 3 {
		return parts, fmt.Errorf("%w: %q does not split into 3 fields on %q", ErrInvalidDateValue, value, string(p.sep))
	}
	copy(parts[:], fields)
	return parts, nil
}

// splitFixed splits a separator-less value (e.g. "19990615") into day,
// month and year substrings. Day and month are always 2 digits; the year
// takes whatever is left, so its width is len(value)-4.
func (p DatePattern) splitFixed(value string) ([3]string, error) {
	var parts [3]string
	yearWidth := len(value) - 4
	if yearWidth != 2 && yearWidth != 4 {
		return parts, fmt.Errorf("%w: %q has an unexpected length %d for pattern without separator", ErrInvalidDateValue, value, len(value))
	}
	offset := 0
	for i, tok := range p.order {
		width := 2
		if tok == 'y' {
			width = yearWidth
		}
		if offset+width > len(value) {
			return parts, fmt.Errorf("%w: %q is too short", ErrInvalidDateValue, value)
		}
		parts[i] = value[offset : offset+width]
		offset += width
	}
	return parts, nil
}
