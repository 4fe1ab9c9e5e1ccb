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
	"bytes"
	"fmt"
	"strings"
)

// extractField pulls one FieldSpec's raw text out of a record's bytes,
// per spec.md §4.5: a split field in delimited mode, a byte range in
// fixed mode. Missing/short fields yield the empty string rather than an
// error.
func extractField(line []byte, f FieldSpec, cfg SortConfig) string {
	if cfg.Fixed {
		start := f.Position - 1
		if start >= len(line) {
			return ""
		}
		end := clamp(start+f.Length, start, len(line))
		return string(line[start:end])
	}
	parts := bytes.Split(line, []byte{cfg.FieldSeparator})
	if f.Position-1 >= len(parts) {
		return ""
	}
	return string(parts[f.Position-1])
}

// encodeField renders one field's raw text as its fixed-width (or, for an
// unpadded Alpha field, caller-responsibility variable-width) key
// contribution.
func encodeField(raw string, f FieldSpec, cfg SortConfig) (string, error) {
	switch f.Type {
	case Date:
		return cfg.DatePattern.Convert(raw, cfg.CenturyAnchor)
	case Numeric:
		return EncodeNumeric(raw, cfg.Precision, cfg.IgnoreOverflow, cfg.DecimalSeparator)
	default: // Alpha
		v := raw
		if f.Length > 0 {
			v = padRight(v, f.Length)
		}
		if strings.ContainsAny(v, "\t\n") {
			return "", fmt.Errorf("%w: %q", ErrUnsortableValue, v)
		}
		return v, nil
	}
}

// BuildKey builds one record's composite sort key by concatenating each
// configured field's encoding, in field order (spec.md §4.5). Encodings
// have fixed width (Alpha fields the caller didn't pad are the
// exception), so no delimiter is needed between them.
func BuildKey(line []byte, cfg SortConfig) (string, error) {
	var b strings.Builder
	for _, f := range cfg.Fields {
		raw := extractField(line, f, cfg)
		enc, err := encodeField(raw, f, cfg)
		if err != nil {
			return "", err
		}
		b.WriteString(enc)
	}
	return b.String(), nil
}
