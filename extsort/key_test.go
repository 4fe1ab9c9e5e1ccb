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
	"errors"
	"testing"
)

func TestBuildKeyDelimited(t *testing.T) {
	cfg := SortConfig{
		Fields:         []FieldSpec{{Type: Numeric, Position: 2}},
		FieldSeparator: '\t',
		Precision:      Simple,
		DecimalSeparator: '.',
	}
	k1, err := BuildKey([]byte("apple\t3.14"), cfg)
	if err != nil {
		t.Fatalf("BuildKey: %v", err)
	}
	k2, err := BuildKey([]byte("cherry\t-2.5"), cfg)
	if err != nil {
		t.Fatalf("BuildKey: %v", err)
	}
	k3, err := BuildKey([]byte("banana\t10"), cfg)
	if err != nil {
		t.Fatalf("BuildKey: %v", err)
	}
	if !(k2 < k1 && k1 < k3) {
		t.Errorf("expected k2 < k1 < k3, got k1=%q k2=%q k3=%q", k1, k2, k3)
	}
}

func TestBuildKeyFixed(t *testing.T) {
	cfg := SortConfig{
		Fixed:  true,
		Fields: []FieldSpec{{Type: Alpha, Position: 1, Length: 3}},
	}
	k, err := BuildKey([]byte("abcdef"), cfg)
	if err != nil {
		t.Fatalf("BuildKey: %v", err)
	}
	if k != "abc" {
		t.Errorf("BuildKey = %q, want %q", k, "abc")
	}
}

func TestBuildKeyFixedShortLine(t *testing.T) {
	cfg := SortConfig{
		Fixed:  true,
		Fields: []FieldSpec{{Type: Alpha, Position: 10, Length: 3}},
	}
	k, err := BuildKey([]byte("ab"), cfg)
	if err != nil {
		t.Fatalf("BuildKey: %v", err)
	}
	// The extracted value is empty, but encodeField still space-pads an
	// Alpha field to its configured Length (spec.md §4.5), so the key is
	// 3 spaces, not the empty string.
	if k != "   " {
		t.Errorf("BuildKey for short line = %q, want %q", k, "   ")
	}
}

func TestBuildKeyAlphaRejectsTabAndNewline(t *testing.T) {
	cfg := SortConfig{
		Fixed:  true,
		Fields: []FieldSpec{{Type: Alpha, Position: 1, Length: 3}},
	}
	if _, err := BuildKey([]byte("a\tc"), cfg); !errors.Is(err, ErrUnsortableValue) {
		t.Errorf("BuildKey with embedded tab got %v, want ErrUnsortableValue", err)
	}
}

func TestBuildKeyDateEmptyField(t *testing.T) {
	pattern, err := ParseDatePattern("d.m.y")
	if err != nil {
		t.Fatalf("ParseDatePattern: %v", err)
	}
	cfg := SortConfig{
		Fields:         []FieldSpec{{Type: Date, Position: 2}},
		FieldSeparator: '\t',
		DatePattern:    pattern,
		CenturyAnchor:  20,
	}
	k, err := BuildKey([]byte("x\t"), cfg)
	if err != nil {
		t.Fatalf("BuildKey: %v", err)
	}
	if k != emptyDate {
		t.Errorf("BuildKey for empty date field = %q, want %q", k, emptyDate)
	}
}
