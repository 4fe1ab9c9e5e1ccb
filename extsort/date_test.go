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

func TestCanonicalizePattern(t *testing.T) {
	tests := []struct{ in, want string }{
		{"d.m.y", "d.m.y"},
		{"D.M.Y", "d.m.y"},
		{"j/a", "d/y"}, // localized aliases resolved even without full context
		{"ymd", "ymd"},
	}
	for _, tc := range tests {
		if got := CanonicalizePattern(tc.in); got != tc.want {
			t.Errorf("CanonicalizePattern(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
	// Idempotence (spec.md §8 invariant 6).
	for _, tc := range tests {
		once := CanonicalizePattern(tc.in)
		twice := CanonicalizePattern(once)
		if once != twice {
			t.Errorf("CanonicalizePattern not idempotent for %q: %q != %q", tc.in, once, twice)
		}
	}
}

func TestParseDatePatternValid(t *testing.T) {
	tests := []string{"d.m.y", "d/m/y", "ymd", "y-m-d", "D.M.Y", "j.m.a"}
	for _, p := range tests {
		if _, err := ParseDatePattern(p); err != nil {
			t.Errorf("ParseDatePattern(%q) got error %v, want nil", p, err)
		}
	}
}

func TestParseDatePatternInvalid(t *testing.T) {
	tests := []string{
		"",
		"dd.m.y",   // duplicate token
		"d.m",      // missing year
		"d..m.y",   // wrong length/separator placement
		"d.m.y.x",  // too long
		"dmyx",     // extra non-token char, wrong length
		"d,m.y",    // separator must be the same character both times
	}
	for _, p := range tests {
		if _, err := ParseDatePattern(p); !errors.Is(err, ErrInvalidDateFormat) {
			t.Errorf("ParseDatePattern(%q) got %v, want ErrInvalidDateFormat", p, err)
		}
	}
}

func TestDatePatternConvert(t *testing.T) {
	dmy, err := ParseDatePattern("d.m.y")
	if err != nil {
		t.Fatalf("ParseDatePattern: %v", err)
	}
	ymd, err := ParseDatePattern("ymd")
	if err != nil {
		t.Fatalf("ParseDatePattern: %v", err)
	}

	tests := []struct {
		name    string
		pattern DatePattern
		value   string
		anchor  int
		want    string
	}{
		{"empty", dmy, "", 20, emptyDate},
		{"full year separated", dmy, "15.06.1999", 20, "19990615"},
		{"two digit year separated", dmy, "01.01.99", 20, "20990101"},
		{"fixed no separator", ymd, "19990615", 20, "19990615"},
		{"fixed two digit year", ymd, "990615", 20, "20990615"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := tc.pattern.Convert(tc.value, tc.anchor)
			if err != nil {
				t.Fatalf("Convert(%q) got error %v", tc.value, err)
			}
			if got != tc.want {
				t.Errorf("Convert(%q) = %q, want %q", tc.value, got, tc.want)
			}
		})
	}
}

func TestDatePatternConvertOrdering(t *testing.T) {
	dmy, err := ParseDatePattern("d.m.y")
	if err != nil {
		t.Fatalf("ParseDatePattern: %v", err)
	}
	// With a single anchor both two-digit years land in the same century
	// (1900 and 1999), so 31.12.00 is the earlier date.
	earlier, err := dmy.Convert("31.12.00", 19)
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	later, err := dmy.Convert("01.01.99", 19)
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if !(earlier < later) {
		t.Errorf("Convert(31.12.00) = %q should sort before Convert(01.01.99) = %q", earlier, later)
	}
}

func TestDatePatternConvertInvalidValue(t *testing.T) {
	dmy, err := ParseDatePattern("d.m.y")
	if err != nil {
		t.Fatalf("ParseDatePattern: %v", err)
	}
	tests := []string{"99.99.99", "ab.cd.ef", "15.06"}
	for _, v := range tests {
		if _, err := dmy.Convert(v, 20); !errors.Is(err, ErrInvalidDateValue) {
			t.Errorf("Convert(%q) got %v, want ErrInvalidDateValue", v, err)
		}
	}
}
