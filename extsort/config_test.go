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

func TestSortConfigValidate(t *testing.T) {
	base := SortConfig{
		Fields:         []FieldSpec{{Type: Alpha, Position: 1}},
		FieldSeparator: '\t',
		Begin:          1,
	}
	if err := base.Validate(); err != nil {
		t.Errorf("Validate() got error %v, want nil", err)
	}

	noFields := base
	noFields.Fields = nil
	if err := noFields.Validate(); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("Validate() with no fields got %v, want ErrInvalidArgument", err)
	}

	badBegin := base
	badBegin.Begin = 0
	if err := badBegin.Validate(); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("Validate() with begin=0 got %v, want ErrInvalidArgument", err)
	}

	badSep := base
	badSep.FieldSeparator = '\t'
	badSep.Fixed = false
	badSep.DecimalSeparator = '\n'
	if err := badSep.Validate(); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("Validate() with reserved decimal separator got %v, want ErrInvalidArgument", err)
	}
}

func TestCenturyAnchor(t *testing.T) {
	if got := CenturyAnchor(2026); got != 39 {
		t.Errorf("CenturyAnchor(2026) = %d, want 39", got)
	}
}

func TestOutputPath(t *testing.T) {
	tests := []struct {
		input, ext, want string
	}{
		{"foo.txt", ".sor.txt", "foo.sor.txt"},
		{"foo.txt", "sor.txt", "foo.sor.txt"},
		{"foo", ".out", "foo.out"},
		{"dir/foo.dat", ".s", "dir/foo.s"},
		{"foo.txt", "", "foo.sor.txt"},
	}
	for _, tc := range tests {
		if got := OutputPath(tc.input, tc.ext); got != tc.want {
			t.Errorf("OutputPath(%q, %q) = %q, want %q", tc.input, tc.ext, got, tc.want)
		}
	}
}
