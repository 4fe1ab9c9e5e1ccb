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

package linesort

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeTemp(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func readLines(t *testing.T, path string) []string {
	t.Helper()
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	s := strings.TrimSuffix(string(b), "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

func TestSortAscending(t *testing.T) {
	dir := t.TempDir()
	in := writeTemp(t, dir, "in.txt", "banana\napple\ncherry\n")
	out := filepath.Join(dir, "out.txt")
	if err := Sort(in, out, false, 0); err != nil {
		t.Fatalf("Sort: %v", err)
	}
	got := readLines(t, out)
	want := []string{"apple", "banana", "cherry"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestSortDescending(t *testing.T) {
	dir := t.TempDir()
	in := writeTemp(t, dir, "in.txt", "banana\napple\ncherry\n")
	out := filepath.Join(dir, "out.txt")
	if err := Sort(in, out, true, 0); err != nil {
		t.Fatalf("Sort: %v", err)
	}
	got := readLines(t, out)
	want := []string{"cherry", "banana", "apple"}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestSortMultipleRuns(t *testing.T) {
	dir := t.TempDir()
	// chunkLines=2 forces multiple runs and a k-way merge.
	in := writeTemp(t, dir, "in.txt", "b\ta\nb\tb\na\tc\nb\td\na\te\n")
	out := filepath.Join(dir, "out.txt")
	if err := Sort(in, out, false, 2); err != nil {
		t.Fatalf("Sort: %v", err)
	}
	got := readLines(t, out)
	want := []string{"a\tc", "a\te", "b\ta", "b\tb", "b\td"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestSortEmptyFile(t *testing.T) {
	dir := t.TempDir()
	in := writeTemp(t, dir, "in.txt", "")
	out := filepath.Join(dir, "out.txt")
	if err := Sort(in, out, false, 0); err != nil {
		t.Fatalf("Sort: %v", err)
	}
	if got := readLines(t, out); len(got) != 0 {
		t.Errorf("got %v, want empty", got)
	}
}

func TestSortCleansUpRunFiles(t *testing.T) {
	dir := t.TempDir()
	in := writeTemp(t, dir, "in.txt", "b\na\nc\nd\ne\n")
	out := filepath.Join(dir, "out.txt")
	if err := Sort(in, out, false, 2); err != nil {
		t.Fatalf("Sort: %v", err)
	}
	matches, err := filepath.Glob(RunFilesGlob(in))
	if err != nil {
		t.Fatalf("Glob: %v", err)
	}
	if len(matches) != 0 {
		t.Errorf("leftover run files: %v", matches)
	}
}
