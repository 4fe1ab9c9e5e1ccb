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

package cli

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/flwyd/extsort/extsort"
)

// Run parses args, expands file arguments, and drives extsort.Sorter over
// each resulting file in order, writing argument diagnostics to stderr and
// processing errors and the final "N files processed." line to stdout. No
// progress is reported: the Sorter's Progress hook is left unset. It
// returns the process exit
// code (spec.md §6: 0 on success or /?, non-zero otherwise) so main can
// stay a thin os.Exit wrapper, the way adifmt's main defers all behavior
// to flag.FlagSet/cmd.Command and only translates the result to an exit
// code.
func Run(args []string, stdout, stderr io.Writer) int {
	flags, err := Parse(args)
	if err != nil {
		fmt.Fprintln(stderr, err)
		fmt.Fprint(stderr, Usage)
		return 2
	}
	if flags.Help {
		fmt.Fprint(stdout, Usage)
		return 0
	}
	if err := flags.Validate(); err != nil {
		fmt.Fprintln(stderr, err)
		fmt.Fprint(stderr, Usage)
		return 2
	}

	cfg, err := flags.BuildConfig(time.Now().Year())
	if err != nil {
		fmt.Fprintln(stderr, err)
		fmt.Fprint(stderr, Usage)
		return 2
	}

	files, err := expandFiles(flags.Files)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}

	sorter := &extsort.Sorter{Config: cfg}
	processed, err := sorter.SortFiles(files)
	if err != nil {
		// spec.md §7: processing errors (as opposed to argument errors)
		// are reported to standard output, matching the legacy behavior
		// of the original tool's caught-exception handler.
		fmt.Fprintln(stdout, err)
		return exitCodeFor(err)
	}
	fmt.Fprintf(stdout, "%d files processed.\n", processed)
	return 0
}

// expandFiles resolves each command-line file argument as a glob pattern
// (filepath.Glob), falling back to the literal argument when the pattern
// matches nothing — so a plain filename with no glob metacharacters still
// works, and so does one that happens not to match (the error surfaces
// later, when extsort.Sorter tries to open it).
func expandFiles(args []string) ([]string, error) {
	var files []string
	for _, arg := range args {
		matches, err := filepath.Glob(arg)
		if err != nil {
			return nil, fmt.Errorf("%w: bad file pattern %q: %v", extsort.ErrInvalidArgument, arg, err)
		}
		if len(matches) == 0 {
			files = append(files, arg)
			continue
		}
		files = append(files, matches...)
	}
	return files, nil
}

// exitCodeFor classifies a processing error into spec.md §7's exit-code
// scheme: argument-time errors (already handled above) get 2, everything
// that can only surface once a file is being processed gets 1.
func exitCodeFor(err error) int {
	if errors.Is(err, extsort.ErrInvalidArgument) || errors.Is(err, extsort.ErrInvalidDateFormat) || errors.Is(err, extsort.ErrInvalidFieldSpec) {
		return 2
	}
	return 1
}
