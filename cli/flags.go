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

// Package cli parses ExtSort's DOS-style "/x:y" command line and turns it
// into an extsort.SortConfig plus a list of files to process. The syntax
// isn't compatible with Go's flag package (leading slash, colon-separated
// value, no "--"), so parsing is hand-rolled the way adifmt hand-rolls its
// rune-valued flags around the standard flag.FlagSet.
package cli

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/exp/maps"

	"github.com/flwyd/extsort/extsort"
)

// recognizedOptions names every option Parse accepts, keyed by the part
// after the leading '/'. Used only to build a helpful "did you mean one of
// these" list for an unrecognized option.
var recognizedOptions = map[string]bool{
	"?": true, "help": true, "o": true, "n": true, "d": true, "s": true,
	"p": true, "f": true, "r": true, "b": true, "double": true, "i": true,
}

// Flags holds the raw, as-typed option values, before they're validated and
// assembled into an extsort.SortConfig. Kept separate from SortConfig so
// defaulting and cross-flag validation (e.g. "/s requires /p") have a place
// to live that isn't the engine's own config type.
type Flags struct {
	OutputExt      string // /o, default ".sor.txt"
	DecimalSep     string // /n, default "."
	DatePattern    string // /d, default "d.m.y"
	FieldSep       string // /s, default "\t"
	FieldSepSet    bool
	DelimitedSpec  string // /p
	DelimitedSet   bool
	FixedSpec      string // /f
	FixedSet       bool
	Reverse        bool // /r
	Begin          int  // /b, default 1
	Double         bool // /double
	IgnoreOverflow bool // /i
	Help           bool // /?
	Files          []string
}

// DefaultFlags returns a Flags populated with ExtSort's documented defaults
// (spec.md §6), ready to be overridden by Parse.
func DefaultFlags() Flags {
	return Flags{
		OutputExt:   ".sor.txt",
		DecimalSep:  ".",
		DatePattern: "d.m.y",
		FieldSep:    "\t",
		Begin:       1,
	}
}

// Parse reads a DOS-style argument list (os.Args[1:]) into a Flags. Every
// recognized option begins with '/'; anything else is a file argument.
// Parse does not apply cross-flag validation (requires/conflicts) or build
// an extsort.SortConfig; see Flags.Validate and Flags.BuildConfig.
func Parse(args []string) (Flags, error) {
	f := DefaultFlags()
	for _, arg := range args {
		if !strings.HasPrefix(arg, "/") {
			f.Files = append(f.Files, arg)
			continue
		}
		name, value, hasValue := splitOption(arg[1:])
		switch strings.ToLower(name) {
		case "?", "help":
			f.Help = true
		case "o":
			if !hasValue {
				return f, fmt.Errorf("%w: /o requires a value, e.g. /o:.sorted", extsort.ErrInvalidArgument)
			}
			f.OutputExt = value
		case "n":
			sep, err := singleByte("/n", value, hasValue)
			if err != nil {
				return f, err
			}
			f.DecimalSep = sep
		case "d":
			if !hasValue {
				return f, fmt.Errorf("%w: /d requires a value, e.g. /d:d.m.y", extsort.ErrInvalidArgument)
			}
			f.DatePattern = value
		case "s":
			sep, err := singleByte("/s", value, hasValue)
			if err != nil {
				return f, err
			}
			f.FieldSep = sep
			f.FieldSepSet = true
		case "p":
			if !hasValue {
				return f, fmt.Errorf("%w: /p requires a value, e.g. /p:2,D5", extsort.ErrInvalidArgument)
			}
			f.DelimitedSpec = value
			f.DelimitedSet = true
		case "f":
			if !hasValue {
				return f, fmt.Errorf("%w: /f requires a value, e.g. /f:10L5,N20L8", extsort.ErrInvalidArgument)
			}
			f.FixedSpec = value
			f.FixedSet = true
		case "r":
			f.Reverse = true
		case "b":
			n, err := strconv.Atoi(value)
			if !hasValue || err != nil {
				return f, fmt.Errorf("%w: /b requires an integer value, e.g. /b:8", extsort.ErrInvalidArgument)
			}
			f.Begin = n
		case "double":
			f.Double = true
		case "i":
			f.IgnoreOverflow = true
		default:
			return f, fmt.Errorf("%w: unrecognized option %q, expected one of /%s", extsort.ErrInvalidArgument, arg, strings.Join(sortedOptionNames(), ", /"))
		}
	}
	return f, nil
}

// splitOption divides an option token (without its leading '/') at its
// first ':' into a name and value. hasValue is false when there is no ':'.
func splitOption(tok string) (name, value string, hasValue bool) {
	if i := strings.IndexByte(tok, ':'); i >= 0 {
		return tok[:i], tok[i+1:], true
	}
	return tok, "", false
}

// sortedOptionNames lists recognizedOptions' keys in a stable order for
// error messages.
func sortedOptionNames() []string {
	names := maps.Keys(recognizedOptions)
	sort.Strings(names)
	return names
}

func singleByte(flagName, value string, hasValue bool) (string, error) {
	if !hasValue || len(value) != 1 {
		return "", fmt.Errorf("%w: %s requires a single-character value", extsort.ErrInvalidArgument, flagName)
	}
	return value, nil
}

// Validate checks the cross-flag requirement and conflict rules from
// spec.md §6 ("/s requires /p"; "/p and /f are mutually exclusive") that
// Parse can't enforce token by token.
func (f Flags) Validate() error {
	if f.DelimitedSet && f.FixedSet {
		return fmt.Errorf("%w: /p and /f are mutually exclusive", extsort.ErrInvalidArgument)
	}
	if !f.DelimitedSet && !f.FixedSet {
		return fmt.Errorf("%w: one of /p or /f is required", extsort.ErrInvalidArgument)
	}
	if f.FieldSepSet && !f.DelimitedSet {
		return fmt.Errorf("%w: /s requires /p", extsort.ErrInvalidArgument)
	}
	if len(f.Files) == 0 {
		return fmt.Errorf("%w: at least one file argument is required", extsort.ErrInvalidArgument)
	}
	return nil
}

// BuildConfig assembles an extsort.SortConfig from validated flags and the
// century anchor for the current run. It parses the field spec and date
// pattern, surfacing their own sentinel errors (ErrInvalidFieldSpec,
// ErrInvalidDateFormat) unwrapped.
func (f Flags) BuildConfig(currentYear int) (extsort.SortConfig, error) {
	fixed := f.FixedSet
	spec := f.DelimitedSpec
	if fixed {
		spec = f.FixedSpec
	}
	fields, err := extsort.ParseFieldSpecs(spec, fixed)
	if err != nil {
		return extsort.SortConfig{}, err
	}
	pattern, err := extsort.ParseDatePattern(f.DatePattern)
	if err != nil {
		return extsort.SortConfig{}, err
	}
	precision := extsort.Simple
	if f.Double {
		precision = extsort.Double
	}
	cfg := extsort.SortConfig{
		Fields:           fields,
		Fixed:            fixed,
		DecimalSeparator: f.DecimalSep[0],
		DatePattern:      pattern,
		Begin:            f.Begin,
		Reverse:          f.Reverse,
		Precision:        precision,
		IgnoreOverflow:   f.IgnoreOverflow,
		OutputExtension:  f.OutputExt,
		CenturyAnchor:    extsort.CenturyAnchor(currentYear),
	}
	if !fixed {
		cfg.FieldSeparator = f.FieldSep[0]
	}
	if err := cfg.Validate(); err != nil {
		return extsort.SortConfig{}, err
	}
	return cfg, nil
}
