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

// Package extsort builds composite sort keys from delimited or fixed-width
// text records and drives a streaming index/sort/merge pipeline that
// reorders a file by those keys without holding the records themselves in
// memory.
package extsort

import "errors"

// Sentinel errors, one per error kind in the spec. Callers classify engine
// failures with errors.Is against these rather than a bespoke Kind enum.
var (
	ErrInvalidArgument   = errors.New("invalid argument")
	ErrInvalidDateFormat = errors.New("invalid date format")
	ErrInvalidDateValue  = errors.New("invalid date value")
	ErrInvalidFieldSpec  = errors.New("invalid field spec")
	ErrIOError           = errors.New("I/O error")
	ErrValueOverflow     = errors.New("value overflow")
	ErrExponentOverflow  = errors.New("exponent overflow")
	ErrSortFailed        = errors.New("external sort failed")

	// ErrUnsortableValue flags an Alpha field value containing a TAB or LF
	// byte, which would corrupt the index file's key-TAB-offset-LF
	// framing (spec.md §3, §9 open question: reject rather than silently
	// emit a corrupt index record).
	ErrUnsortableValue = errors.New("alpha field contains a tab or newline")
)
