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

// Usage is the text printed for /? and for argument errors, grounded on
// the original tool's two worked examples.
const Usage = `ExtSort: sort a large delimited or fixed-width text file by key fields

Usage: ExtSort file... [options]

  /p:SPEC        delimited-mode field spec, e.g. /p:2,D5 (conflicts with /f)
  /f:SPEC        fixed-mode field spec, e.g. /f:35L5,N3L8 (conflicts with /p)
  /s:C           field separator for /p, default TAB (requires /p)
  /n:C           decimal separator, default .
  /d:FMT         date pattern, default d.m.y
  /b:N           first data line (1-based), default 1
  /o:EXT         output extension, default .sor.txt
  /r             reverse (descending) order
  /double        DOUBLE precision for numeric keys (default SIMPLE)
  /i             ignore numeric mantissa overflow (never ignores exponent overflow)
  /?             print this usage and exit 0

Field spec tokens: an optional type prefix (D for date, N for numeric,
otherwise alpha), a 1-based position, and an optional L-length suffix.
Fixed mode requires a length on every field; delimited mode allows one
only on alpha fields.

Examples:
  ExtSort foo.txt /p:2,D5 /b:8
  ExtSort foo.txt /f:35L5,N3L8 /r
`
