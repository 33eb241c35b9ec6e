// Copyright 2023 Ross Light
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//		 https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

package mmark

import (
	"fmt"
	"sort"
	"strings"
)

// ErrorKind distinguishes the two shapes of ParseError described in
// the grammar: a Trivial error (an unexpected token or EOF against a set of
// expected labels) or a Fancy error (a custom error kind, carried as a
// single error value).
type ErrorKind int

const (
	// TrivialError reports an unexpected token or end of input.
	TrivialError ErrorKind = iota
	// FancyError reports a custom error kind, such as YamlParseError
	// or NonFlankingDelimiterRun.
	FancyError
)

func (k ErrorKind) String() string {
	switch k {
	case TrivialError:
		return "trivial"
	case FancyError:
		return "fancy"
	default:
		return "unknown"
	}
}

// ParseError is a single error produced by either parsing phase, annotated
// with the position at which it occurred.
//
// For a Trivial error, Unexpected names the offending token (or the EOF
// label, which callers may rewrite — see withEOFLabel) and Expected holds
// the labels that would have been accepted instead. For a Fancy error,
// Fancy holds the custom error value (a YamlParseError, a
// NonFlankingDelimiterRun, or the URI parser's error for a link or image
// destination that does not parse).
type ParseError struct {
	Pos        Position
	Kind       ErrorKind
	Unexpected string
	Expected   []string
	Fancy      error
}

func (e *ParseError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: ", e.Pos)
	switch e.Kind {
	case FancyError:
		b.WriteString(e.Fancy.Error())
	default:
		if e.Unexpected != "" {
			fmt.Fprintf(&b, "unexpected %s", e.Unexpected)
		} else {
			b.WriteString("unexpected input")
		}
		if len(e.Expected) > 0 {
			fmt.Fprintf(&b, ", expected %s", strings.Join(e.Expected, " or "))
		}
	}
	return b.String()
}

// eofLabel is the default token name used for end of input; it may be
// replaced per parse context with withEOFLabel (e.g. rewritten to
// "end of inline block" when an inline payload ends unexpectedly).
const eofLabel = "end of input"

func trivialErr(pos Position, unexpected string, expected ...string) *ParseError {
	return &ParseError{Pos: pos, Kind: TrivialError, Unexpected: unexpected, Expected: expected}
}

func eofErr(pos Position, expected ...string) *ParseError {
	return trivialErr(pos, eofLabel, expected...)
}

// withEOFLabel returns err unchanged unless it is a Trivial error reporting
// the default EOF label, in which case a copy is returned with Unexpected
// replaced by label.
func withEOFLabel(err *ParseError, label string) *ParseError {
	if err == nil || err.Kind != TrivialError || err.Unexpected != eofLabel {
		return err
	}
	cp := *err
	cp.Unexpected = label
	return &cp
}

// YamlParseError is the custom Fancy error kind produced when the YAML
// front matter decoder reports a failure
type YamlParseError struct {
	Message string
}

func (e YamlParseError) Error() string {
	return "YAML parse error: " + e.Message
}

// NonFlankingDelimiterRun is the custom Fancy error kind produced when a
// delimiter run fails the opener-flanking check
type NonFlankingDelimiterRun struct {
	Delims string
}

func (e NonFlankingDelimiterRun) Error() string {
	return fmt.Sprintf("delimiter run %q is not left-flanking", e.Delims)
}

func fancyErr(pos Position, err error) *ParseError {
	return &ParseError{Pos: pos, Kind: FancyError, Fancy: err}
}

// sortErrors orders errs in source order (line, then column), which is the
// stable ordering the orchestrator promises across both parsing phases.
func sortErrors(errs []*ParseError) {
	sort.SliceStable(errs, func(i, j int) bool {
		a, b := errs[i].Pos, errs[j].Pos
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		return a.Column < b.Column
	})
}
