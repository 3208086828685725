// Copyright 2025 go-highway Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package vectorize

import (
	"fmt"
	"go/token"
	"strings"
)

// ErrorKind classifies structural errors found while rewriting.
type ErrorKind int

const (
	// MissingElseBranch reports an if statement without an else clause.
	MissingElseBranch ErrorKind = iota + 1

	// BranchWithoutValue reports an if branch that does not end in a
	// single-valued return, so there is nothing to select between.
	BranchWithoutValue
)

// String returns a human-readable name for the kind.
func (k ErrorKind) String() string {
	switch k {
	case MissingElseBranch:
		return "MissingElseBranch"
	case BranchWithoutValue:
		return "BranchWithoutValue"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// Error is a single structural error located at the node that caused it.
type Error struct {
	Kind     ErrorKind
	Pos      token.Pos      // position in the rewritten tree's FileSet
	Position token.Position // resolved Pos, zero if the Config had no FileSet
	Msg      string
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Position.Filename != "" || e.Position.IsValid() {
		return e.Position.String() + ": " + e.Msg
	}
	return e.Msg
}

// ErrorList is the report produced by a failed rewrite: every structural
// error found during the walk, in traversal order.
type ErrorList []*Error

// Add appends an error to the list.
func (l *ErrorList) Add(kind ErrorKind, pos token.Pos, position token.Position, msg string) {
	*l = append(*l, &Error{Kind: kind, Pos: pos, Position: position, Msg: msg})
}

// Error implements the error interface, one line per entry.
func (l ErrorList) Error() string {
	switch len(l) {
	case 0:
		return "no errors"
	case 1:
		return l[0].Error()
	}
	var sb strings.Builder
	for i, e := range l {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(e.Error())
	}
	return sb.String()
}

// Unwrap exposes the individual errors to errors.Is and errors.As.
func (l ErrorList) Unwrap() []error {
	errs := make([]error, len(l))
	for i, e := range l {
		errs[i] = e
	}
	return errs
}

// Err returns an error equivalent to this list, or nil if it is empty.
func (l ErrorList) Err() error {
	if len(l) == 0 {
		return nil
	}
	return l
}
