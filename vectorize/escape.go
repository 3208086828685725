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

import "go/ast"

// Reserved names of the escape calls.
const (
	// ScalarEscape marks a scalar expression that is broadcast as a whole:
	// scalar(1.0 + 1.0) becomes Splat(width, 1.0 + 1.0).
	ScalarEscape = "scalar"

	// VerbatimEscape marks code that is already in vector form and is
	// spliced in unchanged: verbatim(e) becomes e.
	VerbatimEscape = "verbatim"
)

// escapeRule rewrites an escape call. Its arguments are never visited by
// the default traversal.
type escapeRule func(r *rewriter, call *ast.CallExpr) ast.Expr

// escapes maps reserved call names to their rules.
var escapes = map[string]escapeRule{
	ScalarEscape:   (*rewriter).scalarEscape,
	VerbatimEscape: (*rewriter).verbatimEscape,
}

// escapeFor returns the rule for call if it is an escape call.
func escapeFor(call *ast.CallExpr) (escapeRule, bool) {
	id, ok := call.Fun.(*ast.Ident)
	if !ok {
		return nil, false
	}
	rule, ok := escapes[id.Name]
	return rule, ok
}

func (r *rewriter) scalarEscape(call *ast.CallExpr) ast.Expr {
	args := make([]ast.Expr, len(call.Args))
	for i, arg := range call.Args {
		// scalar(verbatim(e)) broadcasts e itself.
		if inner, ok := arg.(*ast.CallExpr); ok {
			if id, ok := inner.Fun.(*ast.Ident); ok && id.Name == VerbatimEscape {
				arg = r.verbatimEscape(inner)
			}
		}
		args[i] = arg
	}
	out := r.splat(args...)
	out.Ellipsis = call.Ellipsis
	return out
}

func (r *rewriter) verbatimEscape(call *ast.CallExpr) ast.Expr {
	if len(call.Args) != 1 || call.Ellipsis.IsValid() {
		// Left for the compiler to reject.
		return call
	}
	return call.Args[0]
}
