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
	"go/ast"
	"go/token"
)

// makeCall builds fun(args...).
func makeCall(fun ast.Expr, args ...ast.Expr) *ast.CallExpr {
	return &ast.CallExpr{Fun: fun, Args: args}
}

// vecType builds VecType[[width]elem]. The lane count is an array length,
// so any constant expression works as a width.
func (r *rewriter) vecType(elem ast.Expr) ast.Expr {
	if ell, ok := elem.(*ast.Ellipsis); ok {
		// ...T stays variadic over vectors of T.
		return &ast.Ellipsis{Ellipsis: ell.Ellipsis, Elt: r.vecType(ell.Elt)}
	}
	return &ast.IndexExpr{
		X:     r.rt.ref(r.rt.VecType),
		Index: &ast.ArrayType{Len: r.width, Elt: elem},
	}
}

// splat builds Splat(width, args...). The arguments are used as given.
func (r *rewriter) splat(args ...ast.Expr) *ast.CallExpr {
	return makeCall(r.rt.ref(r.rt.Splat), append([]ast.Expr{r.width}, args...)...)
}

// castTo builds Cast[typ](width, x).
func (r *rewriter) castTo(typ, x ast.Expr) ast.Expr {
	fun := &ast.IndexExpr{X: r.rt.ref(r.rt.Cast), Index: typ}
	return makeCall(fun, r.width, x)
}

// selectOf builds Select(mask, then, els).
func (r *rewriter) selectOf(mask, then, els ast.Expr) ast.Expr {
	return makeCall(r.rt.ref(r.rt.Select), mask, then, els)
}

// opCall builds name(args...) for a runtime operator.
func (r *rewriter) opCall(name string, args ...ast.Expr) ast.Expr {
	return makeCall(r.rt.ref(name), args...)
}

// closure builds func() result { body }() so a multi-statement branch can be
// used where a value is expected.
func closure(result ast.Expr, body *ast.BlockStmt) ast.Expr {
	return makeCall(&ast.FuncLit{
		Type: &ast.FuncType{
			Params:  &ast.FieldList{},
			Results: &ast.FieldList{List: []*ast.Field{{Type: result}}},
		},
		Body: body,
	})
}

// assign builds lhs = rhs.
func assign(lhs, rhs ast.Expr) *ast.AssignStmt {
	return &ast.AssignStmt{
		Lhs: []ast.Expr{lhs},
		Tok: token.ASSIGN,
		Rhs: []ast.Expr{rhs},
	}
}
