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

	"golang.org/x/tools/go/ast/astutil"
)

// predeclaredTypes are the predeclared type names that may appear as the
// function of a conversion.
var predeclaredTypes = map[string]bool{
	"bool":       true,
	"byte":       true,
	"rune":       true,
	"string":     true,
	"int":        true,
	"int8":       true,
	"int16":      true,
	"int32":      true,
	"int64":      true,
	"uint":       true,
	"uint8":      true,
	"uint16":     true,
	"uint32":     true,
	"uint64":     true,
	"uintptr":    true,
	"float32":    true,
	"float64":    true,
	"complex64":  true,
	"complex128": true,
}

// isTypeLiteral reports whether e can only be a type.
func isTypeLiteral(e ast.Expr) bool {
	switch e.(type) {
	case *ast.ArrayType, *ast.MapType, *ast.ChanType, *ast.FuncType,
		*ast.StructType, *ast.InterfaceType:
		return true
	}
	return false
}

// isConversionType reports whether fun, used as a call's function, names a
// type. Without type information only the predeclared names, the configured
// names and syntactic type literals are recognized.
func (r *rewriter) isConversionType(fun ast.Expr) bool {
	switch f := fun.(type) {
	case *ast.Ident:
		return predeclaredTypes[f.Name] || r.typeNames[f.Name]
	case *ast.SelectorExpr:
		return r.typeNames[exprString(f)]
	case *ast.ParenExpr:
		if star, ok := f.X.(*ast.StarExpr); ok {
			// (*T)(x)
			return r.isConversionType(star.X) || isTypeLiteral(star.X)
		}
		return r.isConversionType(f.X)
	}
	return isTypeLiteral(fun)
}

// cast returns the converted operand if call is a conversion T(x).
func (r *rewriter) cast(call *ast.CallExpr) (typ, operand ast.Expr, ok bool) {
	if len(call.Args) != 1 || call.Ellipsis.IsValid() || !r.isConversionType(call.Fun) {
		return nil, nil, false
	}
	return call.Fun, call.Args[0], true
}

// isTypeSlot reports whether the cursor sits where Go expects a type.
func isTypeSlot(c *astutil.Cursor) bool {
	switch p := c.Parent().(type) {
	case *ast.Field:
		return c.Name() == "Type"
	case *ast.ValueSpec:
		return c.Name() == "Type"
	case *ast.TypeSpec:
		return c.Name() == "Type"
	case *ast.CompositeLit:
		// Point{X: 1} names a struct to build, not a lane type.
		return c.Name() == "Type" && isTypeLiteral(p.Type)
	case *ast.TypeAssertExpr:
		return c.Name() == "Type"
	case *ast.CallExpr:
		// make(T, ...) and new(T)
		if c.Name() != "Args" || c.Index() != 0 {
			return false
		}
		id, ok := p.Fun.(*ast.Ident)
		return ok && (id.Name == "make" || id.Name == "new")
	}
	if e, ok := c.Node().(ast.Expr); ok {
		return isTypeLiteral(e)
	}
	return false
}

// isExprSlot reports whether the cursor sits in a field that accepts any
// ast.Expr, so a rewritten literal may replace the node there.
func isExprSlot(c *astutil.Cursor) bool {
	switch c.Parent().(type) {
	case *ast.Field, *ast.ValueSpec, *ast.TypeSpec, *ast.ImportSpec:
		return c.Name() != "Names" && c.Name() != "Name" && c.Name() != "Tag" && c.Name() != "Path"
	case *ast.SelectorExpr:
		return c.Name() != "Sel"
	case *ast.FuncDecl, *ast.LabeledStmt, *ast.BranchStmt:
		return false
	}
	return true
}

// exprString returns a short source form of simple type expressions.
func exprString(e ast.Expr) string {
	switch e := e.(type) {
	case *ast.Ident:
		return e.Name
	case *ast.SelectorExpr:
		return exprString(e.X) + "." + e.Sel.Name
	}
	return ""
}
