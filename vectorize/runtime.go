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
	"go/ast"
	"go/token"
)

// Runtime names the vector primitives that rewritten code calls into.
// The rewriter never implements vector arithmetic; it only emits references
// to these names, qualified by Package.
type Runtime struct {
	Name       string // "simd"
	Package    string // qualifier used in generated code, "" for unqualified names
	ImportPath string // import path emitted by generators, may be empty
	VecType    string // generic lane-vector type, instantiated as VecType[[width]T]
	Splat      string // broadcast constructor, called as Splat(width, x)
	Select     string // lane-wise select, called as Select(mask, then, else)
	Cast       string // lane-wise conversion, called as Cast[T](width, x)

	// Compare maps the six comparison operators to lane-wise comparators.
	Compare map[token.Token]string

	// Arith and Unary are only consulted when Config.ArithmeticCalls is set.
	Arith map[token.Token]string
	Unary map[token.Token]string
}

// DefaultRuntime returns the contract used when a Config leaves Runtime unset.
func DefaultRuntime() Runtime {
	return Runtime{
		Name:    "simd",
		Package: "simd",
		VecType: "Vec",
		Splat:   "Splat",
		Select:  "Select",
		Cast:    "Cast",
		Compare: map[token.Token]string{
			token.EQL: "Eq",
			token.NEQ: "Ne",
			token.GTR: "Gt",
			token.GEQ: "Ge",
			token.LSS: "Lt",
			token.LEQ: "Le",
		},
		Arith: map[token.Token]string{
			token.ADD:     "Add",
			token.SUB:     "Sub",
			token.MUL:     "Mul",
			token.QUO:     "Div",
			token.REM:     "Rem",
			token.AND:     "And",
			token.OR:      "Or",
			token.XOR:     "Xor",
			token.AND_NOT: "AndNot",
			token.SHL:     "Shl",
			token.SHR:     "Shr",
			token.LAND:    "And", // masks
			token.LOR:     "Or",
		},
		Unary: map[token.Token]string{
			token.SUB: "Neg",
			token.XOR: "Not",
			token.NOT: "Not",
		},
	}
}

// WithPackage returns a copy of rt whose generated references use pkg as
// their qualifier.
func (rt Runtime) WithPackage(pkg string) Runtime {
	rt.Package = pkg
	return rt
}

// isZero reports whether rt was left unset in a Config.
func (rt Runtime) isZero() bool {
	return rt.Name == "" && rt.Package == "" && rt.VecType == "" && rt.Compare == nil
}

// comparisonOps lists the operators every runtime must map.
var comparisonOps = []token.Token{token.EQL, token.NEQ, token.GTR, token.GEQ, token.LSS, token.LEQ}

// Validate checks that every primitive of the contract has a name.
func (rt Runtime) Validate() error {
	primitives := []struct{ field, name string }{
		{"VecType", rt.VecType},
		{"Splat", rt.Splat},
		{"Select", rt.Select},
		{"Cast", rt.Cast},
	}
	for _, p := range primitives {
		if p.name == "" {
			return fmt.Errorf("runtime %q: missing %s name", rt.Name, p.field)
		}
	}
	for _, op := range comparisonOps {
		if rt.Compare[op] == "" {
			return fmt.Errorf("runtime %q: missing comparator for %s", rt.Name, op)
		}
	}
	return nil
}

// ref returns a reference to the runtime symbol name.
func (rt Runtime) ref(name string) ast.Expr {
	if rt.Package == "" {
		return ast.NewIdent(name)
	}
	return &ast.SelectorExpr{
		X:   ast.NewIdent(rt.Package),
		Sel: ast.NewIdent(name),
	}
}
