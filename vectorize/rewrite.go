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
	"errors"
	"fmt"
	"go/ast"
	"go/token"

	"golang.org/x/tools/go/ast/astutil"
)

// Config controls a rewrite. The zero value uses DefaultRuntime.
type Config struct {
	// Runtime names the vector primitives emitted into rewritten code.
	Runtime Runtime

	// Fset resolves error positions. It may be nil.
	Fset *token.FileSet

	// TypeNames lists extra type names (e.g. "hwy.Float16", "Celsius")
	// whose calls are treated as conversions.
	TypeNames []string

	// ArithmeticCalls turns arithmetic operators into runtime calls
	// (x + y becomes Add(x, y)) for runtimes whose vector types do not
	// support Go operators. When false, they are kept as operators.
	ArithmeticCalls bool
}

// Rewrite rewrites node with the default configuration.
func Rewrite(width ast.Expr, node ast.Node) (ast.Node, error) {
	var cfg Config
	return cfg.Rewrite(width, node)
}

// Rewrite returns a vectorized copy of node in which every value is a
// vector of width lanes. The width expression is inserted, by reference, at
// every generated site and is never evaluated. node itself is not modified.
//
// If the tree contains shapes that cannot be vectorized, Rewrite returns a
// nil node and an ErrorList holding every such error.
func (cfg *Config) Rewrite(width ast.Expr, node ast.Node) (ast.Node, error) {
	if width == nil {
		return nil, errors.New("vectorize: nil width")
	}
	if node == nil {
		return nil, errors.New("vectorize: nil node")
	}
	rt := cfg.Runtime
	if rt.isZero() {
		rt = DefaultRuntime()
	}
	if err := rt.Validate(); err != nil {
		return nil, fmt.Errorf("vectorize: %w", err)
	}
	if cfg.ArithmeticCalls && (rt.Arith == nil || rt.Unary == nil) {
		return nil, fmt.Errorf("vectorize: runtime %q has no arithmetic names", rt.Name)
	}

	r := &rewriter{
		cfg:       cfg,
		rt:        rt,
		width:     width,
		typeNames: make(map[string]bool, len(cfg.TypeNames)),
	}
	for _, name := range cfg.TypeNames {
		r.typeNames[name] = true
	}

	out := r.apply(cloneNode(node))
	if err := r.errs.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// RewriteExpr is Rewrite for an expression.
func (cfg *Config) RewriteExpr(width, e ast.Expr) (ast.Expr, error) {
	out, err := cfg.Rewrite(width, e)
	if err != nil {
		return nil, err
	}
	return out.(ast.Expr), nil
}

// RewriteFunc is Rewrite for a function declaration. The result keeps the
// declaration's name; callers usually rename it.
func (cfg *Config) RewriteFunc(width ast.Expr, fn *ast.FuncDecl) (*ast.FuncDecl, error) {
	out, err := cfg.Rewrite(width, fn)
	if err != nil {
		return nil, err
	}
	return out.(*ast.FuncDecl), nil
}

// rewriter holds the state of one Rewrite call.
type rewriter struct {
	cfg       *Config
	rt        Runtime
	width     ast.Expr
	typeNames map[string]bool
	errs      ErrorList

	// results holds the vectorized result type of each enclosing function,
	// nil when the function does not have exactly one result.
	results []ast.Expr
}

func (r *rewriter) errorf(kind ErrorKind, pos token.Pos, format string, args ...any) {
	var position token.Position
	if r.cfg.Fset != nil {
		position = r.cfg.Fset.Position(pos)
	}
	r.errs.Add(kind, pos, position, fmt.Sprintf(format, args...))
}

// apply walks n in pre-order and returns the possibly replaced root.
func (r *rewriter) apply(n ast.Node) ast.Node {
	if n == nil {
		return nil
	}
	return astutil.Apply(n, r.pre, nil)
}

func (r *rewriter) expr(e ast.Expr) ast.Expr {
	if e == nil {
		return nil
	}
	return r.apply(e).(ast.Expr)
}

func (r *rewriter) stmt(s ast.Stmt) ast.Stmt {
	if s == nil {
		return nil
	}
	return r.apply(s).(ast.Stmt)
}

func (r *rewriter) block(b *ast.BlockStmt) *ast.BlockStmt {
	if b == nil {
		return nil
	}
	return r.apply(b).(*ast.BlockStmt)
}

// pre applies the rule for the node under the cursor. A rule that fires
// replaces the node and returns false; its operands were already rewritten
// explicitly, or must not be rewritten at all.
func (r *rewriter) pre(c *astutil.Cursor) bool {
	switch n := c.Node().(type) {
	case *ast.FuncDecl:
		r.funcType(n.Type)
		n.Body = r.funcBody(n.Type, n.Body)
		return false

	case *ast.FuncLit:
		r.funcType(n.Type)
		n.Body = r.funcBody(n.Type, n.Body)
		return false

	case *ast.FieldList:
		// Type parameter constraints are not lane types.
		return c.Name() != "TypeParams"

	case *ast.IfStmt:
		if out := r.conditional(n); out != nil {
			c.Replace(out)
		}
		return false

	case *ast.BinaryExpr:
		if name, ok := r.rt.Compare[n.Op]; ok {
			c.Replace(r.opCall(name, r.expr(n.X), r.expr(n.Y)))
			return false
		}
		if name, ok := r.rt.Arith[n.Op]; ok && r.cfg.ArithmeticCalls {
			c.Replace(r.opCall(name, r.expr(n.X), r.expr(n.Y)))
			return false
		}

	case *ast.UnaryExpr:
		if name, ok := r.rt.Unary[n.Op]; ok && r.cfg.ArithmeticCalls {
			c.Replace(r.opCall(name, r.expr(n.X)))
			return false
		}

	case *ast.AssignStmt:
		if r.cfg.ArithmeticCalls && n.Tok != token.ASSIGN && n.Tok != token.DEFINE {
			if out := r.opAssign(n); out != nil {
				c.Replace(out)
				return false
			}
		}

	case *ast.IncDecStmt:
		if r.cfg.ArithmeticCalls {
			c.Replace(r.incDec(n))
			return false
		}

	case *ast.BasicLit:
		if isExprSlot(c) {
			// A broadcast is a leaf; don't visit the literal again.
			c.Replace(r.splat(n))
		}
		return false

	case *ast.Ident:
		if (n.Name == "true" || n.Name == "false") && isExprSlot(c) {
			c.Replace(r.splat(n))
			return false
		}

	case *ast.CallExpr:
		if rule, ok := escapeFor(n); ok {
			replaceCall(c, rule(r, n))
			return false
		}
		if typ, operand, ok := r.cast(n); ok {
			// The target type is not vectorized.
			replaceCall(c, r.castTo(typ, r.expr(operand)))
			return false
		}
	}

	if isTypeSlot(c) {
		c.Replace(r.vecType(c.Node().(ast.Expr)))
		return false
	}
	return true
}

// replaceCall replaces the call under the cursor unless it is the operand of
// a go or defer statement, which only accept calls.
func replaceCall(c *astutil.Cursor, out ast.Expr) {
	switch c.Parent().(type) {
	case *ast.GoStmt, *ast.DeferStmt:
		if _, ok := out.(*ast.CallExpr); !ok {
			return
		}
	}
	c.Replace(out)
}

// funcType vectorizes the parameter and result types of ft in place.
func (r *rewriter) funcType(ft *ast.FuncType) {
	if ft.Params != nil {
		r.apply(ft.Params)
	}
	if ft.Results != nil {
		r.apply(ft.Results)
	}
}

// funcBody rewrites body with ft's result type available to branches that
// need a closure.
func (r *rewriter) funcBody(ft *ast.FuncType, body *ast.BlockStmt) *ast.BlockStmt {
	var result ast.Expr
	if ft.Results != nil && len(ft.Results.List) == 1 && len(ft.Results.List[0].Names) <= 1 {
		result = ft.Results.List[0].Type
	}
	r.results = append(r.results, result)
	defer func() { r.results = r.results[:len(r.results)-1] }()
	return r.block(body)
}

// resultType returns the vectorized result type of the innermost function.
func (r *rewriter) resultType() ast.Expr {
	if len(r.results) == 0 {
		return nil
	}
	return r.results[len(r.results)-1]
}

// opAssign rewrites x op= y into x = Op(x, y).
func (r *rewriter) opAssign(n *ast.AssignStmt) ast.Stmt {
	op, ok := assignOps[n.Tok]
	if !ok || len(n.Lhs) != 1 || len(n.Rhs) != 1 {
		return nil
	}
	name, ok := r.rt.Arith[op]
	if !ok {
		return nil
	}
	lhs := r.expr(n.Lhs[0])
	x := r.expr(cloneExpr(n.Lhs[0]))
	out := assign(lhs, r.opCall(name, x, r.expr(n.Rhs[0])))
	out.TokPos = n.TokPos
	return out
}

// incDec rewrites x++ into x = Add(x, Splat(width, 1)).
func (r *rewriter) incDec(n *ast.IncDecStmt) ast.Stmt {
	op := token.ADD
	if n.Tok == token.DEC {
		op = token.SUB
	}
	lhs := r.expr(n.X)
	x := r.expr(cloneExpr(n.X))
	one := &ast.BasicLit{ValuePos: n.TokPos, Kind: token.INT, Value: "1"}
	out := assign(lhs, r.opCall(r.rt.Arith[op], x, r.splat(one)))
	out.TokPos = n.TokPos
	return out
}

// assignOps maps compound assignment tokens to their binary operator.
var assignOps = map[token.Token]token.Token{
	token.ADD_ASSIGN:     token.ADD,
	token.SUB_ASSIGN:     token.SUB,
	token.MUL_ASSIGN:     token.MUL,
	token.QUO_ASSIGN:     token.QUO,
	token.REM_ASSIGN:     token.REM,
	token.AND_ASSIGN:     token.AND,
	token.OR_ASSIGN:      token.OR,
	token.XOR_ASSIGN:     token.XOR,
	token.SHL_ASSIGN:     token.SHL,
	token.SHR_ASSIGN:     token.SHR,
	token.AND_NOT_ASSIGN: token.AND_NOT,
}
