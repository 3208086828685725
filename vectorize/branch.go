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

const (
	msgMissingElse = "vectorizing `if` needs a matching `else`"
	msgNoValue     = "vectorized `if` branch must end in a single-valued return"
)

// conditional rewrites an if statement in statement position into
// return Select(cond, then, else). It returns nil if the statement cannot be
// rewritten; the errors have been recorded.
func (r *rewriter) conditional(s *ast.IfStmt) ast.Stmt {
	init := r.stmt(s.Init)
	value := r.selectExpr(s)
	if value == nil {
		return nil
	}
	ret := &ast.ReturnStmt{Return: s.If, Results: []ast.Expr{value}}
	if init == nil {
		return ret
	}
	// Keep the init statement scoped to the select.
	return &ast.BlockStmt{Lbrace: s.If, List: []ast.Stmt{init, ret}}
}

// selectExpr returns Select(cond, then, else) for s, or nil after recording
// why s cannot be selected lane-wise. s.Init is the caller's concern.
func (r *rewriter) selectExpr(s *ast.IfStmt) ast.Expr {
	if s.Else == nil {
		r.errorf(MissingElseBranch, s.If, msgMissingElse)
		// Keep walking so errors nested in the branch are reported too.
		r.expr(s.Cond)
		r.block(s.Body)
		return nil
	}

	cond := r.expr(s.Cond)
	then := r.branchValue(s.Body)
	els := r.branchValue(s.Else)
	if then == nil || els == nil {
		return nil
	}
	return r.selectOf(cond, then, els)
}

// branchValue returns the rewritten value a branch evaluates to:
//
//	{ return e }                 -> e
//	{ if c {...} else {...} }    -> Select(...)
//	else if c {...} else {...}   -> Select(...)
//	{ stmts...; return e }       -> func() R { stmts...; return e }()
//
// where R is the vectorized result type of the enclosing function.
func (r *rewriter) branchValue(s ast.Stmt) ast.Expr {
	var block *ast.BlockStmt
	switch s := s.(type) {
	case *ast.IfStmt:
		if s.Init == nil {
			return r.selectExpr(s)
		}
		block = &ast.BlockStmt{Lbrace: s.If, List: []ast.Stmt{s}, Rbrace: s.End()}
	case *ast.BlockStmt:
		block = s
	default:
		r.errorf(BranchWithoutValue, s.Pos(), msgNoValue)
		r.stmt(s)
		return nil
	}

	if len(block.List) == 1 {
		switch only := block.List[0].(type) {
		case *ast.ReturnStmt:
			if len(only.Results) == 1 {
				return r.expr(only.Results[0])
			}
		case *ast.IfStmt:
			if only.Init == nil {
				return r.selectExpr(only)
			}
		}
	}

	result := r.resultType()
	if result == nil || !yieldsValue(block) {
		r.errorf(BranchWithoutValue, block.Lbrace, msgNoValue)
		r.block(block)
		return nil
	}
	errs := len(r.errs)
	body := r.block(block)
	if len(r.errs) > errs {
		return nil
	}
	return closure(result, body)
}

// yieldsValue reports whether block ends in something that produces a
// single value once rewritten.
func yieldsValue(block *ast.BlockStmt) bool {
	if len(block.List) == 0 {
		return false
	}
	switch last := block.List[len(block.List)-1].(type) {
	case *ast.ReturnStmt:
		return len(last.Results) == 1
	case *ast.IfStmt:
		return true
	}
	return false
}
