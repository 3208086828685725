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

// cloneNode creates a deep copy of n. Positions are kept so errors found in
// the copy point at the original source; comments and resolver objects are
// dropped.
func cloneNode(n ast.Node) ast.Node {
	switch n := n.(type) {
	case nil:
		return nil
	case ast.Expr:
		return cloneExpr(n)
	case ast.Stmt:
		return cloneStmt(n)
	case ast.Decl:
		return cloneDecl(n)
	case ast.Spec:
		return cloneSpec(n)
	case *ast.FieldList:
		return cloneFieldList(n)
	case *ast.Field:
		return cloneField(n)
	case *ast.File:
		decls := make([]ast.Decl, len(n.Decls))
		for i, d := range n.Decls {
			decls[i] = cloneDecl(d)
		}
		return &ast.File{Package: n.Package, Name: cloneIdent(n.Name), Decls: decls}
	default:
		// For other node types, return as-is
		return n
	}
}

// cloneBlockStmt creates a deep copy of a block statement.
func cloneBlockStmt(block *ast.BlockStmt) *ast.BlockStmt {
	if block == nil {
		return nil
	}
	return &ast.BlockStmt{
		Lbrace: block.Lbrace,
		List:   cloneStmts(block.List),
		Rbrace: block.Rbrace,
	}
}

func cloneStmts(list []ast.Stmt) []ast.Stmt {
	if list == nil {
		return nil
	}
	out := make([]ast.Stmt, len(list))
	for i, s := range list {
		out[i] = cloneStmt(s)
	}
	return out
}

// cloneStmt creates a deep copy of a statement.
func cloneStmt(stmt ast.Stmt) ast.Stmt {
	if stmt == nil {
		return nil
	}

	switch s := stmt.(type) {
	case *ast.ExprStmt:
		return &ast.ExprStmt{X: cloneExpr(s.X)}
	case *ast.AssignStmt:
		return &ast.AssignStmt{
			Lhs:    cloneExprs(s.Lhs),
			TokPos: s.TokPos,
			Tok:    s.Tok,
			Rhs:    cloneExprs(s.Rhs),
		}
	case *ast.DeclStmt:
		return &ast.DeclStmt{Decl: cloneDecl(s.Decl)}
	case *ast.ReturnStmt:
		return &ast.ReturnStmt{Return: s.Return, Results: cloneExprs(s.Results)}
	case *ast.ForStmt:
		return &ast.ForStmt{
			For:  s.For,
			Init: cloneStmt(s.Init),
			Cond: cloneExpr(s.Cond),
			Post: cloneStmt(s.Post),
			Body: cloneBlockStmt(s.Body),
		}
	case *ast.IfStmt:
		return &ast.IfStmt{
			If:   s.If,
			Init: cloneStmt(s.Init),
			Cond: cloneExpr(s.Cond),
			Body: cloneBlockStmt(s.Body),
			Else: cloneStmt(s.Else),
		}
	case *ast.IncDecStmt:
		return &ast.IncDecStmt{X: cloneExpr(s.X), TokPos: s.TokPos, Tok: s.Tok}
	case *ast.BranchStmt:
		return &ast.BranchStmt{TokPos: s.TokPos, Tok: s.Tok, Label: cloneIdent(s.Label)}
	case *ast.BlockStmt:
		return cloneBlockStmt(s)
	case *ast.RangeStmt:
		return &ast.RangeStmt{
			For:    s.For,
			Key:    cloneExpr(s.Key),
			Value:  cloneExpr(s.Value),
			TokPos: s.TokPos,
			Tok:    s.Tok,
			Range:  s.Range,
			X:      cloneExpr(s.X),
			Body:   cloneBlockStmt(s.Body),
		}
	case *ast.SwitchStmt:
		return &ast.SwitchStmt{
			Switch: s.Switch,
			Init:   cloneStmt(s.Init),
			Tag:    cloneExpr(s.Tag),
			Body:   cloneBlockStmt(s.Body),
		}
	case *ast.TypeSwitchStmt:
		return &ast.TypeSwitchStmt{
			Switch: s.Switch,
			Init:   cloneStmt(s.Init),
			Assign: cloneStmt(s.Assign),
			Body:   cloneBlockStmt(s.Body),
		}
	case *ast.CaseClause:
		return &ast.CaseClause{
			Case:  s.Case,
			List:  cloneExprs(s.List),
			Colon: s.Colon,
			Body:  cloneStmts(s.Body),
		}
	case *ast.SelectStmt:
		return &ast.SelectStmt{Select: s.Select, Body: cloneBlockStmt(s.Body)}
	case *ast.CommClause:
		return &ast.CommClause{
			Case:  s.Case,
			Comm:  cloneStmt(s.Comm),
			Colon: s.Colon,
			Body:  cloneStmts(s.Body),
		}
	case *ast.LabeledStmt:
		return &ast.LabeledStmt{Label: cloneIdent(s.Label), Colon: s.Colon, Stmt: cloneStmt(s.Stmt)}
	case *ast.GoStmt:
		return &ast.GoStmt{Go: s.Go, Call: cloneExpr(s.Call).(*ast.CallExpr)}
	case *ast.DeferStmt:
		return &ast.DeferStmt{Defer: s.Defer, Call: cloneExpr(s.Call).(*ast.CallExpr)}
	case *ast.SendStmt:
		return &ast.SendStmt{Chan: cloneExpr(s.Chan), Arrow: s.Arrow, Value: cloneExpr(s.Value)}
	case *ast.EmptyStmt:
		return &ast.EmptyStmt{Semicolon: s.Semicolon, Implicit: s.Implicit}
	default:
		// For other statement types, return as-is
		return stmt
	}
}

func cloneExprs(list []ast.Expr) []ast.Expr {
	if list == nil {
		return nil
	}
	out := make([]ast.Expr, len(list))
	for i, e := range list {
		out[i] = cloneExpr(e)
	}
	return out
}

func cloneIdent(id *ast.Ident) *ast.Ident {
	if id == nil {
		return nil
	}
	return &ast.Ident{NamePos: id.NamePos, Name: id.Name}
}

func cloneIdents(list []*ast.Ident) []*ast.Ident {
	if list == nil {
		return nil
	}
	out := make([]*ast.Ident, len(list))
	for i, id := range list {
		out[i] = cloneIdent(id)
	}
	return out
}

// cloneExpr creates a deep copy of an expression.
func cloneExpr(expr ast.Expr) ast.Expr {
	if expr == nil {
		return nil
	}

	switch e := expr.(type) {
	case *ast.Ident:
		return cloneIdent(e)
	case *ast.BasicLit:
		return &ast.BasicLit{ValuePos: e.ValuePos, Kind: e.Kind, Value: e.Value}
	case *ast.SelectorExpr:
		return &ast.SelectorExpr{X: cloneExpr(e.X), Sel: cloneIdent(e.Sel)}
	case *ast.CallExpr:
		return &ast.CallExpr{
			Fun:      cloneExpr(e.Fun),
			Lparen:   e.Lparen,
			Args:     cloneExprs(e.Args),
			Ellipsis: e.Ellipsis,
			Rparen:   e.Rparen,
		}
	case *ast.BinaryExpr:
		return &ast.BinaryExpr{X: cloneExpr(e.X), OpPos: e.OpPos, Op: e.Op, Y: cloneExpr(e.Y)}
	case *ast.UnaryExpr:
		return &ast.UnaryExpr{OpPos: e.OpPos, Op: e.Op, X: cloneExpr(e.X)}
	case *ast.ParenExpr:
		return &ast.ParenExpr{Lparen: e.Lparen, X: cloneExpr(e.X), Rparen: e.Rparen}
	case *ast.IndexExpr:
		return &ast.IndexExpr{
			X:      cloneExpr(e.X),
			Lbrack: e.Lbrack,
			Index:  cloneExpr(e.Index),
			Rbrack: e.Rbrack,
		}
	case *ast.IndexListExpr:
		return &ast.IndexListExpr{
			X:       cloneExpr(e.X),
			Lbrack:  e.Lbrack,
			Indices: cloneExprs(e.Indices),
			Rbrack:  e.Rbrack,
		}
	case *ast.SliceExpr:
		return &ast.SliceExpr{
			X:      cloneExpr(e.X),
			Lbrack: e.Lbrack,
			Low:    cloneExpr(e.Low),
			High:   cloneExpr(e.High),
			Max:    cloneExpr(e.Max),
			Slice3: e.Slice3,
			Rbrack: e.Rbrack,
		}
	case *ast.StarExpr:
		return &ast.StarExpr{Star: e.Star, X: cloneExpr(e.X)}
	case *ast.TypeAssertExpr:
		return &ast.TypeAssertExpr{
			X:      cloneExpr(e.X),
			Lparen: e.Lparen,
			Type:   cloneExpr(e.Type),
			Rparen: e.Rparen,
		}
	case *ast.KeyValueExpr:
		return &ast.KeyValueExpr{Key: cloneExpr(e.Key), Colon: e.Colon, Value: cloneExpr(e.Value)}
	case *ast.CompositeLit:
		return &ast.CompositeLit{
			Type:       cloneExpr(e.Type),
			Lbrace:     e.Lbrace,
			Elts:       cloneExprs(e.Elts),
			Rbrace:     e.Rbrace,
			Incomplete: e.Incomplete,
		}
	case *ast.FuncLit:
		return &ast.FuncLit{Type: cloneFuncType(e.Type), Body: cloneBlockStmt(e.Body)}
	case *ast.Ellipsis:
		return &ast.Ellipsis{Ellipsis: e.Ellipsis, Elt: cloneExpr(e.Elt)}
	case *ast.ArrayType:
		return &ast.ArrayType{Lbrack: e.Lbrack, Len: cloneExpr(e.Len), Elt: cloneExpr(e.Elt)}
	case *ast.MapType:
		return &ast.MapType{Map: e.Map, Key: cloneExpr(e.Key), Value: cloneExpr(e.Value)}
	case *ast.ChanType:
		return &ast.ChanType{Begin: e.Begin, Arrow: e.Arrow, Dir: e.Dir, Value: cloneExpr(e.Value)}
	case *ast.FuncType:
		return cloneFuncType(e)
	case *ast.StructType:
		return &ast.StructType{Struct: e.Struct, Fields: cloneFieldList(e.Fields), Incomplete: e.Incomplete}
	case *ast.InterfaceType:
		return &ast.InterfaceType{Interface: e.Interface, Methods: cloneFieldList(e.Methods), Incomplete: e.Incomplete}
	default:
		// BadExpr and friends carry no children worth copying
		return expr
	}
}

func cloneFuncType(ft *ast.FuncType) *ast.FuncType {
	if ft == nil {
		return nil
	}
	return &ast.FuncType{
		Func:       ft.Func,
		TypeParams: cloneFieldList(ft.TypeParams),
		Params:     cloneFieldList(ft.Params),
		Results:    cloneFieldList(ft.Results),
	}
}

func cloneFieldList(fl *ast.FieldList) *ast.FieldList {
	if fl == nil {
		return nil
	}
	var fields []*ast.Field
	if fl.List != nil {
		fields = make([]*ast.Field, len(fl.List))
		for i, f := range fl.List {
			fields[i] = cloneField(f)
		}
	}
	return &ast.FieldList{Opening: fl.Opening, List: fields, Closing: fl.Closing}
}

func cloneField(f *ast.Field) *ast.Field {
	if f == nil {
		return nil
	}
	var tag *ast.BasicLit
	if f.Tag != nil {
		tag = cloneExpr(f.Tag).(*ast.BasicLit)
	}
	return &ast.Field{Names: cloneIdents(f.Names), Type: cloneExpr(f.Type), Tag: tag}
}

// cloneDecl clones a declaration.
func cloneDecl(decl ast.Decl) ast.Decl {
	if decl == nil {
		return nil
	}

	switch d := decl.(type) {
	case *ast.GenDecl:
		specs := make([]ast.Spec, len(d.Specs))
		for i, spec := range d.Specs {
			specs[i] = cloneSpec(spec)
		}
		return &ast.GenDecl{TokPos: d.TokPos, Tok: d.Tok, Lparen: d.Lparen, Specs: specs, Rparen: d.Rparen}
	case *ast.FuncDecl:
		return &ast.FuncDecl{
			Recv: cloneFieldList(d.Recv),
			Name: cloneIdent(d.Name),
			Type: cloneFuncType(d.Type),
			Body: cloneBlockStmt(d.Body),
		}
	default:
		return decl
	}
}

// cloneSpec clones a declaration spec (e.g., variable declaration).
func cloneSpec(spec ast.Spec) ast.Spec {
	if spec == nil {
		return nil
	}

	switch s := spec.(type) {
	case *ast.ValueSpec:
		return &ast.ValueSpec{
			Names:  cloneIdents(s.Names),
			Type:   cloneExpr(s.Type),
			Values: cloneExprs(s.Values),
		}
	case *ast.TypeSpec:
		return &ast.TypeSpec{
			Name:       cloneIdent(s.Name),
			TypeParams: cloneFieldList(s.TypeParams),
			Assign:     s.Assign,
			Type:       cloneExpr(s.Type),
		}
	case *ast.ImportSpec:
		var path *ast.BasicLit
		if s.Path != nil {
			path = cloneExpr(s.Path).(*ast.BasicLit)
		}
		return &ast.ImportSpec{Name: cloneIdent(s.Name), Path: path, EndPos: s.EndPos}
	default:
		return spec
	}
}
