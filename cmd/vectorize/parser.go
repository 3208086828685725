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

package main

import (
	"bytes"
	"fmt"
	"go/ast"
	"go/parser"
	"go/printer"
	"go/token"
	"path/filepath"
	"strings"
)

// ParsedFunc is a scalar function selected for vectorization.
type ParsedFunc struct {
	Name    string // "BaseClamp"
	Decl    *ast.FuncDecl
	Private bool // declared as base*, so the output stays unexported
}

// ParseResult contains everything the generator needs from one input file.
type ParseResult struct {
	PackageName string
	FileSet     *token.FileSet
	Funcs       []ParsedFunc

	// Imports maps the local name of each import to its import line,
	// e.g. "stdmath" -> `stdmath "math"`.
	Imports map[string]string
}

// Parse parses a Go source file and collects its Base*/base* functions.
func Parse(filename string) (*ParseResult, error) {
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, filename, nil, parser.ParseComments)
	if err != nil {
		return nil, fmt.Errorf("parse file: %w", err)
	}

	result := &ParseResult{
		PackageName: file.Name.Name,
		FileSet:     fset,
		Imports:     make(map[string]string),
	}

	for _, imp := range file.Imports {
		importPath := strings.Trim(imp.Path.Value, `"`)

		localName := filepath.Base(importPath)
		line := imp.Path.Value
		if imp.Name != nil {
			localName = imp.Name.Name
			line = imp.Name.Name + " " + imp.Path.Value
		}

		// Blank and dot imports can't be matched against selectors.
		if localName != "_" && localName != "." {
			result.Imports[localName] = line
		}
	}

	for _, decl := range file.Decls {
		funcDecl, ok := decl.(*ast.FuncDecl)
		if !ok || funcDecl.Recv != nil || funcDecl.Body == nil {
			continue
		}
		name := funcDecl.Name.Name
		if _, ok := trimBase(name); !ok {
			continue
		}
		result.Funcs = append(result.Funcs, ParsedFunc{
			Name:    name,
			Decl:    funcDecl,
			Private: strings.HasPrefix(name, "base"),
		})
	}

	return result, nil
}

// trimBase strips the Base/base prefix from a function name. It reports
// false for names without the prefix or with nothing after it.
func trimBase(name string) (string, bool) {
	var rest string
	switch {
	case strings.HasPrefix(name, "Base"):
		rest = name[len("Base"):]
	case strings.HasPrefix(name, "base"):
		rest = name[len("base"):]
	}
	return rest, rest != ""
}

// VectorName returns the name of the vectorized copy of the function:
// BaseClamp -> ClampX4, baseClamp -> clampX4.
func (pf ParsedFunc) VectorName(suffix string) string {
	rest, _ := trimBase(pf.Name)
	if pf.Private {
		rest = makeUnexported(rest)
	}
	return rest + suffix
}

// makeUnexported lower-cases the first letter of name.
func makeUnexported(name string) string {
	if name == "" {
		return name
	}
	return strings.ToLower(name[:1]) + name[1:]
}

// exprToString formats an expression as Go source.
func exprToString(e ast.Expr) string {
	var buf bytes.Buffer
	if err := printer.Fprint(&buf, token.NewFileSet(), e); err != nil {
		return fmt.Sprintf("%T", e)
	}
	return buf.String()
}
