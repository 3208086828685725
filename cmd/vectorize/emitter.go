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
	"go/format"
	"go/printer"
	"go/token"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/samber/lo"
)

// EmitFunc is a vectorized function and the scalar function it came from.
type EmitFunc struct {
	Decl   *ast.FuncDecl
	Source string
}

// EmitFile writes the vectorized functions of one input file to filename.
func EmitFile(funcs []EmitFunc, pkgName string, imports []string, width string, filename string) error {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "// Code generated by vectorize. DO NOT EDIT.\n")
	fmt.Fprintf(&buf, "\npackage %s\n\n", pkgName)

	imports = lo.Uniq(imports)
	sort.Strings(imports)
	if len(imports) > 0 {
		fmt.Fprintf(&buf, "import (\n")
		for _, imp := range imports {
			fmt.Fprintf(&buf, "\t%s\n", imp)
		}
		fmt.Fprintf(&buf, ")\n\n")
	}

	fset := token.NewFileSet()
	for _, fn := range funcs {
		fmt.Fprintf(&buf, "// %s is %s vectorized over %s lanes.\n", fn.Decl.Name.Name, fn.Source, width)
		if err := printer.Fprint(&buf, fset, fn.Decl); err != nil {
			return fmt.Errorf("print function: %w", err)
		}
		fmt.Fprintf(&buf, "\n\n")
	}

	formatted, err := format.Source(buf.Bytes())
	if err != nil {
		return fmt.Errorf("format %s: %w", filename, err)
	}

	if err := os.WriteFile(filename, formatted, 0644); err != nil {
		return fmt.Errorf("write output file: %w", err)
	}
	return nil
}

// usedImports returns the import lines of the input packages that the
// vectorized functions still refer to.
func usedImports(funcs []EmitFunc, imports map[string]string) []string {
	var used []string
	for _, fn := range funcs {
		ast.Inspect(fn.Decl, func(n ast.Node) bool {
			sel, ok := n.(*ast.SelectorExpr)
			if !ok {
				return true
			}
			if id, ok := sel.X.(*ast.Ident); ok {
				if line, ok := imports[id.Name]; ok {
					used = append(used, line)
				}
			}
			return true
		})
	}
	return lo.Uniq(used)
}

// runtimeImport returns the import line for the vector runtime package, or
// "" when no import path was given. Unqualified runtimes are dot-imported.
func runtimeImport(importPath, pkg string) string {
	if importPath == "" {
		return ""
	}
	quoted := strconv.Quote(importPath)
	switch {
	case pkg == "":
		return ". " + quoted
	case path.Base(importPath) != pkg:
		return pkg + " " + quoted
	}
	return quoted
}

// getBaseFilename extracts the base filename without extension.
func getBaseFilename(path string) string {
	base := filepath.Base(path)
	ext := filepath.Ext(base)
	return base[:len(base)-len(ext)]
}
