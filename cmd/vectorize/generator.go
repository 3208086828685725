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
	"errors"
	"fmt"
	"go/ast"
	"go/token"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"
	"golang.org/x/tools/go/ast/astutil"

	"github.com/ajroetker/go-vectorize/vectorize"
)

// Generator orchestrates the code generation process.
type Generator struct {
	InputFiles      []string          // Input Go source files
	OutputDir       string            // Output directory
	OutputPrefix    string            // Output file prefix (defaults to input file name without .go)
	PackageOut      string            // Output package name (defaults to input package)
	Width           string            // Lane count: integer, "native" or a Go expression
	ElemType        string            // Element type used to resolve "native"
	Suffix          string            // Function name suffix (defaults to one derived from Width)
	Runtime         vectorize.Runtime // Vector primitives called by generated code
	ImportPath      string            // Import path of the runtime package, may be empty
	TypeNames       []string          // Extra type names treated as conversions
	ArithmeticCalls bool              // Emit arithmetic operators as runtime calls
	Verbose         bool              // Verbose output for debugging

	outputs []string
}

// Outputs returns the files written by the last Run, in input order.
func (g *Generator) Outputs() []string {
	return g.outputs
}

// Run vectorizes every input file. Files are processed concurrently; each one
// gets its own FileSet, width expression and rewriter.
//
// Structural errors from all files are collected and returned together as a
// vectorize.ErrorList. A file with structural errors produces no output.
func (g *Generator) Run() error {
	g.outputs = nil
	if len(g.InputFiles) == 0 {
		return errors.New("no input files")
	}
	if g.OutputPrefix != "" && len(g.InputFiles) > 1 {
		return errors.New("-output_prefix needs a single input file")
	}

	if msg := missingImportWarning(g.ImportPath, g.runtimePackage()); msg != "" {
		fmt.Fprintf(os.Stderr, "Warning: %s\n", msg)
	}

	outputs := make([]string, len(g.InputFiles))
	reports := make([]vectorize.ErrorList, len(g.InputFiles))

	var eg errgroup.Group
	eg.SetLimit(runtime.GOMAXPROCS(0))
	for i, input := range g.InputFiles {
		i, input := i, input
		eg.Go(func() error {
			out, report, err := g.generateFile(input)
			if err != nil {
				return fmt.Errorf("%s: %w", input, err)
			}
			outputs[i] = out
			reports[i] = report
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return err
	}

	var all vectorize.ErrorList
	for _, report := range reports {
		all = append(all, report...)
	}
	g.outputs = lo.Compact(outputs)
	return all.Err()
}

// generateFile vectorizes one input file and returns the path written. When
// the file has structural errors nothing is written and they are returned as
// the report.
func (g *Generator) generateFile(input string) (string, vectorize.ErrorList, error) {
	result, err := Parse(input)
	if err != nil {
		return "", nil, fmt.Errorf("parse input: %w", err)
	}
	if len(result.Funcs) == 0 {
		return "", nil, fmt.Errorf("no Base* functions found in %s", input)
	}

	width, err := ParseWidth(g.Width, g.ElemType)
	if err != nil {
		return "", nil, err
	}
	suffix := g.Suffix
	if suffix == "" {
		if suffix, err = widthSuffix(width); err != nil {
			return "", nil, err
		}
	}

	renames := make(map[string]string, len(result.Funcs))
	for _, pf := range result.Funcs {
		renames[pf.Name] = pf.VectorName(suffix)
	}

	cfg := vectorize.Config{
		Runtime:         g.Runtime,
		Fset:            result.FileSet,
		TypeNames:       g.TypeNames,
		ArithmeticCalls: g.ArithmeticCalls,
	}

	var report vectorize.ErrorList
	var funcs []EmitFunc
	for _, pf := range result.Funcs {
		fn, err := cfg.RewriteFunc(width, pf.Decl)
		if err != nil {
			var list vectorize.ErrorList
			if errors.As(err, &list) {
				report = append(report, list...)
				continue
			}
			return "", nil, fmt.Errorf("%s: %w", pf.Name, err)
		}
		renameFuncs(fn, renames)
		funcs = append(funcs, EmitFunc{Decl: fn, Source: pf.Name})
		if g.Verbose {
			fmt.Fprintf(os.Stderr, "vectorize: %s -> %s\n", pf.Name, fn.Name.Name)
		}
	}
	if len(report) > 0 {
		return "", report, nil
	}

	pkgName := g.PackageOut
	if pkgName == "" {
		pkgName = result.PackageName
	}
	prefix := g.OutputPrefix
	if prefix == "" {
		prefix = getBaseFilename(input)
	}
	filename := filepath.Join(g.OutputDir, prefix+"_"+strings.ToLower(suffix)+".gen.go")

	imports := usedImports(funcs, result.Imports)
	if line := runtimeImport(g.ImportPath, g.runtimePackage()); line != "" {
		imports = append(imports, line)
	}

	if err := EmitFile(funcs, pkgName, imports, exprToString(width), filename); err != nil {
		return "", nil, err
	}
	if g.Verbose {
		fmt.Fprintf(os.Stderr, "vectorize: wrote %s\n", filename)
	}
	return filename, nil, nil
}

// missingImportWarning describes generated code that refers to the runtime
// package without importing it, or returns "".
func missingImportWarning(importPath, pkg string) string {
	if importPath != "" || pkg == "" {
		return ""
	}
	return fmt.Sprintf("generated code refers to package %s but no -import path was given", pkg)
}

// runtimePackage returns the qualifier generated code uses for the runtime.
func (g *Generator) runtimePackage() string {
	if g.Runtime.Name == "" && g.Runtime.Package == "" {
		return vectorize.DefaultRuntime().Package
	}
	return g.Runtime.Package
}

// renameFuncs renames the function and its references to other vectorized
// functions of the same file. Selectors, struct keys and declared names are
// other objects that happen to share a name, and are left alone.
func renameFuncs(fn *ast.FuncDecl, renames map[string]string) {
	fn.Name.Name = renames[fn.Name.Name]
	astutil.Apply(fn.Body, func(c *astutil.Cursor) bool {
		id, ok := c.Node().(*ast.Ident)
		if !ok {
			return true
		}
		name, ok := renames[id.Name]
		if !ok || !isFuncReference(c) {
			return true
		}
		id.Name = name
		return true
	}, nil)
}

// isFuncReference reports whether the identifier under the cursor can refer
// to a package-level function.
func isFuncReference(c *astutil.Cursor) bool {
	switch p := c.Parent().(type) {
	case *ast.SelectorExpr:
		return c.Name() != "Sel"
	case *ast.KeyValueExpr:
		return c.Name() != "Key"
	case *ast.ValueSpec:
		return c.Name() != "Names"
	case *ast.Field, *ast.TypeSpec, *ast.LabeledStmt, *ast.BranchStmt:
		return false
	case *ast.AssignStmt:
		return p.Tok != token.DEFINE || c.Name() != "Lhs"
	}
	return true
}
