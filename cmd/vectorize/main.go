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

// Command vectorize generates lane-vector versions of scalar Go functions.
//
// Usage:
//
//	vectorize -input clamp.go -width 4                  # ClampX4 in clamp_x4.gen.go
//	vectorize -input clamp.go,scale.go -width native    # lanes of the running CPU
//	vectorize -input clamp.go -width lanes -suffix N    # symbolic width, ClampN
//
// Or via go:generate:
//
//	//go:generate vectorize -input $GOFILE -width 8 -import example.com/simd
//
// Every function named BaseFoo (or baseFoo) is rewritten so that each value
// is a vector of the given width, and written as FooX4 (or fooX4). Defaults
// for -width, -runtime, -import and -v are read from VECTORIZE_WIDTH,
// VECTORIZE_RUNTIME, VECTORIZE_IMPORT and VECTORIZE_VERBOSE.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/samber/lo"
	"github.com/xyproto/env/v2"

	"github.com/ajroetker/go-vectorize/vectorize"
)

var (
	inputFiles   = flag.String("input", "", "Comma-separated input Go source files (required)")
	outputDir    = flag.String("output", ".", "Output directory (default: current directory)")
	outputPrefix = flag.String("output_prefix", "", "Output file prefix, the default (if empty) is the input file name without .go")
	width        = flag.String("width", env.Str("VECTORIZE_WIDTH", "4"), "Lane count: an integer, '"+NativeWidth+"' or a Go expression such as hwy.MaxLanes")
	elemType     = flag.String("elem", "float32", "Element type used to resolve -width "+NativeWidth)
	packageOut   = flag.String("pkg", "", "Output package name (default: same as input)")
	suffix       = flag.String("suffix", "", "Function name suffix (default: derived from -width, e.g. X4)")
	runtimePkg   = flag.String("runtime", env.Str("VECTORIZE_RUNTIME", "simd"), "Package qualifier of the vector runtime in generated code, empty for unqualified names")
	importPath   = flag.String("import", env.Str("VECTORIZE_IMPORT"), "Import path of the vector runtime package")
	typeNames    = flag.String("types", "", "Comma-separated extra type names treated as conversions, e.g. hwy.Float16,Celsius")
	arith        = flag.Bool("arith", false, "Emit arithmetic operators as runtime calls (Add, Mul, ...)")
	verbose      = flag.Bool("v", env.Bool("VECTORIZE_VERBOSE"), "Verbose output")
)

func main() {
	flag.Parse()

	inputs := parseList(*inputFiles)
	if len(inputs) == 0 {
		fmt.Fprintf(os.Stderr, "Error: -input flag is required\n\n")
		flag.Usage()
		os.Exit(1)
	}

	gen := &Generator{
		InputFiles:      inputs,
		OutputDir:       *outputDir,
		OutputPrefix:    *outputPrefix,
		PackageOut:      *packageOut,
		Width:           *width,
		ElemType:        *elemType,
		Suffix:          *suffix,
		Runtime:         vectorize.DefaultRuntime().WithPackage(*runtimePkg),
		ImportPath:      *importPath,
		TypeNames:       parseList(*typeNames),
		ArithmeticCalls: *arith,
		Verbose:         *verbose,
	}

	if err := gen.Run(); err != nil {
		var list vectorize.ErrorList
		if errors.As(err, &list) {
			for _, e := range list {
				fmt.Fprintf(os.Stderr, "%v\n", e)
			}
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}

	fmt.Printf("Successfully generated: %s\n", strings.Join(gen.Outputs(), ", "))
}

// parseList splits a comma-separated flag value, dropping empty entries.
func parseList(s string) []string {
	parts := lo.Map(strings.Split(s, ","), func(p string, _ int) string {
		return strings.TrimSpace(p)
	})
	return lo.Uniq(lo.Compact(parts))
}
