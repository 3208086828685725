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
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"runtime"
	"strconv"
	"strings"

	"golang.org/x/sys/cpu"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// NativeWidth is the -width value that picks the lane count from the
// vector registers of the running CPU.
const NativeWidth = "native"

// ParseWidth turns the -width flag into the expression inserted at every
// generated site. "native" resolves to an integer literal for elemType.
func ParseWidth(s, elemType string) (ast.Expr, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("empty width")
	}
	if s == NativeWidth {
		lanes, err := nativeLanes(elemType)
		if err != nil {
			return nil, err
		}
		return &ast.BasicLit{Kind: token.INT, Value: strconv.Itoa(lanes)}, nil
	}
	e, err := parser.ParseExpr(s)
	if err != nil {
		return nil, fmt.Errorf("parse width %q: %w", s, err)
	}
	return e, nil
}

// nativeVectorBytes returns the widest vector register the CPU supports,
// in bytes.
func nativeVectorBytes() int {
	switch runtime.GOARCH {
	case "amd64":
		if cpu.X86.HasAVX512F {
			return 64
		}
		if cpu.X86.HasAVX2 {
			return 32
		}
		return 16
	case "arm64":
		// ASIMD (NEON) is always present on ARMv8.
		if cpu.ARM64.HasASIMD {
			return 16
		}
	}
	return 16
}

// elemSize returns the size in bytes of a lane of elemType.
func elemSize(elemType string) (int, error) {
	switch elemType {
	case "float64", "int64", "uint64", "int", "uint", "uintptr", "complex64":
		return 8, nil
	case "float32", "int32", "uint32", "rune":
		return 4, nil
	case "int16", "uint16", "hwy.Float16", "hwy.BFloat16":
		return 2, nil
	case "int8", "uint8", "byte", "bool":
		return 1, nil
	}
	return 0, fmt.Errorf("unknown element type %q for native width", elemType)
}

// nativeLanes returns how many lanes of elemType fit in a native vector.
func nativeLanes(elemType string) (int, error) {
	size, err := elemSize(elemType)
	if err != nil {
		return 0, err
	}
	return nativeVectorBytes() / size, nil
}

// widthSuffix derives the function-name suffix for a width expression:
// 4 -> "X4", lanes -> "Lanes", hwy.MaxLanes -> "MaxLanes".
func widthSuffix(width ast.Expr) (string, error) {
	switch w := width.(type) {
	case *ast.BasicLit:
		if w.Kind == token.INT {
			return "X" + w.Value, nil
		}
	case *ast.Ident:
		return titleCase(w.Name), nil
	case *ast.SelectorExpr:
		return titleCase(w.Sel.Name), nil
	case *ast.ParenExpr:
		return widthSuffix(w.X)
	}
	return "", fmt.Errorf("cannot derive a function suffix from width %s, use -suffix", exprToString(width))
}

// titleCase upper-cases the first letter of an identifier, keeping the rest.
func titleCase(name string) string {
	return cases.Title(language.English, cases.NoLower).String(name)
}
