package vectorize

import (
	"bytes"
	"go/ast"
	"go/format"
	"go/parser"
	"go/printer"
	"go/token"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func width4() ast.Expr {
	return &ast.BasicLit{Kind: token.INT, Value: "4"}
}

func parseExpr(t *testing.T, src string) ast.Expr {
	t.Helper()
	e, err := parser.ParseExpr(src)
	if err != nil {
		t.Fatalf("ParseExpr(%q) failed: %v", src, err)
	}
	return e
}

// render prints n without position information, so trees built by the
// rewriter and trees parsed from source print alike.
func render(t *testing.T, n ast.Node) string {
	t.Helper()
	var buf bytes.Buffer
	if err := printer.Fprint(&buf, token.NewFileSet(), n); err != nil {
		t.Fatalf("printer.Fprint failed: %v", err)
	}
	return buf.String()
}

// checkRewrite rewrites input and compares it with want after printing both
// the same way.
func checkRewrite(t *testing.T, cfg *Config, input, want string) {
	t.Helper()
	got, err := cfg.RewriteExpr(width4(), parseExpr(t, input))
	if err != nil {
		t.Fatalf("RewriteExpr(%q) failed: %v", input, err)
	}
	printed := render(t, got)
	if _, err := parser.ParseExpr(printed); err != nil {
		t.Errorf("RewriteExpr(%q) produced invalid Go %q: %v", input, printed, err)
	}
	if diff := cmp.Diff(render(t, parseExpr(t, want)), printed); diff != "" {
		t.Errorf("RewriteExpr(%q) mismatch (-want +got):\n%s", input, diff)
	}
}

func TestRewriteExpressions(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"IntLiteral", `1`, `simd.Splat(4, 1)`},
		{"FloatLiteral", `2.5`, `simd.Splat(4, 2.5)`},
		{"StringLiteral", `"a"`, `simd.Splat(4, "a")`},
		{"BoolLiteral", `true`, `simd.Splat(4, true)`},
		{"Ident", `x`, `x`},
		{"Eq", `a == b`, `simd.Eq(a, b)`},
		{"Ne", `a != b`, `simd.Ne(a, b)`},
		{"Gt", `a > b`, `simd.Gt(a, b)`},
		{"Ge", `a >= b`, `simd.Ge(a, b)`},
		{"Lt", `a < b`, `simd.Lt(a, b)`},
		{"Le", `a <= b`, `simd.Le(a, b)`},
		{"CompareLiteral", `y == 1`, `simd.Eq(y, simd.Splat(4, 1))`},
		{"CompareNested", `(a + 1) < b*2`, `simd.Lt((a + simd.Splat(4, 1)), b*simd.Splat(4, 2))`},
		{"ArithmeticKept", `x + 1.0`, `x + simd.Splat(4, 1.0)`},
		{"LogicalKept", `a < b && c`, `simd.Lt(a, b) && c`},
		{"Unary", `-x`, `-x`},
		{"Cast", `float32(y)`, `simd.Cast[float32](4, y)`},
		{"CastOperandRewritten", `float64(y + 1)`, `simd.Cast[float64](4, y + simd.Splat(4, 1))`},
		{"CastParenType", `(int32)(y)`, `simd.Cast[(int32)](4, y)`},
		{"CallNotCast", `math.Sqrt(x * 2)`, `math.Sqrt(x * simd.Splat(4, 2))`},
		{"CallTwoArgs", `float32(a, b)`, `float32(a, b)`},
		{"Scalar", `scalar(1.0 + 1.0)`, `simd.Splat(4, 1.0 + 1.0)`},
		{"ScalarCall", `x + scalar(math.Pi * 2)`, `x + simd.Splat(4, math.Pi * 2)`},
		{"Verbatim", `verbatim(simd.Splat(4, uint32(3)) == x)`, `simd.Splat(4, uint32(3)) == x`},
		{"ScalarOfVerbatim", `scalar(verbatim(a == 1))`, `simd.Splat(4, a == 1)`},
		{"VerbatimOfScalar", `verbatim(scalar(a == 1))`, `scalar(a == 1)`},
		{"VerbatimArity", `verbatim(a == 1, 2)`, `verbatim(a == 1, 2)`},
		{"ScalarSpread", `scalar(xs...)`, `simd.Splat(4, xs...)`},
		{"QualifiedEscapeIgnored", `pkg.scalar(1)`, `pkg.scalar(simd.Splat(4, 1))`},
		{"CompositeLit", `[]float32{1, x}`, `simd.Vec[[4][]float32]{simd.Splat(4, 1), x}`},
		{"StructLit", `Point{X: 1, Y: y}`, `Point{X: simd.Splat(4, 1), Y: y}`},
		{"QualifiedStructLit", `geom.Point{1, y}`, `geom.Point{simd.Splat(4, 1), y}`},
		{"ArrayLit", `[2]float32{x, 0}`, `simd.Vec[[4][2]float32]{x, simd.Splat(4, 0)}`},
		{"Make", `make([]float32, n)`, `make(simd.Vec[[4][]float32], n)`},
		{"New", `new(float32)`, `new(simd.Vec[[4]float32])`},
		{"TypeAssert", `v.(float32)`, `v.(simd.Vec[[4]float32])`},
		{"Index", `a[i]`, `a[i]`},
	}

	var cfg Config
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checkRewrite(t, &cfg, tt.input, tt.want)
		})
	}
}

func TestRewriteFunctions(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name: "ElseIfChain",
			input: `func(x float32, y uint32) float32 {
				if y == 1 {
					return x
				} else if y == 2 {
					return x + 1.0
				} else {
					return x + float32(y)
				}
			}`,
			want: `func(x simd.Vec[[4]float32], y simd.Vec[[4]uint32]) simd.Vec[[4]float32] {
				return simd.Select(simd.Eq(y, simd.Splat(4, 1)), x,
					simd.Select(simd.Eq(y, simd.Splat(4, 2)), x + simd.Splat(4, 1.0), x + simd.Cast[float32](4, y)))
			}`,
		},
		{
			name: "IfElse",
			input: `func(x float32, y uint32) float32 {
				if y == 1 {
					return x
				} else {
					return x + float32(y)
				}
			}`,
			want: `func(x simd.Vec[[4]float32], y simd.Vec[[4]uint32]) simd.Vec[[4]float32] {
				return simd.Select(simd.Eq(y, simd.Splat(4, 1)), x, x + simd.Cast[float32](4, y))
			}`,
		},
		{
			name: "Escapes",
			input: `func(x float32, y uint32) float32 {
				if y == 1 {
					return x
				} else if y == 2 {
					return x + 1.0
				} else if y == verbatim(simd.Splat(4, uint32(3))) {
					return x + scalar(1.0 + 1.0)
				} else {
					return x + float32(y)
				}
			}`,
			want: `func(x simd.Vec[[4]float32], y simd.Vec[[4]uint32]) simd.Vec[[4]float32] {
				return simd.Select(simd.Eq(y, simd.Splat(4, 1)), x,
					simd.Select(simd.Eq(y, simd.Splat(4, 2)), x + simd.Splat(4, 1.0),
						simd.Select(simd.Eq(y, simd.Splat(4, uint32(3))), x + simd.Splat(4, 1.0 + 1.0), x + simd.Cast[float32](4, y))))
			}`,
		},
		{
			name: "TypeAscription",
			input: `func(x float32) float32 {
				var v float32 = x
				return v
			}`,
			want: `func(x simd.Vec[[4]float32]) simd.Vec[[4]float32] {
				var v simd.Vec[[4]float32] = x
				return v
			}`,
		},
		{
			name: "Variadic",
			input: `func(xs ...float32) {
				_ = xs
			}`,
			want: `func(xs ...simd.Vec[[4]float32]) {
				_ = xs
			}`,
		},
		{
			name: "MultiStatementBranch",
			input: `func(x float32) float32 {
				if x > 0 {
					t := x * 2
					return t
				} else {
					return x
				}
			}`,
			want: `func(x simd.Vec[[4]float32]) simd.Vec[[4]float32] {
				return simd.Select(simd.Gt(x, simd.Splat(4, 0)), func() simd.Vec[[4]float32] {
					t := x * simd.Splat(4, 2)
					return t
				}(), x)
			}`,
		},
		{
			name: "IfInit",
			input: `func(x, y float32) float32 {
				if d := x - y; d < 0 {
					return y
				} else {
					return x
				}
			}`,
			want: `func(x, y simd.Vec[[4]float32]) simd.Vec[[4]float32] {
				{
					d := x - y
					return simd.Select(simd.Lt(d, simd.Splat(4, 0)), y, x)
				}
			}`,
		},
		{
			name: "NestedIfInBranch",
			input: `func(x float32) float32 {
				if x > 0 {
					if x > 1 {
						return 1
					} else {
						return x
					}
				} else {
					return 0
				}
			}`,
			want: `func(x simd.Vec[[4]float32]) simd.Vec[[4]float32] {
				return simd.Select(simd.Gt(x, simd.Splat(4, 0)),
					simd.Select(simd.Gt(x, simd.Splat(4, 1)), simd.Splat(4, 1), x),
					simd.Splat(4, 0))
			}`,
		},
		{
			name: "ElseIfInit",
			input: `func(x, y float32) float32 {
				if x > y {
					return x
				} else if d := y - x; d < 1 {
					return d
				} else {
					return y
				}
			}`,
			want: `func(x, y simd.Vec[[4]float32]) simd.Vec[[4]float32] {
				return simd.Select(simd.Gt(x, y), x, func() simd.Vec[[4]float32] {
					{
						d := y - x
						return simd.Select(simd.Lt(d, simd.Splat(4, 1)), d, y)
					}
				}())
			}`,
		},
		{
			name: "EscapesInBody",
			input: `func(x float32, xs ...float32) float32 {
				if x > verbatim(scalar(1)) {
					return scalar(xs...)
				} else {
					return verbatim(scalar(x + 1))
				}
			}`,
			want: `func(x simd.Vec[[4]float32], xs ...simd.Vec[[4]float32]) simd.Vec[[4]float32] {
				return simd.Select(simd.Gt(x, scalar(1)), simd.Splat(4, xs...), scalar(x + 1))
			}`,
		},
		{
			name: "NestedFuncLit",
			input: `func(x float32) float32 {
				f := func(v int32) int32 { return v }
				return x
			}`,
			want: `func(x simd.Vec[[4]float32]) simd.Vec[[4]float32] {
				f := func(v simd.Vec[[4]int32]) simd.Vec[[4]int32] { return v }
				return x
			}`,
		},
	}

	var cfg Config
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checkRewrite(t, &cfg, tt.input, tt.want)
		})
	}
}

func TestRewriteFuncDecl(t *testing.T) {
	src := `package p

func BaseClamp[T hwy.Floats](x T, lo float32) T {
	if x < lo {
		return lo
	} else {
		return x
	}
}
`
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, "clamp.go", src, 0)
	if err != nil {
		t.Fatalf("ParseFile failed: %v", err)
	}
	fn := file.Decls[0].(*ast.FuncDecl)

	cfg := Config{Fset: fset}
	got, err := cfg.RewriteFunc(width4(), fn)
	if err != nil {
		t.Fatalf("RewriteFunc failed: %v", err)
	}

	if got.Name.Name != "BaseClamp" {
		t.Errorf("Name = %q, want BaseClamp", got.Name.Name)
	}
	gotType := render(t, got.Type)
	wantType := "func[T hwy.Floats](x simd.Vec[[4]T], lo simd.Vec[[4]float32]) simd.Vec[[4]T]"
	if gotType != wantType {
		t.Errorf("Type = %q, want %q", gotType, wantType)
	}
	gotBody := render(t, got.Body.List[0])
	wantBody := "return simd.Select(simd.Lt(x, lo), lo, x)"
	if gotBody != wantBody {
		t.Errorf("Body = %q, want %q", gotBody, wantBody)
	}

	// The declaration must still be valid Go.
	out := "package p\n\n" + render(t, got) + "\n"
	if _, err := format.Source([]byte(out)); err != nil {
		t.Errorf("format.Source failed on rewritten declaration: %v\n%s", err, out)
	}
}

func TestRewriteDoesNotModifyInput(t *testing.T) {
	input := parseExpr(t, `func(x float32) float32 {
		if x == 1 {
			return scalar(2)
		} else {
			return float32(x) + 3
		}
	}`)
	before := render(t, input)

	if _, err := Rewrite(width4(), input); err != nil {
		t.Fatalf("Rewrite failed: %v", err)
	}
	if diff := cmp.Diff(before, render(t, input)); diff != "" {
		t.Errorf("input changed by Rewrite (-before +after):\n%s", diff)
	}
}

func TestRewriteSharesWidth(t *testing.T) {
	width := ast.NewIdent("lanes")
	input := parseExpr(t, `func(x float32, y uint32) float32 {
		if y == 1 {
			return x
		} else {
			return x + float32(y) + scalar(2)
		}
	}`)

	out, err := Rewrite(width, input)
	if err != nil {
		t.Fatalf("Rewrite failed: %v", err)
	}

	sites := 0
	ast.Inspect(out, func(n ast.Node) bool {
		switch n := n.(type) {
		case *ast.CallExpr:
			sel, ok := n.Fun.(*ast.SelectorExpr)
			if ok && sel.Sel.Name == "Splat" {
				sites++
				if n.Args[0] != width {
					t.Errorf("Splat width is %s, not the given expression", render(t, n.Args[0]))
				}
			}
			if idx, ok := n.Fun.(*ast.IndexExpr); ok {
				if sel, ok := idx.X.(*ast.SelectorExpr); ok && sel.Sel.Name == "Cast" {
					sites++
					if n.Args[0] != width {
						t.Errorf("Cast width is %s, not the given expression", render(t, n.Args[0]))
					}
				}
			}
		case *ast.ArrayType:
			sites++
			if n.Len != width {
				t.Errorf("Vec width is %s, not the given expression", render(t, n.Len))
			}
		}
		return true
	})
	// 3 Vec types, 2 Splats, 1 Cast
	if sites != 6 {
		t.Errorf("found %d generated sites, want 6", sites)
	}
}

func TestArithmeticCalls(t *testing.T) {
	cfg := Config{ArithmeticCalls: true}
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"Add", `x + 1`, `simd.Add(x, simd.Splat(4, 1))`},
		{"Nested", `x*y - z/w`, `simd.Sub(simd.Mul(x, y), simd.Div(z, w))`},
		{"Bitwise", `a &^ b | c`, `simd.Or(simd.AndNot(a, b), c)`},
		{"LogicalMask", `a < b && c > d`, `simd.And(simd.Lt(a, b), simd.Gt(c, d))`},
		{"Neg", `-x`, `simd.Neg(x)`},
		{"Not", `!(a == b)`, `simd.Not((simd.Eq(a, b)))`},
		{"AddrKept", `&x`, `&x`},
		{
			"AssignOps",
			`func() { x += y; x *= 2; x++ }`,
			`func() { x = simd.Add(x, y); x = simd.Mul(x, simd.Splat(4, 2)); x = simd.Add(x, simd.Splat(4, 1)) }`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checkRewrite(t, &cfg, tt.input, tt.want)
		})
	}
}

func TestRuntimeOptions(t *testing.T) {
	t.Run("Unqualified", func(t *testing.T) {
		cfg := Config{Runtime: DefaultRuntime().WithPackage("")}
		checkRewrite(t, &cfg, `float32(y) == 1`, `Eq(Cast[float32](4, y), Splat(4, 1))`)
	})
	t.Run("Renamed", func(t *testing.T) {
		rt := DefaultRuntime().WithPackage("lanes")
		rt.Splat = "Broadcast"
		cfg := Config{Runtime: rt}
		checkRewrite(t, &cfg, `x + 1`, `x + lanes.Broadcast(4, 1)`)
	})
	t.Run("TypeNames", func(t *testing.T) {
		cfg := Config{TypeNames: []string{"Celsius", "hwy.Float16"}}
		checkRewrite(t, &cfg, `Celsius(x) + hwy.Float16(y)`,
			`simd.Cast[Celsius](4, x) + simd.Cast[hwy.Float16](4, y)`)
	})
	t.Run("Invalid", func(t *testing.T) {
		rt := DefaultRuntime()
		delete(rt.Compare, token.LEQ)
		cfg := Config{Runtime: rt}
		_, err := cfg.Rewrite(width4(), parseExpr(t, `x`))
		if err == nil || !strings.Contains(err.Error(), "missing comparator") {
			t.Errorf("Rewrite with incomplete runtime: err = %v, want missing comparator", err)
		}
	})
	t.Run("NoArithmetic", func(t *testing.T) {
		rt := DefaultRuntime()
		rt.Arith = nil
		cfg := Config{Runtime: rt, ArithmeticCalls: true}
		if _, err := cfg.Rewrite(width4(), parseExpr(t, `x`)); err == nil {
			t.Error("Rewrite with ArithmeticCalls and no arithmetic names succeeded")
		}
	})
}

func TestRewriteNilArguments(t *testing.T) {
	if _, err := Rewrite(nil, ast.NewIdent("x")); err == nil {
		t.Error("Rewrite(nil width) succeeded")
	}
	if _, err := Rewrite(width4(), nil); err == nil {
		t.Error("Rewrite(nil node) succeeded")
	}
}
