// ==============================================================================================
// FILE: evaluator/evaluator_test.go
// ==============================================================================================
package evaluator

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"paren/ast"
	"paren/object"
	"paren/parser"
)

func run(t *testing.T, src string) *ast.Node {
	t.Helper()
	forms := parser.ParseString(src)
	require.NotEmpty(t, forms, "parsing %q produced no forms", src)
	env := object.NewEnvironment()
	object.Bootstrap(env)
	var result *ast.Node = ast.Nil
	for _, f := range forms {
		result = Eval(f, env)
	}
	return result
}

func TestArithmetic(t *testing.T) {
	tests := []struct {
		src     string
		wantInt int64
	}{
		{"(+ 1 2 3)", 6},
		{"(- 10 1 2)", 7},
		{"(* 2 3 4)", 24},
		{"(/ 100 5 2)", 10},
		{"(% 10 3)", 1},
	}
	for _, tt := range tests {
		got := run(t, tt.src)
		assert.Equal(t, tt.wantInt, got.Int(), tt.src)
	}
}

func TestArithmeticPromotesToDoubleFromFirstOperand(t *testing.T) {
	got := run(t, "(+ 1.5 1)")
	assert.Equal(t, ast.DoubleKind, got.Kind)
	assert.InDelta(t, 2.5, got.Double(), 1e-9)
}

func TestComparisonAndLogic(t *testing.T) {
	assert.True(t, run(t, "(< 1 2)").BoolVal)
	assert.True(t, run(t, "(== 1 1 1)").BoolVal)
	assert.False(t, run(t, "(== 1 1 2)").BoolVal)
	assert.True(t, run(t, "(&& true true)").BoolVal)
	assert.False(t, run(t, "(&& true false)").BoolVal)
	assert.True(t, run(t, "(|| false true)").BoolVal)
	assert.True(t, run(t, "(! false)").BoolVal)
}

func TestNotEqRequiresAllOperandsToDiffer(t *testing.T) {
	assert.True(t, run(t, "(!= 2 3)").BoolVal)
	assert.False(t, run(t, "(!= 1 1)").BoolVal)
	assert.False(t, run(t, "(!= 1 2 1)").BoolVal)
	assert.True(t, run(t, "(!= 1.0 2.0)").BoolVal)
	assert.False(t, run(t, "(!= 1.0 1.0)").BoolVal)
}

func TestAndShortCircuits(t *testing.T) {
	// A bogus nested call in the second operand would log "Unknown
	// function" if ever evaluated; short-circuiting on a false first
	// operand must skip it.
	got := run(t, `(&& false (undefined-fn 1 2))`)
	assert.False(t, got.BoolVal)
}

func TestIfWhenWhile(t *testing.T) {
	assert.Equal(t, int64(1), run(t, "(if true 1 2)").Int())
	assert.Equal(t, int64(2), run(t, "(if false 1 2)").Int())
	assert.Equal(t, int64(5), run(t, "(when true 1 2 5)").Int())
	assert.True(t, run(t, "(when false 1 2 5)").IsNil())

	got := run(t, `
		(set i 0)
		(set acc 0)
		(while (< i 5) (set acc (+ acc i)) (++ i))
		acc
	`)
	assert.Equal(t, int64(10), got.Int())
}

func TestForLoopAccumulates(t *testing.T) {
	got := run(t, `
		(set acc 0)
		(for i 1 5 1 (set acc (+ acc i)))
		acc
	`)
	assert.Equal(t, int64(15), got.Int())
}

func TestForLoopObservesBodyMutationOfLoopVariable(t *testing.T) {
	// §4.F: the loop variable is read back from the environment on every
	// iteration, so a body that reassigns it changes what the next
	// condition check and step see.
	got := run(t, `
		(set count 0)
		(for i 0 3 1 (set i 10) (++ count))
		count
	`)
	assert.Equal(t, int64(1), got.Int())
}

func TestSetAndSymbolResolution(t *testing.T) {
	got := run(t, "(set x 41) (set x (+ x 1)) x")
	assert.Equal(t, int64(42), got.Int())
}

func TestPlusPlusMutatesBoundVariable(t *testing.T) {
	got := run(t, "(set x 1) (++ x) x")
	assert.Equal(t, int64(2), got.Int())
}

func TestStrings(t *testing.T) {
	assert.Equal(t, int64(5), run(t, `(strlen "hello")`).Int())
	assert.Equal(t, "ab", run(t, `(strcat "a" "b")`).String())
	assert.Equal(t, "e", run(t, `(char-at "hello" 1)`).String())
	assert.Equal(t, "A", run(t, `(chr 65)`).String())
}

func TestTypeAndCoercionBuiltins(t *testing.T) {
	assert.Equal(t, "int", run(t, "(type 1)").String())
	assert.Equal(t, "list", run(t, "(type (list 1 2))").String())
	assert.Equal(t, int64(5), run(t, `(int "5abc")`).Int())
	assert.InDelta(t, 5.0, run(t, "(double 5)").Double(), 1e-9)
	assert.Equal(t, "5", run(t, "(string 5)").String())
}

func TestQuoteAndEval(t *testing.T) {
	quoted := run(t, "(quote (+ 1 2))")
	assert.Equal(t, ast.ListKind, quoted.Kind)
	assert.Equal(t, int64(3), run(t, "(eval (quote (+ 1 2)))").Int())
}

func TestReadStringParsesAndEvalRuns(t *testing.T) {
	got := run(t, `(eval (read-string "(+ 20 22)"))`)
	assert.Equal(t, int64(42), got.Int())
}

func TestListOperations(t *testing.T) {
	assert.Equal(t, "(1 2 3)", run(t, "(list 1 2 3)").String())
	assert.Equal(t, int64(3), run(t, "(length (list 1 2 3))").Int())
	assert.Equal(t, int64(2), run(t, "(nth 1 (list 1 2 3))").Int())
	assert.Equal(t, "(1 3 5)", run(t, "(range 1 5 2)").String())
}

func TestFnClosureAndApply(t *testing.T) {
	square := run(t, "(set square (fn (n) (* n n))) (square 6)")
	assert.Equal(t, int64(36), square.Int())

	applied := run(t, "(set add (fn (a b) (+ a b))) (apply add (list 3 4))")
	assert.Equal(t, int64(7), applied.Int())

	mapped := run(t, "(set sq (fn (n) (* n n))) (map sq (list 1 2 3))")
	assert.Equal(t, "(1 4 9)", mapped.String())

	filtered := run(t, "(set even (fn (n) (== (% n 2) 0))) (filter even (list 1 2 3 4))")
	assert.Equal(t, "(2 4)", filtered.String())
}

func TestClosureEnvironmentIsSharedAcrossCalls(t *testing.T) {
	// §9: a closure's captured environment is created once, when the
	// (fn ...) form is evaluated, and every call rebinds into that SAME
	// environment. A call that supplies fewer arguments than there are
	// parameters leaves the missing parameter holding whatever the
	// previous call left behind, rather than a fresh nil.
	got := run(t, `
		(set add (fn (a b) (+ a b)))
		(add 1 2)
		(add 10)
	`)
	assert.Equal(t, int64(12), got.Int())
}

func TestUnknownVariableAndFunctionDiagnostics(t *testing.T) {
	var buf strings.Builder
	prevOut := Output
	Output = &buf
	defer func() { Output = prevOut }()

	got := run(t, "totally-undefined-name")
	assert.True(t, got.IsNil())
}

func TestPrAndPrn(t *testing.T) {
	var buf strings.Builder
	prevOut := Output
	Output = &buf
	defer func() { Output = prevOut }()

	run(t, `(pr "a" "b")`)
	assert.Equal(t, "a b", buf.String())

	buf.Reset()
	run(t, `(prn 1 2)`)
	assert.Equal(t, "1 2\n", buf.String())
}
