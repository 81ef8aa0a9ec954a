// ==============================================================================================
// FILE: evaluator/evaluator.go
// ==============================================================================================
// PACKAGE: evaluator
// PURPOSE: Implements Component F (§4.F): the tree-walking evaluator over
//          ast.Node and object.Environment. Structured the way the teacher's
//          evaluator/evaluator.go dispatches on node kind with a single Eval
//          entry point, but the switch body itself is ported directly off
//          the opcode-numbered switch in the original libparen.cpp so that
//          every quirk called out in §9 (closure environment reuse, the
//          symbol->builtin one-shot rewrite, apply/map/filter re-evaluating
//          list items through the generic call path) survives intact.
// ==============================================================================================

package evaluator

import (
	"fmt"
	"io"
	"math"
	"math/rand"
	"os"
	"os/exec"
	"strings"

	"paren/ast"
	"paren/internal/diagnostics"
	"paren/object"
	"paren/parser"
)

// Output is where the pr/prn builtins write (§4.F). It defaults to stdout;
// the WASM build points it at an in-memory buffer it can hand back to
// JavaScript, the way the teacher's wasm_main.go redirected "show" output.
var Output io.Writer = os.Stdout

// Eval evaluates node in env and returns the resulting value. Every kind but
// Symbol and List evaluates to itself; List is either a special form, a
// builtin call, or a user function application, all handled in evalList.
func Eval(node *ast.Node, env *object.Environment) *ast.Node {
	if node == nil {
		return ast.Nil
	}
	switch node.Kind {
	case ast.SymbolKind:
		return evalSymbol(node, env)
	case ast.ListKind:
		return evalList(node, env)
	default:
		return node
	}
}

// evalSymbol resolves a symbol against the scope chain and, failing that,
// against the builtin table (§4.F). A symbol that resolves to a builtin is
// rewritten in place to a Builtin node so later evaluations of the same tree
// node skip the lookup — the one-shot JIT-like specialization §9 documents.
func evalSymbol(node *ast.Node, env *object.Environment) *ast.Node {
	v := env.Get(node.Text)
	if !v.IsNil() {
		return v
	}
	if op, ok := object.LookupBuiltin(node.Text); ok {
		node.RewriteToBuiltin(op, node.Text)
		return node
	}
	diagnostics.Warnf("Unknown variable: %s", node.Text)
	return ast.Nil
}

func evalList(node *ast.Node, env *object.Environment) *ast.Node {
	if len(node.List) == 0 {
		return ast.Nil
	}
	callee := Eval(node.List[0], env)
	args := node.List[1:]
	switch callee.Kind {
	case ast.BuiltinKind:
		return evalBuiltin(callee.Opcode, callee.Text, args, env)
	case ast.FnKind:
		return applyFn(callee, args, env)
	default:
		diagnostics.Warnf("Unknown function: [%s]", callee.String())
		return ast.Nil
	}
}

// applyFn binds args (evaluated in the caller's env) to the fn's formal
// parameters and evaluates the body in the fn's captured environment. That
// captured environment is the SAME Environment instance across every call of
// this Fn value (it is created once, when the (fn ...) form is evaluated,
// not per call) — the closure-reuse quirk documented in §9: two concurrent
// or recursive invocations of the same closure value share mutable state.
func applyFn(fn *ast.Node, rawArgs []*ast.Node, callerEnv *object.Environment) *ast.Node {
	local, ok := fn.Env.(*object.Environment)
	if !ok {
		return ast.Nil
	}
	for i, param := range fn.Params {
		var val *ast.Node
		if i < len(rawArgs) {
			val = Eval(rawArgs[i], callerEnv)
		} else {
			val = ast.Nil
		}
		local.Set(param.Text, val)
	}
	if len(fn.Body) == 0 {
		return ast.Nil
	}
	for _, form := range fn.Body[:len(fn.Body)-1] {
		Eval(form, local)
	}
	return Eval(fn.Body[len(fn.Body)-1], local)
}

// argAt returns args[i] or ast.Nil if out of range, so malformed forms (too
// few operands) degrade to nil-valued operands instead of panicking.
func argAt(args []*ast.Node, i int) *ast.Node {
	if i < 0 || i >= len(args) {
		return ast.Nil
	}
	return args[i]
}

func evalBuiltin(op object.Opcode, name string, args []*ast.Node, env *object.Environment) *ast.Node {
	switch op {
	case object.OpAdd:
		return evalArith(args, env, 0, func(a, b int64) int64 { return a + b }, func(a, b float64) float64 { return a + b })
	case object.OpSub:
		return evalArith(args, env, 0, func(a, b int64) int64 { return a - b }, func(a, b float64) float64 { return a - b })
	case object.OpMul:
		return evalArith(args, env, 1, func(a, b int64) int64 { return a * b }, func(a, b float64) float64 { return a * b })
	case object.OpDiv:
		return evalArith(args, env, 1, func(a, b int64) int64 { return a / b }, func(a, b float64) float64 { return a / b })
	case object.OpCaret:
		return ast.NewDouble(math.Pow(Eval(argAt(args, 0), env).Double(), Eval(argAt(args, 1), env).Double()))
	case object.OpPercent:
		divisor := Eval(argAt(args, 1), env).Int()
		if divisor == 0 {
			return ast.NewInt(0)
		}
		return ast.NewInt(Eval(argAt(args, 0), env).Int() % divisor)
	case object.OpSqrt:
		return ast.NewDouble(math.Sqrt(Eval(argAt(args, 0), env).Double()))
	case object.OpInc:
		return evalIncDec(args, env, 1)
	case object.OpDec:
		return evalIncDec(args, env, -1)
	case object.OpPlusPlus:
		return evalMutate(args, env, 1)
	case object.OpMinusMinus:
		return evalMutate(args, env, -1)
	case object.OpFloor:
		return ast.NewDouble(math.Floor(Eval(argAt(args, 0), env).Double()))
	case object.OpCeil:
		return ast.NewDouble(math.Ceil(Eval(argAt(args, 0), env).Double()))
	case object.OpLn:
		return ast.NewDouble(math.Log(Eval(argAt(args, 0), env).Double()))
	case object.OpLog10:
		return ast.NewDouble(math.Log10(Eval(argAt(args, 0), env).Double()))
	case object.OpRand:
		return ast.NewDouble(rand.Float64())

	case object.OpEq:
		return evalCompareEq(args, env, true)
	case object.OpNotEq:
		return evalCompareEq(args, env, false)
	case object.OpLt:
		return evalCompareOrder(args, env, func(a, b int64) bool { return a < b }, func(a, b float64) bool { return a < b })
	case object.OpGt:
		return evalCompareOrder(args, env, func(a, b int64) bool { return a > b }, func(a, b float64) bool { return a > b })
	case object.OpLtEq:
		return evalCompareOrder(args, env, func(a, b int64) bool { return a <= b }, func(a, b float64) bool { return a <= b })
	case object.OpGtEq:
		return evalCompareOrder(args, env, func(a, b int64) bool { return a >= b }, func(a, b float64) bool { return a >= b })
	case object.OpAnd:
		for _, a := range args {
			if !Eval(a, env).BoolVal {
				return ast.False
			}
		}
		return ast.True
	case object.OpOr:
		for _, a := range args {
			if Eval(a, env).BoolVal {
				return ast.True
			}
		}
		return ast.False
	case object.OpNot:
		return ast.NewBool(!Eval(argAt(args, 0), env).BoolVal)

	case object.OpIf:
		if Eval(argAt(args, 0), env).BoolVal {
			return Eval(argAt(args, 1), env)
		}
		return Eval(argAt(args, 2), env)
	case object.OpWhen:
		if !Eval(argAt(args, 0), env).BoolVal {
			return ast.Nil
		}
		return evalBody(args[minInt(1, len(args)):], env)
	case object.OpFor:
		return evalFor(args, env)
	case object.OpWhile:
		cond := argAt(args, 0)
		body := tailFrom(args, 1)
		for Eval(cond, env).BoolVal {
			for _, b := range body {
				Eval(b, env)
			}
		}
		return ast.Nil

	case object.OpStrlen:
		return ast.NewInt(int64(len(Eval(argAt(args, 0), env).Text)))
	case object.OpStrcat:
		if len(args) == 0 {
			return ast.NewString("")
		}
		var sb strings.Builder
		sb.WriteString(Eval(args[0], env).String())
		for _, a := range args[1:] {
			sb.WriteString(Eval(a, env).String())
		}
		return ast.NewString(sb.String())
	case object.OpCharAt:
		s := Eval(argAt(args, 0), env).Text
		idx := int(Eval(argAt(args, 1), env).Int())
		if idx < 0 || idx >= len(s) {
			return ast.NewString("")
		}
		return ast.NewString(string(s[idx]))
	case object.OpChr:
		return ast.NewString(string(rune(Eval(argAt(args, 0), env).Int())))

	case object.OpInt:
		return ast.NewInt(Eval(argAt(args, 0), env).Int())
	case object.OpDouble:
		return ast.NewDouble(Eval(argAt(args, 0), env).Double())
	case object.OpString:
		return ast.NewString(Eval(argAt(args, 0), env).String())
	case object.OpReadString:
		forms := parser.ParseString(Eval(argAt(args, 0), env).String())
		if len(forms) == 0 {
			return ast.Nil
		}
		return forms[0]
	case object.OpType:
		return ast.NewString(Eval(argAt(args, 0), env).TypeName())
	case object.OpSet:
		sym := argAt(args, 0)
		env.Set(sym.Text, Eval(argAt(args, 1), env))
		return ast.Nil

	case object.OpEval:
		intermediate := Eval(argAt(args, 0), env)
		return Eval(intermediate, env)
	case object.OpQuote:
		return argAt(args, 0)
	case object.OpFn:
		return evalFnLiteral(args, env)
	case object.OpList:
		vals := make([]*ast.Node, len(args))
		for i, a := range args {
			vals[i] = Eval(a, env)
		}
		return ast.NewList(vals)
	case object.OpApply:
		fn := Eval(argAt(args, 0), env)
		lst := Eval(argAt(args, 1), env)
		call := ast.NewList(append([]*ast.Node{fn}, lst.List...))
		return Eval(call, env)
	case object.OpMap:
		fn := Eval(argAt(args, 0), env)
		lst := Eval(argAt(args, 1), env)
		acc := make([]*ast.Node, len(lst.List))
		for i, item := range lst.List {
			call := ast.NewList([]*ast.Node{fn, item})
			acc[i] = Eval(call, env)
		}
		return ast.NewList(acc)
	case object.OpFilter:
		fn := Eval(argAt(args, 0), env)
		lst := Eval(argAt(args, 1), env)
		var acc []*ast.Node
		for _, item := range lst.List {
			call := ast.NewList([]*ast.Node{fn, item})
			if Eval(call, env).BoolVal {
				acc = append(acc, item)
			}
		}
		return ast.NewList(acc)
	case object.OpRange:
		return evalRange(args, env)
	case object.OpNth:
		idx := int(Eval(argAt(args, 0), env).IntVal)
		lst := Eval(argAt(args, 1), env)
		if idx < 0 || idx >= len(lst.List) {
			return ast.Nil
		}
		return lst.List[idx]
	case object.OpLength:
		return ast.NewInt(int64(len(Eval(argAt(args, 0), env).List)))
	case object.OpBegin:
		return evalBody(args, env)

	case object.OpPr:
		fmt.Fprint(Output, joinArgs(args, env))
		return ast.Nil
	case object.OpPrn:
		fmt.Fprintln(Output, joinArgs(args, env))
		return ast.Nil
	case object.OpExit:
		fmt.Println()
		os.Exit(int(Eval(argAt(args, 0), env).Int()))
		return ast.Nil
	case object.OpSystem:
		return evalSystem(args, env)

	default:
		diagnostics.Warnf("Not implemented function: [%s]", name)
		return ast.Nil
	}
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func tailFrom(s []*ast.Node, i int) []*ast.Node {
	if i >= len(s) {
		return nil
	}
	return s[i:]
}

// evalBody evaluates every form but the last for effect and returns the
// result of the last (empty bodies yield nil) — shared by when/begin.
func evalBody(body []*ast.Node, env *object.Environment) *ast.Node {
	if len(body) == 0 {
		return ast.Nil
	}
	for _, b := range body[:len(body)-1] {
		Eval(b, env)
	}
	return Eval(body[len(body)-1], env)
}

// evalArith implements the variadic +, -, *, / family: the first operand's
// kind (int vs double) decides which arithmetic the whole form performs,
// exactly as libparen.cpp's PLUS/MINUS/MUL/DIV cases do.
func evalArith(args []*ast.Node, env *object.Environment, empty int64, iop func(a, b int64) int64, fop func(a, b float64) float64) *ast.Node {
	if len(args) <= 0 {
		return ast.NewInt(empty)
	}
	first := Eval(args[0], env)
	if first.Kind == ast.IntKind {
		acc := first.IntVal
		for _, a := range args[1:] {
			acc = iop(acc, Eval(a, env).Int())
		}
		return ast.NewInt(acc)
	}
	acc := first.Double()
	for _, a := range args[1:] {
		acc = fop(acc, Eval(a, env).Double())
	}
	return ast.NewDouble(acc)
}

func evalIncDec(args []*ast.Node, env *object.Environment, delta int64) *ast.Node {
	if len(args) == 0 {
		return ast.NewInt(0)
	}
	first := Eval(args[0], env)
	if first.Kind == ast.IntKind {
		return ast.NewInt(first.IntVal + delta)
	}
	return ast.NewDouble(first.Double() + float64(delta))
}

// evalMutate implements ++/--: SYM names a bound variable (its name is taken
// literally, never evaluated); the binding wherever it lives in the scope
// chain is replaced with itself plus delta, and the form yields nil.
func evalMutate(args []*ast.Node, env *object.Environment, delta int64) *ast.Node {
	if len(args) == 0 {
		return ast.Nil
	}
	sym := args[0]
	current := Eval(sym, env)
	owner := env.Resolve(sym.Text)
	if owner == nil {
		return ast.Nil
	}
	if current.Kind == ast.IntKind {
		owner.Set(sym.Text, ast.NewInt(current.IntVal+delta))
	} else {
		owner.Set(sym.Text, ast.NewDouble(current.Double()+float64(delta)))
	}
	return ast.Nil
}

func evalCompareEq(args []*ast.Node, env *object.Environment, wantEqual bool) *ast.Node {
	if len(args) == 0 {
		return ast.NewBool(wantEqual)
	}
	first := Eval(args[0], env)
	if first.Kind == ast.IntKind {
		v := first.IntVal
		for _, a := range args[1:] {
			eq := Eval(a, env).Int() == v
			if eq != wantEqual {
				return ast.NewBool(false)
			}
		}
		return ast.NewBool(true)
	}
	v := first.Double()
	for _, a := range args[1:] {
		eq := Eval(a, env).Double() == v
		if eq != wantEqual {
			return ast.NewBool(false)
		}
	}
	return ast.NewBool(true)
}

// evalCompareOrder implements the binary <, >, <=, >=: the first operand's
// kind decides whether the comparison runs over ints or doubles.
func evalCompareOrder(args []*ast.Node, env *object.Environment, iop func(a, b int64) bool, fop func(a, b float64) bool) *ast.Node {
	first := Eval(argAt(args, 0), env)
	second := Eval(argAt(args, 1), env)
	if first.Kind == ast.IntKind {
		return ast.NewBool(iop(first.IntVal, second.Int()))
	}
	return ast.NewBool(fop(first.Double(), second.Double()))
}

func evalFor(args []*ast.Node, env *object.Environment) *ast.Node {
	sym := argAt(args, 0)
	start := Eval(argAt(args, 1), env)
	env.Set(sym.Text, start)
	body := tailFrom(args, 4)

	if start.Kind == ast.IntKind {
		last := Eval(argAt(args, 2), env).Int()
		step := Eval(argAt(args, 3), env).Int()
		for {
			cur := env.Get(sym.Text).Int()
			if !((step >= 0 && cur <= last) || (step < 0 && cur >= last)) {
				break
			}
			for _, b := range body {
				Eval(b, env)
			}
			env.Set(sym.Text, ast.NewInt(env.Get(sym.Text).Int()+step))
		}
		return ast.Nil
	}
	last := Eval(argAt(args, 2), env).Double()
	step := Eval(argAt(args, 3), env).Double()
	for {
		cur := env.Get(sym.Text).Double()
		if !((step >= 0 && cur <= last) || (step < 0 && cur >= last)) {
			break
		}
		for _, b := range body {
			Eval(b, env)
		}
		env.Set(sym.Text, ast.NewDouble(env.Get(sym.Text).Double()+step))
	}
	return ast.Nil
}

func evalRange(args []*ast.Node, env *object.Environment) *ast.Node {
	start := Eval(argAt(args, 0), env)
	var out []*ast.Node
	if start.Kind == ast.IntKind {
		a := start.IntVal
		last := Eval(argAt(args, 1), env).Int()
		step := Eval(argAt(args, 2), env).Int()
		for (step >= 0 && a <= last) || (step < 0 && a >= last) {
			out = append(out, ast.NewInt(a))
			a += step
		}
		return ast.NewList(out)
	}
	a := start.Double()
	last := Eval(argAt(args, 1), env).Double()
	step := Eval(argAt(args, 2), env).Double()
	for (step >= 0 && a <= last) || (step < 0 && a >= last) {
		out = append(out, ast.NewDouble(a))
		a += step
	}
	return ast.NewList(out)
}

// evalFnLiteral builds a closure: (fn (PARAM ..) BODY ..). A fresh
// environment enclosing the defining scope is created once, here, and
// carried by the resulting Fn value for the rest of its life (§9).
func evalFnLiteral(args []*ast.Node, env *object.Environment) *ast.Node {
	params := argAt(args, 0).List
	body := tailFrom(args, 1)
	return ast.NewFn(params, body, object.NewEnclosedEnvironment(env))
}

func joinArgs(args []*ast.Node, env *object.Environment) string {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = Eval(a, env).String()
	}
	return strings.Join(parts, " ")
}

func evalSystem(args []*ast.Node, env *object.Environment) *ast.Node {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = Eval(a, env).Text
	}
	cmd := exec.Command("sh", "-c", strings.Join(parts, " "))
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Stdin = os.Stdin
	if err := cmd.Run(); err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return ast.NewInt(int64(exitErr.ExitCode()))
		}
		return ast.NewInt(-1)
	}
	return ast.NewInt(0)
}
