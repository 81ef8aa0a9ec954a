// ==============================================================================================
// FILE: facade/facade.go
// ==============================================================================================
// PACKAGE: facade
// PURPOSE: Implements Component G (§4.G): the single entry point that
//          composes lexer -> parser -> evaluator over a persistent global
//          environment, the way Eloquence's repl.go and main.go jointly
//          drove that pipeline inline. Promoted to its own package so the
//          CLI, the REPL and the WASM build can all share one
//          parse+eval+inspect surface instead of three copies of it.
// ==============================================================================================

package facade

import (
	"sort"
	"strings"

	"paren/ast"
	"paren/evaluator"
	"paren/lexer"
	"paren/object"
	"paren/parser"
)

// Facade owns one persistent global environment and evaluates source text
// against it across any number of calls (§5: "the global environment lives
// for the lifetime of the Facade instance").
type Facade struct {
	env *object.Environment
}

// New builds a Facade with a fresh global environment, bootstrapped with the
// constant bindings from §4.E (true, false, E, PI).
func New() *Facade {
	env := object.NewEnvironment()
	object.Bootstrap(env)
	return &Facade{env: env}
}

// EvalString parses and evaluates every top-level form in src against the
// persistent global environment, returning the result of the last form (nil
// if src contains none) — §4.G's eval_string.
func (f *Facade) EvalString(src string) *ast.Node {
	forms := parser.ParseString(src)
	if len(forms) == 0 {
		return ast.Nil
	}
	var result *ast.Node = ast.Nil
	for _, form := range forms {
		result = evaluator.Eval(form, f.env)
	}
	return result
}

// Get reads a binding out of the global environment.
func (f *Facade) Get(name string) *ast.Node {
	return f.env.Get(name)
}

// Set installs a binding directly into the global environment, bypassing
// parsing and evaluation — useful for host code wiring values into a Facade
// before running user source.
func (f *Facade) Set(name string, value *ast.Node) {
	f.env.Set(name, value)
}

// Reset replaces the global environment outright, discarding every binding
// — this is what the REPL's ".clear" command uses.
func (f *Facade) Reset() {
	env := object.NewEnvironment()
	object.Bootstrap(env)
	f.env = env
}

// IsComplete tokenizes src and reports whether its paren/quote nesting is
// balanced or over-closed (§4.G's completeness predicate, used by the REPL
// to decide whether to keep reading continuation lines).
func IsComplete(src string) bool {
	_, unclosed := lexer.Tokenize(src)
	return unclosed <= 0
}

// PrintSymbols returns the lexicographically sorted, 10-per-line listing of
// every name bound directly in the global environment (§4.G's
// print_symbols). Functions are included here too since Paren makes no
// distinction between a symbol bound to a fn value and any other binding;
// PrintFunctions below narrows to just those.
func (f *Facade) PrintSymbols() string {
	return columns(sortedNames(f.env, func(v *ast.Node) bool { return true }))
}

// PrintFunctions narrows PrintSymbols to bindings whose value is an fn
// (§4.G's print_functions).
func (f *Facade) PrintFunctions() string {
	return columns(sortedNames(f.env, func(v *ast.Node) bool { return v.Kind == ast.FnKind }))
}

func sortedNames(env *object.Environment, keep func(*ast.Node) bool) []string {
	var names []string
	for name, v := range env.Names() {
		if keep(v) {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

func columns(names []string) string {
	const perLine = 10
	var b strings.Builder
	for i, name := range names {
		if i > 0 {
			if i%perLine == 0 {
				b.WriteByte('\n')
			} else {
				b.WriteByte(' ')
			}
		}
		b.WriteString(name)
	}
	return b.String()
}
