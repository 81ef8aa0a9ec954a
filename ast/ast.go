// ==============================================================================================
// FILE: ast/ast.go
// ==============================================================================================
// PACKAGE: ast
// PURPOSE: Defines Paren's Value — a single tagged sum type that is, at once,
//          the parse tree produced by the parser AND the runtime value
//          produced by the evaluator (see spec §3, §9). Unlike Eloquence's
//          ast package, which has one Go struct per node kind wired into a
//          separate evaluator-facing object package, Paren has no such
//          split: parse trees and runtime values are the same representation,
//          because the evaluator's symbol->builtin rewrite mutates a parse
//          tree node into a runtime builtin node in place.
// ==============================================================================================

package ast

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind identifies which payload of a Node is meaningful. Reading the wrong
// payload for a given Kind is a programmer error, not a runtime check (§3).
type Kind int

const (
	NilKind Kind = iota
	IntKind
	DoubleKind
	BoolKind
	StringKind
	SymbolKind
	ListKind
	BuiltinKind
	FnKind
)

// Scope is the subset of object.Environment that ast needs in order to let a
// Fn value carry its captured environment without ast importing object (that
// dependency runs the other way: object imports ast for Node).
type Scope interface {
	Get(name string) *Node
	Set(name string, v *Node) *Node
	Resolve(name string) Scope
}

// Node is a single Paren value, whatever form it is currently in. Every node
// kind but Symbol is intended to be immutable once constructed; Symbol nodes
// are the one kind that is mutated in place — see RewriteToBuiltin.
type Node struct {
	Kind Kind

	// IntKind, DoubleKind, BoolKind
	IntVal    int64
	DoubleVal float64
	BoolVal   bool

	// StringKind, SymbolKind: share the same field, distinguished by Kind
	// exactly as spec §3 describes ("same representation as string but
	// distinct tag, produced only by the parser").
	Text string

	// ListKind
	List []*Node

	// BuiltinKind
	Opcode int

	// FnKind: the original (fn (params...) body...) form plus the captured
	// environment. Params/Body alias into the original List's structure so
	// that Fn values still stringify/re-parse the way §8 invariant 1
	// requires.
	Params []*Node
	Body   []*Node
	Env    Scope
}

// Nil, True and False are shared so that callers don't need to allocate
// a fresh Node for the common cases (NewBool hands back True or False); every
// other constructor below returns a fresh *Node because Paren values are otherwise eagerly copied, not
// reference-counted (§1 Non-goals: "no garbage collection beyond the host's
// memory management").
var (
	Nil   = &Node{Kind: NilKind}
	True  = &Node{Kind: BoolKind, BoolVal: true}
	False = &Node{Kind: BoolKind, BoolVal: false}
)

func NewInt(v int64) *Node      { return &Node{Kind: IntKind, IntVal: v} }
func NewDouble(v float64) *Node { return &Node{Kind: DoubleKind, DoubleVal: v} }
func NewBool(v bool) *Node {
	if v {
		return True
	}
	return False
}
func NewString(v string) *Node { return &Node{Kind: StringKind, Text: v} }
func NewSymbol(v string) *Node { return &Node{Kind: SymbolKind, Text: v} }
func NewList(elems []*Node) *Node {
	if elems == nil {
		elems = []*Node{}
	}
	return &Node{Kind: ListKind, List: elems}
}
func NewBuiltin(opcode int, name string) *Node {
	return &Node{Kind: BuiltinKind, Opcode: opcode, Text: name}
}
func NewFn(params, body []*Node, env Scope) *Node {
	return &Node{Kind: FnKind, Params: params, Body: body, Env: env}
}

// RewriteToBuiltin performs the one-shot in-place specialization described
// in §4.F/§9: the evaluator calls this on a Symbol node the first time it
// resolves to a builtin name, so that re-evaluating the same tree node never
// repeats the name lookup. It is only ever called on SymbolKind nodes still
// held by a caller via a pointer into their owning List/Params slice, which
// is what makes the mutation visible to later re-evaluations.
func (n *Node) RewriteToBuiltin(opcode int, name string) {
	n.Kind = BuiltinKind
	n.Opcode = opcode
	n.Text = name
}

// IsNil reports whether n is the nil value (or a Go nil Node pointer, which
// the evaluator treats identically — e.g. an environment lookup miss).
func (n *Node) IsNil() bool {
	return n == nil || n.Kind == NilKind
}

// TypeName returns the closed set of type names from §3.
func (n *Node) TypeName() string {
	if n == nil {
		return "nil"
	}
	switch n.Kind {
	case NilKind:
		return "nil"
	case IntKind:
		return "int"
	case DoubleKind:
		return "double"
	case BoolKind:
		return "bool"
	case StringKind:
		return "string"
	case SymbolKind:
		return "symbol"
	case ListKind:
		return "list"
	case BuiltinKind:
		return "builtin"
	case FnKind:
		return "fn"
	}
	return "nil"
}

// Int is the total coercion to int described in §3: int->itself,
// double->truncate toward zero, bool->0/1, string->decimal parse with a
// non-numeric prefix yielding 0, everything else->0.
func (n *Node) Int() int64 {
	if n == nil {
		return 0
	}
	switch n.Kind {
	case IntKind:
		return n.IntVal
	case DoubleKind:
		return int64(n.DoubleVal)
	case BoolKind:
		if n.BoolVal {
			return 1
		}
		return 0
	case StringKind, SymbolKind:
		return parseLeadingInt(n.Text)
	default:
		return 0
	}
}

// Double is the total coercion to double described in §3.
func (n *Node) Double() float64 {
	if n == nil {
		return 0
	}
	switch n.Kind {
	case IntKind:
		return float64(n.IntVal)
	case DoubleKind:
		return n.DoubleVal
	case BoolKind:
		if n.BoolVal {
			return 1
		}
		return 0
	case StringKind, SymbolKind:
		return parseLeadingFloat(n.Text)
	default:
		return 0
	}
}

// String is the total coercion to string described in §3; it also doubles as
// Paren's source-level repr for a value (used by Fn/List stringification
// below and, one level up, by the REPL's "<repr> : <type>" display).
func (n *Node) String() string {
	if n == nil {
		return ""
	}
	switch n.Kind {
	case NilKind:
		return ""
	case IntKind:
		return strconv.FormatInt(n.IntVal, 10)
	case DoubleKind:
		return strconv.FormatFloat(n.DoubleVal, 'g', 20, 64)
	case BoolKind:
		if n.BoolVal {
			return "true"
		}
		return "false"
	case StringKind, SymbolKind:
		return n.Text
	case ListKind:
		parts := make([]string, len(n.List))
		for i, e := range n.List {
			parts[i] = e.String()
		}
		return "(" + strings.Join(parts, " ") + ")"
	case FnKind:
		parts := make([]string, 0, len(n.Params)+len(n.Body))
		ps := make([]string, len(n.Params))
		for i, p := range n.Params {
			ps[i] = p.String()
		}
		parts = append(parts, "(fn ("+strings.Join(ps, " ")+")")
		for _, b := range n.Body {
			parts = append(parts, b.String())
		}
		return strings.Join(parts, " ") + ")"
	case BuiltinKind:
		return "builtin." + strconv.Itoa(n.Opcode)
	}
	return ""
}

// Repr renders "<value> : <type-name>", the REPL display format from §4.G.
func (n *Node) Repr() string {
	return fmt.Sprintf("%s : %s", n.String(), n.TypeName())
}

// parseLeadingInt parses the longest valid leading decimal-integer prefix of
// s, yielding 0 if none exists — the "non-numeric prefix yields 0" rule.
func parseLeadingInt(s string) int64 {
	end := leadingNumberEnd(s, false)
	if end == 0 {
		return 0
	}
	v, err := strconv.ParseInt(s[:end], 10, 64)
	if err != nil {
		return 0
	}
	return v
}

// parseLeadingFloat parses the longest valid leading floating-point prefix
// of s, yielding 0.0 if none exists.
func parseLeadingFloat(s string) float64 {
	end := leadingNumberEnd(s, true)
	if end == 0 {
		return 0
	}
	v, err := strconv.ParseFloat(s[:end], 64)
	if err != nil {
		return 0
	}
	return v
}

// leadingNumberEnd returns the length of the longest prefix of s that looks
// like a number: an optional sign, digits, and (if allowFloat) an optional
// '.' plus digits. It does not validate the result parses cleanly — callers
// fall back to 0 when strconv rejects it.
func leadingNumberEnd(s string, allowFloat bool) int {
	i := 0
	if i < len(s) && (s[i] == '-' || s[i] == '+') {
		i++
	}
	digitsStart := i
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i == digitsStart {
		return 0
	}
	if allowFloat && i < len(s) && s[i] == '.' {
		j := i + 1
		for j < len(s) && s[j] >= '0' && s[j] <= '9' {
			j++
		}
		if j > i+1 {
			i = j
		}
	}
	return i
}
