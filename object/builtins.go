// ==============================================================================================
// FILE: object/builtins.go
// ==============================================================================================
// PACKAGE: object
// PURPOSE: The fixed name -> opcode table for Paren's builtins (§4.E),
//          grounded on the opcode enum in _examples/original_source/libparen.h.
//          Also bootstraps the global constant bindings (true, false, E, PI).
// ==============================================================================================

package object

import "paren/ast"

// Opcode identifies a specific builtin or special form. The numeric values
// are not meaningful outside this table; only their names are part of the
// public interpreter surface. Grouped in the same order as libparen.h's enum
// for ease of cross-reference.
type Opcode = int

const (
	OpAdd Opcode = iota
	OpSub
	OpMul
	OpDiv
	OpCaret
	OpPercent
	OpSqrt
	OpInc
	OpDec
	OpPlusPlus
	OpMinusMinus
	OpFloor
	OpCeil
	OpLn
	OpLog10
	OpRand

	OpEq
	OpNotEq
	OpLt
	OpGt
	OpLtEq
	OpGtEq
	OpAnd
	OpOr
	OpNot

	OpIf
	OpWhen
	OpFor
	OpWhile

	OpStrlen
	OpStrcat
	OpCharAt
	OpChr

	OpInt
	OpDouble
	OpString
	OpReadString
	OpType
	OpSet

	OpEval
	OpQuote
	OpFn
	OpList
	OpApply
	OpMap
	OpFilter
	OpRange
	OpNth
	OpLength
	OpBegin

	OpPr
	OpPrn
	OpExit
	OpSystem
)

// builtinNames is the closed set of recognized builtin names from §4.E,
// grounded verbatim on libparen.cpp's builtin_map population.
var builtinNames = map[string]Opcode{
	"+": OpAdd, "-": OpSub, "*": OpMul, "/": OpDiv,
	"^": OpCaret, "%": OpPercent,
	"sqrt": OpSqrt, "inc": OpInc, "dec": OpDec,
	"++": OpPlusPlus, "--": OpMinusMinus,
	"floor": OpFloor, "ceil": OpCeil, "ln": OpLn, "log10": OpLog10, "rand": OpRand,

	"==": OpEq, "!=": OpNotEq, "<": OpLt, ">": OpGt, "<=": OpLtEq, ">=": OpGtEq,
	"&&": OpAnd, "||": OpOr, "!": OpNot,

	"if": OpIf, "when": OpWhen, "for": OpFor, "while": OpWhile,

	"strlen": OpStrlen, "strcat": OpStrcat, "char-at": OpCharAt, "chr": OpChr,

	"int": OpInt, "double": OpDouble, "string": OpString,
	"read-string": OpReadString, "type": OpType, "set": OpSet,

	"eval": OpEval, "quote": OpQuote, "fn": OpFn,
	"list": OpList, "apply": OpApply, "map": OpMap, "filter": OpFilter,
	"range": OpRange, "nth": OpNth, "length": OpLength, "begin": OpBegin,

	"pr": OpPr, "prn": OpPrn, "exit": OpExit, "system": OpSystem,
}

// LookupBuiltin reports whether name is a recognized builtin and, if so, its
// opcode. Used by the evaluator's one-shot symbol->builtin rewrite (§4.F).
func LookupBuiltin(name string) (Opcode, bool) {
	op, ok := builtinNames[name]
	return op, ok
}

// Bootstrap installs the global bindings that exist before any user code
// runs: the boolean literals and the two float constants from §4.E.
func Bootstrap(env *Environment) {
	env.Set("true", ast.True)
	env.Set("false", ast.False)
	env.Set("E", ast.NewDouble(2.71828182845904523536))
	env.Set("PI", ast.NewDouble(3.14159265358979323846))
}
