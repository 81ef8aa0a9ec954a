// ==============================================================================================
// FILE: wasm/wasm_main.go
// BUILD: GOOS=js GOARCH=wasm go build -o main.wasm wasm/wasm_main.go
// ==============================================================================================
// PURPOSE: The browser entry point, adapted from the teacher's
//          wasm_main.go: instead of calling Eloquence's evaluator directly
//          and patching its builtin table for the web (overrideBuiltinsForWeb),
//          this drives the whole pipeline through facade.Facade and points
//          evaluator.Output at an in-memory buffer so pr/prn output can be
//          handed back to JavaScript the way "show" output was there.
// ==============================================================================================
package main

import (
	"fmt"
	"strings"
	"syscall/js"

	"paren/evaluator"
	"paren/facade"
)

var outputBuffer strings.Builder

func main() {
	c := make(chan struct{}, 0)

	evaluator.Output = &outputBuffer

	js.Global().Set("runParen", js.FuncOf(runCode))

	fmt.Println("Paren WASM Engine Loaded.")
	<-c
}

// runCode is the bridge between JS and Go: it gets one fresh Facade per
// call, so each invocation from the browser starts with a clean global
// environment, matching the CLI's per-file Facade (§6).
func runCode(this js.Value, p []js.Value) interface{} {
	code := p[0].String()
	outputBuffer.Reset()

	f := facade.New()
	result := f.EvalString(code)

	return map[string]interface{}{
		"logs":   outputBuffer.String(),
		"result": result.Repr(),
	}
}
