// ==============================================================================================
// FILE: repl/repl_test.go
// ==============================================================================================
package repl

import (
	"strings"
	"testing"

	"paren/facade"
)

func TestEvalAndPrintFormatsResult(t *testing.T) {
	var out strings.Builder
	f := facade.New()

	evalAndPrint(&out, f, "(+ 1 2)")

	got := strings.TrimSpace(out.String())
	want := "3 : int"
	if !strings.Contains(got, want) {
		t.Errorf("output %q does not contain %q", got, want)
	}
}

func TestEvalAndPrintSkipsBlankSource(t *testing.T) {
	var out strings.Builder
	f := facade.New()

	evalAndPrint(&out, f, "   \n  ")

	if out.Len() != 0 {
		t.Errorf("blank source should print nothing, got %q", out.String())
	}
}

func TestHandleMetaClear(t *testing.T) {
	var out strings.Builder
	f := facade.New()
	f.EvalString("(set x 1)")

	if !handleMeta(&out, f, nil, ".clear") {
		t.Fatal(".clear should be handled as a meta command")
	}
	if !f.Get("x").IsNil() {
		t.Error(".clear did not reset the global environment")
	}
}

func TestHandleMetaUnknownCommand(t *testing.T) {
	var out strings.Builder
	f := facade.New()

	if !handleMeta(&out, f, nil, ".bogus") {
		t.Fatal("a dot-prefixed unknown command should still be reported as handled")
	}
	if !strings.Contains(out.String(), "Unknown command") {
		t.Errorf("expected an unknown-command diagnostic, got %q", out.String())
	}
}

func TestHandleMetaIgnoresOrdinarySource(t *testing.T) {
	var out strings.Builder
	f := facade.New()

	if handleMeta(&out, f, nil, "(+ 1 2)") {
		t.Error("ordinary source should not be treated as a meta command")
	}
}
