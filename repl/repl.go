// ==============================================================================================
// FILE: repl/repl.go
// ==============================================================================================
// PACKAGE: repl
// PURPOSE: The Read-Eval-Print Loop (§6 "REPL (external collaborator)").
//          Ported from the teacher's bufio.Scanner loop onto
//          github.com/chzyer/readline for history/line-editing and
//          github.com/fatih/color for the result coloring the teacher's
//          printEvalResult did with raw ANSI escapes, and onto the facade's
//          completeness predicate for the multi-line continuation the
//          teacher's REPL never needed (Eloquence parses one line at a
//          time; Paren's prompt/continuation behavior is specified in §6).
// ==============================================================================================

package repl

import (
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/fatih/color"

	"paren/ast"
	"paren/facade"
)

const (
	promptStart = "> "
	promptCont  = "  "
)

// PAREN_VERSION is the version string the CLI's -v flag prints (§6).
const PAREN_VERSION = "1.4.2"

const logoTemplate = `
┏━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━┓
┃  ____                                              ┃
┃ |  _ \ __ _ _ __ ___ _ __                          ┃
┃ | |_) / _` + "`" + ` | '__/ _ \ '_ \                         ┃
┃ |  __/ (_| | | |  __/ | | |                        ┃
┃ |_|   \__,_|_|  \___|_| |_|                        ┃
┃                                                    ┃
┃ Paren %-9s                                    ┃
┗━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━┛
`

// Start launches the REPL against a fresh Facade, reading from stdin via
// readline and writing results to out.
func Start(out io.Writer) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          promptStart,
		HistoryFile:     "",
		InterruptPrompt: "^C",
		EOFPrompt:       "",
	})
	if err != nil {
		return err
	}
	defer rl.Close()

	fmt.Fprintf(out, logoTemplate, PAREN_VERSION)
	printHelp(out)

	f := facade.New()
	var buf strings.Builder

	for {
		line, err := rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt {
				buf.Reset()
				rl.SetPrompt(promptStart)
				continue
			}
			// io.EOF: evaluate whatever is buffered and exit (§6).
			if buf.Len() > 0 {
				evalAndPrint(out, f, buf.String())
			}
			return nil
		}

		if buf.Len() == 0 {
			if handled := handleMeta(out, f, rl, strings.TrimSpace(line)); handled {
				continue
			}
		}

		buf.WriteString(line)
		buf.WriteByte('\n')

		if facade.IsComplete(buf.String()) {
			src := buf.String()
			buf.Reset()
			rl.SetPrompt(promptStart)
			evalAndPrint(out, f, src)
		} else {
			rl.SetPrompt(promptCont)
		}
	}
}

func handleMeta(out io.Writer, f *facade.Facade, rl *readline.Instance, line string) bool {
	switch line {
	case ".exit":
		fmt.Fprintln(out, color.YellowString("Goodbye!"))
		rl.Close()
		return true
	case ".clear":
		f.Reset()
		fmt.Fprintln(out, color.GreenString("Environment cleared."))
		return true
	case ".help":
		printHelp(out)
		return true
	case ".symbols":
		fmt.Fprintln(out, f.PrintSymbols())
		return true
	case ".functions":
		fmt.Fprintln(out, f.PrintFunctions())
		return true
	}
	if strings.HasPrefix(line, ".") {
		fmt.Fprintf(out, color.RedString("Unknown command: %s. Type .help for info.\n"), line)
		return true
	}
	return false
}

func printHelp(out io.Writer) {
	fmt.Fprintln(out, "Commands:")
	fmt.Fprintln(out, "  .exit       Quit the REPL")
	fmt.Fprintln(out, "  .clear      Reset the global environment")
	fmt.Fprintln(out, "  .symbols    List every bound name")
	fmt.Fprintln(out, "  .functions  List every name bound to an fn")
	fmt.Fprintln(out, "  .help       Show this message")
	fmt.Fprintln(out)
}

func evalAndPrint(out io.Writer, f *facade.Facade, src string) {
	if strings.TrimSpace(src) == "" {
		return
	}
	result := f.EvalString(src)
	printResult(out, result)
}

// printResult writes "<repr> : <typename>" (§6), colored by kind the way
// the teacher's printEvalResult switched on object type.
func printResult(out io.Writer, v *ast.Node) {
	repr := v.Repr()
	switch v.Kind {
	case ast.BoolKind:
		if v.BoolVal {
			fmt.Fprintln(out, color.GreenString(repr))
		} else {
			fmt.Fprintln(out, color.RedString(repr))
		}
	case ast.IntKind, ast.DoubleKind:
		fmt.Fprintln(out, color.YellowString(repr))
	case ast.StringKind:
		fmt.Fprintln(out, color.GreenString(repr))
	case ast.FnKind, ast.BuiltinKind:
		fmt.Fprintln(out, color.MagentaString(repr))
	case ast.ListKind:
		fmt.Fprintln(out, color.BlueString(repr))
	default:
		fmt.Fprintln(out, repr)
	}
}
