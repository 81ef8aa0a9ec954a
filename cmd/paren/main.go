// ==============================================================================================
// FILE: cmd/paren/main.go
// ==============================================================================================
// PACKAGE: main
// PURPOSE: The CLI entry point (§6 "CLI (external collaborator)"), moved out
//          of the teacher's root-level main.go into cmd/paren the way a
//          module with more than one build target lays out its commands,
//          and rebuilt on github.com/spf13/cobra instead of the teacher's
//          hand-rolled os.Args[1] switch.
// ==============================================================================================

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"paren/facade"
	"paren/internal/diagnostics"
	"paren/repl"
)

func main() {
	var showVersion bool

	root := &cobra.Command{
		Use:           "paren [file ...]",
		Short:         "Paren is a small S-expression language interpreter",
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if showVersion {
				fmt.Println(repl.PAREN_VERSION)
				return nil
			}
			return run(args)
		},
	}
	root.Flags().BoolVarP(&showVersion, "version", "v", false, "print the version and exit")

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
	}
	os.Exit(0)
}

// run implements §6's CLI contract: no args enters the REPL; each path
// argument gets its own fresh Facade and is evaluated as a whole program; a
// file that cannot be opened is diagnosed and skipped, not fatal. The
// process always exits 0.
func run(args []string) error {
	if len(args) == 0 {
		return repl.Start(os.Stdout)
	}
	for _, path := range args {
		runFile(path)
	}
	return nil
}

func runFile(path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		diagnostics.Warnf("Cannot open file: %s", path)
		return
	}
	facade.New().EvalString(string(data))
}
