// Command ember is the CLI front end for the bytecode VM: run a
// script, open an interactive REPL, or disassemble compiled bytecode.
package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var rootCmd = &cobra.Command{
	Use:   "ember",
	Short: "Ember language compiler and VM",
	Long:  `Ember is a small dynamically-typed scripting language backed by a bytecode VM.`,
}

func main() {
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(replCmd)
	rootCmd.AddCommand(disasmCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(exitCodeForError(err))
	}
}

// isTerminal reports whether f is an interactive terminal, used to
// decide whether the REPL should run its TUI line editor or fall back
// to a plain scanner loop.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
