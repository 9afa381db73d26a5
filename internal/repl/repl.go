// Package repl implements the line-at-a-time interactive prompt: a
// Bubble Tea line editor when stdin is a terminal, falling back to a
// plain bufio.Scanner loop otherwise. Either way, exactly one submitted
// line is handed to the VM at a time — the editor only owns input
// history and styling, never batching.
package repl

import (
	"bufio"
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/emberlang/ember/internal/compiler"
	"github.com/emberlang/ember/internal/vm"
)

// Options configures a REPL session.
type Options struct {
	In          io.Reader
	Out         io.Writer
	Err         io.Writer
	Colorize    bool
	HistoryFile string
}

// Run drives one REPL session against v until In is exhausted or the
// user quits. isTerminal decides whether the Bubble Tea editor or the
// plain scanner fallback is used.
func Run(v *vm.VM, isTerminal bool, opts Options) error {
	v.SetStdout(opts.Out)
	v.SetStderr(opts.Err)

	if isTerminal {
		return runTUI(v, opts)
	}
	return runPlain(v, opts)
}

// runPlain is the non-tty fallback: no styling, no history navigation,
// just line-buffered stdin piped straight into the VM.
func runPlain(v *vm.VM, opts Options) error {
	comp := compiler.New()
	scanner := bufio.NewScanner(opts.In)
	prompt := "> "

	fmt.Fprint(opts.Out, prompt)
	for scanner.Scan() {
		line := scanner.Text()
		if line != "" {
			v.Interpret(comp, []byte(line))
		}
		fmt.Fprint(opts.Out, prompt)
	}
	fmt.Fprintln(opts.Out)
	return scanner.Err()
}

// errorColor and echoColor are fatih/color styles for error and echo
// text, and writeColored prints a line with one of them when colorize is
// set. Neither runPlain nor the Bubble Tea model calls writeColored, so
// REPL output and errors are written uncolored by this package.
var (
	errorColor = color.New(color.FgRed)
	echoColor  = color.New(color.FgYellow)
)

func writeColored(w io.Writer, colorize bool, c *color.Color, s string) {
	if colorize {
		c.Fprintln(w, s)
		return
	}
	fmt.Fprintln(w, s)
}
