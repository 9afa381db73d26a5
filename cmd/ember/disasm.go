package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/emberlang/ember/internal/compiler"
	"github.com/emberlang/ember/internal/vm"
)

var disasmCmd = &cobra.Command{
	Use:   "disasm <path>",
	Short: "Compile a script and print its disassembled bytecode",
	Args:  cobra.ExactArgs(1),
	RunE:  runDisasm,
}

func runDisasm(cmd *cobra.Command, args []string) error {
	source, err := os.ReadFile(args[0])
	if err != nil {
		return &cliError{code: exitIOError, err: fmt.Errorf("can't open file %q", args[0])}
	}

	v := vm.New(vm.Config{Stdout: cmd.OutOrStdout(), Stderr: cmd.ErrOrStderr()})
	fn, errs := compiler.New().Compile(v, source)
	if len(errs) > 0 {
		for _, e := range errs {
			fmt.Fprintln(cmd.ErrOrStderr(), e)
		}
		cmd.SilenceErrors = true
		cmd.SilenceUsage = true
		return &cliError{code: exitCompileError, err: fmt.Errorf("compile error")}
	}

	fmt.Fprint(cmd.OutOrStdout(), vm.Disassemble(fn.Chunk, "<script>"))
	return nil
}
