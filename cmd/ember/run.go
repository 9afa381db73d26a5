package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/emberlang/ember/internal/compiler"
	"github.com/emberlang/ember/internal/config"
	"github.com/emberlang/ember/internal/vm"
)

var runCmd = &cobra.Command{
	Use:   "run <path>",
	Short: "Compile and run a script file once",
	Args:  cobra.ExactArgs(1),
	RunE:  runScript,
}

func runScript(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return &cliError{code: exitIOError, err: err}
	}
	colorOverride, _ := cmd.Flags().GetString("color")
	colorize := shouldColorize(colorOverride, cfg.Color)

	source, err := os.ReadFile(args[0])
	if err != nil {
		return &cliError{code: exitIOError, err: fmt.Errorf("can't open file %q", args[0])}
	}

	v := vm.New(vm.Config{
		Stdout:           cmd.OutOrStdout(),
		Stderr:           cmd.ErrOrStderr(),
		NativesRoot:      cfg.NativesRoot,
		MaxReadFileBytes: cfg.MaxReadBytes(),
	})

	color.NoColor = !colorize

	result := v.Interpret(compiler.New(), source)
	switch result {
	case vm.InterpretOK:
		return nil
	case vm.InterpretCompileError:
		cmd.SilenceErrors = true
		cmd.SilenceUsage = true
		return &cliError{code: exitCompileError, err: fmt.Errorf("compile error")}
	default:
		cmd.SilenceErrors = true
		cmd.SilenceUsage = true
		return &cliError{code: exitRuntimeError, err: fmt.Errorf("runtime error")}
	}
}

// shouldColorize resolves the --color flag against the config file's
// color setting; every subcommand that writes colored output consults
// it the same way.
func shouldColorize(flagVal, configVal string) bool {
	val := flagVal
	if val == "" || val == "auto" {
		val = configVal
	}
	switch val {
	case "on":
		return true
	case "off":
		return false
	default:
		return isTerminal(os.Stdout)
	}
}
