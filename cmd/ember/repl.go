package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/emberlang/ember/internal/config"
	"github.com/emberlang/ember/internal/repl"
	"github.com/emberlang/ember/internal/vm"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Open an interactive line-at-a-time prompt",
	Args:  cobra.NoArgs,
	RunE:  runRepl,
}

func runRepl(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return &cliError{code: exitIOError, err: err}
	}
	colorOverride, _ := cmd.Flags().GetString("color")
	colorize := shouldColorize(colorOverride, cfg.Color)

	v := vm.New(vm.Config{
		NativesRoot:      cfg.NativesRoot,
		MaxReadFileBytes: cfg.MaxReadBytes(),
	})

	return repl.Run(v, isTerminal(os.Stdin), repl.Options{
		In:          os.Stdin,
		Out:         os.Stdout,
		Err:         os.Stderr,
		Colorize:    colorize,
		HistoryFile: cfg.HistoryFile,
	})
}
