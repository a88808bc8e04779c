package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// exitError carries a non-zero status for a command that already reported
// its failure.
type exitError int

func (e exitError) Error() string { return fmt.Sprintf("exit status %d", int(e)) }

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	var envFile string
	root := &cobra.Command{
		Use:   "ycp",
		Short: "Evaluate YCP value trees",
		Long: `ycp evaluates programs written as YAML value trees with the YCP builtin
operators, symbol table and localization support.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.PersistentFlags().StringVar(&envFile, "env", "", "environment file with YCP_* defaults (default .env when present)")

	root.AddCommand(
		newEvalCmd(&envFile),
		newBuiltinsCmd(),
		newVersionCmd(),
	)
	return root
}

func printError(w io.Writer, msg string) {
	color.New(color.FgRed, color.Bold).Fprint(w, "error: ")
	fmt.Fprintln(w, msg)
}
