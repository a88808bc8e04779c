package main

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"ycp/interpreter-go/pkg/builtins"
)

func newBuiltinsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "builtins",
		Short: "List the builtin symbol table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := builtins.Default()
			if err != nil {
				return err
			}
			name := color.New(color.FgCyan).SprintFunc()
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, entry := range table.Entries() {
				fmt.Fprintf(w, "%s\t%s\t%s\n", name(entry.Name), arity(entry), entry.Doc)
			}
			return w.Flush()
		},
	}
}

func arity(e builtins.Entry) string {
	switch {
	case e.MaxArgs < 0:
		return strconv.Itoa(e.MinArgs) + "+"
	case e.MinArgs == e.MaxArgs:
		return strconv.Itoa(e.MinArgs)
	}
	return fmt.Sprintf("%d..%d", e.MinArgs, e.MaxArgs)
}
