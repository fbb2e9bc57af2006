package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dhamidi/classkit/format"
)

func newPoolCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "pool <path>...",
		Short: "List the constant pool of class files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			results, loadErr := load(cmd, opts, args)
			out := cmd.OutOrStdout()
			for i, r := range results {
				if len(results) > 1 {
					if i > 0 {
						fmt.Fprintln(out)
					}
					fmt.Fprintf(out, "%s:\n", r.Name)
				}
				if err := format.WritePool(out, r.Class.ConstantPool); err != nil {
					return err
				}
			}
			return loadErr
		},
	}
}
