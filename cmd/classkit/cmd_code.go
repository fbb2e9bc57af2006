package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dhamidi/classkit/format"
)

func newCodeCmd(opts *options) *cobra.Command {
	var method string

	cmd := &cobra.Command{
		Use:   "code <path>...",
		Short: "Disassemble method bodies",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			results, loadErr := load(cmd, opts, args)
			var errs []error
			for _, r := range results {
				err := format.DisassembleClass(cmd.OutOrStdout(), r.Class, method, opts.decoderOptions()...)
				if err != nil {
					log.Errorf("%s: %v", r.Name, err)
					errs = append(errs, fmt.Errorf("disassemble %s: %w", r.Name, err))
				}
			}
			return errors.Join(append([]error{loadErr}, errs...)...)
		},
	}

	cmd.Flags().StringVarP(&method, "method", "m", "", "only disassemble methods with this name")

	return cmd
}
