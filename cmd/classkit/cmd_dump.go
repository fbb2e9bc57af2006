package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dhamidi/classkit/format"
)

func newDumpCmd(opts *options) *cobra.Command {
	var dumpFormat string

	cmd := &cobra.Command{
		Use:   "dump <path>...",
		Short: "Dump the structure of class files, directories or jars",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			enc := format.New(dumpFormat, cmd.OutOrStdout())
			if enc == nil {
				return fmt.Errorf("unknown format: %s (expected json or line)", dumpFormat)
			}

			results, loadErr := load(cmd, opts, args)
			var errs []error
			for _, r := range results {
				if err := enc.Encode(r.Class); err != nil {
					log.Errorf("%s: %v", r.Name, err)
					errs = append(errs, fmt.Errorf("encode %s: %w", r.Name, err))
				}
			}
			return errors.Join(append([]error{loadErr}, errs...)...)
		},
	}

	cmd.Flags().StringVarP(&dumpFormat, "format", "f", "line", "output format (json, line)")

	return cmd
}
