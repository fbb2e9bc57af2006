package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/zboralski/lattice/render"

	"github.com/dhamidi/classkit/callgraph"
	"github.com/dhamidi/classkit/classfile"
)

func newCallgraphCmd(opts *options) *cobra.Command {
	var (
		output    string
		title     string
		noLibrary bool
	)

	cmd := &cobra.Command{
		Use:   "callgraph <path>...",
		Short: "Write the method call graph as Graphviz DOT",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			results, loadErr := load(cmd, opts, args)
			if len(results) == 0 && loadErr != nil {
				return loadErr
			}
			classes := make([]*classfile.ClassFile, len(results))
			for i, r := range results {
				classes[i] = r.Class
			}

			g, err := callgraph.Build(classes, opts.decoderOptions()...)
			if err != nil {
				return errors.Join(loadErr, fmt.Errorf("build call graph: %w", err))
			}
			if noLibrary {
				g = callgraph.DropLibrary(g)
			}
			dot := render.DOT(g, title)

			if output == "" {
				_, err = fmt.Fprint(cmd.OutOrStdout(), dot)
				return errors.Join(loadErr, err)
			}
			if err := os.WriteFile(output, []byte(dot), 0644); err != nil {
				return errors.Join(loadErr, fmt.Errorf("write %s: %w", output, err))
			}
			log.Infof("wrote %s (%d nodes, %d edges)", output, len(g.Nodes), len(g.Edges))
			return loadErr
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write DOT to this file instead of stdout")
	cmd.Flags().StringVar(&title, "title", "callgraph", "graph title")
	cmd.Flags().BoolVar(&noLibrary, "no-library", false, "leave out calls into the JDK")

	return cmd
}
