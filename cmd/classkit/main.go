package main

import (
	"encoding/binary"
	"os"

	"github.com/spf13/cobra"

	"github.com/dhamidi/classkit/bytecode"
	"github.com/dhamidi/classkit/scanner"
)

type options struct {
	verbose      int
	logFile      string
	littleEndian bool
	jobs         int
}

func (o *options) decoderOptions() []bytecode.Option {
	if o.littleEndian {
		return []bytecode.Option{bytecode.WithByteOrder(binary.LittleEndian)}
	}
	return nil
}

func (o *options) scanner() *scanner.Scanner {
	return scanner.New(o.jobs)
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	rootCmd := &cobra.Command{
		Use:          "classkit",
		Short:        "Inspect Java class files and bytecode",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			configureLogging(opts.verbose, opts.logFile)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.CountVarP(&opts.verbose, "verbose", "v", "log more (repeat for debug output)")
	flags.StringVar(&opts.logFile, "log", "", "write logs to this file instead of stderr")
	flags.BoolVar(&opts.littleEndian, "little-endian", false, "read instruction operands as little-endian")
	flags.IntVarP(&opts.jobs, "jobs", "j", 0, "decode this many files at once (0 = one per CPU)")

	rootCmd.AddCommand(newDumpCmd(opts))
	rootCmd.AddCommand(newPoolCmd(opts))
	rootCmd.AddCommand(newCodeCmd(opts))
	rootCmd.AddCommand(newCallgraphCmd(opts))

	return rootCmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
