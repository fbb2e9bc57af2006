package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dhamidi/classkit/scanner"
)

// load scans args and logs every file that failed to decode. It returns
// the results that decoded and an error summarising the failures, if any.
func load(cmd *cobra.Command, opts *options, args []string) ([]scanner.Result, error) {
	results, err := opts.scanner().Scan(cmd.Context(), args)
	if err != nil {
		return nil, err
	}

	ok := results[:0:0]
	var failed int
	for _, r := range results {
		if r.Err != nil {
			log.Errorf("%v", r.Err)
			failed++
			continue
		}
		ok = append(ok, r)
	}
	log.Infof("decoded %d of %d class files", len(ok), len(results))

	if failed > 0 {
		return ok, fmt.Errorf("%d of %d class files failed to decode", failed, len(results))
	}
	return ok, nil
}
