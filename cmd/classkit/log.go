package main

import (
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"
)

var log = commonlog.GetLogger("classkit")

// configureLogging passes the -v count to commonlog as its verbosity.
func configureLogging(verbose int, path string) {
	var logFile *string
	if path != "" {
		logFile = &path
	}
	commonlog.Configure(verbose, logFile)
}
