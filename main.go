package main

import (
	"fmt"
	"os"

	"github.com/tyemirov/taskr/cmd/cli"
)

const (
	exitErrorTemplateConstant = "taskr aborted: %v\n"
	exitFailureCodeConstant   = 1
)

// main runs the tasks named on the command line.
func main() {
	if executionError := cli.Execute(); executionError != nil {
		fmt.Fprintf(os.Stderr, exitErrorTemplateConstant, executionError)
		os.Exit(exitFailureCodeConstant)
	}
}
