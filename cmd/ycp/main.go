package main

import (
	"errors"
	"io"
	"os"
)

const cliToolVersion = "ycp 0.1.0-dev"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the command line and returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	root := newRootCmd(stdout, stderr)
	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		var status exitError
		if errors.As(err, &status) {
			return int(status)
		}
		printError(stderr, err.Error())
		return 1
	}
	return 0
}
