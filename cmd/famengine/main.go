// Command famengine computes forecast periods for a financial account
// model described by a model directory of accounts, periods and rules.
package main

import (
	"fmt"
	"os"

	"github.com/takrawm/famengine/internal/cli"
	"github.com/takrawm/famengine/pkg/version"
)

func main() {
	os.Exit(run())
}

func run() int {
	root := cli.NewRootCmd(version.GetVersion())
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return 1
	}
	return 0
}
