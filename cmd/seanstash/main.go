package main

import (
	"fmt"
	"os"

	"github.com/seanstash/seanstash-cli/internal/cli"
)

var BUILD_VERSION = "dev"

func main() {
	rootCmd := cli.RootCmd(BUILD_VERSION)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
