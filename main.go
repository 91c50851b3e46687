package main

import (
	"fmt"
	"os"

	"employee-management/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "ems: %v\n", err)
		os.Exit(1)
	}
}
