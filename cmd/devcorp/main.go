// cmd/devcorp/main.go
//
// This is the entry point for the devcorp CLI.
//
//	devcorp                 open the staffing dashboard for the current directory
//	devcorp project         print the 25-year staffing projection
//	devcorp phases          print the phase timeline with caps and peaks
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
