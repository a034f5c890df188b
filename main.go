// Package main is the entry point for the brack CLI.
package main

import "brack.dev/pkg/brack/cmd"

func main() {
	cmd.Execute()
}
