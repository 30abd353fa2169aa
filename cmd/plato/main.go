// Plato is a terminal client for browsing recipes.
//
// Usage:
//
//	plato [--config plato.yml] [--verbose] [--quiet] [--log-file path] [--base-url url]
//	plato random [-n N]
//	plato search <query> [-n N]
//	plato show <id>
//	plato version
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
