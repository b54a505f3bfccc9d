// Command workermatchctl runs model and corpus maintenance against the
// configured stores.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newApp(connectEngine, os.Stdout).Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
