// The main package for the bevtrends executable.
package main

import (
	"fmt"
	"os"

	"github.com/bevtrends/bevtrends/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
