// Command travelcal is the command-line front end of the travel calendar:
// it serves the web planner and edits, lists and exports travel plans
// against the same storage the server uses.
package main

import (
	"fmt"
	"os"
	"time"
)

func main() {
	c := &cli{in: os.Stdin, out: os.Stdout, errOut: os.Stderr, clock: time.Now}
	if err := newRootCmd(c).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
