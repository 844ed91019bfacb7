// Command hrsearchctl is an operator CLI for an hrsearch server.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
