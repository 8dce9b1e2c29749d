// Command eventconsole serves one opcode request from stdin against the .dat
// files in its working directory.
package main

import (
	"fmt"
	"os"

	"github.com/vietanh2810/eventdesk/internal/console"
)

func main() {
	wd, err := os.Getwd()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := console.Run(wd, os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
