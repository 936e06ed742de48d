// Wifi-location estimates a geographic position from one Wi-Fi access point
// using the Google Geolocation API.
//
// Usage:
//
//	wifi-location [--mac aa:bb:cc:dd:ee:ff] [--signal -90] [flags]
//
// The API key is read from <config dir>/wifi-location/config.yaml, which is
// created with a placeholder on first run.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/benmeehan/wifi-location/internal/services"
)

// Set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	os.Exit(execute(os.Args[1:], os.Stdout, os.Stderr))
}

// execute runs the root command and maps its outcome to a process exit code.
func execute(args []string, stdout, stderr io.Writer) int {
	cmd := newRootCmd(stdout, stderr)
	cmd.SetArgs(args)

	err := cmd.Execute()
	if err == nil {
		return 0
	}

	if errors.Is(err, services.ErrSetupRequired) {
		fmt.Fprintln(stderr, err)
	} else {
		fmt.Fprintf(stderr, "Error: %v\n", err)
	}
	return 1
}
