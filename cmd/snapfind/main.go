// Command snapfind finds reports related to an image.
package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/custodia-labs/snapfind/internal/adapters/driving/cli"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	// A missing .env is normal; variables already exported are never overridden.
	_ = godotenv.Load()

	cli.SetVersion(version)
	os.Exit(cli.ExitCode(cli.Execute()))
}
