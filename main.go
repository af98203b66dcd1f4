package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"prism/apierr"
	"prism/tui"
)

// Build info - set via ldflags
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	// Load .env file if it exists (won't error if missing)
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, tui.ErrorStyle.Render(errorText(err)))
		os.Exit(1)
	}
}

// errorText renders client errors with their user-facing message and
// everything else (flags, files, config) as is
func errorText(err error) string {
	if _, ok := apierr.As(err); ok {
		return tui.ErrorMessage(err)
	}
	if errors.Is(err, apierr.ErrUnknownPerspective) || errors.Is(err, apierr.ErrMissingField) {
		return tui.ErrorMessage(err)
	}
	return "Error: " + err.Error()
}
