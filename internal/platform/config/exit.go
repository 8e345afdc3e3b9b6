package config

import (
	"fmt"
	"io"
	"os"
)

// exit is swapped in tests that cannot spawn a subprocess.
var exit = os.Exit

// Exitf writes a formatted error message to stderr and exits with code 1.
func Exitf(format string, args ...any) {
	Fexitf(os.Stderr, format, args...)
}

// Fexitf writes a formatted error message to w and exits with code 1.
func Fexitf(w io.Writer, format string, args ...any) {
	if w == nil {
		w = os.Stderr
	}
	fmt.Fprintf(w, format+"\n", args...)
	exit(1)
}
