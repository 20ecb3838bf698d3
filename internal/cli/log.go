package cli

import (
	"fmt"
	"os"
)

// Logger is a tiny verbose-gated stderr writer, mirroring the teacher
// Runner's Verbose-guarded fmt.Printf calls rather than pulling in a
// structured logging library for a driver this thin.
type Logger struct {
	Verbose bool
}

func (l Logger) Printf(format string, args ...any) {
	if !l.Verbose {
		return
	}
	fmt.Fprintf(os.Stderr, format+"\n", args...)
}

func (l Logger) Warnf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "WARNING: "+format+"\n", args...)
}
