// diag.go - ANSI styling for fatal diagnostics and disassembly mnemonics
//
// The teacher (IntuitionAmiga-IntuitionEngine) prints its own banners and
// warnings with raw "\033[...m" escape literals rather than a terminal
// styling library; this simulator centralizes the handful of styles it
// actually uses so they aren't copy-pasted at every panic site, the way the
// original Rust CLI centralized them behind the `colored` crate instead.

package main

import (
	"fmt"
	"os"

	"golang.org/x/term"
)

const (
	ansiReset     = "\033[0m"
	ansiBoldRed   = "\033[1;31m"
	ansiUnderline = "\033[4m"
)

// colorEnabled is decided once at startup: a piped/redirected stdout (CI
// logs, `| tee`, trace files) gets plain text instead of escape codes.
var colorEnabled = term.IsTerminal(int(os.Stdout.Fd()))

func colorize(prefix, s string) string {
	if !colorEnabled {
		return s
	}
	return prefix + s + ansiReset
}

// fatalf formats a diagnostic the way a RISC-V trap monitor would: bold red,
// intended to be passed straight to panic().
func fatalf(format string, args ...any) string {
	return colorize(ansiBoldRed, fmt.Sprintf(format, args...))
}

// emphasize underlines a fragment (e.g. a mnemonic) inside a larger
// diagnostic line.
func emphasize(s string) string {
	return colorize(ansiUnderline, s)
}
