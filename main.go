// main.go - CLI entry point for the RV32I simulator
//
// <prog> <program-path> [-v|--verbose]... [-l|--limit N] [--log PATH]
// Exit code 0 on clean completion; 1 if the arguments are invalid, the
// trace log cannot be created, or the program image cannot be loaded.
// Flag shape follows KTStephano-GVM/main.go's stdlib `flag` usage rather
// than a CLI framework; the original
// Rust CLI's repeatable `-v` (clap's ArgAction::Count) is reproduced with a
// small flag.Value counter.

package main

import (
	"fmt"
	"io"
	"os"
)

type verboseCount int

func (v *verboseCount) String() string { return fmt.Sprintf("%d", int(*v)) }
func (v *verboseCount) Set(string) error {
	*v++
	return nil
}
func (v *verboseCount) IsBoolFlag() bool { return true }

func printBanner() {
	fmt.Println("RV32I Instruction-Set Simulator")
	fmt.Println("Fetch/decode/execute over a bus of RAM, UART, ScreenCSR and TextMode devices.")
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := newFlagSet(args)
	opts, err := fs.parse()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	printBanner()

	var traceOut io.Writer
	if opts.logPath != "" {
		traceFile, err := os.Create(opts.logPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, fatalf("opening trace log: %v", err))
			return 1
		}
		defer traceFile.Close()
		traceOut = traceFile
	}

	exec, err := NewExecutive(opts.program, opts.verbose, opts.limit, traceOut, opts.gui)
	if err != nil {
		fmt.Fprintln(os.Stderr, fatalf("%v", err))
		return 1
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		exec.Run()
	}()

	go drainUARTLive(exec.UART(), done)

	if opts.gui {
		if err := runGUI(exec.Ctrl(), exec.Screen()); err != nil {
			fmt.Fprintln(os.Stderr, fatalf("%v", err))
		}
	}

	<-done
	return 0
}

// drainUARTLive prints every guest TX byte to stdout as it arrives, for the
// lifetime of the run; it exits once the worker goroutine signals done.
func drainUARTLive(uart <-chan rune, done <-chan struct{}) {
	for {
		select {
		case c, ok := <-uart:
			if !ok {
				return
			}
			fmt.Print(string(c))
		case <-done:
			drainUART(uart)
			return
		}
	}
}

func drainUART(uart <-chan rune) {
	if uart == nil {
		return
	}
	for {
		select {
		case c, ok := <-uart:
			if !ok {
				return
			}
			fmt.Print(string(c))
		default:
			return
		}
	}
}
