// executive.go - Top-level wiring and worker/host coordination
//
// Loads the program image into RAM, registers devices on the bus in the
// priority order spec.md §4.8 mandates (ScreenCSR, UART, RAM, TextMode —
// so that, were the ScreenCSR or UART range ever to overlap RAM's, that
// narrower device would win; TextMode, registered last, would lose to
// RAM), constructs the CPU, and runs the fetch/execute loop
// in fixed-size batches, draining the control channel at each batch
// boundary. Grounded on original_source/src/main.rs's cpu_thread and the
// teacher's own goroutine-per-subsystem wiring in main.go.

package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"time"
)

// Executive owns the Bus, CPU and every device exclusively; no other
// goroutine touches them directly. The worker and host share only the
// three channels below; text-mode frames reach the host as copies taken
// from the TextMode PixelBuffer on the worker side.
type Executive struct {
	bus       *Bus
	cpu       *CPU
	textMode  *TextMode
	screenCSR *ScreenCSR

	ctrl   chan CtrlCommand
	screen chan ScreenMsg
	uart   chan rune

	trace *TraceWriter

	verbose  bool
	limit    uint64
	attached bool
}

// NewExecutive wires a complete machine: RAM preloaded with the parsed
// program image, all four devices registered on the bus, and a CPU ready
// to run starting at RAM_BASE. attached reports whether a host presenter
// will ever send on the returned Executive's control channel; when false,
// Run must not block waiting for one (spec.md §6's base CLI invocation has
// no presenter at all).
func NewExecutive(programPath string, verbose bool, limit uint64, traceOut io.Writer, attached bool) (*Executive, error) {
	words, err := LoadImage(programPath)
	if err != nil {
		return nil, err
	}

	bus := NewBus()

	screenCSR := NewScreenCSR()
	uartCh := make(chan rune, 256)
	uartDev := NewUART(uartCh)

	ram := NewRAM(RAM_SIZE)
	ram.LoadWords(words)

	textMode := NewTextMode()

	// Registration order is lookup priority: ScreenCSR, UART, RAM, TextMode.
	bus.AddRegion(SCREEN_CSR_ADDR, screenCSRSize, screenCSR)
	bus.AddRegion(UART0_BASE, UART0_SIZE, uartDev)
	bus.AddRegion(RAM_BASE, ram.Size(), ram)
	bus.AddRegion(VGA_TEXT_MODE_BASE, textMode.Size(), textMode)

	cpu := NewCPU(bus, RAM_BASE)

	var tw *TraceWriter
	if traceOut != nil {
		tw, err = NewTraceWriter(traceOut)
		if err != nil {
			return nil, fmt.Errorf("opening trace sink: %w", err)
		}
	}

	return &Executive{
		bus:       bus,
		cpu:       cpu,
		textMode:  textMode,
		screenCSR: screenCSR,
		ctrl:      make(chan CtrlCommand, 8),
		screen:    make(chan ScreenMsg, 1),
		uart:      uartCh,
		trace:     tw,
		verbose:   verbose,
		limit:     limit,
		attached:  attached,
	}, nil
}

// Ctrl is the host->worker control channel (spec.md §5).
func (e *Executive) Ctrl() chan<- CtrlCommand { return e.ctrl }

// Screen is the worker->host frame-snapshot channel.
func (e *Executive) Screen() <-chan ScreenMsg { return e.screen }

// UART is the worker->host character channel.
func (e *Executive) UART() <-chan rune { return e.uart }

// Run executes the CPU loop to completion (cycle limit reached, stdin quit
// in interactive mode, or a Stop control message) and prints aggregate
// timing and, if verbose, a full register dump, per spec.md §4.8 step 6.
// Call it from its own goroutine; it owns the Bus/CPU/devices exclusively
// for the remainder of the process unless Stop is sent.
func (e *Executive) Run() {
	if e.trace != nil {
		defer e.trace.Flush()
	}

	batchSize := 1000
	if e.verbose {
		batchSize = 1
	}
	interactive := e.limit == 0

	if interactive {
		fmt.Println("Running in interactive mode. Press Enter to step, 'q/b' to quit.")
	} else {
		fmt.Printf("Running for %d cycles.\n", e.limit)
	}
	fmt.Println("------------")

	var totalBatches uint64
	lastBatch := batchSize
	if !interactive {
		totalBatches = e.limit / uint64(batchSize)
		if rem := e.limit % uint64(batchSize); rem != 0 {
			totalBatches++
			lastBatch = int(rem)
		}
	}

	reader := bufio.NewReader(os.Stdin)
	start := time.Now()
	stopped := false

	for batchIdx := uint64(0); interactive || batchIdx < totalBatches; batchIdx++ {
		if interactive {
			line, _ := reader.ReadString('\n')
			line = strings.ToLower(strings.TrimSpace(line))
			if line == "q" || line == "b" {
				break
			}
		}

		n := batchSize
		if !interactive && batchIdx == totalBatches-1 {
			n = lastBatch
		}
		events := e.cpu.Tick(e.verbose, n, e.trace != nil)
		if e.trace != nil {
			for _, ev := range events {
				if err := e.trace.Write(ev); err != nil {
					fmt.Fprintln(os.Stderr, fatalf("trace write failed: %v", err))
					break
				}
			}
		}

		stopped = e.drainCtrl()
		if stopped {
			break
		}
	}

	if e.verbose {
		for i, name := range registerNames {
			v := e.cpu.ReadReg(i)
			fmt.Printf("x%d (%3s): 0x%08X(%d)\n", i, name, v, v)
		}
	}

	fmt.Println("\n------------")
	fmt.Printf("CPU execution time: %s\n", time.Since(start))

	if !stopped && e.attached {
		e.serviceFinalRequest()
	}
}

// drainCtrl services every pending control message without blocking,
// answering every RequestFrame before a queued Stop takes effect, per
// spec.md §5's ordering guarantee. It reports whether Stop was observed.
func (e *Executive) drainCtrl() bool {
	for {
		select {
		case msg := <-e.ctrl:
			switch msg {
			case CtrlRequestFrame:
				e.sendFrame()
			case CtrlStop:
				return true
			}
		default:
			return false
		}
	}
}

// serviceFinalRequest blocks for one more control message after the batch
// loop exits, so a RequestFrame/Stop sent right as the cycle limit is hit
// still gets answered (mirrors original_source/src/main.rs's final recv).
func (e *Executive) serviceFinalRequest() {
	msg, ok := <-e.ctrl
	if !ok {
		return
	}
	switch msg {
	case CtrlRequestFrame:
		e.sendFrame()
	case CtrlStop:
		fmt.Println("CPU thread stopping.")
	}
}

// sendFrame snapshots either the TextMode pixel buffer or a raw RGB565
// readout of the framebuffer-enabled guest memory region, per spec.md
// §4.8 step 5.
func (e *Executive) sendFrame() {
	if !e.screenCSR.Enabled() {
		e.screen <- ScreenMsg{Type: ScreenTextMode, Data: e.textMode.Pixels().Snapshot()}
		return
	}

	fbAddr := e.screenCSR.FBAddr()
	frameSize := SCREEN_WIDTH * SCREEN_HEIGHT * 2
	buf := make([]byte, frameSize)
	for i := 0; i < frameSize/4; i++ {
		word := e.cpu.ReadMem(4, fbAddr+uint32(i*4))
		buf[i*4+0] = byte(word)
		buf[i*4+1] = byte(word >> 8)
		buf[i*4+2] = byte(word >> 16)
		buf[i*4+3] = byte(word >> 24)
	}
	e.screen <- ScreenMsg{Type: ScreenFrameBuffer, Data: buf}
}
