// trace.go - Per-retired-instruction trace event model and binary encoder

package main

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
)

// EventKind tags the payload carried by an Event.
type EventKind uint8

const (
	EventRegWrite EventKind = iota
	EventMemRead
	EventMemWrite
	EventFlowChange
	EventFlowLink
)

// Event describes one observable state change made by a retired
// instruction. A single instruction may emit more than one Event (e.g. a
// load into a non-zero register emits both a RegWrite and a MemRead); a
// linking JAL/JALR emits a single FlowLink with no separate RegWrite.
type Event struct {
	PC     uint32
	Opcode uint32
	Kind   EventKind

	// Payload fields; only the ones relevant to Kind are populated.
	Reg   uint8
	Value uint32
	Addr  uint32
	NewPC uint32
}

// Serialize writes the little-endian binary record described in spec.md §6:
// pc, opcode, kind byte, then a kind-specific payload.
func (e Event) Serialize(w io.Writer) error {
	var hdr [9]byte
	binary.LittleEndian.PutUint32(hdr[0:4], e.PC)
	binary.LittleEndian.PutUint32(hdr[4:8], e.Opcode)
	hdr[8] = byte(e.Kind)
	if _, err := w.Write(hdr[:]); err != nil {
		return err
	}

	switch e.Kind {
	case EventRegWrite:
		var buf [5]byte
		buf[0] = e.Reg
		binary.LittleEndian.PutUint32(buf[1:5], e.Value)
		_, err := w.Write(buf[:])
		return err
	case EventMemRead, EventMemWrite:
		var buf [8]byte
		binary.LittleEndian.PutUint32(buf[0:4], e.Addr)
		binary.LittleEndian.PutUint32(buf[4:8], e.Value)
		_, err := w.Write(buf[:])
		return err
	case EventFlowChange:
		var buf [4]byte
		binary.LittleEndian.PutUint32(buf[0:4], e.NewPC)
		_, err := w.Write(buf[:])
		return err
	case EventFlowLink:
		var buf [5]byte
		binary.LittleEndian.PutUint32(buf[0:4], e.NewPC)
		buf[4] = e.Reg
		_, err := w.Write(buf[:])
		return err
	default:
		return fmt.Errorf("trace: unknown event kind %d", e.Kind)
	}
}

// traceMagic is written once at the start of a trace file, per spec.md §6.
const traceMagic = "Emulation Trace  "

// TraceWriter buffers serialized events before flushing to a file sink, per
// spec.md §9's "trace buffering" note (events can be emitted far faster
// than a single syscall per record can keep up with).
type TraceWriter struct {
	w *bufio.Writer
}

// NewTraceWriter wraps w with a 64KiB buffer and writes the trace header.
func NewTraceWriter(w io.Writer) (*TraceWriter, error) {
	bw := bufio.NewWriterSize(w, 64*1024)
	if _, err := bw.WriteString(traceMagic); err != nil {
		return nil, err
	}
	return &TraceWriter{w: bw}, nil
}

// Write serializes and buffers a single event.
func (t *TraceWriter) Write(e Event) error {
	return e.Serialize(t.w)
}

// Flush drains the buffer to the underlying writer.
func (t *TraceWriter) Flush() error {
	return t.w.Flush()
}
