package main

import (
	"errors"
	"testing"
)

type stubDevice struct {
	reads   []uint32
	lastErr error
	writes  [][3]uint32
}

func (s *stubDevice) Read(size uint8, offset uint32) uint32 {
	return uint32(size)<<24 | offset
}

func (s *stubDevice) Write(size uint8, offset uint32, value uint32) error {
	s.writes = append(s.writes, [3]uint32{uint32(size), offset, value})
	return s.lastErr
}

func TestBusReadRoutesToMatchingRegion(t *testing.T) {
	bus := NewBus()
	dev := &stubDevice{}
	bus.AddRegion(0x1000, 0x100, dev)

	v, err := bus.Read(4, 0x1010)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != uint32(4)<<24|0x10 {
		t.Fatalf("offset not translated relative to region base: got 0x%X", v)
	}
}

func TestBusReadUnmappedAddress(t *testing.T) {
	bus := NewBus()
	bus.AddRegion(0x1000, 0x10, &stubDevice{})

	_, err := bus.Read(4, 0x2000)
	if !errors.Is(err, ErrUnmapped) {
		t.Fatalf("expected ErrUnmapped, got %v", err)
	}
	var busErr *BusError
	if !errors.As(err, &busErr) {
		t.Fatalf("expected *BusError, got %T", err)
	}
}

func TestBusFirstRegionWinsOnOverlap(t *testing.T) {
	bus := NewBus()
	narrow := &stubDevice{}
	wide := &stubDevice{}
	bus.AddRegion(0x1000, 0x10, narrow)
	bus.AddRegion(0x0000, 0x10000, wide)

	if err := bus.Write(1, 0x1000, 0xAB); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(narrow.writes) != 1 {
		t.Fatalf("expected narrow (first-registered) region to win, got %d writes", len(narrow.writes))
	}
	if len(wide.writes) != 0 {
		t.Fatalf("wide region should not have been touched")
	}
}

func TestBusWriteRejected(t *testing.T) {
	bus := NewBus()
	dev := &stubDevice{lastErr: ErrRejected}
	bus.AddRegion(0x1000, 0x10, dev)

	err := bus.Write(1, 0x1000, 1)
	if !errors.Is(err, ErrRejected) {
		t.Fatalf("expected ErrRejected, got %v", err)
	}
}
