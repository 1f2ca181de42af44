package main

import "testing"

func TestRAMReadWriteRoundTrip(t *testing.T) {
	r := NewRAM(64)

	if err := r.Write(4, 0, 0xDEADBEEF); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := r.Read(4, 0); got != 0xDEADBEEF {
		t.Fatalf("got 0x%X, want 0xDEADBEEF", got)
	}

	if err := r.Write(1, 8, 0xFF); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := r.Read(1, 8); got != 0xFF {
		t.Fatalf("got 0x%X, want 0xFF", got)
	}
}

func TestRAMLittleEndian(t *testing.T) {
	r := NewRAM(8)
	if err := r.Write(4, 0, 0x01020304); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Read(1, 0) != 0x04 || r.Read(1, 1) != 0x03 || r.Read(1, 2) != 0x02 || r.Read(1, 3) != 0x01 {
		t.Fatalf("bytes not stored little-endian")
	}
}

func TestRAMInvalidWriteSizeRejected(t *testing.T) {
	r := NewRAM(8)
	if err := r.Write(3, 0, 0); err == nil {
		t.Fatalf("expected error for invalid size")
	}
}

func TestRAMLoadWords(t *testing.T) {
	r := NewRAM(16)
	r.LoadWords([]uint32{0x11111111, 0x22222222, 0x33333333})

	if r.Read(4, 0) != 0x11111111 || r.Read(4, 4) != 0x22222222 || r.Read(4, 8) != 0x33333333 {
		t.Fatalf("words not loaded sequentially")
	}
}
