package main

import "testing"

func TestTextModeWriteOnlyRasterizesOnChange(t *testing.T) {
	tm := NewTextMode()
	before := tm.Pixels().Snapshot()

	// Writing the same (zero, zero) cell value back should not trigger a
	// rasterize, since nothing actually changed.
	if err := tm.Write(2, 0, 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	after := tm.Pixels().Snapshot()
	if !bytesEqual(before, after) {
		t.Fatalf("no-op write should not have changed the published frame")
	}

	// 'A' (0x41) with attribute 0x0F (white on black) should change pixels.
	if err := tm.Write(2, 0, 0x0F41); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	after = tm.Pixels().Snapshot()
	if bytesEqual(before, after) {
		t.Fatalf("expected the published frame to change after a real cell write")
	}
}

func TestTextModeSizeMatchesCellGrid(t *testing.T) {
	tm := NewTextMode()
	if tm.Size() != _TEXT_WIDTH*_TEXT_HEIGHT*2 {
		t.Fatalf("got %d, want %d", tm.Size(), _TEXT_WIDTH*_TEXT_HEIGHT*2)
	}
}

func TestTextModeRejectsInvalidSize(t *testing.T) {
	tm := NewTextMode()
	if err := tm.Write(3, 0, 0); err == nil {
		t.Fatalf("expected error for invalid write size")
	}
}

func bytesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
