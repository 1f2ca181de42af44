package main

import "testing"

func TestScreenCSREnableFlag(t *testing.T) {
	s := NewScreenCSR()
	if s.Enabled() {
		t.Fatalf("expected framebuffer disabled by default")
	}
	if err := s.Write(4, 0, 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !s.Enabled() {
		t.Fatalf("expected framebuffer enabled after nonzero write")
	}
}

func TestScreenCSRFramebufferAddress(t *testing.T) {
	s := NewScreenCSR()
	if err := s.Write(4, 4, 0x8010_0000); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.FBAddr() != 0x8010_0000 {
		t.Fatalf("got 0x%X, want 0x8010_0000", s.FBAddr())
	}
}

func TestScreenCSRRejectsUnknownOffset(t *testing.T) {
	s := NewScreenCSR()
	if err := s.Write(4, 8, 1); err == nil {
		t.Fatalf("expected error for unknown offset")
	}
}
