// constants.go - Fixed memory map and sizing constants for the RV32I machine

package main

// Memory map. ScreenCSR and UART sit below the 0x8000_0000 line so that
// RAM_BASE can stay fixed at the conventional RISC-V "low RAM" address
// mandated by spec.md §6; TextMode sits above RAM at 0x9000_0000, well past
// RAM's 4 MiB end at 0x8040_0000.
const (
	SCREEN_CSR_ADDR = 0x1000_0000
	UART0_BASE      = 0x1000_1000

	RAM_BASE = 0x8000_0000
	RAM_SIZE = 4 * 1024 * 1024 // 4 MiB

	VGA_TEXT_MODE_BASE = 0x9000_0000
)

// Text-mode cell grid. Each cell is 2 bytes (character, attribute).
const (
	_TEXT_WIDTH  = 64
	_TEXT_HEIGHT = 19
)

// Glyphs are 8x16, scaled 2x in both dimensions onto the pixel buffer.
const (
	glyphWidth  = 8
	glyphHeight = 16
	glyphScale  = 2

	SCREEN_WIDTH  = _TEXT_WIDTH * glyphWidth * glyphScale
	SCREEN_HEIGHT = _TEXT_HEIGHT * glyphHeight * glyphScale
)

// UART0_SIZE rounds the NS16550A-shaped register window up to a power of
// two, resolving the open question in spec.md §9 about the original's
// 15-byte region.
const UART0_SIZE = 16

// ScreenCSR occupies two 4-byte word slots: enable flag, framebuffer address.
const screenCSRSize = 8
