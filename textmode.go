// textmode.go - Character+attribute text buffer rasterized to RGBA
//
// The text buffer is a RAM-like byte device (little-endian, 1/2/4-byte
// access) that happens to re-rasterize itself into a shared pixel buffer on
// every 2-byte cell write whose value actually changed. The pixel buffer is
// published by rasterize and copied out by Snapshot when the Executive
// answers a frame request; it is protected by a RWMutex the
// way the teacher protects its own cross-thread video buffer in
// memory_bus.go and video_backend_ebiten.go, rather than a double-buffer
// swap — either satisfies spec.md §9's "TextMode sharing" note, and RWMutex
// is what every shared buffer in the teacher repo already uses.

package main

import (
	"encoding/binary"
	"image"
	"sync"

	"golang.org/x/image/draw"
)

// PixelBuffer is a read-mostly, reader-writer-locked handle to the most
// recently rasterized RGBA frame. The TextMode device writes it; the
// Executive reads it with Snapshot and sends the copy to the host over the
// screen channel. Brief reader starvation under continuous text updates is
// tolerated, per spec.md §4.6.
type PixelBuffer struct {
	mu   sync.RWMutex
	data []byte // RGBA8888, SCREEN_WIDTH*SCREEN_HEIGHT*4 bytes
}

func newPixelBuffer() *PixelBuffer {
	return &PixelBuffer{data: make([]byte, SCREEN_WIDTH*SCREEN_HEIGHT*4)}
}

// Snapshot returns a copy of the current frame, safe to hand to another
// goroutine without further locking.
func (p *PixelBuffer) Snapshot() []byte {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make([]byte, len(p.data))
	copy(out, p.data)
	return out
}

func (p *PixelBuffer) publish(frame []byte) {
	p.mu.Lock()
	p.data = frame
	p.mu.Unlock()
}

// TextMode is the VGA-style text-mode device: a 64x19 grid of (char,
// attribute) cells backing a shared RGBA framebuffer.
type TextMode struct {
	text   []byte
	pixels *PixelBuffer

	// Scratch glyph-resolution canvas, reused across rasterize calls to
	// avoid reallocating every cell write.
	glyphCanvas *image.RGBA
}

// NewTextMode allocates a blank text buffer and its shared pixel handle.
func NewTextMode() *TextMode {
	tm := &TextMode{
		text:   make([]byte, _TEXT_WIDTH*_TEXT_HEIGHT*2),
		pixels: newPixelBuffer(),
	}
	tm.glyphCanvas = image.NewRGBA(image.Rect(0, 0, _TEXT_WIDTH*glyphWidth, _TEXT_HEIGHT*glyphHeight))
	tm.rasterize()
	return tm
}

// Pixels exposes the read handle the Executive snapshots when answering a
// frame request.
func (t *TextMode) Pixels() *PixelBuffer { return t.pixels }

// Size reports the text buffer's byte length, for bus registration.
func (t *TextMode) Size() uint32 { return uint32(len(t.text)) }

func (t *TextMode) Read(size uint8, offset uint32) uint32 {
	switch size {
	case 1:
		return uint32(t.text[offset])
	case 2:
		return uint32(binary.LittleEndian.Uint16(t.text[offset : offset+2]))
	case 4:
		return binary.LittleEndian.Uint32(t.text[offset : offset+4])
	default:
		panic("textmode: invalid read size")
	}
}

func (t *TextMode) Write(size uint8, offset uint32, value uint32) error {
	switch size {
	case 1:
		t.text[offset] = byte(value)
	case 2:
		newBytes := [2]byte{byte(value), byte(value >> 8)}
		if t.text[offset] != newBytes[0] || t.text[offset+1] != newBytes[1] {
			t.text[offset] = newBytes[0]
			t.text[offset+1] = newBytes[1]
			t.rasterize()
		}
	case 4:
		binary.LittleEndian.PutUint32(t.text[offset:offset+4], value)
	default:
		return ErrRejected
	}
	return nil
}

// rasterize redraws every cell into the glyph-resolution canvas, scales it
// 2x with a nearest-neighbour resample (golang.org/x/image/draw, matching
// spec.md §4.6's "scaled 2x in both dimensions"), and atomically publishes
// the result to the shared pixel buffer.
func (t *TextMode) rasterize() {
	for row := 0; row < _TEXT_HEIGHT; row++ {
		for col := 0; col < _TEXT_WIDTH; col++ {
			off := (row*_TEXT_WIDTH + col) * 2
			ch := t.text[off] & 0x7F
			attr := t.text[off+1]
			fg := fgPalette[attr&0x0F]
			bg := bgPalette[(attr>>4)&0x07]
			t.drawGlyph(col, row, ch, fg, bg)
		}
	}

	scaled := image.NewRGBA(image.Rect(0, 0, SCREEN_WIDTH, SCREEN_HEIGHT))
	draw.NearestNeighbor.Scale(scaled, scaled.Bounds(), t.glyphCanvas, t.glyphCanvas.Bounds(), draw.Src, nil)
	t.pixels.publish(scaled.Pix)
}

func (t *TextMode) drawGlyph(col, row int, ch byte, fg, bg [3]uint8) {
	glyph := font8x16[int(ch)*glyphHeight : int(ch)*glyphHeight+glyphHeight]
	baseX := col * glyphWidth
	baseY := row * glyphHeight
	canvas := t.glyphCanvas
	for gy := 0; gy < glyphHeight; gy++ {
		rowBits := glyph[gy]
		py := baseY + gy
		for gx := 0; gx < glyphWidth; gx++ {
			px := baseX + gx
			var c [3]uint8
			if rowBits&(0x80>>uint(gx)) != 0 {
				c = fg
			} else {
				c = bg
			}
			i := canvas.PixOffset(px, py)
			canvas.Pix[i] = c[0]
			canvas.Pix[i+1] = c[1]
			canvas.Pix[i+2] = c[2]
			canvas.Pix[i+3] = 0xFF
		}
	}
}
