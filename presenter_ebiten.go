// presenter_ebiten.go - Optional windowed host presenter
//
// Grounded on the teacher's own EbitenOutput (video_backend_ebiten.go): a
// Game implementation that owns an *ebiten.Image, refreshed from whatever
// buffer the emulation side last published. Unlike the teacher's backend,
// this presenter never feeds keyboard/clipboard events back to the guest —
// spec.md's Non-goals explicitly exclude any host-to-guest input path, so
// Update only polls for frames and watches for the window closing.

package main

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
)

// presenter is the host side of the worker/presenter split (spec.md §5): it
// asks the Executive for a frame once per Ebiten tick, converts whatever
// comes back to RGBA, and blits it into the window.
type presenter struct {
	ctrl   chan<- CtrlCommand
	screen <-chan ScreenMsg

	img *ebiten.Image
}

func newPresenter(ctrl chan<- CtrlCommand, screen <-chan ScreenMsg) *presenter {
	return &presenter{
		ctrl:   ctrl,
		screen: screen,
		img:    ebiten.NewImage(SCREEN_WIDTH, SCREEN_HEIGHT),
	}
}

func (p *presenter) Update() error {
	if ebiten.IsWindowBeingClosed() {
		select {
		case p.ctrl <- CtrlStop:
		default:
		}
		return ebiten.Termination
	}

	select {
	case p.ctrl <- CtrlRequestFrame:
	default:
		// control channel is full (worker hasn't drained earlier requests); skip this tick
		return nil
	}

	select {
	case msg := <-p.screen:
		p.img.WritePixels(toRGBA(msg))
	default:
	}
	return nil
}

func (p *presenter) Draw(screen *ebiten.Image) {
	screen.DrawImage(p.img, nil)
}

func (p *presenter) Layout(_, _ int) (int, int) {
	return SCREEN_WIDTH, SCREEN_HEIGHT
}

// toRGBA normalizes a ScreenMsg to an RGBA8888 byte slice the size of the
// window: TextMode frames are already RGBA; FrameBuffer frames are RGB565
// and need expanding per channel, per spec.md §4.8's framebuffer-mode note.
func toRGBA(msg ScreenMsg) []byte {
	if msg.Type == ScreenTextMode {
		return msg.Data
	}
	out := make([]byte, SCREEN_WIDTH*SCREEN_HEIGHT*4)
	for i := 0; i < SCREEN_WIDTH*SCREEN_HEIGHT; i++ {
		lo := msg.Data[i*2]
		hi := msg.Data[i*2+1]
		pixel := uint16(lo) | uint16(hi)<<8
		r5 := (pixel >> 11) & 0x1F
		g6 := (pixel >> 5) & 0x3F
		b5 := pixel & 0x1F
		out[i*4+0] = byte(r5<<3 | r5>>2)
		out[i*4+1] = byte(g6<<2 | g6>>4)
		out[i*4+2] = byte(b5<<3 | b5>>2)
		out[i*4+3] = 0xFF
	}
	return out
}

// runGUI opens a window and drives the presenter until the window is
// closed; it never returns an error for a clean close.
func runGUI(ctrl chan<- CtrlCommand, screen <-chan ScreenMsg) error {
	ebiten.SetWindowSize(SCREEN_WIDTH, SCREEN_HEIGHT)
	ebiten.SetWindowTitle("RV32I Simulator")
	ebiten.SetWindowResizable(true)
	ebiten.SetWindowClosingHandled(true)
	if err := ebiten.RunGame(newPresenter(ctrl, screen)); err != nil && err != ebiten.Termination {
		return fmt.Errorf("gui presenter: %w", err)
	}
	return nil
}
