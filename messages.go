// messages.go - Host<->worker control message contract (spec.md §4.8, §5)

package main

// CtrlCommand is sent from the host presenter to the CPU worker on the
// control channel.
type CtrlCommand int

const (
	CtrlRequestFrame CtrlCommand = iota
	CtrlStop
)

// ScreenType tags a frame snapshot's pixel encoding.
type ScreenType int

const (
	ScreenTextMode ScreenType = iota
	ScreenFrameBuffer
)

// ScreenMsg is sent from the CPU worker to the host presenter on the
// screen channel in response to CtrlRequestFrame: either a pre-rendered
// RGBA buffer (TextMode) or a raw RGB565 buffer of exactly
// SCREEN_WIDTH*SCREEN_HEIGHT*2 bytes (FrameBuffer).
type ScreenMsg struct {
	Type ScreenType
	Data []byte
}
