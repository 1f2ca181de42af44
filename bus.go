// bus.go - Address-range demultiplexer for memory-mapped devices
//
// The bus holds an ordered list of regions {base, size, device}. A sized
// read or write is forwarded to the first registered region whose range
// contains the target address, translated to a device-local offset.
// Regions are intentionally allowed to overlap: a narrow device region
// registered before RAM shadows it, which is how the Executive gives
// ScreenCSR/UART priority over the RAM region in spec.md §4.8. Lookup is a
// linear scan; region counts are small (single digits) so this beats any
// tree structure on constant factor alone.

package main

import (
	"errors"
	"fmt"
)

// Device is the uniform capability every bus participant implements.
// size is always 1, 2 or 4; offset is device-local (already translated
// from the guest address by the Bus).
type Device interface {
	Read(size uint8, offset uint32) uint32
	Write(size uint8, offset uint32, value uint32) error
}

var (
	// ErrUnmapped is returned when no region covers the requested address.
	ErrUnmapped = errors.New("bus: unmapped address")
	// ErrRejected is returned when a device refuses a write (bad size,
	// bad offset, read-only register, etc).
	ErrRejected = errors.New("bus: device rejected access")
)

// BusError carries the failing address/size alongside one of the sentinel
// errors above so callers can both errors.Is it and print a diagnostic.
type BusError struct {
	Op     string // "read" or "write"
	Size   uint8
	Addr   uint32
	Reason error
}

func (e *BusError) Error() string {
	return fmt.Sprintf("bus %s error: size=%d addr=0x%08X: %v", e.Op, e.Size, e.Addr, e.Reason)
}

func (e *BusError) Unwrap() error { return e.Reason }

type region struct {
	base   uint32
	size   uint32
	device Device
}

func (r region) contains(addr uint32) bool {
	return addr >= r.base && addr < r.base+r.size
}

// Bus routes sized guest-memory transactions to devices by address range.
type Bus struct {
	regions []region
}

// NewBus returns an empty bus. Call AddRegion to populate it before the
// first transaction; AddRegion is not safe to call concurrently with Read
// or Write.
func NewBus() *Bus {
	return &Bus{}
}

// AddRegion appends a new address range to the bus. Insertion order is the
// lookup priority: the first region whose range contains an address wins,
// even if a later region also covers it.
func (b *Bus) AddRegion(base, size uint32, device Device) {
	b.regions = append(b.regions, region{base: base, size: size, device: device})
}

func (b *Bus) find(addr uint32) *region {
	for i := range b.regions {
		if b.regions[i].contains(addr) {
			return &b.regions[i]
		}
	}
	return nil
}

// Read forwards a sized read to the first matching region.
func (b *Bus) Read(size uint8, addr uint32) (uint32, error) {
	r := b.find(addr)
	if r == nil {
		return 0, &BusError{Op: "read", Size: size, Addr: addr, Reason: ErrUnmapped}
	}
	return r.device.Read(size, addr-r.base), nil
}

// Write forwards a sized write to the first matching region.
func (b *Bus) Write(size uint8, addr uint32, value uint32) error {
	r := b.find(addr)
	if r == nil {
		return &BusError{Op: "write", Size: size, Addr: addr, Reason: ErrUnmapped}
	}
	if err := r.device.Write(size, addr-r.base, value); err != nil {
		return &BusError{Op: "write", Size: size, Addr: addr, Reason: err}
	}
	return nil
}
