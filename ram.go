// ram.go - Byte-addressable linear memory device

package main

import (
	"encoding/binary"
	"fmt"
)

// RAM is a fixed-size, little-endian byte store. Out-of-range access is a
// fatal panic: the Bus is expected to have already gated accesses to this
// region's size, so an out-of-bounds offset here is an invariant violation,
// not a recoverable condition (spec.md §7).
type RAM struct {
	data []byte
}

// NewRAM allocates size bytes, all zeroed.
func NewRAM(size uint32) *RAM {
	return &RAM{data: make([]byte, size)}
}

// Size reports the RAM's byte length, for registering it on the Bus.
func (r *RAM) Size() uint32 { return uint32(len(r.data)) }

func (r *RAM) Read(size uint8, offset uint32) uint32 {
	switch size {
	case 1:
		return uint32(r.data[offset])
	case 2:
		return uint32(binary.LittleEndian.Uint16(r.data[offset : offset+2]))
	case 4:
		return binary.LittleEndian.Uint32(r.data[offset : offset+4])
	default:
		panic(fmt.Sprintf("ram: invalid read size %d", size))
	}
}

func (r *RAM) Write(size uint8, offset uint32, value uint32) error {
	switch size {
	case 1:
		r.data[offset] = byte(value)
	case 2:
		binary.LittleEndian.PutUint16(r.data[offset:offset+2], uint16(value))
	case 4:
		binary.LittleEndian.PutUint32(r.data[offset:offset+4], value)
	default:
		return ErrRejected
	}
	return nil
}

// LoadWords writes a sequence of 32-bit words sequentially starting at
// offset 0, little-endian within each word, per spec.md §6's program image
// format.
func (r *RAM) LoadWords(words []uint32) {
	for i, w := range words {
		binary.LittleEndian.PutUint32(r.data[i*4:i*4+4], w)
	}
}
