package main

import "testing"

// Small instruction encoders, local to the test file: enough RV32I shapes
// to exercise the interpreter without pulling in an assembler dependency.

func encodeR(opcode, funct3, funct7, rd, rs1, rs2 uint32) uint32 {
	return funct7<<25 | rs2<<20 | rs1<<15 | funct3<<12 | rd<<7 | opcode
}

func encodeI(opcode, funct3, rd, rs1 uint32, imm int32) uint32 {
	return uint32(imm)<<20 | rs1<<15 | funct3<<12 | rd<<7 | opcode
}

func encodeS(opcode, funct3, rs1, rs2 uint32, imm int32) uint32 {
	u := uint32(imm)
	return (u>>5)<<25 | rs2<<20 | rs1<<15 | funct3<<12 | (u&0x1F)<<7 | opcode
}

func encodeB(funct3, rs1, rs2 uint32, imm int32) uint32 {
	u := uint32(imm)
	b12 := (u >> 12) & 1
	b11 := (u >> 11) & 1
	b10_5 := (u >> 5) & 0x3F
	b4_1 := (u >> 1) & 0xF
	return b12<<31 | b10_5<<25 | rs2<<20 | rs1<<15 | funct3<<12 | b4_1<<8 | b11<<7 | opBRANCH
}

func encodeU(opcode, rd, imm20 uint32) uint32 {
	return imm20<<12 | rd<<7 | opcode
}

func encodeJ(rd uint32, imm int32) uint32 {
	u := uint32(imm)
	b20 := (u >> 20) & 1
	b19_12 := (u >> 12) & 0xFF
	b11 := (u >> 11) & 1
	b10_1 := (u >> 1) & 0x3FF
	return b20<<31 | b10_1<<21 | b11<<20 | b19_12<<12 | rd<<7 | opJAL
}

func newTestCPU(words []uint32) *CPU {
	bus := NewBus()
	ram := NewRAM(RAM_SIZE)
	ram.LoadWords(words)
	bus.AddRegion(RAM_BASE, ram.Size(), ram)
	return NewCPU(bus, RAM_BASE)
}

func TestCPUAddi(t *testing.T) {
	// addi x1, x0, 5
	cpu := newTestCPU([]uint32{encodeI(opOPIMM, f3ADDSUB, 1, 0, 5)})
	cpu.Tick(false, 1, false)
	if got := cpu.ReadReg(1); got != 5 {
		t.Fatalf("x1 = %d, want 5", got)
	}
	if cpu.PC() != RAM_BASE+4 {
		t.Fatalf("pc = 0x%X, want 0x%X", cpu.PC(), RAM_BASE+4)
	}
}

func TestCPUAddiNegativeImmediateSignExtends(t *testing.T) {
	// addi x1, x0, -1
	cpu := newTestCPU([]uint32{encodeI(opOPIMM, f3ADDSUB, 1, 0, -1)})
	cpu.Tick(false, 1, false)
	if got := cpu.ReadReg(1); got != 0xFFFFFFFF {
		t.Fatalf("x1 = 0x%X, want 0xFFFFFFFF", got)
	}
}

func TestCPUX0AlwaysZero(t *testing.T) {
	// addi x0, x0, 5
	cpu := newTestCPU([]uint32{encodeI(opOPIMM, f3ADDSUB, 0, 0, 5)})
	cpu.Tick(false, 1, false)
	if got := cpu.ReadReg(0); got != 0 {
		t.Fatalf("x0 = %d, want 0", got)
	}
}

func TestCPUAddSub(t *testing.T) {
	cpu := newTestCPU([]uint32{
		encodeI(opOPIMM, f3ADDSUB, 1, 0, 10), // addi x1, x0, 10
		encodeI(opOPIMM, f3ADDSUB, 2, 0, 3),  // addi x2, x0, 3
		encodeR(opOP, f3ADDSUB, f7SUBorSRA, 3, 1, 2), // sub x3, x1, x2
	})
	cpu.Tick(false, 3, false)
	if got := cpu.ReadReg(3); got != 7 {
		t.Fatalf("x3 = %d, want 7", got)
	}
}

func TestCPUSignedVsUnsignedCompare(t *testing.T) {
	cpu := newTestCPU([]uint32{
		encodeI(opOPIMM, f3ADDSUB, 1, 0, -1), // x1 = 0xFFFFFFFF
		encodeI(opOPIMM, f3ADDSUB, 2, 0, 1),  // x2 = 1
		encodeR(opOP, f3SLT, 0, 3, 1, 2),     // slt x3, x1, x2  -> -1 < 1 => 1
		encodeR(opOP, f3SLTU, 0, 4, 1, 2),    // sltu x4, x1, x2 -> huge < 1 => 0
	})
	cpu.Tick(false, 4, false)
	if got := cpu.ReadReg(3); got != 1 {
		t.Fatalf("slt result = %d, want 1", got)
	}
	if got := cpu.ReadReg(4); got != 0 {
		t.Fatalf("sltu result = %d, want 0", got)
	}
}

func TestCPUShiftAmountMaskedToLow5Bits(t *testing.T) {
	cpu := newTestCPU([]uint32{
		encodeI(opOPIMM, f3ADDSUB, 1, 0, 1), // x1 = 1
		encodeI(opOPIMM, f3SLL, 2, 1, 33),   // slli x2, x1, 33&0x1F == 1 -> x2 = 2
	})
	cpu.Tick(false, 2, false)
	if got := cpu.ReadReg(2); got != 2 {
		t.Fatalf("shift amount not masked: x2 = %d, want 2", got)
	}
}

func TestCPUArithmeticWraps(t *testing.T) {
	cpu := newTestCPU([]uint32{
		encodeI(opOPIMM, f3ADDSUB, 1, 0, -1), // x1 = 0xFFFFFFFF
		encodeI(opOPIMM, f3ADDSUB, 2, 1, 1),  // addi x2, x1, 1 -> wraps to 0
	})
	cpu.Tick(false, 2, false)
	if got := cpu.ReadReg(2); got != 0 {
		t.Fatalf("addition did not wrap: x2 = 0x%X, want 0", got)
	}
}

func TestCPULoadStoreRoundTrip(t *testing.T) {
	cpu := newTestCPU([]uint32{
		encodeU(opLUI, 3, RAM_BASE>>12),                    // lui x3, RAM_BASE>>12
		encodeI(opOPIMM, f3ADDSUB, 1, 0, 123),             // addi x1, x0, 123
		encodeS(opSTORE, f3SW, 3, 1, 64),                   // sw x1, 64(x3)
		encodeI(opLOAD, f3LW, 2, 3, 64),                    // lw x2, 64(x3)
	})
	cpu.Tick(false, 4, false)
	if got := cpu.ReadReg(2); got != 123 {
		t.Fatalf("x2 = %d, want 123", got)
	}
}

func TestCPUBranchTaken(t *testing.T) {
	cpu := newTestCPU([]uint32{
		encodeI(opOPIMM, f3ADDSUB, 1, 0, 1), // addi x1, x0, 1
		encodeI(opOPIMM, f3ADDSUB, 2, 0, 1), // addi x2, x0, 1
		encodeB(f3BEQ, 1, 2, 8),             // beq x1, x2, +8 (skip next instr)
		encodeI(opOPIMM, f3ADDSUB, 3, 0, 99), // addi x3, x0, 99 (skipped)
		encodeI(opOPIMM, f3ADDSUB, 4, 0, 7),  // addi x4, x0, 7
	})
	cpu.Tick(false, 4, false)
	if got := cpu.ReadReg(3); got != 0 {
		t.Fatalf("branch not taken: x3 = %d, want 0 (untouched)", got)
	}
	if got := cpu.ReadReg(4); got != 7 {
		t.Fatalf("x4 = %d, want 7", got)
	}
}

func TestCPUJalLinksReturnAddress(t *testing.T) {
	cpu := newTestCPU([]uint32{
		encodeJ(1, 8), // jal x1, +8
	})
	cpu.Tick(false, 1, false)
	if got := cpu.ReadReg(1); got != RAM_BASE+4 {
		t.Fatalf("link register = 0x%X, want 0x%X", got, RAM_BASE+4)
	}
	if cpu.PC() != RAM_BASE+8 {
		t.Fatalf("pc = 0x%X, want 0x%X", cpu.PC(), RAM_BASE+8)
	}
}

func TestCPUMisalignedPCPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic on misaligned PC")
		}
	}()
	bus := NewBus()
	ram := NewRAM(RAM_SIZE)
	bus.AddRegion(RAM_BASE, ram.Size(), ram)
	cpu := NewCPU(bus, RAM_BASE+1)
	cpu.Tick(false, 1, false)
}

func TestCPUUnknownOpcodePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic on unknown opcode")
		}
	}()
	cpu := newTestCPU([]uint32{0x7F}) // opcode 0x7F is not a valid RV32I group
	cpu.Tick(false, 1, false)
}

func TestCPUTraceEmitsRegWrite(t *testing.T) {
	cpu := newTestCPU([]uint32{encodeI(opOPIMM, f3ADDSUB, 1, 0, 5)})
	events := cpu.Tick(false, 1, true)
	if len(events) != 1 || events[0].Kind != EventRegWrite || events[0].Reg != 1 || events[0].Value != 5 {
		t.Fatalf("unexpected trace events: %+v", events)
	}
}

func TestCPUTraceSuppressesRegWriteToX0(t *testing.T) {
	cpu := newTestCPU([]uint32{encodeI(opOPIMM, f3ADDSUB, 0, 0, 5)})
	events := cpu.Tick(false, 1, true)
	if len(events) != 0 {
		t.Fatalf("expected no events for a write to x0, got %+v", events)
	}
}

func TestCPUTraceFlowLinkForJalWithRd(t *testing.T) {
	cpu := newTestCPU([]uint32{encodeJ(1, 8)})
	events := cpu.Tick(false, 1, true)
	if len(events) != 1 || events[0].Kind != EventFlowLink || events[0].Reg != 1 {
		t.Fatalf("expected a single FlowLink event, got %+v", events)
	}
}

func TestCPUTraceFlowChangeForJalWithoutRd(t *testing.T) {
	cpu := newTestCPU([]uint32{encodeJ(0, 8)})
	events := cpu.Tick(false, 1, true)
	if len(events) != 1 || events[0].Kind != EventFlowChange {
		t.Fatalf("expected a single FlowChange event, got %+v", events)
	}
}
