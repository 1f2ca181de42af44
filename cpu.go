// cpu.go - RV32I fetch/decode/execute interpreter
//
// Per-instruction decode dispatch is a single big switch on opcode (spec.md
// §9: "monomorphic... for performance"), grounded on the same shape the
// original Rust interpreter uses (original_source/src/cpu.rs) and on the
// big-switch ExecNextInstruction in KTStephano-GVM/vm/exec.go.

package main

// CPU is an RV32I interpreter: 32 general registers (x0 hardwired to
// zero), a 32-bit program counter, a 64-bit retired-instruction counter,
// and an owned Bus for all memory traffic.
type CPU struct {
	regs   [32]uint32
	pc     uint32
	cycles uint64
	bus    *Bus
}

// NewCPU constructs an interpreter at the given entry point with all
// registers zeroed.
func NewCPU(bus *Bus, initialPC uint32) *CPU {
	return &CPU{pc: initialPC, bus: bus}
}

// ReadReg returns a register's value; register 0 always reads as zero.
func (c *CPU) ReadReg(i int) uint32 {
	if i == 0 {
		return 0
	}
	return c.regs[i]
}

func (c *CPU) writeReg(i int, value uint32) {
	if i != 0 {
		c.regs[i] = value
	}
}

// ReadMem is a host-side inspection helper (debugger/Executive use); it
// panics on bus failure exactly like the interpreter's own fetch/load path.
func (c *CPU) ReadMem(size uint8, addr uint32) uint32 {
	v, err := c.bus.Read(size, addr)
	if err != nil {
		panic(fatalf("memory read error at address 0x%08X: %v", addr, err))
	}
	return v
}

// PC reports the current program counter.
func (c *CPU) PC() uint32 { return c.pc }

// Cycles reports the retired-instruction count.
func (c *CPU) Cycles() uint64 { return c.cycles }

func signExtend(value uint32, bits uint) uint32 {
	shift := 32 - bits
	return uint32(int32(value<<shift) >> shift)
}

// Tick executes exactly batch instructions (fewer only if execution traps,
// which always panics rather than returning early: spec.md §7 treats every
// fatal condition as an abort, not a partial batch). When verbose, each
// retired instruction prints a disassembly line; when traceEnabled, the
// returned slice holds every Event emitted during the batch.
func (c *CPU) Tick(verbose bool, batch int, traceEnabled bool) []Event {
	var events []Event
	for i := 0; i < batch; i++ {
		events = append(events, c.step(verbose, traceEnabled)...)
	}
	return events
}

func (c *CPU) step(verbose bool, traceEnabled bool) []Event {
	if c.pc%4 != 0 {
		panic(fatalf("PC not aligned: 0x%08X", c.pc))
	}

	instr, err := c.bus.Read(4, c.pc)
	if err != nil {
		panic(fatalf("cycle %d: memory read error at PC 0x%08X: %v", c.cycles, c.pc, err))
	}

	opcode := instr & 0x7F
	rd := int((instr >> 7) & 0x1F)
	funct3 := (instr >> 12) & 0x7
	rs1 := int((instr >> 15) & 0x1F)
	rs2 := int((instr >> 20) & 0x1F)
	funct7 := (instr >> 25) & 0x7F

	var events []Event
	emitReg := func(reg int, value uint32) {
		if traceEnabled && reg != 0 {
			events = append(events, Event{PC: c.pc, Opcode: instr, Kind: EventRegWrite, Reg: uint8(reg), Value: value})
		}
	}

	pcBefore := c.pc
	pcChanged := false

	switch opcode {
	case opOP:
		a, b := c.ReadReg(rs1), c.ReadReg(rs2)
		var result uint32
		switch funct3 {
		case f3ADDSUB:
			if funct7 == f7SUBorSRA {
				result = a - b
			} else {
				result = a + b
			}
		case f3SLL:
			result = a << (b & 0x1F)
		case f3SLT:
			result = boolToU32(int32(a) < int32(b))
		case f3SLTU:
			result = boolToU32(a < b)
		case f3XOR:
			result = a ^ b
		case f3SRLSRA:
			shamt := b & 0x1F
			if funct7 == f7SUBorSRA {
				result = uint32(int32(a) >> shamt)
			} else {
				result = a >> shamt
			}
		case f3OR:
			result = a | b
		case f3AND:
			result = a & b
		default:
			panic(fatalf("unknown funct3 0x%X in OP at pc 0x%08X", funct3, c.pc))
		}
		c.writeReg(rd, result)
		emitReg(rd, result)

	case opOPIMM:
		imm := signExtend((instr>>20)&0xFFF, 12)
		a := c.ReadReg(rs1)
		var result uint32
		switch funct3 {
		case f3ADDSUB:
			result = a + imm
		case f3SLT:
			result = boolToU32(int32(a) < int32(imm))
		case f3SLTU:
			result = boolToU32(a < imm)
		case f3XOR:
			result = a ^ imm
		case f3OR:
			result = a | imm
		case f3AND:
			result = a & imm
		case f3SLL:
			shamt := (instr >> 20) & 0x1F
			result = a << shamt
		case f3SRLSRA:
			shamt := (instr >> 20) & 0x1F
			if funct7 == f7SUBorSRA {
				result = uint32(int32(a) >> shamt)
			} else {
				result = a >> shamt
			}
		default:
			panic(fatalf("unknown funct3 0x%X in OP-IMM at pc 0x%08X", funct3, c.pc))
		}
		c.writeReg(rd, result)
		emitReg(rd, result)

	case opLOAD:
		imm := signExtend((instr>>20)&0xFFF, 12)
		addr := c.ReadReg(rs1) + imm
		var result uint32
		var size uint8
		switch funct3 {
		case f3LB:
			size = 1
		case f3LH:
			size = 2
		case f3LW:
			size = 4
		case f3LBU:
			size = 1
		case f3LHU:
			size = 2
		default:
			panic(fatalf("unknown funct3 0x%X in LOAD at pc 0x%08X", funct3, c.pc))
		}
		raw, err := c.bus.Read(size, addr)
		if err != nil {
			panic(fatalf("cycle %d: memory read error at address 0x%08X from %s", c.cycles, addr, emphasize("load")))
		}
		switch funct3 {
		case f3LB:
			result = uint32(int32(int8(raw)))
		case f3LH:
			result = uint32(int32(int16(raw)))
		case f3LW:
			result = raw
		case f3LBU:
			result = raw & 0xFF
		case f3LHU:
			result = raw & 0xFFFF
		}
		c.writeReg(rd, result)
		emitReg(rd, result)
		if traceEnabled {
			events = append(events, Event{PC: c.pc, Opcode: instr, Kind: EventMemRead, Addr: addr, Value: raw})
		}

	case opSTORE:
		immLo := (instr >> 7) & 0x1F
		immHi := (instr >> 25) & 0x7F
		imm := signExtend((immHi<<5)|immLo, 12)
		addr := c.ReadReg(rs1) + imm
		rs2v := c.ReadReg(rs2)
		var size uint8
		var value uint32
		switch funct3 {
		case f3SB:
			size, value = 1, rs2v&0xFF
		case f3SH:
			size, value = 2, rs2v&0xFFFF
		case f3SW:
			size, value = 4, rs2v
		default:
			panic(fatalf("unknown funct3 0x%X in STORE at pc 0x%08X", funct3, c.pc))
		}
		if err := c.bus.Write(size, addr, value); err != nil {
			panic(fatalf("cycle %d: memory write error at address 0x%08X from %s", c.cycles, addr, emphasize("store")))
		}
		if traceEnabled {
			events = append(events, Event{PC: c.pc, Opcode: instr, Kind: EventMemWrite, Addr: addr, Value: value})
		}

	case opBRANCH:
		imm11 := (instr >> 7) & 0x1
		imm4_1 := (instr >> 8) & 0xF
		imm10_5 := (instr >> 25) & 0x3F
		imm12 := (instr >> 31) & 0x1
		imm := signExtend((imm12<<12)|(imm11<<11)|(imm10_5<<5)|(imm4_1<<1), 13)
		a, b := c.ReadReg(rs1), c.ReadReg(rs2)
		var taken bool
		switch funct3 {
		case f3BEQ:
			taken = a == b
		case f3BNE:
			taken = a != b
		case f3BLT:
			taken = int32(a) < int32(b)
		case f3BGE:
			taken = int32(a) >= int32(b)
		case f3BLTU:
			taken = a < b
		case f3BGEU:
			taken = a >= b
		default:
			panic(fatalf("unknown funct3 0x%X in BRANCH at pc 0x%08X", funct3, c.pc))
		}
		if taken {
			c.pc = c.pc + imm
			pcChanged = true
			if traceEnabled {
				events = append(events, Event{PC: pcBefore, Opcode: instr, Kind: EventFlowChange, NewPC: c.pc})
			}
		}

	case opLUI:
		result := instr & 0xFFFFF000
		c.writeReg(rd, result)
		emitReg(rd, result)

	case opAUIPC:
		result := c.pc + (instr & 0xFFFFF000)
		c.writeReg(rd, result)
		emitReg(rd, result)

	case opJAL:
		imm20 := (instr >> 31) & 0x1
		imm10_1 := (instr >> 21) & 0x3FF
		imm11 := (instr >> 20) & 0x1
		imm19_12 := (instr >> 12) & 0xFF
		imm := signExtend((imm20<<20)|(imm19_12<<12)|(imm11<<11)|(imm10_1<<1), 21)
		link := c.pc + 4
		c.pc = c.pc + imm
		pcChanged = true
		c.writeReg(rd, link)
		if traceEnabled {
			if rd != 0 {
				events = append(events, Event{PC: pcBefore, Opcode: instr, Kind: EventFlowLink, NewPC: c.pc, Reg: uint8(rd)})
			} else {
				events = append(events, Event{PC: pcBefore, Opcode: instr, Kind: EventFlowChange, NewPC: c.pc})
			}
		}

	case opJALR:
		imm := signExtend((instr>>20)&0xFFF, 12)
		target := (c.ReadReg(rs1) + imm) &^ 1
		link := c.pc + 4
		c.pc = target
		pcChanged = true
		c.writeReg(rd, link)
		if traceEnabled {
			if rd != 0 {
				events = append(events, Event{PC: pcBefore, Opcode: instr, Kind: EventFlowLink, NewPC: c.pc, Reg: uint8(rd)})
			} else {
				events = append(events, Event{PC: pcBefore, Opcode: instr, Kind: EventFlowChange, NewPC: c.pc})
			}
		}

	case opSYSTEM:
		panic(fatalf("ECALL/EBREAK not implemented at pc 0x%08X", c.pc))

	case 0x0:
		// NOP-shaped all-zero word; treated as a no-op rather than an
		// unknown-opcode fault so a zeroed/unwritten RAM region doesn't
		// immediately trap.

	default:
		panic(fatalf("unknown opcode 0x%02X at pc 0x%08X", opcode, c.pc))
	}

	if !pcChanged {
		c.pc = pcBefore + 4
	}

	if verbose {
		printDisasm(c.cycles, instr, c.pc)
	}

	c.cycles++

	return events
}

func boolToU32(b bool) uint32 {
	if b {
		return 1
	}
	return 0
}
