// disasm.go - Informational per-instruction disassembly
//
// Disassembly never touches CPU state: it re-decodes the already-fetched
// instruction word from scratch and formats a one-line mnemonic, matching
// the style (and the "cycle: mnemonic (0xhex) pc: 0xhex" layout) of
// original_source/src/cpu.rs's own verbose tracing.

package main

import "fmt"

func printDisasm(cycle uint64, instr uint32, pcAfter uint32) {
	fmt.Printf("%d: %s (0x%08X) pc: 0x%08X\n", cycle, emphasize(disassemble(instr)), instr, pcAfter)
}

func disassemble(instr uint32) string {
	opcode := instr & 0x7F
	rd := (instr >> 7) & 0x1F
	funct3 := (instr >> 12) & 0x7
	rs1 := (instr >> 15) & 0x1F
	rs2 := (instr >> 20) & 0x1F
	funct7 := (instr >> 25) & 0x7F
	rn := func(i uint32) string { return registerNames[i] }

	switch opcode {
	case opOP:
		switch funct3 {
		case f3ADDSUB:
			if funct7 == f7SUBorSRA {
				return fmt.Sprintf("sub %s, %s, %s", rn(rd), rn(rs1), rn(rs2))
			}
			return fmt.Sprintf("add %s, %s, %s", rn(rd), rn(rs1), rn(rs2))
		case f3SLL:
			return fmt.Sprintf("sll %s, %s, %s", rn(rd), rn(rs1), rn(rs2))
		case f3SLT:
			return fmt.Sprintf("slt %s, %s, %s", rn(rd), rn(rs1), rn(rs2))
		case f3SLTU:
			return fmt.Sprintf("sltu %s, %s, %s", rn(rd), rn(rs1), rn(rs2))
		case f3XOR:
			return fmt.Sprintf("xor %s, %s, %s", rn(rd), rn(rs1), rn(rs2))
		case f3SRLSRA:
			if funct7 == f7SUBorSRA {
				return fmt.Sprintf("sra %s, %s, %s", rn(rd), rn(rs1), rn(rs2))
			}
			return fmt.Sprintf("srl %s, %s, %s", rn(rd), rn(rs1), rn(rs2))
		case f3OR:
			return fmt.Sprintf("or %s, %s, %s", rn(rd), rn(rs1), rn(rs2))
		case f3AND:
			return fmt.Sprintf("and %s, %s, %s", rn(rd), rn(rs1), rn(rs2))
		}
	case opOPIMM:
		imm := int32(signExtend((instr>>20)&0xFFF, 12))
		switch funct3 {
		case f3ADDSUB:
			return fmt.Sprintf("addi %s, %s, %d", rn(rd), rn(rs1), imm)
		case f3SLT:
			return fmt.Sprintf("slti %s, %s, %d", rn(rd), rn(rs1), imm)
		case f3SLTU:
			return fmt.Sprintf("sltiu %s, %s, %d", rn(rd), rn(rs1), imm)
		case f3XOR:
			return fmt.Sprintf("xori %s, %s, %d", rn(rd), rn(rs1), imm)
		case f3OR:
			return fmt.Sprintf("ori %s, %s, %d", rn(rd), rn(rs1), imm)
		case f3AND:
			return fmt.Sprintf("andi %s, %s, %d", rn(rd), rn(rs1), imm)
		case f3SLL:
			return fmt.Sprintf("slli %s, %s, %d", rn(rd), rn(rs1), (instr>>20)&0x1F)
		case f3SRLSRA:
			if funct7 == f7SUBorSRA {
				return fmt.Sprintf("srai %s, %s, %d", rn(rd), rn(rs1), (instr>>20)&0x1F)
			}
			return fmt.Sprintf("srli %s, %s, %d", rn(rd), rn(rs1), (instr>>20)&0x1F)
		}
	case opLOAD:
		imm := int32(signExtend((instr>>20)&0xFFF, 12))
		names := map[uint32]string{f3LB: "lb", f3LH: "lh", f3LW: "lw", f3LBU: "lbu", f3LHU: "lhu"}
		return fmt.Sprintf("%s %s, %d(%s)", names[funct3], rn(rd), imm, rn(rs1))
	case opSTORE:
		immLo := (instr >> 7) & 0x1F
		immHi := (instr >> 25) & 0x7F
		imm := int32(signExtend((immHi<<5)|immLo, 12))
		names := map[uint32]string{f3SB: "sb", f3SH: "sh", f3SW: "sw"}
		return fmt.Sprintf("%s %s, %d(%s)", names[funct3], rn(rs2), imm, rn(rs1))
	case opBRANCH:
		names := map[uint32]string{f3BEQ: "beq", f3BNE: "bne", f3BLT: "blt", f3BGE: "bge", f3BLTU: "bltu", f3BGEU: "bgeu"}
		return fmt.Sprintf("%s %s, %s", names[funct3], rn(rs1), rn(rs2))
	case opLUI:
		return fmt.Sprintf("lui %s, 0x%X", rn(rd), (instr&0xFFFFF000)>>12)
	case opAUIPC:
		return fmt.Sprintf("auipc %s, 0x%X", rn(rd), (instr&0xFFFFF000)>>12)
	case opJAL:
		return fmt.Sprintf("jal %s", rn(rd))
	case opJALR:
		return fmt.Sprintf("jalr %s, %s", rn(rd), rn(rs1))
	case opSYSTEM:
		return "ecall/ebreak"
	case 0x0:
		return "nop"
	}
	return fmt.Sprintf("unknown(0x%02X)", opcode)
}
