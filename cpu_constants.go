// cpu_constants.go - RV32I opcode, funct3/funct7 and ABI register name tables

package main

// Opcode groups (instr[6:0]).
const (
	opOP     = 0x33 // R-type ALU
	opOPIMM  = 0x13 // I-type ALU
	opLOAD   = 0x03
	opSTORE  = 0x23
	opBRANCH = 0x63
	opLUI    = 0x37
	opAUIPC  = 0x17
	opJAL    = 0x6F
	opJALR   = 0x67
	opSYSTEM = 0x73
)

// funct3 selectors shared by OP and OP-IMM.
const (
	f3ADDSUB = 0x0
	f3SLL    = 0x1
	f3SLT    = 0x2
	f3SLTU   = 0x3
	f3XOR    = 0x4
	f3SRLSRA = 0x5
	f3OR     = 0x6
	f3AND    = 0x7
)

// funct3 selectors for LOAD.
const (
	f3LB  = 0x0
	f3LH  = 0x1
	f3LW  = 0x2
	f3LBU = 0x4
	f3LHU = 0x5
)

// funct3 selectors for STORE.
const (
	f3SB = 0x0
	f3SH = 0x1
	f3SW = 0x2
)

// funct3 selectors for BRANCH.
const (
	f3BEQ  = 0x0
	f3BNE  = 0x1
	f3BLT  = 0x4
	f3BGE  = 0x5
	f3BLTU = 0x6
	f3BGEU = 0x7
)

// funct7 discriminators.
const (
	f7ADDorSRL = 0x00
	f7SUBorSRA = 0x20
)

// registerNames holds the RISC-V calling-convention ABI mnemonic for each
// of the 32 integer registers, used only for disassembly/register dumps.
var registerNames = [32]string{
	"zero", "ra", "sp", "gp", "tp", "t0", "t1", "t2",
	"s0", "s1", "a0", "a1", "a2", "a3", "a4", "a5",
	"a6", "a7", "s2", "s3", "s4", "s5", "s6", "s7",
	"s8", "s9", "s10", "s11", "t3", "t4", "t5", "t6",
}
