package emulator

import (
	"fmt"
)

// Instruction is the static description of an opcode
type Instruction struct {
	Opcode   string
	Mnemonic string
	// Size of instruction in bytes (opcode, CB prefix included, + operands)
	Size uint16
	// Cycles in T-cycles. Conditional control transfers list two values: the
	// cost when the branch is taken and when it is not.
	Cycles []int
}

// Illegal is true for opcodes without semantics. Executing one stops the CPU.
func (inst Instruction) Illegal() bool {
	return inst.Mnemonic == "ILLEGAL"
}

// CyclesFor returns the T-cycles spent executing the instruction
func (inst Instruction) CyclesFor(branchTaken bool) int {
	if len(inst.Cycles) > 1 && !branchTaken {
		return inst.Cycles[1]
	}
	return inst.Cycles[0]
}

func (inst Instruction) String() string {
	return fmt.Sprintf("[%9s] %s", inst.Opcode, inst.Mnemonic)
}

var instructions [256]Instruction
var cbInstructions [256]Instruction

// Lookup returns the static description of a base opcode
func Lookup(opcode byte) Instruction {
	return instructions[opcode]
}

// LookupCB returns the static description of the opcode following a 0xCB prefix
func LookupCB(opcode byte) Instruction {
	return cbInstructions[opcode]
}

var operandNames = [8]string{"B", "C", "D", "E", "H", "L", "(HL)", "A"}
var pairNames = [4]string{"BC", "DE", "HL", "SP"}
var stackPairNames = [4]string{"BC", "DE", "HL", "AF"}
var indirectNames = [4]string{"(BC)", "(DE)", "(HL+)", "(HL-)"}

func define(opcode byte, mnemonic string, size uint16, cycles ...int) {
	instructions[opcode] = Instruction{
		Opcode:   fmt.Sprintf("%#02x", opcode),
		Mnemonic: mnemonic,
		Size:     size,
		Cycles:   cycles,
	}
}

func init() {
	// regular blocks of 0x00-0x3F
	for i := byte(0); i < 8; i++ {
		name := operandNames[i]
		cost := 4
		if i == 6 {
			cost = 12
		}
		define(i<<3|0x04, "INC "+name, 1, cost)
		define(i<<3|0x05, "DEC "+name, 1, cost)
		if i == 6 {
			define(i<<3|0x06, "LD (HL),d8", 2, 12)
		} else {
			define(i<<3|0x06, "LD "+name+",d8", 2, 8)
		}
	}
	for i := byte(0); i < 4; i++ {
		define(i<<4|0x01, "LD "+pairNames[i]+",d16", 3, 12)
		define(i<<4|0x02, "LD "+indirectNames[i]+",A", 1, 8)
		define(i<<4|0x03, "INC "+pairNames[i], 1, 8)
		define(i<<4|0x09, "ADD HL,"+pairNames[i], 1, 8)
		define(i<<4|0x0A, "LD A,"+indirectNames[i], 1, 8)
		define(i<<4|0x0B, "DEC "+pairNames[i], 1, 8)
	}

	define(0x00, "NOP", 1, 4)
	define(0x07, "RLCA", 1, 4)
	define(0x08, "LD (a16),SP", 3, 20)
	define(0x0F, "RRCA", 1, 4)
	define(0x10, "STOP", 2, 4)
	define(0x17, "RLA", 1, 4)
	define(0x18, "JR r8", 2, 12)
	define(0x1F, "RRA", 1, 4)
	define(0x27, "DAA", 1, 4)
	define(0x2F, "CPL", 1, 4)
	define(0x37, "SCF", 1, 4)
	define(0x3F, "CCF", 1, 4)
	for i := byte(0); i < 4; i++ {
		define(0x20|i<<3, "JR "+conditionNames[i]+",r8", 2, 12, 8)
	}

	// 0x40-0x7F: LD r,r'
	for op := 0x40; op <= 0x7F; op++ {
		dst, src := (op>>3)&0x07, op&0x07
		cost := 4
		if dst == 6 || src == 6 {
			cost = 8
		}
		define(byte(op), "LD "+operandNames[dst]+","+operandNames[src], 1, cost)
	}
	define(0x76, "HALT", 1, 4)

	// 0x80-0xBF: ALU A,r
	for op := 0x80; op <= 0xBF; op++ {
		alu, src := (op>>3)&0x07, op&0x07
		cost := 4
		if src == 6 {
			cost = 8
		}
		define(byte(op), aluMnemonics[alu]+" A,"+operandNames[src], 1, cost)
	}

	// 0xC0-0xFF
	for i := byte(0); i < 4; i++ {
		cond := conditionNames[i]
		define(0xC0|i<<3, "RET "+cond, 1, 20, 8)
		define(0xC2|i<<3, "JP "+cond+",a16", 3, 16, 12)
		define(0xC4|i<<3, "CALL "+cond+",a16", 3, 24, 12)
		define(0xC1|i<<4, "POP "+stackPairNames[i], 1, 12)
		define(0xC5|i<<4, "PUSH "+stackPairNames[i], 1, 16)
	}
	for i := byte(0); i < 8; i++ {
		define(0xC6|i<<3, aluMnemonics[i]+" A,d8", 2, 8)
		define(0xC7|i<<3, fmt.Sprintf("RST %02XH", rstVector(i)), 1, 16)
	}
	define(0xC3, "JP a16", 3, 16)
	define(0xC9, "RET", 1, 16)
	define(0xCB, "PREFIX CB", 1, 4)
	define(0xCD, "CALL a16", 3, 24)
	define(0xD9, "RETI", 1, 16)
	define(0xE0, "LDH (a8),A", 2, 12)
	define(0xE2, "LD (C),A", 1, 8)
	define(0xE8, "ADD SP,r8", 2, 16)
	define(0xE9, "JP HL", 1, 4)
	define(0xEA, "LD (a16),A", 3, 16)
	define(0xF0, "LDH A,(a8)", 2, 12)
	define(0xF2, "LD A,(C)", 1, 8)
	define(0xF3, "DI", 1, 4)
	define(0xF8, "LD HL,SP+r8", 2, 12)
	define(0xF9, "LD SP,HL", 1, 8)
	define(0xFA, "LD A,(a16)", 3, 16)
	define(0xFB, "EI", 1, 4)

	for _, op := range illegalOpcodes {
		define(op, "ILLEGAL", 1, 4)
	}

	// CB prefixed
	for op := 0; op <= 0xFF; op++ {
		b, src := (op>>3)&0x07, op&0x07
		var mnemonic string
		switch op >> 6 {
		case 0:
			mnemonic = shiftMnemonics[b] + " " + operandNames[src]
		case 1:
			mnemonic = fmt.Sprintf("BIT %d,%s", b, operandNames[src])
		case 2:
			mnemonic = fmt.Sprintf("RES %d,%s", b, operandNames[src])
		case 3:
			mnemonic = fmt.Sprintf("SET %d,%s", b, operandNames[src])
		}

		cost := 8
		if src == 6 {
			// BIT only reads (HL), everything else writes it back
			cost = 16
			if op>>6 == 1 {
				cost = 12
			}
		}

		cbInstructions[op] = Instruction{
			Opcode:   fmt.Sprintf("0xcb %#02x", op),
			Mnemonic: mnemonic,
			Size:     2,
			Cycles:   []int{cost},
		}
	}
}

// illegalOpcodes have no semantics on the real CPU
var illegalOpcodes = []byte{0xD3, 0xDB, 0xDD, 0xE3, 0xE4, 0xEB, 0xEC, 0xED, 0xF4, 0xFC, 0xFD}
