package emulator

import (
	"fmt"
	"strings"

	"github.com/prometheus/common/log"
)

// CPU executes instructions against a Bus, one instruction per Tick.
//
// Registers and State are exported so an interrupt dispatcher (or a save
// state loader) can read and mutate them between two ticks.
type CPU struct {
	Registers Registers
	State     State

	// BranchTaken is true if the last executed instruction was a control
	// transfer that actually transferred control. Used to pick the right
	// entry of Instruction.Cycles.
	BranchTaken bool

	// LastInstruction describes the instruction executed by the last Tick,
	// zero if the CPU was halted or stopped.
	LastInstruction Instruction

	bus Bus

	// fetched holds the bytes of the current instruction as they are read
	fetched []byte

	trace               bool
	instructionCallback func(mnemonic string, pc uint16)
}

// NewCPU returns a CPU with every register and state bit zeroed
func NewCPU(bus Bus) *CPU {
	return &CPU{bus: bus}
}

// ResetPostBoot loads the register values the DMG boot ROM leaves behind
func (c *CPU) ResetPostBoot() {
	c.Registers = Registers{
		A: 0x01, F: FlagsFromByte(0xB0),
		B: 0x00, C: 0x13,
		D: 0x00, E: 0xD8,
		H: 0x01, L: 0x4D,
		SP: 0xFFFE,
		PC: 0x0100,
	}
	c.State = State{}
}

func (c *CPU) fetch8() byte {
	v := c.bus.Read8(c.Registers.PC)
	c.Registers.PC++
	c.fetched = append(c.fetched, v)
	return v
}

func (c *CPU) fetch16() uint16 {
	lo := c.fetch8()
	hi := c.fetch8()
	return joinBytes(hi, lo)
}

// Tick executes exactly one instruction. A halted or stopped CPU does nothing
// until the dispatcher (or a reset) clears the state.
//
// Every byte of the instruction is read from the bus exactly once.
func (c *CPU) Tick() {
	c.BranchTaken = false
	c.LastInstruction = Instruction{}
	if c.State.Mode() != ModeRunning {
		return
	}

	c.fetched = c.fetched[:0]
	pc := c.Registers.PC
	opcode := c.fetch8()

	inst := instructions[opcode]
	var cbOpcode byte
	if opcode == 0xCB {
		cbOpcode = c.fetch8()
		inst = cbInstructions[cbOpcode]
	}
	c.LastInstruction = inst

	if c.instructionCallback != nil {
		c.instructionCallback(inst.Mnemonic, pc)
	}

	var before string
	if c.trace {
		before = c.Registers.String()
	}

	if opcode == 0xCB {
		c.executeCB(cbOpcode)
	} else {
		c.execute(opcode)
	}

	if c.trace {
		log.Debugf("Execute %#04x %-30s %s%s -> %s", pc, inst.String(), c.reprOperandValues(inst), before, c.Registers.F.String())
	}
}

// execute dispatches a fetched opcode, most specific encodings first
func (c *CPU) execute(opcode byte) {
	switch {
	case opcode == 0x76:
		// would otherwise decode as LD (HL),(HL)
		c.State.Halted = true
		return
	case opcode >= 0x40 && opcode <= 0x7F:
		// LD r,r'
		v := c.read8(c.registerOperand(opcode))
		c.write8(c.registerOperand(opcode>>3), v)
		return
	case opcode >= 0x80 && opcode <= 0xBF:
		// ALU A,r
		c.alu(int(opcode>>3)&0x07, c.read8(c.registerOperand(opcode)))
		return
	case opcode < 0x40:
		if c.executeLow(opcode) {
			return
		}
	default:
		if c.executeHigh(opcode) {
			return
		}
	}

	c.executeMisc(opcode)
}

// executeLow handles the regular encodings of 0x00-0x3F
func (c *CPU) executeLow(opcode byte) bool {
	switch opcode & 0x07 {
	case 0x04:
		// INC r
		target := c.registerOperand(opcode >> 3)
		c.write8(target, c.increment(c.read8(target)))
		return true
	case 0x05:
		// DEC r
		target := c.registerOperand(opcode >> 3)
		c.write8(target, c.decrement(c.read8(target)))
		return true
	case 0x06:
		// LD r,d8
		v := c.fetch8()
		c.write8(c.registerOperand(opcode>>3), v)
		return true
	}

	pair := (opcode >> 4) & 0x03
	switch opcode & 0x0F {
	case 0x01:
		// LD rr,d16
		c.write16(pairOperand(pair), c.fetch16())
	case 0x03:
		// INC rr
		target := pairOperand(pair)
		c.write16(target, c.read16(target)+1)
	case 0x0B:
		// DEC rr
		target := pairOperand(pair)
		c.write16(target, c.read16(target)-1)
	case 0x09:
		// ADD HL,rr
		c.addHL(c.read16(pairOperand(pair)))
	case 0x02:
		// LD (rr),A
		target := c.indirectOperand(pair)
		c.write8(target, c.Registers.A)
		c.finish(target)
	case 0x0A:
		// LD A,(rr)
		source := c.indirectOperand(pair)
		c.Registers.A = c.read8(source)
		c.finish(source)
	default:
		return false
	}
	return true
}

// executeHigh handles the regular encodings of 0xC0-0xFF
func (c *CPU) executeHigh(opcode byte) bool {
	switch opcode & 0x0F {
	case 0x01:
		// POP rr
		c.write16(stackPairOperand(opcode>>4), c.stackPop())
		return true
	case 0x05:
		// PUSH rr
		c.stackPush(c.read16(stackPairOperand(opcode >> 4)))
		return true
	}

	switch opcode & 0x07 {
	case 0x06:
		// ALU A,d8
		c.alu(int(opcode>>3)&0x07, c.fetch8())
		return true
	case 0x07:
		// RST n
		c.BranchTaken = true
		c.call(rstVector(opcode >> 3))
		return true
	}

	cond := conditionOperand(opcode >> 3)
	switch opcode & 0xE7 {
	case 0xC0:
		// RET cc
		c.retIf(&cond)
	case 0xC2:
		// JP cc,a16
		c.jump(c.fetch16(), &cond)
	case 0xC4:
		// CALL cc,a16
		c.callIf(c.fetch16(), &cond)
	default:
		return false
	}
	return true
}

// executeMisc handles every opcode without a regular encoding
func (c *CPU) executeMisc(opcode byte) {
	switch opcode {
	case 0x00:
		// NOP
	case 0x10:
		// STOP is followed by a padding byte
		c.fetch8()
		c.State.Stopped = true
	case 0x07:
		c.rotateA(shiftRLC)
	case 0x0F:
		c.rotateA(shiftRRC)
	case 0x17:
		c.rotateA(shiftRL)
	case 0x1F:
		c.rotateA(shiftRR)
	case 0x27:
		c.decimalAdjust()
	case 0x2F:
		// CPL
		c.Registers.A = ^c.Registers.A
		c.Registers.Write1(flagN, true)
		c.Registers.Write1(flagH, true)
	case 0x37:
		// SCF
		c.Registers.Write1(flagN, false)
		c.Registers.Write1(flagH, false)
		c.Registers.Write1(flagC, true)
	case 0x3F:
		// CCF
		c.Registers.Write1(flagN, false)
		c.Registers.Write1(flagH, false)
		c.Registers.Write1(flagC, !c.Registers.F.Carry)
	case 0x08:
		// LD (a16),SP
		c.write16(memoryOperand(c.fetch16()), c.Registers.SP)
	case 0x18:
		// JR r8
		c.jumpRelative(int8(c.fetch8()), nil)
	case 0x20, 0x28, 0x30, 0x38:
		// JR cc,r8
		offset := int8(c.fetch8())
		cond := conditionOperand(opcode >> 3)
		c.jumpRelative(offset, &cond)
	case 0xC3:
		// JP a16
		c.jump(c.fetch16(), nil)
	case 0xE9:
		// JP HL
		c.jump(c.Registers.Read16(registerHL), nil)
	case 0xC9:
		c.retIf(nil)
	case 0xD9:
		// RETI
		c.retIf(nil)
		c.State.IME = true
	case 0xCD:
		// CALL a16
		c.callIf(c.fetch16(), nil)
	case 0xE0:
		// LDH (a8),A
		c.write8(memoryOperand(0xFF00+uint16(c.fetch8())), c.Registers.A)
	case 0xF0:
		// LDH A,(a8)
		c.Registers.A = c.read8(memoryOperand(0xFF00 + uint16(c.fetch8())))
	case 0xE2:
		// LD (C),A
		c.write8(memoryOperand(0xFF00+uint16(c.Registers.C)), c.Registers.A)
	case 0xF2:
		// LD A,(C)
		c.Registers.A = c.read8(memoryOperand(0xFF00 + uint16(c.Registers.C)))
	case 0xEA:
		// LD (a16),A
		c.write8(memoryOperand(c.fetch16()), c.Registers.A)
	case 0xFA:
		// LD A,(a16)
		c.Registers.A = c.read8(memoryOperand(c.fetch16()))
	case 0xE8:
		// ADD SP,r8
		c.Registers.SP = c.addSPOffset(int8(c.fetch8()))
	case 0xF8:
		// LD HL,SP+r8
		c.Registers.Write16(registerHL, c.addSPOffset(int8(c.fetch8())))
	case 0xF9:
		// LD SP,HL
		c.Registers.SP = c.Registers.Read16(registerHL)
	case 0xF3:
		// DI
		c.State.IME = false
	case 0xFB:
		// EI
		c.State.IME = true
	default:
		log.Warnf("Illegal instruction %#02x at %#04x, stopping CPU", opcode, c.Registers.PC-1)
		c.State.Stopped = true
	}
}

// reprOperandValues renders the immediate operands of the instruction from the
// bytes fetched while executing it
func (c *CPU) reprOperandValues(inst Instruction) string {
	var builder strings.Builder
	operands := c.fetched
	if len(operands) > 0 {
		operands = operands[1:]
	}

	switch {
	case strings.Contains(inst.Mnemonic, "d16") || strings.Contains(inst.Mnemonic, "a16"):
		if len(operands) >= 2 {
			fmt.Fprintf(&builder, "nn= %#04x  ", joinBytes(operands[1], operands[0]))
		}
	case strings.Contains(inst.Mnemonic, "r8"):
		if len(operands) >= 1 {
			fmt.Fprintf(&builder, "e= %d  ", int8(operands[0]))
		}
	case strings.Contains(inst.Mnemonic, "d8") || strings.Contains(inst.Mnemonic, "a8"):
		if len(operands) >= 1 {
			fmt.Fprintf(&builder, "n= %#02x  ", operands[0])
		}
	}

	return builder.String()
}
