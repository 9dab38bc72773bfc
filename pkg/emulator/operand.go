package emulator

import (
	"fmt"
)

type locationType int

// Operand locations
//
// A location is resolved once per instruction and names where an operand
// lives, not its value. Reads and writes go through the cpu accessors so an
// instruction that reads and then writes the same operand (INC (HL), RL B)
// always sees the latest value.
const (
	// locationReg8 is an 8bit register, stored in Register8
	locationReg8 locationType = iota

	// locationReg16 is a 16bit register or register pair, stored in Register16
	locationReg16

	// locationMemory is the byte (or little-endian word) at Address
	locationMemory
)

var locationTypeNames = map[locationType]string{
	locationReg8:   "reg8",
	locationReg16:  "reg16",
	locationMemory: "memory",
}

func (l locationType) String() string {
	name, ok := locationTypeNames[l]
	if !ok {
		panic(fmt.Sprintf("unable to determine name of location (%d)", l))
	}

	return name
}

type location struct {
	Type       locationType
	Register8  register8
	Register16 register16
	Address    uint16

	// Some addressing modes increment/decrement HL once the memory access is
	// done (LD (HL+),A and friends). See finish.
	IncrementHL bool
	DecrementHL bool
}

func (l location) String() string {
	switch l.Type {
	case locationReg8:
		return l.Register8.String()
	case locationReg16:
		return l.Register16.String()
	default:
		return fmt.Sprintf("(%04X)", l.Address)
	}
}

// condition is a flag test used by conditional jumps, calls and returns
type condition struct {
	Flag   flag
	Negate bool
}

var conditions = [4]condition{
	{Flag: flagZ, Negate: true},  // NZ
	{Flag: flagZ, Negate: false}, // Z
	{Flag: flagC, Negate: true},  // NC
	{Flag: flagC, Negate: false}, // C
}

var conditionNames = [4]string{"NZ", "Z", "NC", "C"}

var rstVectors = [8]uint16{0x00, 0x08, 0x10, 0x18, 0x20, 0x28, 0x30, 0x38}

var operandRegisters = [8]register8{
	registerB, registerC, registerD, registerE, registerH, registerL, 0, registerA,
}

var operandPairs = [4]register16{registerBC, registerDE, registerHL, registerSP}

var operandStackPairs = [4]register16{registerBC, registerDE, registerHL, registerAF}

// registerOperand resolves a 3 bit register index: B, C, D, E, H, L, (HL), A
func (c *CPU) registerOperand(index byte) location {
	index &= 0x07
	if index == 6 {
		return location{Type: locationMemory, Address: c.Registers.Read16(registerHL)}
	}
	return location{Type: locationReg8, Register8: operandRegisters[index]}
}

// pairOperand resolves a 2 bit register pair index: BC, DE, HL, SP
func pairOperand(index byte) location {
	return location{Type: locationReg16, Register16: operandPairs[index&0x03]}
}

// stackPairOperand resolves a 2 bit register pair index for PUSH/POP: BC, DE, HL, AF
func stackPairOperand(index byte) location {
	return location{Type: locationReg16, Register16: operandStackPairs[index&0x03]}
}

// indirectOperand resolves a 2 bit index to the memory addressed by BC, DE,
// HL (then increment) or HL (then decrement).
func (c *CPU) indirectOperand(index byte) location {
	switch index & 0x03 {
	case 0:
		return location{Type: locationMemory, Address: c.Registers.Read16(registerBC)}
	case 1:
		return location{Type: locationMemory, Address: c.Registers.Read16(registerDE)}
	case 2:
		return location{Type: locationMemory, Address: c.Registers.Read16(registerHL), IncrementHL: true}
	default:
		return location{Type: locationMemory, Address: c.Registers.Read16(registerHL), DecrementHL: true}
	}
}

// memoryOperand is the byte at an absolute address
func memoryOperand(address uint16) location {
	return location{Type: locationMemory, Address: address}
}

func rstVector(index byte) uint16 {
	return rstVectors[index&0x07]
}

func conditionOperand(index byte) condition {
	return conditions[index&0x03]
}

func (c *CPU) read8(l location) byte {
	switch l.Type {
	case locationReg8:
		return c.Registers.Read8(l.Register8)
	case locationMemory:
		return c.bus.Read8(l.Address)
	default:
		panic(fmt.Sprintf("unexpected %s location %s encountered while reading 8bit value", l.Type, l))
	}
}

func (c *CPU) write8(l location, v byte) {
	switch l.Type {
	case locationReg8:
		c.Registers.Write8(l.Register8, v)
	case locationMemory:
		c.bus.Write8(l.Address, v)
	default:
		panic(fmt.Sprintf("unexpected %s location %s encountered while writing 8bit value", l.Type, l))
	}
}

func (c *CPU) read16(l location) uint16 {
	switch l.Type {
	case locationReg16:
		return c.Registers.Read16(l.Register16)
	case locationMemory:
		return read16(c.bus, l.Address)
	default:
		panic(fmt.Sprintf("unexpected %s location %s encountered while reading 16bit value", l.Type, l))
	}
}

func (c *CPU) write16(l location, v uint16) {
	switch l.Type {
	case locationReg16:
		c.Registers.Write16(l.Register16, v)
	case locationMemory:
		write16(c.bus, l.Address, v)
	default:
		panic(fmt.Sprintf("unexpected %s location %s encountered while writing 16bit value", l.Type, l))
	}
}

// finish applies the post access side effects of an addressing mode
func (c *CPU) finish(l location) {
	if !l.IncrementHL && !l.DecrementHL {
		return
	}

	address := c.Registers.Read16(registerHL)
	if l.IncrementHL {
		address++
	} else {
		address--
	}
	c.Registers.Write16(registerHL, address)
}

func (c *CPU) isConditionMet(cond condition) bool {
	met := c.Registers.Read1(cond.Flag)
	if cond.Negate {
		met = !met
	}
	return met
}
