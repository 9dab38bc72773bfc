package emulator

import (
	"fmt"
)

type register8 uint8
type register16 uint8
type flag uint8

// 8 bit registers, numbered the way opcodes encode them. Index 6 is not a
// register but the byte at address HL (see registerOperand).
const (
	registerB register8 = 0
	registerC register8 = 1
	registerD register8 = 2
	registerE register8 = 3
	registerH register8 = 4
	registerL register8 = 5
	registerA register8 = 7
)

const (
	registerAF register16 = iota
	registerBC
	registerDE
	registerHL
	registerSP
	registerPC
)

// Flags as they are laid out in the packed F byte
const (
	flagC flag = 4 // Carry
	flagH flag = 5 // HalfCarry
	flagN flag = 6 // Subtract
	flagZ flag = 7 // Zero
)

var register8Names = map[register8]string{
	registerA: "A",
	registerB: "B",
	registerC: "C",
	registerD: "D",
	registerE: "E",
	registerH: "H",
	registerL: "L",
}

var register16Names = map[register16]string{
	registerAF: "AF",
	registerBC: "BC",
	registerDE: "DE",
	registerHL: "HL",
	registerSP: "SP",
	registerPC: "PC",
}

var flagNames = map[flag]string{
	flagZ: "Z",
	flagN: "N",
	flagH: "H",
	flagC: "C",
}

func (r register8) String() string {
	name, ok := register8Names[r]
	if !ok {
		panic(fmt.Sprintf("unable to determine name of register (%d)", r))
	}

	return name
}

func (r register16) String() string {
	name, ok := register16Names[r]
	if !ok {
		panic(fmt.Sprintf("unable to determine name of register (%d)", r))
	}

	return name
}

func (f flag) String() string {
	name, ok := flagNames[f]
	if !ok {
		panic(fmt.Sprintf("unable to determine name of flag (%d)", f))
	}

	return name
}

// Flags is the F register. Only the upper nibble of the packed byte is backed
// by storage, the lower nibble always reads as zero.
type Flags struct {
	Zero      bool
	Subtract  bool
	HalfCarry bool
	Carry     bool
}

// Byte packs the flags into their F register representation
func (f Flags) Byte() byte {
	var v byte
	v = writeBitN(v, uint8(flagZ), f.Zero)
	v = writeBitN(v, uint8(flagN), f.Subtract)
	v = writeBitN(v, uint8(flagH), f.HalfCarry)
	v = writeBitN(v, uint8(flagC), f.Carry)
	return v
}

// String lists the flags from Z to C, "-" for each flag that is unset
func (f Flags) String() string {
	packed := f.Byte()
	s := make([]byte, 0, 4)
	for _, fl := range []flag{flagZ, flagN, flagH, flagC} {
		if readBitN(packed, uint8(fl)) {
			s = append(s, fl.String()...)
		} else {
			s = append(s, '-')
		}
	}
	return string(s)
}

// FlagsFromByte unpacks an F register value. Bits 0-3 are discarded.
func FlagsFromByte(v byte) Flags {
	return Flags{
		Zero:      readBitN(v, uint8(flagZ)),
		Subtract:  readBitN(v, uint8(flagN)),
		HalfCarry: readBitN(v, uint8(flagH)),
		Carry:     readBitN(v, uint8(flagC)),
	}
}

// Registers contains every CPU visible register.
//
// The 8 bit registers may also be referenced in pairs as the 16 bit registers
// AF, BC, DE, and HL. The pairs are views: the first register of the pair is
// the high byte.
//
// Structure:
// 16bit Hi   Lo   Comment
// AF    A    F    Lower 4 bits of F always zero
// BC    B    C
// DE    D    E
// HL    H    L
// SP    -    -    Stack pointer. Can't be addressed in 8bit
// PC    -    -    Program counter. Can't be addressed in 8bit
type Registers struct {
	A, B, C, D, E, H, L byte
	F                   Flags

	SP uint16
	PC uint16
}

func (r *Registers) Read8(register register8) byte {
	switch register {
	case registerA:
		return r.A
	case registerB:
		return r.B
	case registerC:
		return r.C
	case registerD:
		return r.D
	case registerE:
		return r.E
	case registerH:
		return r.H
	case registerL:
		return r.L
	}

	panic(fmt.Sprintf("unable to read register (%d)", register))
}

func (r *Registers) Write8(register register8, v byte) {
	switch register {
	case registerA:
		r.A = v
	case registerB:
		r.B = v
	case registerC:
		r.C = v
	case registerD:
		r.D = v
	case registerE:
		r.E = v
	case registerH:
		r.H = v
	case registerL:
		r.L = v
	default:
		panic(fmt.Sprintf("unable to write register (%d)", register))
	}
}

func (r *Registers) Read16(register register16) uint16 {
	switch register {
	case registerAF:
		return joinBytes(r.A, r.F.Byte())
	case registerBC:
		return joinBytes(r.B, r.C)
	case registerDE:
		return joinBytes(r.D, r.E)
	case registerHL:
		return joinBytes(r.H, r.L)
	case registerSP:
		return r.SP
	case registerPC:
		return r.PC
	}

	panic(fmt.Sprintf("unable to read register (%d)", register))
}

func (r *Registers) Write16(register register16, v uint16) {
	hi, lo := splitBytes(v)
	switch register {
	case registerAF:
		r.A, r.F = hi, FlagsFromByte(lo)
	case registerBC:
		r.B, r.C = hi, lo
	case registerDE:
		r.D, r.E = hi, lo
	case registerHL:
		r.H, r.L = hi, lo
	case registerSP:
		r.SP = v
	case registerPC:
		r.PC = v
	default:
		panic(fmt.Sprintf("unable to write register (%d)", register))
	}
}

func (r *Registers) Read1(flag flag) bool {
	switch flag {
	case flagZ:
		return r.F.Zero
	case flagN:
		return r.F.Subtract
	case flagH:
		return r.F.HalfCarry
	case flagC:
		return r.F.Carry
	}

	panic(fmt.Sprintf("unable to read flag (%d)", flag))
}

func (r *Registers) Write1(flag flag, v bool) {
	switch flag {
	case flagZ:
		r.F.Zero = v
	case flagN:
		r.F.Subtract = v
	case flagH:
		r.F.HalfCarry = v
	case flagC:
		r.F.Carry = v
	default:
		panic(fmt.Sprintf("unable to write flag (%d)", flag))
	}
}

// setFlags overwrites all four flags at once
func (r *Registers) setFlags(z, n, h, c bool) {
	r.F = Flags{Zero: z, Subtract: n, HalfCarry: h, Carry: c}
}

// String renders the registers the way traces print them
func (r *Registers) String() string {
	return fmt.Sprintf("A=%02X F=%02X B=%02X C=%02X D=%02X E=%02X H=%02X L=%02X SP=%04X PC=%04X",
		r.A, r.F.Byte(), r.B, r.C, r.D, r.E, r.H, r.L, r.SP, r.PC)
}
