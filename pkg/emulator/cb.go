package emulator

// Rotate/shift operations selected by bits 5-3 of CB 0x00-0x3F
const (
	shiftRLC = iota
	shiftRRC
	shiftRL
	shiftRR
	shiftSLA
	shiftSRA
	shiftSWAP
	shiftSRL
)

var shiftMnemonics = [8]string{"RLC", "RRC", "RL", "RR", "SLA", "SRA", "SWAP", "SRL"}

// shift rotates or shifts v by one position and returns the result together
// with the bit shifted out. SWAP exchanges nibbles and never carries.
func shift(op int, v byte, carryIn bool) (result byte, carryOut bool) {
	switch op {
	case shiftRLC:
		return v<<1 | v>>7, readBitN(v, 7)
	case shiftRRC:
		return v>>1 | v<<7, readBitN(v, 0)
	case shiftRL:
		return v<<1 | boolToByte(carryIn), readBitN(v, 7)
	case shiftRR:
		return v>>1 | boolToByte(carryIn)<<7, readBitN(v, 0)
	case shiftSLA:
		return v << 1, readBitN(v, 7)
	case shiftSRA:
		// bit 7 keeps its value
		return v>>1 | v&0x80, readBitN(v, 0)
	case shiftSWAP:
		return v<<4 | v>>4, false
	default: // shiftSRL
		return v >> 1, readBitN(v, 0)
	}
}

// rotateA implements RLCA, RRCA, RLA and RRA. Unlike their CB counterparts
// they always reset Z.
func (c *CPU) rotateA(op int) {
	result, carry := shift(op, c.Registers.A, c.Registers.F.Carry)
	c.Registers.A = result
	c.Registers.setFlags(false, false, false, carry)
}

// executeCB runs the instruction following the 0xCB prefix
//
//	7 6   5 4 3   2 1 0
//	family  b/op  operand (B, C, D, E, H, L, (HL), A)
//
// family 0 - rotate/shift selected by bits 5-3
// family 1 - BIT b
// family 2 - RES b
// family 3 - SET b
func (c *CPU) executeCB(opcode byte) {
	target := c.registerOperand(opcode)
	b := (opcode >> 3) & 0x07
	v := c.read8(target)

	switch opcode >> 6 {
	case 0:
		result, carry := shift(int(b), v, c.Registers.F.Carry)
		c.write8(target, result)
		c.Registers.setFlags(result == 0, false, false, carry)
	case 1:
		// BIT b: z=true if the b'th bit is unset, carry not affected
		c.Registers.Write1(flagZ, !readBitN(v, b))
		c.Registers.Write1(flagN, false)
		c.Registers.Write1(flagH, true)
	case 2:
		c.write8(target, writeBitN(v, b, false))
	case 3:
		c.write8(target, writeBitN(v, b, true))
	}
}
