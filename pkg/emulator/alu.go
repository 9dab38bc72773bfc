package emulator

// ALU operations selected by bits 5-3 of the 0x80-0xBF block and of the
// immediate variants (0xC6, 0xCE, ..., 0xFE)
const (
	aluADD = iota
	aluADC
	aluSUB
	aluSBC
	aluAND
	aluXOR
	aluOR
	aluCP
)

var aluMnemonics = [8]string{"ADD", "ADC", "SUB", "SBC", "AND", "XOR", "OR", "CP"}

func boolToByte(v bool) byte {
	if v {
		return 1
	}
	return 0
}

// alu applies one of the eight accumulator operations to A and n
func (c *CPU) alu(op int, n byte) {
	a := c.Registers.A
	carry := boolToByte(c.Registers.F.Carry)

	switch op {
	case aluADD:
		c.Registers.A = c.add8(a, n, 0)
	case aluADC:
		c.Registers.A = c.add8(a, n, carry)
	case aluSUB:
		c.Registers.A = c.sub8(a, n, 0)
	case aluSBC:
		c.Registers.A = c.sub8(a, n, carry)
	case aluAND:
		c.Registers.A = a & n
		c.Registers.setFlags(c.Registers.A == 0, false, true, false)
	case aluXOR:
		c.Registers.A = a ^ n
		c.Registers.setFlags(c.Registers.A == 0, false, false, false)
	case aluOR:
		c.Registers.A = a | n
		c.Registers.setFlags(c.Registers.A == 0, false, false, false)
	case aluCP:
		// CP is SUB without storing the result
		c.sub8(a, n, 0)
	}
}

// add8 adds b and an incoming carry (0 or 1) to a.
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Set if the low nibbles carry into bit 4.
//	C - Set if the sum carries out of bit 7.
func (c *CPU) add8(a, b, carry byte) byte {
	sum := uint16(a) + uint16(b) + uint16(carry)
	halfCarry := (a&0x0F)+(b&0x0F)+carry > 0x0F
	result := byte(sum)

	c.Registers.setFlags(result == 0, false, halfCarry, sum > 0xFF)
	return result
}

// sub8 subtracts b and an incoming borrow (0 or 1) from a.
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Set.
//	H - Set if the low nibble of a is smaller than the low nibble of b plus borrow.
//	C - Set if a is smaller than b plus borrow.
func (c *CPU) sub8(a, b, borrow byte) byte {
	halfBorrow := int(a&0x0F) < int(b&0x0F)+int(borrow)
	fullBorrow := int(a) < int(b)+int(borrow)
	result := a - b - borrow

	c.Registers.setFlags(result == 0, true, halfBorrow, fullBorrow)
	return result
}

// increment n by 1. Carry is not affected.
func (c *CPU) increment(n byte) byte {
	result := n + 1
	c.Registers.Write1(flagZ, result == 0)
	c.Registers.Write1(flagN, false)
	c.Registers.Write1(flagH, (n&0x0F)+1 > 0x0F)
	return result
}

// decrement n by 1. Carry is not affected.
func (c *CPU) decrement(n byte) byte {
	result := n - 1
	c.Registers.Write1(flagZ, result == 0)
	c.Registers.Write1(flagN, true)
	c.Registers.Write1(flagH, n&0x0F < 1)
	return result
}

// addHL adds nn to HL.
//
// Flags affected:
//
//	Z - Not affected.
//	N - Reset.
//	H - Set if carry from bit 11.
//	C - Set if carry from bit 15.
func (c *CPU) addHL(nn uint16) {
	hl := c.Registers.Read16(registerHL)
	sum := uint32(hl) + uint32(nn)

	c.Registers.Write1(flagN, false)
	c.Registers.Write1(flagH, (hl&0x0FFF)+(nn&0x0FFF) > 0x0FFF)
	c.Registers.Write1(flagC, sum > 0xFFFF)
	c.Registers.Write16(registerHL, uint16(sum))
}

// addSPOffset returns SP plus a signed displacement, as used by ADD SP,e and
// LD HL,SP+e. The carries are those of the unsigned addition of the low byte
// of SP and the displacement byte.
//
// Flags affected:
//
//	Z - Reset.
//	N - Reset.
//	H - Set if carry from bit 3.
//	C - Set if carry from bit 7.
func (c *CPU) addSPOffset(offset int8) uint16 {
	sp := c.Registers.SP
	e := uint16(byte(offset))

	halfCarry := (sp&0x000F)+(e&0x000F) > 0x000F
	carry := (sp&0x00FF)+(e&0x00FF) > 0x00FF
	c.Registers.setFlags(false, false, halfCarry, carry)

	return offsetAddress(sp, offset)
}

// decimalAdjust corrects A into packed BCD after an addition or subtraction
//
//	DAA
//
// Flags affected:
//
//	Z - Set if A is zero.
//	N - Not affected.
//	H - Reset.
//	C - Set or kept according to the correction applied.
func (c *CPU) decimalAdjust() {
	a := c.Registers.A
	f := &c.Registers.F

	if !f.Subtract {
		// the high digit test looks at A before the low digit correction
		if f.Carry || a > 0x99 {
			a += 0x60
			f.Carry = true
		}
		if f.HalfCarry || a&0x0F > 0x09 {
			a += 0x06
		}
	} else {
		if f.Carry {
			a -= 0x60
		}
		if f.HalfCarry {
			a -= 0x06
		}
	}

	c.Registers.A = a
	f.Zero = a == 0
	f.HalfCarry = false
}
