package emulator

// stackPush decrements SP by two and stores v at the new SP, low byte first
func (c *CPU) stackPush(v uint16) {
	c.Registers.SP -= 2
	write16(c.bus, c.Registers.SP, v)
}

// stackPop loads the word at SP and increments SP by two
func (c *CPU) stackPop() uint16 {
	v := read16(c.bus, c.Registers.SP)
	c.Registers.SP += 2
	return v
}

// call pushes the address of the next instruction and continues at target
func (c *CPU) call(target uint16) {
	c.stackPush(c.Registers.PC)
	c.Registers.PC = target
}

// ret continues at the address popped from the stack
func (c *CPU) ret() {
	c.Registers.PC = c.stackPop()
}

// jump sets PC to target if the condition holds. The operands have already
// been consumed by the caller.
func (c *CPU) jump(target uint16, cond *condition) {
	if cond != nil && !c.isConditionMet(*cond) {
		return
	}
	c.BranchTaken = true
	c.Registers.PC = target
}

// jumpRelative adds a signed displacement to PC if the condition holds
func (c *CPU) jumpRelative(offset int8, cond *condition) {
	c.jump(offsetAddress(c.Registers.PC, offset), cond)
}

func (c *CPU) callIf(target uint16, cond *condition) {
	if cond != nil && !c.isConditionMet(*cond) {
		return
	}
	c.BranchTaken = true
	c.call(target)
}

func (c *CPU) retIf(cond *condition) {
	if cond != nil && !c.isConditionMet(*cond) {
		return
	}
	c.BranchTaken = true
	c.ret()
}
