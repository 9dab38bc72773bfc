package emulator

type interruptSource uint8

const (
	interruptVBlank interruptSource = iota
	interruptLCD
	interruptTimer
	interruptSerial
	interruptJoypad
)

var interruptSourceNames = map[interruptSource]string{
	interruptVBlank: "V-Blank",
	interruptLCD:    "LCD STAT",
	interruptTimer:  "Timer",
	interruptSerial: "Serial",
	interruptJoypad: "Joypad",
}

func (s interruptSource) String() string {
	return interruptSourceNames[s]
}

// vector is the handler address the CPU jumps to when the source is serviced
func (s interruptSource) vector() uint16 {
	return 0x0040 + uint16(s)*8
}

// interruptController dispatches interrupts to the CPU between instructions
//
// The CPU itself never decides when an interrupt is serviced, it only exposes
// IME, Halted and PC/SP. This controller owns the two registers below and
// acts on that state.
//
// Interrupt Flag - 0xFF0F (read/write)
// Interrupt Enable - 0xFFFF (read/write)
//
// Bit 0: V-Blank  (INT 40h)
// Bit 1: LCD STAT (INT 48h)
// Bit 2: Timer    (INT 50h)
// Bit 3: Serial   (INT 58h)
// Bit 4: Joypad   (INT 60h)
type interruptController struct {
	interruptFlag    byte
	interruptEnabled byte
}

func newInterruptController() *interruptController {
	return &interruptController{}
}

// Read8 is exposed in the address space, and may be read by the program
func (i *interruptController) Read8(address uint16) byte {
	switch address {
	case 0xFF0F:
		// upper 3 bits are unused and read as 1
		return i.interruptFlag | 0xE0
	case 0xFFFF:
		return i.interruptEnabled
	}

	panic("read of unmapped INTERRUPT register")
}

// Write8 is exposed in the address space, and may be written to by the program
func (i *interruptController) Write8(address uint16, v byte) {
	switch address {
	case 0xFF0F:
		i.interruptFlag = v & 0x1F
	case 0xFFFF:
		i.interruptEnabled = v
	default:
		panic("write of unmapped INTERRUPT register")
	}
}

// Request marks an interrupt source as pending
func (i *interruptController) Request(source interruptSource) {
	i.interruptFlag = writeBitN(i.interruptFlag, uint8(source), true)
}

// pending returns the sources both requested and enabled
func (i *interruptController) pending() byte {
	return i.interruptFlag & i.interruptEnabled & 0x1F
}

// Service runs between two instructions. A pending interrupt always wakes a
// halted CPU, but is only dispatched when IME is set: IME is cleared, the
// flag of the highest priority source is acknowledged, PC is pushed and
// execution continues at the source's vector.
//
// A stopped CPU is left alone until a reset, requests stay pending.
//
// Returns true if an interrupt was dispatched.
func (i *interruptController) Service(c *CPU) bool {
	if c.State.Stopped {
		return false
	}

	pending := i.pending()
	if pending == 0 {
		return false
	}

	c.State.Halted = false
	if !c.State.IME {
		return false
	}

	for source := interruptVBlank; source <= interruptJoypad; source++ {
		if !readBitN(pending, uint8(source)) {
			continue
		}

		i.interruptFlag = writeBitN(i.interruptFlag, uint8(source), false)
		c.State.IME = false
		c.call(source.vector())
		return true
	}

	return false
}

func (i *interruptController) String() string {
	return "INTERRUPT"
}
