package emulator

type serialRegister uint16

const (
	offsetSerialRegisters uint16 = 0xFF01
)

const (
	// Serial transfer data (read/write)
	registerFF01 serialRegister = 0xFF01

	// Serial transfer control (read/write)
	//
	// Bit 7 - Transfer Start Flag (0=No transfer is in progress or requested, 1=Transfer in progress, or requested)
	// Bit 0 - Shift Clock (0=External Clock, 1=Internal Clock)
	registerFF02 serialRegister = 0xFF02
)

type SerialDataCallback func(data uint8)

// serialController forwards bytes written to the serial port
//
// No external device is ever connected and there is no clock to pace the
// transfer, thus:
// a) A transfer happens as soon as the program starts one as master (bits 7 and 0 in 0xFF02)
// b) The incoming byte is always 0xFF
type serialController struct {
	// registers contains control and data registers mapped to 0xFF01 - 0xFF02
	registers []byte

	interrupt *interruptController

	// Callback is called (if set) on every byte that is transferred over the
	// serial port.
	Callback SerialDataCallback
}

func newSerialController(interrupt *interruptController) *serialController {
	return &serialController{
		registers: make([]byte, 0xFF02-0xFF01+1),
		interrupt: interrupt,
	}
}

// Read8 is exposed in the address space, and may be read by the program
func (s *serialController) Read8(address uint16) byte {
	switch address {
	case 0xFF01:
		return s.readRegister(registerFF01)
	case 0xFF02:
		return s.readRegister(registerFF02)
	}

	panic("read of unmapped SERIAL register")
}

// Write8 is exposed in the address space, and may be written to by the program
func (s *serialController) Write8(address uint16, v byte) {
	switch address {
	case 0xFF01:
		s.writeRegister(registerFF01, v)
	case 0xFF02:
		s.writeRegister(registerFF02, v)
		s.transfer()
	default:
		panic("write of unmapped SERIAL register")
	}
}

// transfer shifts out the data byte if a transfer was requested as master
func (s *serialController) transfer() {
	control := s.readRegister(registerFF02)
	isMaster := readBitN(control, 0)
	transferRequested := readBitN(control, 7)

	if !isMaster || !transferRequested {
		return
	}

	if s.Callback != nil {
		s.Callback(s.readRegister(registerFF01))
	}

	s.writeRegister(registerFF01, 0xFF)
	s.writeRegister(registerFF02, writeBitN(control, 7, false))
	s.interrupt.Request(interruptSerial)
}

func (s *serialController) readRegister(r serialRegister) byte {
	return s.registers[uint16(r)-offsetSerialRegisters]
}

func (s *serialController) writeRegister(r serialRegister, v byte) {
	s.registers[uint16(r)-offsetSerialRegisters] = v
}

func (s *serialController) String() string {
	return "SERIAL"
}
