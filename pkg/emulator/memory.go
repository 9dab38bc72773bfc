package emulator

import (
	"io/ioutil"

	"github.com/pkg/errors"
	"github.com/prometheus/common/log"
)

const (
	bytes08k = 0x2000
	bytes16k = bytes08k * 2
	bytes32k = bytes16k * 2
	bytes64k = bytes32k * 2
)

// Bus is the address space the CPU reads from and writes to. Implementations
// own memory mapped I/O, banking and arbitration.
type Bus interface {
	Read8(address uint16) byte
	Write8(address uint16, v byte)
}

// read16 reads a little-endian word, low byte at the lower address
func read16(bus Bus, address uint16) uint16 {
	lo := bus.Read8(address)
	hi := bus.Read8(address + 1)
	return joinBytes(hi, lo)
}

// write16 writes a little-endian word, low byte at the lower address
func write16(bus Bus, address uint16, v uint16) {
	hi, lo := splitBytes(v)
	bus.Write8(address, lo)
	bus.Write8(address+1, hi)
}

// Memory is a flat 64KiB address space. The serial port (0xFF01-0xFF02) and
// the interrupt registers (0xFF0F, 0xFFFF) are routed to their controllers,
// everything else is plain RAM.
type Memory struct {
	// Data contains the entire addressable memory
	Data []byte

	serial    *serialController
	interrupt *interruptController
}

func newMemory(serial *serialController, interrupt *interruptController) *Memory {
	return &Memory{
		Data:      make([]byte, bytes64k),
		serial:    serial,
		interrupt: interrupt,
	}
}

func (m *Memory) Read8(address uint16) byte {
	switch address {
	case 0xFF01, 0xFF02:
		return m.serial.Read8(address)
	case 0xFF0F, 0xFFFF:
		return m.interrupt.Read8(address)
	}
	return m.Data[address]
}

func (m *Memory) Write8(address uint16, v byte) {
	switch address {
	case 0xFF01, 0xFF02:
		m.serial.Write8(address, v)
	case 0xFF0F, 0xFFFF:
		m.interrupt.Write8(address, v)
	default:
		m.Data[address] = v
	}
}

// Load copies a program image into memory starting at origin
func (m *Memory) Load(origin uint16, program []byte) error {
	if int(origin)+len(program) > bytes64k {
		return errors.Errorf("program of %d bytes does not fit at %#04x", len(program), origin)
	}

	copy(m.Data[origin:], program)
	return nil
}

// LoadProgram reads a raw program image from disk and places it at origin
func (m *Memory) LoadProgram(path string, origin uint16) error {
	log.Infof("loading program at %s", path)

	program, err := ioutil.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, "failed to read program %s", path)
	}
	if len(program) == 0 {
		return errors.Errorf("program %s is empty", path)
	}
	if err := m.Load(origin, program); err != nil {
		return errors.Wrapf(err, "failed to load program %s", path)
	}

	log.Infof("Loaded %d bytes from %s at %#04x", len(program), path, origin)
	return nil
}
