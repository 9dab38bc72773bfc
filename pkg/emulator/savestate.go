package emulator

import (
	"bytes"
	"encoding/binary"

	"github.com/cespare/xxhash"
	"github.com/pkg/errors"
)

// Save state layout
//
//	offset  size  field
//	0       4     magic "SM83"
//	4       1     version
//	5       8     A F B C D E H L
//	13      2     SP (little-endian)
//	15      2     PC (little-endian)
//	17      1     state: bit 0 IME, bit 1 Halted, bit 2 Stopped
//	18      8     xxhash64 of bytes 0-17 (little-endian)
const (
	saveStateVersion = 1
	saveStateBody    = 18
	saveStateSize    = saveStateBody + 8
)

var saveStateMagic = []byte("SM83")

var ErrCorruptSaveState = errors.New("corrupt save state")

// MarshalBinary serializes the registers and CPU state verbatim
func (c *CPU) MarshalBinary() ([]byte, error) {
	buf := make([]byte, saveStateSize)
	copy(buf, saveStateMagic)
	buf[4] = saveStateVersion

	r := &c.Registers
	copy(buf[5:13], []byte{r.A, r.F.Byte(), r.B, r.C, r.D, r.E, r.H, r.L})
	binary.LittleEndian.PutUint16(buf[13:15], r.SP)
	binary.LittleEndian.PutUint16(buf[15:17], r.PC)

	var state byte
	state = writeBitN(state, 0, c.State.IME)
	state = writeBitN(state, 1, c.State.Halted)
	state = writeBitN(state, 2, c.State.Stopped)
	buf[17] = state

	binary.LittleEndian.PutUint64(buf[saveStateBody:], xxhash.Sum64(buf[:saveStateBody]))
	return buf, nil
}

// UnmarshalBinary restores registers and CPU state. The CPU is left untouched
// if data is not a valid save state.
func (c *CPU) UnmarshalBinary(data []byte) error {
	if len(data) != saveStateSize {
		return errors.Wrapf(ErrCorruptSaveState, "expected %d bytes but got %d", saveStateSize, len(data))
	}
	if !bytes.Equal(data[:4], saveStateMagic) {
		return errors.Wrap(ErrCorruptSaveState, "bad magic")
	}
	if data[4] != saveStateVersion {
		return errors.Wrapf(ErrCorruptSaveState, "unsupported version %d", data[4])
	}
	sum := binary.LittleEndian.Uint64(data[saveStateBody:])
	if sum != xxhash.Sum64(data[:saveStateBody]) {
		return errors.Wrap(ErrCorruptSaveState, "checksum mismatch")
	}

	c.Registers = Registers{
		A: data[5], F: FlagsFromByte(data[6]),
		B: data[7], C: data[8],
		D: data[9], E: data[10],
		H: data[11], L: data[12],
		SP: binary.LittleEndian.Uint16(data[13:15]),
		PC: binary.LittleEndian.Uint16(data[15:17]),
	}
	c.State = State{
		IME:     readBitN(data[17], 0),
		Halted:  readBitN(data[17], 1),
		Stopped: readBitN(data[17], 2),
	}
	return nil
}
