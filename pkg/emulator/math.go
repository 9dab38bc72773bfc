package emulator

// offsetAddress adjusts a base address by a signed offset
//
// The offset is sign-extended to 16 bits and the sum wraps around the 64KiB
// address space.
func offsetAddress(base uint16, offset int8) uint16 {
	return base + uint16(int16(offset))
}

func readBitN(v byte, offset uint8) bool {
	return v&(1<<offset) > 0
}

func writeBitN(v byte, offset uint8, set bool) byte {
	if set {
		// Example [v] ORed 00100000 -> sets 5th bit to 1
		return v | (1 << offset)
	}
	// Example [v] ANDed 11011111 (negated) -> forces 5th bit to 0
	return v &^ (1 << offset)
}

// joinBytes combines a high and low byte into a 16 bit value
func joinBytes(hi, lo byte) uint16 {
	return uint16(hi)<<8 | uint16(lo)
}

// splitBytes returns the high and low byte of a 16 bit value
func splitBytes(v uint16) (hi, lo byte) {
	return byte(v >> 8), byte(v)
}
