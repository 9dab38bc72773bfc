package emulator

import (
	"math/bits"
	"testing"

	"github.com/stretchr/testify/require"
)

// expectedShift is an independent rendition of the CB rotate/shift family
func expectedShift(op int, v byte, carryIn bool) (byte, bool) {
	var in byte
	if carryIn {
		in = 1
	}
	switch op {
	case shiftRLC:
		return bits.RotateLeft8(v, 1), v&0x80 != 0
	case shiftRRC:
		return bits.RotateLeft8(v, -1), v&0x01 != 0
	case shiftRL:
		return byte(uint16(v)<<1 | uint16(in)), v&0x80 != 0
	case shiftRR:
		return byte((uint16(in)<<8 | uint16(v)) >> 1), v&0x01 != 0
	case shiftSLA:
		return byte(uint16(v) << 1), v&0x80 != 0
	case shiftSRA:
		return byte(int8(v) >> 1), v&0x01 != 0
	case shiftSWAP:
		return bits.RotateLeft8(v, 4), false
	default:
		return v / 2, v&0x01 != 0
	}
}

func TestCBAllOpcodes(t *testing.T) {
	values := []byte{0x00, 0x01, 0x0F, 0x10, 0x5A, 0x7F, 0x80, 0xA5, 0xF0, 0xFF}

	for op := 0; op <= 0xFF; op++ {
		inst := LookupCB(byte(op))
		t.Run(inst.Mnemonic, func(t *testing.T) {
			family, b, src := op>>6, byte(op>>3)&0x07, byte(op)&0x07

			for _, v := range values {
				for _, carry := range []bool{false, true} {
					cpu, memory := newTestCPU(0xCB, byte(op))
					cpu.Registers = Registers{A: 0xA0, B: 0xB0, C: 0xC0, D: 0xD0, E: 0xE0, H: 0xC1, L: 0x23, SP: 0xFFFE, PC: testOrigin}
					initial := Flags{Subtract: true, Carry: carry}
					cpu.Registers.F = initial

					target := cpu.registerOperand(src)
					cpu.write8(target, v)
					before := cpu.Registers

					cpu.Tick()

					var got byte
					if src == 6 {
						got = memory.Data[0xC123]
					} else {
						got = cpu.Registers.Read8(operandRegisters[src])
					}

					want := v
					wantFlags := initial
					switch family {
					case 0:
						var carryOut bool
						want, carryOut = expectedShift(int(b), v, carry)
						wantFlags = Flags{Zero: want == 0, Carry: carryOut}
					case 1:
						wantFlags = Flags{Zero: v&(1<<b) == 0, HalfCarry: true, Carry: carry}
					case 2:
						want = v &^ (1 << b)
					case 3:
						want = v | 1<<b
					}

					require.Equal(t, want, got, "%s v=%#02x carry=%t", inst.Mnemonic, v, carry)
					require.Equal(t, wantFlags, cpu.Registers.F, "%s v=%#02x carry=%t", inst.Mnemonic, v, carry)

					// no other register changes
					before.PC += 2
					if src != 6 {
						before.Write8(operandRegisters[src], want)
					}
					before.F = wantFlags
					require.Equal(t, before, cpu.Registers)
				}
			}
		})
	}
}

func TestRotateAResetsZero(t *testing.T) {
	for _, op := range []int{shiftRLC, shiftRRC, shiftRL, shiftRR} {
		cpu, _ := newTestCPU()
		cpu.Registers.A = 0x00
		cpu.Registers.F = Flags{Zero: true, HalfCarry: true, Subtract: true}

		cpu.rotateA(op)

		require.Equal(t, byte(0x00), cpu.Registers.A)
		require.Equal(t, Flags{}, cpu.Registers.F)
	}
}

func TestCBShiftTableExamples(t *testing.T) {
	tests := []struct {
		name     string
		op       int
		v        byte
		carryIn  bool
		want     byte
		carryOut bool
	}{
		{name: "RLC carries bit 7 around", op: shiftRLC, v: 0x85, want: 0x0B, carryOut: true},
		{name: "RRC carries bit 0 around", op: shiftRRC, v: 0x01, want: 0x80, carryOut: true},
		{name: "RL shifts carry in", op: shiftRL, v: 0x80, carryIn: true, want: 0x01, carryOut: true},
		{name: "RR shifts carry in", op: shiftRR, v: 0x01, carryIn: true, want: 0x80, carryOut: true},
		{name: "SLA", op: shiftSLA, v: 0xFF, want: 0xFE, carryOut: true},
		{name: "SRA keeps bit 7", op: shiftSRA, v: 0x8A, want: 0xC5},
		{name: "SWAP", op: shiftSWAP, v: 0xF1, carryIn: true, want: 0x1F},
		{name: "SRL", op: shiftSRL, v: 0x01, want: 0x00, carryOut: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, carry := shift(tt.op, tt.v, tt.carryIn)
			require.Equal(t, tt.want, got)
			require.Equal(t, tt.carryOut, carry)
		})
	}
}
