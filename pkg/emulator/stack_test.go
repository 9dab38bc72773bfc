package emulator

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStackPushPopReturnsSameValue(t *testing.T) {
	cpu, _ := newTestCPU()
	cpu.Registers.SP = 0xFFFE

	cpu.stackPush(0x1234)
	cpu.stackPush(0x4321)
	require.Equal(t, uint16(0xFFFA), cpu.Registers.SP)

	require.Equal(t, uint16(0x4321), cpu.stackPop())
	require.Equal(t, uint16(0x1234), cpu.stackPop())
	require.Equal(t, uint16(0xFFFE), cpu.Registers.SP)
}

func TestStackPushStoresLowByteFirst(t *testing.T) {
	cpu, memory := newTestCPU()
	cpu.Registers.SP = 0xD000

	cpu.stackPush(0xBEEF)

	require.Equal(t, uint16(0xCFFE), cpu.Registers.SP)
	require.Equal(t, byte(0xEF), memory.Data[0xCFFE])
	require.Equal(t, byte(0xBE), memory.Data[0xCFFF])
}

func TestPushPopAllPairs(t *testing.T) {
	tests := []struct {
		name string
		push byte
		pop  byte
		pair register16
		v    uint16
		want uint16
	}{
		{name: "BC", push: 0xC5, pop: 0xC1, pair: registerBC, v: 0x1234, want: 0x1234},
		{name: "DE", push: 0xD5, pop: 0xD1, pair: registerDE, v: 0x5678, want: 0x5678},
		{name: "HL", push: 0xE5, pop: 0xE1, pair: registerHL, v: 0x9ABC, want: 0x9ABC},
		{name: "AF", push: 0xF5, pop: 0xF1, pair: registerAF, v: 0x12FF, want: 0x12F0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cpu, _ := newTestCPU(tt.push, tt.pop)
			cpu.Registers.Write16(tt.pair, tt.v)

			cpu.Tick()
			cpu.Registers.Write16(tt.pair, 0x0000)
			cpu.Tick()

			require.Equal(t, tt.want, cpu.Registers.Read16(tt.pair))
			require.Equal(t, uint16(0xFFFE), cpu.Registers.SP)
		})
	}
}

func TestStackWrapsAround(t *testing.T) {
	cpu, memory := newTestCPU()
	cpu.Registers.SP = 0x0001

	cpu.stackPush(0xABCD)

	require.Equal(t, uint16(0xFFFF), cpu.Registers.SP)
	require.Equal(t, byte(0xAB), memory.Data[0x0000])
	require.Equal(t, uint16(0xABCD), cpu.stackPop())
	require.Equal(t, uint16(0x0001), cpu.Registers.SP)
}

func TestJumpOnlyWhenConditionHolds(t *testing.T) {
	cpu, _ := newTestCPU()
	cpu.Registers.PC = 0x0200

	cpu.jump(0x3000, &condition{Flag: flagZ})
	require.Equal(t, uint16(0x0200), cpu.Registers.PC)
	require.False(t, cpu.BranchTaken)

	cpu.jump(0x3000, &condition{Flag: flagZ, Negate: true})
	require.Equal(t, uint16(0x3000), cpu.Registers.PC)
	require.True(t, cpu.BranchTaken)
}

func TestCallIfDoesNotTouchStackWhenNotTaken(t *testing.T) {
	cpu, _ := newTestCPU()
	cpu.Registers.SP = 0xD000
	cpu.Registers.PC = 0x0200

	cpu.callIf(0x3000, &condition{Flag: flagC})
	require.Equal(t, uint16(0xD000), cpu.Registers.SP)
	require.Equal(t, uint16(0x0200), cpu.Registers.PC)

	cpu.retIf(&condition{Flag: flagC})
	require.Equal(t, uint16(0xD000), cpu.Registers.SP)
	require.Equal(t, uint16(0x0200), cpu.Registers.PC)
}
