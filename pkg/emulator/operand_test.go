package emulator

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRegisterOperand(t *testing.T) {
	cpu, _ := newTestCPU()
	cpu.Registers.Write16(registerHL, 0xC123)

	want := []register8{registerB, registerC, registerD, registerE, registerH, registerL}
	for index, register := range want {
		l := cpu.registerOperand(byte(index))
		require.Equal(t, locationReg8, l.Type)
		require.Equal(t, register, l.Register8)
	}

	l := cpu.registerOperand(6)
	require.Equal(t, locationMemory, l.Type)
	require.Equal(t, uint16(0xC123), l.Address)

	l = cpu.registerOperand(7)
	require.Equal(t, registerA, l.Register8)

	// only the low 3 bits select the operand
	require.Equal(t, cpu.registerOperand(2), cpu.registerOperand(0xFA))
}

func TestPairOperands(t *testing.T) {
	pairs := []register16{registerBC, registerDE, registerHL, registerSP}
	stackPairs := []register16{registerBC, registerDE, registerHL, registerAF}
	for index := range pairs {
		require.Equal(t, pairs[index], pairOperand(byte(index)).Register16)
		require.Equal(t, stackPairs[index], stackPairOperand(byte(index)).Register16)
	}
}

func TestIndirectOperand(t *testing.T) {
	cpu, _ := newTestCPU()
	cpu.Registers.Write16(registerBC, 0x1111)
	cpu.Registers.Write16(registerDE, 0x2222)
	cpu.Registers.Write16(registerHL, 0x3333)

	tests := []struct {
		index   byte
		address uint16
		wantHL  uint16
	}{
		{index: 0, address: 0x1111, wantHL: 0x3333},
		{index: 1, address: 0x2222, wantHL: 0x3333},
		{index: 2, address: 0x3333, wantHL: 0x3334},
		{index: 3, address: 0x3333, wantHL: 0x3332},
	}
	for _, tt := range tests {
		cpu.Registers.Write16(registerHL, 0x3333)
		l := cpu.indirectOperand(tt.index)
		require.Equal(t, locationMemory, l.Type)
		require.Equal(t, tt.address, l.Address)

		cpu.finish(l)
		require.Equal(t, tt.wantHL, cpu.Registers.Read16(registerHL))
	}
}

func TestLocationSeesLatestValue(t *testing.T) {
	cpu, memory := newTestCPU()
	l := memoryOperand(0xC000)

	cpu.write8(l, 0x10)
	require.Equal(t, byte(0x10), cpu.read8(l))
	memory.Data[0xC000] = 0x20
	require.Equal(t, byte(0x20), cpu.read8(l))

	cpu.write16(l, 0xBEEF)
	require.Equal(t, []byte{0xEF, 0xBE}, memory.Data[0xC000:0xC002])
	require.Equal(t, uint16(0xBEEF), cpu.read16(l))
}

func TestWrongWidthPanics(t *testing.T) {
	cpu, _ := newTestCPU()

	require.Panics(t, func() { cpu.read8(pairOperand(0)) })
	require.Panics(t, func() { cpu.write16(cpu.registerOperand(0), 0) })
}

func TestConditionAndVectorOperands(t *testing.T) {
	require.Equal(t, condition{Flag: flagZ, Negate: true}, conditionOperand(0))
	require.Equal(t, condition{Flag: flagZ}, conditionOperand(1))
	require.Equal(t, condition{Flag: flagC, Negate: true}, conditionOperand(2))
	require.Equal(t, condition{Flag: flagC}, conditionOperand(3))

	for index := byte(0); index < 8; index++ {
		require.Equal(t, uint16(index)*8, rstVector(index))
	}
}

func TestLocationString(t *testing.T) {
	cpu, _ := newTestCPU()
	cpu.Registers.Write16(registerHL, 0xC123)

	require.Equal(t, "B", cpu.registerOperand(0).String())
	require.Equal(t, "(C123)", cpu.registerOperand(6).String())
	require.Equal(t, "SP", pairOperand(3).String())
	require.Equal(t, "AF", stackPairOperand(3).String())
}

func TestWrongWidthPanicNamesTheLocation(t *testing.T) {
	cpu, _ := newTestCPU()

	require.PanicsWithValue(t, "unexpected reg16 location BC encountered while reading 8bit value", func() {
		cpu.read8(pairOperand(0))
	})
	require.PanicsWithValue(t, "unexpected reg8 location A encountered while writing 16bit value", func() {
		cpu.write16(cpu.registerOperand(7), 0)
	})
}
