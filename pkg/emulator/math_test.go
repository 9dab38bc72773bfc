package emulator

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_offsetAddress(t *testing.T) {
	type args struct {
		base   uint16
		offset int8
	}
	tests := []struct {
		name string
		args args
		want uint16
	}{
		{
			name: "can increment address",
			args: args{
				base:   100,
				offset: 10,
			},
			want: 110,
		},
		{
			name: "can decrement address",
			args: args{
				base:   100,
				offset: -10,
			},
			want: 90,
		},
		{
			name: "retains address if offset is zero",
			args: args{
				base:   100,
				offset: 0,
			},
			want: 100,
		},
		{
			name: "can decrement by the smallest offset",
			args: args{
				base:   0x0200,
				offset: -128,
			},
			want: 0x0180,
		},
		{
			name: "wraps below zero",
			args: args{
				base:   0x0001,
				offset: -2,
			},
			want: 0xFFFF,
		},
		{
			name: "wraps above 0xFFFF",
			args: args{
				base:   0xFFFF,
				offset: 127,
			},
			want: 0x007E,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := offsetAddress(tt.args.base, tt.args.offset); got != tt.want {
				t.Errorf("offsetAddress() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestWriteBitN(t *testing.T) {
	for offset := uint8(0); offset < 8; offset++ {
		set := writeBitN(0x00, offset, true)
		require.Equal(t, byte(1)<<offset, set)
		require.True(t, readBitN(set, offset))

		cleared := writeBitN(0xFF, offset, false)
		require.Equal(t, ^(byte(1) << offset), cleared)
		require.False(t, readBitN(cleared, offset))
	}
}

func TestJoinAndSplitBytes(t *testing.T) {
	require.Equal(t, uint16(0x1234), joinBytes(0x12, 0x34))

	hi, lo := splitBytes(0xBEEF)
	require.Equal(t, byte(0xBE), hi)
	require.Equal(t, byte(0xEF), lo)
}
