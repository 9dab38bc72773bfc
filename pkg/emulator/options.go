package emulator

import (
	"github.com/sema/lr35902/pkg/ptr"
)

type options struct {
	postBoot            bool
	programCounter      *uint16
	stackPointer        *uint16
	maxSteps            uint64
	trace               bool
	serialDataCallback  SerialDataCallback
	instructionCallback func(mnemonic string, pc uint16)
}

// Option configures an Emulator
type Option func(*options)

// WithPostBootState starts from the register values the boot ROM leaves
// behind instead of all zeroes.
func WithPostBootState() Option {
	return func(o *options) {
		o.postBoot = true
	}
}

// WithProgramCounter overrides the initial program counter
func WithProgramCounter(pc uint16) Option {
	return func(o *options) {
		o.programCounter = ptr.UInt16(pc)
	}
}

// WithStackPointer overrides the initial stack pointer
func WithStackPointer(sp uint16) Option {
	return func(o *options) {
		o.stackPointer = ptr.UInt16(sp)
	}
}

// WithMaxSteps makes Run give up after n instructions. Zero means no limit.
func WithMaxSteps(n uint64) Option {
	return func(o *options) {
		o.maxSteps = n
	}
}

// WithTrace logs every executed instruction at debug level
func WithTrace() Option {
	return func(o *options) {
		o.trace = true
	}
}

// WithSerialDataCallback receives every byte sent over the serial port
func WithSerialDataCallback(callback SerialDataCallback) Option {
	return func(o *options) {
		o.serialDataCallback = callback
	}
}

// WithInstructionCallback is called before every executed instruction
func WithInstructionCallback(callback func(mnemonic string, pc uint16)) Option {
	return func(o *options) {
		o.instructionCallback = callback
	}
}
