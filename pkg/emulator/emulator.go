package emulator

import (
	"context"

	"github.com/pkg/errors"
	"github.com/prometheus/common/log"
)

var (
	// ErrStepLimit is returned by Run when the configured step budget is used up
	ErrStepLimit = errors.New("step limit reached")

	// ErrHaltedForever is returned by Run when the CPU is halted and no
	// interrupt is pending. Nothing on this machine raises interrupts on its
	// own, so it would never wake up.
	ErrHaltedForever = errors.New("cpu halted with no interrupt pending")
)

// Emulator is one machine: a CPU, its memory and the interrupt dispatcher.
// Nothing is shared between two Emulator values.
type Emulator struct {
	CPU    *CPU
	Memory *Memory

	interrupt *interruptController
	options   options

	// Steps and Cycles count executed instructions and the T-cycles they took
	Steps  uint64
	Cycles uint64
}

func New(opts ...Option) *Emulator {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}

	interrupt := newInterruptController()
	serial := newSerialController(interrupt)
	serial.Callback = o.serialDataCallback
	memory := newMemory(serial, interrupt)

	cpu := NewCPU(memory)
	cpu.trace = o.trace
	cpu.instructionCallback = o.instructionCallback

	e := &Emulator{
		CPU:       cpu,
		Memory:    memory,
		interrupt: interrupt,
		options:   o,
	}
	e.Reset()
	return e
}

// Reset restores the initial register values and clears the CPU state
func (e *Emulator) Reset() {
	if e.options.postBoot {
		e.CPU.ResetPostBoot()
	} else {
		e.CPU.Registers = Registers{}
		e.CPU.State = State{}
	}
	if e.options.programCounter != nil {
		e.CPU.Registers.PC = *e.options.programCounter
	}
	if e.options.stackPointer != nil {
		e.CPU.Registers.SP = *e.options.stackPointer
	}
	e.Steps = 0
	e.Cycles = 0
}

// Step executes one instruction, then gives the interrupt dispatcher a chance
// to run. Returns the T-cycles the instruction took according to the static
// instruction table, or 4 for a halted or stopped CPU.
func (e *Emulator) Step() int {
	cycles := 4
	if e.CPU.State.Mode() == ModeRunning {
		e.CPU.Tick()
		cycles = e.CPU.LastInstruction.CyclesFor(e.CPU.BranchTaken)
		e.Steps++
	}

	if e.interrupt.Service(e.CPU) {
		// dispatching takes 5 M-cycles
		cycles += 20
	}

	e.Cycles += uint64(cycles)
	return cycles
}

// Run steps until the CPU stops, the context is cancelled, the step limit is
// reached, or the CPU halts with nothing left to wake it.
func (e *Emulator) Run(ctx context.Context) error {
	log.Infof("running from %#04x", e.CPU.Registers.PC)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		switch e.CPU.State.Mode() {
		case ModeStopped:
			log.Infof("CPU stopped at %#04x after %d steps", e.CPU.Registers.PC, e.Steps)
			return nil
		case ModeHalted:
			if e.interrupt.pending() == 0 {
				return ErrHaltedForever
			}
		}

		if e.options.maxSteps > 0 && e.Steps >= e.options.maxSteps {
			return errors.Wrapf(ErrStepLimit, "gave up after %d steps", e.Steps)
		}

		e.Step()
	}
}
