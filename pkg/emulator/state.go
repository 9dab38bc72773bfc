package emulator

// Mode describes how the CPU currently executes
type Mode int

const (
	ModeRunning Mode = iota
	ModeHalted
	ModeStopped
)

func (m Mode) String() string {
	switch m {
	case ModeHalted:
		return "halted"
	case ModeStopped:
		return "stopped"
	default:
		return "running"
	}
}

// State holds the control bits an interrupt dispatcher reads and mutates
// between instructions.
//
// The CPU only ever sets Halted (HALT) and Stopped (STOP or an illegal
// opcode). Clearing them is up to the dispatcher or a reset.
type State struct {
	// IME is the Interrupt Master Enable flag
	IME     bool
	Halted  bool
	Stopped bool
}

// Mode reports the execution mode. Stopped takes precedence over Halted.
func (s State) Mode() Mode {
	switch {
	case s.Stopped:
		return ModeStopped
	case s.Halted:
		return ModeHalted
	default:
		return ModeRunning
	}
}
