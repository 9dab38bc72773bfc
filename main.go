package main

import (
	"context"
	"fmt"
	"io/ioutil"
	"os"
	"os/signal"
	"strconv"

	"github.com/alecthomas/kong"
	"github.com/pkg/errors"
	"github.com/prometheus/common/log"
	"github.com/sema/lr35902/pkg/emulator"
)

type runCmd struct {
	Origin    string `help:"Address the image is loaded at and execution starts from" default:"0x0100"`
	StackTop  string `help:"Initial stack pointer" default:"0xFFFE"`
	PostBoot  bool   `help:"Start from the register values the boot ROM leaves behind"`
	MaxSteps  uint64 `help:"Stop after this many instructions (0 = no limit)" default:"50000000"`
	Trace     bool   `help:"Log every executed instruction"`
	LoadState string `help:"Restore CPU registers and state from this file before running" type:"path"`
	SaveState string `help:"Write CPU registers and state to this file when done" type:"path"`

	Path string `arg:"" name:"path" help:"Path to raw program image" type:"path"`
}

func parseAddress(s string) (uint16, error) {
	v, err := strconv.ParseUint(s, 0, 16)
	if err != nil {
		return 0, errors.Wrapf(err, "invalid address %q", s)
	}
	return uint16(v), nil
}

func (r *runCmd) Run() error {
	origin, err := parseAddress(r.Origin)
	if err != nil {
		return err
	}
	sp, err := parseAddress(r.StackTop)
	if err != nil {
		return err
	}

	opts := []emulator.Option{
		emulator.WithProgramCounter(origin),
		emulator.WithStackPointer(sp),
		emulator.WithMaxSteps(r.MaxSteps),
		emulator.WithSerialDataCallback(func(data uint8) {
			os.Stdout.Write([]byte{data})
		}),
	}
	if r.PostBoot {
		opts = append(opts, emulator.WithPostBootState())
	}
	if r.Trace {
		if err := log.Base().SetLevel("debug"); err != nil {
			return err
		}
		opts = append(opts, emulator.WithTrace())
	}

	e := emulator.New(opts...)
	if err := e.Memory.LoadProgram(r.Path, origin); err != nil {
		return err
	}

	if r.LoadState != "" {
		data, err := ioutil.ReadFile(r.LoadState)
		if err != nil {
			return errors.Wrapf(err, "failed to read save state %s", r.LoadState)
		}
		if err := e.CPU.UnmarshalBinary(data); err != nil {
			return errors.Wrapf(err, "failed to load save state %s", r.LoadState)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	interrupted := make(chan os.Signal, 1)
	signal.Notify(interrupted, os.Interrupt)
	go func() {
		<-interrupted
		cancel()
	}()

	runErr := e.Run(ctx)
	fmt.Printf("\n%s\nmode=%s steps=%d cycles=%d\n", e.CPU.Registers.String(), e.CPU.State.Mode(), e.Steps, e.Cycles)

	if r.SaveState != "" {
		data, err := e.CPU.MarshalBinary()
		if err != nil {
			return err
		}
		if err := ioutil.WriteFile(r.SaveState, data, 0644); err != nil {
			return errors.Wrapf(err, "failed to write save state %s", r.SaveState)
		}
		log.Infof("saved CPU state to %s", r.SaveState)
	}

	if errors.Cause(runErr) == emulator.ErrHaltedForever {
		// test programs commonly end with HALT
		return nil
	}
	return runErr
}

type tableCmd struct {
	CB bool `help:"Show the CB prefixed opcodes"`
}

func (t *tableCmd) Run() error {
	lookup := emulator.Lookup
	if t.CB {
		lookup = emulator.LookupCB
	}

	for op := 0; op <= 0xFF; op++ {
		inst := lookup(byte(op))
		fmt.Printf("%-30s size=%d cycles=%v\n", inst.String(), inst.Size, inst.Cycles)
	}
	return nil
}

var root struct {
	Run   runCmd   `cmd:"" help:"Run a raw program image"`
	Table tableCmd `cmd:"" help:"Print the static opcode table"`
}

func main() {
	cli := kong.Parse(&root)
	err := cli.Run()
	cli.FatalIfErrorf(err)
}
