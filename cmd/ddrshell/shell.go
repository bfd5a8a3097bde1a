package main

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/platinasystems/flags"
	"github.com/platinasystems/parms"
	"github.com/soypat/mp2ddr"
	"github.com/soypat/mp2ddr/ddrconf"
)

const usage = `commands:
  help                      this text
  info                      memory, DRAM type and self-refresh mode
  init [-wakeup]            run the bring-up sequence
  print [-save] [NAME]      dump live registers; NAME is a base, group or register
  edit NAME VALUE           write a live register or PHY input
  param [NAME [VALUE]]      dump or change configuration parameters
  freq [NAME VALUE]         dump or change the DDR PLL parameters
  step [N]                  during init, run until step N (default: next step)
  next                      during init, run until the next step
  go                        during init, run to completion
  restart                   during init, start over from reset
  sr entry|exit             self-refresh entry or exit
  sr mode [sw|auto|hw]      read or set the self-refresh mode
  test rw|data|addr|size|all
                            run memory tests
  quit                      leave the shell`

var errQuit = errors.New("quit")

// shell executes debug commands against a Device.
type shell struct {
	dev *mp2ddr.Device
	out io.Writer
	p   prompter

	// Stepping state, consulted by the Device through Step.
	initRunning bool
	stopAt      int // Step to stop at, -1 to run through.
	quit        bool
}

func newShell(out io.Writer, p prompter) *shell {
	return &shell{out: out, p: p, stopAt: -1}
}

// run reads and executes commands until quit or end of input.
func (sh *shell) run() error {
	for {
		line, err := sh.p.Prompt("ddr> ")
		if err == io.EOF {
			return nil
		} else if err != nil {
			return err
		}
		err = sh.exec(line)
		if err == errQuit {
			return nil
		} else if err != nil {
			fmt.Fprintln(sh.out, "error:", err)
		}
	}
}

func (sh *shell) exec(line string) error {
	args := strings.Fields(line)
	if len(args) == 0 || strings.HasPrefix(args[0], "#") {
		return nil
	}
	name, args := args[0], args[1:]
	switch name {
	case "help", "?":
		fmt.Fprintln(sh.out, usage)
	case "info":
		sh.info()
	case "init":
		return sh.initDevice(args)
	case "print":
		flag, args := flags.New(args, "-save")
		return sh.dev.DumpReg(sh.out, optArg(args), flag.ByName["-save"])
	case "save":
		return sh.dev.DumpReg(sh.out, "", true)
	case "edit":
		if len(args) != 2 {
			return errors.New("usage: edit NAME VALUE")
		}
		return sh.dev.EditReg(sh.out, args[0], args[1])
	case "param":
		switch len(args) {
		case 0, 1:
			return sh.dev.DumpParam(sh.out, optArg(args))
		case 2:
			return sh.dev.EditParam(sh.out, args[0], args[1])
		}
		return errors.New("usage: param [NAME [VALUE]]")
	case "freq":
		return sh.freq(args)
	case "step", "next", "go", "restart":
		if !sh.initRunning {
			return fmt.Errorf("%s: init not running", name)
		}
		return fmt.Errorf("%s: only valid at a step prompt", name)
	case "sr":
		return sh.selfRefresh(args)
	case "test":
		return sh.test(args)
	case "quit", "exit", "q":
		return errQuit
	default:
		return fmt.Errorf("%s: unknown command, try help", name)
	}
	return nil
}

func optArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}

func (sh *shell) info() {
	cfg := sh.dev.Snapshot()
	dram, err := sh.dev.DRAMType()
	dramName := dram.String()
	if err != nil {
		dramName = err.Error()
	}
	fmt.Fprintf(sh.out, "name:  %s\n", cfg.Info.Name)
	fmt.Fprintf(sh.out, "type:  %s\n", dramName)
	fmt.Fprintf(sh.out, "speed: %d kHz\n", cfg.Info.Speed)
	fmt.Fprintf(sh.out, "size:  0x%08x\n", cfg.Info.Size)
	fmt.Fprintf(sh.out, "sr:    %s\n", sh.dev.SelfRefreshMode())
}

func (sh *shell) initDevice(args []string) error {
	flag, args := flags.New(args, "-wakeup")
	if len(args) != 0 {
		return fmt.Errorf("init: %v: unexpected", args)
	}
	req := mp2ddr.InitRequest{WakeupFromStandby: flag.ByName["-wakeup"]}
	sh.initRunning = true
	err := sh.dev.Init(&req)
	sh.initRunning = false
	if err != nil {
		return err
	}
	path := "cold boot"
	if req.SelfRefresh {
		path = "self-refresh exit"
	}
	fmt.Fprintf(sh.out, "init done (%s), self-refresh mode %s\n", path, sh.dev.SelfRefreshMode())
	if sh.quit {
		return errQuit
	}
	return nil
}

// Step stops Init at the requested step and runs commands until one of the
// stepping commands resumes it.
func (sh *shell) Step(s mp2ddr.Step) bool {
	if sh.quit || sh.stopAt < 0 || int(s) < sh.stopAt {
		return false
	}
	fmt.Fprintf(sh.out, "step %d: %s\n", int(s), s)
	for {
		line, err := sh.p.Prompt(fmt.Sprintf("ddr:%s> ", s))
		if err != nil {
			sh.quit = true
			return false
		}
		args := strings.Fields(line)
		if len(args) == 0 {
			continue
		}
		switch args[0] {
		case "next":
			sh.stopAt = int(s) + 1
			return false
		case "step":
			n := int(s) + 1
			if len(args) > 1 {
				v, err := strconv.Atoi(args[1])
				if err != nil || v <= int(s) || v > int(mp2ddr.StepReady) {
					fmt.Fprintf(sh.out, "step: want a step after %d up to %d\n", int(s), int(mp2ddr.StepReady))
					continue
				}
				n = v
			}
			sh.stopAt = n
			return false
		case "go":
			sh.stopAt = -1
			return false
		case "restart":
			sh.stopAt = int(mp2ddr.StepReset)
			return true
		case "quit", "exit", "q":
			sh.quit = true
			sh.stopAt = -1
			return false
		case "init":
			fmt.Fprintln(sh.out, "init: already running")
			continue
		}
		if err := sh.exec(line); err != nil {
			fmt.Fprintln(sh.out, "error:", err)
		}
	}
}

func (sh *shell) freq(args []string) error {
	switch len(args) {
	case 0:
		return sh.dev.DumpParam(sh.out, "pll")
	case 2:
		g, _, err := ddrconf.Lookup(args[0])
		if err != nil || g != ddrconf.GroupPLL {
			return fmt.Errorf("freq: %s is not a PLL parameter", args[0])
		}
		return sh.dev.EditParam(sh.out, args[0], args[1])
	}
	return errors.New("usage: freq [NAME VALUE]")
}

func (sh *shell) selfRefresh(args []string) error {
	if len(args) == 0 {
		return errors.New("usage: sr entry|exit|mode [sw|auto|hw]")
	}
	switch args[0] {
	case "entry":
		return sh.dev.SelfRefreshEntry(nil)
	case "exit":
		return sh.dev.SelfRefreshExit()
	case "mode":
		if len(args) == 1 {
			fmt.Fprintln(sh.out, sh.dev.ReadSelfRefreshMode())
			return nil
		}
		for _, m := range []mp2ddr.SelfRefreshMode{mp2ddr.SelfRefreshSW, mp2ddr.SelfRefreshAuto, mp2ddr.SelfRefreshHW} {
			if m.String() == args[1] {
				return sh.dev.SetSelfRefreshMode(m)
			}
		}
		return fmt.Errorf("sr mode: %s: unknown mode", args[1])
	}
	return fmt.Errorf("sr: %s: unknown action", args[0])
}

func (sh *shell) test(args []string) error {
	if len(args) != 1 {
		return errors.New("usage: test rw|data|addr|size|all")
	}
	all := []mp2ddr.MemTest{mp2ddr.MemTestRW, mp2ddr.MemTestDataBus, mp2ddr.MemTestAddrBus, mp2ddr.MemTestSize}
	var tests []mp2ddr.MemTest
	for _, t := range all {
		if args[0] == "all" || args[0] == t.String() {
			tests = append(tests, t)
		}
	}
	if len(tests) == 0 {
		return fmt.Errorf("test: %s: unknown test", args[0])
	}
	for _, t := range tests {
		if err := sh.dev.RunMemTest(t); err != nil {
			return err
		}
		fmt.Fprintf(sh.out, "test %s: pass\n", t)
	}
	return nil
}

// parseOptions splits shell invocation arguments.
func parseOptions(args []string) (*flags.Flags, *parms.Parms, []string) {
	flag, args := flags.New(args, "-devmem", "-wakeup", "-interactive", "-dual", "-hsr-exit-poll", "-h", "-help")
	parm, args := parms.New(args, "-preset", "-conf", "-tty", "-core", "-log", "-c")
	return flag, parm, args
}
