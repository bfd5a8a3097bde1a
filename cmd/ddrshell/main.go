// Command ddrshell is an interactive debug shell for the STM32MP2 DDR
// bring-up. It runs against a simulated SoC by default, or against the real
// registers through /dev/mem with -devmem.
//
//	Usage: ddrshell [-devmem] [-interactive] [-wakeup] [-dual] [-hsr-exit-poll]
//	       [-preset NAME | -conf FILE] [-core a35|m33] [-log LEVEL] [-tty DEVICE]
//	       [-c COMMANDS] [SCRIPT]
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/soypat/mp2ddr"
	"github.com/soypat/mp2ddr/ddrconf"
	"github.com/soypat/mp2ddr/internal/hwsim"
	"github.com/soypat/mp2ddr/mmio"
	"github.com/soypat/mp2ddr/phyinit"
	"github.com/soypat/mp2ddr/regs"
)

const levelTrace = slog.LevelDebug - 1

func main() {
	err := run(os.Args[1:], os.Stdin, os.Stdout)
	if err != nil {
		fmt.Fprintln(os.Stderr, "ddrshell:", err)
		os.Exit(1)
	}
}

func run(args []string, stdin io.Reader, stdout io.Writer) error {
	flag, parm, args := parseOptions(args)
	if flag.ByName["-h"] || flag.ByName["-help"] {
		fmt.Fprintln(stdout, strings.TrimSpace(mainUsage()))
		return nil
	}
	if len(args) > 1 {
		return fmt.Errorf("%v: unexpected", args[1:])
	}

	cfg, err := loadConfig(parm.ByName["-preset"], parm.ByName["-conf"])
	if err != nil {
		return err
	}
	level, err := parseLevel(parm.ByName["-log"])
	if err != nil {
		return err
	}
	core := mp2ddr.CoreA35
	switch strings.ToLower(parm.ByName["-core"]) {
	case "", "a35":
	case "m33":
		core = mp2ddr.CoreM33
	default:
		return fmt.Errorf("%s: unknown core", parm.ByName["-core"])
	}

	var p prompter
	out := stdout
	switch {
	case parm.ByName["-c"] != "":
		p = newLinePrompter(strings.NewReader(strings.ReplaceAll(parm.ByName["-c"], ";", "\n")), nil)
	case len(args) == 1:
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()
		p = newLinePrompter(f, nil)
	default:
		p, out, err = newPrompter(parm.ByName["-tty"], stdin, stdout)
		if err != nil {
			return err
		}
	}
	defer p.Close()

	logger := slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: level}))
	sh := newShell(out, p)
	if flag.ByName["-interactive"] {
		sh.stopAt = int(mp2ddr.StepReset)
	}

	var bus mmio.Bus
	var fw phyinit.Firmware
	if flag.ByName["-devmem"] {
		dm, err := openDevMem(cfg.Info.Size)
		if err != nil {
			return err
		}
		defer dm.Close()
		bus = dm
	} else {
		bus = hwsim.New(hwsim.NewDRAM(regs.DDR_MEM_BASE, cfg.Info.Size))
		fw = phyinit.NopFirmware{}
	}
	if level <= levelTrace {
		bus = &mmio.Tracer{Bus: bus, Logger: logger, Names: registerName}
	}

	sh.dev = mp2ddr.New(bus, mp2ddr.Config{
		DDR:                   cfg,
		Firmware:              fw,
		Interactor:            sh,
		Core:                  core,
		DualAXIPort:           flag.ByName["-dual"],
		Interactive:           flag.ByName["-interactive"],
		HWSelfRefreshExitPoll: flag.ByName["-hsr-exit-poll"],
		Logger:                logger,
	})
	if flag.ByName["-wakeup"] {
		if err := sh.exec("init -wakeup"); err != nil && err != errQuit {
			return err
		}
	}
	return sh.run()
}

func mainUsage() string {
	return `
ddrshell [OPTION]... [SCRIPT]

OPTIONS
	-devmem         access the SoC through /dev/mem instead of the simulator
	-interactive    stop at every init step
	-wakeup         run init -wakeup before reading commands
	-dual           handle the second AXI port
	-hsr-exit-poll  wait for the controller on hardware self-refresh exit
	-preset NAME    configuration preset, one of: ` + strings.Join(ddrconf.Presets(), ", ") + `
	-conf FILE      configuration file as written by "save"
	-core CORE      a35 (default) or m33
	-log LEVEL      trace, debug, info (default), warn or error
	-tty DEVICE     read commands from a serial console
	-c COMMANDS     run ';' separated commands and exit

` + usage
}

func loadConfig(preset, conf string) (*ddrconf.Config, error) {
	switch {
	case preset != "" && conf != "":
		return nil, errors.New("-preset and -conf are exclusive")
	case preset != "":
		return ddrconf.Preset(preset)
	case conf != "":
		f, err := os.Open(conf)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return ddrconf.Parse(f)
	}
	return ddrconf.Default(), nil
}

func parseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "trace":
		return levelTrace, nil
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, fmt.Errorf("%s: unknown log level", s)
}

// openDevMem maps every register block the bring-up touches and the DRAM.
func openDevMem(dramSize uint32) (*mmio.DevMem, error) {
	dm, err := mmio.OpenDevMem()
	if err != nil {
		return nil, err
	}
	for _, w := range []struct{ base, size uint32 }{
		{regs.DDRC_BASE, 0x10000},
		{regs.DDRPHYC_BASE, 0x400000},
		{regs.DDRDBG_BASE, 0x1000},
		{regs.RCC_BASE, 0x10000},
		{regs.PWR_BASE, 0x1000},
		{regs.RIMC_BASE, 0x1000},
		{regs.DDR_MEM_BASE, dramSize},
	} {
		if err := dm.Map(w.base, w.size); err != nil {
			dm.Close()
			return nil, err
		}
	}
	return dm, nil
}

var regNames map[uint32]string

// registerName resolves controller register addresses for bus traces.
func registerName(addr uint32) string {
	if regNames == nil {
		regNames = make(map[uint32]string)
		for _, g := range ddrconf.Groups() {
			fields := g.Fields()
			for i := range fields {
				if fields[i].Target.Kind() == ddrconf.TargetRegister {
					regNames[regs.DDRC_BASE+fields[i].Target.Offset()] = fields[i].Name
				}
			}
		}
	}
	return regNames[addr]
}
