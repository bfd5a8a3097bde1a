// Package mp2ddr brings up the DDR subsystem of STM32MP2 SoCs: the uMCTL2
// controller and its PHY. Device.Init runs the complete cold boot or standby
// wakeup sequence. The self-refresh methods handle low power transitions and
// the Dump/Edit methods back the interactive debug shell.
package mp2ddr

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/soypat/mp2ddr/ddrconf"
	"github.com/soypat/mp2ddr/mmio"
	"github.com/soypat/mp2ddr/phyinit"
	"github.com/soypat/mp2ddr/regs"
)

// Core identifies the processor running the bring-up. Only the trusted domain
// owner may run destructive memory tests.
type Core uint8

const (
	CoreA35 Core = iota
	CoreM33
)

func (c Core) String() string {
	switch c {
	case CoreA35:
		return "A35"
	case CoreM33:
		return "M33"
	}
	return "unknown core"
}

// Step names the points at which an Interactor is consulted during Init.
type Step uint8

const (
	StepReset Step = iota
	StepCtlInit
	StepPHYInit
	StepReady
)

func (s Step) String() string {
	switch s {
	case StepReset:
		return "reset"
	case StepCtlInit:
		return "ctl_init"
	case StepPHYInit:
		return "phy_init"
	case StepReady:
		return "ready"
	}
	return "unknown step"
}

// InitRequest selects between a cold boot and a wakeup from standby with the
// DRAM content retained in self-refresh.
type InitRequest struct {
	WakeupFromStandby bool
	// SelfRefresh is an output: Init sets it when the retained path is taken.
	SelfRefresh bool
	// ZData is the IO calibration value preserved across standby.
	ZData uint32
	// ClearBkp requests the board to clear backup domain content.
	ClearBkp bool
}

// Board performs board specific power sequencing, such as enabling PMIC
// rails, before the DDR subsystem is touched.
type Board interface {
	PowerUp(dram phyinit.DRAMType, req *InitRequest) error
}

// Interactor is consulted after each Init step. Returning true restarts the
// sequence from reset, which lets a debug shell edit registers and retry.
// Step may call Device methods. Init called from Step fails with
// ErrInitRunning.
type Interactor interface {
	Step(s Step) bool
}

// PLLConfigurer programs the DDR reference PLL.
type PLLConfigurer interface {
	ConfigurePLL(pll ddrconf.PLL) error
}

// PHY is the training collaborator. phyinit.Sequencer implements it.
type PHY interface {
	UserInput() *phyinit.UserInput
	Sequence(skipTraining, saveRetRegs bool) error
	RestoreSequence() error
}

type nopBoard struct{}

func (nopBoard) PowerUp(phyinit.DRAMType, *InitRequest) error { return nil }

type nopInteractor struct{}

func (nopInteractor) Step(Step) bool { return false }

type Config struct {
	// DDR is the configuration snapshot. If nil the build time default preset
	// is used. Device edits write through to it.
	DDR *ddrconf.Config
	// PHY defaults to a phyinit.Sequencer on the device bus using Firmware.
	PHY      PHY
	Firmware phyinit.Firmware
	// PLL defaults to programming RCC PLL2 directly.
	PLL        PLLConfigurer
	Board      Board
	Interactor Interactor
	// Core running the bring-up, used to decide if memory tests may run.
	Core Core
	// DualAXIPort enables handling of the second controller AXI port.
	DualAXIPort bool
	// Interactive also cycles the DDRCP clock domain on reset, as needed
	// when Init is restarted from a debug session.
	Interactive bool
	// HWSelfRefreshExitPoll waits for the controller to leave self-refresh
	// on hardware self-refresh exit. By default exit returns once the clock
	// gating request is removed.
	HWSelfRefreshExitPoll bool
	Logger                *slog.Logger
}

// Device drives one DDR subsystem. Methods are safe for concurrent use
// though the hardware sequence itself is strictly sequential. Only one Init
// may run at a time; others fail with ErrInitRunning while it is stopped at
// an Interactor step.
type Device struct {
	mu       sync.Mutex
	bus      mmio.Bus
	cfg      *ddrconf.Config
	phy      PHY
	pll      PLLConfigurer
	board    Board
	interact Interactor
	core     Core

	dualPort    bool
	interactive bool
	hsrExitPoll bool

	srMode SelfRefreshMode
	// Set while Init runs, including while the lock is released at steps.
	initRunning bool
	// Quasi-dynamic transaction state.
	qdOpen       bool
	axiReenable  bool
	hostReenable bool

	logger        *slog.Logger
	_traceenabled bool
}

// ErrInitRunning is returned by Init while another Init is in progress.
var ErrInitRunning = errors.New("mp2ddr: init already running")

var (
	errUnknownDRAM = errors.New("mp2ddr: MSTR selects no supported DRAM type")
	errPowerUp     = errors.New("mp2ddr: board power up failed")
	errSysconf     = errors.New("mp2ddr: system configuration failed")
	errPHYInit     = errors.New("mp2ddr: PHY initialization failed")
	errSizeCheck   = errors.New("mp2ddr: DDR size check failed")
)

// New returns a Device that accesses the SoC through bus.
func New(bus mmio.Bus, cfg Config) *Device {
	d := &Device{
		bus:         bus,
		cfg:         cfg.DDR,
		phy:         cfg.PHY,
		pll:         cfg.PLL,
		board:       cfg.Board,
		interact:    cfg.Interactor,
		core:        cfg.Core,
		dualPort:    cfg.DualAXIPort,
		interactive: cfg.Interactive,
		hsrExitPoll: cfg.HWSelfRefreshExitPoll,
		srMode:      SelfRefreshSW,
		logger:      cfg.Logger,
	}
	d._traceenabled = d.logger != nil && d.logger.Handler().Enabled(context.Background(), levelTrace)
	if d.cfg == nil {
		d.cfg = ddrconf.Default()
	}
	if d.phy == nil {
		d.phy = phyinit.NewSequencer(bus, phyinit.Config{Firmware: cfg.Firmware, Logger: cfg.Logger})
	}
	if d.pll == nil {
		d.pll = &rccPLL{bus: bus, dev: d}
	}
	if d.board == nil {
		d.board = nopBoard{}
	}
	if d.interact == nil {
		d.interact = nopInteractor{}
	}
	return d
}

// Snapshot returns the configuration snapshot the device loads from.
func (d *Device) Snapshot() *ddrconf.Config { return d.cfg }

// PHY returns the training collaborator.
func (d *Device) PHY() PHY { return d.phy }

// DRAMType decodes the memory protocol selected by the snapshot MSTR value.
func (d *Device) DRAMType() (phyinit.DRAMType, error) {
	mstr := d.cfg.Reg.MSTR
	switch {
	case mstr&regs.DDRC_MSTR_DDR3 != 0:
		return phyinit.DDR3, nil
	case mstr&regs.DDRC_MSTR_DDR4 != 0:
		return phyinit.DDR4, nil
	case mstr&regs.DDRC_MSTR_LPDDR4 != 0:
		return phyinit.LPDDR4, nil
	}
	return 0, errUnknownDRAM
}

// Init runs the DDR bring-up. With req.WakeupFromStandby set and the PHY pad
// retention still active, training is skipped and the retained PHY state is
// restored; otherwise a full cold boot with training is done. req.SelfRefresh
// reports which path was taken.
func (d *Device) Init(req *InitRequest) (err error) {
	d.acquire()
	defer d.release()
	if d.initRunning {
		return ErrInitRunning
	}
	d.initRunning = true
	defer func() { d.initRunning = false }()
	d.info("Init:start", slog.Bool("wakeup", req.WakeupFromStandby))
	start := time.Now()

	req.SelfRefresh = req.WakeupFromStandby
	dram, err := d.DRAMType()
	if err != nil {
		return err
	}
	err = d.board.PowerUp(dram, req)
	if err != nil {
		return errjoin(errPowerUp, err)
	}

	// PHY pad retention must have been kept for a warm restore to work.
	retdis := d.rd(regs.PWR_BASE+regs.PWR_CR11)&regs.PWR_CR11_DDRRETDIS != 0
	if req.SelfRefresh && retdis {
		d.warn("Init:retention disabled, cold boot forced")
		req.SelfRefresh = false
	}
	if !req.SelfRefresh {
		mmio.SetBits(d.bus, regs.PWR_BASE+regs.PWR_CR11, regs.PWR_CR11_DDRRETDIS)
	}

	for {
		restart, err := d.bringup(req)
		if err != nil {
			return err
		}
		if !restart {
			break
		}
		d.info("Init:restart")
	}

	err = d.verify(req.SelfRefresh)
	if err != nil {
		return err
	}

	// The loaded PWRCTL value dictates the self-refresh mode. Reading it
	// makes it current, so nothing is reprogrammed here.
	d.readSelfRefreshMode()
	d.info("Init:done", slog.String("dram", dram.String()), slog.String("srmode", d.srMode.String()),
		slog.Bool("selfrefresh", req.SelfRefresh), slog.Duration("took", time.Since(start)))
	return nil
}

// bringup runs reset through AXI port enable. It returns restart=true when
// the Interactor asks to start over.
func (d *Device) bringup(req *InitRequest) (restart bool, err error) {
	d.ddrReset()
	if d.step(StepReset) {
		return true, nil
	}

	err = d.sysconf()
	if err != nil {
		return false, errjoin(errSysconf, err)
	}
	for _, g := range []ddrconf.Group{ddrconf.GroupReg, ddrconf.GroupTiming, ddrconf.GroupMap, ddrconf.GroupPerf} {
		if err = d.setReg(g); err != nil {
			return false, err
		}
	}
	if d.step(StepCtlInit) {
		return true, nil
	}

	// DDR core and PHY reset release.
	mmio.ClearBits(d.bus, regs.RCC_BASE+regs.RCC_DDRITFCFGR, regs.RCC_DDRITFCFGR_DDRRST)

	err = d.disableRefresh()
	if err != nil {
		return false, err
	}
	for _, g := range []ddrconf.Group{ddrconf.GroupUIBasic, ddrconf.GroupUIAdvanced, ddrconf.GroupUIModeRegister, ddrconf.GroupUISwizzle} {
		if err = d.setReg(g); err != nil {
			return false, err
		}
	}

	if req.SelfRefresh {
		d.debug("Init:phy restore")
		err = d.phy.Sequence(true, false)
		if err == nil {
			err = d.phy.RestoreSequence()
		}
	} else {
		d.debug("Init:phy training")
		err = d.phy.Sequence(false, true)
	}
	if err != nil {
		return false, errjoin(errPHYInit, err)
	}
	if d.step(StepPHYInit) {
		return true, nil
	}

	err = d.activateController()
	if err != nil {
		return false, err
	}
	err = d.enableRefresh()
	if err != nil {
		return false, err
	}
	d.enableAXIPort()
	return d.step(StepReady), nil
}

// step consults the Interactor. The device lock is released meanwhile so the
// Interactor may inspect and edit registers through the Device methods.
func (d *Device) step(s Step) bool {
	d.debug("Init:step", slog.String("step", s.String()))
	d.release()
	defer d.acquire()
	return d.interact.Step(s)
}

func (d *Device) acquire() { d.mu.Lock() }

func (d *Device) release() { d.mu.Unlock() }

func (d *Device) rd(addr uint32) uint32 { return d.bus.Read32(addr) }

func (d *Device) wr(addr, v uint32) {
	d.trace("wr", hex32("addr", addr), hex32("val", v))
	d.bus.Write32(addr, v)
}

// Controller register access by offset from DDRC_BASE.

func (d *Device) ctlRead(off uint32) uint32 { return d.rd(regs.DDRC_BASE + off) }

func (d *Device) ctlWrite(off, v uint32) { d.wr(regs.DDRC_BASE+off, v) }

func (d *Device) ctlModify(off, clr, set uint32) {
	v := d.ctlRead(off)
	d.ctlWrite(off, v&^clr|set)
}

func (d *Device) ctlSet(off, mask uint32) { d.ctlModify(off, 0, mask) }

func (d *Device) ctlClear(off, mask uint32) { d.ctlModify(off, mask, 0) }

func isSet(v uint32, pos int) bool { return regs.Field(v, pos, 1) != 0 }
