package mp2ddr

import (
	"errors"
	"log/slog"

	"github.com/soypat/mp2ddr/regs"
	"github.com/usbarmory/tamago/bits"
)

// SelfRefreshMode is the policy used to put the DRAM in self-refresh on low
// power transitions.
type SelfRefreshMode uint8

const (
	// SelfRefreshSW enters self-refresh on explicit software request.
	SelfRefreshSW SelfRefreshMode = iota
	// SelfRefreshAuto lets the controller enter self-refresh when idle.
	SelfRefreshAuto
	// SelfRefreshHW enters self-refresh through the RCC clock gating
	// low power interface.
	SelfRefreshHW
	// SelfRefreshInvalid is reported for register states matching no mode.
	// It cannot be set.
	SelfRefreshInvalid
)

func (m SelfRefreshMode) String() string {
	switch m {
	case SelfRefreshSW:
		return "sw"
	case SelfRefreshAuto:
		return "auto"
	case SelfRefreshHW:
		return "hw"
	}
	return "invalid"
}

var errInvalidMode = errors.New("mp2ddr: invalid self-refresh mode")

// Idle period before hardware low power entry, in units of 32 DFI cycles.
const hwIdlePeriod = 3

// SelfRefreshEntry puts the DRAM in self-refresh using the current mode.
// zdata is the IO calibration value to preserve; the PHY keeps it itself on
// this SoC so it is only logged.
func (d *Device) SelfRefreshEntry(zdata *uint32) error {
	d.acquire()
	defer d.release()
	if zdata != nil {
		d.debug("sr:entry", hex32("zdata", *zdata))
	}
	switch d.srMode {
	case SelfRefreshSW:
		return d.ssrEntry()
	case SelfRefreshAuto:
		return d.srEntryLoop()
	case SelfRefreshHW:
		return d.hsrEntry()
	}
	return errInvalidMode
}

// SelfRefreshExit takes the DRAM out of self-refresh using the current mode.
func (d *Device) SelfRefreshExit() error {
	d.acquire()
	defer d.release()
	switch d.srMode {
	case SelfRefreshSW:
		return d.ssrExit()
	case SelfRefreshAuto:
		return d.srExitLoop()
	case SelfRefreshHW:
		return d.hsrExit()
	}
	return errInvalidMode
}

// SetSelfRefreshMode switches the self-refresh policy. Setting the current
// mode does nothing.
func (d *Device) SetSelfRefreshMode(m SelfRefreshMode) error {
	d.acquire()
	defer d.release()
	return d.setSelfRefreshMode(m)
}

// ReadSelfRefreshMode decodes the mode from the controller power control
// register and makes it the current mode.
func (d *Device) ReadSelfRefreshMode() SelfRefreshMode {
	d.acquire()
	defer d.release()
	return d.readSelfRefreshMode()
}

// SelfRefreshMode returns the current mode without accessing hardware.
func (d *Device) SelfRefreshMode() SelfRefreshMode {
	d.acquire()
	defer d.release()
	return d.srMode
}

func (d *Device) setSelfRefreshMode(m SelfRefreshMode) (err error) {
	if m == d.srMode {
		return nil
	}
	// Every mode, SW included, programs its DDRCKMOD clock mode and PWRCTL
	// pattern so that readSelfRefreshMode decodes it back.
	switch m {
	case SelfRefreshSW:
		err = d.ssrSet()
	case SelfRefreshAuto:
		err = d.asrSet()
	case SelfRefreshHW:
		err = d.hsrSet()
	default:
		err = errInvalidMode
	}
	if err != nil {
		d.logerr("sr:set", slog.String("mode", m.String()), slog.String("err", err.Error()))
		return err
	}
	d.info("sr:set", slog.String("from", d.srMode.String()), slog.String("to", m.String()))
	d.srMode = m
	return nil
}

func (d *Device) readSelfRefreshMode() SelfRefreshMode {
	pwrctl := d.ctlRead(regs.DDRC_PWRCTL)
	clkdis := isSet(pwrctl, regs.DDRC_PWRCTL_EN_DFI_DRAM_CLK_DISABLE_Pos)
	sren := isSet(pwrctl, regs.DDRC_PWRCTL_SELFREF_EN_Pos)
	switch {
	case !clkdis && !sren:
		d.srMode = SelfRefreshSW
	case clkdis && !sren:
		d.srMode = SelfRefreshHW
	case clkdis && sren:
		d.srMode = SelfRefreshAuto
	default:
		d.srMode = SelfRefreshInvalid
	}
	return d.srMode
}

// srLoop waits for STAT.selfref_type to leave (entry) or return to (exit)
// normal operation.
func (d *Device) srLoop(entry bool) error {
	what := "self-refresh exit"
	if entry {
		what = "self-refresh entry"
	}
	return d.pollUntil(what, timeout500us, func() bool {
		inSR := d.ctlRead(regs.DDRC_STAT)&regs.DDRC_STAT_SELFREF_TYPE_Msk != 0
		return inSR == entry
	})
}

func (d *Device) srEntryLoop() error { return d.srLoop(true) }

func (d *Device) srExitLoop() error { return d.srLoop(false) }

// enablePHYAPB gives the APB bus access to the PHY internal CSRs.
func (d *Device) enablePHYAPB() {
	d.wr(regs.DDRPHYC_BASE+regs.DDRPHY_APBONLY0_MICROCONTMUXSEL, 0)
}

func (d *Device) ssrEntry() error {
	d.enablePHYAPB()
	d.ctlWrite(regs.DDRC_PWRCTL, regs.DDRC_PWRCTL_SELFREF_SW)
	return d.srEntryLoop()
}

func (d *Device) ssrExit() error {
	d.enablePHYAPB()
	d.ctlWrite(regs.DDRC_PWRCTL, 0)
	return d.srExitLoop()
}

func (d *Device) hsrEntry() error {
	d.wr(regs.RCC_BASE+regs.RCC_DDRCPCFGR, regs.RCC_DDRCPCFGR_DDRCPLPEN)
	return d.srEntryLoop()
}

func (d *Device) hsrExit() error {
	d.wr(regs.RCC_BASE+regs.RCC_DDRCPCFGR, regs.RCC_DDRCPCFGR_DDRCPLPEN|regs.RCC_DDRCPCFGR_DDRCPEN)
	d.debug("sr:hsr exit", slog.Bool("poll", d.hsrExitPoll))
	if !d.hsrExitPoll {
		return nil
	}
	return d.srExitLoop()
}

// swSelfRefEntry requests self-refresh and checks the controller entered it
// because of the software request.
func (d *Device) swSelfRefEntry() error {
	d.ctlSet(regs.DDRC_PWRCTL, regs.DDRC_PWRCTL_SELFREF_SW)
	return d.pollUntil("software self-refresh", timeout500us, func() bool {
		stat := d.ctlRead(regs.DDRC_STAT)
		return stat&regs.DDRC_STAT_OPERATING_MODE_Msk == regs.DDRC_STAT_OPERATING_MODE_SR &&
			stat&regs.DDRC_STAT_SELFREF_TYPE_Msk == regs.DDRC_STAT_SELFREF_TYPE_SR
	})
}

func (d *Device) swSelfRefExit() {
	d.ctlClear(regs.DDRC_PWRCTL, regs.DDRC_PWRCTL_SELFREF_SW)
}

// setPowerControl programs the PWRCTL pattern ReadSelfRefreshMode decodes.
// en_dfi_dram_clk_disable is quasi-dynamic so the write is acknowledged.
func (d *Device) setPowerControl(clkdis, sren bool) error {
	pwrctl := d.ctlRead(regs.DDRC_PWRCTL)
	bits.SetTo(&pwrctl, regs.DDRC_PWRCTL_EN_DFI_DRAM_CLK_DISABLE_Pos, clkdis)
	bits.SetTo(&pwrctl, regs.DDRC_PWRCTL_SELFREF_EN_Pos, sren)
	d.startSWDone()
	d.ctlWrite(regs.DDRC_PWRCTL, pwrctl)
	return d.waitSWDoneAck()
}

func (d *Device) setClockMode(ckmod uint32) {
	const itf = regs.RCC_BASE + regs.RCC_DDRITFCFGR
	v := d.rd(itf)
	d.wr(itf, regs.SetField(v, regs.RCC_DDRITFCFGR_DDRCKMOD_Pos, 0x7, ckmod>>regs.RCC_DDRITFCFGR_DDRCKMOD_Pos))
}

func (d *Device) ssrSet() error {
	d.setClockMode(regs.RCC_DDRITFCFGR_DDRCKMOD_SSR)
	return d.setPowerControl(false, false)
}

func (d *Device) asrSet() error {
	d.wr(regs.DDRDBG_BASE+regs.DDRDBG_LP_DISABLE, 0)
	d.setClockMode(regs.RCC_DDRITFCFGR_DDRCKMOD_ASR)
	return d.setPowerControl(true, true)
}

func (d *Device) hsrSet() error {
	d.wr(regs.RCC_BASE+regs.RCC_DDRITFCFGR, regs.RCC_DDRITFCFGR_DDRCKMOD_HSR)

	// hwlpctl.hw_lp_en is quasi-dynamic group 2: the DRAM must be in
	// self-refresh while it changes.
	err := d.swSelfRefEntry()
	if err != nil {
		d.swSelfRefExit()
		return err
	}
	d.startSWDone()
	var hwlpctl uint32
	bits.Set(&hwlpctl, regs.DDRC_HWLPCTL_HW_LP_EN_Pos)
	bits.Set(&hwlpctl, regs.DDRC_HWLPCTL_HW_LP_EXIT_IDLE_EN_Pos)
	bits.SetN(&hwlpctl, regs.DDRC_HWLPCTL_HW_LP_IDLE_X32_Pos, 0xFFF, hwIdlePeriod)
	d.ctlWrite(regs.DDRC_HWLPCTL, hwlpctl)
	err = d.waitSWDoneAck()
	if err != nil {
		d.swSelfRefExit()
		return err
	}
	d.swSelfRefExit()
	return d.setPowerControl(true, false)
}
