package mp2ddr

import (
	"github.com/soypat/mp2ddr/regs"
	"github.com/usbarmory/tamago/bits"
)

// waitRefreshUpdateDone toggles RFSHCTL3.refresh_update_level and waits
// until the controller reflects the new level, which signals the refresh
// settings were taken into account.
func (d *Device) waitRefreshUpdateDone() error {
	rfshctl3 := d.ctlRead(regs.DDRC_RFSHCTL3)
	level := !isSet(rfshctl3, regs.DDRC_RFSHCTL3_REFRESH_UPDATE_LEVEL_Pos)
	bits.SetTo(&rfshctl3, regs.DDRC_RFSHCTL3_REFRESH_UPDATE_LEVEL_Pos, level)
	d.ctlWrite(regs.DDRC_RFSHCTL3, rfshctl3)
	return d.pollUntil("refresh update level", timeout1s, func() bool {
		v := d.ctlRead(regs.DDRC_RFSHCTL3)
		return isSet(v, regs.DDRC_RFSHCTL3_REFRESH_UPDATE_LEVEL_Pos) == level
	})
}

// disableRefresh stops auto-refresh and low power entry, and keeps the PHY
// from signaling init complete until the controller is activated.
func (d *Device) disableRefresh() error {
	d.ctlSet(regs.DDRC_RFSHCTL3, regs.DDRC_RFSHCTL3_DIS_AUTO_REFRESH)
	err := d.waitRefreshUpdateDone()
	if err != nil {
		return err
	}
	udelay(1)
	d.ctlClear(regs.DDRC_PWRCTL, regs.DDRC_PWRCTL_POWERDOWN_EN|regs.DDRC_PWRCTL_SELFREF_EN)
	udelay(1)

	// dfimisc.dfi_init_complete_en is quasi-dynamic group 3.
	return d.qd3(func() {
		udelay(1)
		d.ctlClear(regs.DDRC_DFIMISC, regs.DDRC_DFIMISC_DFI_INIT_COMPLETE_EN)
		udelay(1)
	})
}

func (d *Device) enableRefresh() error {
	d.ctlClear(regs.DDRC_PWRCTL, regs.DDRC_PWRCTL_SELFREF_SW)
	udelay(1)
	d.ctlClear(regs.DDRC_RFSHCTL3, regs.DDRC_RFSHCTL3_DIS_AUTO_REFRESH)
	return d.waitRefreshUpdateDone()
}

// activateController hands the DFI over from the PHY: dfi_init_start is
// raised until the PHY reports init complete, then dropped in the same write
// that enables dfi_init_complete_en.
func (d *Device) activateController() error {
	err := d.qd3(func() {
		d.ctlSet(regs.DDRC_DFIMISC, regs.DDRC_DFIMISC_DFI_INIT_START)
	})
	if err != nil {
		return err
	}
	err = d.pollUntil("dfi_init_complete", timeout1s, func() bool {
		return d.ctlRead(regs.DDRC_DFISTAT)&regs.DDRC_DFISTAT_DFI_INIT_COMPLETE != 0
	})
	if err != nil {
		return err
	}
	udelay(1)
	return d.qd3(func() {
		d.ctlModify(regs.DDRC_DFIMISC, regs.DDRC_DFIMISC_DFI_INIT_START, regs.DDRC_DFIMISC_DFI_INIT_COMPLETE_EN)
		udelay(1)
	})
}
