package mp2ddr

import (
	"errors"

	"github.com/soypat/mp2ddr/regs"
)

// ErrQDNested is returned when a quasi-dynamic update transaction is opened
// while another one is in progress.
var ErrQDNested = errors.New("mp2ddr: nested quasi-dynamic update")

// Quasi-dynamic registers may only change while SWCTL.sw_done is low. Group 3
// registers additionally require the AXI ports and host interface idle.

func (d *Device) startSWDone() {
	d.ctlClear(regs.DDRC_SWCTL, regs.DDRC_SWCTL_SW_DONE)
}

func (d *Device) waitSWDoneAck() error {
	d.ctlSet(regs.DDRC_SWCTL, regs.DDRC_SWCTL_SW_DONE)
	return d.pollUntil("sw_done_ack", timeout1us, func() bool {
		return d.ctlRead(regs.DDRC_SWSTAT)&regs.DDRC_SWSTAT_SW_DONE_ACK != 0
	})
}

func (d *Device) enableAXIPort() {
	d.ctlSet(regs.DDRC_PCTRL_0, regs.DDRC_PCTRL_PORT_EN)
	if d.dualPort {
		d.ctlSet(regs.DDRC_PCTRL_1, regs.DDRC_PCTRL_PORT_EN)
	}
}

// disableAXIPort closes the AXI ports and waits for outstanding transfers.
func (d *Device) disableAXIPort() error {
	d.ctlClear(regs.DDRC_PCTRL_0, regs.DDRC_PCTRL_PORT_EN)
	if d.dualPort {
		d.ctlClear(regs.DDRC_PCTRL_1, regs.DDRC_PCTRL_PORT_EN)
	}
	return d.pollUntil("axi ports idle", timeout1s, func() bool {
		return d.ctlRead(regs.DDRC_PSTAT) == 0
	})
}

func (d *Device) axiPortEnabled() bool {
	return d.ctlRead(regs.DDRC_PCTRL_0)&regs.DDRC_PCTRL_PORT_EN != 0
}

func (d *Device) enableHostInterface() {
	d.ctlClear(regs.DDRC_DBG1, regs.DDRC_DBG1_DIS_HIF)
}

// disableHostInterface blocks the host interface and waits for the command
// queues and data pipelines to drain. The pipeline flags take a cycle to
// propagate so they must read empty on two consecutive reads.
func (d *Device) disableHostInterface() error {
	d.ctlSet(regs.DDRC_DBG1, regs.DDRC_DBG1_DIS_HIF)
	empty := 0
	return d.pollUntil("host interface idle", timeout1s, func() bool {
		dbgcam := d.ctlRead(regs.DDRC_DBGCAM)
		if regs.HasBits(dbgcam, regs.DDRC_DBGCAM_Q_AND_DATA_PIPELINE_EMPTY) {
			empty++
		} else {
			empty = 0
		}
		return empty >= 2
	})
}

func (d *Device) hostInterfaceEnabled() bool {
	return d.ctlRead(regs.DDRC_DBG1)&regs.DDRC_DBG1_DIS_HIF == 0
}

// setQD3UpdateConditions idles the controller front end and opens a
// quasi-dynamic update transaction.
func (d *Device) setQD3UpdateConditions() error {
	if d.qdOpen {
		return ErrQDNested
	}
	d.qdOpen = true
	if d.axiPortEnabled() {
		d.axiReenable = true
		if err := d.disableAXIPort(); err != nil {
			d.abortQD3()
			return err
		}
	}
	if d.hostInterfaceEnabled() {
		d.hostReenable = true
		if err := d.disableHostInterface(); err != nil {
			d.abortQD3()
			return err
		}
	}
	d.startSWDone()
	return nil
}

// unsetQD3UpdateConditions commits the transaction and restores whatever
// setQD3UpdateConditions disabled: host interface first, then AXI ports.
func (d *Device) unsetQD3UpdateConditions() error {
	if err := d.waitSWDoneAck(); err != nil {
		d.abortQD3()
		return err
	}
	d.reenableFrontEnd()
	return nil
}

// abortQD3 ends a failed transaction. The front end is restored so a
// timeout does not leave the controller unreachable.
func (d *Device) abortQD3() {
	d.warn("qd3: transaction aborted")
	d.reenableFrontEnd()
}

func (d *Device) reenableFrontEnd() {
	if d.hostReenable {
		d.enableHostInterface()
		d.hostReenable = false
	}
	if d.axiReenable {
		d.enableAXIPort()
		d.axiReenable = false
	}
	d.qdOpen = false
}

// qd3 applies fn inside a group 3 quasi-dynamic transaction.
func (d *Device) qd3(fn func()) error {
	if err := d.setQD3UpdateConditions(); err != nil {
		return err
	}
	fn()
	return d.unsetQD3UpdateConditions()
}
