package mp2ddr

import (
	"errors"
	"log/slog"

	"github.com/soypat/mp2ddr/ddrconf"
	"github.com/soypat/mp2ddr/mmio"
	"github.com/soypat/mp2ddr/regs"
	"github.com/usbarmory/tamago/bits"
)

// ddrReset asserts then releases the resets of the DDR clock domains. The
// interface keeps DDRRST asserted until the controller is programmed.
func (d *Device) ddrReset() {
	const (
		rcc  = regs.RCC_BASE
		on   = regs.RCC_DDRxCFGR_EN | regs.RCC_DDRxCFGR_LPEN
		held = on | regs.RCC_DDRxCFGR_RST
	)
	d.debug("ddr:reset", slog.Bool("interactive", d.interactive))
	udelay(1)
	if d.interactive {
		d.wr(rcc+regs.RCC_DDRCPCFGR, held)
	}
	d.wr(rcc+regs.RCC_DDRITFCFGR, regs.RCC_DDRITFCFGR_DDRRST)
	d.wr(rcc+regs.RCC_DDRPHYCAPBCFGR, held)
	d.wr(rcc+regs.RCC_DDRCAPBCFGR, held)
	d.wr(rcc+regs.RCC_DDRCFGR, held)
	udelay(1)

	if d.interactive {
		d.wr(rcc+regs.RCC_DDRCPCFGR, on)
	}
	d.wr(rcc+regs.RCC_DDRITFCFGR, regs.RCC_DDRITFCFGR_DDRRST)
	d.wr(rcc+regs.RCC_DDRPHYCAPBCFGR, on)
	d.wr(rcc+regs.RCC_DDRCAPBCFGR, on)
	d.wr(rcc+regs.RCC_DDRCFGR, on)
	udelay(1)
}

// sysconf starts the DDR PLL, inhibits low power requests during bring-up and
// enables the PHY clock.
func (d *Device) sysconf() error {
	err := d.pll.ConfigurePLL(d.cfg.PLL)
	if err != nil {
		d.logerr("sysconf:pll", slog.String("err", err.Error()))
		return err
	}
	d.wr(regs.DDRDBG_BASE+regs.DDRDBG_LP_DISABLE,
		regs.DDRDBG_LP_DISABLE_LPI_XPI_DISABLE|regs.DDRDBG_LP_DISABLE_LPI_DDRC_DISABLE)
	d.wr(regs.DDRDBG_BASE+regs.DDRDBG_BYPASS_PCLKEN, d.cfg.UIB.PLLBypass[0])
	d.wr(regs.RCC_BASE+regs.RCC_DDRPHYCCFGR, regs.RCC_DDRPHYCCFGR_DDRPHYCEN)
	d.wr(regs.RCC_BASE+regs.RCC_DDRITFCFGR, regs.RCC_DDRITFCFGR_DDRRST)
	udelay(1)
	return nil
}

var errPLLConfig = errors.New("mp2ddr: invalid PLL configuration")

// rccPLL programs the fractional PLL2 feeding the DDR subsystem through RCC.
type rccPLL struct {
	bus mmio.Bus
	dev *Device
}

func (p *rccPLL) ConfigurePLL(pll ddrconf.PLL) error {
	const rcc = regs.RCC_BASE
	if pll.FBDiv == 0 || pll.FRefDiv == 0 || pll.PostDiv1 == 0 || pll.PostDiv2 == 0 ||
		pll.Source > regs.RCC_PLLSOURCE_MSI {
		return errPLLConfig
	}
	p.dev.debug("pll:config", slog.Uint64("fbdiv", uint64(pll.FBDiv)), slog.Uint64("frefdiv", uint64(pll.FRefDiv)),
		slog.Uint64("fracin", uint64(pll.FracIn)), slog.Uint64("postdiv1", uint64(pll.PostDiv1)),
		slog.Uint64("postdiv2", uint64(pll.PostDiv2)))

	// Dividers may only change with the PLL stopped.
	cfgr1 := p.bus.Read32(rcc + regs.RCC_PLL2CFGR1)
	bits.Clear(&cfgr1, regs.RCC_PLLxCFGR1_PLLEN_Pos)
	p.bus.Write32(rcc+regs.RCC_PLL2CFGR1, cfgr1)
	err := p.dev.pollUntil("pll2 stop", timeout1s, func() bool {
		v := p.bus.Read32(rcc + regs.RCC_PLL2CFGR1)
		return !isSet(v, regs.RCC_PLLxCFGR1_PLLRDY_Pos)
	})
	if err != nil {
		return err
	}

	mux := p.bus.Read32(rcc + regs.RCC_MUXSELCFGR)
	bits.SetN(&mux, regs.RCC_MUXSELCFGR_MUXSEL1_Pos, regs.RCC_MUXSELCFGR_MUXSEL1_Msk, pll.Source)
	p.bus.Write32(rcc+regs.RCC_MUXSELCFGR, mux)

	var cfgr2, cfgr3, cfgr4, cfgr5 uint32
	bits.SetN(&cfgr2, regs.RCC_PLLxCFGR2_FREFDIV_Pos, regs.RCC_PLLxCFGR2_FREFDIV_Msk, pll.FRefDiv)
	bits.SetN(&cfgr2, regs.RCC_PLLxCFGR2_FBDIV_Pos, regs.RCC_PLLxCFGR2_FBDIV_Msk, pll.FBDiv)
	bits.SetN(&cfgr3, regs.RCC_PLLxCFGR3_FRACIN_Pos, regs.RCC_PLLxCFGR3_FRACIN_Msk, pll.FracIn)
	bits.SetTo(&cfgr3, regs.RCC_PLLxCFGR3_DOWNSPREAD_Pos, pll.SSMMode == regs.RCC_PLL_DOWNSPREAD)
	spread := pll.SSMSpread != 0
	bits.SetTo(&cfgr3, regs.RCC_PLLxCFGR3_SSCGDIS_Pos, !spread)
	bits.SetTo(&cfgr3, regs.RCC_PLLxCFGR3_DACEN_Pos, spread)
	bits.SetTo(&cfgr4, regs.RCC_PLLxCFGR4_DSMEN_Pos, pll.Mode == regs.RCC_PLL_FRACTIONAL || pll.FracIn != 0 || spread)
	bits.Set(&cfgr4, regs.RCC_PLLxCFGR4_FOUTPOSTDIVEN_Pos)
	bits.SetN(&cfgr5, regs.RCC_PLLxCFGR5_DIVVAL_Pos, regs.RCC_PLLxCFGR5_DIVVAL_Msk, pll.SSMDivVal)
	bits.SetN(&cfgr5, regs.RCC_PLLxCFGR5_SPREAD_Pos, regs.RCC_PLLxCFGR5_SPREAD_Msk, pll.SSMSpread)

	p.bus.Write32(rcc+regs.RCC_PLL2CFGR2, cfgr2)
	p.bus.Write32(rcc+regs.RCC_PLL2CFGR3, cfgr3)
	p.bus.Write32(rcc+regs.RCC_PLL2CFGR4, cfgr4)
	p.bus.Write32(rcc+regs.RCC_PLL2CFGR5, cfgr5)
	p.bus.Write32(rcc+regs.RCC_PLL2CFGR6, pll.PostDiv1&regs.RCC_PLLxCFGR6_POSTDIV1_Msk)
	p.bus.Write32(rcc+regs.RCC_PLL2CFGR7, pll.PostDiv2&regs.RCC_PLLxCFGR7_POSTDIV2_Msk)

	if pll.State != regs.RCC_PLL_ON {
		return nil
	}
	bits.Set(&cfgr1, regs.RCC_PLLxCFGR1_PLLEN_Pos)
	p.bus.Write32(rcc+regs.RCC_PLL2CFGR1, cfgr1)
	return p.dev.pollUntil("pll2 lock", timeout1s, func() bool {
		v := p.bus.Read32(rcc + regs.RCC_PLL2CFGR1)
		return isSet(v, regs.RCC_PLLxCFGR1_PLLRDY_Pos)
	})
}

// readPLL decodes the live PLL2 settings. Mode and spread spectrum mode are
// not readable as such and are taken from the snapshot.
func (d *Device) readPLL() ddrconf.PLL {
	const rcc = regs.RCC_BASE
	pll := d.cfg.PLL
	mux := d.rd(rcc + regs.RCC_MUXSELCFGR)
	cfgr1 := d.rd(rcc + regs.RCC_PLL2CFGR1)
	cfgr2 := d.rd(rcc + regs.RCC_PLL2CFGR2)
	cfgr3 := d.rd(rcc + regs.RCC_PLL2CFGR3)
	cfgr5 := d.rd(rcc + regs.RCC_PLL2CFGR5)
	pll.Source = bits.Get(&mux, regs.RCC_MUXSELCFGR_MUXSEL1_Pos, regs.RCC_MUXSELCFGR_MUXSEL1_Msk)
	pll.FRefDiv = bits.Get(&cfgr2, regs.RCC_PLLxCFGR2_FREFDIV_Pos, regs.RCC_PLLxCFGR2_FREFDIV_Msk)
	pll.FBDiv = bits.Get(&cfgr2, regs.RCC_PLLxCFGR2_FBDIV_Pos, regs.RCC_PLLxCFGR2_FBDIV_Msk)
	pll.FracIn = bits.Get(&cfgr3, regs.RCC_PLLxCFGR3_FRACIN_Pos, regs.RCC_PLLxCFGR3_FRACIN_Msk)
	pll.PostDiv1 = d.rd(rcc+regs.RCC_PLL2CFGR6) & regs.RCC_PLLxCFGR6_POSTDIV1_Msk
	pll.PostDiv2 = d.rd(rcc+regs.RCC_PLL2CFGR7) & regs.RCC_PLLxCFGR7_POSTDIV2_Msk
	pll.SSMSpread = bits.Get(&cfgr5, regs.RCC_PLLxCFGR5_SPREAD_Pos, regs.RCC_PLLxCFGR5_SPREAD_Msk)
	pll.SSMDivVal = bits.Get(&cfgr5, regs.RCC_PLLxCFGR5_DIVVAL_Pos, regs.RCC_PLLxCFGR5_DIVVAL_Msk)
	pll.State = regs.RCC_PLL_OFF
	if isSet(cfgr1, regs.RCC_PLLxCFGR1_PLLEN_Pos) {
		pll.State = regs.RCC_PLL_ON
	}
	return pll
}
