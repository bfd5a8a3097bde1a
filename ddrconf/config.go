package ddrconf

import "github.com/soypat/mp2ddr/phyinit"

// Config is a complete DDR subsystem configuration: controller register
// values, PHY user inputs and the DDR PLL settings. Controller groups mirror
// the register names so they can be grepped against the reference manual.
type Config struct {
	Info   Info
	Reg    Reg
	Timing Timing
	Map    Map
	Perf   Perf
	UIB    phyinit.Basic
	UIA    phyinit.Advanced
	UIM    phyinit.ModeRegister
	UIS    [phyinit.SwizzleWords]uint32
	PLL    PLL
}

// Info describes the memory the configuration targets.
type Info struct {
	Name string
	// Speed is the DRAM clock in kHz.
	Speed uint32
	// Size in bytes.
	Size uint32
}

// Reg holds the static controller registers.
type Reg struct {
	MSTR, MRCTRL0, MRCTRL1, MRCTRL2, DERATEEN, DERATEINT uint32
	DERATECTL, PWRCTL, PWRTMG, HWLPCTL, RFSHCTL0, RFSHCTL1 uint32
	RFSHCTL3, CRCPARCTL0, CRCPARCTL1, INIT0, INIT1, INIT2 uint32
	INIT3, INIT4, INIT5, INIT6, INIT7, DIMMCTL uint32
	RANKCTL, ZQCTL0, ZQCTL1, ZQCTL2, DFITMG0, DFITMG1 uint32
	DFILPCFG0, DFILPCFG1, DFIUPD0, DFIUPD1, DFIUPD2, DFIMISC uint32
	DFITMG2, DFITMG3, DBICTL, DFIPHYMSTR, DBG0, DBG1 uint32
	DBGCMD, SWCTL, POISONCFG, PCCFG uint32
}

// Timing holds the DRAM timing registers.
type Timing struct {
	RFSHTMG, RFSHTMG1, DRAMTMG0, DRAMTMG1, DRAMTMG2, DRAMTMG3 uint32
	DRAMTMG4, DRAMTMG5, DRAMTMG6, DRAMTMG7, DRAMTMG8, DRAMTMG9 uint32
	DRAMTMG10, DRAMTMG11, DRAMTMG12, DRAMTMG13, DRAMTMG14, DRAMTMG15 uint32
	ODTCFG, ODTMAP uint32
}

// Map holds the address map registers.
type Map struct {
	ADDRMAP0, ADDRMAP1, ADDRMAP2, ADDRMAP3, ADDRMAP4, ADDRMAP5 uint32
	ADDRMAP6, ADDRMAP7, ADDRMAP8, ADDRMAP9, ADDRMAP10, ADDRMAP11 uint32
}

// Perf holds the scheduler and per port QoS registers.
type Perf struct {
	SCHED, SCHED1, PERFHPR1, PERFLPR1, PERFWR1, PCFGR_0 uint32
	PCFGW_0, PCTRL_0, PCFGQOS0_0, PCFGQOS1_0, PCFGWQOS0_0, PCFGWQOS1_0 uint32
	PCFGR_1, PCFGW_1, PCTRL_1, PCFGQOS0_1, PCFGQOS1_1, PCFGWQOS0_1 uint32
	PCFGWQOS1_1 uint32
}

// PLL holds the DDR PLL (PLL2) settings.
type PLL struct {
	Source    uint32
	Mode      uint32
	FBDiv     uint32
	FRefDiv   uint32
	FracIn    uint32
	PostDiv1  uint32
	PostDiv2  uint32
	State     uint32
	SSMMode   uint32
	SSMSpread uint32
	SSMDivVal uint32
}
