package ddrconf

import (
	"github.com/soypat/mp2ddr/phyinit"
	"github.com/soypat/mp2ddr/regs"
)

var regFields = []Field{
	{Name: "MSTR", Param: func(c *Config) *uint32 { return &c.Reg.MSTR }, Target: HardwareRegister(regs.DDRC_MSTR)},
	{Name: "MRCTRL0", Param: func(c *Config) *uint32 { return &c.Reg.MRCTRL0 }, Target: HardwareRegister(regs.DDRC_MRCTRL0)},
	{Name: "MRCTRL1", Param: func(c *Config) *uint32 { return &c.Reg.MRCTRL1 }, Target: HardwareRegister(regs.DDRC_MRCTRL1)},
	{Name: "MRCTRL2", Param: func(c *Config) *uint32 { return &c.Reg.MRCTRL2 }, Target: HardwareRegister(regs.DDRC_MRCTRL2)},
	{Name: "DERATEEN", Param: func(c *Config) *uint32 { return &c.Reg.DERATEEN }, Target: HardwareRegister(regs.DDRC_DERATEEN)},
	{Name: "DERATEINT", Param: func(c *Config) *uint32 { return &c.Reg.DERATEINT }, Target: HardwareRegister(regs.DDRC_DERATEINT)},
	{Name: "DERATECTL", Param: func(c *Config) *uint32 { return &c.Reg.DERATECTL }, Target: HardwareRegister(regs.DDRC_DERATECTL)},
	{Name: "PWRCTL", Param: func(c *Config) *uint32 { return &c.Reg.PWRCTL }, Target: HardwareRegister(regs.DDRC_PWRCTL)},
	{Name: "PWRTMG", Param: func(c *Config) *uint32 { return &c.Reg.PWRTMG }, Target: HardwareRegister(regs.DDRC_PWRTMG)},
	{Name: "HWLPCTL", Param: func(c *Config) *uint32 { return &c.Reg.HWLPCTL }, Target: HardwareRegister(regs.DDRC_HWLPCTL)},
	{Name: "RFSHCTL0", Param: func(c *Config) *uint32 { return &c.Reg.RFSHCTL0 }, Target: HardwareRegister(regs.DDRC_RFSHCTL0)},
	{Name: "RFSHCTL1", Param: func(c *Config) *uint32 { return &c.Reg.RFSHCTL1 }, Target: HardwareRegister(regs.DDRC_RFSHCTL1)},
	{Name: "RFSHCTL3", Param: func(c *Config) *uint32 { return &c.Reg.RFSHCTL3 }, Target: HardwareRegister(regs.DDRC_RFSHCTL3)},
	{Name: "CRCPARCTL0", Param: func(c *Config) *uint32 { return &c.Reg.CRCPARCTL0 }, Target: HardwareRegister(regs.DDRC_CRCPARCTL0)},
	{Name: "CRCPARCTL1", Param: func(c *Config) *uint32 { return &c.Reg.CRCPARCTL1 }, Target: HardwareRegister(regs.DDRC_CRCPARCTL1)},
	{Name: "INIT0", Param: func(c *Config) *uint32 { return &c.Reg.INIT0 }, Target: HardwareRegister(regs.DDRC_INIT0)},
	{Name: "INIT1", Param: func(c *Config) *uint32 { return &c.Reg.INIT1 }, Target: HardwareRegister(regs.DDRC_INIT1)},
	{Name: "INIT2", Param: func(c *Config) *uint32 { return &c.Reg.INIT2 }, Target: HardwareRegister(regs.DDRC_INIT2)},
	{Name: "INIT3", Param: func(c *Config) *uint32 { return &c.Reg.INIT3 }, Target: HardwareRegister(regs.DDRC_INIT3)},
	{Name: "INIT4", Param: func(c *Config) *uint32 { return &c.Reg.INIT4 }, Target: HardwareRegister(regs.DDRC_INIT4)},
	{Name: "INIT5", Param: func(c *Config) *uint32 { return &c.Reg.INIT5 }, Target: HardwareRegister(regs.DDRC_INIT5)},
	{Name: "INIT6", Param: func(c *Config) *uint32 { return &c.Reg.INIT6 }, Target: HardwareRegister(regs.DDRC_INIT6)},
	{Name: "INIT7", Param: func(c *Config) *uint32 { return &c.Reg.INIT7 }, Target: HardwareRegister(regs.DDRC_INIT7)},
	{Name: "DIMMCTL", Param: func(c *Config) *uint32 { return &c.Reg.DIMMCTL }, Target: HardwareRegister(regs.DDRC_DIMMCTL)},
	{Name: "RANKCTL", Param: func(c *Config) *uint32 { return &c.Reg.RANKCTL }, Target: HardwareRegister(regs.DDRC_RANKCTL)},
	{Name: "ZQCTL0", Param: func(c *Config) *uint32 { return &c.Reg.ZQCTL0 }, Target: HardwareRegister(regs.DDRC_ZQCTL0)},
	{Name: "ZQCTL1", Param: func(c *Config) *uint32 { return &c.Reg.ZQCTL1 }, Target: HardwareRegister(regs.DDRC_ZQCTL1)},
	{Name: "ZQCTL2", Param: func(c *Config) *uint32 { return &c.Reg.ZQCTL2 }, Target: HardwareRegister(regs.DDRC_ZQCTL2)},
	{Name: "DFITMG0", Param: func(c *Config) *uint32 { return &c.Reg.DFITMG0 }, Target: HardwareRegister(regs.DDRC_DFITMG0)},
	{Name: "DFITMG1", Param: func(c *Config) *uint32 { return &c.Reg.DFITMG1 }, Target: HardwareRegister(regs.DDRC_DFITMG1)},
	{Name: "DFILPCFG0", Param: func(c *Config) *uint32 { return &c.Reg.DFILPCFG0 }, Target: HardwareRegister(regs.DDRC_DFILPCFG0)},
	{Name: "DFILPCFG1", Param: func(c *Config) *uint32 { return &c.Reg.DFILPCFG1 }, Target: HardwareRegister(regs.DDRC_DFILPCFG1)},
	{Name: "DFIUPD0", Param: func(c *Config) *uint32 { return &c.Reg.DFIUPD0 }, Target: HardwareRegister(regs.DDRC_DFIUPD0)},
	{Name: "DFIUPD1", Param: func(c *Config) *uint32 { return &c.Reg.DFIUPD1 }, Target: HardwareRegister(regs.DDRC_DFIUPD1)},
	{Name: "DFIUPD2", Param: func(c *Config) *uint32 { return &c.Reg.DFIUPD2 }, Target: HardwareRegister(regs.DDRC_DFIUPD2)},
	{Name: "DFIMISC", Param: func(c *Config) *uint32 { return &c.Reg.DFIMISC }, Target: HardwareRegister(regs.DDRC_DFIMISC)},
	{Name: "DFITMG2", Param: func(c *Config) *uint32 { return &c.Reg.DFITMG2 }, Target: HardwareRegister(regs.DDRC_DFITMG2)},
	{Name: "DFITMG3", Param: func(c *Config) *uint32 { return &c.Reg.DFITMG3 }, Target: HardwareRegister(regs.DDRC_DFITMG3)},
	{Name: "DBICTL", Param: func(c *Config) *uint32 { return &c.Reg.DBICTL }, Target: HardwareRegister(regs.DDRC_DBICTL)},
	{Name: "DFIPHYMSTR", Param: func(c *Config) *uint32 { return &c.Reg.DFIPHYMSTR }, Target: HardwareRegister(regs.DDRC_DFIPHYMSTR)},
	{Name: "DBG0", Param: func(c *Config) *uint32 { return &c.Reg.DBG0 }, Target: HardwareRegister(regs.DDRC_DBG0)},
	{Name: "DBG1", Param: func(c *Config) *uint32 { return &c.Reg.DBG1 }, Target: HardwareRegister(regs.DDRC_DBG1)},
	{Name: "DBGCMD", Param: func(c *Config) *uint32 { return &c.Reg.DBGCMD }, Target: HardwareRegister(regs.DDRC_DBGCMD)},
	{Name: "SWCTL", Param: func(c *Config) *uint32 { return &c.Reg.SWCTL }, Target: HardwareRegister(regs.DDRC_SWCTL)},
	{Name: "POISONCFG", Param: func(c *Config) *uint32 { return &c.Reg.POISONCFG }, Target: HardwareRegister(regs.DDRC_POISONCFG)},
	{Name: "PCCFG", Param: func(c *Config) *uint32 { return &c.Reg.PCCFG }, Target: HardwareRegister(regs.DDRC_PCCFG)},
}

var timingFields = []Field{
	{Name: "RFSHTMG", Param: func(c *Config) *uint32 { return &c.Timing.RFSHTMG }, Target: HardwareRegister(regs.DDRC_RFSHTMG)},
	{Name: "RFSHTMG1", Param: func(c *Config) *uint32 { return &c.Timing.RFSHTMG1 }, Target: HardwareRegister(regs.DDRC_RFSHTMG1)},
	{Name: "DRAMTMG0", Param: func(c *Config) *uint32 { return &c.Timing.DRAMTMG0 }, Target: HardwareRegister(regs.DDRC_DRAMTMG(0))},
	{Name: "DRAMTMG1", Param: func(c *Config) *uint32 { return &c.Timing.DRAMTMG1 }, Target: HardwareRegister(regs.DDRC_DRAMTMG(1))},
	{Name: "DRAMTMG2", Param: func(c *Config) *uint32 { return &c.Timing.DRAMTMG2 }, Target: HardwareRegister(regs.DDRC_DRAMTMG(2))},
	{Name: "DRAMTMG3", Param: func(c *Config) *uint32 { return &c.Timing.DRAMTMG3 }, Target: HardwareRegister(regs.DDRC_DRAMTMG(3))},
	{Name: "DRAMTMG4", Param: func(c *Config) *uint32 { return &c.Timing.DRAMTMG4 }, Target: HardwareRegister(regs.DDRC_DRAMTMG(4))},
	{Name: "DRAMTMG5", Param: func(c *Config) *uint32 { return &c.Timing.DRAMTMG5 }, Target: HardwareRegister(regs.DDRC_DRAMTMG(5))},
	{Name: "DRAMTMG6", Param: func(c *Config) *uint32 { return &c.Timing.DRAMTMG6 }, Target: HardwareRegister(regs.DDRC_DRAMTMG(6))},
	{Name: "DRAMTMG7", Param: func(c *Config) *uint32 { return &c.Timing.DRAMTMG7 }, Target: HardwareRegister(regs.DDRC_DRAMTMG(7))},
	{Name: "DRAMTMG8", Param: func(c *Config) *uint32 { return &c.Timing.DRAMTMG8 }, Target: HardwareRegister(regs.DDRC_DRAMTMG(8))},
	{Name: "DRAMTMG9", Param: func(c *Config) *uint32 { return &c.Timing.DRAMTMG9 }, Target: HardwareRegister(regs.DDRC_DRAMTMG(9))},
	{Name: "DRAMTMG10", Param: func(c *Config) *uint32 { return &c.Timing.DRAMTMG10 }, Target: HardwareRegister(regs.DDRC_DRAMTMG(10))},
	{Name: "DRAMTMG11", Param: func(c *Config) *uint32 { return &c.Timing.DRAMTMG11 }, Target: HardwareRegister(regs.DDRC_DRAMTMG(11))},
	{Name: "DRAMTMG12", Param: func(c *Config) *uint32 { return &c.Timing.DRAMTMG12 }, Target: HardwareRegister(regs.DDRC_DRAMTMG(12))},
	{Name: "DRAMTMG13", Param: func(c *Config) *uint32 { return &c.Timing.DRAMTMG13 }, Target: HardwareRegister(regs.DDRC_DRAMTMG(13))},
	{Name: "DRAMTMG14", Param: func(c *Config) *uint32 { return &c.Timing.DRAMTMG14 }, Target: HardwareRegister(regs.DDRC_DRAMTMG(14))},
	{Name: "DRAMTMG15", Param: func(c *Config) *uint32 { return &c.Timing.DRAMTMG15 }, Target: HardwareRegister(regs.DDRC_DRAMTMG(15))},
	{Name: "ODTCFG", Param: func(c *Config) *uint32 { return &c.Timing.ODTCFG }, Target: HardwareRegister(regs.DDRC_ODTCFG)},
	{Name: "ODTMAP", Param: func(c *Config) *uint32 { return &c.Timing.ODTMAP }, Target: HardwareRegister(regs.DDRC_ODTMAP)},
}

var mapFields = []Field{
	{Name: "ADDRMAP0", Param: func(c *Config) *uint32 { return &c.Map.ADDRMAP0 }, Target: HardwareRegister(regs.DDRC_ADDRMAP(0))},
	{Name: "ADDRMAP1", Param: func(c *Config) *uint32 { return &c.Map.ADDRMAP1 }, Target: HardwareRegister(regs.DDRC_ADDRMAP(1))},
	{Name: "ADDRMAP2", Param: func(c *Config) *uint32 { return &c.Map.ADDRMAP2 }, Target: HardwareRegister(regs.DDRC_ADDRMAP(2))},
	{Name: "ADDRMAP3", Param: func(c *Config) *uint32 { return &c.Map.ADDRMAP3 }, Target: HardwareRegister(regs.DDRC_ADDRMAP(3))},
	{Name: "ADDRMAP4", Param: func(c *Config) *uint32 { return &c.Map.ADDRMAP4 }, Target: HardwareRegister(regs.DDRC_ADDRMAP(4))},
	{Name: "ADDRMAP5", Param: func(c *Config) *uint32 { return &c.Map.ADDRMAP5 }, Target: HardwareRegister(regs.DDRC_ADDRMAP(5))},
	{Name: "ADDRMAP6", Param: func(c *Config) *uint32 { return &c.Map.ADDRMAP6 }, Target: HardwareRegister(regs.DDRC_ADDRMAP(6))},
	{Name: "ADDRMAP7", Param: func(c *Config) *uint32 { return &c.Map.ADDRMAP7 }, Target: HardwareRegister(regs.DDRC_ADDRMAP(7))},
	{Name: "ADDRMAP8", Param: func(c *Config) *uint32 { return &c.Map.ADDRMAP8 }, Target: HardwareRegister(regs.DDRC_ADDRMAP(8))},
	{Name: "ADDRMAP9", Param: func(c *Config) *uint32 { return &c.Map.ADDRMAP9 }, Target: HardwareRegister(regs.DDRC_ADDRMAP(9))},
	{Name: "ADDRMAP10", Param: func(c *Config) *uint32 { return &c.Map.ADDRMAP10 }, Target: HardwareRegister(regs.DDRC_ADDRMAP(10))},
	{Name: "ADDRMAP11", Param: func(c *Config) *uint32 { return &c.Map.ADDRMAP11 }, Target: HardwareRegister(regs.DDRC_ADDRMAP(11))},
}

var perfFields = []Field{
	{Name: "SCHED", Param: func(c *Config) *uint32 { return &c.Perf.SCHED }, Target: HardwareRegister(regs.DDRC_SCHED)},
	{Name: "SCHED1", Param: func(c *Config) *uint32 { return &c.Perf.SCHED1 }, Target: HardwareRegister(regs.DDRC_SCHED1)},
	{Name: "PERFHPR1", Param: func(c *Config) *uint32 { return &c.Perf.PERFHPR1 }, Target: HardwareRegister(regs.DDRC_PERFHPR1)},
	{Name: "PERFLPR1", Param: func(c *Config) *uint32 { return &c.Perf.PERFLPR1 }, Target: HardwareRegister(regs.DDRC_PERFLPR1)},
	{Name: "PERFWR1", Param: func(c *Config) *uint32 { return &c.Perf.PERFWR1 }, Target: HardwareRegister(regs.DDRC_PERFWR1)},
	{Name: "PCFGR_0", Param: func(c *Config) *uint32 { return &c.Perf.PCFGR_0 }, Target: HardwareRegister(regs.DDRC_PCFGR_0)},
	{Name: "PCFGW_0", Param: func(c *Config) *uint32 { return &c.Perf.PCFGW_0 }, Target: HardwareRegister(regs.DDRC_PCFGW_0)},
	{Name: "PCTRL_0", Param: func(c *Config) *uint32 { return &c.Perf.PCTRL_0 }, Target: HardwareRegister(regs.DDRC_PCTRL_0)},
	{Name: "PCFGQOS0_0", Param: func(c *Config) *uint32 { return &c.Perf.PCFGQOS0_0 }, Target: HardwareRegister(regs.DDRC_PCFGQOS0_0)},
	{Name: "PCFGQOS1_0", Param: func(c *Config) *uint32 { return &c.Perf.PCFGQOS1_0 }, Target: HardwareRegister(regs.DDRC_PCFGQOS1_0)},
	{Name: "PCFGWQOS0_0", Param: func(c *Config) *uint32 { return &c.Perf.PCFGWQOS0_0 }, Target: HardwareRegister(regs.DDRC_PCFGWQOS0_0)},
	{Name: "PCFGWQOS1_0", Param: func(c *Config) *uint32 { return &c.Perf.PCFGWQOS1_0 }, Target: HardwareRegister(regs.DDRC_PCFGWQOS1_0)},
	{Name: "PCFGR_1", Param: func(c *Config) *uint32 { return &c.Perf.PCFGR_1 }, Target: HardwareRegister(regs.DDRC_PCFGR_1)},
	{Name: "PCFGW_1", Param: func(c *Config) *uint32 { return &c.Perf.PCFGW_1 }, Target: HardwareRegister(regs.DDRC_PCFGW_1)},
	{Name: "PCTRL_1", Param: func(c *Config) *uint32 { return &c.Perf.PCTRL_1 }, Target: HardwareRegister(regs.DDRC_PCTRL_1)},
	{Name: "PCFGQOS0_1", Param: func(c *Config) *uint32 { return &c.Perf.PCFGQOS0_1 }, Target: HardwareRegister(regs.DDRC_PCFGQOS0_1)},
	{Name: "PCFGQOS1_1", Param: func(c *Config) *uint32 { return &c.Perf.PCFGQOS1_1 }, Target: HardwareRegister(regs.DDRC_PCFGQOS1_1)},
	{Name: "PCFGWQOS0_1", Param: func(c *Config) *uint32 { return &c.Perf.PCFGWQOS0_1 }, Target: HardwareRegister(regs.DDRC_PCFGWQOS0_1)},
	{Name: "PCFGWQOS1_1", Param: func(c *Config) *uint32 { return &c.Perf.PCFGWQOS1_1 }, Target: HardwareRegister(regs.DDRC_PCFGWQOS1_1)},
}

var uibFields = []Field{
	uib("dramtype", func(b *phyinit.Basic) *uint32 { return &b.DRAMType }),
	uib("dimmtype", func(b *phyinit.Basic) *uint32 { return &b.DIMMType }),
	uib("lp4xmode", func(b *phyinit.Basic) *uint32 { return &b.LP4XMode }),
	uib("numdbyte", func(b *phyinit.Basic) *uint32 { return &b.NumDbyte }),
	uib("numactivedbytedfi0", func(b *phyinit.Basic) *uint32 { return &b.NumActiveDbyteDFI0 }),
	uib("numactivedbytedfi1", func(b *phyinit.Basic) *uint32 { return &b.NumActiveDbyteDFI1 }),
	uib("numanib", func(b *phyinit.Basic) *uint32 { return &b.NumAnib }),
	uib("numrank_dfi0", func(b *phyinit.Basic) *uint32 { return &b.NumRankDFI0 }),
	uib("numrank_dfi1", func(b *phyinit.Basic) *uint32 { return &b.NumRankDFI1 }),
	uib("dramdatawidth", func(b *phyinit.Basic) *uint32 { return &b.DRAMDataWidth }),
	uib("numpstates", func(b *phyinit.Basic) *uint32 { return &b.NumPStates }),
	uib("frequency_0", func(b *phyinit.Basic) *uint32 { return &b.Frequency[0] }),
	uib("pllbypass_0", func(b *phyinit.Basic) *uint32 { return &b.PLLBypass[0] }),
	uib("dfifreqratio_0", func(b *phyinit.Basic) *uint32 { return &b.DFIFreqRatio[0] }),
	uib("dfi1exists", func(b *phyinit.Basic) *uint32 { return &b.DFI1Exists }),
	uib("train2d", func(b *phyinit.Basic) *uint32 { return &b.Train2D }),
	uib("hardmacrover", func(b *phyinit.Basic) *uint32 { return &b.HardMacroVer }),
	uib("readdbienable_0", func(b *phyinit.Basic) *uint32 { return &b.ReadDBIEnable[0] }),
	uib("dfimode", func(b *phyinit.Basic) *uint32 { return &b.DFIMode }),
}

var uiaFields = []Field{
	uia("lp4rxpreamblemode_0", func(a *phyinit.Advanced) *uint32 { return &a.LP4RxPreambleMode[0] }),
	uia("lp4postambleext_0", func(a *phyinit.Advanced) *uint32 { return &a.LP4PostambleExt[0] }),
	uia("d4rxpreamblelength_0", func(a *phyinit.Advanced) *uint32 { return &a.D4RxPreambleLength[0] }),
	uia("d4txpreamblelength_0", func(a *phyinit.Advanced) *uint32 { return &a.D4TxPreambleLength[0] }),
	uia("extcalresval", func(a *phyinit.Advanced) *uint32 { return &a.ExtCalResVal }),
	uia("is2ttiming_0", func(a *phyinit.Advanced) *uint32 { return &a.Is2TTiming[0] }),
	uia("odtimpedance_0", func(a *phyinit.Advanced) *uint32 { return &a.ODTImpedance[0] }),
	uia("tximpedance_0", func(a *phyinit.Advanced) *uint32 { return &a.TxImpedance[0] }),
	uia("atximpedance", func(a *phyinit.Advanced) *uint32 { return &a.ATxImpedance }),
	uia("memalerten", func(a *phyinit.Advanced) *uint32 { return &a.MemAlertEn }),
	uia("memalertpuimp", func(a *phyinit.Advanced) *uint32 { return &a.MemAlertPUImp }),
	uia("memalertvreflevel", func(a *phyinit.Advanced) *uint32 { return &a.MemAlertVrefLevel }),
	uia("memalertsyncbypass", func(a *phyinit.Advanced) *uint32 { return &a.MemAlertSyncBypass }),
	uia("disdynadrtri_0", func(a *phyinit.Advanced) *uint32 { return &a.DisDynAdrTri[0] }),
	uia("phymstrtraininterval_0", func(a *phyinit.Advanced) *uint32 { return &a.PhyMstrTrainInterval[0] }),
	uia("phymstrmaxreqtoack_0", func(a *phyinit.Advanced) *uint32 { return &a.PhyMstrMaxReqToAck[0] }),
	uia("wdqsext", func(a *phyinit.Advanced) *uint32 { return &a.WDQSExt }),
	uia("calinterval", func(a *phyinit.Advanced) *uint32 { return &a.CalInterval }),
	uia("calonce", func(a *phyinit.Advanced) *uint32 { return &a.CalOnce }),
	uia("lp4rl_0", func(a *phyinit.Advanced) *uint32 { return &a.LP4RL[0] }),
	uia("lp4wl_0", func(a *phyinit.Advanced) *uint32 { return &a.LP4WL[0] }),
	uia("lp4wls_0", func(a *phyinit.Advanced) *uint32 { return &a.LP4WLS[0] }),
	uia("lp4dbird_0", func(a *phyinit.Advanced) *uint32 { return &a.LP4DbiRd[0] }),
	uia("lp4dbiwr_0", func(a *phyinit.Advanced) *uint32 { return &a.LP4DbiWr[0] }),
	uia("lp4nwr_0", func(a *phyinit.Advanced) *uint32 { return &a.LP4NWR[0] }),
	uia("lp4lowpowerdrv", func(a *phyinit.Advanced) *uint32 { return &a.LP4LowPowerDrv }),
	uia("drambyteswap", func(a *phyinit.Advanced) *uint32 { return &a.DRAMByteSwap }),
	uia("rxenbackoff", func(a *phyinit.Advanced) *uint32 { return &a.RxEnBackOff }),
	uia("trainsequencectrl", func(a *phyinit.Advanced) *uint32 { return &a.TrainSequenceCtrl }),
	uia("snpsumctlopt", func(a *phyinit.Advanced) *uint32 { return &a.SnpsUmctlOpt }),
	uia("snpsumctlf0rc5x_0", func(a *phyinit.Advanced) *uint32 { return &a.SnpsUmctlF0RC5x[0] }),
	uia("txslewrisedq_0", func(a *phyinit.Advanced) *uint32 { return &a.TxSlewRiseDQ[0] }),
	uia("txslewfalldq_0", func(a *phyinit.Advanced) *uint32 { return &a.TxSlewFallDQ[0] }),
	uia("txslewriseac", func(a *phyinit.Advanced) *uint32 { return &a.TxSlewRiseAC }),
	uia("txslewfallac", func(a *phyinit.Advanced) *uint32 { return &a.TxSlewFallAC }),
	uia("disableretraining", func(a *phyinit.Advanced) *uint32 { return &a.DisableRetraining }),
	uia("disablephyupdate", func(a *phyinit.Advanced) *uint32 { return &a.DisablePhyUpdate }),
	uia("enablehighclkskewfix", func(a *phyinit.Advanced) *uint32 { return &a.EnableHighClkSkewFix }),
	uia("disableunusedaddrlns", func(a *phyinit.Advanced) *uint32 { return &a.DisableUnusedAddrLns }),
	uia("phyinitsequencenum", func(a *phyinit.Advanced) *uint32 { return &a.PhyInitSequenceNum }),
	uia("enabledficspolarityfix", func(a *phyinit.Advanced) *uint32 { return &a.EnableDfiCsPolarityFix }),
	uia("phyvref", func(a *phyinit.Advanced) *uint32 { return &a.PhyVref }),
	uia("sequencectrl_0", func(a *phyinit.Advanced) *uint32 { return &a.SequenceCtrl[0] }),
}

var uimFields = []Field{
	uim("mr0_0", func(m *phyinit.ModeRegister) *uint32 { return &m.MR0[0] }),
	uim("mr1_0", func(m *phyinit.ModeRegister) *uint32 { return &m.MR1[0] }),
	uim("mr2_0", func(m *phyinit.ModeRegister) *uint32 { return &m.MR2[0] }),
	uim("mr3_0", func(m *phyinit.ModeRegister) *uint32 { return &m.MR3[0] }),
	uim("mr4_0", func(m *phyinit.ModeRegister) *uint32 { return &m.MR4[0] }),
	uim("mr5_0", func(m *phyinit.ModeRegister) *uint32 { return &m.MR5[0] }),
	uim("mr6_0", func(m *phyinit.ModeRegister) *uint32 { return &m.MR6[0] }),
	uim("mr11_0", func(m *phyinit.ModeRegister) *uint32 { return &m.MR11[0] }),
	uim("mr12_0", func(m *phyinit.ModeRegister) *uint32 { return &m.MR12[0] }),
	uim("mr13_0", func(m *phyinit.ModeRegister) *uint32 { return &m.MR13[0] }),
	uim("mr14_0", func(m *phyinit.ModeRegister) *uint32 { return &m.MR14[0] }),
	uim("mr22_0", func(m *phyinit.ModeRegister) *uint32 { return &m.MR22[0] }),
}

// PLL settings are applied through the RCC, never written one by one.
var pllFields = []Field{
	{Name: "source", Param: func(c *Config) *uint32 { return &c.PLL.Source }},
	{Name: "mode", Param: func(c *Config) *uint32 { return &c.PLL.Mode }},
	{Name: "fbdiv", Param: func(c *Config) *uint32 { return &c.PLL.FBDiv }},
	{Name: "frefdiv", Param: func(c *Config) *uint32 { return &c.PLL.FRefDiv }},
	{Name: "fracin", Param: func(c *Config) *uint32 { return &c.PLL.FracIn }},
	{Name: "postdiv1", Param: func(c *Config) *uint32 { return &c.PLL.PostDiv1 }},
	{Name: "postdiv2", Param: func(c *Config) *uint32 { return &c.PLL.PostDiv2 }},
	{Name: "state", Param: func(c *Config) *uint32 { return &c.PLL.State }},
	{Name: "ssm_mode", Param: func(c *Config) *uint32 { return &c.PLL.SSMMode }},
	{Name: "ssm_spread", Param: func(c *Config) *uint32 { return &c.PLL.SSMSpread }},
	{Name: "ssm_divval", Param: func(c *Config) *uint32 { return &c.PLL.SSMDivVal }},
}

// Status registers have no snapshot counterpart.
var dynFields = []Field{
	{Name: "STAT", Target: HardwareRegister(regs.DDRC_STAT)},
	{Name: "MRSTAT", Target: HardwareRegister(regs.DDRC_MRSTAT)},
	{Name: "ZQSTAT", Target: HardwareRegister(regs.DDRC_ZQSTAT)},
	{Name: "DFISTAT", Target: HardwareRegister(regs.DDRC_DFISTAT)},
	{Name: "DBGCAM", Target: HardwareRegister(regs.DDRC_DBGCAM)},
	{Name: "DBGSTAT", Target: HardwareRegister(regs.DDRC_DBGSTAT)},
	{Name: "SWSTAT", Target: HardwareRegister(regs.DDRC_SWSTAT)},
	{Name: "POISONSTAT", Target: HardwareRegister(regs.DDRC_POISONSTAT)},
	{Name: "DERATESTAT", Target: HardwareRegister(regs.DDRC_DERATESTAT)},
	{Name: "PSTAT", Target: HardwareRegister(regs.DDRC_PSTAT)},
}
