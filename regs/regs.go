// Package regs holds the memory map, register offsets and bit fields of the
// STM32MP2 DDR subsystem: the uMCTL2 controller (DDRC), the PHY APB window
// (DDRPHYC), and the RCC, PWR, DDRDBG and RIFSC blocks the bring-up touches.
//
// Register names follow the reference manual so they can be grepped against it.
package regs

// Peripheral base addresses.
const (
	DDRC_BASE    = 0x48040000
	DDRPHYC_BASE = 0x48C00000
	DDRDBG_BASE  = 0x4AF00000
	RCC_BASE     = 0x44200000
	PWR_BASE     = 0x44210000
	RIFSC_BASE   = 0x42080000
	RIMC_BASE    = RIFSC_BASE + 0xC00

	// DDR_MEM_BASE is where the DRAM is mapped once the controller is up.
	DDR_MEM_BASE = 0x80000000
)

// DDRC register offsets, relative to DDRC_BASE.
const (
	DDRC_MSTR       = 0x000
	DDRC_STAT       = 0x004
	DDRC_MRCTRL0    = 0x010
	DDRC_MRCTRL1    = 0x014
	DDRC_MRSTAT     = 0x018
	DDRC_MRCTRL2    = 0x01C
	DDRC_DERATEEN   = 0x020
	DDRC_DERATEINT  = 0x024
	DDRC_DERATESTAT = 0x028
	DDRC_DERATECTL  = 0x02C
	DDRC_PWRCTL     = 0x030
	DDRC_PWRTMG     = 0x034
	DDRC_HWLPCTL    = 0x038
	DDRC_RFSHCTL0   = 0x050
	DDRC_RFSHCTL1   = 0x054
	DDRC_RFSHCTL3   = 0x060
	DDRC_RFSHTMG    = 0x064
	DDRC_RFSHTMG1   = 0x068
	DDRC_CRCPARCTL0 = 0x0C0
	DDRC_CRCPARCTL1 = 0x0C4
	DDRC_INIT0      = 0x0D0
	DDRC_INIT1      = 0x0D4
	DDRC_INIT2      = 0x0D8
	DDRC_INIT3      = 0x0DC
	DDRC_INIT4      = 0x0E0
	DDRC_INIT5      = 0x0E4
	DDRC_INIT6      = 0x0E8
	DDRC_INIT7      = 0x0EC
	DDRC_DIMMCTL    = 0x0F0
	DDRC_RANKCTL    = 0x0F4
	DDRC_DRAMTMG0   = 0x100 // DRAMTMG1..15 follow at 4 byte stride.
	DDRC_ZQCTL0     = 0x180
	DDRC_ZQCTL1     = 0x184
	DDRC_ZQCTL2     = 0x188
	DDRC_ZQSTAT     = 0x18C
	DDRC_DFITMG0    = 0x190
	DDRC_DFITMG1    = 0x194
	DDRC_DFILPCFG0  = 0x198
	DDRC_DFILPCFG1  = 0x19C
	DDRC_DFIUPD0    = 0x1A0
	DDRC_DFIUPD1    = 0x1A4
	DDRC_DFIUPD2    = 0x1A8
	DDRC_DFIMISC    = 0x1B0
	DDRC_DFITMG2    = 0x1B4
	DDRC_DFITMG3    = 0x1B8
	DDRC_DFISTAT    = 0x1BC
	DDRC_DBICTL     = 0x1C0
	DDRC_DFIPHYMSTR = 0x1C4
	DDRC_ADDRMAP0   = 0x200 // ADDRMAP1..11 follow at 4 byte stride.
	DDRC_ODTCFG     = 0x240
	DDRC_ODTMAP     = 0x244
	DDRC_SCHED      = 0x250
	DDRC_SCHED1     = 0x254
	DDRC_PERFHPR1   = 0x25C
	DDRC_PERFLPR1   = 0x264
	DDRC_PERFWR1    = 0x26C
	DDRC_DBG0       = 0x300
	DDRC_DBG1       = 0x304
	DDRC_DBGCAM     = 0x308
	DDRC_DBGCMD     = 0x30C
	DDRC_DBGSTAT    = 0x310
	DDRC_SWCTL      = 0x320
	DDRC_SWSTAT     = 0x324
	DDRC_POISONCFG  = 0x36C
	DDRC_POISONSTAT = 0x370
	DDRC_PSTAT      = 0x3FC
	DDRC_PCCFG      = 0x400

	// Per AXI port registers. Port n is at offset + n*DDRC_PORT_STRIDE.
	DDRC_PCFGR_0     = 0x404
	DDRC_PCFGW_0     = 0x408
	DDRC_PCTRL_0     = 0x490
	DDRC_PCFGQOS0_0  = 0x494
	DDRC_PCFGQOS1_0  = 0x498
	DDRC_PCFGWQOS0_0 = 0x49C
	DDRC_PCFGWQOS1_0 = 0x4A0
	DDRC_PORT_STRIDE = 0xB0
	DDRC_PCTRL_1     = DDRC_PCTRL_0 + DDRC_PORT_STRIDE
	DDRC_PCFGR_1     = DDRC_PCFGR_0 + DDRC_PORT_STRIDE
	DDRC_PCFGW_1     = DDRC_PCFGW_0 + DDRC_PORT_STRIDE
	DDRC_PCFGQOS0_1  = DDRC_PCFGQOS0_0 + DDRC_PORT_STRIDE
	DDRC_PCFGQOS1_1  = DDRC_PCFGQOS1_0 + DDRC_PORT_STRIDE
	DDRC_PCFGWQOS0_1 = DDRC_PCFGWQOS0_0 + DDRC_PORT_STRIDE
	DDRC_PCFGWQOS1_1 = DDRC_PCFGWQOS1_0 + DDRC_PORT_STRIDE
)

// DDRC_DRAMTMG returns the offset of DRAMTMGn.
func DDRC_DRAMTMG(n int) uint32 { return DDRC_DRAMTMG0 + 4*uint32(n) }

// DDRC_ADDRMAP returns the offset of ADDRMAPn.
func DDRC_ADDRMAP(n int) uint32 { return DDRC_ADDRMAP0 + 4*uint32(n) }

// MSTR bits.
const (
	DDRC_MSTR_DDR3   = 1 << 0
	DDRC_MSTR_LPDDR2 = 1 << 2
	DDRC_MSTR_LPDDR3 = 1 << 3
	DDRC_MSTR_DDR4   = 1 << 4
	DDRC_MSTR_LPDDR4 = 1 << 5
)

// STAT fields.
const (
	DDRC_STAT_OPERATING_MODE_Pos    = 0
	DDRC_STAT_OPERATING_MODE_Msk    = 0x7 << DDRC_STAT_OPERATING_MODE_Pos
	DDRC_STAT_OPERATING_MODE_INIT   = 0x0
	DDRC_STAT_OPERATING_MODE_NORMAL = 0x1
	DDRC_STAT_OPERATING_MODE_PD     = 0x2
	DDRC_STAT_OPERATING_MODE_SR     = 0x3

	DDRC_STAT_SELFREF_TYPE_Pos = 4
	DDRC_STAT_SELFREF_TYPE_Msk = 0x3 << DDRC_STAT_SELFREF_TYPE_Pos
	// Self refresh entered by software request or hardware low power interface.
	DDRC_STAT_SELFREF_TYPE_SR = 0x2 << DDRC_STAT_SELFREF_TYPE_Pos
	// Self refresh entered automatically after idle.
	DDRC_STAT_SELFREF_TYPE_ASR = 0x3 << DDRC_STAT_SELFREF_TYPE_Pos
)

// PWRCTL bit positions.
const (
	DDRC_PWRCTL_SELFREF_EN_Pos              = 0
	DDRC_PWRCTL_POWERDOWN_EN_Pos            = 1
	DDRC_PWRCTL_DEEPPOWERDOWN_EN_Pos        = 2
	DDRC_PWRCTL_EN_DFI_DRAM_CLK_DISABLE_Pos = 3
	DDRC_PWRCTL_MPSM_EN_Pos                 = 4
	DDRC_PWRCTL_SELFREF_SW_Pos              = 5
	DDRC_PWRCTL_STAY_IN_SELFREF_Pos         = 6
	DDRC_PWRCTL_DIS_CAM_DRAIN_SELFREF_Pos   = 7

	DDRC_PWRCTL_SELFREF_EN              = 1 << DDRC_PWRCTL_SELFREF_EN_Pos
	DDRC_PWRCTL_POWERDOWN_EN            = 1 << DDRC_PWRCTL_POWERDOWN_EN_Pos
	DDRC_PWRCTL_EN_DFI_DRAM_CLK_DISABLE = 1 << DDRC_PWRCTL_EN_DFI_DRAM_CLK_DISABLE_Pos
	DDRC_PWRCTL_SELFREF_SW              = 1 << DDRC_PWRCTL_SELFREF_SW_Pos
)

// HWLPCTL fields.
const (
	DDRC_HWLPCTL_HW_LP_EN_Pos           = 0
	DDRC_HWLPCTL_HW_LP_EXIT_IDLE_EN_Pos = 1
	DDRC_HWLPCTL_HW_LP_IDLE_X32_Pos     = 16
	DDRC_HWLPCTL_HW_LP_IDLE_X32_Msk     = 0xFFF << DDRC_HWLPCTL_HW_LP_IDLE_X32_Pos

	DDRC_HWLPCTL_HW_LP_EN           = 1 << DDRC_HWLPCTL_HW_LP_EN_Pos
	DDRC_HWLPCTL_HW_LP_EXIT_IDLE_EN = 1 << DDRC_HWLPCTL_HW_LP_EXIT_IDLE_EN_Pos
)

// RFSHCTL3 bit positions.
const (
	DDRC_RFSHCTL3_DIS_AUTO_REFRESH_Pos     = 0
	DDRC_RFSHCTL3_REFRESH_UPDATE_LEVEL_Pos = 1

	DDRC_RFSHCTL3_DIS_AUTO_REFRESH     = 1 << DDRC_RFSHCTL3_DIS_AUTO_REFRESH_Pos
	DDRC_RFSHCTL3_REFRESH_UPDATE_LEVEL = 1 << DDRC_RFSHCTL3_REFRESH_UPDATE_LEVEL_Pos
)

// DFIMISC and DFISTAT bit positions.
const (
	DDRC_DFIMISC_DFI_INIT_COMPLETE_EN_Pos = 0
	DDRC_DFIMISC_DFI_INIT_START_Pos       = 5
	DDRC_DFISTAT_DFI_INIT_COMPLETE_Pos    = 0

	DDRC_DFIMISC_DFI_INIT_COMPLETE_EN = 1 << DDRC_DFIMISC_DFI_INIT_COMPLETE_EN_Pos
	DDRC_DFIMISC_DFI_INIT_START       = 1 << DDRC_DFIMISC_DFI_INIT_START_Pos
	DDRC_DFISTAT_DFI_INIT_COMPLETE    = 1 << DDRC_DFISTAT_DFI_INIT_COMPLETE_Pos
)

// DBG1 and DBGCAM bits.
const (
	DDRC_DBG1_DIS_DQ_Pos  = 0
	DDRC_DBG1_DIS_HIF_Pos = 1
	DDRC_DBG1_DIS_HIF     = 1 << DDRC_DBG1_DIS_HIF_Pos

	DDRC_DBGCAM_DBG_RD_Q_EMPTY            = 1 << 25
	DDRC_DBGCAM_DBG_WR_Q_EMPTY            = 1 << 26
	DDRC_DBGCAM_RD_DATA_PIPELINE_EMPTY    = 1 << 28
	DDRC_DBGCAM_WR_DATA_PIPELINE_EMPTY    = 1 << 29
	DDRC_DBGCAM_DATA_PIPELINE_EMPTY       = DDRC_DBGCAM_WR_DATA_PIPELINE_EMPTY | DDRC_DBGCAM_RD_DATA_PIPELINE_EMPTY
	DDRC_DBGCAM_Q_AND_DATA_PIPELINE_EMPTY = DDRC_DBGCAM_DBG_WR_Q_EMPTY | DDRC_DBGCAM_DBG_RD_Q_EMPTY | DDRC_DBGCAM_DATA_PIPELINE_EMPTY
)

// SWCTL, SWSTAT, PCTRL and PSTAT bits.
const (
	DDRC_SWCTL_SW_DONE_Pos      = 0
	DDRC_SWSTAT_SW_DONE_ACK_Pos = 0
	DDRC_PCTRL_PORT_EN_Pos      = 0

	DDRC_SWCTL_SW_DONE      = 1 << DDRC_SWCTL_SW_DONE_Pos
	DDRC_SWSTAT_SW_DONE_ACK = 1 << DDRC_SWSTAT_SW_DONE_ACK_Pos
	DDRC_PCTRL_PORT_EN      = 1 << DDRC_PCTRL_PORT_EN_Pos

	DDRC_PSTAT_RD_PORT_BUSY_0 = 1 << 0
	DDRC_PSTAT_RD_PORT_BUSY_1 = 1 << 1
	DDRC_PSTAT_WR_PORT_BUSY_0 = 1 << 16
	DDRC_PSTAT_WR_PORT_BUSY_1 = 1 << 17
)
