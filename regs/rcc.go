package regs

// RCC register offsets, relative to RCC_BASE.
const (
	RCC_MUXSELCFGR     = 0x1000
	RCC_PLL2CFGR1      = 0x2A0
	RCC_PLL2CFGR2      = 0x2A4
	RCC_PLL2CFGR3      = 0x2A8
	RCC_PLL2CFGR4      = 0x2AC
	RCC_PLL2CFGR5      = 0x2B0
	RCC_PLL2CFGR6      = 0x2B8
	RCC_PLL2CFGR7      = 0x2BC
	RCC_DDRCPCFGR      = 0x7A0
	RCC_DDRCAPBCFGR    = 0x7A4
	RCC_DDRPHYCAPBCFGR = 0x7A8
	RCC_DDRPHYCCFGR    = 0x7AC
	RCC_DDRCFGR        = 0x7B0
	RCC_DDRITFCFGR     = 0x7B4
)

// DDR clock domain enable/reset bits. The layout is shared by DDRCPCFGR,
// DDRCAPBCFGR, DDRPHYCAPBCFGR and DDRCFGR.
const (
	RCC_DDRxCFGR_RST  = 1 << 0
	RCC_DDRxCFGR_EN   = 1 << 1
	RCC_DDRxCFGR_LPEN = 1 << 2

	RCC_DDRCPCFGR_DDRCPRST  = RCC_DDRxCFGR_RST
	RCC_DDRCPCFGR_DDRCPEN   = RCC_DDRxCFGR_EN
	RCC_DDRCPCFGR_DDRCPLPEN = RCC_DDRxCFGR_LPEN

	RCC_DDRPHYCCFGR_DDRPHYCEN = 1 << 1
)

// DDRITFCFGR fields.
const (
	RCC_DDRITFCFGR_DDRRST_Pos    = 0
	RCC_DDRITFCFGR_DDRRST        = 1 << RCC_DDRITFCFGR_DDRRST_Pos
	RCC_DDRITFCFGR_DDRCKMOD_Pos  = 20
	RCC_DDRITFCFGR_DDRCKMOD_Msk  = 0x7 << RCC_DDRITFCFGR_DDRCKMOD_Pos
	RCC_DDRITFCFGR_DDRCKMOD_SSR  = 0x0 << RCC_DDRITFCFGR_DDRCKMOD_Pos
	RCC_DDRITFCFGR_DDRCKMOD_ASR  = 0x1 << RCC_DDRITFCFGR_DDRCKMOD_Pos
	RCC_DDRITFCFGR_DDRCKMOD_HSR  = 0x2 << RCC_DDRITFCFGR_DDRCKMOD_Pos
	RCC_DDRITFCFGR_DDRPHYDLP_Pos = 16
)

// PLL2 configuration fields.
const (
	RCC_PLLxCFGR1_PLLEN_Pos  = 8
	RCC_PLLxCFGR1_PLLRDY_Pos = 24
	RCC_PLLxCFGR1_CKREFST    = 1 << 28

	RCC_PLLxCFGR2_FREFDIV_Pos = 0
	RCC_PLLxCFGR2_FREFDIV_Msk = 0x3F
	RCC_PLLxCFGR2_FBDIV_Pos   = 16
	RCC_PLLxCFGR2_FBDIV_Msk   = 0xFFF

	RCC_PLLxCFGR3_FRACIN_Pos     = 0
	RCC_PLLxCFGR3_FRACIN_Msk     = 0xFFFFFF
	RCC_PLLxCFGR3_DOWNSPREAD_Pos = 24
	RCC_PLLxCFGR3_DACEN_Pos      = 25
	RCC_PLLxCFGR3_SSCGDIS_Pos    = 26

	RCC_PLLxCFGR4_DSMEN_Pos         = 8
	RCC_PLLxCFGR4_FOUTPOSTDIVEN_Pos = 9
	RCC_PLLxCFGR4_BYPASS_Pos        = 10

	RCC_PLLxCFGR5_DIVVAL_Pos = 0
	RCC_PLLxCFGR5_DIVVAL_Msk = 0xF
	RCC_PLLxCFGR5_SPREAD_Pos = 16
	RCC_PLLxCFGR5_SPREAD_Msk = 0x1F

	RCC_PLLxCFGR6_POSTDIV1_Msk = 0x7
	RCC_PLLxCFGR7_POSTDIV2_Msk = 0x7

	// PLL2 reference clock selector inside MUXSELCFGR.
	RCC_MUXSELCFGR_MUXSEL1_Pos = 4
	RCC_MUXSELCFGR_MUXSEL1_Msk = 0x3
)

// PLL parameter values as they appear in board configuration files.
const (
	RCC_PLLSOURCE_HSI = 0x0
	RCC_PLLSOURCE_HSE = 0x1
	RCC_PLLSOURCE_MSI = 0x2

	RCC_PLL_OFF = 0x0
	RCC_PLL_ON  = 0x1

	RCC_PLL_INTEGER    = 0x0
	RCC_PLL_FRACTIONAL = 0x1

	RCC_PLL_CENTERSPREAD = 0x0
	RCC_PLL_DOWNSPREAD   = 0x1
)

// PWR registers.
const (
	PWR_CR11           = 0x028
	PWR_CR11_DDRRETDIS = 1 << 0
)

// DDRDBG registers.
const (
	DDRDBG_LP_DISABLE                  = 0x30
	DDRDBG_LP_DISABLE_LPI_XPI_DISABLE  = 1 << 0
	DDRDBG_LP_DISABLE_LPI_DDRC_DISABLE = 1 << 8
	DDRDBG_BYPASS_PCLKEN               = 0x104
)

// RIMC (resource isolation master controller) fields. TDCID names the core
// owning the trusted domain.
const (
	RIMC_CR           = 0x00
	RIMC_CR_TDCID_Pos = 4
	RIMC_CR_TDCID_Msk = 0x7 << RIMC_CR_TDCID_Pos
	RIMC_CR_TDCID1    = 0x1 << RIMC_CR_TDCID_Pos // Cortex-A35
	RIMC_CR_TDCID2    = 0x2 << RIMC_CR_TDCID_Pos // Cortex-M33
)
