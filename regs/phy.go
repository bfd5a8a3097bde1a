package regs

// DDRPHYC CSR address space. CSR addresses are word indices; the APB byte
// address of a CSR is DDRPHYC_BASE + 4*csr and only the low 16 bits carry data.
//
// A CSR address is built as pstate<<20 | block | instance<<12 | sub<<8 | reg.
const (
	TANIB    = 0x00000
	TDBYTE   = 0x10000
	TMASTER  = 0x20000
	TACSM    = 0x40000
	TPPGC    = 0x70000
	TINITENG = 0x90000
	TDRTUB   = 0xC0000
	TAPBONLY = 0xD0000

	// Instance (chiplet) stride.
	C0 = 0x0000
	C1 = 0x1000
	// Sub-instance (nibble/lane) stride.
	I0 = 0x000
	I1 = 0x100

	// Nibbles per dbyte and lanes per dbyte, inclusive upper bounds.
	B_MAX = 1
	R_MIN = 0
	R_MAX = 8
	I_MAX = 8
)

// PSTATE returns the pstate selector bits of a CSR address.
func PSTATE(ps int) uint32 { return uint32(ps) << 20 }

// CSRAddr returns the APB byte address of csr relative to DDRPHYC_BASE.
func CSRAddr(csr uint32) uint32 { return 4 * csr }

// DDRPHY_APBONLY0_MICROCONTMUXSEL is the byte offset of MicroContMuxSel
// from DDRPHYC_BASE.
const DDRPHY_APBONLY0_MICROCONTMUXSEL = 4 * (TAPBONLY | CSR_MICROCONTMUXSEL_ADDR)

// CSR register indices within their block.
const (
	CSR_MICROCONTMUXSEL_ADDR  = 0x00
	CSR_UCCLKHCLKENABLES_ADDR = 0x80

	// Master block.
	CSR_PLLCTRL2_ADDR     = 0xC5
	CSR_PLLCTRL3_ADDR     = 0xDB
	CSR_VREFINGLOBAL_ADDR = 0xB2
	CSR_DLLGAINCTL_ADDR   = 0x7C
	CSR_DLLLOCKPARAM_ADDR = 0x7D
	CSR_HWTCAMODE_ADDR    = 0x77
	CSR_HWTMRL_ADDR       = 0x20
	CSR_HWTLPCSENA_ADDR   = 0x35
	CSR_HWTLPCSENB_ADDR   = 0x36
	CSR_CALRATE_ADDR      = 0x88
	CSR_CALZAP_ADDR       = 0x89
	CSR_SEQ0BDLY0_ADDR    = 0x0B
	CSR_SEQ0BDLY1_ADDR    = 0x0C
	CSR_SEQ0BDLY2_ADDR    = 0x0D
	CSR_SEQ0BDLY3_ADDR    = 0x0E
	CSR_DFIFREQRATIO_ADDR = 0xFA
	CSR_PLLBYPASS_ADDR    = 0xFB

	// Anib block.
	CSR_ATXDLY_ADDR       = 0x80
	CSR_ATXIMPEDANCE_ADDR = 0x43

	// Dbyte block.
	CSR_DFIMRL_ADDR               = 0x20
	CSR_DQDQSRCVCNTRL_ADDR        = 0x43
	CSR_TXIMPEDANCECTRL1_ADDR     = 0x49
	CSR_TXODTDRVSTREN_ADDR        = 0x4D
	CSR_RXPBDLYTG0_ADDR           = 0x68
	CSR_RXPBDLYTG1_ADDR           = 0x69
	CSR_RXENDLYTG0_ADDR           = 0x80
	CSR_RXENDLYTG1_ADDR           = 0x81
	CSR_RXCLKDLYTG0_ADDR          = 0x8C
	CSR_RXCLKDLYTG1_ADDR          = 0x8D
	CSR_TXDQDLYTG0_ADDR           = 0xC0
	CSR_TXDQDLYTG1_ADDR           = 0xC1
	CSR_TXDQSDLYTG0_ADDR          = 0xD0
	CSR_TXDQSDLYTG1_ADDR          = 0xD1
	CSR_PPTCTLSTATIC_ADDR         = 0xAA
	CSR_TRAININGINCDECDTSMEN_ADDR = 0x62
	CSR_TSMBYTE0_ADDR             = 0x01
	CSR_DQ0LNSEL_ADDR             = 0xA0 // DQ1..7LNSEL follow.
	CSR_PPTDQSCNTINVTRNTG0_ADDR   = 0x78
	CSR_PPTDQSCNTINVTRNTG1_ADDR   = 0x79

	// Initialization engine block.
	CSR_SEQ0BDISABLEFLAG0_ADDR = 0x0C // SEQ0BDISABLEFLAG1..7 follow.
	CSR_SEQ0BGPR1_ADDR         = 0x21 // SEQ0BGPR2..8 follow.

	// ACSM block.
	CSR_ACSMCTRL13_ADDR = 0x0D
	CSR_ACSMCTRL23_ADDR = 0x4B
)

// Field positions of CSRs written by the sequencer.
const (
	CSR_CALRUN_LSB      = 4
	CSR_CALONCE_LSB     = 5
	CSR_CALINTERVAL_LSB = 0

	CSR_DRVSTRENFSDQP_LSB = 0
	CSR_DRVSTRENFSDQN_LSB = 6
	CSR_ODTSTRENP_LSB     = 0
	CSR_ODTSTRENN_LSB     = 6
	CSR_ADRVSTRENP_LSB    = 0
	CSR_ADRVSTRENN_LSB    = 5
)
