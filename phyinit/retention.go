package phyinit

import (
	"encoding/binary"
	"errors"
	"fmt"
	"log/slog"

	"github.com/soypat/mp2ddr/regs"
)

// RetReg is one PHY CSR and the value it held when saved.
type RetReg struct {
	CSR   uint32
	Value uint16
}

type retention struct {
	regs  []RetReg
	index map[uint32]int
	saved bool
}

func (r *retention) reset() {
	r.regs = r.regs[:0]
	clear(r.index)
	r.saved = false
}

func (r *retention) track(csr uint32) {
	if _, ok := r.index[csr]; ok {
		return
	}
	r.index[csr] = len(r.regs)
	r.regs = append(r.regs, RetReg{CSR: csr})
}

// trackTrainingResults adds the CSRs written by training firmware, which are
// never written by the sequencer itself.
func (s *Sequencer) trackTrainingResults() {
	b := &s.in.Basic
	lp4 := s.in.Type() == LPDDR4
	r := &s.ret
	r.track(regs.TMASTER | regs.CSR_PLLCTRL3_ADDR)

	for db := uint32(0); db < b.NumDbyte; db++ {
		c := db << 12
		for lane := uint32(0); lane <= regs.R_MAX; lane++ {
			l := lane << 8
			r.track(regs.TDBYTE | c | l | regs.CSR_RXPBDLYTG0_ADDR)
			if lp4 {
				r.track(regs.TDBYTE | c | l | regs.CSR_RXPBDLYTG1_ADDR)
			}
		}
		if lp4 {
			r.track(regs.TDBYTE | c | regs.CSR_PPTCTLSTATIC_ADDR)
			r.track(regs.TDBYTE | c | regs.CSR_TRAININGINCDECDTSMEN_ADDR)
			r.track(regs.TDBYTE | c | regs.CSR_TSMBYTE0_ADDR)
			for dq := uint32(0); dq < 8; dq++ {
				r.track(regs.TDBYTE | c | (regs.CSR_DQ0LNSEL_ADDR + dq))
			}
		}
	}

	for ps := 0; ps < int(b.NumPStates); ps++ {
		p := regs.PSTATE(ps)
		r.track(p | regs.TMASTER | regs.CSR_VREFINGLOBAL_ADDR)
		for anib := uint32(0); anib < b.NumAnib; anib++ {
			r.track(p | regs.TANIB | anib<<12 | regs.CSR_ATXDLY_ADDR)
		}
		for db := uint32(0); db < b.NumDbyte; db++ {
			c := db << 12
			r.track(p | regs.TDBYTE | c | regs.CSR_DFIMRL_ADDR)
			for nibble := uint32(0); nibble <= regs.B_MAX; nibble++ {
				r.track(p | regs.TDBYTE | c | nibble<<8 | regs.CSR_DQDQSRCVCNTRL_ADDR)
			}
			for nibble := uint32(0); nibble < 2; nibble++ {
				u := nibble << 8
				r.track(p | regs.TDBYTE | c | u | regs.CSR_RXENDLYTG0_ADDR)
				if lp4 {
					r.track(p | regs.TDBYTE | c | u | regs.CSR_RXENDLYTG1_ADDR)
				}
				r.track(p | regs.TDBYTE | c | u | regs.CSR_TXDQSDLYTG0_ADDR)
				if lp4 {
					r.track(p | regs.TDBYTE | c | u | regs.CSR_TXDQSDLYTG1_ADDR)
				}
				r.track(p | regs.TDBYTE | c | u | regs.CSR_RXCLKDLYTG0_ADDR)
				if lp4 {
					r.track(p | regs.TDBYTE | c | u | regs.CSR_RXCLKDLYTG1_ADDR)
				}
			}
			for lane := uint32(regs.R_MIN); lane <= regs.R_MAX; lane++ {
				r.track(p | regs.TDBYTE | c | lane<<8 | regs.CSR_TXDQDLYTG0_ADDR)
				if lp4 {
					r.track(p | regs.TDBYTE | c | lane<<8 | regs.CSR_TXDQDLYTG1_ADDR)
				}
			}
			if lp4 {
				r.track(p | regs.TDBYTE | c | regs.CSR_PPTDQSCNTINVTRNTG0_ADDR)
				r.track(p | regs.TDBYTE | c | regs.CSR_PPTDQSCNTINVTRNTG1_ADDR)
			}
		}
		for gpr := uint32(0); gpr < 8; gpr++ {
			r.track(p | regs.TINITENG | (regs.CSR_SEQ0BGPR1_ADDR + gpr))
		}
		r.track(p | regs.TMASTER | regs.CSR_DLLGAINCTL_ADDR)
		r.track(p | regs.TMASTER | regs.CSR_DLLLOCKPARAM_ADDR)
		if lp4 {
			r.track(p | regs.TMASTER | regs.CSR_HWTMRL_ADDR)
			r.track(p | regs.TINITENG | (regs.CSR_SEQ0BDISABLEFLAG0_ADDR + 6))
		}
	}

	r.track(regs.TMASTER | regs.CSR_HWTCAMODE_ADDR)
	if lp4 {
		r.track(regs.TMASTER | regs.CSR_HWTLPCSENA_ADDR)
		r.track(regs.TMASTER | regs.CSR_HWTLPCSENB_ADDR)
		r.track(regs.TACSM | regs.CSR_ACSMCTRL13_ADDR)
		r.track(regs.TACSM | regs.CSR_ACSMCTRL23_ADDR)
	}
}

// SaveRetRegs reads back every tracked CSR so the trained state can be
// restored after the PHY loses power.
func (s *Sequencer) SaveRetRegs() {
	s.trackTrainingResults()
	s.openCSRAccess()
	for i := range s.ret.regs {
		s.ret.regs[i].Value = uint16(s.readCSR(s.ret.regs[i].CSR))
	}
	s.closeCSRAccess()
	s.ret.saved = true
	s.debug("phyinit:saveretregs", slog.Int("n", len(s.ret.regs)))
}

// RestoreSequence writes the saved retention registers back to the PHY.
func (s *Sequencer) RestoreSequence() error {
	if !s.ret.saved {
		return ErrNoRetention
	}
	s.openCSRAccess()
	for _, r := range s.ret.regs {
		s.writeCtl(r.CSR, uint32(r.Value))
	}
	s.closeCSRAccess()
	s.debug("phyinit:restore", slog.Int("n", len(s.ret.regs)))
	return nil
}

// Retention returns a copy of the saved retention registers.
func (s *Sequencer) Retention() []RetReg {
	if !s.ret.saved {
		return nil
	}
	return append([]RetReg(nil), s.ret.regs...)
}

// SetRetention replaces the retention set, typically with one loaded from
// storage by UnmarshalRetention.
func (s *Sequencer) SetRetention(rr []RetReg) {
	s.ret.reset()
	for _, r := range rr {
		s.ret.track(r.CSR)
		s.ret.regs[s.ret.index[r.CSR]].Value = r.Value
	}
	s.ret.saved = len(rr) > 0
}

// openCSRAccess gives the APB access to the internal CSRs with the
// microcontroller and training clocks on.
func (s *Sequencer) openCSRAccess() {
	s.writeCtl(regs.TAPBONLY|regs.CSR_MICROCONTMUXSEL_ADDR, 0)
	s.writeCtl(regs.TDRTUB|regs.CSR_UCCLKHCLKENABLES_ADDR, 3)
}

func (s *Sequencer) closeCSRAccess() {
	s.writeCtl(regs.TDRTUB|regs.CSR_UCCLKHCLKENABLES_ADDR, missionClocks(s.in.Type()))
	s.writeCtl(regs.TAPBONLY|regs.CSR_MICROCONTMUXSEL_ADDR, 1)
}

var (
	retMagic   = [4]byte{'P', 'H', 'Y', 'R'}
	errRetData = errors.New("phyinit: malformed retention data")
)

const retEntrySize = 8

// MarshalRetention encodes rr as little-endian records after a magic and a count.
func MarshalRetention(rr []RetReg) []byte {
	b := make([]byte, 0, 8+retEntrySize*len(rr))
	b = append(b, retMagic[:]...)
	b = binary.LittleEndian.AppendUint32(b, uint32(len(rr)))
	for _, r := range rr {
		b = binary.LittleEndian.AppendUint32(b, r.CSR)
		b = binary.LittleEndian.AppendUint16(b, r.Value)
		b = binary.LittleEndian.AppendUint16(b, 0)
	}
	return b
}

// UnmarshalRetention decodes data written by MarshalRetention.
func UnmarshalRetention(b []byte) ([]RetReg, error) {
	if len(b) < 8 || [4]byte(b[:4]) != retMagic {
		return nil, errRetData
	}
	n := binary.LittleEndian.Uint32(b[4:])
	b = b[8:]
	if uint64(len(b)) != uint64(n)*retEntrySize {
		return nil, fmt.Errorf("%w: %d records in %d bytes", errRetData, n, len(b))
	}
	rr := make([]RetReg, n)
	for i := range rr {
		rec := b[i*retEntrySize:]
		rr[i] = RetReg{
			CSR:   binary.LittleEndian.Uint32(rec),
			Value: binary.LittleEndian.Uint16(rec[4:]),
		}
	}
	return rr, nil
}
