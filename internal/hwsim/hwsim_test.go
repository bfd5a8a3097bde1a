package hwsim

import (
	"testing"

	"github.com/soypat/mp2ddr/regs"
)

func TestSWDoneHandshake(t *testing.T) {
	s := New(nil)
	swctl := uint32(regs.DDRC_BASE + regs.DDRC_SWCTL)
	swstat := uint32(regs.DDRC_BASE + regs.DDRC_SWSTAT)
	s.Write32(swctl, 0)
	if s.Read32(swstat) != 0 {
		t.Fatal("ack should drop when sw_done is cleared")
	}
	s.Write32(swctl, regs.DDRC_SWCTL_SW_DONE)
	if s.Read32(swstat) != regs.DDRC_SWSTAT_SW_DONE_ACK {
		t.Fatal("ack should rise when sw_done is set")
	}
	s.StallSWDone = true
	s.Write32(swctl, regs.DDRC_SWCTL_SW_DONE)
	if s.Read32(swstat) != 0 {
		t.Fatal("stalled ack should stay low")
	}
}

func TestStatSelfRefresh(t *testing.T) {
	s := New(nil)
	stat := uint32(regs.DDRC_BASE + regs.DDRC_STAT)
	s.Write32(regs.DDRC_BASE+regs.DDRC_PWRCTL, regs.DDRC_PWRCTL_SELFREF_SW)
	got := s.Read32(stat)
	if got != regs.DDRC_STAT_OPERATING_MODE_SR|regs.DDRC_STAT_SELFREF_TYPE_SR {
		t.Errorf("software self-refresh STAT=%#x", got)
	}
	s.Write32(regs.DDRC_BASE+regs.DDRC_PWRCTL, regs.DDRC_PWRCTL_SELFREF_EN)
	if got := s.Read32(stat) & regs.DDRC_STAT_SELFREF_TYPE_Msk; got != 0 {
		t.Errorf("busy controller entered auto self-refresh: %#x", got)
	}
	s.Idle = true
	if got := s.Read32(stat) & regs.DDRC_STAT_SELFREF_TYPE_Msk; got != regs.DDRC_STAT_SELFREF_TYPE_ASR {
		t.Errorf("idle controller STAT type=%#x", got)
	}
}

func TestResetKeepsRetention(t *testing.T) {
	s := New(nil)
	s.Write32(regs.PWR_BASE+regs.PWR_CR11, regs.PWR_CR11_DDRRETDIS)
	s.Write32(regs.DDRC_BASE+regs.DDRC_MSTR, regs.DDRC_MSTR_DDR4)
	s.Reset()
	if s.Read32(regs.PWR_BASE+regs.PWR_CR11) != regs.PWR_CR11_DDRRETDIS {
		t.Error("PWR CR11 lost across reset")
	}
	if s.Read32(regs.DDRC_BASE+regs.DDRC_MSTR) != 0 {
		t.Error("MSTR survived reset")
	}
	if s.Writes() != 0 {
		t.Error("write counter not cleared")
	}
}

func TestDRAMWrapAndFaults(t *testing.T) {
	d := NewDRAM(regs.DDR_MEM_BASE, 1<<30)
	d.Write32(regs.DDR_MEM_BASE+1<<30+8, 0x1234)
	if d.Read32(regs.DDR_MEM_BASE+8) != 0x1234 {
		t.Error("1GiB device should alias at 1GiB")
	}
	d.StuckDataLow = 1 << 3
	d.Write32(regs.DDR_MEM_BASE, 0xFF)
	if got := d.Read32(regs.DDR_MEM_BASE); got != 0xF7 {
		t.Errorf("stuck data bit: got %#x", got)
	}
	d.StuckDataLow = 0
	d.StuckAddrLow = 1 << 4
	d.Write32(regs.DDR_MEM_BASE+0x10, 0xCAFE)
	if d.Read32(regs.DDR_MEM_BASE) != 0xCAFE {
		t.Error("stuck address bit should alias 0x10 onto 0")
	}
}
