package ddrconf

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/soypat/mp2ddr/phyinit"
	"github.com/soypat/mp2ddr/regs"
)

func TestDefault(t *testing.T) {
	if len(defines) == 0 {
		t.Fatal("define index is empty")
	}
	if _, _, err := Lookup("MSTR"); err != nil {
		t.Fatal(err)
	}
	cfg := Default()
	if cfg.Reg.MSTR == 0 || cfg.Info.Size == 0 {
		t.Errorf("default preset not loaded: %+v", cfg.Info)
	}
}

func TestPresets(t *testing.T) {
	sizes := map[string]uint32{
		"ddr3-2x4Gbits-2x16bits-933MHz":     0x40000000,
		"ddr4-2x8Gbits-2x16bits-1200MHz":    0x80000000,
		"lpddr4-1x16Gbits-1x32bits-1200MHz": 0x80000000,
	}
	if len(Presets()) != len(sizes) {
		t.Errorf("got %d presets, want %d", len(Presets()), len(sizes))
	}
	for _, name := range Presets() {
		cfg, err := Preset(name)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if cfg.Info.Size != sizes[name] {
			t.Errorf("%s: size %#x, want %#x", name, cfg.Info.Size, sizes[name])
		}
		if cfg.PLL.Source != regs.RCC_PLLSOURCE_HSE || cfg.PLL.State != regs.RCC_PLL_ON {
			t.Errorf("%s: symbolic PLL values not resolved: %+v", name, cfg.PLL)
		}
	}
	cfg, err := Preset("ddr4-2x8Gbits-2x16bits-1200MHz")
	if err != nil {
		t.Fatal(err)
	}
	switch {
	case cfg.Info.Name != "DDR4 2x8Gbits 2x16bits 1200MHz":
		t.Errorf("name %q", cfg.Info.Name)
	case cfg.Info.Speed != 1200000:
		t.Errorf("speed %d", cfg.Info.Speed)
	case cfg.Reg.MSTR != 0x01040010:
		t.Errorf("MSTR %#x", cfg.Reg.MSTR)
	case cfg.PLL.FBDiv != 59 || cfg.PLL.FracIn != 0xF3B8CA:
		t.Errorf("PLL %+v", cfg.PLL)
	case phyinit.DRAMType(cfg.UIB.DRAMType) != phyinit.DDR4 || cfg.UIB.Frequency[0] != 1199:
		t.Errorf("basic user input %+v", cfg.UIB)
	case cfg.UIA.ATxImpedance != 40 || cfg.UIA.CalInterval != 9:
		t.Errorf("advanced user input %+v", cfg.UIA)
	}

	ddr3, _ := Preset("ddr3-2x4Gbits-2x16bits-933MHz")
	if phyinit.DRAMType(ddr3.UIB.DRAMType) != phyinit.DDR3 || ddr3.UIA.ODTImpedance[0] != 0x3c || ddr3.UIA.DisableRetraining != 1 {
		t.Errorf("ddr3 user input %+v %+v", ddr3.UIB, ddr3.UIA)
	}
	lp4, _ := Preset("lpddr4-1x16Gbits-1x32bits-1200MHz")
	if phyinit.DRAMType(lp4.UIB.DRAMType) != phyinit.LPDDR4 {
		t.Errorf("lpddr4 type %d", lp4.UIB.DRAMType)
	}
	if _, err := Preset("sdram"); err == nil {
		t.Error("expected error for unknown preset")
	}
}

func TestWriteReproducesPresets(t *testing.T) {
	for name, src := range presets {
		cfg, err := Parse(strings.NewReader(src))
		if err != nil {
			t.Fatal(err)
		}
		var buf bytes.Buffer
		if err := Write(&buf, cfg); err != nil {
			t.Fatal(err)
		}
		if buf.String() != src {
			t.Errorf("%s: written configuration differs from source", name)
		}
		again, err := Parse(&buf)
		if err != nil {
			t.Fatal(err)
		}
		if *again != *cfg {
			t.Errorf("%s: round trip mismatch", name)
		}
	}
}

func TestParse(t *testing.T) {
	const src = `#ifndef STM32MP2XX_DDR_H
#define STM32MP2XX_DDR_H
/*
 * multi line
 * #define DDR_BOGUS 1
 */
#define DDR_MEM_NAME	"test part"
#define DDR_MEM_SPEED	533000
#define DDR_MSTR 0x10U
#define DDR_PLL_SOURCE RCC_PLLSOURCE_MSI
#define DDR_PLL_SSM_MODE RCC_PLL_DOWNSPREAD
#define DDR_PLL_FBDIV 71
#define DDR_UIS_SWIZZLE_43 0x2a
#define DDR_STAT 0x3
#endif
`
	cfg, err := Parse(strings.NewReader(src))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Info.Name != "test part" || cfg.Info.Speed != 533000 || cfg.Reg.MSTR != 0x10 {
		t.Errorf("got %+v MSTR=%#x", cfg.Info, cfg.Reg.MSTR)
	}
	if cfg.PLL.Source != regs.RCC_PLLSOURCE_MSI || cfg.PLL.SSMMode != regs.RCC_PLL_DOWNSPREAD || cfg.PLL.FBDiv != 71 {
		t.Errorf("PLL %+v", cfg.PLL)
	}
	if cfg.UIS[43] != 0x2a {
		t.Errorf("swizzle %#x", cfg.UIS[43])
	}

	_, err = Parse(strings.NewReader("#define DDR_BOGUS 1\n"))
	if !errors.Is(err, ErrUnknownRegister) {
		t.Errorf("want ErrUnknownRegister, got %v", err)
	}
	_, err = Parse(strings.NewReader("#define DDR_MSTR 0xZZ\n"))
	if !errors.Is(err, errSyntax) {
		t.Errorf("want syntax error, got %v", err)
	}
}

// Every user input descriptor must resolve the same field through its
// snapshot accessor and its PHY target.
func TestUserInputTargets(t *testing.T) {
	var cfg Config
	next := uint32(1)
	for _, g := range Groups() {
		for _, f := range g.Fields() {
			if f.Param != nil {
				*f.Param(&cfg) = next
				next++
			}
		}
	}
	in := phyinit.UserInput{Basic: cfg.UIB, Advanced: cfg.UIA, ModeRegister: cfg.UIM, Swizzle: cfg.UIS}
	seen := make(map[uint32]string)
	for _, g := range Groups() {
		for _, f := range g.Fields() {
			if f.Param != nil {
				v := *f.Param(&cfg)
				if other, dup := seen[v]; dup {
					t.Errorf("%s shares storage with %s", f.Name, other)
				}
				seen[v] = f.Name
			}
			switch f.Target.Kind() {
			case TargetUserInput:
				if got, want := *f.Target.Field(&in), *f.Param(&cfg); got != want {
					t.Errorf("%s: target %d, snapshot %d", f.Name, got, want)
				}
			case TargetRegister:
				if f.Target.Offset()&3 != 0 || f.Target.Offset() >= 0x4000 {
					t.Errorf("%s: bad offset %#x", f.Name, f.Target.Offset())
				}
			case TargetNone:
				if g != GroupPLL {
					t.Errorf("%s: no target outside PLL group", f.Name)
				}
			}
		}
	}
}

func TestLookup(t *testing.T) {
	for _, tc := range []struct {
		name  string
		group Group
	}{
		{"mstr", GroupReg},
		{"DRAMTMG15", GroupTiming},
		{"addrmap11", GroupMap},
		{"pctrl_1", GroupPerf},
		{"UIB_DRAMTYPE", GroupUIBasic},
		{"uia_calinterval", GroupUIAdvanced},
		{"uim_mr22_0", GroupUIModeRegister},
		{"uis_swizzle_0", GroupUISwizzle},
		{"FBDIV", GroupPLL},
		{"stat", GroupDynamic},
	} {
		g, f, err := Lookup(tc.name)
		if err != nil {
			t.Errorf("%s: %v", tc.name, err)
			continue
		}
		if g != tc.group || !strings.EqualFold(f.Name, tc.name) {
			t.Errorf("%s: got %s in %s", tc.name, f.Name, g)
		}
	}
	if _, _, err := Lookup("DDR_MSTR"); !errors.Is(err, ErrUnknownRegister) {
		t.Errorf("want ErrUnknownRegister, got %v", err)
	}
}

func TestParseFilter(t *testing.T) {
	match := func(name string) (out []Group) {
		filter, ok := ParseFilter(name)
		if !ok {
			t.Fatalf("%q not accepted", name)
		}
		for _, g := range Groups() {
			if filter(g) {
				out = append(out, g)
			}
		}
		return out
	}
	if got := match(""); len(got) != int(numGroups) {
		t.Errorf("empty filter matched %v", got)
	}
	if got := match("ctl"); len(got) != 5 || got[4] != GroupDynamic {
		t.Errorf("ctl matched %v", got)
	}
	if got := match("TIMING"); len(got) != 1 || got[0] != GroupTiming {
		t.Errorf("timing matched %v", got)
	}
	if got := match("uis"); len(got) != 1 || got[0] != GroupUISwizzle {
		t.Errorf("uis matched %v", got)
	}
	if _, ok := ParseFilter("MSTR"); ok {
		t.Error("register name accepted as filter")
	}
}
