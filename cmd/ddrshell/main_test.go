package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/soypat/mp2ddr/regs"
)

func runScript(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	err := run(args, strings.NewReader(""), &out)
	if err != nil {
		t.Fatal(err)
	}
	return out.String()
}

func TestShellCommands(t *testing.T) {
	out := runScript(t, "-log", "warn", "-c",
		"init;print MSTR;edit MSTR 0x01040011;param DRAMTMG0;sr mode sw;sr mode;sr entry;sr exit;test rw;info;freq;bogus")
	for _, want := range []string{
		"init done (cold boot), self-refresh mode hw\n",
		"mstr= 0x01040010\n",
		"mstr= 0x01040011\n",
		"dramtmg0= 0x",
		"\nsw\n",
		"test rw: pass\n",
		"name:  DDR4 2x8Gbits 2x16bits 1200MHz\n",
		"fbdiv= 0x0000003B\n",
		"error: bogus: unknown command",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output lacks %q:\n%s", want, out)
		}
	}
}

func TestShellStepping(t *testing.T) {
	out := runScript(t, "-interactive", "-log", "warn", "-c",
		"init;next;print MSTR;next;restart;go;quit;info")
	if n := strings.Count(out, "step 0: reset\n"); n != 2 {
		t.Errorf("reset step reached %d times:\n%s", n, out)
	}
	for _, want := range []string{"step 1: ctl_init\n", "step 2: phy_init\n", "mstr= 0x01040010\n", "init done"} {
		if !strings.Contains(out, want) {
			t.Errorf("output lacks %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "step 3: ready") {
		t.Error("go should run through the remaining steps")
	}
	if strings.Contains(out, "name:") {
		t.Error("commands ran after quit")
	}
}

func TestShellSave(t *testing.T) {
	out := runScript(t, "-preset", "ddr3-2x4Gbits-2x16bits-933MHz", "-log", "error", "-c", "init;save")
	if !strings.Contains(out, "#define DDR_MEM_NAME  \"DDR3 2x4Gbits 2x16bits 933MHz\"\n") {
		t.Errorf("save header missing:\n%s", out)
	}
	if !strings.Contains(out, "#define DDR_SWCTL 0x00000000\n") {
		t.Error("SWCTL not cleared in save output")
	}
}

func TestOptionErrors(t *testing.T) {
	for _, args := range [][]string{
		{"-preset", "sdram"},
		{"-preset", "ddr3-2x4Gbits-2x16bits-933MHz", "-conf", "x.conf"},
		{"-log", "loud"},
		{"-core", "z80"},
		{"a", "b"},
	} {
		var out bytes.Buffer
		if err := run(args, strings.NewReader(""), &out); err == nil {
			t.Errorf("%v: expected error", args)
		}
	}
}

func TestRegisterName(t *testing.T) {
	if got := registerName(regs.DDRC_BASE + regs.DDRC_MSTR); got != "MSTR" {
		t.Errorf("got %q", got)
	}
	if got := registerName(regs.RCC_BASE); got != "" {
		t.Errorf("got %q for an RCC address", got)
	}
}
