package mp2ddr

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/soypat/mp2ddr/ddrconf"
	"github.com/soypat/mp2ddr/regs"
)

var (
	errInvalidValue = errors.New("mp2ddr: invalid value")
	errNoParameter  = errors.New("mp2ddr: register has no configuration parameter")
)

// liveValue reads the current value behind a descriptor: the controller
// register, the PHY user input or the running PLL setting.
func (d *Device) liveValue(g ddrconf.Group, f *ddrconf.Field) uint32 {
	switch f.Target.Kind() {
	case ddrconf.TargetRegister:
		return d.ctlRead(f.Target.Offset())
	case ddrconf.TargetUserInput:
		return *f.Target.Field(d.phy.UserInput())
	}
	if g == ddrconf.GroupPLL {
		live := ddrconf.Config{PLL: d.readPLL()}
		return *f.Param(&live)
	}
	return 0
}

// DumpReg prints live register values. name selects a base ("ctl", "uib",
// ...), a group ("timing", "swizzle", ...) or a single register; an empty
// name prints everything. With save set every group is printed in the
// #define format read by ddrconf.Parse, with the AXI ports closed so the
// values are stable.
func (d *Device) DumpReg(w io.Writer, name string, save bool) error {
	d.acquire()
	defer d.release()
	bw := bufio.NewWriter(w)
	var err error
	if save {
		err = d.dumpSave(bw)
	} else {
		err = d.dumpLive(bw, name)
	}
	return errjoin(err, bw.Flush())
}

func (d *Device) dumpSave(w io.Writer) error {
	err := d.disableAXIPort()
	if err != nil {
		return err
	}
	defer d.enableAXIPort()
	ddrconf.WriteHeader(w, d.cfg.Info)
	for _, g := range ddrconf.Groups() {
		if g.ReadOnly() {
			fmt.Fprint(w, "\n/* /!\\ No need to copy DDR dynamic registers to conf file */\n")
		}
		ddrconf.WriteGroupComment(w, g)
		fields := g.Fields()
		for i := range fields {
			f := &fields[i]
			v := d.liveValue(g, f)
			if g == ddrconf.GroupReg && f.Target.Offset() == regs.DDRC_SWCTL {
				v = 0 // Quasi-dynamic updates must start with sw_done low.
			}
			err = ddrconf.WriteDefine(w, g, f, v)
			if err != nil {
				return err
			}
		}
	}
	return nil
}

func (d *Device) dumpLive(w io.Writer, name string) error {
	found := false
	if filter, ok := ddrconf.ParseFilter(name); ok {
		for _, g := range ddrconf.Groups() {
			if !filter(g) {
				continue
			}
			found = true
			fmt.Fprintf(w, "==%s.%s==\n", g.Base(), g)
			fields := g.Fields()
			for i := range fields {
				f := &fields[i]
				if g == ddrconf.GroupPLL {
					fmt.Fprintf(w, "%s 0x%08X\n", f.Name, d.liveValue(g, f))
				} else {
					fmt.Fprintf(w, "%s= 0x%08X\n", strings.ToLower(f.Name), d.liveValue(g, f))
				}
			}
		}
	}
	if found {
		return nil
	}
	g, f, err := ddrconf.Lookup(name)
	if err != nil {
		fmt.Fprintf(w, "%s not found\n", name)
		return err
	}
	if g == ddrconf.GroupPLL {
		fmt.Fprintln(w, "Please read whole pll section content")
		return nil
	}
	_, err = fmt.Fprintf(w, "%s= 0x%08X\n", strings.ToLower(f.Name), d.liveValue(g, f))
	return err
}

// EditReg writes value to the live target of register name and prints the
// value read back. value accepts Go and C integer literal prefixes.
func (d *Device) EditReg(w io.Writer, name, value string) error {
	d.acquire()
	defer d.release()
	g, f, err := ddrconf.Lookup(name)
	if err != nil {
		fmt.Fprintf(w, "%s not found\n", name)
		return err
	}
	if g == ddrconf.GroupPLL {
		fmt.Fprintln(w, "Please use 'freq' command to modify PLL settings")
		return nil
	}
	v, err := parseValue(value)
	if err != nil {
		fmt.Fprintf(w, "invalid value %s\n", value)
		return err
	}
	switch f.Target.Kind() {
	case ddrconf.TargetRegister:
		d.ctlWrite(f.Target.Offset(), v)
	case ddrconf.TargetUserInput:
		*f.Target.Field(d.phy.UserInput()) = v
	}
	_, err = fmt.Fprintf(w, "%s= 0x%08X\n", strings.ToLower(f.Name), d.liveValue(g, f))
	return err
}

// DumpParam prints configuration snapshot values, selected as in DumpReg.
// Status registers have no snapshot value and are skipped.
func (d *Device) DumpParam(w io.Writer, name string) error {
	d.acquire()
	defer d.release()
	bw := bufio.NewWriter(w)
	err := d.dumpParam(bw, name)
	return errjoin(err, bw.Flush())
}

func (d *Device) dumpParam(w io.Writer, name string) error {
	found := false
	if filter, ok := ddrconf.ParseFilter(name); ok {
		for _, g := range ddrconf.Groups() {
			if g.ReadOnly() || !filter(g) {
				continue
			}
			found = true
			fmt.Fprintf(w, "==%s.%s==\n\n", g.Base(), g)
			fields := g.Fields()
			for i := range fields {
				fmt.Fprintf(w, "%s= 0x%08X\n", strings.ToLower(fields[i].Name), *fields[i].Param(d.cfg))
			}
		}
	}
	if found {
		return nil
	}
	g, f, err := ddrconf.Lookup(name)
	if err != nil {
		fmt.Fprintf(w, "%s not found\n", name)
		return err
	}
	if g.ReadOnly() {
		fmt.Fprintf(w, "no parameter %s\n", name)
		return errNoParameter
	}
	_, err = fmt.Fprintf(w, "%s= 0x%08X\n", strings.ToLower(f.Name), *f.Param(d.cfg))
	return err
}

// EditParam changes a configuration snapshot value. The change takes effect
// on the next Init.
func (d *Device) EditParam(w io.Writer, name, value string) error {
	d.acquire()
	defer d.release()
	g, f, err := ddrconf.Lookup(name)
	if err != nil {
		fmt.Fprintf(w, "%s not found\n", name)
		return err
	}
	v, err := parseValue(value)
	if err != nil {
		fmt.Fprintf(w, "invalid value %s\n", value)
		return err
	}
	if g.ReadOnly() {
		fmt.Fprintf(w, "no parameter %s\n", name)
		return errNoParameter
	}
	*f.Param(d.cfg) = v
	_, err = fmt.Fprintf(w, "%s= 0x%08X\n", strings.ToLower(f.Name), *f.Param(d.cfg))
	return err
}

// parseValue accepts decimal, 0x hexadecimal, 0 or 0o octal and 0b binary.
// Values wider than 32 bits are truncated as the register would.
func parseValue(s string) (uint32, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	v, err := strconv.ParseInt(s, 0, 64)
	if err != nil {
		u, uerr := strconv.ParseUint(s, 0, 64)
		if uerr != nil {
			return 0, fmt.Errorf("%w: %q", errInvalidValue, s)
		}
		return uint32(u), nil
	}
	return uint32(v), nil
}
