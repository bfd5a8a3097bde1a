package mp2ddr

import (
	"fmt"
	"log/slog"

	"github.com/soypat/mp2ddr/ddrconf"
	"github.com/soypat/mp2ddr/regs"
)

// setReg loads group g from the snapshot into its targets: controller
// registers are written, PHY user inputs are stored for the training
// sequence to consume.
func (d *Device) setReg(g ddrconf.Group) error {
	d.debug("setReg", slog.String("group", g.String()))
	in := d.phy.UserInput()
	fields := g.Fields()
	for i := range fields {
		f := &fields[i]
		if f.Param == nil {
			return fmt.Errorf("%s.%s: %w", g, f.Name, ddrconf.ErrReadOnlyGroup)
		}
		v := *f.Param(d.cfg)
		switch f.Target.Kind() {
		case ddrconf.TargetRegister:
			d.wr(regs.DDRC_BASE+f.Target.Offset(), v)
		case ddrconf.TargetUserInput:
			*f.Target.Field(in) = v
		default:
			return fmt.Errorf("%s.%s: no load target", g, f.Name)
		}
	}
	return nil
}
