// Package ddrconf holds the DDR configuration snapshot and the register
// descriptor table that ties each snapshot value to its target: a controller
// register or a PHY user input field.
//
// The table is grouped the way the loader consumes it. Status registers and
// PLL settings are also described so debug tooling can print them by name.
package ddrconf

import (
	"errors"
	"strconv"
	"strings"

	"github.com/soypat/mp2ddr/phyinit"
)

var (
	ErrReadOnlyGroup   = errors.New("ddrconf: group has no configuration values")
	ErrUnknownRegister = errors.New("ddrconf: unknown register")
)

// Group identifies a register group of the descriptor table.
type Group uint8

const (
	GroupReg Group = iota
	GroupTiming
	GroupMap
	GroupPerf
	GroupUIBasic
	GroupUIAdvanced
	GroupUIModeRegister
	GroupUISwizzle
	GroupPLL
	GroupDynamic
	numGroups
)

// Base is the address space a group's targets live in.
type Base uint8

const (
	BaseCtl Base = iota
	BaseUIB
	BaseUIA
	BaseUIM
	BaseUIS
	BasePLL
	BaseDynamic
)

var baseNames = [...]string{
	BaseCtl:     "ctl",
	BaseUIB:     "uib",
	BaseUIA:     "uia",
	BaseUIM:     "uim",
	BaseUIS:     "uis",
	BasePLL:     "pll",
	BaseDynamic: "ctl", // Status registers sit in the controller block.
}

func (b Base) String() string { return baseNames[b] }

type groupInfo struct {
	name   string
	base   Base
	fields []Field
}

var groups [numGroups]groupInfo

func init() {
	uisFields := make([]Field, phyinit.SwizzleWords)
	for i := range uisFields {
		i := i
		uisFields[i] = Field{
			Name:   "UIS_SWIZZLE_" + strconv.Itoa(i),
			Param:  func(c *Config) *uint32 { return &c.UIS[i] },
			Target: UserInput(func(u *phyinit.UserInput) *uint32 { return &u.Swizzle[i] }),
		}
	}
	groups = [numGroups]groupInfo{
		GroupReg:            {name: "static", base: BaseCtl, fields: regFields},
		GroupTiming:         {name: "timing", base: BaseCtl, fields: timingFields},
		GroupMap:            {name: "map", base: BaseCtl, fields: mapFields},
		GroupPerf:           {name: "perf", base: BaseCtl, fields: perfFields},
		GroupUIBasic:        {name: "basic", base: BaseUIB, fields: uibFields},
		GroupUIAdvanced:     {name: "advanced", base: BaseUIA, fields: uiaFields},
		GroupUIModeRegister: {name: "mode_register", base: BaseUIM, fields: uimFields},
		GroupUISwizzle:      {name: "swizzle", base: BaseUIS, fields: uisFields},
		GroupPLL:            {name: "pll", base: BasePLL, fields: pllFields},
		GroupDynamic:        {name: "dyn", base: BaseDynamic, fields: dynFields},
	}
	indexDefines()
}

// Groups returns every group in table order.
func Groups() []Group {
	g := make([]Group, numGroups)
	for i := range g {
		g[i] = Group(i)
	}
	return g
}

func (g Group) String() string { return groups[g].name }

func (g Group) Base() Base { return groups[g].base }

// Fields returns the group's descriptors. The slice must not be modified.
func (g Group) Fields() []Field { return groups[g].fields }

// ReadOnly reports whether the group has no snapshot values.
func (g Group) ReadOnly() bool { return g == GroupDynamic }

// Field describes one register or user input.
type Field struct {
	Name string
	// Param returns the snapshot value. Nil for status registers.
	Param  func(*Config) *uint32
	Target Target
}

// DefineName is the macro name used in the #define configuration format.
func (f *Field) DefineName(g Group) string {
	if g == GroupPLL {
		return "DDR_PLL_" + strings.ToUpper(f.Name)
	}
	return "DDR_" + strings.ToUpper(f.Name)
}

// TargetKind discriminates Target.
type TargetKind uint8

const (
	TargetNone TargetKind = iota
	TargetRegister
	TargetUserInput
)

// Target is where a snapshot value is loaded: a controller register offset
// from DDRC_BASE, or a field of the PHY user input structure.
type Target struct {
	kind   TargetKind
	offset uint32
	field  func(*phyinit.UserInput) *uint32
}

// HardwareRegister targets the controller register at offset.
func HardwareRegister(offset uint32) Target {
	return Target{kind: TargetRegister, offset: offset}
}

// UserInput targets a PHY user input field.
func UserInput(field func(*phyinit.UserInput) *uint32) Target {
	return Target{kind: TargetUserInput, field: field}
}

func (t Target) Kind() TargetKind { return t.kind }

// Offset returns the register offset of a TargetRegister.
func (t Target) Offset() uint32 { return t.offset }

// Field resolves a TargetUserInput against in.
func (t Target) Field(in *phyinit.UserInput) *uint32 { return t.field(in) }

func uib(name string, f func(*phyinit.Basic) *uint32) Field {
	return Field{
		Name:   "UIB_" + name,
		Param:  func(c *Config) *uint32 { return f(&c.UIB) },
		Target: UserInput(func(u *phyinit.UserInput) *uint32 { return f(&u.Basic) }),
	}
}

func uia(name string, f func(*phyinit.Advanced) *uint32) Field {
	return Field{
		Name:   "UIA_" + name,
		Param:  func(c *Config) *uint32 { return f(&c.UIA) },
		Target: UserInput(func(u *phyinit.UserInput) *uint32 { return f(&u.Advanced) }),
	}
}

func uim(name string, f func(*phyinit.ModeRegister) *uint32) Field {
	return Field{
		Name:   "UIM_" + name,
		Param:  func(c *Config) *uint32 { return f(&c.UIM) },
		Target: UserInput(func(u *phyinit.UserInput) *uint32 { return f(&u.ModeRegister) }),
	}
}

// Lookup finds a descriptor by name, ignoring case.
func Lookup(name string) (Group, *Field, error) {
	for g := range groups {
		fields := groups[g].fields
		for i := range fields {
			if strings.EqualFold(fields[i].Name, name) {
				return Group(g), &fields[i], nil
			}
		}
	}
	return 0, nil, ErrUnknownRegister
}

// Filter selects groups for dumping.
type Filter func(Group) bool

// ParseFilter interprets name as a base name ("ctl", "uib", ...) or a group
// name ("static", "timing", ...). An empty name selects everything.
func ParseFilter(name string) (Filter, bool) {
	if name == "" {
		return func(Group) bool { return true }, true
	}
	for b, bn := range baseNames {
		if strings.EqualFold(bn, name) {
			want := baseNames[b]
			return func(g Group) bool { return g.Base().String() == want }, true
		}
	}
	for g := range groups {
		if strings.EqualFold(groups[g].name, name) {
			want := Group(g)
			return func(g Group) bool { return g == want }, true
		}
	}
	return nil, false
}
