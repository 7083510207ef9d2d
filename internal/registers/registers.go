// Package registers holds the command tables for the Smart Battery protocol
// revisions the gauge understands. A table maps a logical quantity to the command
// byte that reads it and to how it is transferred.
package registers

import (
	"fmt"
	"sort"
	"strings"
)

// Kind is the SMBus access used for a register.
type Kind uint8

const (
	Word Kind = iota
	Block
)

func (k Kind) String() string {
	switch k {
	case Word:
		return "word"
	case Block:
		return "block"
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// ParseKind accepts "word" or "block".
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "word", "":
		return Word, nil
	case "block":
		return Block, nil
	}
	return Word, fmt.Errorf("registers: unknown access kind %q", s)
}

// Name identifies a logical quantity independent of its address.
type Name string

const (
	RemainingCapacityAlarm Name = "remaining_capacity_alarm"
	RemainingTimeAlarm     Name = "remaining_time_alarm"
	BatteryMode            Name = "battery_mode"
	Temperature            Name = "temperature"
	Voltage                Name = "voltage"
	Current                Name = "current"
	AverageCurrent         Name = "average_current"
	MaxError               Name = "max_error"
	RelativeStateOfCharge  Name = "relative_state_of_charge"
	AbsoluteStateOfCharge  Name = "absolute_state_of_charge"
	RemainingCapacity      Name = "remaining_capacity"
	FullChargeCapacity     Name = "full_charge_capacity"
	RunTimeToEmpty         Name = "run_time_to_empty"
	AverageTimeToEmpty     Name = "average_time_to_empty"
	AverageTimeToFull      Name = "average_time_to_full"
	ChargingCurrent        Name = "charging_current"
	ChargingVoltage        Name = "charging_voltage"
	BatteryStatus          Name = "battery_status"
	CycleCount             Name = "cycle_count"
	DesignCapacity         Name = "design_capacity"
	DesignVoltage          Name = "design_voltage"
	ManufactureDate        Name = "manufacture_date"
	SerialNumber           Name = "serial_number"
	ManufacturerName       Name = "manufacturer_name"
	DeviceName             Name = "device_name"
	DeviceChemistry        Name = "device_chemistry"
	ManufacturerData       Name = "manufacturer_data"
	StateOfHealth          Name = "state_of_health"

	// Names only the first revision of the command set used.
	Capacity         Name = "capacity"
	Charge           Name = "charge"
	TimeToEmpty      Name = "time_to_empty"
	TimeToFull       Name = "time_to_full"
	ManufacturerInfo Name = "manufacturer_info"
)

// Register describes one readable command.
type Register struct {
	Name Name
	Addr byte
	Kind Kind
	// MaxLen is the block payload limit, excluding the length byte.
	MaxLen int
}

func (r Register) String() string {
	if r.Kind == Block {
		return fmt.Sprintf("%s@0x%02X[block<=%d]", r.Name, r.Addr, r.MaxLen)
	}
	return fmt.Sprintf("%s@0x%02X", r.Name, r.Addr)
}

// Table is an immutable register map for one protocol revision.
type Table struct {
	protocol string
	regs     map[Name]Register
}

// NewTable builds a table. Later entries replace earlier ones with the same name.
func NewTable(protocol string, regs ...Register) *Table {
	t := &Table{protocol: protocol, regs: make(map[Name]Register, len(regs))}
	for _, r := range regs {
		t.regs[r.Name] = r
	}
	return t
}

// Protocol returns the revision name the table was built for.
func (t *Table) Protocol() string {
	return t.protocol
}

// Lookup returns the register for n, if the revision defines it.
func (t *Table) Lookup(n Name) (Register, bool) {
	r, ok := t.regs[n]
	return r, ok
}

// Registers returns every register ordered by address, then name.
func (t *Table) Registers() []Register {
	out := make([]Register, 0, len(t.regs))
	for _, r := range t.regs {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Addr != out[j].Addr {
			return out[i].Addr < out[j].Addr
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// With returns a copy of t with overrides applied on top.
func (t *Table) With(overrides ...Register) *Table {
	regs := make([]Register, 0, len(t.regs)+len(overrides))
	for _, r := range t.regs {
		regs = append(regs, r)
	}
	return NewTable(t.protocol, append(regs, overrides...)...)
}
