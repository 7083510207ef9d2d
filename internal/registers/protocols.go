package registers

import "sort"

// Protocol revision names.
const (
	SBS11  = "sbs-1.1"
	Legacy = "legacy"
	BQ40Z  = "bq40z"
)

// Block payload limits.
const (
	NameLen      = 20
	ChemistryLen = 4
	DataLen      = 32
)

func w(n Name, addr byte) Register { return Register{Name: n, Addr: addr, Kind: Word} }

func b(n Name, addr byte, limit int) Register {
	return Register{Name: n, Addr: addr, Kind: Block, MaxLen: limit}
}

var sbs11 = []Register{
	w(RemainingCapacityAlarm, 0x01),
	w(RemainingTimeAlarm, 0x02),
	w(BatteryMode, 0x03),
	w(Temperature, 0x08),
	w(Voltage, 0x09),
	w(Current, 0x0A),
	w(AverageCurrent, 0x0B),
	w(MaxError, 0x0C),
	w(RelativeStateOfCharge, 0x0D),
	w(AbsoluteStateOfCharge, 0x0E),
	w(RemainingCapacity, 0x0F),
	w(FullChargeCapacity, 0x10),
	w(RunTimeToEmpty, 0x11),
	w(AverageTimeToEmpty, 0x12),
	w(AverageTimeToFull, 0x13),
	w(ChargingCurrent, 0x14),
	w(ChargingVoltage, 0x15),
	w(BatteryStatus, 0x16),
	w(CycleCount, 0x17),
	w(DesignCapacity, 0x18),
	w(DesignVoltage, 0x19),
	w(ManufactureDate, 0x1B),
	w(SerialNumber, 0x1C),
	b(ManufacturerName, 0x20, NameLen),
	b(DeviceName, 0x21, NameLen),
	b(DeviceChemistry, 0x22, ChemistryLen),
	b(ManufacturerData, 0x23, DataLen),
	w(StateOfHealth, 0x4F),
}

// 0x0D reads Charge here, not RelativeStateOfCharge. The two revisions are kept
// apart on purpose.
var legacy = []Register{
	w(Temperature, 0x08),
	w(Voltage, 0x09),
	w(Current, 0x0A),
	w(Charge, 0x0D),
	w(Capacity, 0x10),
	w(TimeToEmpty, 0x12),
	w(TimeToFull, 0x13),
	w(BatteryStatus, 0x16),
	w(CycleCount, 0x17),
	w(DesignCapacity, 0x18),
	w(DesignVoltage, 0x19),
	w(ManufactureDate, 0x1B),
	w(SerialNumber, 0x1C),
	b(ManufacturerName, 0x20, NameLen),
	b(DeviceName, 0x21, NameLen),
	b(DeviceChemistry, 0x22, ChemistryLen),
	b(ManufacturerData, 0x23, DataLen),
	b(ManufacturerInfo, 0x25, DataLen),
}

// TI gauges return StateOfHealth as a block of two bytes.
var bq40z = append(append([]Register(nil), sbs11...), b(StateOfHealth, 0x4F, 2))

var builtin = map[string][]Register{
	SBS11:  sbs11,
	Legacy: legacy,
	BQ40Z:  bq40z,
}

// ForProtocol returns the built-in table for a revision name.
func ForProtocol(name string) (*Table, bool) {
	regs, ok := builtin[name]
	if !ok {
		return nil, false
	}
	return NewTable(name, regs...), true
}

// Protocols lists the built-in revision names.
func Protocols() []string {
	out := make([]string, 0, len(builtin))
	for name := range builtin {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

var numeric = func() map[Name]bool {
	m := map[Name]bool{}
	for _, regs := range [][]Register{sbs11, legacy} {
		for _, r := range regs {
			if r.Kind == Word {
				m[r.Name] = true
			}
		}
	}
	return m
}()

// Numeric reports whether a standard register carries a number. Such a register
// stays a number when a device variant serves it through block access.
func Numeric(n Name) bool {
	return numeric[n]
}
