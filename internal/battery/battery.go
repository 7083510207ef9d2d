// Package battery is the query surface for one Smart Battery. Each method reads
// the backing register fresh from the device; nothing is cached.
//
// Methods never fail. A quantity the device did not return, or one the selected
// protocol revision does not define, reads as the zero value. Callers that must
// tell a real zero from a missing reading use Word, Block or Snapshot.
//
// Capacity and rate words are returned as raw magnitudes. Whether they are mAh/mA
// or 10mWh/10mW depends on BatteryMode().CapacityMode and is not resolved here.
package battery

import (
	"github.com/sirupsen/logrus"

	"sbsgauge/internal/decode"
	"sbsgauge/internal/registers"
	"sbsgauge/internal/smbus"
)

// Battery is a handle to one device.
type Battery struct {
	conn  *smbus.Conn
	table *registers.Table
	log   logrus.FieldLogger
}

// New returns a battery that reads registers from table over conn.
func New(conn *smbus.Conn, table *registers.Table, log logrus.FieldLogger) *Battery {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Battery{
		conn:  conn,
		table: table,
		log:   log.WithField("prefix", "battery"),
	}
}

// Address returns the bus address of the device.
func (b *Battery) Address() uint16 {
	return b.conn.Addr()
}

// SetAddress switches to another device address.
func (b *Battery) SetAddress(addr uint16) {
	b.conn.SetAddr(addr)
}

// Protocol returns the register table revision in use.
func (b *Battery) Protocol() string {
	return b.table.Protocol()
}

// Table returns the register table in use.
func (b *Battery) Table() *registers.Table {
	return b.table
}

// Word reads a word quantity. Block registers are composed little-endian from
// their first two payload bytes.
func (b *Battery) Word(n registers.Name) (uint16, bool) {
	reg, ok := b.lookup(n)
	if !ok {
		return 0, false
	}
	return b.wordAt(b.conn.Addr(), reg)
}

// Block reads a block quantity. Word registers come back as their two bytes.
func (b *Battery) Block(n registers.Name) ([]byte, bool) {
	reg, ok := b.lookup(n)
	if !ok {
		return []byte{}, false
	}
	return b.blockAt(b.conn.Addr(), reg)
}

func (b *Battery) lookup(n registers.Name) (registers.Register, bool) {
	reg, ok := b.table.Lookup(n)
	if !ok {
		b.log.Debugf("%s: not defined by %s", n, b.table.Protocol())
	}
	return reg, ok
}

func (b *Battery) wordAt(addr uint16, reg registers.Register) (uint16, bool) {
	if reg.Kind == registers.Block {
		limit := reg.MaxLen
		if limit < 2 {
			limit = 2
		}
		payload, ok := b.conn.ReadBlockAt(addr, reg.Addr, limit)
		if !ok {
			return 0, false
		}
		return decode.Word(payload)
	}
	return b.conn.ReadWordAt(addr, reg.Addr)
}

func (b *Battery) blockAt(addr uint16, reg registers.Register) ([]byte, bool) {
	if reg.Kind == registers.Word {
		v, ok := b.conn.ReadWordAt(addr, reg.Addr)
		if !ok {
			return []byte{}, false
		}
		return []byte{byte(v), byte(v >> 8)}, true
	}
	return b.conn.ReadBlockAt(addr, reg.Addr, reg.MaxLen)
}

func (b *Battery) word(n registers.Name) uint16 {
	v, _ := b.Word(n)
	return v
}

func (b *Battery) str(n registers.Name) string {
	payload, _ := b.Block(n)
	return decode.String(payload)
}

// RemainingCapacityAlarm returns the low capacity alarm threshold.
func (b *Battery) RemainingCapacityAlarm() uint16 { return b.word(registers.RemainingCapacityAlarm) }

// RemainingTimeAlarm returns the low remaining time alarm threshold in minutes.
func (b *Battery) RemainingTimeAlarm() uint16 { return b.word(registers.RemainingTimeAlarm) }

// BatteryMode returns the decoded mode flags.
func (b *Battery) BatteryMode() decode.BatteryMode {
	return decode.DecodeBatteryMode(b.word(registers.BatteryMode))
}

// Temperature returns the pack temperature in tenths of a kelvin.
func (b *Battery) Temperature() uint16 { return b.word(registers.Temperature) }

// TemperatureC returns tenths of a degree Celsius.
func (b *Battery) TemperatureC() int { return decode.CelsiusTenths(b.Temperature()) }

// TemperatureF returns tenths of a degree Fahrenheit.
func (b *Battery) TemperatureF() int { return decode.FahrenheitTenths(b.Temperature()) }

// Voltage returns the pack voltage in mV.
func (b *Battery) Voltage() uint16 { return b.word(registers.Voltage) }

// Current returns the raw current word; see decode.SignedCurrent.
func (b *Battery) Current() uint16 { return b.word(registers.Current) }

// AverageCurrent returns the raw one-minute rolling average current word.
func (b *Battery) AverageCurrent() uint16 { return b.word(registers.AverageCurrent) }

// MaxError returns the expected state of charge error in percent.
func (b *Battery) MaxError() uint16 { return b.word(registers.MaxError) }

// RelativeStateOfCharge returns percent of full charge capacity.
func (b *Battery) RelativeStateOfCharge() uint16 { return b.word(registers.RelativeStateOfCharge) }

// AbsoluteStateOfCharge returns percent of design capacity.
func (b *Battery) AbsoluteStateOfCharge() uint16 { return b.word(registers.AbsoluteStateOfCharge) }

// RemainingCapacity returns the remaining capacity word.
func (b *Battery) RemainingCapacity() uint16 { return b.word(registers.RemainingCapacity) }

// FullChargeCapacity returns the predicted capacity when fully charged.
func (b *Battery) FullChargeCapacity() uint16 { return b.word(registers.FullChargeCapacity) }

// RunTimeToEmpty returns minutes at the present discharge rate.
func (b *Battery) RunTimeToEmpty() uint16 { return b.word(registers.RunTimeToEmpty) }

// AverageTimeToEmpty returns minutes at the average discharge rate.
func (b *Battery) AverageTimeToEmpty() uint16 { return b.word(registers.AverageTimeToEmpty) }

// AverageTimeToFull returns minutes until full at the average charge rate.
func (b *Battery) AverageTimeToFull() uint16 { return b.word(registers.AverageTimeToFull) }

// ChargingCurrent returns the desired charging current in mA.
func (b *Battery) ChargingCurrent() uint16 { return b.word(registers.ChargingCurrent) }

// ChargingVoltage returns the desired charging voltage in mV.
func (b *Battery) ChargingVoltage() uint16 { return b.word(registers.ChargingVoltage) }

// BatteryStatus returns the raw status word.
func (b *Battery) BatteryStatus() uint16 { return b.word(registers.BatteryStatus) }

// Status returns the decoded status word.
func (b *Battery) Status() decode.Status { return decode.DecodeStatus(b.BatteryStatus()) }

// StatusOK reads the status word and applies decode.StatusOK.
func (b *Battery) StatusOK() bool { return decode.StatusOK(b.BatteryStatus()) }

// IsCharging reads the status word and applies decode.IsCharging.
func (b *Battery) IsCharging() bool { return decode.IsCharging(b.BatteryStatus()) }

// IsFullyCharged reads the status word and applies decode.IsFullyCharged.
func (b *Battery) IsFullyCharged() bool { return decode.IsFullyCharged(b.BatteryStatus()) }

// CycleCount returns the number of charge cycles.
func (b *Battery) CycleCount() uint16 { return b.word(registers.CycleCount) }

// DesignCapacity returns the theoretical capacity of a new pack.
func (b *Battery) DesignCapacity() uint16 { return b.word(registers.DesignCapacity) }

// DesignVoltage returns the theoretical voltage of a new pack in mV.
func (b *Battery) DesignVoltage() uint16 { return b.word(registers.DesignVoltage) }

// ManufactureDate returns the raw packed date word.
func (b *Battery) ManufactureDate() uint16 { return b.word(registers.ManufactureDate) }

// Date returns the decoded manufacture date.
func (b *Battery) Date() decode.Date { return decode.DecodeDate(b.ManufactureDate()) }

// ManufactureYear returns the manufacture year.
func (b *Battery) ManufactureYear() int { return decode.ManufactureYear(b.ManufactureDate()) }

// SerialNumber returns the serial number word.
func (b *Battery) SerialNumber() uint16 { return b.word(registers.SerialNumber) }

// StateOfHealth returns the state of health in percent.
func (b *Battery) StateOfHealth() uint16 { return b.word(registers.StateOfHealth) }

// ManufacturerName returns the manufacturer string.
func (b *Battery) ManufacturerName() string { return b.str(registers.ManufacturerName) }

// DeviceName returns the device name string.
func (b *Battery) DeviceName() string { return b.str(registers.DeviceName) }

// DeviceChemistry returns the chemistry code, e.g. "LION".
func (b *Battery) DeviceChemistry() string { return b.str(registers.DeviceChemistry) }

// ManufacturerData returns the opaque manufacturer data block.
func (b *Battery) ManufacturerData() []byte {
	payload, _ := b.Block(registers.ManufacturerData)
	return payload
}

// Capacity returns the legacy full capacity word.
func (b *Battery) Capacity() uint16 { return b.word(registers.Capacity) }

// Charge returns the legacy charge level in percent.
func (b *Battery) Charge() uint16 { return b.word(registers.Charge) }

// TimeToEmpty returns the legacy minutes-to-empty estimate.
func (b *Battery) TimeToEmpty() uint16 { return b.word(registers.TimeToEmpty) }

// TimeToFull returns the legacy minutes-to-full estimate.
func (b *Battery) TimeToFull() uint16 { return b.word(registers.TimeToFull) }

// ManufacturerInfo returns the legacy manufacturer info block.
func (b *Battery) ManufacturerInfo() []byte {
	payload, _ := b.Block(registers.ManufacturerInfo)
	return payload
}
