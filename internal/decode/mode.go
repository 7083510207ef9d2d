package decode

// BatteryMode bits. The remaining bits are reserved.
const (
	ModeInternalChargeController = 1 << 0
	ModePrimaryBatterySupport    = 1 << 1
	ModeConditionFlag            = 1 << 7
	ModeChargeControllerEnabled  = 1 << 8
	ModePrimaryBattery           = 1 << 9
	ModeAlarmMode                = 1 << 13
	ModeChargerMode              = 1 << 14
	ModeCapacityMode             = 1 << 15
)

// BatteryMode is a decoded BatteryMode word.
type BatteryMode struct {
	InternalChargeController bool `json:"internal_charge_controller"`
	PrimaryBatterySupport    bool `json:"primary_battery_support"`
	ConditionFlag            bool `json:"condition_flag"`
	ChargeControllerEnabled  bool `json:"charge_controller_enabled"`
	PrimaryBattery           bool `json:"primary_battery"`
	AlarmMode                bool `json:"alarm_mode"`
	ChargerMode              bool `json:"charger_mode"`
	// CapacityMode set means capacities are in 10mWh and rates in 10mW instead of
	// mAh and mA.
	CapacityMode bool `json:"capacity_mode"`
}

// DecodeBatteryMode extracts the eight defined flags.
func DecodeBatteryMode(raw uint16) BatteryMode {
	return BatteryMode{
		InternalChargeController: raw&ModeInternalChargeController != 0,
		PrimaryBatterySupport:    raw&ModePrimaryBatterySupport != 0,
		ConditionFlag:            raw&ModeConditionFlag != 0,
		ChargeControllerEnabled:  raw&ModeChargeControllerEnabled != 0,
		PrimaryBattery:           raw&ModePrimaryBattery != 0,
		AlarmMode:                raw&ModeAlarmMode != 0,
		ChargerMode:              raw&ModeChargerMode != 0,
		CapacityMode:             raw&ModeCapacityMode != 0,
	}
}

// CapacityUnit names the unit of RemainingCapacity, FullChargeCapacity,
// DesignCapacity and the capacity alarm for the given mode. The driver never
// converts these words itself.
func CapacityUnit(m BatteryMode) string {
	if m.CapacityMode {
		return "10mWh"
	}
	return "mAh"
}

// RateUnit names the unit of AtRate style values for the given mode.
func RateUnit(m BatteryMode) string {
	if m.CapacityMode {
		return "10mW"
	}
	return "mA"
}
