package decode

// BatteryStatus bits.
const (
	StatusOverChargedAlarm        = 1 << 15
	StatusTerminateChargeAlarm    = 1 << 14
	StatusOverTemperatureAlarm    = 1 << 12
	StatusTerminateDischargeAlarm = 1 << 11
	StatusRemainingCapacityAlarm  = 1 << 9
	StatusRemainingTimeAlarm      = 1 << 8
	StatusInitialized             = 1 << 7
	StatusDischarging             = 1 << 6
	StatusFullyCharged            = 1 << 5
	StatusFullyDischarged         = 1 << 4

	statusErrorMask = 0x000F

	// The status is only reported bad when all six alarms are raised together.
	statusAlarmMask = StatusOverChargedAlarm | StatusTerminateChargeAlarm |
		StatusOverTemperatureAlarm | StatusTerminateDischargeAlarm |
		StatusRemainingCapacityAlarm | StatusRemainingTimeAlarm
)

// ErrorCode is the low nibble of BatteryStatus, the result of the last command.
type ErrorCode uint8

const (
	CodeOK ErrorCode = iota
	CodeBusy
	CodeReservedCommand
	CodeUnsupportedCommand
	CodeAccessDenied
	CodeOverUnderflow
	CodeBadSize
	CodeUnknown
)

var errorCodeNames = [...]string{
	"OK",
	"Busy",
	"ReservedCommand",
	"UnsupportedCommand",
	"AccessDenied",
	"Overflow/Underflow",
	"BadSize",
	"UnknownError",
}

func (e ErrorCode) String() string {
	if int(e) < len(errorCodeNames) {
		return errorCodeNames[e]
	}
	return "Reserved"
}

// Status is a decoded BatteryStatus word.
type Status struct {
	OverChargedAlarm        bool      `json:"over_charged_alarm"`
	TerminateChargeAlarm    bool      `json:"terminate_charge_alarm"`
	OverTemperatureAlarm    bool      `json:"over_temperature_alarm"`
	TerminateDischargeAlarm bool      `json:"terminate_discharge_alarm"`
	RemainingCapacityAlarm  bool      `json:"remaining_capacity_alarm"`
	RemainingTimeAlarm      bool      `json:"remaining_time_alarm"`
	Initialized             bool      `json:"initialized"`
	Discharging             bool      `json:"discharging"`
	FullyCharged            bool      `json:"fully_charged"`
	FullyDischarged         bool      `json:"fully_discharged"`
	ErrorCode               ErrorCode `json:"error_code"`
}

// DecodeStatus splits a BatteryStatus word into its flags.
func DecodeStatus(raw uint16) Status {
	return Status{
		OverChargedAlarm:        raw&StatusOverChargedAlarm != 0,
		TerminateChargeAlarm:    raw&StatusTerminateChargeAlarm != 0,
		OverTemperatureAlarm:    raw&StatusOverTemperatureAlarm != 0,
		TerminateDischargeAlarm: raw&StatusTerminateDischargeAlarm != 0,
		RemainingCapacityAlarm:  raw&StatusRemainingCapacityAlarm != 0,
		RemainingTimeAlarm:      raw&StatusRemainingTimeAlarm != 0,
		Initialized:             raw&StatusInitialized != 0,
		Discharging:             raw&StatusDischarging != 0,
		FullyCharged:            raw&StatusFullyCharged != 0,
		FullyDischarged:         raw&StatusFullyDischarged != 0,
		ErrorCode:               ErrorCode(raw & statusErrorMask),
	}
}

// StatusOK is false only when every one of bits 15, 14, 12, 11, 9 and 8 is set.
func StatusOK(raw uint16) bool {
	return raw&statusAlarmMask != statusAlarmMask
}

// IsCharging reports the discharging bit clear. A failed read (0) reads as
// charging.
func IsCharging(raw uint16) bool {
	return raw&StatusDischarging == 0
}

// IsFullyCharged reports the fully charged bit.
func IsFullyCharged(raw uint16) bool {
	return raw&StatusFullyCharged != 0
}
