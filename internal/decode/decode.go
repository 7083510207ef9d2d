// Package decode turns raw Smart Battery register words into battery quantities.
// Every function here is pure; none touches the bus.
package decode

import (
	"bytes"
	"fmt"

	"periph.io/x/conn/v3/physic"
)

// Temperature is reported in tenths of a kelvin.
const (
	zeroCelsiusTenths = 2731
)

// CelsiusTenths converts a temperature word to tenths of a degree Celsius.
func CelsiusTenths(raw uint16) int {
	return int(raw) - zeroCelsiusTenths
}

// FahrenheitTenths converts a temperature word to tenths of a degree Fahrenheit.
// Division truncates toward zero.
func FahrenheitTenths(raw uint16) int {
	return (int(raw)*18 - 45967) / 10
}

// Temperature returns the word as a periph temperature. 0 °C sits at 2731, as
// in CelsiusTenths, so Celsius() agrees with the tenths decoders.
func Temperature(raw uint16) physic.Temperature {
	return physic.ZeroCelsius + physic.Temperature(CelsiusTenths(raw))*100*physic.MilliKelvin
}

// Potential interprets a millivolt word.
func Potential(raw uint16) physic.ElectricPotential {
	return physic.ElectricPotential(raw) * physic.MilliVolt
}

// SignedCurrent interprets a two's complement current word. Negative values mean
// the pack is discharging.
func SignedCurrent(raw uint16) int16 {
	return int16(raw)
}

// Current interprets a signed milliampere word. Only meaningful when the battery
// reports in current units, see CapacityMode.
func Current(raw uint16) physic.ElectricCurrent {
	return physic.ElectricCurrent(SignedCurrent(raw)) * physic.MilliAmpere
}

// Tenths formats a tenths value as a decimal, e.g. 250 -> "25.0".
func Tenths(v int) string {
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s%d.%d", sign, v/10, v%10)
}

// String returns the text of a block payload up to the first NUL.
func String(payload []byte) string {
	if i := bytes.IndexByte(payload, 0); i >= 0 {
		payload = payload[:i]
	}
	return string(payload)
}

// Word composes the first two payload bytes little-endian, the same layout a
// word read uses. ok is false for a payload shorter than two bytes.
func Word(payload []byte) (v uint16, ok bool) {
	if len(payload) < 2 {
		return 0, false
	}
	return uint16(payload[0]) | uint16(payload[1])<<8, true
}
