package battery

import (
	"sbsgauge/internal/decode"
	"sbsgauge/internal/registers"
)

// Snapshot is one pass over every register the protocol defines. Registers that
// returned nothing are listed in Missing and left out of the maps, so a zero in
// Words is a zero the device reported.
type Snapshot struct {
	Address  uint16 `json:"address"`
	Protocol string `json:"protocol"`

	Words   map[registers.Name]uint16 `json:"words"`
	Strings map[registers.Name]string `json:"strings,omitempty"`
	Data    map[registers.Name][]byte `json:"data,omitempty"`
	Missing []registers.Name          `json:"missing,omitempty"`

	Temperature  *Temperature        `json:"temperature,omitempty"`
	Status       *decode.Status      `json:"status,omitempty"`
	StatusOK     *bool               `json:"status_ok,omitempty"`
	Charging     *bool               `json:"charging,omitempty"`
	FullyCharged *bool               `json:"fully_charged,omitempty"`
	Mode         *decode.BatteryMode `json:"battery_mode,omitempty"`
	CapacityUnit string              `json:"capacity_unit,omitempty"`
	Manufactured *decode.Date        `json:"manufacture_date,omitempty"`
}

// Temperature holds one temperature reading in every supported scale.
type Temperature struct {
	KelvinTenths     uint16 `json:"kelvin_tenths"`
	CelsiusTenths    int    `json:"celsius_tenths"`
	FahrenheitTenths int    `json:"fahrenheit_tenths"`
}

// Block registers whose payload is not text.
var binaryBlocks = map[registers.Name]bool{
	registers.ManufacturerData: true,
	registers.ManufacturerInfo: true,
}

// Word returns a word from the snapshot.
func (s *Snapshot) Word(n registers.Name) (uint16, bool) {
	v, ok := s.Words[n]
	return v, ok
}

// Snapshot reads every register in the table once. The device address is taken
// at the start and every read goes to it, so a concurrent SetAddress applies to
// the next snapshot and never mixes two devices into one.
func (b *Battery) Snapshot() Snapshot {
	addr := b.conn.Addr()
	s := Snapshot{
		Address:  addr,
		Protocol: b.table.Protocol(),
		Words:    map[registers.Name]uint16{},
		Strings:  map[registers.Name]string{},
		Data:     map[registers.Name][]byte{},
	}

	for _, reg := range b.table.Registers() {
		switch {
		case reg.Kind == registers.Block && !registers.Numeric(reg.Name):
			payload, ok := b.blockAt(addr, reg)
			if !ok {
				s.Missing = append(s.Missing, reg.Name)
				continue
			}
			if binaryBlocks[reg.Name] {
				s.Data[reg.Name] = payload
			} else {
				s.Strings[reg.Name] = decode.String(payload)
			}
		default:
			v, ok := b.wordAt(addr, reg)
			if !ok {
				s.Missing = append(s.Missing, reg.Name)
				continue
			}
			s.Words[reg.Name] = v
		}
	}
	s.derive()
	if len(s.Missing) > 0 {
		b.log.Debugf("snapshot of 0x%02X: %d registers missing", s.Address, len(s.Missing))
	}
	return s
}

func (s *Snapshot) derive() {
	if raw, ok := s.Words[registers.Temperature]; ok {
		s.Temperature = &Temperature{
			KelvinTenths:     raw,
			CelsiusTenths:    decode.CelsiusTenths(raw),
			FahrenheitTenths: decode.FahrenheitTenths(raw),
		}
	}
	if raw, ok := s.Words[registers.BatteryStatus]; ok {
		st := decode.DecodeStatus(raw)
		okay := decode.StatusOK(raw)
		charging := decode.IsCharging(raw)
		full := decode.IsFullyCharged(raw)
		s.Status, s.StatusOK, s.Charging, s.FullyCharged = &st, &okay, &charging, &full
	}
	if raw, ok := s.Words[registers.BatteryMode]; ok {
		m := decode.DecodeBatteryMode(raw)
		s.Mode = &m
		s.CapacityUnit = decode.CapacityUnit(m)
	}
	if raw, ok := s.Words[registers.ManufactureDate]; ok {
		d := decode.DecodeDate(raw)
		s.Manufactured = &d
	}
}
