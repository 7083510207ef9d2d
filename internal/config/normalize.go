// internal/config/normalize.go
package config

import (
	"strings"
	"time"

	"sbsgauge/internal/registers"
	"sbsgauge/internal/smbus"
)

const (
	DefaultPort     = 3000
	DefaultSettleMs = 10
	DefaultLevel    = "info"
)

// Normalize applies defaults. It MUST be called only after Validate().
func Normalize(cfg *Config) {
	if cfg == nil {
		return
	}

	d := &cfg.Device
	if d.Address == 0 {
		d.Address = smbus.DefaultAddr
	}
	if d.Protocol == "" {
		d.Protocol = registers.SBS11
	}
	if d.SettleMs == 0 {
		d.SettleMs = DefaultSettleMs
	}
	for i := range d.Registers {
		r := &d.Registers[i]
		r.Name = strings.ToLower(strings.TrimSpace(r.Name))
		r.Kind = strings.ToLower(strings.TrimSpace(r.Kind))
		if r.Kind == "" {
			r.Kind = registers.Word.String()
		}
	}

	if cfg.Server.Port == 0 {
		cfg.Server.Port = DefaultPort
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = DefaultLevel
	}
}

// Table builds the register table: the protocol's built-in map with the
// configured registers applied on top.
func (d DeviceConfig) Table() (*registers.Table, error) {
	base, ok := registers.ForProtocol(d.Protocol)
	if !ok {
		return nil, errUnknownProtocol(d.Protocol)
	}
	overrides := make([]registers.Register, 0, len(d.Registers))
	for _, r := range d.Registers {
		kind, err := registers.ParseKind(r.Kind)
		if err != nil {
			return nil, err
		}
		overrides = append(overrides, registers.Register{
			Name:   registers.Name(r.Name),
			Addr:   r.Address,
			Kind:   kind,
			MaxLen: r.MaxLen,
		})
	}
	return base.With(overrides...), nil
}

// Options converts the timing fields for the transaction layer.
func (d DeviceConfig) Options() smbus.Options {
	return smbus.Options{
		Settle:     time.Duration(d.SettleMs) * time.Millisecond,
		Retries:    d.Retries,
		RetryDelay: time.Duration(d.RetryDelayMs) * time.Millisecond,
		PEC:        d.PEC,
	}
}
