// internal/config/validate.go
package config

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"sbsgauge/internal/registers"
	"sbsgauge/internal/smbus"
)

const maxRetries = 10

// Validate checks the configuration as written. Zero values mean "use default"
// and are accepted here; Normalize fills them in.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errors.New("config is nil")
	}
	if err := validateDevice(&cfg.Device); err != nil {
		return errors.Wrap(err, "device")
	}
	if cfg.Server.Port < 0 || cfg.Server.Port > 65535 {
		return errors.Errorf("server: port %d out of range", cfg.Server.Port)
	}
	if cfg.Log.Level != "" {
		if _, err := logrus.ParseLevel(cfg.Log.Level); err != nil {
			return errors.Wrap(err, "log")
		}
	}
	return nil
}

func validateDevice(d *DeviceConfig) error {
	// 7-bit addressing; 0x00-0x07 and 0x78-0x7F are reserved by I2C.
	if d.Address != 0 && (d.Address < 0x08 || d.Address > 0x77) {
		return errors.Errorf("address 0x%02X is not a usable 7-bit address", d.Address)
	}
	if d.Protocol != "" {
		if _, ok := registers.ForProtocol(d.Protocol); !ok {
			return errUnknownProtocol(d.Protocol)
		}
	}
	if d.SettleMs < 0 {
		return errors.Errorf("settle_ms %d is negative", d.SettleMs)
	}
	if d.Retries < 0 || d.Retries > maxRetries {
		return errors.Errorf("retries %d outside 0..%d", d.Retries, maxRetries)
	}
	if d.RetryDelayMs < 0 {
		return errors.Errorf("retry_delay_ms %d is negative", d.RetryDelayMs)
	}

	seen := map[string]bool{}
	for i, r := range d.Registers {
		name := strings.ToLower(strings.TrimSpace(r.Name))
		if name == "" {
			return errors.Errorf("registers[%d]: name is required", i)
		}
		if seen[name] {
			return errors.Errorf("registers[%d]: duplicate name %q", i, name)
		}
		seen[name] = true

		kind, err := registers.ParseKind(r.Kind)
		if err != nil {
			return errors.Wrapf(err, "registers[%d]", i)
		}
		switch kind {
		case registers.Block:
			if r.MaxLen < 1 || r.MaxLen > smbus.MaxBlock {
				return errors.Errorf("registers[%d]: max_len %d outside 1..%d", i, r.MaxLen, smbus.MaxBlock)
			}
		case registers.Word:
			if r.MaxLen != 0 {
				return errors.Errorf("registers[%d]: max_len is only valid for block registers", i)
			}
		}
	}
	return nil
}

func errUnknownProtocol(name string) error {
	return errors.Errorf("unknown protocol %q (known: %s)", name, strings.Join(registers.Protocols(), ", "))
}
