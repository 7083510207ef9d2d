package main

import (
	"os"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"

	"sbsgauge/internal/battery"
	"sbsgauge/internal/config"
	"sbsgauge/internal/logging"
	"sbsgauge/internal/server"
	"sbsgauge/internal/smbus"
)

var app = &cli.App{
	Name:  "sbsgauge",
	Usage: "read a Smart Battery System fuel gauge over I2C",
	Flags: []cli.Flag{
		&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "YAML configuration file"},
		&cli.StringFlag{Name: "bus", Usage: "I2C bus name, empty for the first one"},
		&cli.UintFlag{Name: "address", Usage: "battery address (default 0x0B)"},
		&cli.StringFlag{Name: "protocol", Usage: "register table: sbs-1.1, legacy or bq40z"},
		&cli.StringFlag{Name: "log-level", Usage: "panic, fatal, error, warn, info, debug or trace"},
	},
	Commands: []*cli.Command{
		{
			Name:  "serve",
			Usage: "serve battery telemetry as JSON over HTTP",
			Flags: []cli.Flag{
				&cli.IntFlag{Name: "port", Usage: "HTTP port (default 3000)"},
			},
			Action: serve,
		},
		{
			Name:   "dump",
			Usage:  "read every register once and print a table",
			Action: dump,
		},
	},
}

func main() {
	if err := app.Run(os.Args); err != nil {
		logrus.Fatal(err)
	}
}

func loadConfig(c *cli.Context) (*config.Config, error) {
	cfg := &config.Config{}
	if path := c.String("config"); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if c.IsSet("bus") {
		cfg.Device.Bus = c.String("bus")
	}
	if c.IsSet("address") {
		cfg.Device.Address = uint16(c.Uint("address"))
	}
	if c.IsSet("protocol") {
		cfg.Device.Protocol = c.String("protocol")
	}
	if c.IsSet("log-level") {
		cfg.Log.Level = c.String("log-level")
	}
	if c.IsSet("port") {
		cfg.Server.Port = c.Int("port")
	}

	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	config.Normalize(cfg)
	return cfg, nil
}

// open initialises the host drivers and returns the battery and the bus to close.
func open(cfg *config.Config, log *logrus.Logger) (*battery.Battery, i2c.BusCloser, error) {
	if _, err := host.Init(); err != nil {
		return nil, nil, errors.Wrap(err, "host init")
	}

	bus, err := i2creg.Open(cfg.Device.Bus)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "failed to open I2C %q", cfg.Device.Bus)
	}

	tbl, err := cfg.Device.Table()
	if err != nil {
		bus.Close()
		return nil, nil, err
	}

	opts := cfg.Device.Options()
	opts.Logger = log
	conn := smbus.New(smbus.FromBus(bus), cfg.Device.Address, opts)

	log.WithField("prefix", "main").Infof("Battery on %s at 0x%02X, protocol %s", bus, cfg.Device.Address, tbl.Protocol())
	return battery.New(conn, tbl, log), bus, nil
}

func serve(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	log := logging.New(os.Stderr, cfg.Log.Level)

	bat, bus, err := open(cfg, log)
	if err != nil {
		return err
	}
	defer bus.Close()

	return errors.Wrap(server.Run(cfg.Server.Port, bat, log), "server failed")
}

func dump(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	log := logging.New(os.Stderr, cfg.Log.Level)

	bat, bus, err := open(cfg, log)
	if err != nil {
		return err
	}
	defer bus.Close()

	renderSnapshot(os.Stdout, bat.Table(), bat.Snapshot())
	return nil
}
