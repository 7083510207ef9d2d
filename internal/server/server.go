package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"periph.io/x/conn/v3/physic"

	"sbsgauge/internal/battery"
	"sbsgauge/internal/decode"
	"sbsgauge/internal/registers"
)

type Gauge interface {
	Snapshot() battery.Snapshot
}

type BatteryResponse struct {
	Level         int     `json:"sensor.battery_level"`
	Voltage       float64 `json:"sensor.battery_voltage"`
	Temperature   float64 `json:"sensor.battery_temperature"`
	State         string  `json:"sensor.battery_state"`
	IsCharging    bool    `json:"sensor.is_charging"`
	StatusOK      bool    `json:"sensor.status_ok"`
	CycleCount    int     `json:"sensor.cycle_count"`
	StateOfHealth int     `json:"sensor.state_of_health,omitempty"`
}

type Server struct {
	gauge Gauge
	log   logrus.FieldLogger
}

func New(gauge Gauge, log logrus.FieldLogger) *Server {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Server{gauge: gauge, log: log.WithField("prefix", "server")}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.rootHandler)
	mux.HandleFunc("GET /snapshot", s.snapshotHandler)
	return mux
}

func Run(port int, gauge Gauge, log logrus.FieldLogger) error {
	s := New(gauge, log)

	addr := fmt.Sprintf(":%d", port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.Handler(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	s.log.Infof("Listening on %s", addr)
	return srv.ListenAndServe()
}

func (s *Server) rootHandler(w http.ResponseWriter, r *http.Request) {
	// Defaults
	resp := BatteryResponse{
		State: "Discharging", // Default assumption if we can't read anything
	}

	snap := s.gauge.Snapshot()
	if len(snap.Missing) > 0 {
		s.log.Debugf("no data for %v", snap.Missing)
	}

	if soc, ok := snap.Word(registers.RelativeStateOfCharge); ok {
		resp.Level = int(soc)
	} else if soc, ok := snap.Word(registers.Charge); ok {
		resp.Level = int(soc)
	}

	if mv, ok := snap.Word(registers.Voltage); ok {
		resp.Voltage = float64(decode.Potential(mv)) / float64(physic.Volt)
	}
	if snap.Temperature != nil {
		resp.Temperature = decode.Temperature(snap.Temperature.KelvinTenths).Celsius()
	}
	if cycles, ok := snap.Word(registers.CycleCount); ok {
		resp.CycleCount = int(cycles)
	}
	if soh, ok := snap.Word(registers.StateOfHealth); ok {
		resp.StateOfHealth = int(soh)
	}

	// Logic for State & IsCharging
	if raw, ok := snap.Word(registers.BatteryStatus); ok {
		switch {
		case decode.IsFullyCharged(raw):
			resp.State = "Full"
		case decode.IsCharging(raw):
			resp.State = "Charging"
		default:
			resp.State = "Discharging"
		}
		resp.StatusOK = decode.StatusOK(raw)
	}

	resp.IsCharging = (resp.State == "Charging")

	writeJSON(w, resp)
}

func (s *Server) snapshotHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.gauge.Snapshot())
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}
