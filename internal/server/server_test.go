package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"

	"sbsgauge/internal/battery"
	"sbsgauge/internal/registers"
)

type MockGauge struct {
	Snap  battery.Snapshot
	Calls int
}

func (m *MockGauge) Snapshot() battery.Snapshot {
	m.Calls++
	return m.Snap
}

func snapshot(words map[registers.Name]uint16, missing ...registers.Name) battery.Snapshot {
	s := battery.Snapshot{Protocol: registers.SBS11, Address: 0x0B, Words: words, Missing: missing}
	if raw, ok := words[registers.Temperature]; ok {
		s.Temperature = &battery.Temperature{KelvinTenths: raw, CelsiusTenths: int(raw) - 2731}
	}
	return s
}

func TestRootHandler(t *testing.T) {
	tests := []struct {
		name           string
		snap           battery.Snapshot
		expectedState  string
		expectedLevel  int
		expectedVol    float64
		expectedTemp   float64
		expectedCharge bool
		expectedOK     bool
	}{
		{
			name: "Charging",
			snap: snapshot(map[registers.Name]uint16{
				registers.RelativeStateOfCharge: 55,
				registers.Voltage:               12300,
				registers.Temperature:           2981,
				registers.BatteryStatus:         0x0080,
			}),
			expectedState:  "Charging",
			expectedLevel:  55,
			expectedVol:    12.3,
			expectedTemp:   25.0,
			expectedCharge: true,
			expectedOK:     true,
		},
		{
			name: "Full Charge",
			snap: snapshot(map[registers.Name]uint16{
				registers.RelativeStateOfCharge: 100,
				registers.Voltage:               12600,
				registers.BatteryStatus:         0x00A0,
			}),
			expectedState:  "Full",
			expectedLevel:  100,
			expectedVol:    12.6,
			expectedCharge: false,
			expectedOK:     true,
		},
		{
			name: "Discharging",
			snap: snapshot(map[registers.Name]uint16{
				registers.RelativeStateOfCharge: 40,
				registers.Voltage:               11100,
				registers.BatteryStatus:         0x00C0,
			}),
			expectedState:  "Discharging",
			expectedLevel:  40,
			expectedVol:    11.1,
			expectedCharge: false,
			expectedOK:     true,
		},
		{
			name: "Below freezing",
			snap: snapshot(map[registers.Name]uint16{
				registers.Voltage:       3700,
				registers.Temperature:   2531,
				registers.BatteryStatus: 0x00C0,
			}),
			expectedState: "Discharging",
			expectedVol:   3.7,
			expectedTemp:  -20.0,
			expectedOK:    true,
		},
		{
			name: "All alarms raised",
			snap: snapshot(map[registers.Name]uint16{
				registers.BatteryStatus: 0xDB40,
			}),
			expectedState:  "Discharging",
			expectedCharge: false,
			expectedOK:     false,
		},
		{
			name: "Legacy charge as level",
			snap: snapshot(map[registers.Name]uint16{
				registers.Charge: 30,
			}),
			expectedState: "Discharging",
			expectedLevel: 30,
		},
		{
			name:          "No device",
			snap:          snapshot(map[registers.Name]uint16{}, registers.Voltage, registers.BatteryStatus),
			expectedState: "Discharging",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log, _ := test.NewNullLogger()
			s := New(&MockGauge{Snap: tt.snap}, log)

			req := httptest.NewRequest("GET", "/", nil)
			w := httptest.NewRecorder()

			s.rootHandler(w, req)

			resp := w.Result()
			if resp.StatusCode != http.StatusOK {
				t.Errorf("Expected status 200, got %d", resp.StatusCode)
			}

			var br BatteryResponse
			if err := json.NewDecoder(resp.Body).Decode(&br); err != nil {
				t.Fatalf("Failed to decode response: %v", err)
			}

			if br.State != tt.expectedState {
				t.Errorf("Expected State %s, got %s", tt.expectedState, br.State)
			}
			if br.Level != tt.expectedLevel {
				t.Errorf("Expected Level %d, got %d", tt.expectedLevel, br.Level)
			}
			if br.Voltage != tt.expectedVol {
				t.Errorf("Expected Voltage %f, got %f", tt.expectedVol, br.Voltage)
			}
			if br.Temperature != tt.expectedTemp {
				t.Errorf("Expected Temperature %f, got %f", tt.expectedTemp, br.Temperature)
			}
			if br.IsCharging != tt.expectedCharge {
				t.Errorf("Expected IsCharging %v, got %v", tt.expectedCharge, br.IsCharging)
			}
			if br.StatusOK != tt.expectedOK {
				t.Errorf("Expected StatusOK %v, got %v", tt.expectedOK, br.StatusOK)
			}
		})
	}
}

func TestSnapshotHandler(t *testing.T) {
	log, _ := test.NewNullLogger()
	gauge := &MockGauge{Snap: snapshot(map[registers.Name]uint16{registers.CycleCount: 42}, registers.Voltage)}
	s := New(gauge, log)

	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, httptest.NewRequest("GET", "/snapshot", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Expected JSON, got %q", ct)
	}

	var got battery.Snapshot
	if err := json.NewDecoder(w.Body).Decode(&got); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if got.Words[registers.CycleCount] != 42 {
		t.Errorf("Expected cycle_count 42, got %v", got.Words)
	}
	if len(got.Missing) != 1 || got.Missing[0] != registers.Voltage {
		t.Errorf("Expected voltage missing, got %v", got.Missing)
	}
	if gauge.Calls != 1 {
		t.Errorf("Expected one snapshot, got %d", gauge.Calls)
	}
}

func TestUnknownPath(t *testing.T) {
	log, _ := test.NewNullLogger()
	s := New(&MockGauge{}, log)

	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, httptest.NewRequest("GET", "/nope", nil))
	if w.Code != http.StatusNotFound {
		t.Errorf("Expected 404, got %d", w.Code)
	}
}
