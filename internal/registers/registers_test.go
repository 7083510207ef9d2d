package registers

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestChargeAddressDiffersByProtocol(t *testing.T) {
	sbs, _ := ForProtocol(SBS11)
	old, _ := ForProtocol(Legacy)

	rsoc, ok := sbs.Lookup(RelativeStateOfCharge)
	if !ok || rsoc.Addr != 0x0D {
		t.Fatalf("sbs-1.1: expected relative_state_of_charge at 0x0D, got %v %v", rsoc, ok)
	}
	if _, ok := sbs.Lookup(Charge); ok {
		t.Error("sbs-1.1 must not define charge")
	}

	charge, ok := old.Lookup(Charge)
	if !ok || charge.Addr != 0x0D {
		t.Fatalf("legacy: expected charge at 0x0D, got %v %v", charge, ok)
	}
	if _, ok := old.Lookup(RelativeStateOfCharge); ok {
		t.Error("legacy must not define relative_state_of_charge")
	}
}

func TestNoDuplicateAddresses(t *testing.T) {
	for _, p := range Protocols() {
		tbl, _ := ForProtocol(p)
		seen := map[byte]Name{}
		for _, r := range tbl.Registers() {
			if prev, ok := seen[r.Addr]; ok {
				t.Errorf("%s: 0x%02X used by %s and %s", p, r.Addr, prev, r.Name)
			}
			seen[r.Addr] = r.Name
		}
	}
}

func TestBQ40ZStateOfHealthIsBlock(t *testing.T) {
	tbl, _ := ForProtocol(BQ40Z)
	soh, ok := tbl.Lookup(StateOfHealth)
	if !ok {
		t.Fatal("expected state_of_health")
	}
	if diff := cmp.Diff(Register{Name: StateOfHealth, Addr: 0x4F, Kind: Block, MaxLen: 2}, soh); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}

	// The shared sbs-1.1 slice must not be touched by the bq40z variant.
	sbs, _ := ForProtocol(SBS11)
	if r, _ := sbs.Lookup(StateOfHealth); r.Kind != Word {
		t.Errorf("sbs-1.1 state_of_health should stay a word, got %v", r.Kind)
	}
}

func TestWithOverrides(t *testing.T) {
	base, _ := ForProtocol(SBS11)
	tbl := base.With(
		Register{Name: DeviceName, Addr: 0x21, Kind: Block, MaxLen: 8},
		Register{Name: "pack_voltage", Addr: 0x5A, Kind: Word},
	)

	if r, _ := tbl.Lookup(DeviceName); r.MaxLen != 8 {
		t.Errorf("expected override max_len 8, got %d", r.MaxLen)
	}
	if _, ok := tbl.Lookup("pack_voltage"); !ok {
		t.Error("expected added register")
	}
	if r, _ := base.Lookup(DeviceName); r.MaxLen != NameLen {
		t.Errorf("base table mutated: max_len %d", r.MaxLen)
	}
	if tbl.Protocol() != SBS11 {
		t.Errorf("expected protocol %s, got %s", SBS11, tbl.Protocol())
	}
}

func TestRegistersOrdered(t *testing.T) {
	tbl, _ := ForProtocol(Legacy)
	regs := tbl.Registers()
	for i := 1; i < len(regs); i++ {
		if regs[i-1].Addr > regs[i].Addr {
			t.Fatalf("not ordered at %d: %v before %v", i, regs[i-1], regs[i])
		}
	}
}

func TestParseKind(t *testing.T) {
	tests := []struct {
		in      string
		want    Kind
		wantErr bool
	}{
		{"word", Word, false},
		{"", Word, false},
		{" Block ", Block, false},
		{"byte", Word, true},
	}
	for _, tt := range tests {
		got, err := ParseKind(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParseKind(%q) = %v, %v", tt.in, got, err)
		}
	}
}

func TestUnknownProtocol(t *testing.T) {
	if _, ok := ForProtocol("sbs-0.9"); ok {
		t.Error("expected unknown protocol")
	}
	if diff := cmp.Diff([]string{BQ40Z, Legacy, SBS11}, Protocols()); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}
