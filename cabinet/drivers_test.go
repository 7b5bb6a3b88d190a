package cabinet

import "testing"

func TestDriverCountAndRoles(t *testing.T) {
	for _, cfg := range configGrid() {
		rec, err := Recommend(cfg)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := cfg.Voices
		if cfg.Voices == 4 && cfg.Budget == BudgetHigh {
			want = 5
		}
		if len(rec.Drivers) != want {
			t.Fatalf("expected %d drivers for %d voices, got %d", want, cfg.Voices, len(rec.Drivers))
		}
		if cfg.Voices == 1 {
			if rec.Drivers[0].Role != RoleFullRange {
				t.Fatalf("single voice should be full-range, got %v", rec.Drivers[0].Role)
			}
			continue
		}
		if rec.Drivers[0].Role != RoleBass {
			t.Fatalf("first driver should be bass, got %v", rec.Drivers[0].Role)
		}
		if rec.Drivers[cfg.Voices-1].Role != RoleTreble {
			t.Fatalf("last voice should be treble, got %v", rec.Drivers[cfg.Voices-1].Role)
		}
		for i := 1; i < cfg.Voices-1; i++ {
			if rec.Drivers[i].Role != RoleMid {
				t.Fatalf("interior driver %d should be mid, got %v", i, rec.Drivers[i].Role)
			}
		}
	}
}

func TestDriverPowerSharesWithinRMS(t *testing.T) {
	for _, cfg := range configGrid() {
		rec, _ := Recommend(cfg)
		total := 0.0
		for _, d := range rec.Drivers {
			if d.PowerRatingW <= 0 {
				t.Fatalf("driver power must be positive: %+v", d)
			}
			total += d.PowerRatingW
		}
		// each share is rounded to the watt
		if total > rec.Electronics.PowerRMSW+float64(len(rec.Drivers)) {
			t.Fatalf("driver power %f exceeds RMS %f", total, rec.Electronics.PowerRMSW)
		}
	}
}

func TestDriverRangesFollowCrossovers(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Voices = 3
	rec, err := Recommend(cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	xo := rec.Electronics.CrossoversHz
	d := rec.Drivers
	if d[0].RangeHz[1] != xo[0] || d[1].RangeHz[0] != xo[0] || d[1].RangeHz[1] != xo[1] || d[2].RangeHz[0] != xo[1] {
		t.Fatalf("driver ranges %v %v %v do not follow crossovers %v", d[0].RangeHz, d[1].RangeHz, d[2].RangeHz, xo)
	}
	if d[2].RangeHz[1] != MaxFrequencyHz {
		t.Fatalf("treble should extend to %f, got %f", MaxFrequencyHz, d[2].RangeHz[1])
	}
	for _, drv := range d {
		if drv.ResonanceHz >= drv.RangeHz[0]+1 && drv.Role != RoleBass {
			t.Fatalf("%v resonance %f should sit below its band %v", drv.Role, drv.ResonanceHz, drv.RangeHz)
		}
	}
}

func TestSuperTweeterOnlyForHighBudgetFourWay(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Voices = 4
	cfg.Budget = BudgetHigh
	rec, _ := Recommend(cfg)
	last := rec.Drivers[len(rec.Drivers)-1]
	if last.Role != RoleSuperTreble || last.RangeHz[0] != 12000 {
		t.Fatalf("expected super-tweeter last, got %+v", last)
	}

	cfg.Budget = BudgetMid
	rec, _ = Recommend(cfg)
	for _, d := range rec.Drivers {
		if d.Role == RoleSuperTreble {
			t.Fatalf("mid budget should not add a super-tweeter")
		}
	}
}

func TestDriversCarryImpedance(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Voices = 4
	cfg.Budget = BudgetHigh
	cfg.ImpedanceOhm = 4
	rec, err := Recommend(cfg)
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if len(rec.Drivers) != 5 {
		t.Fatalf("expected 4 voices plus super-tweeter, got %d drivers", len(rec.Drivers))
	}
	for _, d := range rec.Drivers {
		if d.ImpedanceOhm != 4 {
			t.Fatalf("%s: impedance %d, want 4", d.Role, d.ImpedanceOhm)
		}
	}
}

func TestDriverTechnologyDeterministic(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Budget = BudgetHigh
	cfg.Style = StyleHiFi
	cfg.Voices = 3
	a, _ := Recommend(cfg)
	b, _ := Recommend(cfg)
	for i := range a.Drivers {
		if a.Drivers[i] != b.Drivers[i] {
			t.Fatalf("driver %d differs between runs", i)
		}
	}
	if a.Drivers[1].Technology != "woven Kevlar cone" {
		t.Fatalf("unexpected hifi midrange technology %q", a.Drivers[1].Technology)
	}
	if a.Drivers[2].Technology != "treated silk dome with damped rear chamber" {
		t.Fatalf("unexpected hifi tweeter technology %q", a.Drivers[2].Technology)
	}
}
