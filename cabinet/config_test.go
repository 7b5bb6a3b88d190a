package cabinet

import (
	"errors"
	"testing"
)

func TestDefaultConfigValidates(t *testing.T) {
	cfg := NewDefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
	cfg.Advanced = true
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate in advanced mode: %v", err)
	}
}

func TestValidateRejectsOutOfDomainValues(t *testing.T) {
	cases := []struct {
		name  string
		field string
		edit  func(*Config)
	}{
		{"impedance", "impedance", func(c *Config) { c.ImpedanceOhm = 6 }},
		{"power low", "amplifier_power", func(c *Config) { c.AmplifierPowerW = 10 }},
		{"power high", "amplifier_power", func(c *Config) { c.AmplifierPowerW = 300 }},
		{"voices", "voice_count", func(c *Config) { c.Voices = 5 }},
		{"level", "listening_level", func(c *Config) { c.Level = ListeningLevel(9) }},
		{"shape", "enclosure_shape", func(c *Config) { c.Shape = Shape(-1) }},
		{"load", "load_type", func(c *Config) { c.Load = LoadType(3) }},
		{"slope", "filter_slope", func(c *Config) { c.Advanced = true; c.SlopeDBPerOct = 9 }},
		{"q", "q", func(c *Config) { c.Advanced = true; c.Q = 2 }},
		{"crossover count", "manual_crossover", func(c *Config) { c.Advanced = true; c.ManualCrossoversHz = []float64{500, 3000} }},
		{"crossover order", "manual_crossover", func(c *Config) {
			c.Advanced = true
			c.Voices = 3
			c.ManualCrossoversHz = []float64{3000, 500}
		}},
		{"vent tuning", "vent_tuning", func(c *Config) { c.Advanced = true; c.VentTuningHz = -5 }},
	}
	for _, tc := range cases {
		cfg := NewDefaultConfig()
		tc.edit(&cfg)
		err := cfg.Validate()
		var ce *ConfigurationError
		if !errors.As(err, &ce) {
			t.Fatalf("%s: expected ConfigurationError, got %v", tc.name, err)
		}
		if ce.Field != tc.field {
			t.Fatalf("%s: expected field %q, got %q", tc.name, tc.field, ce.Field)
		}
	}
}

func TestAdvancedFieldsIgnoredInSimpleMode(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.SlopeDBPerOct = 9
	cfg.Q = 5
	cfg.ManualCrossoversHz = []float64{1, 2, 3}
	cfg.VentTuningHz = -1
	if err := cfg.Validate(); err != nil {
		t.Fatalf("simple mode should ignore advanced fields: %v", err)
	}

	eff := cfg.Resolve()
	if eff.SlopeDBPerOct != 12 || eff.Q != DefaultQ || eff.ManualCrossoversHz != nil || eff.VentTuningHz != 0 {
		t.Fatalf("stale advanced values leaked into resolved config: %+v", eff)
	}
}

func TestResolveCopiesManualCrossovers(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Advanced = true
	cfg.ManualCrossoversHz = []float64{2000}
	eff := cfg.Resolve()
	cfg.ManualCrossoversHz[0] = 1000
	if eff.ManualCrossoversHz[0] != 2000 {
		t.Fatalf("resolved config aliases caller slice")
	}
}

func TestParseEnums(t *testing.T) {
	if s := ParseStyle("reggae"); s != StyleNeutral {
		t.Fatalf("unknown style should fall back to neutral, got %v", s)
	}
	if s := ParseStyle("Bass_Heavy"); s != StyleBassHeavy {
		t.Fatalf("expected bass-heavy, got %v", s)
	}
	for _, in := range []string{"acoustic", "Vocal", "acoustique", "Acoustic/Vocal"} {
		if s := ParseStyle(in); s != StyleAcoustic {
			t.Fatalf("%q should parse as acoustic, got %v", in, s)
		}
	}
	if Style(42).String() != "neutral" {
		t.Fatalf("out-of-range style should print as neutral")
	}
	if _, err := ParseShape("cube"); err == nil {
		t.Fatalf("expected error for unknown shape")
	}
	for _, l := range []LoadType{LoadSealed, LoadBassReflex, LoadDoubleBassReflex} {
		got, err := ParseLoadType(l.String())
		if err != nil || got != l {
			t.Fatalf("load %v did not round-trip: %v %v", l, got, err)
		}
	}
}

func TestSuggestedLoad(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Wall = WallNear
	if cfg.SuggestedLoad() != LoadSealed {
		t.Fatalf("near wall should suggest sealed")
	}
	cfg.Wall = WallFar
	cfg.Style = StyleHiFi
	if cfg.SuggestedLoad() != LoadDoubleBassReflex {
		t.Fatalf("hifi should suggest double bass-reflex")
	}
}
