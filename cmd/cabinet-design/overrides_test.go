package main

import (
	"errors"
	"flag"
	"io"
	"reflect"
	"testing"

	"github.com/flobutbut/AcuoTune/cabinet"
	"github.com/flobutbut/AcuoTune/preset"
)

func parseOverrides(t *testing.T, args ...string) (*preset.File, error) {
	t.Helper()
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	cf := registerConfigFlags(fs)
	if err := fs.Parse(args); err != nil {
		t.Fatalf("parse: %v", err)
	}
	return cf.file(fs)
}

func TestOverridesOnlyTouchSetFlags(t *testing.T) {
	f, err := parseOverrides(t, "-voices", "3", "-style", "rock", "-advanced", "true", "-crossovers", "450, 2800")
	if err != nil {
		t.Fatalf("file: %v", err)
	}
	if f.ImpedanceOhm != nil || f.EnclosureShape != nil || f.Q != nil {
		t.Fatalf("unset flags should stay nil: %+v", f)
	}

	cfg := cabinet.NewDefaultConfig()
	if err := preset.ApplyFile(&cfg, f); err != nil {
		t.Fatalf("ApplyFile: %v", err)
	}
	if cfg.Voices != 3 || cfg.Style != cabinet.StyleRock || !cfg.Advanced {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
	if !reflect.DeepEqual(cfg.ManualCrossoversHz, []float64{450, 2800}) {
		t.Fatalf("crossovers = %v", cfg.ManualCrossoversHz)
	}
	if cfg.ImpedanceOhm != 8 || cfg.Shape != cabinet.ShapeBookshelf {
		t.Fatalf("defaults should be kept: %+v", cfg)
	}
}

func TestOverridesRejectMalformedNumbers(t *testing.T) {
	for _, args := range [][]string{
		{"-power", "lots"},
		{"-voices", "2.5"},
		{"-advanced", "maybe"},
		{"-crossovers", "500,abc"},
	} {
		if _, err := parseOverrides(t, args...); err == nil {
			t.Fatalf("%v: expected error", args)
		}
	}
}

func TestOverridesInvalidEnumSurfacesAsConfigurationError(t *testing.T) {
	f, err := parseOverrides(t, "-shape", "pyramid")
	if err != nil {
		t.Fatalf("file: %v", err)
	}
	cfg := cabinet.NewDefaultConfig()
	err = preset.ApplyFile(&cfg, f)
	var ce *cabinet.ConfigurationError
	if !errors.As(err, &ce) || ce.Field != "enclosure_shape" {
		t.Fatalf("expected enclosure_shape ConfigurationError, got %v", err)
	}
}
