package main

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/flobutbut/AcuoTune/analysis"
	"github.com/flobutbut/AcuoTune/cabinet"
	"github.com/flobutbut/AcuoTune/crossover"
)

func TestWriteCurveCSV(t *testing.T) {
	cfg := cabinet.NewDefaultConfig()
	cfg.Voices = 3
	rec, err := cabinet.Recommend(cfg)
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	curve := rec.Sweep(cabinet.LogFrequencies(32, 20, 20000), 2)

	path := filepath.Join(t.TempDir(), "curve", "response.csv")
	if err := writeCurveCSV(path, curve); err != nil {
		t.Fatalf("writeCurveCSV: %v", err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	if len(rows) != 33 {
		t.Fatalf("expected header plus 32 rows, got %d", len(rows))
	}
	want := "frequency_hz,voice_1_db,voice_2_db,voice_3_db,global_db"
	if got := strings.Join(rows[0], ","); got != want {
		t.Fatalf("header = %q, want %q", got, want)
	}
	if rows[1][0] != "20.00" || rows[32][0] != "20000.00" {
		t.Fatalf("unexpected frequency column: %q .. %q", rows[1][0], rows[32][0])
	}
}

func TestPrintRecommendation(t *testing.T) {
	color.NoColor = true
	cfg := cabinet.NewDefaultConfig()
	cfg.Wall = cabinet.WallNear
	rec, err := cabinet.Recommend(cfg)
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	curve := rec.Sweep(cabinet.LogFrequencies(64, 20, 20000), 1)
	m := analysis.Evaluate(curve.FrequenciesHz, curve.GlobalDB, rec.Electronics.CrossoversHz)

	var buf bytes.Buffer
	printRecommendation(&buf, rec, m)
	out := buf.String()
	for _, want := range []string{"Enclosure", "Electronics", "Drivers", "Response", rec.Electronics.PowerLabel, "note: a sealed load", "mm, 8 Ω,"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}

	n, err := crossover.Design(rec.Electronics.CrossoversHz, rec.Electronics.SlopeDBPerOct, rec.Electronics.Q, 48000)
	if err != nil {
		t.Fatalf("Design: %v", err)
	}
	buf.Reset()
	printBiquads(&buf, n)
	if !strings.Contains(buf.String(), "band 2") {
		t.Fatalf("biquad listing missing the second band:\n%s", buf.String())
	}
}
