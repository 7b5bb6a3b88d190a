package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/flobutbut/AcuoTune/analysis"
	"github.com/flobutbut/AcuoTune/cabinet"
	"github.com/flobutbut/AcuoTune/crossover"
	fitcommon "github.com/flobutbut/AcuoTune/internal/fitcommon"
	"github.com/flobutbut/AcuoTune/preset"
	"github.com/joho/godotenv"
)

type jsonOutput struct {
	Recommendation cabinet.Recommendation `json:"recommendation"`
	Metrics        analysis.Metrics       `json:"metrics"`
	Curve          *cabinet.Curve         `json:"curve,omitempty"`
}

func main() {
	_ = godotenv.Load()

	presetPath := flag.String("preset", os.Getenv("ACUOTUNE_PRESET"), "Preset JSON path (empty starts from the defaults)")
	cf := registerConfigFlags(flag.CommandLine)
	jsonOut := flag.Bool("json", false, "Print the recommendation as JSON")
	withCurve := flag.Bool("json-curve", false, "Include the simulated curve in JSON output")
	curvePath := flag.String("curve", "", "Optional CSV path for the simulated response")
	points := flag.String("points", envOr("ACUOTUNE_POINTS", "128"), "Number of logarithmic sweep points (16..4096)")
	workers := flag.String("workers", "auto", "Sweep workers (number or 'auto')")
	biquadRate := flag.Float64("biquads", 0, "Print digital crossover biquads at this sample rate (0 disables)")
	savePreset := flag.String("save-preset", "", "Write the effective configuration as a preset JSON")
	noColor := flag.Bool("no-color", false, "Disable colored output")
	flag.Parse()

	if *noColor {
		color.NoColor = true
	}
	nPoints, err := fitcommon.ParsePoints(*points)
	if err != nil {
		die("invalid points: %v", err)
	}
	nWorkers, err := fitcommon.ParseWorkers(*workers)
	if err != nil {
		die("invalid workers value: %v", err)
	}

	cfg, err := loadConfig(*presetPath)
	if err != nil {
		die("failed to load preset: %v", err)
	}
	overrides, err := cf.file(flag.CommandLine)
	if err != nil {
		die("invalid flag %v", err)
	}
	if err := preset.ApplyFile(&cfg, overrides); err != nil {
		dieConfig(err)
	}

	rec, err := cabinet.Recommend(cfg)
	if err != nil {
		dieConfig(err)
	}
	freqs := cabinet.LogFrequencies(nPoints, cabinet.MinFrequencyHz, cabinet.MaxFrequencyHz)
	curve := rec.Sweep(freqs, nWorkers)
	metrics := analysis.Evaluate(curve.FrequenciesHz, curve.GlobalDB, rec.Electronics.CrossoversHz)

	if *jsonOut {
		out := jsonOutput{Recommendation: rec, Metrics: metrics}
		if *withCurve {
			out.Curve = &curve
		}
		b, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			die("encode json: %v", err)
		}
		fmt.Println(string(b))
	} else {
		printRecommendation(os.Stdout, rec, metrics)
	}

	if *biquadRate > 0 {
		n, err := crossover.Design(rec.Electronics.CrossoversHz, rec.Electronics.SlopeDBPerOct, rec.Electronics.Q, *biquadRate)
		if err != nil {
			die("biquad design: %v", err)
		}
		printBiquads(os.Stdout, n)
	}
	if *curvePath != "" {
		if err := writeCurveCSV(*curvePath, curve); err != nil {
			die("write curve: %v", err)
		}
		fmt.Fprintf(os.Stderr, "Wrote %s\n", *curvePath)
	}
	if *savePreset != "" {
		if err := preset.SaveJSON(*savePreset, "", cfg); err != nil {
			die("save preset: %v", err)
		}
		fmt.Fprintf(os.Stderr, "Wrote %s\n", *savePreset)
	}
}

func loadConfig(path string) (cabinet.Config, error) {
	if path == "" {
		return cabinet.NewDefaultConfig(), nil
	}
	return preset.LoadJSON(path)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func dieConfig(err error) {
	var ce *cabinet.ConfigurationError
	if errors.As(err, &ce) {
		color.New(color.FgRed, color.Bold).Fprintf(os.Stderr, "invalid %s: ", ce.Field)
		fmt.Fprintf(os.Stderr, "%v (%s)\n", ce.Value, ce.Reason)
		os.Exit(2)
	}
	die("%v", err)
}

func die(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
