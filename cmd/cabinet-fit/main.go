package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/flobutbut/AcuoTune/cabinet"
	fitcommon "github.com/flobutbut/AcuoTune/internal/fitcommon"
	"github.com/flobutbut/AcuoTune/preset"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	presetPath := flag.String("preset", os.Getenv("ACUOTUNE_PRESET"), "Base preset JSON path (empty uses the default configuration)")
	targetPath := flag.String("target", "", "Optional preset whose simulated response is used as the target curve")
	outputPreset := flag.String("output-preset", "out/fitted.json", "Path to write the fitted preset JSON")
	reportPath := flag.String("report", "", "Optional report JSON path (default: <output-preset>.report.json)")
	name := flag.String("name", "fitted", "Name stored in the fitted preset")
	points := flag.String("points", envOr("ACUOTUNE_POINTS", "96"), "Sweep resolution used by the objective")
	tuneSlope := flag.Bool("tune-slope", true, "Include the filter slope in the search")
	tuneVent := flag.Bool("tune-vent", false, "Include the vent tuning in the search (vented loads only)")
	seed := flag.Int64("seed", 1, "Random seed")
	timeBudget := flag.Float64("time-budget", 30.0, "Optimization time budget in seconds")
	maxEvals := flag.Int("max-evals", 2000, "Maximum objective evaluations")
	reportEvery := flag.Int("report-every", 100, "Print progress every N evaluations")
	topK := flag.Int("top-k", 5, "How many top candidates to keep in report")

	mayflyVariant := flag.String("mayfly-variant", "desma", "Mayfly variant: ma|desma|olce|eobbma|gsasma|mpma|aoblmoa")
	mayflyPop := flag.Int("mayfly-pop", 10, "Male and female population size per Mayfly run")
	mayflyRoundEvals := flag.Int("mayfly-round-evals", 240, "Target eval budget per Mayfly round")
	flag.Parse()

	if *outputPreset == "" {
		die("output-preset must not be empty")
	}
	if *maxEvals < 1 {
		die("max-evals must be >= 1")
	}
	if *timeBudget <= 0 {
		die("time-budget must be > 0")
	}
	if *reportEvery < 1 {
		*reportEvery = 1
	}
	if *mayflyPop < 2 {
		*mayflyPop = 2
	}
	if *mayflyRoundEvals < *mayflyPop*2 {
		*mayflyRoundEvals = *mayflyPop * 2
	}
	if *topK < 1 {
		*topK = 1
	}
	nPoints, err := fitcommon.ParsePoints(*points)
	if err != nil {
		die("invalid points: %v", err)
	}

	base, err := loadConfig(*presetPath)
	if err != nil {
		die("failed to load preset: %v", err)
	}
	if base.Voices < 2 {
		die("a %d-way cabinet has no crossover to fit", base.Voices)
	}
	freqs := cabinet.LogFrequencies(nPoints, cabinet.MinFrequencyHz, cabinet.MaxFrequencyHz)

	var target []float64
	if *targetPath != "" {
		targetCfg, err := preset.LoadJSON(*targetPath)
		if err != nil {
			die("failed to load target: %v", err)
		}
		rec, err := cabinet.Recommend(targetCfg)
		if err != nil {
			die("target recommendation failed: %v", err)
		}
		target = rec.Sweep(freqs, 0).GlobalDB
	}

	resolved, defs, initCand, err := initCandidate(base, *tuneSlope, *tuneVent)
	if err != nil {
		die("failed to build knobs: %v", err)
	}

	cfg := &optimizationConfig{
		base:             resolved,
		defs:             defs,
		initCandidate:    initCand,
		freqs:            freqs,
		target:           target,
		seed:             *seed,
		timeBudget:       *timeBudget,
		maxEvals:         *maxEvals,
		reportEvery:      *reportEvery,
		mayflyVariant:    *mayflyVariant,
		mayflyPop:        *mayflyPop,
		mayflyRoundEvals: *mayflyRoundEvals,
		topK:             *topK,
	}

	fmt.Printf("Fitting %d knobs over %d points (variant=%s)\n", len(defs), nPoints, *mayflyVariant)
	res, err := runOptimization(cfg)
	if err != nil {
		die("optimization failed: %v", err)
	}
	if err := writeOutputs(cfg, res, *name, *presetPath, *targetPath, *outputPreset, *reportPath); err != nil {
		die("failed to write outputs: %v", err)
	}

	best := res.bestEval.config
	fmt.Printf("Done evals=%d rounds=%d elapsed=%.1fs\n", res.evals, res.rounds, res.elapsed)
	fmt.Printf("Score %.4f -> %.4f (similarity %.2f%%)\n", res.initial.score, res.bestEval.score, res.bestEval.metrics.Similarity*100.0)
	fmt.Printf("Crossovers: %v Hz, slope %d dB/octave, Q %.3f\n", best.ManualCrossoversHz, best.SlopeDBPerOct, best.Q)
	fmt.Printf("Wrote %s\n", *outputPreset)
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

func die(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
