package main

import (
	"path/filepath"
	"testing"

	"github.com/flobutbut/AcuoTune/cabinet"
	"github.com/flobutbut/AcuoTune/preset"
)

func testOptimizationConfig(t *testing.T, maxEvals int) *optimizationConfig {
	t.Helper()
	resolved, defs, cand, err := initCandidate(cabinet.NewDefaultConfig(), true, false)
	if err != nil {
		t.Fatalf("initCandidate: %v", err)
	}
	return &optimizationConfig{
		base:             resolved,
		defs:             defs,
		initCandidate:    cand,
		freqs:            cabinet.LogFrequencies(48, 20, 20000),
		seed:             3,
		timeBudget:       10,
		maxEvals:         maxEvals,
		mayflyVariant:    "ma",
		mayflyPop:        4,
		mayflyRoundEvals: 16,
		topK:             3,
	}
}

func TestNewMayflyConfigRejectsUnknownVariant(t *testing.T) {
	if _, err := newMayflyConfig("nope", 4, 2, 1); err == nil {
		t.Fatalf("expected error for unknown variant")
	}
	cfg, err := newMayflyConfig("desma", 10, 3, 5)
	if err != nil {
		t.Fatalf("newMayflyConfig: %v", err)
	}
	if cfg.ProblemSize != 3 || cfg.NPop != 10 || cfg.NC != 20 || cfg.NM != 1 {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	cfg, err = newMayflyConfig("ma", 60, 3, 5)
	if err != nil {
		t.Fatalf("newMayflyConfig: %v", err)
	}
	if cfg.NM != 3 {
		t.Fatalf("NM should scale with population: got %d, want 3", cfg.NM)
	}
}

func TestEvaluateCandidateWithTarget(t *testing.T) {
	cfg := testOptimizationConfig(t, 1)
	self, err := evaluateCandidate(cfg, cfg.initCandidate)
	if err != nil {
		t.Fatalf("evaluateCandidate: %v", err)
	}
	rec, err := cabinet.Recommend(self.config)
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	cfg.target = rec.Sweep(cfg.freqs, 1).GlobalDB
	withTarget, err := evaluateCandidate(cfg, cfg.initCandidate)
	if err != nil {
		t.Fatalf("evaluateCandidate: %v", err)
	}
	if withTarget.targetRMSEDB != 0 {
		t.Fatalf("matching its own curve should give zero error, got %f", withTarget.targetRMSEDB)
	}
	if withTarget.score != 0.5*self.metrics.Score {
		t.Fatalf("score blend mismatch: %f vs %f", withTarget.score, self.metrics.Score)
	}
}

func TestRunOptimizationNeverWorsens(t *testing.T) {
	cfg := testOptimizationConfig(t, 40)
	res, err := runOptimization(cfg)
	if err != nil {
		t.Fatalf("runOptimization: %v", err)
	}
	if res.evals > cfg.maxEvals {
		t.Fatalf("evaluation budget exceeded: %d", res.evals)
	}
	if res.bestEval.score > res.initial.score {
		t.Fatalf("best score %f worse than initial %f", res.bestEval.score, res.initial.score)
	}
	if len(res.top) == 0 || len(res.top) > cfg.topK {
		t.Fatalf("unexpected top list size %d", len(res.top))
	}
	for i := 1; i < len(res.top); i++ {
		if res.top[i].Score < res.top[i-1].Score {
			t.Fatalf("top candidates not sorted")
		}
	}

	dir := t.TempDir()
	out := filepath.Join(dir, "fitted.json")
	if err := writeOutputs(cfg, res, "fitted", "", "", out, ""); err != nil {
		t.Fatalf("writeOutputs: %v", err)
	}
	got, err := preset.LoadJSON(out)
	if err != nil {
		t.Fatalf("reload fitted preset: %v", err)
	}
	if !got.Advanced || len(got.ManualCrossoversHz) != 1 {
		t.Fatalf("fitted preset should carry manual crossovers: %+v", got)
	}
}
