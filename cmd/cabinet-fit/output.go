package main

import (
	"github.com/flobutbut/AcuoTune/analysis"
	fitcommon "github.com/flobutbut/AcuoTune/internal/fitcommon"
	"github.com/flobutbut/AcuoTune/preset"
)

type runReport struct {
	PresetPath       string             `json:"preset_path"`
	TargetPath       string             `json:"target_path,omitempty"`
	OutputPreset     string             `json:"output_preset"`
	Points           int                `json:"points"`
	DurationSec      float64            `json:"elapsed_seconds"`
	Evaluations      int                `json:"evaluations"`
	Rounds           int                `json:"rounds"`
	MayflyVariant    string             `json:"mayfly_variant"`
	InitialScore     float64            `json:"initial_score"`
	BestScore        float64            `json:"best_score"`
	BestSimilarity   float64            `json:"best_similarity"`
	BestMetrics      analysis.Metrics   `json:"best_metrics"`
	BestTargetRMSEDB float64            `json:"best_target_rmse_db,omitempty"`
	BestKnobs        map[string]float64 `json:"best_knobs"`
	TopCandidates    []topCandidate     `json:"top_candidates,omitempty"`
}

func writeOutputs(cfg *optimizationConfig, res *optimizationResult, name, presetPath, targetPath, outputPreset, reportPath string) error {
	if err := preset.SaveJSON(outputPreset, name, res.bestEval.config); err != nil {
		return err
	}
	rep := runReport{
		PresetPath:       presetPath,
		TargetPath:       targetPath,
		OutputPreset:     outputPreset,
		Points:           len(cfg.freqs),
		DurationSec:      res.elapsed,
		Evaluations:      res.evals,
		Rounds:           res.rounds,
		MayflyVariant:    cfg.mayflyVariant,
		InitialScore:     res.initial.score,
		BestScore:        res.bestEval.score,
		BestSimilarity:   res.bestEval.metrics.Similarity,
		BestMetrics:      res.bestEval.metrics,
		BestTargetRMSEDB: res.bestEval.targetRMSEDB,
		BestKnobs:        knobMap(cfg.defs, res.best),
		TopCandidates:    res.top,
	}
	if reportPath == "" {
		reportPath = outputPreset + ".report.json"
	}
	return fitcommon.WriteJSON(reportPath, rep)
}
