package main

import (
	"fmt"
	"math"
	"math/rand"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/cwbudde/mayfly"
	"github.com/flobutbut/AcuoTune/analysis"
	"github.com/flobutbut/AcuoTune/cabinet"
	fitcommon "github.com/flobutbut/AcuoTune/internal/fitcommon"
)

type topCandidate struct {
	Eval       int                `json:"eval"`
	Score      float64            `json:"score"`
	Similarity float64            `json:"similarity"`
	Knobs      map[string]float64 `json:"knobs"`
}

type optimizationConfig struct {
	base          cabinet.Config
	defs          []knobDef
	initCandidate candidate
	freqs         []float64
	// target is an optional global curve on freqs to match.
	target []float64

	seed             int64
	timeBudget       float64
	maxEvals         int
	reportEvery      int
	mayflyVariant    string
	mayflyPop        int
	mayflyRoundEvals int
	topK             int
}

type optimizationEval struct {
	score        float64
	metrics      analysis.Metrics
	targetRMSEDB float64
	config       cabinet.Config
}

type optimizationResult struct {
	best     candidate
	bestEval optimizationEval
	initial  optimizationEval
	top      []topCandidate
	evals    int
	rounds   int
	elapsed  float64
}

// evaluateCandidate runs the full pipeline for cand and scores the combined
// response. With a target curve the score blends flatness and distance to
// the target equally.
func evaluateCandidate(cfg *optimizationConfig, cand candidate) (optimizationEval, error) {
	c := applyCandidate(cfg.base, cfg.defs, cand)
	rec, err := cabinet.Recommend(c)
	if err != nil {
		return optimizationEval{}, err
	}
	curve := rec.Sweep(cfg.freqs, 1)
	m := analysis.Evaluate(curve.FrequenciesHz, curve.GlobalDB, rec.Electronics.CrossoversHz)
	out := optimizationEval{score: m.Score, metrics: m, config: c}
	if len(cfg.target) > 0 {
		out.targetRMSEDB = analysis.RMSEDB(curve.GlobalDB, cfg.target)
		out.score = 0.5*m.Score + 0.5*fitcommon.Clamp(out.targetRMSEDB/6, 0, 1)
	}
	return out, nil
}

func runOptimization(cfg *optimizationConfig) (*optimizationResult, error) {
	start := time.Now()
	deadline := start.Add(time.Duration(cfg.timeBudget * float64(time.Second)))
	variant := strings.ToLower(cfg.mayflyVariant)

	best := cloneCandidate(cfg.initCandidate)
	initialEval, err := evaluateCandidate(cfg, best)
	if err != nil {
		return nil, fmt.Errorf("initial evaluation failed: %w", err)
	}
	fmt.Printf("Start score=%.4f similarity=%.2f%%\n", initialEval.score, initialEval.metrics.Similarity*100.0)

	res := &optimizationResult{
		best:     best,
		bestEval: initialEval,
		initial:  initialEval,
		top:      updateTopCandidates(nil, cfg.topK, 1, initialEval, cfg.defs, best),
		evals:    1,
	}
	improves := 0

	for res.evals < cfg.maxEvals && time.Now().Before(deadline) {
		res.rounds++
		remaining := cfg.maxEvals - res.evals
		budget := min(cfg.mayflyRoundEvals, remaining)
		iters := max(1, budget/(2*cfg.mayflyPop))

		mayflyConfig, err := newMayflyConfig(variant, cfg.mayflyPop, len(cfg.defs), iters)
		if err != nil {
			return nil, err
		}
		mayflyConfig.Rand = rand.New(rand.NewSource(cfg.seed + int64(res.rounds)*7919))
		mayflyConfig.ObjectiveFunc = func(pos []float64) float64 {
			if res.evals >= cfg.maxEvals || time.Now().After(deadline) {
				return res.bestEval.score + 1.0
			}
			res.evals++
			evalNum := res.evals

			cand := fromNormalized(pos, cfg.defs)
			evalRes, err := evaluateCandidate(cfg, cand)
			if err != nil {
				return res.bestEval.score + 0.8
			}
			res.top = updateTopCandidates(res.top, cfg.topK, evalNum, evalRes, cfg.defs, cand)
			if evalRes.score < res.bestEval.score {
				res.best = cloneCandidate(cand)
				res.bestEval = evalRes
				improves++
				fmt.Printf("Improved #%d eval=%d score=%.4f sim=%.2f%%\n", improves, evalNum, evalRes.score, evalRes.metrics.Similarity*100.0)
			}
			if cfg.reportEvery > 0 && evalNum%cfg.reportEvery == 0 {
				fmt.Printf("Progress eval=%d/%d elapsed=%.1fs best=%.4f\n", evalNum, cfg.maxEvals, time.Since(start).Seconds(), res.bestEval.score)
			}
			return evalRes.score
		}

		if _, err := runMayfly(mayflyConfig); err != nil {
			fmt.Fprintf(os.Stderr, "mayfly round %d failed: %v\n", res.rounds, err)
		}
	}

	res.elapsed = time.Since(start).Seconds()
	return res, nil
}

func newMayflyConfig(variant string, pop int, dims int, iters int) (*mayfly.Config, error) {
	var cfg *mayfly.Config
	switch variant {
	case "ma":
		cfg = mayfly.NewDefaultConfig()
	case "desma":
		cfg = mayfly.NewDESMAConfig()
	case "olce":
		cfg = mayfly.NewOLCEConfig()
	case "eobbma":
		cfg = mayfly.NewEOBBMAConfig()
	case "gsasma":
		cfg = mayfly.NewGSASMAConfig()
	case "mpma":
		cfg = mayfly.NewMPMAConfig()
	case "aoblmoa":
		cfg = mayfly.NewAOBLMOAConfig()
	default:
		return nil, fmt.Errorf("unsupported variant %q", variant)
	}
	cfg.ProblemSize = dims
	cfg.LowerBound = 0.0
	cfg.UpperBound = 1.0
	cfg.MaxIterations = iters
	cfg.NPop = pop
	cfg.NPopF = pop
	cfg.NC = 2 * pop
	cfg.NM = max(1, int(math.Round(0.05*float64(pop))))
	return cfg, nil
}

func runMayfly(cfg *mayfly.Config) (_ *mayfly.Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("mayfly panic: %v", r)
		}
	}()
	return mayfly.Optimize(cfg)
}

func updateTopCandidates(top []topCandidate, topK int, eval int, res optimizationEval, defs []knobDef, cand candidate) []topCandidate {
	top = append(top, topCandidate{
		Eval:       eval,
		Score:      res.score,
		Similarity: res.metrics.Similarity,
		Knobs:      knobMap(defs, cand),
	})
	sort.Slice(top, func(i, j int) bool {
		if top[i].Score == top[j].Score {
			return top[i].Eval < top[j].Eval
		}
		return top[i].Score < top[j].Score
	})
	if len(top) > topK {
		top = top[:topK]
	}
	return top
}
