package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/flobutbut/AcuoTune/auralize"
	"github.com/flobutbut/AcuoTune/cabinet"
	fitcommon "github.com/flobutbut/AcuoTune/internal/fitcommon"
	"github.com/flobutbut/AcuoTune/irsynth"
	"github.com/flobutbut/AcuoTune/preset"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()
	cfg := irsynth.DefaultConfig()

	presetPath := flag.String("preset", os.Getenv("ACUOTUNE_PRESET"), "Preset JSON path (empty uses the default configuration)")
	output := flag.String("output", "out/cabinet_ir.wav", "Output WAV path")
	points := flag.String("points", envOr("ACUOTUNE_POINTS", "512"), "Sweep resolution used to sample the response")
	voice := flag.Int("voice", 0, "Voice to render (1-based, 0 renders the combined response)")
	input := flag.String("input", "", "Optional dry WAV to play through the cabinet")
	rendered := flag.String("render", "out/cabinet_render.wav", "Output WAV for the processed -input")
	flag.IntVar(&cfg.SampleRate, "sample-rate", cfg.SampleRate, "Output sample rate")
	flag.IntVar(&cfg.Length, "length", cfg.Length, "IR length in samples (power of two)")
	flag.Float64Var(&cfg.TukeyAlpha, "taper", cfg.TukeyAlpha, "Tukey window taper fraction")
	flag.Float64Var(&cfg.NormalizePeak, "normalize", cfg.NormalizePeak, "Peak normalization target")
	flag.Parse()

	nPoints, err := fitcommon.ParsePoints(*points)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid points: %v\n", err)
		os.Exit(1)
	}
	base := cabinet.NewDefaultConfig()
	if *presetPath != "" {
		base, err = preset.LoadJSON(*presetPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to load preset: %v\n", err)
			os.Exit(1)
		}
	}

	ir, err := render(base, cfg, nPoints, *voice)
	if err != nil {
		fmt.Fprintf(os.Stderr, "cabinet-ir error: %v\n", err)
		os.Exit(1)
	}
	if err := fitcommon.WriteMonoWAV(*output, ir, cfg.SampleRate); err != nil {
		fmt.Fprintf(os.Stderr, "wav write error: %v\n", err)
		os.Exit(1)
	}

	peak, rms := fitcommon.MonoStats(ir)
	fmt.Printf("Wrote %s\n", *output)
	fmt.Printf("SampleRate: %d Hz, Samples: %d, Latency: %d samples\n", cfg.SampleRate, len(ir), len(ir)/2)
	fmt.Printf("Peak: %.6f, RMS: %.6f\n", peak, rms)

	if *input == "" {
		return
	}
	dry, err := auralize.ReadWAVMono(*input, cfg.SampleRate)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to read input: %v\n", err)
		os.Exit(1)
	}
	wet, err := auralize.Render(dry, ir, cfg.NormalizePeak)
	if err != nil {
		fmt.Fprintf(os.Stderr, "render error: %v\n", err)
		os.Exit(1)
	}
	if err := fitcommon.WriteMonoWAV(*rendered, wet, cfg.SampleRate); err != nil {
		fmt.Fprintf(os.Stderr, "wav write error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %s (%d samples)\n", *rendered, len(wet))
}

// render simulates base over a logarithmic grid up to Nyquist and turns
// the selected curve into an impulse response.
func render(base cabinet.Config, cfg irsynth.Config, points int, voice int) ([]float32, error) {
	rec, err := cabinet.Recommend(base)
	if err != nil {
		return nil, err
	}
	if voice < 0 || voice > rec.Config.Voices {
		return nil, fmt.Errorf("voice %d outside 0..%d", voice, rec.Config.Voices)
	}
	hi := min(cabinet.MaxFrequencyHz, float64(cfg.SampleRate)/2)
	curve := rec.Sweep(cabinet.LogFrequencies(points, cabinet.MinFrequencyHz, hi), 0)
	db := curve.GlobalDB
	if voice > 0 {
		db = curve.VoicesDB[voice-1]
	}
	return irsynth.FromMagnitude(curve.FrequenciesHz, db, cfg)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
