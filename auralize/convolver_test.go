package auralize

import (
	"math"
	"path/filepath"
	"testing"

	fitcommon "github.com/flobutbut/AcuoTune/internal/fitcommon"
)

func directConvolve(x, h []float32) []float32 {
	out := make([]float32, len(x)+len(h)-1)
	for i, xv := range x {
		for j, hv := range h {
			out[i+j] += xv * hv
		}
	}
	return out
}

func maxAbsDiff(a, b []float32) float64 {
	d := 0.0
	for i := range a {
		d = math.Max(d, math.Abs(float64(a[i]-b[i])))
	}
	return d
}

func TestConvolverMatchesDirectConvolution(t *testing.T) {
	input := make([]float32, 1000)
	for i := range input {
		input[i] = float32(math.Sin(float64(i)*0.07)) * 0.8
	}
	ir := []float32{1.0, 0.3, -0.2, 0.1, 0.05}

	c, err := NewConvolver(ir, 128)
	if err != nil {
		t.Fatalf("NewConvolver: %v", err)
	}
	// Split on a block boundary so state carries across calls.
	first, err := c.Process(input[:384])
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	second, err := c.Process(input[384:])
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	got := append(first, second...)
	want := directConvolve(input, ir)[:len(input)]
	if d := maxAbsDiff(got, want); d > 1e-4 {
		t.Fatalf("mismatch too high: max diff=%g", d)
	}
}

func TestConvolverResetClearsTail(t *testing.T) {
	c, err := NewConvolver([]float32{1, 0.5, 0.25}, 16)
	if err != nil {
		t.Fatalf("NewConvolver: %v", err)
	}
	if _, err := c.Process([]float32{1, 0, 0, 0}); err != nil {
		t.Fatalf("Process: %v", err)
	}
	c.Reset()
	after, err := c.Process(make([]float32, 16))
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	for i, v := range after {
		if math.Abs(float64(v)) > 1e-7 {
			t.Fatalf("expected silence after reset, sample %d = %g", i, v)
		}
	}
}

func TestRenderIncludesTailAndLimitsPeak(t *testing.T) {
	dry := []float32{1, 0, 0, 0}
	ir := []float32{1, 1, 1}
	wet, err := Render(dry, ir, 0)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if len(wet) != 6 {
		t.Fatalf("expected %d samples, got %d", 6, len(wet))
	}
	if math.Abs(float64(wet[2])-1) > 1e-5 {
		t.Fatalf("tail sample missing: %v", wet)
	}

	loud := []float32{1, 1, 1, 1}
	wet, err = Render(loud, ir, 0.5)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	peak := 0.0
	for _, v := range wet {
		peak = math.Max(peak, math.Abs(float64(v)))
	}
	if math.Abs(peak-0.5) > 1e-5 {
		t.Fatalf("expected peak 0.5, got %f", peak)
	}
}

func TestReadWAVMonoResamples(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dry.wav")
	src := make([]float32, 960)
	for i := range src {
		src[i] = float32(0.5 * math.Sin(2*math.Pi*1000*float64(i)/96000))
	}
	if err := fitcommon.WriteMonoWAV(path, src, 96000); err != nil {
		t.Fatalf("WriteMonoWAV: %v", err)
	}
	out, err := ReadWAVMono(path, 48000)
	if err != nil {
		t.Fatalf("ReadWAVMono: %v", err)
	}
	if len(out) == 0 || len(out) >= len(src) {
		t.Fatalf("expected fewer samples after downsampling, got %d", len(out))
	}
	peak := 0.0
	for _, v := range out {
		peak = math.Max(peak, math.Abs(float64(v)))
	}
	if peak < 1e-3 {
		t.Fatalf("resampled signal unexpectedly silent")
	}
}
