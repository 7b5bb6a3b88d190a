// Package auralize applies a cabinet impulse response to recorded audio so
// a design can be auditioned.
package auralize

import (
	"fmt"
	"os"

	dspconv "github.com/cwbudde/algo-dsp/dsp/conv"
	dspresample "github.com/cwbudde/algo-dsp/dsp/resample"
	"github.com/cwbudde/wav"
)

const DefaultPartSize = 256

// Convolver is a streaming partitioned convolver for a mono IR.
type Convolver struct {
	partSize int
	irLen    int

	ola *dspconv.StreamingOverlapAddT[float32, complex64]
	out []float32
}

// NewConvolver prepares ir for block convolution. An empty ir passes audio
// through unchanged.
func NewConvolver(ir []float32, partSize int) (*Convolver, error) {
	if partSize < 16 {
		partSize = DefaultPartSize
	}
	if len(ir) == 0 {
		ir = []float32{1.0}
	}
	ola, err := dspconv.NewStreamingOverlapAdd32(ir, partSize)
	if err != nil {
		return nil, fmt.Errorf("auralize: %w", err)
	}
	return &Convolver{
		partSize: partSize,
		irLen:    len(ir),
		ola:      ola,
		out:      make([]float32, partSize),
	}, nil
}

// IRLen returns the impulse response length in samples.
func (c *Convolver) IRLen() int { return c.irLen }

// Process convolves input and returns len(input) samples. State carries
// over between calls; every call but the last should pass a multiple of
// the part size.
func (c *Convolver) Process(input []float32) ([]float32, error) {
	output := make([]float32, len(input))
	block := make([]float32, c.partSize)
	for processed := 0; processed < len(input); processed += c.partSize {
		end := min(processed+c.partSize, len(input))
		n := copy(block, input[processed:end])
		clear(block[n:])
		if err := c.ola.ProcessBlockTo(c.out, block); err != nil {
			return nil, fmt.Errorf("auralize: %w", err)
		}
		copy(output[processed:end], c.out[:n])
	}
	return output, nil
}

// Reset clears the convolution history.
func (c *Convolver) Reset() {
	c.ola.Reset()
}

// Render convolves dry with ir and returns the full len(dry)+len(ir)-1
// sample result, peak-limited to peak when peak > 0.
func Render(dry, ir []float32, peak float64) ([]float32, error) {
	c, err := NewConvolver(ir, DefaultPartSize)
	if err != nil {
		return nil, err
	}
	padded := make([]float32, len(dry)+c.IRLen()-1)
	copy(padded, dry)
	wet, err := c.Process(padded)
	if err != nil {
		return nil, err
	}
	if peak > 0 {
		m := 0.0
		for _, v := range wet {
			m = max(m, abs32(v))
		}
		if m > peak {
			g := float32(peak / m)
			for i := range wet {
				wet[i] *= g
			}
		}
	}
	return wet, nil
}

// ReadWAVMono decodes a WAV file, averages its channels and resamples it
// to sampleRate.
func ReadWAVMono(path string, sampleRate int) ([]float32, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return nil, fmt.Errorf("invalid wav file: %s", path)
	}
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, err
	}
	if buf == nil || buf.Format == nil || buf.Format.NumChannels < 1 {
		return nil, fmt.Errorf("invalid wav buffer: %s", path)
	}
	numCh := buf.Format.NumChannels
	srcRate := buf.Format.SampleRate
	if srcRate <= 0 {
		return nil, fmt.Errorf("invalid wav sample-rate: %d", srcRate)
	}
	frames := len(buf.Data) / numCh
	if frames == 0 {
		return nil, fmt.Errorf("empty wav data: %s", path)
	}

	mono := make([]float64, frames)
	for i := range frames {
		var sum float64
		for ch := 0; ch < numCh; ch++ {
			sum += float64(buf.Data[i*numCh+ch])
		}
		mono[i] = sum / float64(numCh)
	}
	if srcRate != sampleRate {
		r, err := dspresample.NewForRates(
			float64(srcRate),
			float64(sampleRate),
			dspresample.WithQuality(dspresample.QualityBest),
		)
		if err != nil {
			return nil, err
		}
		mono = r.Process(mono)
	}
	out := make([]float32, len(mono))
	for i, v := range mono {
		out[i] = float32(v)
	}
	return out, nil
}

func abs32(v float32) float64 {
	if v < 0 {
		return float64(-v)
	}
	return float64(v)
}
