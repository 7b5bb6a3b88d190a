package cabinet

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	slopeSuffix       = " dB/octave"
	impedanceMarker   = " Ω nominal"
	powerRMSSuffix    = " W RMS"
	powerPeakSuffix   = " W peak"
	sensitivitySuffix = " dB (1 W/1 m)"
)

// FormatSlopeLabel renders e.g. "12 dB/octave".
func FormatSlopeLabel(slopeDBPerOct int) string {
	return strconv.Itoa(slopeDBPerOct) + slopeSuffix
}

// ParseSlopeLabel is the inverse of FormatSlopeLabel.
func ParseSlopeLabel(s string) (int, error) {
	num, ok := strings.CutSuffix(strings.TrimSpace(s), slopeSuffix)
	if !ok {
		return 0, fmt.Errorf("cabinet: malformed slope label %q", s)
	}
	v, err := strconv.Atoi(num)
	if err != nil {
		return 0, fmt.Errorf("cabinet: malformed slope label %q: %w", s, err)
	}
	return v, nil
}

// FormatImpedanceLabel renders e.g. "8 Ω nominal (7-10 Ω)".
func FormatImpedanceLabel(nominal, lo, hi int) string {
	return fmt.Sprintf("%d%s (%d-%d Ω)", nominal, impedanceMarker, lo, hi)
}

// ParseImpedanceLabel returns the nominal impedance of a label produced by
// FormatImpedanceLabel.
func ParseImpedanceLabel(s string) (int, error) {
	num, _, ok := strings.Cut(strings.TrimSpace(s), impedanceMarker)
	if !ok {
		return 0, fmt.Errorf("cabinet: malformed impedance label %q", s)
	}
	v, err := strconv.Atoi(num)
	if err != nil {
		return 0, fmt.Errorf("cabinet: malformed impedance label %q: %w", s, err)
	}
	return v, nil
}

// FormatPowerLabel renders e.g. "150 W RMS / 300 W peak".
func FormatPowerLabel(rms, peak float64) string {
	return formatNumber(rms) + powerRMSSuffix + " / " + formatNumber(peak) + powerPeakSuffix
}

// ParsePowerLabel returns the RMS and peak power of a label produced by
// FormatPowerLabel.
func ParsePowerLabel(s string) (rms, peak float64, err error) {
	left, right, ok := strings.Cut(strings.TrimSpace(s), " / ")
	if !ok {
		return 0, 0, fmt.Errorf("cabinet: malformed power label %q", s)
	}
	rmsText, ok1 := strings.CutSuffix(left, powerRMSSuffix)
	peakText, ok2 := strings.CutSuffix(right, powerPeakSuffix)
	if !ok1 || !ok2 {
		return 0, 0, fmt.Errorf("cabinet: malformed power label %q", s)
	}
	if rms, err = strconv.ParseFloat(rmsText, 64); err != nil {
		return 0, 0, fmt.Errorf("cabinet: malformed power label %q: %w", s, err)
	}
	if peak, err = strconv.ParseFloat(peakText, 64); err != nil {
		return 0, 0, fmt.Errorf("cabinet: malformed power label %q: %w", s, err)
	}
	return rms, peak, nil
}

// FormatSensitivityLabel renders e.g. "89.5 dB (1 W/1 m)".
func FormatSensitivityLabel(db float64) string {
	return formatNumber(db) + sensitivitySuffix
}

// ParseSensitivityLabel is the inverse of FormatSensitivityLabel.
func ParseSensitivityLabel(s string) (float64, error) {
	num, ok := strings.CutSuffix(strings.TrimSpace(s), sensitivitySuffix)
	if !ok {
		return 0, fmt.Errorf("cabinet: malformed sensitivity label %q", s)
	}
	v, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0, fmt.Errorf("cabinet: malformed sensitivity label %q: %w", s, err)
	}
	return v, nil
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
