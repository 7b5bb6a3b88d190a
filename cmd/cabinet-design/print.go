package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/flobutbut/AcuoTune/analysis"
	"github.com/flobutbut/AcuoTune/cabinet"
	"github.com/flobutbut/AcuoTune/crossover"
)

var (
	headingColor = color.New(color.FgCyan, color.Bold)
	valueColor   = color.New(color.FgGreen)
	warnColor    = color.New(color.FgYellow)
)

func printRecommendation(w io.Writer, rec cabinet.Recommendation, m analysis.Metrics) {
	cfg := rec.Config
	mode := "simple"
	if cfg.Advanced {
		mode = "advanced"
	}
	headingColor.Fprintln(w, "Configuration")
	field(w, "Mode", mode)
	field(w, "Ways", fmt.Sprintf("%d", cfg.Voices))
	field(w, "Amplifier", fmt.Sprintf("%g W into %d Ω", cfg.AmplifierPowerW, cfg.ImpedanceOhm))
	field(w, "Listening", fmt.Sprintf("%s level, %s style", cfg.Level, cfg.Style))
	field(w, "Placement", fmt.Sprintf("%s, %s wall distance, %s use", cfg.Shape, cfg.Wall, cfg.Use))
	field(w, "Load", cfg.Load.String())
	if rec.SuggestedLoad != cfg.Load {
		warnColor.Fprintf(w, "  note: a %s load is usually advised for this placement\n", rec.SuggestedLoad)
	}

	geo := rec.Geometry
	fmt.Fprintln(w)
	headingColor.Fprintln(w, "Enclosure")
	field(w, "Volume", fmt.Sprintf("%.1f L", geo.VolumeL))
	field(w, "Dimensions", fmt.Sprintf("%.1f x %.1f x %.1f cm (H x W x D)", geo.Dimensions.HeightCm, geo.Dimensions.WidthCm, geo.Dimensions.DepthCm))
	field(w, "Materials", strings.Join(geo.Materials, ", "))
	field(w, "Resonance", fmt.Sprintf("%.1f Hz", geo.SystemResonanceHz))
	field(w, "Box modes", fmt.Sprintf("%.1f / %.1f / %.1f Hz", geo.InternalModesHz[0], geo.InternalModesHz[1], geo.InternalModesHz[2]))
	if v := geo.Vent; v != nil {
		field(w, "Vent", fmt.Sprintf("%.1f cm² (Ø %.1f cm), %.1f cm long, tuned to %.1f Hz", v.AreaCm2, v.DiameterCm, v.LengthCm, v.TuningHz))
		if v.SecondTuningHz > 0 {
			field(w, "Second vent", fmt.Sprintf("tuned to %.1f Hz", v.SecondTuningHz))
		}
	}

	e := rec.Electronics
	fmt.Fprintln(w)
	headingColor.Fprintln(w, "Electronics")
	if len(e.CrossoversHz) > 0 {
		field(w, "Crossovers", joinHz(e.CrossoversHz))
	}
	field(w, "Slope", fmt.Sprintf("%s, Q %.3g", e.SlopeLabel, e.Q))
	field(w, "Impedance", e.ImpedanceLabel)
	field(w, "Power", e.PowerLabel)
	field(w, "Sensitivity", e.SensitivityLabel)

	fmt.Fprintln(w)
	headingColor.Fprintln(w, "Drivers")
	for _, d := range rec.Drivers {
		fmt.Fprintf(w, "  %-12s %s, %.0f mm, %d Ω, %.0f W, %.1f dB, fs %.0f Hz, %s\n",
			d.Role, d.Technology, d.DiameterMM, d.ImpedanceOhm, d.PowerRatingW, d.SensitivityDB, d.ResonanceHz,
			joinHz(d.RangeHz[:]))
	}

	fmt.Fprintln(w)
	headingColor.Fprintln(w, "Response")
	field(w, "Mean level", fmt.Sprintf("%+.1f dB re %g dB", m.MeanLevelDB, cabinet.ReferenceLevelDB))
	field(w, "Ripple", fmt.Sprintf("%.1f dB (rms %.2f dB)", m.RippleDB, m.DeviationRMSDB))
	field(w, "Extension", fmt.Sprintf("f3 %.0f Hz, f6 %.0f Hz, f10 %.0f Hz", m.F3Hz, m.F6Hz, m.F10Hz))
	if len(e.CrossoversHz) > 0 {
		field(w, "Crossover dev.", fmt.Sprintf("%.1f dB", m.CrossoverDeviationDB))
	}
	field(w, "Score", fmt.Sprintf("%.4f (similarity %.1f%%)", m.Score, m.Similarity*100))

	if len(rec.Fallbacks) > 0 {
		fmt.Fprintln(w)
		warnColor.Fprintln(w, "Fallbacks")
		for _, fb := range rec.Fallbacks {
			warnColor.Fprintf(w, "  %s\n", fb.Error())
		}
	}
}

func printBiquads(w io.Writer, n *crossover.Network) {
	fmt.Fprintln(w)
	headingColor.Fprintf(w, "Crossover biquads @ %g Hz\n", n.SampleRate)
	for b := 0; b < n.Bands(); b++ {
		fmt.Fprintf(w, "  band %d\n", b+1)
		for i, c := range n.Coefficients(b) {
			fmt.Fprintf(w, "    %d: b=[%.9g %.9g %.9g] a=[1 %.9g %.9g]\n", i+1, c.B0, c.B1, c.B2, c.A1, c.A2)
		}
	}
}

func field(w io.Writer, name, value string) {
	fmt.Fprintf(w, "  %-14s ", name+":")
	valueColor.Fprintln(w, value)
}

func joinHz(freqs []float64) string {
	parts := make([]string, len(freqs))
	for i, f := range freqs {
		parts[i] = fmt.Sprintf("%g", f)
	}
	return strings.Join(parts, " / ") + " Hz"
}
