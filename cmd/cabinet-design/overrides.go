package main

import (
	"flag"
	"fmt"
	"strconv"
	"strings"

	"github.com/flobutbut/AcuoTune/preset"
)

// configFlags holds the raw configuration flags. Only flags set on the
// command line override the preset.
type configFlags struct {
	impedance  string
	power      string
	voices     string
	level      string
	style      string
	shape      string
	budget     string
	wall       string
	use        string
	load       string
	advanced   string
	slope      string
	q          string
	crossovers string
	vent       string
}

func registerConfigFlags(fs *flag.FlagSet) *configFlags {
	c := &configFlags{}
	fs.StringVar(&c.impedance, "impedance", "", "Nominal impedance in ohms (4, 8, 12 or 16)")
	fs.StringVar(&c.power, "power", "", "Amplifier power in watts (20..250)")
	fs.StringVar(&c.voices, "voices", "", "Number of ways (1..4)")
	fs.StringVar(&c.level, "level", "", "Listening level: low|medium|high")
	fs.StringVar(&c.style, "style", "", "Musical style: neutral|hifi|bass-heavy|acoustic|classical|jazz|rock|electronic")
	fs.StringVar(&c.shape, "shape", "", "Enclosure shape: bookshelf|wall-mount|tower|monitor")
	fs.StringVar(&c.budget, "budget", "", "Budget tier: entry|mid|high")
	fs.StringVar(&c.wall, "wall", "", "Wall distance: near|medium|far")
	fs.StringVar(&c.use, "use", "", "Primary use: music|home-theater|mixed|studio")
	fs.StringVar(&c.load, "load", "", "Load type: sealed|bass-reflex|double-bass-reflex")
	fs.StringVar(&c.advanced, "advanced", "", "Advanced mode (true|false)")
	fs.StringVar(&c.slope, "slope", "", "Filter slope in dB/octave (6, 12, 18 or 24, advanced mode)")
	fs.StringVar(&c.q, "q", "", "Filter Q (0.5..1.2, advanced mode)")
	fs.StringVar(&c.crossovers, "crossovers", "", "Comma-separated manual crossover frequencies in Hz (advanced mode)")
	fs.StringVar(&c.vent, "vent-tuning", "", "Vent tuning in Hz, 0 derives it (advanced mode)")
	return c
}

// file converts the flags set on fs into a sparse preset file.
func (c *configFlags) file(fs *flag.FlagSet) (*preset.File, error) {
	f := &preset.File{}
	var firstErr error
	fail := func(name string, err error) {
		if firstErr == nil {
			firstErr = fmt.Errorf("-%s: %w", name, err)
		}
	}
	fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "impedance":
			v, err := strconv.Atoi(strings.TrimSpace(c.impedance))
			if err != nil {
				fail(fl.Name, err)
				return
			}
			f.ImpedanceOhm = &v
		case "power":
			v, err := strconv.ParseFloat(strings.TrimSpace(c.power), 64)
			if err != nil {
				fail(fl.Name, err)
				return
			}
			f.AmplifierPowerW = &v
		case "voices":
			v, err := strconv.Atoi(strings.TrimSpace(c.voices))
			if err != nil {
				fail(fl.Name, err)
				return
			}
			f.VoiceCount = &v
		case "level":
			f.ListeningLevel = &c.level
		case "style":
			f.MusicalStyle = &c.style
		case "shape":
			f.EnclosureShape = &c.shape
		case "budget":
			f.BudgetTier = &c.budget
		case "wall":
			f.WallDistance = &c.wall
		case "use":
			f.PrimaryUse = &c.use
		case "load":
			f.LoadType = &c.load
		case "advanced":
			v, err := strconv.ParseBool(strings.TrimSpace(c.advanced))
			if err != nil {
				fail(fl.Name, err)
				return
			}
			f.AdvancedMode = &v
		case "slope":
			v, err := strconv.Atoi(strings.TrimSpace(c.slope))
			if err != nil {
				fail(fl.Name, err)
				return
			}
			f.FilterSlope = &v
		case "q":
			v, err := strconv.ParseFloat(strings.TrimSpace(c.q), 64)
			if err != nil {
				fail(fl.Name, err)
				return
			}
			f.Q = &v
		case "crossovers":
			v, err := parseFloatList(c.crossovers)
			if err != nil {
				fail(fl.Name, err)
				return
			}
			f.ManualCrossoverHz = v
		case "vent-tuning":
			v, err := strconv.ParseFloat(strings.TrimSpace(c.vent), 64)
			if err != nil {
				fail(fl.Name, err)
				return
			}
			f.VentTuningHz = &v
		}
	})
	return f, firstErr
}

func parseFloatList(raw string) ([]float64, error) {
	out := []float64{}
	for _, s := range strings.Split(raw, ",") {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}
