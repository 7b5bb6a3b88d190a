package preset

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/flobutbut/AcuoTune/cabinet"
)

// File is the JSON schema for cabinet presets. Absent fields keep the
// default configuration value.
type File struct {
	Name              string    `json:"name,omitempty"`
	ImpedanceOhm      *int      `json:"impedance_ohm,omitempty"`
	AmplifierPowerW   *float64  `json:"amplifier_power_w,omitempty"`
	VoiceCount        *int      `json:"voice_count,omitempty"`
	ListeningLevel    *string   `json:"listening_level,omitempty"`
	MusicalStyle      *string   `json:"musical_style,omitempty"`
	EnclosureShape    *string   `json:"enclosure_shape,omitempty"`
	BudgetTier        *string   `json:"budget_tier,omitempty"`
	WallDistance      *string   `json:"wall_distance,omitempty"`
	PrimaryUse        *string   `json:"primary_use,omitempty"`
	LoadType          *string   `json:"load_type,omitempty"`
	AdvancedMode      *bool     `json:"advanced_mode,omitempty"`
	FilterSlope       *int      `json:"filter_slope_db_per_octave,omitempty"`
	Q                 *float64  `json:"q,omitempty"`
	ManualCrossoverHz []float64 `json:"manual_crossover_hz,omitempty"`
	VentTuningHz      *float64  `json:"vent_tuning_hz,omitempty"`
}

// LoadJSON loads a preset JSON file and applies it on top of the default
// configuration. The result is validated.
func LoadJSON(path string) (cabinet.Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return cabinet.Config{}, err
	}

	var f File
	if err := json.Unmarshal(b, &f); err != nil {
		return cabinet.Config{}, fmt.Errorf("preset %s: %w", path, err)
	}

	cfg := cabinet.NewDefaultConfig()
	if err := ApplyFile(&cfg, &f); err != nil {
		return cabinet.Config{}, fmt.Errorf("preset %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cabinet.Config{}, fmt.Errorf("preset %s: %w", path, err)
	}
	return cfg, nil
}

// ApplyFile applies a parsed preset file onto an existing configuration.
func ApplyFile(dst *cabinet.Config, f *File) error {
	if dst == nil {
		return fmt.Errorf("nil destination config")
	}
	if f == nil {
		return nil
	}

	if f.ImpedanceOhm != nil {
		dst.ImpedanceOhm = *f.ImpedanceOhm
	}
	if f.AmplifierPowerW != nil {
		if *f.AmplifierPowerW <= 0 {
			return fmt.Errorf("amplifier_power_w must be > 0")
		}
		dst.AmplifierPowerW = *f.AmplifierPowerW
	}
	if f.VoiceCount != nil {
		if *f.VoiceCount != dst.Voices && f.ManualCrossoverHz == nil {
			dst.ManualCrossoversHz = cabinet.DefaultManualCrossovers(*f.VoiceCount)
		}
		dst.Voices = *f.VoiceCount
	}
	if f.ListeningLevel != nil {
		v, err := cabinet.ParseListeningLevel(*f.ListeningLevel)
		if err != nil {
			return err
		}
		dst.Level = v
	}
	if f.MusicalStyle != nil {
		dst.Style = cabinet.ParseStyle(*f.MusicalStyle)
	}
	if f.EnclosureShape != nil {
		v, err := cabinet.ParseShape(*f.EnclosureShape)
		if err != nil {
			return err
		}
		dst.Shape = v
	}
	if f.BudgetTier != nil {
		v, err := cabinet.ParseBudget(*f.BudgetTier)
		if err != nil {
			return err
		}
		dst.Budget = v
	}
	if f.WallDistance != nil {
		v, err := cabinet.ParseWallDistance(*f.WallDistance)
		if err != nil {
			return err
		}
		dst.Wall = v
	}
	if f.PrimaryUse != nil {
		v, err := cabinet.ParsePrimaryUse(*f.PrimaryUse)
		if err != nil {
			return err
		}
		dst.Use = v
	}
	if f.LoadType != nil {
		v, err := cabinet.ParseLoadType(*f.LoadType)
		if err != nil {
			return err
		}
		dst.Load = v
	}
	if f.AdvancedMode != nil {
		dst.Advanced = *f.AdvancedMode
	}
	if f.FilterSlope != nil {
		dst.SlopeDBPerOct = *f.FilterSlope
	}
	if f.Q != nil {
		if *f.Q <= 0 {
			return fmt.Errorf("q must be > 0")
		}
		dst.Q = *f.Q
	}
	if f.ManualCrossoverHz != nil {
		dst.ManualCrossoversHz = append([]float64(nil), f.ManualCrossoverHz...)
	}
	if f.VentTuningHz != nil {
		if *f.VentTuningHz < 0 {
			return fmt.Errorf("vent_tuning_hz must be >= 0")
		}
		dst.VentTuningHz = *f.VentTuningHz
	}
	return nil
}

// FromConfig builds a fully populated preset file from cfg.
func FromConfig(name string, cfg cabinet.Config) File {
	str := func(s fmt.Stringer) *string {
		v := s.String()
		return &v
	}
	return File{
		Name:              strings.TrimSpace(name),
		ImpedanceOhm:      &cfg.ImpedanceOhm,
		AmplifierPowerW:   &cfg.AmplifierPowerW,
		VoiceCount:        &cfg.Voices,
		ListeningLevel:    str(cfg.Level),
		MusicalStyle:      str(cfg.Style),
		EnclosureShape:    str(cfg.Shape),
		BudgetTier:        str(cfg.Budget),
		WallDistance:      str(cfg.Wall),
		PrimaryUse:        str(cfg.Use),
		LoadType:          str(cfg.Load),
		AdvancedMode:      &cfg.Advanced,
		FilterSlope:       &cfg.SlopeDBPerOct,
		Q:                 &cfg.Q,
		ManualCrossoverHz: append([]float64(nil), cfg.ManualCrossoversHz...),
		VentTuningHz:      &cfg.VentTuningHz,
	}
}

// SaveJSON writes cfg as an indented preset file, creating parent
// directories as needed.
func SaveJSON(path, name string, cfg cabinet.Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f := FromConfig(name, cfg)
	b, err := json.MarshalIndent(&f, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(b, '\n'), 0o644)
}
