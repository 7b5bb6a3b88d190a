package cabinet

import (
	"fmt"
	"strings"
)

// ListeningLevel is the typical playback loudness.
type ListeningLevel int

const (
	LevelLow ListeningLevel = iota
	LevelMedium
	LevelHigh
)

func (l ListeningLevel) String() string {
	switch l {
	case LevelLow:
		return "low"
	case LevelMedium:
		return "medium"
	case LevelHigh:
		return "high"
	default:
		return fmt.Sprintf("ListeningLevel(%d)", int(l))
	}
}

func (l ListeningLevel) valid() bool { return l >= LevelLow && l <= LevelHigh }

// ParseListeningLevel parses the String form of a ListeningLevel.
func ParseListeningLevel(s string) (ListeningLevel, error) {
	switch normalizeEnum(s) {
	case "low":
		return LevelLow, nil
	case "medium":
		return LevelMedium, nil
	case "high":
		return LevelHigh, nil
	}
	return 0, &ConfigurationError{Field: "listening_level", Value: s, Reason: "expected low, medium or high"}
}

// Style is the musical style the cabinet is voiced for. Unknown styles are
// treated as StyleNeutral everywhere.
type Style int

const (
	StyleNeutral Style = iota
	StyleHiFi
	StyleBassHeavy
	StyleAcoustic
	StyleClassical
	StyleJazz
	StyleRock
	StyleElectronic
)

var styleNames = [...]string{
	StyleNeutral:    "neutral",
	StyleHiFi:       "hifi",
	StyleBassHeavy:  "bass-heavy",
	StyleAcoustic:   "acoustic",
	StyleClassical:  "classical",
	StyleJazz:       "jazz",
	StyleRock:       "rock",
	StyleElectronic: "electronic",
}

func (s Style) String() string {
	if s < 0 || int(s) >= len(styleNames) {
		return styleNames[StyleNeutral]
	}
	return styleNames[s]
}

// ParseStyle never fails: the style set is open and anything unrecognised
// maps to StyleNeutral.
func ParseStyle(s string) Style {
	n := normalizeEnum(s)
	switch n {
	case "bass", "bassheavy":
		return StyleBassHeavy
	case "hi-fi":
		return StyleHiFi
	case "vocal", "acoustique", "acoustic/vocal":
		return StyleAcoustic
	}
	for i, name := range styleNames {
		if name == n {
			return Style(i)
		}
	}
	return StyleNeutral
}

// Shape is the cabinet form factor.
type Shape int

const (
	ShapeBookshelf Shape = iota
	ShapeTower
	ShapeWallMount
	ShapeMonitor
)

func (s Shape) String() string {
	switch s {
	case ShapeBookshelf:
		return "bookshelf"
	case ShapeTower:
		return "tower"
	case ShapeWallMount:
		return "wall-mount"
	case ShapeMonitor:
		return "monitor"
	default:
		return fmt.Sprintf("Shape(%d)", int(s))
	}
}

func (s Shape) valid() bool { return s >= ShapeBookshelf && s <= ShapeMonitor }

// ParseShape parses the String form of a Shape.
func ParseShape(s string) (Shape, error) {
	switch normalizeEnum(s) {
	case "bookshelf":
		return ShapeBookshelf, nil
	case "tower", "floorstanding":
		return ShapeTower, nil
	case "wall-mount", "wall":
		return ShapeWallMount, nil
	case "monitor":
		return ShapeMonitor, nil
	}
	return 0, &ConfigurationError{Field: "enclosure_shape", Value: s, Reason: "expected bookshelf, tower, wall-mount or monitor"}
}

// Budget is the price tier.
type Budget int

const (
	BudgetEntry Budget = iota
	BudgetMid
	BudgetHigh
)

func (b Budget) String() string {
	switch b {
	case BudgetEntry:
		return "entry"
	case BudgetMid:
		return "mid"
	case BudgetHigh:
		return "high"
	default:
		return fmt.Sprintf("Budget(%d)", int(b))
	}
}

func (b Budget) valid() bool { return b >= BudgetEntry && b <= BudgetHigh }

// ParseBudget parses the String form of a Budget.
func ParseBudget(s string) (Budget, error) {
	switch normalizeEnum(s) {
	case "entry", "low":
		return BudgetEntry, nil
	case "mid", "medium":
		return BudgetMid, nil
	case "high":
		return BudgetHigh, nil
	}
	return 0, &ConfigurationError{Field: "budget_tier", Value: s, Reason: "expected entry, mid or high"}
}

// WallDistance is how far the cabinet sits from the nearest wall.
type WallDistance int

const (
	WallNear WallDistance = iota
	WallMedium
	WallFar
)

func (w WallDistance) String() string {
	switch w {
	case WallNear:
		return "near"
	case WallMedium:
		return "medium"
	case WallFar:
		return "far"
	default:
		return fmt.Sprintf("WallDistance(%d)", int(w))
	}
}

func (w WallDistance) valid() bool { return w >= WallNear && w <= WallFar }

// ParseWallDistance parses the String form of a WallDistance.
func ParseWallDistance(s string) (WallDistance, error) {
	switch normalizeEnum(s) {
	case "near":
		return WallNear, nil
	case "medium":
		return WallMedium, nil
	case "far":
		return WallFar, nil
	}
	return 0, &ConfigurationError{Field: "wall_distance", Value: s, Reason: "expected near, medium or far"}
}

// PrimaryUse is what the cabinet will mostly be used for.
type PrimaryUse int

const (
	UseMusic PrimaryUse = iota
	UseHomeTheater
	UseMixed
	UseStudio
)

func (u PrimaryUse) String() string {
	switch u {
	case UseMusic:
		return "music"
	case UseHomeTheater:
		return "home-theater"
	case UseMixed:
		return "mixed"
	case UseStudio:
		return "studio"
	default:
		return fmt.Sprintf("PrimaryUse(%d)", int(u))
	}
}

func (u PrimaryUse) valid() bool { return u >= UseMusic && u <= UseStudio }

// ParsePrimaryUse parses the String form of a PrimaryUse.
func ParsePrimaryUse(s string) (PrimaryUse, error) {
	switch normalizeEnum(s) {
	case "music":
		return UseMusic, nil
	case "home-theater", "hometheater", "cinema":
		return UseHomeTheater, nil
	case "mixed":
		return UseMixed, nil
	case "studio":
		return UseStudio, nil
	}
	return 0, &ConfigurationError{Field: "primary_use", Value: s, Reason: "expected music, home-theater, mixed or studio"}
}

// LoadType is the acoustic loading of the bass driver.
type LoadType int

const (
	LoadSealed LoadType = iota
	LoadBassReflex
	LoadDoubleBassReflex
)

func (l LoadType) String() string {
	switch l {
	case LoadSealed:
		return "sealed"
	case LoadBassReflex:
		return "bass-reflex"
	case LoadDoubleBassReflex:
		return "double-bass-reflex"
	default:
		return fmt.Sprintf("LoadType(%d)", int(l))
	}
}

func (l LoadType) valid() bool { return l >= LoadSealed && l <= LoadDoubleBassReflex }

// Vented reports whether the load uses a port.
func (l LoadType) Vented() bool { return l == LoadBassReflex || l == LoadDoubleBassReflex }

// ParseLoadType parses the String form of a LoadType.
func ParseLoadType(s string) (LoadType, error) {
	switch normalizeEnum(s) {
	case "sealed", "closed":
		return LoadSealed, nil
	case "bass-reflex", "bassreflex", "vented":
		return LoadBassReflex, nil
	case "double-bass-reflex", "doublebassreflex":
		return LoadDoubleBassReflex, nil
	}
	return 0, &ConfigurationError{Field: "load_type", Value: s, Reason: "expected sealed, bass-reflex or double-bass-reflex"}
}

func normalizeEnum(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.ReplaceAll(s, "_", "-")
}

func (l ListeningLevel) MarshalText() ([]byte, error) { return []byte(l.String()), nil }
func (s Style) MarshalText() ([]byte, error)          { return []byte(s.String()), nil }
func (s Shape) MarshalText() ([]byte, error)          { return []byte(s.String()), nil }
func (b Budget) MarshalText() ([]byte, error)         { return []byte(b.String()), nil }
func (w WallDistance) MarshalText() ([]byte, error)   { return []byte(w.String()), nil }
func (u PrimaryUse) MarshalText() ([]byte, error)     { return []byte(u.String()), nil }
func (l LoadType) MarshalText() ([]byte, error)       { return []byte(l.String()), nil }

func (l *ListeningLevel) UnmarshalText(b []byte) (err error) {
	*l, err = ParseListeningLevel(string(b))
	return err
}

func (s *Style) UnmarshalText(b []byte) error {
	*s = ParseStyle(string(b))
	return nil
}

func (s *Shape) UnmarshalText(b []byte) (err error) {
	*s, err = ParseShape(string(b))
	return err
}

func (b *Budget) UnmarshalText(text []byte) (err error) {
	*b, err = ParseBudget(string(text))
	return err
}

func (w *WallDistance) UnmarshalText(b []byte) (err error) {
	*w, err = ParseWallDistance(string(b))
	return err
}

func (u *PrimaryUse) UnmarshalText(b []byte) (err error) {
	*u, err = ParsePrimaryUse(string(b))
	return err
}

func (l *LoadType) UnmarshalText(b []byte) (err error) {
	*l, err = ParseLoadType(string(b))
	return err
}
