package layout

import (
	"errors"
	"fmt"
	"strings"
)

// Placement is a bit set of positions an obstacle may occupy.
type Placement uint8

const (
	AllowLeft Placement = 1 << iota
	AllowMiddle
	AllowRight
	AllowLeftMiddle
	AllowMiddleRight

	AllowAllSingle = AllowLeft | AllowMiddle | AllowRight
	AllowAllSpans  = AllowLeftMiddle | AllowMiddleRight
)

// AllowsLane reports whether a single-lane obstacle may sit in lane l.
func (p Placement) AllowsLane(l Lane) bool {
	switch l {
	case Left:
		return p&AllowLeft != 0
	case Middle:
		return p&AllowMiddle != 0
	case Right:
		return p&AllowRight != 0
	}
	return false
}

// AllowsSpan reports whether a two-wide obstacle may occupy span s.
func (p Placement) AllowsSpan(s Span) bool {
	switch s {
	case LeftMiddle:
		return p&AllowLeftMiddle != 0
	case MiddleRight:
		return p&AllowMiddleRight != 0
	}
	return false
}

var placementNames = []struct {
	bit  Placement
	name string
}{
	{AllowLeft, "left"},
	{AllowMiddle, "middle"},
	{AllowRight, "right"},
	{AllowLeftMiddle, "left+middle"},
	{AllowMiddleRight, "middle+right"},
}

// String returns the comma-separated placement names, e.g. "left,right".
func (p Placement) String() string {
	var parts []string
	for _, pn := range placementNames {
		if p&pn.bit != 0 {
			parts = append(parts, pn.name)
		}
	}
	return strings.Join(parts, ",")
}

// MarshalText implements encoding.TextMarshaler.
func (p Placement) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. It accepts the names
// produced by String plus the shorthands "single" and "spans".
func (p *Placement) UnmarshalText(text []byte) error {
	var out Placement
	for _, raw := range strings.Split(string(text), ",") {
		name := strings.ToLower(strings.TrimSpace(raw))
		if name == "" {
			continue
		}
		switch name {
		case "single":
			out |= AllowAllSingle
			continue
		case "spans":
			out |= AllowAllSpans
			continue
		}
		found := false
		for _, pn := range placementNames {
			if pn.name == name {
				out |= pn.bit
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("layout: unknown placement %q", name)
		}
	}
	*p = out
	return nil
}

// ObstacleSpec is a static catalog entry describing one obstacle kind.
// Name, Glyph and Jumpable are opaque to the generator and are carried
// through to the placements for the collaborator that builds entities.
type ObstacleSpec struct {
	ID         string    `json:"id" yaml:"id"`
	Name       string    `json:"name,omitempty" yaml:"name,omitempty"`
	Glyph      string    `json:"glyph,omitempty" yaml:"glyph,omitempty"`
	LaneWidth  int       `json:"lane_width" yaml:"lane_width"`
	Placements Placement `json:"placements" yaml:"placements"`
	Jumpable   bool      `json:"jumpable,omitempty" yaml:"jumpable,omitempty"`
}

// PowerupKind identifies the effect a power-up grants.
type PowerupKind string

const (
	PowerupInvulnerability PowerupKind = "invulnerability"
	PowerupMagnet          PowerupKind = "magnet"
)

// PowerupSpec is a static catalog entry describing one power-up kind.
type PowerupSpec struct {
	ID            string      `json:"id" yaml:"id"`
	Name          string      `json:"name,omitempty" yaml:"name,omitempty"`
	Kind          PowerupKind `json:"kind" yaml:"kind"`
	DurationTicks int         `json:"duration_ticks" yaml:"duration_ticks"`
}

// Catalog is the set of things the generator may place.
type Catalog struct {
	Obstacles []ObstacleSpec `json:"obstacles" yaml:"obstacles"`
	Coin      bool           `json:"coin" yaml:"coin"`
	Powerups  []PowerupSpec  `json:"powerups" yaml:"powerups"`
}

// singlesFor returns the width-1 specs permitted in lane l.
func (c Catalog) singlesFor(l Lane) []ObstacleSpec {
	var out []ObstacleSpec
	for _, o := range c.Obstacles {
		if o.LaneWidth == 1 && o.Placements.AllowsLane(l) {
			out = append(out, o)
		}
	}
	return out
}

// twoWideFor returns the width-2 specs permitted on span s.
func (c Catalog) twoWideFor(s Span) []ObstacleSpec {
	var out []ObstacleSpec
	for _, o := range c.Obstacles {
		if o.LaneWidth == 2 && o.Placements.AllowsSpan(s) {
			out = append(out, o)
		}
	}
	return out
}

// Validate reports catalog entries that can never be placed. A catalog that
// fails validation is still safe to generate from; the offending entries are
// simply never chosen.
func (c Catalog) Validate() error {
	var errs []error
	seen := make(map[string]bool, len(c.Obstacles))
	for i, o := range c.Obstacles {
		name := o.ID
		if name == "" {
			name = fmt.Sprintf("#%d", i)
			errs = append(errs, fmt.Errorf("obstacle %s: missing id", name))
		} else if seen[name] {
			errs = append(errs, fmt.Errorf("obstacle %s: duplicate id", name))
		}
		seen[name] = true

		switch o.LaneWidth {
		case 1:
			if o.Placements&AllowAllSingle == 0 {
				errs = append(errs, fmt.Errorf("obstacle %s: width 1 but no single-lane placement allowed", name))
			}
		case 2:
			if o.Placements&AllowAllSpans == 0 {
				errs = append(errs, fmt.Errorf("obstacle %s: width 2 but no span placement allowed", name))
			}
		default:
			errs = append(errs, fmt.Errorf("obstacle %s: lane width %d not in {1,2}", name, o.LaneWidth))
		}
	}
	for i, p := range c.Powerups {
		if p.ID == "" {
			errs = append(errs, fmt.Errorf("powerup #%d: missing id", i))
		}
		if p.Kind != PowerupInvulnerability && p.Kind != PowerupMagnet {
			errs = append(errs, fmt.Errorf("powerup %s: unknown kind %q", p.ID, p.Kind))
		}
	}
	return errors.Join(errs...)
}
