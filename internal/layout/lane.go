// Package layout generates obstacle and pickup layouts for track chunks.
// It contains no rendering or timing logic: a chunk layout is a pure function
// of the generator parameters, the catalog, a difficulty level and a seeded
// random source. Callers turn the returned placements into entities.
package layout

// Lane is one of the three parallel paths of the track.
type Lane int

const (
	Left Lane = iota
	Middle
	Right
)

// NumLanes is the fixed number of lanes.
const NumLanes = 3

// Lanes lists every lane in order (Left < Middle < Right).
var Lanes = [NumLanes]Lane{Left, Middle, Right}

// String returns a human-readable name for the lane.
func (l Lane) String() string {
	switch l {
	case Left:
		return "left"
	case Middle:
		return "middle"
	case Right:
		return "right"
	default:
		return "unknown"
	}
}

// Valid reports whether l is one of the three lanes.
func (l Lane) Valid() bool {
	return l >= Left && l <= Right
}

// X returns the world X of the lane centre given the middle-lane X and the
// distance between adjacent lanes.
func (l Lane) X(centerX, laneOffset float64) float64 {
	return centerX + laneOffset*float64(l-Middle)
}

// Span is a pair of adjacent lanes occupied by a two-wide obstacle.
type Span int

const (
	LeftMiddle Span = iota
	MiddleRight
)

// Spans lists both spans in order.
var Spans = [2]Span{LeftMiddle, MiddleRight}

// String returns a human-readable name for the span.
func (s Span) String() string {
	switch s {
	case LeftMiddle:
		return "left+middle"
	case MiddleRight:
		return "middle+right"
	default:
		return "unknown"
	}
}

// Lanes returns the two lanes covered by the span, leftmost first.
func (s Span) Lanes() [2]Lane {
	if s == MiddleRight {
		return [2]Lane{Middle, Right}
	}
	return [2]Lane{Left, Middle}
}

// Start returns the leftmost lane of the span.
func (s Span) Start() Lane {
	return s.Lanes()[0]
}

// X returns the world X of the span centre (midpoint of its two lanes).
func (s Span) X(centerX, laneOffset float64) float64 {
	ls := s.Lanes()
	return 0.5 * (ls[0].X(centerX, laneOffset) + ls[1].X(centerX, laneOffset))
}

// LaneMask is the blocked/occupied status of each lane in one row.
type LaneMask [NumLanes]bool

// Count returns the number of set lanes.
func (m LaneMask) Count() int {
	n := 0
	for _, b := range m {
		if b {
			n++
		}
	}
	return n
}

// Full reports whether every lane is set.
func (m LaneMask) Full() bool {
	return m.Count() == NumLanes
}

// Empty reports whether no lane is set.
func (m LaneMask) Empty() bool {
	return m.Count() == 0
}

// Free returns the unset lanes in lane order.
func (m LaneMask) Free() []Lane {
	free := make([]Lane, 0, NumLanes)
	for _, l := range Lanes {
		if !m[l] {
			free = append(free, l)
		}
	}
	return free
}

// String renders the mask as three characters, '#' for set and '.' for unset.
func (m LaneMask) String() string {
	b := []byte("...")
	for i, set := range m {
		if set {
			b[i] = '#'
		}
	}
	return string(b)
}
