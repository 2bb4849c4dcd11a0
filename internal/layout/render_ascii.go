package layout

import (
	"fmt"
	"strings"
)

// Cell glyphs used by RenderASCII.
const (
	asciiFree     = ' '
	asciiObstacle = '#'
	asciiTwoWide  = '='
	asciiCoin     = 'o'
)

// RenderASCII draws a chunk's rows as a three-lane text grid, first row at
// the top. Used for debugging, golden tests and the generate command.
//
// Format per row:
//
//	"  0    2.00 |# |  |o | "
//
// Each lane is two characters: obstacle ('#' single, '=' two-wide) then
// pickup ('o' coin, first letter of the power-up kind in upper case). A
// trailing '~' marks a breather row.
func RenderASCII(rows []RowLayout) string {
	var sb strings.Builder
	sb.WriteString("row       z | L| M| R|\n")
	sb.WriteString(strings.Repeat("-", 22) + "\n")

	for _, r := range rows {
		var cells [NumLanes][2]rune
		for i := range cells {
			cells[i] = [2]rune{asciiFree, asciiFree}
		}
		for _, o := range r.Obstacles {
			glyph := asciiObstacle
			if o.Width == 2 {
				glyph = asciiTwoWide
			}
			for k := 0; k < o.Width; k++ {
				if l := o.Lane + Lane(k); l.Valid() {
					cells[l][0] = glyph
				}
			}
		}
		for _, p := range r.Pickups {
			if !p.Lane.Valid() {
				continue
			}
			cells[p.Lane][1] = pickupGlyph(p)
		}

		fmt.Fprintf(&sb, "%3d %7.2f |", r.Index, r.Z)
		for _, c := range cells {
			sb.WriteRune(c[0])
			sb.WriteRune(c[1])
			sb.WriteRune('|')
		}
		if r.Empty {
			sb.WriteString(" ~")
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func pickupGlyph(p PickupPlacement) rune {
	if p.Kind == PickupCoin {
		return asciiCoin
	}
	if p.Powerup != nil && p.Powerup.Kind != "" {
		return rune(strings.ToUpper(string(p.Powerup.Kind))[0])
	}
	return 'P'
}
