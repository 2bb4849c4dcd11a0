package core

// Color represents a foreground color for a screen cell. The platform maps
// each value to an ANSI 256-color code.
type Color uint8

// Palette.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightBlue
	ColorBrightMagenta
	ColorBrightCyan
	ColorBrightWhite
	ColorOrange
	ColorGray
)

// Roles the runner draws with.
const (
	ColorTrack       = ColorGray
	ColorObstacle    = ColorRed
	ColorLowObstacle = ColorYellow // Jumpable
	ColorSpent       = ColorGray   // Obstacle already hit
	ColorCoin        = ColorBrightYellow
	ColorShield      = ColorBrightCyan
	ColorMagnet      = ColorMagenta
	ColorPlayer      = ColorBrightGreen
	ColorEnemy       = ColorBrightRed
	ColorFireball    = ColorOrange
	ColorHUD         = ColorCyan
)
