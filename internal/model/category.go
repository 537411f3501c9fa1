package model

import "time"

// Category is a user-defined group (name + color) that tasks can reference.
// Deleting a category detaches it from its tasks; it never deletes them.
type Category struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Color     Color     `json:"color"`
	CreatedAt time.Time `json:"created_at"`
}

// Color is one of the fixed task/category colors.
type Color string

const (
	ColorBlue   Color = "blue"
	ColorPurple Color = "purple"
	ColorGreen  Color = "green"
	ColorOrange Color = "orange"
	ColorPink   Color = "pink"
	ColorYellow Color = "yellow"
	ColorTeal   Color = "teal"
	ColorIndigo Color = "indigo"
	ColorGray   Color = "gray"
)

// Colors lists every color in picker order.
var Colors = []Color{
	ColorBlue, ColorPurple, ColorGreen, ColorOrange, ColorPink,
	ColorYellow, ColorTeal, ColorIndigo, ColorGray,
}

// ansiColors maps each color to a terminal palette entry for rendering.
var ansiColors = map[Color]string{
	ColorBlue:   "39",
	ColorPurple: "141",
	ColorGreen:  "148",
	ColorOrange: "214",
	ColorPink:   "205",
	ColorYellow: "227",
	ColorTeal:   "81",
	ColorIndigo: "63",
	ColorGray:   "245",
}

// ANSI returns the terminal palette code for the color, defaulting to gray.
func (c Color) ANSI() string {
	if code, ok := ansiColors[c]; ok {
		return code
	}
	return ansiColors[ColorGray]
}

// Valid reports whether c is one of the known colors.
func (c Color) Valid() bool {
	_, ok := ansiColors[c]
	return ok
}
