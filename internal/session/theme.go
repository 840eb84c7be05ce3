package session

import "github.com/fatih/color"

// Theme is one of the two visual palettes the session renders with.
// Themes are purely presentational: switching one never touches the
// record list or the remote collaborator.
type Theme struct {
	Name   string
	Header *color.Color
	ID     *color.Color
	Card   *color.Color
	Label  *color.Color
	Warn   *color.Color
	Status *color.Color
	Prompt *color.Color
}

// Dark is the default palette, tuned for dark terminals.
var Dark = Theme{
	Name:   "dark",
	Header: color.New(color.FgHiCyan, color.Bold),
	ID:     color.New(color.FgHiBlack),
	Card:   color.New(color.FgHiWhite),
	Label:  color.New(color.FgCyan),
	Warn:   color.New(color.FgHiYellow),
	Status: color.New(color.FgHiGreen),
	Prompt: color.New(color.FgHiMagenta),
}

// Light is the palette for light terminals.
var Light = Theme{
	Name:   "light",
	Header: color.New(color.FgBlue, color.Bold),
	ID:     color.New(color.FgWhite),
	Card:   color.New(color.FgBlack),
	Label:  color.New(color.FgBlue),
	Warn:   color.New(color.FgRed),
	Status: color.New(color.FgGreen),
	Prompt: color.New(color.FgMagenta),
}

// ThemeByName maps a configured theme name to a palette.  Anything
// other than "light" yields Dark.
func ThemeByName(name string) Theme {
	if name == "light" {
		return Light
	}
	return Dark
}

// Flip returns the other palette.
func (t Theme) Flip() Theme {
	if t.Name == Dark.Name {
		return Light
	}
	return Dark
}
