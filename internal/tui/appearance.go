package tui

import (
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type appearanceProfileID string

const (
	appearanceDefault appearanceProfileID = "default"
	appearanceMono    appearanceProfileID = "mono"
)

// monochrome is set by the mono profile; selection then renders reversed instead of colored.
var monochrome bool

func resetAppearancePaletteToDefaults() {
	colorMuted = defaultColorMuted
	colorSelectedBg = defaultColorSelectedBg
	colorSelectedFg = defaultColorSelectedFg
	colorSurfaceBg = defaultColorSurfaceBg
	colorSurfaceFg = defaultColorSurfaceFg
	colorControlBg = defaultColorControlBg
	colorInputBg = defaultColorInputBg
	colorAccent = defaultColorAccent
	colorError = defaultColorError
	colorModalHeaderBg = defaultColorModalHeaderBg
	monochrome = false
}

// applyAppearancePreference picks the profile from SERVERPANEL_TUI_PROFILE, then the config.
func applyAppearancePreference(configured string) {
	v := strings.ToLower(strings.TrimSpace(os.Getenv("SERVERPANEL_TUI_PROFILE")))
	if v == "" {
		v = strings.ToLower(strings.TrimSpace(configured))
	}
	setAppearanceProfile(appearanceProfileID(v))
}

func setAppearanceProfile(id appearanceProfileID) {
	resetAppearancePaletteToDefaults()
	switch id {
	case appearanceMono:
		none := lipgloss.NoColor{}
		colorMuted = none
		colorSelectedBg = none
		colorSelectedFg = none
		colorSurfaceBg = none
		colorSurfaceFg = none
		colorControlBg = none
		colorInputBg = none
		colorAccent = none
		colorError = none
		colorModalHeaderBg = none
		monochrome = true
	default:
		// Unknown ids fall back to the default palette.
	}
}
