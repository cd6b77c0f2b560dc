package settings

import (
	"fmt"
	"regexp"

	"clipcaption/config"
	"clipcaption/types"
)

var colorRe = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// Validate checks a full settings object before it is applied or persisted.
func Validate(s types.CaptionSettings) error {
	if s.FontSize < config.MinFontSize || s.FontSize > config.MaxFontSize {
		return fmt.Errorf("font size %d out of range [%d, %d]", s.FontSize, config.MinFontSize, config.MaxFontSize)
	}
	switch s.Position {
	case types.PositionTop, types.PositionMiddle, types.PositionBottom:
	default:
		return fmt.Errorf("unknown caption position %q", s.Position)
	}
	if !colorRe.MatchString(s.Color) {
		return fmt.Errorf("color %q is not an RGB hex string", s.Color)
	}
	return nil
}
