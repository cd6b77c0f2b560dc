package types

// CaptionPosition is the vertical placement of rendered captions.
type CaptionPosition string

const (
	PositionTop    CaptionPosition = "top"
	PositionMiddle CaptionPosition = "middle"
	PositionBottom CaptionPosition = "bottom"
)

// CaptionSettings controls how captions are drawn, both in the preview and in
// the rendered output. There is exactly one instance per project and it is
// always transmitted and stored as a whole, never as a field-level diff.
type CaptionSettings struct {
	FontSize int             `json:"fontSize"`
	Position CaptionPosition `json:"position"`
	Color    string          `json:"color"`
}

// DefaultCaptionSettings returns the settings a fresh project starts with.
func DefaultCaptionSettings() CaptionSettings {
	return CaptionSettings{
		FontSize: 24,
		Position: PositionBottom,
		Color:    "#ffffff",
	}
}
