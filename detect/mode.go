package detect

import (
	"strings"

	"github.com/pkg/errors"
)

// Mode is a segmentation strategy which turns a frame into foreground mask
type Mode uint16

const (
	// ModeGrayscale marks pixels darker than threshold as foreground
	ModeGrayscale Mode = iota
	// ModeEdges uses Canny edges as foreground
	ModeEdges
	// ModeColor marks pixels inside HSV range as foreground
	ModeColor
)

func (m Mode) String() string {
	switch m {
	case ModeGrayscale:
		return "Grayscale"
	case ModeEdges:
		return "Edges"
	case ModeColor:
		return "Color"
	default:
		return "Unknown"
	}
}

// ParseMode converts case-insensitive mode name to Mode
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "grayscale", "gray":
		return ModeGrayscale, nil
	case "edges", "edge", "canny":
		return ModeEdges, nil
	case "color", "colour", "hsv":
		return ModeColor, nil
	default:
		return ModeGrayscale, errors.Errorf("unknown detection mode '%s'", s)
	}
}

// MarshalText implements encoding.TextMarshaler
func (m Mode) MarshalText() ([]byte, error) {
	if m > ModeColor {
		return nil, errors.Errorf("unknown detection mode %d", m)
	}
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (m *Mode) UnmarshalText(text []byte) error {
	parsed, err := ParseMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
