package wizard

import (
	"fmt"
	"strconv"
	"strings"
)

// RGB is a 24-bit color split into channels
type RGB struct {
	R, G, B uint8
}

// HexToRGB parses "#RRGGBB" or "RRGGBB" (case-insensitive)
func HexToRGB(hex string) (RGB, bool) {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) != 6 {
		return RGB{}, false
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return RGB{}, false
	}
	return RGB{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, true
}

// RGBToHex formats channels as lowercase "#rrggbb", clamping each to [0,255]
func RGBToHex(r, g, b int) string {
	return fmt.Sprintf("#%02x%02x%02x", clampChannel(r), clampChannel(g), clampChannel(b))
}

// Hex formats c as lowercase "#rrggbb"
func (c RGB) Hex() string {
	return RGBToHex(int(c.R), int(c.G), int(c.B))
}

func clampChannel(v int) int {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return v
}

// ColorEditor holds the hex and RGB views of the custom color being edited.
// Whichever view was edited last is the source of truth and the other is
// recomputed from it.
type ColorEditor struct {
	Label string
	hex   string
	rgb   [3]string
}

// NewColorEditor starts at black
func NewColorEditor() *ColorEditor {
	e := &ColorEditor{}
	e.Reset()
	return e
}

// Reset clears the label and returns to black
func (e *ColorEditor) Reset() {
	e.Label = ""
	e.hex = "#000000"
	e.rgb = [3]string{"0", "0", "0"}
}

// Hex is the text shown in the hex input
func (e *ColorEditor) Hex() string { return e.hex }

// Channels is the text shown in the R, G and B inputs
func (e *ColorEditor) Channels() [3]string { return e.rgb }

// SetHex applies an edit of the hex input. Non-hex characters are dropped and
// the value is truncated to six digits. A complete value updates the channels;
// a partial one leaves them at the last complete color.
func (e *ColorEditor) SetHex(input string) {
	var b strings.Builder
	for _, ch := range strings.TrimPrefix(input, "#") {
		if strings.ContainsRune("0123456789abcdefABCDEF", ch) {
			b.WriteRune(ch)
		}
		if b.Len() == 6 {
			break
		}
	}
	e.hex = "#" + b.String()
	if c, ok := HexToRGB(e.hex); ok {
		e.rgb = [3]string{
			strconv.Itoa(int(c.R)),
			strconv.Itoa(int(c.G)),
			strconv.Itoa(int(c.B)),
		}
	}
}

// SetChannel applies an edit of one RGB input (0=R, 1=G, 2=B). The raw text is
// kept as typed; the hex is recomputed with unparsable channels read as 0.
func (e *ColorEditor) SetChannel(channel int, input string) {
	if channel < 0 || channel > 2 {
		return
	}
	e.rgb[channel] = input
	e.hex = RGBToHex(parseChannel(e.rgb[0]), parseChannel(e.rgb[1]), parseChannel(e.rgb[2]))
}

// Color returns the current color, taken from the hex view when complete.
func (e *ColorEditor) Color() (RGB, bool) {
	return HexToRGB(e.hex)
}

// Resolved is the hex of the current color. While the hex input holds a
// partial value it is the color of the channels.
func (e *ColorEditor) Resolved() string {
	if rgb, ok := e.Color(); ok {
		return rgb.Hex()
	}
	return RGBToHex(parseChannel(e.rgb[0]), parseChannel(e.rgb[1]), parseChannel(e.rgb[2]))
}

func parseChannel(s string) int {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return v
}
