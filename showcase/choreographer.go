package showcase

import (
	"math"
)

// Direction selects the sign of the rendered rotation.
type Direction int

const (
	// CounterClockwise rotates models right-to-left as the track moves left.
	CounterClockwise Direction = iota
	Clockwise
)

// Choreographer maps one scroll fraction onto a horizontal track of panels.
// A single progress source is sliced into PanelCount equal windows; each panel
// only rotates while the fraction is inside its own window.
type Choreographer struct {
	PanelCount int
	Direction  Direction
}

// PanelState is the derived state of one panel for a given scroll fraction.
type PanelState struct {
	Index    int     `json:"index"`
	Progress float64 `json:"progress"`
	Angle    float64 `json:"angle"` // radians, always in [0, 2π]
}

// Frame is everything a renderer needs for one scroll sample.
type Frame struct {
	RawProgress        float64      `json:"rawProgress"`
	TrackOffsetPercent float64      `json:"trackOffsetPercent"`
	ActivePanel        int          `json:"activePanel"`
	Panels             []PanelState `json:"panels"`
}

// New returns a Choreographer for n panels. n < 1 is treated as 1.
func New(n int) *Choreographer {
	return &Choreographer{PanelCount: n, Direction: CounterClockwise}
}

func (c *Choreographer) panels() int {
	if c.PanelCount < 1 {
		return 1
	}
	return c.PanelCount
}

// TrackOffsetPercent returns the horizontal translation of the panel track in
// percent of one panel width. At p=1 the last panel is fully in view.
func (c *Choreographer) TrackOffsetPercent(p float64) float64 {
	p = clamp01(p)
	offset := -p * float64(c.panels()-1) * 100
	if offset == 0 {
		// avoid -0 leaking into rendered CSS
		return 0
	}
	return offset
}

// PanelIndex returns the panel whose window contains p.
func (c *Choreographer) PanelIndex(p float64) int {
	n := c.panels()
	idx := int(math.Floor(clamp01(p) * float64(n)))
	if idx > n-1 {
		idx = n - 1
	}
	if idx < 0 {
		idx = 0
	}
	return idx
}

// PanelProgress returns the normalized progress of panel i within its window.
// Outside the window it holds at 0 (before) or 1 (after).
func (c *Choreographer) PanelProgress(p float64, i int) float64 {
	n := float64(c.panels())
	start := float64(i) / n
	end := float64(i+1) / n
	return clamp01((clamp01(p) - start) / (end - start))
}

// RotationAngle is PanelProgress scaled to one full turn, in radians.
func (c *Choreographer) RotationAngle(p float64, i int) float64 {
	return c.PanelProgress(p, i) * 2 * math.Pi
}

// SignedRotation applies Direction to RotationAngle.
func (c *Choreographer) SignedRotation(p float64, i int) float64 {
	angle := c.RotationAngle(p, i)
	if c.Direction == CounterClockwise && angle != 0 {
		return -angle
	}
	return angle
}

// Frame derives the full render state for p.
func (c *Choreographer) Frame(p float64) Frame {
	p = clamp01(p)
	n := c.panels()
	frame := Frame{
		RawProgress:        p,
		TrackOffsetPercent: c.TrackOffsetPercent(p),
		ActivePanel:        c.PanelIndex(p),
		Panels:             make([]PanelState, n),
	}
	for i := 0; i < n; i++ {
		progress := c.PanelProgress(p, i)
		frame.Panels[i] = PanelState{
			Index:    i,
			Progress: progress,
			Angle:    progress * 2 * math.Pi,
		}
	}
	return frame
}

func clamp01(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
