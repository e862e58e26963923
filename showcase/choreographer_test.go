package showcase

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

const eps = 1e-9

func TestTrackOffsetPercent(t *testing.T) {
	for _, n := range []int{1, 2, 3, 5, 8} {
		c := New(n)
		for _, p := range []float64{0, 0.1, 0.25, 0.5, 0.99, 1} {
			want := -p * float64(n-1) * 100
			assert.InDelta(t, want, c.TrackOffsetPercent(p), eps, "n=%d p=%v", n, p)
		}
		assert.InDelta(t, -float64(n-1)*100, c.TrackOffsetPercent(1), eps, "last panel in view for n=%d", n)
	}
}

func TestTrackOffsetPercentSinglePanelNeverMoves(t *testing.T) {
	c := New(1)
	assert.Equal(t, 0.0, c.TrackOffsetPercent(0.7))
	assert.False(t, math.Signbit(c.TrackOffsetPercent(0.7)))
}

func TestPanelIndex(t *testing.T) {
	c := New(4)
	assert.Equal(t, 0, c.PanelIndex(0))
	assert.Equal(t, 0, c.PanelIndex(0.24))
	assert.Equal(t, 1, c.PanelIndex(0.25))
	assert.Equal(t, 2, c.PanelIndex(0.6))
	assert.Equal(t, 3, c.PanelIndex(0.99))
	assert.Equal(t, 3, c.PanelIndex(1), "p=1 clamps to the last panel")
	assert.Equal(t, 0, c.PanelIndex(-0.3))
	assert.Equal(t, 3, c.PanelIndex(1.7))
}

func TestPanelProgressClampedOutsideSegment(t *testing.T) {
	for _, n := range []int{1, 2, 4, 7} {
		c := New(n)
		for i := 0; i < n; i++ {
			start := float64(i) / float64(n)
			end := float64(i+1) / float64(n)
			for step := 0; step <= 100; step++ {
				p := float64(step) / 100
				got := c.PanelProgress(p, i)
				assert.GreaterOrEqual(t, got, 0.0)
				assert.LessOrEqual(t, got, 1.0)
				if p <= start {
					assert.Equal(t, 0.0, got, "n=%d i=%d p=%v", n, i, p)
				}
				if p >= end {
					assert.Equal(t, 1.0, got, "n=%d i=%d p=%v", n, i, p)
				}
			}
		}
	}
}

func TestPanelProgressWithinSegment(t *testing.T) {
	c := New(4)
	assert.InDelta(t, 0.5, c.PanelProgress(0.125, 0), eps)
	assert.InDelta(t, 0.5, c.PanelProgress(0.375, 1), eps)
	assert.InDelta(t, 0.2, c.PanelProgress(0.8, 3), eps)
}

func TestRotationAngle(t *testing.T) {
	c := New(2)
	assert.InDelta(t, math.Pi, c.RotationAngle(0.25, 0), eps)
	assert.InDelta(t, 2*math.Pi, c.RotationAngle(0.9, 0), eps)
	assert.InDelta(t, 0, c.RotationAngle(0.3, 1), eps)

	assert.InDelta(t, -math.Pi, c.SignedRotation(0.25, 0), eps)
	c.Direction = Clockwise
	assert.InDelta(t, math.Pi, c.SignedRotation(0.25, 0), eps)
}

func TestFrame(t *testing.T) {
	c := New(3)
	frame := c.Frame(0.5)

	assert.InDelta(t, -100, frame.TrackOffsetPercent, eps)
	assert.Equal(t, 1, frame.ActivePanel)
	assert.Len(t, frame.Panels, 3)
	assert.Equal(t, 1.0, frame.Panels[0].Progress)
	assert.InDelta(t, 0.5, frame.Panels[1].Progress, eps)
	assert.Equal(t, 0.0, frame.Panels[2].Progress)
	assert.InDelta(t, math.Pi, frame.Panels[1].Angle, eps)
}

func TestZeroPanelsTreatedAsOne(t *testing.T) {
	c := New(0)
	frame := c.Frame(0.4)
	assert.Len(t, frame.Panels, 1)
	assert.Equal(t, 0.0, frame.TrackOffsetPercent)
	assert.InDelta(t, 0.4, frame.Panels[0].Progress, eps)
}

func TestScrollFraction(t *testing.T) {
	assert.Equal(t, 0.0, ScrollFraction(0, 100, 500))
	assert.InDelta(t, 0.5, ScrollFraction(350, 100, 500), eps)
	assert.Equal(t, 1.0, ScrollFraction(900, 100, 500))
	assert.Equal(t, 0.0, ScrollFraction(900, 100, 0))
}

func TestIndicatorDashOffset(t *testing.T) {
	assert.InDelta(t, 126, IndicatorDashOffset(0, 126), eps)
	assert.InDelta(t, 63, IndicatorDashOffset(0.5, 126), eps)
	assert.InDelta(t, 0, IndicatorDashOffset(1, 126), eps)
}
