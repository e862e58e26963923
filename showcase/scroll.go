package showcase

// ScrollFraction converts a viewport scroll position into the [0,1] fraction
// of a scroll track. Progress is 0 while the track top is at or below the
// viewport top and 1 once the track bottom has reached the viewport top.
func ScrollFraction(scrollTop, trackTop, trackHeight float64) float64 {
	if trackHeight <= 0 {
		return 0
	}
	return clamp01((scrollTop - trackTop) / trackHeight)
}

// IndicatorDashOffset returns the stroke dash offset of the circular scroll
// indicator: a full circumference at p=0 and zero at p=1.
func IndicatorDashOffset(p, circumference float64) float64 {
	return circumference * (1 - clamp01(p))
}
