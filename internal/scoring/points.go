package scoring

// Points scores one activity from its zone minutes.
// Each minute in zone i (1-based) is worth i points.
func Points(zones [5]float64) float64 {
	var points float64
	for i, minutes := range zones {
		points += minutes * float64(i+1)
	}
	return points
}
