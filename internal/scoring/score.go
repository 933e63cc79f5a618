// Package scoring converts an answer's correctness and timing into points.
package scoring

import "math"

// PointsPerSecond scales the time-weighted score.
const PointsPerSecond = 10

// Score rewards a correct answer with the full time budget plus whatever
// time was left over: (budget + max(0, budget-used)) * 10. Inputs are
// floored to non-negative integers first. Incorrect answers score 0.
func Score(isCorrect bool, timeBudget, timeUsed float64) int {
	if !isCorrect {
		return 0
	}
	budget := floorNonNegative(timeBudget)
	used := floorNonNegative(timeUsed)

	remaining := budget - used
	if remaining < 0 {
		remaining = 0
	}
	return (budget + remaining) * PointsPerSecond
}

func floorNonNegative(v float64) int {
	if math.IsNaN(v) || v <= 0 {
		return 0
	}
	if v >= math.MaxInt32 {
		return math.MaxInt32
	}
	return int(math.Floor(v))
}
