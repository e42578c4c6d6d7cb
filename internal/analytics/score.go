// Package analytics computes uptime statistics from check history.
package analytics

import "math"

// Score reduces a window of pass/fail outcomes to an uptime percentage
// rounded to one decimal place. An empty window scores 100: no data is
// treated optimistically as fully up, a policy choice rather than a
// measurement. Order-independent.
func Score(outcomes []bool) float64 {
	if len(outcomes) == 0 {
		return 100
	}
	passed := 0
	for _, ok := range outcomes {
		if ok {
			passed++
		}
	}
	return math.Round(float64(passed)/float64(len(outcomes))*1000) / 10
}
