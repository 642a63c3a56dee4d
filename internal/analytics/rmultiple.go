package analytics

import (
	"math"
	"sort"

	"trade-journal/internal/models"
)

// RBucket is one range of the fixed R-multiple distribution. Ranges are
// half-open on the lower bound: a trade lands in the bucket where
// Min < r <= Max.
type RBucket struct {
	Label   string
	Min     float64
	Max     float64
	Count   int
	Percent float64
}

// RMultipleStats holds distributional statistics over the r-factor.
type RMultipleStats struct {
	Count  int
	Mean   float64
	Median float64
	Max    float64
	Min    float64

	PctAtLeast2R  float64 // r >= 2
	PctAtLeast3R  float64 // r >= 3
	PctLoss1To2R  float64 // -2 < r <= -1
	PctLossOver2R float64 // r <= -2

	Buckets []RBucket
}

// rBucketEdges defines the seven fixed distribution ranges.
var rBucketEdges = []struct {
	label    string
	min, max float64
}{
	{"< -2R", math.Inf(-1), -2},
	{"-2R..-1R", -2, -1},
	{"-1R..0", -1, 0},
	{"0..1R", 0, 1},
	{"1R..2R", 1, 2},
	{"2R..3R", 2, 3},
	{"> 3R", 3, math.Inf(1)},
}

// RMultiples computes r-factor statistics over any list of trades. An empty
// list yields a zeroed result with no buckets.
func RMultiples(trades []models.Trade) RMultipleStats {
	stats := RMultipleStats{Count: len(trades)}
	if len(trades) == 0 {
		return stats
	}

	values := make([]float64, len(trades))
	for i, t := range trades {
		values[i] = t.RFactor
	}
	sort.Float64s(values)

	stats.Min = values[0]
	stats.Max = values[len(values)-1]
	stats.Mean = mean(values)
	stats.Median = median(values)

	var atLeast2, atLeast3, loss1to2, lossOver2 int
	buckets := make([]RBucket, len(rBucketEdges))
	for i, edge := range rBucketEdges {
		buckets[i] = RBucket{Label: edge.label, Min: edge.min, Max: edge.max}
	}

	for _, r := range values {
		if r >= 2 {
			atLeast2++
		}
		if r >= 3 {
			atLeast3++
		}
		if r > -2 && r <= -1 {
			loss1to2++
		}
		if r <= -2 {
			lossOver2++
		}
		for i := range buckets {
			if r > buckets[i].Min && r <= buckets[i].Max {
				buckets[i].Count++
				break
			}
		}
	}

	total := len(values)
	stats.PctAtLeast2R = percent(atLeast2, total)
	stats.PctAtLeast3R = percent(atLeast3, total)
	stats.PctLoss1To2R = percent(loss1to2, total)
	stats.PctLossOver2R = percent(lossOver2, total)
	for i := range buckets {
		buckets[i].Percent = percent(buckets[i].Count, total)
	}
	stats.Buckets = buckets
	return stats
}

// median returns the true median of a sorted slice: the middle value for
// odd length, the mean of the two middle values for even length.
func median(sorted []float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}
