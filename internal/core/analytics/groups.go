package analytics

import (
	"math"

	"github.com/lindseymertz/lily/internal/core/domain"
)

// GroupCounts partitions records by the given dimension and reports
// (value, count) pairs. Distinct values appear in first-occurrence order,
// not sorted; chart segment order depends on this. An unknown dimension
// yields nil.
func GroupCounts(records []domain.ServiceRequest, dim domain.Dimension) []domain.GroupCount {
	index := make(map[string]int)
	var out []domain.GroupCount
	for _, r := range records {
		v, ok := domain.DimensionValue(r, dim)
		if !ok {
			return nil
		}
		if i, seen := index[v]; seen {
			out[i].Count++
			continue
		}
		index[v] = len(out)
		out = append(out, domain.GroupCount{Value: v, Count: 1})
	}
	return out
}

// AverageResolutionBy computes the arithmetic mean of timeToResolution per
// partition of the given dimension, rounded to the nearest integer hour.
// Partition order follows first occurrence, as in GroupCounts.
func AverageResolutionBy(records []domain.ServiceRequest, dim domain.Dimension) []domain.GroupAverage {
	type acc struct {
		sum   float64
		count int
	}
	index := make(map[string]int)
	var order []string
	var sums []acc
	for _, r := range records {
		v, ok := domain.DimensionValue(r, dim)
		if !ok {
			return nil
		}
		i, seen := index[v]
		if !seen {
			i = len(order)
			index[v] = i
			order = append(order, v)
			sums = append(sums, acc{})
		}
		sums[i].sum += r.TimeToResolution
		sums[i].count++
	}
	out := make([]domain.GroupAverage, len(order))
	for i, v := range order {
		out[i] = domain.GroupAverage{
			Value:    v,
			AvgHours: int(math.Round(sums[i].sum / float64(sums[i].count))),
		}
	}
	return out
}

// MeanResolutionHours is the rounded mean of timeToResolution across the
// whole collection, zero when empty.
func MeanResolutionHours(records []domain.ServiceRequest) int {
	if len(records) == 0 {
		return 0
	}
	var sum float64
	for _, r := range records {
		sum += r.TimeToResolution
	}
	return int(math.Round(sum / float64(len(records))))
}
