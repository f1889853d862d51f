// Package report computes summary statistics over a sample set and persists
// a frequency chart of the outcome distribution.
package report

import (
	"sort"
	"strconv"

	"github.com/pkg/errors"

	"github.com/malinowski-marek/qrng/internal/common/qrngerrors"
	"github.com/malinowski-marek/qrng/pkg/client/domain"
)

// Outcome is one measured bit pattern with its occurrence statistics.
type Outcome struct {
	Bits    string
	Value   uint64
	Count   int
	Percent float64
}

// Summary holds the statistics reported after a run.
type Summary struct {
	Count     int
	DomainMax uint64
	Distinct  int
	Min       uint64
	Max       uint64
	Mean      float64
	// Top lists the most frequent outcomes, at most ten, by count
	// descending.
	Top []Outcome
}

// Summarize computes the run statistics for samples decoded from counts with
// n binary sources.
func Summarize(samples domain.Samples, counts domain.Counts, n int) (*Summary, error) {
	if n < 1 || n > 64 {
		return nil, errors.WithStack(&qrngerrors.ErrInvalidArgument{
			Name:    "n",
			Value:   n,
			Message: "summary domain is limited to 64-bit outcomes",
		})
	}

	summary := &Summary{
		Count:     len(samples),
		DomainMax: domainMax(n),
		Distinct:  len(counts),
	}

	if len(samples) > 0 {
		summary.Min = samples[0]
		summary.Max = samples[0]
		sum := 0.0
		for _, v := range samples {
			if v < summary.Min {
				summary.Min = v
			}
			if v > summary.Max {
				summary.Max = v
			}
			sum += float64(v)
		}
		summary.Mean = sum / float64(len(samples))
	}

	total := counts.Shots()
	for bits, count := range counts {
		value, err := strconv.ParseUint(bits, 2, 64)
		if err != nil {
			return nil, errors.WithStack(&qrngerrors.ErrInvalidArgument{
				Name:    "counts",
				Value:   bits,
				Message: "outcome is not a binary string",
			})
		}
		percent := 0.0
		if total > 0 {
			percent = float64(count) / float64(total) * 100
		}
		summary.Top = append(summary.Top, Outcome{Bits: bits, Value: value, Count: count, Percent: percent})
	}
	sort.Slice(summary.Top, func(i, j int) bool {
		if summary.Top[i].Count != summary.Top[j].Count {
			return summary.Top[i].Count > summary.Top[j].Count
		}
		return summary.Top[i].Value < summary.Top[j].Value
	})
	if len(summary.Top) > 10 {
		summary.Top = summary.Top[:10]
	}
	return summary, nil
}

func domainMax(n int) uint64 {
	if n >= 64 {
		return ^uint64(0)
	}
	return (uint64(1) << uint(n)) - 1
}
