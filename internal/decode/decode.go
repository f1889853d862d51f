// Package decode expands an outcome-count mapping into the flat,
// order-randomized sample sequence handed to callers.
package decode

import (
	cryptorand "crypto/rand"
	"encoding/binary"
	"math/rand"
	"strconv"
	"time"

	"github.com/pkg/errors"

	"github.com/malinowski-marek/qrng/internal/common/qrngerrors"
	"github.com/malinowski-marek/qrng/pkg/client/domain"
)

// Expand converts counts into samples: each n-bit outcome string is parsed
// most-significant bit first as an unsigned integer and appended once per
// recorded occurrence, then the whole sequence is uniformly shuffled.
//
// The shuffle only hides run-grouping artifacts in the presentation order;
// it carries no statistical weight and deliberately uses ordinary
// pseudorandomness, never the quantum data itself. An empty mapping decodes
// to an empty sequence, not an error.
func Expand(counts domain.Counts, n int) (domain.Samples, error) {
	return ExpandWithRand(counts, n, newShuffleRand())
}

// ExpandWithRand is Expand with a caller-supplied randomness source, so
// tests can make the shuffle deterministic.
func ExpandWithRand(counts domain.Counts, n int, rng *rand.Rand) (domain.Samples, error) {
	if n < 1 || n > 64 {
		return nil, errors.WithStack(&qrngerrors.ErrInvalidArgument{
			Name:    "n",
			Value:   n,
			Message: "decodable outcome width is 1 to 64 bits",
		})
	}

	samples := make(domain.Samples, 0, counts.Shots())
	for outcome, count := range counts {
		if count < 0 {
			return nil, errors.WithStack(&qrngerrors.ErrInvalidArgument{
				Name:    "counts",
				Value:   count,
				Message: "occurrence counts must be non-negative",
			})
		}
		if len(outcome) != n {
			return nil, errors.WithStack(&qrngerrors.ErrInvalidArgument{
				Name:    "counts",
				Value:   outcome,
				Message: "outcome length does not match the declared number of sources",
			})
		}
		value, err := strconv.ParseUint(outcome, 2, 64)
		if err != nil {
			return nil, errors.WithStack(&qrngerrors.ErrInvalidArgument{
				Name:    "counts",
				Value:   outcome,
				Message: "outcome is not a binary string",
			})
		}
		for i := 0; i < count; i++ {
			samples = append(samples, value)
		}
	}

	rng.Shuffle(len(samples), func(i, j int) {
		samples[i], samples[j] = samples[j], samples[i]
	})
	return samples, nil
}

// newShuffleRand seeds a pseudorandom source from the OS entropy pool, so
// repeated decode calls never replay the same permutation.
func newShuffleRand() *rand.Rand {
	var seed [8]byte
	if _, err := cryptorand.Read(seed[:]); err != nil {
		// Entropy pool unavailable; the shuffle is presentational only,
		// so a clock seed is an acceptable stand-in.
		return rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return rand.New(rand.NewSource(int64(binary.LittleEndian.Uint64(seed[:]))))
}
