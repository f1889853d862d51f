package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/malinowski-marek/qrng/internal/decode"
	"github.com/malinowski-marek/qrng/pkg/client/domain"
)

func TestSummarizeKnownDistribution(t *testing.T) {
	counts := domain.Counts{"00": 10, "01": 20, "10": 30, "11": 40}
	samples, err := decode.Expand(counts, 2)
	require.NoError(t, err)

	summary, err := Summarize(samples, counts, 2)
	require.NoError(t, err)
	assert.Equal(t, 100, summary.Count)
	assert.Equal(t, uint64(3), summary.DomainMax)
	assert.Equal(t, 4, summary.Distinct)
	assert.Equal(t, uint64(0), summary.Min)
	assert.Equal(t, uint64(3), summary.Max)
	assert.InDelta(t, 2.3, summary.Mean, 1e-9)
}

func TestSummarizeTopOutcomes(t *testing.T) {
	counts := domain.Counts{"00": 10, "01": 20, "10": 30, "11": 40}
	samples, err := decode.Expand(counts, 2)
	require.NoError(t, err)

	summary, err := Summarize(samples, counts, 2)
	require.NoError(t, err)
	require.Len(t, summary.Top, 4)

	assert.Equal(t, "11", summary.Top[0].Bits)
	assert.Equal(t, uint64(3), summary.Top[0].Value)
	assert.Equal(t, 40, summary.Top[0].Count)
	assert.InDelta(t, 40.0, summary.Top[0].Percent, 1e-9)
	assert.Equal(t, "00", summary.Top[3].Bits)
	for i := 1; i < len(summary.Top); i++ {
		assert.GreaterOrEqual(t, summary.Top[i-1].Count, summary.Top[i].Count)
	}
}

func TestSummarizeCapsTopAtTen(t *testing.T) {
	counts := domain.Counts{}
	for i := 0; i < 16; i++ {
		counts[bits4(i)] = i + 1
	}
	samples, err := decode.Expand(counts, 4)
	require.NoError(t, err)

	summary, err := Summarize(samples, counts, 4)
	require.NoError(t, err)
	assert.Len(t, summary.Top, 10)
	assert.Equal(t, 16, summary.Distinct)
}

func TestSummarizeEmptyRun(t *testing.T) {
	summary, err := Summarize(domain.Samples{}, domain.Counts{}, 6)
	require.NoError(t, err)
	assert.Equal(t, 0, summary.Count)
	assert.Equal(t, uint64(63), summary.DomainMax)
	assert.Equal(t, 0, summary.Distinct)
	assert.Empty(t, summary.Top)
}

func bits4(v int) string {
	b := make([]byte, 4)
	for i := 0; i < 4; i++ {
		if v&(1<<uint(3-i)) != 0 {
			b[i] = '1'
		} else {
			b[i] = '0'
		}
	}
	return string(b)
}
