package fault

import (
	"errors"
	"math/rand/v2"
	"regexp"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedSource float64

func (f fixedSource) Float64() float64 { return float64(f) }

func fixedClock() time.Time {
	return time.Date(2024, 3, 9, 14, 5, 7, 0, time.UTC)
}

var timestampPrefix = regexp.MustCompile(`^\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}\|`)

func TestBuildSingleEntryCatalog(t *testing.T) {
	b, err := NewBuilder([]string{"OrderNotFound"}, WithRandom(fixedSource(0.0)), WithClock(fixedClock))
	require.NoError(t, err)

	record, err := b.Build()
	require.NoError(t, err)
	assert.Equal(t, "OrderNotFound", record.Name)

	payload := Serialize(record)
	assert.Regexp(t, timestampPrefix, payload)
	assert.True(t, strings.HasPrefix(payload, "2024-03-09 14:05:07|OrderNotFound|"), payload)
}

func TestNewBuilderRejectsEmptyCatalog(t *testing.T) {
	for _, catalog := range [][]string{nil, {}} {
		b, err := NewBuilder(catalog)
		require.Error(t, err)
		assert.Nil(t, b)

		var cfgErr *ConfigurationError
		require.True(t, errors.As(err, &cfgErr))
		assert.ErrorIs(t, err, ErrEmptyCatalog)
	}
}

func TestBuildOnZeroBuilder(t *testing.T) {
	var b Builder
	_, err := b.Build()
	assert.ErrorIs(t, err, ErrEmptyCatalog)
}

func TestBuildSelectionCoverage(t *testing.T) {
	catalog := []string{"CartEmpty", "PaymentFailed", "OrderNotFound", "AccountLocked", "DuplicateOrder"}
	b, err := NewBuilder(catalog, WithRandom(rand.New(rand.NewPCG(7, 11))))
	require.NoError(t, err)

	const trials = 50000
	counts := make(map[string]int, len(catalog))
	for i := 0; i < trials; i++ {
		record, err := b.Build()
		require.NoError(t, err)
		counts[record.Name]++
	}

	expected := 1.0 / float64(len(catalog))
	for _, name := range catalog {
		freq := float64(counts[name]) / trials
		assert.InDelta(t, expected, freq, 0.01, "frequency of %s", name)
	}
}

func TestBuildDuplicatesBiasSelection(t *testing.T) {
	b, err := NewBuilder([]string{"CartEmpty", "CartEmpty", "PaymentFailed"}, WithRandom(rand.New(rand.NewPCG(1, 2))))
	require.NoError(t, err)

	const trials = 30000
	hits := 0
	for i := 0; i < trials; i++ {
		record, _ := b.Build()
		if record.Name == "CartEmpty" {
			hits++
		}
	}
	assert.InDelta(t, 2.0/3.0, float64(hits)/trials, 0.015)
}

func TestBuildIsDeterministicForSeed(t *testing.T) {
	var records [2]FaultRecord
	for i := range records {
		b, err := NewBuilder(DefaultCatalog(), WithRandom(rand.New(rand.NewPCG(42, 42))), WithClock(fixedClock))
		require.NoError(t, err)

		records[i], err = b.Build()
		require.NoError(t, err)
	}

	assert.Equal(t, records[0], records[1])
	assert.Equal(t, Serialize(records[0]), Serialize(records[1]))
}

func TestBuildCapturesCaller(t *testing.T) {
	b, err := NewBuilder([]string{"InvalidCouponCode"})
	require.NoError(t, err)

	record, err := b.Build()
	_, _, line, _ := runtime.Caller(0)
	require.NoError(t, err)

	assert.Equal(t, "builder_test.go", record.SourceFile)
	assert.Equal(t, "fault.TestBuildCapturesCaller", record.MethodName)
	assert.Equal(t, line-1, record.LineNumber)
	assert.True(t, strings.HasPrefix(record.RawTrace, "faultproducer/src/fault.TestBuildCapturesCaller\n\t"), record.RawTrace)
	assert.Contains(t, record.RawTrace, "testing.tRunner")
	assert.NotContains(t, record.RawTrace, "runtime.goexit")
}

func TestPickClampsOutOfRangeSources(t *testing.T) {
	catalog := []string{"A", "B", "C"}

	high, err := NewBuilder(catalog, WithRandom(fixedSource(1.0)))
	require.NoError(t, err)
	assert.Equal(t, 2, high.pick())

	low, err := NewBuilder(catalog, WithRandom(fixedSource(-0.5)))
	require.NoError(t, err)
	assert.Equal(t, 0, low.pick())

	mid, err := NewBuilder(catalog, WithRandom(fixedSource(0.5)))
	require.NoError(t, err)
	assert.Equal(t, 1, mid.pick())
}

func TestNewBuilderCopiesCatalog(t *testing.T) {
	catalog := []string{"ProductNotFound"}
	b, err := NewBuilder(catalog)
	require.NoError(t, err)

	catalog[0] = "Mutated"
	assert.Equal(t, []string{"ProductNotFound"}, b.Catalog())

	record, err := b.Build()
	require.NoError(t, err)
	assert.Equal(t, "ProductNotFound", record.Name)
}
