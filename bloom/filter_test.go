package bloom_test

import (
	"fmt"
	"testing"

	"github.com/chaurasiavikash/openSimAssistant/bloom"
	"github.com/stretchr/testify/assert"
)

func TestFilter_Test_reports_added_URLs(t *testing.T) {
	t.Parallel()

	f := bloom.NewFilter(1000, 0.01)

	assert.False(t, f.Test("https://simtk.org/projects/opensim"))
	f.Add("https://simtk.org/projects/opensim")
	assert.True(t, f.Test("https://simtk.org/projects/opensim"))
}

func TestFilter_has_no_false_negatives(t *testing.T) {
	t.Parallel()

	f := bloom.NewFilter(10000, 0.01)

	for i := range 5000 {
		f.Add(fmt.Sprintf("https://example.org/page/%d", i))
	}
	for i := range 5000 {
		assert.True(t, f.Test(fmt.Sprintf("https://example.org/page/%d", i)))
	}
}

func TestFilter_EstimatedCount_tracks_additions(t *testing.T) {
	t.Parallel()

	f := bloom.NewFilter(1000, 0.01)
	for i := range 100 {
		f.Add(fmt.Sprintf("https://example.org/%d", i))
	}

	count := f.EstimatedCount()
	assert.InDelta(t, 100, float64(count), 10)
}
