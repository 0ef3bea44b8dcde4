package match

import (
	"context"
	"errors"
	"testing"

	"github.com/refindhq/refind/ai"
	"github.com/refindhq/refind/ai/mock"
	"github.com/refindhq/refind/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompareAll(t *testing.T) {
	comparer := mock.NewMockImageComparer()

	query := []byte("query image")
	candidates := map[core.ID][]byte{
		1: []byte("query image"),
		2: []byte("different image"),
		3: []byte("another image"),
	}

	results, err := CompareAll(context.Background(), comparer, query, candidates, 2)
	require.NoError(t, err)
	require.Len(t, results, 3)

	// Default mock: identical bytes score 100, everything else 10.
	assert.Equal(t, 100.0, results[1])
	assert.Equal(t, 10.0, results[2])
	assert.Equal(t, 10.0, results[3])
}

func TestCompareAllFailureDegrades(t *testing.T) {
	comparer := mock.NewMockImageComparer()
	comparer.CompareImagesFunc = func(ctx context.Context, a, b []byte) (float64, error) {
		if string(b) == "broken" {
			return 0, errors.New("vision service down")
		}
		return 75, nil
	}

	candidates := map[core.ID][]byte{
		1: []byte("fine"),
		2: []byte("broken"),
	}

	results, err := CompareAll(context.Background(), comparer, []byte("query"), candidates, 4)
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, 75.0, results[1])
	// One failing comparison degrades to neutral, the batch survives.
	assert.Equal(t, ai.NeutralVisualScore, results[2])
}

func TestCompareAllNilComparer(t *testing.T) {
	_, err := CompareAll(context.Background(), nil, []byte("q"), map[core.ID][]byte{1: []byte("c")}, 1)
	assert.Equal(t, ErrComparerRequired, err)
}

func TestCompareAllEmptyCandidates(t *testing.T) {
	comparer := mock.NewMockImageComparer()
	results, err := CompareAll(context.Background(), comparer, []byte("q"), nil, 1)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestCompareAllDefaultPoolSize(t *testing.T) {
	comparer := mock.NewMockImageComparer()
	results, err := CompareAll(context.Background(), comparer, []byte("q"), map[core.ID][]byte{1: []byte("q")}, 0)
	require.NoError(t, err)
	assert.Equal(t, 100.0, results[1])
}
