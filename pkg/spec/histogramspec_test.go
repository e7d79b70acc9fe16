package spec

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHistogramSpec(t *testing.T) *HistogramSpec {
	s, err := NewHistogramSpec("Votes", []string{"Yes", "No", "Abstain"})
	require.NoError(t, err)
	return s
}

func TestHistogramSpecCodec(t *testing.T) {
	votes := newTestHistogramSpec(t)

	t.Run("AsStr() - lists every category", func(t *testing.T) {
		str, err := votes.AsStr(map[string]float64{"Yes": 2, "Abstain": 1.5})
		require.NoError(t, err)
		assert.Equal(t, "Yes=2|No=0|Abstain=1.5", str)
	})

	t.Run("AsStr() - integer counts", func(t *testing.T) {
		str, err := votes.AsStr(map[string]int{"No": 3})
		require.NoError(t, err)
		assert.Equal(t, "Yes=0|No=3|Abstain=0", str)
	})

	t.Run("AsVal() - missing categories count zero", func(t *testing.T) {
		v, err := votes.AsVal("Abstain=1.5|Yes=2")
		require.NoError(t, err)
		assert.Equal(t, map[string]float64{"Yes": 2, "No": 0, "Abstain": 1.5}, v)
	})

	t.Run("AsVal() - empty", func(t *testing.T) {
		v, err := votes.AsVal("")
		require.NoError(t, err)
		assert.Equal(t, map[string]float64{"Yes": 0, "No": 0, "Abstain": 0}, v)
	})

	t.Run("AsVal() - wildcard counts zero", func(t *testing.T) {
		require.NoError(t, votes.CheckStr(AllCategories))
		v, err := votes.AsVal(AllCategories)
		require.NoError(t, err)
		assert.Equal(t, map[string]float64{"Yes": 0, "No": 0, "Abstain": 0}, v)
	})

	t.Run("AsVal(AsStr()) - round trip", func(t *testing.T) {
		value := map[string]float64{"Yes": 10, "No": 4.25, "Abstain": 0}
		str, err := votes.AsStr(value)
		require.NoError(t, err)
		v, err := votes.AsVal(str)
		require.NoError(t, err)
		assert.Equal(t, value, v)
	})
}

func TestHistogramSpecErrors(t *testing.T) {
	votes := newTestHistogramSpec(t)

	for _, str := range []string{"Yes", "Yes=1|Yes=2", "Yes=x", "=1", "Yes=1=2", "Yes=NaN", "Yes=Inf", "No=+Inf", "Abstain=-Inf"} {
		err := votes.CheckStr(str)
		var stringErr *StringError
		assert.True(t, errors.As(err, &stringErr), str)
	}

	_, err := votes.AsVal("Maybe=1")
	var valueErr *ValueError
	assert.True(t, errors.As(err, &valueErr))

	for _, value := range []interface{}{
		map[string]float64{"Maybe": 1},
		map[string]float64{"Yes": math.NaN()},
		[]string{"Yes"},
	} {
		err := votes.CheckVal(value)
		assert.True(t, errors.As(err, &valueErr), "%v", value)
	}
}

func TestHistogramSpecOperations(t *testing.T) {
	votes := newTestHistogramSpec(t)
	same := newTestHistogramSpec(t)

	sum, err := votes.Add(same)
	require.NoError(t, err)
	assert.Equal(t, "Votes", sum.Data())
	assert.IsType(t, &HistogramSpec{}, sum)

	_, err = votes.Divide(same)
	assert.True(t, IsNotSupported(err))

	_, err = votes.Couple(same)
	assert.True(t, IsNotSupported(err))

	other, err := NewHistogramSpec("Votes", []string{"Yes", "No"})
	require.NoError(t, err)
	_, err = votes.Subtract(other)
	assert.True(t, IsNotSupported(err))
}
