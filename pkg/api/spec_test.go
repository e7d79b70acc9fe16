package api

import (
	"math"
	"testing"

	"github.com/spiceai/specs/pkg/spec"
	"github.com/spiceai/specs/pkg/specfile"
	"github.com/spiceai/specs/pkg/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSpec(t *testing.T) {
	snapshotter := testutils.NewSnapshotter("../../test/assets/snapshots/api")

	region, err := spec.NewCategorySpec("Region", []string{"North", "South"})
	require.NoError(t, err)

	apiSpec := NewSpec("region", region)
	assert.Equal(t, "North|South", apiSpec.Detail)

	snapshotter.SnapshotTJson(t, apiSpec)
}

func TestNewSpecs(t *testing.T) {
	set := specfile.NewSpecSet()
	revenue, err := spec.NewNumSpec("Revenue", spec.NumFormat{Multiplier: "k", Unit: "$", Precision: 1})
	require.NoError(t, err)
	require.NoError(t, set.Add("revenue", revenue))
	age, err := spec.NewRangeSpec("Age", spec.NumFormat{})
	require.NoError(t, err)
	require.NoError(t, set.Add("age", age))

	specs := NewSpecs(set)
	require.Len(t, specs, 2)
	assert.Equal(t, "revenue", specs[0].Key)
	assert.Equal(t, "precision 1, multiplier k, unit $", specs[0].Detail)
	assert.Equal(t, "precision 0", specs[1].Detail)
}

func TestValues(t *testing.T) {
	revenue, err := spec.NewNumSpec("Revenue", spec.NumFormat{})
	require.NoError(t, err)
	age, err := spec.NewRangeSpec("Age", spec.NumFormat{})
	require.NoError(t, err)
	region, err := spec.NewCategorySpec("Region", []string{"North", "South"})
	require.NoError(t, err)
	votes, err := spec.NewHistogramSpec("Votes", []string{"Yes", "No"})
	require.NoError(t, err)

	v, err := DecodeValue(revenue, []byte("12.5"))
	require.NoError(t, err)
	assert.Equal(t, 12.5, v)

	v, err = DecodeValue(revenue, []byte("null"))
	require.NoError(t, err)
	assert.True(t, math.IsNaN(v.(float64)))

	v, err = DecodeValue(age, []byte(`{"lower": 18}`))
	require.NoError(t, err)
	assert.Equal(t, spec.Above(18), v)

	v, err = DecodeValue(region, []byte(`["South"]`))
	require.NoError(t, err)
	assert.Equal(t, []string{"South"}, v)

	v, err = DecodeValue(votes, []byte(`{"Yes": 3}`))
	require.NoError(t, err)
	assert.Equal(t, map[string]float64{"Yes": 3}, v)

	_, err = DecodeValue(region, []byte(`"South"`))
	assert.Error(t, err)

	data, err := EncodeValue(math.NaN())
	require.NoError(t, err)
	assert.Equal(t, "null", string(data))

	data, err = EncodeValue(spec.Below(10))
	require.NoError(t, err)
	assert.JSONEq(t, `{"lower": null, "upper": 10}`, string(data))
}
