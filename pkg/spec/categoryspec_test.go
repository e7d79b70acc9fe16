package spec

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCategorySpec(t *testing.T) *CategorySpec {
	s, err := NewCategorySpec("Region", []string{"North", "South", "East", "West"})
	require.NoError(t, err)
	return s
}

func TestCategorySpecAsStr(t *testing.T) {
	region := newTestCategorySpec(t)

	testCases := map[string]struct {
		value    interface{}
		expected string
	}{
		"category order":  {[]string{"East", "North"}, "North|East"},
		"every category":  {[]string{"West", "East", "South", "North"}, AllCategories},
		"empty":           {[]string{}, ""},
		"single label":    {"South", "South"},
		"membership map":  {map[string]bool{"West": true, "East": false}, "West"},
		"duplicate label": {[]string{"North", "North"}, "North"},
	}

	for name, tc := range testCases {
		t.Run("AsStr() - "+name, func(t *testing.T) {
			actual, err := region.AsStr(tc.value)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, actual)
		})
	}

	for _, value := range []interface{}{[]string{"Central"}, 42, nil} {
		_, err := region.AsStr(value)
		var valueErr *ValueError
		assert.True(t, errors.As(err, &valueErr), "%v", value)
	}
}

func TestCategorySpecAsVal(t *testing.T) {
	region := newTestCategorySpec(t)

	testCases := map[string][]string{
		"East|North": {"North", "East"},
		"*":          {"North", "South", "East", "West"},
		"":           {},
		"West|West":  {"West"},
	}

	for str, expected := range testCases {
		actual, err := region.AsVal(str)
		require.NoError(t, err, str)
		assert.Equal(t, expected, actual, str)
	}

	_, err := region.AsVal("North||East")
	var stringErr *StringError
	assert.True(t, errors.As(err, &stringErr))

	_, err = region.AsVal("Central")
	var valueErr *ValueError
	assert.True(t, errors.As(err, &valueErr))
}

func TestCategorySet(t *testing.T) {
	region := newTestCategorySpec(t)

	index, ok := region.Index("East")
	assert.True(t, ok)
	assert.Equal(t, 2, index)
	assert.True(t, region.Contains("West"))
	assert.False(t, region.Contains("Central"))

	indexed, err := New(Attrs{"data": "Region", "datatype": "category", "categories": []string{"North", "South"}, "indexes": []int{10, 20}})
	require.NoError(t, err)
	index, ok = indexed.(*CategorySpec).Index("South")
	assert.True(t, ok)
	assert.Equal(t, 20, index)
	assert.Equal(t, []int{10, 20}, indexed.(*CategorySpec).Indexes())

	categories := region.Categories()
	categories[0] = "Changed"
	assert.Equal(t, "North", region.Categories()[0])
}

func TestCategorySpecEquals(t *testing.T) {
	a, err := NewCategorySpec("Region", []string{"North", "South"})
	require.NoError(t, err)

	reordered := MustNew(Attrs{"data": "Region", "datatype": "category", "categories": []string{"South", "North"}, "indexes": []int{1, 0}})
	reindexed := MustNew(Attrs{"data": "Region", "datatype": "category", "categories": []string{"South", "North"}})
	histogram, err := NewHistogramSpec("Region", []string{"North", "South"})
	require.NoError(t, err)

	assert.True(t, a.Equals(reordered))
	assert.False(t, a.Equals(reindexed))
	assert.False(t, a.Equals(histogram))
	assert.False(t, a.Equals(nil))
}

func TestCategorySpecOperations(t *testing.T) {
	region := newTestCategorySpec(t)
	same := newTestCategorySpec(t)

	sum, err := region.Add(same)
	require.NoError(t, err)
	assert.Equal(t, "Region", sum.Data())
	assert.True(t, region.Equals(sum))

	ratio, err := region.Divide(same)
	require.NoError(t, err)
	assert.Equal(t, "Region/Region", ratio.Data())
	assert.IsType(t, &CategorySpec{}, ratio)

	coupled, err := region.Couple(same)
	require.NoError(t, err)
	assert.Equal(t, "Region", coupled.Data())

	other, err := NewCategorySpec("Region", []string{"North", "South"})
	require.NoError(t, err)
	_, err = region.Subtract(other)
	var opErr *OperationNotSupportedError
	require.True(t, errors.As(err, &opErr))
	assert.Equal(t, "subtract", opErr.Operation)
}
