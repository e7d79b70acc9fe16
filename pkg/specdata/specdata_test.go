package specdata

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDataOperation(t *testing.T) {
	t.Run("DataOperation() - multiply composes operands", testDataOperationFunc("Revenue", "Cost", Multiply, "Revenue*Cost"))
	t.Run("DataOperation() - divide composes operands", testDataOperationFunc("Revenue", "Cost", Divide, "Revenue/Cost"))
	t.Run("DataOperation() - reserved characters are parenthesized", testDataOperationFunc("Revenue*Cost", "Tax", Divide, "(Revenue*Cost)/Tax"))
	t.Run("DataOperation() - other operand is parenthesized", testDataOperationFunc("Tax", "Revenue-Cost", Multiply, "Tax*(Revenue-Cost)"))
	t.Run("DataOperation() - spaces are reserved", testDataOperationFunc("Gross Sales", "Units", Divide, "(Gross Sales)/Units"))
	t.Run("DataOperation() - add passes through", testDataOperationFunc("Revenue", "Revenue", Add, "Revenue"))
	t.Run("DataOperation() - subtract passes through", testDataOperationFunc("Revenue*Cost", "Revenue*Cost", Subtract, "Revenue*Cost"))
	t.Run("DataOperation() - add requires same data", testDataOperationMismatchFunc())
}

func TestDataTransformation(t *testing.T) {
	testCases := []struct {
		method   string
		how      string
		data     string
		params   map[string]string
		expected string
	}{
		{Moving, "average", "Revenue/Cost", map[string]string{"period": "5"}, "5MAvg|(Revenue/Cost)"},
		{Moving, "summation", "Revenue", map[string]string{"period": "3"}, "3MSum|Revenue"},
		{Moving, "difference", "Revenue", map[string]string{"period": "1"}, "1MDiff|Revenue"},
		{Scale, "normalize", "Revenue", nil, "Quantiles|Revenue"},
		{Scale, "standardize", "Revenue", map[string]string{"axis": "Date"}, "Date|ZScores|Revenue"},
		{Factor, "multiply", "Revenue", map[string]string{"factor": "2"}, "2*Revenue"},
		{Consolidate, "cumulate", "Age", map[string]string{"direction": "upper"}, "upperCum|Age"},
		{Consolidate, "average", "Age", map[string]string{"weight": ""}, "Avg|Age"},
		{Consolidate, "differential", "Age", nil, "Diff|Age"},
		{Unconsolidate, "cumulate", "Age", map[string]string{"direction": "lower"}, "lowerUnCum|Age"},
		{GroupBy, "bins", "Income", nil, "Bins|Income"},
		{Reduction, "stdev", "Income", nil, "StDev|Income"},
		{WtReduction, "median", "Income", map[string]string{"axis": "Geography"}, "Geography|WtMid|Income"},
	}

	for _, tc := range testCases {
		name := fmt.Sprintf("DataTransformation() - %s %s", tc.method, tc.how)
		t.Run(name, testDataTransformationFunc(tc.data, tc.method, tc.how, tc.params, tc.expected))
	}

	t.Run("DataTransformation() - unknown method", testDataTransformationErrorFunc("rotate", "left", nil, ErrUnknownMethod))
	t.Run("DataTransformation() - unknown how", testDataTransformationErrorFunc(Moving, "median", map[string]string{"period": "3"}, ErrUnknownHow))
	t.Run("DataTransformation() - missing parameter", testDataTransformationErrorFunc(Moving, "average", nil, ErrMissingParam))
}

func TestTables(t *testing.T) {
	assert.Equal(t, []string{"consolidate", "factor", "groupby", "moving", "reduction", "scale", "unconsolidate", "wtreduction"}, Methods())
	assert.Equal(t, []string{"average", "cumulate", "differential"}, Hows(Consolidate))
	assert.Empty(t, Hows("rotate"))

	keys, err := Placeholders(WtReduction, "average")
	assert.NoError(t, err)
	assert.Equal(t, []string{"axis"}, keys)

	_, err = Placeholders(Scale, "log")
	assert.ErrorIs(t, err, ErrUnknownHow)
}

func TestExpand(t *testing.T) {
	actual, err := expand("{a}-{b}", map[string]string{"a": "{b}", "b": "x"})
	assert.NoError(t, err)
	assert.Equal(t, "{b}-x", actual)

	actual, err = expand("no placeholders", nil)
	assert.NoError(t, err)
	assert.Equal(t, "no placeholders", actual)
}

func testDataOperationFunc(data string, other string, method string, expected string) func(*testing.T) {
	return func(t *testing.T) {
		actual, err := DataOperation(data, other, method)
		assert.NoError(t, err)
		assert.Equal(t, expected, actual)
	}
}

func testDataOperationMismatchFunc() func(*testing.T) {
	return func(t *testing.T) {
		_, err := DataOperation("Revenue", "Cost", Add)
		assert.ErrorIs(t, err, ErrDataMismatch)

		_, err = DataOperation("Revenue", "Cost", Couple)
		assert.ErrorIs(t, err, ErrDataMismatch)
	}
}

func testDataTransformationFunc(data string, method string, how string, params map[string]string, expected string) func(*testing.T) {
	return func(t *testing.T) {
		actual, err := DataTransformation(data, method, how, params)
		assert.NoError(t, err)
		assert.Equal(t, expected, actual)
	}
}

func testDataTransformationErrorFunc(method string, how string, params map[string]string, expected error) func(*testing.T) {
	return func(t *testing.T) {
		_, err := DataTransformation("Revenue", method, how, params)
		assert.ErrorIs(t, err, expected)
	}
}
