package api

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/spiceai/specs/pkg/spec"
)

// Decodes the JSON form of a value into the value type of s. Numbers may be
// null for the unknown value, ranges are {"lower": x, "upper": y} with
// optional bounds, categories are label arrays and histograms are objects of
// counts.
func DecodeValue(s spec.Spec, data []byte) (interface{}, error) {
	switch s.Datatype() {
	case spec.NumDatatype:
		var num *float64
		if err := json.Unmarshal(data, &num); err != nil {
			return nil, fmt.Errorf("expected a number: %w", err)
		}
		if num == nil {
			return math.NaN(), nil
		}
		return *num, nil
	case spec.RangeDatatype:
		var r spec.Range
		if err := json.Unmarshal(data, &r); err != nil {
			return nil, fmt.Errorf("expected a range object: %w", err)
		}
		return r, nil
	case spec.CategoryDatatype:
		var labels []string
		if err := json.Unmarshal(data, &labels); err != nil {
			return nil, fmt.Errorf("expected an array of labels: %w", err)
		}
		if labels == nil {
			labels = []string{}
		}
		return labels, nil
	case spec.HistogramDatatype:
		var counts map[string]float64
		if err := json.Unmarshal(data, &counts); err != nil {
			return nil, fmt.Errorf("expected an object of counts: %w", err)
		}
		if counts == nil {
			counts = map[string]float64{}
		}
		return counts, nil
	}
	return nil, spec.NewUnknownDatatypeError(string(s.Datatype()))
}

// Encodes a value as JSON, the unknown number as null
func EncodeValue(value interface{}) ([]byte, error) {
	if num, ok := value.(float64); ok && math.IsNaN(num) {
		return []byte("null"), nil
	}
	return json.Marshal(value)
}
