package spec

import (
	"fmt"
)

// Builds a spec from bulk-import metadata. The shape of databasis depends on
// the datatype: numeric specs take an optional map of formatting attributes,
// category and histogram specs take their non-empty list of unique labels.
// formatting holds any remaining attributes.
func FromBasis(data string, datatype string, databasis interface{}, formatting Attrs) (Spec, error) {
	parsed, err := ParseDatatype(datatype)
	if err != nil {
		return nil, err
	}

	attrs := merge(formatting, nil)
	attrs["data"] = data
	attrs["datatype"] = string(parsed)

	switch parsed {
	case NumDatatype, RangeDatatype:
		basis, err := formattingBasis(databasis)
		if err != nil {
			return nil, NewBasisError(data, datatype, err.Error())
		}
		for key, value := range basis {
			if _, ok := attrs[key]; !ok {
				attrs[key] = value
			}
		}
	case CategoryDatatype, HistogramDatatype:
		labels, err := labelBasis(databasis)
		if err != nil {
			return nil, NewBasisError(data, datatype, err.Error())
		}
		attrs["categories"] = labels
	}

	return New(attrs)
}

func formattingBasis(databasis interface{}) (map[string]interface{}, error) {
	switch v := databasis.(type) {
	case nil:
		return nil, nil
	case Attrs:
		return v, nil
	case map[string]interface{}:
		return v, nil
	case map[string]string:
		basis := make(map[string]interface{}, len(v))
		for key, value := range v {
			basis[key] = value
		}
		return basis, nil
	}
	return nil, fmt.Errorf("expected a formatting map, got %T", databasis)
}

func labelBasis(databasis interface{}) ([]string, error) {
	var labels []string
	switch v := databasis.(type) {
	case nil:
		return nil, fmt.Errorf("missing category list")
	case []string:
		labels = v
	case []interface{}:
		labels = make([]string, len(v))
		for i, item := range v {
			label, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("category %d is %T, not a string", i, item)
			}
			labels[i] = label
		}
	default:
		return nil, fmt.Errorf("expected a category list, got %T", databasis)
	}

	if len(labels) == 0 {
		return nil, fmt.Errorf("empty category list")
	}
	seen := make(map[string]bool, len(labels))
	for _, label := range labels {
		if seen[label] {
			return nil, fmt.Errorf("duplicate category '%s'", label)
		}
		seen[label] = true
	}

	return labels, nil
}
