package spec

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/spiceai/specs/pkg/specdata"
)

const histogramSeparator = "="

// HistogramSpec describes a field holding a count or weight per category.
// Values are map[string]float64 covering every category.
type HistogramSpec struct {
	categorySet
	data string
}

func NewHistogramSpec(data string, categories []string) (*HistogramSpec, error) {
	return newHistogramSpecFromAttrs(Attrs{
		"data":       data,
		"datatype":   string(HistogramDatatype),
		"categories": categories,
	})
}

func newHistogramSpecFromAttrs(attrs Attrs) (*HistogramSpec, error) {
	var options categoryOptions
	if err := decode(HistogramDatatype, attrs, &options); err != nil {
		return nil, err
	}

	set, err := newCategorySet(HistogramDatatype, options)
	if err != nil {
		return nil, err
	}

	return &HistogramSpec{
		categorySet: set,
		data:        options.Data,
	}, nil
}

func (s *HistogramSpec) Data() string {
	return s.data
}

func (s *HistogramSpec) Datatype() Datatype {
	return HistogramDatatype
}

func (s *HistogramSpec) String() string {
	return describe(HistogramDatatype, s.data)
}

func asCounts(value interface{}) (map[string]float64, bool) {
	switch v := value.(type) {
	case map[string]float64:
		return v, true
	case map[string]int:
		counts := make(map[string]float64, len(v))
		for label, count := range v {
			counts[label] = float64(count)
		}
		return counts, true
	}
	return nil, false
}

func (s *HistogramSpec) CheckVal(value interface{}) error {
	counts, ok := asCounts(value)
	if !ok {
		return NewValueError(s, value, fmt.Sprintf("expected map[string]float64, got %T", value))
	}
	for label, count := range counts {
		if !s.Contains(label) {
			return NewValueError(s, value, fmt.Sprintf("unknown category '%s'", label))
		}
		if !isFinite(count) {
			return NewValueError(s, value, fmt.Sprintf("count of '%s' must be finite", label))
		}
	}
	return nil
}

func (s *HistogramSpec) CheckStr(str string) error {
	if str == "" || str == AllCategories {
		return nil
	}
	seen := make(map[string]bool)
	for _, item := range strings.Split(str, CategoryDelimiter) {
		parts := strings.Split(item, histogramSeparator)
		if len(parts) != 2 || parts[0] == "" {
			return NewStringError(s, str, fmt.Sprintf("expected label%scount, got '%s'", histogramSeparator, item))
		}
		if seen[parts[0]] {
			return NewStringError(s, str, fmt.Sprintf("duplicate category '%s'", parts[0]))
		}
		seen[parts[0]] = true
		count, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
		if err != nil {
			return NewStringError(s, str, fmt.Sprintf("invalid count '%s'", parts[1]))
		}
		if !isFinite(count) {
			return NewStringError(s, str, fmt.Sprintf("count of '%s' must be finite", parts[0]))
		}
	}
	return nil
}

// Formats every category in category order, "A=1|B=0|C=2.5"
func (s *HistogramSpec) AsStr(value interface{}) (string, error) {
	if err := s.CheckVal(value); err != nil {
		return "", err
	}
	counts, _ := asCounts(value)

	items := make([]string, len(s.categories))
	for i, category := range s.categories {
		items[i] = category + histogramSeparator + strconv.FormatFloat(counts[category], 'f', -1, 64)
	}
	return strings.Join(items, CategoryDelimiter), nil
}

// Parses "label=count" items; categories left out count zero and "*"
// zeroes every category
func (s *HistogramSpec) AsVal(str string) (interface{}, error) {
	if err := s.CheckStr(str); err != nil {
		return nil, err
	}

	counts := make(map[string]float64, len(s.categories))
	for _, category := range s.categories {
		counts[category] = 0
	}
	if str == "" || str == AllCategories {
		return counts, nil
	}

	for _, item := range strings.Split(str, CategoryDelimiter) {
		parts := strings.Split(item, histogramSeparator)
		if !s.Contains(parts[0]) {
			return nil, NewValueError(s, str, fmt.Sprintf("unknown category '%s'", parts[0]))
		}
		count, _ := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
		counts[parts[0]] = count
	}
	return counts, nil
}

func (s *HistogramSpec) ToDict() Attrs {
	return s.attrs(s.data, HistogramDatatype)
}

func (s *HistogramSpec) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.ToDict())
}

func (s *HistogramSpec) Equals(other Spec) bool {
	o, ok := other.(*HistogramSpec)
	if !ok || o == nil {
		return false
	}
	return s.data == o.data && s.sameSet(o.categorySet)
}

func (s *HistogramSpec) Hash() uint64 {
	return xxhash.Sum64String(strings.Join([]string{string(HistogramDatatype), s.data, s.key()}, "\x00"))
}

// OPERATIONS

func (s *HistogramSpec) Add(other Spec) (Spec, error) {
	return s.same(other, specdata.Add)
}

func (s *HistogramSpec) Subtract(other Spec) (Spec, error) {
	return s.same(other, specdata.Subtract)
}

// Histograms cannot be divided
func (s *HistogramSpec) Divide(other Spec) (Spec, error) {
	return nil, NewOperationNotSupportedError(s, other, specdata.Divide)
}

// Histograms cannot be coupled
func (s *HistogramSpec) Couple(other Spec) (Spec, error) {
	return nil, NewOperationNotSupportedError(s, other, specdata.Couple)
}

func (s *HistogramSpec) same(other Spec, method string) (Spec, error) {
	if !s.Equals(other) {
		return nil, NewOperationNotSupportedError(s, other, method)
	}
	return Operation(s, other, method, HistogramDatatype, nil)
}
