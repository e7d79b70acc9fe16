package spec

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/spiceai/specs/pkg/specdata"
)

const (
	CategoryDelimiter = "|"
	// Formats a value holding every category
	AllCategories = "*"
)

// categorySet is the vocabulary shared by CategorySpec and HistogramSpec:
// ordered unique labels with a parallel index per label.
type categorySet struct {
	categories []string
	indexes    []int
	positions  map[string]int
}

func newCategorySet(datatype Datatype, options categoryOptions) (categorySet, error) {
	indexes := options.Indexes
	if len(indexes) == 0 {
		indexes = make([]int, len(options.Categories))
		for i := range indexes {
			indexes[i] = i
		}
	} else if len(indexes) != len(options.Categories) {
		err := fmt.Errorf("%d indexes given for %d categories", len(indexes), len(options.Categories))
		return categorySet{}, &AttributeError{Datatype: datatype, Cause: err}
	}

	positions := make(map[string]int, len(options.Categories))
	for i, category := range options.Categories {
		positions[category] = i
	}

	return categorySet{
		categories: append([]string(nil), options.Categories...),
		indexes:    append([]int(nil), indexes...),
		positions:  positions,
	}, nil
}

// Returns a copy of the ordered category labels
func (c categorySet) Categories() []string {
	return append([]string(nil), c.categories...)
}

// Returns a copy of the indexes, parallel to Categories
func (c categorySet) Indexes() []int {
	return append([]int(nil), c.indexes...)
}

// Returns the index of a category label
func (c categorySet) Index(category string) (int, bool) {
	position, ok := c.positions[category]
	if !ok {
		return 0, false
	}
	return c.indexes[position], true
}

func (c categorySet) Contains(category string) bool {
	_, ok := c.positions[category]
	return ok
}

// Compares labels as a set, along with the index of each label
func (c categorySet) sameSet(other categorySet) bool {
	if len(c.categories) != len(other.categories) {
		return false
	}
	for category, position := range c.positions {
		otherPosition, ok := other.positions[category]
		if !ok || c.indexes[position] != other.indexes[otherPosition] {
			return false
		}
	}
	return true
}

func (c categorySet) attrs(data string, datatype Datatype) Attrs {
	return Attrs{
		"data":       data,
		"datatype":   string(datatype),
		"categories": c.Categories(),
		"indexes":    c.Indexes(),
	}
}

// Order-independent key over labels and indexes
func (c categorySet) key() string {
	pairs := make([]string, len(c.categories))
	for i, category := range c.categories {
		pairs[i] = category + "=" + strconv.Itoa(c.indexes[i])
	}
	sort.Strings(pairs)
	return strings.Join(pairs, CategoryDelimiter)
}

// Sorts labels into category order
func (c categorySet) ordered(labels []string) []string {
	sorted := append([]string(nil), labels...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return c.positions[sorted[i]] < c.positions[sorted[j]]
	})
	return sorted
}

// CategorySpec describes a field whose values are subsets of a closed
// vocabulary. Values are []string.
type CategorySpec struct {
	categorySet
	data string
}

func NewCategorySpec(data string, categories []string) (*CategorySpec, error) {
	return newCategorySpecFromAttrs(Attrs{
		"data":       data,
		"datatype":   string(CategoryDatatype),
		"categories": categories,
	})
}

func newCategorySpecFromAttrs(attrs Attrs) (*CategorySpec, error) {
	var options categoryOptions
	if err := decode(CategoryDatatype, attrs, &options); err != nil {
		return nil, err
	}

	set, err := newCategorySet(CategoryDatatype, options)
	if err != nil {
		return nil, err
	}

	return &CategorySpec{
		categorySet: set,
		data:        options.Data,
	}, nil
}

func (s *CategorySpec) Data() string {
	return s.data
}

func (s *CategorySpec) Datatype() Datatype {
	return CategoryDatatype
}

func (s *CategorySpec) String() string {
	return describe(CategoryDatatype, s.data)
}

func asLabels(value interface{}) ([]string, bool) {
	switch v := value.(type) {
	case []string:
		return v, true
	case string:
		return []string{v}, true
	case map[string]bool:
		labels := make([]string, 0, len(v))
		for label, member := range v {
			if member {
				labels = append(labels, label)
			}
		}
		return labels, true
	}
	return nil, false
}

func (s *CategorySpec) CheckVal(value interface{}) error {
	labels, ok := asLabels(value)
	if !ok {
		return NewValueError(s, value, fmt.Sprintf("expected []string, got %T", value))
	}
	for _, label := range labels {
		if !s.Contains(label) {
			return NewValueError(s, value, fmt.Sprintf("unknown category '%s'", label))
		}
	}
	return nil
}

func (s *CategorySpec) CheckStr(str string) error {
	if str == "" || str == AllCategories {
		return nil
	}
	for _, label := range strings.Split(str, CategoryDelimiter) {
		if label == "" {
			return NewStringError(s, str, "empty category")
		}
	}
	return nil
}

// Formats labels in category order; the full vocabulary formats as the
// wildcard.
func (s *CategorySpec) AsStr(value interface{}) (string, error) {
	if err := s.CheckVal(value); err != nil {
		return "", err
	}
	labels, _ := asLabels(value)
	labels = s.ordered(dedup(labels))

	if len(labels) == len(s.categories) {
		return AllCategories, nil
	}
	return strings.Join(labels, CategoryDelimiter), nil
}

func (s *CategorySpec) AsVal(str string) (interface{}, error) {
	if err := s.CheckStr(str); err != nil {
		return nil, err
	}
	switch str {
	case "":
		return []string{}, nil
	case AllCategories:
		return s.Categories(), nil
	}

	labels := dedup(strings.Split(str, CategoryDelimiter))
	if err := s.CheckVal(labels); err != nil {
		return nil, err
	}
	return s.ordered(labels), nil
}

func (s *CategorySpec) ToDict() Attrs {
	return s.attrs(s.data, CategoryDatatype)
}

func (s *CategorySpec) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.ToDict())
}

// Category specs are equal when they describe the same data over the same
// labels and indexes, in any order
func (s *CategorySpec) Equals(other Spec) bool {
	o, ok := other.(*CategorySpec)
	if !ok || o == nil {
		return false
	}
	return s.data == o.data && s.sameSet(o.categorySet)
}

func (s *CategorySpec) Hash() uint64 {
	return xxhash.Sum64String(strings.Join([]string{string(CategoryDatatype), s.data, s.key()}, "\x00"))
}

// OPERATIONS

func (s *CategorySpec) Add(other Spec) (Spec, error) {
	return s.same(other, specdata.Add)
}

func (s *CategorySpec) Subtract(other Spec) (Spec, error) {
	return s.same(other, specdata.Subtract)
}

func (s *CategorySpec) Divide(other Spec) (Spec, error) {
	return s.same(other, specdata.Divide)
}

func (s *CategorySpec) Couple(other Spec) (Spec, error) {
	return s.same(other, specdata.Couple)
}

func (s *CategorySpec) same(other Spec, method string) (Spec, error) {
	if !s.Equals(other) {
		return nil, NewOperationNotSupportedError(s, other, method)
	}
	return Operation(s, other, method, CategoryDatatype, nil)
}

func dedup(labels []string) []string {
	seen := make(map[string]bool, len(labels))
	unique := make([]string, 0, len(labels))
	for _, label := range labels {
		if !seen[label] {
			seen[label] = true
			unique = append(unique, label)
		}
	}
	return unique
}
