// Package spec describes how named data fields are validated, formatted to
// display strings and parsed back, and records how derived fields were
// produced.
//
// Every Spec carries a data expression: the name of the field it describes,
// rewritten by each operation or transformation into a provenance label such
// as "5MAvg|(Revenue/Cost)". The labels are never parsed back.
package spec

import (
	"fmt"
	"strings"
)

type Datatype string

const (
	NumDatatype       Datatype = "num"
	RangeDatatype     Datatype = "range"
	CategoryDatatype  Datatype = "category"
	HistogramDatatype Datatype = "histogram"
)

// Attrs is the flat, JSON-representable state of a spec
type Attrs map[string]interface{}

type Spec interface {
	fmt.Stringer

	Data() string
	Datatype() Datatype

	// AsStr formats a value after validating it with CheckVal
	AsStr(value interface{}) (string, error)
	// AsVal parses a string after validating it with CheckStr
	AsVal(str string) (interface{}, error)
	CheckStr(str string) error
	CheckVal(value interface{}) error

	ToDict() Attrs
	Equals(other Spec) bool
	Hash() uint64
}

func Datatypes() []Datatype {
	return []Datatype{NumDatatype, RangeDatatype, CategoryDatatype, HistogramDatatype}
}

// Parses a datatype tag, ignoring case
func ParseDatatype(tag string) (Datatype, error) {
	datatype := Datatype(strings.ToLower(strings.TrimSpace(tag)))
	switch datatype {
	case NumDatatype, RangeDatatype, CategoryDatatype, HistogramDatatype:
		return datatype, nil
	}
	return "", NewUnknownDatatypeError(tag)
}

// Constructs the concrete spec registered for attrs["datatype"]
func New(attrs Attrs) (Spec, error) {
	raw, ok := attrs["datatype"]
	if !ok || raw == nil {
		return nil, ErrMissingDatatype
	}

	var tag string
	switch v := raw.(type) {
	case string:
		tag = v
	case Datatype:
		tag = string(v)
	default:
		return nil, NewUnknownDatatypeError(fmt.Sprint(raw))
	}

	datatype, err := ParseDatatype(tag)
	if err != nil {
		return nil, err
	}

	switch datatype {
	case NumDatatype:
		return newNumSpecFromAttrs(attrs)
	case RangeDatatype:
		return newRangeSpecFromAttrs(attrs)
	case CategoryDatatype:
		return newCategorySpecFromAttrs(attrs)
	case HistogramDatatype:
		return newHistogramSpecFromAttrs(attrs)
	}

	return nil, NewUnknownDatatypeError(tag)
}

// Like New but panics on error. Intended for static tables and tests.
func MustNew(attrs Attrs) Spec {
	s, err := New(attrs)
	if err != nil {
		panic(err)
	}
	return s
}

// Rebuilds a spec with some of its attributes replaced
func With(s Spec, overrides Attrs) (Spec, error) {
	return New(merge(s.ToDict(), overrides))
}

// Returns a copy of s describing a prefixed field, "{prefix}_{data}"
func Modify(s Spec, prefix string, overrides Attrs) (Spec, error) {
	attrs := merge(s.ToDict(), overrides)
	attrs["data"] = prefix + "_" + s.Data()
	return New(attrs)
}

func merge(attrs Attrs, overrides Attrs) Attrs {
	merged := make(Attrs, len(attrs)+len(overrides))
	for key, value := range attrs {
		merged[key] = value
	}
	for key, value := range overrides {
		merged[key] = value
	}
	return merged
}

func describe(datatype Datatype, data string) string {
	return fmt.Sprintf("%s(%s)", typeName(datatype), data)
}

func typeName(datatype Datatype) string {
	switch datatype {
	case NumDatatype:
		return "NumSpec"
	case RangeDatatype:
		return "RangeSpec"
	case CategoryDatatype:
		return "CategorySpec"
	case HistogramDatatype:
		return "HistogramSpec"
	}
	return "Spec"
}
