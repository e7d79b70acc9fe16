package api

import (
	"fmt"
	"strings"

	"github.com/spiceai/specs/pkg/spec"
	"github.com/spiceai/specs/pkg/specfile"
)

type Spec struct {
	Key      string     `json:"key" csv:"key"`
	Data     string     `json:"data" csv:"data"`
	Datatype string     `json:"datatype" csv:"datatype"`
	Detail   string     `json:"detail" csv:"detail"`
	Attrs    spec.Attrs `json:"attrs" csv:"-"`
}

func NewSpec(key string, s spec.Spec) *Spec {
	return &Spec{
		Key:      key,
		Data:     s.Data(),
		Datatype: string(s.Datatype()),
		Detail:   detail(s),
		Attrs:    s.ToDict(),
	}
}

func NewSpecs(set *specfile.SpecSet) []*Spec {
	specs := make([]*Spec, 0, set.Len())
	for _, key := range set.Keys() {
		s, _ := set.Get(key)
		specs = append(specs, NewSpec(key, s))
	}
	return specs
}

// One-line summary of the formatting or vocabulary of s
func detail(s spec.Spec) string {
	switch t := s.(type) {
	case *spec.NumSpec:
		return numDetail(t.Multiplier().String(), t.Unit().String(), t.Precision())
	case *spec.RangeSpec:
		return numDetail(t.Multiplier().String(), t.Unit().String(), t.Precision())
	case *spec.CategorySpec:
		return strings.Join(t.Categories(), spec.CategoryDelimiter)
	case *spec.HistogramSpec:
		return strings.Join(t.Categories(), spec.CategoryDelimiter)
	}
	return ""
}

func numDetail(multiplier string, unit string, precision int) string {
	parts := []string{fmt.Sprintf("precision %d", precision)}
	if multiplier != "" {
		parts = append(parts, "multiplier "+multiplier)
	}
	if unit != "" {
		parts = append(parts, "unit "+unit)
	}
	return strings.Join(parts, ", ")
}
