package specfile

import (
	"fmt"

	"github.com/spiceai/specs/pkg/spec"
	"github.com/spiceai/specs/pkg/validator"
)

// SpecSet is an ordered collection of specs addressed by key
type SpecSet struct {
	keys  []string
	specs map[string]spec.Spec
}

func NewSpecSet() *SpecSet {
	return &SpecSet{
		specs: make(map[string]spec.Spec),
	}
}

func (s *SpecSet) Add(key string, sp spec.Spec) error {
	if !validator.ValidateSpecKey(key) {
		return fmt.Errorf("invalid spec key '%s'", key)
	}
	if _, ok := s.specs[key]; ok {
		return fmt.Errorf("duplicate spec key '%s'", key)
	}
	s.keys = append(s.keys, key)
	s.specs[key] = sp
	return nil
}

func (s *SpecSet) Get(key string) (spec.Spec, bool) {
	sp, ok := s.specs[key]
	return sp, ok
}

// Returns the keys in insertion order
func (s *SpecSet) Keys() []string {
	return append([]string(nil), s.keys...)
}

func (s *SpecSet) Len() int {
	return len(s.keys)
}

// Adds every spec of other, failing on the first key already present
func (s *SpecSet) Merge(other *SpecSet) error {
	for _, key := range other.keys {
		if err := s.Add(key, other.specs[key]); err != nil {
			return err
		}
	}
	return nil
}

// Reports whether both sets hold equal specs under the same keys
func (s *SpecSet) Equals(other *SpecSet) bool {
	if s.Len() != other.Len() {
		return false
	}
	for key, sp := range s.specs {
		otherSpec, ok := other.specs[key]
		if !ok || !sp.Equals(otherSpec) {
			return false
		}
	}
	return true
}
