package api

import (
	"github.com/spiceai/specs/pkg/spec"
)

// DeriveRequest names a transformation. Period and Factor are pointers so
// that an explicit zero is rejected instead of read as absent.
type DeriveRequest struct {
	Method    string   `json:"method"`
	How       string   `json:"how"`
	Axis      string   `json:"axis,omitempty"`
	Period    *int     `json:"period,omitempty"`
	Weight    string   `json:"weight,omitempty"`
	Direction string   `json:"direction,omitempty"`
	Factor    *float64 `json:"factor,omitempty"`
}

func (r *DeriveRequest) Params() spec.Params {
	return spec.Params{
		Axis:      r.Axis,
		Period:    r.Period,
		Weight:    r.Weight,
		Direction: spec.Direction(r.Direction),
		Factor:    r.Factor,
	}
}
