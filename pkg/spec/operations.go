package spec

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spiceai/specs/pkg/specdata"
)

// Params are the named arguments of a transformation. A nil Period or
// Factor is not supplied; Weight defaults to unweighted.
type Params struct {
	Axis      string
	Period    *int
	Weight    string
	Direction Direction
	Factor    *float64
}

func (p Params) check() error {
	if p.Period != nil && *p.Period <= 0 {
		return fmt.Errorf("%w: period must be a positive integer, got %d", ErrInvalidParam, *p.Period)
	}
	if p.Factor != nil && (*p.Factor == 0 || !isFinite(*p.Factor)) {
		return fmt.Errorf("%w: factor must be finite and non-zero, got %v", ErrInvalidParam, *p.Factor)
	}
	return nil
}

func (p Params) values() map[string]string {
	values := map[string]string{"weight": p.Weight}
	if p.Axis != "" {
		values["axis"] = p.Axis
	}
	if p.Period != nil {
		values["period"] = strconv.Itoa(*p.Period)
	}
	if p.Direction != "" {
		values["direction"] = string(p.Direction)
	}
	if p.Factor != nil {
		values["factor"] = strconv.FormatFloat(*p.Factor, 'f', -1, 64)
	}
	return values
}

// transform fixes the output datatype and formatting of one transformation kind
type transform struct {
	datatype  Datatype
	overrides Attrs
	// derives overrides that depend on the params
	derive func(params Params) Attrs
}

// transforms maps a how discriminator to its transform
type transforms map[string]transform

func (t transforms) apply(s Spec, method string, how string, params Params) (Spec, error) {
	tr, ok := t[how]
	if !ok {
		return nil, NewTransformationNotSupportedError(s, method, how)
	}
	overrides := tr.overrides
	if tr.derive != nil {
		overrides = merge(overrides, tr.derive(params))
	}
	return Transformation(s, method, how, tr.datatype, params, overrides)
}

// Combines s with other into a new spec of the given datatype. The operands
// must share a datatype; the data expression is rewritten by the method and
// the attributes of s, replaced by overrides, build the result.
func Operation(s Spec, other Spec, method string, datatype Datatype, overrides Attrs) (Spec, error) {
	if other == nil || s.Datatype() != other.Datatype() {
		return nil, NewOperationNotSupportedError(s, other, method)
	}

	data, err := specdata.DataOperation(s.Data(), other.Data(), method)
	if err != nil {
		opErr := NewOperationNotSupportedError(s, other, method)
		opErr.Cause = err
		return nil, opErr
	}

	attrs := merge(s.ToDict(), overrides)
	attrs["data"] = data
	attrs["datatype"] = string(datatype)

	return New(attrs)
}

// Reshapes s into a new spec of the given datatype
func Transformation(s Spec, method string, how string, datatype Datatype, params Params, overrides Attrs) (Spec, error) {
	err := params.check()
	var data string
	if err == nil {
		data, err = specdata.DataTransformation(s.Data(), method, how, params.values())
	}
	if err != nil {
		trErr := NewTransformationNotSupportedError(s, method, how)
		trErr.Cause = err
		return nil, trErr
	}

	attrs := merge(s.ToDict(), overrides)
	attrs["data"] = data
	attrs["datatype"] = string(datatype)

	return New(attrs)
}

// Applies a transformation by method name to any spec that supports it
func Derive(s Spec, method string, how string, params Params) (Spec, error) {
	switch t := s.(type) {
	case *NumSpec:
		switch method {
		case specdata.Factor:
			return numFactors.apply(t, method, how, params)
		case specdata.Scale:
			return t.Scale(how, params.Axis)
		case specdata.Moving:
			return numMovings.apply(t, method, how, params)
		case specdata.GroupBy:
			return t.GroupBy(how)
		case specdata.Unconsolidate:
			return t.Unconsolidate(how, params.Direction)
		case specdata.Reduction:
			return t.Reduction(how)
		case specdata.WtReduction:
			return t.WtReduction(how, params.Axis)
		}
	case *RangeSpec:
		if method == specdata.Consolidate {
			return t.Consolidate(how, params)
		}
	}
	return nil, NewTransformationNotSupportedError(s, method, how)
}

// Applies a binary operation by method name
func Combine(s Spec, other Spec, method string) (Spec, error) {
	type adder interface {
		Add(Spec) (Spec, error)
		Subtract(Spec) (Spec, error)
	}

	switch method {
	case specdata.Add, specdata.Subtract:
		if a, ok := s.(adder); ok {
			if method == specdata.Add {
				return a.Add(other)
			}
			return a.Subtract(other)
		}
	case specdata.Multiply:
		if m, ok := s.(interface{ Multiply(Spec) (Spec, error) }); ok {
			return m.Multiply(other)
		}
	case specdata.Divide:
		if d, ok := s.(interface{ Divide(Spec) (Spec, error) }); ok {
			return d.Divide(other)
		}
	case specdata.Couple:
		if c, ok := s.(interface{ Couple(Spec) (Spec, error) }); ok {
			return c.Couple(other)
		}
	}
	return nil, NewOperationNotSupportedError(s, other, method)
}

// Reports whether err comes from an unsupported operation or transformation
func IsNotSupported(err error) bool {
	var opErr *OperationNotSupportedError
	var trErr *TransformationNotSupportedError
	return errors.As(err, &opErr) || errors.As(err, &trErr)
}
