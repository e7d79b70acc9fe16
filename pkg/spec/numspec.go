package spec

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/spiceai/specs/pkg/specdata"
)

// NumFormat lists the display attributes of numeric specs
type NumFormat struct {
	Multiplier   string
	Unit         string
	Precision    int
	Heading      string
	NumDirection Direction
}

// NumSpec describes a scalar numeric field. Values are float64; NaN is the
// unknown value and formats to an empty string.
type NumSpec struct {
	numFormat
	data string
}

func NewNumSpec(data string, format NumFormat) (*NumSpec, error) {
	return newNumSpecFromAttrs(format.attrs(data, NumDatatype))
}

func newNumSpecFromAttrs(attrs Attrs) (*NumSpec, error) {
	var options numOptions
	if err := decode(NumDatatype, attrs, &options); err != nil {
		return nil, err
	}

	format, err := newNumFormat(options)
	if err != nil {
		return nil, &AttributeError{Datatype: NumDatatype, Cause: err}
	}

	return &NumSpec{
		numFormat: format,
		data:      options.Data,
	}, nil
}

func (f NumFormat) attrs(data string, datatype Datatype) Attrs {
	return Attrs{
		"data":         data,
		"datatype":     string(datatype),
		"multiplier":   f.Multiplier,
		"unit":         f.Unit,
		"precision":    f.Precision,
		"heading":      f.Heading,
		"numdirection": string(f.NumDirection),
	}
}

func (s *NumSpec) Data() string {
	return s.data
}

func (s *NumSpec) Datatype() Datatype {
	return NumDatatype
}

func (s *NumSpec) String() string {
	return describe(NumDatatype, s.data)
}

func (s *NumSpec) CheckVal(value interface{}) error {
	num, ok := asFloat(value)
	if !ok {
		return NewValueError(s, value, fmt.Sprintf("expected a number, got %T", value))
	}
	if math.IsInf(num, 0) {
		return NewValueError(s, value, "infinite values are not supported")
	}
	return nil
}

func (s *NumSpec) CheckStr(str string) error {
	body := s.undecorate(str)
	if body == "" {
		return nil
	}
	tokens := numberRegex.FindAllString(body, -1)
	if len(tokens) != 1 {
		return NewStringError(s, str, fmt.Sprintf("expected 1 number, found %d", len(tokens)))
	}
	return nil
}

func (s *NumSpec) AsStr(value interface{}) (string, error) {
	if err := s.CheckVal(value); err != nil {
		return "", err
	}
	num, _ := asFloat(value)
	if math.IsNaN(num) {
		return "", nil
	}
	return s.decorate(s.number(num), true), nil
}

func (s *NumSpec) AsVal(str string) (interface{}, error) {
	if err := s.CheckStr(str); err != nil {
		return nil, err
	}
	body := s.undecorate(str)
	if body == "" {
		return math.NaN(), nil
	}
	nums, err := s.numbers(body)
	if err != nil {
		return nil, NewStringError(s, str, err.Error())
	}
	return nums[0], nil
}

func (s *NumSpec) ToDict() Attrs {
	return s.attrs(s.data, NumDatatype)
}

func (s *NumSpec) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.ToDict())
}

// Num specs are equal when they describe the same data in the same unit
func (s *NumSpec) Equals(other Spec) bool {
	o, ok := other.(*NumSpec)
	if !ok || o == nil {
		return false
	}
	return s.data == o.data && s.unit == o.unit
}

func (s *NumSpec) Hash() uint64 {
	return xxhash.Sum64String(strings.Join([]string{string(NumDatatype), s.data, s.key()}, "\x00"))
}

// OPERATIONS

func (s *NumSpec) Add(other Spec) (Spec, error) {
	return s.additive(other, specdata.Add)
}

func (s *NumSpec) Subtract(other Spec) (Spec, error) {
	return s.additive(other, specdata.Subtract)
}

func (s *NumSpec) additive(other Spec, method string) (Spec, error) {
	if !s.Equals(other) {
		return nil, NewOperationNotSupportedError(s, other, method)
	}
	return Operation(s, other, method, NumDatatype, nil)
}

// Multiply composes units and multipliers of both operands
func (s *NumSpec) Multiply(other Spec) (Spec, error) {
	o, ok := other.(*NumSpec)
	if !ok || o == nil {
		return nil, NewOperationNotSupportedError(s, other, specdata.Multiply)
	}
	return Operation(s, o, specdata.Multiply, NumDatatype, Attrs{
		"unit":         s.unit.Multiply(o.unit).String(),
		"multiplier":   s.multiplier.Multiply(o.multiplier).String(),
		"precision":    0,
		"heading":      "",
		"numdirection": "",
	})
}

func (s *NumSpec) Divide(other Spec) (Spec, error) {
	o, ok := other.(*NumSpec)
	if !ok || o == nil {
		return nil, NewOperationNotSupportedError(s, other, specdata.Divide)
	}
	return Operation(s, o, specdata.Divide, NumDatatype, Attrs{
		"unit":         s.unit.Divide(o.unit).String(),
		"multiplier":   s.multiplier.Divide(o.multiplier).String(),
		"precision":    2,
		"heading":      "",
		"numdirection": "",
	})
}

// TRANSFORMATIONS

var numFactors = transforms{
	"multiply": {datatype: NumDatatype},
	"divide":   {datatype: NumDatatype},
}

var numScalings = transforms{
	"normalize":   {datatype: NumDatatype, overrides: Attrs{"unit": "", "multiplier": "%", "precision": 0}},
	"standardize": {datatype: NumDatatype, overrides: Attrs{"unit": "", "multiplier": "", "precision": 2}},
	"minmax":      {datatype: NumDatatype, overrides: Attrs{"unit": "", "multiplier": "%", "precision": 0}},
}

var numMovings = transforms{
	"average":    {datatype: NumDatatype},
	"summation":  {datatype: NumDatatype},
	"difference": {datatype: NumDatatype},
	"couple":     {datatype: RangeDatatype},
}

var numGroupings = transforms{
	"bins":     {datatype: RangeDatatype},
	"overlaps": {datatype: RangeDatatype},
	"contains": {datatype: RangeDatatype},
}

var numUnconsolidations = transforms{
	"cumulate": {datatype: RangeDatatype, overrides: Attrs{"numdirection": ""}},
}

var numReductions = transforms{
	"average": {datatype: NumDatatype},
	"stdev":   {datatype: NumDatatype},
	"minimum": {datatype: NumDatatype},
	"maximum": {datatype: NumDatatype},
}

var numWtReductions = transforms{
	"average": {datatype: NumDatatype},
	"stdev":   {datatype: NumDatatype},
	"median":  {datatype: NumDatatype},
}

// Scales by a bare number, e.g. "2*Revenue"
func (s *NumSpec) Factor(how string, factor float64) (Spec, error) {
	return numFactors.apply(s, specdata.Factor, how, Params{Factor: &factor})
}

func (s *NumSpec) Scale(how string, axis string) (Spec, error) {
	return numScalings.apply(s, specdata.Scale, how, Params{Axis: axis})
}

func (s *NumSpec) Moving(how string, period int) (Spec, error) {
	return numMovings.apply(s, specdata.Moving, how, Params{Period: &period})
}

func (s *NumSpec) GroupBy(how string) (Spec, error) {
	return numGroupings.apply(s, specdata.GroupBy, how, Params{})
}

func (s *NumSpec) Unconsolidate(how string, direction Direction) (Spec, error) {
	return numUnconsolidations.apply(s, specdata.Unconsolidate, how, Params{Direction: direction})
}

func (s *NumSpec) Reduction(how string) (Spec, error) {
	return numReductions.apply(s, specdata.Reduction, how, Params{})
}

func (s *NumSpec) WtReduction(how string, axis string) (Spec, error) {
	return numWtReductions.apply(s, specdata.WtReduction, how, Params{Axis: axis})
}
