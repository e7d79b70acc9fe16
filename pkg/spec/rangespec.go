package spec

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/spiceai/specs/pkg/specdata"
)

type Direction string

const (
	DirectionUnbounded Direction = "unbounded"
	DirectionLower     Direction = "lower"
	DirectionUpper     Direction = "upper"
	DirectionState     Direction = "state"
	DirectionCenter    Direction = "center"
)

// Two signed bounds around a "-" delimiter, spaces optional
var rangeBoundsRegex = regexp.MustCompile(`^([-+]?[^-+\s]+)\s*-\s*([-+]?[^-+\s]+)$`)

const (
	RangeDelimiter = " - "
	// Formats a range with no bounds
	AllValues = "*"
)

var rangeHeadings = map[Direction]string{
	DirectionUpper:     ">",
	DirectionLower:     "<",
	DirectionCenter:    "",
	DirectionState:     "",
	DirectionUnbounded: AllValues,
}

// Classifies a pair of optional bounds. A missing lower bound leaves only the
// upper bound known ("lower", shown as "<X"); a missing upper bound leaves
// only the lower bound known ("upper", shown as ">X").
func DirectionOf(lower *float64, upper *float64) Direction {
	switch {
	case lower == nil && upper == nil:
		return DirectionUnbounded
	case lower == nil:
		return DirectionLower
	case upper == nil:
		return DirectionUpper
	case *lower == *upper:
		return DirectionState
	}
	return DirectionCenter
}

// Range is an interval whose bounds may be open (nil)
type Range struct {
	Lower *float64 `json:"lower"`
	Upper *float64 `json:"upper"`
}

func Between(lower float64, upper float64) Range {
	return Range{Lower: &lower, Upper: &upper}
}

func Above(lower float64) Range {
	return Range{Lower: &lower}
}

func Below(upper float64) Range {
	return Range{Upper: &upper}
}

func Point(value float64) Range {
	return Between(value, value)
}

func Unbounded() Range {
	return Range{}
}

func (r Range) Direction() Direction {
	return DirectionOf(r.Lower, r.Upper)
}

func (r Range) String() string {
	bound := func(b *float64) string {
		if b == nil {
			return "None"
		}
		return fmt.Sprint(*b)
	}
	return fmt.Sprintf("(%s, %s)", bound(r.Lower), bound(r.Upper))
}

// RangeSpec describes a numeric interval field. Values are Range.
type RangeSpec struct {
	numFormat
	data string
}

func NewRangeSpec(data string, format NumFormat) (*RangeSpec, error) {
	return newRangeSpecFromAttrs(format.attrs(data, RangeDatatype))
}

func newRangeSpecFromAttrs(attrs Attrs) (*RangeSpec, error) {
	var options numOptions
	if err := decode(RangeDatatype, attrs, &options); err != nil {
		return nil, err
	}

	format, err := newNumFormat(options)
	if err != nil {
		return nil, &AttributeError{Datatype: RangeDatatype, Cause: err}
	}

	return &RangeSpec{
		numFormat: format,
		data:      options.Data,
	}, nil
}

func (s *RangeSpec) Data() string {
	return s.data
}

func (s *RangeSpec) Datatype() Datatype {
	return RangeDatatype
}

func (s *RangeSpec) String() string {
	return describe(RangeDatatype, s.data)
}

func asRange(value interface{}) (Range, bool) {
	switch v := value.(type) {
	case Range:
		return v, true
	case *Range:
		if v != nil {
			return *v, true
		}
	}
	return Range{}, false
}

func (s *RangeSpec) CheckVal(value interface{}) error {
	r, ok := asRange(value)
	if !ok {
		return NewValueError(s, value, fmt.Sprintf("expected a Range, got %T", value))
	}
	for _, bound := range []*float64{r.Lower, r.Upper} {
		if bound != nil && !isFinite(*bound) {
			return NewValueError(s, r, "bounds must be finite")
		}
	}
	if r.Lower != nil && r.Upper != nil && *r.Lower > *r.Upper {
		return NewValueError(s, r, "lower bound exceeds upper bound")
	}
	return nil
}

func (s *RangeSpec) CheckStr(str string) error {
	_, err := s.parse(str)
	return err
}

// Reads "*", ">X", "<X", "X" or "X - Y". The delimiter may be a bare "-"
// between two bounds, so "5-8" is the range from 5 to 8.
func (s *RangeSpec) parse(str string) (Range, error) {
	body := s.undecorate(str)
	if body == AllValues {
		return Unbounded(), nil
	}

	for _, direction := range []Direction{DirectionUpper, DirectionLower} {
		heading := rangeHeadings[direction]
		if !strings.HasPrefix(body, heading) {
			continue
		}
		bound, err := s.parseNumber(strings.TrimPrefix(body, heading))
		if err != nil {
			return Range{}, NewStringError(s, str, fmt.Sprintf("expected 1 bound after '%s': %s", heading, err))
		}
		if direction == DirectionUpper {
			return Above(bound), nil
		}
		return Below(bound), nil
	}

	if match := rangeBoundsRegex.FindStringSubmatch(body); match != nil {
		lower, err := s.parseNumber(match[1])
		if err != nil {
			return Range{}, NewStringError(s, str, err.Error())
		}
		upper, err := s.parseNumber(match[2])
		if err != nil {
			return Range{}, NewStringError(s, str, err.Error())
		}
		if lower > upper {
			lower, upper = upper, lower
		}
		return Between(lower, upper), nil
	}

	bound, err := s.parseNumber(body)
	if err != nil {
		return Range{}, NewStringError(s, str, fmt.Sprintf("expected a bound or two bounds joined by '-', got '%s'", body))
	}
	return Point(bound), nil
}

func (s *RangeSpec) AsStr(value interface{}) (string, error) {
	if err := s.CheckVal(value); err != nil {
		return "", err
	}
	r, _ := asRange(value)

	direction := r.Direction()
	heading := rangeHeadings[direction]
	switch direction {
	case DirectionUnbounded:
		return s.decorate(heading, false), nil
	case DirectionUpper:
		return s.decorate(heading+s.number(*r.Lower), true), nil
	case DirectionLower:
		return s.decorate(heading+s.number(*r.Upper), true), nil
	case DirectionState:
		return s.decorate(s.number(*r.Lower), true), nil
	}
	return s.decorate(s.number(*r.Lower)+RangeDelimiter+s.number(*r.Upper), true), nil
}

func (s *RangeSpec) AsVal(str string) (interface{}, error) {
	r, err := s.parse(str)
	if err != nil {
		return nil, err
	}
	return r, nil
}

func (s *RangeSpec) ToDict() Attrs {
	return s.attrs(s.data, RangeDatatype)
}

func (s *RangeSpec) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.ToDict())
}

func (s *RangeSpec) Equals(other Spec) bool {
	o, ok := other.(*RangeSpec)
	if !ok || o == nil {
		return false
	}
	return s.data == o.data && s.unit == o.unit
}

func (s *RangeSpec) Hash() uint64 {
	return xxhash.Sum64String(strings.Join([]string{string(RangeDatatype), s.data, s.key()}, "\x00"))
}

// OPERATIONS

func (s *RangeSpec) Add(other Spec) (Spec, error) {
	return s.additive(other, specdata.Add)
}

func (s *RangeSpec) Subtract(other Spec) (Spec, error) {
	return s.additive(other, specdata.Subtract)
}

func (s *RangeSpec) additive(other Spec, method string) (Spec, error) {
	if !s.Equals(other) {
		return nil, NewOperationNotSupportedError(s, other, method)
	}
	return Operation(s, other, method, RangeDatatype, nil)
}

// TRANSFORMATIONS

var rangeConsolidations = transforms{
	"cumulate": {
		datatype: NumDatatype,
		derive: func(params Params) Attrs {
			return Attrs{"numdirection": string(params.Direction)}
		},
	},
	"average":      {datatype: NumDatatype, overrides: Attrs{"numdirection": ""}},
	"differential": {datatype: NumDatatype, overrides: Attrs{"numdirection": ""}},
}

// Collapses the range into a single number. Cumulating keeps the direction
// of accumulation as the numdirection of the result.
func (s *RangeSpec) Consolidate(how string, params Params) (Spec, error) {
	return rangeConsolidations.apply(s, specdata.Consolidate, how, params)
}
