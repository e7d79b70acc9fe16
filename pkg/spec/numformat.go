package spec

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/spiceai/specs/pkg/quantities"
)

var numberRegex = regexp.MustCompile(`[-+]?(?:\d*\.\d+|\d+)`)

var numDirectionGlyphs = map[Direction]string{
	DirectionUpper: "▲",
	DirectionLower: "▼",
}

// numFormat holds the display attributes shared by NumSpec and RangeSpec
type numFormat struct {
	multiplier   quantities.Multiplier
	unit         quantities.Unit
	precision    int
	heading      string
	numdirection Direction
}

func newNumFormat(options numOptions) (numFormat, error) {
	multiplier, err := quantities.ParseMultiplier(options.Multiplier)
	if err != nil {
		return numFormat{}, err
	}
	unit, err := quantities.ParseUnit(options.Unit)
	if err != nil {
		return numFormat{}, err
	}
	return numFormat{
		multiplier:   multiplier,
		unit:         unit,
		precision:    options.Precision,
		heading:      options.Heading,
		numdirection: Direction(options.NumDirection),
	}, nil
}

func (f numFormat) Multiplier() quantities.Multiplier {
	return f.multiplier
}

func (f numFormat) Unit() quantities.Unit {
	return f.unit
}

func (f numFormat) Precision() int {
	return f.precision
}

func (f numFormat) Heading() string {
	return f.heading
}

func (f numFormat) NumDirection() Direction {
	return f.numdirection
}

func (f numFormat) attrs(data string, datatype Datatype) Attrs {
	return Attrs{
		"data":         data,
		"datatype":     string(datatype),
		"multiplier":   f.multiplier.String(),
		"unit":         f.unit.String(),
		"precision":    f.precision,
		"heading":      f.heading,
		"numdirection": string(f.numdirection),
	}
}

// Formats a single number scaled by the multiplier, e.g. "1.5k"
func (f numFormat) number(value float64) string {
	return strconv.FormatFloat(value/f.multiplier.Num(), 'f', f.precision, 64) + f.multiplier.String()
}

// Adds heading, direction glyph and unit around a formatted body
func (f numFormat) decorate(body string, withUnit bool) string {
	str := f.heading + numDirectionGlyphs[f.numdirection] + body
	if withUnit && !f.unit.IsDimensionless() {
		str += " " + f.unit.String()
	}
	return str
}

// Removes what decorate adds, returning the trimmed body
func (f numFormat) undecorate(str string) string {
	body := strings.TrimSpace(str)
	body = strings.TrimPrefix(body, f.heading)
	body = strings.TrimSpace(body)
	if glyph, ok := numDirectionGlyphs[f.numdirection]; ok {
		body = strings.TrimPrefix(body, glyph)
	}
	if !f.unit.IsDimensionless() {
		body = strings.TrimSuffix(body, f.unit.String())
	}
	return strings.TrimSpace(body)
}

// Extracts numeric tokens and scales them back by the multiplier
func (f numFormat) numbers(body string) ([]float64, error) {
	tokens := numberRegex.FindAllString(body, -1)
	nums := make([]float64, len(tokens))
	for i, token := range tokens {
		num, err := strconv.ParseFloat(token, 64)
		if err != nil {
			return nil, err
		}
		nums[i] = num * f.multiplier.Num()
	}
	return nums, nil
}

// Parses one formatted number, e.g. "1.5k", scaled back by the multiplier
func (f numFormat) parseNumber(token string) (float64, error) {
	token = strings.TrimSpace(token)
	if symbol := f.multiplier.String(); symbol != "" {
		token = strings.TrimSuffix(token, symbol)
	}
	num, err := strconv.ParseFloat(token, 64)
	if err != nil || !isFinite(num) {
		return 0, fmt.Errorf("invalid number '%s'", token)
	}
	return num * f.multiplier.Num(), nil
}

func (f numFormat) key() string {
	return f.unit.String()
}

func asFloat(value interface{}) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int8:
		return float64(v), true
	case int16:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint:
		return float64(v), true
	case uint8:
		return float64(v), true
	case uint16:
		return float64(v), true
	case uint32:
		return float64(v), true
	case uint64:
		return float64(v), true
	}
	return 0, false
}

func isFinite(value float64) bool {
	return !math.IsNaN(value) && !math.IsInf(value, 0)
}
