package specdata

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Characters that force an operand into parentheses before it is composed
// into a larger expression.
const Reserved = "/*+-_ |"

// Operation methods
const (
	Add      = "add"
	Subtract = "subtract"
	Multiply = "multiply"
	Divide   = "divide"
	Couple   = "couple"
)

// Transformation methods
const (
	Factor        = "factor"
	Scale         = "scale"
	Moving        = "moving"
	GroupBy       = "groupby"
	Consolidate   = "consolidate"
	Unconsolidate = "unconsolidate"
	Reduction     = "reduction"
	WtReduction   = "wtreduction"
)

var (
	ErrDataMismatch  = errors.New("data mismatch")
	ErrUnknownMethod = errors.New("unknown method")
	ErrUnknownHow    = errors.New("unknown how")
	ErrMissingParam  = errors.New("missing parameter")
)

var operations = map[string]string{
	Multiply: "{data}*{other}",
	Divide:   "{data}/{other}",
}

var transformations = map[string]map[string]string{
	Factor: {
		"multiply": "{factor}*{data}",
		"divide":   "{factor}/{data}",
	},
	Scale: {
		"normalize":   "{axis}|Quantiles|{data}",
		"standardize": "{axis}|ZScores|{data}",
		"minmax":      "{axis}|MinMax|{data}",
	},
	Moving: {
		"average":    "{period}MAvg|{data}",
		"summation":  "{period}MSum|{data}",
		"couple":     "{period}MGrp|{data}",
		"difference": "{period}MDiff|{data}",
	},
	GroupBy: {
		"bins":     "Bins|{data}",
		"overlaps": "Overlaps|{data}",
		"contains": "Contains|{data}",
	},
	Consolidate: {
		"average":      "{weight}Avg|{data}",
		"cumulate":     "{direction}Cum|{data}",
		"differential": "Diff|{data}",
	},
	Unconsolidate: {
		"cumulate": "{direction}UnCum|{data}",
		"couple":   "Coupled|{data}",
	},
	Reduction: {
		"average": "Avg|{data}",
		"stdev":   "StDev|{data}",
		"minimum": "Min|{data}",
		"maximum": "Max|{data}",
	},
	WtReduction: {
		"average": "{axis}|WtAvg|{data}",
		"stdev":   "{axis}|WtStDev|{data}",
		"median":  "{axis}|WtMid|{data}",
	},
}

// Builds the data expression of a binary operation. Only multiply and divide
// compose their operands; every other method requires both operands to
// describe the same data and leaves the expression unchanged.
func DataOperation(data string, other string, method string) (string, error) {
	template, ok := operations[method]
	if !ok {
		if data != other {
			return "", fmt.Errorf("%w: cannot %s '%s' and '%s'", ErrDataMismatch, method, data, other)
		}
		return data, nil
	}

	return expand(template, map[string]string{
		"data":  wrap(data),
		"other": wrap(other),
	})
}

// Builds the data expression of a unary transformation keyed by method and how.
// Every placeholder of the template other than axis must be present in params.
func DataTransformation(data string, method string, how string, params map[string]string) (string, error) {
	hows, ok := transformations[method]
	if !ok {
		return "", fmt.Errorf("%w '%s'", ErrUnknownMethod, method)
	}

	template, ok := hows[how]
	if !ok {
		return "", fmt.Errorf("%w '%s' for %s", ErrUnknownHow, how, method)
	}

	values := make(map[string]string, len(params)+2)
	values["axis"] = ""
	for key, value := range params {
		values[key] = value
	}
	values["data"] = wrap(data)

	expression, err := expand(template, values)
	if err != nil {
		return "", fmt.Errorf("%s(%s): %w", method, how, err)
	}

	return strings.TrimLeft(expression, "| "), nil
}

// Returns the sorted list of transformation methods
func Methods() []string {
	methods := make([]string, 0, len(transformations))
	for method := range transformations {
		methods = append(methods, method)
	}
	sort.Strings(methods)
	return methods
}

// Returns the sorted list of hows supported by a transformation method
func Hows(method string) []string {
	hows := make([]string, 0, len(transformations[method]))
	for how := range transformations[method] {
		hows = append(hows, how)
	}
	sort.Strings(hows)
	return hows
}

// Returns the placeholders of a transformation template, excluding data
func Placeholders(method string, how string) ([]string, error) {
	hows, ok := transformations[method]
	if !ok {
		return nil, fmt.Errorf("%w '%s'", ErrUnknownMethod, method)
	}
	template, ok := hows[how]
	if !ok {
		return nil, fmt.Errorf("%w '%s' for %s", ErrUnknownHow, how, method)
	}

	var keys []string
	for _, part := range strings.Split(template, "{")[1:] {
		end := strings.IndexByte(part, '}')
		if end < 0 || part[:end] == "data" {
			continue
		}
		keys = append(keys, part[:end])
	}
	return keys, nil
}

func wrap(operand string) string {
	if strings.ContainsAny(operand, Reserved) {
		return "(" + operand + ")"
	}
	return operand
}

// Substitutes {key} placeholders in a single pass so substituted values are
// never expanded again.
func expand(template string, values map[string]string) (string, error) {
	var b strings.Builder
	for {
		start := strings.IndexByte(template, '{')
		if start < 0 {
			break
		}
		end := strings.IndexByte(template[start:], '}')
		if end < 0 {
			break
		}

		key := template[start+1 : start+end]
		value, ok := values[key]
		if !ok {
			return "", fmt.Errorf("%w '%s'", ErrMissingParam, key)
		}

		b.WriteString(template[:start])
		b.WriteString(value)
		template = template[start+end+1:]
	}
	b.WriteString(template)

	return b.String(), nil
}
