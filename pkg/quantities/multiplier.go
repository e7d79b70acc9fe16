package quantities

import (
	"fmt"
	"math"
	"strings"
)

// Multiplier is a display scale factor identified by a short symbol.
type Multiplier struct {
	symbol string
	num    float64
}

var multipliers = []Multiplier{
	{symbol: "", num: 1},
	{symbol: "%", num: 1e-2},
	{symbol: "k", num: 1e3},
	{symbol: "M", num: 1e6},
	{symbol: "B", num: 1e9},
	{symbol: "T", num: 1e12},
}

// The identity multiplier
func One() Multiplier {
	return multipliers[0]
}

func ParseMultiplier(symbol string) (Multiplier, error) {
	symbol = strings.TrimSpace(symbol)
	for _, m := range multipliers {
		if m.symbol == symbol {
			return m, nil
		}
	}
	return Multiplier{}, fmt.Errorf("unknown multiplier '%s'", symbol)
}

// Returns the multiplier whose factor is num, if there is one
func MultiplierOf(num float64) (Multiplier, bool) {
	for _, m := range multipliers {
		if math.Abs(m.num-num) <= 1e-9*math.Max(m.num, num) {
			return m, true
		}
	}
	return Multiplier{}, false
}

// Returns the list of known multiplier symbols
func MultiplierSymbols() []string {
	symbols := make([]string, len(multipliers))
	for i, m := range multipliers {
		symbols[i] = m.symbol
	}
	return symbols
}

func (m Multiplier) Num() float64 {
	if m.num == 0 {
		return 1
	}
	return m.num
}

func (m Multiplier) String() string {
	return m.symbol
}

// Composes two multipliers. Products without a symbol of their own fall back
// to the identity so values are shown in base units.
func (m Multiplier) Multiply(other Multiplier) Multiplier {
	if product, ok := MultiplierOf(m.Num() * other.Num()); ok {
		return product
	}
	return One()
}

func (m Multiplier) Divide(other Multiplier) Multiplier {
	if quotient, ok := MultiplierOf(m.Num() / other.Num()); ok {
		return quotient
	}
	return One()
}
