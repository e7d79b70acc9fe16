package quantities

import (
	"fmt"
	"strings"
)

// Unit is the symbol of a physical or semantic unit, e.g. "$" or "kg".
// The zero value is the dimensionless unit.
type Unit struct {
	symbol string
}

func ParseUnit(symbol string) (Unit, error) {
	symbol = strings.TrimSpace(symbol)
	if strings.ContainsAny(symbol, "|=<>\n") {
		return Unit{}, fmt.Errorf("invalid unit '%s'", symbol)
	}
	return Unit{symbol: symbol}, nil
}

func (u Unit) String() string {
	return u.symbol
}

func (u Unit) IsDimensionless() bool {
	return u.symbol == ""
}

func (u Unit) Multiply(other Unit) Unit {
	switch {
	case u.IsDimensionless():
		return other
	case other.IsDimensionless():
		return u
	}
	return Unit{symbol: group(u.symbol) + "*" + group(other.symbol)}
}

func (u Unit) Divide(other Unit) Unit {
	switch {
	case u == other:
		return Unit{}
	case other.IsDimensionless():
		return u
	case u.IsDimensionless():
		return Unit{symbol: "1/" + group(other.symbol)}
	}
	return Unit{symbol: group(u.symbol) + "/" + group(other.symbol)}
}

func group(symbol string) string {
	if strings.ContainsAny(symbol, "*/ ") {
		return "(" + symbol + ")"
	}
	return symbol
}
