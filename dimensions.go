package main

import (
	"errors"
	"fmt"
	"math"

	"github.com/knetic/govaluate"
)

var errNonPositive = errors.New("dimension must be positive")

// Functions usable in --width/--height expressions
var dimensionFunctions = map[string]govaluate.ExpressionFunction{
	"floor": unary(math.Floor),
	"ceil":  unary(math.Ceil),
	"round": unary(math.Round),
}

func unary(fn func(float64) float64) govaluate.ExpressionFunction {
	return func(args ...interface{}) (interface{}, error) {
		if len(args) != 1 {
			return nil, fmt.Errorf("expects 1 argument, got %d", len(args))
		}
		v, ok := args[0].(float64)
		if !ok {
			return nil, fmt.Errorf("argument must be numeric")
		}
		return fn(v), nil
	}
}

// dimension is a parsed size expression over the source width w and height h
type dimension struct {
	expr *govaluate.EvaluableExpression
}

func parseDimension(s string) (dimension, error) {
	expr, err := govaluate.NewEvaluableExpressionWithFunctions(s, dimensionFunctions)
	if err != nil {
		return dimension{}, fmt.Errorf("invalid expression %q: %w", s, err)
	}
	for _, v := range expr.Vars() {
		if v != "w" && v != "h" {
			return dimension{}, fmt.Errorf("invalid expression %q: unknown variable %q (use w and h)", s, v)
		}
	}
	return dimension{expr: expr}, nil
}

// Evaluates the expression for a width x height source, rounding to the nearest pixel
func (d dimension) eval(width, height int) (int, error) {
	result, err := d.expr.Evaluate(map[string]interface{}{
		"w": float64(width),
		"h": float64(height),
	})
	if err != nil {
		return 0, err
	}

	v, ok := result.(float64)
	if !ok || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("expression %q is not a number", d.expr.String())
	}

	if v > math.MaxInt32 {
		return 0, fmt.Errorf("expression %q is too large", d.expr.String())
	}
	if v < 0.5 {
		return 0, fmt.Errorf("expression %q evaluates to %g: %w", d.expr.String(), v, errNonPositive)
	}
	return int(math.Round(v)), nil
}
