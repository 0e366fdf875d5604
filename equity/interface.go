package equity

import (
	"errors"
	"fmt"

	"github.com/domino14/rookery/board"
)

var ErrUnknownEvaluator = errors.New("unknown evaluator")

// Evaluator scores a position statically. Higher scores favor White.
// The search only calls it at leaves and when a king has been captured.
type Evaluator interface {
	Evaluate(pos *board.Position) float64
}

// EvaluatorFunc adapts a plain function to the Evaluator interface.
type EvaluatorFunc func(pos *board.Position) float64

func (f EvaluatorFunc) Evaluate(pos *board.Position) float64 {
	return f(pos)
}

// ByName returns one of the built-in evaluators: "material",
// "positional" or "mobility" (positional plus the mobility term).
func ByName(name string) (Evaluator, error) {
	switch name {
	case "material":
		return MaterialEvaluator{}, nil
	case "positional", "":
		return NewPositionalEvaluator(), nil
	case "mobility":
		e := NewPositionalEvaluator()
		e.Mobility = Mobility
		return e, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownEvaluator, name)
}
