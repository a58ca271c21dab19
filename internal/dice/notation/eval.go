package notation

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Roller draws uniform integers in [0, n). *math/rand.Rand satisfies it.
type Roller interface {
	Intn(n int) int
}

// DieRoll captures the draws for a single dice term.
type DieRoll struct {
	Count   int
	Faces   int
	Results []int
	Total   int
}

// Result is the outcome of rolling an expression.
type Result struct {
	Total int64
	Trace string
	// Dice lists every dice term in expression order.
	Dice []DieRoll
}

// String renders the result as **total** [trace].
func (r Result) String() string {
	return fmt.Sprintf("**%d** [%s]", r.Total, r.Trace)
}

// Roll evaluates expr left to right, drawing dice from roller.
//
// Dice terms append their sum to the trace, followed by the individual draws
// in parentheses when more than one die was rolled. Constants append their
// value. Every contribution after the first is preceded by its operator.
func Roll(expr Expression, roller Roller) (Result, error) {
	if len(expr) == 0 {
		return Result{}, &ParseError{Kind: KindEmptyExpression, Pos: -1}
	}
	if roller == nil {
		return Result{}, fmt.Errorf("roller is required")
	}

	var (
		total int64
		trace strings.Builder
		dice  []DieRoll
	)

	for i, term := range expr {
		var value int64
		switch term.Kind {
		case TermDice:
			if term.Count < 0 || term.Faces <= 0 {
				return Result{}, fmt.Errorf("%w: %s", ErrInvalidTerm, term)
			}
			roll := rollDice(roller, term.Count, term.Faces)
			dice = append(dice, roll)
			value = int64(roll.Total)

			writeSymbol(&trace, i, term.Op)
			trace.WriteString(strconv.Itoa(roll.Total))
			if roll.Count > 1 {
				trace.WriteString(" (")
				for j, result := range roll.Results {
					if j > 0 {
						trace.WriteString(" + ")
					}
					trace.WriteString(strconv.Itoa(result))
				}
				trace.WriteString(")")
			}
		case TermConstant:
			value = int64(term.Value)
			writeSymbol(&trace, i, term.Op)
			trace.WriteString(strconv.Itoa(term.Value))
		default:
			return Result{}, fmt.Errorf("%w: unknown kind %d", ErrInvalidTerm, term.Kind)
		}

		next, ok := apply(total, term.Op, value)
		if !ok {
			return Result{}, ErrTotalOverflow
		}
		total = next
	}

	return Result{Total: total, Trace: trace.String(), Dice: dice}, nil
}

func rollDice(roller Roller, count, faces int) DieRoll {
	results := make([]int, count)
	sum := 0
	for i := range results {
		results[i] = roller.Intn(faces) + 1
		sum += results[i]
	}
	return DieRoll{Count: count, Faces: faces, Results: results, Total: sum}
}

func writeSymbol(trace *strings.Builder, index int, op Operator) {
	if index == 0 {
		// Only a leading subtraction is visible so the trace still adds up.
		if op == OpSubtract {
			trace.WriteString("-")
		}
		return
	}
	trace.WriteString(" ")
	trace.WriteString(op.Symbol())
	trace.WriteString(" ")
}

// apply combines total and value, reporting false on int64 overflow.
func apply(total int64, op Operator, value int64) (int64, bool) {
	switch op {
	case OpSubtract:
		if value > 0 && total < math.MinInt64+value {
			return 0, false
		}
		return total - value, true
	case OpMultiply:
		if total == 0 || value == 0 {
			return 0, true
		}
		product := total * value
		if product/value != total || (total == -1 && value == math.MinInt64) || (value == -1 && total == math.MinInt64) {
			return 0, false
		}
		return product, true
	default:
		if value > 0 && total > math.MaxInt64-value {
			return 0, false
		}
		return total + value, true
	}
}
