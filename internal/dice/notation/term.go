package notation

import "fmt"

// Operator is the arithmetic applied when a term joins the running total.
type Operator int

const (
	OpAdd Operator = iota
	OpSubtract
	OpMultiply
)

// Symbol returns the operator character.
func (o Operator) Symbol() string {
	switch o {
	case OpSubtract:
		return "-"
	case OpMultiply:
		return "*"
	default:
		return "+"
	}
}

func (o Operator) String() string {
	return o.Symbol()
}

func operatorFor(marker rune) (Operator, bool) {
	switch marker {
	case MarkerAdd:
		return OpAdd, true
	case MarkerSubtract:
		return OpSubtract, true
	case MarkerMultiply:
		return OpMultiply, true
	default:
		return 0, false
	}
}

// TermKind distinguishes dice terms from constants.
type TermKind int

const (
	TermDice TermKind = iota + 1
	TermConstant
)

// Term is one contribution to an expression.
//
// A dice term rolls Count dice of Faces sides. A constant term carries Value;
// with OpMultiply it is a factor that scales the running total.
type Term struct {
	Op    Operator
	Kind  TermKind
	Count int
	Faces int
	Value int
}

// DiceTerm builds a dice term.
func DiceTerm(op Operator, count, faces int) Term {
	return Term{Op: op, Kind: TermDice, Count: count, Faces: faces}
}

// ConstantTerm builds an additive or subtractive constant.
func ConstantTerm(op Operator, value int) Term {
	return Term{Op: op, Kind: TermConstant, Value: value}
}

// FactorTerm builds a constant that multiplies the running total.
func FactorTerm(value int) Term {
	return Term{Op: OpMultiply, Kind: TermConstant, Value: value}
}

// IsFactor reports whether the term scales the running total by a constant.
func (t Term) IsFactor() bool {
	return t.Kind == TermConstant && t.Op == OpMultiply
}

// SignedValue returns a constant's value with subtraction folded in.
func (t Term) SignedValue() int {
	if t.Op == OpSubtract {
		return -t.Value
	}
	return t.Value
}

func (t Term) String() string {
	switch t.Kind {
	case TermDice:
		return fmt.Sprintf("%s%dd%d", t.Op.Symbol(), t.Count, t.Faces)
	case TermConstant:
		return fmt.Sprintf("%s%d", t.Op.Symbol(), t.Value)
	default:
		return "?"
	}
}

// Expression is an ordered list of terms evaluated left to right.
type Expression []Term

// DiceCount returns the number of dice the expression rolls.
func (e Expression) DiceCount() int {
	total := 0
	for _, term := range e {
		if term.Kind == TermDice {
			total += term.Count
		}
	}
	return total
}
