package notation

// Default ceilings for a single dice term.
const (
	DefaultMaxCount = 500
	DefaultMaxFaces = 500
)

// Limits bounds the work a single dice term may request.
type Limits struct {
	MaxCount int `env:"ARIA_MEMO_MAX_DICE_COUNT" envDefault:"500"`
	MaxFaces int `env:"ARIA_MEMO_MAX_DICE_FACES" envDefault:"500"`
}

// DefaultLimits returns the stock dice ceilings.
func DefaultLimits() Limits {
	return Limits{MaxCount: DefaultMaxCount, MaxFaces: DefaultMaxFaces}
}

func (l Limits) normalized() Limits {
	if l.MaxCount <= 0 {
		l.MaxCount = DefaultMaxCount
	}
	if l.MaxFaces <= 0 {
		l.MaxFaces = DefaultMaxFaces
	}
	return l
}

type parserState int

const (
	stateStart parserState = iota
	stateHaveNumber
	stateHaveDiceMarker
	stateHavePendingOperator
	// stateHaveTerm follows a completed dice term.
	stateHaveTerm
)

// Parser turns tokens into an Expression.
type Parser struct {
	Limits Limits
}

// Parse tokenizes and parses input with the default limits.
func Parse(input string) (Expression, error) {
	return Parser{Limits: DefaultLimits()}.ParseString(input)
}

// ParseString tokenizes and parses input.
func (p Parser) ParseString(input string) (Expression, error) {
	tokens, err := Tokenize(input)
	if err != nil {
		return nil, err
	}
	return p.Parse(tokens)
}

// Parse runs the grammar state machine over tokens.
func (p Parser) Parse(tokens []Token) (Expression, error) {
	limits := p.Limits.normalized()

	var (
		expr    Expression
		state   = stateStart
		op      = OpAdd
		number  int
		count   int
		countAt int
	)

	for _, tok := range tokens {
		switch state {
		case stateStart, stateHavePendingOperator:
			switch {
			case tok.Kind == TokenNumber:
				number = tok.Value
				countAt = tok.Pos
				state = stateHaveNumber
			case tok.IsMarker(MarkerDice):
				count = 1
				countAt = tok.Pos
				state = stateHaveDiceMarker
			case state == stateStart && (tok.IsMarker(MarkerAdd) || tok.IsMarker(MarkerSubtract)):
				op, _ = operatorFor(tok.Marker)
				state = stateHavePendingOperator
			case state == stateStart:
				return nil, malformed(tok.Pos, "expression cannot start with an operator")
			default:
				return nil, malformed(tok.Pos, "operand expected after operator")
			}

		case stateHaveNumber:
			switch {
			case tok.IsMarker(MarkerDice):
				count = number
				state = stateHaveDiceMarker
			case tok.Kind == TokenMarker:
				expr = append(expr, ConstantTerm(op, number))
				op, _ = operatorFor(tok.Marker)
				state = stateHavePendingOperator
			default:
				return nil, malformed(tok.Pos, "operator expected between numbers")
			}

		case stateHaveDiceMarker:
			if tok.Kind != TokenNumber {
				return nil, malformed(tok.Pos, "dice faces expected")
			}
			term, err := diceTerm(op, count, tok.Value, countAt, tok.Pos, limits)
			if err != nil {
				return nil, err
			}
			expr = append(expr, term)
			state = stateHaveTerm

		case stateHaveTerm:
			next, ok := operatorFor(tok.Marker)
			if tok.Kind != TokenMarker || !ok {
				return nil, malformed(tok.Pos, "operator expected after dice")
			}
			op = next
			state = stateHavePendingOperator
		}
	}

	switch state {
	case stateStart:
		return nil, &ParseError{Kind: KindEmptyExpression, Pos: -1}
	case stateHaveNumber:
		expr = append(expr, ConstantTerm(op, number))
	case stateHaveDiceMarker:
		return nil, malformed(-1, "dice faces expected")
	case stateHavePendingOperator:
		return nil, malformed(-1, "operand expected after operator")
	}
	return expr, nil
}

func diceTerm(op Operator, count, faces, countAt, facesAt int, limits Limits) (Term, error) {
	if count < 0 {
		return Term{}, malformed(countAt, "dice count cannot be negative")
	}
	if count > limits.MaxCount {
		return Term{}, &ParseError{Kind: KindDiceTooLarge, Pos: countAt, Limit: limits.MaxCount}
	}
	if faces == 0 {
		return Term{}, malformed(facesAt, "dice need at least one face")
	}
	if faces > limits.MaxFaces {
		return Term{}, &ParseError{Kind: KindDiceTooLarge, Pos: facesAt, Limit: limits.MaxFaces}
	}
	return DiceTerm(op, count, faces), nil
}
