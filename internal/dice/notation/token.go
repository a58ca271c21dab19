package notation

import (
	"fmt"
	"math"
	"unicode"
)

// TokenKind identifies a primitive token.
type TokenKind int

const (
	TokenNumber TokenKind = iota + 1
	TokenMarker
)

// Marker runes accepted by the tokenizer.
const (
	MarkerDice     = 'd'
	MarkerAdd      = '+'
	MarkerSubtract = '-'
	MarkerMultiply = '*'
)

// maxNumber bounds any digit run so every term fits in 32 bits.
const maxNumber = math.MaxInt32

// Token is a single primitive from the input text.
type Token struct {
	Kind TokenKind
	// Value holds the integer for TokenNumber.
	Value int
	// Marker holds the rune for TokenMarker.
	Marker rune
	// Pos is the rune offset where the token starts.
	Pos int
}

// NumberToken builds a digit-sequence token.
func NumberToken(value, pos int) Token {
	return Token{Kind: TokenNumber, Value: value, Pos: pos}
}

// MarkerToken builds a single-character marker token.
func MarkerToken(marker rune, pos int) Token {
	return Token{Kind: TokenMarker, Marker: marker, Pos: pos}
}

// IsMarker reports whether the token is the given marker.
func (t Token) IsMarker(marker rune) bool {
	return t.Kind == TokenMarker && t.Marker == marker
}

func (t Token) String() string {
	switch t.Kind {
	case TokenNumber:
		return fmt.Sprintf("Number(%d)@%d", t.Value, t.Pos)
	case TokenMarker:
		return fmt.Sprintf("Marker(%c)@%d", t.Marker, t.Pos)
	default:
		return fmt.Sprintf("Token(%d)@%d", t.Kind, t.Pos)
	}
}

// Tokenize converts raw text into numbers and markers.
//
// Whitespace is skipped, maximal digit runs collapse into one number and each
// of d + - * becomes its own marker. Any other rune fails with
// ErrUnexpectedCharacter; digit runs above math.MaxInt32 fail with
// ErrNumberTooLarge.
func Tokenize(input string) ([]Token, error) {
	tokens := make([]Token, 0, len(input))

	inNumber := false
	number := 0
	start := 0
	pos := 0
	for _, r := range input {
		if r >= '0' && r <= '9' {
			if !inNumber {
				inNumber = true
				number = 0
				start = pos
			}
			number = number*10 + int(r-'0')
			if number > maxNumber {
				return nil, &ParseError{Kind: KindNumberTooLarge, Pos: start, Limit: maxNumber}
			}
			pos++
			continue
		}
		if inNumber {
			tokens = append(tokens, NumberToken(number, start))
			inNumber = false
		}

		switch {
		case unicode.IsSpace(r):
		case r == MarkerDice, r == MarkerAdd, r == MarkerSubtract, r == MarkerMultiply:
			tokens = append(tokens, MarkerToken(r, pos))
		default:
			return nil, &ParseError{Kind: KindUnexpectedCharacter, Char: r, Pos: pos}
		}
		pos++
	}
	if inNumber {
		tokens = append(tokens, NumberToken(number, start))
	}

	return tokens, nil
}
