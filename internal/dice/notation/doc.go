// Package notation evaluates dice expressions such as "2d6 + 3" or "d20 * 2".
//
// Evaluation runs in three steps: Tokenize turns text into numbers and
// markers, Parser runs a state machine over the tokens to build an
// Expression, and Roll walks the expression left to right with no operator
// precedence, drawing dice from a call-scoped Roller and building a trace.
//
// The public output format is "**{total}** [{trace}]".
package notation
