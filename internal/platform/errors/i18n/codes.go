package i18n

// Error codes must match the codes defined in internal/platform/errors/codes.go.
// These are duplicated as strings to avoid an import cycle.
const (
	CodeUnknown                     = "UNKNOWN"
	CodeNotationUnexpectedCharacter = "NOTATION_UNEXPECTED_CHARACTER"
	CodeNotationEmptyExpression     = "NOTATION_EMPTY_EXPRESSION"
	CodeNotationMalformedExpression = "NOTATION_MALFORMED_EXPRESSION"
	CodeNotationDiceTooLarge        = "NOTATION_DICE_TOO_LARGE"
	CodeNotationNumberTooLarge      = "NOTATION_NUMBER_TOO_LARGE"
	CodeNotationTotalOverflow       = "NOTATION_TOTAL_OVERFLOW"
	CodeSeedInvalid                 = "SEED_INVALID"
)
