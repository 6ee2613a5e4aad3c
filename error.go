package cmdtree

import "fmt"

// ErrorCode represents an error code for a specific parse failure. An ErrorCode is itself an error,
// so callers can match failures with errors.Is:
//
//	if errors.Is(err, cmdtree.ErrUnknownOption) {
//	    // ...
//	}
type ErrorCode int

const (
	ErrUnknownCommand ErrorCode = iota + 1
	ErrUnknownOption
	ErrUnexpectedOption
	ErrCannotAssignValueToFlag
	ErrOptionHasNoValue
	ErrCouldNotMatchArgument
	ErrCouldNotCreateCommand

	ErrLongOptionNameIsMissing
	ErrLongOptionNameIsOneCharacter
	ErrLongOptionNameStartWithDigit
	ErrLongOptionNameContainSymbol
	ErrInvalidShortOptionName
	ErrOptionValueWasExpected
	ErrOptionHasNoName
	ErrUnterminatedQuote

	ErrExpectedTokenButFoundNull
	ErrExpectedTokenButFoundOther
)

func (c ErrorCode) String() string {
	return convertErrorCode(c)
}

func (c ErrorCode) Error() string {
	return convertErrorCode(c)
}

func convertErrorCode(code ErrorCode) string {
	switch code {
	case ErrUnknownCommand:
		return "unknown command"
	case ErrUnknownOption:
		return "unknown option"
	case ErrUnexpectedOption:
		return "unexpected option"
	case ErrCannotAssignValueToFlag:
		return "cannot assign value to flag"
	case ErrOptionHasNoValue:
		return "option has no value"
	case ErrCouldNotMatchArgument:
		return "could not match argument"
	case ErrCouldNotCreateCommand:
		return "could not create command"
	case ErrLongOptionNameIsMissing:
		return "long option name is missing"
	case ErrLongOptionNameIsOneCharacter:
		return "long option name is one character"
	case ErrLongOptionNameStartWithDigit:
		return "long option name starts with a digit"
	case ErrLongOptionNameContainSymbol:
		return "long option name contains a symbol"
	case ErrInvalidShortOptionName:
		return "invalid short option name"
	case ErrOptionValueWasExpected:
		return "option value was expected"
	case ErrOptionHasNoName:
		return "option has no name"
	case ErrUnterminatedQuote:
		return "unterminated quote"
	case ErrExpectedTokenButFoundNull:
		return "expected token but found end of input"
	case ErrExpectedTokenButFoundOther:
		return "expected token but found another kind"
	default:
		return "unknown error"
	}
}

// Error is a parse failure. It records where in the input the failure was detected so callers can
// point at the offending text.
type Error struct {
	// Code identifies the failure.
	Code ErrorCode

	// Input is the logical input: the arguments joined by a single space. Empty for failures that
	// are not tied to the input, such as an invalid model.
	Input string

	// Position is the rune offset of the offending token within Input, or -1.
	Position int

	// Token is the offending token as it was written, for example "--nmae" or "-x".
	Token string

	// Suggestions holds nearby valid names for unknown commands and options, best match first.
	Suggestions []string

	msg string
}

func newError(code ErrorCode, input string, position int, token string, format string, args ...any) *Error {
	return &Error{
		Code:     code,
		Input:    input,
		Position: position,
		Token:    token,
		msg:      fmt.Sprintf(format, args...),
	}
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.msg == "" {
		return convertErrorCode(e.Code)
	}
	return e.msg
}

// Is reports whether target is the ErrorCode of e.
func (e *Error) Is(target error) bool {
	code, ok := target.(ErrorCode)
	return ok && e != nil && e.Code == code
}
