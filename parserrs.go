package calc

import "strconv"

// SyntaxError is an error indicating a token that does not fit the grammar at
// the point it appears. It implements InputError.
type SyntaxError struct {
	// Col is the position of the unexpected token.
	Col int
	// Got describes the token that was found.
	Got string
	// Want describes what the parser expected instead.
	Want string
}

func (err *SyntaxError) Error() string {
	if err.Want == "" {
		return errpos(err.Col, "unexpected "+err.Got)
	}
	return errpos(err.Col, "unexpected "+err.Got+", want "+err.Want)
}

func (err *SyntaxError) Pos() int {
	return err.Col
}

// DepthError is an error indicating that an expression nests parentheses or
// unary operators too deeply. It implements InputError.
type DepthError struct {
	// Col is the position of the token that exceeded the limit.
	Col int
	// Max is the nesting limit.
	Max int
}

func (err *DepthError) Error() string {
	return errpos(err.Col, "expression nested more than "+strconv.Itoa(err.Max)+" levels deep")
}

func (err *DepthError) Pos() int {
	return err.Col
}

// errpos is a shortcut to create an error message with a position.
func errpos(pos int, msg string) string {
	return strconv.Itoa(pos) + ": " + msg
}

// InputError is an error with position information. Every error resulting from
// invalid input implements InputError.
type InputError interface {
	error
	// Pos returns the position of the error as the number of runes up to and
	// including the start of the token that caused the error.
	Pos() int
}

var (
	_ InputError = (*SyntaxError)(nil)
	_ InputError = (*DepthError)(nil)
	_ InputError = (*InvalidCharacterError)(nil)
)
