package calc

import "strconv"

type lexToken struct {
	text string
	kind tokenKind
	pos  int
}

func (t lexToken) String() string {
	return t.kind.String() + ":" + t.text + "@" + strconv.Itoa(t.pos)
}

// describe gives a short human-readable name for the token for use in error
// messages.
func (t lexToken) describe() string {
	switch t.kind {
	case tokenEOF:
		return "end of input"
	case tokenNum:
		return "number " + strconv.Quote(t.text)
	default:
		return strconv.Quote(t.text)
	}
}

type tokenKind int

const (
	tokenNone tokenKind = iota
	// tokenEOF indicates the end of the input.
	tokenEOF
	// tokenNum is a decimal numeral.
	tokenNum
	tokenPlus
	tokenMinus
	tokenMul
	tokenDiv
	tokenMod
	tokenPow
	// tokenFact is the postfix factorial operator.
	tokenFact
	// tokenOpen and tokenClose are parentheses.
	tokenOpen
	tokenClose
)

//go:generate go mod edit -require=golang.org/x/tools@v0.1.0
//go:generate go mod download
//go:generate go run golang.org/x/tools/cmd/stringer -type=tokenKind -trimprefix=token
//go:generate go mod tidy

// Operators contains the runes which are considered to be operators. The byte
// index of each operator is also the offset of its kind from tokenPlus.
const Operators = "+-*/%^!"

// describe names a token kind for use in error messages.
func (k tokenKind) describe() string {
	switch k {
	case tokenEOF:
		return "end of input"
	case tokenNum:
		return "number"
	case tokenOpen:
		return `"("`
	case tokenClose:
		return `")"`
	}
	if k >= tokenPlus && k <= tokenFact {
		return strconv.Quote(Operators[k-tokenPlus : k-tokenPlus+1])
	}
	return k.String()
}
