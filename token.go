package cmdtree

// TokenKind classifies a token produced by [Tokenize].
type TokenKind int

const (
	// TokenString is a command name, an argument or an option value.
	TokenString TokenKind = iota
	// TokenLongOption is a "--name" option.
	TokenLongOption
	// TokenShortOption is a single letter of a "-x" or "-xyz" option.
	TokenShortOption
	// TokenRemaining is the "--" separator.
	TokenRemaining
)

func (k TokenKind) String() string {
	switch k {
	case TokenString:
		return "string"
	case TokenLongOption:
		return "long option"
	case TokenShortOption:
		return "short option"
	case TokenRemaining:
		return "remaining"
	default:
		return "unknown"
	}
}

// Token is a single lexical element of the command line.
type Token struct {
	Kind TokenKind
	// Position is the rune offset of the token in the arguments joined by a single space.
	Position int
	// Value is the token without decoration: the option name without dashes or the unquoted string.
	Value string
	// Representation is the token as written.
	Representation string
	// Grouped is set on every short option of a cluster such as "-abc".
	Grouped bool
}

func (t Token) String() string {
	return t.Representation
}
