package cmdtree

import (
	"strings"
	"unicode"
)

type tokenizerMode int

const (
	modeNormal tokenizerMode = iota
	modeRemaining
)

// tokenizer scans the arguments as one logical input: the arguments joined by a single space. The
// joining spaces are only crossed by quoted strings, everything else stops at the end of the
// argument it started in.
type tokenizer struct {
	input  []rune
	starts []int
	ends   []int
	elem   int
	pos    int
	mode   tokenizerMode

	tokens []Token
	// pending holds the runes consumed in remaining mode since the last flush.
	pending []rune
	raw     []string
}

// Tokenize converts command-line arguments into a token stream. It also returns the verbatim text
// of every argument that follows a "--" separator, which callers typically forward to another
// program.
//
// The arguments are scanned as if joined by a single space, and token positions are rune offsets
// into that joined text. A double-quoted string left open at the end of an argument continues into
// the next one.
func Tokenize(args []string) (*TokenStream, []string, error) {
	t := newTokenizer(args)
	if err := t.run(); err != nil {
		return nil, nil, err
	}
	stream := NewTokenStream(t.tokens)
	stream.input = string(t.input)
	return stream, t.raw, nil
}

func newTokenizer(args []string) *tokenizer {
	t := &tokenizer{
		raw: []string{},
	}
	for i, arg := range args {
		if i > 0 {
			t.input = append(t.input, ' ')
		}
		t.starts = append(t.starts, len(t.input))
		t.input = append(t.input, []rune(arg)...)
		t.ends = append(t.ends, len(t.input))
	}
	return t
}

func (t *tokenizer) run() error {
	for t.elem < len(t.ends) {
		t.pos = t.starts[t.elem]
		if t.atEnd() {
			t.emptyArgument()
		}
		for !t.atEnd() {
			if unicode.IsSpace(t.peek()) {
				t.read()
				continue
			}
			if err := t.scanToken(); err != nil {
				return err
			}
			t.flushRemaining()
		}
		t.flushRemaining()
		t.elem++
	}
	return nil
}

func (t *tokenizer) emptyArgument() {
	t.tokens = append(t.tokens, Token{Kind: TokenString, Position: t.pos})
	if t.mode == modeRemaining {
		t.raw = append(t.raw, "")
	}
}

func (t *tokenizer) scanToken() error {
	if t.peek() != '-' {
		tok, err := t.scanString()
		if err != nil {
			return err
		}
		t.tokens = append(t.tokens, tok)
		return nil
	}

	mark, pending := t.pos, len(t.pending)
	toks, err := t.scanOptions()
	if err != nil {
		if t.mode != modeRemaining {
			return err
		}
		// Passthrough text is never rejected; rescan the malformed option as a plain string.
		t.pos, t.pending = mark, t.pending[:pending]
		tok, err := t.scanString()
		if err != nil {
			return err
		}
		toks = []Token{tok}
	}
	t.tokens = append(t.tokens, toks...)
	return nil
}

func (t *tokenizer) scanOptions() ([]Token, error) {
	position := t.pos
	t.read() // -

	if t.atEnd() {
		return nil, t.errorAt(ErrOptionHasNoName, position, "-", "option does not have a name")
	}

	var result []Token
	if t.peek() == '-' {
		tok, err := t.scanLongOption(position)
		if err != nil {
			return nil, err
		}
		if tok.Kind == TokenRemaining {
			return []Token{tok}, nil
		}
		result = append(result, tok)
	} else {
		toks, err := t.scanShortOptions(position)
		if err != nil {
			return nil, err
		}
		if len(toks) == 0 {
			return nil, t.errorAt(ErrOptionHasNoName, position, "-", "option does not have a name")
		}
		result = append(result, toks...)
	}

	if t.atEnd() {
		return result, nil
	}
	if r := t.peek(); r == '=' || r == ':' {
		separator := t.pos
		t.read()
		if t.atEnd() {
			return nil, t.errorAt(ErrOptionValueWasExpected, separator, string(r),
				"expected an option value after %q", string(r))
		}
		value, err := t.scanString()
		if err != nil {
			return nil, err
		}
		result = append(result, value)
	}
	return result, nil
}

func (t *tokenizer) scanLongOption(position int) (Token, error) {
	t.read() // second -

	if t.atEnd() {
		// Everything after this is passed through.
		t.mode = modeRemaining
		return Token{Kind: TokenRemaining, Position: position, Value: "--", Representation: "--"}, nil
	}

	start := t.pos
	var b strings.Builder
	for !t.atEnd() {
		if r := t.peek(); r == '=' || r == ':' {
			break
		}
		b.WriteRune(t.read())
	}
	name := []rune(b.String())

	switch {
	case len(name) == 0:
		return Token{}, t.errorAt(ErrLongOptionNameIsMissing, position, "--", "long option name is missing")
	case len(name) == 1:
		return Token{}, t.errorAt(ErrLongOptionNameIsOneCharacter, position, "--"+string(name),
			"long option %q must consist of more than one character", string(name))
	case unicode.IsDigit(name[0]):
		return Token{}, t.errorAt(ErrLongOptionNameStartWithDigit, position, "--"+string(name),
			"long option %q can not start with a digit", string(name))
	}
	for i, r := range name {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '_' {
			continue
		}
		return Token{}, t.errorAt(ErrLongOptionNameContainSymbol, start+i, string(r),
			"long option %q contains the invalid character %q", string(name), string(r))
	}

	return Token{
		Kind:           TokenLongOption,
		Position:       position,
		Value:          string(name),
		Representation: "--" + string(name),
	}, nil
}

func (t *tokenizer) scanShortOptions(position int) ([]Token, error) {
	var result []Token
	for !t.atEnd() {
		r := t.peek()
		if unicode.IsSpace(r) || r == '=' || r == ':' {
			break
		}
		if !unicode.IsLetter(r) {
			return nil, t.errorAt(ErrInvalidShortOptionName, t.pos, string(r),
				"short option does not have a valid name: %q", string(r))
		}
		tok := Token{
			Kind:           TokenShortOption,
			Position:       t.pos,
			Value:          string(r),
			Representation: string(r),
		}
		if len(result) == 0 {
			tok.Position = position
			tok.Representation = "-" + string(r)
		}
		t.read()
		result = append(result, tok)
	}

	if len(result) > 1 {
		for i := range result {
			result[i].Grouped = true
		}
	}
	return result, nil
}

func (t *tokenizer) scanString() (Token, error) {
	if t.peek() == '"' {
		return t.scanQuotedString()
	}

	position := t.pos
	var b strings.Builder
	for !t.atEnd() {
		b.WriteRune(t.read())
	}
	value := b.String()
	return Token{
		Kind:           TokenString,
		Position:       position,
		Value:          strings.TrimSpace(value),
		Representation: value,
	}, nil
}

func (t *tokenizer) scanQuotedString() (Token, error) {
	position := t.pos
	t.read() // "

	var b strings.Builder
	for {
		if t.atEnd() {
			if !t.continueArgument() {
				return Token{}, t.errorAt(ErrUnterminatedQuote, position, `"`+b.String(),
					"found unterminated quote")
			}
			b.WriteRune(' ')
			continue
		}
		r := t.read()
		if r == '"' {
			break
		}
		b.WriteRune(r)
	}

	value := b.String()
	return Token{
		Kind:           TokenString,
		Position:       position,
		Value:          value,
		Representation: `"` + value + `"`,
	}, nil
}

// continueArgument moves past the space joining the current argument to the next one.
func (t *tokenizer) continueArgument() bool {
	if t.elem+1 >= len(t.ends) {
		return false
	}
	t.read()
	t.elem++
	return true
}

func (t *tokenizer) atEnd() bool {
	return t.pos >= t.ends[t.elem]
}

func (t *tokenizer) peek() rune {
	return t.input[t.pos]
}

func (t *tokenizer) read() rune {
	r := t.input[t.pos]
	t.pos++
	if t.mode == modeRemaining {
		t.pending = append(t.pending, r)
	}
	return r
}

func (t *tokenizer) flushRemaining() {
	if t.mode != modeRemaining || len(t.pending) == 0 {
		return
	}
	t.raw = append(t.raw, string(t.pending))
	t.pending = t.pending[:0]
}

func (t *tokenizer) errorAt(code ErrorCode, position int, token string, format string, args ...any) *Error {
	return newError(code, string(t.input), position, token, format, args...)
}
