package cmdtree

// TokenStream is a forward-only cursor over the tokens of a command line. Tokens handed out by the
// stream are copies; the underlying sequence never changes.
type TokenStream struct {
	tokens   []Token
	position int

	// input is the logical input the tokens were scanned from, kept for diagnostics.
	input string
}

// NewTokenStream returns a stream positioned at the first of the given tokens.
func NewTokenStream(tokens []Token) *TokenStream {
	cp := make([]Token, len(tokens))
	copy(cp, tokens)
	return &TokenStream{tokens: cp}
}

// Len returns the total number of tokens in the stream, consumed or not.
func (s *TokenStream) Len() int {
	return len(s.tokens)
}

// Tokens returns a copy of all tokens in the stream.
func (s *TokenStream) Tokens() []Token {
	cp := make([]Token, len(s.tokens))
	copy(cp, s.tokens)
	return cp
}

// Peek returns the token offset positions ahead of the cursor without consuming anything, or nil
// past the end of the stream.
func (s *TokenStream) Peek(offset int) *Token {
	i := s.position + offset
	if i < 0 || i >= len(s.tokens) {
		return nil
	}
	tok := s.tokens[i]
	return &tok
}

// Current returns the token under the cursor, or nil when the stream is exhausted.
func (s *TokenStream) Current() *Token {
	return s.Peek(0)
}

// Consume returns the token under the cursor and advances past it. It returns nil when the stream
// is exhausted.
func (s *TokenStream) Consume() *Token {
	tok := s.Current()
	if tok != nil {
		s.position++
	}
	return tok
}

// ConsumeKind consumes the token under the cursor after checking it with [TokenStream.Expect].
func (s *TokenStream) ConsumeKind(kind TokenKind) (*Token, error) {
	if _, err := s.Expect(kind); err != nil {
		return nil, err
	}
	return s.Consume(), nil
}

// Expect returns the token under the cursor if it is of the given kind. The cursor does not move.
func (s *TokenStream) Expect(kind TokenKind) (*Token, error) {
	tok := s.Current()
	if tok == nil {
		return nil, newError(ErrExpectedTokenButFoundNull, s.input, len([]rune(s.input)), "",
			"expected a %s token but reached the end of the input", kind)
	}
	if tok.Kind != kind {
		return nil, newError(ErrExpectedTokenButFoundOther, s.input, tok.Position, tok.Representation,
			"expected a %s token but found a %s token", kind, tok.Kind)
	}
	return tok, nil
}
