package cmdtree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenize(t *testing.T) {
	t.Parallel()

	str := func(pos int, value, repr string) Token {
		return Token{Kind: TokenString, Position: pos, Value: value, Representation: repr}
	}
	long := func(pos int, name string) Token {
		return Token{Kind: TokenLongOption, Position: pos, Value: name, Representation: "--" + name}
	}
	short := func(pos int, name, repr string, grouped bool) Token {
		return Token{Kind: TokenShortOption, Position: pos, Value: name, Representation: repr, Grouped: grouped}
	}
	remaining := func(pos int) Token {
		return Token{Kind: TokenRemaining, Position: pos, Value: "--", Representation: "--"}
	}

	tt := []struct {
		name   string
		args   []string
		tokens []Token
		raw    []string
	}{
		{
			name:   "no arguments",
			args:   nil,
			tokens: []Token{},
			raw:    []string{},
		},
		{
			name:   "strings",
			args:   []string{"dog", "12"},
			tokens: []Token{str(0, "dog", "dog"), str(4, "12", "12")},
			raw:    []string{},
		},
		{
			name:   "long option with equals value",
			args:   []string{"--name=Rufus"},
			tokens: []Token{long(0, "name"), str(7, "Rufus", "Rufus")},
			raw:    []string{},
		},
		{
			name:   "long option with colon value",
			args:   []string{"--name:Rufus"},
			tokens: []Token{long(0, "name"), str(7, "Rufus", "Rufus")},
			raw:    []string{},
		},
		{
			name:   "single short option",
			args:   []string{"-a"},
			tokens: []Token{short(0, "a", "-a", false)},
			raw:    []string{},
		},
		{
			name: "grouped short options",
			args: []string{"-abc"},
			tokens: []Token{
				short(0, "a", "-a", true),
				short(2, "b", "b", true),
				short(3, "c", "c", true),
			},
			raw: []string{},
		},
		{
			name:   "short option with value",
			args:   []string{"-n:x"},
			tokens: []Token{short(0, "n", "-n", false), str(3, "x", "x")},
			raw:    []string{},
		},
		{
			name:   "quoted option value",
			args:   []string{`--name="Rufus the dog"`},
			tokens: []Token{long(0, "name"), str(7, "Rufus the dog", `"Rufus the dog"`)},
			raw:    []string{},
		},
		{
			name:   "quote continues into the next argument",
			args:   []string{`"a`, `b"`},
			tokens: []Token{str(0, "a b", `"a b"`)},
			raw:    []string{},
		},
		{
			name:   "unquoted string keeps inner spaces and is trimmed",
			args:   []string{"  hello world "},
			tokens: []Token{str(2, "hello world", "hello world ")},
			raw:    []string{},
		},
		{
			name:   "empty argument",
			args:   []string{"a", ""},
			tokens: []Token{str(0, "a", "a"), str(2, "", "")},
			raw:    []string{},
		},
		{
			name:   "separator alone",
			args:   []string{"--"},
			tokens: []Token{remaining(0)},
			raw:    []string{},
		},
		{
			name: "passthrough text is kept verbatim",
			args: []string{"a", "--", "b", "--cc=d", `"e f"`},
			tokens: []Token{
				str(0, "a", "a"),
				remaining(2),
				str(5, "b", "b"),
				long(7, "cc"),
				str(12, "d", "d"),
				str(14, "e f", `"e f"`),
			},
			raw: []string{"b", "--cc=d", `"e f"`},
		},
		{
			name:   "malformed option after separator is a string",
			args:   []string{"--", "-1"},
			tokens: []Token{remaining(0), str(3, "-1", "-1")},
			raw:    []string{"-1"},
		},
		{
			name:   "second separator is passed through",
			args:   []string{"--", "x", "--"},
			tokens: []Token{remaining(0), str(3, "x", "x"), remaining(5)},
			raw:    []string{"x", "--"},
		},
		{
			name:   "empty argument after separator",
			args:   []string{"--", ""},
			tokens: []Token{remaining(0), str(3, "", "")},
			raw:    []string{""},
		},
		{
			name:   "leading spaces after separator",
			args:   []string{"--", "  x"},
			tokens: []Token{remaining(0), str(5, "x", "x")},
			raw:    []string{"  x"},
		},
	}
	for _, tc := range tt {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			stream, raw, err := Tokenize(tc.args)
			require.NoError(t, err)
			assert.Equal(t, tc.tokens, stream.Tokens())
			assert.Equal(t, tc.raw, raw)
		})
	}
}

func TestTokenizeErrors(t *testing.T) {
	t.Parallel()

	tt := []struct {
		name     string
		args     []string
		code     ErrorCode
		position int
		token    string
	}{
		{"invalid short option name", []string{"-a1"}, ErrInvalidShortOptionName, 2, "1"},
		{"digit as short option", []string{"dog", "-1"}, ErrInvalidShortOptionName, 5, "1"},
		{"dash alone", []string{"-"}, ErrOptionHasNoName, 0, "-"},
		{"short option without name", []string{"-=x"}, ErrOptionHasNoName, 0, "-"},
		{"long option name missing", []string{"--=x"}, ErrLongOptionNameIsMissing, 0, "--"},
		{"long option name one character", []string{"--x"}, ErrLongOptionNameIsOneCharacter, 0, "--x"},
		{"long option name starts with digit", []string{"--1ab"}, ErrLongOptionNameStartWithDigit, 0, "--1ab"},
		{"long option name contains symbol", []string{"--a$b"}, ErrLongOptionNameContainSymbol, 3, "$"},
		{"value expected after equals", []string{"--name="}, ErrOptionValueWasExpected, 6, "="},
		{"value expected after colon", []string{"-n:"}, ErrOptionValueWasExpected, 2, ":"},
		{"unterminated quote", []string{`"abc`}, ErrUnterminatedQuote, 0, `"abc`},
		{"unterminated quote across arguments", []string{"x", `"a`, "b"}, ErrUnterminatedQuote, 2, `"a b`},
	}
	for _, tc := range tt {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, _, err := Tokenize(tc.args)
			require.Error(t, err)
			require.ErrorIs(t, err, tc.code)
			var perr *Error
			require.ErrorAs(t, err, &perr)
			assert.Equal(t, tc.code, perr.Code)
			assert.Equal(t, tc.position, perr.Position)
			assert.Equal(t, tc.token, perr.Token)
		})
	}
}

func TestTokenizeGroupedPositions(t *testing.T) {
	t.Parallel()

	for _, args := range [][]string{{"-ab"}, {"-xyz"}, {"dog", "-qrstu"}} {
		stream, _, err := Tokenize(args)
		require.NoError(t, err)
		var last = -1
		for _, tok := range stream.Tokens() {
			if tok.Kind != TokenShortOption {
				continue
			}
			assert.True(t, tok.Grouped, "%v: %q not grouped", args, tok.Value)
			assert.Greater(t, tok.Position, last)
			last = tok.Position
		}
	}
}
