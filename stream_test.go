package cmdtree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenStream(t *testing.T) {
	t.Parallel()

	t.Run("peek and consume", func(t *testing.T) {
		t.Parallel()
		stream, _, err := Tokenize([]string{"dog", "--name", "Rufus"})
		require.NoError(t, err)
		require.Equal(t, 3, stream.Len())

		assert.Equal(t, "dog", stream.Current().Value)
		assert.Equal(t, "name", stream.Peek(1).Value)
		assert.Nil(t, stream.Peek(3))
		assert.Nil(t, stream.Peek(-1))

		tok := stream.Consume()
		require.NotNil(t, tok)
		assert.Equal(t, "dog", tok.Value)
		assert.Equal(t, "name", stream.Current().Value)
		assert.Equal(t, "dog", stream.Peek(-1).Value)

		stream.Consume()
		stream.Consume()
		assert.Nil(t, stream.Current())
		assert.Nil(t, stream.Consume())
		assert.Equal(t, 3, stream.Len())
	})
	t.Run("tokens are copies", func(t *testing.T) {
		t.Parallel()
		tokens := []Token{{Kind: TokenString, Value: "a", Representation: "a"}}
		stream := NewTokenStream(tokens)
		tokens[0].Value = "changed"
		stream.Current().Value = "changed"
		stream.Tokens()[0].Value = "changed"
		assert.Equal(t, "a", stream.Current().Value)
	})
	t.Run("expect", func(t *testing.T) {
		t.Parallel()
		stream, _, err := Tokenize([]string{"dog", "--name"})
		require.NoError(t, err)

		tok, err := stream.Expect(TokenString)
		require.NoError(t, err)
		assert.Equal(t, "dog", tok.Value)
		// Expect never moves the cursor.
		assert.Equal(t, "dog", stream.Current().Value)

		tok, err = stream.ConsumeKind(TokenString)
		require.NoError(t, err)
		assert.Equal(t, "dog", tok.Value)

		_, err = stream.ConsumeKind(TokenString)
		require.ErrorIs(t, err, ErrExpectedTokenButFoundOther)
		var perr *Error
		require.ErrorAs(t, err, &perr)
		assert.Equal(t, 4, perr.Position)
		assert.Equal(t, "--name", perr.Token)
		assert.Equal(t, "name", stream.Current().Value)

		stream.Consume()
		_, err = stream.Expect(TokenLongOption)
		require.ErrorIs(t, err, ErrExpectedTokenButFoundNull)
		require.ErrorAs(t, err, &perr)
		assert.Equal(t, len("dog --name"), perr.Position)
		assert.Equal(t, "dog --name", perr.Input)
	})
	t.Run("expect on an empty stream", func(t *testing.T) {
		t.Parallel()
		stream := NewTokenStream(nil)
		_, err := stream.Expect(TokenString)
		require.ErrorIs(t, err, ErrExpectedTokenButFoundNull)
		var perr *Error
		require.ErrorAs(t, err, &perr)
		assert.Equal(t, 0, perr.Position)
	})
}
