package cmdtree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModelValidate(t *testing.T) {
	t.Parallel()

	require.NoError(t, newTestModel().Validate())
	require.NoError(t, newEchoModel().Validate())

	tt := []struct {
		name     string
		commands []*Command
		contains string
	}{
		{
			name:     "no commands",
			commands: nil,
			contains: "model has no commands",
		},
		{
			name:     "nil command",
			commands: []*Command{nil},
			contains: "nil command",
		},
		{
			name:     "missing name",
			commands: []*Command{{}},
			contains: "top-level command has no name",
		},
		{
			name:     "missing subcommand name",
			commands: []*Command{{Name: "root", Children: []*Command{{}}}},
			contains: `subcommand in path "root" has no name`,
		},
		{
			name:     "name with spaces",
			commands: []*Command{{Name: "hello world"}},
			contains: "contains spaces",
		},
		{
			name:     "duplicate names",
			commands: []*Command{{Name: "dog"}, {Name: "cat", Aliases: []string{"dog"}}},
			contains: `command name "dog" is declared more than once`,
		},
		{
			name:     "names differing only in case",
			commands: []*Command{{Name: "dog"}, {Name: "cat", Aliases: []string{"Dog"}}},
			contains: `command names "dog" and "Dog" differ only in case`,
		},
		{
			name:     "names equal under case folding",
			commands: []*Command{{Name: "straße"}, {Name: "STRASSE"}},
			contains: "differ only in case",
		},
		{
			name:     "two default commands",
			commands: []*Command{{Name: "a", IsDefault: true}, {Name: "b", IsDefault: true}},
			contains: "more than one default command",
		},
		{
			name:     "empty branch",
			commands: []*Command{{Name: "git", IsBranch: true}},
			contains: `branch "git" has no commands`,
		},
		{
			name: "shared argument position",
			commands: []*Command{{Name: "dog", Parameters: []Parameter{
				&Argument{Name: "legs"},
				&Argument{Name: "age"},
			}}},
			contains: `arguments "legs" and "age" of "dog" share position 0`,
		},
		{
			name: "negative argument position",
			commands: []*Command{{Name: "dog", Parameters: []Parameter{
				&Argument{Name: "legs", Position: -1},
			}}},
			contains: "negative position",
		},
		{
			name: "vector argument not last",
			commands: []*Command{{Name: "cp", Parameters: []Parameter{
				&Argument{Name: "src", Kind: ArgumentVector},
				&Argument{Name: "dst", Position: 1},
			}}},
			contains: `vector argument "src" of "cp" must be the last argument`,
		},
		{
			name: "option without name",
			commands: []*Command{{Name: "dog", Parameters: []Parameter{
				&Option{},
			}}},
			contains: `option of "dog" has no name`,
		},
		{
			name: "short name is not a letter",
			commands: []*Command{{Name: "dog", Parameters: []Parameter{
				&Option{ShortNames: []rune{'1'}},
			}}},
			contains: "is not a letter",
		},
		{
			name: "one character long name",
			commands: []*Command{{Name: "dog", Parameters: []Parameter{
				&Option{LongNames: []string{"x"}},
			}}},
			contains: "must be longer than one character",
		},
		{
			name: "nested problem reports the path",
			commands: []*Command{{Name: "git", Children: []*Command{{Name: "remote", Parameters: []Parameter{
				&Option{},
			}}}}},
			contains: `option of "git remote" has no name`,
		},
	}
	for _, tc := range tt {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			err := (&Model{Commands: tc.commands}).Validate()
			require.Error(t, err)
			require.ErrorIs(t, err, ErrCouldNotCreateCommand)
			assert.ErrorContains(t, err, tc.contains)
		})
	}
	t.Run("nil model", func(t *testing.T) {
		t.Parallel()
		var m *Model
		require.Error(t, m.Validate())
	})
}

func TestFindCommand(t *testing.T) {
	t.Parallel()

	model := newTestModel()
	git := model.FindCommand("git", CaseSensitive)
	require.NotNil(t, git)
	assert.Nil(t, model.FindCommand("GIT", CaseSensitive))
	assert.Same(t, git, model.FindCommand("GIT", CaseInsensitive))
	assert.Nil(t, model.DefaultCommand())

	remote := git.FindCommand("remote", CaseSensitive)
	require.NotNil(t, remote)
	assert.Same(t, remote.FindCommand("remove", CaseSensitive), remote.FindCommand("RM", CaseInsensitive))
	assert.Equal(t, "status", git.DefaultCommand().Name)
	assert.Nil(t, remote.DefaultCommand())

	// Case folding goes beyond simple upper and lower case.
	folded := &Model{Commands: []*Command{{Name: "straße"}}}
	assert.NotNil(t, folded.FindCommand("STRASSE", CaseInsensitive))
	assert.Nil(t, folded.FindCommand("STRASSE", CaseSensitive))
}

func TestParameterNames(t *testing.T) {
	t.Parallel()

	name := &Option{ShortNames: []rune{'n'}, LongNames: []string{"name", "title"}}
	assert.Equal(t, "name", name.DisplayName())
	assert.Equal(t, "x", (&Option{ShortNames: []rune{'x'}}).DisplayName())
	assert.Equal(t, "legs", (&Argument{Name: "legs"}).DisplayName())

	assert.True(t, name.hasShortName("n"))
	assert.False(t, name.hasShortName("N"))
	assert.True(t, name.hasLongName("title", CaseSensitive))
	assert.False(t, name.hasLongName("Title", CaseSensitive))
	assert.True(t, name.hasLongName("Title", CaseInsensitive))

	dog := newTestModel().FindCommand("dog", CaseSensitive)
	assert.Equal(t, []string{"good-boy", "name", "alive"}, dog.optionNames(true))
	assert.Equal(t, []string{"n"}, dog.optionNames(false))
	assert.True(t, dog.HasArguments())
	assert.Equal(t, "age", dog.argumentAt(1).Name)
	assert.Nil(t, dog.argumentAt(2))
}

func TestKindString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "vector", ArgumentVector.String())
	assert.Equal(t, "flag", OptionFlag.String())
	assert.Equal(t, "long option", TokenLongOption.String())
	assert.Equal(t, "relaxed", Relaxed.String())
	assert.Equal(t, "case-insensitive", CaseInsensitive.String())
	assert.Equal(t, "unknown", OptionKind(42).String())
}
