package cmdtree

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
)

// ArgumentKind describes how many values a positional argument takes.
type ArgumentKind int

const (
	// ArgumentScalar takes exactly one value.
	ArgumentScalar ArgumentKind = iota
	// ArgumentVector takes every consecutive string that follows it.
	ArgumentVector
)

func (k ArgumentKind) String() string {
	switch k {
	case ArgumentScalar:
		return "scalar"
	case ArgumentVector:
		return "vector"
	default:
		return "unknown"
	}
}

// OptionKind describes the values an option takes.
type OptionKind int

const (
	// OptionFlag is a boolean option. It may omit its value, which then defaults to "true".
	OptionFlag OptionKind = iota
	// OptionScalar takes one value.
	OptionScalar
	// OptionVector may be repeated, each occurrence taking one value.
	OptionVector
)

func (k OptionKind) String() string {
	switch k {
	case OptionFlag:
		return "flag"
	case OptionScalar:
		return "scalar"
	case OptionVector:
		return "vector"
	default:
		return "unknown"
	}
}

// Parameter is a positional [*Argument] or an [*Option]. No other implementations exist.
type Parameter interface {
	// DisplayName is the name used when reporting the parameter: the argument name, or the first
	// long (else short) name of an option.
	DisplayName() string

	isParameter()
}

// Argument is a positional parameter.
type Argument struct {
	Name        string
	Description string
	// Position is the zero-based index of the argument among the command's positional arguments.
	Position int
	Kind     ArgumentKind
}

func (a *Argument) DisplayName() string { return a.Name }
func (*Argument) isParameter()          {}

// Option is a named parameter, written as "-x" or "--name" on the command line.
type Option struct {
	ShortNames  []rune
	LongNames   []string
	Description string
	Kind        OptionKind
	// ValueIsOptional allows a non-flag option to appear without a value. It is then mapped with
	// an invalid [Value] instead of failing with [ErrOptionHasNoValue].
	ValueIsOptional bool
}

func (o *Option) DisplayName() string {
	if len(o.LongNames) > 0 {
		return o.LongNames[0]
	}
	if len(o.ShortNames) > 0 {
		return string(o.ShortNames[0])
	}
	return ""
}

func (*Option) isParameter() {}

func (o *Option) hasShortName(name string) bool {
	for _, r := range o.ShortNames {
		if string(r) == name {
			return true
		}
	}
	return false
}

func (o *Option) hasLongName(name string, sensitivity CaseSensitivity) bool {
	for _, long := range o.LongNames {
		if equalNames(long, name, sensitivity) {
			return true
		}
	}
	return false
}

// Command describes a command of the model. A command with children is either a branch, which
// only groups its children, or an executable command that also has subcommands.
type Command struct {
	// Name is always a single word identifying the command on the command line.
	Name string
	// Aliases are alternative names for the command.
	Aliases     []string
	Description string
	// Parameters holds the arguments and options in declaration order.
	Parameters []Parameter
	Children   []*Command
	// IsDefault marks the command invoked when no name matches at its level. At most one command
	// per level may be the default.
	IsDefault bool
	IsBranch  bool
}

// FindCommand returns the child command with the given name or alias, or nil.
func (c *Command) FindCommand(name string, sensitivity CaseSensitivity) *Command {
	return findCommand(c.Children, name, sensitivity)
}

// DefaultCommand returns the default child command, or nil.
func (c *Command) DefaultCommand() *Command {
	return defaultCommand(c.Children)
}

// HasArguments reports whether the command declares positional arguments.
func (c *Command) HasArguments() bool {
	for _, p := range c.Parameters {
		if _, ok := p.(*Argument); ok {
			return true
		}
	}
	return false
}

func (c *Command) commands() []*Command { return c.Children }

func (c *Command) argumentAt(position int) *Argument {
	for _, p := range c.Parameters {
		if a, ok := p.(*Argument); ok && a.Position == position {
			return a
		}
	}
	return nil
}

func (c *Command) findOption(name string, long bool, sensitivity CaseSensitivity) *Option {
	for _, p := range c.Parameters {
		o, ok := p.(*Option)
		if !ok {
			continue
		}
		// Short names are always compared exactly.
		if (long && o.hasLongName(name, sensitivity)) || (!long && o.hasShortName(name)) {
			return o
		}
	}
	return nil
}

func (c *Command) optionNames(long bool) []string {
	var names []string
	for _, p := range c.Parameters {
		o, ok := p.(*Option)
		if !ok {
			continue
		}
		if long {
			names = append(names, o.LongNames...)
			continue
		}
		for _, r := range o.ShortNames {
			names = append(names, string(r))
		}
	}
	return names
}

// Model is the static description of an application's commands.
type Model struct {
	Commands []*Command
}

// FindCommand returns the top-level command with the given name or alias, or nil.
func (m *Model) FindCommand(name string, sensitivity CaseSensitivity) *Command {
	return findCommand(m.Commands, name, sensitivity)
}

// DefaultCommand returns the top-level default command, or nil.
func (m *Model) DefaultCommand() *Command {
	return defaultCommand(m.Commands)
}

func (m *Model) commands() []*Command { return m.Commands }

// container is a level of the model commands can be resolved against.
type container interface {
	FindCommand(name string, sensitivity CaseSensitivity) *Command
	commands() []*Command
}

func findCommand(commands []*Command, name string, sensitivity CaseSensitivity) *Command {
	for _, c := range commands {
		if equalNames(c.Name, name, sensitivity) {
			return c
		}
		for _, alias := range c.Aliases {
			if equalNames(alias, name, sensitivity) {
				return c
			}
		}
	}
	return nil
}

func defaultCommand(commands []*Command) *Command {
	for _, c := range commands {
		if c.IsDefault {
			return c
		}
	}
	return nil
}

func commandNames(c container) []string {
	var names []string
	for _, cmd := range c.commands() {
		names = append(names, cmd.Name)
	}
	return names
}

func equalNames(a, b string, sensitivity CaseSensitivity) bool {
	if sensitivity == CaseSensitive {
		return a == b
	}
	if strings.EqualFold(a, b) {
		return true
	}
	// A Caser is stateful and must not be shared between concurrent parses.
	fold := cases.Fold()
	return fold.String(a) == fold.String(b)
}

// Validate checks the model for descriptors the parser cannot work with. Failures are reported as
// an [*Error] with code [ErrCouldNotCreateCommand].
func (m *Model) Validate() error {
	if m == nil {
		return errors.New("model is nil")
	}
	if len(m.Commands) == 0 {
		return invalidModel("model has no commands")
	}
	return validateCommands(m.Commands, nil)
}

func validateCommands(commands []*Command, path []string) error {
	// Keyed by case-folded name so that lookups stay unambiguous with CaseInsensitive.
	seen := make(map[string]string)
	fold := cases.Fold()
	var defaults int
	for _, c := range commands {
		if c == nil {
			return invalidModel("nil command in path %q", strings.Join(path, " "))
		}
		if c.Name == "" {
			if len(path) == 0 {
				return invalidModel("top-level command has no name")
			}
			return invalidModel("subcommand in path %q has no name", strings.Join(path, " "))
		}
		for _, name := range append([]string{c.Name}, c.Aliases...) {
			if name == "" || strings.IndexFunc(name, unicode.IsSpace) >= 0 {
				return invalidModel("command name %q contains spaces or is empty", name)
			}
			key := fold.String(name)
			if other, ok := seen[key]; ok {
				if other == name {
					return invalidModel("command name %q is declared more than once", name)
				}
				return invalidModel("command names %q and %q differ only in case", other, name)
			}
			seen[key] = name
		}
		if c.IsDefault {
			defaults++
			if defaults > 1 {
				return invalidModel("more than one default command in path %q", strings.Join(path, " "))
			}
		}
		if c.IsBranch && len(c.Children) == 0 {
			return invalidModel("branch %q has no commands", c.Name)
		}

		currentPath := append(append([]string(nil), path...), c.Name)
		if err := validateParameters(c, currentPath); err != nil {
			return err
		}
		if err := validateCommands(c.Children, currentPath); err != nil {
			return err
		}
	}
	return nil
}

func validateParameters(c *Command, path []string) error {
	positions := make(map[int]*Argument)
	var vector *Argument
	for _, p := range c.Parameters {
		switch p := p.(type) {
		case *Argument:
			if p.Position < 0 {
				return invalidModel("argument %q of %q has a negative position", p.Name, strings.Join(path, " "))
			}
			if other, ok := positions[p.Position]; ok {
				return invalidModel("arguments %q and %q of %q share position %d",
					other.Name, p.Name, strings.Join(path, " "), p.Position)
			}
			positions[p.Position] = p
			if p.Kind == ArgumentVector {
				vector = p
			}
		case *Option:
			if len(p.ShortNames) == 0 && len(p.LongNames) == 0 {
				return invalidModel("option of %q has no name", strings.Join(path, " "))
			}
			for _, r := range p.ShortNames {
				if !unicode.IsLetter(r) {
					return invalidModel("short option name %q of %q is not a letter", string(r), strings.Join(path, " "))
				}
			}
			for _, long := range p.LongNames {
				if utf8.RuneCountInString(long) < 2 {
					return invalidModel("long option name %q of %q must be longer than one character",
						long, strings.Join(path, " "))
				}
			}
		default:
			return invalidModel("command %q has an unsupported parameter %T", strings.Join(path, " "), p)
		}
	}
	if vector != nil {
		for pos := range positions {
			if pos > vector.Position {
				return invalidModel("vector argument %q of %q must be the last argument",
					vector.Name, strings.Join(path, " "))
			}
		}
	}
	return nil
}

func invalidModel(format string, args ...any) error {
	return newError(ErrCouldNotCreateCommand, "", -1, "", "could not create command: %s", fmt.Sprintf(format, args...))
}
