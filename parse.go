package cmdtree

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/shlex"

	"github.com/mfridman/cmdtree/internal/invariant"
	"github.com/mfridman/cmdtree/pkg/suggest"
)

// maxSuggestions is the number of "did you mean" candidates attached to an error.
const maxSuggestions = 3

// Parse resolves args against the model and returns the invoked command path along with whatever
// could not be bound. It returns an error if the model is invalid or the arguments do not fit it.
//
// This function is the main entry point and should be called with the arguments to parse,
// typically os.Args[1:]. The options parameter may be nil, in which case default values are used.
// See [ParseOptions] for more details.
func Parse(model *Model, args []string, opts *ParseOptions) (*Result, error) {
	if err := model.Validate(); err != nil {
		return nil, fmt.Errorf("failed to parse: %w", err)
	}
	stream, raw, err := Tokenize(args)
	if err != nil {
		return nil, err
	}
	return newParser(model, stream, opts).run(raw)
}

// ParseLine splits a single command-line string using shell quoting rules and parses the result
// with [Parse].
func ParseLine(model *Model, line string, opts *ParseOptions) (*Result, error) {
	args, err := shlex.Split(line)
	if err != nil {
		return nil, fmt.Errorf("failed to split command line: %w", err)
	}
	return Parse(model, args, opts)
}

// ParseTokens resolves an already tokenized command line against the model. The raw arguments are
// returned unchanged in [RemainingArguments.Raw].
func ParseTokens(model *Model, stream *TokenStream, raw []string, opts *ParseOptions) (*Result, error) {
	if stream == nil {
		return nil, errors.New("failed to parse: token stream is nil")
	}
	if err := model.Validate(); err != nil {
		return nil, fmt.Errorf("failed to parse: %w", err)
	}
	return newParser(model, stream, opts).run(raw)
}

type parser struct {
	model  *Model
	stream *TokenStream
	opts   *ParseOptions
	ctx    *parserContext
	logger *slog.Logger
}

func newParser(model *Model, stream *TokenStream, opts *ParseOptions) *parser {
	opts = checkAndSetParseOptions(opts)
	return &parser{
		model:  model,
		stream: stream,
		opts:   opts,
		ctx:    newParserContext(opts.Mode),
		logger: opts.Logger,
	}
}

func (p *parser) run(raw []string) (*Result, error) {
	p.debug("parsing", "tokens", p.stream.Len(), "mode", p.opts.Mode, "case", p.opts.CaseSensitivity)
	tree, err := p.parse()
	if err != nil {
		return nil, err
	}
	if raw == nil {
		raw = []string{}
	}
	return &Result{
		Tree: tree,
		Remaining: RemainingArguments{
			Raw:    raw,
			Parsed: p.ctx.remaining,
		},
	}, nil
}

func (p *parser) parse() (*CommandTree, error) {
	defaultCommand := p.model.DefaultCommand()

	token := p.stream.Current()
	if token == nil {
		if defaultCommand != nil {
			p.debug("no arguments, using default command", "command", defaultCommand.Name)
			return p.parseCommandParameters(defaultCommand, nil)
		}
		return nil, nil
	}

	if token.Kind != TokenString {
		if p.isHelp(*token) {
			p.debug("help requested", "token", token.Representation)
			return nil, nil
		}
		if defaultCommand != nil {
			p.debug("option before any command, using default command", "command", defaultCommand.Name)
			return p.parseCommandParameters(defaultCommand, nil)
		}
		return nil, p.errorAt(ErrUnexpectedOption, *token, nil,
			"unexpected option %q, expected a command", token.Representation)
	}

	if p.model.FindCommand(token.Value, p.opts.CaseSensitivity) == nil && defaultCommand != nil {
		// The default command takes every token as its own, including the first string.
		p.debug("no command matched, using default command", "token", token.Value, "command", defaultCommand.Name)
		return p.parseCommandParameters(defaultCommand, nil)
	}
	return p.parseCommand(p.model, nil)
}

func (p *parser) parseCommand(c container, parent *CommandTree) (*CommandTree, error) {
	token, err := p.stream.ConsumeKind(TokenString)
	invariant.ExpectNoError(err, "consume command name")

	command := c.FindCommand(token.Value, p.opts.CaseSensitivity)
	if command == nil {
		return nil, p.unknownCommand(c, *token)
	}
	p.debug("resolved command", "command", command.Name, "token", token.Representation)
	return p.parseCommandParameters(command, parent)
}

func (p *parser) parseCommandParameters(command *Command, parent *CommandTree) (*CommandTree, error) {
	p.ctx.resetArgumentPosition()

	node := newCommandTree(parent, command)
	for token := p.stream.Current(); token != nil; token = p.stream.Current() {
		before := p.stream.position
		var err error
		switch token.Kind {
		case TokenLongOption, TokenShortOption:
			err = p.parseOption(node, *token)
		case TokenString:
			err = p.parseString(node)
		case TokenRemaining:
			p.stream.Consume()
			p.ctx.enterRemaining()
			p.debug("entered remaining state", "position", token.Position)
		default:
			invariant.Failf("encountered unknown token kind %v", token.Kind)
		}
		if err != nil {
			return nil, err
		}
		invariant.Invariant(p.stream.position > before, "stream must advance in command %q (stuck at token %d)",
			command.Name, before)
	}

	if node.Next == nil && !node.ShowHelp {
		if def := command.DefaultCommand(); def != nil {
			p.debug("branch ended, using default command", "branch", command.Name, "command", def.Name)
			next, err := p.parseCommandParameters(def, node)
			if err != nil {
				return nil, err
			}
			node.Next = next
		}
	}

	node.collectUnmapped()
	return node, nil
}

func (p *parser) parseString(node *CommandTree) error {
	if p.ctx.state == stateRemaining {
		// Already captured verbatim by the tokenizer.
		_, err := p.stream.ConsumeKind(TokenString)
		invariant.ExpectNoError(err, "consume remaining string")
		return nil
	}

	token, err := p.stream.Expect(TokenString)
	invariant.ExpectNoError(err, "expect string")

	command := node.Command
	if command.FindCommand(token.Value, p.opts.CaseSensitivity) != nil {
		next, err := p.parseCommand(command, node)
		if err != nil {
			return err
		}
		node.Next = next
		return nil
	}

	argument := command.argumentAt(p.ctx.argPosition)
	if argument == nil {
		if def := command.DefaultCommand(); def != nil {
			p.debug("inserting default command", "branch", command.Name, "command", def.Name, "token", token.Value)
			next, err := p.parseCommandParameters(def, node)
			if err != nil {
				return err
			}
			node.Next = next
			return nil
		}
		if len(command.Children) > 0 || command.IsDefault {
			return p.unknownCommand(command, *token)
		}
		if !command.HasArguments() {
			return p.errorAt(ErrCouldNotMatchArgument, *token, nil,
				"could not match %q with an argument: command %q takes no arguments", token.Value, command.Name)
		}
		return p.errorAt(ErrCouldNotMatchArgument, *token, nil,
			"could not match %q with an argument of command %q", token.Value, command.Name)
	}

	switch argument.Kind {
	case ArgumentVector:
		for current := p.stream.Current(); current != nil && current.Kind == TokenString; current = p.stream.Current() {
			p.stream.Consume()
			node.mapValue(argument, ValueOf(current.Value))
		}
	case ArgumentScalar:
		p.stream.Consume()
		node.mapValue(argument, ValueOf(token.Value))
		p.ctx.increaseArgumentPosition()
	default:
		invariant.Failf("argument %q has unknown kind %v", argument.Name, argument.Kind)
	}
	return nil
}

func (p *parser) parseOption(node *CommandTree, token Token) error {
	p.stream.Consume()
	isLong := token.Kind == TokenLongOption

	if p.ctx.state == stateNormal {
		if option := node.Command.findOption(token.Value, isLong, p.opts.CaseSensitivity); option != nil {
			return p.parseOptionValue(node, token, option)
		}
		if p.isHelp(token) {
			node.ShowHelp = true
			return nil
		}
	}

	if p.ctx.state == stateRemaining || p.capturesUnknownOption(node, token) {
		return p.parseOptionValue(node, token, nil)
	}

	suggestions := suggest.FindSimilar(token.Value, node.Command.optionNames(isLong), maxSuggestions)
	return p.errorAt(ErrUnknownOption, token, suggestions,
		"unknown option %q for command %q", token.Representation, node.Command.Name)
}

// parseOptionValue binds the value of an option token. A nil option means the option is not
// declared and is recorded in the remaining arguments instead.
func (p *parser) parseOptionValue(node *CommandTree, token Token, option *Option) error {
	var value *Token
	var captured bool

	if next := p.stream.Current(); next != nil && next.Kind == TokenString {
		switch {
		case token.Grouped:
			// Grouped short options never take the following string.
		case p.ctx.state == stateNormal:
			if node.Command.FindCommand(next.Value, p.opts.CaseSensitivity) != nil {
				// A command name is never an option value.
				break
			}
			if option != nil && option.Kind == OptionFlag && !p.isAcceptedBoolean(next.Value) {
				return p.errorAt(ErrCannotAssignValueToFlag, token, nil,
					"flag %q cannot be assigned the value %q", token.Representation, next.Value)
			}
			value = p.stream.Consume()
			if option == nil {
				p.ctx.addRemaining(token.Value, ValueOf(value.Value))
				captured = true
			}
		default:
			p.ctx.addRemaining(token.Value, ValueOf(next.Value))
			captured = true
		}
	}

	if option == nil {
		if !captured {
			p.ctx.addRemaining(token.Value, Value{})
		}
		p.debug("option captured as remaining", "option", token.Representation, "state", p.ctx.state)
		return nil
	}

	if value != nil {
		node.mapValue(option, ValueOf(value.Value))
		return nil
	}
	switch {
	case option.Kind == OptionFlag:
		node.mapValue(option, ValueOf("true"))
	case option.ValueIsOptional:
		node.mapValue(option, Value{})
	default:
		return p.errorAt(ErrOptionHasNoValue, token, nil, "option %q is defined but no value has been provided",
			token.Representation)
	}
	return nil
}

// capturesUnknownOption reports whether an option the node does not declare is recorded as a
// remaining argument instead of failing. This is always the case in relaxed mode. In strict mode
// only a branch that will fall back to its default command records it, and only when the option
// is declared somewhere along that default command chain.
func (p *parser) capturesUnknownOption(node *CommandTree, token Token) bool {
	if p.ctx.mode == Relaxed {
		return true
	}
	if node.Next != nil {
		return false
	}
	isLong := token.Kind == TokenLongOption
	for def := node.Command.DefaultCommand(); def != nil; def = def.DefaultCommand() {
		if def.findOption(token.Value, isLong, p.opts.CaseSensitivity) != nil {
			return true
		}
	}
	return false
}

func (p *parser) isHelp(token Token) bool {
	help := p.opts.HelpOption
	switch token.Kind {
	case TokenShortOption:
		return help.hasShortName(token.Value)
	case TokenLongOption:
		return help.hasLongName(token.Value, p.opts.CaseSensitivity)
	}
	return false
}

func (p *parser) isAcceptedBoolean(value string) bool {
	for _, b := range p.opts.AcceptedBooleans {
		if strings.EqualFold(b, value) {
			return true
		}
	}
	return false
}

func (p *parser) unknownCommand(c container, token Token) error {
	suggestions := suggest.FindSimilar(token.Value, commandNames(c), maxSuggestions)
	if command, ok := c.(*Command); ok {
		return p.errorAt(ErrUnknownCommand, token, suggestions,
			"unknown command %q for %q", token.Value, command.Name)
	}
	return p.errorAt(ErrUnknownCommand, token, suggestions, "unknown command %q", token.Value)
}

func (p *parser) errorAt(code ErrorCode, token Token, suggestions []string, format string, args ...any) error {
	err := newError(code, p.stream.input, token.Position, token.Representation, format, args...)
	err.Suggestions = suggestions
	return err
}

func (p *parser) debug(msg string, args ...any) {
	if p.logger != nil {
		p.logger.Debug(msg, args...)
	}
}
