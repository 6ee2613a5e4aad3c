package cmdtree

import (
	"log/slog"
	"slices"
)

// ParsingMode decides what happens to options the matched command does not declare.
type ParsingMode int

const (
	// Strict fails with [ErrUnknownOption] on an undeclared option.
	Strict ParsingMode = iota
	// Relaxed records undeclared options, with their values, in [RemainingArguments.Parsed].
	Relaxed
)

func (m ParsingMode) String() string {
	switch m {
	case Strict:
		return "strict"
	case Relaxed:
		return "relaxed"
	default:
		return "unknown"
	}
}

// CaseSensitivity decides how command names, aliases and long option names are compared. Short
// option names are always compared exactly.
type CaseSensitivity int

const (
	CaseSensitive CaseSensitivity = iota
	CaseInsensitive
)

func (c CaseSensitivity) String() string {
	switch c {
	case CaseSensitive:
		return "case-sensitive"
	case CaseInsensitive:
		return "case-insensitive"
	default:
		return "unknown"
	}
}

// ParseOptions configures a parse. The zero value parses strictly and case-sensitively.
type ParseOptions struct {
	Mode            ParsingMode
	CaseSensitivity CaseSensitivity

	// HelpOption is the option that requests help. If nil, "-h" and "--help" are used.
	HelpOption *Option

	// AcceptedBooleans are the values a flag accepts, compared case-insensitively. If empty,
	// "true" and "false" are used.
	AcceptedBooleans []string

	// Logger receives parser decisions at debug level. If nil, nothing is logged.
	Logger *slog.Logger
}

func defaultHelpOption() *Option {
	return &Option{
		ShortNames:  []rune{'h'},
		LongNames:   []string{"help"},
		Description: "Prints help information",
		Kind:        OptionFlag,
	}
}

// checkAndSetParseOptions returns a copy of opt with defaults filled in. The caller's options are
// never modified.
func checkAndSetParseOptions(opt *ParseOptions) *ParseOptions {
	var o ParseOptions
	if opt != nil {
		o = *opt
	}
	if o.HelpOption == nil {
		o.HelpOption = defaultHelpOption()
	}
	if len(o.AcceptedBooleans) == 0 {
		o.AcceptedBooleans = []string{"true", "false"}
	} else {
		o.AcceptedBooleans = slices.Clone(o.AcceptedBooleans)
	}
	return &o
}
