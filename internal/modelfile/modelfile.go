// Package modelfile loads a [cmdtree.Model] from a YAML or TOML description.
//
// A model file lists commands, each with its arguments, options and nested commands:
//
//	commands:
//	  - name: dog
//	    arguments:
//	      - name: legs
//	    options:
//	      - name: GoodBoy
//	        kind: flag
//	      - short: [n]
//	        long: [name]
//
// Arguments take their position from their order unless one is given. An option without long names
// gets one derived from its name in kebab case, "GoodBoy" becoming "good-boy".
package modelfile

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/BurntSushi/toml"
	"github.com/iancoleman/strcase"
	"gopkg.in/yaml.v3"

	"github.com/mfridman/cmdtree"
)

// Format is the encoding of a model file.
type Format int

const (
	FormatYAML Format = iota + 1
	FormatTOML
)

func (f Format) String() string {
	switch f {
	case FormatYAML:
		return "yaml"
	case FormatTOML:
		return "toml"
	default:
		return "unknown"
	}
}

// DetectFormat returns the format matching the extension of path.
func DetectFormat(path string) (Format, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return 0, fmt.Errorf("unsupported model file extension %q: must be .yaml, .yml or .toml", ext)
	}
}

// File is the decoded content of a model file.
type File struct {
	Commands []Command `yaml:"commands" toml:"commands"`
}

type Command struct {
	Name        string     `yaml:"name" toml:"name"`
	Aliases     []string   `yaml:"aliases" toml:"aliases"`
	Description string     `yaml:"description" toml:"description"`
	Default     bool       `yaml:"default" toml:"default"`
	Branch      bool       `yaml:"branch" toml:"branch"`
	Arguments   []Argument `yaml:"arguments" toml:"arguments"`
	Options     []Option   `yaml:"options" toml:"options"`
	Commands    []Command  `yaml:"commands" toml:"commands"`
}

type Argument struct {
	Name        string `yaml:"name" toml:"name"`
	Description string `yaml:"description" toml:"description"`
	// Position defaults to the index of the argument in the list.
	Position *int   `yaml:"position" toml:"position"`
	Kind     string `yaml:"kind" toml:"kind"`
}

type Option struct {
	Name        string   `yaml:"name" toml:"name"`
	Short       []string `yaml:"short" toml:"short"`
	Long        []string `yaml:"long" toml:"long"`
	Description string   `yaml:"description" toml:"description"`
	Kind        string   `yaml:"kind" toml:"kind"`
	Optional    bool     `yaml:"optional" toml:"optional"`
}

// Load reads and decodes the model file at path. The format is chosen by the file extension.
func Load(path string) (*cmdtree.Model, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read model file: %w", err)
	}
	model, err := Decode(data, format)
	if err != nil {
		return nil, fmt.Errorf("failed to load model file %s: %w", path, err)
	}
	return model, nil
}

// Decode decodes a model description and builds the model. Unknown keys are rejected.
func Decode(data []byte, format Format) (*cmdtree.Model, error) {
	var f File
	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("yaml parse error: %w", err)
		}
	case FormatTOML:
		md, err := toml.Decode(string(data), &f)
		if err != nil {
			return nil, fmt.Errorf("toml parse error: %w", err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("toml parse error: unknown key %q", undecoded[0].String())
		}
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
	return Build(&f)
}

// Build converts a decoded file into a validated model.
func Build(f *File) (*cmdtree.Model, error) {
	commands, err := buildCommands(f.Commands, nil)
	if err != nil {
		return nil, err
	}
	model := &cmdtree.Model{Commands: commands}
	if err := model.Validate(); err != nil {
		return nil, err
	}
	return model, nil
}

func buildCommands(decls []Command, path []string) ([]*cmdtree.Command, error) {
	commands := make([]*cmdtree.Command, 0, len(decls))
	for _, decl := range decls {
		current := append(append([]string(nil), path...), decl.Name)
		c := &cmdtree.Command{
			Name:        decl.Name,
			Aliases:     decl.Aliases,
			Description: decl.Description,
			IsDefault:   decl.Default,
			IsBranch:    decl.Branch,
		}
		for i, a := range decl.Arguments {
			arg, err := buildArgument(a, i)
			if err != nil {
				return nil, fmt.Errorf("command %q: %w", strings.Join(current, " "), err)
			}
			c.Parameters = append(c.Parameters, arg)
		}
		for _, o := range decl.Options {
			opt, err := buildOption(o)
			if err != nil {
				return nil, fmt.Errorf("command %q: %w", strings.Join(current, " "), err)
			}
			c.Parameters = append(c.Parameters, opt)
		}
		children, err := buildCommands(decl.Commands, current)
		if err != nil {
			return nil, err
		}
		if len(children) > 0 {
			c.Children = children
		}
		commands = append(commands, c)
	}
	return commands, nil
}

func buildArgument(decl Argument, index int) (*cmdtree.Argument, error) {
	arg := &cmdtree.Argument{
		Name:        decl.Name,
		Description: decl.Description,
		Position:    index,
	}
	if decl.Position != nil {
		arg.Position = *decl.Position
	}
	switch strings.ToLower(decl.Kind) {
	case "", "scalar":
		arg.Kind = cmdtree.ArgumentScalar
	case "vector":
		arg.Kind = cmdtree.ArgumentVector
	default:
		return nil, fmt.Errorf("argument %q has unknown kind %q: must be scalar or vector", decl.Name, decl.Kind)
	}
	return arg, nil
}

func buildOption(decl Option) (*cmdtree.Option, error) {
	opt := &cmdtree.Option{
		LongNames:       decl.Long,
		Description:     decl.Description,
		ValueIsOptional: decl.Optional,
	}
	for _, short := range decl.Short {
		if utf8.RuneCountInString(short) != 1 {
			return nil, fmt.Errorf("short option name %q must be a single character", short)
		}
		r, _ := utf8.DecodeRuneInString(short)
		opt.ShortNames = append(opt.ShortNames, r)
	}
	if len(opt.LongNames) == 0 && decl.Name != "" {
		opt.LongNames = []string{strcase.ToKebab(decl.Name)}
	}
	switch strings.ToLower(decl.Kind) {
	case "", "scalar":
		opt.Kind = cmdtree.OptionScalar
	case "flag":
		opt.Kind = cmdtree.OptionFlag
	case "vector":
		opt.Kind = cmdtree.OptionVector
	default:
		return nil, fmt.Errorf("option %q has unknown kind %q: must be flag, scalar or vector",
			opt.DisplayName(), decl.Kind)
	}
	return opt, nil
}
