package main

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/mfridman/cmdtree"
	"github.com/mfridman/cmdtree/pkg/textutil"
)

// usage describes the leaf of tree: its usage line, subcommands, arguments and options, with the
// options of the commands above it listed as global options. A nil tree describes the top level of
// the model.
func usage(model *cmdtree.Model, tree *cmdtree.CommandTree, width int) string {
	var b strings.Builder

	if tree == nil {
		b.WriteString("Usage:\n  <command> [options]\n\n")
		writeCommands(&b, model.Commands, width)
		b.WriteString("Use \"<command> --help\" for more information about a command.")
		return b.String()
	}

	leaf := tree.Leaf()
	command := leaf.Command
	path := strings.Join(tree.Path(), " ")

	if command.Description != "" {
		b.WriteString(command.Description)
		b.WriteString("\n\n")
	}

	var arguments []*cmdtree.Argument
	var options []*cmdtree.Option
	for _, p := range command.Parameters {
		switch p := p.(type) {
		case *cmdtree.Argument:
			arguments = append(arguments, p)
		case *cmdtree.Option:
			options = append(options, p)
		}
	}
	slices.SortFunc(arguments, func(a, b *cmdtree.Argument) int {
		return cmp.Compare(a.Position, b.Position)
	})

	line := path
	if len(options) > 0 {
		line += " [options]"
	}
	for _, a := range arguments {
		line += " " + argumentName(a)
	}
	if len(command.Children) > 0 {
		line += " <command>"
	}
	b.WriteString("Usage:\n  " + line + "\n\n")

	if len(command.Children) > 0 {
		writeCommands(&b, command.Children, width)
	}

	if len(arguments) > 0 {
		rows := make([][2]string, 0, len(arguments))
		for _, a := range arguments {
			rows = append(rows, [2]string{argumentName(a), a.Description})
		}
		b.WriteString("Arguments:\n")
		b.WriteString(textutil.Columns(rows, width))
		b.WriteString("\n")
	}

	if len(options) > 0 {
		b.WriteString("Options:\n")
		b.WriteString(textutil.Columns(optionRows(options), width))
		b.WriteString("\n")
	}

	var global []*cmdtree.Option
	for node := leaf.Parent(); node != nil; node = node.Parent() {
		for _, p := range node.Command.Parameters {
			if o, ok := p.(*cmdtree.Option); ok {
				global = append(global, o)
			}
		}
	}
	if len(global) > 0 {
		b.WriteString("Global Options:\n")
		b.WriteString(textutil.Columns(optionRows(global), width))
		b.WriteString("\n")
	}

	if len(command.Children) > 0 {
		fmt.Fprintf(&b, "Use \"%s [command] --help\" for more information about a command.\n", path)
	}

	return strings.TrimRight(b.String(), "\n")
}

func writeCommands(b *strings.Builder, commands []*cmdtree.Command, width int) {
	sorted := slices.Clone(commands)
	slices.SortFunc(sorted, func(a, b *cmdtree.Command) int {
		return cmp.Compare(a.Name, b.Name)
	})
	rows := make([][2]string, 0, len(sorted))
	for _, c := range sorted {
		name := c.Name
		if len(c.Aliases) > 0 {
			name += " (" + strings.Join(c.Aliases, ", ") + ")"
		}
		description := c.Description
		if c.IsDefault {
			description = strings.TrimSpace(description + " (default)")
		}
		rows = append(rows, [2]string{name, description})
	}
	b.WriteString("Available Commands:\n")
	b.WriteString(textutil.Columns(rows, width))
	b.WriteString("\n")
}

func argumentName(a *cmdtree.Argument) string {
	name := "<" + a.Name + ">"
	if a.Kind == cmdtree.ArgumentVector {
		name += "..."
	}
	return name
}

func optionRows(options []*cmdtree.Option) [][2]string {
	rows := make([][2]string, 0, len(options))
	for _, o := range options {
		var names []string
		for _, r := range o.ShortNames {
			names = append(names, "-"+string(r))
		}
		for _, long := range o.LongNames {
			names = append(names, "--"+long)
		}
		name := strings.Join(names, ", ")
		switch {
		case o.Kind == cmdtree.OptionFlag:
		case o.ValueIsOptional:
			name += " [value]"
		default:
			name += " <value>"
		}
		rows = append(rows, [2]string{name, o.Description})
	}
	return rows
}
