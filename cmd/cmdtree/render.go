package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/term"

	"github.com/mfridman/cmdtree"
	"github.com/mfridman/cmdtree/pkg/textutil"
)

const defaultWidth = 80

type outputFormat int

const (
	formatText outputFormat = iota
	formatJSON
)

// resolveFormat picks the output format. The auto format writes text to a terminal and JSON
// anywhere else.
func resolveFormat(name string, w io.Writer) (outputFormat, error) {
	switch strings.ToLower(name) {
	case "text":
		return formatText, nil
	case "json":
		return formatJSON, nil
	case "auto", "":
		if isTerminal(w) {
			return formatText, nil
		}
		return formatJSON, nil
	default:
		return 0, fmt.Errorf("invalid -format %q: must be auto, text or json", name)
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func terminalWidth(w io.Writer) int {
	if !isTerminal(w) {
		return defaultWidth
	}
	width, _, err := term.GetSize(int(w.(*os.File).Fd()))
	if err != nil || width <= 0 {
		return defaultWidth
	}
	return width
}

type jsonResult struct {
	Help      bool                       `json:"help"`
	Commands  []jsonCommand              `json:"commands"`
	Remaining cmdtree.RemainingArguments `json:"remaining"`
}

type jsonCommand struct {
	Name     string      `json:"name"`
	Mapped   []jsonValue `json:"mapped"`
	Unmapped []string    `json:"unmapped"`
	ShowHelp bool        `json:"show_help,omitempty"`
}

type jsonValue struct {
	Name  string        `json:"name"`
	Value cmdtree.Value `json:"value"`
}

func writeJSON(w io.Writer, res *cmdtree.Result) error {
	out := jsonResult{
		Help:      res.HelpRequested(),
		Commands:  []jsonCommand{},
		Remaining: res.Remaining,
	}
	for node := res.Tree; node != nil; node = node.Next {
		c := jsonCommand{
			Name:     node.Command.Name,
			Mapped:   []jsonValue{},
			Unmapped: []string{},
			ShowHelp: node.ShowHelp,
		}
		for _, m := range node.Mapped {
			c.Mapped = append(c.Mapped, jsonValue{Name: parameterName(m.Parameter), Value: m.Value})
		}
		for _, p := range node.Unmapped {
			c.Unmapped = append(c.Unmapped, parameterName(p))
		}
		out.Commands = append(out.Commands, c)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func writeText(w io.Writer, res *cmdtree.Result, width int) error {
	var b strings.Builder
	fmt.Fprintf(&b, "Command: %s\n", strings.Join(res.Tree.Path(), " "))
	for node := res.Tree; node != nil; node = node.Next {
		fmt.Fprintf(&b, "\n%s:\n", node.Command.Name)
		var rows [][2]string
		for _, m := range node.Mapped {
			rows = append(rows, [2]string{parameterName(m.Parameter), formatValue(m.Value)})
		}
		for _, p := range node.Unmapped {
			rows = append(rows, [2]string{parameterName(p), "(unmapped)"})
		}
		if len(rows) == 0 {
			b.WriteString("  (no parameters)\n")
			continue
		}
		b.WriteString(textutil.Columns(rows, width))
	}

	remaining := res.Remaining
	if len(remaining.Raw) > 0 || remaining.Parsed.Len() > 0 {
		b.WriteString("\nRemaining:\n")
		var rows [][2]string
		if len(remaining.Raw) > 0 {
			rows = append(rows, [2]string{"raw", strings.Join(remaining.Raw, " ")})
		}
		for _, key := range remaining.Parsed.Keys() {
			var values []string
			for _, v := range remaining.Parsed.Get(key) {
				values = append(values, formatValue(v))
			}
			rows = append(rows, [2]string{key, strings.Join(values, " ")})
		}
		b.WriteString(textutil.Columns(rows, width))
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func parameterName(p cmdtree.Parameter) string {
	switch p := p.(type) {
	case *cmdtree.Argument:
		return "<" + p.Name + ">"
	case *cmdtree.Option:
		if len(p.LongNames) > 0 {
			return "--" + p.LongNames[0]
		}
		return "-" + p.DisplayName()
	}
	return p.DisplayName()
}

func formatValue(v cmdtree.Value) string {
	if !v.Valid {
		return "(no value)"
	}
	return strconv.Quote(v.String)
}

// printError writes err to w. Parse failures also show the command line with the offending token
// underlined, followed by any suggestions.
func printError(w io.Writer, err error) {
	fmt.Fprintf(w, "error: %v\n", err)

	var perr *cmdtree.Error
	if !errors.As(err, &perr) || perr.Input == "" || perr.Position < 0 {
		return
	}
	fmt.Fprintf(w, "  %s\n", perr.Input)
	fmt.Fprintf(w, "  %s\n", textutil.Underline(perr.Position, utf8.RuneCountInString(perr.Token)))
	if len(perr.Suggestions) == 0 {
		return
	}
	quoted := make([]string, 0, len(perr.Suggestions))
	for _, s := range perr.Suggestions {
		quoted = append(quoted, strconv.Quote(s))
	}
	for _, line := range textutil.Wrap("Did you mean "+strings.Join(quoted, ", ")+"?", defaultWidth-2) {
		fmt.Fprintf(w, "  %s\n", line)
	}
}
