package cmdtree

import (
	"bytes"
	"encoding/json"
	"slices"

	orderedmap "github.com/wk8/go-ordered-map"
)

// Value is a string that may be absent, such as the value of an option written without one.
type Value struct {
	String string
	Valid  bool
}

// ValueOf returns a present Value holding s.
func ValueOf(s string) Value {
	return Value{String: s, Valid: true}
}

// MarshalJSON encodes an absent value as null.
func (v Value) MarshalJSON() ([]byte, error) {
	if !v.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(v.String)
}

// Parsed is an insertion-ordered multimap of option names to the values captured for them.
type Parsed struct {
	m *orderedmap.OrderedMap
}

func newParsed() *Parsed {
	return &Parsed{m: orderedmap.New()}
}

func (p *Parsed) add(name string, value Value) {
	values := p.Get(name)
	p.m.Set(name, append(values, value))
}

// Get returns the values captured for name in the order they appeared.
func (p *Parsed) Get(name string) []Value {
	if p == nil {
		return nil
	}
	v, ok := p.m.Get(name)
	if !ok {
		return nil
	}
	return slices.Clone(v.([]Value))
}

// Has reports whether anything was captured for name.
func (p *Parsed) Has(name string) bool {
	if p == nil {
		return false
	}
	_, ok := p.m.Get(name)
	return ok
}

// Keys returns the captured names in the order they first appeared.
func (p *Parsed) Keys() []string {
	if p == nil {
		return nil
	}
	keys := make([]string, 0, p.m.Len())
	for pair := p.m.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key.(string))
	}
	return keys
}

// Len returns the number of distinct names.
func (p *Parsed) Len() int {
	if p == nil {
		return 0
	}
	return p.m.Len()
}

// MarshalJSON encodes the multimap as an object, keeping the order of the names.
func (p *Parsed) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range p.Keys() {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(p.Get(key))
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// RemainingArguments holds what could not be bound to a declared parameter.
type RemainingArguments struct {
	// Raw is the verbatim text of every argument after the first "--".
	Raw []string `json:"raw"`
	// Parsed holds options that were not bound: every option after "--", and undeclared options in
	// [Relaxed] mode.
	Parsed *Parsed `json:"parsed"`
}

// Result is the outcome of a successful parse.
type Result struct {
	// Tree is the resolved command path. It is nil when help was requested before any command, or
	// when there were no arguments and the model has no default command.
	Tree      *CommandTree
	Remaining RemainingArguments
}

// HelpRequested reports whether the caller should show help instead of running a command.
func (r *Result) HelpRequested() bool {
	if r.Tree == nil {
		return true
	}
	for node := r.Tree; node != nil; node = node.Next {
		if node.ShowHelp {
			return true
		}
	}
	return false
}
