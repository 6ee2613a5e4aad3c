package cmdtree

// MappedParameter is a parameter bound to a value from the command line. Vector parameters appear
// once per value.
type MappedParameter struct {
	Parameter Parameter
	Value     Value
}

// CommandTree is one node of the resolved command path. Each node owns the next node of the path;
// siblings in the model that were not invoked are never materialized.
//
// Every parameter of Command appears exactly once across Mapped (by parameter) and Unmapped.
type CommandTree struct {
	Command  *Command
	Next     *CommandTree
	Mapped   []MappedParameter
	Unmapped []Parameter
	ShowHelp bool

	parent *CommandTree
}

func newCommandTree(parent *CommandTree, command *Command) *CommandTree {
	return &CommandTree{
		Command: command,
		parent:  parent,
	}
}

// Parent returns the node that invoked this one, or nil for the first node of the path.
func (t *CommandTree) Parent() *CommandTree {
	return t.parent
}

// Leaf returns the last node of the path, the command that would be executed.
func (t *CommandTree) Leaf() *CommandTree {
	node := t
	for node.Next != nil {
		node = node.Next
	}
	return node
}

// Path returns the command names from this node to the leaf.
func (t *CommandTree) Path() []string {
	var names []string
	for node := t; node != nil; node = node.Next {
		names = append(names, node.Command.Name)
	}
	return names
}

// Values returns the values bound to p on this node, in command-line order.
func (t *CommandTree) Values(p Parameter) []Value {
	var values []Value
	for _, m := range t.Mapped {
		if m.Parameter == p {
			values = append(values, m.Value)
		}
	}
	return values
}

// IsMapped reports whether p received at least one value on this node.
func (t *CommandTree) IsMapped(p Parameter) bool {
	for _, m := range t.Mapped {
		if m.Parameter == p {
			return true
		}
	}
	return false
}

// Lookup finds a parameter by argument name or by any short or long option name and returns its
// values. It searches this node first and then its parents, so a leaf can read options given to
// the branches above it. The second result is false if no node on the way declares the name.
func (t *CommandTree) Lookup(name string) ([]Value, bool) {
	for node := t; node != nil; node = node.parent {
		for _, p := range node.Command.Parameters {
			if parameterHasName(p, name) {
				return node.Values(p), true
			}
		}
	}
	return nil, false
}

func parameterHasName(p Parameter, name string) bool {
	switch p := p.(type) {
	case *Argument:
		return p.Name == name
	case *Option:
		return p.hasShortName(name) || p.hasLongName(name, CaseSensitive)
	}
	return false
}

func (t *CommandTree) mapValue(p Parameter, value Value) {
	t.Mapped = append(t.Mapped, MappedParameter{Parameter: p, Value: value})
}

// collectUnmapped records every parameter that received no value.
func (t *CommandTree) collectUnmapped() {
	t.Unmapped = t.Unmapped[:0]
	for _, p := range t.Command.Parameters {
		if !t.IsMapped(p) {
			t.Unmapped = append(t.Unmapped, p)
		}
	}
}
