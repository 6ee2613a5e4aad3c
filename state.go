package cmdtree

type parserState int

const (
	stateNormal parserState = iota
	// stateRemaining is entered once a "--" token has been consumed and is never left.
	stateRemaining
)

func (s parserState) String() string {
	switch s {
	case stateNormal:
		return "normal"
	case stateRemaining:
		return "remaining"
	default:
		return "unknown"
	}
}

// parserContext is the mutable state of a single parse. It is never shared between parses.
type parserContext struct {
	argPosition int
	state       parserState
	mode        ParsingMode
	remaining   *Parsed
}

func newParserContext(mode ParsingMode) *parserContext {
	return &parserContext{
		mode:      mode,
		remaining: newParsed(),
	}
}

func (c *parserContext) resetArgumentPosition() {
	c.argPosition = 0
}

func (c *parserContext) increaseArgumentPosition() {
	c.argPosition++
}

func (c *parserContext) enterRemaining() {
	c.state = stateRemaining
}

func (c *parserContext) addRemaining(name string, value Value) {
	c.remaining.add(name, value)
}
