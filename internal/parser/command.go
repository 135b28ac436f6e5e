// Package parser turns a datashell input line into a command name, bracket
// options and positional arguments, keeping the byte span of every piece so
// errors can point back into the line.
package parser

import (
	"fmt"
	"strings"

	"datashell/pkg/shelltypes"
)

// CommentPrefix starts a comment line.
const CommentPrefix = "%%"

// Option is one entry of the bracket list: a bare flag or key=value.
type Option struct {
	Name     string
	Value    string
	HasValue bool
	Span     shelltypes.Span
}

// Arg is one positional argument. Quoted args keep their text verbatim.
type Arg struct {
	Text   string
	Quoted bool
	Span   shelltypes.Span
}

// Command is a parsed input line.
type Command struct {
	Name     string
	NameSpan shelltypes.Span
	Options  []Option
	Args     []Arg
}

// IsBlankOrComment reports whether line holds no command.
func IsBlankOrComment(line string) bool {
	trimmed := strings.TrimSpace(line)
	return trimmed == "" || strings.HasPrefix(trimmed, CommentPrefix)
}

// ParseCommand parses `\name[flag, key=value] arg "quoted arg"`.
// Spans are byte offsets into input.
func ParseCommand(input string) (*Command, error) {
	p := &scanner{input: input}
	p.skipSpace()

	if p.done() {
		return nil, syntaxError("empty command", "expected a command", shelltypes.NewSpan(0, len(input)))
	}
	if p.peek() != '\\' {
		return nil, syntaxError("command must start with '\\'", "expected '\\'", shelltypes.NewSpan(p.pos, p.pos+1))
	}

	start := p.pos
	p.pos++
	for !p.done() && isNameChar(p.peek()) {
		p.pos++
	}
	if p.pos == start+1 {
		return nil, syntaxError("missing command name", "expected a command name", shelltypes.NewSpan(start, start+1))
	}

	cmd := &Command{
		Name:     input[start+1 : p.pos],
		NameSpan: shelltypes.NewSpan(start, p.pos),
	}

	if !p.done() && p.peek() == '[' {
		options, err := p.options()
		if err != nil {
			return nil, err
		}
		cmd.Options = options
	}

	if !p.done() && !isSpace(p.peek()) {
		return nil, syntaxError("unexpected character after command name", "unexpected character", shelltypes.NewSpan(p.pos, p.pos+1))
	}

	for {
		p.skipSpace()
		if p.done() {
			break
		}
		arg, err := p.arg()
		if err != nil {
			return nil, err
		}
		cmd.Args = append(cmd.Args, arg)
	}

	return cmd, nil
}

// Option returns the first option named name.
func (c *Command) Option(name string) (Option, bool) {
	for _, option := range c.Options {
		if option.Name == name {
			return option, true
		}
	}
	return Option{}, false
}

// String renders the command back into input syntax.
func (c *Command) String() string {
	var b strings.Builder
	b.WriteString("\\")
	b.WriteString(c.Name)
	if len(c.Options) > 0 {
		b.WriteString("[")
		for i, option := range c.Options {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(option.Name)
			if option.HasValue {
				fmt.Fprintf(&b, "=%q", option.Value)
			}
		}
		b.WriteString("]")
	}
	for _, arg := range c.Args {
		b.WriteString(" ")
		if arg.Quoted {
			fmt.Fprintf(&b, "%q", arg.Text)
		} else {
			b.WriteString(arg.Text)
		}
	}
	return b.String()
}

type scanner struct {
	input string
	pos   int
}

func (s *scanner) done() bool { return s.pos >= len(s.input) }

func (s *scanner) peek() byte { return s.input[s.pos] }

func (s *scanner) skipSpace() {
	for !s.done() && isSpace(s.peek()) {
		s.pos++
	}
}

// options parses a bracket list starting at '['.
func (s *scanner) options() ([]Option, error) {
	open := s.pos
	s.pos++

	var options []Option
	for {
		s.skipSpace()
		if s.done() {
			return nil, syntaxError("unterminated option list", "missing ']'", shelltypes.NewSpan(open, len(s.input)))
		}

		switch s.peek() {
		case ']':
			s.pos++
			return options, nil
		case ',':
			s.pos++
			continue
		}

		option, err := s.option()
		if err != nil {
			return nil, err
		}
		options = append(options, option)

		s.skipSpace()
		if !s.done() && s.peek() != ',' && s.peek() != ']' {
			return nil, syntaxError("expected ',' or ']' in option list", "unexpected character", shelltypes.NewSpan(s.pos, s.pos+1))
		}
	}
}

func (s *scanner) option() (Option, error) {
	start := s.pos
	for !s.done() && isNameChar(s.peek()) {
		s.pos++
	}
	if s.pos == start {
		return Option{}, syntaxError("invalid option name", "expected an option name", shelltypes.NewSpan(start, start+1))
	}
	option := Option{Name: s.input[start:s.pos]}

	s.skipSpace()
	if !s.done() && s.peek() == '=' {
		s.pos++
		s.skipSpace()
		value, err := s.optionValue()
		if err != nil {
			return Option{}, err
		}
		option.Value = value
		option.HasValue = true
	}

	option.Span = shelltypes.NewSpan(start, s.pos)
	return option, nil
}

func (s *scanner) optionValue() (string, error) {
	if !s.done() && isQuote(s.peek()) {
		return s.quoted()
	}
	start := s.pos
	for !s.done() && s.peek() != ',' && s.peek() != ']' {
		s.pos++
	}
	return strings.TrimSpace(s.input[start:s.pos]), nil
}

func (s *scanner) arg() (Arg, error) {
	start := s.pos
	if isQuote(s.peek()) {
		text, err := s.quoted()
		if err != nil {
			return Arg{}, err
		}
		return Arg{Text: text, Quoted: true, Span: shelltypes.NewSpan(start, s.pos)}, nil
	}

	for !s.done() && !isSpace(s.peek()) {
		s.pos++
	}
	return Arg{Text: s.input[start:s.pos], Span: shelltypes.NewSpan(start, s.pos)}, nil
}

// quoted reads a single or double quoted string. Inside double quotes a
// backslash escapes the next byte.
func (s *scanner) quoted() (string, error) {
	open := s.pos
	quote := s.peek()
	s.pos++

	var b strings.Builder
	for !s.done() {
		c := s.peek()
		switch {
		case c == quote:
			s.pos++
			return b.String(), nil
		case c == '\\' && quote == '"' && s.pos+1 < len(s.input):
			b.WriteByte(s.input[s.pos+1])
			s.pos += 2
		default:
			b.WriteByte(c)
			s.pos++
		}
	}
	return "", syntaxError("unterminated string", fmt.Sprintf("missing closing %c", quote), shelltypes.NewSpan(open, len(s.input)))
}

func isSpace(c byte) bool { return c == ' ' || c == '\t' || c == '\n' || c == '\r' }

func isQuote(c byte) bool { return c == '"' || c == '\'' }

func isNameChar(c byte) bool {
	return c == '_' || c == '-' || c == '.' ||
		(c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

func syntaxError(message, label string, span shelltypes.Span) error {
	return shelltypes.NewLabeledError(shelltypes.ErrorSyntax, message, label, span)
}
