package output

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
)

// Printer writes plain or styled text to a writer. It is safe for concurrent use.
type Printer struct {
	styleProvider StyleProvider
	writer        io.Writer
	mode          Mode

	mu sync.Mutex
}

// NewPrinter creates a Printer writing to os.Stdout unless configured otherwise.
func NewPrinter(options ...Option) *Printer {
	p := &Printer{
		writer: os.Stdout,
		mode:   ModeAuto,
	}
	for _, opt := range options {
		opt(p)
	}
	return p
}

// ForTerminal returns a printer on w that is styled unless plain is set.
func ForTerminal(w io.Writer, plain bool) *Printer {
	if plain {
		return NewPrinter(WithWriter(w), PlainText())
	}
	return NewPrinter(WithWriter(w), WithStyles(NewLipglossStyles()))
}

// Print outputs text as is.
func (p *Printer) Print(text string) {
	p.output(SemanticPlain, text, false)
}

// Println outputs text followed by a newline.
func (p *Printer) Println(text string) {
	p.output(SemanticPlain, text, true)
}

// Info outputs a notice line.
func (p *Printer) Info(text string) {
	p.output(SemanticInfo, text, true)
}

// Warning outputs a warning line.
func (p *Printer) Warning(text string) {
	p.output(SemanticWarning, text, true)
}

// Error outputs a diagnostic. Multi-line text is styled line by line.
func (p *Printer) Error(text string) {
	p.output(SemanticError, text, true)
}

// IsStylable reports whether the printer applies styles.
func (p *Printer) IsStylable() bool {
	return p.mode != ModePlain && p.styleProvider != nil && p.styleProvider.IsAvailable()
}

func (p *Printer) output(semantic SemanticType, text string, addNewline bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	result := text
	if p.IsStylable() && semantic != SemanticPlain {
		style := p.styleProvider.GetStyle(semantic)
		lines := strings.Split(text, "\n")
		for i, line := range lines {
			if line != "" {
				lines[i] = style.Render(line)
			}
		}
		result = strings.Join(lines, "\n")
	}
	if addNewline && !strings.HasSuffix(result, "\n") {
		result += "\n"
	}

	_, _ = fmt.Fprint(p.writer, result)
}
