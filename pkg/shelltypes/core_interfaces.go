// Package shelltypes defines core architectural interfaces for datashell.
// This file contains the interfaces that connect commands, services and the
// shell state: commands, services, the environment stack and the fetch/parse
// collaborators used by the data commands.
package shelltypes

import "context"

// Command defines the interface that all datashell commands implement.
// A command reads its bound arguments and returns the actions the executor should apply.
type Command interface {
	Name() string
	Config() CommandConfig
	Description() string
	Usage() string
	HelpInfo() HelpInfo
	Run(ctx context.Context, args *CommandArgs) (OutputStream, error)
}

// Service defines the interface for datashell services that provide specific functionality.
// Services are initialized at startup and can be accessed by commands during execution.
type Service interface {
	Name() string
	Initialize() error
}

// Frame is one entry of the environment stack.
type Frame interface {
	// ID uniquely identifies the frame for its lifetime.
	ID() string
	// Name is the short label shown in prompts and \shells.
	Name() string
	// Path is the directory relative identifiers resolve against.
	Path() string
	// Value returns the entered value for value frames.
	Value() (Value, bool)
}

// Environment is the shared, lock-protected stack of working contexts.
// The front frame is the innermost (most recently entered) one.
type Environment interface {
	CurrentPath() (string, error)
	Front() (Frame, bool)
	Push(frame Frame)
	Pop() (Frame, bool)
	Frames() []Frame
	Depth() int
}

// FetchedContent is what a Fetcher returns for an identifier.
type FetchedContent struct {
	// Extension is the best guess at the content's format, without a leading dot.
	Extension string
	// Content is a String for text sources and an already decoded value otherwise.
	Content Value
	// Span attributes the content to the part of the input that named it.
	Span Span
}

// Fetcher resolves an identifier (a local path or URL) to raw content.
type Fetcher interface {
	Fetch(ctx context.Context, cwd string, identifier string, span Span) (FetchedContent, error)
}

// Parser parses text in the given format into a structured value.
type Parser interface {
	Parse(ctx context.Context, format Format, content string, contentSpan Span, nameSpan Span) (Value, error)
}
