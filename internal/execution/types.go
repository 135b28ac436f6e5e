// Package execution runs datashell input lines: it parses a line, resolves the
// command, binds its arguments and applies the actions the command returns.
package execution

import (
	"datashell/internal/parser"
	"datashell/pkg/shelltypes"
)

// State represents the current state of command execution in the state machine.
type State int

const (
	// StateReceived - input line received and ready for processing
	StateReceived State = iota
	// StateParsing - splitting the line into name, options and arguments
	StateParsing
	// StateResolving - looking the command up in the registry
	StateResolving
	// StateBinding - turning parsed arguments into spanned values
	StateBinding
	// StateExecuting - running the command
	StateExecuting
	// StateApplying - applying the returned actions to the environment and output
	StateApplying
	// StateCompleted - execution finished successfully
	StateCompleted
	// StateError - execution failed with an error
	StateError
)

// String returns a human-readable representation of the execution state.
func (s State) String() string {
	switch s {
	case StateReceived:
		return "Received"
	case StateParsing:
		return "Parsing"
	case StateResolving:
		return "Resolving"
	case StateBinding:
		return "Binding"
	case StateExecuting:
		return "Executing"
	case StateApplying:
		return "Applying"
	case StateCompleted:
		return "Completed"
	case StateError:
		return "Error"
	default:
		return "Unknown"
	}
}

// execution holds the data of one line as it moves through the states.
type execution struct {
	input   string
	parsed  *parser.Command
	command shelltypes.Command
	args    *shelltypes.CommandArgs
	output  shelltypes.OutputStream
	values  []shelltypes.Value
}

// Config holds configuration options for the state machine.
type Config struct {
	// EchoCommands writes each executed line with a %%> prefix before running it
	EchoCommands bool
	// RenderOutput writes emitted and entered values with the render service
	RenderOutput bool
}

// DefaultConfig returns the configuration used by the interactive shell.
func DefaultConfig() Config {
	return Config{
		EchoCommands: false,
		RenderOutput: true,
	}
}
