package execution

import (
	"context"
	"fmt"
	"io"
	"os"

	"datashell/internal/commands"
	"datashell/internal/logger"
	"datashell/internal/parser"
	"datashell/internal/services"
	"datashell/pkg/shelltypes"
)

// StateMachine executes one input line at a time through well-defined states:
// Received, Parsing, Resolving, Binding, Executing, Applying, Completed.
type StateMachine struct {
	registry *commands.Registry
	config   Config
	out      io.Writer

	currentState State
	current      *execution
}

// NewStateMachine creates a state machine resolving commands from registry.
func NewStateMachine(registry *commands.Registry, config Config) *StateMachine {
	return &StateMachine{
		registry: registry,
		config:   config,
		out:      os.Stdout,
	}
}

// NewStateMachineWithDefaults creates a state machine over the global command registry.
func NewStateMachineWithDefaults() *StateMachine {
	return NewStateMachine(commands.GetGlobalRegistry(), DefaultConfig())
}

// SetOutput redirects rendered output and echoed commands.
func (sm *StateMachine) SetOutput(w io.Writer) {
	sm.out = w
}

// CurrentState returns the state the last execution stopped in.
func (sm *StateMachine) CurrentState() State {
	return sm.currentState
}

// ExecuteLine runs one input line and returns the values it emitted.
// Blank lines and %% comments do nothing.
func (sm *StateMachine) ExecuteLine(ctx context.Context, line string) ([]shelltypes.Value, error) {
	if parser.IsBlankOrComment(line) {
		sm.currentState = StateCompleted
		return nil, nil
	}

	sm.current = &execution{input: line}
	sm.currentState = StateReceived
	defer func() { sm.current = nil }()

	logger.Debug("State machine execution started", "input", line)

	for sm.currentState != StateCompleted {
		logger.Debug("State machine processing", "state", sm.currentState.String())

		if err := sm.processCurrentState(ctx); err != nil {
			sm.currentState = StateError
			logger.Debug("State machine execution failed", "error", err)
			return nil, err
		}
		sm.currentState = sm.nextState()
	}

	return sm.current.values, nil
}

func (sm *StateMachine) processCurrentState(ctx context.Context) error {
	switch sm.currentState {
	case StateReceived:
		return sm.processReceived()
	case StateParsing:
		return sm.processParsing()
	case StateResolving:
		return sm.processResolving()
	case StateBinding:
		return sm.processBinding()
	case StateExecuting:
		return sm.processExecuting(ctx)
	case StateApplying:
		return sm.processApplying()
	default:
		return fmt.Errorf("unknown state: %s", sm.currentState.String())
	}
}

func (sm *StateMachine) nextState() State {
	switch sm.currentState {
	case StateReceived:
		return StateParsing
	case StateParsing:
		return StateResolving
	case StateResolving:
		return StateBinding
	case StateBinding:
		return StateExecuting
	case StateExecuting:
		return StateApplying
	case StateApplying:
		return StateCompleted
	default:
		return StateError
	}
}

func (sm *StateMachine) processReceived() error {
	if sm.config.EchoCommands {
		if _, err := fmt.Fprintf(sm.out, "%%%%> %s\n", sm.current.input); err != nil {
			return err
		}
	}
	return nil
}

func (sm *StateMachine) processParsing() error {
	cmd, err := parser.ParseCommand(sm.current.input)
	if err != nil {
		return err
	}
	sm.current.parsed = cmd
	logger.Debug("Command parsed successfully", "name", cmd.Name, "args", len(cmd.Args), "options", len(cmd.Options))
	return nil
}

func (sm *StateMachine) processResolving() error {
	parsed := sm.current.parsed
	cmd, ok := sm.registry.Get(parsed.Name)
	if !ok {
		return shelltypes.NewLabeledError(shelltypes.ErrorUnknownCommand,
			fmt.Sprintf("Unknown command: %s", parsed.Name), "command not found", parsed.NameSpan)
	}
	sm.current.command = cmd
	return nil
}

func (sm *StateMachine) processBinding() error {
	envService, err := services.GetGlobalEnvironmentService()
	if err != nil {
		return err
	}
	env, err := envService.Environment()
	if err != nil {
		return err
	}

	args, err := bindArgs(sm.current.parsed, sm.current.command.Config(), env)
	if err != nil {
		return err
	}
	sm.current.args = args
	return nil
}

func (sm *StateMachine) processExecuting(ctx context.Context) error {
	cmd := sm.current.command
	var flags []string
	for _, entry := range sm.current.args.Named.Entries() {
		flags = append(flags, entry.Name)
	}
	logger.CommandExecution(cmd.Name(), sm.current.args.Len(), flags)

	output, err := cmd.Run(ctx, sm.current.args)
	if err != nil {
		return err
	}
	sm.current.output = output
	return nil
}

// processApplying emits values and enters contexts in action order.
func (sm *StateMachine) processApplying() error {
	for _, action := range sm.current.output {
		switch action.Kind() {
		case shelltypes.ActionEmitValue:
			sm.current.values = append(sm.current.values, action.Value())
		case shelltypes.ActionEnterContext:
			if err := sm.enter(action.Value()); err != nil {
				return err
			}
		default:
			return fmt.Errorf("unsupported action: %s", action.Kind().String())
		}

		if err := sm.render(action.Value()); err != nil {
			return err
		}
	}
	return nil
}

// enter pushes value as a new context named after the command's first argument.
func (sm *StateMachine) enter(value shelltypes.Value) error {
	envService, err := services.GetGlobalEnvironmentService()
	if err != nil {
		return err
	}

	source := sm.current.command.Name()
	if first, ok := sm.current.args.Nth(0); ok {
		source = first.Item.Display()
	}
	if err := envService.Enter(value, source); err != nil {
		return err
	}
	logger.Debug("Entered context", "source", source, "kind", value.TypeName())
	return nil
}

func (sm *StateMachine) render(value shelltypes.Value) error {
	if !sm.config.RenderOutput {
		return nil
	}

	renderService, err := services.GetGlobalRenderService()
	if err != nil {
		return err
	}
	text, err := renderService.Render(value)
	if err != nil {
		return err
	}
	if text == "" {
		return nil
	}
	_, err = fmt.Fprintln(sm.out, text)
	return err
}
