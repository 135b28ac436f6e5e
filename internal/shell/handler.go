// Package shell provides the interactive shell loop and input processing for datashell.
// It reads raw lines through ishell, runs them through the executor and keeps the
// prompt in sync with the environment stack.
package shell

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/chzyer/readline"

	_ "datashell/internal/commands/builtin" // Import for side effects (init functions)

	"datashell/internal/commands"
	shellcontext "datashell/internal/context"
	"datashell/internal/execution"
	"datashell/internal/logger"
	"datashell/internal/output"
	"datashell/internal/services"
	"datashell/pkg/shelltypes"
)

// LineShell is the part of *ishell.Shell the interactive loop needs.
type LineShell interface {
	ReadLineErr() (string, error)
	SetPrompt(prompt string)
	ShowPrompt(show bool)
}

// InitializeServices sets up all required services for the datashell environment.
// Services already present in the registry are kept.
func InitializeServices(testMode bool) error {
	shellcontext.GetGlobalContext().SetTestMode(testMode)

	registry := services.GetGlobalRegistry()
	for _, service := range []shelltypes.Service{
		// configuration first; fetch reads its limits
		services.NewConfigurationService(),
		services.NewEnvironmentService(),
		services.NewFetchService(),
		services.NewFormatService(),
		services.NewRenderService(),
		services.NewMarkdownService(),
	} {
		if registry.HasService(service.Name()) {
			continue
		}
		if err := registry.RegisterService(service); err != nil {
			return err
		}
	}

	if err := registry.InitializeAll(); err != nil {
		return err
	}

	logger.Debug("Services initialized", "services", registry.GetAllServices())
	return nil
}

// Prompt returns the prompt for the current innermost frame.
func Prompt() string {
	name := "/"
	if envService, err := services.GetGlobalEnvironmentService(); err == nil {
		if env, err := envService.Environment(); err == nil {
			if frame, ok := env.Front(); ok {
				name = frame.Name()
			}
		}
	}
	return "dsh:" + name + "> "
}

// ExecuteInput runs one line and prints any diagnostic.
// It reports whether the shell should exit.
func ExecuteInput(ctx context.Context, sm *execution.StateMachine, printer *output.Printer, line string) bool {
	line = strings.TrimSpace(line)
	if line == "" {
		return false
	}

	_, err := sm.ExecuteLine(ctx, line)
	if err == nil {
		return false
	}
	if errors.Is(err, commands.ErrExitShell) {
		logger.Debug("Exit requested")
		return true
	}

	logger.Debug("Command failed", "input", line, "error", err)
	printer.Error(execution.FormatError(line, err))
	return false
}

// Run reads lines from sh until EOF or an exit command.
func Run(ctx context.Context, sh LineShell, sm *execution.StateMachine, printer *output.Printer) {
	sh.ShowPrompt(true)
	for {
		if ctx.Err() != nil {
			return
		}
		sh.SetPrompt(Prompt())

		line, err := sh.ReadLineErr()
		switch {
		case isInterrupt(err):
			continue
		case errors.Is(err, io.EOF):
			return
		case err != nil:
			logger.Error("Failed to read input", "error", err)
			printer.Warning("Input closed: " + err.Error())
			return
		}

		if ExecuteInput(ctx, sm, printer, line) {
			return
		}
	}
}

// isInterrupt matches Ctrl+C from chzyer/readline or a fork of it.
func isInterrupt(err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, readline.ErrInterrupt) || err.Error() == readline.ErrInterrupt.Error()
}
