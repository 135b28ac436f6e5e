// Package orchestration coordinates multi-line workflows on top of the
// single-line executor, such as running .dsh scripts in batch mode.
package orchestration

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"

	"datashell/internal/commands"
	"datashell/internal/execution"
	"datashell/internal/logger"
	"datashell/internal/parser"
)

// ScriptExtension is the file extension of datashell scripts.
const ScriptExtension = ".dsh"

// ScriptError reports the script line that failed.
type ScriptError struct {
	Path  string
	Line  int
	Input string
	Err   error
}

// Error implements the error interface.
func (e *ScriptError) Error() string {
	return fmt.Sprintf("%s:%d: %v", e.Path, e.Line, e.Err)
}

// Unwrap returns the error of the failing command.
func (e *ScriptError) Unwrap() error {
	return e.Err
}

// Diagnostic renders the failing line with a caret underline.
func (e *ScriptError) Diagnostic() string {
	return fmt.Sprintf("%s:%d\n%s", e.Path, e.Line, execution.FormatError(e.Input, e.Err))
}

// ExecuteScript runs a script with a default state machine over the global registry.
func ExecuteScript(ctx context.Context, scriptPath string) error {
	return ExecuteScriptWith(ctx, scriptPath, execution.NewStateMachineWithDefaults())
}

// ExecuteScriptWith runs every line of scriptPath through sm, skipping blank
// lines and %% comments. It stops at the first failing line, or successfully
// when a command asks the shell to exit.
func ExecuteScriptWith(ctx context.Context, scriptPath string, sm *execution.StateMachine) error {
	logger.Debug("Starting script execution", "script", scriptPath)

	file, err := os.Open(scriptPath)
	if err != nil {
		return fmt.Errorf("failed to open script: %w", err)
	}
	defer func() {
		_ = file.Close()
	}()

	scanner := bufio.NewScanner(file)
	lineNumber := 0
	commandCount := 0
	for scanner.Scan() {
		lineNumber++
		line := scanner.Text()
		if parser.IsBlankOrComment(line) {
			continue
		}

		if err := ctx.Err(); err != nil {
			return err
		}

		commandCount++
		logger.Debug("Executing command", "number", commandCount, "line", lineNumber)

		if _, err := sm.ExecuteLine(ctx, line); err != nil {
			if errors.Is(err, commands.ErrExitShell) {
				logger.Debug("Script requested exit", "line", lineNumber)
				break
			}
			return &ScriptError{Path: scriptPath, Line: lineNumber, Input: line, Err: err}
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read script: %w", err)
	}

	logger.Info("Script execution completed successfully", "script", scriptPath, "commands_executed", commandCount)
	return nil
}
