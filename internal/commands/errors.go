package commands

import "errors"

// ErrExitShell is returned by a command that asks the shell to terminate.
var ErrExitShell = errors.New("exit requested")
