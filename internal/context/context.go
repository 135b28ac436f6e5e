// Package context provides the shell state for datashell: the environment
// stack of working contexts and the layered configuration map.
package context

import (
	"os"
	"sync"

	"datashell/pkg/shelltypes"
)

// ShellContext holds the state shared by every command in a shell session.
type ShellContext struct {
	testMode bool
	mu       sync.RWMutex // protects testMode

	environmentCtx   EnvironmentSubcontext
	configurationCtx ConfigurationSubcontext
}

// New creates a ShellContext rooted at the process working directory.
func New() *ShellContext {
	root, err := os.Getwd()
	if err != nil {
		root = string(os.PathSeparator)
	}
	return NewWithRoot(root)
}

// NewWithRoot creates a ShellContext whose root frame is the given directory.
func NewWithRoot(root string) *ShellContext {
	ctx := &ShellContext{
		environmentCtx:   NewEnvironmentSubcontext(NewFilesystemFrame(root)),
		configurationCtx: NewConfigurationSubcontext(),
	}
	ctx.configurationCtx.SetParentContext(ctx)
	return ctx
}

// Environment returns the shared environment handle passed to commands.
func (ctx *ShellContext) Environment() shelltypes.Environment {
	return ctx.environmentCtx
}

// ResetEnvironment replaces the stack with a single filesystem frame at root.
func (ctx *ShellContext) ResetEnvironment(root string) {
	ctx.environmentCtx.Reset(NewFilesystemFrame(root))
}

// Configuration returns the configuration subcontext.
func (ctx *ShellContext) Configuration() ConfigurationSubcontext {
	return ctx.configurationCtx
}

// SetTestMode enables deterministic behaviour for tests.
func (ctx *ShellContext) SetTestMode(testMode bool) {
	ctx.mu.Lock()
	defer ctx.mu.Unlock()
	ctx.testMode = testMode
}

// IsTestMode reports whether test mode is enabled.
func (ctx *ShellContext) IsTestMode() bool {
	ctx.mu.RLock()
	defer ctx.mu.RUnlock()
	return ctx.testMode
}
