package context

import (
	"sync"
)

// globalContext holds the singleton instance of the global context
var globalContext *ShellContext

// globalContextMu protects access to the global context instance
var globalContextMu sync.RWMutex

// GetGlobalContext returns the global context, creating it on first use.
func GetGlobalContext() *ShellContext {
	globalContextMu.RLock()
	ctx := globalContext
	globalContextMu.RUnlock()
	if ctx != nil {
		return ctx
	}

	globalContextMu.Lock()
	defer globalContextMu.Unlock()
	if globalContext == nil {
		globalContext = New()
	}
	return globalContext
}

// SetGlobalContext sets the global context instance in a thread-safe manner.
// This is useful for testing or when you need to replace the global context.
func SetGlobalContext(ctx *ShellContext) {
	globalContextMu.Lock()
	defer globalContextMu.Unlock()
	globalContext = ctx
}

// ResetGlobalContext clears the global context so the next GetGlobalContext creates a fresh one.
func ResetGlobalContext() {
	globalContextMu.Lock()
	defer globalContextMu.Unlock()
	globalContext = nil
}
