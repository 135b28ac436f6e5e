package context

import (
	"errors"
	"path/filepath"
	"sync"

	"github.com/google/uuid"

	"datashell/pkg/shelltypes"
)

// ErrEmptyEnvironment is returned when the environment stack has no frames.
var ErrEmptyEnvironment = errors.New("environment stack is empty")

// FilesystemFrame is a working context rooted at a directory on disk.
type FilesystemFrame struct {
	id   string
	path string
}

// NewFilesystemFrame creates a frame for the given directory.
func NewFilesystemFrame(path string) *FilesystemFrame {
	return &FilesystemFrame{id: uuid.NewString(), path: filepath.Clean(path)}
}

// ID returns the frame identifier.
func (f *FilesystemFrame) ID() string { return f.id }

// Name returns the directory path.
func (f *FilesystemFrame) Name() string { return f.path }

// Path returns the directory path.
func (f *FilesystemFrame) Path() string { return f.path }

// Value returns false; filesystem frames carry no value.
func (f *FilesystemFrame) Value() (shelltypes.Value, bool) { return shelltypes.Value{}, false }

// ValueFrame is a working context created by entering a structured value.
// Its Path is the directory it was entered from, so relative identifiers keep
// resolving against the filesystem.
type ValueFrame struct {
	id     string
	source string
	path   string
	value  shelltypes.Value
}

// NewValueFrame creates a frame for a value read from source while the working directory was path.
func NewValueFrame(value shelltypes.Value, source string, path string) *ValueFrame {
	return &ValueFrame{id: uuid.NewString(), source: source, path: path, value: value}
}

// ID returns the frame identifier.
func (f *ValueFrame) ID() string { return f.id }

// Name returns the identifier the value was read from.
func (f *ValueFrame) Name() string { return f.source }

// Path returns the directory the value was entered from.
func (f *ValueFrame) Path() string { return f.path }

// Value returns the entered value.
func (f *ValueFrame) Value() (shelltypes.Value, bool) { return f.value, true }

// EnvironmentSubcontext is the lock-protected stack of working contexts.
// The bottom frame is the root and is never popped.
type EnvironmentSubcontext interface {
	shelltypes.Environment
	Reset(root shelltypes.Frame)
}

// environmentSubcontext implements the EnvironmentSubcontext interface.
type environmentSubcontext struct {
	frames []shelltypes.Frame // innermost frame last
	mu     sync.Mutex
}

// NewEnvironmentSubcontext creates an environment with root as its only frame.
func NewEnvironmentSubcontext(root shelltypes.Frame) EnvironmentSubcontext {
	return &environmentSubcontext{frames: []shelltypes.Frame{root}}
}

// NewEnvironmentSubcontextFromContext returns the environment of an existing ShellContext.
func NewEnvironmentSubcontextFromContext(ctx *ShellContext) EnvironmentSubcontext {
	return ctx.environmentCtx
}

// CurrentPath copies the innermost frame's path out under the lock.
func (e *environmentSubcontext) CurrentPath() (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if len(e.frames) == 0 {
		return "", ErrEmptyEnvironment
	}
	return e.frames[len(e.frames)-1].Path(), nil
}

// Front returns the innermost frame.
func (e *environmentSubcontext) Front() (shelltypes.Frame, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if len(e.frames) == 0 {
		return nil, false
	}
	return e.frames[len(e.frames)-1], true
}

// Push makes frame the innermost context.
func (e *environmentSubcontext) Push(frame shelltypes.Frame) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.frames = append(e.frames, frame)
}

// Pop removes the innermost frame. The root frame is never removed.
func (e *environmentSubcontext) Pop() (shelltypes.Frame, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if len(e.frames) <= 1 {
		return nil, false
	}
	last := len(e.frames) - 1
	frame := e.frames[last]
	e.frames = e.frames[:last]
	return frame, true
}

// Frames returns a copy of the stack, innermost first.
func (e *environmentSubcontext) Frames() []shelltypes.Frame {
	e.mu.Lock()
	defer e.mu.Unlock()

	result := make([]shelltypes.Frame, len(e.frames))
	for i, frame := range e.frames {
		result[len(e.frames)-1-i] = frame
	}
	return result
}

// Depth returns the number of frames including the root.
func (e *environmentSubcontext) Depth() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.frames)
}

// Reset drops every frame and installs a new root.
func (e *environmentSubcontext) Reset(root shelltypes.Frame) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.frames = []shelltypes.Frame{root}
}
