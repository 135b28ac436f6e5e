package testutils

import (
	"context"
	"errors"
	"sync"

	"datashell/pkg/shelltypes"
)

// FetchCall records one FakeFetcher.Fetch invocation.
type FetchCall struct {
	Cwd        string
	Identifier string
	Span       shelltypes.Span
	// EnvLocked reports whether the watched environment was locked during the call.
	EnvLocked bool
}

// FakeFetcher returns canned content and records its calls.
type FakeFetcher struct {
	Content shelltypes.FetchedContent
	Err     error
	// Watch is checked for a held lock on every call when set.
	Watch *FakeEnvironment
	Calls []FetchCall
}

// Fetch implements shelltypes.Fetcher.
func (f *FakeFetcher) Fetch(_ context.Context, cwd string, identifier string, span shelltypes.Span) (shelltypes.FetchedContent, error) {
	call := FetchCall{Cwd: cwd, Identifier: identifier, Span: span}
	if f.Watch != nil {
		call.EnvLocked = f.Watch.IsLocked()
	}
	f.Calls = append(f.Calls, call)
	if f.Err != nil {
		return shelltypes.FetchedContent{}, f.Err
	}
	return f.Content, nil
}

// ParseCall records one FakeParser.Parse invocation.
type ParseCall struct {
	Format      shelltypes.Format
	Content     string
	ContentSpan shelltypes.Span
	NameSpan    shelltypes.Span
}

// FakeParser returns a canned value and records its calls.
type FakeParser struct {
	Result shelltypes.Value
	Err    error
	Calls  []ParseCall
}

// Parse implements shelltypes.Parser.
func (p *FakeParser) Parse(_ context.Context, format shelltypes.Format, content string, contentSpan shelltypes.Span, nameSpan shelltypes.Span) (shelltypes.Value, error) {
	p.Calls = append(p.Calls, ParseCall{Format: format, Content: content, ContentSpan: contentSpan, NameSpan: nameSpan})
	if p.Err != nil {
		return shelltypes.Value{}, p.Err
	}
	return p.Result, nil
}

// FakeFrame is a minimal shelltypes.Frame.
type FakeFrame struct {
	FrameID   string
	FrameName string
	FramePath string
	FrameVal  *shelltypes.Value
}

// ID implements shelltypes.Frame.
func (f *FakeFrame) ID() string { return f.FrameID }

// Name implements shelltypes.Frame.
func (f *FakeFrame) Name() string { return f.FrameName }

// Path implements shelltypes.Frame.
func (f *FakeFrame) Path() string { return f.FramePath }

// Value implements shelltypes.Frame.
func (f *FakeFrame) Value() (shelltypes.Value, bool) {
	if f.FrameVal == nil {
		return shelltypes.Value{}, false
	}
	return *f.FrameVal, true
}

// ErrNoFrames is returned by FakeEnvironment.CurrentPath on an empty stack.
var ErrNoFrames = errors.New("no frames")

// FakeEnvironment is an in-memory environment whose lock state can be observed.
type FakeEnvironment struct {
	mu     sync.Mutex
	frames []shelltypes.Frame // innermost last

	// PathReads counts CurrentPath calls.
	PathReads int
}

// NewFakeEnvironment creates an environment with a root frame at path.
func NewFakeEnvironment(path string) *FakeEnvironment {
	return &FakeEnvironment{frames: []shelltypes.Frame{&FakeFrame{FrameID: "root", FrameName: path, FramePath: path}}}
}

// IsLocked reports whether another goroutine or call currently holds the lock.
func (e *FakeEnvironment) IsLocked() bool {
	if e.mu.TryLock() {
		e.mu.Unlock()
		return false
	}
	return true
}

// CurrentPath implements shelltypes.Environment.
func (e *FakeEnvironment) CurrentPath() (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.PathReads++
	if len(e.frames) == 0 {
		return "", ErrNoFrames
	}
	return e.frames[len(e.frames)-1].Path(), nil
}

// Front implements shelltypes.Environment.
func (e *FakeEnvironment) Front() (shelltypes.Frame, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if len(e.frames) == 0 {
		return nil, false
	}
	return e.frames[len(e.frames)-1], true
}

// Push implements shelltypes.Environment.
func (e *FakeEnvironment) Push(frame shelltypes.Frame) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.frames = append(e.frames, frame)
}

// Pop implements shelltypes.Environment.
func (e *FakeEnvironment) Pop() (shelltypes.Frame, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if len(e.frames) <= 1 {
		return nil, false
	}
	frame := e.frames[len(e.frames)-1]
	e.frames = e.frames[:len(e.frames)-1]
	return frame, true
}

// Frames implements shelltypes.Environment.
func (e *FakeEnvironment) Frames() []shelltypes.Frame {
	e.mu.Lock()
	defer e.mu.Unlock()
	result := make([]shelltypes.Frame, 0, len(e.frames))
	for i := len(e.frames) - 1; i >= 0; i-- {
		result = append(result, e.frames[i])
	}
	return result
}

// Depth implements shelltypes.Environment.
func (e *FakeEnvironment) Depth() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.frames)
}

// Clear removes every frame, including the root.
func (e *FakeEnvironment) Clear() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.frames = nil
}
