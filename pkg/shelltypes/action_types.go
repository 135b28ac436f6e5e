// Package shelltypes defines the shared types for datashell.
// This file contains the actions a command hands back to the executor.
package shelltypes

// ActionKind identifies the variant of an Action.
type ActionKind int

const (
	// ActionEmitValue appends a value to the command's output stream
	ActionEmitValue ActionKind = iota
	// ActionEnterContext asks the shell to push the value as a new working context
	ActionEnterContext
)

// String returns the action kind name.
func (k ActionKind) String() string {
	switch k {
	case ActionEmitValue:
		return "emit"
	case ActionEnterContext:
		return "enter"
	}
	return "unknown"
}

// Action is one unit of command output. It is a closed variant: use
// EmitValue or EnterContext to construct one.
type Action struct {
	kind  ActionKind
	value Spanned
}

// EmitValue creates an action that emits a spanned value downstream.
func EmitValue(value Spanned) Action {
	return Action{kind: ActionEmitValue, value: value}
}

// EnterContext creates an action that asks the shell to enter value as its new context.
func EnterContext(value Value) Action {
	return Action{kind: ActionEnterContext, value: Spanned{Item: value, Span: UnknownSpan}}
}

// Kind returns the action variant.
func (a Action) Kind() ActionKind { return a.kind }

// Value returns the value carried by the action.
func (a Action) Value() Value { return a.value.Item }

// Span returns the span of an emitted value. Enter actions carry UnknownSpan.
func (a Action) Span() Span { return a.value.Span }

// OutputStream is the ordered list of actions produced by one command invocation.
type OutputStream []Action

// Values returns the values carried by every action in the stream.
func (s OutputStream) Values() []Value {
	values := make([]Value, 0, len(s))
	for _, action := range s {
		values = append(values, action.Value())
	}
	return values
}
