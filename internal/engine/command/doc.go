// Package command maps high-level editing intents onto buffer, cursor,
// and selection mutations. Command is a closed tagged union dispatched
// with an exhaustive type switch; Result carries success and a short
// status message for the UI.
//
// The Executor owns the transient cross-command state: clipboard text,
// the active find query, and the computed match list with a circular
// index. Movement and selection commands never touch the undo stack;
// edit commands replace an active selection before inserting, so typing
// over a selection deletes it first.
package command
