package command

// Direction of a movement or extension command.
type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
)

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return "unknown"
	}
}

// Command is a closed set of editing intents. Each variant is a struct
// carrying its parameters; the Executor dispatches over the full set
// with an exhaustive type switch. The marker method keeps the set
// closed to this package.
type Command interface {
	isCommand()
}

// Movement commands.
type (
	// MoveCursor moves every cursor one char or line in a direction.
	MoveCursor struct{ Dir Direction }
	// MoveCursorWord moves every cursor by one word left or right.
	MoveCursorWord struct{ Dir Direction }
	// MoveToLineStart jumps every cursor to column 0.
	MoveToLineStart struct{}
	// MoveToLineEnd jumps every cursor past the last char of its line.
	MoveToLineEnd struct{}
	// MoveToDocumentStart jumps to (0, 0), collapsing to one cursor.
	MoveToDocumentStart struct{}
	// MoveToDocumentEnd jumps past the last char, collapsing to one cursor.
	MoveToDocumentEnd struct{}
	// PageUp moves every cursor up one page.
	PageUp struct{}
	// PageDown moves every cursor down one page.
	PageDown struct{}
)

// Selection commands.
type (
	// SelectAll selects the entire document.
	SelectAll struct{}
	// SelectWord selects the word under the primary cursor.
	SelectWord struct{}
	// SelectLine selects the primary cursor's line including its newline.
	SelectLine struct{}
	// ExtendSelection grows the primary selection one step in a direction,
	// anchoring a new selection at the primary cursor if none is active.
	ExtendSelection struct{ Dir Direction }
	// ClearSelection drops all selections.
	ClearSelection struct{}
)

// Edit commands.
type (
	// InsertChar types a single char at every cursor, replacing any
	// active selection.
	InsertChar struct{ Ch rune }
	// InsertText types a string at every cursor, replacing any active
	// selection.
	InsertText struct{ Text string }
	// InsertNewline inserts a line break with auto-indent at every cursor.
	InsertNewline struct{}
	// InsertTab inserts a tab or soft-tab spaces at every cursor.
	InsertTab struct{}
	// DeleteBackward removes the char before each cursor, or the active
	// selection if one exists.
	DeleteBackward struct{}
	// DeleteForward removes the char after each cursor, or the active
	// selection if one exists.
	DeleteForward struct{}
	// DeleteWord removes from each cursor to the next word start.
	DeleteWord struct{}
	// DeleteLine removes the primary cursor's entire line.
	DeleteLine struct{}
)

// Clipboard commands.
type (
	// Copy stores the primary selection's text in the executor clipboard.
	Copy struct{}
	// Cut copies the primary selection then deletes all selections.
	Cut struct{}
	// Paste inserts Text at every cursor; an empty Text pastes the
	// executor clipboard.
	Paste struct{ Text string }
)

// History commands.
type (
	// Undo reverts the most recent buffer edit.
	Undo struct{}
	// Redo re-applies the most recently undone edit.
	Redo struct{}
)

// Find and replace commands.
type (
	// Find computes the match list for Query and resets the match index.
	Find struct{ Query string }
	// FindNext advances to the next match, wrapping circularly.
	FindNext struct{}
	// FindPrevious steps back to the previous match, wrapping circularly.
	FindPrevious struct{}
	// Replace rewrites the current match of Query with Replacement.
	Replace struct{ Query, Replacement string }
	// ReplaceAll rewrites every match of Query with Replacement.
	ReplaceAll struct{ Query, Replacement string }
)

// Line-level commands.
type (
	// Indent prepends an indent run to each selected line.
	Indent struct{}
	// Outdent removes up to one indent run from each selected line.
	Outdent struct{}
	// ToggleComment adds or removes a line comment on the primary
	// cursor's line.
	ToggleComment struct{}
	// FormatDocument is reserved for an external formatter and is not
	// implemented by the engine.
	FormatDocument struct{}
)

// Multi-cursor commands.
type (
	// AddCursorAbove adds a cursor one line above the topmost cursor.
	AddCursorAbove struct{}
	// AddCursorBelow adds a cursor one line below the bottommost cursor.
	AddCursorBelow struct{}
	// AddCursorAtSelection adds a cursor at each selection's active end.
	AddCursorAtSelection struct{}
)

func (MoveCursor) isCommand()           {}
func (MoveCursorWord) isCommand()       {}
func (MoveToLineStart) isCommand()      {}
func (MoveToLineEnd) isCommand()        {}
func (MoveToDocumentStart) isCommand()  {}
func (MoveToDocumentEnd) isCommand()    {}
func (PageUp) isCommand()               {}
func (PageDown) isCommand()             {}
func (SelectAll) isCommand()            {}
func (SelectWord) isCommand()           {}
func (SelectLine) isCommand()           {}
func (ExtendSelection) isCommand()      {}
func (ClearSelection) isCommand()       {}
func (InsertChar) isCommand()           {}
func (InsertText) isCommand()           {}
func (InsertNewline) isCommand()        {}
func (InsertTab) isCommand()            {}
func (DeleteBackward) isCommand()       {}
func (DeleteForward) isCommand()        {}
func (DeleteWord) isCommand()           {}
func (DeleteLine) isCommand()           {}
func (Copy) isCommand()                 {}
func (Cut) isCommand()                  {}
func (Paste) isCommand()                {}
func (Undo) isCommand()                 {}
func (Redo) isCommand()                 {}
func (Find) isCommand()                 {}
func (FindNext) isCommand()             {}
func (FindPrevious) isCommand()         {}
func (Replace) isCommand()              {}
func (ReplaceAll) isCommand()           {}
func (Indent) isCommand()               {}
func (Outdent) isCommand()              {}
func (ToggleComment) isCommand()        {}
func (FormatDocument) isCommand()       {}
func (AddCursorAbove) isCommand()       {}
func (AddCursorBelow) isCommand()       {}
func (AddCursorAtSelection) isCommand() {}

// Result reports command execution outcome. Message is a short status
// line string; failure is a normal reportable condition, not an error.
type Result struct {
	Success bool
	Message string
}

// OK is a successful result with no message.
func OK() Result {
	return Result{Success: true}
}

// WithMessage is a successful result with a status message.
func WithMessage(msg string) Result {
	return Result{Success: true, Message: msg}
}

// Failed is an unsuccessful result with an explanatory message.
func Failed(msg string) Result {
	return Result{Success: false, Message: msg}
}
