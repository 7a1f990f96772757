package buffer

// history holds the undo and redo stacks for a buffer.
// It is not synchronized; the owning Buffer's lock guards it.
type history struct {
	undo       []EditOperation
	redo       []EditOperation
	maxEntries int
}

// newHistory creates a history with the given bound.
func newHistory(maxEntries int) history {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxHistory
	}
	return history{maxEntries: maxEntries}
}

// push records a new operation. A new edit invalidates any redo future,
// and the oldest undo entry is evicted once the bound is exceeded.
func (h *history) push(op EditOperation) {
	h.undo = append(h.undo, op)
	h.redo = nil

	if len(h.undo) > h.maxEntries {
		excess := len(h.undo) - h.maxEntries
		h.undo = append(h.undo[:0], h.undo[excess:]...)
	}
}

// popUndo removes and returns the most recent undo entry.
func (h *history) popUndo() (EditOperation, bool) {
	if len(h.undo) == 0 {
		return EditOperation{}, false
	}
	op := h.undo[len(h.undo)-1]
	h.undo = h.undo[:len(h.undo)-1]
	return op, true
}

// popRedo removes and returns the most recent redo entry.
func (h *history) popRedo() (EditOperation, bool) {
	if len(h.redo) == 0 {
		return EditOperation{}, false
	}
	op := h.redo[len(h.redo)-1]
	h.redo = h.redo[:len(h.redo)-1]
	return op, true
}

// pushRedo adds an operation to the redo stack (during undo).
func (h *history) pushRedo(op EditOperation) {
	h.redo = append(h.redo, op)
}

// pushUndoOnly adds an operation to the undo stack without clearing
// the redo stack (during redo).
func (h *history) pushUndoOnly(op EditOperation) {
	h.undo = append(h.undo, op)
}

// clear drops all history.
func (h *history) clear() {
	h.undo = nil
	h.redo = nil
}
