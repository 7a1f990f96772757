package buffer

// EditDescriptor describes a length-changing mutation in terms a
// downstream consumer (such as an incremental syntax parser) can use to
// re-parse only the affected region. All offsets are char offsets.
type EditDescriptor struct {
	// Start is the first affected char offset, valid in both the old
	// and new text.
	Start int

	// OldEnd is the end of the affected range in the text before the edit.
	OldEnd int

	// NewEnd is the end of the affected range in the text after the edit.
	NewEnd int
}

// Delta returns the change in buffer length, in chars.
func (e EditDescriptor) Delta() int {
	return e.NewEnd - e.OldEnd
}

// Observer receives a read-only snapshot and an edit descriptor after
// every buffer mutation that changes content. Observers are called
// outside the buffer's lock, in registration order, on the mutating
// goroutine.
type Observer interface {
	TextEdited(snap *Snapshot, edit EditDescriptor)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(snap *Snapshot, edit EditDescriptor)

// TextEdited implements Observer.
func (f ObserverFunc) TextEdited(snap *Snapshot, edit EditDescriptor) {
	f(snap, edit)
}
