package buffer

import (
	"context"
	"errors"
	"testing"
)

func TestNewBuffer(t *testing.T) {
	b := NewBuffer()
	if !b.IsEmpty() {
		t.Error("new buffer should be empty")
	}
	if b.Len() != 0 {
		t.Errorf("Len() = %d, want 0", b.Len())
	}
	if b.LineCount() != 1 {
		t.Errorf("LineCount() = %d, want 1", b.LineCount())
	}
	if b.IsDirty() {
		t.Error("new buffer should not be dirty")
	}
	if b.Path() != "" {
		t.Errorf("Path() = %q, want empty", b.Path())
	}
}

func TestNewBufferFromString(t *testing.T) {
	b := NewBufferFromString("hello\nworld")
	if got := b.Text(); got != "hello\nworld" {
		t.Errorf("Text() = %q", got)
	}
	if b.LineCount() != 2 {
		t.Errorf("LineCount() = %d, want 2", b.LineCount())
	}
	if b.IsDirty() {
		t.Error("buffer from string should not be dirty")
	}
}

func TestPositionToOffset(t *testing.T) {
	b := NewBufferFromString("hello\nworld\nfoo")

	tests := []struct {
		name string
		pos  Position
		want int
	}{
		{"origin", Position{0, 0}, 0},
		{"mid first line", Position{0, 3}, 3},
		{"end first line", Position{0, 5}, 5},
		{"start second line", Position{1, 0}, 6},
		{"mid second line", Position{1, 2}, 8},
		{"last line", Position{2, 3}, 15},
		{"column past line end clamps", Position{0, 99}, 5},
		{"line past end clamps to buffer end", Position{99, 0}, 15},
		{"negative line clamps", Position{-1, 2}, 2},
		{"negative column clamps", Position{1, -5}, 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := b.PositionToOffset(tt.pos); got != tt.want {
				t.Errorf("PositionToOffset(%v) = %d, want %d", tt.pos, got, tt.want)
			}
		})
	}
}

func TestOffsetToPosition(t *testing.T) {
	b := NewBufferFromString("hello\nworld\nfoo")

	tests := []struct {
		name   string
		offset int
		want   Position
	}{
		{"origin", 0, Position{0, 0}},
		{"mid first line", 3, Position{0, 3}},
		{"at newline", 5, Position{0, 5}},
		{"start second line", 6, Position{1, 0}},
		{"buffer end", 15, Position{2, 3}},
		{"past end clamps", 999, Position{2, 3}},
		{"negative clamps", -5, Position{0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := b.OffsetToPosition(tt.offset); got != tt.want {
				t.Errorf("OffsetToPosition(%d) = %v, want %v", tt.offset, got, tt.want)
			}
		})
	}
}

func TestPositionRoundTrip(t *testing.T) {
	b := NewBufferFromString("alpha\nbeta\n\ngamma")
	for offset := 0; offset <= b.Len(); offset++ {
		pos := b.OffsetToPosition(offset)
		if got := b.PositionToOffset(pos); got != offset {
			t.Errorf("round trip %d -> %v -> %d", offset, pos, got)
		}
	}
}

func TestInsert(t *testing.T) {
	b := NewBufferFromString("hello world")
	end := b.Insert(Position{0, 5}, ",")
	if got := b.Text(); got != "hello, world" {
		t.Errorf("Text() = %q", got)
	}
	if end != 6 {
		t.Errorf("Insert returned %d, want 6", end)
	}
	if !b.IsDirty() {
		t.Error("buffer should be dirty after insert")
	}
}

func TestInsertAtOffset(t *testing.T) {
	b := NewBufferFromString("héllo")
	end := b.InsertAtOffset(2, "xx")
	if got := b.Text(); got != "héxxllo" {
		t.Errorf("Text() = %q", got)
	}
	if end != 4 {
		t.Errorf("InsertAtOffset returned %d, want 4", end)
	}

	// out-of-range offsets clamp to the ends
	b.InsertAtOffset(999, "!")
	if got := b.Text(); got != "héxxllo!" {
		t.Errorf("Text() = %q", got)
	}
	b.InsertAtOffset(-3, "?")
	if got := b.Text(); got != "?héxxllo!" {
		t.Errorf("Text() = %q", got)
	}
}

func TestDelete(t *testing.T) {
	tests := []struct {
		name    string
		initial string
		r       Range
		want    string
	}{
		{"middle", "hello world", Range{5, 11}, "hello"},
		{"start", "hello", Range{0, 2}, "llo"},
		{"end clamped", "hello", Range{3, 99}, "hel"},
		{"empty range no-op", "hello", Range{2, 2}, "hello"},
		{"inverted range no-op", "hello", Range{4, 1}, "hello"},
		{"start out of bounds no-op", "hello", Range{10, 20}, "hello"},
		{"negative start no-op", "hello", Range{-2, 3}, "hello"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBufferFromString(tt.initial)
			b.Delete(tt.r)
			if got := b.Text(); got != tt.want {
				t.Errorf("Text() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDeleteLine(t *testing.T) {
	b := NewBufferFromString("one\ntwo\nthree")
	b.DeleteLine(1)
	if got := b.Text(); got != "one\nthree" {
		t.Errorf("Text() = %q", got)
	}

	// last line has no trailing newline
	b.DeleteLine(1)
	if got := b.Text(); got != "one\n" {
		t.Errorf("Text() = %q", got)
	}

	// out of range is a no-op
	b.DeleteLine(5)
	if got := b.Text(); got != "one\n" {
		t.Errorf("Text() = %q", got)
	}
}

func TestReplace(t *testing.T) {
	b := NewBufferFromString("hello world")
	b.Replace(Range{0, 5}, "goodbye")
	if got := b.Text(); got != "goodbye world" {
		t.Errorf("Text() = %q", got)
	}

	// a replace is a single undo entry
	if !b.Undo() {
		t.Fatal("Undo() = false")
	}
	if got := b.Text(); got != "hello world" {
		t.Errorf("after undo Text() = %q", got)
	}
}

func TestUndoRedo(t *testing.T) {
	b := NewBufferFromString("")
	b.InsertAtOffset(0, "Hello")
	b.InsertAtOffset(5, " World")
	if got := b.Text(); got != "Hello World" {
		t.Fatalf("Text() = %q", got)
	}

	if !b.Undo() {
		t.Fatal("first Undo() = false")
	}
	if got := b.Text(); got != "Hello" {
		t.Errorf("after first undo Text() = %q, want %q", got, "Hello")
	}
	if !b.Undo() {
		t.Fatal("second Undo() = false")
	}
	if got := b.Text(); got != "" {
		t.Errorf("after second undo Text() = %q, want empty", got)
	}
	if b.Undo() {
		t.Error("Undo() on empty stack should return false")
	}

	if !b.Redo() {
		t.Fatal("Redo() = false")
	}
	if got := b.Text(); got != "Hello" {
		t.Errorf("after redo Text() = %q, want %q", got, "Hello")
	}
	if !b.Redo() {
		t.Fatal("second Redo() = false")
	}
	if got := b.Text(); got != "Hello World" {
		t.Errorf("after second redo Text() = %q", got)
	}
	if b.Redo() {
		t.Error("Redo() on empty stack should return false")
	}
}

func TestUndoDelete(t *testing.T) {
	b := NewBufferFromString("hello world")
	b.Delete(Range{5, 11})
	if got := b.Text(); got != "hello" {
		t.Fatalf("Text() = %q", got)
	}
	if !b.Undo() {
		t.Fatal("Undo() = false")
	}
	if got := b.Text(); got != "hello world" {
		t.Errorf("after undo Text() = %q", got)
	}
}

func TestRedoClearedByNewEdit(t *testing.T) {
	b := NewBufferFromString("abc")
	b.InsertAtOffset(3, "d")
	b.Undo()
	if !b.CanRedo() {
		t.Fatal("expected redo available after undo")
	}
	b.InsertAtOffset(0, "x")
	if b.CanRedo() {
		t.Error("new edit should clear the redo stack")
	}
	if b.Redo() {
		t.Error("Redo() should return false after stack cleared")
	}
}

func TestHistoryCapEvictsOldest(t *testing.T) {
	b := NewBuffer(WithMaxHistory(3))
	for i := 0; i < 5; i++ {
		b.InsertAtOffset(b.Len(), "a")
	}
	undone := 0
	for b.Undo() {
		undone++
	}
	if undone != 3 {
		t.Errorf("undid %d edits, want 3", undone)
	}
	// the two oldest inserts were evicted and cannot be undone
	if got := b.Text(); got != "aa" {
		t.Errorf("Text() = %q, want %q", got, "aa")
	}
}

func TestInsertTab(t *testing.T) {
	b := NewBufferFromString("x", WithTabWidth(4))
	end := b.InsertTab(0)
	if got := b.Text(); got != "    x" {
		t.Errorf("Text() = %q", got)
	}
	if end != 4 {
		t.Errorf("InsertTab returned %d, want 4", end)
	}

	hard := NewBufferFromString("x", WithSoftTabs(false))
	hard.InsertTab(0)
	if got := hard.Text(); got != "\tx" {
		t.Errorf("hard tab Text() = %q", got)
	}
}

func TestInsertNewlineAutoIndent(t *testing.T) {
	b := NewBufferFromString("    indented")
	end := b.InsertNewline(b.Len())
	if got := b.Text(); got != "    indented\n    " {
		t.Errorf("Text() = %q", got)
	}
	if end != b.Len() {
		t.Errorf("InsertNewline returned %d, want %d", end, b.Len())
	}

	plain := NewBufferFromString("plain")
	plain.InsertNewline(5)
	if got := plain.Text(); got != "plain\n" {
		t.Errorf("Text() = %q", got)
	}
}

func TestFind(t *testing.T) {
	b := NewBufferFromString("Hello world, hello again. Hello!")

	matches := b.Find("Hello", true)
	if len(matches) != 2 {
		t.Fatalf("case-sensitive Find returned %d matches, want 2", len(matches))
	}
	if matches[0] != (Range{0, 5}) || matches[1] != (Range{26, 31}) {
		t.Errorf("matches = %v", matches)
	}

	matches = b.Find("hello", false)
	if len(matches) != 3 {
		t.Errorf("case-insensitive Find returned %d matches, want 3", len(matches))
	}

	if got := b.Find("", true); got != nil {
		t.Errorf("empty query should return no matches, got %v", got)
	}
	if got := b.Find("zzz", true); len(got) != 0 {
		t.Errorf("absent query should return no matches, got %v", got)
	}
}

func TestFindNonOverlapping(t *testing.T) {
	b := NewBufferFromString("aaaa")
	matches := b.Find("aa", true)
	if len(matches) != 2 {
		t.Fatalf("Find returned %d matches, want 2", len(matches))
	}
	if matches[0] != (Range{0, 2}) || matches[1] != (Range{2, 4}) {
		t.Errorf("matches = %v", matches)
	}
}

func TestFindUnicode(t *testing.T) {
	b := NewBufferFromString("αβγ αβγ")
	matches := b.Find("βγ", true)
	if len(matches) != 2 {
		t.Fatalf("Find returned %d matches, want 2", len(matches))
	}
	if matches[0] != (Range{1, 3}) || matches[1] != (Range{5, 7}) {
		t.Errorf("matches = %v", matches)
	}
}

func TestFindReplace(t *testing.T) {
	b := NewBufferFromString("banana")
	count := b.FindReplace("a", "bb", true)
	if count != 3 {
		t.Errorf("FindReplace count = %d, want 3", count)
	}
	if got := b.Text(); got != "bbbnbbnbb" {
		t.Errorf("Text() = %q, want %q", got, "bbbnbbnbb")
	}

	// each replacement is its own undo entry
	for i := 0; i < 3; i++ {
		if !b.Undo() {
			t.Fatalf("Undo() %d = false", i)
		}
	}
	if got := b.Text(); got != "banana" {
		t.Errorf("after undo Text() = %q", got)
	}
}

func TestFindReplaceCaseInsensitive(t *testing.T) {
	b := NewBufferFromString("Cat cat CAT")
	count := b.FindReplace("cat", "dog", false)
	if count != 3 {
		t.Errorf("count = %d, want 3", count)
	}
	if got := b.Text(); got != "dog dog dog" {
		t.Errorf("Text() = %q", got)
	}
}

type fakeFileIO struct {
	files   map[string]string
	loadErr error
	saveErr error
}

func newFakeFileIO() *fakeFileIO {
	return &fakeFileIO{files: make(map[string]string)}
}

func (f *fakeFileIO) Load(_ context.Context, path string) (string, error) {
	if f.loadErr != nil {
		return "", f.loadErr
	}
	text, ok := f.files[path]
	if !ok {
		return "", errors.New("not found")
	}
	return text, nil
}

func (f *fakeFileIO) Save(_ context.Context, path, text string) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.files[path] = text
	return nil
}

func TestSaveAndLoad(t *testing.T) {
	fio := newFakeFileIO()
	fio.files["/tmp/a.txt"] = "file content\n"

	b := NewBuffer(WithFileIO(fio))
	if err := b.Load(context.Background(), "/tmp/a.txt"); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := b.Text(); got != "file content\n" {
		t.Errorf("Text() = %q", got)
	}
	if b.IsDirty() {
		t.Error("buffer should be clean after load")
	}
	if b.Path() != "/tmp/a.txt" {
		t.Errorf("Path() = %q", b.Path())
	}
	if b.CanUndo() {
		t.Error("load should clear history")
	}

	b.InsertAtOffset(0, "x")
	if !b.IsDirty() {
		t.Fatal("buffer should be dirty after edit")
	}
	if err := b.Save(context.Background()); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if b.IsDirty() {
		t.Error("buffer should be clean after save")
	}
	if got := fio.files["/tmp/a.txt"]; got != "xfile content\n" {
		t.Errorf("saved %q", got)
	}
}

func TestSaveErrors(t *testing.T) {
	b := NewBuffer(WithFileIO(newFakeFileIO()))
	if err := b.Save(context.Background()); !errors.Is(err, ErrNoPath) {
		t.Errorf("Save with no path: %v, want ErrNoPath", err)
	}

	noIO := NewBuffer(WithPath("/tmp/b.txt"))
	if err := noIO.Save(context.Background()); !errors.Is(err, ErrNoFileIO) {
		t.Errorf("Save with no FileIO: %v, want ErrNoFileIO", err)
	}

	fio := newFakeFileIO()
	fio.saveErr = errors.New("disk full")
	failed := NewBufferFromString("data", WithFileIO(fio))
	failed.InsertAtOffset(0, "!")
	if err := failed.SaveAs(context.Background(), "/tmp/c.txt"); err == nil {
		t.Fatal("SaveAs should propagate the error")
	}
	if !failed.IsDirty() {
		t.Error("failed save must leave the dirty flag set")
	}
	if failed.Path() != "" {
		t.Errorf("failed save must not update path, got %q", failed.Path())
	}
}

func TestLoadErrorLeavesContent(t *testing.T) {
	fio := newFakeFileIO()
	fio.loadErr = errors.New("permission denied")
	b := NewBufferFromString("keep me", WithFileIO(fio))
	if err := b.Load(context.Background(), "/tmp/x.txt"); err == nil {
		t.Fatal("Load should propagate the error")
	}
	if got := b.Text(); got != "keep me" {
		t.Errorf("failed load must leave content, got %q", got)
	}
}

func TestObserverNotified(t *testing.T) {
	b := NewBufferFromString("abc")
	var gotEdit EditDescriptor
	var gotText string
	b.AddObserver(ObserverFunc(func(snap *Snapshot, edit EditDescriptor) {
		gotEdit = edit
		gotText = snap.Text()
	}))

	b.InsertAtOffset(1, "xy")
	want := EditDescriptor{Start: 1, OldEnd: 1, NewEnd: 3}
	if gotEdit != want {
		t.Errorf("edit = %+v, want %+v", gotEdit, want)
	}
	if gotText != "axybc" {
		t.Errorf("snapshot text = %q", gotText)
	}

	b.Delete(Range{0, 2})
	want = EditDescriptor{Start: 0, OldEnd: 2, NewEnd: 0}
	if gotEdit != want {
		t.Errorf("edit = %+v, want %+v", gotEdit, want)
	}
}

func TestEditOperationInverse(t *testing.T) {
	tests := []struct {
		name string
		op   EditOperation
		want EditOperation
	}{
		{"insert", NewInsertOp(3, "abc"), NewDeleteOp(3, "abc")},
		{"delete", NewDeleteOp(3, "abc"), NewInsertOp(3, "abc")},
		{"replace", NewReplaceOp(1, "old", "new"), NewReplaceOp(1, "new", "old")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.op.Inverse(); got != tt.want {
				t.Errorf("Inverse() = %+v, want %+v", got, tt.want)
			}
		})
	}
}
