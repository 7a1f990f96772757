package main

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/editcore/internal/config"
	"github.com/dshills/editcore/internal/document"
	"github.com/dshills/editcore/internal/engine/buffer"
	"github.com/dshills/editcore/internal/engine/command"
	"github.com/dshills/editcore/internal/engine/syntax"
	"github.com/dshills/editcore/internal/filestore"
	"github.com/dshills/editcore/internal/session"
)

// ui is the terminal front end: it translates key events into engine
// commands, renders the viewport and status line, and reports command
// results. All editing semantics live in the engine packages.
type ui struct {
	screen  tcell.Screen
	doc     *document.Document
	sess    *session.Session
	watcher *filestore.Watcher
	hl      syntax.Highlighter

	topLine int
	status  string

	// pendingPath is where an as-yet-unsaved document should be created
	pendingPath string

	// prompt state for find input
	prompting bool
	prompt    string
}

func newUI(doc *document.Document, cfg config.Config, sess *session.Session) (*ui, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	screen.EnablePaste()

	u := &ui{screen: screen, doc: doc, sess: sess}

	if doc.Path() != "" {
		if filepath.Ext(doc.Path()) == ".go" {
			h := syntax.GoHighlighter()
			doc.Buffer().AddObserver(h)
			u.hl = h
		}
		if st, ok := sess.FileState(doc.Path()); ok {
			pos := buffer.Position{Line: st.Line, Column: st.Column}
			buf := doc.Buffer()
			doc.Cursors().ResetTo(buf.OffsetToPosition(buf.PositionToOffset(pos)))
		}
		if w, err := filestore.NewWatcher(); err == nil {
			if w.Watch(doc.Path()) == nil {
				u.watcher = w
				go u.forwardChanges()
			}
		}
	}
	return u, nil
}

// forwardChanges posts watcher events into the tcell event loop.
func (u *ui) forwardChanges() {
	for c := range u.watcher.Changes() {
		u.screen.PostEvent(tcell.NewEventInterrupt(c))
	}
}

func (u *ui) run() error {
	defer u.close()

	for {
		u.render()
		ev := u.screen.PollEvent()
		switch ev := ev.(type) {
		case *tcell.EventResize:
			u.screen.Sync()
		case *tcell.EventInterrupt:
			if c, ok := ev.Data().(filestore.Change); ok {
				u.status = fmt.Sprintf("%s changed on disk", filepath.Base(c.Path))
			}
		case *tcell.EventPaste:
			// bracketed paste markers only; content arrives as keys
		case *tcell.EventKey:
			if u.prompting {
				u.handlePromptKey(ev)
				continue
			}
			if quit := u.handleKey(ev); quit {
				u.rememberSession()
				return nil
			}
		}
	}
}

func (u *ui) close() {
	if u.watcher != nil {
		u.watcher.Close()
	}
	u.screen.Fini()
}

func (u *ui) rememberSession() {
	if u.doc.Path() == "" {
		return
	}
	pos := u.doc.Cursors().Primary().Pos
	u.sess.SetFileState(u.doc.Path(), session.FileState{
		Line:   pos.Line,
		Column: pos.Column,
	})
}

// handleKey maps one key event to a command. Returns true to quit.
func (u *ui) handleKey(ev *tcell.EventKey) bool {
	shift := ev.Modifiers()&tcell.ModShift != 0

	var cmd command.Command
	switch ev.Key() {
	case tcell.KeyUp:
		cmd = u.moveOrExtend(command.Up, shift)
	case tcell.KeyDown:
		cmd = u.moveOrExtend(command.Down, shift)
	case tcell.KeyLeft:
		if ev.Modifiers()&tcell.ModCtrl != 0 {
			cmd = command.MoveCursorWord{Dir: command.Left}
		} else {
			cmd = u.moveOrExtend(command.Left, shift)
		}
	case tcell.KeyRight:
		if ev.Modifiers()&tcell.ModCtrl != 0 {
			cmd = command.MoveCursorWord{Dir: command.Right}
		} else {
			cmd = u.moveOrExtend(command.Right, shift)
		}
	case tcell.KeyHome:
		cmd = command.MoveToLineStart{}
	case tcell.KeyEnd:
		cmd = command.MoveToLineEnd{}
	case tcell.KeyPgUp:
		cmd = command.PageUp{}
	case tcell.KeyPgDn:
		cmd = command.PageDown{}
	case tcell.KeyEnter:
		cmd = command.InsertNewline{}
	case tcell.KeyTab:
		cmd = command.InsertTab{}
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		cmd = command.DeleteBackward{}
	case tcell.KeyDelete:
		cmd = command.DeleteForward{}
	case tcell.KeyEscape:
		cmd = command.ClearSelection{}
	case tcell.KeyCtrlQ:
		return true
	case tcell.KeyCtrlS:
		u.save()
		return false
	case tcell.KeyCtrlZ:
		cmd = command.Undo{}
	case tcell.KeyCtrlY:
		cmd = command.Redo{}
	case tcell.KeyCtrlA:
		cmd = command.SelectAll{}
	case tcell.KeyCtrlW:
		cmd = command.SelectWord{}
	case tcell.KeyCtrlL:
		cmd = command.SelectLine{}
	case tcell.KeyCtrlC:
		cmd = command.Copy{}
	case tcell.KeyCtrlX:
		cmd = command.Cut{}
	case tcell.KeyCtrlV:
		cmd = command.Paste{}
	case tcell.KeyCtrlF:
		u.prompting = true
		u.prompt = ""
		return false
	case tcell.KeyCtrlN:
		cmd = command.FindNext{}
	case tcell.KeyCtrlP:
		cmd = command.FindPrevious{}
	case tcell.KeyCtrlK:
		cmd = command.DeleteLine{}
	case tcell.KeyCtrlD:
		cmd = command.AddCursorBelow{}
	case tcell.KeyCtrlU:
		cmd = command.AddCursorAbove{}
	case tcell.KeyCtrlT:
		cmd = command.ToggleComment{}
	case tcell.KeyCtrlRightSq:
		cmd = command.Indent{}
	case tcell.KeyRune:
		cmd = command.InsertChar{Ch: ev.Rune()}
	default:
		return false
	}

	if cmd != nil {
		res := u.doc.Execute(cmd)
		u.status = res.Message
	}
	return false
}

func (u *ui) moveOrExtend(dir command.Direction, shift bool) command.Command {
	if shift {
		return command.ExtendSelection{Dir: dir}
	}
	return command.MoveCursor{Dir: dir}
}

// handlePromptKey collects the find query typed into the status line.
func (u *ui) handlePromptKey(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEnter:
		u.prompting = false
		res := u.doc.Execute(command.Find{Query: u.prompt})
		u.status = res.Message
	case tcell.KeyEscape:
		u.prompting = false
		u.status = ""
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if len(u.prompt) > 0 {
			rs := []rune(u.prompt)
			u.prompt = string(rs[:len(rs)-1])
		}
	case tcell.KeyRune:
		u.prompt += string(ev.Rune())
	}
}

func (u *ui) save() {
	var err error
	switch {
	case u.doc.Path() != "":
		err = u.doc.Save(context.Background())
	case u.pendingPath != "":
		err = u.doc.SaveAs(context.Background(), u.pendingPath)
	default:
		u.status = "No file path; start with a filename to save"
		return
	}
	if err != nil {
		u.status = fmt.Sprintf("Save failed: %v", err)
		return
	}
	u.status = "Saved"
}

// render draws the viewport, selections, cursors, and status line.
func (u *ui) render() {
	u.screen.Clear()
	width, height := u.screen.Size()
	if height < 2 {
		u.screen.Show()
		return
	}
	viewHeight := height - 1

	buf := u.doc.Buffer()
	u.scrollToCursor(viewHeight)

	tagStyles := u.tagStyles()
	var tags []syntax.TaggedRange
	if u.hl != nil {
		tags = u.hl.Highlight(buf.Snapshot())
	}

	for row := 0; row < viewHeight; row++ {
		line := u.topLine + row
		if line >= buf.LineCount() {
			break
		}
		u.drawLine(row, line, width, tags, tagStyles)
	}

	u.drawStatus(width, height-1)
	u.drawCursors(viewHeight)
	u.screen.Show()
}

func (u *ui) scrollToCursor(viewHeight int) {
	line := u.doc.Cursors().Primary().Pos.Line
	if line < u.topLine {
		u.topLine = line
	}
	if line >= u.topLine+viewHeight {
		u.topLine = line - viewHeight + 1
	}
}

func (u *ui) drawLine(row, line, width int, tags []syntax.TaggedRange, tagStyles map[syntax.Tag]tcell.Style) {
	buf := u.doc.Buffer()
	text := buf.LineText(line)
	lineStart := buf.PositionToOffset(buffer.Position{Line: line})

	col := 0
	for _, r := range text {
		if col >= width {
			break
		}
		style := tcell.StyleDefault
		off := lineStart + col
		for _, tr := range tags {
			if off >= tr.Start && off < tr.End {
				style = tagStyles[tr.Tag]
				break
			}
		}
		if u.inSelection(buffer.Position{Line: line, Column: col}) {
			style = style.Reverse(true)
		}
		u.screen.SetContent(col, row, r, nil, style)
		col++
	}
}

func (u *ui) inSelection(pos buffer.Position) bool {
	for _, sel := range u.doc.Selections().All() {
		if sel.IsEmpty() {
			continue
		}
		lo, hi := sel.Normalized()
		if (pos.After(lo) || pos == lo) && pos.Before(hi) {
			return true
		}
	}
	return false
}

func (u *ui) drawCursors(viewHeight int) {
	primary := u.doc.Cursors().Primary().Pos
	if primary.Line >= u.topLine && primary.Line < u.topLine+viewHeight {
		u.screen.ShowCursor(primary.Column, primary.Line-u.topLine)
	} else {
		u.screen.HideCursor()
	}

	// secondary cursors render as reversed cells
	style := tcell.StyleDefault.Reverse(true)
	for _, c := range u.doc.Cursors().All() {
		if c.Pos == primary || !c.Visible {
			continue
		}
		if c.Pos.Line < u.topLine || c.Pos.Line >= u.topLine+viewHeight {
			continue
		}
		r := ' '
		lineText := u.doc.Buffer().LineText(c.Pos.Line)
		if rs := []rune(lineText); c.Pos.Column < len(rs) {
			r = rs[c.Pos.Column]
		}
		u.screen.SetContent(c.Pos.Column, c.Pos.Line-u.topLine, r, nil, style)
	}
}

func (u *ui) drawStatus(width, row int) {
	var left string
	if u.prompting {
		left = "Find: " + u.prompt
	} else {
		name := u.doc.Path()
		if name == "" {
			name = "[untitled]"
		}
		dirty := ""
		if u.doc.IsDirty() {
			dirty = " [+]"
		}
		pos := u.doc.Cursors().Primary().Pos
		left = fmt.Sprintf("%s%s  %d:%d", name, dirty, pos.Line+1, pos.Column+1)
		if u.status != "" {
			left += "  " + u.status
		}
	}

	style := tcell.StyleDefault.Reverse(true)
	text := left
	if len(text) > width {
		text = text[:width]
	}
	if pad := width - len(text); pad > 0 {
		text += strings.Repeat(" ", pad)
	}
	for i, r := range text {
		if i >= width {
			break
		}
		u.screen.SetContent(i, row, r, nil, style)
	}
}

func (u *ui) tagStyles() map[syntax.Tag]tcell.Style {
	return map[syntax.Tag]tcell.Style{
		syntax.TagKeyword: tcell.StyleDefault.Foreground(tcell.ColorBlue).Bold(true),
		syntax.TagString:  tcell.StyleDefault.Foreground(tcell.ColorGreen),
		syntax.TagComment: tcell.StyleDefault.Foreground(tcell.ColorGray),
		syntax.TagNumber:  tcell.StyleDefault.Foreground(tcell.ColorRed),
	}
}
