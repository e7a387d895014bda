package history

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/dshills/docedit/internal/logging"
	"github.com/dshills/docedit/internal/model"
)

func renders(doc *model.Document) string {
	parts := make([]string, 0, doc.Len())
	for _, el := range doc.Elements() {
		parts = append(parts, el.Render())
	}
	return strings.Join(parts, "|")
}

type failingCommand struct {
	failExecute bool
	failUndo    bool
	executed    int
	undone      int
}

func (c *failingCommand) Execute() error {
	if c.failExecute {
		return errors.New("execute failed")
	}
	c.executed++
	return nil
}

func (c *failingCommand) Undo() error {
	if c.failUndo {
		return errors.New("undo failed")
	}
	c.undone++
	return nil
}

func (c *failingCommand) Description() string { return "failing" }

// Command Tests

func TestAddCommand(t *testing.T) {
	doc := model.New("T")
	p := model.NewParagraph("a")
	cmd := NewAddCommand(doc, p)

	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if doc.IndexOf(p) != 0 {
		t.Error("element not appended")
	}
	if err := cmd.Undo(); err != nil {
		t.Fatalf("Undo: %v", err)
	}
	if doc.Len() != 0 {
		t.Errorf("Len after undo = %d", doc.Len())
	}
	if cmd.Description() != "Add element: Paragraph" {
		t.Errorf("Description = %q", cmd.Description())
	}
}

func TestAddCommandUndoRemovesSameInstance(t *testing.T) {
	doc := model.New("T")
	twin := model.NewParagraph("same")
	_ = doc.Append(twin)

	p := model.NewParagraph("same")
	cmd := NewAddCommand(doc, p)
	_ = cmd.Execute()
	_ = cmd.Undo()

	if el, _ := doc.At(0); el != twin || doc.Len() != 1 {
		t.Error("undo removed the wrong instance")
	}
}

func TestAddCommandRejectsOwnedElement(t *testing.T) {
	other := model.New("other")
	p := model.NewParagraph("a")
	_ = other.Append(p)

	err := NewAddCommand(model.New("T"), p).Execute()
	if !errors.Is(err, model.ErrElementOwned) {
		t.Errorf("error = %v, want ErrElementOwned", err)
	}
}

func TestRemoveCommandRestoresOriginalIndex(t *testing.T) {
	doc := model.New("T")
	a, b, c := model.NewParagraph("a"), model.NewParagraph("b"), model.NewParagraph("c")
	for _, el := range []model.Element{a, b, c} {
		_ = doc.Append(el)
	}

	cmd := NewRemoveCommand(doc, b)
	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if renders(doc) != "a|c" {
		t.Errorf("after remove = %q", renders(doc))
	}
	if err := cmd.Undo(); err != nil {
		t.Fatalf("Undo: %v", err)
	}
	if renders(doc) != "a|b|c" {
		t.Errorf("after undo = %q, want a|b|c", renders(doc))
	}
	if cmd.Description() != "Remove element: Paragraph" {
		t.Errorf("Description = %q", cmd.Description())
	}
}

func TestRemoveCommandRestoreAtEnd(t *testing.T) {
	doc := model.New("T")
	a, b, c := model.NewParagraph("a"), model.NewParagraph("b"), model.NewParagraph("c")
	for _, el := range []model.Element{a, b, c} {
		_ = doc.Append(el)
	}

	cmd := NewRemoveCommandMode(doc, a, RestoreAtEnd)
	_ = cmd.Execute()
	_ = cmd.Undo()
	if renders(doc) != "b|c|a" {
		t.Errorf("after undo = %q, want b|c|a", renders(doc))
	}
}

func TestRemoveCommandMissingElement(t *testing.T) {
	doc := model.New("T")
	err := NewRemoveCommand(doc, model.NewParagraph("x")).Execute()
	if !errors.Is(err, model.ErrElementNotFound) {
		t.Errorf("error = %v, want ErrElementNotFound", err)
	}
}

func TestSetTitleCommand(t *testing.T) {
	doc := model.New("Old")
	cmd := NewSetTitleCommand(doc, "New")
	_ = cmd.Execute()
	if doc.Title() != "New" {
		t.Errorf("title = %q", doc.Title())
	}
	_ = cmd.Undo()
	if doc.Title() != "Old" {
		t.Errorf("title after undo = %q", doc.Title())
	}
	if cmd.Description() != `Set title: "New"` {
		t.Errorf("Description = %q", cmd.Description())
	}
}

func TestCompoundCommandExecuteAndUndo(t *testing.T) {
	doc := model.New("T")
	cmd := NewCompoundCommand("Add section",
		NewAddCommand(doc, model.NewHeadline("h", 1)),
		NewAddCommand(doc, model.NewParagraph("p")),
	)

	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if renders(doc) != "# h|p" {
		t.Errorf("after execute = %q", renders(doc))
	}
	if err := cmd.Undo(); err != nil {
		t.Fatalf("Undo: %v", err)
	}
	if doc.Len() != 0 {
		t.Errorf("after undo = %q", renders(doc))
	}
}

func TestCompoundCommandRollsBack(t *testing.T) {
	doc := model.New("T")
	cmd := NewCompoundCommand("broken",
		NewAddCommand(doc, model.NewParagraph("p")),
		&failingCommand{failExecute: true},
	)

	if err := cmd.Execute(); err == nil {
		t.Fatal("expected error")
	}
	if doc.Len() != 0 {
		t.Errorf("partial execution not rolled back: %q", renders(doc))
	}
}

func TestCompoundCommandDescription(t *testing.T) {
	doc := model.New("T")
	single := NewCompoundCommand("", NewAddCommand(doc, model.NewImage("x", 1, 1)))
	if single.Description() != "Add element: Image" {
		t.Errorf("single = %q", single.Description())
	}

	multi := NewCompoundCommand("")
	if !multi.IsEmpty() {
		t.Error("new compound should be empty")
	}
	multi.Add(&failingCommand{})
	multi.Add(&failingCommand{})
	if multi.Description() != "2 operations" {
		t.Errorf("multi = %q", multi.Description())
	}
}

// History Tests

func TestHistoryUndoRedo(t *testing.T) {
	doc := model.New("T")
	h := NewHistory()

	_ = h.Execute(NewAddCommand(doc, model.NewParagraph("a")))
	_ = h.Execute(NewAddCommand(doc, model.NewParagraph("b")))

	if err := h.Undo(); err != nil {
		t.Fatalf("Undo: %v", err)
	}
	if renders(doc) != "a" {
		t.Errorf("after undo = %q", renders(doc))
	}
	if err := h.Redo(); err != nil {
		t.Fatalf("Redo: %v", err)
	}
	if renders(doc) != "a|b" {
		t.Errorf("after redo = %q", renders(doc))
	}
}

func TestHistoryUndoRedoSequence(t *testing.T) {
	doc := model.New("T")
	h := NewHistory()
	els := make([]model.Element, 6)
	for i := range els {
		els[i] = model.NewParagraph(string(rune('a' + i)))
	}

	steps := []Command{
		NewAddCommand(doc, els[0]),
		NewAddCommand(doc, els[1]),
		NewAddCommand(doc, els[2]),
		NewRemoveCommand(doc, els[1]),
		NewAddCommand(doc, els[3]),
		NewRemoveCommand(doc, els[0]),
		NewAddCommand(doc, els[4]),
		NewRemoveCommand(doc, els[3]),
	}

	for i, cmd := range steps {
		before := renders(doc)
		if err := h.Execute(cmd); err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
		after := renders(doc)

		if err := h.Undo(); err != nil {
			t.Fatalf("step %d undo: %v", i, err)
		}
		if got := renders(doc); got != before {
			t.Errorf("step %d: undo gave %q, want %q", i, got, before)
		}
		if err := h.Redo(); err != nil {
			t.Fatalf("step %d redo: %v", i, err)
		}
		if got := renders(doc); got != after {
			t.Errorf("step %d: redo gave %q, want %q", i, got, after)
		}
	}
}

func TestHistoryRedoClearedOnExecute(t *testing.T) {
	doc := model.New("T")
	h := NewHistory()

	_ = h.Execute(NewAddCommand(doc, model.NewParagraph("a")))
	_ = h.Undo()
	if !h.CanRedo() {
		t.Fatal("redo should be available")
	}

	_ = h.Execute(NewAddCommand(doc, model.NewParagraph("b")))
	if h.CanRedo() {
		t.Error("redo should be cleared after execute")
	}
	if err := h.Redo(); !errors.Is(err, ErrNothingToRedo) {
		t.Errorf("Redo error = %v, want ErrNothingToRedo", err)
	}
}

func TestHistoryEmptyStacks(t *testing.T) {
	doc := model.New("T")
	_ = doc.Append(model.NewParagraph("a"))
	h := NewHistory()

	if err := h.Undo(); !errors.Is(err, ErrNothingToUndo) {
		t.Errorf("Undo error = %v, want ErrNothingToUndo", err)
	}
	if err := h.Redo(); !errors.Is(err, ErrNothingToRedo) {
		t.Errorf("Redo error = %v, want ErrNothingToRedo", err)
	}
	if renders(doc) != "a" {
		t.Error("document changed by empty undo/redo")
	}
	if err := h.Execute(nil); !errors.Is(err, ErrNilCommand) {
		t.Errorf("Execute(nil) error = %v", err)
	}
}

func TestHistoryCanUndoRedoCounts(t *testing.T) {
	doc := model.New("T")
	h := NewHistory()

	if h.CanUndo() || h.CanRedo() {
		t.Error("new history should have nothing to undo or redo")
	}
	_ = h.Execute(NewAddCommand(doc, model.NewParagraph("a")))
	_ = h.Execute(NewAddCommand(doc, model.NewParagraph("b")))
	_ = h.Undo()

	if h.UndoCount() != 1 || h.RedoCount() != 1 {
		t.Errorf("counts = %d/%d, want 1/1", h.UndoCount(), h.RedoCount())
	}
	if !h.CanUndo() || !h.CanRedo() {
		t.Error("both should be available")
	}
}

func TestHistoryFailedExecuteNotRecorded(t *testing.T) {
	h := NewHistory()
	if err := h.Execute(&failingCommand{failExecute: true}); err == nil {
		t.Fatal("expected error")
	}
	if h.CanUndo() {
		t.Error("failed command recorded")
	}
}

func TestHistoryFailedUndoRestoresEntry(t *testing.T) {
	h := NewHistory()
	cmd := &failingCommand{failUndo: true}
	_ = h.Execute(cmd)

	if err := h.Undo(); err == nil {
		t.Fatal("expected error")
	}
	if h.UndoCount() != 1 || h.RedoCount() != 0 {
		t.Errorf("counts = %d/%d, want 1/0", h.UndoCount(), h.RedoCount())
	}

	cmd.failUndo = false
	_ = h.Undo()
	cmd.failExecute = true
	if err := h.Redo(); err == nil {
		t.Fatal("expected redo error")
	}
	if h.RedoCount() != 1 {
		t.Errorf("RedoCount = %d, want 1", h.RedoCount())
	}
}

func TestHistoryClear(t *testing.T) {
	doc := model.New("T")
	h := NewHistory()
	_ = h.Execute(NewAddCommand(doc, model.NewParagraph("a")))
	_ = h.Execute(NewAddCommand(doc, model.NewParagraph("b")))
	_ = h.Undo()

	h.Clear()
	if h.CanUndo() || h.CanRedo() {
		t.Error("history not cleared")
	}
	if doc.Len() != 1 {
		t.Error("Clear should not touch the document")
	}
}

func TestHistoryMaxEntries(t *testing.T) {
	doc := model.New("T")
	h := NewHistory(WithMaxEntries(2))
	for range 5 {
		_ = h.Execute(NewAddCommand(doc, model.NewParagraph("x")))
	}
	if h.UndoCount() != 2 {
		t.Errorf("UndoCount = %d, want 2", h.UndoCount())
	}

	for range 2 {
		_ = h.Undo()
	}
	for range 2 {
		_ = h.Redo()
	}
	if h.UndoCount() != 2 || h.RedoCount() != 0 {
		t.Errorf("after undo/redo: undo %d redo %d, want 2 and 0", h.UndoCount(), h.RedoCount())
	}
	if doc.Len() != 5 {
		t.Errorf("Len = %d, want 5", doc.Len())
	}

	if NewHistory().MaxEntries() != 0 {
		t.Error("default history should be unbounded")
	}
}

func TestHistoryExecuteGrouped(t *testing.T) {
	doc := model.New("T")
	h := NewHistory()

	err := h.ExecuteGrouped("Add section",
		NewAddCommand(doc, model.NewHeadline("h", 1)),
		NewAddCommand(doc, model.NewParagraph("p")),
	)
	if err != nil {
		t.Fatalf("ExecuteGrouped: %v", err)
	}
	if h.UndoCount() != 1 {
		t.Errorf("UndoCount = %d, want 1", h.UndoCount())
	}
	if info, _ := h.PeekUndo(); info.Description != "Add section" {
		t.Errorf("PeekUndo = %q", info.Description)
	}

	_ = h.Undo()
	if doc.Len() != 0 {
		t.Errorf("group not undone as a unit: %q", renders(doc))
	}

	if err := h.ExecuteGrouped("none"); err != nil || h.UndoCount() != 0 {
		t.Error("empty group should be a no-op")
	}
}

func TestHistoryPeek(t *testing.T) {
	doc := model.New("T")
	h := NewHistory()

	if _, ok := h.PeekUndo(); ok {
		t.Error("PeekUndo on empty history")
	}
	_ = h.Execute(NewAddCommand(doc, model.NewImage("x", 1, 1)))
	_ = h.Execute(NewSetTitleCommand(doc, "New"))

	info, ok := h.PeekUndo()
	if !ok || info.Description != `Set title: "New"` {
		t.Errorf("PeekUndo = %q, %v", info.Description, ok)
	}
	if info.Timestamp.IsZero() {
		t.Error("timestamp not set")
	}

	_ = h.Undo()
	if info, ok := h.PeekRedo(); !ok || info.Description != `Set title: "New"` {
		t.Errorf("PeekRedo = %q, %v", info.Description, ok)
	}

	all := h.UndoInfo()
	if len(all) != 1 || all[0].Description != "Add element: Image" {
		t.Errorf("UndoInfo = %v", all)
	}
}

func TestHistoryLogs(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.New(logging.Config{Level: logging.LevelInfo, Output: &buf})
	doc := model.New("T")
	h := NewHistory(WithLogger(logger))

	_ = h.Execute(NewAddCommand(doc, model.NewParagraph("a")))
	_ = h.Undo()
	_ = h.Redo()

	out := buf.String()
	for _, want := range []string{
		"Command executed: Add element: Paragraph",
		"Command undone: Add element: Paragraph",
		"Command redone: Add element: Paragraph",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("log missing %q:\n%s", want, out)
		}
	}
}
