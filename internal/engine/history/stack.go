package history

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dshills/docedit/internal/logging"
)

// Common errors for history operations.
var (
	ErrNothingToUndo = errors.New("nothing to undo")
	ErrNothingToRedo = errors.New("nothing to redo")
	ErrNilCommand    = errors.New("nil command")
)

// OperationInfo describes a recorded command.
type OperationInfo struct {
	Description string
	Timestamp   time.Time
}

// undoEntry wraps a command with metadata.
type undoEntry struct {
	command   Command
	timestamp time.Time
}

func (e *undoEntry) info() OperationInfo {
	return OperationInfo{
		Description: e.command.Description(),
		Timestamp:   e.timestamp,
	}
}

// History manages undo/redo state for a document.
type History struct {
	mu sync.Mutex

	undoStack []*undoEntry
	redoStack []*undoEntry

	// maxEntries bounds the undo stack; zero means unbounded.
	maxEntries int
	logger     *logging.Logger
	now        func() time.Time
}

// Option configures a History.
type Option func(*History)

// WithLogger sets the logger that records executed, undone and redone
// commands.
func WithLogger(l *logging.Logger) Option {
	return func(h *History) {
		if l != nil {
			h.logger = l
		}
	}
}

// WithMaxEntries bounds the undo stack. Oldest entries are dropped first.
func WithMaxEntries(n int) Option {
	return func(h *History) {
		h.maxEntries = max(n, 0)
	}
}

// NewHistory creates a new, unbounded history manager.
func NewHistory(opts ...Option) *History {
	h := &History{
		logger: logging.Nop(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Execute runs a command and adds it to the undo stack. The redo stack
// is cleared. A command that fails is not recorded.
func (h *History) Execute(cmd Command) error {
	if cmd == nil {
		return ErrNilCommand
	}
	if err := cmd.Execute(); err != nil {
		return err
	}

	h.push(cmd)
	h.logger.Info("Command executed: %s", cmd.Description())
	return nil
}

// ExecuteGrouped executes several commands as a single undo unit. If one
// fails, those before it are rolled back and nothing is recorded.
func (h *History) ExecuteGrouped(name string, cmds ...Command) error {
	switch len(cmds) {
	case 0:
		return nil
	case 1:
		return h.Execute(cmds[0])
	}
	return h.Execute(NewCompoundCommand(name, cmds...))
}

func (h *History) push(cmd Command) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.undoStack = append(h.undoStack, &undoEntry{
		command:   cmd,
		timestamp: h.now(),
	})
	h.redoStack = nil
	h.trim()
}

// trim drops the oldest undo entries beyond maxEntries. mu must be held.
func (h *History) trim() {
	if h.maxEntries > 0 && len(h.undoStack) > h.maxEntries {
		excess := len(h.undoStack) - h.maxEntries
		h.undoStack = h.undoStack[excess:]
	}
}

// Undo undoes the last command.
// The lock is released while the command runs so observers triggered by
// the document change may query the history.
func (h *History) Undo() error {
	h.mu.Lock()
	if len(h.undoStack) == 0 {
		h.mu.Unlock()
		return ErrNothingToUndo
	}

	entry := h.undoStack[len(h.undoStack)-1]
	h.undoStack = h.undoStack[:len(h.undoStack)-1]
	h.mu.Unlock()

	if err := entry.command.Undo(); err != nil {
		h.mu.Lock()
		h.undoStack = append(h.undoStack, entry)
		h.mu.Unlock()
		h.logger.Error("Undo failed: %s: %v", entry.command.Description(), err)
		return fmt.Errorf("undo: %w", err)
	}

	h.mu.Lock()
	h.redoStack = append(h.redoStack, entry)
	h.mu.Unlock()
	h.logger.Info("Command undone: %s", entry.command.Description())
	return nil
}

// Redo re-executes the last undone command.
func (h *History) Redo() error {
	h.mu.Lock()
	if len(h.redoStack) == 0 {
		h.mu.Unlock()
		return ErrNothingToRedo
	}

	entry := h.redoStack[len(h.redoStack)-1]
	h.redoStack = h.redoStack[:len(h.redoStack)-1]
	h.mu.Unlock()

	if err := entry.command.Execute(); err != nil {
		h.mu.Lock()
		h.redoStack = append(h.redoStack, entry)
		h.mu.Unlock()
		h.logger.Error("Redo failed: %s: %v", entry.command.Description(), err)
		return fmt.Errorf("redo: %w", err)
	}

	h.mu.Lock()
	h.undoStack = append(h.undoStack, entry)
	h.trim()
	h.mu.Unlock()
	h.logger.Info("Command redone: %s", entry.command.Description())
	return nil
}

// CanUndo returns true if undo is available.
func (h *History) CanUndo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.undoStack) > 0
}

// CanRedo returns true if redo is available.
func (h *History) CanRedo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.redoStack) > 0
}

// UndoCount returns the number of undo operations available.
func (h *History) UndoCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.undoStack)
}

// RedoCount returns the number of redo operations available.
func (h *History) RedoCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.redoStack)
}

// Clear removes all undo/redo history.
func (h *History) Clear() {
	h.mu.Lock()
	h.undoStack = nil
	h.redoStack = nil
	h.mu.Unlock()

	h.logger.Info("Command history cleared")
}

// PeekUndo returns info about the next undo operation without removing it.
func (h *History) PeekUndo() (OperationInfo, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.undoStack) == 0 {
		return OperationInfo{}, false
	}
	return h.undoStack[len(h.undoStack)-1].info(), true
}

// PeekRedo returns info about the next redo operation without removing it.
func (h *History) PeekRedo() (OperationInfo, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.redoStack) == 0 {
		return OperationInfo{}, false
	}
	return h.redoStack[len(h.redoStack)-1].info(), true
}

// UndoInfo lists the undo stack, oldest first.
func (h *History) UndoInfo() []OperationInfo {
	h.mu.Lock()
	defer h.mu.Unlock()

	result := make([]OperationInfo, len(h.undoStack))
	for i, entry := range h.undoStack {
		result[i] = entry.info()
	}
	return result
}

// MaxEntries returns the undo bound; zero means unbounded.
func (h *History) MaxEntries() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.maxEntries
}
