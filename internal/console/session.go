// Package console implements the line-oriented menu that drives a
// docedit session.
package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/dshills/docedit/internal/engine/history"
	"github.com/dshills/docedit/internal/export"
	"github.com/dshills/docedit/internal/logging"
	"github.com/dshills/docedit/internal/model"
	"github.com/dshills/docedit/internal/persist"
	"github.com/dshills/docedit/internal/storage"
	"github.com/dshills/docedit/internal/wordcount"
)

// Defaults used when the user enters an unparsable number.
const (
	DefaultImageWidth  = model.DefaultImageWidth
	DefaultImageHeight = model.DefaultImageHeight
	DefaultLevel       = model.MinHeadlineLevel

	// UntitledDocument is used for an empty title.
	UntitledDocument = "Untitled Document"
)

// errQuit ends the menu loop.
var errQuit = errors.New("quit")

// Session is one interactive editing session. It owns the current
// document and its history.
type Session struct {
	in      *bufio.Scanner
	out     io.Writer
	logger  *logging.Logger
	style   palette
	prompts bool

	doc      *model.Document
	detach   func()
	observer model.Observer
	history  *history.History

	store      *persist.Store
	cloud      storage.Backend
	policy     wordcount.Policy
	exportDir  string
	exportOpts []export.Option
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the session logger.
func WithLogger(l *logging.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithStore sets the local document store.
func WithStore(st *persist.Store) Option {
	return func(s *Session) {
		if st != nil {
			s.store = st
		}
	}
}

// WithCloud sets the remote store. Without one the cloud actions
// report the service as unavailable.
func WithCloud(b storage.Backend) Option {
	return func(s *Session) {
		s.cloud = b
	}
}

// WithPolicy sets the word count policy.
func WithPolicy(p wordcount.Policy) Option {
	return func(s *Session) {
		if p != nil {
			s.policy = p
		}
	}
}

// WithHistory sets the command history.
func WithHistory(h *history.History) Option {
	return func(s *Session) {
		if h != nil {
			s.history = h
		}
	}
}

// WithExportDir sets the directory relative export paths resolve against.
func WithExportDir(dir string) Option {
	return func(s *Session) {
		s.exportDir = dir
	}
}

// WithExportOptions sets options passed to every exporter.
func WithExportOptions(opts ...export.Option) Option {
	return func(s *Session) {
		s.exportOpts = append(s.exportOpts, opts...)
	}
}

// WithPrompts forces the menu and prompts on or off. By default they are
// shown only when input is a terminal.
func WithPrompts(on bool) Option {
	return func(s *Session) {
		s.prompts = on
	}
}

// NewSession creates a session reading commands from in and writing to
// out.
func NewSession(in io.Reader, out io.Writer, opts ...Option) *Session {
	s := &Session{
		in:      bufio.NewScanner(in),
		out:     out,
		logger:  logging.Nop(),
		style:   newPalette(out),
		prompts: isTerminal(in),
		policy:  wordcount.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.history == nil {
		s.history = history.NewHistory(history.WithLogger(s.logger))
	}
	if s.store == nil {
		s.store = persist.NewStore(persist.WithLogger(s.logger))
	}
	s.observer = NewObserver(out, s.logger)
	return s
}

// Document returns the current document, or nil.
func (s *Session) Document() *model.Document {
	return s.doc
}

// History returns the session's command history.
func (s *Session) History() *history.History {
	return s.history
}

// Run processes menu choices until exit or end of input. Action errors
// are reported and the loop continues; only read errors are returned.
func (s *Session) Run() error {
	s.welcome()
	for {
		s.menu()
		choice, ok := s.readLine()
		if !ok {
			break
		}
		err := s.dispatch(strings.TrimSpace(choice))
		if errors.Is(err, errQuit) {
			break
		}
		if err != nil {
			s.logger.Error("Error processing command: %v", err)
			s.fail("An error occurred: %v", err)
		}
		s.println("")
	}

	s.println("Thank you for using Document Editor!")
	s.logger.Info("Application closed by user")
	if s.detach != nil {
		s.detach()
	}
	return s.in.Err()
}

type action struct {
	key   string
	label string
	run   func(*Session) error
}

var actions = []action{
	{"1", "Create New Document", (*Session).createDocument},
	{"2", "Add Element (Paragraph/Headline/Image)", (*Session).addElement},
	{"3", "Render Document to Console", (*Session).renderDocument},
	{"4", "Perform Word Count", (*Session).wordCount},
	{"5", "Export Document (HTML/PDF/Markdown/Plain Text)", (*Session).exportDocument},
	{"6", "Undo Last Action", (*Session).undo},
	{"7", "Redo Last Action", (*Session).redo},
	{"8", "Save Document (Local)", (*Session).saveDocument},
	{"9", "Load Document (Local)", (*Session).loadDocument},
	{"10", "Save to Cloud Storage", (*Session).saveToCloud},
	{"11", "Load from Cloud Storage", (*Session).loadFromCloud},
	{"12", "List Cloud Documents", (*Session).listCloud},
	{"13", "Remove Element", (*Session).removeElement},
	{"0", "Exit", func(*Session) error { return errQuit }},
}

func (s *Session) dispatch(choice string) error {
	for _, a := range actions {
		if a.key == choice {
			return a.run(s)
		}
	}
	s.println("Invalid choice. Please try again.")
	return nil
}

func (s *Session) welcome() {
	if !s.prompts {
		return
	}
	s.println(s.style.banner.Render("DOCUMENT EDITOR"))
	s.println("")
}

func (s *Session) menu() {
	if !s.prompts {
		return
	}
	s.println(s.style.header.Render("MAIN MENU"))
	for _, a := range actions {
		s.printf("%3s. %s\n", a.key, a.label)
	}
	if s.doc != nil {
		modified := ""
		if s.doc.IsDirty() {
			modified = " [MODIFIED]"
		}
		s.printf("Current Document: %s%s\n", s.doc.Title(), modified)
	}
	s.println(s.style.dim.Render(fmt.Sprintf("Undo Available: %d | Redo Available: %d",
		s.history.UndoCount(), s.history.RedoCount())))
	s.prompt("\nEnter your choice: ")
}

// setDocument makes doc current, moving the observer over to it. The
// history refers to the previous document, so it is cleared.
func (s *Session) setDocument(doc *model.Document) {
	if s.detach != nil {
		s.detach()
	}
	s.doc = doc
	s.detach = doc.Attach(s.observer)
	s.history.Clear()
}

// requireDocument reports whether a document is open.
func (s *Session) requireDocument() bool {
	if s.doc == nil {
		s.fail("No document is currently open. Please create a document first.")
		return false
	}
	return true
}

// requireCloud reports whether the remote store can be used.
func (s *Session) requireCloud() bool {
	if s.cloud == nil || !s.cloud.Ready() {
		s.fail("Cloud storage service not available.")
		return false
	}
	return true
}

// resolveExport places relative export paths under the export directory.
func (s *Session) resolveExport(name string) string {
	if s.exportDir == "" || filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(s.exportDir, name)
}

func (s *Session) readLine() (string, bool) {
	if !s.in.Scan() {
		return "", false
	}
	return s.in.Text(), true
}

// ask prompts and returns the trimmed reply. End of input yields "".
func (s *Session) ask(prompt string) string {
	s.prompt(prompt)
	line, _ := s.readLine()
	return strings.TrimSpace(line)
}

func (s *Session) prompt(text string) {
	if s.prompts {
		fmt.Fprint(s.out, text)
	}
}

func (s *Session) println(text string) {
	fmt.Fprintln(s.out, text)
}

func (s *Session) printf(format string, args ...any) {
	fmt.Fprintf(s.out, format, args...)
}

func (s *Session) ok(format string, args ...any) {
	s.println(s.style.success.Render("✓ " + fmt.Sprintf(format, args...)))
}

func (s *Session) fail(format string, args ...any) {
	s.println(s.style.failure.Render("✗ " + fmt.Sprintf(format, args...)))
}
