package console

import (
	"errors"
	"strconv"

	"github.com/dshills/docedit/internal/engine/history"
	"github.com/dshills/docedit/internal/export"
	"github.com/dshills/docedit/internal/model"
	"github.com/dshills/docedit/internal/storage"
	"github.com/dshills/docedit/internal/traverse"
)

const rule = "═══════════════════════════════════════"

func (s *Session) createDocument() error {
	title := s.ask("Enter document title: ")
	if title == "" {
		title = UntitledDocument
	}

	s.setDocument(model.New(title))
	s.ok("Document created: %s", title)
	s.logger.Info("New document created: %s", title)
	return nil
}

func (s *Session) addElement() error {
	if !s.requireDocument() {
		return nil
	}

	s.println("\nSelect element type:")
	s.println("1. Paragraph")
	s.println("2. Headline")
	s.println("3. Image")

	var (
		kind   model.Kind
		fields model.ElementFields
	)
	switch s.ask("Choice: ") {
	case "1":
		kind = model.KindParagraph
		fields.Text = s.askText("Enter paragraph text: ")
	case "2":
		kind = model.KindHeadline
		fields.Text = s.askText("Enter headline text: ")
		fields.Level = s.askInt("Enter level (1-3): ", "level", DefaultLevel)
	case "3":
		kind = model.KindImage
		fields.Filename = s.askText("Enter image filename: ")
		fields.Width = s.askInt("Enter width: ", "width", DefaultImageWidth)
		fields.Height = s.askInt("Enter height: ", "height", DefaultImageHeight)
	default:
		s.println("Invalid choice.")
		return nil
	}

	el, err := model.NewElement(kind, fields)
	if err != nil {
		return err
	}
	if err := s.history.Execute(history.NewAddCommand(s.doc, el)); err != nil {
		return err
	}
	s.ok("Element added successfully.")
	return nil
}

// askText reads a line without trimming it.
func (s *Session) askText(prompt string) string {
	s.prompt(prompt)
	line, _ := s.readLine()
	return line
}

// askInt reads an integer, falling back to def when the reply does not
// parse.
func (s *Session) askInt(prompt, what string, def int) int {
	n, err := strconv.Atoi(s.ask(prompt))
	if err != nil {
		s.printf("Invalid %s, using %d.\n", what, def)
		return def
	}
	return n
}

func (s *Session) removeElement() error {
	if !s.requireDocument() {
		return nil
	}
	if s.doc.Len() == 0 {
		s.fail("Document has no elements.")
		return nil
	}

	for i, el := range s.doc.Elements() {
		s.printf("%d. %s\n", i+1, el.Render())
	}
	n, err := strconv.Atoi(s.ask("Element number to remove: "))
	if err != nil || n < 1 || n > s.doc.Len() {
		s.fail("Invalid element number.")
		return nil
	}

	el, ok := s.doc.At(n - 1)
	if !ok {
		s.fail("Invalid element number.")
		return nil
	}
	if err := s.history.Execute(history.NewRemoveCommand(s.doc, el)); err != nil {
		return err
	}
	s.ok("Element removed.")
	return nil
}

func (s *Session) renderDocument() error {
	if !s.requireDocument() {
		return nil
	}
	s.println("\n" + traverse.Render(s.doc))
	return nil
}

func (s *Session) wordCount() error {
	if !s.requireDocument() {
		return nil
	}

	n := traverse.CountWords(s.doc, s.policy)
	s.println(rule)
	s.printf("  Word Count: %d\n", n)
	s.println(rule)
	s.logger.Info("Word count performed: %d words", n)
	return nil
}

func (s *Session) exportDocument() error {
	if !s.requireDocument() {
		return nil
	}

	s.println("\nSelect export format:")
	for i, f := range export.Formats() {
		s.printf("%d. %s\n", i+1, f.Label())
	}
	choice := s.ask("Choice: ")
	filename := s.ask("Enter output filename: ")
	if filename == "" {
		s.fail("Invalid filename.")
		return nil
	}

	format, err := export.ParseFormat(choice)
	if err != nil {
		s.fail("Invalid export format.")
		return nil
	}
	exporter, err := export.New(format, s.exportOpts...)
	if err != nil {
		s.logger.Error("Export setup failed: %v", err)
		s.fail("Export failed: %v", err)
		return nil
	}

	dest := s.resolveExport(filename)
	if format == export.FormatPDF {
		dest = export.PDFPath(dest)
	}
	if err := exporter.Export(s.doc, dest); err != nil {
		s.logger.Error("Export failed: %v", err)
		s.fail("Export failed: %v", err)
		return nil
	}
	s.ok("Document exported to: %s", dest)
	return nil
}

func (s *Session) undo() error {
	if err := s.history.Undo(); err != nil {
		if errors.Is(err, history.ErrNothingToUndo) {
			s.fail("Nothing to undo.")
			return nil
		}
		return err
	}
	s.ok("Last action undone.")
	return nil
}

func (s *Session) redo() error {
	if err := s.history.Redo(); err != nil {
		if errors.Is(err, history.ErrNothingToRedo) {
			s.fail("Nothing to redo.")
			return nil
		}
		return err
	}
	s.ok("Last action redone.")
	return nil
}

func (s *Session) saveDocument() error {
	if !s.requireDocument() {
		return nil
	}
	filename := s.ask("Enter filename to save: ")
	if filename == "" {
		s.fail("Invalid filename.")
		return nil
	}

	if err := s.store.Save(s.doc, filename); err != nil {
		s.logger.Error("Save failed: %v", err)
		s.fail("Failed to save document.")
		return nil
	}
	s.ok("Document saved successfully to: %s", filename)
	return nil
}

func (s *Session) loadDocument() error {
	filename := s.ask("Enter filename to load: ")
	if filename == "" {
		s.fail("Invalid filename.")
		return nil
	}

	doc, err := s.store.Load(filename)
	if err != nil {
		s.logger.Error("Load failed: %v", err)
		s.fail("Failed to load document.")
		return nil
	}
	s.setDocument(doc)
	s.ok("Document loaded successfully: %s", doc.Title())
	return nil
}

func (s *Session) saveToCloud() error {
	if !s.requireDocument() || !s.requireCloud() {
		return nil
	}
	name := s.ask("Enter cloud filename: ")
	if name == "" {
		s.fail("Invalid filename.")
		return nil
	}

	id, err := s.cloud.Upload(s.doc, name)
	if err != nil {
		s.logger.Error("Cloud save failed: %v", err)
		s.fail("Failed to save to cloud: %v", err)
		return nil
	}
	s.ok("Document saved to %s: %s", s.cloud.Name(), id)
	s.logger.Info("Document uploaded to cloud: %s", name)
	return nil
}

func (s *Session) loadFromCloud() error {
	if !s.requireCloud() {
		return nil
	}
	id := s.ask("Enter cloud file ID or name: ")
	if id == "" {
		s.fail("Invalid file ID.")
		return nil
	}

	doc, err := s.cloud.Download(id)
	if err != nil {
		s.logger.Error("Cloud load failed: %v", err)
		s.fail("Failed to load from cloud: %v", err)
		return nil
	}
	s.setDocument(doc)
	s.ok("Document loaded from %s: %s", s.cloud.Name(), doc.Title())
	s.logger.Info("Document downloaded from cloud: %s", id)
	return nil
}

func (s *Session) listCloud() error {
	if !s.requireCloud() {
		return nil
	}
	pattern := s.ask("Filter (glob, empty for all): ")

	names, err := s.cloud.List()
	if err != nil {
		s.logger.Error("Cloud list failed: %v", err)
		s.fail("Failed to list cloud documents: %v", err)
		return nil
	}
	names = storage.Filter(names, pattern)

	s.println("\n" + rule)
	s.println(s.style.header.Render("  Documents in " + s.cloud.Name()))
	s.println(rule)
	if len(names) == 0 {
		s.println("  (No documents found)")
	}
	for i, name := range names {
		s.printf("  %d. %s\n", i+1, name)
	}
	s.println(rule)

	s.logger.Info("Listed %d documents from cloud", len(names))
	return nil
}
