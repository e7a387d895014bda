// Package history provides undo/redo for document mutations.
//
// Every structural edit is a Command with Execute and Undo. Built-in
// commands:
//   - AddCommand: append an element
//   - RemoveCommand: remove an element, restoring it on undo
//   - SetTitleCommand: change the document title
//   - CompoundCommand: group commands as one undo unit
//
// # History Stack
//
// History owns the undo and redo stacks:
//
//	h := NewHistory(WithLogger(logger))
//
//	h.Execute(NewAddCommand(doc, model.NewParagraph("Hello")))
//	h.Undo()
//	h.Redo()
//
// Executing a new command discards everything on the redo stack. A
// command whose Execute fails is not recorded; one whose Undo or Redo
// fails stays on the stack it was taken from.
//
// # Grouping
//
// Several commands can be executed as a single undo unit:
//
//	h.ExecuteGrouped("Add section",
//		NewAddCommand(doc, model.NewHeadline("Intro", 1)),
//		NewAddCommand(doc, model.NewParagraph("...")))
package history
