package history

import (
	"fmt"

	"github.com/dshills/docedit/internal/model"
)

// Command represents a reversible document mutation.
type Command interface {
	// Execute performs the command and returns an error if it fails.
	Execute() error

	// Undo reverses the command and returns an error if it fails.
	Undo() error

	// Description returns a human-readable description of the command.
	Description() string
}

func kindName(el model.Element) string {
	if el == nil {
		return "nil"
	}
	return string(el.Kind())
}

// AddCommand appends an element to a document.
type AddCommand struct {
	doc *model.Document
	el  model.Element
}

// NewAddCommand creates a new add command.
func NewAddCommand(doc *model.Document, el model.Element) *AddCommand {
	return &AddCommand{doc: doc, el: el}
}

// Execute appends the element.
func (c *AddCommand) Execute() error {
	if err := c.doc.Append(c.el); err != nil {
		return fmt.Errorf("add %s: %w", kindName(c.el), err)
	}
	return nil
}

// Undo removes the exact instance that Execute appended.
func (c *AddCommand) Undo() error {
	if _, err := c.doc.Remove(c.el); err != nil {
		return fmt.Errorf("undo add %s: %w", kindName(c.el), err)
	}
	return nil
}

// Description returns a human-readable description.
func (c *AddCommand) Description() string {
	return "Add element: " + kindName(c.el)
}

// RestoreMode controls where RemoveCommand puts an element back on undo.
type RestoreMode int

const (
	// RestoreOriginalIndex re-inserts the element where it was removed.
	RestoreOriginalIndex RestoreMode = iota
	// RestoreAtEnd re-appends the element after all others.
	RestoreAtEnd
)

// RemoveCommand removes an element from a document.
type RemoveCommand struct {
	doc   *model.Document
	el    model.Element
	mode  RestoreMode
	index int
}

// NewRemoveCommand creates a remove command that restores the element at
// its original position.
func NewRemoveCommand(doc *model.Document, el model.Element) *RemoveCommand {
	return NewRemoveCommandMode(doc, el, RestoreOriginalIndex)
}

// NewRemoveCommandMode creates a remove command with an explicit restore
// mode.
func NewRemoveCommandMode(doc *model.Document, el model.Element, mode RestoreMode) *RemoveCommand {
	return &RemoveCommand{doc: doc, el: el, mode: mode, index: -1}
}

// Execute removes the element wherever it currently sits.
func (c *RemoveCommand) Execute() error {
	idx, err := c.doc.Remove(c.el)
	if err != nil {
		return fmt.Errorf("remove %s: %w", kindName(c.el), err)
	}
	c.index = idx
	return nil
}

// Undo puts the element back according to the restore mode.
func (c *RemoveCommand) Undo() error {
	var err error
	if c.mode == RestoreAtEnd || c.index < 0 {
		err = c.doc.Append(c.el)
	} else {
		err = c.doc.Insert(c.index, c.el)
	}
	if err != nil {
		return fmt.Errorf("undo remove %s: %w", kindName(c.el), err)
	}
	return nil
}

// Description returns a human-readable description.
func (c *RemoveCommand) Description() string {
	return "Remove element: " + kindName(c.el)
}

// SetTitleCommand changes a document's title.
type SetTitleCommand struct {
	doc      *model.Document
	title    string
	previous string
}

// NewSetTitleCommand creates a new title command.
func NewSetTitleCommand(doc *model.Document, title string) *SetTitleCommand {
	return &SetTitleCommand{doc: doc, title: title}
}

// Execute records the current title and sets the new one.
func (c *SetTitleCommand) Execute() error {
	c.previous = c.doc.Title()
	c.doc.SetTitle(c.title)
	return nil
}

// Undo restores the previous title.
func (c *SetTitleCommand) Undo() error {
	c.doc.SetTitle(c.previous)
	return nil
}

// Description returns a human-readable description.
func (c *SetTitleCommand) Description() string {
	return fmt.Sprintf("Set title: %q", c.title)
}

// CompoundCommand groups multiple commands as one undo unit.
type CompoundCommand struct {
	Name     string
	Commands []Command
}

// NewCompoundCommand creates a new compound command.
func NewCompoundCommand(name string, commands ...Command) *CompoundCommand {
	return &CompoundCommand{
		Name:     name,
		Commands: commands,
	}
}

// Execute runs all commands in order.
func (c *CompoundCommand) Execute() error {
	for i, cmd := range c.Commands {
		if err := cmd.Execute(); err != nil {
			// Roll back the steps that succeeded.
			for j := i - 1; j >= 0; j-- {
				_ = c.Commands[j].Undo()
			}
			return fmt.Errorf("compound command '%s' step %d: %w", c.Name, i, err)
		}
	}
	return nil
}

// Undo reverses all commands in reverse order.
func (c *CompoundCommand) Undo() error {
	for i := len(c.Commands) - 1; i >= 0; i-- {
		if err := c.Commands[i].Undo(); err != nil {
			return fmt.Errorf("undo compound command '%s' step %d: %w", c.Name, i, err)
		}
	}
	return nil
}

// Description returns the compound command's name.
func (c *CompoundCommand) Description() string {
	if c.Name != "" {
		return c.Name
	}
	if len(c.Commands) == 1 {
		return c.Commands[0].Description()
	}
	return fmt.Sprintf("%d operations", len(c.Commands))
}

// Add adds a command to the compound command.
func (c *CompoundCommand) Add(cmd Command) {
	c.Commands = append(c.Commands, cmd)
}

// IsEmpty returns true if the compound command has no commands.
func (c *CompoundCommand) IsEmpty() bool {
	return len(c.Commands) == 0
}
