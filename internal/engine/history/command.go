package history

import (
	"fmt"
)

// Command represents a recorded edit that can be re-applied and undone.
type Command interface {
	// Execute re-applies the command.
	Execute(t Target) error

	// Undo reverses the command.
	Undo(t Target) error

	// Description returns a human-readable description of the command.
	Description() string
}

// EditCommand replays one Operation.
type EditCommand struct {
	Name string
	Op   *Operation
}

// NewEditCommand wraps op.
func NewEditCommand(name string, op *Operation) *EditCommand {
	return &EditCommand{Name: name, Op: op}
}

// Execute writes the new text again and restores the later snapshot.
func (c *EditCommand) Execute(t Target) error {
	op := c.Op
	return op.apply(t, op.OldText, op.NewText, op.SelectionAfter, op.SpansAfter)
}

// Undo writes the old text back and restores the earlier snapshot.
func (c *EditCommand) Undo(t Target) error {
	op := c.Op
	return op.apply(t, op.NewText, op.OldText, op.SelectionBefore, op.SpansBefore)
}

// Description returns the command name and the edit shape.
func (c *EditCommand) Description() string {
	switch {
	case c.Op.IsInsert():
		return fmt.Sprintf("%s: insert %d bytes at %d", c.Name, len(c.Op.NewText), c.Op.Start)
	case c.Op.IsDelete():
		return fmt.Sprintf("%s: delete %d bytes at %d", c.Name, len(c.Op.OldText), c.Op.Start)
	default:
		return fmt.Sprintf("%s: replace %d bytes at %d", c.Name, len(c.Op.OldText), c.Op.Start)
	}
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
func (c *CompoundCommand) Execute(t Target) error {
	for i, cmd := range c.Commands {
		if err := cmd.Execute(t); err != nil {
			for j := i - 1; j >= 0; j-- {
				_ = c.Commands[j].Undo(t)
			}
			return fmt.Errorf("compound command '%s' step %d: %w", c.Name, i, err)
		}
	}
	return nil
}

// Undo reverses all commands in reverse order.
func (c *CompoundCommand) Undo(t Target) error {
	for i := len(c.Commands) - 1; i >= 0; i-- {
		if err := c.Commands[i].Undo(t); err != nil {
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
