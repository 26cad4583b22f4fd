package usecase

import (
	"io"

	"github.com/rise-and-shine/pipeline/ucdef"
)

// GreetCommand says hello.
type GreetCommand struct {
	printer
}

// NewGreetCommand returns a GreetCommand printing to out (os.Stdout when nil).
func NewGreetCommand(out io.Writer) *GreetCommand {
	return &GreetCommand{printer: newPrinter(out)}
}

func (c *GreetCommand) OperationID() string { return "GreetCommand" }

func (c *GreetCommand) UseCaseType() string { return ucdef.TypeCommand }

// Hi prints "Hello World!!!".
func (c *GreetCommand) Hi() {
	c.println("Hello World!!!")
}

// FarewellCommand says goodbye.
type FarewellCommand struct {
	printer
}

// NewFarewellCommand returns a FarewellCommand printing to out (os.Stdout when nil).
func NewFarewellCommand(out io.Writer) *FarewellCommand {
	return &FarewellCommand{printer: newPrinter(out)}
}

func (c *FarewellCommand) OperationID() string { return "FarewellCommand" }

func (c *FarewellCommand) UseCaseType() string { return ucdef.TypeCommand }

// Bye prints "Goodbye!!!".
func (c *FarewellCommand) Bye() {
	c.println("Goodbye!!!")
}
