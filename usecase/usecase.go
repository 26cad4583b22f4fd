// Package usecase holds the application's handlers.
//
// Every handler prints to the writer it was built with and is meant to be owned
// by exactly one pipeline for the lifetime of the process.
package usecase

import (
	"fmt"
	"io"
	"os"

	"github.com/rise-and-shine/pipeline/ucdef"
)

var (
	_ ucdef.Typed = (*GreetCommand)(nil)
	_ ucdef.Typed = (*FarewellCommand)(nil)
	_ ucdef.Typed = (*WellbeingQuery)(nil)
	_ ucdef.Typed = (*OriginQuery)(nil)
)

// printer is embedded by every handler.
type printer struct {
	out io.Writer
}

func newPrinter(out io.Writer) printer {
	if out == nil {
		out = os.Stdout
	}
	return printer{out: out}
}

func (p printer) println(line string) {
	_, _ = fmt.Fprintln(p.out, line)
}
