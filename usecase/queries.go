package usecase

import (
	"io"

	"github.com/rise-and-shine/pipeline/ucdef"
)

// WellbeingQuery asks how things are going.
type WellbeingQuery struct {
	printer
}

// NewWellbeingQuery returns a WellbeingQuery printing to out (os.Stdout when nil).
func NewWellbeingQuery(out io.Writer) *WellbeingQuery {
	return &WellbeingQuery{printer: newPrinter(out)}
}

func (q *WellbeingQuery) OperationID() string { return "WellbeingQuery" }

func (q *WellbeingQuery) UseCaseType() string { return ucdef.TypeQuery }

// HowAreYou prints the question and returns the answer.
func (q *WellbeingQuery) HowAreYou() string {
	q.println("How are you?")
	return "I'm fine, thank you!"
}

// OriginQuery asks where someone is from.
type OriginQuery struct {
	printer
}

// NewOriginQuery returns an OriginQuery printing to out (os.Stdout when nil).
func NewOriginQuery(out io.Writer) *OriginQuery {
	return &OriginQuery{printer: newPrinter(out)}
}

func (q *OriginQuery) OperationID() string { return "OriginQuery" }

func (q *OriginQuery) UseCaseType() string { return ucdef.TypeQuery }

// WhereAreYouFrom prints the question and returns the answer.
func (q *OriginQuery) WhereAreYouFrom() string {
	q.println("Where are you from?")
	return "I'm from Portugal!"
}
