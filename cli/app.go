// Package cli wires handlers into pipelines and exposes them as commands.
package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/code19m/errx"
	"github.com/samber/lo"

	"github.com/rise-and-shine/pipeline/pipeline"
	"github.com/rise-and-shine/pipeline/ucdef"
	"github.com/rise-and-shine/pipeline/usecase"
)

// Scenario is one handler operation invoked through its pipeline.
type Scenario struct {
	Name    string
	Handler string
	Kind    string

	run func(ctx context.Context)
}

// App owns one pipeline per handler and runs the scenarios in a fixed order.
type App struct {
	scenarios []Scenario
}

// NewApp builds every handler, wraps each one in its own pipeline and binds
// the scenarios. Markers, handler prints and query answers all go to out.
func NewApp(out io.Writer, opts ...pipeline.Option) (*App, error) {
	opts = append([]pipeline.Option{pipeline.WithOutput(out)}, opts...)
	answer := func(s string) { _, _ = fmt.Fprintln(out, s) }

	greet, err := bind("greet", usecase.NewGreetCommand(out), opts,
		func(ctx context.Context, p *pipeline.Pipeline[*usecase.GreetCommand]) {
			p.Send(ctx, (*usecase.GreetCommand).Hi)
		})
	if err != nil {
		return nil, err
	}

	farewell, err := bind("farewell", usecase.NewFarewellCommand(out), opts,
		func(ctx context.Context, p *pipeline.Pipeline[*usecase.FarewellCommand]) {
			p.Send(ctx, (*usecase.FarewellCommand).Bye)
		})
	if err != nil {
		return nil, err
	}

	wellbeing, err := bind("wellbeing", usecase.NewWellbeingQuery(out), opts,
		func(ctx context.Context, p *pipeline.Pipeline[*usecase.WellbeingQuery]) {
			answer(pipeline.Get(ctx, p, (*usecase.WellbeingQuery).HowAreYou))
		})
	if err != nil {
		return nil, err
	}

	origin, err := bind("origin", usecase.NewOriginQuery(out), opts,
		func(ctx context.Context, p *pipeline.Pipeline[*usecase.OriginQuery]) {
			answer(pipeline.Get(ctx, p, (*usecase.OriginQuery).WhereAreYouFrom))
		})
	if err != nil {
		return nil, err
	}

	return &App{scenarios: []Scenario{greet, farewell, wellbeing, origin}}, nil
}

func bind[H ucdef.Typed](
	name string,
	handler H,
	opts []pipeline.Option,
	run func(context.Context, *pipeline.Pipeline[H]),
) (Scenario, error) {
	p, err := pipeline.Of(handler, opts...)
	if err != nil {
		return Scenario{}, errx.Wrap(err, errx.WithDetails(errx.D{"scenario": name}))
	}

	return Scenario{
		Name:    name,
		Handler: p.Name(),
		Kind:    handler.UseCaseType(),
		run:     func(ctx context.Context) { run(ctx, p) },
	}, nil
}

// Scenarios returns the scenarios in execution order.
func (a *App) Scenarios() []Scenario {
	return a.scenarios
}

// Run executes the scenarios named in only, or all of them when only is empty,
// in execution order. Unknown names fail before anything runs.
func (a *App) Run(ctx context.Context, only ...string) error {
	selected, err := a.selectScenarios(only)
	if err != nil {
		return err
	}

	for _, s := range selected {
		s.run(ctx)
	}
	return nil
}

func (a *App) selectScenarios(only []string) ([]Scenario, error) {
	if len(only) == 0 {
		return a.scenarios, nil
	}

	known := lo.Map(a.scenarios, func(s Scenario, _ int) string { return s.Name })
	if unknown := lo.Without(only, known...); len(unknown) > 0 {
		return nil, errx.New(
			"unknown scenario",
			errx.WithCode(CodeUnknownScenario),
			errx.WithType(errx.T_Validation),
			errx.WithDetails(errx.D{"unknown": unknown, "known": known}),
		)
	}

	return lo.Filter(a.scenarios, func(s Scenario, _ int) bool {
		return lo.Contains(only, s.Name)
	}), nil
}
