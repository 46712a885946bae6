// Where: internal/sequence/sequence.go
// What: Ordered step execution with fatal/best-effort severities.
// Why: Model a deploy as a typed step list instead of ad hoc control flow.
package sequence

import (
	"context"
	"fmt"
)

// Severity controls how the runner reacts to a failing step.
type Severity int

const (
	// Fatal aborts the whole sequence on failure.
	Fatal Severity = iota
	// BestEffort logs a warning on failure and continues.
	BestEffort
)

// Step is a single named operation in a sequence.
type Step struct {
	Name     string
	Severity Severity
	Run      func(ctx context.Context) error
}

// Reporter receives progress notifications while a sequence runs.
type Reporter interface {
	StepStart(name string)
	StepDone(name string)
	StepWarn(name string, err error)
	StepFailed(name string, err error)
}

// FatalError identifies the step that aborted a sequence.
type FatalError struct {
	Step string
	Err  error
}

func (e *FatalError) Error() string {
	return fmt.Sprintf("step %q failed: %v", e.Step, e.Err)
}

func (e *FatalError) Unwrap() error {
	return e.Err
}

// Run executes steps in order. A failing Fatal step stops execution and is
// returned as a *FatalError; a failing BestEffort step is reported and
// skipped. Context cancellation stops the sequence before the next step.
func Run(ctx context.Context, steps []Step, reporter Reporter) error {
	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			return err
		}
		reporter.StepStart(step.Name)
		if err := step.Run(ctx); err != nil {
			if step.Severity == BestEffort {
				reporter.StepWarn(step.Name, err)
				continue
			}
			reporter.StepFailed(step.Name, err)
			return &FatalError{Step: step.Name, Err: err}
		}
		reporter.StepDone(step.Name)
	}
	return nil
}
