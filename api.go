package quotient

import (
	"context"

	"github.com/quotient-lang/quotient/internal/panicerr"
)

// Interpreter is the host-facing handle of spec §6: a single Evaluator
// instance plus the panic-isolation boundary every call runs behind (see
// SPEC_FULL.md §10.5) — a bug in a primitive should
// surface as an Internal Error, never bring down the embedding host.
type Interpreter struct {
	ev *Evaluator
}

// New returns an Interpreter with an empty Stack, empty Register, empty
// OutputBuffer, and a Dictionary holding every Builtin (spec §6's new()).
func New(opts ...Option) *Interpreter {
	in := &Interpreter{ev: NewEvaluator()}
	apply(in, opts...)
	return in
}

// ExecuteResult is execute()'s return shape.
type ExecuteResult struct {
	Status string // "OK" or an "Error: ..." message
	Output string
}

// Execute runs source to completion (spec §6's execute). OutputBuffer is
// cleared at the start of the session, as required.
func (in *Interpreter) Execute(source string) ExecuteResult {
	err := panicerr.Recover("Execute", func() error { return in.ev.execute(source) })
	res := ExecuteResult{Status: "OK", Output: in.ev.output.String()}
	if err != nil {
		if panicerr.IsPanic(err) || panicerr.IsExit(err) {
			in.ev.logf("recovered panic in Execute: %v", err)
		}
		res.Status = toLanguageError(err).Error()
	}
	return res
}

// ExecuteContext is Execute with an explicit deadline/cancellation,
// wired to cmd/quotient's --timeout flag (SPEC_FULL.md §10.3) the same
// way the teacher's main.go builds a context.WithTimeout around vm.Run.
// ctx is checked before each top-level dispatch unit; a User word's body,
// once entered, runs without further checks (the step limit still
// applies). An expired/cancelled ctx
// surfaces as Error{Kind: Timeout} rather than a bare context error, so
// Status stays a single spec §7 "Error: ..." line either way.
func (in *Interpreter) ExecuteContext(ctx context.Context, source string) ExecuteResult {
	err := panicerr.Recover("Execute", func() error { return in.ev.executeCtx(ctx, source) })
	res := ExecuteResult{Status: "OK", Output: in.ev.output.String()}
	if err != nil {
		if panicerr.IsPanic(err) || panicerr.IsExit(err) {
			in.ev.logf("recovered panic in Execute: %v", err)
		}
		res.Status = toLanguageError(err).Error()
	}
	return res
}

// InitStep tokenizes source and opens a step continuation (spec §6's
// init_step). Returns "OK" or an error message.
func (in *Interpreter) InitStep(source string) string {
	var status string
	err := panicerr.Recover("InitStep", func() error { return in.ev.initStep(source) })
	if err != nil {
		status = toLanguageError(err).Error()
	} else {
		status = "OK"
	}
	return status
}

// StepResult is step()'s return shape (spec §4.5.7/§6).
type StepResult struct {
	Output   string
	Position int
	Total    int
	HasMore  bool
	Status   string // "" when no error occurred this step
}

// Step advances the open continuation by exactly one step.
func (in *Interpreter) Step() StepResult {
	var sr stepResult
	err := panicerr.Recover("Step", func() error {
		sr = in.ev.step()
		return sr.Err
	})
	res := StepResult{
		Output:   sr.OutputDelta,
		Position: sr.Position,
		Total:    sr.Total,
		HasMore:  sr.HasMore,
	}
	if err != nil {
		if panicerr.IsPanic(err) || panicerr.IsExit(err) {
			in.ev.logf("recovered panic in Step: %v", err)
		}
		res.Status = toLanguageError(err).Error()
		res.HasMore = false
	}
	return res
}

// GetStack returns the data stack, serialized bottom to top (spec §6).
func (in *Interpreter) GetStack() []SerializedValue {
	return serializeStack(in.ev.Stack)
}

// GetRegister returns the serialized register value, or nil if empty.
func (in *Interpreter) GetRegister() *SerializedValue {
	v, ok := in.ev.registerGet()
	if !ok {
		return nil
	}
	sv := serializeValue(v)
	return &sv
}

// GetOutput returns the current OutputBuffer without consuming it — a
// supplement over spec §6 grounded in original_source/rust's get_output()
// (SPEC_FULL.md §12).
func (in *Interpreter) GetOutput() string {
	return in.ev.output.String()
}

// GetCustomWords returns every User word's name, sorted case-insensitively.
func (in *Interpreter) GetCustomWords() []string {
	infos := in.ev.Dict.ListUser()
	names := make([]string, len(infos))
	for i, info := range infos {
		names[i] = info.Name
	}
	in.ev.CustomWordsDirty = false
	return names
}

// GetCustomWordsInfo returns [name, description-or-null, protected] for
// every User word, sorted case-insensitively (spec §6).
func (in *Interpreter) GetCustomWordsInfo() []customWordInfoTriple {
	infos := in.ev.Dict.ListUser()
	in.ev.CustomWordsDirty = false
	return serializeCustomWordsInfo(infos)
}

// Reset atomically clears Stack, Register, OutputBuffer, any step
// continuation, and every User word; Builtins are preserved (spec §5).
func (in *Interpreter) Reset() {
	in.ev.resetSession()
	in.ev.Dict.removeAllUser()
	in.ev.CustomWordsDirty = true
}

// toLanguageError normalizes any error (including a recovered panic or
// goroutine exit) into this package's *Error, so Status is always a single
// "Error: ..." line (spec §7).
func toLanguageError(err error) *Error {
	if e, ok := err.(*Error); ok {
		return e
	}
	if panicerr.IsPanic(err) || panicerr.IsExit(err) {
		return newErr(Internal, "%v", err)
	}
	return newErr(Internal, "%v", err)
}
