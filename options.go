package quotient

// Option configures a new Interpreter, following the functional-options
// shape used throughout this codebase (adapted from the teacher's own
// options.go).
type Option func(*Interpreter)

// apply folds opts onto in, in order.
func apply(in *Interpreter, opts ...Option) {
	for _, opt := range opts {
		opt(in)
	}
}

// WithLogf routes the Interpreter's internal diagnostic logging (dictionary
// churn, panic recovery, step-limit trips) through logf instead of the
// default no-op, wired to --log-level by cmd/quotient.
func WithLogf(logf func(string, ...interface{})) Option {
	return func(in *Interpreter) {
		if logf != nil {
			in.ev.logf = logf
		}
	}
}

// WithStepLimit overrides DefaultStepLimit; n<=0 disables the guard
// entirely (SPEC_FULL.md §10.6).
func WithStepLimit(n int) Option {
	return func(in *Interpreter) {
		in.ev.stepLimit = n
	}
}

// WithMaxCallDepth overrides DefaultMaxCallDepth, the bound on nested
// (non-tail) User-word invocation within a single atomic call.
func WithMaxCallDepth(n int) Option {
	return func(in *Interpreter) {
		if n > 0 {
			in.ev.maxCallDepth = n
		}
	}
}
