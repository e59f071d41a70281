/*
Package quotient implements the core of Quotient, a small concatenative
(stack-oriented) language meant to be embedded in a host: a REPL, a test
harness, a browser panel. The core owns a data stack, a single auxiliary
register, a dictionary of built-in and user-defined words, and an output
buffer; it exposes evaluate, step, and introspection operations through
Interpreter (see api.go) and contributes no I/O, persistence, or UI of its
own.

Numbers are exact rationals (Rational, rational.go), always kept in lowest
terms. Values (value.go) are a small tagged union — Number, String,
Boolean, Symbol, Nil, Vector — with distinct printed and inspected forms.
Source text is tokenized by a single non-recursive pass (lexer.go) and
consumed left to right by the Evaluator (evaluator.go), which threads an
explicit continuation through the source and the IF branches spliced into
it, so that step-mode can pause between any two of them. A User word's
body runs to completion as one step; nested User-word calls recurse on the
Go call stack, bounded by DefaultMaxCallDepth.

Arithmetic, comparison, and NOT broadcast across Vectors automatically
(iterate.go); every other primitive lives in builtins.go. The dictionary
(dictionary.go) tracks which words depend on which, so a word in use by
another cannot be deleted or silently redefined out from under it.
*/
package quotient
