// Package runtime drives a single Turing machine run: it owns the tape and the
// current state and applies one transition per Step until Accept, Reject, an
// error, or the step ceiling.
package runtime
