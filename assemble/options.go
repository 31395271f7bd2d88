// SPDX-License-Identifier: MIT

// Package assemble: functional configuration for the assembly facades.
// This file defines:
//   - Option / Options (functional options with internal state),
//   - documented defaults (constants),
//   - WithX constructors,
//   - gatherOptions helper (internal) that enforces invariants.
//
// Design goals:
//   - Deterministic behavior: no global state, options resolve per call.
//   - No dead switches: each knob impacts behavior and is covered by tests.
//   - Reusability: Options fields are unexported; public APIs consume ...Option.

package assemble

import "github.com/katalvlaran/blockham/lattice"

// DEFAULTS — single source of truth for zero-value behavior.
const (
	// DefaultExplicitZeros controls sparse value compaction. false ⇒ exact
	// zeros are omitted from the triplet output; the omission never changes
	// the effective matrix (it is a storage optimization only).
	DefaultExplicitZeros = false
)

// Option mutates internal options. Safe to apply repeatedly (idempotent
// unless a later option overrides an earlier one; last-writer-wins).
type Option func(*Options)

// Options stores the effective configuration after applying Option setters.
// It is intentionally unexported behind the public entry points; all the
// facades accept `...Option` and resolve them via gatherOptions.
type Options struct {
	args          lattice.Args // evaluator calling convention, forwarded verbatim
	explicitZeros bool         // keep exact zeros in sparse output
}

// WithArgs supplies positional evaluation arguments, forwarded verbatim to
// the Hamiltonian and term evaluators. Mutually exclusive with WithParams;
// supplying both fails the assembly call with lattice.ErrArgConflict.
func WithArgs(vals ...any) Option {
	return func(o *Options) { o.args.Positional = vals }
}

// WithParams supplies the named-parameter mapping forwarded verbatim to the
// evaluators. Mutually exclusive with WithArgs.
func WithParams(params map[string]any) Option {
	return func(o *Options) { o.args.Params = params }
}

// WithExplicitZeros keeps exact-zero entries in sparse output instead of
// compacting them away. Dense output is unaffected. Useful when a caller
// requires one triplet per structurally present matrix element.
func WithExplicitZeros() Option {
	return func(o *Options) { o.explicitZeros = true }
}

// gatherOptions applies user-provided Option setters on top of the
// documented defaults. Last-writer-wins; deterministic for a given
// sequence of setters. Complexity: O(len(user)).
func gatherOptions(user ...Option) Options {
	o := Options{explicitZeros: DefaultExplicitZeros}
	for _, set := range user {
		set(&o)
	}

	return o
}
