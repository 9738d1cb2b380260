package evaluator

import "github.com/ReiseArnor/lpp/pkg/core/value"

// DefaultMaxDepth bounds nested function calls so runaway recursion ends in
// an Error value instead of exhausting the goroutine stack.
const DefaultMaxDepth = 1024

// Option configures an Evaluator.
type Option func(*Evaluator)

// WithGasLimit caps the number of nodes a single Eval may visit. Zero means
// unlimited.
func WithGasLimit(n int) Option {
	return func(e *Evaluator) {
		if n >= 0 {
			e.gasLimit = n
		}
	}
}

// WithMaxDepth caps nested function calls. Zero means unlimited.
func WithMaxDepth(n int) Option {
	return func(e *Evaluator) {
		if n >= 0 {
			e.maxDepth = n
		}
	}
}

// WithBuiltin registers a host function visible only to this evaluator.
// Host builtins are consulted before the global table, so they may
// replace a global builtin of the same name.
func WithBuiltin(b *value.Builtin) Option {
	return func(e *Evaluator) {
		if b == nil || b.Fn == nil {
			return
		}
		if e.builtins == nil {
			e.builtins = make(map[string]*value.Builtin)
		}
		e.builtins[b.Name] = b
	}
}
