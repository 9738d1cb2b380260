package value

import "sort"

// Environment maps names to values. Lookups walk outward through enclosing
// scopes; writes always land in the receiver's own scope.
type Environment struct {
	store map[string]Value
	outer *Environment
}

// NewEnvironment returns an empty global scope.
func NewEnvironment() *Environment {
	return &Environment{store: make(map[string]Value)}
}

// NewEnclosedEnvironment returns a fresh scope whose misses fall through to
// outer. Function calls use it to bind parameters over the closure's scope.
func NewEnclosedEnvironment(outer *Environment) *Environment {
	env := NewEnvironment()
	env.outer = outer
	return env
}

// Get looks name up in this scope, then in each enclosing scope.
func (e *Environment) Get(name string) (Value, bool) {
	for env := e; env != nil; env = env.outer {
		if v, ok := env.store[name]; ok {
			return v, true
		}
	}
	return nil, false
}

// Set binds name in this scope, shadowing any outer binding, and returns v.
func (e *Environment) Set(name string, v Value) Value {
	e.store[name] = v
	return v
}

// Exists reports whether name resolves anywhere in the chain.
func (e *Environment) Exists(name string) bool {
	_, ok := e.Get(name)
	return ok
}

// Outer returns the enclosing scope, or nil for a global one.
func (e *Environment) Outer() *Environment {
	return e.outer
}

// Names lists the bindings of this scope only, sorted.
func (e *Environment) Names() []string {
	names := make([]string, 0, len(e.store))
	for name := range e.store {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
