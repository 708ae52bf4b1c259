package interp

import "github.com/Diokuz/optional-keys-in-objects/pkg/value"

// Environment holds variable bindings for a session. The language has no
// functions or block scopes, so a single flat environment suffices; it
// persists across REPL lines.
type Environment struct {
	store  map[string]value.Value
	consts map[string]bool
}

// NewEnvironment creates an empty environment.
func NewEnvironment() *Environment {
	return &Environment{
		store:  make(map[string]value.Value),
		consts: make(map[string]bool),
	}
}

// Get returns the value bound to name and whether the binding exists.
func (e *Environment) Get(name string) (value.Value, bool) {
	v, ok := e.store[name]
	return v, ok
}

// Define binds name to v as a mutable binding. Redeclaration is allowed so
// REPL sessions can shadow earlier lines.
func (e *Environment) Define(name string, v value.Value) {
	e.store[name] = v
	delete(e.consts, name)
}

// DefineConst binds name to v as a constant binding.
func (e *Environment) DefineConst(name string, v value.Value) {
	e.store[name] = v
	e.consts[name] = true
}

// Assign rebinds an existing name. It reports whether the binding exists
// and whether it is assignable (not a const).
func (e *Environment) Assign(name string, v value.Value) (exists bool, assignable bool) {
	if _, ok := e.store[name]; !ok {
		return false, false
	}
	if e.consts[name] {
		return true, false
	}
	e.store[name] = v
	return true, true
}
