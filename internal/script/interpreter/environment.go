package interpreter

// Environment represents a scope for variable bindings
type Environment struct {
	store map[string]Value
	outer *Environment // parent scope for nested scopes
}

// NewEnvironment creates a new environment
func NewEnvironment() *Environment {
	return &Environment{
		store: make(map[string]Value),
		outer: nil,
	}
}

// NewEnclosedEnvironment creates a new environment enclosed by an outer environment
func NewEnclosedEnvironment(outer *Environment) *Environment {
	env := NewEnvironment()
	env.outer = outer
	return env
}

// Get retrieves a value from the environment by name
// It searches the current scope and all parent scopes
func (e *Environment) Get(name string) (Value, bool) {
	value, ok := e.store[name]
	if !ok && e.outer != nil {
		return e.outer.Get(name)
	}
	return value, ok
}

// GetLocal retrieves a value from this scope only, never consulting parents.
// The completion resolver uses it to honor the local-then-global lookup
// protocol explicitly.
func (e *Environment) GetLocal(name string) (Value, bool) {
	value, ok := e.store[name]
	return value, ok
}

// Set assigns a value to a variable in the environment
// It always sets the variable in the current scope, potentially shadowing parent variables
func (e *Environment) Set(name string, value Value) {
	e.store[name] = value
}

// Has checks if a variable exists in the current scope or any parent scope
func (e *Environment) Has(name string) bool {
	_, ok := e.Get(name)
	return ok
}

// Delete removes a variable from the current scope
// It returns true if the variable was found and deleted, false otherwise
func (e *Environment) Delete(name string) bool {
	if _, ok := e.store[name]; ok {
		delete(e.store, name)
		return true
	}
	return false
}

// Keys returns all variable names in the current scope (not including parent scopes)
func (e *Environment) Keys() []string {
	keys := make([]string, 0, len(e.store))
	for k := range e.store {
		keys = append(keys, k)
	}
	return keys
}

// AllKeys returns all variable names in the current scope and all parent scopes
func (e *Environment) AllKeys() []string {
	keys := make(map[string]bool)

	for k := range e.store {
		keys[k] = true
	}

	if e.outer != nil {
		for _, k := range e.outer.AllKeys() {
			keys[k] = true
		}
	}

	result := make([]string, 0, len(keys))
	for k := range keys {
		result = append(result, k)
	}
	return result
}
