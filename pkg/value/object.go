package value

import "strings"

// Object is an ordered string-keyed property map. Property order is
// insertion order; overwriting an existing key keeps its original slot,
// matching the enumeration order of JS object literals.
type Object struct {
	keys  []string
	props map[string]Value
}

// NewObject creates an empty object.
func NewObject() *Object {
	return &Object{
		keys:  []string{},
		props: make(map[string]Value),
	}
}

// Get returns the value stored under key and whether it exists.
func (o *Object) Get(key string) (Value, bool) {
	v, ok := o.props[key]
	return v, ok
}

// GetOrUndefined returns the value stored under key, or undefined when the
// property is missing.
func (o *Object) GetOrUndefined(key string) Value {
	if v, ok := o.props[key]; ok {
		return v
	}
	return Undefined()
}

// Set stores value under key. New keys append to the insertion order;
// existing keys are overwritten in place.
func (o *Object) Set(key string, v Value) {
	if _, exists := o.props[key]; !exists {
		o.keys = append(o.keys, key)
	}
	o.props[key] = v
}

// Has reports whether the object has an own property named key.
func (o *Object) Has(key string) bool {
	_, ok := o.props[key]
	return ok
}

// Delete removes the property named key, if present.
func (o *Object) Delete(key string) bool {
	if _, ok := o.props[key]; !ok {
		return false
	}
	delete(o.props, key)
	for i, k := range o.keys {
		if k == key {
			o.keys = append(o.keys[:i], o.keys[i+1:]...)
			break
		}
	}
	return true
}

// Keys returns the property keys in insertion order.
func (o *Object) Keys() []string {
	out := make([]string, len(o.keys))
	copy(out, o.keys)
	return out
}

// Len returns the number of own properties.
func (o *Object) Len() int {
	return len(o.keys)
}

// String renders the object like a JS literal: { a: 1, b: 'x' }.
func (o *Object) String() string {
	if len(o.keys) == 0 {
		return "{}"
	}
	var sb strings.Builder
	sb.WriteString("{ ")
	for i, k := range o.keys {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(k)
		sb.WriteString(": ")
		sb.WriteString(o.props[k].inspect())
	}
	sb.WriteString(" }")
	return sb.String()
}

// Array is a fixed-order list of values.
type Array struct {
	Elements []Value
}

// NewArray creates an array from the given elements.
func NewArray(elements []Value) *Array {
	if elements == nil {
		elements = []Value{}
	}
	return &Array{Elements: elements}
}

// Get returns the element at index i, or undefined when out of range.
func (a *Array) Get(i int) Value {
	if i < 0 || i >= len(a.Elements) {
		return Undefined()
	}
	return a.Elements[i]
}

// Len returns the number of elements.
func (a *Array) Len() int {
	return len(a.Elements)
}

// String renders the array like a JS literal: [1, 'x'].
func (a *Array) String() string {
	var sb strings.Builder
	sb.WriteString("[")
	for i, el := range a.Elements {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(el.inspect())
	}
	sb.WriteString("]")
	return sb.String()
}

// joined renders elements comma-separated without brackets, matching JS
// Array.prototype.toString for use in key coercion.
func (a *Array) joined() string {
	parts := make([]string, len(a.Elements))
	for i, el := range a.Elements {
		if IsUndefined(el) || IsNull(el) {
			parts[i] = ""
			continue
		}
		parts[i] = el.String()
	}
	return strings.Join(parts, ",")
}
