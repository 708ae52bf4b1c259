package value

// Thunk is a deferred computation producing a value. Thunks wrap arbitrary
// evaluation, so they may carry out side effects and may fail.
type Thunk func() (Value, error)

// PropertyDescriptor represents one entry of an object literal: a deferred
// key computation, a deferred value computation, and the optionality flag
// from the `?` marker.
//
// The key thunk always runs before the value thunk, whether or not the
// property is optional, so side effects fire in the same order as standard
// object syntax.
type PropertyDescriptor struct {
	Key      Thunk
	Value    Thunk
	Optional bool
}

// BuildObject produces an object from an ordered list of property
// descriptors. Descriptors are processed strictly in source order:
//
//   - the key thunk runs, then the value thunk, for every descriptor;
//   - a non-optional property is inserted unconditionally, an undefined
//     value is stored literally;
//   - an optional property is inserted only when its value is not
//     undefined, otherwise the insertion is skipped and any value an
//     earlier descriptor stored under the same key stays in place;
//   - a later insertion under an existing key overwrites it in place.
//
// The first error returned by a thunk aborts the build and propagates
// unchanged; the builder introduces no failure modes of its own.
func BuildObject(descs []PropertyDescriptor) (*Object, error) {
	obj := NewObject()
	for _, d := range descs {
		keyVal, err := d.Key()
		if err != nil {
			return nil, err
		}
		key := ToPropertyKey(keyVal)

		val, err := d.Value()
		if err != nil {
			return nil, err
		}

		if d.Optional && IsUndefined(val) {
			continue
		}
		obj.Set(key, val)
	}
	return obj, nil
}

// LiteralProperty builds a descriptor for a key known at parse time.
func LiteralProperty(key string, val Thunk, optional bool) PropertyDescriptor {
	return PropertyDescriptor{
		Key:      func() (Value, error) { return String(key), nil },
		Value:    val,
		Optional: optional,
	}
}
