package value

import (
	"fmt"
	"math"
	"strconv"
)

// Type represents the type of a Value.
type Type uint8

const (
	TypeUndefined Type = iota // Default/uninitialized/missing property
	TypeNull                  // Explicit null value
	TypeBool
	TypeNumber
	TypeString
	TypeObject // Represents *Object
	TypeArray  // Represents *Array
)

// Value represents a runtime value.
// We use a tagged union approach instead of interface{} for primitives.
type Value struct {
	Type Type
	as   struct {
		boolean bool
		number  float64
		str     string
		obj     interface{} // *Object or *Array
	}
}

// Constructors

func Undefined() Value {
	return Value{Type: TypeUndefined}
}

func Null() Value {
	return Value{Type: TypeNull}
}

func Bool(value bool) Value {
	v := Value{Type: TypeBool}
	v.as.boolean = value
	return v
}

func Number(value float64) Value {
	v := Value{Type: TypeNumber}
	v.as.number = value
	return v
}

func String(value string) Value {
	v := Value{Type: TypeString}
	v.as.str = value
	return v
}

func ObjectV(obj *Object) Value {
	if obj == nil {
		panic("attempted to create Value from nil Object pointer")
	}
	v := Value{Type: TypeObject}
	v.as.obj = obj
	return v
}

func ArrayV(arr *Array) Value {
	if arr == nil {
		panic("attempted to create Value from nil Array pointer")
	}
	v := Value{Type: TypeArray}
	v.as.obj = arr
	return v
}

// Type checkers

func IsUndefined(v Value) bool {
	return v.Type == TypeUndefined
}

func IsNull(v Value) bool {
	return v.Type == TypeNull
}

func IsBool(v Value) bool {
	return v.Type == TypeBool
}

func IsNumber(v Value) bool {
	return v.Type == TypeNumber
}

func IsString(v Value) bool {
	return v.Type == TypeString
}

func IsObject(v Value) bool {
	return v.Type == TypeObject
}

func IsArray(v Value) bool {
	return v.Type == TypeArray
}

// Accessors (with type checking)

func AsBool(v Value) bool {
	if !IsBool(v) {
		panic("value is not a bool")
	}
	return v.as.boolean
}

func AsNumber(v Value) float64 {
	if !IsNumber(v) {
		panic("value is not a number")
	}
	return v.as.number
}

func AsString(v Value) string {
	if !IsString(v) {
		panic("value is not a string")
	}
	return v.as.str
}

func AsObject(v Value) *Object {
	if !IsObject(v) {
		panic("value is not an object")
	}
	return v.as.obj.(*Object)
}

func AsArray(v Value) *Array {
	if !IsArray(v) {
		panic("value is not an array")
	}
	return v.as.obj.(*Array)
}

// Truthy reports whether the value is truthy under JS boolean coercion.
func Truthy(v Value) bool {
	switch v.Type {
	case TypeUndefined, TypeNull:
		return false
	case TypeBool:
		return v.as.boolean
	case TypeNumber:
		return v.as.number != 0 && v.as.number == v.as.number // false for 0 and NaN
	case TypeString:
		return v.as.str != ""
	default:
		return true
	}
}

// StrictEquals implements the === comparison.
func StrictEquals(a, b Value) bool {
	if a.Type != b.Type {
		return false
	}
	switch a.Type {
	case TypeUndefined, TypeNull:
		return true
	case TypeBool:
		return a.as.boolean == b.as.boolean
	case TypeNumber:
		return a.as.number == b.as.number
	case TypeString:
		return a.as.str == b.as.str
	default:
		// Objects and arrays compare by identity.
		return a.as.obj == b.as.obj
	}
}

// LooseEquals implements the == comparison for the supported types:
// null and undefined are mutually equal, numbers and strings coerce.
func LooseEquals(a, b Value) bool {
	if a.Type == b.Type {
		return StrictEquals(a, b)
	}
	if (IsNull(a) && IsUndefined(b)) || (IsUndefined(a) && IsNull(b)) {
		return true
	}
	if IsNumber(a) && IsString(b) {
		n, err := strconv.ParseFloat(b.as.str, 64)
		return err == nil && a.as.number == n
	}
	if IsString(a) && IsNumber(b) {
		return LooseEquals(b, a)
	}
	if IsBool(a) {
		return LooseEquals(Number(boolToNumber(a.as.boolean)), b)
	}
	if IsBool(b) {
		return LooseEquals(a, Number(boolToNumber(b.as.boolean)))
	}
	return false
}

func boolToNumber(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

// NumberToString converts a number to its JS string form
// ("1" not "1.000000", "1.5", "NaN", "Infinity").
func NumberToString(f float64) string {
	if math.IsNaN(f) {
		return "NaN"
	}
	if math.IsInf(f, 1) {
		return "Infinity"
	}
	if math.IsInf(f, -1) {
		return "-Infinity"
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// ToPropertyKey coerces an evaluated key expression to a property key string,
// matching the ToString coercion computed keys get in standard object syntax.
// An undefined key coerces to the string "undefined".
func ToPropertyKey(v Value) string {
	switch v.Type {
	case TypeUndefined:
		return "undefined"
	case TypeNull:
		return "null"
	case TypeBool:
		return strconv.FormatBool(v.as.boolean)
	case TypeNumber:
		return NumberToString(v.as.number)
	case TypeString:
		return v.as.str
	case TypeObject:
		return "[object Object]"
	case TypeArray:
		return AsArray(v).joined()
	default:
		return fmt.Sprintf("unknown value type: %d", v.Type)
	}
}

// String returns the display representation used by the REPL and by
// string concatenation.
func (v Value) String() string {
	switch v.Type {
	case TypeUndefined:
		return "undefined"
	case TypeNull:
		return "null"
	case TypeBool:
		return strconv.FormatBool(v.as.boolean)
	case TypeNumber:
		return NumberToString(v.as.number)
	case TypeString:
		return v.as.str
	case TypeObject:
		return AsObject(v).String()
	case TypeArray:
		return AsArray(v).String()
	default:
		return fmt.Sprintf("unknown value type: %d", v.Type)
	}
}

// inspect is like String but quotes string values, for use inside
// object and array display.
func (v Value) inspect() string {
	if IsString(v) {
		return "'" + v.as.str + "'"
	}
	return v.String()
}
