package interpreter

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// ValueType represents the type of a value
type ValueType int

const (
	// ValueTypeNull represents a null value
	ValueTypeNull ValueType = iota
	// ValueTypeNumber represents a number value
	ValueTypeNumber
	// ValueTypeString represents a string value
	ValueTypeString
	// ValueTypeBool represents a boolean value
	ValueTypeBool
	// ValueTypeArray represents an array value
	ValueTypeArray
	// ValueTypeObject represents an object value
	ValueTypeObject
	// ValueTypeBuiltin represents a built-in function value
	ValueTypeBuiltin
	// ValueTypeDataset represents a loaded dataset
	ValueTypeDataset
	// ValueTypeSelector represents a data selection carved from a dataset
	ValueTypeSelector
)

// String returns the string representation of the value type
func (vt ValueType) String() string {
	switch vt {
	case ValueTypeNull:
		return "null"
	case ValueTypeNumber:
		return "number"
	case ValueTypeString:
		return "string"
	case ValueTypeBool:
		return "boolean"
	case ValueTypeArray:
		return "array"
	case ValueTypeObject:
		return "object"
	case ValueTypeBuiltin:
		return "builtin"
	case ValueTypeDataset:
		return "dataset"
	case ValueTypeSelector:
		return "selector"
	default:
		return "unknown"
	}
}

// Value represents a runtime value in the interpreter
type Value interface {
	Type() ValueType
	String() string
	IsTruthy() bool
	Equals(other Value) bool
}

// AttributeGetter is implemented by values that expose named attributes.
// Attribute lookups must be side-effect free; completion walks them without
// executing any user code.
type AttributeGetter interface {
	Attribute(name string) (Value, bool)
}

// AttributeLister is implemented by values that can enumerate their
// attribute names for completion.
type AttributeLister interface {
	AttributeNames() []string
}

// NullValue represents a null value
type NullValue struct{}

func (n *NullValue) Type() ValueType { return ValueTypeNull }
func (n *NullValue) String() string  { return "null" }
func (n *NullValue) IsTruthy() bool  { return false }
func (n *NullValue) Equals(other Value) bool {
	_, ok := other.(*NullValue)
	return ok
}

// NumberValue represents a number value
type NumberValue struct {
	Value float64
}

func (n *NumberValue) Type() ValueType { return ValueTypeNumber }
func (n *NumberValue) String() string {
	if n.Value == float64(int64(n.Value)) {
		return strconv.FormatInt(int64(n.Value), 10)
	}
	return strconv.FormatFloat(n.Value, 'g', -1, 64)
}
func (n *NumberValue) IsTruthy() bool { return n.Value != 0 }
func (n *NumberValue) Equals(other Value) bool {
	if otherNum, ok := other.(*NumberValue); ok {
		return n.Value == otherNum.Value
	}
	return false
}

// StringValue represents a string value
type StringValue struct {
	Value string
}

func (s *StringValue) Type() ValueType { return ValueTypeString }
func (s *StringValue) String() string  { return s.Value }
func (s *StringValue) IsTruthy() bool  { return s.Value != "" }
func (s *StringValue) Equals(other Value) bool {
	if otherStr, ok := other.(*StringValue); ok {
		return s.Value == otherStr.Value
	}
	return false
}

// BoolValue represents a boolean value
type BoolValue struct {
	Value bool
}

func (b *BoolValue) Type() ValueType { return ValueTypeBool }
func (b *BoolValue) String() string {
	if b.Value {
		return "true"
	}
	return "false"
}
func (b *BoolValue) IsTruthy() bool { return b.Value }
func (b *BoolValue) Equals(other Value) bool {
	if otherBool, ok := other.(*BoolValue); ok {
		return b.Value == otherBool.Value
	}
	return false
}

// ArrayValue represents an array value
type ArrayValue struct {
	Elements []Value
}

func (a *ArrayValue) Type() ValueType { return ValueTypeArray }
func (a *ArrayValue) String() string {
	elements := make([]string, 0, len(a.Elements))
	for _, el := range a.Elements {
		if el.Type() == ValueTypeString {
			elements = append(elements, "\""+el.String()+"\"")
		} else {
			elements = append(elements, el.String())
		}
	}
	return "[" + strings.Join(elements, ", ") + "]"
}
func (a *ArrayValue) IsTruthy() bool { return len(a.Elements) > 0 }
func (a *ArrayValue) Equals(other Value) bool {
	otherArr, ok := other.(*ArrayValue)
	if !ok || len(a.Elements) != len(otherArr.Elements) {
		return false
	}
	for i, el := range a.Elements {
		if !el.Equals(otherArr.Elements[i]) {
			return false
		}
	}
	return true
}

// ObjectValue represents an object value with named properties
type ObjectValue struct {
	Properties map[string]Value
}

func (o *ObjectValue) Type() ValueType { return ValueTypeObject }
func (o *ObjectValue) String() string {
	names := o.AttributeNames()
	pairs := make([]string, 0, len(names))
	for _, name := range names {
		value := o.Properties[name]
		if value.Type() == ValueTypeString {
			pairs = append(pairs, name+": \""+value.String()+"\"")
		} else {
			pairs = append(pairs, name+": "+value.String())
		}
	}
	return "{" + strings.Join(pairs, ", ") + "}"
}
func (o *ObjectValue) IsTruthy() bool { return len(o.Properties) > 0 }
func (o *ObjectValue) Equals(other Value) bool {
	otherObj, ok := other.(*ObjectValue)
	if !ok || len(o.Properties) != len(otherObj.Properties) {
		return false
	}
	for key, value := range o.Properties {
		otherValue, exists := otherObj.Properties[key]
		if !exists || !value.Equals(otherValue) {
			return false
		}
	}
	return true
}

// Attribute implements AttributeGetter
func (o *ObjectValue) Attribute(name string) (Value, bool) {
	value, ok := o.Properties[name]
	return value, ok
}

// AttributeNames implements AttributeLister
func (o *ObjectValue) AttributeNames() []string {
	names := make([]string, 0, len(o.Properties))
	for name := range o.Properties {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// BuiltinFunction represents a built-in function
type BuiltinFunction func(args []Value) (Value, error)

// BuiltinValue represents a built-in function value
type BuiltinValue struct {
	Name string
	Fn   BuiltinFunction
}

func (b *BuiltinValue) Type() ValueType { return ValueTypeBuiltin }
func (b *BuiltinValue) String() string {
	return fmt.Sprintf("<builtin %s>", b.Name)
}
func (b *BuiltinValue) IsTruthy() bool { return true }
func (b *BuiltinValue) Equals(other Value) bool {
	if otherBuiltin, ok := other.(*BuiltinValue); ok {
		return b.Name == otherBuiltin.Name
	}
	return false
}
