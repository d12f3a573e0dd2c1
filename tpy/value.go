// value.go — the dynamically-typed runtime value model.
package tpy

import (
	"strconv"
	"strings"
)

// ValueType enumerates the runtime kinds a Value may hold.
type ValueType int

const (
	NoneType ValueType = iota
	IntType
	StrType
	ListType
)

// Value is the closed runtime sum: None, Int, Str or List. Values are
// copyable; lists own their elements by value. Any operation applied to an
// unsupported combination degrades to None rather than failing — that policy
// lives in applyBinary/applyUnary and subscripting, nowhere else.
type Value struct {
	Type ValueType
	I    int64
	S    string
	List []Value
}

// None is the singleton none Value.
var None = Value{Type: NoneType}

func Int(i int64) Value     { return Value{Type: IntType, I: i} }
func Str(s string) Value    { return Value{Type: StrType, S: s} }
func List(xs []Value) Value { return Value{Type: ListType, List: xs} }

// Truthy maps a Value to a boolean for conditional and logical contexts:
// Int non-zero, Str non-empty, List non-empty; None is always falsy.
func Truthy(v Value) bool {
	switch v.Type {
	case IntType:
		return v.I != 0
	case StrType:
		return v.S != ""
	case ListType:
		return len(v.List) > 0
	default:
		return false
	}
}

func boolInt(b bool) Value {
	if b {
		return Int(1)
	}
	return Int(0)
}

// FormatValue renders a value the way print does: Int as decimal, Str as-is,
// List as [e1, e2, ...] one level deep (nested lists render as [...]), None
// as "None".
func FormatValue(v Value) string {
	switch v.Type {
	case IntType:
		return strconv.FormatInt(v.I, 10)
	case StrType:
		return v.S
	case ListType:
		var b strings.Builder
		b.WriteByte('[')
		for i, item := range v.List {
			switch item.Type {
			case IntType:
				b.WriteString(strconv.FormatInt(item.I, 10))
			case StrType:
				b.WriteString(item.S)
			case ListType:
				b.WriteString("[...]")
			default:
				b.WriteString("None")
			}
			if i+1 < len(v.List) {
				b.WriteString(", ")
			}
		}
		b.WriteByte(']')
		return b.String()
	default:
		return "None"
	}
}

// listCopy returns an independent copy of a list value's elements; list
// builtins are non-mutating.
func listCopy(v Value) []Value {
	if len(v.List) == 0 {
		return nil
	}
	out := make([]Value, len(v.List))
	copy(out, v.List)
	return out
}
