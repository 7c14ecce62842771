package core

import (
	"math"
	"strconv"
)

// Kind discriminates the variants a Value can hold.
type Kind uint8

const (
	KindNull Kind = iota
	KindInt64
	KindUint64
	KindFloat64
	KindBool
	KindString
)

// String returns the string representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindInt64:
		return "int64"
	case KindUint64:
		return "uint64"
	case KindFloat64:
		return "float64"
	case KindBool:
		return "bool"
	case KindString:
		return "string"
	default:
		return "unknown"
	}
}

// Value is a tagged variant over the types an attribute can carry:
// signed and unsigned 64-bit integers, doubles, booleans, strings and
// null. The zero Value is null.
type Value struct {
	kind Kind
	num  uint64
	str  string
}

// Int64Value returns a Value holding a signed integer.
func Int64Value(v int64) Value {
	return Value{kind: KindInt64, num: uint64(v)}
}

// Uint64Value returns a Value holding an unsigned integer.
func Uint64Value(v uint64) Value {
	return Value{kind: KindUint64, num: v}
}

// Float64Value returns a Value holding a double.
func Float64Value(v float64) Value {
	return Value{kind: KindFloat64, num: math.Float64bits(v)}
}

// BoolValue returns a Value holding a boolean.
func BoolValue(v bool) Value {
	var n uint64
	if v {
		n = 1
	}
	return Value{kind: KindBool, num: n}
}

// StringValue returns a Value holding a string.
func StringValue(v string) Value {
	return Value{kind: KindString, str: v}
}

// NullValue returns the null Value.
func NullValue() Value {
	return Value{}
}

// Kind reports the variant currently held.
func (v Value) Kind() Kind { return v.kind }

// Int64 returns the signed integer payload. It is only meaningful when
// Kind is KindInt64.
func (v Value) Int64() int64 { return int64(v.num) }

// Uint64 returns the unsigned integer payload. It is only meaningful
// when Kind is KindUint64.
func (v Value) Uint64() uint64 { return v.num }

// Float64 returns the double payload. It is only meaningful when Kind
// is KindFloat64.
func (v Value) Float64() float64 { return math.Float64frombits(v.num) }

// Bool returns the boolean payload. It is only meaningful when Kind is
// KindBool.
func (v Value) Bool() bool { return v.num == 1 }

// Str returns the string payload. It is only meaningful when Kind is
// KindString.
func (v Value) Str() string { return v.str }

// Equal reports whether two values hold the same kind and the same
// payload. An int64 and a uint64 with the same magnitude are not equal.
func (v Value) Equal(o Value) bool {
	return v.kind == o.kind && v.num == o.num && v.str == o.str
}

// String renders the value for human consumption.
func (v Value) String() string {
	switch v.kind {
	case KindInt64:
		return strconv.FormatInt(v.Int64(), 10)
	case KindUint64:
		return strconv.FormatUint(v.num, 10)
	case KindFloat64:
		return strconv.FormatFloat(v.Float64(), 'f', -1, 64)
	case KindBool:
		return strconv.FormatBool(v.Bool())
	case KindString:
		return v.str
	default:
		return "null"
	}
}
