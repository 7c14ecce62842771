package core

import "iter"

// Attr is a named attribute value. Names are arbitrary non-empty
// strings; duplicates across lists are allowed and preserved, and it is
// up to the consumer to decide how to resolve them.
type Attr struct {
	Name  string
	Value Value
}

// Int returns an Attr holding a signed integer.
func Int(name string, v int64) Attr {
	return Attr{Name: name, Value: Int64Value(v)}
}

// Uint returns an Attr holding an unsigned integer.
func Uint(name string, v uint64) Attr {
	return Attr{Name: name, Value: Uint64Value(v)}
}

// Float64 returns an Attr holding a double.
func Float64(name string, v float64) Attr {
	return Attr{Name: name, Value: Float64Value(v)}
}

// Bool returns an Attr holding a boolean.
func Bool(name string, v bool) Attr {
	return Attr{Name: name, Value: BoolValue(v)}
}

// String returns an Attr holding a string.
func String(name, v string) Attr {
	return Attr{Name: name, Value: StringValue(v)}
}

// Nil returns an Attr holding the null value.
func Nil(name string) Attr {
	return Attr{Name: name, Value: NullValue()}
}

// List is an ordered sequence of attributes. Ordering is significant:
// the pattern formatter's leftover placeholder walks it in reverse
// insertion order and the JSON formatter emits it in insertion order.
type List []Attr

// Pack is an ordered sequence of references to attribute lists visible
// for one record. The pack borrows the lists; it never owns storage.
// The zero Pack is empty and ready to use.
type Pack []*List

// Push appends a list reference to the pack.
func (p *Pack) Push(l *List) {
	*p = append(*p, l)
}

// Lookup walks the pack in order and each list in insertion order,
// returning the first value with the given name.
func (p Pack) Lookup(name string) (Value, bool) {
	for _, l := range p {
		for _, a := range *l {
			if a.Name == name {
				return a.Value, true
			}
		}
	}
	return Value{}, false
}

// All yields every attribute in pack order, inner-list order, with
// duplicates preserved.
func (p Pack) All() iter.Seq[Attr] {
	return func(yield func(Attr) bool) {
		for _, l := range p {
			for _, a := range *l {
				if !yield(a) {
					return
				}
			}
		}
	}
}

// Len returns the total number of attributes across all lists.
func (p Pack) Len() int {
	n := 0
	for _, l := range p {
		n += len(*l)
	}
	return n
}
