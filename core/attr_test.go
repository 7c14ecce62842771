package core

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

var valueComparer = cmp.Comparer(Value.Equal)

func TestPackLookupOrder(t *testing.T) {
	inner := List{String("user", "inner"), Int("id", 1)}
	outer := List{String("user", "outer"), String("host", "db1")}
	pack := Pack{&inner, &outer}

	v, ok := pack.Lookup("user")
	if !ok {
		t.Fatal("Lookup(user) missed")
	}
	if v.Str() != "inner" {
		t.Errorf("Lookup(user) = %q, want first list to win", v.Str())
	}

	v, ok = pack.Lookup("host")
	if !ok || v.Str() != "db1" {
		t.Errorf("Lookup(host) = %v, %v", v, ok)
	}

	if _, ok := pack.Lookup("absent"); ok {
		t.Error("Lookup(absent) reported a hit")
	}
}

func TestPackAllPreservesDuplicates(t *testing.T) {
	first := List{Int("n", 1), Int("n", 2)}
	second := List{Int("n", 3)}
	pack := Pack{&first, &second}

	var got []Attr
	for a := range pack.All() {
		got = append(got, a)
	}
	want := []Attr{Int("n", 1), Int("n", 2), Int("n", 3)}
	if diff := cmp.Diff(want, got, valueComparer); diff != "" {
		t.Errorf("All() order mismatch (-want +got):\n%s", diff)
	}
}

func TestPackPushAndLen(t *testing.T) {
	var pack Pack
	if pack.Len() != 0 {
		t.Errorf("empty pack Len() = %d", pack.Len())
	}
	l1 := List{String("a", "1")}
	l2 := List{String("b", "2"), String("c", "3")}
	pack.Push(&l1)
	pack.Push(&l2)
	if pack.Len() != 3 {
		t.Errorf("Len() = %d, want 3", pack.Len())
	}
}

func TestAttrConstructors(t *testing.T) {
	tests := []struct {
		attr Attr
		kind Kind
	}{
		{Int("i", -1), KindInt64},
		{Uint("u", 1), KindUint64},
		{Float64("f", 0.5), KindFloat64},
		{Bool("b", true), KindBool},
		{String("s", "x"), KindString},
		{Nil("n"), KindNull},
	}
	for _, tt := range tests {
		if got := tt.attr.Value.Kind(); got != tt.kind {
			t.Errorf("%s: Kind() = %v, want %v", tt.attr.Name, got, tt.kind)
		}
	}
}
