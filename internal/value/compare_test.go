package value

import (
	"errors"
	"testing"
)

func mustCompare(t *testing.T, a, b Value, op Op, ic, strict bool) bool {
	t.Helper()
	res, err := Compare(a, b, op, ic, strict)
	if err != nil {
		t.Fatalf("compare %v %s %v: %v", a.Kind, op, b.Kind, err)
	}
	if strict {
		if res.Kind != Bool {
			t.Fatalf("strict compare returned kind %v, want bool", res.Kind)
		}
	} else if res.Kind != Number {
		t.Fatalf("legacy compare returned kind %v, want number", res.Kind)
	}
	return res.N != 0
}

func TestCompareNumberFloat(t *testing.T) {
	cases := []struct {
		name   string
		a, b   Value
		op     Op
		want   bool
		strict bool
	}{
		{"3 == 3.0", NewNumber(3), NewFloat(3.0), OpEqual, true, true},
		{"3 != 3.5", NewNumber(3), NewFloat(3.5), OpNotEqual, true, true},
		{"2 < 2.5", NewNumber(2), NewFloat(2.5), OpSmaller, true, true},
		{"1.5 > 1", NewFloat(1.5), NewNumber(1), OpGreater, true, true},
		{"5 >= 5", NewNumber(5), NewNumber(5), OpGreaterEqual, true, false},
		{"-1 < 0", NewNumber(-1), NewNumber(0), OpSmaller, true, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := mustCompare(t, c.a, c.b, c.op, false, c.strict); got != c.want {
				t.Errorf("got %v, want %v", got, c.want)
			}
		})
	}
}

func TestCompareLegacyStringNumber(t *testing.T) {
	// Legacy mode converts the string side to a number.
	if !mustCompare(t, NewNumber(4), NewString("4"), OpEqual, false, false) {
		t.Errorf("4 == \"4\" is false in legacy mode")
	}
	if !mustCompare(t, NewNumber(4), NewString("4x"), OpEqual, false, false) {
		t.Errorf("4 == \"4x\" is false in legacy mode (prefix conversion)")
	}
}

func TestCompareStrictStringNumberError(t *testing.T) {
	_, err := Compare(NewNumber(4), NewString("4"), OpEqual, false, true)
	var conv *ConversionError
	if !errors.As(err, &conv) {
		t.Errorf("strict 4 == \"4\" returned %v, want a conversion error", err)
	}
}

func TestCompareStrings(t *testing.T) {
	a := NewString("Apple")
	b := NewString("apple")

	if mustCompare(t, a, b, OpEqual, false, true) {
		t.Errorf("case-sensitive compare treated Apple == apple")
	}
	if !mustCompare(t, a, b, OpEqual, true, true) {
		t.Errorf("ignore-case compare treated Apple != apple")
	}
	if !mustCompare(t, NewString("abc"), NewString("abd"), OpSmaller, false, false) {
		t.Errorf("abc < abd is false")
	}
}

func TestCompareMatch(t *testing.T) {
	text := NewString("Filename.txt")
	pat := NewString(`\.txt$`)

	if !mustCompare(t, text, pat, OpMatch, false, true) {
		t.Errorf("Filename.txt =~ \\.txt$ is false")
	}
	if mustCompare(t, text, pat, OpNoMatch, false, true) {
		t.Errorf("Filename.txt !~ \\.txt$ is true")
	}
	if !mustCompare(t, NewString("README"), NewString("read"), OpMatch, true, true) {
		t.Errorf("ignore-case match failed")
	}
}

func TestCompareList(t *testing.T) {
	a := NewList(NewNumber(1), NewString("x"))
	b := NewList(NewNumber(1), NewString("x"))
	c := NewList(NewString("x"), NewNumber(1))
	defer a.Clear()
	defer b.Clear()
	defer c.Clear()

	if !mustCompare(t, a, b, OpEqual, false, true) {
		t.Errorf("equal lists compared unequal")
	}
	if mustCompare(t, a, c, OpEqual, false, true) {
		t.Errorf("lists with reordered items compared equal")
	}
	if mustCompare(t, a, b, OpIs, false, true) {
		t.Errorf("distinct lists are \"is\" identical")
	}
	if !mustCompare(t, a, a, OpIs, false, true) {
		t.Errorf("a list is not itself")
	}

	if _, err := Compare(a, b, OpGreater, false, true); err == nil {
		t.Errorf("ordering lists did not fail")
	}
	if _, err := Compare(a, NewNumber(1), OpEqual, false, true); err == nil {
		t.Errorf("list == number did not fail")
	}
}

func TestCompareSelfReferentialList(t *testing.T) {
	a := NewList()
	b := NewList()
	aInner := Copy(a)
	bInner := Copy(b)
	if err := a.List.Append(aInner); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := b.List.Append(bInner); err != nil {
		t.Fatalf("append: %v", err)
	}
	defer a.Clear()
	defer b.Clear()

	// Must terminate; the nesting guard reports equal.
	if !mustCompare(t, a, b, OpEqual, false, false) {
		t.Errorf("self-referential lists compared unequal")
	}
}

func TestCompareDictOrderInsensitive(t *testing.T) {
	a := NewDict()
	b := NewDict()
	defer a.Clear()
	defer b.Clear()
	a.Dict.Set("one", NewNumber(1))
	a.Dict.Set("two", NewNumber(2))
	b.Dict.Set("two", NewNumber(2))
	b.Dict.Set("one", NewNumber(1))

	if !mustCompare(t, a, b, OpEqual, false, true) {
		t.Errorf("dicts with same entries in different order compared unequal")
	}

	b.Dict.Set("two", NewNumber(3))
	if mustCompare(t, a, b, OpEqual, false, true) {
		t.Errorf("dicts with different values compared equal")
	}
}

func TestCompareBlob(t *testing.T) {
	a := NewBlob([]byte{0x00, 0x11})
	b := NewBlob([]byte{0x00, 0x11})
	c := NewBlob([]byte{0x00})
	defer a.Clear()
	defer b.Clear()
	defer c.Clear()

	if !mustCompare(t, a, b, OpEqual, false, true) {
		t.Errorf("equal blobs compared unequal")
	}
	if mustCompare(t, a, c, OpEqual, false, true) {
		t.Errorf("blobs of different length compared equal")
	}
	if _, err := Compare(a, b, OpGreater, false, true); err == nil {
		t.Errorf("ordering blobs did not fail")
	}
	if _, err := Compare(a, NewString("0011"), OpEqual, false, true); err == nil {
		t.Errorf("blob == string did not fail")
	}
}

func TestCompareNull(t *testing.T) {
	nullList := Value{Kind: List}
	emptyStr := NewString("")

	if !mustCompare(t, NullValue, nullList, OpEqual, false, true) {
		t.Errorf("null != null list")
	}
	if !mustCompare(t, emptyStr, NullValue, OpEqual, false, true) {
		t.Errorf("empty string != null")
	}
	if mustCompare(t, NewString("x"), NullValue, OpEqual, false, true) {
		t.Errorf("non-empty string == null")
	}

	// Legacy: zero numbers equal null; strict mode: they do not.
	if !mustCompare(t, NewNumber(0), NullValue, OpEqual, false, false) {
		t.Errorf("legacy 0 != null")
	}
	if mustCompare(t, NewNumber(0), NullValue, OpEqual, false, true) {
		t.Errorf("strict 0 == null")
	}
}

func TestCompareFuncref(t *testing.T) {
	a := NewFuncref("Handler")
	b := NewFuncref("Handler")
	c := NewFuncref("Other")

	if !mustCompare(t, a, b, OpEqual, false, true) {
		t.Errorf("funcrefs with the same name compared unequal")
	}
	if mustCompare(t, a, c, OpEqual, false, true) {
		t.Errorf("funcrefs with different names compared equal")
	}

	// A funcref with an empty name equals a null funcref.
	empty := NewFuncref("")
	if !mustCompare(t, empty, NullValue, OpEqual, false, true) {
		t.Errorf("empty-name funcref != null")
	}

	p1 := NewBoundFuncref(NewPartial("Handler", []Value{NewNumber(1)}, nil))
	p2 := NewBoundFuncref(NewPartial("Handler", []Value{NewNumber(1)}, nil))
	p3 := NewBoundFuncref(NewPartial("Handler", []Value{NewNumber(2)}, nil))
	defer p1.Clear()
	defer p2.Clear()
	defer p3.Clear()

	if !mustCompare(t, p1, p2, OpEqual, false, true) {
		t.Errorf("partials with equal bindings compared unequal")
	}
	if mustCompare(t, p1, p3, OpEqual, false, true) {
		t.Errorf("partials with different bound args compared equal")
	}
	if mustCompare(t, p1, p2, OpIs, false, true) {
		t.Errorf("distinct partials are \"is\" identical")
	}
	if !mustCompare(t, p1, p1, OpIs, false, true) {
		t.Errorf("a partial is not itself")
	}
}

func TestCompareBoolStrict(t *testing.T) {
	if !mustCompare(t, TrueValue, TrueValue, OpEqual, false, true) {
		t.Errorf("true != true")
	}
	if mustCompare(t, TrueValue, FalseValue, OpEqual, false, true) {
		t.Errorf("true == false")
	}

	var typeErr *TypeError
	if _, err := Compare(TrueValue, NewString("true"), OpEqual, false, true); !errors.As(err, &typeErr) {
		t.Errorf("strict true == \"true\" returned %v, want a type error", err)
	}
	if _, err := Compare(TrueValue, FalseValue, OpGreater, false, true); err == nil {
		t.Errorf("ordering bools in strict mode did not fail")
	}
}

func TestCompareLegacyBool(t *testing.T) {
	// Legacy mode coerces bools on the number path.
	if !mustCompare(t, TrueValue, NewNumber(1), OpEqual, false, false) {
		t.Errorf("legacy true != 1")
	}
	if !mustCompare(t, FalseValue, NewNumber(0), OpEqual, false, false) {
		t.Errorf("legacy false != 0")
	}
}

func TestCompareIsKindMismatch(t *testing.T) {
	l := NewList()
	defer l.Clear()

	if mustCompare(t, l, NewNumber(1), OpIs, false, true) {
		t.Errorf("list is number reported true")
	}
	if !mustCompare(t, l, NewNumber(1), OpIsNot, false, true) {
		t.Errorf("list isnot number reported false")
	}
}

func TestCompareObjects(t *testing.T) {
	cl := NewClassData("Point", "x", "y")
	o1 := NewObjectData(cl)
	o1.Members[0] = NewNumber(1)
	o1.Members[1] = NewNumber(2)
	o2 := NewObjectData(cl)
	o2.Members[0] = NewNumber(1)
	o2.Members[1] = NewNumber(2)
	o3 := NewObjectData(cl)
	o3.Members[0] = NewNumber(1)
	o3.Members[1] = NewNumber(9)

	v1, v2, v3 := NewObject(o1), NewObject(o2), NewObject(o3)
	defer v1.Clear()
	defer v2.Clear()
	defer v3.Clear()

	if !mustCompare(t, v1, v2, OpEqual, false, true) {
		t.Errorf("same-class objects with equal members compared unequal")
	}
	if mustCompare(t, v1, v3, OpEqual, false, true) {
		t.Errorf("objects with different members compared equal")
	}
	if mustCompare(t, v1, v2, OpIs, false, true) {
		t.Errorf("distinct objects are \"is\" identical")
	}
	if !mustCompare(t, v1, v1, OpIs, false, true) {
		t.Errorf("an object is not itself")
	}

	other := NewClassData("Size", "x", "y")
	o4 := NewObjectData(other)
	o4.Members[0] = NewNumber(1)
	o4.Members[1] = NewNumber(2)
	v4 := NewObject(o4)
	defer v4.Clear()

	if mustCompare(t, v1, v4, OpEqual, false, true) {
		t.Errorf("objects of different classes compared equal")
	}
}

func TestCompareJobChannelIdentity(t *testing.T) {
	j1 := NewJob(nil)
	j2 := NewJob(nil)
	defer j1.Clear()
	defer j2.Clear()

	shared := Copy(j1)
	defer shared.Clear()

	if !mustCompare(t, j1, shared, OpEqual, false, true) {
		t.Errorf("a job != its own copy")
	}
	if mustCompare(t, j1, j2, OpEqual, false, true) {
		t.Errorf("distinct jobs compared equal")
	}
}

func TestCompareClassValueError(t *testing.T) {
	cl := NewClass(NewClassData("Point"))
	defer cl.Clear()

	if _, err := Compare(cl, NewNumber(1), OpEqual, false, true); err == nil {
		t.Errorf("comparing a class value did not fail")
	}
}

func TestEqualizerBudgetShrinks(t *testing.T) {
	eq := &equalizer{limit: 2, depth: 2}
	if !eq.tripped() {
		t.Fatalf("budget at the limit did not trip")
	}
	if eq.limit != 1 {
		t.Errorf("limit after trip is %d, want 1", eq.limit)
	}
}
