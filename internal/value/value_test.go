package value

import (
	"errors"
	"testing"
)

func TestCopyShares(t *testing.T) {
	l := NewList(NewNumber(1), NewNumber(2))
	c := Copy(l)

	if c.List != l.List {
		t.Errorf("shallow copy did not share the list storage")
	}
	if l.List.Refcount() != 2 {
		t.Errorf("refcount after copy is %d, want 2", l.List.Refcount())
	}

	c.Clear()
	if l.List.Refcount() != 1 {
		t.Errorf("refcount after clearing the copy is %d, want 1", l.List.Refcount())
	}
	l.Clear()
}

func TestCopyClearsLock(t *testing.T) {
	v := NewString("frozen")
	v.Locked = true

	c := Copy(v)
	if c.Locked {
		t.Errorf("copy carried the value lock over")
	}
}

func TestClearIsIdempotent(t *testing.T) {
	v := NewDict()
	v.Dict.Set("k", NewNumber(1))

	v.Clear()
	if v.Kind != Unknown || v.Dict != nil {
		t.Errorf("clear did not reset the value: kind=%v dict=%v", v.Kind, v.Dict)
	}
	v.Clear()
}

func TestClearSelfReference(t *testing.T) {
	// A list that contains itself must still tear down.
	v := NewList()
	inner := Copy(v)
	if err := v.List.Append(inner); err != nil {
		t.Fatalf("append: %v", err)
	}
	v.Clear()
}

func TestDeepCopyIsIndependent(t *testing.T) {
	orig := NewList(NewString("a"), NewList(NewNumber(1)))
	defer orig.Clear()

	dup, err := DeepCopy(orig, true)
	if err != nil {
		t.Fatalf("deep copy: %v", err)
	}
	defer dup.Clear()

	if dup.List == orig.List {
		t.Errorf("deep copy shared the outer list")
	}
	if dup.List.Items[1].List == orig.List.Items[1].List {
		t.Errorf("deep copy shared the nested list")
	}
	if !Equal(orig, dup, false) {
		t.Errorf("deep copy is not equal to the original")
	}
}

func TestDeepCopyShallowSharesNested(t *testing.T) {
	inner := NewDict()
	orig := NewList(inner)
	defer orig.Clear()

	dup, err := DeepCopy(orig, false)
	if err != nil {
		t.Fatalf("copy: %v", err)
	}
	defer dup.Clear()

	if dup.List == orig.List {
		t.Errorf("shallow container copy shared the outer list")
	}
	if dup.List.Items[0].Dict != orig.List.Items[0].Dict {
		t.Errorf("shallow container copy did not share the nested dict")
	}
}

func TestDeepCopySelfReferenceFails(t *testing.T) {
	v := NewList()
	inner := Copy(v)
	if err := v.List.Append(inner); err != nil {
		t.Fatalf("append: %v", err)
	}
	defer v.Clear()

	_, err := DeepCopy(v, true)
	var rec *RecursionError
	if !errors.As(err, &rec) {
		t.Errorf("deep copy of a self-referential list returned %v, want a recursion error", err)
	}
}

func TestLockedListRejectsMutation(t *testing.T) {
	v := NewList(NewNumber(1))
	defer v.Clear()
	v.List.Locked = true

	var lockErr *LockError
	if err := v.List.Append(NewNumber(2)); !errors.As(err, &lockErr) {
		t.Errorf("append to a locked list returned %v, want a lock error", err)
	}
	if err := v.List.SetItem(0, NewNumber(9)); !errors.As(err, &lockErr) {
		t.Errorf("setitem on a locked list returned %v, want a lock error", err)
	}
	if err := v.List.Remove(0); !errors.As(err, &lockErr) {
		t.Errorf("remove on a locked list returned %v, want a lock error", err)
	}
}

func TestCheckLock(t *testing.T) {
	v := NewDict()
	defer v.Clear()

	if err := CheckLock(v, "d"); err != nil {
		t.Errorf("unlocked dict reported %v", err)
	}

	v.Dict.Locked = true
	var lockErr *LockError
	if err := CheckLock(v, "d"); !errors.As(err, &lockErr) {
		t.Errorf("locked dict reported %v, want a lock error", err)
	}
}

func TestItemLockDepth(t *testing.T) {
	inner := NewList(NewNumber(1))
	outer := NewList(inner)
	defer outer.Clear()

	// depth 1 locks only the outer container.
	outer.ItemLock(1, true)
	if !outer.List.Locked {
		t.Errorf("outer list not locked")
	}
	if outer.List.Items[0].List.Locked {
		t.Errorf("depth 1 lock reached the inner list")
	}

	outer.ItemLock(2, true)
	if !outer.List.Items[0].List.Locked {
		t.Errorf("depth 2 lock missed the inner list")
	}

	outer.ItemLock(2, false)
	if outer.List.Locked || outer.List.Items[0].List.Locked {
		t.Errorf("unlock left a container locked")
	}
}

func TestDictInsertionOrder(t *testing.T) {
	v := NewDict()
	defer v.Clear()

	for _, k := range []string{"zebra", "apple", "mango"} {
		if err := v.Dict.Set(k, NewString(k)); err != nil {
			t.Fatalf("set %q: %v", k, err)
		}
	}

	keys := v.Dict.Keys()
	want := []string{"zebra", "apple", "mango"}
	for i := range want {
		if keys[i] != want[i] {
			t.Errorf("key %d is %q, want %q", i, keys[i], want[i])
		}
	}

	if err := v.Dict.Delete("apple"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	keys = v.Dict.Keys()
	if len(keys) != 2 || keys[0] != "zebra" || keys[1] != "mango" {
		t.Errorf("keys after delete are %v", keys)
	}
}

func TestObjectMemberSlots(t *testing.T) {
	cl := NewClassData("Point", "x", "y")
	o := NewObjectData(cl)
	v := NewObject(o)
	defer v.Clear()

	if len(o.Members) != 2 {
		t.Fatalf("object has %d member slots, want 2", len(o.Members))
	}
	o.Members[0] = NewNumber(3)
	o.Members[1] = NewNumber(4)

	if cl.Refcount() != 2 {
		t.Errorf("class refcount is %d, want 2 (data + object)", cl.Refcount())
	}
}

func TestFuncNameEmptyPartial(t *testing.T) {
	plain := NewFuncref("Sort")
	if plain.FuncName() != "Sort" {
		t.Errorf("plain funcref name is %q", plain.FuncName())
	}

	bound := NewBoundFuncref(NewPartial("Sort", nil, nil))
	defer bound.Clear()
	if bound.FuncName() != "Sort" {
		t.Errorf("bound funcref name is %q", bound.FuncName())
	}
}
