package value

// Value is the universal tagged unit of the runtime. Exactly one payload
// field is meaningful for a given Kind:
//
//	Number               N
//	Float                F
//	Bool, Special        N (ValFalse/ValTrue/ValNone/ValNull)
//	String               S
//	Funcref              S, or Part when the funcref carries bindings
//	List .. TypeAlias    the matching pointer field
//
// Locked is the per-Value immutability flag; container storage carries its
// own, independent Locked flag.
type Value struct {
	Kind   Kind
	Locked bool

	N    int64
	F    float64
	S    string
	List *ListData
	Dict *DictData
	Blob *BlobData
	Part *Partial
	Job  *JobHandle
	Ch   *ChannelHandle
	Cls  *ClassData
	Obj  *ObjectData
	Tad  *TypeAliasData
}

// Singletons for the fixed scalar values.
var (
	TrueValue  = Value{Kind: Bool, N: ValTrue}
	FalseValue = Value{Kind: Bool, N: ValFalse}
	NullValue  = Value{Kind: Special, N: ValNull}
	NoneValue  = Value{Kind: Special, N: ValNone}
)

func NewNumber(n int64) Value { return Value{Kind: Number, N: n} }

func NewFloat(f float64) Value { return Value{Kind: Float, F: f} }

func NewString(s string) Value { return Value{Kind: String, S: s} }

func NewFuncref(name string) Value {
	return Value{Kind: Funcref, S: name}
}

func NewBool(b bool) Value {
	if b {
		return TrueValue
	}
	return FalseValue
}

// NewList builds a list Value owning the given items.
func NewList(items ...Value) Value {
	return Value{Kind: List, List: NewListData(items...)}
}

func NewDict() Value {
	return Value{Kind: Dict, Dict: NewDictData()}
}

func NewBlob(b []byte) Value {
	return Value{Kind: Blob, Blob: NewBlobData(b)}
}

// NewBoundFuncref wraps a partial; the Value takes over the caller's
// reference.
func NewBoundFuncref(p *Partial) Value {
	return Value{Kind: Funcref, Part: p}
}

func NewJob(payload any) Value {
	return Value{Kind: Job, Job: NewJobHandle(payload)}
}

func NewChannel(payload any) Value {
	return Value{Kind: Channel, Ch: NewChannelHandle(payload)}
}

// NewClass and NewObject take over the caller's reference, like
// NewBoundFuncref.
func NewClass(cl *ClassData) Value {
	return Value{Kind: Class, Cls: cl}
}

func NewObject(o *ObjectData) Value {
	return Value{Kind: Object, Obj: o}
}

func NewTypeAlias(name string, cl *ClassData) Value {
	return Value{Kind: TypeAlias, Tad: NewTypeAliasData(name, cl)}
}

// FuncName returns the function name of a Funcref, reaching into the partial
// when the funcref is bound.
func (v Value) FuncName() string {
	if v.Part != nil {
		return v.Part.Name
	}
	return v.S
}

// Copy returns a copy of v. Scalars and strings are copied by value;
// container and handle kinds share storage and gain a reference. The copy is
// never locked, whatever the lock state of the original.
func Copy(from Value) Value {
	to := from
	to.Locked = false
	switch from.Kind {
	case List:
		if to.List != nil {
			to.List.retain()
		}
	case Dict:
		if to.Dict != nil {
			to.Dict.retain()
		}
	case Blob:
		if to.Blob != nil {
			to.Blob.retain()
		}
	case Funcref:
		if to.Part != nil {
			to.Part.retain()
		}
	case Job:
		if to.Job != nil {
			to.Job.retain()
		}
	case Channel:
		if to.Ch != nil {
			to.Ch.retain()
		}
	case Class:
		if to.Cls != nil {
			to.Cls.retain()
		}
	case Object:
		if to.Obj != nil {
			to.Obj.retain()
		}
	case TypeAlias:
		if to.Tad != nil {
			to.Tad.retain()
		}
	}
	return to
}

// Clear releases any owned reference and resets v to the unset state. It is
// safe to call on an already cleared Value.
func (v *Value) Clear() {
	switch v.Kind {
	case List:
		v.List.release()
	case Dict:
		v.Dict.release()
	case Blob:
		v.Blob.release()
	case Funcref:
		v.Part.release()
	case Job:
		v.Job.release()
	case Channel:
		v.Ch.release()
	case Class:
		v.Cls.release()
	case Object:
		v.Obj.release()
	case TypeAlias:
		v.Tad.release()
	}
	*v = Value{}
}

// DefaultCopyDepth bounds the nesting of DeepCopy.
const DefaultCopyDepth = 100

// DeepCopy copies v; when deep is set, lists and dicts are copied
// recursively instead of shared. Uses the default nesting budget.
func DeepCopy(v Value, deep bool) (Value, error) {
	return deepCopy(v, deep, DefaultCopyDepth)
}

// DeepCopyN is DeepCopy with an explicit nesting budget.
func DeepCopyN(v Value, deep bool, maxNest int) (Value, error) {
	return deepCopy(v, deep, maxNest)
}

func deepCopy(v Value, deep bool, budget int) (Value, error) {
	if budget <= 0 {
		return Value{}, &RecursionError{}
	}
	switch v.Kind {
	case List:
		if v.List == nil {
			return Value{Kind: List}, nil
		}
		if !deep {
			return listCopyShallow(v.List), nil
		}
		out := NewListData()
		out.Items = make([]Value, 0, len(v.List.Items))
		for i := range v.List.Items {
			item, err := deepCopy(v.List.Items[i], deep, budget-1)
			if err != nil {
				// Drop whatever was built so far; nothing may stay
				// half-retained on failure.
				rel := Value{Kind: List, List: out}
				rel.Clear()
				return Value{}, err
			}
			out.Items = append(out.Items, item)
		}
		return Value{Kind: List, List: out}, nil
	case Dict:
		if v.Dict == nil {
			return Value{Kind: Dict}, nil
		}
		if !deep {
			return dictCopyShallow(v.Dict), nil
		}
		out := NewDictData()
		for _, key := range v.Dict.Keys() {
			item, _ := v.Dict.Get(key)
			copied, err := deepCopy(item, deep, budget-1)
			if err != nil {
				rel := Value{Kind: Dict, Dict: out}
				rel.Clear()
				return Value{}, err
			}
			out.Set(key, copied)
		}
		return Value{Kind: Dict, Dict: out}, nil
	case Blob:
		if v.Blob == nil {
			return Value{Kind: Blob}, nil
		}
		if !deep {
			return Copy(v), nil
		}
		b := make([]byte, len(v.Blob.Bytes))
		copy(b, v.Blob.Bytes)
		return NewBlob(b), nil
	}
	return Copy(v), nil
}

func listCopyShallow(l *ListData) Value {
	out := NewListData()
	out.Items = make([]Value, 0, len(l.Items))
	for i := range l.Items {
		out.Items = append(out.Items, Copy(l.Items[i]))
	}
	return Value{Kind: List, List: out}
}

func dictCopyShallow(d *DictData) Value {
	out := NewDictData()
	for _, key := range d.Keys() {
		item, _ := d.Get(key)
		out.Set(key, Copy(item))
	}
	return Value{Kind: Dict, Dict: out}
}

// IsLocked reports whether v itself, or the list/dict storage it points at,
// is locked.
func (v Value) IsLocked() bool {
	if v.Locked {
		return true
	}
	switch v.Kind {
	case List:
		return v.List != nil && v.List.Locked
	case Dict:
		return v.Dict != nil && v.Dict.Locked
	case Blob:
		return v.Blob != nil && v.Blob.Locked
	}
	return false
}

// CheckLock returns a LockError when v or its container storage is locked.
// Mutating call sites are expected to check before touching the value.
func CheckLock(v Value, name string) error {
	if v.IsLocked() {
		return &LockError{Name: name}
	}
	return nil
}

// ItemLock sets (or clears) the lock flag on v's storage and, up to depth
// levels, on contained values. Scalar kinds only carry the Value-level flag,
// which is the caller's to manage.
func (v *Value) ItemLock(depth int, lock bool) {
	if depth <= 0 {
		return
	}
	switch v.Kind {
	case List:
		if v.List == nil {
			return
		}
		v.List.Locked = lock
		if depth > 1 {
			for i := range v.List.Items {
				v.List.Items[i].Locked = lock
				v.List.Items[i].ItemLock(depth-1, lock)
			}
		}
	case Dict:
		if v.Dict == nil {
			return
		}
		v.Dict.Locked = lock
		if depth > 1 {
			for _, key := range v.Dict.Keys() {
				item, _ := v.Dict.Get(key)
				item.Locked = lock
				item.ItemLock(depth-1, lock)
				v.Dict.items[key] = item
			}
		}
	case Blob:
		if v.Blob != nil {
			v.Blob.Locked = lock
		}
	}
}
