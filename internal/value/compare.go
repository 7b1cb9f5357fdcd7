package value

import (
	"log/slog"
	"regexp"
	"strings"
)

// Op is a relational operator handled by Compare.
type Op uint8

const (
	OpEqual Op = iota
	OpNotEqual
	OpGreater
	OpGreaterEqual
	OpSmaller
	OpSmallerEqual
	OpMatch
	OpNoMatch
	OpIs
	OpIsNot
)

var opNames = [...]string{
	OpEqual:        "==",
	OpNotEqual:     "!=",
	OpGreater:      ">",
	OpGreaterEqual: ">=",
	OpSmaller:      "<",
	OpSmallerEqual: "<=",
	OpMatch:        "=~",
	OpNoMatch:      "!~",
	OpIs:           "is",
	OpIsNot:        "isnot",
}

func (op Op) String() string {
	if int(op) < len(opNames) {
		return opNames[op]
	}
	return "?"
}

// DefaultCompareLimit bounds equality recursion for self-referential
// structures. When the budget runs out the comparison reports equal rather
// than recursing forever.
const DefaultCompareLimit = 1000

// equalizer carries the recursion budget of one top-level comparison call
// tree. Budgets are never shared between trees.
type equalizer struct {
	depth int
	limit int
}

// tripped reports whether the nesting budget is exhausted. Each trip shrinks
// the limit so that deeply linked (but finite) structures still finish.
func (e *equalizer) tripped() bool {
	if e.depth >= e.limit {
		e.limit--
		return true
	}
	return false
}

// Compare applies op to a and b with the decision order of the runtime:
// null-sentinel equality, blob, list, object, dict, funcref, float, number,
// strict bool/special, job/channel identity, then string fallback. Pattern
// operators always take the string path. The result is a Bool value in
// strict mode and a Number 0/1 in legacy mode.
func Compare(a, b Value, op Op, ic, strict bool) (Value, error) {
	res, err := compare(a, b, op, ic, strict, &equalizer{limit: DefaultCompareLimit})
	if err != nil {
		return Value{}, err
	}
	return compareResult(res, strict), nil
}

func compareResult(res bool, strict bool) Value {
	if strict {
		return NewBool(res)
	}
	if res {
		return NewNumber(1)
	}
	return NewNumber(0)
}

func compare(a, b Value, op Op, ic, strict bool, eq *equalizer) (bool, error) {
	if err := checkIsValue(a); err != nil {
		return false, err
	}
	if err := checkIsValue(b); err != nil {
		return false, err
	}

	opIs := op == OpIs || op == OpIsNot
	slog.Debug("compare",
		slog.String("op", op.String()),
		slog.String("left", a.Kind.String()),
		slog.String("right", b.Kind.String()))

	switch {
	case opIs && a.Kind != b.Kind:
		// Different kinds: "is" is trivially false, "isnot" true.
		return op == OpIsNot, nil

	case isNullSentinel(a) != isNullSentinel(b) && a.Kind != b.Kind &&
		(op == OpEqual || op == OpNotEqual):
		res := compareNull(a, b, strict)
		if op == OpNotEqual {
			res = !res
		}
		return res, nil

	case a.Kind == Blob || b.Kind == Blob:
		return compareBlob(a, b, op)

	case a.Kind == List || b.Kind == List:
		return compareList(a, b, op, ic, eq)

	case a.Kind == Object || b.Kind == Object:
		return compareObject(a, b, op, ic, eq)

	case a.Kind == Dict || b.Kind == Dict:
		return compareDict(a, b, op, ic, eq)

	case a.Kind == Funcref || b.Kind == Funcref:
		return compareFunc(a, b, op, ic, eq)

	case (a.Kind == Float || b.Kind == Float) && op != OpMatch && op != OpNoMatch:
		f1, err := a.AsFloat()
		if err != nil {
			return false, err
		}
		f2, err := b.AsFloat()
		if err != nil {
			return false, err
		}
		switch op {
		case OpIs, OpEqual:
			return f1 == f2, nil
		case OpIsNot, OpNotEqual:
			return f1 != f2, nil
		case OpGreater:
			return f1 > f2, nil
		case OpGreaterEqual:
			return f1 >= f2, nil
		case OpSmaller:
			return f1 < f2, nil
		case OpSmallerEqual:
			return f1 <= f2, nil
		}
		return false, nil

	case (a.Kind == Number || b.Kind == Number) && op != OpMatch && op != OpNoMatch:
		n1, err := a.AsNumber(strict)
		if err != nil {
			return false, err
		}
		n2, err := b.AsNumber(strict)
		if err != nil {
			return false, err
		}
		switch op {
		case OpIs, OpEqual:
			return n1 == n2, nil
		case OpIsNot, OpNotEqual:
			return n1 != n2, nil
		case OpGreater:
			return n1 > n2, nil
		case OpGreaterEqual:
			return n1 >= n2, nil
		case OpSmaller:
			return n1 < n2, nil
		case OpSmallerEqual:
			return n1 <= n2, nil
		}
		return false, nil

	case strict && (a.Kind == Bool || b.Kind == Bool ||
		(a.Kind == Special && b.Kind == Special)):
		if a.Kind != b.Kind {
			return false, typeErrorf("cannot compare %s with %s",
				kindNames[a.Kind], kindNames[b.Kind])
		}
		switch op {
		case OpIs, OpEqual:
			return a.N == b.N, nil
		case OpIsNot, OpNotEqual:
			return a.N != b.N, nil
		}
		return false, typeErrorf("invalid operation for %s", kindNames[a.Kind])

	case a.Kind == b.Kind && (a.Kind == Job || a.Kind == Channel) &&
		(op == OpEqual || op == OpNotEqual):
		var res bool
		if a.Kind == Job {
			res = a.Job == b.Job
		} else {
			res = a.Ch == b.Ch
		}
		if op == OpNotEqual {
			res = !res
		}
		return res, nil
	}

	return compareString(a, b, op, ic, strict)
}

// checkIsValue rejects kinds that never denote a usable value.
func checkIsValue(v Value) error {
	switch v.Kind {
	case Class, TypeAlias:
		return typeErrorf("cannot use a %s as a value", kindNames[v.Kind])
	case Void:
		return typeErrorf("cannot use a void value")
	}
	return nil
}

func isNullSentinel(v Value) bool {
	return v.Kind == Special && v.N == ValNull
}

// compareNull reports whether the non-sentinel side holds the "empty" or
// "absent" payload for its kind.
func compareNull(a, b Value, strict bool) bool {
	v := a
	if isNullSentinel(a) {
		v = b
	}
	switch v.Kind {
	case Blob:
		return v.Blob == nil
	case Channel:
		return v.Ch == nil
	case Dict:
		return v.Dict == nil
	case Funcref:
		return v.FuncName() == "" && v.Part == nil
	case Job:
		return v.Job == nil
	case List:
		return v.List == nil
	case Object:
		return v.Obj == nil
	case String:
		return v.S == ""
	case TypeAlias:
		return v.Tad == nil
	case Number:
		if !strict {
			return v.N == 0
		}
	case Float:
		if !strict {
			return v.F == 0.0
		}
	}
	// Comparing null with a number, float or bool in strict mode is not
	// useful but also not an error.
	return false
}

func compareBlob(a, b Value, op Op) (bool, error) {
	switch {
	case op == OpIs || op == OpIsNot:
		res := a.Kind == b.Kind && a.Blob == b.Blob
		if op == OpIsNot {
			res = !res
		}
		return res, nil
	case a.Kind != b.Kind:
		return false, typeErrorf("can only compare blob with blob")
	case op != OpEqual && op != OpNotEqual:
		return false, typeErrorf("invalid operation for blob")
	}
	res := blobEqual(a.Blob, b.Blob)
	if op == OpNotEqual {
		res = !res
	}
	return res, nil
}

func compareList(a, b Value, op Op, ic bool, eq *equalizer) (bool, error) {
	switch {
	case op == OpIs || op == OpIsNot:
		res := a.Kind == b.Kind && a.List == b.List
		if op == OpIsNot {
			res = !res
		}
		return res, nil
	case a.Kind != b.Kind:
		return false, typeErrorf("can only compare list with list")
	case op != OpEqual && op != OpNotEqual:
		return false, typeErrorf("invalid operation for list")
	}
	res := listEqual(a.List, b.List, ic, eq)
	if op == OpNotEqual {
		res = !res
	}
	return res, nil
}

func compareObject(a, b Value, op Op, ic bool, eq *equalizer) (bool, error) {
	wantMatch := op == OpEqual || op == OpIs
	if op != OpEqual && op != OpNotEqual && op != OpIs && op != OpIsNot {
		return false, typeErrorf("invalid operation for object")
	}
	if a.Kind != b.Kind {
		return false, typeErrorf("can only compare object with object")
	}

	o1, o2 := a.Obj, b.Obj
	if o1 == nil && o2 == nil {
		return wantMatch, nil
	}
	if o1 == nil || o2 == nil {
		return !wantMatch, nil
	}
	if o1.Class != o2.Class || o1.Class == nil {
		// Cross-class instances are never equal.
		return !wantMatch, nil
	}
	if op == OpIs || op == OpIsNot {
		if o1 == o2 {
			return wantMatch, nil
		}
		return !wantMatch, nil
	}
	for i := range o1.Members {
		if !equal(o1.Members[i], o2.Members[i], ic, eq) {
			return !wantMatch, nil
		}
	}
	return wantMatch, nil
}

func compareDict(a, b Value, op Op, ic bool, eq *equalizer) (bool, error) {
	switch {
	case op == OpIs || op == OpIsNot:
		res := a.Kind == b.Kind && a.Dict == b.Dict
		if op == OpIsNot {
			res = !res
		}
		return res, nil
	case a.Kind != b.Kind:
		return false, typeErrorf("can only compare dict with dict")
	case op != OpEqual && op != OpNotEqual:
		return false, typeErrorf("invalid operation for dict")
	}
	res := dictEqual(a.Dict, b.Dict, ic, eq)
	if op == OpNotEqual {
		res = !res
	}
	return res, nil
}

func compareFunc(a, b Value, op Op, ic bool, eq *equalizer) (bool, error) {
	if op != OpEqual && op != OpNotEqual && op != OpIs && op != OpIsNot {
		return false, typeErrorf("invalid operation for funcrefs")
	}
	var res bool
	switch {
	case a.Kind != b.Kind:
		res = false
	case a.Part == nil && b.Part == nil && (op == OpIs || op == OpIsNot):
		// Plain funcrefs: same name means the same function.
		res = funcEqual(a, b, ic, eq)
	case op == OpIs || op == OpIsNot:
		// Bound funcrefs compare by partial identity.
		res = a.Part == b.Part
	default:
		res = funcEqual(a, b, ic, eq)
	}
	if op == OpNotEqual || op == OpIsNot {
		res = !res
	}
	return res, nil
}

func compareString(a, b Value, op Op, ic, strict bool) (bool, error) {
	if strict && op != OpMatch && op != OpNoMatch &&
		((a.Kind != String && a.Kind != Special) ||
			(b.Kind != String && b.Kind != Special)) {
		return false, typeErrorf("cannot compare %s with %s",
			kindNames[a.Kind], kindNames[b.Kind])
	}
	s1, err := a.AsString(false)
	if err != nil {
		return false, err
	}
	s2, err := b.AsString(false)
	if err != nil {
		return false, err
	}
	var i int
	if op != OpMatch && op != OpNoMatch {
		if ic {
			i = strings.Compare(strings.ToLower(s1), strings.ToLower(s2))
		} else {
			i = strings.Compare(s1, s2)
		}
	}
	switch op {
	case OpIs, OpEqual:
		return i == 0, nil
	case OpIsNot, OpNotEqual:
		return i != 0, nil
	case OpGreater:
		return i > 0, nil
	case OpGreaterEqual:
		return i >= 0, nil
	case OpSmaller:
		return i < 0, nil
	case OpSmallerEqual:
		return i <= 0, nil
	case OpMatch, OpNoMatch:
		res, err := patternMatch(s2, s1, ic)
		if err != nil {
			return false, err
		}
		if op == OpNoMatch {
			res = !res
		}
		return res, nil
	}
	return false, nil
}

// patternMatch matches text against pat, the right-hand side of "=~"/"!~".
func patternMatch(pat, text string, ic bool) (bool, error) {
	if ic {
		pat = "(?i)" + pat
	}
	re, err := regexp.Compile(pat)
	if err != nil {
		return false, typeErrorf("invalid pattern: %s", err)
	}
	return re.MatchString(text), nil
}

// Equal reports whether a and b have the same value, using the same rules as
// "==" except that strings and numbers are different, as are floats and
// numbers.
func Equal(a, b Value, ic bool) bool {
	return equal(a, b, ic, &equalizer{limit: DefaultCompareLimit})
}

func equal(a, b Value, ic bool, eq *equalizer) bool {
	// Self-referential structures are guessed equal once the nesting
	// budget runs out.
	if eq.tripped() {
		return true
	}

	if a.Kind == Funcref && b.Kind == Funcref {
		eq.depth++
		r := funcEqual(a, b, ic, eq)
		eq.depth--
		return r
	}

	if a.Kind != b.Kind &&
		((a.Kind != Bool && a.Kind != Special) ||
			(b.Kind != Bool && b.Kind != Special)) {
		return false
	}

	switch a.Kind {
	case List:
		eq.depth++
		r := listEqual(a.List, b.List, ic, eq)
		eq.depth--
		return r
	case Dict:
		eq.depth++
		r := dictEqual(a.Dict, b.Dict, ic, eq)
		eq.depth--
		return r
	case Blob:
		return blobEqual(a.Blob, b.Blob)
	case Number, Bool, Special:
		return a.N == b.N
	case String:
		if ic {
			return strings.EqualFold(a.S, b.S)
		}
		return a.S == b.S
	case Float:
		return a.F == b.F
	case Job:
		return a.Job == b.Job
	case Channel:
		return a.Ch == b.Ch
	case Class:
		return a.Cls == b.Cls
	case Object:
		r, err := compareObject(a, b, OpEqual, ic, eq)
		return err == nil && r
	case TypeAlias:
		return a.Tad == b.Tad
	}

	// Unknown can be the result of an invalid expression; it does not
	// equal anything, not even itself.
	return false
}

// funcEqual compares function name, bound dict and bound arguments.
func funcEqual(a, b Value, ic bool, eq *equalizer) bool {
	// An empty and an absent function name are the same.
	if a.FuncName() != b.FuncName() {
		return false
	}

	// An empty bound dict and no bound dict are different.
	var d1, d2 *DictData
	if a.Part != nil {
		d1 = a.Part.Dict
	}
	if b.Part != nil {
		d2 = b.Part.Dict
	}
	if d1 == nil || d2 == nil {
		if d1 != d2 {
			return false
		}
	} else if !dictEqual(d1, d2, ic, eq) {
		return false
	}

	var args1, args2 []Value
	if a.Part != nil {
		args1 = a.Part.Args
	}
	if b.Part != nil {
		args2 = b.Part.Args
	}
	if len(args1) != len(args2) {
		return false
	}
	for i := range args1 {
		if !equal(args1[i], args2[i], ic, eq) {
			return false
		}
	}
	return true
}

// listEqual reports elementwise, order-sensitive equality. Empty and null
// lists are considered equal.
func listEqual(l1, l2 *ListData, ic bool, eq *equalizer) bool {
	if l1 == l2 {
		return true
	}
	if l1.Len() != l2.Len() {
		return false
	}
	if l1.Len() == 0 {
		return true
	}
	for i := range l1.Items {
		if !equal(l1.Items[i], l2.Items[i], ic, eq) {
			return false
		}
	}
	return true
}

// dictEqual reports key-set plus value equality; insertion order is ignored.
// Empty and null dicts are considered equal.
func dictEqual(d1, d2 *DictData, ic bool, eq *equalizer) bool {
	if d1 == d2 {
		return true
	}
	if d1.Len() != d2.Len() {
		return false
	}
	if d1.Len() == 0 {
		return true
	}
	for _, key := range d1.Keys() {
		v1, _ := d1.Get(key)
		v2, ok := d2.Get(key)
		if !ok || !equal(v1, v2, ic, eq) {
			return false
		}
	}
	return true
}

// blobEqual compares byte for byte. Empty and null blobs are equal.
func blobEqual(b1, b2 *BlobData) bool {
	if b1.Len() != b2.Len() {
		return false
	}
	for i := 0; i < b1.Len(); i++ {
		if b1.Bytes[i] != b2.Bytes[i] {
			return false
		}
	}
	return true
}
