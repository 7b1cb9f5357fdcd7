package value

import (
	"fmt"
	"strings"
)

// inspectMaxDepth bounds how far Inspect follows nested containers before
// falling back to a placeholder. Self-referential structures print "[...]"
// or "{...}" instead of recursing.
const inspectMaxDepth = 100

// Inspect renders the display form of a value. Strings appear without
// quotes; use InspectQuoted for the form that reads back as a literal.
func (v Value) Inspect() string {
	var b strings.Builder
	inspect(&b, v, 0, false)
	return b.String()
}

// InspectQuoted is like Inspect but wraps strings in single quotes, the way
// container elements are shown.
func (v Value) InspectQuoted() string {
	var b strings.Builder
	inspect(&b, v, 0, true)
	return b.String()
}

func inspect(b *strings.Builder, v Value, depth int, quote bool) {
	switch v.Kind {
	case Number:
		fmt.Fprintf(b, "%d", v.N)
	case Float:
		b.WriteString(formatFloat(v.F))
	case String:
		if quote {
			b.WriteByte('\'')
			b.WriteString(strings.ReplaceAll(v.S, "'", "''"))
			b.WriteByte('\'')
		} else {
			b.WriteString(v.S)
		}
	case Bool, Special:
		b.WriteString(SpecialName(v.N))
	case List:
		inspectList(b, v.List, depth)
	case Dict:
		inspectDict(b, v.Dict, depth)
	case Blob:
		inspectBlob(b, v.Blob)
	case Funcref:
		inspectFunc(b, v, depth)
	case Job:
		if v.Job == nil {
			b.WriteString("no job")
		} else {
			b.WriteString("job " + shortID(v.Job.ID.String()))
		}
	case Channel:
		if v.Ch == nil {
			b.WriteString("no channel")
		} else {
			b.WriteString("channel " + shortID(v.Ch.ID.String()))
		}
	case Class:
		if v.Cls == nil {
			b.WriteString("class [unknown]")
		} else {
			b.WriteString("class " + v.Cls.Name)
		}
	case Object:
		inspectObject(b, v.Obj, depth)
	case TypeAlias:
		if v.Tad == nil {
			b.WriteString("type [unknown]")
		} else {
			b.WriteString("type " + v.Tad.Name)
		}
	case Void:
		b.WriteString("void")
	default:
		b.WriteString("unknown")
	}
}

func inspectList(b *strings.Builder, l *ListData, depth int) {
	if l == nil {
		b.WriteString("[]")
		return
	}
	if depth >= inspectMaxDepth {
		b.WriteString("[...]")
		return
	}
	b.WriteByte('[')
	for i, item := range l.Items {
		if i > 0 {
			b.WriteString(", ")
		}
		inspect(b, item, depth+1, true)
	}
	b.WriteByte(']')
}

func inspectDict(b *strings.Builder, d *DictData, depth int) {
	if d == nil {
		b.WriteString("{}")
		return
	}
	if depth >= inspectMaxDepth {
		b.WriteString("{...}")
		return
	}
	b.WriteByte('{')
	for i, key := range d.Keys() {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteByte('\'')
		b.WriteString(strings.ReplaceAll(key, "'", "''"))
		b.WriteString("': ")
		item, _ := d.Get(key)
		inspect(b, item, depth+1, true)
	}
	b.WriteByte('}')
}

func inspectBlob(b *strings.Builder, blob *BlobData) {
	b.WriteString("0z")
	if blob == nil {
		return
	}
	for _, c := range blob.Bytes {
		fmt.Fprintf(b, "%02X", c)
	}
}

func inspectFunc(b *strings.Builder, v Value, depth int) {
	name := "'" + v.FuncName() + "'"
	p := v.Part
	if p == nil || (len(p.Args) == 0 && p.Dict == nil) {
		b.WriteString("function(" + name + ")")
		return
	}
	b.WriteString("function(" + name)
	for _, arg := range p.Args {
		b.WriteString(", ")
		inspect(b, arg, depth+1, true)
	}
	if p.Dict != nil {
		b.WriteString(", ")
		inspectDict(b, p.Dict, depth+1)
	}
	b.WriteByte(')')
}

func inspectObject(b *strings.Builder, o *ObjectData, depth int) {
	if o == nil || o.Class == nil {
		b.WriteString("object of [unknown]")
		return
	}
	if depth >= inspectMaxDepth {
		b.WriteString("object of " + o.Class.Name + " {...}")
		return
	}
	b.WriteString("object of " + o.Class.Name + " {")
	for i, name := range o.Class.MemberNames {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(name)
		b.WriteString(": ")
		if i < len(o.Members) {
			inspect(b, o.Members[i], depth+1, true)
		}
	}
	b.WriteByte('}')
}
