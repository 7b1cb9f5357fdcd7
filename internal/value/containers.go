package value

import (
	"github.com/google/uuid"
)

// ListData is the shared storage behind a List Value. It is reference
// counted: copying the Value shares the storage, clearing releases it.
type ListData struct {
	refcount int
	Locked   bool
	Items    []Value
}

func NewListData(items ...Value) *ListData {
	return &ListData{refcount: 1, Items: items}
}

func (l *ListData) Refcount() int { return l.refcount }

func (l *ListData) Len() int {
	if l == nil {
		return 0
	}
	return len(l.Items)
}

func (l *ListData) retain() { l.refcount++ }

// release drops one reference. At zero the items are detached first so that a
// list containing itself does not recurse forever during teardown.
func (l *ListData) release() {
	if l == nil {
		return
	}
	l.refcount--
	if l.refcount > 0 {
		return
	}
	items := l.Items
	l.Items = nil
	for i := range items {
		items[i].Clear()
	}
}

// Append adds items to the end of the list, rejecting locked storage.
func (l *ListData) Append(items ...Value) error {
	if l.Locked {
		return &LockError{}
	}
	l.Items = append(l.Items, items...)
	return nil
}

// SetItem replaces the item at idx. The old item is cleared.
func (l *ListData) SetItem(idx int, item Value) error {
	if l.Locked {
		return &LockError{}
	}
	if idx < 0 || idx >= len(l.Items) {
		return typeErrorf("list index out of range: %d", idx)
	}
	l.Items[idx].Clear()
	l.Items[idx] = item
	return nil
}

// Remove deletes the item at idx and clears it.
func (l *ListData) Remove(idx int) error {
	if l.Locked {
		return &LockError{}
	}
	if idx < 0 || idx >= len(l.Items) {
		return typeErrorf("list index out of range: %d", idx)
	}
	l.Items[idx].Clear()
	l.Items = append(l.Items[:idx], l.Items[idx+1:]...)
	return nil
}

// DictData is the shared storage behind a Dict Value. Keys are unique and
// insertion order is preserved for iteration; order is not part of equality.
type DictData struct {
	refcount int
	Locked   bool
	keys     []string
	items    map[string]Value
}

func NewDictData() *DictData {
	return &DictData{refcount: 1, items: make(map[string]Value)}
}

func (d *DictData) Refcount() int { return d.refcount }

func (d *DictData) Len() int {
	if d == nil {
		return 0
	}
	return len(d.keys)
}

// Keys returns the keys in insertion order. The slice is shared; callers must
// not modify it.
func (d *DictData) Keys() []string {
	if d == nil {
		return nil
	}
	return d.keys
}

func (d *DictData) Get(key string) (Value, bool) {
	if d == nil {
		return Value{}, false
	}
	v, ok := d.items[key]
	return v, ok
}

// Set stores item under key. A new key goes to the end of the iteration
// order; an existing key keeps its position and its old item is cleared.
func (d *DictData) Set(key string, item Value) error {
	if d.Locked {
		return &LockError{Name: key}
	}
	if old, ok := d.items[key]; ok {
		old.Clear()
	} else {
		d.keys = append(d.keys, key)
	}
	d.items[key] = item
	return nil
}

// Delete removes key and clears its item. Deleting an absent key is not an
// error.
func (d *DictData) Delete(key string) error {
	if d.Locked {
		return &LockError{Name: key}
	}
	old, ok := d.items[key]
	if !ok {
		return nil
	}
	old.Clear()
	delete(d.items, key)
	for i, k := range d.keys {
		if k == key {
			d.keys = append(d.keys[:i], d.keys[i+1:]...)
			break
		}
	}
	return nil
}

func (d *DictData) retain() { d.refcount++ }

func (d *DictData) release() {
	if d == nil {
		return
	}
	d.refcount--
	if d.refcount > 0 {
		return
	}
	items := d.items
	d.items = nil
	d.keys = nil
	for _, v := range items {
		v.Clear()
	}
}

// BlobData is the shared byte buffer behind a Blob Value.
type BlobData struct {
	refcount int
	Locked   bool
	Bytes    []byte
}

func NewBlobData(b []byte) *BlobData {
	return &BlobData{refcount: 1, Bytes: b}
}

func (b *BlobData) Refcount() int { return b.refcount }

func (b *BlobData) Len() int {
	if b == nil {
		return 0
	}
	return len(b.Bytes)
}

func (b *BlobData) Append(bytes ...byte) error {
	if b.Locked {
		return &LockError{}
	}
	b.Bytes = append(b.Bytes, bytes...)
	return nil
}

func (b *BlobData) SetByte(idx int, c byte) error {
	if b.Locked {
		return &LockError{}
	}
	if idx < 0 || idx >= len(b.Bytes) {
		return typeErrorf("blob index out of range: %d", idx)
	}
	b.Bytes[idx] = c
	return nil
}

func (b *BlobData) retain() { b.refcount++ }

func (b *BlobData) release() {
	if b == nil {
		return
	}
	b.refcount--
	if b.refcount <= 0 {
		b.Bytes = nil
	}
}

// Partial is a funcref bundled with bound arguments and/or a bound dict.
type Partial struct {
	refcount int
	Name     string
	Args     []Value
	Dict     *DictData
	// Auto is set when the dict was bound implicitly by method lookup
	// rather than by an explicit bind.
	Auto bool
}

func NewPartial(name string, args []Value, dict *DictData) *Partial {
	if dict != nil {
		dict.retain()
	}
	return &Partial{refcount: 1, Name: name, Args: args, Dict: dict}
}

func (p *Partial) Refcount() int { return p.refcount }

func (p *Partial) retain() { p.refcount++ }

// release drops one reference; at zero the bound dict and every bound
// argument are released before the partial itself goes away.
func (p *Partial) release() {
	if p == nil {
		return
	}
	p.refcount--
	if p.refcount > 0 {
		return
	}
	args := p.Args
	p.Args = nil
	for i := range args {
		args[i].Clear()
	}
	d := p.Dict
	p.Dict = nil
	d.release()
}

// JobHandle is an opaque handle to an external process. The value runtime
// only manages its lifetime; Payload is never inspected here.
type JobHandle struct {
	refcount int
	ID       uuid.UUID
	Payload  any
}

func NewJobHandle(payload any) *JobHandle {
	return &JobHandle{refcount: 1, ID: uuid.New(), Payload: payload}
}

func (j *JobHandle) Refcount() int { return j.refcount }

func (j *JobHandle) retain() { j.refcount++ }

func (j *JobHandle) release() {
	if j == nil {
		return
	}
	j.refcount--
	if j.refcount <= 0 {
		j.Payload = nil
	}
}

// ChannelHandle is an opaque handle to an inter-process stream, managed like
// JobHandle.
type ChannelHandle struct {
	refcount int
	ID       uuid.UUID
	Payload  any
}

func NewChannelHandle(payload any) *ChannelHandle {
	return &ChannelHandle{refcount: 1, ID: uuid.New(), Payload: payload}
}

func (c *ChannelHandle) Refcount() int { return c.refcount }

func (c *ChannelHandle) retain() { c.refcount++ }

func (c *ChannelHandle) release() {
	if c == nil {
		return
	}
	c.refcount--
	if c.refcount <= 0 {
		c.Payload = nil
	}
}

// ClassData is class metadata. A class exists once; equality is identity.
type ClassData struct {
	refcount    int
	Name        string
	MemberNames []string
}

func NewClassData(name string, memberNames ...string) *ClassData {
	return &ClassData{refcount: 1, Name: name, MemberNames: memberNames}
}

func (c *ClassData) Refcount() int { return c.refcount }

func (c *ClassData) retain() { c.refcount++ }

func (c *ClassData) release() {
	if c == nil {
		return
	}
	c.refcount--
}

// ObjectData is a class instance: a fixed-size array of member Values plus a
// reference to its class.
type ObjectData struct {
	refcount int
	Class    *ClassData
	Members  []Value
}

// NewObjectData allocates an instance with one unset member slot per class
// member.
func NewObjectData(cl *ClassData) *ObjectData {
	cl.retain()
	return &ObjectData{
		refcount: 1,
		Class:    cl,
		Members:  make([]Value, len(cl.MemberNames)),
	}
}

func (o *ObjectData) Refcount() int { return o.refcount }

func (o *ObjectData) retain() { o.refcount++ }

// release drops one reference; at zero every member slot is cleared and the
// class reference released.
func (o *ObjectData) release() {
	if o == nil {
		return
	}
	o.refcount--
	if o.refcount > 0 {
		return
	}
	members := o.Members
	o.Members = nil
	for i := range members {
		members[i].Clear()
	}
	cl := o.Class
	o.Class = nil
	cl.release()
}

// TypeAliasData is a named reference to a class.
type TypeAliasData struct {
	refcount int
	Name     string
	Class    *ClassData
}

func NewTypeAliasData(name string, cl *ClassData) *TypeAliasData {
	if cl != nil {
		cl.retain()
	}
	return &TypeAliasData{refcount: 1, Name: name, Class: cl}
}

func (t *TypeAliasData) Refcount() int { return t.refcount }

func (t *TypeAliasData) retain() { t.refcount++ }

func (t *TypeAliasData) release() {
	if t == nil {
		return
	}
	t.refcount--
	if t.refcount > 0 {
		return
	}
	cl := t.Class
	t.Class = nil
	cl.release()
}
