package value

import (
	"strings"
)

// ObjKind identifies the variant of a heap object.
type ObjKind uint8

const (
	// ObjStr is an interned immutable string.
	ObjStr ObjKind = iota
)

// Object is a heap-resident node: a variant tag, the variant payload, and an
// intrusive link into the registry's list of all live objects.
type Object struct {
	Kind ObjKind
	Next *Object
	Str  *ObjString // payload for ObjStr
}

// ObjString is an immutable byte sequence with its hash computed once at
// construction. At most one ObjString per distinct byte sequence is live at
// any time; the registry's intern table is the authority.
type ObjString struct {
	Str  string
	Hash uint32

	obj *Object // canonical owner object
}

// Len returns the byte length of the string.
func (s *ObjString) Len() int { return len(s.Str) }

// Object returns the canonical heap object for this string.
func (s *ObjString) Object() *Object { return s.obj }

func (o *Object) String() string {
	switch o.Kind {
	case ObjStr:
		return o.Str.Str
	}
	return "<obj>"
}

// fnv1aOffset и fnv1aPrime — параметры 32-битного FNV-1a.
const (
	fnv1aOffset uint32 = 0x811c9dc5
	fnv1aPrime  uint32 = 0x01000193
)

// HashString computes the 32-bit FNV-1a hash of s.
func HashString(s string) uint32 {
	h := fnv1aOffset
	for i := 0; i < len(s); i++ {
		h ^= uint32(s[i])
		h *= fnv1aPrime
	}
	return h
}

// Registry owns every live heap object: the intrusive object list and the
// intern table. The compiler allocates string constants through it during
// compilation; the VM allocates concatenation results at runtime. Both share
// one registry for the lifetime of the VM, so interned strings survive
// across interpret calls.
type Registry struct {
	head    *Object
	strings Table
	count   int
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// register links the object in at the head of the live list.
func (r *Registry) register(o *Object) {
	o.Next = r.head
	r.head = o
	r.count++
}

// ObjectCount returns the number of live heap objects.
func (r *Registry) ObjectCount() int { return r.count }

// Head returns the most recently created live object.
func (r *Registry) Head() *Object { return r.head }

// Strings exposes the intern table (string-content lookups, tests).
func (r *Registry) Strings() *Table { return &r.strings }

// CopyString interns the given bytes, copying them out of the caller's
// buffer. Returns the canonical string value: if the content is already
// interned, the existing object is reused.
func (r *Registry) CopyString(s string) Value {
	h := HashString(s)
	if interned := r.strings.FindString(s, h); interned != nil {
		return ObjectVal(interned.obj)
	}
	// собственная копия, чтобы не держать исходный буфер
	return r.newString(strings.Clone(s), h)
}

// TakeString interns a string whose buffer the caller hands over, avoiding a
// copy. If the content is already interned the buffer is simply dropped and
// the canonical object returned.
func (r *Registry) TakeString(s string) Value {
	h := HashString(s)
	if interned := r.strings.FindString(s, h); interned != nil {
		return ObjectVal(interned.obj)
	}
	return r.newString(s, h)
}

func (r *Registry) newString(s string, hash uint32) Value {
	str := &ObjString{Str: s, Hash: hash}
	obj := &Object{Kind: ObjStr, Str: str}
	str.obj = obj
	r.register(obj)
	r.strings.Set(str, Nil())
	return ObjectVal(obj)
}

// FreeAll tears down every live object and the intern table. The object list
// owns the string payloads; the table holds non-owning references and is
// cleared afterwards. The registry stays usable.
func (r *Registry) FreeAll() {
	for o := r.head; o != nil; {
		next := o.Next
		switch o.Kind {
		case ObjStr:
			o.Str.obj = nil
			o.Str = nil
		}
		o.Next = nil
		o = next
	}
	r.head = nil
	r.count = 0
	r.strings.Reset()
}
