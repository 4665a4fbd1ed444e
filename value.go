package cppon

// Kind tags the single alternative held by a Value.
type Kind int8

// The recognized Value kinds.
const (
	Null Kind = iota
	Bool
	NumberLazy
	Int64
	Uint64
	Double
	StringView
	StringOwned
	Array
	Object
	Blob
	BlobString
	Path
	Pointer
	numKinds
	kindUnknown Kind = -1
)

var kindStrings = [numKinds]string{
	"null", "bool", "number-lazy", "int64", "uint64", "double",
	"string-view", "string-owned", "array", "object", "blob",
	"blob-string", "path", "pointer",
}

// String returns a short name for the Kind, or "<unknown>" if k is out
// of range.
func (k Kind) String() string {
	if k < 0 || k >= numKinds {
		return "<unknown>"
	}
	return kindStrings[k]
}

// member is one name/value pair of an object, in insertion order.
type member struct {
	name string
	val  *Value
}

// Value is a tagged union over the recognized JSON and extension kinds
// (spec.md §3.1). Exactly one payload field is meaningful for a given
// Kind; which one is determined by kind.
type Value struct {
	kind Kind

	b   bool
	i64 int64
	u64 uint64
	f64 float64

	// text backs NumberLazy, StringView, StringOwned, BlobString (the
	// base64 payload, undecoded) and Path. For StringView and
	// NumberLazy this is a view (Go substring) into a Document's
	// source buffer; it is never written to in place.
	text string

	arr []*Value
	obj []member

	blob []byte

	// ptr is the referent of a Pointer Value. It is never owned by
	// the Value holding it (spec.md §3.1 "longest holder wins").
	ptr *Value

	// docRoot is the root that absolute paths resolve against when
	// navigating onward from this Value via At/Get, per spec.md §9's
	// Open Question. It is nil for a free-standing Value, which is its
	// own root; traverse stamps it onto every Value it returns, so a
	// node reached through a Document's At/Get/Cursor keeps resolving
	// absolute paths at that Document's root no matter how many more
	// hops of plain navigation follow.
	docRoot *Value
}

// Kind reports which alternative v currently holds.
func (v *Value) Kind() Kind {
	if v == nil {
		return Null
	}
	return v.kind
}

// NewNull returns a null Value.
func NewNull() *Value { return &Value{kind: Null} }

// NewBool returns a boolean Value.
func NewBool(b bool) *Value { return &Value{kind: Bool, b: b} }

// NewInt64 returns a signed 64-bit integer Value.
func NewInt64(i int64) *Value { return &Value{kind: Int64, i64: i} }

// NewUint64 returns an unsigned 64-bit integer Value.
func NewUint64(u uint64) *Value { return &Value{kind: Uint64, u64: u} }

// NewDouble returns an IEEE-754 binary64 Value.
func NewDouble(f float64) *Value { return &Value{kind: Double, f64: f} }

// NewString returns an owned string Value. Use this for any string
// that isn't a direct view into a Document's source buffer.
func NewString(s string) *Value { return &Value{kind: StringOwned, text: s} }

// NewArray returns an empty array Value.
func NewArray() *Value { return &Value{kind: Array, arr: []*Value{}} }

// NewObject returns an empty object Value.
func NewObject() *Value { return &Value{kind: Object, obj: []member{}} }

// NewBlob returns a Value holding an owned, raw byte sequence.
func NewBlob(b []byte) *Value { return &Value{kind: Blob, blob: b} }

// NewBlobStringFromBase64 returns a lazy blob Value whose bytes are
// still in Base64 text form; the payload is decoded on first GetBlob.
// This is the constructor-level stand-in for the `_b64` literal the
// core does not carry (spec.md §1 excludes UDL sugar).
func NewBlobStringFromBase64(b64 string) *Value {
	return &Value{kind: BlobString, text: b64}
}

// NewPath returns a Value holding a symbolic, slash-delimited
// reference by name. This is the constructor-level stand-in for the
// `_path` literal.
func NewPath(path string) *Value { return &Value{kind: Path, text: path} }

// NewPointer returns a Value holding a direct, non-owning reference to
// target, which must live in the same tree as the Value that will hold
// the pointer.
func NewPointer(target *Value) *Value { return &Value{kind: Pointer, ptr: target} }

// IsNull reports whether v is nil or holds the null kind.
func (v *Value) IsNull() bool { return v == nil || v.kind == Null }

// Len returns the number of elements (Array) or members (Object) in v,
// or 0 for any other kind.
func (v *Value) Len() int {
	switch v.Kind() {
	case Array:
		return len(v.arr)
	case Object:
		return len(v.obj)
	default:
		return 0
	}
}

// objectIndex returns the slice index of member name, or -1.
func (v *Value) objectIndex(name string) int {
	for i := range v.obj {
		if v.obj[i].name == name {
			return i
		}
	}
	return -1
}

// objectSet inserts or replaces member name with val, preserving
// insertion order on replace (spec.md §3.1: "duplicates ... last wins").
func (v *Value) objectSet(name string, val *Value) {
	if i := v.objectIndex(name); i >= 0 {
		v.obj[i].val = val
		return
	}
	v.obj = append(v.obj, member{name: name, val: val})
}

// objectGet returns the member named name, or nil if absent.
func (v *Value) objectGet(name string) *Value {
	if i := v.objectIndex(name); i >= 0 {
		return v.obj[i].val
	}
	return nil
}

// set replaces v's kind and payload in place with src's, without
// changing v's address — this is what makes assignment-through-a-
// pointer-obtained-by-path work (spec.md §4.1 "assigning a scalar
// replaces the Value kind in place"). v's docRoot survives the
// replacement: an in-place kind change doesn't change the node's
// position in whatever tree it was reached through.
func (v *Value) set(src *Value) {
	root := v.docRoot
	*v = *src
	v.docRoot = root
}

// Assign replaces v's kind and payload in place with x's equivalent
// Value representation. Supported x types: nil, bool, the signed and
// unsigned integer kinds, float32/float64, string, []byte (-> Blob),
// *Value (-> Pointer, installing a reference rather than a copy), and
// *Value slices/maps are not accepted here — build Array/Object
// Values explicitly and assign those.
func (v *Value) Assign(x any) {
	switch t := x.(type) {
	case nil:
		v.set(NewNull())
	case bool:
		v.set(NewBool(t))
	case int:
		v.set(NewInt64(int64(t)))
	case int8:
		v.set(NewInt64(int64(t)))
	case int16:
		v.set(NewInt64(int64(t)))
	case int32:
		v.set(NewInt64(int64(t)))
	case int64:
		v.set(NewInt64(t))
	case uint:
		v.set(NewUint64(uint64(t)))
	case uint8:
		v.set(NewUint64(uint64(t)))
	case uint16:
		v.set(NewUint64(uint64(t)))
	case uint32:
		v.set(NewUint64(uint64(t)))
	case uint64:
		v.set(NewUint64(t))
	case float32:
		v.set(NewDouble(float64(t)))
	case float64:
		v.set(NewDouble(t))
	case string:
		v.set(NewString(t))
	case []byte:
		v.set(NewBlob(t))
	case *Value:
		v.set(NewPointer(t))
	default:
		panic("cppon: Assign: unsupported type")
	}
}
