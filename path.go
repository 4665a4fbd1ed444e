package cppon

import (
	"fmt"
	"strconv"
	"strings"
)

// splitPath parses a slash-delimited path into its unescaped segments
// and reports whether it was absolute (leading '/'). The empty path and
// the bare "/" both designate the receiver/root: zero segments.
func splitPath(path string) (segs []string, absolute bool) {
	if path == "" {
		return nil, false
	}
	absolute = path[0] == '/'
	rest := path
	if absolute {
		rest = path[1:]
	}
	if rest == "" {
		return nil, absolute
	}
	parts := strings.Split(rest, "/")
	segs = make([]string, len(parts))
	for i, p := range parts {
		segs[i] = unescapeSegment(p)
	}
	return segs, absolute
}

// unescapeSegment applies JSON-Pointer-style escapes: ~1 -> '/', ~0 -> '~'.
func unescapeSegment(s string) string {
	if !strings.Contains(s, "~") {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '~' && i+1 < len(s) && (s[i+1] == '0' || s[i+1] == '1') {
			if s[i+1] == '0' {
				b.WriteByte('~')
			} else {
				b.WriteByte('/')
			}
			i++
			continue
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

// escapeSegment is the inverse of unescapeSegment, used when the
// printer reconstructs an absolute path for a sentinel.
func escapeSegment(s string) string {
	if !strings.ContainsAny(s, "~/") {
		return s
	}
	s = strings.ReplaceAll(s, "~", "~0")
	s = strings.ReplaceAll(s, "/", "~1")
	return s
}

// joinPath builds an absolute path string from root-relative segments.
func joinPath(segs []string) string {
	if len(segs) == 0 {
		return "/"
	}
	var b strings.Builder
	for _, s := range segs {
		b.WriteByte('/')
		b.WriteString(escapeSegment(s))
	}
	return b.String()
}

// parseIndex reports whether s is the decimal text of a non-negative
// integer, and its value.
func parseIndex(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// followPointer dereferences a chain of Pointer Values, returning the
// first non-pointer Value reached.
func followPointer(v *Value) *Value {
	for v.Kind() == Pointer {
		v = v.ptr
	}
	return v
}

// Deref is the exported form of followPointer, for callers that want a
// pointer-transparent view of a Value before a typed access.
func Deref(v *Value) *Value { return followPointer(v) }

// traverse walks path starting at receiver (or at root, if path is
// absolute), per the traversal semantics of spec.md §4.3. When write is
// true, missing intermediate objects/arrays and missing leaves are
// autovivified; when false, a missing member or an out-of-range array
// index fails with ErrPathNotFound/ErrIndexOutOfRange and nothing is
// mutated except array append-at-size, which spec.md §4.3 requires
// unconditionally (read or write) once the index equals the current
// size.
//
// The returned Value is stamped with root as its docRoot, so that
// further At/Get calls on it — without any Cursor involved — keep
// resolving absolute paths at root, per spec.md §9's Open Question
// (`_examples/original_source/examples/paths_example.cpp`'s
// `guest["/settings/theme"]` reached through plain nested indexing).
func traverse(root, receiver *Value, path string, write bool) (*Value, error) {
	segs, absolute := splitPath(path)
	cur := receiver
	if absolute {
		cur = root
	}
	for _, seg := range segs {
		cur = followPointer(cur)
		next, err := step(cur, seg, write)
		if err != nil {
			return nil, err
		}
		cur = next
	}
	cur.docRoot = root
	return cur, nil
}

// step applies one path segment to cur, per spec.md §4.3.
func step(cur *Value, seg string, write bool) (*Value, error) {
	if cur.Kind() == Null {
		if !write {
			return nil, fmt.Errorf("%w: %q", ErrPathNotFound, seg)
		}
		if _, ok := parseIndex(seg); ok {
			cur.set(NewArray())
		} else {
			cur.set(NewObject())
		}
	}

	switch cur.Kind() {
	case Object:
		if child := cur.objectGet(seg); child != nil {
			return child, nil
		}
		if !write {
			return nil, fmt.Errorf("%w: member %q", ErrPathNotFound, seg)
		}
		child := NewNull()
		cur.objectSet(seg, child)
		return child, nil

	case Array:
		idx, ok := parseIndex(seg)
		if !ok {
			return nil, fmt.Errorf("%w: non-integer array segment %q", ErrType, seg)
		}
		n := len(cur.arr)
		switch {
		case idx < n:
			return cur.arr[idx], nil
		case idx == n:
			child := NewNull()
			cur.arr = append(cur.arr, child)
			return child, nil
		case !write:
			return nil, fmt.Errorf("%w: index %d, size %d", ErrIndexOutOfRange, idx, n)
		default:
			child := NewNull()
			cur.arr = append(cur.arr, child)
			return child, nil
		}

	default:
		return nil, fmt.Errorf("%w: cannot traverse into %v with segment %q", ErrType, cur.Kind(), seg)
	}
}

// effectiveRoot is the root v resolves absolute paths against: the
// Document (or other ancestor) root it was reached from, if v was
// itself obtained through At/Get/Cursor navigation, or v itself if it
// is free-standing (spec.md §9's Open Question, resolved for
// free-standing Values — a Document- or Cursor-obtained Value instead
// carries its origin's root forward automatically).
func (v *Value) effectiveRoot() *Value {
	if v.docRoot != nil {
		return v.docRoot
	}
	return v
}

// At resolves path against v, autovivifying missing intermediates and
// the leaf. An absolute path resolves against v's effectiveRoot: the
// Document root v was reached from, if any, else v itself.
func (v *Value) At(path string) (*Value, error) {
	root := v.effectiveRoot()
	return traverse(root, v, path, true)
}

// Get resolves path against v without autovivifying, failing with
// ErrPathNotFound or ErrIndexOutOfRange if the path does not exist. The
// one exception is an array index equal to the array's size, which
// appends a null element just as At does (see traverse). An absolute
// path resolves against v's effectiveRoot: the Document root v was
// reached from, if any, else v itself.
func (v *Value) Get(path string) (*Value, error) {
	root := v.effectiveRoot()
	return traverse(root, v, path, false)
}

// Cursor pairs a traversal root with a current node. Obtaining a
// Cursor from a Document and navigating it further keeps absolute
// paths anchored at the Document's root, even many steps away from it
// — the named resolution of spec.md §9's Open Question about what
// "root" means for a Value reached through intermediate navigation.
type Cursor struct {
	root *Value
	node *Value
}

// Value returns the Value the Cursor currently points at.
func (c Cursor) Value() *Value { return c.node }

// At resolves path relative to the Cursor's node (or the Cursor's
// remembered root, if path is absolute), autovivifying as needed.
func (c Cursor) At(path string) (Cursor, error) {
	n, err := traverse(c.root, c.node, path, true)
	if err != nil {
		return Cursor{}, err
	}
	return Cursor{root: c.root, node: n}, nil
}

// Get resolves path like At, without autovivifying, except that an
// array index equal to the array's size still appends a null element.
func (c Cursor) Get(path string) (Cursor, error) {
	n, err := traverse(c.root, c.node, path, false)
	if err != nil {
		return Cursor{}, err
	}
	return Cursor{root: c.root, node: n}, nil
}

// Cursor returns a Cursor over v, rooted at v's effectiveRoot (the
// Document root v was reached from, if any, else v itself), for
// callers that want Document-style navigation over a free-standing
// Value tree.
func (v *Value) Cursor() Cursor {
	return Cursor{root: v.effectiveRoot(), node: v}
}
