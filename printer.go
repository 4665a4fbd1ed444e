package cppon

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
)

// PrintOptions controls to_string/Print output, per spec.md §4.4. The
// zero value is not a valid default; use DefaultPrintOptions or
// ParseOptions.
type PrintOptions struct {
	// Compact suppresses whitespace between tokens. Default true.
	Compact bool
	// JSONLayout renders blob/path/pointer as sentinel strings (blob
	// and path always do, regardless of this flag) and forces pointer
	// referents to render as sentinels too, and drops the uint64 "u"
	// suffix, so the output is plain RFC 8259 JSON.
	JSONLayout bool
	// Flatten, like JSONLayout, forces non-ancestor pointer referents
	// to render as path sentinels instead of inline.
	Flatten bool
	// ReserveBuffer hints the printer to pre-size its output buffer.
	ReserveBuffer bool
}

// DefaultPrintOptions returns the printer's defaults: compact, no
// JSON-only layout, no flatten.
func DefaultPrintOptions() PrintOptions {
	return PrintOptions{Compact: true}
}

// ParseOptions parses an options text (itself a JSON value, typically
// an object) into PrintOptions, per spec.md §6.2. An empty text yields
// DefaultPrintOptions. Unknown keys are ignored for forward
// compatibility. Both the flat dotted form ("layout.json") and the
// nested form ("layout": {"json": true}) are accepted.
func ParseOptions(text string) (PrintOptions, error) {
	opts := DefaultPrintOptions()
	if strings.TrimSpace(text) == "" {
		return opts, nil
	}
	v, err := ParseString(text, Quick)
	if err != nil {
		return opts, err
	}
	if v.Kind() != Object {
		return opts, fmt.Errorf("%w: options must be a JSON object", ErrType)
	}
	for _, m := range v.obj {
		switch m.name {
		case "compact":
			b, err := optionBool(m.val)
			if err != nil {
				return opts, err
			}
			opts.Compact = b
		case "pretty":
			b, err := optionBool(m.val)
			if err != nil {
				return opts, err
			}
			opts.Compact = !b
		case "layout.json":
			b, err := optionBool(m.val)
			if err != nil {
				return opts, err
			}
			opts.JSONLayout = b
		case "layout.flatten":
			b, err := optionBool(m.val)
			if err != nil {
				return opts, err
			}
			opts.Flatten = b
		case "layout":
			if m.val.Kind() != Object {
				continue
			}
			for _, lm := range m.val.obj {
				switch lm.name {
				case "json":
					b, err := optionBool(lm.val)
					if err != nil {
						return opts, err
					}
					opts.JSONLayout = b
				case "flatten":
					b, err := optionBool(lm.val)
					if err != nil {
						return opts, err
					}
					opts.Flatten = b
				}
			}
		case "buffer":
			if s, err := m.val.AsString(); err == nil && s == "reserve" {
				opts.ReserveBuffer = true
			}
		}
	}
	return opts, nil
}

func optionBool(v *Value) (bool, error) {
	if v.Kind() != Bool {
		return false, typeErrorf(Bool, v.Kind())
	}
	return v.b, nil
}

// printState holds the working state of one Print call.
type printState struct {
	sb  strings.Builder
	opt PrintOptions

	// pathIndex maps every Value reachable from the print root by
	// plain containment to its canonical absolute path, computed once
	// up front by a pointer-blind structural walk. First visit wins,
	// matching layout.flatten's "first visit is inline" rule.
	pathIndex map[*Value]string

	// ancestors holds Values currently open on the containment stack
	// (Array/Object currently being printed) or currently being
	// inlined through a chain of non-ancestor pointers. Both cases
	// need the same back-reference treatment, so they share one set.
	ancestors map[*Value]bool
}

// Print renders v per opts, per spec.md §4.4. v is treated as its own
// root for path-sentinel purposes: a cycle back to v itself prints as
// "$cppon-path:/".
func Print(v *Value, opts PrintOptions) (string, error) {
	pr := &printState{
		opt:       opts,
		pathIndex: buildPathIndex(v),
		ancestors: make(map[*Value]bool),
	}
	if opts.ReserveBuffer {
		pr.sb.Grow(256)
	}
	if err := pr.printValue(v, 0); err != nil {
		return "", err
	}
	return pr.sb.String(), nil
}

// ToString parses an optional options text with ParseOptions and
// prints v, matching the core's to_string(v, opts) free function.
func ToString(v *Value, optsText ...string) (string, error) {
	var text string
	if len(optsText) > 0 {
		text = optsText[0]
	}
	opts, err := ParseOptions(text)
	if err != nil {
		return "", err
	}
	return Print(v, opts)
}

// buildPathIndex walks v by containment only (never through pointers)
// and records each node's first-visited absolute path, relative to v
// as root.
func buildPathIndex(root *Value) map[*Value]string {
	idx := make(map[*Value]string)
	var walk func(v *Value, segs []string)
	walk = func(v *Value, segs []string) {
		if v == nil {
			return
		}
		if _, seen := idx[v]; seen {
			return
		}
		idx[v] = joinPath(segs)
		switch v.Kind() {
		case Array:
			for i, e := range v.arr {
				walk(e, append(segs, strconv.Itoa(i)))
			}
		case Object:
			for _, m := range v.obj {
				walk(m.val, append(segs, m.name))
			}
		}
	}
	walk(root, nil)
	return idx
}

func (pr *printState) printValue(v *Value, depth int) error {
	if v == nil {
		pr.sb.WriteString("null")
		return nil
	}
	switch v.Kind() {
	case Null:
		pr.sb.WriteString("null")
	case Bool:
		if v.b {
			pr.sb.WriteString("true")
		} else {
			pr.sb.WriteString("false")
		}
	case Int64:
		pr.sb.WriteString(strconv.FormatInt(v.i64, 10))
	case Uint64:
		pr.sb.WriteString(strconv.FormatUint(v.u64, 10))
		if !pr.opt.JSONLayout {
			pr.sb.WriteByte('u')
		}
	case Double:
		pr.sb.WriteString(formatDouble(v.f64))
	case NumberLazy:
		pr.sb.WriteString(v.text)
	case StringView, StringOwned:
		pr.writeJSONString(v.text)
	case Blob:
		pr.writeJSONString(blobSentinelPrefix + base64.StdEncoding.EncodeToString(v.blob))
	case BlobString:
		pr.writeJSONString(blobSentinelPrefix + v.text)
	case Path:
		pr.writeJSONString(pathSentinelPrefix + v.text)
	case Pointer:
		return pr.printPointer(v)
	case Array:
		return pr.printArray(v, depth)
	case Object:
		return pr.printObject(v, depth)
	default:
		return fmt.Errorf("%w: cannot print kind %v", ErrType, v.Kind())
	}
	return nil
}

// printPointer implements spec.md §4.4's cycle/flatten rule: a
// referent that is an ancestor on the current stack (container or
// pointer-inline chain) always renders as a path sentinel, regardless
// of mode; otherwise it renders as a sentinel under Flatten or
// JSONLayout, and inline otherwise.
func (pr *printState) printPointer(v *Value) error {
	target := v.ptr
	if pr.ancestors[target] {
		return pr.writePathSentinel(target)
	}
	if pr.opt.Flatten || pr.opt.JSONLayout {
		return pr.writePathSentinel(target)
	}
	pr.ancestors[target] = true
	defer delete(pr.ancestors, target)
	return pr.printValue(target, 0)
}

func (pr *printState) writePathSentinel(target *Value) error {
	path, ok := pr.pathIndex[target]
	if !ok {
		return fmt.Errorf("%w: pointer referent has no path in the printed tree", ErrCycleDetected)
	}
	pr.writeJSONString(pathSentinelPrefix + path)
	return nil
}

func (pr *printState) printArray(v *Value, depth int) error {
	pr.ancestors[v] = true
	defer delete(pr.ancestors, v)

	pr.sb.WriteByte('[')
	if len(v.arr) == 0 {
		pr.sb.WriteByte(']')
		return nil
	}
	for i, e := range v.arr {
		if i > 0 {
			pr.sb.WriteByte(',')
		}
		pr.writeNewlineIndent(depth + 1)
		if err := pr.printValue(e, depth+1); err != nil {
			return err
		}
	}
	pr.writeNewlineIndent(depth)
	pr.sb.WriteByte(']')
	return nil
}

func (pr *printState) printObject(v *Value, depth int) error {
	pr.ancestors[v] = true
	defer delete(pr.ancestors, v)

	pr.sb.WriteByte('{')
	if len(v.obj) == 0 {
		pr.sb.WriteByte('}')
		return nil
	}
	for i, m := range v.obj {
		if i > 0 {
			pr.sb.WriteByte(',')
		}
		pr.writeNewlineIndent(depth + 1)
		pr.writeJSONString(m.name)
		pr.sb.WriteByte(':')
		if !pr.opt.Compact {
			pr.sb.WriteByte(' ')
		}
		if err := pr.printValue(m.val, depth+1); err != nil {
			return err
		}
	}
	pr.writeNewlineIndent(depth)
	pr.sb.WriteByte('}')
	return nil
}

func (pr *printState) writeNewlineIndent(depth int) {
	if pr.opt.Compact {
		return
	}
	pr.sb.WriteByte('\n')
	for i := 0; i < depth; i++ {
		pr.sb.WriteString("  ")
	}
}

// writeJSONString writes s as a quoted, escaped JSON string.
func (pr *printState) writeJSONString(s string) {
	pr.sb.WriteByte('"')
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch c {
		case '"':
			pr.sb.WriteString(`\"`)
		case '\\':
			pr.sb.WriteString(`\\`)
		case '\n':
			pr.sb.WriteString(`\n`)
		case '\r':
			pr.sb.WriteString(`\r`)
		case '\t':
			pr.sb.WriteString(`\t`)
		case '\b':
			pr.sb.WriteString(`\b`)
		case '\f':
			pr.sb.WriteString(`\f`)
		default:
			if c < 0x20 {
				fmt.Fprintf(&pr.sb, `\u%04x`, c)
			} else {
				pr.sb.WriteByte(c)
			}
		}
	}
	pr.sb.WriteByte('"')
}

// formatDouble renders f with the shortest round-trip representation,
// guaranteeing a decimal point or exponent so it is never confused
// with an integer token (spec.md §4.4).
func formatDouble(f float64) string {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}
