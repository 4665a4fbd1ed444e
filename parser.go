package cppon

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf16"
)

// Mode selects how the parser handles numeric tokens (spec.md §4.2).
type Mode int

const (
	// Quick leaves numbers as NumberLazy (a view over the source
	// digit run); this is the default.
	Quick Mode = iota
	// Full eagerly converts numbers to Int64, Uint64 or Double.
	Full
)

const (
	blobSentinelPrefix = "$cppon-blob:"
	pathSentinelPrefix = "$cppon-path:"
)

// parser is a single-pass recursive-descent reader over a text span.
// Strings and lazy numbers it produces are Go substrings of src —
// views, not copies — except where an escape sequence forces an owned
// allocation (spec.md §4.2).
type parser struct {
	src  string
	pos  int
	mode Mode
}

// ParseString parses a complete JSON(+extensions) text, per spec.md
// §4.2. The returned Value's string-view and number-lazy payloads
// reference src directly; keep src alive for as long as the Value is
// used (Document does this for you).
func ParseString(src string, mode Mode) (*Value, error) {
	p := &parser{src: src, mode: mode}
	p.skipSpace()
	v, err := p.parseValue()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if p.pos != len(p.src) {
		return nil, parseErrorf(p.pos, "trailing data after value")
	}
	return v, nil
}

// ParseBytes parses b as JSON text without copying it to a string
// first beyond Go's usual []byte->string conversion.
func ParseBytes(b []byte, mode Mode) (*Value, error) {
	return ParseString(string(b), mode)
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n'
}

func (p *parser) skipSpace() {
	for p.pos < len(p.src) && isSpace(p.src[p.pos]) {
		p.pos++
	}
}

func (p *parser) parseValue() (*Value, error) {
	if p.pos >= len(p.src) {
		return nil, parseErrorf(p.pos, "unexpected end of input")
	}
	switch c := p.src[p.pos]; {
	case c == '{':
		return p.parseObject()
	case c == '[':
		return p.parseArray()
	case c == '"':
		return p.parseStringValue()
	case c == 't':
		return p.parseLiteral("true", NewBool(true))
	case c == 'f':
		return p.parseLiteral("false", NewBool(false))
	case c == 'n':
		return p.parseLiteral("null", NewNull())
	case c == '-' || (c >= '0' && c <= '9'):
		return p.parseNumber()
	default:
		return nil, parseErrorf(p.pos, fmt.Sprintf("unexpected character %q", c))
	}
}

func (p *parser) parseLiteral(lit string, val *Value) (*Value, error) {
	if strings.HasPrefix(p.src[p.pos:], lit) {
		p.pos += len(lit)
		return val, nil
	}
	return nil, parseErrorf(p.pos, fmt.Sprintf("invalid literal, expected %q", lit))
}

func (p *parser) parseObject() (*Value, error) {
	p.pos++ // consume '{'
	obj := NewObject()
	p.skipSpace()
	if p.pos < len(p.src) && p.src[p.pos] == '}' {
		p.pos++
		return obj, nil
	}
	for {
		p.skipSpace()
		if p.pos >= len(p.src) || p.src[p.pos] != '"' {
			return nil, parseErrorf(p.pos, "expected object key")
		}
		key, _, err := p.scanString()
		if err != nil {
			return nil, err
		}
		p.skipSpace()
		if p.pos >= len(p.src) || p.src[p.pos] != ':' {
			return nil, parseErrorf(p.pos, "expected ':'")
		}
		p.pos++
		p.skipSpace()
		val, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		obj.objectSet(key, val) // spec.md §3.1: duplicate keys, last wins

		p.skipSpace()
		if p.pos >= len(p.src) {
			return nil, parseErrorf(p.pos, "unterminated object")
		}
		switch p.src[p.pos] {
		case ',':
			p.pos++
			p.skipSpace()
			if p.pos < len(p.src) && p.src[p.pos] == '}' {
				return nil, parseErrorf(p.pos, "trailing comma before '}'")
			}
		case '}':
			p.pos++
			return obj, nil
		default:
			return nil, parseErrorf(p.pos, "expected ',' or '}'")
		}
	}
}

func (p *parser) parseArray() (*Value, error) {
	p.pos++ // consume '['
	arr := NewArray()
	p.skipSpace()
	if p.pos < len(p.src) && p.src[p.pos] == ']' {
		p.pos++
		return arr, nil
	}
	for {
		p.skipSpace()
		val, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		arr.arr = append(arr.arr, val)

		p.skipSpace()
		if p.pos >= len(p.src) {
			return nil, parseErrorf(p.pos, "unterminated array")
		}
		switch p.src[p.pos] {
		case ',':
			p.pos++
			p.skipSpace()
			if p.pos < len(p.src) && p.src[p.pos] == ']' {
				return nil, parseErrorf(p.pos, "trailing comma before ']'")
			}
		case ']':
			p.pos++
			return arr, nil
		default:
			return nil, parseErrorf(p.pos, "expected ',' or ']'")
		}
	}
}

func (p *parser) parseStringValue() (*Value, error) {
	text, owned, err := p.scanString()
	if err != nil {
		return nil, err
	}
	if ext := detectExtension(text); ext != nil {
		return ext, nil
	}
	if owned {
		return &Value{kind: StringOwned, text: text}, nil
	}
	return &Value{kind: StringView, text: text}, nil
}

// detectExtension recognizes the two sentinel-prefixed string forms
// spec.md §6.1 defines. Any other string is ordinary JSON text.
func detectExtension(text string) *Value {
	if rest, ok := strings.CutPrefix(text, blobSentinelPrefix); ok {
		return &Value{kind: BlobString, text: rest}
	}
	if rest, ok := strings.CutPrefix(text, pathSentinelPrefix); ok {
		return &Value{kind: Path, text: rest}
	}
	return nil
}

// scanString consumes a JSON string literal starting at the opening
// quote and returns its decoded content plus whether it had to be
// unescaped into owned storage (true) or could stay a view (false).
func (p *parser) scanString() (text string, owned bool, err error) {
	if p.pos >= len(p.src) || p.src[p.pos] != '"' {
		return "", false, parseErrorf(p.pos, "expected opening quote")
	}
	start := p.pos + 1
	i := start
	hasEscape := false
	for {
		if i >= len(p.src) {
			return "", false, parseErrorf(p.pos, "unterminated string")
		}
		c := p.src[i]
		switch {
		case c == '"':
			raw := p.src[start:i]
			p.pos = i + 1
			if !hasEscape {
				return raw, false, nil
			}
			unescaped, uerr := unescapeJSONString(raw)
			if uerr != nil {
				return "", false, parseErrorf(start, uerr.Error())
			}
			return unescaped, true, nil
		case c == '\\':
			hasEscape = true
			if i+1 >= len(p.src) {
				return "", false, parseErrorf(i, "unterminated escape")
			}
			switch p.src[i+1] {
			case '"', '\\', '/', 'b', 'f', 'n', 'r', 't':
				i += 2
			case 'u':
				if i+6 > len(p.src) {
					return "", false, parseErrorf(i, "truncated \\u escape")
				}
				i += 6
			default:
				return "", false, parseErrorf(i, fmt.Sprintf("invalid escape \\%c", p.src[i+1]))
			}
		case c < 0x20:
			return "", false, parseErrorf(i, "control character in string")
		default:
			i++
		}
	}
}

// unescapeJSONString decodes the escapes of a validated string body
// (the bytes between the quotes) into an owned Go string.
func unescapeJSONString(raw string) (string, error) {
	var b strings.Builder
	b.Grow(len(raw))
	i := 0
	for i < len(raw) {
		c := raw[i]
		if c != '\\' {
			b.WriteByte(c)
			i++
			continue
		}
		switch raw[i+1] {
		case '"':
			b.WriteByte('"')
			i += 2
		case '\\':
			b.WriteByte('\\')
			i += 2
		case '/':
			b.WriteByte('/')
			i += 2
		case 'b':
			b.WriteByte('\b')
			i += 2
		case 'f':
			b.WriteByte('\f')
			i += 2
		case 'n':
			b.WriteByte('\n')
			i += 2
		case 'r':
			b.WriteByte('\r')
			i += 2
		case 't':
			b.WriteByte('\t')
			i += 2
		case 'u':
			r, adv, err := decodeUnicodeEscape(raw[i:])
			if err != nil {
				return "", err
			}
			b.WriteRune(r)
			i += adv
		default:
			return "", fmt.Errorf("invalid escape \\%c", raw[i+1])
		}
	}
	return b.String(), nil
}

// decodeUnicodeEscape decodes a \uXXXX escape at the start of s,
// pairing it with a following \uXXXX low surrogate if needed, and
// returns the decoded rune and how many bytes of s it consumed.
func decodeUnicodeEscape(s string) (rune, int, error) {
	if len(s) < 6 {
		return 0, 0, fmt.Errorf("truncated \\u escape")
	}
	hi, err := strconv.ParseUint(s[2:6], 16, 32)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid \\u escape: %w", err)
	}
	r := rune(hi)
	if utf16.IsSurrogate(r) {
		if len(s) >= 12 && s[6] == '\\' && s[7] == 'u' {
			lo, lerr := strconv.ParseUint(s[8:12], 16, 32)
			if lerr == nil {
				if dec := utf16.DecodeRune(r, rune(lo)); dec != unicode.ReplacementChar {
					return dec, 12, nil
				}
			}
		}
		return unicode.ReplacementChar, 6, nil
	}
	return r, 6, nil
}

func (p *parser) parseNumber() (*Value, error) {
	start := p.pos
	if p.pos < len(p.src) && p.src[p.pos] == '-' {
		p.pos++
	}
	if p.pos >= len(p.src) || p.src[p.pos] < '0' || p.src[p.pos] > '9' {
		return nil, parseErrorf(p.pos, "invalid number")
	}
	if p.src[p.pos] == '0' {
		p.pos++
	} else {
		for p.pos < len(p.src) && p.src[p.pos] >= '0' && p.src[p.pos] <= '9' {
			p.pos++
		}
	}
	isFloat := false
	if p.pos < len(p.src) && p.src[p.pos] == '.' {
		isFloat = true
		p.pos++
		if p.pos >= len(p.src) || p.src[p.pos] < '0' || p.src[p.pos] > '9' {
			return nil, parseErrorf(p.pos, "invalid number: missing fraction digits")
		}
		for p.pos < len(p.src) && p.src[p.pos] >= '0' && p.src[p.pos] <= '9' {
			p.pos++
		}
	}
	if p.pos < len(p.src) && (p.src[p.pos] == 'e' || p.src[p.pos] == 'E') {
		isFloat = true
		p.pos++
		if p.pos < len(p.src) && (p.src[p.pos] == '+' || p.src[p.pos] == '-') {
			p.pos++
		}
		if p.pos >= len(p.src) || p.src[p.pos] < '0' || p.src[p.pos] > '9' {
			return nil, parseErrorf(p.pos, "invalid number: missing exponent digits")
		}
		for p.pos < len(p.src) && p.src[p.pos] >= '0' && p.src[p.pos] <= '9' {
			p.pos++
		}
	}

	text := p.src[start:p.pos]
	if p.mode == Quick {
		return &Value{kind: NumberLazy, text: text}, nil
	}
	return convertNumberFull(text, isFloat, start)
}

// convertNumberFull implements Full mode's eager numeric conversion
// (spec.md §4.2): int64 if it fits, else uint64 if non-negative and it
// fits, else double. offset is the token's start position in the
// source, carried through for a precise ParseError if even float64
// can't hold it.
func convertNumberFull(text string, isFloat bool, offset int) (*Value, error) {
	if !isFloat {
		if i, err := strconv.ParseInt(text, 10, 64); err == nil {
			return NewInt64(i), nil
		}
		if text[0] != '-' {
			if u, err := strconv.ParseUint(text, 10, 64); err == nil {
				return NewUint64(u), nil
			}
		}
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return nil, parseErrorf(offset, fmt.Sprintf("numeric token %q exceeds implementation limits", text))
	}
	return NewDouble(f), nil
}
