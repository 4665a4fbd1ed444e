package cppon

import (
	"log/slog"
	"os"
)

// Document owns a text buffer together with its parsed root Value, per
// spec.md §3.2/§4.5. Either the buffer is empty and Root is an empty
// object, or the buffer holds the currently-parsed source text and
// every view-bearing node reachable from Root points strictly inside
// it. The zero Document is not ready for use; construct one with
// NewDocument or FromString.
type Document struct {
	source string
	root   Value

	// logger, if set, receives Debug-level records for Eval, Clear and
	// Rematerialize. Nil by default: logging is opt-in.
	logger *slog.Logger
}

// NewDocument returns an empty Document: empty buffer, root is an
// empty object.
func NewDocument() *Document {
	return &Document{root: *NewObject()}
}

// SetLogger attaches a logger that records Eval/Clear/Rematerialize at
// slog.LevelDebug. Pass nil to disable logging again.
func (d *Document) SetLogger(logger *slog.Logger) {
	d.logger = logger
}

func (d *Document) logDebug(msg string, args ...any) {
	if d.logger != nil {
		d.logger.Debug(msg, args...)
	}
}

// FromString parses text into a new Document using Quick mode.
func FromString(text string) (*Document, error) {
	d := NewDocument()
	if err := d.Eval(text, Quick); err != nil {
		return nil, err
	}
	return d, nil
}

// FromStringMode parses text into a new Document using mode.
func FromStringMode(text string, mode Mode) (*Document, error) {
	d := NewDocument()
	if err := d.Eval(text, mode); err != nil {
		return nil, err
	}
	return d, nil
}

// FromFile reads path synchronously and delegates to FromString, per
// spec.md §4.5/§5 ("from_file reads the file synchronously and then
// delegates to from_string").
func FromFile(path string) (*Document, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return FromString(string(b))
}

// ToFile prints the Document's root with opts and writes it to path,
// the convenience counterpart to FromFile (spec.md §6.4: "from_file/
// to_file are convenience over from_string/to_string").
func (d *Document) ToFile(path string, opts PrintOptions) error {
	text, err := Print(&d.root, opts)
	if err != nil {
		return err
	}
	return os.WriteFile(path, []byte(text), 0o644)
}

// Empty reports whether the buffer is empty and the root is an empty
// object, per spec.md §4.5.
func (d *Document) Empty() bool {
	return d.source == "" && d.root.Kind() == Object && d.root.Len() == 0
}

// Source returns the Document's current backing text buffer.
func (d *Document) Source() string {
	return d.source
}

// Root returns a pointer to the Document's root Value. Absolute paths
// resolved through a Cursor obtained from this Document (or through
// Document.At/Get) are anchored here.
func (d *Document) Root() *Value {
	return &d.root
}

// Eval atomically replaces the buffer and root, per spec.md §4.5/§7's
// strong guarantee: text is parsed into a scratch root first, and the
// Document is only mutated once parsing succeeds. An empty text yields
// an empty object and an empty buffer, matching a null input pointer
// in the core contract.
func (d *Document) Eval(text string, mode Mode) error {
	if text == "" {
		d.source = ""
		d.root = *NewObject()
		d.logDebug("cppon: eval", "bytes", 0, "result", "empty-object")
		return nil
	}
	parsed, err := ParseString(text, mode)
	if err != nil {
		return err
	}
	d.source = text
	d.root = *parsed
	d.logDebug("cppon: eval", "bytes", len(text), "mode", mode)
	return nil
}

// Clear resets the Document to its default empty state.
func (d *Document) Clear() {
	d.source = ""
	d.root = *NewObject()
	d.logDebug("cppon: clear")
}

// Rematerialize prints the current tree with opts into a fresh buffer,
// adopts it as the new source, and re-parses it in place so that every
// view-bearing node anchors onto the new buffer. d.ToString(opts) is a
// fixed point across Rematerialize under the same opts.
func (d *Document) Rematerialize(opts PrintOptions, mode Mode) error {
	printed, err := Print(&d.root, opts)
	if err != nil {
		return err
	}
	parsed, err := ParseString(printed, mode)
	if err != nil {
		return err
	}
	d.source = printed
	d.root = *parsed
	d.logDebug("cppon: rematerialize", "bytes", len(printed), "mode", mode)
	return nil
}

// At resolves path against the Document's root, autovivifying missing
// intermediates and the leaf.
func (d *Document) At(path string) (*Value, error) {
	return traverse(&d.root, &d.root, path, true)
}

// Get resolves path against the Document's root without autovivifying,
// except that an array index equal to the array's size appends a null
// element.
func (d *Document) Get(path string) (*Value, error) {
	return traverse(&d.root, &d.root, path, false)
}

// Cursor returns a Cursor rooted at the Document, so that absolute
// paths resolved through further navigation stay anchored here.
func (d *Document) Cursor() Cursor {
	return Cursor{root: &d.root, node: &d.root}
}

// ToString prints the Document's current root with opts.
func (d *Document) ToString(opts PrintOptions) (string, error) {
	return Print(&d.root, opts)
}
