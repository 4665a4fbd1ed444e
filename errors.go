package cppon

import (
	"errors"
	"fmt"
)

// Sentinel errors for the taxonomy in spec.md §7. Use errors.Is against
// these, not direct comparison — every error returned by this package
// wraps one of them with fmt.Errorf("%w: ..."), except the file-system
// errors that FromFile and ToFile return unchanged.
var (
	// ErrParseError reports malformed input: bad tokens, unterminated
	// strings, unexpected end of input, or (in Full mode) a numeric
	// token that exceeds implementation limits.
	ErrParseError = errors.New("parse error")
	// ErrType reports typed access against the wrong stored Kind.
	ErrType = errors.New("type mismatch")
	// ErrRange reports a numeric conversion that would lose
	// information or overflow.
	ErrRange = errors.New("range error")
	// ErrIndexOutOfRange reports read-only path traversal past the
	// end of an array.
	ErrIndexOutOfRange = errors.New("index out of range")
	// ErrPathNotFound reports a strict-mode resolve_paths failure, or
	// typed access through an unresolved path Value.
	ErrPathNotFound = errors.New("path not found")
	// ErrInvalidBase64 reports a blob-string decode failure.
	ErrInvalidBase64 = errors.New("invalid base64")
	// ErrCycleDetected reports a pointer that to_string must render as
	// a path sentinel (an ancestor back-reference, or any pointer under
	// layout.json or flatten) whose referent is outside the printed
	// subtree, so it has no path to print.
	ErrCycleDetected = errors.New("cycle detected")
)

// parseErrorf builds an ErrParseError carrying a byte offset and a
// short reason, matching the teacher's fmt.Errorf("%w: ...") shape.
func parseErrorf(offset int, reason string) error {
	return fmt.Errorf("%w: %s at byte %d", ErrParseError, reason, offset)
}

// typeErrorf builds an ErrType carrying the wanted and actual Kind.
func typeErrorf(want, got Kind) error {
	return fmt.Errorf("%w: want %v got %v", ErrType, want, got)
}
