package cppon

import (
	"errors"
	"fmt"
)

// ResolveReport collects the paths that ResolvePaths could not resolve
// in non-strict mode.
type ResolveReport struct {
	Unresolved []string
}

// ResolvePaths walks v and rewrites every Path Value it finds into a
// Pointer Value pointing at the resolved node (spec.md §4.6). Path
// Values are resolved against root: absolute paths (leading '/') from
// root itself, relative ones from the Path Value's own position is not
// meaningful for a symbolic reference, so — matching the core
// contract, which addresses resolve_paths(v) against the tree's own
// root — every path text is resolved as if absolute, i.e. always
// against root.
//
// In strict mode, the first unresolvable path fails the whole call
// with ErrPathNotFound and the tree is left partially rewritten (the
// weak guarantee spec.md §7 describes for partial writes). In
// non-strict mode, unresolvable paths are left as Path Values and
// their text is collected into the returned ResolveReport.
func ResolvePaths(root *Value, strict bool) (ResolveReport, error) {
	var report ResolveReport
	err := resolveWalk(root, root, strict, &report)
	return report, err
}

func resolveWalk(root, v *Value, strict bool, report *ResolveReport) error {
	switch v.Kind() {
	case Path:
		target, err := root.Get(v.text)
		if err != nil {
			if strict {
				if !errors.Is(err, ErrPathNotFound) {
					err = fmt.Errorf("%w: %q: %v", ErrPathNotFound, v.text, err)
				}
				return err
			}
			report.Unresolved = append(report.Unresolved, v.text)
			return nil
		}
		v.set(NewPointer(target))
		return nil
	case Array:
		for _, e := range v.arr {
			if err := resolveWalk(root, e, strict, report); err != nil {
				return err
			}
		}
	case Object:
		for _, m := range v.obj {
			if err := resolveWalk(root, m.val, strict, report); err != nil {
				return err
			}
		}
	}
	return nil
}
