package fieldpath

import (
	"strings"

	"github.com/wippyai/bitcodec/errors"
)

// Separator between path segments.
const Separator = "/"

// Path is an immutable address into a tree of named nodes. The zero value is
// the relative path ".".
type Path struct {
	s string
}

// Root is the absolute root path "/".
func Root() Path {
	return Path{s: Separator}
}

// New normalizes s into a Path. Internal "." segments are elided, ".."
// segments collapse against the preceding non-parent segment when one
// exists, and an empty result becomes ".". Absolute paths start with "/".
func New(s string) Path {
	return Path{s: normalize(s)}
}

func normalize(s string) string {
	abs := strings.HasPrefix(s, Separator)
	var out []string
	for _, seg := range strings.Split(s, Separator) {
		switch seg {
		case "", ".":
			// elided
		case "..":
			if n := len(out); n > 0 && out[n-1] != ".." {
				out = out[:n-1]
			} else if !abs {
				out = append(out, "..")
			}
			// ".." at the root collapses: parent of root is root
		default:
			out = append(out, seg)
		}
	}
	joined := strings.Join(out, Separator)
	if abs {
		return Separator + joined
	}
	if joined == "" {
		return "."
	}
	return joined
}

// String returns the normalized form.
func (p Path) String() string {
	if p.s == "" {
		return "."
	}
	return p.s
}

// IsAbsolute reports whether p starts at the root.
func (p Path) IsAbsolute() bool {
	return strings.HasPrefix(p.s, Separator)
}

// IsRoot reports whether p is the absolute root "/".
func (p Path) IsRoot() bool {
	return p.s == Separator
}

func (p Path) segments() []string {
	s := p.String()
	s = strings.TrimPrefix(s, Separator)
	if s == "" || s == "." {
		return nil
	}
	return strings.Split(s, Separator)
}

// Depth returns the number of segments.
func (p Path) Depth() int {
	return len(p.segments())
}

// NodeName returns the last segment, or "" for the root and for ".".
func (p Path) NodeName() string {
	segs := p.segments()
	if len(segs) == 0 {
		return ""
	}
	return segs[len(segs)-1]
}

// Equal reports whether the normalized forms are identical.
func (p Path) Equal(o Path) bool {
	return p.String() == o.String()
}

// Combine joins p with o. If o is absolute it replaces p verbatim;
// otherwise the two are joined with the separator and re-normalized.
func (p Path) Combine(o Path) Path {
	if o.IsAbsolute() {
		return o
	}
	return New(p.String() + Separator + o.String())
}

// Parent returns the path one level up. The parent of the root is the root.
func (p Path) Parent() Path {
	return p.Combine(New(".."))
}

// RelativeTo returns p expressed relative to base. Both paths must be of the
// same kind (both absolute or both relative).
func (p Path) RelativeTo(base Path) (Path, error) {
	if p.IsAbsolute() != base.IsAbsolute() {
		return Path{}, errors.ArgumentInvalid(errors.PhaseEval,
			"cannot relativize %q against %q: path kinds differ", p, base)
	}
	common := commonSegments(p.segments(), base.segments())
	var out []string
	for i := len(common); i < base.Depth(); i++ {
		out = append(out, "..")
	}
	out = append(out, p.segments()[len(common):]...)
	return New(strings.Join(out, Separator)), nil
}

// CommonPrefix returns the longest shared ancestor of p and o. Both paths
// must be of the same kind.
func (p Path) CommonPrefix(o Path) (Path, error) {
	if p.IsAbsolute() != o.IsAbsolute() {
		return Path{}, errors.ArgumentInvalid(errors.PhaseEval,
			"cannot take common prefix of %q and %q: path kinds differ", p, o)
	}
	common := commonSegments(p.segments(), o.segments())
	joined := strings.Join(common, Separator)
	if p.IsAbsolute() {
		return New(Separator + joined), nil
	}
	return New(joined), nil
}

func commonSegments(a, b []string) []string {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	i := 0
	for i < n && a[i] == b[i] {
		i++
	}
	return a[:i]
}

// Compare orders paths lexicographically over segments with the separator
// treated as the lowest symbol. Comparing an absolute path to a relative
// one fails.
func (p Path) Compare(o Path) (int, error) {
	if p.IsAbsolute() != o.IsAbsolute() {
		return 0, errors.ArgumentInvalid(errors.PhaseEval,
			"cannot compare %q with %q: path kinds differ", p, o)
	}
	a, b := p.segments(), o.segments()
	for i := 0; i < len(a) && i < len(b); i++ {
		if c := strings.Compare(a[i], b[i]); c != 0 {
			return c, nil
		}
	}
	switch {
	case len(a) < len(b):
		return -1, nil
	case len(a) > len(b):
		return 1, nil
	}
	return 0, nil
}
